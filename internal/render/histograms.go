package render

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"arffview/internal/service"
	"arffview/internal/tui/styles"
)

// Histograms decodes each base64 histogram payload into
// {dir}/histogram_{set}.png and renders one labelled line per image.
// A payload that fails to decode surfaces inline without aborting the
// region; a file-write failure aborts, since later regions cannot fix
// a broken output directory.
func Histograms(histograms map[string]string, dir string) (string, error) {
	if len(histograms) == 0 {
		return placeholder("No histograms available"), nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create histogram directory: %w", err)
	}

	var b strings.Builder
	for _, set := range orderedHistogramSets(histograms) {
		payload := histograms[set]
		label := service.DisplayName(set)

		if payload == "" {
			// The service sends empty strings when server-side plotting
			// failed; surface that rather than writing an empty file.
			b.WriteString(fmt.Sprintf("  %-16s %s\n", label, styles.Placeholder.Render("not generated")))
			continue
		}

		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			b.WriteString(fmt.Sprintf("  %-16s %s\n", label, styles.Error.Render("invalid image data")))
			continue
		}

		path := filepath.Join(dir, HistogramFileName(set))
		if err := os.WriteFile(path, data, 0644); err != nil {
			return b.String(), fmt.Errorf("write %s: %w", path, err)
		}

		b.WriteString(fmt.Sprintf("  %-16s %s\n", label, styles.Secondary.Render(path)))
	}

	return b.String(), nil
}

// HistogramFileName returns the image file name for a split set.
func HistogramFileName(set string) string {
	return "histogram_" + set + ".png"
}

// orderedHistogramSets mirrors the distribution table ordering: known
// sets in SetOrder, then unknown sets alphabetically.
func orderedHistogramSets(histograms map[string]string) []string {
	known := make(map[string]bool, len(service.SetOrder))
	var sets []string
	for _, set := range service.SetOrder {
		known[set] = true
		if _, ok := histograms[set]; ok {
			sets = append(sets, set)
		}
	}

	var extra []string
	for set := range histograms {
		if !known[set] {
			extra = append(extra, set)
		}
	}
	sort.Strings(extra)

	return append(sets, extra...)
}
