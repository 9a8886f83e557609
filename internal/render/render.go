// Package render turns a processing Result into styled terminal
// regions: dataset info, split sizes, protocol-type distribution tables
// and histogram images. Each renderer produces a complete region string
// so callers replace a region wholesale rather than appending to it.
package render

import (
	"fmt"
	"sort"
	"strings"

	apperrors "arffview/internal/errors"
	"arffview/internal/service"
	"arffview/internal/tui/styles"
)

// Region names used in error reporting.
const (
	regionDatasetInfo  = "dataset info"
	regionSplitSizes   = "split sizes"
	regionDistribution = "protocol distribution"
	regionHistograms   = "histograms"
)

// Options control result rendering.
type Options struct {
	// HistogramDir is where decoded histogram images are written.
	HistogramDir string
	// Contract forces one dataset_info shape when the server sends
	// keys of both. service.InfoNone means auto-detect.
	Contract service.InfoVariant
}

// Result renders all four regions in order. On a region failure the
// regions rendered so far are returned alongside the error, so the
// caller can keep partial output visible while alerting.
func Result(res *service.Result, opts Options) (string, error) {
	var b strings.Builder

	b.WriteString(region("Dataset Information", DatasetInfo(res.DatasetInfo, opts.Contract)))
	b.WriteString(region("Split Sizes", SplitSizes(res.SplitSizes)))
	b.WriteString(region("Protocol Type Distribution", Distributions(res.Distributions)))

	histograms, err := Histograms(res.Histograms, opts.HistogramDir)
	b.WriteString(region("Histograms", histograms))
	if err != nil {
		return b.String(), apperrors.NewRenderError(regionHistograms, err)
	}

	return b.String(), nil
}

// region wraps a rendered body with its title.
func region(title, body string) string {
	var b strings.Builder
	b.WriteString(styles.RegionTitle.Render("▸ " + title))
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n")
	return b.String()
}

// placeholder is rendered for a region or table with no data.
func placeholder(text string) string {
	return styles.Placeholder.Render(text) + "\n"
}

// DatasetInfo renders the dataset metadata region. The contract
// override picks a shape when the response carries both; otherwise the
// shape is detected from the response itself.
func DatasetInfo(info *service.DatasetInfo, contract service.InfoVariant) string {
	variant := info.Variant()
	if contract != service.InfoNone && info.HasVariant(contract) {
		variant = contract
	}

	switch variant {
	case service.InfoStratify:
		return renderStratifyInfo(info)
	case service.InfoShape:
		return renderShapeInfo(info)
	default:
		return placeholder("No dataset information available")
	}
}

func renderStratifyInfo(info *service.DatasetInfo) string {
	var b strings.Builder
	b.WriteString(infoRow("Total instances", fmt.Sprintf("%d", info.TotalInstances)))
	b.WriteString(infoRow("Features", fmt.Sprintf("%d", info.FeaturesCount)))
	b.WriteString(infoRow("Stratify column", info.StratifyColumn))
	return b.String()
}

func renderShapeInfo(info *service.DatasetInfo) string {
	var b strings.Builder

	if len(info.Shape) == 2 {
		b.WriteString(infoRow("Shape", fmt.Sprintf("%d rows × %d columns", info.Shape[0], info.Shape[1])))
	} else if len(info.Shape) > 0 {
		b.WriteString(infoRow("Shape", fmt.Sprintf("%v", info.Shape)))
	}
	if len(info.Columns) > 0 {
		b.WriteString(infoRow("Columns", strings.Join(info.Columns, ", ")))
	}
	if len(info.Dtypes) > 0 {
		b.WriteString(infoRow("Dtypes", formatDtypes(info.Dtypes)))
	}

	if b.Len() == 0 {
		return placeholder("No dataset information available")
	}
	return b.String()
}

// formatDtypes summarizes column dtypes as "count × dtype" pairs,
// most frequent first.
func formatDtypes(dtypes map[string]string) string {
	counts := make(map[string]int)
	for _, dtype := range dtypes {
		counts[dtype]++
	}

	names := make([]string, 0, len(counts))
	for dtype := range counts {
		names = append(names, dtype)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})

	parts := make([]string, 0, len(names))
	for _, dtype := range names {
		parts = append(parts, fmt.Sprintf("%d × %s", counts[dtype], dtype))
	}
	return strings.Join(parts, ", ")
}

func infoRow(label, value string) string {
	return fmt.Sprintf("  %s %s\n", styles.Muted.Render(fmt.Sprintf("%-18s", label)), value)
}

// SplitSizes renders one row per split with its share of the total at
// one decimal place, plus a total row.
func SplitSizes(sizes *service.SplitSizes) string {
	if sizes == nil {
		return placeholder("No split sizes available")
	}

	total := sizes.Total()
	rows := []struct {
		label string
		count int
	}{
		{service.DisplayName(service.SetTrain), sizes.Train},
		{service.DisplayName(service.SetValidation), sizes.Validation},
		{service.DisplayName(service.SetTest), sizes.Test},
	}

	var b strings.Builder
	b.WriteString("  " + styles.TableHeader.Render(fmt.Sprintf("%-16s %10s %9s", "Set", "Instances", "Share")) + "\n")
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("  %-16s %10d %9s\n", row.label, row.count, percent1(row.count, total)))
	}
	b.WriteString("  " + styles.TableTotal.Render(fmt.Sprintf("%-16s %10d", "Total", total)) + "\n")
	return b.String()
}

// Distributions renders one table per split set: known sets first in
// fixed order, then any unrecognized sets alphabetically under their
// wire names. A set with no data renders a placeholder line.
func Distributions(dists map[string]service.Distribution) string {
	if len(dists) == 0 {
		return placeholder("No distribution data available")
	}

	var b strings.Builder
	for _, set := range orderedSets(dists) {
		b.WriteString("  " + styles.Text.Render(service.DisplayName(set)) + "\n")
		b.WriteString(distributionTable(dists[set]))
	}
	return b.String()
}

// orderedSets returns the known sets present in dists in SetOrder,
// followed by unknown sets alphabetically.
func orderedSets(dists map[string]service.Distribution) []string {
	known := make(map[string]bool, len(service.SetOrder))
	var sets []string
	for _, set := range service.SetOrder {
		known[set] = true
		if _, ok := dists[set]; ok {
			sets = append(sets, set)
		}
	}

	var extra []string
	for set := range dists {
		if !known[set] {
			extra = append(extra, set)
		}
	}
	sort.Strings(extra)

	return append(sets, extra...)
}

func distributionTable(dist service.Distribution) string {
	if len(dist) == 0 {
		return "  " + placeholder("No distribution data available")
	}

	total := dist.Total()

	var b strings.Builder
	b.WriteString("    " + styles.TableHeader.Render(fmt.Sprintf("%-14s %8s %9s", "Category", "Count", "Percent")) + "\n")
	for _, label := range dist.Categories() {
		b.WriteString(fmt.Sprintf("    %-14s %8d %9s\n", label, dist[label], percent2(dist[label], total)))
	}
	b.WriteString("    " + styles.TableTotal.Render(fmt.Sprintf("%-14s %8d", "Total", total)) + "\n")
	return b.String()
}

// percent1 formats count/total as a percentage with one decimal place.
func percent1(count, total int) string {
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", float64(count)/float64(total)*100)
}

// percent2 formats count/total as a percentage with two decimal places.
func percent2(count, total int) string {
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%.2f%%", float64(count)/float64(total)*100)
}
