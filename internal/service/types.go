// Package service implements the client side of the dataset processing
// service's HTTP contract: one multipart upload, one JSON result.
package service

import (
	"encoding/json"
	"sort"
)

// Known split set names, in rendering order. Unrecognized names render
// after these, passed through unchanged.
const (
	SetOriginal   = "original"
	SetTrain      = "train"
	SetValidation = "validation"
	SetTest       = "test"
)

// SetOrder is the fixed rendering order for known split sets.
var SetOrder = []string{SetOriginal, SetTrain, SetValidation, SetTest}

// displayNames maps wire set names to their display labels.
var displayNames = map[string]string{
	SetOriginal:   "Dataset Original",
	SetTrain:      "Training Set",
	SetValidation: "Validation Set",
	SetTest:       "Test Set",
}

// DisplayName returns the display label for a split set name.
// Unrecognized names pass through unchanged.
func DisplayName(set string) string {
	if name, ok := displayNames[set]; ok {
		return name
	}
	return set
}

// Result is the JSON payload returned by the processing service.
// Every region is optional; the service's original backend omits
// dataset_info entirely and newer versions send one of two shapes.
type Result struct {
	DatasetInfo   *DatasetInfo            `json:"dataset_info,omitempty"`
	SplitSizes    *SplitSizes             `json:"split_sizes,omitempty"`
	Distributions map[string]Distribution `json:"protocol_type_distribution,omitempty"`
	Histograms    map[string]string       `json:"histograms,omitempty"`
}

// SplitSizes holds the instance counts of each split.
type SplitSizes struct {
	Train      int `json:"train"`
	Validation int `json:"validation"`
	Test       int `json:"test"`
}

// Total returns the summed instance count across all splits.
func (s SplitSizes) Total() int {
	return s.Train + s.Validation + s.Test
}

// Distribution maps a category label to its instance count within one
// split set.
type Distribution map[string]int

// Total returns the summed count across all categories.
func (d Distribution) Total() int {
	total := 0
	for _, n := range d {
		total += n
	}
	return total
}

// Categories returns the category labels sorted by count descending,
// ties broken alphabetically, so tables render deterministically.
func (d Distribution) Categories() []string {
	labels := make([]string, 0, len(d))
	for label := range d {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if d[labels[i]] != d[labels[j]] {
			return d[labels[i]] > d[labels[j]]
		}
		return labels[i] < labels[j]
	})
	return labels
}

// InfoVariant identifies which dataset_info shape a response carried.
type InfoVariant int

const (
	// InfoNone means no dataset_info region was present.
	InfoNone InfoVariant = iota
	// InfoStratify is the {total_instances, features_count,
	// stratify_column_used} shape.
	InfoStratify
	// InfoShape is the {shape, columns, dtypes} shape.
	InfoShape
)

// DatasetInfo is the dataset metadata region. Two server versions emit
// two disjoint shapes; both unmarshal into this one type and Variant
// reports which was seen.
type DatasetInfo struct {
	// Stratify variant
	TotalInstances int    `json:"total_instances"`
	FeaturesCount  int    `json:"features_count"`
	StratifyColumn string `json:"stratify_column_used"`

	// Shape variant
	Shape   []int             `json:"shape"`
	Columns []string          `json:"columns"`
	Dtypes  map[string]string `json:"dtypes"`

	seen map[string]bool
}

// UnmarshalJSON records which keys were present so Variant can
// distinguish a genuine zero value from an absent field.
func (i *DatasetInfo) UnmarshalJSON(data []byte) error {
	type plain DatasetInfo
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}

	*i = DatasetInfo(p)
	i.seen = make(map[string]bool, len(keys))
	for k := range keys {
		i.seen[k] = true
	}
	return nil
}

// Variant reports which dataset_info shape the response carried. When
// a server sends keys of both shapes, the stratify variant wins; use
// the service.contract configuration to force the other.
func (i *DatasetInfo) Variant() InfoVariant {
	if i == nil {
		return InfoNone
	}
	if i.seen["total_instances"] || i.seen["features_count"] || i.seen["stratify_column_used"] {
		return InfoStratify
	}
	if i.seen["shape"] || i.seen["columns"] || i.seen["dtypes"] {
		return InfoShape
	}
	return InfoNone
}

// HasVariant reports whether the response carried any keys of the
// given shape, independently of which one Variant prefers.
func (i *DatasetInfo) HasVariant(v InfoVariant) bool {
	if i == nil {
		return false
	}
	switch v {
	case InfoStratify:
		return i.seen["total_instances"] || i.seen["features_count"] || i.seen["stratify_column_used"]
	case InfoShape:
		return i.seen["shape"] || i.seen["columns"] || i.seen["dtypes"]
	default:
		return false
	}
}

// errorBody is the JSON body of a non-success response.
type errorBody struct {
	Error string `json:"error"`
}
