// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Result-size bounds applied by AnalysisFilters.Normalized.
const (
	MinAnalysisResults     = 1
	MaxAnalysisResults     = 1000
	DefaultAnalysisResults = 100
)

// AnalysisFilters configures one analysis run.
type AnalysisFilters struct {
	// Categories is an optional allow-list; empty means all categories.
	Categories []Category `json:"categories,omitempty" yaml:"categories,omitempty"`

	// MinRelevanceScore drops series scoring below it (default 0).
	MinRelevanceScore int `json:"min_relevance_score" yaml:"min_relevance_score"`

	// MaxResults bounds the total returned series; clamped to [1, 1000].
	MaxResults int `json:"max_results" yaml:"max_results"`

	// IncludeProbes runs accessibility probes over the surviving series.
	IncludeProbes bool `json:"include_probes" yaml:"include_probes"`

	// OnlyAccessible drops probe results whose fetch failed.
	OnlyAccessible bool `json:"only_accessible" yaml:"only_accessible"`
}

// Normalized returns a copy with MaxResults defaulted when unset and clamped
// to [MinAnalysisResults, MaxAnalysisResults], and a negative minimum score
// raised to zero.
func (f AnalysisFilters) Normalized() AnalysisFilters {
	if f.MaxResults == 0 {
		f.MaxResults = DefaultAnalysisResults
	}
	if f.MaxResults < MinAnalysisResults {
		f.MaxResults = MinAnalysisResults
	}
	if f.MaxResults > MaxAnalysisResults {
		f.MaxResults = MaxAnalysisResults
	}
	if f.MinRelevanceScore < 0 {
		f.MinRelevanceScore = 0
	}
	return f
}

// Allows reports whether the category passes the allow-list.
func (f AnalysisFilters) Allows(c Category) bool {
	if len(f.Categories) == 0 {
		return true
	}
	for _, allowed := range f.Categories {
		if c == allowed {
			return true
		}
	}
	return false
}

// PerformanceMetrics summarizes one analysis run.
type PerformanceMetrics struct {
	// Duration is the elapsed wall time of the run.
	Duration time.Duration `json:"duration" yaml:"duration"`

	// SeriesClassified is the number of series put through classification.
	SeriesClassified int `json:"series_classified" yaml:"series_classified"`

	// CategoriesFound is the number of non-empty category groups.
	CategoriesFound int `json:"categories_found" yaml:"categories_found"`

	// ProbesPerformed is the number of probe results produced.
	ProbesPerformed int `json:"probes_performed" yaml:"probes_performed"`
}

// AnalysisResult is the final, immutable inventory produced by one run.
// Each category group is sorted by descending relevance score with ties
// preserving original catalog order.
type AnalysisResult struct {
	// TotalAnalyzed is the number of series taken from the catalog.
	TotalAnalyzed int `json:"total_analyzed" yaml:"total_analyzed"`

	// Categorized maps each category to its surviving, ranked series.
	Categorized map[Category][]Series `json:"categorized" yaml:"categorized"`

	// ProbeResults holds one entry per probed series, failures included.
	ProbeResults []ProbeResult `json:"probe_results,omitempty" yaml:"probe_results,omitempty"`

	// Metrics summarizes the run.
	Metrics PerformanceMetrics `json:"performance_metrics" yaml:"performance_metrics"`

	// Timestamp records when the run completed.
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}
