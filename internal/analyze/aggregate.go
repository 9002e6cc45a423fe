// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analyze assembles the categorized, probed inventory for one run.
// See docs/ARCHITECTURE § Aggregation.
package analyze

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/pdiddy/catalog-engine/internal/catalog"
	"github.com/pdiddy/catalog-engine/internal/classify"
	"github.com/pdiddy/catalog-engine/internal/probe"
	"github.com/pdiddy/catalog-engine/pkg/types"
)

// Aggregator runs the analysis pipeline over parsed series: classification,
// grouping and ranking, filtering, optional probing, and metrics.
type Aggregator struct {
	engine       *classify.Engine
	orchestrator *probe.Orchestrator
	probeCfg     types.ProbeConfig
	w            io.Writer
}

// New builds an aggregator. orchestrator may be nil when probes are never
// requested; probeCfg supplies the bulk concurrency cap and sample policy.
func New(engine *classify.Engine, orchestrator *probe.Orchestrator, probeCfg types.ProbeConfig, w io.Writer) *Aggregator {
	if w == nil {
		w = io.Discard
	}
	if probeCfg.MaxConcurrent <= 0 {
		probeCfg.MaxConcurrent = 5
	}
	return &Aggregator{
		engine:       engine,
		orchestrator: orchestrator,
		probeCfg:     probeCfg,
		w:            w,
	}
}

// RunCatalog parses rawXML and analyzes the resulting series. A document
// that is not well-formed markup fails the run; everything past parsing
// degrades instead of failing.
func (a *Aggregator) RunCatalog(ctx context.Context, rawXML string, catalogCfg types.CatalogConfig, filters types.AnalysisFilters) (*types.AnalysisResult, error) {
	series, err := catalog.Parse(rawXML, catalogCfg)
	if err != nil {
		return nil, err
	}
	return a.Run(ctx, series, filters)
}

// Run classifies every series, groups them by category ranked by descending
// relevance score (ties keep catalog order), applies the filters, optionally
// probes the survivors, and computes run metrics. Per-series problems become
// result rows; after classification no step fails the run except an invalid
// bulk request.
func (a *Aggregator) Run(ctx context.Context, series []types.Series, filters types.AnalysisFilters) (*types.AnalysisResult, error) {
	start := time.Now()
	filters = filters.Normalized()

	// Classification sets category and score exactly once per run.
	for i := range series {
		c := a.engine.Classify(ctx, series[i])
		series[i].Category = c.Category
		series[i].RelevanceScore = c.Score
	}

	groups := groupByCategory(series)

	for category := range groups {
		if !filters.Allows(category) {
			delete(groups, category)
		}
	}

	if filters.MinRelevanceScore > 0 {
		for category, group := range groups {
			groups[category] = atLeast(group, filters.MinRelevanceScore)
		}
	}

	// The cap divides MaxResults across the full enumeration, not just the
	// populated groups, so a run clustered into few categories returns
	// fewer series than MaxResults. Kept as-is: downstream tooling depends
	// on the per-category quota being stable.
	perCategory := filters.MaxResults / len(types.AllCategories())
	for category, group := range groups {
		if len(group) > perCategory {
			groups[category] = group[:perCategory]
		}
	}

	for category, group := range groups {
		if len(group) == 0 {
			delete(groups, category)
		}
	}

	var probeResults []types.ProbeResult
	if filters.IncludeProbes && a.orchestrator != nil {
		var err error
		probeResults, err = a.runProbes(ctx, groups, filters)
		if err != nil {
			return nil, err
		}
	}

	result := &types.AnalysisResult{
		TotalAnalyzed: len(series),
		Categorized:   groups,
		ProbeResults:  probeResults,
		Metrics: types.PerformanceMetrics{
			Duration:         time.Since(start),
			SeriesClassified: len(series),
			CategoriesFound:  len(groups),
			ProbesPerformed:  len(probeResults),
		},
		Timestamp: time.Now().UTC(),
	}

	fmt.Fprintf(a.w, "Analyzed %d series into %d categories in %v\n",
		result.TotalAnalyzed, result.Metrics.CategoriesFound, result.Metrics.Duration.Round(time.Millisecond))
	return result, nil
}

// runProbes flattens the surviving series in enumeration order, bounded to
// MaxResults total, and runs the bulk orchestrator over their ids.
func (a *Aggregator) runProbes(ctx context.Context, groups map[types.Category][]types.Series, filters types.AnalysisFilters) ([]types.ProbeResult, error) {
	var ids []string
	for _, category := range types.AllCategories() {
		for _, s := range groups[category] {
			if len(ids) >= filters.MaxResults {
				break
			}
			ids = append(ids, s.ID)
		}
	}

	results, err := a.orchestrator.RunBulk(ctx, types.BulkRequest{
		SeriesIDs:     ids,
		MaxConcurrent: a.probeCfg.MaxConcurrent,
		SaveSamples:   a.probeCfg.SaveSamples,
	})
	if err != nil {
		return nil, err
	}

	if filters.OnlyAccessible {
		accessible := results[:0]
		for _, r := range results {
			if r.AccessSucceeded {
				accessible = append(accessible, r)
			}
		}
		results = accessible
	}
	return results, nil
}

// groupByCategory buckets series preserving catalog order, then ranks each
// bucket by descending relevance score. The sort is stable so ties keep
// their original order.
func groupByCategory(series []types.Series) map[types.Category][]types.Series {
	groups := make(map[types.Category][]types.Series)
	for _, s := range series {
		groups[s.Category] = append(groups[s.Category], s)
	}
	for _, group := range groups {
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].RelevanceScore > group[j].RelevanceScore
		})
	}
	return groups
}

// atLeast keeps series scoring at or above min, preserving order.
func atLeast(group []types.Series, min int) []types.Series {
	kept := group[:0:0]
	for _, s := range group {
		if s.RelevanceScore >= min {
			kept = append(kept, s)
		}
	}
	return kept
}
