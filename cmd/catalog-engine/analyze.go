// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/catalog-engine/internal/analyze"
	"github.com/pdiddy/catalog-engine/internal/classify"
	"github.com/pdiddy/catalog-engine/internal/probe"
	"github.com/pdiddy/catalog-engine/internal/rules"
	"github.com/pdiddy/catalog-engine/internal/tempres"
	"github.com/pdiddy/catalog-engine/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <catalog.xml>",
	Short: "Classify and optionally probe every series in a catalog",
	Long: `Analyze parses an SDMX structure document, classifies each series with
the rule store (falling back to the built-in rule set when the store is
unavailable), groups and ranks the results by category, and optionally
probes the surviving series for data accessibility.

The result can be exported to YAML or JSON for downstream tooling.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading catalog: %w", err)
	}

	cfg := pipelineConfig()
	filters, err := filtersFromFlags(cmd, cfg.Analysis)
	if err != nil {
		return err
	}

	store, err := rules.NewSQLiteStore(cfg.Rules.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	engine := classify.NewEngine(store, cfg.Rules, os.Stderr)

	var orchestrator *probe.Orchestrator
	var tracker *tempres.Tracker
	if filters.IncludeProbes {
		saveSamples, _ := cmd.Flags().GetBool("save-samples")
		cfg.Probe.SaveSamples = saveSamples
		if saveSamples {
			tracker, err = tempres.NewTracker(cfg.Temp, os.Stderr)
			if err != nil {
				return err
			}
		}
		client := probe.NewHTTPFetchClient(cfg.Probe)
		orchestrator = probe.NewOrchestrator(probe.NewProber(client, tracker, os.Stderr), os.Stderr)
	}

	aggregator := analyze.New(engine, orchestrator, cfg.Probe, os.Stderr)
	result, err := aggregator.RunCatalog(context.Background(), string(raw), cfg.Catalog, filters)
	if err != nil {
		return err
	}

	printInventory(result)

	if output, _ := cmd.Flags().GetString("output"); output != "" {
		if err := analyze.Export(result, output); err != nil {
			return err
		}
		fmt.Printf("Exported inventory to %s\n", output)
	}
	return nil
}

func filtersFromFlags(cmd *cobra.Command, defaults types.AnalysisConfig) (types.AnalysisFilters, error) {
	minScore, _ := cmd.Flags().GetInt("min-score")
	maxResults, _ := cmd.Flags().GetInt("max-results")
	includeProbes, _ := cmd.Flags().GetBool("probe")
	onlyAccessible, _ := cmd.Flags().GetBool("only-accessible")
	categoryList, _ := cmd.Flags().GetString("categories")

	if maxResults == 0 {
		maxResults = defaults.MaxResults
	}
	if !cmd.Flags().Changed("min-score") {
		minScore = defaults.MinRelevanceScore
	}

	filters := types.AnalysisFilters{
		MinRelevanceScore: minScore,
		MaxResults:        maxResults,
		IncludeProbes:     includeProbes,
		OnlyAccessible:    onlyAccessible,
	}
	for _, name := range strings.Split(categoryList, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		category := types.Category(name)
		if !category.Valid() {
			return filters, fmt.Errorf("unknown category %q", name)
		}
		filters.Categories = append(filters.Categories, category)
	}
	return filters, nil
}

func printInventory(result *types.AnalysisResult) {
	categories := make([]string, 0, len(result.Categorized))
	for category := range result.Categorized {
		categories = append(categories, string(category))
	}
	sort.Strings(categories)

	for _, name := range categories {
		group := result.Categorized[types.Category(name)]
		fmt.Printf("\n%s (%d)\n%s\n", name, len(group), strings.Repeat("-", len(name)+8))
		for _, s := range group {
			title := s.DisplayName
			if len(title) > 60 {
				title = title[:57] + "..."
			}
			fmt.Printf("  %-20s  %4d  %s\n", s.ID, s.RelevanceScore, title)
		}
	}

	m := result.Metrics
	fmt.Printf("\n%d series analyzed, %d categories, %d probes, %v elapsed\n",
		m.SeriesClassified, m.CategoriesFound, m.ProbesPerformed, m.Duration.Round(time.Millisecond))
}

func init() {
	analyzeCmd.Flags().String("categories", "", "allow-list of categories (comma-separated)")
	analyzeCmd.Flags().Int("min-score", 0, "drop series below this relevance score")
	analyzeCmd.Flags().Int("max-results", 0, "maximum series in the inventory, clamped to [1,1000] (0 = config default)")
	analyzeCmd.Flags().Bool("probe", false, "probe surviving series for data accessibility")
	analyzeCmd.Flags().Bool("only-accessible", false, "drop probe results whose fetch failed")
	analyzeCmd.Flags().Bool("save-samples", false, "persist fetched payloads as sample files")
	analyzeCmd.Flags().String("output", "", "export the inventory to a .yaml or .json file")

	rootCmd.AddCommand(analyzeCmd)
}
