// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the catalog-engine CLI.
// See docs/ARCHITECTURE § Pipeline Interface, § Project Structure.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/catalog-engine/internal/secrets"
	"github.com/pdiddy/catalog-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the catalog-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "catalog-engine",
	Short: "Analyze a statistical data catalog: classify series and probe accessibility",
	Long: `catalog-engine ingests an SDMX-style catalog of statistical data series,
classifies each series into a topical category with a data-driven rule set,
and probes series for real-world accessibility and observation counts.

Each stage is a subcommand: analyze runs the full pipeline, probe checks
individual series, rules manages the categorization rule store, and sweep
cleans up persisted sample files.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./catalog-engine.yaml or ~/.config/catalog-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("catalog-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "catalog-engine"))
		}
	}

	viper.SetEnvPrefix("CATALOG_ENGINE")
	viper.AutomaticEnv()

	viper.SetDefault("probe.timeout", 30*time.Second)
	viper.SetDefault("probe.user_agent", "catalog-engine/"+version)
	viper.SetDefault("probe.max_retries", 3)
	viper.SetDefault("probe.max_concurrent", 5)
	viper.SetDefault("analysis.max_results", types.DefaultAnalysisResults)
	viper.SetDefault("analysis.min_score", 0)
	viper.SetDefault("rules.db_path", filepath.Join("rules", "rules.db"))
	viper.SetDefault("rules.cache_ttl", 30*time.Minute)
	viper.SetDefault("catalog.local_lang", "it")
	viper.SetDefault("catalog.alt_lang", "en")
	viper.SetDefault("temp.base_dir", "samples")
	viper.SetDefault("temp.max_age_hours", 24)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// pipelineConfig assembles the stage configurations from viper, merging
// the API key from loaded secrets when the config leaves it empty.
func pipelineConfig() types.PipelineConfig {
	cfg := types.PipelineConfig{
		Catalog: types.CatalogConfig{
			LocalLang: viper.GetString("catalog.local_lang"),
			AltLang:   viper.GetString("catalog.alt_lang"),
		},
		Rules: types.RulesConfig{
			DBPath:   viper.GetString("rules.db_path"),
			CacheTTL: viper.GetDuration("rules.cache_ttl"),
		},
		Probe: types.ProbeConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("probe.timeout"),
				UserAgent: viper.GetString("probe.user_agent"),
			},
			DataEndpoint:  viper.GetString("probe.data_endpoint"),
			APIKey:        viper.GetString("probe.api_key"),
			MaxRetries:    viper.GetInt("probe.max_retries"),
			MaxConcurrent: viper.GetInt("probe.max_concurrent"),
		},
		Analysis: types.AnalysisConfig{
			MaxResults:        viper.GetInt("analysis.max_results"),
			MinRelevanceScore: viper.GetInt("analysis.min_score"),
		},
		Temp: types.TempConfig{
			BaseDir:     viper.GetString("temp.base_dir"),
			MaxAgeHours: viper.GetInt("temp.max_age_hours"),
		},
	}
	cfg.Probe.APIKey = secrets.Get(loadedSecrets, "sdmx-api-key", cfg.Probe.APIKey)
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
