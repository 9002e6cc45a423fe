// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "catalog-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// CatalogConfig holds settings for the catalog parsing stage.
type CatalogConfig struct {
	// LocalLang is the language tag treated as the primary name
	// (default "it").
	LocalLang string `json:"local_lang" yaml:"local_lang"`

	// AltLang is the language tag treated as the alternate name
	// (default "en").
	AltLang string `json:"alt_lang" yaml:"alt_lang"`
}

// ApplyDefaults fills unset language tags.
func (c CatalogConfig) ApplyDefaults() CatalogConfig {
	if c.LocalLang == "" {
		c.LocalLang = "it"
	}
	if c.AltLang == "" {
		c.AltLang = "en"
	}
	return c
}

// RulesConfig holds settings for the categorization rule store and cache.
type RulesConfig struct {
	// DBPath is the SQLite database file holding the rule set
	// (e.g. "rules/rules.db").
	DBPath string `json:"db_path" yaml:"db_path"`

	// CacheTTL is how long the engine serves cached rules before
	// re-reading the store (default 30m).
	CacheTTL time.Duration `json:"cache_ttl" yaml:"cache_ttl"`
}

// ProbeConfig holds settings for the accessibility probing stage.
type ProbeConfig struct {
	HTTPConfig `yaml:",inline"`

	// DataEndpoint is the base URL of the SDMX data API
	// (series data is fetched from <endpoint>/data/<id>).
	DataEndpoint string `json:"data_endpoint" yaml:"data_endpoint"`

	// APIKey is an optional subscription key sent with each fetch.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the retry budget for throttled responses (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// MaxConcurrent caps in-flight probes during bulk runs (default 5).
	MaxConcurrent int `json:"max_concurrent" yaml:"max_concurrent"`

	// SaveSamples persists successfully parsed payloads via the tracker.
	SaveSamples bool `json:"save_samples" yaml:"save_samples"`
}

// AnalysisConfig holds default filter settings for analysis runs. CLI flags
// override these per invocation.
type AnalysisConfig struct {
	// MaxResults is the default inventory size bound (default 100).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// MinRelevanceScore is the default score threshold (default 0).
	MinRelevanceScore int `json:"min_relevance_score" yaml:"min_relevance_score"`
}

// TempConfig holds settings for the ephemeral resource tracker.
type TempConfig struct {
	// BaseDir is the root under which tracked files live
	// (e.g. "samples"). Empty means the OS temp directory.
	BaseDir string `json:"base_dir" yaml:"base_dir"`

	// MaxAgeHours is the default age threshold for sweeps (default 24).
	MaxAgeHours int `json:"max_age_hours" yaml:"max_age_hours"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Catalog  CatalogConfig  `json:"catalog" yaml:"catalog"`
	Rules    RulesConfig    `json:"rules" yaml:"rules"`
	Probe    ProbeConfig    `json:"probe" yaml:"probe"`
	Analysis AnalysisConfig `json:"analysis" yaml:"analysis"`
	Temp     TempConfig     `json:"temp" yaml:"temp"`
}
