// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// ProbeResult records the outcome of one accessibility probe. It is terminal:
// once produced it is never mutated. AccessSucceeded reflects transport only;
// a payload that fetched but failed to parse has AccessSucceeded true and
// ParseFailed true. Consumers treat AccessSucceeded && !ParseFailed as "usable".
type ProbeResult struct {
	// SeriesID identifies the probed series.
	SeriesID string `json:"series_id" yaml:"series_id"`

	// AccessSucceeded reports whether the fetch client returned data.
	AccessSucceeded bool `json:"access_succeeded" yaml:"access_succeeded"`

	// HTTPStatus is the observed status code, or 0 when the transport
	// failed before any response was received.
	HTTPStatus int `json:"http_status,omitempty" yaml:"http_status,omitempty"`

	// SizeBytes is the payload size of a successful fetch.
	SizeBytes int `json:"size_bytes" yaml:"size_bytes"`

	// ObservationCount is the number of observation records in the payload.
	ObservationCount int `json:"observation_count" yaml:"observation_count"`

	// ParseFailed reports that the payload fetched but is not well-formed
	// observation markup.
	ParseFailed bool `json:"parse_failed" yaml:"parse_failed"`

	// SampleFilePath is where the raw payload was persisted, when requested
	// and the write succeeded.
	SampleFilePath string `json:"sample_file_path,omitempty" yaml:"sample_file_path,omitempty"`

	// ErrorMessage describes a transport or parse failure.
	ErrorMessage string `json:"error_message,omitempty" yaml:"error_message,omitempty"`
}

// Usable reports whether the probed series fetched and parsed cleanly.
func (r ProbeResult) Usable() bool {
	return r.AccessSucceeded && !r.ParseFailed
}

// BulkRequest configures one bulk probing run. SeriesIDs may contain
// duplicates; each occurrence is probed independently.
type BulkRequest struct {
	// SeriesIDs lists the series to probe, in caller order.
	SeriesIDs []string `json:"series_ids" yaml:"series_ids"`

	// MaxConcurrent caps the number of probes in flight at once.
	MaxConcurrent int `json:"max_concurrent" yaml:"max_concurrent"`

	// SaveSamples persists each successfully parsed payload via the
	// temp resource tracker.
	SaveSamples bool `json:"save_samples" yaml:"save_samples"`

	// SkipFetch produces placeholder failure results without touching the
	// fetch client, keeping the downstream result shape uniform when a
	// caller opts out of live probing.
	SkipFetch bool `json:"skip_fetch" yaml:"skip_fetch"`
}

// Validate checks the request invariants. A non-positive concurrency cap is
// the only condition that fails a bulk run before it starts.
func (r BulkRequest) Validate() error {
	if r.MaxConcurrent <= 0 {
		return fmt.Errorf("max_concurrent must be positive, got %d", r.MaxConcurrent)
	}
	return nil
}
