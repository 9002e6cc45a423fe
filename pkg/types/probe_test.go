// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "testing"

func TestProbeResultUsable(t *testing.T) {
	tests := []struct {
		name   string
		result ProbeResult
		want   bool
	}{
		{name: "fetched and parsed", result: ProbeResult{AccessSucceeded: true}, want: true},
		{name: "fetched but malformed", result: ProbeResult{AccessSucceeded: true, ParseFailed: true}, want: false},
		{name: "fetch failed", result: ProbeResult{AccessSucceeded: false}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.result.Usable(); got != tt.want {
				t.Errorf("Usable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBulkRequestValidate(t *testing.T) {
	tests := []struct {
		name          string
		maxConcurrent int
		wantErr       bool
	}{
		{name: "positive cap", maxConcurrent: 5, wantErr: false},
		{name: "zero cap", maxConcurrent: 0, wantErr: true},
		{name: "negative cap", maxConcurrent: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := BulkRequest{SeriesIDs: []string{"A"}, MaxConcurrent: tt.maxConcurrent}
			err := req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCategoryValid(t *testing.T) {
	for _, c := range AllCategories() {
		if !c.Valid() {
			t.Errorf("Valid() = false for enumerated category %q", c)
		}
	}
	if Category("meteo").Valid() {
		t.Error("Valid() = true for unknown category")
	}
}
