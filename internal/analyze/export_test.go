// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/catalog-engine/pkg/types"
)

func sampleResult() *types.AnalysisResult {
	return &types.AnalysisResult{
		TotalAnalyzed: 2,
		Categorized: map[types.Category][]types.Series{
			types.CategoryPopulation: {
				{ID: "DCIS_POPRES1", DisplayName: "Popolazione residente", Category: types.CategoryPopulation, RelevanceScore: 20},
			},
		},
		ProbeResults: []types.ProbeResult{
			{SeriesID: "DCIS_POPRES1", AccessSucceeded: true, HTTPStatus: 200, ObservationCount: 3},
		},
		Metrics:   types.PerformanceMetrics{SeriesClassified: 2, CategoriesFound: 1, ProbesPerformed: 1},
		Timestamp: time.Now().UTC(),
	}
}

func TestExportYAMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "inventory.yaml")
	if err := Export(sampleResult(), path); err != nil {
		t.Fatalf("Export returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var decoded types.AnalysisResult
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("exported YAML does not parse: %v", err)
	}
	if decoded.TotalAnalyzed != 2 {
		t.Errorf("TotalAnalyzed = %d, want 2", decoded.TotalAnalyzed)
	}
	if len(decoded.Categorized[types.CategoryPopulation]) != 1 {
		t.Error("population group lost in export")
	}
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")
	if err := Export(sampleResult(), path); err != nil {
		t.Fatalf("Export returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("exported JSON does not parse: %v", err)
	}
	if decoded["total_analyzed"].(float64) != 2 {
		t.Errorf("total_analyzed = %v, want 2", decoded["total_analyzed"])
	}
}

func TestExportUnsupportedFormat(t *testing.T) {
	if err := Export(sampleResult(), filepath.Join(t.TempDir(), "inventory.csv")); err == nil {
		t.Fatal("Export to .csv succeeded, want format error")
	}
}
