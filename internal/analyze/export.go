// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/catalog-engine/pkg/types"
)

// Export writes the inventory to path; the extension selects the format
// (.yaml/.yml or .json). The in-memory AnalysisResult stays the pipeline
// contract; serialization belongs to this CLI-facing boundary.
func Export(result *types.AnalysisResult, path string) error {
	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(result)
	case ".json":
		data, err = json.MarshalIndent(result, "", "  ")
	default:
		return fmt.Errorf("unsupported export format %q: use .yaml or .json", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("marshaling inventory: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating export directory: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}
