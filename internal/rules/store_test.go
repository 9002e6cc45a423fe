// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rules

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/catalog-engine/pkg/types"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "rules.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPutAndList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, types.CategorizationRule{
		ID:       "popolazione-base",
		Category: types.CategoryPopulation,
		Keywords: []string{" Popolazione ", "DEMOGRAFIC", "popolazione"},
		Priority: 10,
		IsActive: true,
	}))
	require.NoError(t, store.Put(ctx, types.CategorizationRule{
		ID:       "lavoro-off",
		Category: types.CategoryLabour,
		Keywords: []string{"lavoro"},
		Priority: 5,
		IsActive: false,
	}))

	all, err := store.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 2)

	// Ordered by descending priority.
	assert.Equal(t, "popolazione-base", all[0].ID)
	// Keywords come back normalized and deduplicated.
	assert.Equal(t, []string{"popolazione", "demografic"}, all[0].Keywords)
	assert.True(t, all[0].IsActive)

	active, err := store.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "popolazione-base", active[0].ID)
}

func TestPutValidation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name string
		rule types.CategorizationRule
	}{
		{"missing id", types.CategorizationRule{Category: types.CategoryHealth, Keywords: []string{"salute"}, Priority: 1}},
		{"unknown category", types.CategorizationRule{ID: "x", Category: "meteo", Keywords: []string{"pioggia"}, Priority: 1}},
		{"non-positive priority", types.CategorizationRule{ID: "x", Category: types.CategoryHealth, Keywords: []string{"salute"}, Priority: 0}},
		{"empty keywords", types.CategorizationRule{ID: "x", Category: types.CategoryHealth, Keywords: []string{" ", ""}, Priority: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, store.Put(ctx, tt.rule))
		})
	}
}

func TestPutReplacesExisting(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rule := types.CategorizationRule{
		ID:       "economia-base",
		Category: types.CategoryEconomy,
		Keywords: []string{"pil"},
		Priority: 4,
		IsActive: true,
	}
	require.NoError(t, store.Put(ctx, rule))

	rule.Priority = 9
	require.NoError(t, store.Put(ctx, rule))

	all, err := store.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 9, all[0].Priority)
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, types.CategorizationRule{
		ID: "gone", Category: types.CategoryOther, Keywords: []string{"x"}, Priority: 1, IsActive: true,
	}))
	require.NoError(t, store.Delete(ctx, "gone"))
	require.NoError(t, store.Delete(ctx, "never-existed"))

	all, err := store.List(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSeedFromYAML(t *testing.T) {
	store := newTestStore(t)

	seedPath := filepath.Join(t.TempDir(), "seed.yaml")
	seed := `- id: popolazione-base
  category: popolazione
  keywords: [popolazione, residente]
  priority: 10
  is_active: true
- id: salute-base
  category: salute
  keywords: [salute, mortalità]
  priority: 8
  is_active: true
`
	require.NoError(t, os.WriteFile(seedPath, []byte(seed), 0o644))

	stored, err := store.Seed(context.Background(), seedPath)
	require.NoError(t, err)
	assert.Equal(t, 2, stored)

	all, err := store.List(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestNormalizeKeywords(t *testing.T) {
	got := NormalizeKeywords([]string{" Lavoro ", "OCCUPAZIONE", "lavoro", "", "  "})
	assert.Equal(t, []string{"lavoro", "occupazione"}, got)
}
