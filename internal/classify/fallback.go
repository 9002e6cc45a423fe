// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import "github.com/pdiddy/catalog-engine/pkg/types"

// FallbackRules returns the hardcoded rule set used when the rule store is
// unreachable. It mirrors the seed set shipped with the project; keeping a
// copy compiled in lets classification keep working through a store outage.
func FallbackRules() []types.CategorizationRule {
	return []types.CategorizationRule{
		{
			ID:       "popolazione-base",
			Category: types.CategoryPopulation,
			Keywords: []string{"popolazione", "demografic", "residente", "natalità", "famiglie", "stranieri"},
			Priority: 10,
			IsActive: true,
		},
		{
			ID:       "economia-base",
			Category: types.CategoryEconomy,
			Keywords: []string{"economia", "pil", "prezzi", "inflazione", "imprese", "commercio", "consumi"},
			Priority: 9,
			IsActive: true,
		},
		{
			ID:       "lavoro-base",
			Category: types.CategoryLabour,
			Keywords: []string{"lavoro", "occupazione", "disoccupazione", "occupati", "retribuzioni"},
			Priority: 9,
			IsActive: true,
		},
		{
			ID:       "salute-base",
			Category: types.CategoryHealth,
			Keywords: []string{"salute", "sanità", "mortalità", "ospedal", "malattie"},
			Priority: 8,
			IsActive: true,
		},
		{
			ID:       "istruzione-base",
			Category: types.CategoryEducation,
			Keywords: []string{"istruzione", "scuola", "università", "studenti", "formazione"},
			Priority: 8,
			IsActive: true,
		},
		{
			ID:       "territorio-base",
			Category: types.CategoryTerritory,
			Keywords: []string{"territorio", "ambiente", "comuni", "regioni", "abitazioni"},
			Priority: 7,
			IsActive: true,
		},
	}
}
