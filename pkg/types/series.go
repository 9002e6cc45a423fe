// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the catalog-engine pipeline.
// See docs/ARCHITECTURE § Pipeline Interface, § Data Structures.
package types

import "time"

// Category is the topical bucket a catalog series is classified into.
// The set is closed; CategoryOther is the catch-all for series no rule matches.
type Category string

const (
	CategoryPopulation Category = "popolazione"
	CategoryEconomy    Category = "economia"
	CategoryLabour     Category = "lavoro"
	CategoryTerritory  Category = "territorio"
	CategoryHealth     Category = "salute"
	CategoryEducation  Category = "istruzione"
	CategoryOther      Category = "altro"
)

// AllCategories returns the closed category enumeration in display order.
// CategoryOther is last so catch-all entries sort after topical ones.
func AllCategories() []Category {
	return []Category{
		CategoryPopulation,
		CategoryEconomy,
		CategoryLabour,
		CategoryTerritory,
		CategoryHealth,
		CategoryEducation,
		CategoryOther,
	}
}

// Valid reports whether c is a member of the closed category enumeration.
func (c Category) Valid() bool {
	for _, known := range AllCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// Series is one catalog entry describing a distinct statistical dataset.
// Category and RelevanceScore are zero until the classification step of a
// run sets them; they are set exactly once per run.
type Series struct {
	// ID is the stable dataflow identifier from the catalog (e.g. "DCIS_POPRES1").
	ID string `json:"id" yaml:"id"`

	// NameLocal is the name tagged with the catalog's primary language.
	NameLocal string `json:"name_local" yaml:"name_local"`

	// NameAlt is the name tagged with the alternate language, when present.
	NameAlt string `json:"name_alt,omitempty" yaml:"name_alt,omitempty"`

	// Description is the catalog description, or empty when absent.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// DisplayName is the name used for classification and presentation:
	// local name, else alternate name, else the identifier itself.
	DisplayName string `json:"display_name" yaml:"display_name"`

	// Category is empty until the series has been classified.
	Category Category `json:"category,omitempty" yaml:"category,omitempty"`

	// RelevanceScore is the rule-derived classification score (non-negative).
	RelevanceScore int `json:"relevance_score" yaml:"relevance_score"`

	// CreatedAt records when this record was produced by the parser.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// CategorizationRule maps a keyword set to a category with a priority weight.
// Keywords are stored lowercase and trimmed; matching is substring-based over
// the normalized series text. Inactive rules are skipped during scoring.
type CategorizationRule struct {
	// ID uniquely names the rule (e.g. "popolazione-base").
	ID string `json:"id" yaml:"id"`

	// Category is the bucket this rule votes for.
	Category Category `json:"category" yaml:"category"`

	// Keywords is the set of lowercase, trimmed match terms.
	Keywords []string `json:"keywords" yaml:"keywords"`

	// Priority is the positive weight multiplied by the distinct-match count.
	Priority int `json:"priority" yaml:"priority"`

	// IsActive disables the rule without deleting it when false.
	IsActive bool `json:"is_active" yaml:"is_active"`
}
