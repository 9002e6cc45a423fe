// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rules persists categorization rules in a SQLite database.
// See docs/ARCHITECTURE § Rule Store.
package rules

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/catalog-engine/pkg/types"
)

// Store serves categorization rules to the classification engine. The
// production implementation is SQLite-backed; tests substitute in-memory
// fakes. List may fail when the backing store is unavailable; the engine
// recovers with its fallback set.
type Store interface {
	List(ctx context.Context, activeOnly bool) ([]types.CategorizationRule, error)
}

// SQLiteStore manages the rule database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the rule database at path, creating the
// parent directory and schema as needed.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating rules directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening rule database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS rules (
		id TEXT PRIMARY KEY,
		category TEXT NOT NULL,
		keywords TEXT NOT NULL,
		priority INTEGER NOT NULL,
		is_active INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// List returns the stored rules ordered by descending priority, then id.
// With activeOnly set, inactive rules are excluded.
func (s *SQLiteStore) List(ctx context.Context, activeOnly bool) ([]types.CategorizationRule, error) {
	query := `SELECT id, category, keywords, priority, is_active FROM rules`
	if activeOnly {
		query += ` WHERE is_active = 1`
	}
	query += ` ORDER BY priority DESC, id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying rules: %w", err)
	}
	defer rows.Close()

	var out []types.CategorizationRule
	for rows.Next() {
		var r types.CategorizationRule
		var keywords string
		var active int
		if err := rows.Scan(&r.ID, &r.Category, &keywords, &r.Priority, &active); err != nil {
			return nil, fmt.Errorf("scanning rule: %w", err)
		}
		r.Keywords = splitKeywords(keywords)
		r.IsActive = active != 0
		out = append(out, r)
	}
	return out, rows.Err()
}

// Put inserts or replaces a rule. Keywords are normalized (lowercased,
// trimmed, deduplicated) before storage; the rule must carry an id, a valid
// category, and a positive priority.
func (s *SQLiteStore) Put(ctx context.Context, r types.CategorizationRule) error {
	if r.ID == "" {
		return fmt.Errorf("rule id is required")
	}
	if !r.Category.Valid() {
		return fmt.Errorf("unknown category %q", r.Category)
	}
	if r.Priority <= 0 {
		return fmt.Errorf("priority must be positive, got %d", r.Priority)
	}

	keywords := NormalizeKeywords(r.Keywords)
	if len(keywords) == 0 {
		return fmt.Errorf("rule %s has no usable keywords", r.ID)
	}

	active := 0
	if r.IsActive {
		active = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO rules (id, category, keywords, priority, is_active)
		 VALUES (?, ?, ?, ?, ?)`,
		r.ID, string(r.Category), strings.Join(keywords, ","), r.Priority, active)
	if err != nil {
		return fmt.Errorf("storing rule %s: %w", r.ID, err)
	}
	return nil
}

// Delete removes a rule by id. Removing an unknown id is not an error.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM rules WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting rule %s: %w", id, err)
	}
	return nil
}

// Seed loads rules from a YAML file and stores each one, returning the
// number stored. The file holds a list of CategorizationRule records.
func (s *SQLiteStore) Seed(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading seed file: %w", err)
	}

	var seed []types.CategorizationRule
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return 0, fmt.Errorf("parsing seed file: %w", err)
	}

	stored := 0
	for _, r := range seed {
		if err := s.Put(ctx, r); err != nil {
			return stored, fmt.Errorf("seeding rule %s: %w", r.ID, err)
		}
		stored++
	}
	return stored, nil
}

// NormalizeKeywords lowercases and trims terms, dropping empties and
// duplicates while preserving first-seen order.
func NormalizeKeywords(keywords []string) []string {
	seen := make(map[string]bool, len(keywords))
	var out []string
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		out = append(out, kw)
	}
	return out
}

func splitKeywords(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, ",")
}
