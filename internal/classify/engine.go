// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify scores catalog series against a prioritized rule set.
// See docs/ARCHITECTURE § Categorization.
package classify

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/pdiddy/catalog-engine/internal/rules"
	"github.com/pdiddy/catalog-engine/pkg/types"
)

// DefaultCacheTTL is how long a fetched rule set is served before the
// store is consulted again.
const DefaultCacheTTL = 30 * time.Minute

// Classification is the outcome of scoring one series.
type Classification struct {
	Category        types.Category
	Score           int
	MatchedKeywords []string
}

// Engine classifies series using rules from a store, behind a TTL
// read-through cache. A store outage is absorbed: the engine logs a
// degraded warning and serves the hardcoded fallback set, trading
// freshness for availability. Safe for concurrent use.
type Engine struct {
	store rules.Store
	ttl   time.Duration
	w     io.Writer

	// now is replaced in tests to step through TTL windows.
	now func() time.Time

	mu        sync.Mutex
	cached    []types.CategorizationRule
	fetchedAt time.Time
}

// NewEngine builds an engine over store. Degraded-path warnings go to w.
func NewEngine(store rules.Store, cfg types.RulesConfig, w io.Writer) *Engine {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if w == nil {
		w = io.Discard
	}
	return &Engine{
		store: store,
		ttl:   ttl,
		w:     w,
		now:   time.Now,
	}
}

// Rules returns the active rule set: the cache when younger than the TTL,
// otherwise a fresh read from the store. On store failure it returns the
// fallback set without caching it, so the store is retried on the next call.
func (e *Engine) Rules(ctx context.Context) []types.CategorizationRule {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.fetchedAt.IsZero() && e.now().Sub(e.fetchedAt) < e.ttl {
		return e.cached
	}

	fetched, err := e.store.List(ctx, true)
	if err != nil {
		fmt.Fprintf(e.w, "warning: rule store unavailable, using fallback rules: %v\n", err)
		return FallbackRules()
	}

	e.cached = fetched
	e.fetchedAt = e.now()
	return e.cached
}

// ResetCache discards the cached rule set so the next call hits the store.
func (e *Engine) ResetCache() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cached = nil
	e.fetchedAt = time.Time{}
}

// Classify scores the series against every active rule and returns the
// best-scoring category. Deterministic for a fixed rule set: the strictly
// highest score wins and the first-seen rule keeps ties. When no rule
// scores above zero the catch-all category is assigned with score 0.
func (e *Engine) Classify(ctx context.Context, s types.Series) Classification {
	text := strings.ToLower(s.DisplayName + " " + s.Description)

	best := Classification{Category: types.CategoryOther}
	for _, rule := range e.Rules(ctx) {
		if !rule.IsActive {
			continue
		}
		matched := matchKeywords(text, rule.Keywords)
		score := rule.Priority * len(matched)
		if score > best.Score {
			best = Classification{
				Category:        rule.Category,
				Score:           score,
				MatchedKeywords: matched,
			}
		}
	}
	return best
}

// matchKeywords returns the distinct normalized keywords found as
// substrings of text, in rule order.
func matchKeywords(text string, keywords []string) []string {
	var matched []string
	for _, kw := range rules.NormalizeKeywords(keywords) {
		if strings.Contains(text, kw) {
			matched = append(matched, kw)
		}
	}
	return matched
}
