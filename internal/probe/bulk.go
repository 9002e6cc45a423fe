// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package probe

import (
	"context"
	"fmt"
	"io"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/pdiddy/catalog-engine/pkg/types"
)

// Orchestrator fans one probe per series id out under a concurrency cap.
type Orchestrator struct {
	prober *Prober
	w      io.Writer
}

// NewOrchestrator builds an orchestrator over prober. Status lines go to w.
func NewOrchestrator(prober *Prober, w io.Writer) *Orchestrator {
	if w == nil {
		w = io.Discard
	}
	return &Orchestrator{prober: prober, w: w}
}

// RunBulk probes every id in the request, duplicates included, admitting
// goroutines through a weighted semaphore sized to MaxConcurrent. Every
// task runs to completion: a failed probe becomes a failure row and never
// cancels its siblings. Results come back one per input id with no
// ordering guarantee. The only error is request validation.
func (o *Orchestrator) RunBulk(ctx context.Context, req types.BulkRequest) ([]types.ProbeResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.SkipFetch {
		return placeholders(req.SeriesIDs), nil
	}

	sem := semaphore.NewWeighted(int64(req.MaxConcurrent))
	results := make([]types.ProbeResult, len(req.SeriesIDs))
	var wg sync.WaitGroup

	for i, id := range req.SeriesIDs {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			if err := sem.Acquire(ctx, 1); err != nil {
				results[i] = types.ProbeResult{
					SeriesID:     id,
					ErrorMessage: fmt.Sprintf("not probed: %v", err),
				}
				return
			}
			defer sem.Release(1)
			results[i] = o.prober.Probe(ctx, id, req.SaveSamples)
		}(i, id)
	}
	wg.Wait()

	o.summarize(results)
	return results, nil
}

// placeholders keeps the downstream result shape uniform when probing is
// disabled: one failure row per id, fetch client untouched.
func placeholders(ids []string) []types.ProbeResult {
	results := make([]types.ProbeResult, len(ids))
	for i, id := range ids {
		results[i] = types.ProbeResult{
			SeriesID:     id,
			ErrorMessage: "probing disabled",
		}
	}
	return results
}

func (o *Orchestrator) summarize(results []types.ProbeResult) {
	accessible, usable := 0, 0
	for _, r := range results {
		if r.AccessSucceeded {
			accessible++
		}
		if r.Usable() {
			usable++
		}
	}
	fmt.Fprintf(o.w, "Probed %d series: %d accessible, %d usable\n",
		len(results), accessible, usable)
}
