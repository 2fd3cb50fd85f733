// Package aggregate fans out across the registered source adapters and
// merges their results into one ordered, deduplicated record list.
package aggregate

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/groundwork-civic/civicfeed/internal/model"
	"github.com/groundwork-civic/civicfeed/internal/source"
)

// Aggregator runs every adapter concurrently and waits for all of them.
// A slow or panicking adapter costs its own slot only.
type Aggregator struct {
	registry *source.Registry
}

// New creates an aggregator over the registry.
func New(registry *source.Registry) *Aggregator {
	return &Aggregator{registry: registry}
}

// Collect fetches from all adapters concurrently and returns the merged
// records in registry priority order (federal, then state, then local).
// Duplicate IDs keep their first position but carry the last-seen
// record's fields.
func (a *Aggregator) Collect(ctx context.Context, q source.Query) []model.ContentRecord {
	runID := uuid.NewString()
	adapters := a.registry.All()
	started := time.Now()

	results := make([][]model.ContentRecord, len(adapters))

	g, gctx := errgroup.WithContext(ctx)
	for i, adapter := range adapters {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					zap.L().Error("aggregate: adapter panicked",
						zap.String("run_id", runID),
						zap.String("adapter", adapter.Name()),
						zap.Any("panic", r),
					)
				}
			}()
			results[i] = adapter.Fetch(gctx, q)
			return nil
		})
	}
	_ = g.Wait()

	merged := merge(results)
	zap.L().Info("aggregate: collected records",
		zap.String("run_id", runID),
		zap.Int("adapters", len(adapters)),
		zap.Int("records", len(merged)),
		zap.Duration("took", time.Since(started)),
	)
	return merged
}

// merge concatenates adapter results in priority order, deduplicating by
// record ID. The first occurrence fixes the position; later occurrences
// replace the record in place.
func merge(results [][]model.ContentRecord) []model.ContentRecord {
	var merged []model.ContentRecord
	index := make(map[string]int)

	for _, records := range results {
		for _, r := range records {
			if i, seen := index[r.ID]; seen {
				merged[i] = r
				continue
			}
			index[r.ID] = len(merged)
			merged = append(merged, r)
		}
	}
	return merged
}
