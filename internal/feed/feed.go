// Package feed is the orchestration layer: it parses the user's
// location, collects records from every source, scores them against the
// profile, enriches them with personalized impact, and returns a ranked
// page.
package feed

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/groundwork-civic/civicfeed/internal/aggregate"
	"github.com/groundwork-civic/civicfeed/internal/enrich"
	"github.com/groundwork-civic/civicfeed/internal/location"
	"github.com/groundwork-civic/civicfeed/internal/model"
	"github.com/groundwork-civic/civicfeed/internal/rank"
	"github.com/groundwork-civic/civicfeed/internal/relevance"
	"github.com/groundwork-civic/civicfeed/internal/source"
)

const defaultLimit = 10

// Filters narrow and page the feed.
type Filters struct {
	Categories []model.Category `json:"categories,omitempty"`
	Scopes     []model.Scope    `json:"scopes,omitempty"`
	Limit      int              `json:"limit,omitempty"`
}

// Result is one page of the personalized feed.
type Result struct {
	Items     []model.ContentRecord `json:"items"`
	HasMore   bool                  `json:"has_more"`
	Remaining int                   `json:"remaining"`
	Location  location.Parsed       `json:"location"`
}

// Service runs the full pipeline.
type Service struct {
	agg      *aggregate.Aggregator
	scorer   *relevance.Scorer
	enricher *enrich.Enricher
	window   *rank.Window

	mu           sync.Mutex
	forceRefresh bool
}

// NewService wires the pipeline stages together.
func NewService(agg *aggregate.Aggregator, scorer *relevance.Scorer, enricher *enrich.Enricher) *Service {
	return &Service{agg: agg, scorer: scorer, enricher: enricher, window: rank.NewWindow()}
}

// Refresh makes the next GetPersonalizedFeed call bypass the source
// caches and hit the upstreams again. It also resets the pagination
// window, since the refreshed list is a fresh feed load.
func (s *Service) Refresh() {
	s.mu.Lock()
	s.forceRefresh = true
	s.mu.Unlock()
	s.window.Reset()
}

// GetPersonalizedFeed runs the pipeline end to end for one profile. A
// nil profile yields an unpersonalized feed in aggregation order.
func (s *Service) GetPersonalizedFeed(ctx context.Context, profile *model.UserProfile, f Filters) (*Result, error) {
	started := time.Now()

	var raw string
	if profile != nil {
		raw = profile.Location
	}
	loc := location.Parse(raw)

	s.mu.Lock()
	bypass := s.forceRefresh
	s.forceRefresh = false
	s.mu.Unlock()

	records := s.agg.Collect(ctx, source.Query{
		Location:    loc,
		Categories:  f.Categories,
		Limit:       f.Limit,
		BypassCache: bypass,
	})
	records = applyFilters(records, f)

	s.scorer.ScoreAll(records, profile, loc)

	// Every record needs its impact annotation before sorting; the
	// comparator's tie-break reads the financial effect.
	s.enricher.EnrichAll(ctx, records, profile)
	rank.Sort(records)

	limit := f.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	page := s.window.Grow(records, limit)

	zap.L().Info("feed: built",
		zap.String("location", loc.City+" "+loc.StateCode),
		zap.Int("collected", len(records)),
		zap.Int("returned", len(page.Items)),
		zap.Bool("refreshed", bypass),
		zap.Duration("took", time.Since(started)),
	)

	return &Result{
		Items:     page.Items,
		HasMore:   page.HasMore,
		Remaining: page.Remaining,
		Location:  loc,
	}, nil
}

// applyFilters keeps records matching the category and scope filters.
// Empty filters keep everything.
func applyFilters(records []model.ContentRecord, f Filters) []model.ContentRecord {
	if len(f.Categories) == 0 && len(f.Scopes) == 0 {
		return records
	}

	kept := records[:0:0]
	for _, r := range records {
		if len(f.Categories) > 0 && !containsCategory(f.Categories, r.Category) {
			continue
		}
		if len(f.Scopes) > 0 && !containsScope(f.Scopes, r.Scope) {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

func containsCategory(cats []model.Category, c model.Category) bool {
	for _, x := range cats {
		if x == c {
			return true
		}
	}
	return false
}

func containsScope(scopes []model.Scope, s model.Scope) bool {
	for _, x := range scopes {
		if x == s {
			return true
		}
	}
	return false
}
