package main

import (
	"time"

	"go.uber.org/zap"

	"github.com/groundwork-civic/civicfeed/internal/aggregate"
	"github.com/groundwork-civic/civicfeed/internal/enrich"
	"github.com/groundwork-civic/civicfeed/internal/feed"
	"github.com/groundwork-civic/civicfeed/internal/ratelimit"
	"github.com/groundwork-civic/civicfeed/internal/relevance"
	"github.com/groundwork-civic/civicfeed/internal/source"
	"github.com/groundwork-civic/civicfeed/internal/source/httpx"
	"github.com/groundwork-civic/civicfeed/internal/source/sqlitecache"
	anthropicpkg "github.com/groundwork-civic/civicfeed/pkg/anthropic"
)

// pipelineEnv holds the wired pipeline plus the resources the feed and
// serve commands need to release on exit.
type pipelineEnv struct {
	Feed  *feed.Service
	Civic *source.CivicAdapter

	closers []func()
}

// Close releases everything the environment holds.
func (pe *pipelineEnv) Close() {
	for _, c := range pe.closers {
		c()
	}
}

// initPipeline wires the adapters, caches, scorer, and enricher into a
// feed service. Callers should defer env.Close().
func initPipeline(mode string) (*pipelineEnv, error) {
	if err := cfg.Validate(mode); err != nil {
		return nil, err
	}

	env := &pipelineEnv{}

	client := httpx.New(httpx.Options{})
	ttl := time.Duration(cfg.Cache.TTLMinutes) * time.Minute
	civicTTL := time.Duration(cfg.Cache.CivicTTLHours) * time.Hour

	newStore := func(ttl time.Duration) source.Store {
		if cfg.Cache.Backend == "sqlite" {
			c, err := sqlitecache.Open(cfg.Cache.Path, ttl, cfg.Cache.MaxEntries)
			if err == nil {
				env.closers = append(env.closers, func() { _ = c.Close() })
				return c
			}
			zap.L().Warn("sqlite cache unavailable, using memory cache", zap.Error(err))
		}
		return source.NewMemoryCache(ttl, cfg.Cache.MaxEntries)
	}

	guard := ratelimit.NewGuard(guardPolicy())

	civic := source.NewCivicAdapter(cfg.Civic.Key, cfg.Civic.BaseURL, client, newStore(civicTTL))
	env.Civic = civic

	registry := source.NewRegistry(
		source.NewFederalAdapter(cfg.Congress.Key, cfg.Congress.BaseURL, client, newStore(ttl), guard),
		source.NewStateAdapter(cfg.OpenStates.Key, cfg.OpenStates.BaseURL, client, newStore(ttl)),
		civic,
	)

	weights := relevance.DefaultWeights()
	if cfg.Relevance.WeightsFile != "" {
		w, err := relevance.LoadWeights(cfg.Relevance.WeightsFile)
		if err != nil {
			zap.L().Warn("weights file invalid, using defaults", zap.Error(err))
		} else {
			weights = w
		}
	}

	var ai anthropicpkg.Client
	if cfg.Anthropic.Key != "" {
		ai = anthropicpkg.NewClient(cfg.Anthropic.Key)
	} else {
		zap.L().Warn("CIVICFEED_ANTHROPIC_KEY not set, impact annotations will be generic")
	}
	enricher := enrich.New(ai,
		enrich.WithModel(cfg.Anthropic.Model),
		enrich.WithConcurrency(cfg.Anthropic.MaxConcurrent),
	)

	env.Feed = feed.NewService(
		aggregate.New(registry),
		relevance.NewScorer(weights),
		enricher,
	)
	return env, nil
}

func guardPolicy() ratelimit.Policy {
	if cfg.RateLimit.Mode == "standard" {
		return ratelimit.StandardPolicy
	}
	p := ratelimit.Policy{PerHour: cfg.RateLimit.PerHour, PerDay: cfg.RateLimit.PerDay}
	if p.PerHour == 0 && p.PerDay == 0 {
		return ratelimit.DemoPolicy
	}
	return p
}
