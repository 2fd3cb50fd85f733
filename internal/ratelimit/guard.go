// Package ratelimit tracks request quotas for quota-bearing upstreams.
package ratelimit

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Policy bounds how many requests an identity may make. A zero PerDay
// means no daily ceiling.
type Policy struct {
	PerHour int
	PerDay  int
}

// DemoPolicy is the constrained policy for shared demo API keys.
var DemoPolicy = Policy{PerHour: 10, PerDay: 40}

// StandardPolicy is the default policy for regular API keys.
var StandardPolicy = Policy{PerHour: 1000}

// Decision is the outcome of a quota check.
type Decision struct {
	Allowed bool
	Reason  string
}

// Guard tracks per-identity request timestamps in a rolling window.
// Denial is never fatal: callers treat it exactly like a network failure
// and fall back to synthetic content.
type Guard struct {
	mu       sync.Mutex
	policies map[string]Policy
	history  map[string][]time.Time
	fallback Policy

	now func() time.Time // injectable for testing
}

// NewGuard creates a guard whose unknown identities get the fallback policy.
func NewGuard(fallback Policy) *Guard {
	return &Guard{
		policies: make(map[string]Policy),
		history:  make(map[string][]time.Time),
		fallback: fallback,
		now:      time.Now,
	}
}

// WithNow sets a fixed clock for testing.
func (g *Guard) WithNow(now func() time.Time) *Guard {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.now = now
	return g
}

// SetPolicy assigns a policy to an identity.
func (g *Guard) SetPolicy(identity string, p Policy) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.policies[identity] = p
}

// CanMakeRequest checks the rolling window for the identity. Entries
// older than 24h are pruned on every check.
func (g *Guard) CanMakeRequest(identity string) Decision {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	policy := g.policyFor(identity)
	window := g.prune(identity, now)

	if policy.PerDay > 0 && len(window) >= policy.PerDay {
		zap.L().Warn("ratelimit: daily quota exhausted",
			zap.String("identity", identity),
			zap.Int("per_day", policy.PerDay),
		)
		return Decision{Reason: fmt.Sprintf("daily limit of %d requests reached", policy.PerDay)}
	}

	hourAgo := now.Add(-time.Hour)
	inHour := 0
	for _, ts := range window {
		if ts.After(hourAgo) {
			inHour++
		}
	}
	if policy.PerHour > 0 && inHour >= policy.PerHour {
		zap.L().Warn("ratelimit: hourly quota exhausted",
			zap.String("identity", identity),
			zap.Int("per_hour", policy.PerHour),
		)
		return Decision{Reason: fmt.Sprintf("hourly limit of %d requests reached", policy.PerHour)}
	}

	return Decision{Allowed: true}
}

// RecordRequest appends a timestamp for the identity. Failed attempts
// count too: the upstream consumes quota regardless of outcome.
func (g *Guard) RecordRequest(identity string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	now := g.now()
	g.history[identity] = append(g.prune(identity, now), now)
}

func (g *Guard) policyFor(identity string) Policy {
	if p, ok := g.policies[identity]; ok {
		return p
	}
	return g.fallback
}

// prune drops entries older than 24h. Caller must hold the lock.
func (g *Guard) prune(identity string, now time.Time) []time.Time {
	cutoff := now.Add(-24 * time.Hour)
	window := g.history[identity]
	kept := window[:0]
	for _, ts := range window {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	g.history[identity] = kept
	return kept
}
