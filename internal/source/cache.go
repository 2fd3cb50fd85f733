package source

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/groundwork-civic/civicfeed/internal/model"
)

// Store is the cache backend an adapter keeps its normalized records in.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the cached records for key if present and unexpired.
	Get(key string) ([]model.ContentRecord, bool)
	// Put stores records under key with the current time.
	Put(key string, records []model.ContentRecord)
	// Purge drops all entries.
	Purge()
}

// CacheKey returns a deterministic key from the source name and query
// parts, hashed so upstream query strings never leak into log fields.
func CacheKey(sourceName string, parts ...string) string {
	normalized := sourceName
	for _, p := range parts {
		normalized += "|" + strings.ToLower(strings.TrimSpace(p))
	}
	h := sha256.Sum256([]byte(normalized))
	return fmt.Sprintf("%x", h)
}

type memEntry struct {
	records  []model.ContentRecord
	storedAt time.Time
}

// MemoryCache is the default in-process Store: TTL expiry plus an
// evict-oldest policy once the entry count passes a cap.
type MemoryCache struct {
	mu         sync.Mutex
	entries    map[string]memEntry
	ttl        time.Duration
	maxEntries int

	now func() time.Time // injectable for testing
}

// NewMemoryCache creates a cache with the given TTL and entry cap.
func NewMemoryCache(ttl time.Duration, maxEntries int) *MemoryCache {
	if maxEntries <= 0 {
		maxEntries = 256
	}
	return &MemoryCache{
		entries:    make(map[string]memEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// WithNow sets a fixed clock for testing.
func (c *MemoryCache) WithNow(now func() time.Time) *MemoryCache {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
	return c
}

// Get returns the records for key when present and within TTL.
func (c *MemoryCache) Get(key string) ([]model.ContentRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.storedAt) >= c.ttl {
		delete(c.entries, key)
		return nil, false
	}

	keyPrefix := key
	if len(keyPrefix) > 12 {
		keyPrefix = keyPrefix[:12]
	}
	zap.L().Debug("source cache hit", zap.String("key", keyPrefix), zap.Int("records", len(e.records)))
	return e.records, true
}

// Put stores records under key, evicting the oldest entry when the cap
// is exceeded.
func (c *MemoryCache) Put(key string, records []model.ContentRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = memEntry{records: records, storedAt: c.now()}

	for len(c.entries) > c.maxEntries {
		oldestKey := ""
		var oldest time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.storedAt.Before(oldest) {
				oldestKey = k
				oldest = e.storedAt
			}
		}
		delete(c.entries, oldestKey)
	}
}

// Purge drops every entry.
func (c *MemoryCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]memEntry)
}

// Len returns the current entry count.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
