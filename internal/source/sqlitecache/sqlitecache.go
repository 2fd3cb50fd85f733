// Package sqlitecache is a persistent source.Store backed by SQLite,
// for keeping fetched content across process restarts. The modernc
// driver is pure Go, so no cgo toolchain is needed.
package sqlitecache

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/groundwork-civic/civicfeed/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS cache_entries (
	key       TEXT PRIMARY KEY,
	payload   BLOB NOT NULL,
	stored_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_cache_entries_stored_at ON cache_entries (stored_at);
`

// Cache implements source.Store on a local SQLite file. Get and Put
// swallow storage errors after logging them; a broken cache degrades to
// a cache miss, never to a pipeline failure.
type Cache struct {
	db         *sql.DB
	ttl        time.Duration
	maxEntries int

	now func() time.Time
}

// Open creates or opens the cache database at path.
func Open(path string, ttl time.Duration, maxEntries int) (*Cache, error) {
	if maxEntries <= 0 {
		maxEntries = 256
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrap(err, "sqlitecache: open")
	}
	// The modernc driver serializes writers; a single connection avoids
	// SQLITE_BUSY under concurrent adapter fetches.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, eris.Wrap(err, "sqlitecache: create schema")
	}

	return &Cache{db: db, ttl: ttl, maxEntries: maxEntries, now: time.Now}, nil
}

// WithNow sets a fixed clock for testing.
func (c *Cache) WithNow(now func() time.Time) *Cache {
	c.now = now
	return c
}

// Close releases the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the records for key when present and within TTL.
func (c *Cache) Get(key string) ([]model.ContentRecord, bool) {
	var payload []byte
	var storedAt int64
	err := c.db.QueryRow(
		`SELECT payload, stored_at FROM cache_entries WHERE key = ?`, key,
	).Scan(&payload, &storedAt)
	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		zap.L().Warn("sqlitecache: read failed", zap.Error(err))
		return nil, false
	}

	if c.now().Sub(time.Unix(storedAt, 0)) >= c.ttl {
		if _, err := c.db.Exec(`DELETE FROM cache_entries WHERE key = ?`, key); err != nil {
			zap.L().Warn("sqlitecache: expiry delete failed", zap.Error(err))
		}
		return nil, false
	}

	var records []model.ContentRecord
	if err := json.Unmarshal(payload, &records); err != nil {
		zap.L().Warn("sqlitecache: corrupt payload", zap.Error(err))
		return nil, false
	}
	return records, true
}

// Put stores records under key, evicting the oldest rows once the
// entry count passes the cap.
func (c *Cache) Put(key string, records []model.ContentRecord) {
	payload, err := json.Marshal(records)
	if err != nil {
		zap.L().Warn("sqlitecache: marshal failed", zap.Error(err))
		return
	}

	_, err = c.db.Exec(
		`INSERT INTO cache_entries (key, payload, stored_at) VALUES (?, ?, ?)
		 ON CONFLICT (key) DO UPDATE SET payload = excluded.payload, stored_at = excluded.stored_at`,
		key, payload, c.now().Unix(),
	)
	if err != nil {
		zap.L().Warn("sqlitecache: write failed", zap.Error(err))
		return
	}

	_, err = c.db.Exec(
		`DELETE FROM cache_entries WHERE key IN (
			SELECT key FROM cache_entries ORDER BY stored_at DESC LIMIT -1 OFFSET ?
		 )`, c.maxEntries,
	)
	if err != nil {
		zap.L().Warn("sqlitecache: eviction failed", zap.Error(err))
	}
}

// Purge drops every entry.
func (c *Cache) Purge() {
	if _, err := c.db.Exec(`DELETE FROM cache_entries`); err != nil {
		zap.L().Warn("sqlitecache: purge failed", zap.Error(err))
	}
}

// Len returns the current entry count.
func (c *Cache) Len() int {
	var n int
	if err := c.db.QueryRow(`SELECT COUNT(*) FROM cache_entries`).Scan(&n); err != nil {
		return 0
	}
	return n
}
