// internal/wordcache/cache.go
//
// SQLite-backed cache of acquired candidate pools.
//
// Responsibilities:
//   - Serve fresh cached pools for (language, length) without a network call.
//   - Delegate to the upstream source on miss or staleness, storing results.
//
// Policy:
//   • Upstream errors pass through untouched; a cached row never masks an
//     acquisition failure, and a failure never serves stale data.
//   • Empty pools are not cached, so a thin provider response does not pin
//     "no candidates" to disk.
//   • Cache read/write failures degrade to upstream fetches with a warning;
//     the cache adds no failure modes of its own.

package wordcache

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/palabreo/palabreo/internal/game"
	"github.com/palabreo/palabreo/internal/words"
)

//go:embed schema.sql
var schema string

// Cache decorates a game.Source with (language, length)-keyed persistence.
type Cache struct {
	db       *sql.DB
	upstream game.Source
	language string
	ttl      time.Duration
}

// Open creates or opens the cache database at path and wraps upstream.
func Open(path string, upstream game.Source, language string, ttl time.Duration) (*Cache, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, fmt.Errorf("wordcache: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("wordcache: apply schema: %w", err)
	}
	return &Cache{db: db, upstream: upstream, language: language, ttl: ttl}, nil
}

// openDB opens (and creates if missing) a SQLite database file.
//
// - Ensures the parent directory exists for relative paths (./data/pools.db).
// - Configures busy timeout and WAL journaling mode.
func openDB(dsn string) (*sql.DB, error) {
	if dir := filepath.Dir(dsn); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// Close releases the underlying database.
func (c *Cache) Close() error { return c.db.Close() }

// Candidates implements game.Source. Fresh rows are served locally; a miss
// or stale row delegates upstream and stores the new pool.
func (c *Cache) Candidates(ctx context.Context, length int) (*words.Pool, error) {
	if pool, ok := c.lookup(ctx, length); ok {
		return pool, nil
	}

	pool, err := c.upstream.Candidates(ctx, length)
	if err != nil {
		return nil, err
	}
	if pool != nil && pool.Len() > 0 {
		c.store(ctx, length, pool)
	}
	return pool, nil
}

// lookup returns the cached pool when a row exists and is within the TTL.
func (c *Cache) lookup(ctx context.Context, length int) (*words.Pool, bool) {
	var (
		blob    []byte
		fetched int64
	)
	err := c.db.QueryRowContext(ctx,
		`SELECT words, fetched_at FROM word_pools WHERE language=? AND length=?`,
		c.language, length,
	).Scan(&blob, &fetched)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, false
	case err != nil:
		log.Warn().Err(err).Int("length", length).Msg("wordcache lookup failed")
		return nil, false
	}

	if time.Since(time.Unix(fetched, 0)) > c.ttl {
		return nil, false
	}

	var list []string
	if err := json.Unmarshal(blob, &list); err != nil {
		log.Warn().Err(err).Int("length", length).Msg("wordcache row undecodable")
		return nil, false
	}

	log.Debug().Int("length", length).Int("words", len(list)).Msg("wordcache hit")
	return words.FromList(list), true
}

// store upserts the pool for (language, length).
func (c *Cache) store(ctx context.Context, length int, pool *words.Pool) {
	blob, err := json.Marshal(pool.Words())
	if err != nil {
		log.Warn().Err(err).Msg("wordcache encode failed")
		return
	}
	if _, err := c.db.ExecContext(ctx, `
        INSERT INTO word_pools (language, length, fetched_at, words)
        VALUES (?, ?, ?, ?)
        ON CONFLICT(language, length) DO UPDATE SET
            fetched_at = excluded.fetched_at,
            words      = excluded.words`,
		c.language, length, time.Now().Unix(), blob,
	); err != nil {
		log.Warn().Err(err).Int("length", length).Msg("wordcache store failed")
	}
}
