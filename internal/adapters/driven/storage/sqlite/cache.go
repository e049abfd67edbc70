// Package sqlite provides a SQLite-backed statement cache so repeated
// pipeline runs within the cache TTL skip refetching from the network.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/reachlab/targetreport/internal/core/domain"
	"github.com/reachlab/targetreport/internal/core/ports/driven"
	"github.com/reachlab/targetreport/internal/logger"
)

// Ensure Cache implements the interface.
var _ driven.StatementCache = (*Cache)(nil)

// DefaultTTL is how long cached statements stay fresh.
const DefaultTTL = 24 * time.Hour

const schema = `
CREATE TABLE IF NOT EXISTS statement_cache (
	id          TEXT PRIMARY KEY,
	source_type TEXT NOT NULL,
	target      TEXT NOT NULL,
	payload     TEXT NOT NULL,
	fetched_at  INTEGER NOT NULL,
	UNIQUE(source_type, target)
);
`

// Cache stores fetched statements per (source, target) pair.
type Cache struct {
	db  *sql.DB
	ttl time.Duration
}

// NewCache opens (or creates) the cache database at dataDir. If dataDir is
// empty, defaults to ~/.targetreport/data. A non-positive ttl uses
// DefaultTTL.
func NewCache(dataDir string, ttl time.Duration) (*Cache, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".targetreport", "data")
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	dbPath := filepath.Join(dataDir, "cache.db")
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db, ttl: ttl}, nil
}

// Get returns the cached statements for a source/target pair. Expired
// entries count as misses.
func (c *Cache) Get(ctx context.Context, sourceType, target string) ([]*domain.Statement, bool, error) {
	var payload string
	var fetchedAt int64
	err := c.db.QueryRowContext(ctx,
		`SELECT payload, fetched_at FROM statement_cache WHERE source_type = ? AND target = ?`,
		sourceType, target,
	).Scan(&payload, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query cache: %w", err)
	}

	if time.Since(time.Unix(fetchedAt, 0)) > c.ttl {
		logger.Debug("Cache entry for %s/%s expired", sourceType, target)
		return nil, false, nil
	}

	var stmts []*domain.Statement
	if err := json.Unmarshal([]byte(payload), &stmts); err != nil {
		return nil, false, fmt.Errorf("decode cached statements: %w", err)
	}
	return stmts, true, nil
}

// Put replaces the cached statements for a source/target pair.
func (c *Cache) Put(ctx context.Context, sourceType, target string, stmts []*domain.Statement) error {
	payload, err := json.Marshal(stmts)
	if err != nil {
		return fmt.Errorf("encode statements: %w", err)
	}

	_, err = c.db.ExecContext(ctx,
		`INSERT INTO statement_cache (id, source_type, target, payload, fetched_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(source_type, target) DO UPDATE SET
		   payload = excluded.payload, fetched_at = excluded.fetched_at`,
		uuid.New().String(), sourceType, target, string(payload), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}
