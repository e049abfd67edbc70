package driven

import (
	"context"

	"github.com/reachlab/targetreport/internal/core/domain"
)

// StatementCache stores fetched statements per (source, target) so repeat
// runs within the cache TTL skip the network. A nil cache disables caching.
type StatementCache interface {
	// Get returns the cached statements for a source/target pair.
	// ok is false on a miss or an expired entry.
	Get(ctx context.Context, sourceType, target string) (stmts []*domain.Statement, ok bool, err error)

	// Put replaces the cached statements for a source/target pair.
	Put(ctx context.Context, sourceType, target string, stmts []*domain.Statement) error

	// Close releases resources.
	Close() error
}
