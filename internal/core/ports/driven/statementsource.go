package driven

import (
	"context"

	"github.com/reachlab/targetreport/internal/core/domain"
)

// StatementSource fetches inhibition statements about a target protein.
// Each source type (statement database, assay dataset) implements this
// interface. Sources apply their own source-specific filtering (e.g. the
// database source keeps only small-molecule subjects) so the pipeline
// receives statements ready for cross-source assembly.
type StatementSource interface {
	// Type returns the source type identifier (e.g. "statementdb", "tas").
	Type() string

	// Validate checks the source is reachable and properly configured.
	// Returns nil if ready, an error describing the problem otherwise.
	Validate(ctx context.Context) error

	// Inhibitors returns statements whose object is the named target.
	Inhibitors(ctx context.Context, target string) ([]*domain.Statement, error)

	// Close releases resources.
	Close() error
}

// CurationSource provides the list of human curations used to filter
// assembled statements.
type CurationSource interface {
	// Curations returns all curations known to the service.
	Curations(ctx context.Context) ([]domain.Curation, error)
}
