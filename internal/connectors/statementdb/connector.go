package statementdb

import (
	"context"
	"fmt"

	"github.com/reachlab/targetreport/internal/assembly"
	"github.com/reachlab/targetreport/internal/core/domain"
	"github.com/reachlab/targetreport/internal/core/ports/driven"
	"github.com/reachlab/targetreport/internal/logger"
)

// Ensure Connector implements the interfaces.
var (
	_ driven.StatementSource = (*Connector)(nil)
	_ driven.CurationSource  = (*Connector)(nil)
)

// Config holds the connector configuration.
type Config struct {
	// BaseURL is the service root, e.g. "https://db.example.org/latest".
	BaseURL string

	// APIKey authenticates requests; empty for anonymous access.
	APIKey string

	// EvidenceLimit caps the evidence returned per statement query.
	EvidenceLimit int

	// ExcludedSources lists extraction sources whose evidence is dropped
	// from database statements (assay rows arrive through the assay
	// connector instead, and low-precision readers are excluded).
	ExcludedSources []string
}

// DefaultEvidenceLimit caps evidence per query when not configured.
const DefaultEvidenceLimit = 10000

// Connector fetches inhibition statements and curations from the curated
// statement database.
type Connector struct {
	config   Config
	client   *Client
	excluded map[string]struct{}
}

// New creates a statement database connector.
func New(cfg Config) *Connector {
	if cfg.EvidenceLimit <= 0 {
		cfg.EvidenceLimit = DefaultEvidenceLimit
	}
	excluded := make(map[string]struct{}, len(cfg.ExcludedSources))
	for _, src := range cfg.ExcludedSources {
		excluded[src] = struct{}{}
	}
	return &Connector{
		config:   cfg,
		client:   NewClient(cfg.BaseURL, cfg.APIKey),
		excluded: excluded,
	}
}

// Type returns the source type identifier.
func (c *Connector) Type() string {
	return "statementdb"
}

// Validate checks the service is reachable by fetching the curation list
// head. A misconfigured URL or bad API key surfaces here, before the
// per-target queries start.
func (c *Connector) Validate(ctx context.Context) error {
	if c.config.BaseURL == "" {
		return ErrMissingBaseURL
	}
	var resp curationsResponse
	if err := c.client.getJSON(ctx, "/curations", nil, &resp); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSourceValidation, err)
	}
	return nil
}

// Inhibitors returns small-molecule inhibition statements whose object is
// the named target. Evidence from excluded sources is dropped, and
// statements left without evidence are discarded.
func (c *Connector) Inhibitors(ctx context.Context, target string) ([]*domain.Statement, error) {
	stmts, err := c.client.fetchStatements(ctx, target, domain.TypeInhibition, c.config.EvidenceLimit)
	if err != nil {
		return nil, err
	}
	logger.Info("Number of statements from DB for %s: %d", target, len(stmts))

	stmts = assembly.FilterSmallMolecules(stmts)
	stmts = assembly.FilterEvidenceSources(stmts, c.excluded)
	return stmts, nil
}

// Close releases resources.
func (c *Connector) Close() error {
	c.client.http.CloseIdleConnections()
	return nil
}
