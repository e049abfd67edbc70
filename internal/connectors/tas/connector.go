package tas

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/reachlab/targetreport/internal/core/domain"
	"github.com/reachlab/targetreport/internal/core/ports/driven"
	"github.com/reachlab/targetreport/internal/logger"
)

// SourceAPI is the evidence source identifier for assay statements.
const SourceAPI = "tas"

// DefaultTimeout is the dataset download timeout.
const DefaultTimeout = 120 * time.Second

// Ensure Connector implements the interface.
var _ driven.StatementSource = (*Connector)(nil)

// Config holds the connector configuration.
type Config struct {
	// DatasetURL is where the assay CSV is published.
	DatasetURL string
}

// Connector serves inhibition statements derived from the assay dataset.
// The dataset is downloaded once per connector lifetime and held in
// memory; per-target queries filter the parsed rows.
type Connector struct {
	config Config
	http   *http.Client

	mu      sync.Mutex
	records []record
	loaded  bool
}

// New creates an assay dataset connector.
func New(cfg Config) *Connector {
	return &Connector{
		config: cfg,
		http:   &http.Client{Timeout: DefaultTimeout},
	}
}

// Type returns the source type identifier.
func (c *Connector) Type() string {
	return SourceAPI
}

// Validate checks the dataset URL is configured and downloads the dataset.
func (c *Connector) Validate(ctx context.Context) error {
	if c.config.DatasetURL == "" {
		return fmt.Errorf("%w: tas: dataset URL not configured", domain.ErrSourceValidation)
	}
	if err := c.ensureLoaded(ctx); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSourceValidation, err)
	}
	return nil
}

// Inhibitors returns assay statements whose measured gene is the target.
func (c *Connector) Inhibitors(ctx context.Context, target string) ([]*domain.Statement, error) {
	if err := c.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var stmts []*domain.Statement
	for _, rec := range c.records {
		if rec.geneName != target {
			continue
		}
		stmts = append(stmts, rec.toStatement())
	}
	logger.Info("Number of assay statements for %s: %d", target, len(stmts))
	return stmts, nil
}

// Close releases resources.
func (c *Connector) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// ensureLoaded downloads and parses the dataset on first use.
func (c *Connector) ensureLoaded(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.DatasetURL, nil)
	if err != nil {
		return fmt.Errorf("build dataset request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("download dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download dataset: unexpected status %d from %s",
			resp.StatusCode, c.config.DatasetURL)
	}

	records, err := parseDataset(resp.Body)
	if err != nil {
		return fmt.Errorf("parse dataset: %w", err)
	}

	c.records = records
	c.loaded = true
	logger.Debug("Loaded %d binding assay rows", len(records))
	return nil
}
