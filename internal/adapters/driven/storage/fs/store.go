// Package fs stores rendered reports in a local directory.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/reachlab/targetreport/internal/core/domain"
	"github.com/reachlab/targetreport/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.ReportStore = (*Store)(nil)

// Store writes report objects under a base directory.
type Store struct {
	dir string
}

// NewStore creates the directory if needed and returns a store over it.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Put writes one report object to <dir>/<key>.
func (s *Store) Put(_ context.Context, obj domain.ReportObject) error {
	target := filepath.Join(s.dir, filepath.FromSlash(obj.Key))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}
	if err := os.WriteFile(target, obj.Body, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}
	return nil
}

// Location describes the output directory.
func (s *Store) Location() string {
	return s.dir
}
