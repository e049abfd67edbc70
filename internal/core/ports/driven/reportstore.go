package driven

import (
	"context"

	"github.com/reachlab/targetreport/internal/core/domain"
)

// ReportStore persists rendered report objects. Implementations include
// the local output directory and the object-storage bucket.
type ReportStore interface {
	// Put stores one report object under its key.
	Put(ctx context.Context, obj domain.ReportObject) error

	// Location describes where objects go, for logging ("s3://bucket/prefix",
	// "./reports").
	Location() string
}
