package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoTargets indicates a pipeline run with an empty target list.
	ErrNoTargets = errors.New("no targets configured")

	// ErrNoSources indicates a pipeline with no statement sources wired.
	ErrNoSources = errors.New("no statement sources configured")

	// ErrRateLimited indicates the statement database rate limit was hit.
	ErrRateLimited = errors.New("rate limited")

	// ErrSourceValidation indicates a statement source failed its
	// pre-run connectivity or configuration check.
	ErrSourceValidation = errors.New("source validation failed")
)
