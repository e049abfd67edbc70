// Package driving defines the interfaces through which the CLI drives the
// core pipeline.
package driving

import "context"

// TargetResult summarises one target's assembled report.
type TargetResult struct {
	// Target is the protein name.
	Target string

	// Statements is the number of assembled statements in the report.
	Statements int

	// Evidence is the total evidence across those statements.
	Evidence int

	// Key is the storage key the report was written under.
	Key string
}

// RunResult summarises a full pipeline run.
type RunResult struct {
	// Targets holds per-target results in run order.
	Targets []TargetResult

	// Drugs is the number of distinct compounds in the ranked drug list.
	Drugs int
}

// ReportPipeline assembles and publishes drugs-for-target reports.
type ReportPipeline interface {
	// Run executes the pipeline for the given targets and returns a
	// summary. The run fails on the first target whose fetch, assembly,
	// or upload fails.
	Run(ctx context.Context, targets []string) (*RunResult, error)
}
