// Package domain holds the core types of the report pipeline: statements
// of drug–target inhibition with their agents and evidence, curations,
// per-source evidence tallies, and the rendered report artefacts. It has
// no dependencies on connectors or storage.
package domain
