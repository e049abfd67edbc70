// Package statementdb is the connector for the curated statement database
// REST service. It pages through inhibition statements for a target
// protein, keeps only small-molecule subjects, drops evidence from
// excluded extraction sources, and exposes the service's curation list.
package statementdb
