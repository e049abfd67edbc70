// Package driven defines the interfaces the core pipeline depends on:
// statement sources, the curation feed, report stores, and the statement
// cache. Connectors and storage adapters implement these.
package driven
