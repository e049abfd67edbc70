// Package assembly turns raw per-source statements into the deduplicated,
// curated set that goes into a report: misgrounding filtering, preassembly
// (merging statements that make the same claim), curation filtering, and
// evidence text clean-up.
package assembly
