// Package tsv renders the ranked drug list as tab-separated values.
package tsv

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/reachlab/targetreport/internal/core/domain"
)

// provenanceLabel is the fixed third column of every row, describing where
// the evidence came from.
const provenanceLabel = "text mining/databases"

// Assembler adapts the package functions to the pipeline's drug-list
// assembler interface.
type Assembler struct{}

// New creates a drug-list assembler.
func New() *Assembler {
	return &Assembler{}
}

// Aggregate folds statements into ranked drug entries.
func (*Assembler) Aggregate(stmts []*domain.Statement) []domain.DrugEntry {
	return Aggregate(stmts)
}

// Render writes entries as TSV rows.
func (*Assembler) Render(entries []domain.DrugEntry) []byte {
	return Render(entries)
}

// Aggregate folds assembled statements from all targets into drug entries:
// one entry per compound name, with evidence counts summed. Entries are
// ranked by descending count, then name.
func Aggregate(stmts []*domain.Statement) []domain.DrugEntry {
	agents := make(map[string]domain.Agent)
	counts := make(map[string]int)
	for _, stmt := range stmts {
		agents[stmt.Subject.Name] = stmt.Subject
		counts[stmt.Subject.Name] += len(stmt.Evidence)
	}

	entries := make([]domain.DrugEntry, 0, len(agents))
	for name, agent := range agents {
		ns, id := agent.Grounding()
		entries = append(entries, domain.DrugEntry{
			Name:          name,
			Namespace:     ns,
			ID:            id,
			EvidenceCount: counts[name],
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].EvidenceCount != entries[j].EvidenceCount {
			return entries[i].EvidenceCount > entries[j].EvidenceCount
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}

// Render writes the entries as TSV rows: label, count, provenance.
func Render(entries []domain.DrugEntry) []byte {
	var buf bytes.Buffer
	for _, e := range entries {
		fmt.Fprintf(&buf, "%s\t%d\t%s\n", e.Label(), e.EvidenceCount, provenanceLabel)
	}
	return buf.Bytes()
}
