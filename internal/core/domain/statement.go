package domain

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"sort"
	"strings"
)

// Statement types understood by the pipeline. Only inhibition claims are
// assembled into reports, but the type travels with the statement so the
// matches key stays unambiguous.
const (
	TypeInhibition = "Inhibition"
)

// Agent is a biological entity participating in a statement: the inhibiting
// compound (subject) or the target protein (object).
type Agent struct {
	// Name is the canonical entity name (e.g. "ACE2", "camostat").
	Name string

	// Refs maps grounding namespaces to identifiers, e.g.
	// {"HGNC": "13557"} or {"CHEBI": "CHEBI:31359"}. The RefText key
	// holds the raw text the entity was extracted from, when known.
	Refs map[string]string
}

// RefText is the Refs key carrying the raw extracted text for an agent.
// Misgrounding filtering matches against this value.
const RefText = "TEXT"

// smallMoleculeNamespaces are the grounding namespaces that identify an
// agent as a small molecule.
var smallMoleculeNamespaces = []string{
	NamespaceCHEBI,
	NamespacePUBCHEM,
	NamespaceCHEMBL,
	NamespaceHMSLINCS,
}

// IsSmallMolecule reports whether the agent is grounded in any
// small-molecule namespace.
func (a Agent) IsSmallMolecule() bool {
	for _, ns := range smallMoleculeNamespaces {
		if _, ok := a.Refs[ns]; ok {
			return true
		}
	}
	return false
}

// Text returns the raw extracted text for the agent, or "" if unknown.
func (a Agent) Text() string {
	return a.Refs[RefText]
}

// Grounding returns the agent's preferred (namespace, identifier) pair
// following the namespace priority order, or ("", "") if ungrounded.
// The TEXT pseudo-namespace never counts as a grounding.
func (a Agent) Grounding() (string, string) {
	for _, ns := range namespacePriority {
		if id, ok := a.Refs[ns]; ok && id != "" {
			return ns, id
		}
	}
	return "", ""
}

// groundingKey is the agent's contribution to a statement matches key.
// Grounded agents match on namespace:id so differently-named mentions of
// the same entity collapse during preassembly; ungrounded agents fall
// back to their lowercased name.
func (a Agent) groundingKey() string {
	if ns, id := a.Grounding(); ns != "" {
		return ns + ":" + id
	}
	return "NAME:" + strings.ToLower(a.Name)
}

// Evidence is one piece of support for a statement: a sentence extracted
// from literature, a database entry, or an experimental assay.
type Evidence struct {
	// SourceAPI identifies the extraction source (e.g. "reach", "tas").
	SourceAPI string

	// PMID is the PubMed identifier of the supporting publication, if any.
	PMID string

	// Text is the supporting sentence or assay description.
	Text string
}

// key deduplicates evidence during preassembly.
func (e Evidence) key() string {
	return e.SourceAPI + "\x1f" + e.PMID + "\x1f" + e.Text
}

// Statement is a claim of drug–target inhibition with its supporting
// evidence. Subject is the inhibiting compound, Object the target protein.
type Statement struct {
	Type     string
	Subject  Agent
	Object   Agent
	Evidence []Evidence
}

// MatchesKey returns the canonical identity of the claim. Statements with
// equal matches keys refer to the same underlying claim and are merged by
// preassembly.
func (s *Statement) MatchesKey() string {
	return s.Type + "|" + s.Subject.groundingKey() + "|" + s.Object.groundingKey()
}

// Hash returns a stable 16-hex-digit identifier derived from the matches
// key. Curations reference statements by this hash.
func (s *Statement) Hash() string {
	sum := sha256.Sum256([]byte(s.MatchesKey()))
	return fmt.Sprintf("%016x", binary.BigEndian.Uint64(sum[:8]))
}

// DedupeEvidence removes exact duplicate evidence lines in place,
// preserving first-seen order.
func (s *Statement) DedupeEvidence() {
	seen := make(map[string]struct{}, len(s.Evidence))
	kept := s.Evidence[:0]
	for _, ev := range s.Evidence {
		k := ev.key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		kept = append(kept, ev)
	}
	s.Evidence = kept
}

// SortByEvidence orders statements by descending evidence count, breaking
// ties by subject name so output is deterministic.
func SortByEvidence(stmts []*Statement) {
	sort.SliceStable(stmts, func(i, j int) bool {
		if len(stmts[i].Evidence) != len(stmts[j].Evidence) {
			return len(stmts[i].Evidence) > len(stmts[j].Evidence)
		}
		return stmts[i].Subject.Name < stmts[j].Subject.Name
	})
}
