// Package html renders the per-target report page: assembled inhibition
// statements ordered by evidence count, with per-source tallies and links
// to the statement database and identifiers.org.
package html

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"sort"

	"github.com/reachlab/targetreport/internal/core/domain"
)

//go:embed report.html.tmpl
var reportTemplate string

// Assembler renders report pages.
type Assembler struct {
	tmpl *template.Template

	// dbURL is the statement database UI linked from each statement,
	// empty to omit the links.
	dbURL string
}

// New creates an assembler. dbURL is the statement database root to link
// statements back to; pass "" to disable the links.
func New(dbURL string) (*Assembler, error) {
	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse report template: %w", err)
	}
	return &Assembler{tmpl: tmpl, dbURL: dbURL}, nil
}

// page is the template root context.
type page struct {
	Title      string
	Target     string
	Statements []statementView
}

// statementView is one assembled statement prepared for rendering.
type statementView struct {
	SubjectName   string
	SubjectURL    string
	ObjectName    string
	Hash          string
	DBLink        string
	EvidenceCount int
	Sources       []sourceBadge
	Evidence      []evidenceView
}

type sourceBadge struct {
	Name  string
	Count int
}

type evidenceView struct {
	SourceAPI string
	PMID      string
	PubMedURL string
	Text      string
}

// Assemble renders the report for one target. Statements are rendered in
// the order given; callers sort by evidence count beforehand.
func (a *Assembler) Assemble(target string, stmts []*domain.Statement) ([]byte, error) {
	p := page{
		Title:  fmt.Sprintf("Small molecule inhibitors of %s", target),
		Target: target,
	}

	for _, stmt := range stmts {
		view := statementView{
			SubjectName:   stmt.Subject.Name,
			ObjectName:    stmt.Object.Name,
			Hash:          stmt.Hash(),
			EvidenceCount: len(stmt.Evidence),
		}
		if ns, id := stmt.Subject.Grounding(); ns != "" {
			view.SubjectURL = domain.IdentifiersURL(ns, id)
		}
		if a.dbURL != "" {
			view.DBLink = fmt.Sprintf("%s/statements/%s", a.dbURL, stmt.Hash())
		}

		counts := domain.CountEvidence(stmt)
		for _, src := range domain.EvidenceSources {
			if counts[src] == 0 {
				continue
			}
			view.Sources = append(view.Sources, sourceBadge{Name: src, Count: counts[src]})
			delete(counts, src)
		}
		// Sources outside the known list come after it, in name order.
		for _, src := range sortedKeys(counts) {
			if counts[src] == 0 {
				continue
			}
			view.Sources = append(view.Sources, sourceBadge{Name: src, Count: counts[src]})
		}

		for _, ev := range stmt.Evidence {
			evv := evidenceView{
				SourceAPI: ev.SourceAPI,
				PMID:      ev.PMID,
				Text:      ev.Text,
			}
			if ev.PMID != "" {
				evv.PubMedURL = "https://pubmed.ncbi.nlm.nih.gov/" + ev.PMID + "/"
			}
			view.Evidence = append(view.Evidence, evv)
		}

		p.Statements = append(p.Statements, view)
	}

	var buf bytes.Buffer
	if err := a.tmpl.Execute(&buf, p); err != nil {
		return nil, fmt.Errorf("render report for %s: %w", target, err)
	}
	return buf.Bytes(), nil
}

func sortedKeys(counts domain.SourceCounts) []string {
	keys := make([]string, 0, len(counts))
	for src := range counts {
		keys = append(keys, src)
	}
	sort.Strings(keys)
	return keys
}
