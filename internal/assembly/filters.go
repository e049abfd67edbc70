package assembly

import (
	"github.com/reachlab/targetreport/internal/core/domain"
	"github.com/reachlab/targetreport/internal/logger"
)

// FilterMisgrounding drops statements whose object was extracted from a
// raw-text string listed as a known misgrounding for the target.
func FilterMisgrounding(target string, misgroundings domain.MisgroundingMap, stmts []*domain.Statement) []*domain.Statement {
	if len(misgroundings[target]) == 0 {
		return stmts
	}
	kept := make([]*domain.Statement, 0, len(stmts))
	for _, stmt := range stmts {
		if txt := stmt.Object.Text(); misgroundings.Matches(target, txt) {
			logger.Info("Filtering out misgrounded text %q for %s", txt, target)
			continue
		}
		kept = append(kept, stmt)
	}
	return kept
}

// FilterEvidenceSources removes evidence produced by the excluded sources.
// Statements left with no evidence are dropped entirely.
func FilterEvidenceSources(stmts []*domain.Statement, excluded map[string]struct{}) []*domain.Statement {
	if len(excluded) == 0 {
		return stmts
	}
	kept := make([]*domain.Statement, 0, len(stmts))
	for _, stmt := range stmts {
		ev := make([]domain.Evidence, 0, len(stmt.Evidence))
		for _, e := range stmt.Evidence {
			if _, skip := excluded[e.SourceAPI]; skip {
				continue
			}
			ev = append(ev, e)
		}
		if len(ev) == 0 {
			continue
		}
		stmt.Evidence = ev
		kept = append(kept, stmt)
	}
	return kept
}

// FilterSmallMolecules keeps only statements whose subject is a grounded
// small molecule.
func FilterSmallMolecules(stmts []*domain.Statement) []*domain.Statement {
	kept := make([]*domain.Statement, 0, len(stmts))
	for _, stmt := range stmts {
		if !stmt.Subject.IsSmallMolecule() {
			continue
		}
		kept = append(kept, stmt)
	}
	return kept
}

// FilterByCuration drops statements flagged incorrect by curation. A
// statement survives if it has no curations, or at least one curation with
// a correct tag.
func FilterByCuration(stmts []*domain.Statement, curations []domain.Curation) []*domain.Statement {
	if len(curations) == 0 {
		return stmts
	}
	incorrect := make(map[string]bool)
	correct := make(map[string]bool)
	for _, cur := range curations {
		if cur.IsCorrect() {
			correct[cur.StatementHash] = true
		} else {
			incorrect[cur.StatementHash] = true
		}
	}

	kept := make([]*domain.Statement, 0, len(stmts))
	for _, stmt := range stmts {
		h := stmt.Hash()
		if incorrect[h] && !correct[h] {
			logger.Info("Filtering out curated-incorrect statement %s", h)
			continue
		}
		kept = append(kept, stmt)
	}
	return kept
}
