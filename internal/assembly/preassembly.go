package assembly

import (
	"github.com/reachlab/targetreport/internal/core/domain"
	"github.com/reachlab/targetreport/internal/logger"
)

// Preassemble merges statements that make the same claim (equal matches
// keys) into one statement carrying the union of their evidence. Duplicate
// evidence lines are removed, and agent groundings from all duplicates are
// merged so the representative keeps every known reference. Output is
// ordered by descending evidence count.
func Preassemble(stmts []*domain.Statement) []*domain.Statement {
	byKey := make(map[string]*domain.Statement)
	var order []string

	for _, stmt := range stmts {
		key := stmt.MatchesKey()
		existing, ok := byKey[key]
		if !ok {
			merged := &domain.Statement{
				Type:     stmt.Type,
				Subject:  copyAgent(stmt.Subject),
				Object:   copyAgent(stmt.Object),
				Evidence: append([]domain.Evidence(nil), stmt.Evidence...),
			}
			byKey[key] = merged
			order = append(order, key)
			continue
		}
		existing.Evidence = append(existing.Evidence, stmt.Evidence...)
		mergeRefs(&existing.Subject, stmt.Subject)
		mergeRefs(&existing.Object, stmt.Object)
	}

	assembled := make([]*domain.Statement, 0, len(order))
	for _, key := range order {
		stmt := byKey[key]
		stmt.DedupeEvidence()
		assembled = append(assembled, stmt)
	}
	domain.SortByEvidence(assembled)

	logger.Debug("Preassembled %d statements into %d", len(stmts), len(assembled))
	return assembled
}

// copyAgent clones the agent with its own refs map, so merging never
// mutates a source's statement.
func copyAgent(a domain.Agent) domain.Agent {
	refs := make(map[string]string, len(a.Refs))
	for ns, id := range a.Refs {
		refs[ns] = id
	}
	return domain.Agent{Name: a.Name, Refs: refs}
}

// mergeRefs folds the duplicate's references into the representative,
// keeping the representative's value on conflict.
func mergeRefs(into *domain.Agent, from domain.Agent) {
	for ns, id := range from.Refs {
		if _, ok := into.Refs[ns]; !ok {
			into.Refs[ns] = id
		}
	}
}
