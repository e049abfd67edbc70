package domain

// Curation is a human judgement on an assembled statement, keyed by the
// statement hash.
type Curation struct {
	// StatementHash identifies the curated statement.
	StatementHash string

	// Tag classifies the judgement (e.g. "correct", "grounding").
	Tag string
}

// correctTags mark a statement as confirmed despite other curations.
var correctTags = map[string]struct{}{
	"correct":    {},
	"act_vs_amt": {},
	"hypothesis": {},
}

// IsCorrect reports whether the curation confirms the statement.
// Any tag outside the correct set flags the statement as incorrect.
func (c Curation) IsCorrect() bool {
	_, ok := correctTags[c.Tag]
	return ok
}
