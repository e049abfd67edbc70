package assembly

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/reachlab/targetreport/internal/core/domain"
)

// CleanEvidenceText strips residual reader markup (XML reference tags,
// italics, entity refs) from the evidence sentences of every statement.
// Reader output frequently carries fragments like <xref ...> or <italic>
// lifted straight from article XML.
func CleanEvidenceText(stmts []*domain.Statement) {
	for _, stmt := range stmts {
		for i := range stmt.Evidence {
			stmt.Evidence[i].Text = stripMarkup(stmt.Evidence[i].Text)
		}
	}
}

// stripMarkup removes tags from a sentence, keeping text content.
// Plain sentences pass through untouched.
func stripMarkup(text string) string {
	if !strings.ContainsRune(text, '<') {
		return text
	}

	var b strings.Builder
	tok := html.NewTokenizer(strings.NewReader(text))
	for {
		switch tok.Next() {
		case html.ErrorToken:
			out := strings.Join(strings.Fields(b.String()), " ")
			if out == "" {
				// Tokenizer choked on malformed markup; keep the original.
				return text
			}
			return out
		case html.TextToken:
			b.Write(tok.Text())
		}
	}
}
