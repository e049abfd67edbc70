package statementdb

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/reachlab/targetreport/internal/core/domain"
)

// pageSize is the number of statements requested per page.
const pageSize = 500

// statementJSON is the wire format of one statement.
type statementJSON struct {
	Type     string         `json:"type"`
	Subj     agentJSON      `json:"subj"`
	Obj      agentJSON      `json:"obj"`
	Evidence []evidenceJSON `json:"evidence"`
}

type agentJSON struct {
	Name   string            `json:"name"`
	DBRefs map[string]string `json:"db_refs"`
}

type evidenceJSON struct {
	SourceAPI string `json:"source_api"`
	PMID      string `json:"pmid"`
	Text      string `json:"text"`
}

// statementsResponse is the paged statements endpoint payload.
type statementsResponse struct {
	Statements []statementJSON `json:"statements"`
	Total      int             `json:"total"`
	Offset     int             `json:"offset"`
	Limit      int             `json:"limit"`
}

// fetchStatements pages through all statements with the given object and
// type, up to evLimit total evidence.
func (c *Client) fetchStatements(ctx context.Context, object, stmtType string, evLimit int) ([]*domain.Statement, error) {
	var all []*domain.Statement
	offset := 0

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		params := url.Values{}
		params.Set("object", object)
		params.Set("type", stmtType)
		params.Set("ev_limit", strconv.Itoa(evLimit))
		params.Set("limit", strconv.Itoa(pageSize))
		params.Set("offset", strconv.Itoa(offset))

		var page statementsResponse
		if err := c.getJSON(ctx, "/statements", params, &page); err != nil {
			return nil, fmt.Errorf("fetch statements for %s: %w", object, err)
		}

		for _, sj := range page.Statements {
			all = append(all, sj.toDomain())
		}

		offset += len(page.Statements)
		if len(page.Statements) == 0 || offset >= page.Total {
			break
		}
	}

	return all, nil
}

// toDomain converts a wire statement to the domain model.
func (sj statementJSON) toDomain() *domain.Statement {
	stmt := &domain.Statement{
		Type:    sj.Type,
		Subject: domain.Agent{Name: sj.Subj.Name, Refs: sj.Subj.DBRefs},
		Object:  domain.Agent{Name: sj.Obj.Name, Refs: sj.Obj.DBRefs},
	}
	for _, ej := range sj.Evidence {
		stmt.Evidence = append(stmt.Evidence, domain.Evidence{
			SourceAPI: ej.SourceAPI,
			PMID:      ej.PMID,
			Text:      ej.Text,
		})
	}
	return stmt
}
