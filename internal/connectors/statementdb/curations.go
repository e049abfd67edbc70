package statementdb

import (
	"context"
	"fmt"

	"github.com/reachlab/targetreport/internal/core/domain"
)

// curationJSON is the wire format of one curation.
type curationJSON struct {
	StatementHash string `json:"pa_hash"`
	Tag           string `json:"tag"`
}

// curationsResponse is the curations endpoint payload.
type curationsResponse struct {
	Curations []curationJSON `json:"curations"`
}

// Curations returns all curations known to the service.
func (c *Connector) Curations(ctx context.Context) ([]domain.Curation, error) {
	var resp curationsResponse
	if err := c.client.getJSON(ctx, "/curations", nil, &resp); err != nil {
		return nil, fmt.Errorf("fetch curations: %w", err)
	}

	curations := make([]domain.Curation, 0, len(resp.Curations))
	for _, cj := range resp.Curations {
		curations = append(curations, domain.Curation{
			StatementHash: cj.StatementHash,
			Tag:           cj.Tag,
		})
	}
	return curations, nil
}
