package tas

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/reachlab/targetreport/internal/core/domain"
)

// bindingClassMax is the highest affinity class still treated as binding.
// Classes run 1 (strongest) to 10 (non-binding).
const bindingClassMax = 3

// record is one parsed dataset row.
type record struct {
	hmsID        string
	chemblID     string
	compoundName string
	geneName     string
	class        int
}

// requiredColumns maps header names to their role.
var requiredColumns = []string{"hms_id", "chembl_id", "compound_name", "gene_name", "affinity_class"}

// parseDataset reads the assay CSV and returns the binding-class rows.
// The header row must name all required columns; extra columns are ignored.
func parseDataset(r io.Reader) ([]record, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: dataset missing column %q", domain.ErrInvalidInput, name)
		}
	}

	var records []record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		class, err := strconv.Atoi(row[cols["affinity_class"]])
		if err != nil {
			return nil, fmt.Errorf("%w: bad affinity class %q", domain.ErrInvalidInput, row[cols["affinity_class"]])
		}
		if class > bindingClassMax {
			continue
		}

		records = append(records, record{
			hmsID:        row[cols["hms_id"]],
			chemblID:     row[cols["chembl_id"]],
			compoundName: row[cols["compound_name"]],
			geneName:     row[cols["gene_name"]],
			class:        class,
		})
	}
	return records, nil
}

// toStatement builds the inhibition statement for one dataset row. The
// evidence points at the compound's CHEMBL entry when grounded.
func (rec record) toStatement() *domain.Statement {
	subjRefs := map[string]string{}
	if rec.chemblID != "" {
		subjRefs[domain.NamespaceCHEMBL] = rec.chemblID
	}
	if rec.hmsID != "" {
		subjRefs[domain.NamespaceHMSLINCS] = rec.hmsID
	}

	text := "Experimental assay"
	if rec.chemblID != "" {
		text = fmt.Sprintf("Experimental assay, see %s",
			domain.IdentifiersURL(domain.NamespaceCHEMBL, rec.chemblID))
	}

	return &domain.Statement{
		Type:    domain.TypeInhibition,
		Subject: domain.Agent{Name: rec.compoundName, Refs: subjRefs},
		Object:  domain.Agent{Name: rec.geneName, Refs: map[string]string{domain.RefText: rec.geneName}},
		Evidence: []domain.Evidence{{
			SourceAPI: SourceAPI,
			Text:      text,
		}},
	}
}
