package tas

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reachlab/targetreport/internal/core/domain"
)

const testCSV = `hms_id,chembl_id,compound_name,gene_name,affinity_class,extra
10337,CHEMBL1431,camostat,TMPRSS2,1,ignored
10002,CHEMBL2103830,nafamostat,TMPRSS2,2,ignored
10003,CHEMBL559569,E-64,CTSB,1,ignored
10004,CHEMBL25,aspirin,TMPRSS2,10,ignored
10005,,unmapped,ACE2,1,ignored
`

func newTestConnector(t *testing.T, csv string) (*Connector, *int) {
	t.Helper()
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		_, _ = w.Write([]byte(csv))
	}))
	t.Cleanup(srv.Close)

	conn := New(Config{DatasetURL: srv.URL})
	t.Cleanup(func() { conn.Close() })
	return conn, &hits
}

func TestInhibitorsByTarget(t *testing.T) {
	conn, _ := newTestConnector(t, testCSV)

	stmts, err := conn.Inhibitors(context.Background(), "TMPRSS2")
	require.NoError(t, err)

	// Class 10 (non-binding) rows are excluded.
	require.Len(t, stmts, 2)
	assert.Equal(t, "camostat", stmts[0].Subject.Name)
	assert.Equal(t, "nafamostat", stmts[1].Subject.Name)

	first := stmts[0]
	assert.Equal(t, domain.TypeInhibition, first.Type)
	assert.Equal(t, "CHEMBL1431", first.Subject.Refs[domain.NamespaceCHEMBL])
	assert.Equal(t, "10337", first.Subject.Refs[domain.NamespaceHMSLINCS])
	assert.Equal(t, "TMPRSS2", first.Object.Name)

	require.Len(t, first.Evidence, 1)
	assert.Equal(t, SourceAPI, first.Evidence[0].SourceAPI)
	assert.Equal(t,
		"Experimental assay, see https://identifiers.org/chembl.compound:CHEMBL1431",
		first.Evidence[0].Text)
}

func TestInhibitorsUngroundedCompound(t *testing.T) {
	conn, _ := newTestConnector(t, testCSV)

	stmts, err := conn.Inhibitors(context.Background(), "ACE2")
	require.NoError(t, err)

	require.Len(t, stmts, 1)
	assert.Equal(t, "unmapped", stmts[0].Subject.Name)
	assert.Equal(t, "10005", stmts[0].Subject.Refs[domain.NamespaceHMSLINCS])
	// No CHEMBL id, so the evidence has no registry link.
	assert.Equal(t, "Experimental assay", stmts[0].Evidence[0].Text)
}

func TestDatasetDownloadedOnce(t *testing.T) {
	conn, hits := newTestConnector(t, testCSV)

	_, err := conn.Inhibitors(context.Background(), "TMPRSS2")
	require.NoError(t, err)
	_, err = conn.Inhibitors(context.Background(), "CTSB")
	require.NoError(t, err)

	assert.Equal(t, 1, *hits)
}

func TestValidateDownloads(t *testing.T) {
	conn, hits := newTestConnector(t, testCSV)

	require.NoError(t, conn.Validate(context.Background()))
	assert.Equal(t, 1, *hits)

	unconfigured := New(Config{})
	defer unconfigured.Close()
	assert.ErrorIs(t, unconfigured.Validate(context.Background()), domain.ErrSourceValidation)
}

func TestParseDatasetMissingColumn(t *testing.T) {
	conn, _ := newTestConnector(t, "hms_id,compound_name\n1,x\n")

	_, err := conn.Inhibitors(context.Background(), "TMPRSS2")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseDatasetBadClass(t *testing.T) {
	bad := strings.Replace(testCSV, ",1,", ",one,", 1)
	conn, _ := newTestConnector(t, bad)

	_, err := conn.Inhibitors(context.Background(), "TMPRSS2")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDownloadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	conn := New(Config{DatasetURL: srv.URL})
	defer conn.Close()

	_, err := conn.Inhibitors(context.Background(), "TMPRSS2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 503")
}
