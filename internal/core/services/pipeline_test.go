package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reachlab/targetreport/internal/assemblers/tsv"
	"github.com/reachlab/targetreport/internal/core/domain"
	"github.com/reachlab/targetreport/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockSource implements driven.StatementSource for testing.
type mockSource struct {
	typ         string
	byTarget    map[string][]*domain.Statement
	validateErr error
	fetchErr    error
	calls       []string
	closed      bool
}

func (m *mockSource) Type() string { return m.typ }

func (m *mockSource) Validate(_ context.Context) error { return m.validateErr }

func (m *mockSource) Inhibitors(_ context.Context, target string) ([]*domain.Statement, error) {
	m.calls = append(m.calls, target)
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	return m.byTarget[target], nil
}

func (m *mockSource) Close() error {
	m.closed = true
	return nil
}

// mockCurations implements driven.CurationSource for testing.
type mockCurations struct {
	curations []domain.Curation
	err       error
}

func (m *mockCurations) Curations(_ context.Context) ([]domain.Curation, error) {
	return m.curations, m.err
}

// mockStore implements driven.ReportStore for testing.
type mockStore struct {
	objects []domain.ReportObject
	err     error
}

func (m *mockStore) Put(_ context.Context, obj domain.ReportObject) error {
	if m.err != nil {
		return m.err
	}
	m.objects = append(m.objects, obj)
	return nil
}

func (m *mockStore) Location() string { return "mock" }

// mockCache implements driven.StatementCache for testing.
type mockCache struct {
	entries map[string][]*domain.Statement
	puts    int
}

func (m *mockCache) Get(_ context.Context, sourceType, target string) ([]*domain.Statement, bool, error) {
	stmts, ok := m.entries[sourceType+"/"+target]
	return stmts, ok, nil
}

func (m *mockCache) Put(_ context.Context, sourceType, target string, stmts []*domain.Statement) error {
	if m.entries == nil {
		m.entries = make(map[string][]*domain.Statement)
	}
	m.entries[sourceType+"/"+target] = stmts
	m.puts++
	return nil
}

func (m *mockCache) Close() error { return nil }

// mockReports implements ReportAssembler for testing.
type mockReports struct {
	rendered map[string]int
	err      error
}

func (m *mockReports) Assemble(target string, stmts []*domain.Statement) ([]byte, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.rendered == nil {
		m.rendered = make(map[string]int)
	}
	m.rendered[target] = len(stmts)
	return []byte("<html>" + target + "</html>"), nil
}

// --- Helpers ---

func inhibition(subj, chebi, objName, objText string, evidence ...domain.Evidence) *domain.Statement {
	subjRefs := map[string]string{}
	if chebi != "" {
		subjRefs[domain.NamespaceCHEBI] = chebi
	}
	objRefs := map[string]string{}
	if objText != "" {
		objRefs[domain.RefText] = objText
	}
	return &domain.Statement{
		Type:     domain.TypeInhibition,
		Subject:  domain.Agent{Name: subj, Refs: subjRefs},
		Object:   domain.Agent{Name: objName, Refs: objRefs},
		Evidence: evidence,
	}
}

func newPipeline(sources []driven.StatementSource, curations driven.CurationSource,
	cache driven.StatementCache, store *mockStore, reports *mockReports) *Pipeline {
	return NewPipeline(sources, curations, cache, []driven.ReportStore{store},
		reports, tsv.New(), Options{
			Misgroundings: domain.DefaultMisgroundings(),
			DrugListKey:   "drug_list.tsv",
		})
}

// --- Tests ---

func TestRunAssemblesAndStores(t *testing.T) {
	src := &mockSource{
		typ: "statementdb",
		byTarget: map[string][]*domain.Statement{
			"TMPRSS2": {
				inhibition("camostat", "CHEBI:135632", "TMPRSS2", "TMPRSS2",
					domain.Evidence{SourceAPI: "reach", Text: "a"}),
				inhibition("camostat", "CHEBI:135632", "TMPRSS2", "TMPRSS2",
					domain.Evidence{SourceAPI: "sparser", Text: "b"}),
			},
			"ACE2": {
				inhibition("chloroquine", "CHEBI:3638", "ACE2", "ACE2",
					domain.Evidence{SourceAPI: "reach", Text: "c"}),
			},
		},
	}
	store := &mockStore{}
	reports := &mockReports{}

	p := newPipeline([]driven.StatementSource{src}, &mockCurations{}, nil, store, reports)
	result, err := p.Run(context.Background(), []string{"TMPRSS2", "ACE2"})
	require.NoError(t, err)

	// One report per target plus the drug list.
	require.Len(t, store.objects, 3)
	assert.Equal(t, "TMPRSS2.html", store.objects[0].Key)
	assert.Equal(t, "text/html", store.objects[0].ContentType)
	assert.True(t, store.objects[0].Public)
	assert.Equal(t, "ACE2.html", store.objects[1].Key)
	assert.Equal(t, "drug_list.tsv", store.objects[2].Key)
	assert.Equal(t, "text/tab-separated-values", store.objects[2].ContentType)
	assert.False(t, store.objects[2].Public)

	// Duplicate claims merged before rendering.
	assert.Equal(t, 1, reports.rendered["TMPRSS2"])

	require.Len(t, result.Targets, 2)
	assert.Equal(t, 1, result.Targets[0].Statements)
	assert.Equal(t, 2, result.Targets[0].Evidence)
	assert.Equal(t, 2, result.Drugs)
}

func TestRunAppliesMisgroundingFilter(t *testing.T) {
	src := &mockSource{
		typ: "statementdb",
		byTarget: map[string][]*domain.Statement{
			"FURIN": {
				inhibition("decanoyl-RVKR-CMK", "CHEBI:1", "FURIN", "furin",
					domain.Evidence{SourceAPI: "reach", Text: "a"}),
				inhibition("iron", "CHEBI:2", "FURIN", "Fur",
					domain.Evidence{SourceAPI: "reach", Text: "b"}),
			},
		},
	}
	store := &mockStore{}
	reports := &mockReports{}

	p := newPipeline([]driven.StatementSource{src}, nil, nil, store, reports)
	result, err := p.Run(context.Background(), []string{"FURIN"})
	require.NoError(t, err)

	// The "Fur" misgrounding is dropped.
	assert.Equal(t, 1, reports.rendered["FURIN"])
	assert.Equal(t, 1, result.Targets[0].Statements)
}

func TestRunAppliesCurationFilter(t *testing.T) {
	bad := inhibition("badcmpd", "CHEBI:9", "ACE2", "ACE2",
		domain.Evidence{SourceAPI: "reach", Text: "x"})
	good := inhibition("goodcmpd", "CHEBI:10", "ACE2", "ACE2",
		domain.Evidence{SourceAPI: "reach", Text: "y"})

	src := &mockSource{
		typ:      "statementdb",
		byTarget: map[string][]*domain.Statement{"ACE2": {bad, good}},
	}
	curations := &mockCurations{curations: []domain.Curation{
		{StatementHash: bad.Hash(), Tag: "grounding"},
	}}
	store := &mockStore{}
	reports := &mockReports{}

	p := newPipeline([]driven.StatementSource{src}, curations, nil, store, reports)
	_, err := p.Run(context.Background(), []string{"ACE2"})
	require.NoError(t, err)

	assert.Equal(t, 1, reports.rendered["ACE2"])
}

func TestRunMergesAcrossSources(t *testing.T) {
	assay := &mockSource{
		typ: "tas",
		byTarget: map[string][]*domain.Statement{
			"TMPRSS2": {inhibition("camostat", "CHEBI:135632", "TMPRSS2", "",
				domain.Evidence{SourceAPI: "tas", Text: "Experimental assay"})},
		},
	}
	db := &mockSource{
		typ: "statementdb",
		byTarget: map[string][]*domain.Statement{
			"TMPRSS2": {inhibition("camostat", "CHEBI:135632", "TMPRSS2", "TMPRSS2",
				domain.Evidence{SourceAPI: "reach", Text: "a"})},
		},
	}
	store := &mockStore{}
	reports := &mockReports{}

	p := newPipeline([]driven.StatementSource{assay, db}, nil, nil, store, reports)
	result, err := p.Run(context.Background(), []string{"TMPRSS2"})
	require.NoError(t, err)

	// Same claim from both sources merges to one statement, two evidence.
	assert.Equal(t, 1, result.Targets[0].Statements)
	assert.Equal(t, 2, result.Targets[0].Evidence)
}

func TestRunUsesCache(t *testing.T) {
	cached := []*domain.Statement{inhibition("cachedcmpd", "CHEBI:5", "ACE2", "ACE2",
		domain.Evidence{SourceAPI: "reach", Text: "z"})}
	cache := &mockCache{entries: map[string][]*domain.Statement{
		"statementdb/ACE2": cached,
	}}
	src := &mockSource{typ: "statementdb"}
	store := &mockStore{}
	reports := &mockReports{}

	p := newPipeline([]driven.StatementSource{src}, nil, cache, store, reports)
	_, err := p.Run(context.Background(), []string{"ACE2"})
	require.NoError(t, err)

	assert.Empty(t, src.calls, "cache hit skips the source")
	assert.Equal(t, 1, reports.rendered["ACE2"])
}

func TestRunFillsCacheOnMiss(t *testing.T) {
	src := &mockSource{
		typ: "statementdb",
		byTarget: map[string][]*domain.Statement{
			"ACE2": {inhibition("cmpd", "CHEBI:5", "ACE2", "ACE2",
				domain.Evidence{SourceAPI: "reach", Text: "z"})},
		},
	}
	cache := &mockCache{}
	store := &mockStore{}

	p := newPipeline([]driven.StatementSource{src}, nil, cache, store, &mockReports{})
	_, err := p.Run(context.Background(), []string{"ACE2"})
	require.NoError(t, err)

	assert.Equal(t, []string{"ACE2"}, src.calls)
	assert.Equal(t, 1, cache.puts)
}

func TestRunNoTargets(t *testing.T) {
	p := newPipeline([]driven.StatementSource{&mockSource{typ: "statementdb"}}, nil, nil,
		&mockStore{}, &mockReports{})

	_, err := p.Run(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrNoTargets)
}

func TestRunNoSources(t *testing.T) {
	p := newPipeline(nil, nil, nil, &mockStore{}, &mockReports{})

	_, err := p.Run(context.Background(), []string{"ACE2"})
	assert.ErrorIs(t, err, domain.ErrNoSources)
}

func TestRunValidationFailureAborts(t *testing.T) {
	src := &mockSource{typ: "statementdb", validateErr: errors.New("bad api key")}
	store := &mockStore{}

	p := newPipeline([]driven.StatementSource{src}, nil, nil, store, &mockReports{})
	_, err := p.Run(context.Background(), []string{"ACE2"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validate statementdb source")
	assert.Empty(t, store.objects, "nothing stored on validation failure")
}

func TestRunFetchFailureAborts(t *testing.T) {
	src := &mockSource{typ: "statementdb", fetchErr: errors.New("boom")}

	p := newPipeline([]driven.StatementSource{src}, nil, nil, &mockStore{}, &mockReports{})
	_, err := p.Run(context.Background(), []string{"TMPRSS2", "ACE2"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "target TMPRSS2")
	// Fail-fast: the second target is never fetched.
	assert.Equal(t, []string{"TMPRSS2"}, src.calls)
}

func TestRunStoreFailureAborts(t *testing.T) {
	src := &mockSource{
		typ: "statementdb",
		byTarget: map[string][]*domain.Statement{
			"ACE2": {inhibition("cmpd", "CHEBI:5", "ACE2", "ACE2",
				domain.Evidence{SourceAPI: "reach", Text: "z"})},
		},
	}
	store := &mockStore{err: errors.New("denied")}

	p := newPipeline([]driven.StatementSource{src}, nil, nil, store, &mockReports{})
	_, err := p.Run(context.Background(), []string{"ACE2"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "denied")
}

func TestRunCurationFetchFailureAborts(t *testing.T) {
	src := &mockSource{typ: "statementdb"}
	curations := &mockCurations{err: errors.New("service down")}

	p := newPipeline([]driven.StatementSource{src}, curations, nil, &mockStore{}, &mockReports{})
	_, err := p.Run(context.Background(), []string{"ACE2"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch curations")
}
