package services

import (
	"context"
	"fmt"

	"github.com/reachlab/targetreport/internal/assembly"
	"github.com/reachlab/targetreport/internal/core/domain"
	"github.com/reachlab/targetreport/internal/core/ports/driven"
	"github.com/reachlab/targetreport/internal/core/ports/driving"
	"github.com/reachlab/targetreport/internal/logger"
)

// Ensure Pipeline implements the interface.
var _ driving.ReportPipeline = (*Pipeline)(nil)

// ReportAssembler renders the per-target report page.
type ReportAssembler interface {
	Assemble(target string, stmts []*domain.Statement) ([]byte, error)
}

// DrugListAssembler aggregates and renders the ranked drug list.
type DrugListAssembler interface {
	Aggregate(stmts []*domain.Statement) []domain.DrugEntry
	Render(entries []domain.DrugEntry) []byte
}

// Options tunes pipeline behaviour.
type Options struct {
	// Misgroundings lists known bad groundings per target.
	Misgroundings domain.MisgroundingMap

	// DrugListKey is the storage key of the ranked drug list.
	DrugListKey string
}

// Pipeline assembles and publishes drugs-for-target reports: it gathers
// statements from every source, filters and preassembles them per target,
// renders and stores one page per target, and finally renders the
// aggregated drug list.
type Pipeline struct {
	sources   []driven.StatementSource
	curations driven.CurationSource
	cache     driven.StatementCache
	stores    []driven.ReportStore
	reports   ReportAssembler
	drugList  DrugListAssembler
	opts      Options
}

// NewPipeline creates a report pipeline. curations and cache may be nil,
// disabling curation filtering and caching respectively.
func NewPipeline(
	sources []driven.StatementSource,
	curations driven.CurationSource,
	cache driven.StatementCache,
	stores []driven.ReportStore,
	reports ReportAssembler,
	drugList DrugListAssembler,
	opts Options,
) *Pipeline {
	if opts.DrugListKey == "" {
		opts.DrugListKey = "drug_list.tsv"
	}
	return &Pipeline{
		sources:   sources,
		curations: curations,
		cache:     cache,
		stores:    stores,
		reports:   reports,
		drugList:  drugList,
		opts:      opts,
	}
}

// Run executes the pipeline for the given targets.
func (p *Pipeline) Run(ctx context.Context, targets []string) (*driving.RunResult, error) {
	if len(targets) == 0 {
		return nil, domain.ErrNoTargets
	}
	if len(p.sources) == 0 {
		return nil, domain.ErrNoSources
	}

	// Check every source is reachable before doing any work.
	for _, src := range p.sources {
		if err := src.Validate(ctx); err != nil {
			return nil, fmt.Errorf("validate %s source: %w", src.Type(), err)
		}
	}

	// The curation list is global; fetch it once.
	var curations []domain.Curation
	if p.curations != nil {
		var err error
		curations, err = p.curations.Curations(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetch curations: %w", err)
		}
		logger.Info("Loaded %d curations", len(curations))
	}

	result := &driving.RunResult{}
	var allStmts []*domain.Statement

	for _, target := range targets {
		logger.Section(target)

		stmts, err := p.assembleTarget(ctx, target, curations)
		if err != nil {
			return nil, fmt.Errorf("target %s: %w", target, err)
		}

		body, err := p.reports.Assemble(target, stmts)
		if err != nil {
			return nil, fmt.Errorf("target %s: %w", target, err)
		}

		obj := domain.ReportObject{
			Key:         target + ".html",
			ContentType: "text/html",
			Body:        body,
			Public:      true,
		}
		if err := p.store(ctx, obj); err != nil {
			return nil, fmt.Errorf("target %s: %w", target, err)
		}

		evTotal := 0
		for _, stmt := range stmts {
			evTotal += len(stmt.Evidence)
		}
		allStmts = append(allStmts, stmts...)
		result.Targets = append(result.Targets, driving.TargetResult{
			Target:     target,
			Statements: len(stmts),
			Evidence:   evTotal,
			Key:        obj.Key,
		})
	}

	// Aggregated drug list across all targets.
	entries := p.drugList.Aggregate(allStmts)
	obj := domain.ReportObject{
		Key:         p.opts.DrugListKey,
		ContentType: "text/tab-separated-values",
		Body:        p.drugList.Render(entries),
	}
	if err := p.store(ctx, obj); err != nil {
		return nil, fmt.Errorf("drug list: %w", err)
	}
	result.Drugs = len(entries)

	return result, nil
}

// assembleTarget runs the per-target stages: gather, misgrounding filter,
// evidence clean-up, preassembly, curation filter.
func (p *Pipeline) assembleTarget(ctx context.Context, target string, curations []domain.Curation) ([]*domain.Statement, error) {
	var gathered []*domain.Statement
	for _, src := range p.sources {
		stmts, err := p.gather(ctx, src, target)
		if err != nil {
			return nil, err
		}
		gathered = append(gathered, stmts...)
	}

	stmts := assembly.FilterMisgrounding(target, p.opts.Misgroundings, gathered)
	assembly.CleanEvidenceText(stmts)
	stmts = assembly.Preassemble(stmts)
	stmts = assembly.FilterByCuration(stmts, curations)

	logger.Info("Assembled %d statements for %s", len(stmts), target)
	return stmts, nil
}

// gather fetches one source's statements for a target, going through the
// cache when one is configured.
func (p *Pipeline) gather(ctx context.Context, src driven.StatementSource, target string) ([]*domain.Statement, error) {
	if p.cache != nil {
		cached, ok, err := p.cache.Get(ctx, src.Type(), target)
		if err != nil {
			logger.Warn("Cache read for %s/%s failed: %v", src.Type(), target, err)
		} else if ok {
			logger.Debug("Cache hit for %s/%s (%d statements)", src.Type(), target, len(cached))
			return cached, nil
		}
	}

	stmts, err := src.Inhibitors(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("fetch from %s: %w", src.Type(), err)
	}

	if p.cache != nil {
		if err := p.cache.Put(ctx, src.Type(), target, stmts); err != nil {
			logger.Warn("Cache write for %s/%s failed: %v", src.Type(), target, err)
		}
	}
	return stmts, nil
}

// store puts one object into every configured report store.
func (p *Pipeline) store(ctx context.Context, obj domain.ReportObject) error {
	for _, st := range p.stores {
		if err := st.Put(ctx, obj); err != nil {
			return fmt.Errorf("store %s in %s: %w", obj.Key, st.Location(), err)
		}
	}
	return nil
}
