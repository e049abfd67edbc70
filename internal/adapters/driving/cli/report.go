package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/reachlab/targetreport/internal/adapters/driven/config/file"
	fsstore "github.com/reachlab/targetreport/internal/adapters/driven/storage/fs"
	s3store "github.com/reachlab/targetreport/internal/adapters/driven/storage/s3"
	"github.com/reachlab/targetreport/internal/adapters/driven/storage/sqlite"
	htmlasm "github.com/reachlab/targetreport/internal/assemblers/html"
	"github.com/reachlab/targetreport/internal/assemblers/tsv"
	"github.com/reachlab/targetreport/internal/connectors/statementdb"
	"github.com/reachlab/targetreport/internal/connectors/tas"
	"github.com/reachlab/targetreport/internal/core/ports/driven"
	"github.com/reachlab/targetreport/internal/core/services"
)

var (
	flagOutputDir  string
	flagSkipUpload bool
	flagNoCache    bool
)

var reportCmd = &cobra.Command{
	Use:   "report [target...]",
	Short: "Assemble and publish the drugs-for-target reports",
	Long: `Assembles inhibition statements for each target protein, renders one
HTML report per target plus the ranked drug list, writes them to the
local output directory, and uploads them to the configured bucket.
Targets default to the configured list when none are given.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&flagOutputDir, "output-dir", "",
		"local directory for rendered reports (default from config)")
	reportCmd.Flags().BoolVar(&flagSkipUpload, "skip-upload", false,
		"render locally without uploading to object storage")
	reportCmd.Flags().BoolVar(&flagNoCache, "no-cache", false,
		"bypass the local statement cache")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := file.Load(flagConfig)
	if err != nil {
		return err
	}

	targets := cfg.Targets
	if len(args) > 0 {
		targets = args
	}

	ctx := cmd.Context()

	// Statement sources: assay dataset first, then the statement
	// database, matching the assembly provenance order.
	var sources []driven.StatementSource
	if cfg.Assay.DatasetURL != "" {
		sources = append(sources, tas.New(tas.Config{DatasetURL: cfg.Assay.DatasetURL}))
	}
	db := statementdb.New(statementdb.Config{
		BaseURL:         cfg.StatementDB.BaseURL,
		APIKey:          cfg.StatementDB.APIKey,
		EvidenceLimit:   cfg.StatementDB.EvidenceLimit,
		ExcludedSources: cfg.StatementDB.ExcludedSources,
	})
	sources = append(sources, db)
	defer func() {
		for _, src := range sources {
			src.Close()
		}
	}()

	// Report stores: local directory always, bucket unless skipped.
	outputDir := cfg.Storage.OutputDir
	if flagOutputDir != "" {
		outputDir = flagOutputDir
	}
	local, err := fsstore.NewStore(outputDir)
	if err != nil {
		return err
	}
	stores := []driven.ReportStore{local}
	if !flagSkipUpload && cfg.Storage.Bucket != "" {
		remote, err := s3store.NewStore(ctx, cfg.Storage.Bucket, cfg.Storage.Prefix, cfg.Storage.Region)
		if err != nil {
			return err
		}
		stores = append(stores, remote)
	}

	var cache driven.StatementCache
	if cfg.Cache.Enabled && !flagNoCache {
		cache, err = sqlite.NewCache(cfg.Cache.Dir, time.Duration(cfg.Cache.TTLHours)*time.Hour)
		if err != nil {
			return err
		}
		defer cache.Close()
	}

	reports, err := htmlasm.New(cfg.StatementDB.BaseURL)
	if err != nil {
		return err
	}

	pipeline := services.NewPipeline(sources, db, cache, stores, reports, tsv.New(),
		services.Options{
			Misgroundings: cfg.Misgroundings,
			DrugListKey:   cfg.Storage.DrugListFile,
		})

	result, err := pipeline.Run(ctx, targets)
	if err != nil {
		return fmt.Errorf("report run failed: %w", err)
	}

	for _, tr := range result.Targets {
		cmd.Printf("%-10s %4d statements %6d evidence  -> %s\n",
			tr.Target, tr.Statements, tr.Evidence, tr.Key)
	}
	cmd.Printf("Drug list: %d compounds.\n", result.Drugs)
	for _, st := range stores {
		cmd.Printf("Reports written to %s\n", st.Location())
	}
	return nil
}
