package main

import (
	"context"
	"fmt"
	"os"

	"bookloader/internal/catalog"
	"bookloader/internal/config"
	"bookloader/internal/ingest"
	"bookloader/internal/platform/logger"
	"bookloader/internal/platform/openlibrary"
	"bookloader/internal/platform/supabase"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	var (
		input    string
		store    string
		category string
		failFast bool
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import books listed in a CSV file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("input") {
				cfg.Import.InputPath = input
			}
			if len(args) == 1 {
				cfg.Import.InputPath = args[0]
			}
			if flags.Changed("store") {
				cfg.Import.Store = store
			}
			if flags.Changed("category") {
				cfg.Import.CategoryID = category
			}
			if flags.Changed("fail-fast") {
				cfg.Import.FailFast = failFast
			}
			cfg.Import.DryRun = dryRun

			return runImport(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "CSV file with Title and Author columns (default $INPUT_PATH or pdfs.csv)")
	cmd.Flags().StringVar(&store, "store", "", "Storage backend: rest or postgres (default $STORE or rest)")
	cmd.Flags().StringVar(&category, "category", "", "Category id applied to every imported book")
	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "Abort on the first row error")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Fetch and map rows without writing anything")
	return cmd
}

func runImport(ctx context.Context, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	log := logger.Init(cfg.Log.Env, cfg.Log.Level)

	repo, closeRepo, err := openRepository(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeRepo()

	f, err := os.Open(cfg.Import.InputPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	reader, err := ingest.NewReader(f)
	if err != nil {
		return fmt.Errorf("%s: %w", cfg.Import.InputPath, err)
	}

	olClient := openlibrary.NewClient(cfg.OpenLibrary.BaseURL, cfg.HTTP.UserAgent, cfg.HTTP.Timeout)
	mapper := ingest.NewMapper(cfg.OpenLibrary.BaseURL, cfg.OpenLibrary.CoversURL)
	svc := ingest.NewService(olClient, repo, mapper, ingest.Config{
		CategoryID: cfg.Import.CategoryID,
		FailFast:   cfg.Import.FailFast,
	}, log)

	log.Info().
		Str("input", cfg.Import.InputPath).
		Str("store", cfg.Import.Store).
		Bool("dry_run", cfg.Import.DryRun).
		Msg("starting import")

	_, err = svc.Run(ctx, reader)
	return err
}

func openRepository(ctx context.Context, cfg *config.Config, log zerolog.Logger) (catalog.Repository, func(), error) {
	if !cfg.Import.DryRun {
		return openStore(ctx, cfg, log)
	}

	// A dry run reads existing authors when the store is configured.
	if err := cfg.ValidateStore(); err != nil {
		log.Warn().Err(err).Msg("dry run without store access: existing authors are reported as new")
		return catalog.NewDryRunRepo(log, nil), func() {}, nil
	}
	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return catalog.NewDryRunRepo(log, store), closeStore, nil
}

func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (catalog.Repository, func(), error) {
	switch cfg.Import.Store {
	case config.StorePostgres:
		pool, err := openDB(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("dsn", redactDSN(cfg.Postgres.DSN)).Msg("database connection OK")
		return catalog.NewPostgresRepo(pool), pool.Close, nil
	default:
		client := supabase.NewClient(cfg.Supabase.URL, cfg.Supabase.Key, cfg.HTTP.Timeout)
		return catalog.NewRESTRepo(client), func() {}, nil
	}
}
