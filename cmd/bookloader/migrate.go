package main

import (
	"fmt"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:       "migrate [up|down|status|create NAME]",
		Short:     "Create the catalog tables in a Postgres database (DB_DSN)",
		Args:      cobra.RangeArgs(0, 2),
		ValidArgs: []string{"up", "down", "status", "create"},
		RunE: func(cmd *cobra.Command, args []string) error {
			command := "up"
			if len(args) > 0 {
				command = args[0]
			}
			if dir == "" {
				dir = cfg.Postgres.MigrationsDir
			}

			if command == "create" {
				if len(args) < 2 {
					return fmt.Errorf("name is required for 'create' command")
				}
				if err := goose.Create(nil, dir, args[1], "sql"); err != nil {
					return fmt.Errorf("create migration: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Migration created: %s\n", args[1])
				return nil
			}

			if cfg.Postgres.DSN == "" {
				return fmt.Errorf("DB_DSN is required")
			}
			pool, err := openDB(cmd.Context(), cfg.Postgres.DSN)
			if err != nil {
				return err
			}
			defer pool.Close()

			db := stdlib.OpenDBFromPool(pool)
			defer db.Close()

			goose.SetBaseFS(nil)
			if err := goose.SetDialect("postgres"); err != nil {
				return err
			}

			switch command {
			case "up":
				if err := goose.UpContext(cmd.Context(), db, dir); err != nil {
					return fmt.Errorf("run migrations: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied successfully")
			case "down":
				if err := goose.DownContext(cmd.Context(), db, dir); err != nil {
					return fmt.Errorf("rollback migrations: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Migrations rolled back successfully")
			case "status":
				if err := goose.StatusContext(cmd.Context(), db, dir); err != nil {
					return fmt.Errorf("check migration status: %w", err)
				}
			default:
				return fmt.Errorf("unknown command: %s. Use: up, down, status, create", command)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Migrations directory (default $MIGRATIONS_DIR or db/migrations)")
	return cmd
}
