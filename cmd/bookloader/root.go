package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"bookloader/internal/config"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var cfg *config.Config

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "bookloader",
		Short: "Load books from a CSV file into the catalog using Open Library metadata",
		Long: `bookloader reads (Title, Author) rows from a CSV file, looks each one up on
the Open Library search API and stores the book, its author and its category
relation in the catalog database.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnvFiles()
			cfg = config.Load()
			return nil
		},
	}

	root.AddCommand(newImportCmd(), newMigrateCmd(), newVersionCmd())
	return root
}

// Execute is the entry point called from main.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		stop()
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "bookloader", version)
		},
	}
}
