// Package main implements the entry point for the job seeker API server,
// which tracks a user's job search: profiles, companies, contacts, job
// postings and events.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/phrazzld/job-seeker-api/internal/platform/postgres"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Running the root command without a
// subcommand starts the server.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "job-seeker-api",
		Short: "Job search tracking API",
		Long: `Serves the job seeker REST API backed by PostgreSQL.

Configuration is read from SEEKER_* environment variables, an optional
.env file and an optional config.yaml in the working directory.`,
		SilenceUsage: true,
		RunE:         runServe,
	}

	root.AddCommand(
		&cobra.Command{
			Use:          "serve",
			Short:        "Start the HTTP server",
			Args:         cobra.NoArgs,
			SilenceUsage: true,
			RunE:         runServe,
		},
		&cobra.Command{
			Use:          "migrate [" + strings.Join(postgres.MigrationCommands, "|") + "]",
			Short:        "Apply or inspect database migrations",
			Args:         cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
			ValidArgs:    postgres.MigrationCommands,
			SilenceUsage: true,
			RunE:         runMigrate,
		},
		&cobra.Command{
			Use:          "reconcile",
			Short:        "Repair back-reference lists that disagree with the child tables",
			Args:         cobra.NoArgs,
			SilenceUsage: true,
			RunE:         runReconcile,
		},
	)
	return root
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	env, err := loadEnvironment(ctx)
	if err != nil {
		return err
	}
	defer env.close()

	app, err := newApplication(env.config, env.logger, postgresStores(env.db, env.logger))
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return app.Run(ctx)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	env, err := loadEnvironment(ctx)
	if err != nil {
		return err
	}
	defer env.close()

	return postgres.Migrate(ctx, env.db, args[0], env.logger)
}

func runReconcile(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	env, err := loadEnvironment(ctx)
	if err != nil {
		return err
	}
	defer env.close()

	app, err := newApplication(env.config, env.logger, postgresStores(env.db, env.logger))
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	report, err := app.reconciler.Reconcile(ctx)
	if err != nil {
		return fmt.Errorf("reconcile failed: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(),
		"scanned %d lists, repaired %d (dangling removed: %d, duplicates removed: %d, orphans linked: %d)\n",
		report.ListsScanned, report.ListsRepaired,
		report.DanglingRemoved, report.DuplicatesRemoved, report.OrphansLinked)
	return nil
}
