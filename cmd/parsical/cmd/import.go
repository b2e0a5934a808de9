package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/parsical/internal/database"
	"github.com/zapponejosh/parsical/internal/eventfile"
)

func newImportCmd(opts *options) *cobra.Command {
	var dbPath string
	var dryRun bool

	c := &cobra.Command{
		Use:   "import FILE",
		Short: "Load calendar events from a YAML, TOML or JSON file",
		Long: `Load calendar events into the SQLite database used by the API.

The file format follows the extension (.yaml, .yml, .toml, .json) and
holds one "events" list of {title, at} entries, with "at" written
YYYY/MM/DD or "YYYY/MM/DD HH:MM:SS".

The database is created and migrated if needed. All events are stored in
a single transaction: if any event is rejected, nothing is imported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := opts.logger(cmd.ErrOrStderr())
			ctx := cmd.Context()
			startTime := time.Now()

			// =================================================================
			// Step 1: Read and parse the event file
			// =================================================================
			logger.Info("reading event file", slog.String("path", args[0]))

			events, err := eventfile.Load(args[0])
			if err != nil {
				return err
			}
			logger.Info("parsed event file", slog.Int("events", len(events)))

			if dryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "%d events OK (dry run, nothing stored)\n", len(events))
				return nil
			}

			// =================================================================
			// Step 2: Open database and run migrations
			// =================================================================
			db, err := database.Open(database.DefaultConfig(dbPath), logger)
			if err != nil {
				return err
			}
			defer db.Close()

			migrated, err := db.Migrate(ctx)
			if err != nil {
				return fmt.Errorf("run migrations: %w", err)
			}
			logger.Info("migrations complete", slog.Int("applied", migrated))

			// =================================================================
			// Step 3: Import in one transaction and verify
			// =================================================================
			if err := db.ImportEvents(ctx, events); err != nil {
				return fmt.Errorf("import events: %w", err)
			}

			total, err := db.CountEvents(ctx)
			if err != nil {
				return err
			}

			elapsed := time.Since(startTime)
			logger.Info("import verified",
				slog.Int("imported", len(events)),
				slog.Int("total_events", total),
				slog.Duration("elapsed", elapsed),
			)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "=== Import Summary ===")
			fmt.Fprintf(out, "Events imported:  %d\n", len(events))
			fmt.Fprintf(out, "Events in store:  %d\n", total)
			fmt.Fprintf(out, "Time elapsed:     %v\n", elapsed.Round(time.Millisecond))
			return nil
		},
	}
	c.Flags().StringVar(&dbPath, "db", opts.cfg.DatabasePath, "Path to SQLite database")
	c.Flags().BoolVar(&dryRun, "dry-run", false, "Validate the file without touching the database")
	return c
}
