package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Veraticus/exodo/internal/cli"
	"github.com/Veraticus/exodo/internal/config"
	"github.com/Veraticus/exodo/internal/storage"
)

type migrationStatus struct {
	Database string `json:"database"`
	Current  int    `json:"current_version"`
	Latest   int    `json:"latest_version"`
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Initialize or update the local database schema to the latest version.

Every command migrates on open, so this is mostly useful to create the
database up front or to check its version.`,
		RunE: runMigrate,
	}
	cmd.Flags().Bool("status", false, "Show the schema version without applying changes")
	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	status, _ := cmd.Flags().GetBool("status")
	ctx := cmd.Context()
	dbPath := config.DatabasePath()

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	if !status {
		slog.Info("Running database migrations", "database", dbPath)
		if err := store.Migrate(ctx); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	version, err := store.SchemaVersion(ctx)
	if err != nil {
		return err
	}
	st := migrationStatus{Database: dbPath, Current: version, Latest: storage.ExpectedSchemaVersion}

	return render(cmd, st, func(w io.Writer) error {
		if err := printLine(w, cli.RenderKeyValues([][2]string{
			{"Database", st.Database},
			{"Current version", fmt.Sprint(st.Current)},
			{"Latest version", fmt.Sprint(st.Latest)},
		})); err != nil {
			return err
		}
		if st.Current < st.Latest {
			return printLine(w, cli.FormatWarning("Migrations pending; run exodo migrate"))
		}
		return printLine(w, cli.FormatSuccess("Database is up to date"))
	})
}
