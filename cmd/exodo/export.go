package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/exodo/internal/cli"
	"github.com/Veraticus/exodo/internal/common"
	"github.com/Veraticus/exodo/internal/engine"
	"github.com/Veraticus/exodo/internal/model"
	"github.com/Veraticus/exodo/internal/report"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export transactions as CSV or JSON",
		Long: `Export transactions oldest first. CSV output uses ";" as the separator, a
decimal comma and a UTF-8 byte order mark so spreadsheets open it directly.

Columns: date, description, category, amount, type, status, payment_method,
observation.`,
		Example: `  exodo export --file transacoes.csv
  exodo export --format json --months 3
  exodo export --columns date,description,amount --direction DESPESA`,
		RunE: runExport,
	}
	cmd.Flags().StringP("format", "f", engine.FormatCSV, "Output format (csv, json)")
	cmd.Flags().String("columns", "", "Comma-separated columns (default: date,description,category,amount,type,status)")
	cmd.Flags().Int("months", 0, "Only the last N calendar months (0 exports everything)")
	cmd.Flags().String("file", "", "Write to a file instead of stdout")
	cmd.Flags().String("category", "", "Only this category")
	cmd.Flags().String("direction", "", "Only RECEITA or DESPESA")
	cmd.Flags().String("status", "", "Only this status")
	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	columns, _ := cmd.Flags().GetString("columns")
	months, _ := cmd.Flags().GetInt("months")
	file, _ := cmd.Flags().GetString("file")
	category, _ := cmd.Flags().GetString("category")
	direction, _ := cmd.Flags().GetString("direction")
	status, _ := cmd.Flags().GetString("status")

	cols, err := report.ParseColumns(columns)
	if err != nil {
		return common.NewUserError("invalid --columns", err)
	}

	opts := engine.ExportOptions{
		Format:  strings.ToLower(format),
		Columns: cols,
		Months:  months,
		Filter: engine.TransactionFilter{
			CategoryID: category,
			Direction:  model.Direction(strings.ToUpper(direction)),
			Status:     model.Status(strings.ToUpper(status)),
		},
	}

	return withEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
		var w io.Writer = cmd.OutOrStdout()
		if file != "" {
			f, err := os.Create(file) //nolint:gosec // user-chosen output path
			if err != nil {
				return common.NewUserError(fmt.Sprintf("cannot create %s", file), err)
			}
			defer func() { _ = f.Close() }()
			w = f
		}

		n, err := eng.Export(ctx, w, opts)
		if err != nil {
			return err
		}
		if file != "" {
			return printLine(cmd.ErrOrStderr(), cli.FormatSuccess(fmt.Sprintf("Exported %d transaction(s) to %s", n, file)))
		}
		return nil
	})
}
