package main

import (
	"context"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Veraticus/exodo/internal/cli"
	"github.com/Veraticus/exodo/internal/engine"
	"github.com/Veraticus/exodo/internal/finance"
)

func projectionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projection",
		Aliases: []string{"forecast"},
		Short:   "Project balances for the coming months",
		Long: `Walk forward from the current month. Each month starts where the previous
one ended; active recurring expenses without a transaction yet are counted at
their template amount.`,
		RunE: runProjection,
	}
	cmd.Flags().Int("months", 6, "Number of months to project")
	return cmd
}

func runProjection(cmd *cobra.Command, _ []string) error {
	months, _ := cmd.Flags().GetInt("months")

	return withEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
		proj, err := eng.Projection(ctx, months)
		if err != nil {
			return err
		}

		return render(cmd, proj, func(w io.Writer) error {
			rows := make([][]string, 0, len(proj))
			for _, p := range proj {
				rows = append(rows, []string{
					p.Month,
					cli.FormatSigned(p.StartBalance),
					cli.FormatMoney(p.Incomes),
					cli.FormatMoney(p.Expenses),
					cli.FormatSigned(p.EndBalance),
					outlook(p.Status),
					strconv.Itoa(len(p.Recurring)),
				})
			}
			return printLine(w, cli.RenderTable([]string{"MONTH", "START", "INCOMES", "EXPENSES", "END", "OUTLOOK", "RECURRING"}, rows))
		})
	})
}

func outlook(status string) string {
	if status == finance.OutlookNegative {
		return cli.ErrorStyle.Render(status)
	}
	return cli.SuccessStyle.Render(status)
}
