package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/exodo/internal/cli"
	"github.com/Veraticus/exodo/internal/engine"
	"github.com/Veraticus/exodo/internal/report"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Spending statistics, savings suggestions and predictions",
		RunE:  runReport,
	}
	cmd.Flags().Int("months", 6, "Number of calendar months to analyze")
	return cmd
}

func runReport(cmd *cobra.Command, _ []string) error {
	months, _ := cmd.Flags().GetInt("months")
	if months < 1 {
		return fmt.Errorf("--months must be at least 1")
	}

	return withEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
		sum, err := eng.Report(ctx, months)
		if err != nil {
			return err
		}
		return render(cmd, sum, func(w io.Writer) error {
			return printLine(w, renderReport(sum))
		})
	})
}

func renderReport(s report.Summary) string {
	var b strings.Builder

	b.WriteString(cli.FormatTitle(fmt.Sprintf("%s Last %d months", cli.ChartIcon, s.Months)))
	b.WriteString("\n")
	b.WriteString(cli.RenderKeyValues([][2]string{
		{"Total spent", cli.FormatMoney(s.Period.TotalPeriod)},
		{"Monthly average", cli.FormatMoney(s.Period.Average)},
		{"Lowest month", cli.FormatMoney(s.Period.Min)},
		{"Highest month", cli.FormatMoney(s.Period.Max)},
		{"Consistency", string(s.Period.Consistency)},
	}))
	b.WriteString("\n\n")

	if len(s.Categories) > 0 {
		rows := make([][]string, 0, len(s.Categories))
		for _, c := range s.Categories {
			current := 0.0
			if len(c.MonthlyValues) > 0 {
				current = c.MonthlyValues[0]
			}
			rows = append(rows, []string{
				c.CategoryName, cli.FormatMoney(current), cli.FormatMoney(c.Average),
				fmt.Sprintf("%+.1f%%", c.Variation), string(c.Trend),
			})
		}
		b.WriteString(cli.RenderTable([]string{"CATEGORY", "THIS MONTH", "AVERAGE", "VARIATION", "TREND"}, rows))
		b.WriteString("\n")
	}

	if len(s.Suggestions) > 0 {
		b.WriteString("\n")
		b.WriteString(cli.BoldStyle.Render(cli.MoneyIcon + " Suggestions"))
		b.WriteString("\n")
		for _, sg := range s.Suggestions {
			fmt.Fprintf(&b, "  [%s] %s: %s (save up to %s)\n", sg.Impact, sg.Title, sg.Description, cli.FormatMoney(sg.PotentialSavings))
		}
	}

	if len(s.Predictions) > 0 {
		b.WriteString("\n")
		b.WriteString(cli.BoldStyle.Render("Predictions"))
		b.WriteString("\n")
		for _, p := range s.Predictions {
			fmt.Fprintf(&b, "  %s  %s  risk %s  %s\n", p.Month, cli.FormatMoney(p.PredictedAmount), p.RiskLevel, cli.SubtleStyle.Render(p.Notes))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
