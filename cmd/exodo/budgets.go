package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Veraticus/exodo/internal/cli"
	"github.com/Veraticus/exodo/internal/engine"
	"github.com/Veraticus/exodo/internal/finance"
)

func budgetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "budgets",
		Aliases: []string{"budget"},
		Short:   "Monthly spending limits per category",
		RunE:    runBudgetsList,
	}

	set := &cobra.Command{
		Use:   "set <category-id> <amount>",
		Short: "Set the monthly limit of a category",
		Args:  cobra.ExactArgs(2),
		RunE:  runBudgetsSet,
	}

	cmd.AddCommand(
		&cobra.Command{Use: "list", Short: "Show this month's spending against each budget", RunE: runBudgetsList},
		set,
		deleteCmd("budget", func(ctx context.Context, eng *engine.Engine, id string) error {
			return eng.DeleteBudget(ctx, id)
		}),
	)
	return cmd
}

func runBudgetsList(cmd *cobra.Command, _ []string) error {
	return withEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
		statuses, err := eng.BudgetStatuses(ctx)
		if err != nil {
			return err
		}

		return render(cmd, statuses, func(w io.Writer) error {
			if len(statuses) == 0 {
				return printLine(w, cli.FormatInfo("No budgets yet. Set one with: exodo budgets set <category-id> <amount>"))
			}
			rows := make([][]string, 0, len(statuses))
			for _, s := range statuses {
				rows = append(rows, []string{
					s.Budget.ID, s.CategoryName, cli.FormatMoney(s.Spent), cli.FormatMoney(s.Budget.Amount),
					fmt.Sprintf("%.1f%%", s.Percent), cli.FormatSigned(s.Remaining), budgetLevel(s),
				})
			}
			return printLine(w, cli.RenderTable([]string{"ID", "CATEGORY", "SPENT", "LIMIT", "USED", "REMAINING", "STATUS"}, rows))
		})
	})
}

func budgetLevel(s finance.BudgetStatus) string {
	label := string(s.Level)
	switch s.Level {
	case finance.BudgetExceeded:
		label = cli.ErrorStyle.Render(label)
	case finance.BudgetWarning:
		label = cli.WarningStyle.Render(label)
	default:
		label = cli.SuccessStyle.Render(label)
	}
	if s.Alert {
		label += " " + cli.WarningIcon
	}
	return label
}

func runBudgetsSet(cmd *cobra.Command, args []string) error {
	amount, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", args[1], err)
	}

	return withEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
		b, err := eng.SetBudget(ctx, args[0], amount)
		if err != nil {
			return err
		}
		return printLine(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Budget for %s set to %s", b.CategoryID, cli.FormatMoney(b.Amount))))
	})
}
