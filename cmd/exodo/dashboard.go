package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/exodo/internal/cli"
	"github.com/Veraticus/exodo/internal/engine"
	"github.com/Veraticus/exodo/internal/finance"
)

func dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"dash"},
		Short:   "Monthly overview of balances, incomes, expenses and card invoices",
		RunE:    runDashboard,
	}
	cmd.Flags().String("month", "", "Month to show (YYYY-MM, default current)")
	return cmd
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	month, _ := cmd.Flags().GetString("month")

	return withEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
		year, m, err := parseMonth(month, eng.Now())
		if err != nil {
			return err
		}
		d, err := eng.Dashboard(ctx, year, m)
		if err != nil {
			return err
		}
		return render(cmd, d, func(w io.Writer) error {
			return printLine(w, renderDashboard(d))
		})
	})
}

func renderDashboard(d finance.Dashboard) string {
	var b strings.Builder

	b.WriteString(cli.FormatTitle(fmt.Sprintf("%s Dashboard %s", cli.ChartIcon, d.Month)))
	b.WriteString("\n")

	b.WriteString(cli.RenderKeyValues([][2]string{
		{"Total balance", cli.FormatSigned(d.TotalBalance)},
		{"Month result", cli.FormatSigned(d.MonthResult)},
		{"Still to pay", cli.FormatMoney(d.ToPay)},
		{"Next month balance", cli.FormatSigned(d.NextBalance)},
		{"Outlook", d.Outlook},
	}))
	b.WriteString("\n\n")

	b.WriteString(cli.RenderBox("Incomes "+cli.FormatMoney(d.Income.Total), cli.RenderKeyValues([][2]string{
		{"Received", cli.FormatMoney(d.Income.Received)},
		{"Confirmed", cli.FormatMoney(d.Income.Confirmed)},
		{"Expected", cli.FormatMoney(d.Income.Predicted)},
		{"Overdue", cli.FormatMoney(d.Income.Overdue)},
	})))
	b.WriteString("\n")

	b.WriteString(cli.RenderBox("Expenses "+cli.FormatMoney(d.Expense.Total), cli.RenderKeyValues([][2]string{
		{"Paid", cli.FormatMoney(d.Expense.Paid)},
		{"Confirmed", cli.FormatMoney(d.Expense.Confirmed)},
		{"Expected", cli.FormatMoney(d.Expense.Predicted)},
		{"Overdue", cli.FormatMoney(d.Expense.Overdue)},
	})))

	if len(d.CardInvoices) > 0 {
		rows := make([][]string, 0, len(d.CardInvoices))
		for _, inv := range d.CardInvoices {
			rows = append(rows, []string{inv.CardName, inv.DueDate, cli.FormatMoney(inv.Amount)})
		}
		b.WriteString("\n")
		b.WriteString(cli.BoldStyle.Render(cli.CardIcon + " Card invoices"))
		b.WriteString("\n")
		b.WriteString(cli.RenderTable([]string{"CARD", "DUE", "AMOUNT"}, rows))
	}

	return b.String()
}
