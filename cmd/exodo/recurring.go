package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/exodo/internal/cli"
	"github.com/Veraticus/exodo/internal/engine"
	"github.com/Veraticus/exodo/internal/model"
)

func recurringCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recurring",
		Short: "Manage monthly recurring expenses",
		RunE:  runRecurringList,
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Add or update a recurring expense",
		Long: `Add a monthly expense template. Active templates with auto-create on
generate one planned expense per month, on the given day (clamped to the end
of short months).`,
		RunE: runRecurringAdd,
	}
	add.Flags().String("id", "", "Rule ID (generated when empty; an existing ID updates the rule)")
	add.Flags().StringP("description", "d", "", "Description")
	add.Flags().Float64P("amount", "a", 0, "Monthly amount")
	add.Flags().StringP("category", "c", "", "Category ID")
	add.Flags().Int("day", 1, "Day of the month")
	add.Flags().String("account", "", "Account ID")
	add.Flags().StringP("method", "m", "", "Payment method")
	add.Flags().Bool("variable", false, "The amount is an estimate")
	add.Flags().Bool("no-auto", false, "Do not generate transactions automatically")
	add.Flags().Bool("inactive", false, "Create the rule paused")
	add.Flags().String("start", "", "First month it applies (YYYY-MM-DD)")
	add.Flags().String("end", "", "Last month it applies (YYYY-MM-DD)")
	_ = add.MarkFlagRequired("description")
	_ = add.MarkFlagRequired("amount")
	_ = add.MarkFlagRequired("category")

	cmd.AddCommand(
		&cobra.Command{Use: "list", Short: "List recurring expenses", RunE: runRecurringList},
		add,
		deleteCmd("recurring expense", func(ctx context.Context, eng *engine.Engine, id string) error {
			return eng.DeleteRecurring(ctx, id)
		}),
	)
	return cmd
}

func runRecurringList(cmd *cobra.Command, _ []string) error {
	return withEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
		rules, err := eng.Backend().ListRecurring(ctx)
		if err != nil {
			return fmt.Errorf("failed to load recurring expenses: %w", err)
		}

		return render(cmd, rules, func(w io.Writer) error {
			if len(rules) == 0 {
				return printLine(w, cli.FormatInfo("No recurring expenses yet"))
			}
			var monthly float64
			rows := make([][]string, 0, len(rules))
			for _, r := range rules {
				last := "-"
				if r.LastGenerated != nil {
					last = r.LastGenerated.Format("02/01/2006")
				}
				if r.Active {
					monthly += r.Amount
				}
				rows = append(rows, []string{
					r.ID, r.Description, cli.FormatMoney(r.Amount), strconv.Itoa(r.DayOfMonth),
					string(r.Type), strconv.FormatBool(r.Active), strconv.FormatBool(r.AutoCreate), last,
				})
			}
			if err := printLine(w, cli.RenderTable([]string{"ID", "DESCRIPTION", "AMOUNT", "DAY", "TYPE", "ACTIVE", "AUTO", "LAST"}, rows)); err != nil {
				return err
			}
			return printLine(w, cli.BoldStyle.Render("Monthly commitment: ")+cli.FormatMoney(monthly))
		})
	})
}

func runRecurringAdd(cmd *cobra.Command, _ []string) error {
	id, _ := cmd.Flags().GetString("id")
	desc, _ := cmd.Flags().GetString("description")
	amount, _ := cmd.Flags().GetFloat64("amount")
	category, _ := cmd.Flags().GetString("category")
	day, _ := cmd.Flags().GetInt("day")
	account, _ := cmd.Flags().GetString("account")
	method, _ := cmd.Flags().GetString("method")
	variable, _ := cmd.Flags().GetBool("variable")
	noAuto, _ := cmd.Flags().GetBool("no-auto")
	inactive, _ := cmd.Flags().GetBool("inactive")
	start, _ := cmd.Flags().GetString("start")
	end, _ := cmd.Flags().GetString("end")

	return withEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
		rule := model.RecurringExpense{
			ID:            id,
			Description:   desc,
			CategoryID:    category,
			Type:          model.RecurrenceFixed,
			AccountID:     account,
			PaymentMethod: model.PaymentMethod(strings.ToUpper(method)),
			Amount:        amount,
			DayOfMonth:    day,
			Active:        !inactive,
			AutoCreate:    !noAuto,
		}
		if variable {
			rule.Type = model.RecurrenceVariable
		}
		if start != "" {
			t, err := parseDate(start, eng.Now())
			if err != nil {
				return err
			}
			rule.StartDate = &t
		}
		if end != "" {
			t, err := parseDate(end, eng.Now())
			if err != nil {
				return err
			}
			rule.EndDate = &t
		}

		saved, err := eng.SaveRecurring(ctx, rule)
		if err != nil {
			return err
		}
		return printLine(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Saved recurring expense %s (%s)", saved.Description, saved.ID)))
	})
}
