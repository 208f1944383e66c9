package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/exodo/internal/cli"
	"github.com/Veraticus/exodo/internal/common"
	"github.com/Veraticus/exodo/internal/engine"
	"github.com/Veraticus/exodo/internal/simulate"
	"github.com/Veraticus/exodo/internal/tui"
)

func simulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Compare paying an amount at once against installment plans",
		Long: `Simulate paying an amount at once and in fixed-rate installments, grading
each option against the monthly budget and recommending one.

The budget defaults to the current month's result (incomes minus expenses).`,
		Example: `  exodo simulate --amount 3000 --budget 1000
  exodo simulate --amount 3000 --terms 2,4,10 --rate 1.99
  exodo simulate --amount 3000 --interactive --category cat_card`,
		RunE: runSimulate,
	}
	cmd.Flags().Float64P("amount", "a", 0, "Amount to pay")
	cmd.Flags().Float64P("budget", "b", 0, "Monthly budget available (default: this month's result)")
	cmd.Flags().Float64P("rate", "r", simulate.DefaultRatePct, "Monthly interest rate in percent")
	cmd.Flags().StringP("terms", "t", "3,6,12", "Installment counts to compare")
	cmd.Flags().String("first-payment", "", "Date of the first payment (YYYY-MM-DD, default today)")
	cmd.Flags().BoolP("interactive", "i", false, "Browse scenarios in an interactive table")
	cmd.Flags().Bool("apply", false, "Record the recommended scenario as planned expenses")
	cmd.Flags().StringP("category", "c", "cat_card", "Category of the recorded expenses")
	_ = cmd.MarkFlagRequired("amount")

	_ = viper.BindPFlag("simulate.rate", cmd.Flags().Lookup("rate"))
	_ = viper.BindPFlag("simulate.terms", cmd.Flags().Lookup("terms"))
	return cmd
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	amount, _ := cmd.Flags().GetFloat64("amount")
	budget, _ := cmd.Flags().GetFloat64("budget")
	first, _ := cmd.Flags().GetString("first-payment")
	interactive, _ := cmd.Flags().GetBool("interactive")
	apply, _ := cmd.Flags().GetBool("apply")
	category, _ := cmd.Flags().GetString("category")

	terms, err := parseTerms(viper.GetString("simulate.terms"))
	if err != nil {
		return err
	}

	return withEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
		firstPayment, err := parseDate(first, eng.Now())
		if err != nil {
			return err
		}

		if !cmd.Flags().Changed("budget") {
			now := eng.Now()
			d, err := eng.Dashboard(ctx, now.Year(), now.Month())
			if err != nil {
				return err
			}
			budget = d.MonthResult
		}

		in := simulate.Input{
			FirstPayment: firstPayment,
			Terms:        terms,
			Amount:       amount,
			Budget:       budget,
			RatePct:      viper.GetFloat64("simulate.rate"),
		}

		if interactive {
			return runInteractiveSimulation(ctx, cmd, eng, in, category)
		}

		res, err := simulate.Simulate(in)
		if err != nil {
			return common.NewUserError("cannot simulate", err)
		}

		if err := render(cmd, res, func(w io.Writer) error {
			return renderSimulation(w, in, res)
		}); err != nil {
			return err
		}

		if apply {
			return applyScenario(ctx, cmd, eng, res.Recommended, category)
		}
		return nil
	})
}

func runInteractiveSimulation(ctx context.Context, cmd *cobra.Command, eng *engine.Engine, in simulate.Input, category string) error {
	if _, err := simulate.Simulate(in); err != nil {
		return common.NewUserError("cannot simulate", err)
	}

	s, chosen, err := tui.RunSimulator(ctx, in)
	if err != nil {
		return err
	}
	if !chosen {
		return printLine(cmd.OutOrStdout(), cli.FormatInfo("Nothing recorded"))
	}
	return applyScenario(ctx, cmd, eng, s, category)
}

func applyScenario(ctx context.Context, cmd *cobra.Command, eng *engine.Engine, s simulate.Scenario, category string) error {
	created, err := eng.ApplyScenario(ctx, s, category)
	if err != nil {
		return err
	}
	return printLine(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Recorded %d planned payment(s) of %s", len(created), cli.FormatMoney(s.Payment))))
}

func renderSimulation(w io.Writer, in simulate.Input, res simulate.Result) error {
	if err := printLine(w, cli.FormatTitle(fmt.Sprintf("%s %s at %.2f%% a month, budget %s",
		cli.MoneyIcon, cli.FormatMoney(in.Amount), in.RatePct, cli.FormatMoney(in.Budget)))); err != nil {
		return err
	}

	rows := make([][]string, 0, len(res.Scenarios))
	for _, s := range res.Scenarios {
		plan := "Spot"
		if !s.IsSpot() {
			plan = strconv.Itoa(s.Installments) + "x"
		}
		if s.Installments == res.Recommended.Installments {
			plan += " *"
		}
		rows = append(rows, []string{
			plan,
			cli.FormatMoney(s.Payment),
			cli.FormatMoney(s.Total),
			cli.FormatMoney(s.Interest),
			fmt.Sprintf("%.2f%%", s.EffectiveCost),
			fmt.Sprintf("%.1f%%", s.BudgetImpact),
			cli.FormatSigned(s.BalanceAfter),
			viability(s.Viability),
		})
	}
	if err := printLine(w, cli.RenderTable([]string{"PLAN", "PAYMENT", "TOTAL", "INTEREST", "CET", "IMPACT", "BALANCE", "VIABILITY"}, rows)); err != nil {
		return err
	}
	return printLine(w, cli.SubtleStyle.Render("* recommended"))
}

func viability(v simulate.Viability) string {
	switch v {
	case simulate.ViabilityGood:
		return cli.SuccessStyle.Render(string(v))
	case simulate.ViabilityWarning:
		return cli.WarningStyle.Render(string(v))
	default:
		return cli.ErrorStyle.Render(string(v))
	}
}
