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
	"github.com/Veraticus/exodo/internal/model"
)

func goalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "goals",
		Aliases: []string{"goal"},
		Short:   "Track savings goals",
		RunE:    runGoalsList,
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Add or update a goal",
		RunE:  runGoalsAdd,
	}
	add.Flags().String("id", "", "Goal ID (generated when empty; an existing ID updates the goal)")
	add.Flags().String("name", "", "Goal name")
	add.Flags().Float64("target", 0, "Target amount")
	add.Flags().Float64("current", 0, "Amount already saved")
	add.Flags().String("deadline", "", "Deadline (YYYY-MM-DD)")
	add.Flags().String("icon", "", "Icon name")
	_ = add.MarkFlagRequired("name")
	_ = add.MarkFlagRequired("target")

	contribute := &cobra.Command{
		Use:   "contribute <id> <amount>",
		Short: "Add money to a goal",
		Args:  cobra.ExactArgs(2),
		RunE:  runGoalsContribute,
	}
	contribute.Flags().String("note", "", "Note stored with the contribution")

	cmd.AddCommand(
		&cobra.Command{Use: "list", Short: "List goals and their progress", RunE: runGoalsList},
		add,
		contribute,
		deleteCmd("goal", func(ctx context.Context, eng *engine.Engine, id string) error {
			return eng.DeleteGoal(ctx, id)
		}),
	)
	return cmd
}

func runGoalsList(cmd *cobra.Command, _ []string) error {
	return withEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
		goals, err := eng.Backend().ListGoals(ctx)
		if err != nil {
			return fmt.Errorf("failed to load goals: %w", err)
		}

		return render(cmd, goals, func(w io.Writer) error {
			if len(goals) == 0 {
				return printLine(w, cli.FormatInfo("No goals yet"))
			}
			rows := make([][]string, 0, len(goals))
			for _, g := range goals {
				deadline := "-"
				if g.Deadline != nil {
					deadline = g.Deadline.Format("02/01/2006")
				}
				rows = append(rows, []string{
					g.ID, g.Name, cli.FormatMoney(g.CurrentAmount), cli.FormatMoney(g.TargetAmount),
					fmt.Sprintf("%.1f%%", finance.GoalProgress(g)), string(g.Status), deadline,
				})
			}
			return printLine(w, cli.RenderTable([]string{"ID", "GOAL", "SAVED", "TARGET", "PROGRESS", "STATUS", "DEADLINE"}, rows))
		})
	})
}

func runGoalsAdd(cmd *cobra.Command, _ []string) error {
	id, _ := cmd.Flags().GetString("id")
	name, _ := cmd.Flags().GetString("name")
	target, _ := cmd.Flags().GetFloat64("target")
	current, _ := cmd.Flags().GetFloat64("current")
	deadline, _ := cmd.Flags().GetString("deadline")
	icon, _ := cmd.Flags().GetString("icon")

	return withEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
		goal := model.Goal{
			ID:            id,
			Name:          name,
			Icon:          icon,
			TargetAmount:  target,
			CurrentAmount: current,
		}
		if deadline != "" {
			t, err := parseDate(deadline, eng.Now())
			if err != nil {
				return err
			}
			goal.Deadline = &t
		}

		saved, err := eng.SaveGoal(ctx, goal)
		if err != nil {
			return err
		}
		return printLine(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Saved goal %s (%s)", saved.Name, saved.ID)))
	})
}

func runGoalsContribute(cmd *cobra.Command, args []string) error {
	amount, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", args[1], err)
	}
	note, _ := cmd.Flags().GetString("note")

	return withEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
		goal, err := eng.Contribute(ctx, args[0], amount, note)
		if err != nil {
			return err
		}
		msg := fmt.Sprintf("%s: %s of %s (%.1f%%)", goal.Name,
			cli.FormatMoney(goal.CurrentAmount), cli.FormatMoney(goal.TargetAmount), finance.GoalProgress(goal))
		if goal.Status == model.GoalCompleted {
			msg += " " + cli.GoalIcon + " completed!"
		}
		return printLine(cmd.OutOrStdout(), cli.FormatSuccess(msg))
	})
}
