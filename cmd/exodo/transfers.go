package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Veraticus/exodo/internal/cli"
	"github.com/Veraticus/exodo/internal/engine"
	"github.com/Veraticus/exodo/internal/model"
)

func transfersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transfers",
		Aliases: []string{"transfer"},
		Short:   "Move money between accounts",
		RunE:    runTransfersList,
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Record a transfer",
		RunE:  runTransfersAdd,
	}
	add.Flags().String("from", "", "Source account ID")
	add.Flags().String("to", "", "Destination account ID")
	add.Flags().Float64P("amount", "a", 0, "Amount")
	add.Flags().String("date", "", "Date (YYYY-MM-DD, default today)")
	add.Flags().StringP("description", "d", "", "Description")
	_ = add.MarkFlagRequired("from")
	_ = add.MarkFlagRequired("to")
	_ = add.MarkFlagRequired("amount")

	cmd.AddCommand(
		&cobra.Command{Use: "list", Short: "List transfers", RunE: runTransfersList},
		add,
		deleteCmd("transfer", func(ctx context.Context, eng *engine.Engine, id string) error {
			return eng.DeleteTransfer(ctx, id)
		}),
	)
	return cmd
}

func runTransfersList(cmd *cobra.Command, _ []string) error {
	return withEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
		transfers, err := eng.Backend().ListTransfers(ctx)
		if err != nil {
			return fmt.Errorf("failed to load transfers: %w", err)
		}

		return render(cmd, transfers, func(w io.Writer) error {
			if len(transfers) == 0 {
				return printLine(w, cli.FormatInfo("No transfers yet"))
			}
			rows := make([][]string, 0, len(transfers))
			for _, t := range transfers {
				rows = append(rows, []string{t.ID, t.Date.Format("02/01/2006"), t.FromAccountID, t.ToAccountID, cli.FormatMoney(t.Amount), t.Description})
			}
			return printLine(w, cli.RenderTable([]string{"ID", "DATE", "FROM", "TO", "AMOUNT", "DESCRIPTION"}, rows))
		})
	})
}

func runTransfersAdd(cmd *cobra.Command, _ []string) error {
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	amount, _ := cmd.Flags().GetFloat64("amount")
	date, _ := cmd.Flags().GetString("date")
	desc, _ := cmd.Flags().GetString("description")

	return withEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
		when, err := parseDate(date, eng.Now())
		if err != nil {
			return err
		}
		tr, err := eng.SaveTransfer(ctx, model.Transfer{
			Date:          when,
			Description:   desc,
			FromAccountID: from,
			ToAccountID:   to,
			Amount:        amount,
		})
		if err != nil {
			return err
		}
		return printLine(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Transferred %s from %s to %s", cli.FormatMoney(tr.Amount), from, to)))
	})
}
