package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/exodo/internal/cli"
	"github.com/Veraticus/exodo/internal/engine"
	"github.com/Veraticus/exodo/internal/model"
)

func cardsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cards",
		Aliases: []string{"card"},
		Short:   "Manage credit cards",
		RunE:    runCardsList,
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Add or update a credit card",
		RunE:  runCardsAdd,
	}
	add.Flags().String("id", "", "Card ID (generated when empty; an existing ID updates the card)")
	add.Flags().String("name", "", "Card name")
	add.Flags().String("brand", string(model.BrandOther), "Brand (VISA, MASTERCARD, ELO, AMEX, HIPERCARD, OUTRO)")
	add.Flags().String("bank", "", "Issuing bank")
	add.Flags().String("color", "", "Display color")
	add.Flags().Float64("limit", 0, "Credit limit")
	add.Flags().Int("closing-day", 1, "Day of the month the invoice closes")
	add.Flags().Int("due-day", 10, "Day of the month the invoice is due")
	_ = add.MarkFlagRequired("name")

	cmd.AddCommand(
		&cobra.Command{Use: "list", Short: "List cards with their used limit", RunE: runCardsList},
		add,
		deleteCmd("card", func(ctx context.Context, eng *engine.Engine, id string) error {
			return eng.DeleteCard(ctx, id)
		}),
	)
	return cmd
}

func runCardsList(cmd *cobra.Command, _ []string) error {
	return withEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
		cards, err := eng.Cards(ctx)
		if err != nil {
			return err
		}

		return render(cmd, cards, func(w io.Writer) error {
			if len(cards) == 0 {
				return printLine(w, cli.FormatInfo("No cards yet. Add one with: exodo cards add --name <name> --limit <amount>"))
			}
			rows := make([][]string, 0, len(cards))
			for _, c := range cards {
				rows = append(rows, []string{
					c.ID, c.Name, string(c.Brand),
					cli.FormatMoney(c.Limit), cli.FormatMoney(c.LimitUsed), cli.FormatSigned(c.Available()),
					fmt.Sprintf("%d / %d", c.ClosingDay, c.DueDay),
				})
			}
			return printLine(w, cli.RenderTable([]string{"ID", "NAME", "BRAND", "LIMIT", "USED", "AVAILABLE", "CLOSE / DUE"}, rows))
		})
	})
}

func runCardsAdd(cmd *cobra.Command, _ []string) error {
	id, _ := cmd.Flags().GetString("id")
	name, _ := cmd.Flags().GetString("name")
	brand, _ := cmd.Flags().GetString("brand")
	bank, _ := cmd.Flags().GetString("bank")
	color, _ := cmd.Flags().GetString("color")
	limit, _ := cmd.Flags().GetFloat64("limit")
	closing, _ := cmd.Flags().GetInt("closing-day")
	due, _ := cmd.Flags().GetInt("due-day")

	return withEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
		card, err := eng.SaveCard(ctx, model.Card{
			ID:         id,
			Name:       name,
			Brand:      model.CardBrand(strings.ToUpper(brand)),
			Bank:       bank,
			Color:      color,
			Limit:      limit,
			ClosingDay: closing,
			DueDay:     due,
		})
		if err != nil {
			return err
		}
		return printLine(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Saved card %s (%s)", card.Name, card.ID)))
	})
}
