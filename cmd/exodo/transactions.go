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
	"github.com/Veraticus/exodo/internal/model"
)

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tx",
		Aliases: []string{"transactions", "transaction"},
		Short:   "Manage incomes and expenses",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		RunE:  runTransactionsList,
	}
	list.Flags().String("month", "", "Only this month (YYYY-MM)")
	list.Flags().String("type", "", "RECEITA or DESPESA")
	list.Flags().String("status", "", "PREVISTA, CONFIRMADA, PAGA, RECEBIDA or ATRASADA")
	list.Flags().String("category", "", "Category ID")
	list.Flags().String("account", "", "Account ID")
	list.Flags().String("card", "", "Card ID")
	list.Flags().Int("limit", 0, "Show at most this many transactions")

	add := &cobra.Command{
		Use:   "add",
		Short: "Add or update a transaction",
		Long: `Add an income or expense. With --installments N greater than 1 the
transaction is the first of N monthly installments and the remaining ones are
created as planned expenses, one month apart. --amount is then the purchase
total and each installment carries an equal share.`,
		RunE: runTransactionsAdd,
	}
	add.Flags().String("id", "", "Transaction ID (generated when empty; an existing ID updates it)")
	add.Flags().StringP("description", "d", "", "Description")
	add.Flags().Float64P("amount", "a", 0, "Amount, always positive; the purchase total when --installments is set")
	add.Flags().StringP("type", "t", string(model.DirectionExpense), "RECEITA or DESPESA")
	add.Flags().StringP("category", "c", "", "Category ID")
	add.Flags().String("date", "", "Date (YYYY-MM-DD, default today)")
	add.Flags().String("status", "", "Status (default PAGA for expenses, RECEBIDA for incomes)")
	add.Flags().StringP("method", "m", "", "Payment method (CREDITO, DEBITO, DINHEIRO, PIX, BOLETO, TRANSFERENCIA)")
	add.Flags().String("account", "", "Account ID")
	add.Flags().String("card", "", "Card ID, for CREDITO")
	add.Flags().Int("installments", 1, "Number of monthly installments")
	add.Flags().String("observation", "", "Free-form note")
	_ = add.MarkFlagRequired("description")
	_ = add.MarkFlagRequired("amount")
	_ = add.MarkFlagRequired("category")

	settle := &cobra.Command{
		Use:   "settle <id>",
		Short: "Mark a transaction paid or received",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
				txn, err := eng.SettleTransaction(ctx, args[0])
				if err != nil {
					return err
				}
				return printLine(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("%s is now %s", txn.Description, txn.Status)))
			})
		},
	}

	confirm := &cobra.Command{
		Use:   "confirm <id>",
		Short: "Mark a planned transaction as confirmed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
				txn, err := eng.ConfirmTransaction(ctx, args[0])
				if err != nil {
					return err
				}
				return printLine(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("%s is now %s", txn.Description, txn.Status)))
			})
		},
	}

	cmd.AddCommand(list, add, settle, confirm,
		deleteCmd("transaction", func(ctx context.Context, eng *engine.Engine, id string) error {
			return eng.DeleteTransaction(ctx, id)
		}),
	)
	return cmd
}

func runTransactionsList(cmd *cobra.Command, _ []string) error {
	month, _ := cmd.Flags().GetString("month")
	typ, _ := cmd.Flags().GetString("type")
	status, _ := cmd.Flags().GetString("status")
	category, _ := cmd.Flags().GetString("category")
	account, _ := cmd.Flags().GetString("account")
	card, _ := cmd.Flags().GetString("card")
	limit, _ := cmd.Flags().GetInt("limit")

	return withEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
		filter := engine.TransactionFilter{
			Direction:  model.Direction(strings.ToUpper(typ)),
			Status:     model.Status(strings.ToUpper(status)),
			CategoryID: category,
			AccountID:  account,
			CardID:     card,
		}
		if month != "" {
			year, m, err := parseMonth(month, eng.Now())
			if err != nil {
				return err
			}
			filter.Year, filter.Month = year, m
		}

		txns, err := eng.Transactions(ctx, filter)
		if err != nil {
			return err
		}
		if limit > 0 && len(txns) > limit {
			txns = txns[:limit]
		}

		cats, err := eng.Categories(ctx)
		if err != nil {
			return err
		}
		names := categoryNames(cats)

		return render(cmd, txns, func(w io.Writer) error {
			if len(txns) == 0 {
				return printLine(w, cli.FormatInfo("No transactions found"))
			}
			rows := make([][]string, 0, len(txns))
			for _, t := range txns {
				rows = append(rows, []string{
					t.ID,
					t.Date.Format("02/01/2006"),
					describe(t),
					names[t.CategoryID],
					cli.FormatSigned(t.Signed()),
					cli.FormatStatus(t.Status),
					string(t.PaymentMethod),
				})
			}
			return printLine(w, cli.RenderTable([]string{"ID", "DATE", "DESCRIPTION", "CATEGORY", "AMOUNT", "STATUS", "METHOD"}, rows))
		})
	})
}

func describe(t model.Transaction) string {
	if t.Installments != nil && t.Installments.Total > 1 {
		return fmt.Sprintf("%s (%d/%d)", t.Description, t.Installments.Current, t.Installments.Total)
	}
	return t.Description
}

func runTransactionsAdd(cmd *cobra.Command, _ []string) error {
	id, _ := cmd.Flags().GetString("id")
	desc, _ := cmd.Flags().GetString("description")
	amount, _ := cmd.Flags().GetFloat64("amount")
	typ, _ := cmd.Flags().GetString("type")
	category, _ := cmd.Flags().GetString("category")
	date, _ := cmd.Flags().GetString("date")
	status, _ := cmd.Flags().GetString("status")
	method, _ := cmd.Flags().GetString("method")
	account, _ := cmd.Flags().GetString("account")
	card, _ := cmd.Flags().GetString("card")
	installments, _ := cmd.Flags().GetInt("installments")
	observation, _ := cmd.Flags().GetString("observation")

	return withEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
		when, err := parseDate(date, eng.Now())
		if err != nil {
			return err
		}

		txn := model.Transaction{
			Date:          when,
			ID:            id,
			Description:   desc,
			Direction:     model.Direction(strings.ToUpper(typ)),
			CategoryID:    category,
			Status:        model.Status(strings.ToUpper(status)),
			PaymentMethod: model.PaymentMethod(strings.ToUpper(method)),
			AccountID:     account,
			CardID:        card,
			Observation:   observation,
			Amount:        amount,
		}
		if txn.Status == "" {
			txn.Status = model.SettledStatus(txn.Direction)
		}
		if card != "" && txn.PaymentMethod == "" {
			txn.PaymentMethod = model.PaymentCredit
		}
		if installments > 1 {
			txn.Amount = finance.SplitAmount(amount, installments)
			txn.Installments = &model.Installments{Current: 1, Total: installments}
		}

		saved, err := eng.SaveTransaction(ctx, txn)
		if err != nil {
			return err
		}
		msg := fmt.Sprintf("Saved %s (%s)", saved[0].Description, saved[0].ID)
		if len(saved) > 1 {
			msg += fmt.Sprintf(" and %d more installments", len(saved)-1)
		}
		return printLine(cmd.OutOrStdout(), cli.FormatSuccess(msg))
	})
}
