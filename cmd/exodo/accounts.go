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

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "accounts",
		Aliases: []string{"account", "acc"},
		Short:   "Manage bank accounts",
		RunE:    runAccountsList,
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Add or update an account",
		RunE:  runAccountsAdd,
	}
	add.Flags().String("id", "", "Account ID (generated when empty; an existing ID updates the account)")
	add.Flags().String("name", "", "Account name")
	add.Flags().String("type", string(model.AccountChecking), "Account type (CORRENTE, POUPANCA, SALARIO, DINHEIRO, OUTRO)")
	add.Flags().String("bank", "", "Bank name")
	add.Flags().String("color", "", "Display color")
	add.Flags().Float64("initial", 0, "Initial balance")
	_ = add.MarkFlagRequired("name")

	cmd.AddCommand(
		&cobra.Command{Use: "list", Short: "List accounts with their balances", RunE: runAccountsList},
		add,
		deleteCmd("account", func(ctx context.Context, eng *engine.Engine, id string) error {
			return eng.DeleteAccount(ctx, id)
		}),
	)
	return cmd
}

func runAccountsList(cmd *cobra.Command, _ []string) error {
	return withEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
		accounts, err := eng.Accounts(ctx)
		if err != nil {
			return err
		}

		return render(cmd, accounts, func(w io.Writer) error {
			if len(accounts) == 0 {
				return printLine(w, cli.FormatInfo("No accounts yet. Add one with: exodo accounts add --name <name>"))
			}
			rows := make([][]string, 0, len(accounts))
			for _, a := range accounts {
				rows = append(rows, []string{a.ID, a.Name, string(a.Type), a.Bank, cli.FormatMoney(a.InitialBalance), cli.FormatSigned(a.CurrentBalance)})
			}
			if err := printLine(w, cli.RenderTable([]string{"ID", "NAME", "TYPE", "BANK", "INITIAL", "BALANCE"}, rows)); err != nil {
				return err
			}
			return printLine(w, cli.BoldStyle.Render("Total: ")+cli.FormatSigned(finance.TotalBalance(accounts)))
		})
	})
}

func runAccountsAdd(cmd *cobra.Command, _ []string) error {
	id, _ := cmd.Flags().GetString("id")
	name, _ := cmd.Flags().GetString("name")
	typ, _ := cmd.Flags().GetString("type")
	bank, _ := cmd.Flags().GetString("bank")
	color, _ := cmd.Flags().GetString("color")
	initial, _ := cmd.Flags().GetFloat64("initial")

	return withEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
		acc, err := eng.SaveAccount(ctx, model.Account{
			ID:             id,
			Name:           name,
			Type:           model.AccountType(strings.ToUpper(typ)),
			Bank:           bank,
			Color:          color,
			InitialBalance: initial,
		})
		if err != nil {
			return err
		}
		return printLine(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Saved account %s (%s)", acc.Name, acc.ID)))
	})
}
