package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/exodo/internal/cli"
	"github.com/Veraticus/exodo/internal/common"
	"github.com/Veraticus/exodo/internal/engine"
	"github.com/Veraticus/exodo/internal/model"
	"github.com/Veraticus/exodo/internal/ofx"
	"github.com/Veraticus/exodo/internal/pattern"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.ofx>",
		Short: "Import transactions from an OFX/QFX statement",
		Long: `Import posted entries from a bank or credit card OFX/QFX statement.

Entries are stored as settled transactions. Each gets an ID derived from the
statement account and the bank's FITID, so importing the same file twice adds
nothing.

Categories come from the rules under import.rules in the config file, tried
by priority, then from built-in rules for common Brazilian descriptions.
Entries no rule matches keep --expense-category or --income-category.`,
		Example: `  exodo import extrato.ofx --account acc_main
  exodo import fatura.ofx --account acc_main --card card_nubank
  exodo import extrato.ofx --list-accounts`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}
	cmd.Flags().String("account", "", "Account receiving the entries")
	cmd.Flags().String("card", "", "Card receiving credit card statement entries")
	cmd.Flags().String("expense-category", "cat_casa", "Category for imported expenses")
	cmd.Flags().String("income-category", "cat_extra", "Category for imported incomes")
	cmd.Flags().Bool("dry-run", false, "Show what would be imported without saving")
	cmd.Flags().Bool("list-accounts", false, "List the statement accounts in the file and exit")
	cmd.Flags().Bool("no-rules", false, "Keep the default categories instead of applying import rules")
	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]
	account, _ := cmd.Flags().GetString("account")
	card, _ := cmd.Flags().GetString("card")
	expenseCat, _ := cmd.Flags().GetString("expense-category")
	incomeCat, _ := cmd.Flags().GetString("income-category")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	listAccounts, _ := cmd.Flags().GetBool("list-accounts")
	noRules, _ := cmd.Flags().GetBool("no-rules")

	f, err := os.Open(path) //nolint:gosec // user-provided statement
	if err != nil {
		return common.NewUserError(fmt.Sprintf("cannot open %s", path), err)
	}
	defer func() { _ = f.Close() }()

	parser := ofx.NewParser()
	ctx := cmd.Context()

	if listAccounts {
		accounts, err := parser.Accounts(ctx, f)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		return render(cmd, accounts, func(w io.Writer) error {
			for _, a := range accounts {
				if err := printLine(w, a); err != nil {
					return err
				}
			}
			return nil
		})
	}

	txns, err := parser.ParseFile(ctx, f, ofx.Options{
		AccountID:         account,
		CardID:            card,
		ExpenseCategoryID: expenseCat,
		IncomeCategoryID:  incomeCat,
	})
	if err != nil {
		return common.NewUserError(fmt.Sprintf("cannot import %s", path), err)
	}

	return withEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
		if noRules {
			slog.Debug("Categorization rules disabled")
		} else if err := categorize(ctx, eng, txns); err != nil {
			return err
		}

		if dryRun {
			return render(cmd, txns, func(w io.Writer) error {
				names, err := eng.Categories(ctx)
				if err != nil {
					return err
				}
				byID := categoryNames(names)
				rows := make([][]string, 0, len(txns))
				for _, t := range txns {
					rows = append(rows, []string{t.Date.Format("02/01/2006"), t.Description, byID[t.CategoryID], cli.FormatSigned(t.Signed()), string(t.PaymentMethod)})
				}
				if err := printLine(w, cli.RenderTable([]string{"DATE", "DESCRIPTION", "CATEGORY", "AMOUNT", "METHOD"}, rows)); err != nil {
					return err
				}
				return printLine(w, cli.FormatInfo(fmt.Sprintf("Dry run: %d transaction(s) parsed, nothing saved", len(txns))))
			})
		}

		res, err := eng.Import(ctx, txns)
		if err != nil {
			return err
		}
		return render(cmd, res, func(w io.Writer) error {
			return printLine(w, cli.FormatSuccess(fmt.Sprintf("Imported %d transaction(s), skipped %d already known", res.Added, res.Skipped)))
		})
	})
}

// categorize applies the configured import rules, followed by the built-in
// ones unless import.default_rules is false.
func categorize(ctx context.Context, eng *engine.Engine, txns []model.Transaction) error {
	var rules []pattern.Rule
	if err := viper.UnmarshalKey("import.rules", &rules); err != nil {
		return common.NewUserError("invalid import.rules configuration", err)
	}
	if viper.GetBool("import.default_rules") {
		rules = append(rules, pattern.DefaultRules()...)
	}
	if len(rules) == 0 {
		return nil
	}

	matcher, err := pattern.NewMatcher(rules)
	if err != nil {
		return common.NewUserError("invalid import rule", err)
	}
	categories, err := eng.Categories(ctx)
	if err != nil {
		return err
	}

	changed := matcher.Categorize(txns, categories)
	slog.Info("Categorized imported transactions", "matched", changed, "total", len(txns))
	return nil
}
