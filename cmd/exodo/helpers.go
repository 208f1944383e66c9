package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/exodo/internal/cli"
	"github.com/Veraticus/exodo/internal/common"
	"github.com/Veraticus/exodo/internal/config"
	"github.com/Veraticus/exodo/internal/engine"
	"github.com/Veraticus/exodo/internal/model"
	"github.com/Veraticus/exodo/internal/storage"
)

// openStorage opens the local database and, when configured, the remote
// backend in front of it.
func openStorage(ctx context.Context) (*storage.Selection, error) {
	remoteCfg, err := config.LoadRemoteConfig()
	if err != nil {
		return nil, common.NewUserError("invalid remote configuration", err)
	}

	sel, err := storage.Open(ctx, storage.Options{
		Path:   config.DatabasePath(),
		Remote: remoteCfg,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	return sel, nil
}

// withEngine opens storage, builds an engine over it and runs fn. Unless
// refresh.on_start is off, overdue transactions and this month's recurring
// expenses are brought up to date first.
func withEngine(cmd *cobra.Command, fn func(context.Context, *engine.Engine) error) error {
	ctx := cmd.Context()

	sel, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := sel.Close(); err != nil {
			slog.Warn("Failed to close storage", "error", err)
		}
	}()

	eng := engine.New(sel.Backend)
	if viper.GetBool("refresh.on_start") {
		res, err := eng.Refresh(ctx)
		if err != nil {
			return fmt.Errorf("failed to refresh: %w", err)
		}
		slog.Debug("Refreshed", "overdue", res.Overdue, "generated", res.Generated)
	}

	return fn(ctx, eng)
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// render writes v as JSON when requested, otherwise calls table.
func render(cmd *cobra.Command, v any, table func(io.Writer) error) error {
	if jsonOutput() {
		return writeJSON(cmd.OutOrStdout(), v)
	}
	return table(cmd.OutOrStdout())
}

func printLine(w io.Writer, s string) error {
	_, err := fmt.Fprintln(w, s)
	return err
}

// parseDate reads YYYY-MM-DD, falling back to today when empty.
func parseDate(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, common.NewUserError(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", s), err)
	}
	return t, nil
}

// parseMonth reads YYYY-MM, falling back to now's month when empty.
func parseMonth(s string, now time.Time) (int, time.Month, error) {
	if s == "" {
		return now.Year(), now.Month(), nil
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, common.NewUserError(fmt.Sprintf("invalid month %q, expected YYYY-MM", s), err)
	}
	return t.Year(), t.Month(), nil
}

// parseTerms reads a comma-separated list of installment counts.
func parseTerms(s string) ([]int, error) {
	var terms []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, common.NewUserError(fmt.Sprintf("invalid installment count %q", part), err)
		}
		terms = append(terms, n)
	}
	return terms, nil
}

// confirmDelete asks before deleting unless --yes was given.
func confirmDelete(cmd *cobra.Command, what string) (bool, error) {
	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		return true, nil
	}
	ok, err := cli.Confirm(cmd.Context(), cli.NewLineReader(cmd.InOrStdin()), cmd.OutOrStdout(), fmt.Sprintf("Delete %s?", what))
	if errors.Is(err, cli.ErrInputCancelled) {
		return false, nil
	}
	return ok, err
}

// deleteCmd builds a "delete <id>" subcommand with a confirmation prompt.
func deleteCmd(kind string, del func(context.Context, *engine.Engine, string) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a " + kind,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := confirmDelete(cmd, fmt.Sprintf("%s %s", kind, args[0]))
			if err != nil || !ok {
				return err
			}
			return withEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
				if err := del(ctx, eng, args[0]); err != nil {
					return err
				}
				return printLine(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Deleted %s %s", kind, args[0])))
			})
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func categoryNames(cats []model.Category) map[string]string {
	names := make(map[string]string, len(cats))
	for _, c := range cats {
		names[c.ID] = c.Name
	}
	return names
}
