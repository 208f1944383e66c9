package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/exodo/internal/cli"
	"github.com/Veraticus/exodo/internal/engine"
)

func refreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Mark overdue transactions and generate this month's recurring expenses",
		Long: `Bring stored data up to date: pending transactions dated before today become
overdue and active recurring expenses get this month's planned transaction.

Every command does this on start unless refresh.on_start is false.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// The explicit command always refreshes exactly once.
			viper.Set("refresh.on_start", false)

			return withEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
				res, err := eng.Refresh(ctx)
				if err != nil {
					return err
				}
				return render(cmd, res, func(w io.Writer) error {
					return printLine(w, cli.FormatSuccess(fmt.Sprintf("%d transaction(s) now overdue, %d recurring expense(s) generated", res.Overdue, res.Generated)))
				})
			})
		},
	}
}
