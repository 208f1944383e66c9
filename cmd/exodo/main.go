package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/exodo/internal/cli"
	"github.com/Veraticus/exodo/internal/common"
)

var (
	cfgFile string
	version = "dev"
	rootCmd = newRootCmd()
)

// newRootCmd builds the command tree and binds its persistent flags to viper.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "exodo",
		Short: "💰 Personal finance tracker",
		Long: `exodo tracks accounts, credit cards, incomes and expenses, projects your
balance forward, keeps budgets and savings goals, and simulates paying a bill
in installments.

Data lives in a local SQLite database and can be synced with a hosted
Postgres backend.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: initConfig,
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/exodo/config.yaml)")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-format", "console", "log format (console, json)")
	root.PersistentFlags().StringP("output", "o", "table", "output format (table, json)")
	root.PersistentFlags().String("database", "", "database path (default: $HOME/.local/share/exodo/exodo.db)")

	_ = viper.BindPFlag("logging.level", root.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", root.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("output", root.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("database.path", root.PersistentFlags().Lookup("database"))

	viper.SetDefault("refresh.on_start", true)
	viper.SetDefault("import.default_rules", true)

	root.AddCommand(accountsCmd())
	root.AddCommand(cardsCmd())
	root.AddCommand(categoriesCmd())
	root.AddCommand(transactionsCmd())
	root.AddCommand(transfersCmd())
	root.AddCommand(recurringCmd())
	root.AddCommand(goalsCmd())
	root.AddCommand(budgetsCmd())
	root.AddCommand(dashboardCmd())
	root.AddCommand(projectionCmd())
	root.AddCommand(reportCmd())
	root.AddCommand(simulateCmd())
	root.AddCommand(refreshCmd())
	root.AddCommand(syncCmd())
	root.AddCommand(importCmd())
	root.AddCommand(exportCmd())
	root.AddCommand(migrateCmd())
	root.AddCommand(versionCmd())
	return root
}

func main() {
	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		var userErr *common.UserError
		if errors.As(err, &userErr) {
			slog.Debug("Command failed", "error", userErr.Err)
		}
		fmt.Fprintln(os.Stderr, cli.FormatError(err.Error()))
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		viper.AddConfigPath(fmt.Sprintf("%s/.config/exodo", home))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// EXODO_REMOTE_URL maps to remote.url.
	viper.SetEnvPrefix("EXODO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := setupLogging(); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	return nil
}

func setupLogging() error {
	level, err := common.ParseLevel(viper.GetString("logging.level"))
	if err != nil {
		return err
	}
	return common.SetupLogger(os.Stderr, level, viper.GetString("logging.format"))
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "exodo %s\n", version)
		},
	}
}
