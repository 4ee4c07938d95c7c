package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/perisicnikola37/expense-tracker-api/cmd/users"
	"github.com/perisicnikola37/expense-tracker-api/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "expense-tracker-api",
	Short: "Multi-tenant personal finance tracker API",
	Long: `Expense Tracker API serves the personal finance REST endpoints:
authentication, blogs, expenses, incomes, groups, reminders and statistics.
Every owned resource is protected by per-request ownership authorization.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		users.SetConfig(cfg)
		return nil
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().String("db-url", "", "Database connection URL (env: DATABASE_URL)")
	rootCmd.PersistentFlags().String("server-addr", "", "Server bind address (env: SERVER_ADDR)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging (env: DEBUG)")

	// Add subcommands
	rootCmd.AddCommand(users.UsersCmd)
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
