// Package users holds the user management subcommands used for account
// bootstrap before the API is reachable.
package users

import (
	"github.com/spf13/cobra"

	"github.com/perisicnikola37/expense-tracker-api/internal/config"
)

var cfg *config.Config

// SetConfig injects the loaded configuration from the root command.
func SetConfig(c *config.Config) {
	cfg = c
}

// UsersCmd is the parent command for user management.
var UsersCmd = &cobra.Command{
	Use:   "users",
	Short: "User management commands",
	Long:  `Commands for creating and inspecting user accounts directly against the database.`,
}

func init() {
	UsersCmd.AddCommand(createCmd)
}
