package users

import (
	"bufio"
	"fmt"
	"net/mail"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/perisicnikola37/expense-tracker-api/internal/db/bunx"
	"github.com/perisicnikola37/expense-tracker-api/internal/db/models"
	"github.com/perisicnikola37/expense-tracker-api/internal/repository"
)

var (
	emailFlag    string
	usernameFlag string
	passwordFlag string
	adminFlag    bool
	stdinFlag    bool
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user account",
	Long: `Creates a user account directly in the database. Intended for
bootstrapping the first administrator; regular accounts should register
through the API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if emailFlag == "" || usernameFlag == "" {
			return fmt.Errorf("--email and --username are required")
		}
		if _, err := mail.ParseAddress(emailFlag); err != nil {
			return fmt.Errorf("invalid email %q: %w", emailFlag, err)
		}

		password := passwordFlag
		if stdinFlag {
			reader := bufio.NewReader(os.Stdin)
			line, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("read password from stdin: %w", err)
			}
			password = strings.TrimSpace(line)
		}
		if len(password) < 8 {
			return fmt.Errorf("password must be at least 8 characters")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}

		accountType := models.AccountTypeRegular
		if adminFlag {
			accountType = models.AccountTypeAdministrator
		}

		db, err := bunx.NewDB(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer bunx.Close(db)

		user := &models.User{
			Username:     usernameFlag,
			Email:        emailFlag,
			PasswordHash: string(hash),
			AccountType:  accountType,
		}
		if err := repository.NewBunUserRepository(db).Create(cmd.Context(), user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}

		fmt.Printf("Created %s user %q (id=%d)\n", accountType, user.Username, user.ID)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&emailFlag, "email", "", "Email address (required)")
	createCmd.Flags().StringVar(&usernameFlag, "username", "", "Username (required)")
	createCmd.Flags().StringVar(&passwordFlag, "password", "", "Password (otherwise use --stdin)")
	createCmd.Flags().BoolVar(&adminFlag, "admin", false, "Create an administrator account")
	createCmd.Flags().BoolVar(&stdinFlag, "stdin", false, "Read the password from stdin")
}
