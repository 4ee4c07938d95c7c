package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/perisicnikola37/expense-tracker-api/internal/db/models"
)

func init() {
	Migrations.MustRegister(up_20260815000001, down_20260815000001)
}

// up_20260815000001 initializes the full database schema
func up_20260815000001(ctx context.Context, db *bun.DB) error {
	// 1. Create users table
	fmt.Print(" [up] creating users table...")
	_, err := db.NewCreateTable().
		Model((*models.User)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}

	_, err = db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(email)`)
	if err != nil {
		return fmt.Errorf("failed to create users email index: %w", err)
	}
	_, err = db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username ON users(username)`)
	if err != nil {
		return fmt.Errorf("failed to create users username index: %w", err)
	}
	fmt.Println(" OK")

	// 2. Create blogs table
	fmt.Print(" [up] creating blogs table...")
	_, err = db.NewCreateTable().
		Model((*models.Blog)(nil)).
		IfNotExists().
		ForeignKey(`("user_id") REFERENCES "users" ("id") ON DELETE CASCADE`).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create blogs table: %w", err)
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_blogs_user_id ON blogs(user_id)`)
	if err != nil {
		return fmt.Errorf("failed to create blogs user index: %w", err)
	}
	fmt.Println(" OK")

	// 3. Create expense_groups table
	fmt.Print(" [up] creating expense_groups table...")
	_, err = db.NewCreateTable().
		Model((*models.ExpenseGroup)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create expense_groups table: %w", err)
	}

	_, err = db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_expense_groups_name ON expense_groups(name)`)
	if err != nil {
		return fmt.Errorf("failed to create expense_groups name index: %w", err)
	}
	fmt.Println(" OK")

	// 4. Create expenses table
	fmt.Print(" [up] creating expenses table...")
	_, err = db.NewCreateTable().
		Model((*models.Expense)(nil)).
		IfNotExists().
		ForeignKey(`("user_id") REFERENCES "users" ("id") ON DELETE CASCADE`).
		ForeignKey(`("expense_group_id") REFERENCES "expense_groups" ("id") ON DELETE CASCADE`).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create expenses table: %w", err)
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_expenses_user_id ON expenses(user_id)`)
	if err != nil {
		return fmt.Errorf("failed to create expenses user index: %w", err)
	}
	fmt.Println(" OK")

	// 5. Create income_groups table
	fmt.Print(" [up] creating income_groups table...")
	_, err = db.NewCreateTable().
		Model((*models.IncomeGroup)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create income_groups table: %w", err)
	}

	_, err = db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_income_groups_name ON income_groups(name)`)
	if err != nil {
		return fmt.Errorf("failed to create income_groups name index: %w", err)
	}
	fmt.Println(" OK")

	// 6. Create incomes table
	fmt.Print(" [up] creating incomes table...")
	_, err = db.NewCreateTable().
		Model((*models.Income)(nil)).
		IfNotExists().
		ForeignKey(`("user_id") REFERENCES "users" ("id") ON DELETE CASCADE`).
		ForeignKey(`("income_group_id") REFERENCES "income_groups" ("id") ON DELETE CASCADE`).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create incomes table: %w", err)
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_incomes_user_id ON incomes(user_id)`)
	if err != nil {
		return fmt.Errorf("failed to create incomes user index: %w", err)
	}
	fmt.Println(" OK")

	// 7. Create reminders table
	fmt.Print(" [up] creating reminders table...")
	_, err = db.NewCreateTable().
		Model((*models.Reminder)(nil)).
		IfNotExists().
		ForeignKey(`("user_id") REFERENCES "users" ("id") ON DELETE CASCADE`).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create reminders table: %w", err)
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_reminders_user_id ON reminders(user_id)`)
	if err != nil {
		return fmt.Errorf("failed to create reminders user index: %w", err)
	}
	fmt.Println(" OK")

	return nil
}

// down_20260815000001 drops the full schema in reverse dependency order
func down_20260815000001(ctx context.Context, db *bun.DB) error {
	tables := []string{"reminders", "incomes", "income_groups", "expenses", "expense_groups", "blogs", "users"}
	for _, table := range tables {
		fmt.Printf(" [down] dropping %s table...", table)
		if _, err := db.Exec(fmt.Sprintf(`DROP TABLE IF EXISTS %s`, table)); err != nil {
			return fmt.Errorf("failed to drop %s table: %w", table, err)
		}
		fmt.Println(" OK")
	}
	return nil
}
