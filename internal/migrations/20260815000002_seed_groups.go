package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/perisicnikola37/expense-tracker-api/internal/db/models"
)

func init() {
	Migrations.MustRegister(up_20260815000002, down_20260815000002)
}

var seedExpenseGroups = []models.ExpenseGroup{
	{Name: "Housing", Description: "Rent, mortgage and utilities"},
	{Name: "Food", Description: "Groceries and dining out"},
	{Name: "Transport", Description: "Fuel, transit and maintenance"},
	{Name: "Other", Description: "Everything else"},
}

var seedIncomeGroups = []models.IncomeGroup{
	{Name: "Salary", Description: "Regular employment income"},
	{Name: "Freelance", Description: "Contract and side work"},
	{Name: "Other", Description: "Everything else"},
}

// up_20260815000002 seeds the default expense and income groups so a fresh
// install is usable without manual setup.
func up_20260815000002(ctx context.Context, db *bun.DB) error {
	fmt.Print(" [up] seeding default groups...")

	for i := range seedExpenseGroups {
		group := seedExpenseGroups[i]
		_, err := db.NewInsert().
			Model(&group).
			Ignore().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to seed expense group %q: %w", group.Name, err)
		}
	}

	for i := range seedIncomeGroups {
		group := seedIncomeGroups[i]
		_, err := db.NewInsert().
			Model(&group).
			Ignore().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to seed income group %q: %w", group.Name, err)
		}
	}

	fmt.Println(" OK")
	return nil
}

// down_20260815000002 removes the seeded groups.
func down_20260815000002(ctx context.Context, db *bun.DB) error {
	for _, group := range seedExpenseGroups {
		if _, err := db.NewDelete().
			Model((*models.ExpenseGroup)(nil)).
			Where("name = ?", group.Name).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to remove expense group %q: %w", group.Name, err)
		}
	}
	for _, group := range seedIncomeGroups {
		if _, err := db.NewDelete().
			Model((*models.IncomeGroup)(nil)).
			Where("name = ?", group.Name).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to remove income group %q: %w", group.Name, err)
		}
	}
	return nil
}
