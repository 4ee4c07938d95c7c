package statistics

import (
	"context"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/perisicnikola37/expense-tracker-api/internal/repository"
)

// Aggregate summarizes one side of the ledger.
type Aggregate struct {
	Count int     `json:"count"`
	Total float64 `json:"total"`
	Mean  float64 `json:"mean"`
	Max   float64 `json:"max"`
}

// Summary is the dashboard payload for a single user.
type Summary struct {
	Expenses Aggregate `json:"expenses"`
	Incomes  Aggregate `json:"incomes"`
	Balance  float64   `json:"balance"`
}

// Service computes per-user ledger statistics.
type Service struct {
	expenses repository.ExpenseRepository
	incomes  repository.IncomeRepository
}

// NewService constructs a new Service instance.
func NewService(expenses repository.ExpenseRepository, incomes repository.IncomeRepository) *Service {
	return &Service{expenses: expenses, incomes: incomes}
}

// Summarize aggregates userID's expenses and incomes. A user with no
// activity gets a zero summary, not an error.
func (s *Service) Summarize(ctx context.Context, userID int) (*Summary, error) {
	expenses, err := s.expenses.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	incomes, err := s.incomes.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	expenseAmounts := make([]float64, len(expenses))
	for i := range expenses {
		expenseAmounts[i] = expenses[i].Amount
	}
	incomeAmounts := make([]float64, len(incomes))
	for i := range incomes {
		incomeAmounts[i] = incomes[i].Amount
	}

	summary := &Summary{
		Expenses: aggregate(expenseAmounts),
		Incomes:  aggregate(incomeAmounts),
	}
	summary.Balance = summary.Incomes.Total - summary.Expenses.Total
	return summary, nil
}

func aggregate(amounts []float64) Aggregate {
	if len(amounts) == 0 {
		return Aggregate{}
	}
	return Aggregate{
		Count: len(amounts),
		Total: floats.Sum(amounts),
		Mean:  stat.Mean(amounts, nil),
		Max:   floats.Max(amounts),
	}
}
