package authz

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perisicnikola37/expense-tracker-api/internal/auth"
	"github.com/perisicnikola37/expense-tracker-api/internal/db/models"
)

func staticOwner(ownerID int) OwnerLookup {
	return func(ctx context.Context, resourceID int) (int, bool, error) {
		return ownerID, true, nil
	}
}

func missingResource() OwnerLookup {
	return func(ctx context.Context, resourceID int) (int, bool, error) {
		return 0, false, nil
	}
}

func regularPrincipal(userID int) *auth.Principal {
	return &auth.Principal{UserID: userID, AccountType: models.AccountTypeRegular}
}

func adminPrincipal(userID int) *auth.Principal {
	return &auth.Principal{UserID: userID, AccountType: models.AccountTypeAdministrator}
}

func TestAuthorize_DecisionTable(t *testing.T) {
	tests := []struct {
		name        string
		principal   *auth.Principal
		lookup      OwnerLookup
		wantAllowed bool
		wantReason  Reason
	}{
		{
			name:        "owner match allows",
			principal:   regularPrincipal(7),
			lookup:      staticOwner(7),
			wantAllowed: true,
			wantReason:  ReasonOwnerMatch,
		},
		{
			name:        "non-owner denied",
			principal:   regularPrincipal(7),
			lookup:      staticOwner(9),
			wantAllowed: false,
			wantReason:  ReasonNotOwner,
		},
		{
			name:        "no principal denied",
			principal:   nil,
			lookup:      staticOwner(7),
			wantAllowed: false,
			wantReason:  ReasonNoPrincipal,
		},
		{
			name:        "missing resource reports not found, never not-owner",
			principal:   regularPrincipal(7),
			lookup:      missingResource(),
			wantAllowed: false,
			wantReason:  ReasonResourceNotFound,
		},
		{
			name:        "administrator bypasses ownership",
			principal:   adminPrincipal(1),
			lookup:      staticOwner(42),
			wantAllowed: true,
			wantReason:  ReasonAdminOverride,
		},
		{
			name:        "administrator allowed even for missing resource",
			principal:   adminPrincipal(1),
			lookup:      missingResource(),
			wantAllowed: true,
			wantReason:  ReasonAdminOverride,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evaluator := NewEvaluator()
			evaluator.Register(ResourceExpense, tt.lookup)

			decision, err := evaluator.Authorize(context.Background(), tt.principal, ResourceExpense, 1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAllowed, decision.Allowed)
			assert.Equal(t, tt.wantReason, decision.Reason)
		})
	}
}

func TestAuthorize_UnregisteredResource(t *testing.T) {
	evaluator := NewEvaluator()

	_, err := evaluator.Authorize(context.Background(), regularPrincipal(7), ResourceBlog, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no owner lookup registered")
}

func TestAuthorize_LookupFailure(t *testing.T) {
	evaluator := NewEvaluator()
	evaluator.Register(ResourceBlog, func(ctx context.Context, id int) (int, bool, error) {
		return 0, false, errors.New("connection refused")
	})

	_, err := evaluator.Authorize(context.Background(), regularPrincipal(7), ResourceBlog, 1)
	require.Error(t, err)
}

// Concurrent evaluations over the same resource share no mutable state.
func TestAuthorize_ConcurrentEvaluations(t *testing.T) {
	evaluator := NewEvaluator()
	evaluator.Register(ResourceIncome, staticOwner(5))

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		userID := 1 + i%2*4 // alternate between user 1 (denied) and user 5 (allowed)
		go func(userID int) {
			defer wg.Done()
			decision, err := evaluator.Authorize(context.Background(), regularPrincipal(userID), ResourceIncome, 10)
			assert.NoError(t, err)
			assert.Equal(t, userID == 5, decision.Allowed)
		}(userID)
	}
	wg.Wait()
}
