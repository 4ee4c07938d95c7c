// Package authz decides whether an authenticated principal may act on a
// specific owned row. Decisions are plain values computed fresh per call;
// nothing here is cached, because ownership and existence can change
// between requests.
package authz

import (
	"context"
	"fmt"

	"github.com/perisicnikola37/expense-tracker-api/internal/auth"
)

// Resource tags a protected resource type. Adding a new owned type only
// requires registering its owner lookup; the dispatch mechanism is fixed.
type Resource string

const (
	ResourceBlog     Resource = "blog"
	ResourceExpense  Resource = "expense"
	ResourceIncome   Resource = "income"
	ResourceReminder Resource = "reminder"
)

// Reason explains an authorization decision.
type Reason string

const (
	// ReasonOwnerMatch allows: the principal owns the resource.
	ReasonOwnerMatch Reason = "owner_match"
	// ReasonAdminOverride allows: administrators bypass ownership checks.
	ReasonAdminOverride Reason = "admin_override"
	// ReasonNotOwner denies: the resource belongs to another user.
	ReasonNotOwner Reason = "not_owner"
	// ReasonNoPrincipal denies: the request carries no authenticated identity.
	ReasonNoPrincipal Reason = "no_principal"
	// ReasonResourceNotFound denies: the resource does not exist. Callers
	// must surface this as not-found, not forbidden, so that denial
	// responses do not leak row existence inconsistently.
	ReasonResourceNotFound Reason = "resource_not_found"
)

// Decision is the ephemeral result of one authorization evaluation.
type Decision struct {
	Allowed bool
	Reason  Reason
}

// OwnerLookup reports the owning user of a resource row. Absent rows
// report found=false; errors are reserved for infrastructure failures
// (persistence unreachable), never for missing rows.
type OwnerLookup func(ctx context.Context, resourceID int) (ownerID int, found bool, err error)

// Evaluator maps resource types to their owner lookups and produces
// allow/deny decisions. Register every resource type during startup;
// after that the evaluator is read-only and safe for concurrent use.
type Evaluator struct {
	lookups map[Resource]OwnerLookup
}

// NewEvaluator constructs an evaluator with no registered resource types.
func NewEvaluator() *Evaluator {
	return &Evaluator{lookups: make(map[Resource]OwnerLookup)}
}

// Register binds a resource type to its owner lookup. Not safe to call
// concurrently with Authorize; do all registration before serving.
func (e *Evaluator) Register(resource Resource, lookup OwnerLookup) {
	e.lookups[resource] = lookup
}

// Authorize decides whether the principal may act on the identified
// resource. Each call performs a fresh ownership read; a row deleted
// between this check and the subsequent handler work surfaces downstream
// as not-found, which is an accepted race.
func (e *Evaluator) Authorize(ctx context.Context, principal *auth.Principal, resource Resource, resourceID int) (Decision, error) {
	if principal == nil {
		return Decision{Allowed: false, Reason: ReasonNoPrincipal}, nil
	}

	// Administrators bypass ownership unconditionally.
	if principal.IsAdministrator() {
		return Decision{Allowed: true, Reason: ReasonAdminOverride}, nil
	}

	lookup, ok := e.lookups[resource]
	if !ok {
		return Decision{}, fmt.Errorf("no owner lookup registered for resource %q", resource)
	}

	ownerID, found, err := lookup(ctx, resourceID)
	if err != nil {
		return Decision{}, fmt.Errorf("look up %s %d owner: %w", resource, resourceID, err)
	}
	if !found {
		return Decision{Allowed: false, Reason: ReasonResourceNotFound}, nil
	}

	if principal.UserID == ownerID {
		return Decision{Allowed: true, Reason: ReasonOwnerMatch}, nil
	}
	return Decision{Allowed: false, Reason: ReasonNotOwner}, nil
}
