// Package budget keeps a gig's project budget consistent with the cost of
// its roles.
package budget

import (
	"github.com/alexanderramin/servio/internal/domain"
	"github.com/alexanderramin/servio/internal/notify"
	"github.com/shopspring/decimal"
)

// Toast titles raised on lock transitions.
const (
	TitleLocked   = "Project Budget Locked"
	TitleUnlocked = "Project budget unlocked"
)

// Coordinator is an edge-triggered lock over the project budget.
//
// When the roles cost more than the budget the user asked for, the budget is
// locked and follows the roles total. When the total drops back to or under
// the requested budget, the lock is released and the requested budget comes
// back. Each transition raises exactly one toast; repeated calls in the same
// state are silent.
type Coordinator struct {
	requested  decimal.Decimal
	budget     decimal.Decimal
	rolesTotal decimal.Decimal
	locked     bool
	notifier   notify.Notifier
}

// NewCoordinator starts unlocked with the given project budget.
func NewCoordinator(initial decimal.Decimal, n notify.Notifier) *Coordinator {
	n = notify.OrDiscard(n)
	return &Coordinator{
		requested:  initial,
		budget:     initial,
		rolesTotal: decimal.Zero,
		notifier:   n,
	}
}

// SetRoles recomputes the roles total over every role, active or not, with
// unparseable budgets counted as zero.
func (c *Coordinator) SetRoles(roles []domain.RoleEntry) {
	total := decimal.Zero
	for _, r := range roles {
		total = total.Add(r.Budget.Decimal())
	}
	c.rolesTotal = total

	shouldLock := total.GreaterThan(c.requested)
	if shouldLock {
		c.budget = total
	}
	if shouldLock == c.locked {
		return
	}

	c.locked = shouldLock
	if shouldLock {
		notify.Warning(c.notifier, TitleLocked, "Project budget locked to match the total cost of required roles.")
		return
	}
	c.budget = c.requested
	notify.Success(c.notifier, TitleUnlocked, "Project Budget is now unlocked for user interaction.")
}

// SetProjectBudget records the budget the user typed. Unparseable text
// becomes zero. The lock is not re-evaluated until the next SetRoles.
func (c *Coordinator) SetProjectBudget(raw string) {
	d := domain.Amount(raw).Decimal()
	c.requested = d
	c.budget = d
}

// ProjectBudget is the effective budget: the roles total while locked.
func (c *Coordinator) ProjectBudget() decimal.Decimal { return c.budget }

// RolesTotal is the summed budget of every role from the last SetRoles.
func (c *Coordinator) RolesTotal() decimal.Decimal { return c.rolesTotal }

// Locked reports whether the budget currently follows the roles total.
func (c *Coordinator) Locked() bool { return c.locked }
