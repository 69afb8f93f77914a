package orders

import (
	"fmt"

	"cafeteria-backend/internal/apperr"
	"cafeteria-backend/internal/models"
)

// Workflow selects the order status vocabulary for a deployment. The two
// variants are mutually exclusive product configurations: a kitchen flow
// (pending → preparing → ready → delivered) and a tab/ledger flow
// (pending → on_account → paid). They are never mixed.
type Workflow string

const (
	WorkflowKitchen Workflow = "kitchen"
	WorkflowTab     Workflow = "tab"
)

func ParseWorkflow(s string) (Workflow, error) {
	switch Workflow(s) {
	case WorkflowKitchen, WorkflowTab:
		return Workflow(s), nil
	}
	return "", fmt.Errorf("unknown order workflow %q", s)
}

type edge struct {
	from, to models.OrderStatus
}

// Edge → roles allowed to drive it. A nil role list means any authenticated
// role may.
var kitchenEdges = map[edge][]models.UserRole{
	{models.StatusPending, models.StatusPreparing}: {models.RoleCook, models.RoleAdmin},
	{models.StatusPreparing, models.StatusReady}:   {models.RoleCook, models.RoleAdmin},
	{models.StatusReady, models.StatusDelivered}:   {models.RoleOperator, models.RoleAdmin},
}

var tabEdges = map[edge][]models.UserRole{
	{models.StatusPending, models.StatusOnAccount}: nil,
	{models.StatusOnAccount, models.StatusPaid}:    nil,
}

func (w Workflow) edges() map[edge][]models.UserRole {
	if w == WorkflowTab {
		return tabEdges
	}
	return kitchenEdges
}

// Statuses returns the vocabulary in workflow order.
func (w Workflow) Statuses() []models.OrderStatus {
	if w == WorkflowTab {
		return []models.OrderStatus{models.StatusPending, models.StatusOnAccount, models.StatusPaid}
	}
	return []models.OrderStatus{models.StatusPending, models.StatusPreparing, models.StatusReady, models.StatusDelivered}
}

func (w Workflow) ValidStatus(s models.OrderStatus) bool {
	for _, st := range w.Statuses() {
		if st == s {
			return true
		}
	}
	return false
}

// Terminal reports whether a status ends the workflow. Terminal orders are
// filtered out of default views once old, never deleted.
func (w Workflow) Terminal(s models.OrderStatus) bool {
	if w == WorkflowTab {
		return s == models.StatusPaid
	}
	return s == models.StatusDelivered
}

// StatusPriority is the fixed ordering used by the default order view:
// non-terminal statuses first, terminal last. Unknown statuses sort last.
func (w Workflow) StatusPriority(s models.OrderStatus) int {
	for i, st := range w.Statuses() {
		if st == s {
			return i + 1
		}
	}
	return 99
}

// CheckTransition validates one state-machine step. A missing edge fails
// before the role check, so a wrong target reports invalid transition even
// when the caller also lacks rights.
func (w Workflow) CheckTransition(from, to models.OrderStatus, role models.UserRole) error {
	if !w.ValidStatus(to) {
		return apperr.InvalidTransition(fmt.Sprintf("status %q is not part of the %s workflow", to, w))
	}

	roles, ok := w.edges()[edge{from, to}]
	if !ok {
		return apperr.InvalidTransition(fmt.Sprintf("no transition from %q to %q", from, to))
	}

	if roles == nil {
		return nil
	}
	for _, r := range roles {
		if r == role {
			return nil
		}
	}
	return apperr.Permission(fmt.Sprintf("role %q may not move an order from %q to %q", role, from, to))
}
