package orders

import (
	"testing"

	"cafeteria-backend/internal/apperr"
	"cafeteria-backend/internal/models"
)

func TestKitchenHappyPath(t *testing.T) {
	w := WorkflowKitchen

	steps := []struct {
		from, to models.OrderStatus
		role     models.UserRole
	}{
		{models.StatusPending, models.StatusPreparing, models.RoleCook},
		{models.StatusPreparing, models.StatusReady, models.RoleCook},
		{models.StatusReady, models.StatusDelivered, models.RoleOperator},
	}
	for _, s := range steps {
		if err := w.CheckTransition(s.from, s.to, s.role); err != nil {
			t.Errorf("%s -> %s by %s: unexpected error %v", s.from, s.to, s.role, err)
		}
	}
}

func TestAdminMayDriveEveryKitchenEdge(t *testing.T) {
	w := WorkflowKitchen
	edges := [][2]models.OrderStatus{
		{models.StatusPending, models.StatusPreparing},
		{models.StatusPreparing, models.StatusReady},
		{models.StatusReady, models.StatusDelivered},
	}
	for _, e := range edges {
		if err := w.CheckTransition(e[0], e[1], models.RoleAdmin); err != nil {
			t.Errorf("admin %s -> %s: %v", e[0], e[1], err)
		}
	}
}

func TestKitchenRoleGates(t *testing.T) {
	w := WorkflowKitchen

	// operator may not start preparation
	err := w.CheckTransition(models.StatusPending, models.StatusPreparing, models.RoleOperator)
	if !apperr.IsKind(err, apperr.KindPermission) {
		t.Errorf("pending -> preparing by operator: got %v, want permission error", err)
	}

	// cook may not hand the order over
	err = w.CheckTransition(models.StatusReady, models.StatusDelivered, models.RoleCook)
	if !apperr.IsKind(err, apperr.KindPermission) {
		t.Errorf("ready -> delivered by cook: got %v, want permission error", err)
	}
}

func TestSkippingStatesIsInvalid(t *testing.T) {
	w := WorkflowKitchen

	// no edge pending -> ready, regardless of role
	err := w.CheckTransition(models.StatusPending, models.StatusReady, models.RoleOperator)
	if !apperr.IsKind(err, apperr.KindInvalidTransition) {
		t.Errorf("pending -> ready by operator: got %v, want invalid transition", err)
	}
	err = w.CheckTransition(models.StatusPending, models.StatusReady, models.RoleAdmin)
	if !apperr.IsKind(err, apperr.KindInvalidTransition) {
		t.Errorf("pending -> ready by admin: got %v, want invalid transition", err)
	}

	// while pending -> preparing by a cook succeeds
	if err := w.CheckTransition(models.StatusPending, models.StatusPreparing, models.RoleCook); err != nil {
		t.Errorf("pending -> preparing by cook: %v", err)
	}
}

func TestDeliveredIsTerminal(t *testing.T) {
	w := WorkflowKitchen
	if !w.Terminal(models.StatusDelivered) {
		t.Error("delivered should be terminal")
	}

	err := w.CheckTransition(models.StatusDelivered, models.StatusPending, models.RoleAdmin)
	if !apperr.IsKind(err, apperr.KindInvalidTransition) {
		t.Errorf("delivered -> pending: got %v, want invalid transition", err)
	}
}

func TestTabWorkflowAnyRole(t *testing.T) {
	w := WorkflowTab

	for _, role := range []models.UserRole{models.RoleAdmin, models.RoleOperator, models.RoleCook} {
		if err := w.CheckTransition(models.StatusPending, models.StatusOnAccount, role); err != nil {
			t.Errorf("pending -> on_account by %s: %v", role, err)
		}
		if err := w.CheckTransition(models.StatusOnAccount, models.StatusPaid, role); err != nil {
			t.Errorf("on_account -> paid by %s: %v", role, err)
		}
	}
}

func TestVocabulariesDoNotMix(t *testing.T) {
	// kitchen statuses are not valid targets in the tab workflow and vice versa
	err := WorkflowTab.CheckTransition(models.StatusPending, models.StatusPreparing, models.RoleAdmin)
	if !apperr.IsKind(err, apperr.KindInvalidTransition) {
		t.Errorf("tab: pending -> preparing: got %v, want invalid transition", err)
	}

	err = WorkflowKitchen.CheckTransition(models.StatusPending, models.StatusOnAccount, models.RoleAdmin)
	if !apperr.IsKind(err, apperr.KindInvalidTransition) {
		t.Errorf("kitchen: pending -> on_account: got %v, want invalid transition", err)
	}
}

func TestParseWorkflow(t *testing.T) {
	if w, err := ParseWorkflow("kitchen"); err != nil || w != WorkflowKitchen {
		t.Errorf("ParseWorkflow(kitchen) = %v, %v", w, err)
	}
	if w, err := ParseWorkflow("tab"); err != nil || w != WorkflowTab {
		t.Errorf("ParseWorkflow(tab) = %v, %v", w, err)
	}
	if _, err := ParseWorkflow("drive-through"); err == nil {
		t.Error("ParseWorkflow should reject unknown variants")
	}
}

func TestTabTerminalIsPaid(t *testing.T) {
	w := WorkflowTab
	if !w.Terminal(models.StatusPaid) {
		t.Error("paid should be terminal in the tab workflow")
	}
	if w.Terminal(models.StatusOnAccount) {
		t.Error("on_account should not be terminal")
	}
}
