package orders

import (
	"testing"
	"time"

	"cafeteria-backend/internal/models"

	"github.com/google/uuid"
)

func orderAt(status models.OrderStatus, createdAt time.Time) models.Order {
	return models.Order{
		ID:        uuid.New(),
		Status:    status,
		CreatedAt: createdAt,
	}
}

func TestDefaultViewWindow(t *testing.T) {
	now := time.Date(2026, 8, 31, 15, 0, 0, 0, time.UTC)
	today := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)
	lastWeek := today.AddDate(0, 0, -7)

	all := []models.Order{
		orderAt(models.StatusPending, today),       // today, kept
		orderAt(models.StatusDelivered, today),     // today, kept even though terminal
		orderAt(models.StatusPreparing, yesterday), // yesterday non-terminal, kept
		orderAt(models.StatusDelivered, yesterday), // yesterday terminal, dropped
		orderAt(models.StatusPending, lastWeek),    // too old, dropped
	}

	view := DefaultView(all, WorkflowKitchen, now)
	if len(view) != 3 {
		t.Fatalf("default view has %d orders, want 3", len(view))
	}
	for _, o := range view {
		if o.CreatedAt.Equal(lastWeek) {
			t.Error("last week's order should not appear")
		}
		if o.CreatedAt.Equal(yesterday) && o.Status == models.StatusDelivered {
			t.Error("yesterday's delivered order should not appear")
		}
	}
}

func TestDefaultViewSortsByStatusPriorityThenNewest(t *testing.T) {
	now := time.Date(2026, 8, 31, 15, 0, 0, 0, time.UTC)
	base := time.Date(2026, 8, 31, 8, 0, 0, 0, time.UTC)

	pendingOld := orderAt(models.StatusPending, base)
	pendingNew := orderAt(models.StatusPending, base.Add(2*time.Hour))
	ready := orderAt(models.StatusReady, base.Add(time.Hour))
	delivered := orderAt(models.StatusDelivered, base.Add(3*time.Hour))

	view := DefaultView([]models.Order{delivered, pendingOld, ready, pendingNew}, WorkflowKitchen, now)

	wantIDs := []uuid.UUID{pendingNew.ID, pendingOld.ID, ready.ID, delivered.ID}
	if len(view) != len(wantIDs) {
		t.Fatalf("view has %d orders, want %d", len(view), len(wantIDs))
	}
	for i, want := range wantIDs {
		if view[i].ID != want {
			t.Errorf("position %d: got status %s at %s", i, view[i].Status, view[i].CreatedAt)
		}
	}
}

func TestDefaultViewTabWorkflow(t *testing.T) {
	now := time.Date(2026, 8, 31, 15, 0, 0, 0, time.UTC)
	yesterday := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	onAccount := orderAt(models.StatusOnAccount, yesterday)
	paid := orderAt(models.StatusPaid, yesterday)

	view := DefaultView([]models.Order{onAccount, paid}, WorkflowTab, now)
	if len(view) != 1 {
		t.Fatalf("view has %d orders, want 1 (yesterday's unpaid tab)", len(view))
	}
	if view[0].ID != onAccount.ID {
		t.Error("yesterday's on_account order should be kept, paid dropped")
	}
}

func TestKitchenQueueFIFO(t *testing.T) {
	now := time.Date(2026, 8, 31, 15, 0, 0, 0, time.UTC)
	base := time.Date(2026, 8, 31, 8, 0, 0, 0, time.UTC)

	first := orderAt(models.StatusPending, base)
	second := orderAt(models.StatusPreparing, base.Add(time.Hour))
	third := orderAt(models.StatusReady, base.Add(2*time.Hour))
	done := orderAt(models.StatusDelivered, base.Add(30*time.Minute))

	queue := KitchenQueue([]models.Order{third, done, first, second}, WorkflowKitchen, now)

	if len(queue) != 3 {
		t.Fatalf("queue has %d orders, want 3 (delivered excluded)", len(queue))
	}
	wantIDs := []uuid.UUID{first.ID, second.ID, third.ID}
	for i, want := range wantIDs {
		if queue[i].ID != want {
			t.Errorf("queue position %d is wrong, want oldest-first ordering", i)
		}
	}
}
