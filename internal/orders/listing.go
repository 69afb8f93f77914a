package orders

import (
	"sort"
	"time"

	"cafeteria-backend/internal/models"
)

// relevantWindow keeps today's orders plus yesterday's orders that have not
// reached a terminal status yet.
func relevantWindow(all []models.Order, w Workflow, now time.Time) []models.Order {
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfYesterday := startOfToday.AddDate(0, 0, -1)

	var out []models.Order
	for _, o := range all {
		if !o.CreatedAt.Before(startOfToday) {
			out = append(out, o)
			continue
		}
		if !o.CreatedAt.Before(startOfYesterday) && !w.Terminal(o.Status) {
			out = append(out, o)
		}
	}
	return out
}

// DefaultView is the service-counter ordering: open statuses first by the
// fixed priority, terminal orders last, ties newest-first.
func DefaultView(all []models.Order, w Workflow, now time.Time) []models.Order {
	relevant := relevantWindow(all, w, now)

	sort.SliceStable(relevant, func(i, j int) bool {
		pi, pj := w.StatusPriority(relevant[i].Status), w.StatusPriority(relevant[j].Status)
		if pi != pj {
			return pi < pj
		}
		return relevant[i].CreatedAt.After(relevant[j].CreatedAt)
	})
	return relevant
}

// KitchenQueue is the cook's view: only orders still moving through the
// kitchen, oldest first so service stays FIFO.
func KitchenQueue(all []models.Order, w Workflow, now time.Time) []models.Order {
	relevant := relevantWindow(all, w, now)

	var queue []models.Order
	for _, o := range relevant {
		if !w.Terminal(o.Status) {
			queue = append(queue, o)
		}
	}

	sort.SliceStable(queue, func(i, j int) bool {
		return queue[i].CreatedAt.Before(queue[j].CreatedAt)
	})
	return queue
}
