package reports

import (
	"time"

	"cafeteria-backend/internal/models"
	"cafeteria-backend/internal/ratings"
)

type UserActivity struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	DaysWorked    int    `json:"days_worked"`
	OrdersCreated int    `json:"orders_created"`
	LastAccess    string `json:"last_access,omitempty"`
}

type AdminReport struct {
	From    string         `json:"from"`
	To      string         `json:"to"`
	Users   []UserActivity `json:"users"`
	Ratings ratings.Stats  `json:"ratings"`
}

// BuildAdmin summarizes staff activity over a period. Days worked are the
// distinct calendar days on which a user created at least one order.
func BuildAdmin(users []models.User, orders []models.Order, stats ratings.Stats, from, to time.Time) AdminReport {
	report := AdminReport{
		From:    from.Format("2006-01-02"),
		To:      to.Format("2006-01-02"),
		Ratings: stats,
	}

	byCreator := make(map[string][]models.Order)
	for _, o := range orders {
		byCreator[o.CreatedBy] = append(byCreator[o.CreatedBy], o)
	}

	for _, u := range users {
		created := byCreator[u.Email]

		days := make(map[string]struct{})
		for _, o := range created {
			days[o.CreatedAt.Format("2006-01-02")] = struct{}{}
		}

		activity := UserActivity{
			Name:          u.Name,
			Email:         u.Email,
			DaysWorked:    len(days),
			OrdersCreated: len(created),
		}
		if u.LastAccessAt != nil {
			activity.LastAccess = u.LastAccessAt.Format(time.RFC3339)
		}
		report.Users = append(report.Users, activity)
	}

	return report
}
