package routine

import (
	"context"
	"time"

	"github.com/swippe/quickcommerce/internal/domain/routineModel"
)

type Analytics struct {
	ActiveRoutines    int                    `json:"active_routines"`
	PausedRoutines    int                    `json:"paused_routines"`
	MonthlyCost       float64                `json:"monthly_cost"`
	TotalSavings      float64                `json:"total_savings"`
	OrdersCompleted   int                    `json:"orders_completed"`
	CategoryBreakdown map[string]float64     `json:"category_breakdown"`
	UpcomingThisWeek  []routineModel.Routine `json:"upcoming_this_week"`
}

// Analytics aggregates a user's routines: projected monthly spend, savings
// accrued from price locks, spend by category and what lands in the next
// seven days.
func (s *Service) Analytics(ctx context.Context, userId int64) (Analytics, error) {
	routines, err := s.routines.ListByUser(ctx, userId)
	if err != nil {
		return Analytics{}, err
	}

	a := Analytics{CategoryBreakdown: make(map[string]float64)}
	weekOut := time.Now().AddDate(0, 0, 7)

	for _, r := range routines {
		if r.IsPaused {
			a.PausedRoutines++
		} else {
			a.ActiveRoutines++
		}

		monthly := r.MonthlyCost()
		a.MonthlyCost += monthly
		a.TotalSavings += r.TotalSavings()
		a.OrdersCompleted += r.OrdersCompleted

		category := r.Category
		if category == "" {
			category = "Other"
		}
		a.CategoryBreakdown[category] += monthly

		if !r.IsPaused && !r.NextDeliveryDate.After(weekOut) {
			a.UpcomingThisWeek = append(a.UpcomingThisWeek, r)
		}
	}
	return a, nil
}
