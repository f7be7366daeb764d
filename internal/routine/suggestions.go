package routine

import (
	"context"

	"github.com/swippe/quickcommerce/internal/domain/routineModel"
)

// Suggestion proposes turning a repeat purchase into a routine, with a
// cadence inferred from how often the user actually reorders.
type Suggestion struct {
	ProductId          int64                  `json:"product_id"`
	ProductName        string                 `json:"product"`
	Brand              string                 `json:"brand"`
	Category           string                 `json:"category"`
	SalePrice          float64                `json:"sale_price"`
	ImageURL           string                 `json:"image_url,omitempty"`
	TimesBought        int                    `json:"times_bought"`
	AvgDaysBetween     float64                `json:"avg_days_between"`
	SuggestedFrequency routineModel.Frequency `json:"suggested_frequency"`
	MonthlySavingsEst  float64                `json:"monthly_savings_est"`
}

// routineDiscountRate is the flat subscriber discount used to project what a
// routine would save per month (four deliveries at the typical quantity).
const routineDiscountRate = 0.05

// Suggestions looks at products bought at least twice and maps the average
// reorder gap to the nearest routine cadence.
func (s *Service) Suggestions(ctx context.Context, userId int64) ([]Suggestion, error) {
	frequent, err := s.orders.FrequentProducts(ctx, userId)
	if err != nil {
		return nil, err
	}

	existing, err := s.routines.ListByUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	alreadyRoutine := make(map[int64]bool, len(existing))
	for _, r := range existing {
		alreadyRoutine[r.ProductId] = true
	}

	var suggestions []Suggestion
	for _, f := range frequent {
		if alreadyRoutine[f.ProductId] {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			ProductId:          f.ProductId,
			ProductName:        f.ProductName,
			Brand:              f.Brand,
			Category:           f.Category,
			SalePrice:          f.SalePrice,
			ImageURL:           f.ImageURL,
			TimesBought:        f.TimesBought,
			AvgDaysBetween:     f.AvgGapDays,
			SuggestedFrequency: FrequencyForGap(f.AvgGapDays),
			MonthlySavingsEst:  routineDiscountRate * f.AvgQuantity * 4 * f.SalePrice,
		})
	}
	return suggestions, nil
}

// FrequencyForGap buckets an average reorder gap into a cadence.
func FrequencyForGap(avgDays float64) routineModel.Frequency {
	switch {
	case avgDays <= 3:
		return routineModel.Daily
	case avgDays <= 10:
		return routineModel.Weekly
	case avgDays <= 20:
		return routineModel.Biweekly
	default:
		return routineModel.Monthly
	}
}
