package routine

import (
	"context"
	"testing"

	"github.com/swippe/quickcommerce/internal/data/store"
	"github.com/swippe/quickcommerce/internal/domain/routineModel"
)

func TestFrequencyForGap(t *testing.T) {
	tests := []struct {
		gap  float64
		want routineModel.Frequency
	}{
		{0, routineModel.Daily},
		{3, routineModel.Daily},
		{4, routineModel.Weekly},
		{10, routineModel.Weekly},
		{11, routineModel.Biweekly},
		{20, routineModel.Biweekly},
		{21, routineModel.Monthly},
		{45, routineModel.Monthly},
	}
	for _, tt := range tests {
		if got := FrequencyForGap(tt.gap); got != tt.want {
			t.Errorf("FrequencyForGap(%v) = %s, want %s", tt.gap, got, tt.want)
		}
	}
}

func TestSuggestions(t *testing.T) {
	svc, db, userId := setup(t)
	ctx := context.Background()
	orders := store.GetOrderStore(db)

	// repeat purchases of both products
	for i := 0; i < 3; i++ {
		if _, err := orders.CreateOrders(ctx, userId, []store.OrderLine{
			{ProductId: 4, Quantity: 1, TotalPrice: 33},
			{ProductId: 1, Quantity: 1, TotalPrice: 120},
		}); err != nil {
			t.Fatalf("CreateOrders failed: %v", err)
		}
	}

	suggestions, err := svc.Suggestions(ctx, userId)
	if err != nil {
		t.Fatalf("Suggestions failed: %v", err)
	}
	if len(suggestions) != 2 {
		t.Fatalf("Suggestions got %d, want 2", len(suggestions))
	}
	for _, sg := range suggestions {
		if sg.TimesBought != 3 {
			t.Errorf("TimesBought got %d, want 3", sg.TimesBought)
		}
		if !sg.SuggestedFrequency.Valid() {
			t.Errorf("SuggestedFrequency %q is not a valid cadence", sg.SuggestedFrequency)
		}
	}

	t.Run("Products already on a routine are excluded", func(t *testing.T) {
		if _, err := svc.Create(ctx, userId, milkRoutine()); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		suggestions, err := svc.Suggestions(ctx, userId)
		if err != nil {
			t.Fatalf("Suggestions failed: %v", err)
		}
		if len(suggestions) != 1 {
			t.Fatalf("Suggestions got %d, want 1 after adding a routine", len(suggestions))
		}
		if suggestions[0].ProductId != 1 {
			t.Errorf("Remaining suggestion got product %d, want 1", suggestions[0].ProductId)
		}
		// 5% of 4 deliveries at qty 1 of the 120 rice
		if suggestions[0].MonthlySavingsEst != 24 {
			t.Errorf("MonthlySavingsEst got %v, want 24", suggestions[0].MonthlySavingsEst)
		}
	})
}
