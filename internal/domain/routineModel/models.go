package routineModel

import "time"

type Frequency string

const (
	Daily    Frequency = "daily"
	Weekly   Frequency = "weekly"
	Biweekly Frequency = "biweekly"
	Monthly  Frequency = "monthly"
	Custom   Frequency = "custom"
)

func (f Frequency) Valid() bool {
	switch f {
	case Daily, Weekly, Biweekly, Monthly, Custom:
		return true
	}
	return false
}

type Routine struct {
	Id                  int64     `json:"id"`
	UserId              int64     `json:"user_id"`
	ProductId           int64     `json:"product_id"`
	Quantity            int       `json:"quantity"`
	Frequency           Frequency `json:"frequency"`
	DeliveryDay         string    `json:"delivery_day,omitempty"`
	DeliveryTime        string    `json:"delivery_time"`
	NextDeliveryDate    time.Time `json:"next_delivery_date"`
	IsActive            bool      `json:"is_active"`
	IsPaused            bool      `json:"is_paused"`
	AutoOrder           bool      `json:"auto_order"`
	MaxOrders           int       `json:"max_orders,omitempty"`
	OrdersCompleted     int       `json:"orders_completed"`
	PriceLocked         float64   `json:"price_locked,omitempty"`
	NotificationEnabled bool      `json:"notification_enabled"`
	SkipHolidays        bool      `json:"skip_holidays"`
	CustomIntervalDays  int       `json:"custom_interval_days,omitempty"`
	StartDate           time.Time `json:"start_date"`
	EndDate             time.Time `json:"end_date,omitempty"`
	LastDeliveryDate    time.Time `json:"last_delivery_date,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`

	// joined product fields, populated on reads
	ProductName string  `json:"product,omitempty"`
	Brand       string  `json:"brand,omitempty"`
	Category    string  `json:"category,omitempty"`
	SalePrice   float64 `json:"sale_price,omitempty"`
}

// IntervalDays maps a frequency to its cycle length in days. Monthly is a
// flat 30 days, matching how the ordering cadence is presented to users.
func (r Routine) IntervalDays() int {
	switch r.Frequency {
	case Daily:
		return 1
	case Weekly:
		return 7
	case Biweekly:
		return 14
	case Monthly:
		return 30
	case Custom:
		if r.CustomIntervalDays > 0 {
			return r.CustomIntervalDays
		}
	}
	return 7
}

// EffectivePrice is the locked price when one was captured, otherwise the
// catalog's current sale price.
func (r Routine) EffectivePrice() float64 {
	if r.PriceLocked > 0 {
		return r.PriceLocked
	}
	return r.SalePrice
}

// MonthlyCost projects what this routine costs per 30-day month.
func (r Routine) MonthlyCost() float64 {
	return r.EffectivePrice() * float64(r.Quantity) * (30.0 / float64(r.IntervalDays()))
}

// TotalSavings accrued from a price lock across completed deliveries.
func (r Routine) TotalSavings() float64 {
	if r.PriceLocked <= 0 || r.SalePrice <= r.PriceLocked {
		return 0
	}
	return (r.SalePrice - r.PriceLocked) * float64(r.Quantity) * float64(r.OrdersCompleted)
}

// Advance returns the delivery date one cycle after from.
func (r Routine) Advance(from time.Time) time.Time {
	return from.AddDate(0, 0, r.IntervalDays())
}
