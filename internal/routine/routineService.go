package routine

import (
	"context"
	"errors"
	"time"

	"github.com/swippe/quickcommerce/internal/data/store"
	"github.com/swippe/quickcommerce/internal/domain/routineModel"
	"github.com/swippe/quickcommerce/pkg/logger_i"
)

var (
	ErrBadFrequency  = errors.New("invalid frequency")
	ErrBadQuantity   = errors.New("quantity must be positive")
	ErrBadInterval   = errors.New("custom frequency needs a positive interval")
	ErrNoSuchProduct = errors.New("unknown product")
)

type Service struct {
	routines *store.RoutineStore
	products *store.ProductStore
	orders   *store.OrderStore
	logger   *logger_i.Logger
}

func NewService(routines *store.RoutineStore, products *store.ProductStore, orders *store.OrderStore) *Service {
	return &Service{
		routines: routines,
		products: products,
		orders:   orders,
		logger:   logger_i.NewLogger("RoutineService"),
	}
}

type CreateParams struct {
	ProductId          int64
	Quantity           int
	Frequency          routineModel.Frequency
	DeliveryDay        string
	DeliveryTime       string
	CustomIntervalDays int
	AutoOrder          bool
	MaxOrders          int
	LockPrice          bool
	NotificationOn     bool
	SkipHolidays       bool
	StartDate          time.Time
	EndDate            time.Time
}

// Create validates the cadence and sets up the first delivery. LockPrice
// captures today's sale price so later catalog changes don't touch this
// routine.
func (s *Service) Create(ctx context.Context, userId int64, p CreateParams) (routineModel.Routine, error) {
	if !p.Frequency.Valid() {
		return routineModel.Routine{}, ErrBadFrequency
	}
	if p.Quantity <= 0 {
		return routineModel.Routine{}, ErrBadQuantity
	}
	if p.Frequency == routineModel.Custom && p.CustomIntervalDays <= 0 {
		return routineModel.Routine{}, ErrBadInterval
	}

	product, err := s.products.GetById(ctx, p.ProductId)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return routineModel.Routine{}, ErrNoSuchProduct
		}
		return routineModel.Routine{}, err
	}

	today := truncateToDay(time.Now())
	start := truncateToDay(p.StartDate)
	if start.Before(today) {
		start = today
	}

	deliveryTime := p.DeliveryTime
	if deliveryTime == "" {
		deliveryTime = "09:00"
	}

	r := routineModel.Routine{
		UserId:              userId,
		ProductId:           product.Id,
		Quantity:            p.Quantity,
		Frequency:           p.Frequency,
		DeliveryDay:         p.DeliveryDay,
		DeliveryTime:        deliveryTime,
		CustomIntervalDays:  p.CustomIntervalDays,
		AutoOrder:           p.AutoOrder,
		MaxOrders:           p.MaxOrders,
		NotificationEnabled: p.NotificationOn,
		SkipHolidays:        p.SkipHolidays,
		StartDate:           start,
		EndDate:             truncateToDay(p.EndDate),
		NextDeliveryDate:    start,
	}
	if p.LockPrice {
		r.PriceLocked = product.SalePrice
	}

	id, err := s.routines.Create(ctx, r)
	if err != nil {
		return routineModel.Routine{}, err
	}
	return s.routines.GetByIdForUser(ctx, id, userId)
}

func (s *Service) List(ctx context.Context, userId int64) ([]routineModel.Routine, error) {
	return s.routines.ListByUser(ctx, userId)
}

func (s *Service) Get(ctx context.Context, id int64, userId int64) (routineModel.Routine, error) {
	return s.routines.GetByIdForUser(ctx, id, userId)
}

type UpdateParams struct {
	Quantity           *int
	Frequency          *routineModel.Frequency
	DeliveryDay        *string
	DeliveryTime       *string
	CustomIntervalDays *int
	AutoOrder          *bool
	MaxOrders          *int
	NotificationOn     *bool
	SkipHolidays       *bool
	EndDate            *time.Time
}

// Update applies only the fields the client sent.
func (s *Service) Update(ctx context.Context, id int64, userId int64, p UpdateParams) (routineModel.Routine, error) {
	r, err := s.routines.GetByIdForUser(ctx, id, userId)
	if err != nil {
		return routineModel.Routine{}, err
	}

	if p.Quantity != nil {
		if *p.Quantity <= 0 {
			return routineModel.Routine{}, ErrBadQuantity
		}
		r.Quantity = *p.Quantity
	}
	if p.Frequency != nil {
		if !p.Frequency.Valid() {
			return routineModel.Routine{}, ErrBadFrequency
		}
		r.Frequency = *p.Frequency
	}
	if p.DeliveryDay != nil {
		r.DeliveryDay = *p.DeliveryDay
	}
	if p.DeliveryTime != nil {
		r.DeliveryTime = *p.DeliveryTime
	}
	if p.CustomIntervalDays != nil {
		r.CustomIntervalDays = *p.CustomIntervalDays
	}
	if r.Frequency == routineModel.Custom && r.CustomIntervalDays <= 0 {
		return routineModel.Routine{}, ErrBadInterval
	}
	if p.AutoOrder != nil {
		r.AutoOrder = *p.AutoOrder
	}
	if p.MaxOrders != nil {
		r.MaxOrders = *p.MaxOrders
	}
	if p.NotificationOn != nil {
		r.NotificationEnabled = *p.NotificationOn
	}
	if p.SkipHolidays != nil {
		r.SkipHolidays = *p.SkipHolidays
	}
	if p.EndDate != nil {
		r.EndDate = truncateToDay(*p.EndDate)
	}

	if err := s.routines.Update(ctx, r); err != nil {
		return routineModel.Routine{}, err
	}
	return s.routines.GetByIdForUser(ctx, id, userId)
}

func (s *Service) TogglePause(ctx context.Context, id int64, userId int64) (bool, error) {
	return s.routines.TogglePause(ctx, id, userId)
}

func (s *Service) Delete(ctx context.Context, id int64, userId int64) error {
	return s.routines.Delete(ctx, id, userId)
}

// SkipNext pushes the next delivery one full cycle out.
func (s *Service) SkipNext(ctx context.Context, id int64, userId int64) (routineModel.Routine, error) {
	r, err := s.routines.GetByIdForUser(ctx, id, userId)
	if err != nil {
		return routineModel.Routine{}, err
	}
	if err := s.routines.SetNextDate(ctx, id, userId, r.Advance(r.NextDeliveryDate)); err != nil {
		return routineModel.Routine{}, err
	}
	return s.routines.GetByIdForUser(ctx, id, userId)
}

// SetPriceLock locks today's catalog price (lock=true) or releases the lock.
func (s *Service) SetPriceLock(ctx context.Context, id int64, userId int64, lock bool) (routineModel.Routine, error) {
	r, err := s.routines.GetByIdForUser(ctx, id, userId)
	if err != nil {
		return routineModel.Routine{}, err
	}

	price := 0.0
	if lock {
		price = r.SalePrice
	}
	if err := s.routines.SetPriceLock(ctx, id, userId, price); err != nil {
		return routineModel.Routine{}, err
	}
	return s.routines.GetByIdForUser(ctx, id, userId)
}

func truncateToDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
