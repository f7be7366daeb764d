package routine

import (
	"context"
	"time"

	"github.com/swippe/quickcommerce/internal/adapter/utils"
	"github.com/swippe/quickcommerce/internal/checkout"
	"github.com/swippe/quickcommerce/internal/config"
	"github.com/swippe/quickcommerce/internal/data/store"
	"github.com/swippe/quickcommerce/internal/domain/routineModel"
	"github.com/swippe/quickcommerce/pkg/logger_i"
)

// InvoiceQueueFunc hands a placed delivery to the async invoice pipeline.
type InvoiceQueueFunc func(traceId string, userId int64, email string, orderIds []int64) string

// Scheduler turns due routines into real orders on a fixed tick. One pass
// also runs at startup so a restart never misses a delivery day.
type Scheduler struct {
	routines       *store.RoutineStore
	orders         *store.OrderStore
	users          *store.UserStore
	enqueueInvoice InvoiceQueueFunc
	logger         *logger_i.Logger
}

func NewScheduler(routines *store.RoutineStore, orders *store.OrderStore) *Scheduler {
	return &Scheduler{
		routines: routines,
		orders:   orders,
		logger:   logger_i.NewLogger("RoutineScheduler"),
	}
}

// NotifyInvoices makes auto-orders send the same invoice email a checkout
// does. Without it deliveries are still placed, just silently.
func (s *Scheduler) NotifyInvoices(users *store.UserStore, enqueue InvoiceQueueFunc) {
	s.users = users
	s.enqueueInvoice = enqueue
}

// Run blocks until ctx is cancelled; callers start it as a goroutine.
func (s *Scheduler) Run(ctx context.Context) {
	s.logger.Info("Routine scheduler started", "tick", config.SchedulerTickInterval)
	s.RunOnce(ctx)

	ticker := time.NewTicker(config.SchedulerTickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Routine scheduler stopped")
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce processes everything due right now and reports how many orders it
// placed.
func (s *Scheduler) RunOnce(ctx context.Context) int {
	now := time.Now()
	due, err := s.routines.DueRoutines(ctx, now)
	if err != nil {
		s.logger.Error("Could not load due routines", "error", err)
		return 0
	}

	placed := 0
	for _, r := range due {
		if err := s.deliver(ctx, r, now); err != nil {
			s.logger.Error("Routine delivery failed", "routineId", r.Id, "error", err)
			continue
		}
		placed++
	}
	if placed > 0 {
		s.logger.Info("Routine deliveries placed", "count", placed)
	}
	return placed
}

func (s *Scheduler) deliver(ctx context.Context, r routineModel.Routine, now time.Time) error {
	lineTotal := r.EffectivePrice() * float64(r.Quantity)
	total := lineTotal + checkout.DeliveryFeeFor(lineTotal)

	orderIds, err := s.orders.CreateOrders(ctx, r.UserId, []store.OrderLine{{
		ProductId:           r.ProductId,
		Quantity:            r.Quantity,
		TotalPrice:          total,
		PaymentMethod:       "routine",
		AddressLabel:        "default",
		DeliverySlotMinutes: 0,
	}})
	if err != nil {
		return err
	}

	if err := s.routines.MarkDelivered(ctx, r.Id, now, r.Advance(r.NextDeliveryDate)); err != nil {
		return err
	}

	if s.enqueueInvoice != nil && s.users != nil {
		user, err := s.users.GetById(ctx, r.UserId)
		if err != nil {
			s.logger.Error("Could not resolve invoice recipient", "routineId", r.Id, "error", err)
			return nil
		}
		s.enqueueInvoice(utils.GetNewUUID(), r.UserId, user.Email, orderIds)
	}
	return nil
}
