package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/swippe/quickcommerce/internal/domain/routineModel"
	"github.com/swippe/quickcommerce/pkg/logger_i"
)

type RoutineStore struct {
	db     *sql.DB
	logger *logger_i.Logger
}

func GetRoutineStore(db *sql.DB) *RoutineStore {
	return &RoutineStore{db: db, logger: logger_i.NewLogger("RoutineStore")}
}

const routineSelect = `SELECT r.id, r.user_id, r.product_id, r.quantity, r.frequency,
	COALESCE(r.delivery_day, ''), COALESCE(r.delivery_time, '09:00'), r.next_delivery_date,
	r.is_active, r.is_paused, r.auto_order, COALESCE(r.max_orders, 0), r.orders_completed,
	COALESCE(r.price_locked, 0), r.notification_enabled, r.skip_holidays,
	COALESCE(r.custom_interval_days, 0), r.start_date, r.end_date, r.last_delivery_date,
	r.created_at, r.updated_at,
	COALESCE(p.product, ''), COALESCE(p.brand, ''), COALESCE(p.category, ''), COALESCE(p.sale_price, 0)
	FROM routine_deliveries r JOIN products p ON p.id = r.product_id`

func scanRoutine(row rowScanner) (routineModel.Routine, error) {
	var r routineModel.Routine
	var endDate, lastDelivery sql.NullTime
	err := row.Scan(&r.Id, &r.UserId, &r.ProductId, &r.Quantity, &r.Frequency,
		&r.DeliveryDay, &r.DeliveryTime, &r.NextDeliveryDate,
		&r.IsActive, &r.IsPaused, &r.AutoOrder, &r.MaxOrders, &r.OrdersCompleted,
		&r.PriceLocked, &r.NotificationEnabled, &r.SkipHolidays,
		&r.CustomIntervalDays, &r.StartDate, &endDate, &lastDelivery,
		&r.CreatedAt, &r.UpdatedAt,
		&r.ProductName, &r.Brand, &r.Category, &r.SalePrice)
	if err != nil {
		return r, err
	}
	r.EndDate = endDate.Time
	r.LastDeliveryDate = lastDelivery.Time
	return r, nil
}

func scanRoutines(rows *sql.Rows) ([]routineModel.Routine, error) {
	var routines []routineModel.Routine
	for rows.Next() {
		r, err := scanRoutine(rows)
		if err != nil {
			return nil, err
		}
		routines = append(routines, r)
	}
	return routines, rows.Err()
}

func (s *RoutineStore) Create(ctx context.Context, r routineModel.Routine) (int64, error) {
	res, err := s.db.ExecContext(ctx, `INSERT INTO routine_deliveries
		(user_id, product_id, quantity, frequency, delivery_day, delivery_time, next_delivery_date,
		 auto_order, max_orders, price_locked, notification_enabled, skip_holidays,
		 custom_interval_days, start_date, end_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.UserId, r.ProductId, r.Quantity, r.Frequency, nullIfEmpty(r.DeliveryDay), r.DeliveryTime,
		dateOnly(r.NextDeliveryDate), r.AutoOrder, nullIfZero(int64(r.MaxOrders)),
		nullIfZeroF(r.PriceLocked), r.NotificationEnabled, r.SkipHolidays,
		nullIfZero(int64(r.CustomIntervalDays)), dateOnly(r.StartDate), nullDate(r.EndDate))
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	s.logger.Info("Routine created", "routineId", id, "userId", r.UserId, "frequency", r.Frequency)
	return id, nil
}

func (s *RoutineStore) ListByUser(ctx context.Context, userId int64) ([]routineModel.Routine, error) {
	rows, err := s.db.QueryContext(ctx,
		routineSelect+` WHERE r.user_id = ? AND r.is_active = 1 ORDER BY r.next_delivery_date ASC`, userId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRoutines(rows)
}

func (s *RoutineStore) GetByIdForUser(ctx context.Context, id int64, userId int64) (routineModel.Routine, error) {
	row := s.db.QueryRowContext(ctx, routineSelect+` WHERE r.id = ? AND r.user_id = ? AND r.is_active = 1`, id, userId)
	r, err := scanRoutine(row)
	if errors.Is(err, sql.ErrNoRows) {
		return r, ErrNotFound
	}
	return r, err
}

func (s *RoutineStore) Update(ctx context.Context, r routineModel.Routine) error {
	res, err := s.db.ExecContext(ctx, `UPDATE routine_deliveries SET
		quantity = ?, frequency = ?, delivery_day = ?, delivery_time = ?,
		auto_order = ?, max_orders = ?, notification_enabled = ?, skip_holidays = ?,
		custom_interval_days = ?, end_date = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND user_id = ? AND is_active = 1`,
		r.Quantity, r.Frequency, nullIfEmpty(r.DeliveryDay), r.DeliveryTime,
		r.AutoOrder, nullIfZero(int64(r.MaxOrders)), r.NotificationEnabled, r.SkipHolidays,
		nullIfZero(int64(r.CustomIntervalDays)), nullDate(r.EndDate), r.Id, r.UserId)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// TogglePause flips the paused flag and reports the new state.
func (s *RoutineStore) TogglePause(ctx context.Context, id int64, userId int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE routine_deliveries
		SET is_paused = 1 - is_paused, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND user_id = ? AND is_active = 1`, id, userId)
	if err != nil {
		return false, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return false, ErrNotFound
	}
	var paused bool
	err = s.db.QueryRowContext(ctx,
		`SELECT is_paused FROM routine_deliveries WHERE id = ?`, id).Scan(&paused)
	return paused, err
}

// Delete deactivates a routine; the row stays for delivery history.
func (s *RoutineStore) Delete(ctx context.Context, id int64, userId int64) error {
	res, err := s.db.ExecContext(ctx, `UPDATE routine_deliveries
		SET is_active = 0, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND user_id = ? AND is_active = 1`, id, userId)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetNextDate moves the next delivery, used to skip one upcoming cycle.
func (s *RoutineStore) SetNextDate(ctx context.Context, id int64, userId int64, next time.Time) error {
	res, err := s.db.ExecContext(ctx, `UPDATE routine_deliveries
		SET next_delivery_date = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND user_id = ? AND is_active = 1`, dateOnly(next), id, userId)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetPriceLock captures (or clears, with 0) the price the routine will keep
// paying regardless of catalog changes.
func (s *RoutineStore) SetPriceLock(ctx context.Context, id int64, userId int64, price float64) error {
	res, err := s.db.ExecContext(ctx, `UPDATE routine_deliveries
		SET price_locked = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND user_id = ? AND is_active = 1`, nullIfZeroF(price), id, userId)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DueRoutines returns routines the scheduler should turn into orders: active,
// unpaused, auto-ordering, due on or before asOf, inside their end date and
// under their order cap.
func (s *RoutineStore) DueRoutines(ctx context.Context, asOf time.Time) ([]routineModel.Routine, error) {
	rows, err := s.db.QueryContext(ctx, routineSelect+`
		WHERE r.is_active = 1 AND r.is_paused = 0 AND r.auto_order = 1
		AND r.next_delivery_date <= ?
		AND (r.end_date IS NULL OR r.end_date >= ?)
		AND (r.max_orders IS NULL OR r.orders_completed < r.max_orders)`,
		dateOnly(asOf), dateOnly(asOf))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRoutines(rows)
}

// MarkDelivered records a completed cycle and schedules the next one.
func (s *RoutineStore) MarkDelivered(ctx context.Context, id int64, deliveredOn time.Time, next time.Time) error {
	_, err := s.db.ExecContext(ctx, `UPDATE routine_deliveries
		SET orders_completed = orders_completed + 1, last_delivery_date = ?,
		    next_delivery_date = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, dateOnly(deliveredOn), dateOnly(next), id)
	return err
}

func dateOnly(t time.Time) string {
	return t.Format("2006-01-02")
}

func nullDate(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return dateOnly(t)
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullIfZero(n int64) any {
	if n == 0 {
		return nil
	}
	return n
}

func nullIfZeroF(f float64) any {
	if f == 0 {
		return nil
	}
	return f
}
