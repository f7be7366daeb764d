package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/swippe/quickcommerce/internal/domain/commerceModel"
	"github.com/swippe/quickcommerce/pkg/logger_i"
)

var ErrNotCancellable = errors.New("only pending orders can be cancelled")

type OrderStore struct {
	db     *sql.DB
	logger *logger_i.Logger
}

func GetOrderStore(db *sql.DB) *OrderStore {
	return &OrderStore{db: db, logger: logger_i.NewLogger("OrderStore")}
}

// OrderLine is one priced cart line ready to persist. Prices are computed by
// the checkout service, never taken from the client.
type OrderLine struct {
	ProductId            int64
	Quantity             int
	TotalPrice           float64
	DeliveryInstructions string
	PaymentMethod        string
	AddressLabel         string
	DeliverySlotMinutes  int
}

// CreateOrders writes one order row per cart line inside a single
// transaction, so a cart either lands fully or not at all.
func (s *OrderStore) CreateOrders(ctx context.Context, userId int64, lines []OrderLine) ([]int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO orders
		(user_id, product_id, quantity, total_price, status, delivery_instructions, payment_method, address_label, delivery_slot_minutes)
		VALUES (?, ?, ?, ?, 'pending', ?, ?, ?, ?)`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	ids := make([]int64, 0, len(lines))
	for _, line := range lines {
		res, err := stmt.ExecContext(ctx, userId, line.ProductId, line.Quantity, line.TotalPrice,
			line.DeliveryInstructions, line.PaymentMethod, line.AddressLabel, line.DeliverySlotMinutes)
		if err != nil {
			return nil, err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	s.logger.Info("Orders created", "userId", userId, "count", len(ids))
	return ids, nil
}

const orderSelect = `SELECT o.id, o.user_id, o.product_id, o.quantity, o.total_price, o.status, o.ordered_at,
	COALESCE(o.delivery_instructions, ''), COALESCE(o.payment_method, ''), COALESCE(o.address_label, ''),
	COALESCE(o.delivery_slot_minutes, 0),
	COALESCE(p.product, ''), COALESCE(p.brand, ''), COALESCE(p.category, ''),
	COALESCE(p.sale_price, 0), COALESCE(p.market_price, 0)
	FROM orders o JOIN products p ON p.id = o.product_id`

func scanOrder(row rowScanner) (commerceModel.Order, error) {
	var o commerceModel.Order
	err := row.Scan(&o.Id, &o.UserId, &o.ProductId, &o.Quantity, &o.TotalPrice, &o.Status, &o.OrderedAt,
		&o.DeliveryInstructions, &o.PaymentMethod, &o.AddressLabel, &o.DeliverySlotMinutes,
		&o.ProductName, &o.Brand, &o.Category, &o.SalePrice, &o.MarketPrice)
	return o, err
}

func scanOrders(rows *sql.Rows) ([]commerceModel.Order, error) {
	var orders []commerceModel.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (s *OrderStore) ListByUser(ctx context.Context, userId int64) ([]commerceModel.Order, error) {
	rows, err := s.db.QueryContext(ctx, orderSelect+` WHERE o.user_id = ? ORDER BY o.ordered_at DESC`, userId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

func (s *OrderStore) GetByIdForUser(ctx context.Context, orderId int64, userId int64) (commerceModel.Order, error) {
	row := s.db.QueryRowContext(ctx, orderSelect+` WHERE o.id = ? AND o.user_id = ?`, orderId, userId)
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return o, ErrNotFound
	}
	return o, err
}

// GetByIds fetches a user's orders by id, for the invoice mail job.
func (s *OrderStore) GetByIds(ctx context.Context, userId int64, ids []int64) ([]commerceModel.Order, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	params := make([]any, 0, len(ids)+1)
	params = append(params, userId)
	for _, id := range ids {
		params = append(params, id)
	}
	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf("%s WHERE o.user_id = ? AND o.id IN (%s) ORDER BY o.id", orderSelect, placeholders), params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

// Cancel flips a pending order to cancelled. Anything already moving through
// fulfilment stays untouched.
func (s *OrderStore) Cancel(ctx context.Context, orderId int64, userId int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE orders SET status = 'cancelled' WHERE id = ? AND user_id = ? AND status = 'pending'`, orderId, userId)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := s.GetByIdForUser(ctx, orderId, userId); errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return ErrNotCancellable
	}
	return nil
}

func (s *OrderStore) SetStatus(ctx context.Context, orderId int64, status commerceModel.OrderStatus) error {
	res, err := s.db.ExecContext(ctx, `UPDATE orders SET status = ? WHERE id = ?`, status, orderId)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// RecentOrders lists the latest orders across all users for the admin view,
// with the buyer's email joined in.
func (s *OrderStore) RecentOrders(ctx context.Context, limit int) ([]commerceModel.Order, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT o.id, o.user_id, o.product_id, o.quantity, o.total_price, o.status, o.ordered_at,
			COALESCE(p.product, ''), COALESCE(p.brand, ''), u.email
		FROM orders o
		JOIN products p ON p.id = o.product_id
		JOIN users u ON u.id = o.user_id
		ORDER BY o.ordered_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []commerceModel.Order
	for rows.Next() {
		var o commerceModel.Order
		if err := rows.Scan(&o.Id, &o.UserId, &o.ProductId, &o.Quantity, &o.TotalPrice, &o.Status,
			&o.OrderedAt, &o.ProductName, &o.Brand, &o.UserEmail); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

type OrderTotals struct {
	Orders  int64   `json:"orders"`
	Pending int64   `json:"pending"`
	Revenue float64 `json:"revenue"`
}

// Totals aggregates order counts and revenue; cancelled orders never count
// toward revenue.
func (s *OrderStore) Totals(ctx context.Context) (OrderTotals, error) {
	var t OrderTotals
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*),
		COALESCE(SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN status != 'cancelled' THEN total_price ELSE 0 END), 0)
		FROM orders`).Scan(&t.Orders, &t.Pending, &t.Revenue)
	return t, err
}

// FrequentProduct summarizes a user's repeat purchases of one product, used
// to suggest routine deliveries.
type FrequentProduct struct {
	ProductId   int64
	ProductName string
	Brand       string
	Category    string
	SalePrice   float64
	ImageURL    string
	TimesBought int
	AvgQuantity float64
	AvgGapDays  float64
}

// FrequentProducts returns products the user ordered at least twice, with the
// average number of days between consecutive orders.
func (s *OrderStore) FrequentProducts(ctx context.Context, userId int64) ([]FrequentProduct, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT o.product_id, COALESCE(p.product, ''), COALESCE(p.brand, ''), COALESCE(p.category, ''),
			COALESCE(p.sale_price, 0), COALESCE(p.image_url, ''),
			COUNT(*) AS times_bought, AVG(o.quantity) AS avg_quantity,
			(julianday(MAX(o.ordered_at)) - julianday(MIN(o.ordered_at))) / (COUNT(*) - 1) AS avg_gap
		FROM orders o
		JOIN products p ON p.id = o.product_id
		WHERE o.user_id = ? AND o.status != 'cancelled'
		GROUP BY o.product_id
		HAVING COUNT(*) >= 2
		ORDER BY times_bought DESC`, userId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []FrequentProduct
	for rows.Next() {
		var f FrequentProduct
		var avgGap sql.NullFloat64
		if err := rows.Scan(&f.ProductId, &f.ProductName, &f.Brand, &f.Category,
			&f.SalePrice, &f.ImageURL, &f.TimesBought, &f.AvgQuantity, &avgGap); err != nil {
			return nil, err
		}
		f.AvgGapDays = avgGap.Float64
		result = append(result, f)
	}
	return result, rows.Err()
}
