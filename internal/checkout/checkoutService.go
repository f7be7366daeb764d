package checkout

import (
	"context"
	"errors"

	"github.com/swippe/quickcommerce/internal/config"
	"github.com/swippe/quickcommerce/internal/data/store"
	"github.com/swippe/quickcommerce/internal/domain/commerceModel"
	"github.com/swippe/quickcommerce/pkg/logger_i"
)

var (
	ErrEmptyCart      = errors.New("cart is empty")
	ErrBadQuantity    = errors.New("quantity must be positive")
	ErrUnknownProduct = errors.New("unknown product in cart")
)

// CartLine is what the client sends: which product and how many. Prices are
// always looked up server-side.
type CartLine struct {
	ProductId int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type CheckoutOptions struct {
	DeliveryInstructions string
	PaymentMethod        string
	AddressLabel         string
	DeliverySlotMinutes  int
}

// OrderSummary is the priced result of a checkout.
type OrderSummary struct {
	OrderIds    []int64 `json:"order_ids"`
	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"delivery_fee"`
	Discount    float64 `json:"discount"`
	Total       float64 `json:"total"`
}

type Service struct {
	orders   *store.OrderStore
	products *store.ProductStore
	logger   *logger_i.Logger
}

func NewService(orders *store.OrderStore, products *store.ProductStore) *Service {
	return &Service{orders: orders, products: products, logger: logger_i.NewLogger("CheckoutService")}
}

// PlaceOrder prices the cart from the catalog, applies the delivery fee rule
// and persists one order row per line. Discount is the market-vs-sale spread,
// reported for display only.
func (s *Service) PlaceOrder(ctx context.Context, userId int64, lines []CartLine, opts CheckoutOptions) (OrderSummary, error) {
	if len(lines) == 0 {
		return OrderSummary{}, ErrEmptyCart
	}

	var summary OrderSummary
	orderLines := make([]store.OrderLine, 0, len(lines))

	for _, line := range lines {
		if line.Quantity <= 0 {
			return OrderSummary{}, ErrBadQuantity
		}
		product, err := s.products.GetById(ctx, line.ProductId)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return OrderSummary{}, ErrUnknownProduct
			}
			return OrderSummary{}, err
		}

		lineTotal := product.SalePrice * float64(line.Quantity)
		summary.Subtotal += lineTotal
		if product.MarketPrice > product.SalePrice {
			summary.Discount += (product.MarketPrice - product.SalePrice) * float64(line.Quantity)
		}

		orderLines = append(orderLines, store.OrderLine{
			ProductId:            product.Id,
			Quantity:             line.Quantity,
			TotalPrice:           lineTotal,
			DeliveryInstructions: opts.DeliveryInstructions,
			PaymentMethod:        opts.PaymentMethod,
			AddressLabel:         opts.AddressLabel,
			DeliverySlotMinutes:  opts.DeliverySlotMinutes,
		})
	}

	summary.DeliveryFee = DeliveryFeeFor(summary.Subtotal)
	summary.Total = summary.Subtotal + summary.DeliveryFee

	ids, err := s.orders.CreateOrders(ctx, userId, orderLines)
	if err != nil {
		return OrderSummary{}, err
	}
	summary.OrderIds = ids

	s.logger.Info("Checkout complete", "userId", userId, "orders", len(ids), "total", summary.Total)
	return summary, nil
}

// DeliveryFeeFor implements the free-delivery threshold.
func DeliveryFeeFor(subtotal float64) float64 {
	if subtotal >= config.FreeDeliveryThreshold {
		return 0
	}
	return config.DeliveryFee
}

func (s *Service) ListOrders(ctx context.Context, userId int64) ([]commerceModel.Order, error) {
	return s.orders.ListByUser(ctx, userId)
}

func (s *Service) GetOrder(ctx context.Context, orderId int64, userId int64) (commerceModel.Order, error) {
	return s.orders.GetByIdForUser(ctx, orderId, userId)
}

func (s *Service) CancelOrder(ctx context.Context, orderId int64, userId int64) error {
	return s.orders.Cancel(ctx, orderId, userId)
}

// TrackingStep is one station in the synthetic tracking timeline.
type TrackingStep struct {
	Status  commerceModel.OrderStatus `json:"status"`
	Done    bool                      `json:"done"`
	Current bool                      `json:"current"`
}

var trackingPath = []commerceModel.OrderStatus{
	commerceModel.OrderPending,
	commerceModel.OrderConfirmed,
	commerceModel.OrderOutForDelivery,
	commerceModel.OrderDelivered,
}

// TrackOrder maps the order's status onto the fixed delivery timeline.
// Cancelled orders get a single terminal step.
func (s *Service) TrackOrder(ctx context.Context, orderId int64, userId int64) (commerceModel.Order, []TrackingStep, error) {
	order, err := s.orders.GetByIdForUser(ctx, orderId, userId)
	if err != nil {
		return commerceModel.Order{}, nil, err
	}

	if order.Status == commerceModel.OrderCancelled {
		return order, []TrackingStep{{Status: commerceModel.OrderCancelled, Done: true, Current: true}}, nil
	}

	steps := make([]TrackingStep, 0, len(trackingPath))
	reached := true
	for _, status := range trackingPath {
		current := status == order.Status
		steps = append(steps, TrackingStep{Status: status, Done: reached, Current: current})
		if current {
			reached = false
		}
	}
	return order, steps, nil
}
