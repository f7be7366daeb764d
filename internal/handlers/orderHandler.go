package handlers

import (
	"errors"
	"net/http"

	"github.com/swippe/quickcommerce/internal/api"
	"github.com/swippe/quickcommerce/internal/checkout"
	"github.com/swippe/quickcommerce/internal/data/store"
	"github.com/swippe/quickcommerce/internal/domain/commerceModel"
	"github.com/swippe/quickcommerce/internal/metrics"
	"github.com/swippe/quickcommerce/pkg/logger_i"
)

var (
	_checkout *checkout.Service
	logOH     *logger_i.Logger
)

func InitOrderHandler(checkoutService *checkout.Service) {
	_checkout = checkoutService
	logOH = logger_i.NewLogger("OrderHandler")
}

// CheckoutHandler godoc
// @Summary      Place an order
// @Description  Prices the cart server-side, persists one order per line and queues the invoice email.
// @Tags         Orders
// @Accept       json
// @Produce      json
// @Param        request  body      api.CheckoutRequest  true  "Cart lines and delivery options"
// @Success      201      {object}  checkout.OrderSummary
// @Failure      400      {object}  handlers.errorBody
// @Security     BearerAuth
// @Router       /api/orders [post]
func CheckoutHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := userFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req api.CheckoutRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	lines := make([]checkout.CartLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, checkout.CartLine{ProductId: item.ProductId, Quantity: item.Quantity})
	}

	summary, err := _checkout.PlaceOrder(r.Context(), caller.Id, lines, checkout.CheckoutOptions{
		DeliveryInstructions: req.DeliveryInstructions,
		PaymentMethod:        req.PaymentMethod,
		AddressLabel:         req.AddressLabel,
		DeliverySlotMinutes:  req.DeliverySlotMinutes,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart),
			errors.Is(err, checkout.ErrBadQuantity),
			errors.Is(err, checkout.ErrUnknownProduct):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			logOH.Error("Checkout failed", "userId", caller.Id, "error", err)
			writeError(w, http.StatusInternalServerError, "checkout failed")
		}
		return
	}

	metrics.CountOrderPlaced(len(summary.OrderIds))
	EnqueueInvoiceJob(traceFrom(r), caller.Id, caller.Email, summary.OrderIds)
	writeJsonResponse(w, http.StatusCreated, summary)
}

// ListOrdersHandler godoc
// @Summary      Order history
// @Tags         Orders
// @Produce      json
// @Success      200  {array}  commerceModel.Order
// @Security     BearerAuth
// @Router       /api/orders [get]
func ListOrdersHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := userFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	orders, err := _checkout.ListOrders(r.Context(), caller.Id)
	if err != nil {
		logOH.Error("Order listing failed", "userId", caller.Id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not list orders")
		return
	}
	writeJsonResponse(w, http.StatusOK, orders)
}

// GetOrderHandler godoc
// @Summary      One order
// @Tags         Orders
// @Produce      json
// @Param        id   path      int  true  "Order ID"
// @Success      200  {object}  commerceModel.Order
// @Failure      404  {object}  handlers.errorBody
// @Security     BearerAuth
// @Router       /api/orders/{id} [get]
func GetOrderHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := userFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, ok := pathId(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	order, err := _checkout.GetOrder(r.Context(), id, caller.Id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		logOH.Error("Order lookup failed", "orderId", id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not load order")
		return
	}
	writeJsonResponse(w, http.StatusOK, order)
}

// CancelOrderHandler godoc
// @Summary      Cancel a pending order
// @Tags         Orders
// @Produce      json
// @Param        id   path      int  true  "Order ID"
// @Success      200  {object}  map[string]string
// @Failure      409  {object}  handlers.errorBody
// @Security     BearerAuth
// @Router       /api/orders/{id}/cancel [post]
func CancelOrderHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := userFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, ok := pathId(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	if err := _checkout.CancelOrder(r.Context(), id, caller.Id); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "order not found")
		case errors.Is(err, store.ErrNotCancellable):
			writeError(w, http.StatusConflict, "only pending orders can be cancelled")
		default:
			logOH.Error("Order cancel failed", "orderId", id, "error", err)
			writeError(w, http.StatusInternalServerError, "could not cancel order")
		}
		return
	}
	writeJsonResponse(w, http.StatusOK, map[string]string{"status": string(commerceModel.OrderCancelled)})
}

type trackingResponse struct {
	Order commerceModel.Order     `json:"order"`
	Steps []checkout.TrackingStep `json:"steps"`
}

// TrackOrderHandler godoc
// @Summary      Order tracking timeline
// @Tags         Orders
// @Produce      json
// @Param        id   path      int  true  "Order ID"
// @Success      200  {object}  handlers.trackingResponse
// @Failure      404  {object}  handlers.errorBody
// @Security     BearerAuth
// @Router       /api/orders/{id}/tracking [get]
func TrackOrderHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := userFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, ok := pathId(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	order, steps, err := _checkout.TrackOrder(r.Context(), id, caller.Id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		logOH.Error("Order tracking failed", "orderId", id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not track order")
		return
	}
	writeJsonResponse(w, http.StatusOK, trackingResponse{Order: order, Steps: steps})
}
