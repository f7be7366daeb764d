package handlers

import (
	"errors"
	"net/http"

	"github.com/swippe/quickcommerce/internal/api"
	"github.com/swippe/quickcommerce/internal/data/store"
	"github.com/swippe/quickcommerce/internal/domain/commerceModel"
	"github.com/swippe/quickcommerce/pkg/logger_i"
)

const (
	recentOrderLimit = 20
	recentUserLimit  = 10
)

var (
	_adminUsers    *store.UserStore
	_adminOrders   *store.OrderStore
	_adminProducts *store.ProductStore
	logADM         *logger_i.Logger
)

func InitAdminHandler(users *store.UserStore, orders *store.OrderStore, products *store.ProductStore) {
	_adminUsers = users
	_adminOrders = orders
	_adminProducts = products
	logADM = logger_i.NewLogger("AdminHandler")
}

type dashboardResponse struct {
	TotalUsers    int64                 `json:"total_users"`
	TotalAdmins   int64                 `json:"total_admins"`
	TotalProducts int64                 `json:"total_products"`
	TotalOrders   int64                 `json:"total_orders"`
	PendingOrders int64                 `json:"pending_orders"`
	Revenue       float64               `json:"revenue"`
	RecentOrders  []commerceModel.Order `json:"recent_orders"`
	RecentUsers   []api.UserSummary     `json:"recent_users"`
}

// DashboardHandler godoc
// @Summary      Admin dashboard
// @Description  Store-wide counts, revenue excluding cancelled orders, and the latest orders.
// @Tags         Admin
// @Produce      json
// @Success      200  {object}  handlers.dashboardResponse
// @Security     BearerAuth
// @Router       /api/admin/dashboard [get]
func DashboardHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, admins, err := _adminUsers.CountUsers(ctx)
	if err != nil {
		logADM.Error("User counting failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not build dashboard")
		return
	}
	productCount, err := _adminProducts.Count(ctx)
	if err != nil {
		logADM.Error("Product counting failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not build dashboard")
		return
	}
	totals, err := _adminOrders.Totals(ctx)
	if err != nil {
		logADM.Error("Order totals failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not build dashboard")
		return
	}
	recent, err := _adminOrders.RecentOrders(ctx, recentOrderLimit)
	if err != nil {
		logADM.Error("Recent order listing failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not build dashboard")
		return
	}
	newest, err := _adminUsers.ListUsers(ctx, recentUserLimit)
	if err != nil {
		logADM.Error("Recent user listing failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not build dashboard")
		return
	}
	recentUsers := make([]api.UserSummary, 0, len(newest))
	for _, u := range newest {
		recentUsers = append(recentUsers, toUserSummary(u))
	}

	writeJsonResponse(w, http.StatusOK, dashboardResponse{
		TotalUsers:    users,
		TotalAdmins:   admins,
		TotalProducts: productCount,
		TotalOrders:   totals.Orders,
		PendingOrders: totals.Pending,
		Revenue:       totals.Revenue,
		RecentOrders:  recent,
		RecentUsers:   recentUsers,
	})
}

// ListUsersHandler godoc
// @Summary      List registered users
// @Tags         Admin
// @Produce      json
// @Success      200  {array}  api.UserSummary
// @Security     BearerAuth
// @Router       /api/admin/users [get]
func ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := _adminUsers.ListUsers(r.Context(), 0)
	if err != nil {
		logADM.Error("User listing failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not list users")
		return
	}

	summaries := make([]api.UserSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, toUserSummary(u))
	}
	writeJsonResponse(w, http.StatusOK, summaries)
}

// ToggleAdminHandler godoc
// @Summary      Grant or revoke admin rights
// @Description  Flips the target's role. Admins cannot demote themselves.
// @Tags         Admin
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  api.UserSummary
// @Failure      404  {object}  handlers.errorBody
// @Failure      409  {object}  handlers.errorBody
// @Security     BearerAuth
// @Router       /api/admin/users/{id}/toggle-admin [post]
func ToggleAdminHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := userFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, ok := pathId(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	if id == caller.Id {
		writeError(w, http.StatusConflict, "cannot change your own role")
		return
	}

	target, err := _adminUsers.GetById(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		logADM.Error("User lookup failed", "userId", id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not change role")
		return
	}

	newRole := commerceModel.RoleAdmin
	if target.Role == commerceModel.RoleAdmin {
		newRole = commerceModel.RoleUser
	}
	if err := _adminUsers.SetRole(r.Context(), id, newRole); err != nil {
		logADM.Error("Role change failed", "userId", id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not change role")
		return
	}

	logADM.Info("Role changed", "userId", id, "role", newRole, "by", caller.Id)
	target.Role = newRole
	writeJsonResponse(w, http.StatusOK, toUserSummary(target))
}

var statusTransitions = map[commerceModel.OrderStatus]bool{
	commerceModel.OrderConfirmed:      true,
	commerceModel.OrderOutForDelivery: true,
	commerceModel.OrderDelivered:      true,
	commerceModel.OrderCancelled:      true,
}

type orderStatusRequest struct {
	Status string `json:"status"`
}

// SetOrderStatusHandler godoc
// @Summary      Advance an order's status
// @Description  Moves an order along the fulfilment path or cancels it.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        id       path      int                          true  "Order ID"
// @Param        request  body      handlers.orderStatusRequest  true  "New status"
// @Success      200      {object}  map[string]string
// @Failure      400      {object}  handlers.errorBody
// @Security     BearerAuth
// @Router       /api/admin/orders/{id}/status [post]
func SetOrderStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathId(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var req orderStatusRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	status := commerceModel.OrderStatus(req.Status)
	if !statusTransitions[status] {
		writeError(w, http.StatusBadRequest, "unknown order status")
		return
	}

	if err := _adminOrders.SetStatus(r.Context(), id, status); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		logADM.Error("Status change failed", "orderId", id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not change status")
		return
	}
	writeJsonResponse(w, http.StatusOK, map[string]string{"status": string(status)})
}
