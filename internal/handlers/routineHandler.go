package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/swippe/quickcommerce/internal/api"
	"github.com/swippe/quickcommerce/internal/data/store"
	"github.com/swippe/quickcommerce/internal/domain/routineModel"
	"github.com/swippe/quickcommerce/internal/routine"
	"github.com/swippe/quickcommerce/pkg/logger_i"
)

var (
	_routines *routine.Service
	logRTH    *logger_i.Logger
)

func InitRoutineHandler(routineService *routine.Service) {
	_routines = routineService
	logRTH = logger_i.NewLogger("RoutineHandler")
}

func parseDate(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}
	}
	return t
}

func writeRoutineError(w http.ResponseWriter, err error, logMessage string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "routine not found")
	case errors.Is(err, routine.ErrBadFrequency),
		errors.Is(err, routine.ErrBadQuantity),
		errors.Is(err, routine.ErrBadInterval),
		errors.Is(err, routine.ErrNoSuchProduct):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		logRTH.Error(logMessage, "error", err)
		writeError(w, http.StatusInternalServerError, "routine operation failed")
	}
}

// CreateRoutineHandler godoc
// @Summary      Create a routine delivery
// @Description  Sets up a recurring order for one product at a chosen cadence.
// @Tags         Routines
// @Accept       json
// @Produce      json
// @Param        request  body      api.RoutineCreateRequest  true  "Routine settings"
// @Success      201      {object}  routineModel.Routine
// @Failure      400      {object}  handlers.errorBody
// @Security     BearerAuth
// @Router       /api/routines [post]
func CreateRoutineHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := userFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req api.RoutineCreateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	autoOrder := true
	if req.AutoOrder != nil {
		autoOrder = *req.AutoOrder
	}
	notification := true
	if req.Notification != nil {
		notification = *req.Notification
	}
	skipHolidays := true
	if req.SkipHolidays != nil {
		skipHolidays = *req.SkipHolidays
	}

	created, err := _routines.Create(r.Context(), caller.Id, routine.CreateParams{
		ProductId:          req.ProductId,
		Quantity:           req.Quantity,
		Frequency:          routineModel.Frequency(req.Frequency),
		DeliveryDay:        req.DeliveryDay,
		DeliveryTime:       req.DeliveryTime,
		CustomIntervalDays: req.CustomIntervalDays,
		AutoOrder:          autoOrder,
		MaxOrders:          req.MaxOrders,
		LockPrice:          req.LockPrice,
		NotificationOn:     notification,
		SkipHolidays:       skipHolidays,
		StartDate:          parseDate(req.StartDate),
		EndDate:            parseDate(req.EndDate),
	})
	if err != nil {
		writeRoutineError(w, err, "Routine create failed")
		return
	}
	writeJsonResponse(w, http.StatusCreated, created)
}

// ListRoutinesHandler godoc
// @Summary      List routine deliveries
// @Tags         Routines
// @Produce      json
// @Success      200  {array}  routineModel.Routine
// @Security     BearerAuth
// @Router       /api/routines [get]
func ListRoutinesHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := userFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	routines, err := _routines.List(r.Context(), caller.Id)
	if err != nil {
		logRTH.Error("Routine listing failed", "userId", caller.Id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not list routines")
		return
	}
	writeJsonResponse(w, http.StatusOK, routines)
}

// GetRoutineHandler godoc
// @Summary      One routine
// @Tags         Routines
// @Produce      json
// @Param        id   path      int  true  "Routine ID"
// @Success      200  {object}  routineModel.Routine
// @Failure      404  {object}  handlers.errorBody
// @Security     BearerAuth
// @Router       /api/routines/{id} [get]
func GetRoutineHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := userFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, ok := pathId(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid routine id")
		return
	}

	found, err := _routines.Get(r.Context(), id, caller.Id)
	if err != nil {
		writeRoutineError(w, err, "Routine lookup failed")
		return
	}
	writeJsonResponse(w, http.StatusOK, found)
}

// UpdateRoutineHandler godoc
// @Summary      Update a routine
// @Description  Partially updates cadence, quantity and flags; absent fields stay untouched.
// @Tags         Routines
// @Accept       json
// @Produce      json
// @Param        id       path      int                       true  "Routine ID"
// @Param        request  body      api.RoutineUpdateRequest  true  "Fields to change"
// @Success      200      {object}  routineModel.Routine
// @Failure      404      {object}  handlers.errorBody
// @Security     BearerAuth
// @Router       /api/routines/{id} [put]
func UpdateRoutineHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := userFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, ok := pathId(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid routine id")
		return
	}

	var req api.RoutineUpdateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	params := routine.UpdateParams{
		Quantity:           req.Quantity,
		DeliveryDay:        req.DeliveryDay,
		DeliveryTime:       req.DeliveryTime,
		CustomIntervalDays: req.CustomIntervalDays,
		AutoOrder:          req.AutoOrder,
		MaxOrders:          req.MaxOrders,
		NotificationOn:     req.Notification,
		SkipHolidays:       req.SkipHolidays,
	}
	if req.Frequency != nil {
		f := routineModel.Frequency(*req.Frequency)
		params.Frequency = &f
	}
	if req.EndDate != nil {
		d := parseDate(*req.EndDate)
		params.EndDate = &d
	}

	updated, err := _routines.Update(r.Context(), id, caller.Id, params)
	if err != nil {
		writeRoutineError(w, err, "Routine update failed")
		return
	}
	writeJsonResponse(w, http.StatusOK, updated)
}

// DeleteRoutineHandler godoc
// @Summary      Delete a routine
// @Tags         Routines
// @Produce      json
// @Param        id   path      int  true  "Routine ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  handlers.errorBody
// @Security     BearerAuth
// @Router       /api/routines/{id} [delete]
func DeleteRoutineHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := userFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, ok := pathId(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid routine id")
		return
	}

	if err := _routines.Delete(r.Context(), id, caller.Id); err != nil {
		writeRoutineError(w, err, "Routine delete failed")
		return
	}
	writeJsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ToggleRoutineHandler godoc
// @Summary      Pause or resume a routine
// @Tags         Routines
// @Produce      json
// @Param        id   path      int  true  "Routine ID"
// @Success      200  {object}  map[string]bool
// @Failure      404  {object}  handlers.errorBody
// @Security     BearerAuth
// @Router       /api/routines/{id}/toggle [post]
func ToggleRoutineHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := userFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, ok := pathId(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid routine id")
		return
	}

	paused, err := _routines.TogglePause(r.Context(), id, caller.Id)
	if err != nil {
		writeRoutineError(w, err, "Routine toggle failed")
		return
	}
	writeJsonResponse(w, http.StatusOK, map[string]bool{"is_paused": paused})
}

// SkipNextRoutineHandler godoc
// @Summary      Skip the next delivery
// @Tags         Routines
// @Produce      json
// @Param        id   path      int  true  "Routine ID"
// @Success      200  {object}  routineModel.Routine
// @Failure      404  {object}  handlers.errorBody
// @Security     BearerAuth
// @Router       /api/routines/{id}/skip-next [post]
func SkipNextRoutineHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := userFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, ok := pathId(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid routine id")
		return
	}

	updated, err := _routines.SkipNext(r.Context(), id, caller.Id)
	if err != nil {
		writeRoutineError(w, err, "Routine skip failed")
		return
	}
	writeJsonResponse(w, http.StatusOK, updated)
}

// LockPriceRoutineHandler godoc
// @Summary      Lock or release the routine's price
// @Tags         Routines
// @Accept       json
// @Produce      json
// @Param        id       path      int                  true  "Routine ID"
// @Param        request  body      api.PriceLockRequest true  "Lock or unlock"
// @Success      200      {object}  routineModel.Routine
// @Failure      404      {object}  handlers.errorBody
// @Security     BearerAuth
// @Router       /api/routines/{id}/lock-price [post]
func LockPriceRoutineHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := userFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, ok := pathId(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid routine id")
		return
	}

	var req api.PriceLockRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := _routines.SetPriceLock(r.Context(), id, caller.Id, req.Lock)
	if err != nil {
		writeRoutineError(w, err, "Routine price lock failed")
		return
	}
	writeJsonResponse(w, http.StatusOK, updated)
}

// RoutineSuggestionsHandler godoc
// @Summary      Suggested routines
// @Description  Products bought repeatedly, with a cadence inferred from the reorder gap.
// @Tags         Routines
// @Produce      json
// @Success      200  {array}  routine.Suggestion
// @Security     BearerAuth
// @Router       /api/routines/suggestions [get]
func RoutineSuggestionsHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := userFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	suggestions, err := _routines.Suggestions(r.Context(), caller.Id)
	if err != nil {
		logRTH.Error("Routine suggestions failed", "userId", caller.Id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not build suggestions")
		return
	}
	writeJsonResponse(w, http.StatusOK, suggestions)
}

// RoutineAnalyticsHandler godoc
// @Summary      Routine spend analytics
// @Tags         Routines
// @Produce      json
// @Success      200  {object}  routine.Analytics
// @Security     BearerAuth
// @Router       /api/routines/analytics [get]
func RoutineAnalyticsHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := userFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	analytics, err := _routines.Analytics(r.Context(), caller.Id)
	if err != nil {
		logRTH.Error("Routine analytics failed", "userId", caller.Id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not build analytics")
		return
	}
	writeJsonResponse(w, http.StatusOK, analytics)
}
