package middleware

import (
	"net/http"
	"strconv"

	"github.com/swippe/quickcommerce/internal/handlers"
	"github.com/swippe/quickcommerce/internal/metrics"
	"github.com/swippe/quickcommerce/pkg/logger_i"
)

type requestResponseStruct struct {
	writer     http.ResponseWriter
	req        *http.Request
	badRequest failureStruct
	logger     *logger_i.Logger
}

type failureStruct struct {
	isBadRequest bool
	httpCode     int
	errorMessage string
	id           string
}

// Public, unauthenticated surface.
var (
	GetHandler            = Wrap(handlers.GetHandler)
	RegisterHandler       = Wrap(handlers.RegisterHandler)
	LoginHandler          = Wrap(handlers.LoginHandler)
	ListProductsHandler   = Wrap(handlers.ListProductsHandler)
	GetProductHandler     = Wrap(handlers.GetProductHandler)
	SearchHandler         = Wrap(handlers.SearchHandler)
	SemanticSearchHandler = Wrap(handlers.SemanticSearchHandler)
	CategoriesHandler     = Wrap(handlers.CategoriesHandler)
	BrandsHandler         = Wrap(handlers.BrandsHandler)
)

// Everything below needs a valid bearer token.
var (
	ProfileHandler        = WrapAuthed(handlers.ProfileHandler)
	ChangePasswordHandler = WrapAuthed(handlers.ChangePasswordHandler)

	CheckoutHandler    = WrapAuthed(handlers.CheckoutHandler)
	ListOrdersHandler  = WrapAuthed(handlers.ListOrdersHandler)
	GetOrderHandler    = WrapAuthed(handlers.GetOrderHandler)
	CancelOrderHandler = WrapAuthed(handlers.CancelOrderHandler)
	TrackOrderHandler  = WrapAuthed(handlers.TrackOrderHandler)

	CreateAddressHandler     = WrapAuthed(handlers.CreateAddressHandler)
	ListAddressesHandler     = WrapAuthed(handlers.ListAddressesHandler)
	UpdateAddressHandler     = WrapAuthed(handlers.UpdateAddressHandler)
	DeleteAddressHandler     = WrapAuthed(handlers.DeleteAddressHandler)
	SetDefaultAddressHandler = WrapAuthed(handlers.SetDefaultAddressHandler)
	DeliveryLocationHandler  = WrapAuthed(handlers.DeliveryLocationHandler)

	CreateRoutineHandler      = WrapAuthed(handlers.CreateRoutineHandler)
	ListRoutinesHandler       = WrapAuthed(handlers.ListRoutinesHandler)
	GetRoutineHandler         = WrapAuthed(handlers.GetRoutineHandler)
	UpdateRoutineHandler      = WrapAuthed(handlers.UpdateRoutineHandler)
	DeleteRoutineHandler      = WrapAuthed(handlers.DeleteRoutineHandler)
	ToggleRoutineHandler      = WrapAuthed(handlers.ToggleRoutineHandler)
	SkipNextRoutineHandler    = WrapAuthed(handlers.SkipNextRoutineHandler)
	LockPriceRoutineHandler   = WrapAuthed(handlers.LockPriceRoutineHandler)
	RoutineSuggestionsHandler = WrapAuthed(handlers.RoutineSuggestionsHandler)
	RoutineAnalyticsHandler   = WrapAuthed(handlers.RoutineAnalyticsHandler)

	ChatHandler      = WrapAuthed(handlers.ChatHandler)
	GetStatusHandler = WrapAuthed(handlers.GetStatusHandler)
	ResetChatHandler = WrapAuthed(handlers.ResetChatHandler)
)

// Admin surface.
var (
	DashboardHandler      = WrapAdmin(handlers.DashboardHandler)
	ListUsersHandler      = WrapAdmin(handlers.ListUsersHandler)
	ToggleAdminHandler    = WrapAdmin(handlers.ToggleAdminHandler)
	SetOrderStatusHandler = WrapAdmin(handlers.SetOrderStatusHandler)
	ReindexHandler        = WrapAdmin(handlers.ReindexHandler)
)

// Wrap runs trace injection and per-IP rate limiting before the handler and
// records request metrics after it.
func Wrap(next http.HandlerFunc) http.HandlerFunc {
	return wrapWith(next)
}

// WrapAuthed additionally requires a valid bearer token and leaves the
// caller's identity on the request context.
func WrapAuthed(next http.HandlerFunc) http.HandlerFunc {
	return wrapWith(next, authenticate)
}

// WrapAdmin requires an admin role on top of authentication.
func WrapAdmin(next http.HandlerFunc) http.HandlerFunc {
	return wrapWith(next, authenticate, requireAdmin)
}

type middlewareStep func(requestResponseStruct) requestResponseStruct

func wrapWith(next http.HandlerFunc, steps ...middlewareStep) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &metrics.HttpStatusRecorder{ResponseWriter: w, Status: 200} //metrics
		re := processRequest(requestResponseStruct{req: r, writer: rec}, steps)

		if re.badRequest.isBadRequest {
			handleBadRequest(re)
		} else {
			next(rec, re.req)
		}

		metrics.HttpRequestsTotal.WithLabelValues(r.URL.Path, strconv.Itoa(rec.Status)).Inc() //metrics
	}
}

func processRequest(re requestResponseStruct, steps []middlewareStep) requestResponseStruct {
	re.logger = logger_i.NewLogger("middleware")

	re = injectTrace(re)
	if re.badRequest.isBadRequest {
		return re
	}
	re = rateLimiter(re)
	if re.badRequest.isBadRequest {
		return re
	}

	for _, step := range steps {
		re = step(re)
		if re.badRequest.isBadRequest {
			return re
		}
	}
	return re
}
