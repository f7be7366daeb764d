package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"sync"

	"github.com/swippe/quickcommerce/internal/adapter/utils"
	"github.com/swippe/quickcommerce/internal/config"
	"github.com/swippe/quickcommerce/internal/middleware"
	"github.com/swippe/quickcommerce/pkg/logger_i"
)

var (
	server  *http.Server
	_logger *logger_i.Logger
)

type ShutdownParams struct {
	GracefulShutdown chan os.Signal
	StopExecution    chan bool
	WorkerStop       chan bool
	Group            *sync.WaitGroup
	CloseServices    context.CancelFunc
}

func CreateServer(listenAddr string) {
	_logger = logger_i.NewLogger("Server")

	r := utils.GetRouter()

	r.Router.Get("/", middleware.GetHandler)

	r.Router.Post("/api/auth/register", middleware.RegisterHandler)
	r.Router.Post("/api/auth/login", middleware.LoginHandler)
	r.Router.Post("/api/auth/change-password", middleware.ChangePasswordHandler)
	r.Router.Get("/api/profile", middleware.ProfileHandler)

	r.Router.Get("/api/products", middleware.ListProductsHandler)
	r.Router.Get("/api/products/{id}", middleware.GetProductHandler)
	r.Router.Post("/api/products/semantic-search", middleware.SemanticSearchHandler)
	r.Router.Get("/api/search", middleware.SearchHandler)
	r.Router.Get("/api/categories", middleware.CategoriesHandler)
	r.Router.Get("/api/brands", middleware.BrandsHandler)

	r.Router.Post("/api/orders", middleware.CheckoutHandler)
	r.Router.Get("/api/orders", middleware.ListOrdersHandler)
	r.Router.Get("/api/orders/{id}", middleware.GetOrderHandler)
	r.Router.Post("/api/orders/{id}/cancel", middleware.CancelOrderHandler)
	r.Router.Get("/api/orders/{id}/tracking", middleware.TrackOrderHandler)

	r.Router.Post("/api/addresses", middleware.CreateAddressHandler)
	r.Router.Get("/api/addresses", middleware.ListAddressesHandler)
	r.Router.Put("/api/addresses/{id}", middleware.UpdateAddressHandler)
	r.Router.Delete("/api/addresses/{id}", middleware.DeleteAddressHandler)
	r.Router.Post("/api/addresses/{id}/set-default", middleware.SetDefaultAddressHandler)
	r.Router.Get("/api/tracking", middleware.DeliveryLocationHandler)

	r.Router.Post("/api/routines", middleware.CreateRoutineHandler)
	r.Router.Get("/api/routines", middleware.ListRoutinesHandler)
	r.Router.Get("/api/routines/suggestions", middleware.RoutineSuggestionsHandler)
	r.Router.Get("/api/routines/analytics", middleware.RoutineAnalyticsHandler)
	r.Router.Get("/api/routines/{id}", middleware.GetRoutineHandler)
	r.Router.Put("/api/routines/{id}", middleware.UpdateRoutineHandler)
	r.Router.Delete("/api/routines/{id}", middleware.DeleteRoutineHandler)
	r.Router.Post("/api/routines/{id}/toggle", middleware.ToggleRoutineHandler)
	r.Router.Post("/api/routines/{id}/skip-next", middleware.SkipNextRoutineHandler)
	r.Router.Post("/api/routines/{id}/lock-price", middleware.LockPriceRoutineHandler)

	r.Router.Post("/api/chat", middleware.ChatHandler)
	r.Router.Get("/api/status/{id}", middleware.GetStatusHandler)
	r.Router.Post("/api/chat/{id}/reset", middleware.ResetChatHandler)

	r.Router.Get("/api/admin/dashboard", middleware.DashboardHandler)
	r.Router.Get("/api/admin/users", middleware.ListUsersHandler)
	r.Router.Post("/api/admin/users/{id}/toggle-admin", middleware.ToggleAdminHandler)
	r.Router.Post("/api/admin/orders/{id}/status", middleware.SetOrderStatusHandler)
	r.Router.Post("/api/admin/catalog/reindex", middleware.ReindexHandler)

	server = &http.Server{
		Addr:         listenAddr,
		Handler:      r.Router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	_logger.Info("Server is listening at", "address", listenAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		_logger.Error("Server crashed", "error :", err.Error(), "addr", listenAddr)
	}
}

func ShutDownHandler(shutdownParams ShutdownParams) {
	state := <-shutdownParams.GracefulShutdown
	_logger.Info("Server is shutting down", "signal", state.String())

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownContextTimeout)
	defer cancel()

	done := make(chan struct{})

	go func() {
		server.SetKeepAlivesEnabled(false)

		if err := server.Shutdown(ctx); err != nil {
			_logger.Error("Could not shutdown gracefully", "error", err)
		}

		//close workers
		close(shutdownParams.WorkerStop)
		shutdownParams.Group.Wait()
		shutdownParams.CloseServices()
		close(shutdownParams.StopExecution)
		close(done)
	}()

	select {
	case <-done:
		_logger.Info("Graceful shutdown complete")
	case <-ctx.Done():
		_logger.Info("Force shut down")
		os.Exit(1)
	}
}
