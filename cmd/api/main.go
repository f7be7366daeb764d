// @title           Swippe Quick Commerce API
// @version         1.0
// @description     Quick-commerce storefront: catalog, checkout, routine deliveries and an async shopping assistant.

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/swippe/quickcommerce/internal/auth"
	"github.com/swippe/quickcommerce/internal/catalog"
	"github.com/swippe/quickcommerce/internal/checkout"
	"github.com/swippe/quickcommerce/internal/config"
	"github.com/swippe/quickcommerce/internal/data/sqliteStore"
	"github.com/swippe/quickcommerce/internal/data/store"
	jobmodel "github.com/swippe/quickcommerce/internal/domain/jobModel"
	"github.com/swippe/quickcommerce/internal/handlers"
	"github.com/swippe/quickcommerce/internal/invoice"
	"github.com/swippe/quickcommerce/internal/job"
	"github.com/swippe/quickcommerce/internal/middleware"
	"github.com/swippe/quickcommerce/internal/rag"
	"github.com/swippe/quickcommerce/internal/rag/embedding/googleEmbedding"
	"github.com/swippe/quickcommerce/internal/rag/llm/gemini"
	"github.com/swippe/quickcommerce/internal/rag/vectorDB/qdrantDB"
	"github.com/swippe/quickcommerce/internal/routine"
	"github.com/swippe/quickcommerce/internal/server"
	"github.com/swippe/quickcommerce/internal/worker"
	"github.com/swippe/quickcommerce/pkg/logger_i"
)

var (
	listenAddr        string
	requestCount      int64
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {

	settings, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuration error:", err)
		os.Exit(1)
	}

	logger_i.Init(settings.IsProd)
	var logger = logger_i.NewLogger("main")

	flag.StringVar(&listenAddr, "listen-addr", settings.ListenAddr, "server listen address")
	flag.Parse()

	//init buffered job channel
	jobChannel := make(chan jobmodel.Job, config.BufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel = make(chan bool, 1)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//relational store
	db := sqliteStore.GetDB(serviceContext, settings.SqlitePath)
	if db == nil {
		logger.Error("Sqlite store is unavailable. Shutting down.")
		return
	}
	userStore := store.GetUserStore(db)
	productStore := store.GetProductStore(db)
	orderStore := store.GetOrderStore(db)
	addressStore := store.GetAddressStore(db)
	routineStore := store.GetRoutineStore(db)

	catalogService := catalog.NewService(productStore)
	if err := catalogService.ImportCSVIfEmpty(serviceContext, settings.CatalogCSV); err != nil {
		logger.Warn("Catalog CSV import failed", "path", settings.CatalogCSV, "error", err)
	}

	//init job service and job store
	serviceConfig := job.ServiceConfig{
		JobChannel:        jobChannel,
		RequestCount:      requestCount,
		DispatcherChannel: dispatcherChannel,
		JobStore:          store.GetRedisJobStore(serviceContext, settings.RedisAddr, settings.RedisSecret),
		MessageStore:      store.GetRedisMessageStore(serviceContext, settings.RedisAddr, settings.RedisSecret),
	}
	logger.Info("Starting job service")

	if serviceConfig.JobStore == nil || serviceConfig.MessageStore == nil {
		logger.Error("Redis stores are offline, falling back to in-memory stores")
		serviceConfig.JobStore = store.InitInMemoryJobStore()
		serviceConfig.MessageStore = store.InitMessageStore()
	}
	jobService := job.InitJobService(serviceConfig)

	//assistant stack; the storefront keeps running if any of it is missing
	var ragService rag.Service
	vectorClient := qdrantDB.GetQdrantClient(serviceContext, settings.QdrantHost, settings.QdrantPort)
	embeddingService := googleEmbedding.GetGoogleEmbeddingClient(serviceContext, settings.EmbeddingModel, settings.GeminiAPIKey)
	llmProvider := gemini.GetGeminiClient(serviceContext, settings.GeminiModel, settings.GeminiAPIKey)

	if vectorClient == nil || embeddingService == nil || llmProvider == nil {
		logger.Error("Assistant services unavailable, running with the assistant disabled",
			"VectorDB", vectorClient != nil, "EmbeddingService", embeddingService != nil, "LLMProvider", llmProvider != nil)
		ragService = rag.NewDisabledService()
	} else {
		ragService = rag.NewService(vectorClient, llmProvider, embeddingService, productStore)
	}

	mailer := invoice.NewMailer(invoice.MailerConfig{
		Host:       settings.SMTPHost,
		Port:       settings.SMTPPort,
		Sender:     settings.SMTPSender,
		Secret:     settings.SMTPSecret,
		SenderName: settings.SenderName,
		Enabled:    settings.MailEnabled(),
	})
	invoiceService := invoice.NewService(orderStore, mailer)

	checkoutService := checkout.NewService(orderStore, productStore)
	routineService := routine.NewService(routineStore, productStore, orderStore)

	jwtManager := auth.NewJWTManager(settings.JWTSecret, config.TokenTTL)

	handlers.InitJobHandler(jobService)
	handlers.InitChatHandlers(ragService)
	handlers.InitAuthHandler(userStore, jwtManager)
	handlers.InitCatalogHandler(catalogService)
	handlers.InitOrderHandler(checkoutService)
	handlers.InitAddressHandler(addressStore)
	handlers.InitRoutineHandler(routineService)
	handlers.InitAdminHandler(userStore, orderStore, productStore)
	middleware.Init(jwtManager)

	//init worker pool
	worker.InitServices(jobService, ragService, invoiceService)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	//routine delivery scheduler
	scheduler := routine.NewScheduler(routineStore, orderStore)
	scheduler.NotifyInvoices(userStore, handlers.EnqueueInvoiceJob)
	go scheduler.Run(serviceContext)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}
