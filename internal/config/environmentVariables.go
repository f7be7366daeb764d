package config

import (
	"log/slog"
	"time"
)

const (
	LOG_LEVEL_PROD              = slog.LevelInfo
	TRACE_ID_KEY                = "traceId"
	USER_ID_KEY                 = "userId"
	USER_ROLE_KEY               = "userRole"
	USER_EMAIL_KEY              = "userEmail"
	RATE_LIMIT_PER_SECOND       = 5
	BURST_RATE_LIMIT_PER_SECOND = 10
	CacheSimilarityCutoff       = 0.97

	EmbeddingOutputDimensionality int32 = 1536
	ProductCollectionName               = "swippe-products"

	RequestsPerNewWorkerCount int64 = 10
	MaxWorkerCount            int64 = 10
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 10 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//job requests buffer limit
	BufferLimit = 100

	//vectorDB
	QdrantUseTLS     = false
	QdrantPoolSize   = 1
	VectorSearchTopK = 3

	//outbound http pooling
	MaxIdleConns        = 10
	MaxIdleConnsPerHost = 5
	IdleConnTimeout     = 90 * time.Second

	ModelTemperature float32 = 0.7
	AssistantContext         = "You are a helpful shopping assistant for Swippe, a quick commerce platform. " +
		"Recommend only from the product context you are given, keep responses concise and conversational, " +
		"and say so when you don't know the answer."

	//catalog
	ProductListLimit   = 100
	BrandListLimit     = 50
	RelatedLimit       = 8
	SearchResultLimit  = 50
	MinSearchQueryLen  = 2
	EmbeddingBatchSize = 100

	//orders
	FreeDeliveryThreshold = 199.0
	DeliveryFee           = 40.0

	//auth
	MinPasswordLength = 6
	TokenTTL          = 24 * time.Hour
	BcryptCost        = 10

	//routine scheduler
	SchedulerTickInterval = 1 * time.Hour

	//chat history window
	ChatHistoryWindow = 5

	//redis has 16 DB we can use
	RedisJobStore     = 0
	RedisMessageStore = 1

	//redis timeouts
	RedisJobStoreTTL     = 24 * time.Hour
	RedisMessageStoreTTL = 24 * time.Hour
)
