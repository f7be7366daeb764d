package rag

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/swippe/quickcommerce/internal/adapter/utils"
	"github.com/swippe/quickcommerce/internal/domain/catalogModel"
	"github.com/swippe/quickcommerce/internal/domain/jobModel"
	"github.com/swippe/quickcommerce/internal/metrics"
	"github.com/swippe/quickcommerce/internal/rag/embedding"
	"github.com/swippe/quickcommerce/internal/rag/ingest"
	"github.com/swippe/quickcommerce/internal/rag/llm"
	"github.com/swippe/quickcommerce/internal/rag/vectorDB"
	"github.com/swippe/quickcommerce/pkg/logger_i"
)

// Service is all the worker sees of the shopping-assistant pipeline; it never
// touches the embedder, vector store or LLM directly.
type Service interface {
	ProcessRequest(ctx context.Context, job jobModel.Job, messageHistory []string) jobModel.Job
	IngestCatalog(ctx context.Context, job jobModel.Job) jobModel.Job
	SemanticSearch(ctx context.Context, query string) ([]catalogModel.ProductMatch, error)
}

type service struct {
	vectorDB    vectorDB.DataProcessor
	llmProvider llm.Provider
	embedder    embedding.Embedder
	catalog     ingest.CatalogSource
	logger      *logger_i.Logger
}

// NewService wires the pipeline; swapping any dependency for a mock is how
// the tests run without external services.
func NewService(vector vectorDB.DataProcessor, llm llm.Provider, em embedding.Embedder, catalog ingest.CatalogSource) Service {
	return &service{
		vectorDB:    vector,
		llmProvider: llm,
		embedder:    em,
		catalog:     catalog,
		logger:      logger_i.NewLogger("RAG Service"),
	}
}

// ErrAssistantDisabled is returned when the Gemini/Qdrant stack was never
// configured; the commerce endpoints keep working without it.
var ErrAssistantDisabled = errors.New("shopping assistant is not configured")

type disabledService struct {
	logger *logger_i.Logger
}

// NewDisabledService stands in for the assistant when the embedding, vector
// or LLM client could not be initialized. Every job it touches fails fast.
func NewDisabledService() Service {
	return disabledService{logger: logger_i.NewLogger("RAG Service")}
}

func (d disabledService) failJob(job jobModel.Job) jobModel.Job {
	d.logger.Warn("Assistant job rejected, assistant disabled", "jobId", job.Id)
	job.Error = jobModel.JobError{
		Code:    http.StatusServiceUnavailable,
		Message: ErrAssistantDisabled.Error(),
		Retry:   false,
	}
	job.Status = jobModel.JobStatusError
	return job
}

func (d disabledService) ProcessRequest(ctx context.Context, job jobModel.Job, messageHistory []string) jobModel.Job {
	return d.failJob(job)
}

func (d disabledService) IngestCatalog(ctx context.Context, job jobModel.Job) jobModel.Job {
	return d.failJob(job)
}

func (d disabledService) SemanticSearch(ctx context.Context, query string) ([]catalogModel.ProductMatch, error) {
	return nil, ErrAssistantDisabled
}

// ProcessRequest answers one chat question: embed it, try the semantic
// cache, search the product index, then generate with the matches and the
// conversation history as context.
func (s *service) ProcessRequest(ctx context.Context, jobt jobModel.Job, messageHistory []string) jobModel.Job {
	inMethodLogger := s.logger.With("traceId", jobt.TraceId, "jobId", jobt.Id)

	processContext, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	jobt.CurrentStep = jobModel.RAGCall

	queryVector, err := s.executeEmbeddingStep(processContext, inMethodLogger, &jobt)
	if err != nil {
		return s.jobError(jobt, err, "EMBEDDING_FAILURE", true)
	}

	cachedAnswer, found := s.executeCacheCheckStep(processContext, inMethodLogger, &jobt, queryVector)
	if found {
		return returnOutput(jobt, cachedAnswer)
	}

	contextLines, err := s.executeVectorSearchStep(processContext, inMethodLogger, &jobt, queryVector)
	if err != nil {
		return s.jobError(jobt, err, "VECTOR_DB_FAILURE", true)
	}

	answer, err := s.executeLLMStep(processContext, inMethodLogger, &jobt, contextLines, messageHistory)
	if err != nil {
		return s.jobError(jobt, err, "LLM_GENERATION_FAILURE", true)
	}

	// cache save happens off the request path
	go func() {
		if err := s.vectorDB.SaveToCache(ctx, utils.GetNewUUID(), queryVector, answer); err != nil {
			s.logger.Error("Failed to save to semantic cache")
		}
	}()

	return returnOutput(jobt, answer)
}

func (s *service) IngestCatalog(ctx context.Context, job jobModel.Job) jobModel.Job {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("catalog_ingestion", time.Since(start)) }()

	j := ingest.ProcessCatalogIngestion(ctx, job, s.embedder, s.vectorDB, s.catalog)
	if j.Status == jobModel.JobStatusError {
		return s.jobError(j, errors.New("catalog ingestion failed"), "INGESTION_FAILURE", true)
	}
	return j
}

// SemanticSearch is the synchronous embed-and-search path behind the
// semantic product search endpoint; no LLM involved.
func (s *service) SemanticSearch(ctx context.Context, query string) ([]catalogModel.ProductMatch, error) {
	searchContext, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	queryVector, err := s.embedder.GetEmbedding(searchContext, query)
	if err != nil {
		return nil, err
	}
	return s.vectorDB.Search(searchContext, queryVector)
}
