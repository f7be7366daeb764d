package ingest

import (
	"context"

	"github.com/swippe/quickcommerce/internal/config"
	"github.com/swippe/quickcommerce/internal/domain/catalogModel"
	"github.com/swippe/quickcommerce/internal/domain/jobModel"
	"github.com/swippe/quickcommerce/internal/rag/embedding"
	"github.com/swippe/quickcommerce/internal/rag/vectorDB"
	"github.com/swippe/quickcommerce/pkg/logger_i"
)

// CatalogSource feeds the reindex job. ProductStore satisfies it; tests swap
// in a fixture.
type CatalogSource interface {
	AllForIndexing(ctx context.Context) ([]catalogModel.Product, error)
}

// Above this many products the embedding step is handed to the provider's
// server-side batch API instead of synchronous calls.
const hugeCatalogThreshold = 2000

// ProcessCatalogIngestion embeds every catalog product and upserts the
// vectors, in batches, into the product collection. Point ids are derived
// from product ids so a reindex overwrites rather than duplicates.
func ProcessCatalogIngestion(ctx context.Context, job jobModel.Job, embedder embedding.Embedder, db vectorDB.DataProcessor, source CatalogSource) jobModel.Job {
	logger := logger_i.NewLogger("CatalogIngest").With("traceId", job.TraceId, "jobId", job.Id)

	job.CurrentStep = jobModel.IngestProcessing

	products, err := source.AllForIndexing(ctx)
	if err != nil {
		logger.Error("Could not load catalog", "error", err)
		return failIngest(job)
	}
	if len(products) == 0 {
		logger.Warn("Catalog is empty, nothing to index")
		return failIngest(job)
	}

	if err := db.EnsureCollection(ctx, config.ProductCollectionName); err != nil {
		logger.Error("Could not ensure collection", "error", err)
		return failIngest(job)
	}

	chunks := buildChunks(products)
	isHuge := len(chunks) > hugeCatalogThreshold

	indexed := 0
	for start := 0; start < len(chunks); start += config.EmbeddingBatchSize {
		end := start + config.EmbeddingBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		vectors, err := embedder.BatchEmbedding(ctx, chunkTexts(batch), isHuge)
		if err != nil {
			logger.Error("Batch embedding failed", "error", err, "offset", start)
			return failIngest(job)
		}

		batch, vectors = dropFailedEmbeddings(batch, vectors)
		if len(batch) == 0 {
			continue
		}

		if err := db.UpsertProducts(ctx, config.ProductCollectionName, batch, vectors); err != nil {
			logger.Error("Vector upsert failed", "error", err, "offset", start)
			return failIngest(job)
		}
		indexed += len(batch)
	}

	logger.Info("Catalog indexed", "products", indexed)
	job.JobPayload.Answer = "indexed"
	job.CurrentStep = jobModel.Complete
	job.Status = jobModel.JobStatusComplete
	return job
}

func failIngest(job jobModel.Job) jobModel.Job {
	job.Status = jobModel.JobStatusError
	job.CurrentStep = jobModel.Error
	return job
}
