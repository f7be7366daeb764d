package googleEmbedding

import (
	"context"
	"sync"
	"time"

	"github.com/swippe/quickcommerce/internal/adapter/utils"
	"github.com/swippe/quickcommerce/internal/config"
	"github.com/swippe/quickcommerce/internal/customHttpClient"
	"github.com/swippe/quickcommerce/internal/rag/embedding"
	"github.com/swippe/quickcommerce/pkg/logger_i"
	"google.golang.org/genai"
)

var (
	logger          *logger_i.Logger
	once            sync.Once
	embeddingClient *client
	dimension       = config.EmbeddingOutputDimensionality
)

type client struct {
	genAi *genai.Client
	model string
}

func newGoogleEmbedder(ctx context.Context, modelName string, apikey string) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apikey,
		HTTPClient: customHttpClient.GetPooledClient(),
	})
	if err != nil {
		logger.Error("Error creating Google Embedding client", "error", err)
	}
	if c != nil {
		embeddingClient = &client{genAi: c, model: modelName}
		logger.Info("Google Embedding client created", "model", modelName)
		go closeClient(ctx, embeddingClient)
	}
}

func closeClient(ctx context.Context, embeddingClient *client) {
	<-ctx.Done()
	logger.Info("Closing Google Embedding client")
	embeddingClient.genAi = nil
	embeddingClient.model = ""
}

// GetGoogleEmbeddingClient builds the singleton embedder; nil when the genai
// client cannot be constructed.
func GetGoogleEmbeddingClient(ctx context.Context, modelName string, apikey string) embedding.Embedder {
	once.Do(func() {
		logger = logger_i.NewLogger("google_embedding")
		newGoogleEmbedder(ctx, modelName, apikey)
	})

	if embeddingClient == nil {
		return nil
	}
	return &client{genAi: embeddingClient.genAi, model: embeddingClient.model}
}

func (c *client) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	result, err := c.genAi.Models.EmbedContent(ctx, c.model, genai.Text(query),
		&genai.EmbedContentConfig{OutputDimensionality: &dimension, TaskType: "RETRIEVAL_QUERY"})
	if err != nil {
		log.Error("Error getting embedding from Google", "error", err)
		return nil, err
	}
	return result.Embeddings[0].Values, nil
}

// BatchEmbedding embeds a slice of catalog texts. Small sets go through the
// synchronous endpoint with one rate-limit retry; huge sets are submitted as
// a server-side batch job and polled until it finishes.
func (c *client) BatchEmbedding(ctx context.Context, texts []string, isHugeDataSet bool) ([][]float32, error) {
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	if !isHugeDataSet {
		res, err := c.doCall(ctx, getContent(texts))
		if err != nil || res == nil {
			if doRetry(err, log) {
				log.Debug("Retrying in 5 seconds")
				time.Sleep(5 * time.Second)
				res, err = c.doCall(ctx, getContent(texts))
			}
			if err != nil || res == nil {
				log.Error("Error getting embeddings from Google", "error", err)
				return nil, err
			}
		}
		var embeddingResults [][]float32
		for _, r := range res.Embeddings {
			embeddingResults = append(embeddingResults, r.Values)
		}
		return embeddingResults, nil
	}

	batchJobName := utils.GetNewUUID()
	log = log.With("batchJobName", batchJobName, "texts", len(texts))

	source := genai.EmbeddingsBatchJobSource{InlinedRequests: getInlinedBatchRequests(texts)}
	conf := genai.CreateEmbeddingsBatchJobConfig{DisplayName: batchJobName}
	if _, err := c.genAi.Batches.CreateEmbeddings(ctx, &c.model, &source, &conf); err != nil {
		log.Error("Error creating batch embedding job", "error", err)
		return nil, err
	}

	answer, err := c.pollForAnswer(ctx, batchJobName, log)
	if err != nil {
		return nil, err
	}
	resultVectors, downErr := downloadBatchResults(answer, log)
	if downErr != nil {
		log.Error("Error downloading batch embedding results", "error", downErr)
	}
	return resultVectors, nil
}

func (c *client) doCall(ctx context.Context, content []*genai.Content) (*genai.EmbedContentResponse, error) {
	return c.genAi.Models.EmbedContent(ctx, c.model, content,
		&genai.EmbedContentConfig{OutputDimensionality: &dimension, TaskType: "RETRIEVAL_DOCUMENT"})
}
