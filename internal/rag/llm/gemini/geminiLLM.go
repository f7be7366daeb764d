package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/swippe/quickcommerce/internal/config"
	"github.com/swippe/quickcommerce/internal/customHttpClient"
	"github.com/swippe/quickcommerce/internal/rag/llm"
	"github.com/swippe/quickcommerce/pkg/logger_i"
	"google.golang.org/genai"
)

type llmClient struct {
	client    *genai.Client
	modelName string
	prompt    string
}

var (
	logger       *logger_i.Logger
	geminiClient *llmClient
	once         sync.Once
)

func GetGeminiClient(ctx context.Context, modelName string, apikey string) llm.Provider {
	once.Do(func() {
		logger = logger_i.NewLogger("llm_gemini")
		newGeminiClient(ctx, modelName, apikey)
	})

	if geminiClient == nil {
		return nil
	}
	return &llmClient{client: geminiClient.client, modelName: geminiClient.modelName, prompt: geminiClient.prompt}
}

func newGeminiClient(ctx context.Context, modelName string, apikey string) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apikey,
		HTTPClient: customHttpClient.GetPooledClient(),
	})
	if err != nil {
		logger.Error("Error creating Gemini client", "error", err)
	}
	if c != nil {
		geminiClient = &llmClient{client: c, modelName: modelName, prompt: config.AssistantContext}
		logger.Info("Gemini client created", "model", modelName)
		go closeClient(ctx, geminiClient)
	}
}

// Generate builds the shopping-assistant prompt from the retrieved products
// and recent turns, then asks Gemini for the answer.
func (c *llmClient) Generate(ctx context.Context, userQuery string, productContext []string, messageHistory []string) (string, error) {
	logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	systemInstruction := &genai.Content{
		Parts: []*genai.Part{{Text: c.prompt}},
	}

	var sb strings.Builder
	if len(messageHistory) > 0 {
		sb.WriteString("Conversation so far (question is what the user asked, answer is what you replied):\n")
		sb.WriteString(strings.Join(messageHistory, "\n"))
		sb.WriteString("\n\n")
	}
	sb.WriteString("Available products:\n")
	sb.WriteString(strings.Join(productContext, "\n"))

	userPrompt := fmt.Sprintf("Context:\n%s\n\nUser Question: %s", sb.String(), userQuery)

	temperature := config.ModelTemperature
	contentConfig := &genai.GenerateContentConfig{
		SystemInstruction: systemInstruction,
		Temperature:       &temperature,
	}

	result, err := c.client.Models.GenerateContent(ctx, c.modelName, genai.Text(userPrompt), contentConfig)
	if err != nil {
		logger.Error("Gemini generation failed", "error", err)
		return "", err
	}
	if result == nil {
		return "", errors.New("empty response from model")
	}
	return result.Text(), nil
}

func closeClient(ctx context.Context, llm *llmClient) {
	<-ctx.Done()
	logger.Info("Closing Gemini client")
	llm.client = nil
	llm.modelName = ""
	llm.prompt = ""
}
