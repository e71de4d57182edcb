package gemini

import (
	"context"
	"sync"

	"github.com/contentflow/ingestAPI/internal/config"
	"github.com/contentflow/ingestAPI/internal/ingestion/llm"
	"github.com/contentflow/ingestAPI/pkg/logger_i"
	"google.golang.org/genai"
)

type llmClient struct {
	client *genai.Client
}

var logger *logger_i.Logger
var geminiClient *llmClient
var once sync.Once

func GetGeminiClient(ctx context.Context, apikey string) llm.Provider {
	once.Do(func() {
		logger = logger_i.NewLogger("llm_gemini")
		newGeminiClient(ctx, apikey)
	})

	if geminiClient == nil {
		return nil
	}
	return &llmClient{client: geminiClient.client}
}

func newGeminiClient(ctx context.Context, apikey string) {

	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apikey})
	if err != nil {
		logger.Error("Error creating Gemini client:", "error", err)
	}
	if c != nil {
		geminiClient = &llmClient{client: c}
		logger.Info("Gemini client created")
		go closeClient(ctx, geminiClient)
	}

}

func (c *llmClient) Complete(ctx context.Context, req llm.Request) (string, error) {
	result, err := c.client.Models.GenerateContent(
		ctx,
		req.Model,
		genai.Text(req.Prompt),
		contentConfig(req),
	)
	if err != nil {
		logger.Error("Gemini completion failed", "model", req.Model, "error", err)
		return "", err
	}
	return result.Text(), nil
}

func (c *llmClient) CompleteStream(ctx context.Context, req llm.Request, onDelta func(string)) error {
	for chunk, err := range c.client.Models.GenerateContentStream(
		ctx,
		req.Model,
		genai.Text(req.Prompt),
		contentConfig(req),
	) {
		if err != nil {
			logger.Error("Gemini stream failed mid-response", "model", req.Model, "error", err)
			return err
		}
		onDelta(chunk.Text())
	}
	return nil
}

func contentConfig(req llm.Request) *genai.GenerateContentConfig {
	temperature := config.ModelTemperature
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{
				{Text: req.System},
			},
		},
		MaxOutputTokens: req.MaxOutputTokens,
		Temperature:     &temperature,
	}
}

func closeClient(ctx context.Context, llm *llmClient) {
	<-ctx.Done()
	logger.Info("Closing Gemini client")
	llm.client = nil
}
