package openai

import (
	"context"
	"errors"
	"sync"

	"github.com/contentflow/ingestAPI/internal/config"
	"github.com/contentflow/ingestAPI/internal/customHttpClient"
	"github.com/contentflow/ingestAPI/internal/ingestion/llm"
	"github.com/contentflow/ingestAPI/pkg/logger_i"
	openaiSDK "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type llmClient struct {
	client openaiSDK.Client
}

var logger *logger_i.Logger
var openaiClient *llmClient
var once sync.Once

func GetOpenAIClient(apikey string) llm.Provider {
	once.Do(func() {
		logger = logger_i.NewLogger("llm_openai")
		if apikey == "" {
			logger.Error("OpenAI api key is empty")
			return
		}
		openaiClient = &llmClient{
			client: openaiSDK.NewClient(
				option.WithAPIKey(apikey),
				option.WithHTTPClient(customHttpClient.PooledClient()),
			),
		}
		logger.Info("OpenAI client created")
	})

	if openaiClient == nil {
		return nil
	}
	return &llmClient{client: openaiClient.client}
}

func (c *llmClient) Complete(ctx context.Context, req llm.Request) (string, error) {
	result, err := c.client.Chat.Completions.New(ctx, completionParams(req))
	if err != nil {
		logger.Error("OpenAI completion failed", "model", req.Model, "error", err)
		return "", err
	}
	if len(result.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}
	return result.Choices[0].Message.Content, nil
}

func (c *llmClient) CompleteStream(ctx context.Context, req llm.Request, onDelta func(string)) error {
	stream := c.client.Chat.Completions.NewStreaming(ctx, completionParams(req))
	defer stream.Close()

	for stream.Next() {
		chunk := stream.Current()
		if len(chunk.Choices) > 0 {
			onDelta(chunk.Choices[0].Delta.Content)
		}
	}
	if err := stream.Err(); err != nil {
		logger.Error("OpenAI stream failed mid-response", "model", req.Model, "error", err)
		return err
	}
	return nil
}

func completionParams(req llm.Request) openaiSDK.ChatCompletionNewParams {
	return openaiSDK.ChatCompletionNewParams{
		Model: openaiSDK.ChatModel(req.Model),
		Messages: []openaiSDK.ChatCompletionMessageParamUnion{
			openaiSDK.SystemMessage(req.System),
			openaiSDK.UserMessage(req.Prompt),
		},
		MaxCompletionTokens: openaiSDK.Int(int64(req.MaxOutputTokens)),
		Temperature:         openaiSDK.Float(float64(config.ModelTemperature)),
	}
}
