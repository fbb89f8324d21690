// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm talks to a locally hosted model runtime (Ollama) through its
// OpenAI-compatible chat completion API.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/pdiddy/teaching-team/internal/httputil"
	"github.com/pdiddy/teaching-team/internal/logging"
	"github.com/pdiddy/teaching-team/pkg/types"
)

// DefaultBaseURL is the OpenAI-compatible root of a local Ollama install.
const DefaultBaseURL = "http://localhost:11434/v1"

// ollamaAPIKey is sent as the bearer token. Ollama ignores it but the
// OpenAI client requires a value.
const ollamaAPIKey = "ollama"

// ErrEmptyResponse is returned when the runtime answers without any choice.
var ErrEmptyResponse = errors.New("model returned no choices")

// OllamaClient completes prompts against a local Ollama runtime.
type OllamaClient struct {
	client *openai.Client
	logger *zap.Logger
}

// NewOllamaClient builds a client for cfg.BaseURL (DefaultBaseURL when empty).
// The HTTP client, if nil, is built from cfg.HTTPConfig.
func NewOllamaClient(cfg types.LLMConfig, httpClient *http.Client, logger *zap.Logger) *OllamaClient {
	logger = logging.OrNop(logger)
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = httputil.NewClient(cfg.HTTPConfig, logger)
	}

	oc := openai.DefaultConfig(ollamaAPIKey)
	oc.BaseURL = baseURL
	oc.HTTPClient = httpClient

	return &OllamaClient{
		client: openai.NewClientWithConfig(oc),
		logger: logger.With(zap.String("component", "llm")),
	}
}

// Complete sends prompt as a single user message to model and returns the
// assistant's reply verbatim. Failures are returned in Completion.Err; the
// call never panics and performs no retries.
func (c *OllamaClient) Complete(ctx context.Context, prompt, model string) types.Completion {
	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		c.logger.Warn("chat completion failed", zap.String("model", model), zap.Duration("duration", time.Since(start)), zap.Error(err))
		return types.Completion{Err: fmt.Errorf("chat completion: %w", err)}
	}
	if len(resp.Choices) == 0 {
		return types.Completion{Err: ErrEmptyResponse}
	}

	c.logger.Debug("chat completion",
		zap.String("model", model),
		zap.Int("prompt_chars", len(prompt)),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
		zap.Duration("duration", time.Since(start)),
	)
	return types.Completion{Text: resp.Choices[0].Message.Content}
}

// ListModels returns the names of the models available in the runtime,
// sorted alphabetically.
func (c *OllamaClient) ListModels(ctx context.Context) ([]string, error) {
	list, err := c.client.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing models: %w", err)
	}
	names := make([]string, 0, len(list.Models))
	for _, m := range list.Models {
		names = append(names, m.ID)
	}
	sort.Strings(names)
	return names, nil
}
