// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"net/http"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/teaching-team/internal/httputil"
	"github.com/pdiddy/teaching-team/internal/llm"
	"github.com/pdiddy/teaching-team/internal/search"
	"github.com/pdiddy/teaching-team/internal/secrets"
	"github.com/pdiddy/teaching-team/pkg/types"
)

const (
	defaultLLMTimeout    = 5 * time.Minute
	defaultSearchTimeout = 30 * time.Second
	defaultOutputDir     = "output"
	defaultConcurrency   = 4
)

func defaultModel() string { return types.DefaultModel }

func userAgent() string { return "teaching-team/" + version }

// teamConfig resolves the generation-cycle configuration for topic. Each
// value comes from flags, environment, or config file (through viper) and
// falls back to .secrets/ for credentials.
func teamConfig(topic string) types.TeamConfig {
	model := viper.GetString("model")
	if model == "" {
		model = defaultModel()
	}
	concurrency := viper.GetInt("concurrency")
	if concurrency == 0 {
		concurrency = defaultConcurrency
	}
	return types.TeamConfig{
		Topic:          topic,
		Model:          model,
		ComposioAPIKey: loadedSecrets.Or(secrets.ComposioAPIKey, viper.GetString("composio_api_key")),
		SerpAPIKey:     loadedSecrets.Or(secrets.SerpAPIKey, viper.GetString("serpapi_api_key")),
		Concurrency:    concurrency,
	}.Normalize()
}

// llmConfig resolves the model runtime settings.
func llmConfig() types.LLMConfig {
	timeout := viper.GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultLLMTimeout
	}
	return types.LLMConfig{
		HTTPConfig: types.HTTPConfig{Timeout: timeout, UserAgent: userAgent()},
		BaseURL:    viper.GetString("ollama_url"),
	}
}

func newRuntime() *llm.OllamaClient {
	return llm.NewOllamaClient(llmConfig(), nil, logger)
}

func newSearcher() *search.SerpAPI {
	return &search.SerpAPI{
		Client:   searchClient(),
		Logger:   logger,
		Endpoint: viper.GetString("serpapi_url"),
	}
}

func searchClient() *http.Client {
	return httputil.NewClient(types.HTTPConfig{Timeout: defaultSearchTimeout, UserAgent: userAgent()}, logger)
}
