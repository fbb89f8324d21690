// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the teaching-team
// generation cycle: configuration, agent results, search records, and the
// assembled learning package.
package types

import (
	"fmt"
	"strings"
	"time"
)

// DefaultModel is the model selected when none is configured.
const DefaultModel = "llama3.2:latest"

// KnownModels is the fixed set of model names offered for selection.
// A model outside this set may still be used if the runtime has it.
var KnownModels = []string{
	"llama3.2:latest",
	"mistral:latest",
	"sqlcoder:latest",
	"gemma2:2b",
	"phi3:mini",
	"tinyllama:latest",
}

// IsKnownModel reports whether name is one of KnownModels.
func IsKnownModel(name string) bool {
	for _, m := range KnownModels {
		if m == name {
			return true
		}
	}
	return false
}

// HTTPConfig holds shared HTTP settings used by components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero means no client-side timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "teaching-team/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// LLMConfig holds settings for the local model runtime.
type LLMConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the runtime's OpenAI-compatible API root
	// (e.g. "http://localhost:11434/v1").
	BaseURL string `json:"base_url" yaml:"base_url"`
}

// TeamConfig is the configuration for one generation cycle. It is built once
// before the cycle starts and passed by value to every agent; nothing in the
// cycle mutates it.
type TeamConfig struct {
	// Topic is the subject the learner wants to study.
	Topic string `json:"topic" yaml:"topic"`

	// Model names the runtime model every agent uses.
	Model string `json:"model" yaml:"model"`

	// ComposioAPIKey is required by the configuration surface but not sent
	// to any service by the core.
	ComposioAPIKey string `json:"-" yaml:"-"`

	// SerpAPIKey authenticates web search requests.
	SerpAPIKey string `json:"-" yaml:"-"`

	// Concurrency bounds how many agents run at once. Values below 1 are
	// treated as 1; values above the number of agents are capped.
	Concurrency int `json:"concurrency" yaml:"concurrency"`
}

// Normalize returns a copy with surrounding whitespace removed from every
// text field.
func (c TeamConfig) Normalize() TeamConfig {
	c.Topic = strings.TrimSpace(c.Topic)
	c.Model = strings.TrimSpace(c.Model)
	c.ComposioAPIKey = strings.TrimSpace(c.ComposioAPIKey)
	c.SerpAPIKey = strings.TrimSpace(c.SerpAPIKey)
	return c
}

// Missing lists the names of required fields that are empty, in a stable order.
func (c TeamConfig) Missing() []string {
	var missing []string
	if strings.TrimSpace(c.ComposioAPIKey) == "" {
		missing = append(missing, "composio API key")
	}
	if strings.TrimSpace(c.SerpAPIKey) == "" {
		missing = append(missing, "SerpAPI key")
	}
	if strings.TrimSpace(c.Model) == "" {
		missing = append(missing, "model")
	}
	if strings.TrimSpace(c.Topic) == "" {
		missing = append(missing, "topic")
	}
	return missing
}

// String renders the configuration without credentials.
func (c TeamConfig) String() string {
	return fmt.Sprintf("topic=%q model=%q concurrency=%d", c.Topic, c.Model, c.Concurrency)
}
