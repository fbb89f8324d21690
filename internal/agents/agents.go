// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package agents defines the four teaching agents. Each agent fills a fixed
// prompt template with the topic, calls the LLM once, and wraps the reply in
// a types.AgentResult. Agents are independent of each other and never
// return errors: an LLM failure becomes the result's Content.
package agents

import (
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/pdiddy/teaching-team/pkg/types"
)

// Completer sends a prompt to a named model. Implementations report
// failures in the returned Completion rather than panicking.
type Completer interface {
	Complete(ctx context.Context, prompt, model string) types.Completion
}

// Searcher runs a web search. Failures come back as the single-record
// error sentinel.
type Searcher interface {
	Search(ctx context.Context, query, apiKey string) []types.SearchRecord
}

// Deps holds what an agent needs to run.
type Deps struct {
	LLM    Completer
	Search Searcher
	Config types.TeamConfig
}

// Agent is one prompt template paired with an LLM invocation.
type Agent struct {
	Role types.AgentRole

	// Name is the display name (e.g. "Academic Advisor").
	Name string

	// Description says what the agent produces.
	Description string

	// Progress is the message shown while the agent runs.
	Progress string

	// FilePrefix is prepended to the snake-cased topic to form the filename.
	FilePrefix string

	// TitleFormat is the document title; %s is replaced by the topic.
	TitleFormat string

	prompt     *template.Template
	usesSearch bool
}

// Professor builds a first-principles knowledge base.
var Professor = Agent{
	Role:        types.RoleProfessor,
	Name:        "Professor",
	Description: "Researches the topic and creates a detailed knowledge base",
	Progress:    "Professor is researching...",
	FilePrefix:  "professor_report",
	TitleFormat: "Professor Report - %s",
	prompt:      professorPromptTmpl,
}

// Advisor designs a sequenced learning roadmap with time estimates.
var Advisor = Agent{
	Role:        types.RoleAdvisor,
	Name:        "Academic Advisor",
	Description: "Designs a structured learning roadmap for the topic",
	Progress:    "Academic Advisor is planning...",
	FilePrefix:  "learning_roadmap",
	TitleFormat: "Learning Roadmap - %s",
	prompt:      advisorPromptTmpl,
}

// Librarian curates learning resources from web search results.
var Librarian = Agent{
	Role:        types.RoleLibrarian,
	Name:        "Research Librarian",
	Description: "Curates high-quality learning resources using web search",
	Progress:    "Research Librarian is curating resources...",
	FilePrefix:  "learning_resources",
	TitleFormat: "Learning Resources - %s",
	prompt:      librarianPromptTmpl,
	usesSearch:  true,
}

// Assistant creates exercises and projects with assessment criteria.
var Assistant = Agent{
	Role:        types.RoleAssistant,
	Name:        "Teaching Assistant",
	Description: "Creates practice materials, exercises, and projects",
	Progress:    "Teaching Assistant is creating practice materials...",
	FilePrefix:  "practice_materials",
	TitleFormat: "Practice Materials - %s",
	prompt:      assistantPromptTmpl,
}

// All lists the agents in package order.
var All = []Agent{Professor, Advisor, Librarian, Assistant}

// ByRole returns the agent for role.
func ByRole(role types.AgentRole) (Agent, bool) {
	for _, a := range All {
		if a.Role == role {
			return a, true
		}
	}
	return Agent{}, false
}

// UsesSearch reports whether the agent queries the web before prompting.
func (a Agent) UsesSearch() bool { return a.usesSearch }

// Filename returns the document base name for topic.
func (a Agent) Filename(topic string) string {
	return a.FilePrefix + "_" + TopicSlug(topic)
}

// TopicSlug lower-cases topic and replaces spaces with underscores.
func TopicSlug(topic string) string {
	return strings.ReplaceAll(strings.ToLower(topic), " ", "_")
}

// SearchQuery is the web query the librarian issues for topic.
func SearchQuery(topic string) string {
	return fmt.Sprintf("learn %s tutorial course", topic)
}

// Prompt renders the agent's prompt. records is only used by agents that
// search.
func (a Agent) Prompt(topic string, records []types.SearchRecord) (string, error) {
	data := promptData{Topic: topic}
	if a.usesSearch {
		serialized, err := SerializeSearchResults(records)
		if err != nil {
			return "", err
		}
		data.SearchResults = serialized
	}
	return renderPrompt(a.prompt, data)
}

// Run executes the agent for deps.Config.Topic. The librarian searches
// first; every agent then calls the LLM exactly once.
func (a Agent) Run(ctx context.Context, deps Deps) types.AgentResult {
	topic := deps.Config.Topic
	result := types.AgentResult{
		Role:     a.Role,
		Title:    fmt.Sprintf(a.TitleFormat, topic),
		Filename: a.Filename(topic),
	}

	var records []types.SearchRecord
	if a.usesSearch {
		records = deps.Search.Search(ctx, SearchQuery(topic), deps.Config.SerpAPIKey)
		result.SearchResults = records
	}

	prompt, err := a.Prompt(topic, records)
	if err != nil {
		result.Err = err
		result.Content = fmt.Sprintf("Error building prompt: %v", err)
		return result
	}

	c := deps.LLM.Complete(ctx, prompt, deps.Config.Model)
	if !c.OK() {
		result.Err = c.Err
		result.Content = fmt.Sprintf("Error calling Ollama: %v", c.Err)
		return result
	}
	result.Content = c.Text
	return result
}
