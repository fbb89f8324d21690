// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"bytes"
	"encoding/json"
)

// AgentRole identifies one of the four teaching agents.
type AgentRole string

const (
	RoleProfessor AgentRole = "professor"
	RoleAdvisor   AgentRole = "advisor"
	RoleLibrarian AgentRole = "librarian"
	RoleAssistant AgentRole = "assistant"
)

// Roles lists the agent roles in package order.
var Roles = []AgentRole{RoleProfessor, RoleAdvisor, RoleLibrarian, RoleAssistant}

// Completion is the outcome of one LLM call: either Text or Err is meaningful.
type Completion struct {
	Text string
	Err  error
}

// OK reports whether the call produced text.
func (c Completion) OK() bool { return c.Err == nil }

// SearchRecord is one web search hit. When Error is set the record is the
// failure sentinel and the other fields are empty.
type SearchRecord struct {
	Title   string `json:"title" yaml:"title,omitempty"`
	Link    string `json:"link" yaml:"link,omitempty"`
	Snippet string `json:"snippet" yaml:"snippet,omitempty"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

// MarshalJSON writes a sentinel record as {"error": ...} and a regular
// record as {"title", "link", "snippet"}. Characters such as & in links are
// written literally.
func (r SearchRecord) MarshalJSON() ([]byte, error) {
	if r.Error != "" {
		return marshalUnescaped(struct {
			Error string `json:"error"`
		}{r.Error})
	}
	return marshalUnescaped(struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	}{r.Title, r.Link, r.Snippet})
}

func marshalUnescaped(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// IsError reports whether the record is a search failure sentinel.
func (r SearchRecord) IsError() bool { return r.Error != "" }

// SearchFailed reports whether records is the single-element error sentinel.
func SearchFailed(records []SearchRecord) bool {
	return len(records) == 1 && records[0].IsError()
}

// AgentResult is the output of one agent invocation. It is created once and
// not modified afterwards.
type AgentResult struct {
	// Role identifies the agent that produced the result.
	Role AgentRole `json:"role" yaml:"role"`

	// Title is the human-readable document title (e.g. "Professor Report - Go").
	Title string `json:"title" yaml:"title"`

	// Filename is the document base name without timestamp or extension
	// (e.g. "professor_report_go").
	Filename string `json:"filename" yaml:"filename"`

	// Content is the generated text. When the LLM call failed it holds the
	// error message instead, so the package can always be assembled.
	Content string `json:"content" yaml:"content"`

	// Err is the LLM failure behind a degraded Content, or nil.
	Err error `json:"-" yaml:"-"`

	// SearchResults holds the raw web search records the librarian used.
	SearchResults []SearchRecord `json:"search_results,omitempty" yaml:"search_results,omitempty"`
}

// Failed reports whether Content is an error message rather than generated text.
func (r AgentResult) Failed() bool { return r.Err != nil }
