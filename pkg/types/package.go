// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Document is one downloadable plain-text artifact.
type Document struct {
	// Role is the producing agent. Empty for the composite document.
	Role AgentRole `json:"role,omitempty" yaml:"role,omitempty"`

	// Label is the download label shown to the user (e.g. "Professor Report").
	Label string `json:"label" yaml:"label"`

	// Filename is the full file name including timestamp and extension.
	Filename string `json:"filename" yaml:"filename"`

	// Content is the document body.
	Content string `json:"-" yaml:"-"`
}

// Package is the assembled output of one generation cycle: four per-agent
// documents and the composite learning package.
type Package struct {
	Topic       string    `json:"topic" yaml:"topic"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`

	// Timestamp is the filename suffix shared by every document (YYYYMMDD_HHMMSS).
	Timestamp string `json:"timestamp" yaml:"timestamp"`

	// Results holds the agent results unmodified, in package order.
	Results []AgentResult `json:"results" yaml:"results"`

	// Documents holds one document per agent, in package order.
	Documents []Document `json:"documents" yaml:"documents"`

	// Composite concatenates every agent's content under section banners.
	Composite Document `json:"composite" yaml:"composite"`
}

// Failures returns the roles whose results are degraded error text.
func (p *Package) Failures() []AgentRole {
	var failed []AgentRole
	for _, r := range p.Results {
		if r.Failed() {
			failed = append(failed, r.Role)
		}
	}
	return failed
}

// Result returns the result for role, if present.
func (p *Package) Result(role AgentRole) (AgentResult, bool) {
	for _, r := range p.Results {
		if r.Role == role {
			return r, true
		}
	}
	return AgentResult{}, false
}
