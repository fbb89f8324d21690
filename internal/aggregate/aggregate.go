// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package aggregate combines the four agent results into downloadable
// documents: one per agent and one composite learning package.
package aggregate

import (
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/teaching-team/internal/agents"
	"github.com/pdiddy/teaching-team/pkg/types"
)

const (
	// TimestampLayout formats the filename suffix (YYYYMMDD_HHMMSS).
	TimestampLayout = "20060102_150405"

	// GeneratedLayout formats the "Generated on" line of the composite.
	GeneratedLayout = "2006-01-02 15:04:05"

	compositePrefix = "complete_learning_package"
	rule            = "=========================================="
)

// section describes one banner of the composite and its download label.
type section struct {
	role   types.AgentRole
	banner string
	label  string
}

// sections is the fixed composite order.
var sections = []section{
	{types.RoleProfessor, "📚 PROFESSOR'S KNOWLEDGE BASE", "📚 Professor Report"},
	{types.RoleAdvisor, "🗺️ ACADEMIC ADVISOR'S LEARNING ROADMAP", "🗺️ Learning Roadmap"},
	{types.RoleLibrarian, "📋 RESEARCH LIBRARIAN'S RESOURCE GUIDE", "📋 Resources Guide"},
	{types.RoleAssistant, "🎯 TEACHING ASSISTANT'S PRACTICE MATERIALS", "🎯 Practice Materials"},
}

// Banners returns the composite section banners in order.
func Banners() []string {
	out := make([]string, len(sections))
	for i, s := range sections {
		out[i] = s.banner
	}
	return out
}

// Assemble builds the package for topic at time now. Each result is exposed
// unmodified as its own document, with the shared timestamp in its filename.
// Assemble has no side effects.
func Assemble(professor, advisor, librarian, assistant types.AgentResult, topic string, now time.Time) *types.Package {
	results := []types.AgentResult{professor, advisor, librarian, assistant}
	ts := now.Format(TimestampLayout)

	pkg := &types.Package{
		Topic:       topic,
		GeneratedAt: now,
		Timestamp:   ts,
		Results:     results,
	}

	for i, r := range results {
		pkg.Documents = append(pkg.Documents, types.Document{
			Role:     sections[i].role,
			Label:    sections[i].label,
			Filename: fmt.Sprintf("%s_%s.txt", r.Filename, ts),
			Content:  r.Content,
		})
	}

	pkg.Composite = types.Document{
		Label:    "📦 Complete Learning Package",
		Filename: fmt.Sprintf("%s_%s_%s.txt", compositePrefix, agents.TopicSlug(topic), ts),
		Content:  composite(results, topic, now),
	}
	return pkg
}

// AssembleResults is Assemble for a slice in package order. It fails when a
// role is missing or out of place.
func AssembleResults(results []types.AgentResult, topic string, now time.Time) (*types.Package, error) {
	if len(results) != len(sections) {
		return nil, fmt.Errorf("expected %d agent results, got %d", len(sections), len(results))
	}
	for i, r := range results {
		if r.Role != sections[i].role {
			return nil, fmt.Errorf("result %d: expected role %s, got %q", i, sections[i].role, r.Role)
		}
	}
	return Assemble(results[0], results[1], results[2], results[3], topic, now), nil
}

// composite renders the complete learning package text.
func composite(results []types.AgentResult, topic string, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "COMPLETE LEARNING PACKAGE FOR: %s\n", strings.ToUpper(topic))
	fmt.Fprintf(&b, "Generated on: %s\n\n", now.Format(GeneratedLayout))

	for i, s := range sections {
		writeBanner(&b, s.banner)
		b.WriteString(results[i].Content)
		b.WriteString("\n\n")
	}

	writeBanner(&b, "END OF LEARNING PACKAGE")
	return b.String()
}

func writeBanner(b *strings.Builder, title string) {
	b.WriteString(rule + "\n")
	b.WriteString(title + "\n")
	b.WriteString(rule + "\n")
}
