// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agents

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/pdiddy/teaching-team/pkg/types"
)

// promptData is the template input. SearchResults is only set for the librarian.
type promptData struct {
	Topic         string
	SearchResults string
}

var professorPromptTmpl = template.Must(template.New("professor").Parse(`You are a Professor and Research Specialist. Create a comprehensive knowledge base for the topic: {{.Topic}}

Requirements:
1. Explain the topic from first principles
2. Include key terminology, core principles, and practical applications
3. Make it detailed and accessible for beginners
4. Format it clearly with headings and structure
5. Include current developments and trends

Create a detailed report that anyone starting out can read and get maximum value from.
`))

var advisorPromptTmpl = template.Must(template.New("advisor").Parse(`You are an Academic Advisor and Learning Path Designer. Create a detailed learning roadmap for: {{.Topic}}

Requirements:
1. Break down the topic into logical subtopics
2. Arrange them in order of progression
3. Include estimated time commitments for each section
4. Create a structured learning path to become an expert
5. Include milestones and checkpoints

Present the roadmap in a clear, structured format with timelines.
`))

var librarianPromptTmpl = template.Must(template.New("librarian").Parse(`You are a Research Librarian. Based on the search results below, curate high-quality learning resources for: {{.Topic}}

Search Results:
{{.SearchResults}}

Requirements:
1. Evaluate and recommend the best resources
2. Categorize them by type (tutorials, courses, books, videos, etc.)
3. Include difficulty levels and prerequisites
4. Provide brief descriptions and why each resource is valuable
5. Include both free and paid options

Create a comprehensive resource guide.
`))

var assistantPromptTmpl = template.Must(template.New("assistant").Parse(`You are a Teaching Assistant. Create practice materials, exercises, and projects for: {{.Topic}}

Requirements:
1. Create hands-on exercises and practice problems
2. Design projects that build real-world skills
3. Include coding challenges if applicable
4. Provide step-by-step instructions
5. Include assessment criteria and solutions
6. Make materials progressive from beginner to advanced

Create comprehensive practice materials that reinforce learning.
`))

// renderPrompt executes tmpl with data.
func renderPrompt(tmpl *template.Template, data promptData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering %s prompt: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}

// SerializeSearchResults renders records as the indented JSON embedded in
// the librarian prompt. A nil slice renders as an empty array. HTML
// characters are not escaped so links reach the model unchanged.
func SerializeSearchResults(records []types.SearchRecord) (string, error) {
	if records == nil {
		records = []types.SearchRecord{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return "", fmt.Errorf("serializing search results: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
