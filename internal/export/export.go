// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes an assembled learning package to disk: one text
// file per document and a YAML manifest describing the run.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/teaching-team/internal/agents"
	"github.com/pdiddy/teaching-team/pkg/types"
)

// Manifest records what a generation cycle produced.
type Manifest struct {
	Topic       string          `yaml:"topic"`
	Model       string          `yaml:"model"`
	GeneratedAt string          `yaml:"generated_at"`
	Files       []ManifestFile  `yaml:"files"`
	Failed      []string        `yaml:"failed,omitempty"`
	Search      *ManifestSearch `yaml:"search,omitempty"`
}

// ManifestFile describes one written document.
type ManifestFile struct {
	Role   string `yaml:"role,omitempty"`
	Title  string `yaml:"title,omitempty"`
	Label  string `yaml:"label"`
	Path   string `yaml:"path"`
	Bytes  int    `yaml:"bytes"`
	Failed bool   `yaml:"failed,omitempty"`
}

// ManifestSearch holds the librarian's query and raw results.
type ManifestSearch struct {
	Query   string               `yaml:"query"`
	Results []types.SearchRecord `yaml:"results"`
}

// Write stores every document of pkg under dir and writes a manifest named
// manifest_<topic>_<timestamp>.yaml. Progress lines go to w.
func Write(pkg *types.Package, model, dir string, w io.Writer) (*Manifest, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	m := &Manifest{
		Topic:       pkg.Topic,
		Model:       model,
		GeneratedAt: pkg.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"),
	}

	for i, doc := range pkg.Documents {
		path, err := writeDocument(dir, doc)
		if err != nil {
			return nil, err
		}
		res := pkg.Results[i]
		m.Files = append(m.Files, ManifestFile{
			Role:   string(doc.Role),
			Title:  res.Title,
			Label:  doc.Label,
			Path:   path,
			Bytes:  len(doc.Content),
			Failed: res.Failed(),
		})
		fmt.Fprintf(w, "wrote %s\n", path)
	}

	path, err := writeDocument(dir, pkg.Composite)
	if err != nil {
		return nil, err
	}
	m.Files = append(m.Files, ManifestFile{Label: pkg.Composite.Label, Path: path, Bytes: len(pkg.Composite.Content)})
	fmt.Fprintf(w, "wrote %s\n", path)

	for _, role := range pkg.Failures() {
		m.Failed = append(m.Failed, string(role))
	}
	if lib, ok := pkg.Result(types.RoleLibrarian); ok {
		m.Search = &ManifestSearch{Query: agents.SearchQuery(pkg.Topic), Results: lib.SearchResults}
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshaling manifest: %w", err)
	}
	manifestPath := filepath.Join(dir, safeName(ManifestName(pkg)))
	if err := os.WriteFile(manifestPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("writing manifest: %w", err)
	}
	fmt.Fprintf(w, "wrote %s\n", manifestPath)

	return m, nil
}

// ManifestName returns the manifest file name for pkg.
func ManifestName(pkg *types.Package) string {
	return fmt.Sprintf("manifest_%s_%s.yaml", agents.TopicSlug(pkg.Topic), pkg.Timestamp)
}

// LoadManifest reads a manifest written by Write.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return &m, nil
}

func writeDocument(dir string, doc types.Document) (string, error) {
	path := filepath.Join(dir, safeName(doc.Filename))
	if err := os.WriteFile(path, []byte(doc.Content), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", doc.Filename, err)
	}
	return path, nil
}

// pathSeparators may appear in a topic but not in a file name.
var pathSeparators = strings.NewReplacer("/", "-", "\\", "-")

func safeName(name string) string {
	return pathSeparators.Replace(name)
}
