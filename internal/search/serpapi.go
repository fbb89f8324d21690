// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries a web search provider for learning resources.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/pdiddy/teaching-team/internal/logging"
	"github.com/pdiddy/teaching-team/pkg/types"
)

// serpAPIBase is the SerpAPI search endpoint. Declared as a var so tests can
// substitute an httptest server.
var serpAPIBase = "https://serpapi.com/search"

const (
	// engine is the SerpAPI engine identifier.
	engine = "google"

	// NumResults is the number of results requested per query.
	NumResults = 5
)

// SerpAPI performs keyword searches against SerpAPI.
type SerpAPI struct {
	Client *http.Client
	Logger *zap.Logger

	// Endpoint overrides the SerpAPI search URL when set.
	Endpoint string
}

// Search sends one GET request for query and returns the organic results.
// A response without organic_results yields an empty slice. Transport
// failures, non-2xx statuses and undecodable bodies yield a single record
// whose Error field describes the failure. Search does not retry.
func (s *SerpAPI) Search(ctx context.Context, query, apiKey string) []types.SearchRecord {
	logger := logging.OrNop(s.Logger).With(zap.String("component", "search"))

	records, err := s.search(ctx, query, apiKey)
	if err != nil {
		logger.Warn("search failed", zap.String("query", query), zap.Error(err))
		return []types.SearchRecord{{Error: fmt.Sprintf("Search error: %v", err)}}
	}
	logger.Debug("search complete", zap.String("query", query), zap.Int("results", len(records)))
	return records
}

func (s *SerpAPI) search(ctx context.Context, query, apiKey string) ([]types.SearchRecord, error) {
	params := url.Values{
		"q":       {query},
		"api_key": {apiKey},
		"engine":  {engine},
		"num":     {strconv.Itoa(NumResults)},
	}

	endpoint := s.Endpoint
	if endpoint == "" {
		endpoint = serpAPIBase
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("SerpAPI request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("SerpAPI returned HTTP %d: %s", resp.StatusCode, string(body))
	}

	var sr serpResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing SerpAPI response: %w", err)
	}

	records := make([]types.SearchRecord, 0, len(sr.OrganicResults))
	for _, r := range sr.OrganicResults {
		records = append(records, types.SearchRecord{
			Title:   r.Title,
			Link:    r.Link,
			Snippet: r.Snippet,
		})
	}
	return records, nil
}

// SerpAPI JSON structures. Missing fields decode to empty strings.
type serpResponse struct {
	OrganicResults []serpResult `json:"organic_results"`
}

type serpResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}
