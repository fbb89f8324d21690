// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package team

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/teaching-team/internal/llm"
	"github.com/pdiddy/teaching-team/internal/search"
	"github.com/pdiddy/teaching-team/pkg/types"
)

var fixedNow = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

// fakeRuntime counts calls and answers every prompt with reply.
type fakeRuntime struct {
	models    []string
	listErr   error
	reply     func(prompt string) types.Completion
	lists     atomic.Int32
	completes atomic.Int32

	mu      sync.Mutex
	prompts []string
}

func (f *fakeRuntime) ListModels(context.Context) ([]string, error) {
	f.lists.Add(1)
	return f.models, f.listErr
}

func (f *fakeRuntime) Complete(_ context.Context, prompt, _ string) types.Completion {
	f.completes.Add(1)
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	if f.reply != nil {
		return f.reply(prompt)
	}
	return types.Completion{Text: "content"}
}

type fakeSearch struct {
	calls   atomic.Int32
	query   atomic.Value
	records []types.SearchRecord
}

func (f *fakeSearch) Search(_ context.Context, query, _ string) []types.SearchRecord {
	f.calls.Add(1)
	f.query.Store(query)
	return f.records
}

func validConfig(topic string) types.TeamConfig {
	return types.TeamConfig{
		Topic:          topic,
		Model:          "llama3.2:latest",
		ComposioAPIKey: "comp-key",
		SerpAPIKey:     "serp-key",
		Concurrency:    4,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*types.TeamConfig)
		wantErr string
	}{
		{"valid", func(*types.TeamConfig) {}, ""},
		{"missing composio key", func(c *types.TeamConfig) { c.ComposioAPIKey = "" }, "composio API key"},
		{"missing serpapi key", func(c *types.TeamConfig) { c.SerpAPIKey = "  " }, "SerpAPI key"},
		{"missing topic", func(c *types.TeamConfig) { c.Topic = "" }, "topic"},
		{"missing model", func(c *types.TeamConfig) { c.Model = "" }, "model"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig("Go")
			tt.mutate(&cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, IsConfigError(err))
			assert.ErrorIs(t, err, ErrMissingConfig)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGenerate_MissingCredentialsHaltsBeforeCalls(t *testing.T) {
	rt := &fakeRuntime{models: []string{"llama3.2:latest"}}
	s := &fakeSearch{}
	r := &Runner{LLM: rt, Search: s}

	cfg := validConfig("Go")
	cfg.SerpAPIKey = ""
	_, err := r.Generate(context.Background(), cfg)

	require.Error(t, err)
	assert.True(t, IsConfigError(err))
	assert.Zero(t, rt.lists.Load())
	assert.Zero(t, rt.completes.Load())
	assert.Zero(t, s.calls.Load())
}

func TestGenerate_ModelAbsentHaltsBeforeCalls(t *testing.T) {
	rt := &fakeRuntime{models: []string{"mistral:latest", "phi3:mini"}}
	s := &fakeSearch{}
	r := &Runner{LLM: rt, Search: s}

	_, err := r.Generate(context.Background(), validConfig("Go"))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrModelNotFound)
	assert.Contains(t, err.Error(), "model llama3.2:latest not found. Available models: mistral:latest, phi3:mini")
	assert.Equal(t, int32(1), rt.lists.Load())
	assert.Zero(t, rt.completes.Load(), "no LLM call may be issued")
	assert.Zero(t, s.calls.Load(), "no search call may be issued")
}

func TestGenerate_RuntimeUnavailable(t *testing.T) {
	rt := &fakeRuntime{listErr: errors.New("connection refused")}
	s := &fakeSearch{}
	r := &Runner{LLM: rt, Search: s}

	_, err := r.Generate(context.Background(), validConfig("Go"))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRuntimeUnavailable)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Zero(t, rt.completes.Load())
	assert.Zero(t, s.calls.Load())
}

func TestGenerate_ResultOrderIndependentOfConcurrency(t *testing.T) {
	for _, n := range []int{0, 1, 2, 4, 10} {
		t.Run(fmt.Sprintf("concurrency=%d", n), func(t *testing.T) {
			rt := &fakeRuntime{
				models: []string{"llama3.2:latest"},
				reply: func(prompt string) types.Completion {
					switch {
					case strings.HasPrefix(prompt, "You are a Professor"):
						return types.Completion{Text: "P"}
					case strings.HasPrefix(prompt, "You are an Academic Advisor"):
						time.Sleep(5 * time.Millisecond)
						return types.Completion{Text: "A"}
					case strings.HasPrefix(prompt, "You are a Research Librarian"):
						return types.Completion{Text: "L"}
					default:
						return types.Completion{Text: "S"}
					}
				},
			}
			r := &Runner{LLM: rt, Search: &fakeSearch{}, Now: func() time.Time { return fixedNow }}

			cfg := validConfig("Go")
			cfg.Concurrency = n
			pkg, err := r.Generate(context.Background(), cfg)
			require.NoError(t, err)

			var got []string
			for i, res := range pkg.Results {
				assert.Equal(t, types.Roles[i], res.Role)
				got = append(got, res.Content)
			}
			assert.Equal(t, []string{"P", "A", "L", "S"}, got)
			assert.Equal(t, int32(4), rt.completes.Load())
		})
	}
}

func TestGenerate_ConcurrentAgentsOverlap(t *testing.T) {
	var arrived sync.WaitGroup
	arrived.Add(4)
	released := make(chan struct{})
	go func() {
		arrived.Wait()
		close(released)
	}()

	rt := &fakeRuntime{
		models: []string{"llama3.2:latest"},
		reply: func(string) types.Completion {
			arrived.Done()
			select {
			case <-released:
				return types.Completion{Text: "ok"}
			case <-time.After(5 * time.Second):
				return types.Completion{Err: errors.New("agents did not overlap")}
			}
		},
	}
	r := &Runner{LLM: rt, Search: &fakeSearch{}}

	pkg, err := r.Generate(context.Background(), validConfig("Go"))

	require.NoError(t, err)
	assert.Empty(t, pkg.Failures())
}

func TestGenerate_AgentFailureDoesNotAbortBatch(t *testing.T) {
	rt := &fakeRuntime{
		models: []string{"llama3.2:latest"},
		reply: func(prompt string) types.Completion {
			if strings.HasPrefix(prompt, "You are an Academic Advisor") {
				return types.Completion{Err: errors.New("context deadline exceeded")}
			}
			return types.Completion{Text: "fine"}
		},
	}
	r := &Runner{LLM: rt, Search: &fakeSearch{}, Now: func() time.Time { return fixedNow }}

	pkg, err := r.Generate(context.Background(), validConfig("Go"))

	require.NoError(t, err)
	assert.Equal(t, []types.AgentRole{types.RoleAdvisor}, pkg.Failures())
	adv, _ := pkg.Result(types.RoleAdvisor)
	assert.Contains(t, adv.Content, "Error calling Ollama: context deadline exceeded")
	assert.Contains(t, pkg.Composite.Content, "Error calling Ollama")
	assert.Equal(t, int32(4), rt.completes.Load())
}

func TestGenerate_ProgressLines(t *testing.T) {
	var buf bytes.Buffer
	rt := &fakeRuntime{models: []string{"llama3.2:latest"}}
	r := &Runner{LLM: rt, Search: &fakeSearch{}, Progress: &buf}

	cfg := validConfig("Go")
	cfg.Concurrency = 1
	_, err := r.Generate(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, "Professor is researching...\n"+
		"Academic Advisor is planning...\n"+
		"Research Librarian is curating resources...\n"+
		"Teaching Assistant is creating practice materials...\n", buf.String())
}

func TestGenerate_TrimsConfig(t *testing.T) {
	rt := &fakeRuntime{models: []string{"llama3.2:latest"}}
	s := &fakeSearch{}
	r := &Runner{LLM: rt, Search: s}

	cfg := validConfig("  Go  ")
	cfg.Model = " llama3.2:latest "
	pkg, err := r.Generate(context.Background(), cfg)

	require.NoError(t, err)
	assert.Equal(t, "Go", pkg.Topic)
	assert.Equal(t, "learn Go tutorial course", s.query.Load())
}

// TestGenerate_EndToEnd drives the real LLM and search clients against
// httptest servers.
func TestGenerate_EndToEnd(t *testing.T) {
	var chatCalls atomic.Int32
	ollama := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v1/models":
			fmt.Fprint(w, `{"object":"list","data":[{"id":"llama3.2:latest","object":"model"}]}`)
		case "/v1/chat/completions":
			n := chatCalls.Add(1)
			fmt.Fprintf(w, `{"id":"c%d","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"answer %d"},"finish_reason":"stop"}]}`, n, n)
		default:
			http.NotFound(w, r)
		}
	}))
	defer ollama.Close()

	var searchQuery string
	serp := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		searchQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"organic_results":[{"title":"Python Tutorial","link":"https://docs.python.org/3/tutorial/","snippet":"Official"}]}`)
	}))
	defer serp.Close()

	r := &Runner{
		LLM:    llm.NewOllamaClient(types.LLMConfig{BaseURL: ollama.URL + "/v1"}, ollama.Client(), nil),
		Search: &search.SerpAPI{Client: serp.Client(), Endpoint: serp.URL},
		Now:    func() time.Time { return fixedNow },
	}

	cfg := validConfig("Python Programming")
	cfg.Concurrency = 1
	pkg, err := r.Generate(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, "learn Python Programming tutorial course", searchQuery)
	assert.Equal(t, int32(4), chatCalls.Load())

	want := map[types.AgentRole]string{
		types.RoleProfessor: "professor_report_python_programming",
		types.RoleAdvisor:   "learning_roadmap_python_programming",
		types.RoleAssistant: "practice_materials_python_programming",
	}
	for role, filename := range want {
		res, ok := pkg.Result(role)
		require.True(t, ok)
		assert.Equal(t, filename, res.Filename)
	}
	lib, _ := pkg.Result(types.RoleLibrarian)
	assert.Equal(t, []types.SearchRecord{{Title: "Python Tutorial", Link: "https://docs.python.org/3/tutorial/", Snippet: "Official"}}, lib.SearchResults)

	assert.Contains(t, strings.Split(pkg.Composite.Content, "\n"), "COMPLETE LEARNING PACKAGE FOR: PYTHON PROGRAMMING")
	assert.Empty(t, pkg.Failures())
}

// TestGenerate_SearchFailureStillPromptsLibrarian covers a failing search
// provider: the librarian still calls the LLM with the sentinel embedded.
func TestGenerate_SearchFailureStillPromptsLibrarian(t *testing.T) {
	serp := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer serp.Close()

	rt := &fakeRuntime{models: []string{"llama3.2:latest"}}
	r := &Runner{LLM: rt, Search: &search.SerpAPI{Client: serp.Client(), Endpoint: serp.URL}}

	pkg, err := r.Generate(context.Background(), validConfig("Go"))
	require.NoError(t, err)

	lib, _ := pkg.Result(types.RoleLibrarian)
	require.True(t, types.SearchFailed(lib.SearchResults))
	assert.Contains(t, lib.SearchResults[0].Error, "HTTP 503")
	assert.False(t, lib.Failed())
	assert.Equal(t, int32(4), rt.completes.Load())

	var librarianPrompt string
	for _, p := range rt.prompts {
		if strings.HasPrefix(p, "You are a Research Librarian") {
			librarianPrompt = p
		}
	}
	assert.Contains(t, librarianPrompt, `"error": "Search error: SerpAPI returned HTTP 503`)
}
