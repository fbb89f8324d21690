// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package team runs one generation cycle: it validates the configuration,
// checks that the selected model is available, runs the four agents, and
// assembles their results into a learning package.
package team

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/teaching-team/internal/agents"
	"github.com/pdiddy/teaching-team/internal/aggregate"
	"github.com/pdiddy/teaching-team/internal/logging"
	"github.com/pdiddy/teaching-team/pkg/types"
)

// Runtime is the LLM backend as seen by the team: it completes prompts and
// lists its model inventory.
type Runtime interface {
	agents.Completer
	ListModels(ctx context.Context) ([]string, error)
}

// Runner executes generation cycles.
type Runner struct {
	LLM    Runtime
	Search agents.Searcher

	// Logger receives structured run logs. Nil disables logging.
	Logger *zap.Logger

	// Progress receives one human-readable line as each agent starts.
	// Nil discards progress.
	Progress io.Writer

	// Now returns the generation time. Nil means time.Now.
	Now func() time.Time

	progressMu sync.Mutex
}

// Validate checks cfg and returns a *ConfigError naming every missing value.
func Validate(cfg types.TeamConfig) error {
	if missing := cfg.Missing(); len(missing) > 0 {
		return &ConfigError{
			Reason: "please provide " + strings.Join(missing, ", "),
			Err:    ErrMissingConfig,
		}
	}
	return nil
}

// CheckModel confirms that model is present in the runtime inventory.
func CheckModel(ctx context.Context, rt Runtime, model string) error {
	available, err := rt.ListModels(ctx)
	if err != nil {
		return &ConfigError{
			Reason: fmt.Sprintf("connecting to model runtime: %v", err),
			Err:    ErrRuntimeUnavailable,
		}
	}
	for _, m := range available {
		if m == model {
			return nil
		}
	}
	return &ConfigError{
		Reason: fmt.Sprintf("model %s not found. Available models: %s", model, strings.Join(available, ", ")),
		Err:    ErrModelNotFound,
	}
}

// Generate runs one cycle for cfg. Configuration problems are returned as
// *ConfigError before any LLM or search call. Agent failures never abort
// the cycle; they surface as failed results inside the package.
func (r *Runner) Generate(ctx context.Context, cfg types.TeamConfig) (*types.Package, error) {
	cfg = cfg.Normalize()
	logger := logging.OrNop(r.Logger).With(zap.String("topic", cfg.Topic), zap.String("model", cfg.Model))

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	if err := CheckModel(ctx, r.LLM, cfg.Model); err != nil {
		return nil, err
	}

	start := time.Now()
	results, err := r.runAgents(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	pkg, err := aggregate.AssembleResults(results, cfg.Topic, now())
	if err != nil {
		return nil, fmt.Errorf("assembling package: %w", err)
	}

	logger.Info("learning package generated",
		zap.Duration("duration", time.Since(start)),
		zap.Int("failed_agents", len(pkg.Failures())),
	)
	return pkg, nil
}

// runAgents runs every agent with at most cfg.Concurrency in flight and
// waits for all of them. Results are stored by index, so their order is the
// package order regardless of completion order.
func (r *Runner) runAgents(ctx context.Context, cfg types.TeamConfig, logger *zap.Logger) ([]types.AgentResult, error) {
	deps := agents.Deps{LLM: r.LLM, Search: r.Search, Config: cfg}
	results := make([]types.AgentResult, len(agents.All))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency(cfg.Concurrency, len(agents.All)))

	for i, a := range agents.All {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r.progress(a.Progress)

			start := time.Now()
			res := a.Run(gctx, deps)
			fields := []zap.Field{zap.String("agent", string(a.Role)), zap.Duration("duration", time.Since(start))}
			if res.Failed() {
				logger.Warn("agent failed", append(fields, zap.Error(res.Err))...)
			} else {
				logger.Info("agent finished", append(fields, zap.Int("chars", len(res.Content)))...)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("running agents: %w", err)
	}
	return results, nil
}

func (r *Runner) progress(msg string) {
	if r.Progress == nil {
		return
	}
	r.progressMu.Lock()
	defer r.progressMu.Unlock()
	fmt.Fprintln(r.Progress, msg)
}

func concurrency(n, max int) int {
	if n < 1 {
		return 1
	}
	if n > max {
		return max
	}
	return n
}
