// Package pipeline orchestrates one extraction run: locate and resolve the
// compiler configuration, enumerate the source set, walk it into a graph,
// and resolve cross-entity references. Each run builds a fresh graph; no
// state carries over between runs.
package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/archlens/ngraph/pkg/logging"
	"github.com/archlens/ngraph/pkg/model"
	"github.com/archlens/ngraph/pkg/resolver"
	"github.com/archlens/ngraph/pkg/tsconfig"
	"github.com/archlens/ngraph/pkg/walker"
)

// Options configures a runner.
type Options struct {
	ProjectRoot string
	TSConfig    string // explicit compiler config path, empty for auto-detection
}

// Result is the outcome of one completed run.
type Result struct {
	Graph      *model.Graph
	Files      []string
	Stats      resolver.Stats
	ConfigPath string
}

// Runner executes extraction runs over a fixed project root.
type Runner struct {
	opts Options
	mu   sync.Mutex // Prevent concurrent runs in watch mode
}

// NewRunner creates a runner for the given project.
func NewRunner(opts Options) *Runner {
	return &Runner{opts: opts}
}

// Run executes a full extraction and returns the resolved graph. The
// reason tags the run in logs ("initial run", "sources changed").
func (r *Runner) Run(ctx context.Context, reason string) (*Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ctx = logging.WithRunID(ctx, logging.NewRunID())
	logging.InfoContext(ctx, "starting extraction", "reason", reason, "project", r.opts.ProjectRoot)

	configPath, err := tsconfig.Locate(r.opts.ProjectRoot, r.opts.TSConfig)
	if err != nil {
		return nil, err
	}
	cfg, err := tsconfig.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading compiler config %s: %w", configPath, err)
	}
	logging.DebugContext(ctx, "compiler config resolved", "path", configPath)

	files, err := cfg.SourceFiles(r.opts.ProjectRoot)
	if err != nil {
		return nil, fmt.Errorf("enumerating source files: %w", err)
	}
	if len(files) == 0 {
		logging.WarnContext(ctx, "source set is empty", "config", configPath)
	}
	aliases, err := cfg.Aliases(r.opts.ProjectRoot)
	if err != nil {
		return nil, fmt.Errorf("resolving path aliases: %w", err)
	}
	logging.InfoContext(ctx, "source set enumerated", "files", len(files), "aliases", len(aliases))

	w, err := walker.New(r.opts.ProjectRoot, aliases)
	if err != nil {
		return nil, err
	}
	graph, err := w.Walk(ctx, files)
	if err != nil {
		return nil, err
	}

	stats := resolver.Resolve(graph)
	logging.InfoContext(ctx, "references resolved",
		"resolved", stats.Resolved,
		"ambiguous", stats.Ambiguous,
		"unresolved", stats.Unresolved,
		"external", stats.External)

	return &Result{
		Graph:      graph,
		Files:      files,
		Stats:      stats,
		ConfigPath: configPath,
	}, nil
}
