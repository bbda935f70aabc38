package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/archlens/ngraph/pkg/config"
	"github.com/archlens/ngraph/pkg/cycles"
	"github.com/archlens/ngraph/pkg/export"
	"github.com/archlens/ngraph/pkg/logging"
	"github.com/archlens/ngraph/pkg/pipeline"
)

func main() {
	flags := pflag.NewFlagSet("ngraph", pflag.ExitOnError)
	flags.String("project", ".", "Path to the Angular project root")
	flags.String("tsconfig", "", "Path to the compiler config (default: auto-detect)")
	flags.StringP("out", "o", "-", "Output file for the graph JSON, '-' for stdout")
	flags.Bool("watch", false, "Re-run extraction when sources change")
	flags.Bool("cycles", false, "Report circular module imports")
	flags.Bool("summary", false, "Print an analysis summary")
	flags.CountP("verbose", "v", "Increase log verbosity (-v, -vv)")
	flags.String("verbosity", "", "Log level (trace, debug, info, warn, error)")
	if err := flags.Parse(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := applyPositionalRoot(cfg, flags); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logging.SetLevel(logLevel(cfg))

	if info, err := os.Stat(cfg.Project); err != nil || !info.IsDir() {
		fmt.Fprintf(os.Stderr, "Error: project root %q is not a directory\n", cfg.Project)
		os.Exit(1)
	}

	runner := pipeline.NewRunner(pipeline.Options{
		ProjectRoot: cfg.Project,
		TSConfig:    cfg.TSConfig,
	})

	emit := func(result *pipeline.Result) {
		if err := writeGraph(cfg.Out, result); err != nil {
			logging.Error("writing output failed", "error", err)
			if !cfg.Watch {
				os.Exit(1)
			}
			return
		}
		if cfg.Summary {
			export.PrintSummary(os.Stderr, cfg.Project, len(result.Files), result.Graph, result.Stats)
		}
		if cfg.Cycles {
			cycles.PrintReport(os.Stderr, cycles.FindModuleCycles(result.Graph))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Watch {
		if err := runner.Watch(ctx, emit); err != nil && ctx.Err() == nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	result, err := runner.Run(ctx, "initial run")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	emit(result)
}

// applyPositionalRoot takes a positional argument as the project root.
// An explicit --project flag wins over the positional form.
func applyPositionalRoot(cfg *config.Config, flags *pflag.FlagSet) error {
	switch flags.NArg() {
	case 0:
		return nil
	case 1:
		if !flags.Changed("project") {
			cfg.Project = flags.Arg(0)
		}
		return nil
	default:
		return fmt.Errorf("expected at most one project root, got %d arguments: %v",
			flags.NArg(), flags.Args())
	}
}

// writeGraph serializes the result to the configured destination. "-"
// means stdout, which keeps the payload pipeable past the stderr reports.
func writeGraph(out string, result *pipeline.Result) error {
	doc := export.Build(result.Graph)

	if out == "-" {
		return export.Write(os.Stdout, doc)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	if err := export.Write(f, doc); err != nil {
		return err
	}
	logging.Info("graph written", "path", out, "nodes", len(doc.Nodes), "relationships", len(doc.Relationships))
	return f.Close()
}

// logLevel maps the configured verbosity to a slog level. The explicit
// verbosity name wins over repeated -v flags.
func logLevel(cfg *config.Config) slog.Level {
	switch cfg.Verbosity {
	case "trace":
		return logging.LevelTrace
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	switch {
	case cfg.VerboseCnt >= 2:
		return logging.LevelTrace
	case cfg.VerboseCnt == 1:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}
