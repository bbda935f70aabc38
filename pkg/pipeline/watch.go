package pipeline

import (
	"context"
	"time"

	"github.com/archlens/ngraph/pkg/logging"
	"github.com/archlens/ngraph/pkg/watcher"
)

const (
	debounceQuiet   = 500 * time.Millisecond
	debounceMaxWait = 5 * time.Second
)

// Watch runs an initial extraction, then re-runs whenever the source tree
// or the compiler configuration changes. Every completed run is handed to
// onResult. Watch blocks until the context is cancelled.
func (r *Runner) Watch(ctx context.Context, onResult func(*Result)) error {
	result, err := r.Run(ctx, "initial run")
	if err != nil {
		return err
	}
	onResult(result)

	fw, err := watcher.NewFileWatcher(r.opts.ProjectRoot)
	if err != nil {
		return err
	}
	defer fw.Stop()
	if err := fw.Start(ctx); err != nil {
		return err
	}

	debouncer := watcher.NewDebouncer(fw.Events(), debounceQuiet, debounceMaxWait)
	debouncer.Start(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-debouncer.Output():
			if !ok {
				return nil
			}

			reason := "sources changed"
			if event.Type == watcher.ChangeTypeConfig {
				reason = "compiler config changed"
			}
			logging.Debug("change detected", "reason", reason, "paths", len(event.Paths))

			// A failed re-run keeps the previous result in place.
			result, err := r.Run(ctx, reason)
			if err != nil {
				logging.Error("re-extraction failed", "error", err)
				continue
			}
			onResult(result)
		}
	}
}
