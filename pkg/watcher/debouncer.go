package watcher

import (
	"context"
	"time"

	"github.com/archlens/ngraph/pkg/logging"
)

// Debouncer batches rapid file system events so one editor save burst
// triggers a single re-extraction instead of one per file.
type Debouncer struct {
	input       <-chan ChangeEvent
	output      chan ChangeEvent
	quietPeriod time.Duration
	maxWait     time.Duration
}

// NewDebouncer creates a new event debouncer
func NewDebouncer(input <-chan ChangeEvent, quietPeriod, maxWait time.Duration) *Debouncer {
	return &Debouncer{
		input:       input,
		output:      make(chan ChangeEvent, 10),
		quietPeriod: quietPeriod,
		maxWait:     maxWait,
	}
}

// Start begins processing events with debouncing
func (d *Debouncer) Start(ctx context.Context) {
	go d.run(ctx)
}

func (d *Debouncer) run(ctx context.Context) {
	quiet := time.NewTimer(d.quietPeriod)
	quiet.Stop()
	maxWait := time.NewTimer(d.maxWait)
	maxWait.Stop()

	accumulated := make(map[ChangeType][]string)
	eventCount := 0

	flush := func() {
		quiet.Stop()
		maxWait.Stop()
		if eventCount == 0 {
			return
		}

		logging.Debug("flushing accumulated events", "count", eventCount)

		// Config changes first: they can invalidate the file set the
		// source changes belong to.
		if paths := accumulated[ChangeTypeConfig]; len(paths) > 0 {
			d.output <- ChangeEvent{
				Type:      ChangeTypeConfig,
				Paths:     paths,
				Timestamp: time.Now(),
			}
		}
		if paths := accumulated[ChangeTypeSource]; len(paths) > 0 {
			d.output <- ChangeEvent{
				Type:      ChangeTypeSource,
				Paths:     paths,
				Timestamp: time.Now(),
			}
		}

		accumulated = make(map[ChangeType][]string)
		eventCount = 0
	}

	for {
		select {
		case <-ctx.Done():
			flush()
			close(d.output)
			return

		case event, ok := <-d.input:
			if !ok {
				flush()
				close(d.output)
				return
			}

			accumulated[event.Type] = append(accumulated[event.Type], event.Paths...)

			// Max wait bounds the delay under a steady event stream.
			if eventCount == 0 {
				maxWait.Reset(d.maxWait)
			}
			eventCount++
			quiet.Reset(d.quietPeriod)

		case <-quiet.C:
			flush()

		case <-maxWait.C:
			flush()
		}
	}
}

// Output returns the channel of debounced events
func (d *Debouncer) Output() <-chan ChangeEvent {
	return d.output
}
