// Package watcher drives re-extraction in watch mode. It monitors a
// project tree for TypeScript and tsconfig changes, batches raw fsnotify
// events, and hands debounced change sets to the run loop.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/archlens/ngraph/pkg/logging"
)

// ChangeType represents the type of file change detected
type ChangeType int

const (
	ChangeTypeSource ChangeType = iota
	ChangeTypeConfig
)

// ChangeEvent represents a batch of file system changes
type ChangeEvent struct {
	Type      ChangeType
	Paths     []string
	Timestamp time.Time
}

// FileWatcher watches an Angular project tree for file changes
type FileWatcher struct {
	watcher   *fsnotify.Watcher
	root      string
	events    chan ChangeEvent
	closeOnce sync.Once
}

// NewFileWatcher creates a new file system watcher rooted at the project
// directory.
func NewFileWatcher(root string) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	return &FileWatcher{
		watcher: watcher,
		root:    root,
		events:  make(chan ChangeEvent, 100),
	}, nil
}

// Start begins watching for file changes
func (fw *FileWatcher) Start(ctx context.Context) error {
	if err := fw.watchSourceDirs(); err != nil {
		return err
	}

	logging.Info("started watching project", "path", fw.root)

	go fw.processEvents(ctx)

	return nil
}

// watchSourceDirs registers every directory under the project root except
// dependency and build output trees. fsnotify does not recurse, so each
// directory is added individually.
func (fw *FileWatcher) watchSourceDirs() error {
	count := 0
	err := filepath.Walk(fw.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip directories we can't access
		}
		if !info.IsDir() {
			return nil
		}
		name := info.Name()
		if name == "node_modules" || name == "dist" {
			return filepath.SkipDir
		}
		if path != fw.root && strings.HasPrefix(name, ".") {
			return filepath.SkipDir
		}
		if err := fw.watcher.Add(path); err != nil {
			logging.Warn("failed to watch directory", "path", path, "error", err)
			return nil
		}
		count++
		return nil
	})
	if err != nil {
		return fmt.Errorf("walking project tree: %w", err)
	}

	logging.Info("monitoring directories", "count", count)
	return nil
}

// processEvents batches raw events by type before emitting them.
func (fw *FileWatcher) processEvents(ctx context.Context) {
	var sourceFiles []string
	var configFiles []string

	flushTimer := time.NewTimer(100 * time.Millisecond)
	flushTimer.Stop()

	flush := func() {
		if len(sourceFiles) > 0 {
			fw.events <- ChangeEvent{
				Type:      ChangeTypeSource,
				Paths:     sourceFiles,
				Timestamp: time.Now(),
			}
			sourceFiles = nil
		}
		if len(configFiles) > 0 {
			fw.events <- ChangeEvent{
				Type:      ChangeTypeConfig,
				Paths:     configFiles,
				Timestamp: time.Now(),
			}
			configFiles = nil
		}
	}

	// fw.events is closed here and nowhere else, on every exit path.
	for {
		select {
		case <-ctx.Done():
			fw.close()
			close(fw.events)
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				close(fw.events)
				return
			}

			// Newly created directories need their own watch.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := fw.watcher.Add(event.Name); err != nil {
						logging.Warn("failed to watch new directory", "path", event.Name, "error", err)
					}
					continue
				}
			}

			name := filepath.Base(event.Name)
			switch {
			case isConfigFile(name):
				configFiles = append(configFiles, event.Name)
				flushTimer.Reset(100 * time.Millisecond)
			case isSourceFile(name):
				sourceFiles = append(sourceFiles, event.Name)
				flushTimer.Reset(100 * time.Millisecond)
			}

		case <-flushTimer.C:
			flush()

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				close(fw.events)
				return
			}
			logging.Error("watcher error", "error", err)
		}
	}
}

// Events returns the channel of change events
func (fw *FileWatcher) Events() <-chan ChangeEvent {
	return fw.events
}

// Stop stops the file watcher. Closing the fsnotify watcher ends its
// event stream, which lets processEvents wind down and close the events
// channel. Safe to call after context cancellation, and more than once.
func (fw *FileWatcher) Stop() error {
	fw.close()
	return nil
}

func (fw *FileWatcher) close() {
	fw.closeOnce.Do(func() {
		if err := fw.watcher.Close(); err != nil {
			logging.Warn("closing watcher", "error", err)
		}
	})
}

func isSourceFile(name string) bool {
	return strings.HasSuffix(name, ".ts") && !strings.HasSuffix(name, ".d.ts")
}

func isConfigFile(name string) bool {
	return strings.HasPrefix(name, "tsconfig") && strings.HasSuffix(name, ".json")
}
