package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/syslogship/internal/domain"
	"github.com/bft-labs/syslogship/internal/ports"
)

// DefaultDebounce is the quiet period after the last event before a batch runs.
const DefaultDebounce = 500 * time.Millisecond

// Batch runs one directory batch. *BatchRunner satisfies this interface.
type Batch interface {
	Run(ctx context.Context) (domain.BatchReport, error)
}

// NameMatcher selects the file names that trigger a batch.
type NameMatcher interface {
	Match(name string) bool
}

// WatchConfig contains configuration for the directory watcher.
type WatchConfig struct {
	Dir      string
	Debounce time.Duration

	// OnBatch, if set, receives the report of every completed batch.
	OnBatch func(domain.BatchReport, error)
}

// Watcher re-runs a batch whenever matching files in a directory change.
type Watcher struct {
	config  WatchConfig
	batch   Batch
	matcher NameMatcher
	logger  ports.Logger

	mu       sync.Mutex
	debounce *time.Timer
}

// NewWatcher creates a directory watcher.
func NewWatcher(config WatchConfig, batch Batch, matcher NameMatcher, logger ports.Logger) *Watcher {
	if config.Debounce <= 0 {
		config.Debounce = DefaultDebounce
	}
	return &Watcher{
		config:  config,
		batch:   batch,
		matcher: matcher,
		logger:  logger,
	}
}

// Watch runs a batch immediately, then once per burst of matching
// create, write or rename events. Batches never overlap.
// It blocks until ctx is canceled and returns ctx.Err().
func (w *Watcher) Watch(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.config.Dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.config.Dir, err)
	}

	trigger := make(chan struct{}, 1)
	trigger <- struct{}{}

	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.runLoop(ctx, trigger)
	}()
	defer func() {
		w.stopDebounce()
		cancel()
		wg.Wait()
	}()

	w.logger.Info("watching directory",
		ports.String("dir", w.config.Dir),
		ports.Duration("debounce", w.config.Debounce),
	)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("file event",
				ports.String("path", event.Name),
				ports.String("op", event.Op.String()),
			)
			w.scheduleRun(trigger)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", ports.Err(err))
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return false
	}
	return w.matcher.Match(filepath.Base(event.Name))
}

// scheduleRun restarts the debounce timer. When it fires a pending trigger
// is queued; repeated triggers coalesce into one.
func (w *Watcher) scheduleRun(trigger chan<- struct{}) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(w.config.Debounce, func() {
		select {
		case trigger <- struct{}{}:
		default:
		}
	})
}

func (w *Watcher) stopDebounce() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.debounce != nil {
		w.debounce.Stop()
	}
}

func (w *Watcher) runLoop(ctx context.Context, trigger <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-trigger:
		}

		report, err := w.batch.Run(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			w.logger.Error("batch failed", ports.Err(err))
		}
		if w.config.OnBatch != nil {
			w.config.OnBatch(report, err)
		}
	}
}
