package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"tableflip.dev/tourcatalog/pkg/store"
)

// Update carries a freshly loaded dataset, or the error hit loading it.
type Update struct {
	Dataset *store.Dataset
	Err     error
}

// Watcher reloads a catalog response file whenever it changes on disk.
type Watcher struct {
	Path  string
	Delay time.Duration
	Log   *zap.Logger
}

// NewWatcher returns a watcher for path with a 100ms coalescing delay.
func NewWatcher(path string, log *zap.Logger) *Watcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{Path: path, Delay: 100 * time.Millisecond, Log: log}
}

// Watch streams a reloaded dataset after every burst of writes to the file
// until ctx is cancelled. Callers should drain the returned channel; updates
// the consumer is not ready for are dropped since the next one supersedes
// them. The channel is closed once ctx is done or the watcher fails.
func (w *Watcher) Watch(ctx context.Context) (<-chan Update, error) {
	if w.Path == "" {
		return nil, fmt.Errorf("source: watch: no data file configured")
	}
	abs, err := filepath.Abs(w.Path)
	if err != nil {
		return nil, fmt.Errorf("source: watch: %w", err)
	}
	dir := filepath.Dir(abs)
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("source: watch: %w", err)
	}
	log := w.Log
	if log == nil {
		log = zap.NewNop()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("source: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				log.Warn("watcher close", zap.Error(err))
			}
		})
	}
	// Editors commonly replace the file through a rename, so the directory is
	// watched and events are filtered by name.
	if err := watcher.Add(dir); err != nil {
		closeWatcher()
		return nil, fmt.Errorf("source: watch %s: %w", dir, err)
	}

	updates := make(chan Update, 4)
	fire := make(chan struct{}, 1)

	go func() {
		defer close(updates)
		defer closeWatcher()

		send := func(u Update) {
			select {
			case updates <- u:
			default:
				log.Debug("dropping dataset update, consumer busy")
			}
		}

		throttle := newEventThrottle(w.Delay)
		defer throttle.Stop()
		notify := func() {
			select {
			case fire <- struct{}{}:
			default:
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			case <-fire:
				ds, err := ReadFile(abs)
				if err != nil {
					log.Warn("reload failed", zap.String("path", abs), zap.Error(err))
				} else {
					log.Debug("dataset reloaded",
						zap.String("path", abs),
						zap.String("request_id", ds.RequestID),
						zap.Int("size", len(ds.Items)))
				}
				send(Update{Dataset: ds, Err: err})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// Reload anyway so consumers stay in sync even when the change
				// cannot be classified.
				log.Warn("watcher error", zap.Error(err))
				throttle.Enqueue(abs, notify)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(evt.Name) != abs {
					continue
				}
				if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				throttle.Enqueue(abs, notify)
			}
		}
	}()

	return updates, nil
}

// eventThrottle coalesces rapid change notifications so a burst of writes
// triggers a single reload.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[string]struct{}
	delay   time.Duration
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[string]struct{}),
	}
}

func (t *eventThrottle) Enqueue(name string, fire func()) {
	t.mu.Lock()
	t.pending[name] = struct{}{}
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(fire)
		})
	}
	t.mu.Unlock()
}

func (t *eventThrottle) flush(fire func()) {
	t.mu.Lock()
	n := len(t.pending)
	t.pending = make(map[string]struct{})
	t.timer = nil
	t.mu.Unlock()

	if n > 0 {
		fire()
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
