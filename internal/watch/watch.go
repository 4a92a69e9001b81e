// Package watch reloads the dataset when its file changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/gorewood/ismism/internal/catalog"
)

// DefaultDebounce is how long the file must be quiet before a reload.
// Editors and atomic writers emit several events per save.
const DefaultDebounce = 250 * time.Millisecond

// Option configures a Reloader.
type Option func(*Reloader)

// WithDebounce sets the quiet period before a reload.
func WithDebounce(d time.Duration) Option {
	return func(r *Reloader) { r.debounce = d }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Reloader) { r.logger = logger }
}

// WithNotify registers a callback run after every reload attempt.
// ds is nil when err is not.
func WithNotify(fn func(ds *catalog.Dataset, err error)) Option {
	return func(r *Reloader) { r.notify = fn }
}

// Reloader watches the file behind a catalog.Handle and swaps in a freshly
// loaded dataset after each settled change. A failed reload keeps the
// current dataset.
type Reloader struct {
	handle   *catalog.Handle
	target   string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	logger   *zap.Logger
	notify   func(*catalog.Dataset, error)

	closeOnce sync.Once
	closeErr  error
}

// New starts watching the directory containing handle.Path().
// The directory is watched rather than the file so that replacing the file
// by rename is seen.
func New(handle *catalog.Handle, opts ...Option) (*Reloader, error) {
	target, err := filepath.Abs(handle.Path())
	if err != nil {
		return nil, fmt.Errorf("resolving dataset path: %w", err)
	}

	r := &Reloader{
		handle:   handle,
		target:   target,
		debounce: DefaultDebounce,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(target), err)
	}
	r.watcher = watcher
	return r, nil
}

// Run processes file events until ctx is cancelled or the watcher is closed.
// It returns nil on cancellation.
func (r *Reloader) Run(ctx context.Context) error {
	r.logger.Info("watching dataset", zap.String("path", r.target))

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-r.watcher.Events:
			if !ok {
				return nil
			}
			if !r.relevant(event) {
				continue
			}
			r.logger.Debug("dataset changed", zap.String("op", event.Op.String()))
			if timer == nil {
				timer = time.NewTimer(r.debounce)
			} else {
				timer.Reset(r.debounce)
			}
			fire = timer.C

		case err, ok := <-r.watcher.Errors:
			if !ok {
				return nil
			}
			r.logger.Warn("watcher error", zap.Error(err))

		case <-fire:
			fire = nil
			r.reload()
		}
	}
}

// relevant reports whether event may have changed the dataset content.
func (r *Reloader) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != r.target {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write)
}

func (r *Reloader) reload() {
	ds, err := catalog.Load(r.target)
	if err != nil {
		r.logger.Error("reload failed, keeping current dataset",
			zap.String("path", r.target), zap.Error(err))
	} else {
		prev := r.handle.Swap(ds)
		r.logger.Info("dataset reloaded",
			zap.String("path", r.target),
			zap.Int("records", ds.Len()),
			zap.Int("previous", prev.Len()))
	}
	if r.notify != nil {
		r.notify(ds, err)
	}
}

// Close stops watching. It is safe to call more than once.
func (r *Reloader) Close() error {
	r.closeOnce.Do(func() {
		r.closeErr = r.watcher.Close()
	})
	return r.closeErr
}
