// Package watch implements the driven.ProfileWatcher port on top of
// fsnotify. Browsers rewrite their profile databases in rapid bursts
// (Chromium writes Bookmarks via a temp file and rename), so raw
// filesystem events are debounced per path before they reach the
// caller, and delivery is rate limited as a backstop against event
// storms.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/omnibar/internal/core/domain"
	"github.com/custodia-labs/omnibar/internal/logger"
)

// defaultDebounce is how long a path must stay quiet before a change
// notification fires. 300ms comfortably covers a Chromium write burst.
const defaultDebounce = 300 * time.Millisecond

// Watcher watches individual profile files for changes. It watches the
// parent directory rather than the file itself, because browsers
// replace profile files via rename and a watch on the old inode would
// go stale after the first write.
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration
	limiter  *rate.Limiter

	mu      sync.Mutex
	paths   map[string]struct{} // files to report, keyed by cleaned path
	dirs    map[string]struct{} // parent directories already added to fsnotify
	timers  map[string]*time.Timer
	closed  bool
	done    chan struct{}
}

// NewWatcher creates a watcher. A debounce of zero selects the
// default interval.
func NewWatcher(debounce time.Duration) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return &Watcher{
		fs:       fs,
		debounce: debounce,
		// Reloading a browser database is not free, so even after
		// debouncing cap delivery at two per second with room for a
		// small burst when several profiles change together.
		limiter: rate.NewLimiter(rate.Every(500*time.Millisecond), 4),
		paths:   make(map[string]struct{}),
		dirs:    make(map[string]struct{}),
		timers:  make(map[string]*time.Timer),
		done:    make(chan struct{}),
	}, nil
}

// Add registers a file for change reporting.
func (w *Watcher) Add(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return domain.ErrWatcherClosed
	}

	clean := filepath.Clean(path)
	dir := filepath.Dir(clean)
	if _, ok := w.dirs[dir]; !ok {
		if err := w.fs.Add(dir); err != nil {
			return err
		}
		w.dirs[dir] = struct{}{}
	}
	w.paths[clean] = struct{}{}
	return nil
}

// Start delivers debounced change notifications to fn until ctx is
// done or the watcher is closed. fn is called from the watcher's own
// goroutines and must be safe for concurrent use.
func (w *Watcher) Start(ctx context.Context, fn func(path string)) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return domain.ErrWatcherClosed
	}
	w.mu.Unlock()

	for {
		select {
		case <-ctx.Done():
			w.stopTimers()
			return nil
		case <-w.done:
			w.stopTimers()
			return domain.ErrWatcherClosed
		case event, ok := <-w.fs.Events:
			if !ok {
				w.stopTimers()
				return domain.ErrWatcherClosed
			}
			w.handle(event, fn)
		case err, ok := <-w.fs.Errors:
			if !ok {
				w.stopTimers()
				return domain.ErrWatcherClosed
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// Close stops the watcher and cancels pending notifications.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.done)
	w.mu.Unlock()

	w.stopTimers()
	return w.fs.Close()
}

// handle debounces a raw filesystem event. The timer for a path is
// re-armed on every event, so fn only fires once the path has been
// quiet for the debounce interval.
func (w *Watcher) handle(event fsnotify.Event, fn func(string)) {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}
	clean := filepath.Clean(event.Name)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if _, ok := w.paths[clean]; !ok {
		return
	}
	if timer, ok := w.timers[clean]; ok {
		timer.Stop()
	}
	w.timers[clean] = time.AfterFunc(w.debounce, func() {
		w.fire(clean, fn)
	})
}

// fire delivers one debounced notification, re-arming the timer when
// the rate limiter pushes back so the change is delayed rather than
// dropped.
func (w *Watcher) fire(path string, fn func(string)) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	if !w.limiter.Allow() {
		w.timers[path] = time.AfterFunc(w.debounce, func() {
			w.fire(path, fn)
		})
		w.mu.Unlock()
		return
	}
	delete(w.timers, path)
	w.mu.Unlock()

	fn(path)
}

// stopTimers cancels all pending debounce timers.
func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, timer := range w.timers {
		timer.Stop()
		delete(w.timers, path)
	}
}
