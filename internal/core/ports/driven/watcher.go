package driven

import "context"

// ProfileWatcher reports when watched profile files change. Browsers
// rewrite their databases in bursts, so implementations are expected to
// coalesce rapid successions of events per path.
type ProfileWatcher interface {
	// Add registers a file for change reporting.
	Add(path string) error

	// Start delivers change notifications to fn until ctx is done or the
	// watcher is closed. fn receives the changed path.
	Start(ctx context.Context, fn func(path string)) error

	// Close stops the watcher. A closed watcher's Start returns
	// domain.ErrWatcherClosed.
	Close() error
}
