// Package pathwatch provides file system change notifications.
package pathwatch

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// A Watcher keeps track of a set of paths and sends notifications on user-provided
// channels whenever the file at one of them changes in any way.
// The specific nature of the change is not reported; it is up to the user to determine
// what happened. Bursts of changes to one path that are less than the debounce interval
// apart are reported once.
//
// Any errors that the Watcher encounters while monitoring the paths are delivered on the
// channel returned by Errors.
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration
	files    map[string][]chan<- struct{}
	dirs     map[string]int
	pending  map[string]bool
	errors   chan error
	control  chan func()
}

// DefaultDebounce is the debounce interval used by NewWatcher.
const DefaultDebounce = time.Second / 8

// NewWatcher starts a new watcher.
// When no longer in use, the user should call Close to release resources associated with it.
func NewWatcher() (*Watcher, error) { return NewWatcherDebounce(DefaultDebounce) }

// NewWatcherDebounce is like NewWatcher, with a custom debounce interval.
func NewWatcherDebounce(d time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "pathwatch: create watcher")
	}
	w := &Watcher{
		fs:       fsw,
		debounce: d,
		files:    map[string][]chan<- struct{}{},
		dirs:     map[string]int{},
		pending:  map[string]bool{},
		errors:   make(chan error, 10),
		control:  make(chan func(), 10),
	}
	go w.run()
	return w, nil
}

// Normally we don't want a notification when we add a file, since it's redundant,
// but for testing we need it in order to be able to reliably detect modifications without
// races.
var notifyOnAdd = false

// Add begins sending change notifications for a path on the given channel.
// Multiple calls to Add for the same path, but different channels, are permitted;
// in that case, the notifications will be sent on all of them.
// The directory containing the path must exist; the file itself need not.
// Notifications are never blocked on: if ch is full, the notification is dropped,
// so ch should have a buffer.
func (w *Watcher) Add(path string, ch chan<- struct{}) error {
	path = filepath.Clean(path)
	done := make(chan error, 1)
	w.control <- func() { done <- w.add(path, ch) }
	return <-done
}

func (w *Watcher) add(path string, ch chan<- struct{}) error {
	if _, ok := w.files[path]; !ok {
		// Watch the directory, so that files replaced by renaming are still tracked.
		dir := filepath.Dir(path)
		if w.dirs[dir] == 0 {
			if err := w.fs.Add(dir); err != nil {
				return errors.Wrapf(err, "pathwatch: watch %s", dir)
			}
		}
		w.dirs[dir]++
	}
	w.files[path] = append(w.files[path], ch)
	if notifyOnAdd {
		ch <- struct{}{}
	}
	return nil
}

// Remove stops sending change notifications for a path on the given channel.
// It does not cancel other calls to Add made for the same path, but different
// channels.
func (w *Watcher) Remove(path string, ch chan<- struct{}) {
	path = filepath.Clean(path)
	w.control <- func() {
		observers, ok := w.files[path]
		if !ok {
			return
		}
		for i, ob := range observers {
			if ob != ch {
				continue
			}
			if len(observers) > 1 {
				n := len(observers) - 1
				observers[i] = observers[n]
				w.files[path] = observers[:n]
				return
			}
			delete(w.files, path)
			delete(w.pending, path)
			dir := filepath.Dir(path)
			if w.dirs[dir]--; w.dirs[dir] == 0 {
				delete(w.dirs, dir)
				if err := w.fs.Remove(dir); err != nil {
					w.reportError(errors.Wrapf(err, "pathwatch: unwatch %s", dir))
				}
			}
			return
		}
	}
}

// Errors returns a channel on which the Watcher delivers errors it encounters.
func (w *Watcher) Errors() <-chan error { return w.errors }

// Close stops delivering change notifications for any paths and releases all resources
// associated with the watcher.
func (w *Watcher) Close() { w.control <- nil }

func (w *Watcher) run() {
	defer w.fs.Close()
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			name := filepath.Clean(ev.Name)
			if _, watched := w.files[name]; watched {
				w.pending[name] = true
				resetTimer(timer, w.debounce)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.reportError(err)
		case <-timer.C:
			for path := range w.pending {
				for _, ob := range w.files[path] {
					select {
					case ob <- struct{}{}:
					default:
					}
				}
				delete(w.pending, path)
			}
		case f := <-w.control:
			if f == nil {
				return
			}
			f()
		}
	}
}

// resetTimer is like t.Reset, but discards a pending expiry that hasn't been received yet.
func resetTimer(t *time.Timer, d time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(d)
}

// reportError delivers err unless the error channel is full.
func (w *Watcher) reportError(err error) {
	select {
	case w.errors <- err:
	default:
	}
}
