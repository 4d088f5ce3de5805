package persona

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"consult/internal/logging"
)

// Watcher hot-reloads the catalog file and delivers fresh registry
// snapshots. Threads keyed to removed personas are never deleted by a
// reload; the consumer only gains personas.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	updates chan *Registry
	done    chan struct{}
}

// WatchCatalog watches path for writes and emits a new registry snapshot
// on every successful reload. Failed reloads are logged and skipped so a
// half-written file cannot take down the running catalog.
func WatchCatalog(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	// Watch the directory: editors replace files by rename, which drops
	// a watch registered on the file itself.
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	w := &Watcher{
		path:    path,
		watcher: fw,
		updates: make(chan *Registry, 1),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Updates delivers registry snapshots built from successful reloads.
func (w *Watcher) Updates() <-chan *Registry {
	return w.updates
}

// Close stops the watcher. The updates channel is closed afterwards.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}

func (w *Watcher) loop() {
	defer close(w.updates)
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			reg, err := LoadCatalog(w.path)
			if err != nil {
				logging.SessionWarn("catalog reload skipped: %v", err)
				continue
			}
			logging.Session("catalog reloaded: %d personas", len(reg.All()))
			select {
			case w.updates <- reg:
			default:
				// Drop stale snapshot; a newer one replaces it.
				select {
				case <-w.updates:
				default:
				}
				w.updates <- reg
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.SessionWarn("catalog watcher error: %v", err)
		}
	}
}
