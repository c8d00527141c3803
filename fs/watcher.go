package fs

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"
)

// DefaultDebounce is the minimum interval between change notifications.
const DefaultDebounce = 250 * time.Millisecond

// Watcher watches a fixed set of files and signals coalesced change
// events. Editors typically replace files on save (write to temp,
// rename over), so the watcher observes each file's parent directory and
// filters events by name. Bursts of events inside the debounce interval
// collapse into one notification.
type Watcher struct {
	fw      *fsnotify.Watcher
	limiter *rate.Limiter
	watched map[string]bool
	events  chan struct{}
	done    chan struct{}
}

// Watch starts watching the given files with the given debounce interval.
// A non-positive debounce uses DefaultDebounce.
func Watch(debounce time.Duration, paths ...string) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fw:      fw,
		limiter: rate.NewLimiter(rate.Every(debounce), 1),
		watched: make(map[string]bool, len(paths)),
		events:  make(chan struct{}, 1),
		done:    make(chan struct{}),
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, err
		}
		w.watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, err
		}
	}

	go w.loop()
	return w, nil
}

// Events returns the change notification channel. It carries at most one
// pending notification; a reader that falls behind sees a single combined
// signal rather than a backlog.
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

// Close stops watching and releases resources.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fw.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			if !w.limiter.Allow() {
				continue
			}
			select {
			case w.events <- struct{}{}:
			default:
			}
		case _, ok := <-w.fw.Errors:
			if !ok {
				return
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return w.watched[abs]
}
