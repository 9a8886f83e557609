// Package watch offers the terminal analog of drag-and-drop: a watched
// drop directory. A file that appears in it with the required extension
// is offered to the UI as the new upload candidate; anything else is
// reported as a rejection so the UI can alert on a wrong-extension drop.
package watch

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceWindow suppresses the duplicate Create/Write bursts editors
// and file managers produce for a single drop.
const debounceWindow = 500 * time.Millisecond

// Watcher watches a drop directory for new dataset files.
type Watcher struct {
	watcher *fsnotify.Watcher
	dir     string
	ext     string

	files    chan string
	rejected chan string
	errs     chan error

	// Last time each path was offered, for debouncing
	recent map[string]time.Time

	mu     sync.Mutex
	stopCh chan struct{}
	once   sync.Once
}

// New creates a Watcher on dir for files ending in ext. The directory
// is created if it does not exist.
func New(dir, ext string) (*Watcher, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, err
	}

	return &Watcher{
		watcher:  fw,
		dir:      dir,
		ext:      ext,
		files:    make(chan string, 8),
		rejected: make(chan string, 8),
		errs:     make(chan error, 1),
		recent:   make(map[string]time.Time),
		stopCh:   make(chan struct{}),
	}, nil
}

// Dir returns the watched directory.
func (w *Watcher) Dir() string {
	return w.dir
}

// Files returns the channel of dropped file paths matching the
// required extension.
func (w *Watcher) Files() <-chan string {
	return w.files
}

// Rejected returns the channel of dropped file paths that do not match
// the required extension.
func (w *Watcher) Rejected() <-chan string {
	return w.rejected
}

// Errors returns the channel of watcher failures.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Start begins watching in a background goroutine.
func (w *Watcher) Start() {
	go w.loop()
}

// loop dispatches fsnotify events until Stop is called.
func (w *Watcher) loop() {
	for {
		select {
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}
		}
	}
}

// handleEvent offers newly appearing files to the UI. Only Create and
// Rename count as a "drop"; Write events on an already-offered path are
// folded into the debounce window.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) && !event.Op.Has(fsnotify.Write) {
		return
	}

	info, err := os.Stat(event.Name)
	if err != nil || info.IsDir() {
		return
	}

	// Ignore hidden files and partial-download markers
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, ".part") {
		return
	}

	if !w.debounce(event.Name) {
		return
	}

	if strings.HasSuffix(base, w.ext) {
		select {
		case w.files <- event.Name:
		default:
		}
	} else {
		select {
		case w.rejected <- event.Name:
		default:
		}
	}
}

// debounce reports whether path should be offered now.
func (w *Watcher) debounce(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	if last, ok := w.recent[path]; ok && now.Sub(last) < debounceWindow {
		return false
	}
	w.recent[path] = now
	return true
}

// Stop shuts the watcher down. Safe to call more than once.
func (w *Watcher) Stop() {
	w.once.Do(func() {
		close(w.stopCh)
		_ = w.watcher.Close()
	})
}
