// Package watch reports changes to the folder currently on screen so the
// listing can be refreshed without a manual reload.
package watch

import (
	"fmt"
	"sync"
	"time"

	"github.com/bep/debounce"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/LFroesch/shelf/internal/logger"
)

// DefaultDelay coalesces bursts such as a multi-file upload into one reload.
const DefaultDelay = 250 * time.Millisecond

// ChangedMsg is delivered when the watched folder's contents changed.
type ChangedMsg struct {
	Dir string
}

// ErrorMsg carries a watcher failure. The watcher keeps running.
type ErrorMsg struct {
	Err error
}

// Watcher follows a single folder at a time.
type Watcher struct {
	fw        *fsnotify.Watcher
	debounced func(func())
	events    chan tea.Msg
	done      chan struct{}
	closeOnce sync.Once

	mu  sync.Mutex
	dir string
}

// New starts a watcher that is not yet following any folder.
func New(delay time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if delay <= 0 {
		delay = DefaultDelay
	}

	w := &Watcher{
		fw:        fw,
		debounced: debounce.New(delay),
		events:    make(chan tea.Msg, 8),
		done:      make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Watch switches the watcher to dir. Watching the same folder twice is a no-op.
func (w *Watcher) Watch(dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if dir == w.dir {
		return nil
	}
	if w.dir != "" {
		// The old folder may already be gone; fsnotify drops it on its own.
		_ = w.fw.Remove(w.dir)
		w.dir = ""
	}
	if err := w.fw.Add(dir); err != nil {
		return fmt.Errorf("cannot watch %s: %w", dir, err)
	}
	w.dir = dir
	logger.Debug("watching %s", dir)
	return nil
}

// Dir returns the folder being watched.
func (w *Watcher) Dir() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dir
}

// Next waits for the next change. Re-issue it after every message it yields.
func (w *Watcher) Next() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-w.events:
			return msg
		case <-w.done:
			return nil
		}
	}
}

// Close stops the watcher. Pending Next commands return nil.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fw.Close()
	})
	return err
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
			if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename|fsnotify.Write) == 0 {
				continue
			}
			dir := w.Dir()
			w.debounced(func() {
				w.send(ChangedMsg{Dir: dir})
			})
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			logger.Warn("watcher error: %v", err)
			w.send(ErrorMsg{Err: err})
		}
	}
}

// send never blocks; a full queue already holds a pending reload.
func (w *Watcher) send(msg tea.Msg) {
	select {
	case w.events <- msg:
	default:
	}
}
