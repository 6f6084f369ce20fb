package theme

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	defaultDebounceDelay = 100 * time.Millisecond
	defaultThemesBuffer  = 4
	defaultErrorsBuffer  = 4
)

// Watcher monitors a theme file and emits the reloaded theme after each
// change. Editors typically replace files on save, so the parent directory
// is watched and events are filtered down to the theme file itself.
type Watcher struct {
	path string

	fsWatcher *fsnotify.Watcher
	themes    chan Theme
	errors    chan error
	done      chan struct{}
	closeOnce sync.Once

	delay time.Duration

	wg sync.WaitGroup
}

// Watch starts watching the theme file at path using the default debounce
// delay (100ms).
func Watch(path string) (*Watcher, error) {
	return WatchWithDebounceDelay(path, defaultDebounceDelay)
}

// WatchWithDebounceDelay starts watching with a configurable debounce delay.
func WatchWithDebounceDelay(path string, delay time.Duration) (*Watcher, error) {
	if path == "" {
		return nil, fmt.Errorf("path is required")
	}
	if delay <= 0 {
		delay = defaultDebounceDelay
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("abs theme path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:      abs,
		fsWatcher: fsw,
		themes:    make(chan Theme, defaultThemesBuffer),
		errors:    make(chan error, defaultErrorsBuffer),
		done:      make(chan struct{}),
		delay:     delay,
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.run()
	}()

	return w, nil
}

func (w *Watcher) run() {
	defer close(w.themes)
	defer close(w.errors)

	// Trailing-edge debounce: a save is typically a burst of events, and an
	// editor's truncate-then-write leaves the file half-written between
	// them. Each relevant event re-arms the timer; the reload runs only
	// once the burst has settled, reading the completed file.
	debounce := time.NewTimer(w.delay)
	if !debounce.Stop() {
		<-debounce.C
	}
	defer debounce.Stop()
	armed := false

	for {
		select {
		case <-w.done:
			return
		case evt, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(evt.Name) != w.path {
				continue
			}
			if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if armed && !debounce.Stop() {
				<-debounce.C
			}
			debounce.Reset(w.delay)
			armed = true
		case <-debounce.C:
			armed = false
			t, err := Load(w.path)
			if err != nil {
				w.emitError(err)
				continue
			}
			w.emitTheme(t)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.emitError(err)
		}
	}
}

// Themes returns a channel of reloaded themes.
func (w *Watcher) Themes() <-chan Theme { return w.themes }

// Errors returns a channel of watcher errors.
func (w *Watcher) Errors() <-chan error { return w.errors }

// Close stops the watcher and releases OS resources.
func (w *Watcher) Close() error {
	if w == nil {
		return nil
	}

	w.closeOnce.Do(func() {
		close(w.done)
	})

	// Closing the underlying watcher unblocks the run loop.
	err := w.fsWatcher.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) emitTheme(t Theme) {
	select {
	case w.themes <- t:
	default:
		// Best-effort: drop if consumer is stalled.
	}
}

func (w *Watcher) emitError(err error) {
	select {
	case w.errors <- err:
	default:
		// Best-effort: drop if consumer is stalled.
	}
}
