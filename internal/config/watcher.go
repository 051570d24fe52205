package config

import (
	"errors"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/glint/internal/sched"
)

// ErrWatcherClosed is returned when operating on a closed watcher.
var ErrWatcherClosed = errors.New("config watcher closed")

// Watcher reloads a configuration file when it changes and delivers the
// parsed overrides to a handler. Editors typically replace config files
// via rename, so the watch is placed on the containing directory and
// filtered to the target path.
type Watcher struct {
	fsw      *fsnotify.Watcher
	path     string
	debounce *sched.Debouncer
	onChange func(Overrides)
	onError  func(error)
	done     chan struct{}
}

// WatchFile starts watching path. onChange receives the parsed
// overrides after each stable change; onError (optional) receives
// reload and watch failures.
func WatchFile(path string, onChange func(Overrides), onError func(error)) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &Watcher{
		fsw:      fsw,
		path:     absPath,
		onChange: onChange,
		onError:  onError,
		done:     make(chan struct{}),
	}
	w.debounce = sched.NewDebouncer(100*time.Millisecond, w.reload)

	go w.loop()
	return w, nil
}

// Path returns the watched file path.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops the watcher. Safe to call more than once.
func (w *Watcher) Close() error {
	select {
	case <-w.done:
		return nil
	default:
	}
	close(w.done)
	w.debounce.Cancel()
	return w.fsw.Close()
}

// loop filters fsnotify events down to the watched file and debounces
// rapid write bursts into a single reload.
func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Name != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.debounce.Trigger()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.reportError(err)
		}
	}
}

// reload parses the file and hands the overrides to the handler.
func (w *Watcher) reload() {
	select {
	case <-w.done:
		return
	default:
	}

	ov, err := Load(w.path)
	if err != nil {
		w.reportError(err)
		return
	}
	if w.onChange != nil {
		w.onChange(ov)
	}
}

func (w *Watcher) reportError(err error) {
	if w.onError != nil {
		w.onError(err)
	}
}
