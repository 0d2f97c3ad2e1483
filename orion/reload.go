package orion

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// ShaderWatcher notifies about changes to shader source files. It never
// touches the gl context; the frame driver picks up the notification and
// rebuilds the program on its own thread.
type ShaderWatcher struct {
	watcher *fsnotify.Watcher
	files   map[string]bool
	changes chan struct{}
	done    chan struct{}
}

// WatchShaders starts watching the given files. The parent directories are
// watched instead of the files themselves, so that editors replacing the file
// on save are noticed too.
func WatchShaders(paths ...string) (*ShaderWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	w := &ShaderWatcher{
		watcher: watcher,
		files:   map[string]bool{},
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}

	dirs := map[string]bool{}

	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			_ = watcher.Close()
			return nil, fmt.Errorf("resolve path %q: %w", path, err)
		}

		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}

	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			_ = watcher.Close()
			return nil, fmt.Errorf("watch directory %q: %w", dir, err)
		}

		slog.Info("Watching shader directory", slog.String("path", dir))
	}

	go w.run()

	return w, nil
}

// Changes receives a value after any of the watched files was written.
// Multiple changes between two reads are coalesced.
func (w *ShaderWatcher) Changes() <-chan struct{} {
	return w.changes
}

func (w *ShaderWatcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}

func (w *ShaderWatcher) run() {
	defer close(w.done)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if !w.files[filepath.Clean(event.Name)] {
				continue
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			slog.Debug("Shader source changed",
				slog.String("path", event.Name),
				slog.String("op", event.Op.String()),
			)

			select {
			case w.changes <- struct{}{}:
			default:
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}

			slog.Warn("Shader watcher failed", slog.Any("err", err))
		}
	}
}
