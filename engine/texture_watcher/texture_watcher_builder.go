package texture_watcher

import (
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// TextureWatcherBuilderOption is a function that configures a textureWatcher instance during construction.
type TextureWatcherBuilderOption func(*textureWatcher)

// WithDirectories is an option builder that sets the directories watched from construction.
//
// Parameters:
//   - dirs: the directories to watch
//
// Returns:
//   - TextureWatcherBuilderOption: a function that applies the directories option to a watcher
func WithDirectories(dirs ...string) TextureWatcherBuilderOption {
	return func(w *textureWatcher) {
		w.dirs = append(w.dirs, dirs...)
	}
}

// WithExtensions is an option builder that restricts invalidation to files with the given extensions.
// Extensions are matched case-insensitively and may be given with or without the leading dot.
// With no extensions every file counts.
//
// Parameters:
//   - exts: the file extensions, for example ".png"
//
// Returns:
//   - TextureWatcherBuilderOption: a function that applies the extensions option to a watcher
func WithExtensions(exts ...string) TextureWatcherBuilderOption {
	return func(w *textureWatcher) {
		w.extensions = w.extensions[:0]
		for _, ext := range exts {
			ext = strings.ToLower(strings.TrimSpace(ext))
			if ext == "" {
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			w.extensions = append(w.extensions, ext)
		}
	}
}

// WithDebounce is an option builder that sets the burst window. Zero invalidates on every event.
//
// Parameters:
//   - d: the debounce window
//
// Returns:
//   - TextureWatcherBuilderOption: a function that applies the debounce option to a watcher
func WithDebounce(d time.Duration) TextureWatcherBuilderOption {
	return func(w *textureWatcher) {
		w.debounce = d
	}
}

// WithWorkers is an option builder that sets the number of invalidation workers.
//
// Parameters:
//   - n: the worker count, values below 1 are ignored
//
// Returns:
//   - TextureWatcherBuilderOption: a function that applies the worker option to a watcher
func WithWorkers(n int) TextureWatcherBuilderOption {
	return func(w *textureWatcher) {
		if n > 0 {
			w.workers = n
		}
	}
}

// WithLogger is an option builder that sets the logger.
//
// Parameters:
//   - l: the logger
//
// Returns:
//   - TextureWatcherBuilderOption: a function that applies the logger option to a watcher
func WithLogger(l *log.Logger) TextureWatcherBuilderOption {
	return func(w *textureWatcher) {
		w.logger = l
	}
}
