// package texture_watcher invalidates cached material bind groups when texture files change on disk.
// Changes inside a debounce window collapse into a single invalidation, and invalidations run on a worker pool so
// the filesystem event loop never waits on the cache lock.
package texture_watcher

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-bindings/engine/logger"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// ErrClosed is returned by operations on a watcher that has been closed.
var ErrClosed = errors.New("texture watcher closed")

// DefaultDebounce is the burst window used when no debounce option is given.
const DefaultDebounce = 250 * time.Millisecond

// Invalidator is anything holding state derived from texture files, typically material_bind_groups.MaterialBindGroups.
type Invalidator interface {
	Clear()
}

// TextureWatcher defines the interface for watching texture directories.
type TextureWatcher interface {
	// Watch adds a directory to the watch list. Subdirectories are not watched.
	//
	// Parameters:
	//   - dir: the directory to watch
	//
	// Returns:
	//   - error: an error if the directory cannot be watched or the watcher is closed
	Watch(dir string) error

	// Start begins processing filesystem events. Calling Start more than once has no effect.
	//
	// Returns:
	//   - error: ErrClosed if the watcher has been closed
	Start() error

	// Close stops event processing, cancels any pending invalidation and releases the OS watch handles.
	// Calling Close more than once is safe.
	//
	// Returns:
	//   - error: an error from the underlying watcher, if any
	Close() error

	// Invalidations reports how many times the Invalidator has been cleared.
	//
	// Returns:
	//   - uint64: the invalidation count
	Invalidations() uint64

	// Directories lists the watched directories.
	//
	// Returns:
	//   - []string: the watched directories
	Directories() []string
}

type textureWatcher struct {
	target     Invalidator
	watcher    *fsnotify.Watcher
	pool       worker.DynamicWorkerPool
	newPool    func(workers int) worker.DynamicWorkerPool
	workers    int
	logger     *log.Logger
	extensions []string
	debounce   time.Duration

	mu      sync.Mutex
	dirs    []string
	timer   *time.Timer
	started bool
	closed  bool
	taskID  int

	invalidations atomic.Uint64
	done          chan struct{}
	wg            sync.WaitGroup
}

var _ TextureWatcher = &textureWatcher{}

// New creates a TextureWatcher that clears target whenever a matching texture file is created, written, removed or
// renamed in a watched directory.
//
// Parameters:
//   - target: the cache to invalidate
//   - options: variadic list of TextureWatcherBuilderOption functions to configure the watcher
//
// Returns:
//   - TextureWatcher: the watcher, not yet started
//   - error: an error if target is nil or the OS watcher cannot be created
func New(target Invalidator, options ...TextureWatcherBuilderOption) (TextureWatcher, error) {
	if target == nil {
		return nil, errors.New("texture watcher requires an invalidation target")
	}

	w := &textureWatcher{
		target:   target,
		newPool:  newWorkerPool,
		workers:  1,
		debounce: DefaultDebounce,
		done:     make(chan struct{}),
	}
	for _, opt := range options {
		opt(w)
	}
	if w.logger == nil {
		w.logger = logger.Default()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create filesystem watcher: %w", err)
	}
	w.watcher = fw
	w.pool = w.newPool(w.workers)

	for _, dir := range w.dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			w.pool.Stop()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	return w, nil
}

func newWorkerPool(workers int) worker.DynamicWorkerPool {
	return worker.NewDynamicWorkerPool(workers, 256, 1*time.Second)
}

func (w *textureWatcher) Watch(dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrClosed
	}
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	if !slices.Contains(w.dirs, dir) {
		w.dirs = append(w.dirs, dir)
	}
	w.logger.Debug("watching texture directory", "dir", dir)
	return nil
}

func (w *textureWatcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrClosed
	}
	if w.started {
		return nil
	}
	w.started = true
	w.wg.Add(1)
	go w.run()
	return nil
}

func (w *textureWatcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	close(w.done)
	w.mu.Unlock()

	err := w.watcher.Close()
	w.wg.Wait()
	w.pool.Stop()
	return err
}

func (w *textureWatcher) Invalidations() uint64 {
	return w.invalidations.Load()
}

func (w *textureWatcher) Directories() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Clone(w.dirs)
}

func (w *textureWatcher) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("texture changed", "path", event.Name, "op", event.Op.String())
			w.schedule()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("texture watcher error", "err", err)
		}
	}
}

func (w *textureWatcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	if len(w.extensions) == 0 {
		return true
	}
	return slices.Contains(w.extensions, strings.ToLower(filepath.Ext(event.Name)))
}

// schedule arms or re-arms the debounce timer; the invalidation fires once the burst has been quiet for the window.
func (w *textureWatcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.debounce <= 0 {
		w.submitLocked()
		return
	}
	if w.timer != nil {
		w.timer.Reset(w.debounce)
		return
	}
	w.timer = time.AfterFunc(w.debounce, w.fire)
}

func (w *textureWatcher) fire() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.timer = nil
	if w.closed {
		return
	}
	w.submitLocked()
}

func (w *textureWatcher) submitLocked() {
	id := w.taskID
	w.taskID++
	w.pool.SubmitTask(worker.Task{
		ID: id,
		Do: func() (any, error) {
			w.target.Clear()
			n := w.invalidations.Add(1)
			w.logger.Info("texture change invalidated material bind groups", "invalidations", n)
			return nil, nil
		},
	})
}
