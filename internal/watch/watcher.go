package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Op describes what happened to a watched file.
type Op int

const (
	OpWrite Op = iota
	OpCreate
	OpRemove
	OpRename
)

// String returns the operation name.
func (op Op) String() string {
	switch op {
	case OpWrite:
		return "write"
	case OpCreate:
		return "create"
	case OpRemove:
		return "remove"
	case OpRename:
		return "rename"
	default:
		return "unknown"
	}
}

// Change is a file change delivered after debouncing. When a file changed
// several times in one window only the last operation is reported.
type Change struct {
	Path string
	Op   Op
}

// Config configures a Watcher.
type Config struct {
	// Files are the files to watch.
	Files []string

	// Debounce is the delay before changes are reported.
	// Default: 100ms
	Debounce time.Duration

	// Logger receives watcher errors. Default: slog.Default().
	Logger *slog.Logger
}

// Watcher monitors files for changes.
type Watcher struct {
	config   Config
	files    map[string]struct{}
	fs       *fsnotify.Watcher
	onChange func([]Change)

	mu       sync.Mutex
	running  bool
	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewWatcher creates a watcher and registers the watched directories. Changes
// made after NewWatcher returns are reported once Run is called.
func NewWatcher(config Config) (*Watcher, error) {
	if config.Debounce <= 0 {
		config.Debounce = 100 * time.Millisecond
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		config: config,
		files:  make(map[string]struct{}, len(config.Files)),
		fs:     fsw,
		stopCh: make(chan struct{}),
	}

	dirs := make(map[string]struct{})
	for _, f := range config.Files {
		abs, err := filepath.Abs(f)
		if err != nil {
			fsw.Close()
			return nil, err
		}
		w.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

// OnChange sets the callback for file changes. It is called from Run's
// goroutine.
func (w *Watcher) OnChange(fn func([]Change)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// Run delivers changes until ctx is done or Stop is called. Pending changes
// are flushed before it returns.
func (w *Watcher) Run(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	}()

	pending := make(map[string]Op)
	var timer *time.Timer
	var timerC <-chan time.Time

	flush := func() {
		if timer != nil {
			timer.Stop()
			timer, timerC = nil, nil
		}
		if len(pending) == 0 {
			return
		}
		changes := make([]Change, 0, len(pending))
		for p, op := range pending {
			changes = append(changes, Change{Path: p, Op: op})
		}
		sort.Slice(changes, func(i, j int) bool { return changes[i].Path < changes[j].Path })
		clear(pending)

		w.mu.Lock()
		callback := w.onChange
		w.mu.Unlock()
		if callback != nil {
			callback(changes)
		}
	}

	for {
		select {
		case <-ctx.Done():
			flush()
			w.close()
			return ctx.Err()
		case <-w.stopCh:
			flush()
			return nil
		case event, ok := <-w.fs.Events:
			if !ok {
				flush()
				return nil
			}
			path, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			if _, watched := w.files[path]; !watched {
				continue
			}
			pending[path] = convertOp(event.Op)
			if timer == nil {
				timer = time.NewTimer(w.config.Debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.config.Debounce)
			}
		case <-timerC:
			timer, timerC = nil, nil
			flush()
		case err, ok := <-w.fs.Errors:
			if !ok {
				flush()
				return nil
			}
			w.config.Logger.Warn("file watcher error", "error", err)
		}
	}
}

// Stop stops the watcher and releases its resources.
func (w *Watcher) Stop() {
	w.close()
}

// IsRunning reports whether Run is active.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *Watcher) close() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.fs.Close()
	})
}

func convertOp(op fsnotify.Op) Op {
	switch {
	case op.Has(fsnotify.Remove):
		return OpRemove
	case op.Has(fsnotify.Rename):
		return OpRename
	case op.Has(fsnotify.Create):
		return OpCreate
	default:
		return OpWrite
	}
}
