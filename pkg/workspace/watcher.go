package workspace

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"regoplay/playground/pkg/config"
	"regoplay/playground/pkg/rego"
	"regoplay/playground/pkg/telemetry/health"
	"regoplay/playground/pkg/telemetry/logging"
	"regoplay/playground/pkg/telemetry/metrics"
)

// Watcher reformats policy files as they change. Events are collected until
// the workspace has been quiet for the debounce interval, then the changed
// files are handed to the runner in one run.
type Watcher struct {
	fsw      *fsnotify.Watcher
	runner   *Runner
	config   config.WorkspaceConfig
	debounce *Debouncer

	logger    *logging.Logger
	metrics   *metrics.Collector
	heartbeat *health.Heartbeat

	configFile string
	reload     ReloadFunc

	mu      sync.RWMutex
	running bool
	dirs    map[string]bool // walked directories
	files   map[string]bool // files named explicitly
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// ReloadFunc builds the service for a changed configuration file.
type ReloadFunc func() (*rego.Service, error)

// WithConfigReload watches the configuration file at path. When it changes,
// reload is called; on success the runner switches to the new service and
// every workspace file is formatted again. On failure the current service is
// kept and readiness reports the error until the next successful run.
func WithConfigReload(path string, reload ReloadFunc) WatcherOption {
	return func(w *Watcher) {
		w.configFile = filepath.Clean(path)
		w.reload = reload
	}
}

// WithHeartbeat makes the watcher beat hb after every run.
func WithHeartbeat(hb *health.Heartbeat) WatcherOption {
	return func(w *Watcher) {
		w.heartbeat = hb
	}
}

// WithWatchLogger sets the watcher logger.
func WithWatchLogger(logger *logging.Logger) WatcherOption {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// WithWatchMetrics sets the metrics collector for watch events.
func WithWatchMetrics(c *metrics.Collector) WatcherOption {
	return func(w *Watcher) {
		w.metrics = c
	}
}

// NewWatcher creates a watcher over cfg.Paths.
func NewWatcher(runner *Runner, cfg config.WorkspaceConfig, opts ...WatcherOption) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		fsw:       fsw,
		runner:    runner,
		config:    cfg,
		logger:    logging.Nop(),
		metrics:   metrics.Disabled(),
		heartbeat: &health.Heartbeat{},
		dirs:      make(map[string]bool),
		files:     make(map[string]bool),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Running reports whether Watch is processing events.
func (w *Watcher) Running() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

// Check is a health check that fails while the watcher is not running.
func (w *Watcher) Check() health.CheckFunc {
	return func(context.Context) error {
		if !w.Running() {
			return errors.New("watcher is not running")
		}
		return nil
	}
}

// Watch blocks until ctx is cancelled. The fsnotify watcher is closed when it
// returns, so a Watcher cannot be reused.
func (w *Watcher) Watch(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return errors.New("watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	w.debounce = NewDebouncer(w.config.Debounce, func(paths []string) {
		w.run(ctx, paths)
	})

	defer func() {
		w.debounce.Stop()
		_ = w.fsw.Close()

		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	}()

	for _, path := range w.config.Paths {
		if err := w.addPath(path); err != nil {
			return fmt.Errorf("failed to watch path: %w", err)
		}
	}
	if w.reload != nil {
		if err := w.fsw.Add(filepath.Dir(w.configFile)); err != nil {
			return fmt.Errorf("failed to watch configuration file: %w", err)
		}
	}

	w.logger.Info("watching for changes",
		"paths", w.config.Paths,
		"debounce_ms", w.config.Debounce.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watcher stopped")
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			w.handle(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			w.logger.Error("file watcher error", "error", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() && w.watched(filepath.Dir(event.Name)) {
			if !Excluded(filepath.Base(event.Name), w.config.Exclude) {
				if err := w.addDirectory(event.Name); err != nil {
					w.logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
				}
			}
			return
		}
	}

	if !w.accept(event) {
		return
	}

	w.logger.Debug("file event detected", "path", event.Name, "op", event.Op.String())
	w.metrics.RecordWatchEvent(opName(event.Op))
	w.debounce.Add(event.Name)
}

// accept reports whether event concerns a watched policy file.
func (w *Watcher) accept(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}

	path := filepath.Clean(event.Name)
	if w.isConfigFile(path) {
		return true
	}

	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.files[path] {
		return true
	}
	return w.dirs[filepath.Dir(path)] && IsPolicyFile(path) && !Excluded(filepath.Base(path), w.config.Exclude)
}

func (w *Watcher) watched(dir string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.dirs[filepath.Clean(dir)]
}

func (w *Watcher) isConfigFile(path string) bool {
	return w.reload != nil && filepath.Clean(path) == w.configFile
}

// run formats the files that still exist. A changed configuration file is
// reloaded first and then every workspace file is formatted.
func (w *Watcher) run(ctx context.Context, paths []string) {
	ctx = logging.NewRunID(ctx)

	var candidates []string
	for _, path := range paths {
		if !w.isConfigFile(path) {
			candidates = append(candidates, path)
			continue
		}
		all, err := w.reloadConfig(ctx)
		if err != nil {
			w.heartbeat.Beat(err)
			continue
		}
		candidates = all
		break
	}

	var files []string
	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			files = append(files, path)
		}
	}
	if len(files) == 0 {
		return
	}

	summary, err := w.runner.RunFiles(ctx, files)
	if err != nil {
		// Only cancellation stops a run.
		return
	}

	w.metrics.RecordWatchRun(len(files), summary.Duration)
	w.heartbeat.Beat(summary.Err())

	w.logger.InfoContext(ctx, "formatted changed files",
		"files", len(files),
		"changed", summary.Changed,
		"failed", summary.Failed,
	)
}

// reloadConfig switches the runner to the service built for the changed
// configuration file and returns every workspace file.
func (w *Watcher) reloadConfig(ctx context.Context) ([]string, error) {
	svc, err := w.reload()
	if err != nil {
		w.logger.WarnContext(ctx, "keeping current configuration", "path", w.configFile, "error", err)
		return nil, err
	}
	w.runner.SetService(svc)

	files, err := Discover(w.config.Paths, w.config.Exclude)
	if err != nil {
		w.logger.WarnContext(ctx, "failed to list workspace files", "error", err)
		return nil, err
	}
	w.logger.InfoContext(ctx, "configuration reloaded", "path", w.configFile, "files", len(files))
	return files, nil
}

// addPath watches a directory tree, or the directory of a single file.
// Watching the directory survives editors that replace files on save.
func (w *Watcher) addPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return w.addDirectory(path)
	}

	w.mu.Lock()
	w.files[filepath.Clean(path)] = true
	w.mu.Unlock()
	return w.fsw.Add(filepath.Dir(path))
}

// addDirectory adds a directory and all subdirectories to the watcher.
func (w *Watcher) addDirectory(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && Excluded(d.Name(), w.config.Exclude) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("failed to watch directory %q: %w", path, err)
		}

		w.mu.Lock()
		w.dirs[filepath.Clean(path)] = true
		w.mu.Unlock()

		w.logger.Debug("watching directory", "path", path)
		return nil
	})
}

func opName(op fsnotify.Op) string {
	switch {
	case op.Has(fsnotify.Create):
		return "create"
	case op.Has(fsnotify.Write):
		return "write"
	case op.Has(fsnotify.Remove):
		return "remove"
	case op.Has(fsnotify.Rename):
		return "rename"
	default:
		return "other"
	}
}

// Debouncer collects paths and hands them to a callback once no new path has
// arrived for the interval.
type Debouncer struct {
	interval time.Duration
	fire     func(paths []string)

	mu      sync.Mutex
	timer   *time.Timer
	pending map[string]bool
	stopped bool
}

// NewDebouncer creates a new debouncer.
func NewDebouncer(interval time.Duration, fire func(paths []string)) *Debouncer {
	return &Debouncer{
		interval: interval,
		fire:     fire,
		pending:  make(map[string]bool),
	}
}

// Add records path and restarts the quiet period.
func (d *Debouncer) Add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.pending[path] = true

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, d.flush)
}

func (d *Debouncer) flush() {
	d.mu.Lock()
	if d.stopped || len(d.pending) == 0 {
		d.mu.Unlock()
		return
	}
	paths := make([]string, 0, len(d.pending))
	for path := range d.pending {
		paths = append(paths, path)
	}
	d.pending = make(map[string]bool)
	d.mu.Unlock()

	sort.Strings(paths)
	d.fire(paths)
}

// Stop cancels any pending callback. Paths added afterwards are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
}
