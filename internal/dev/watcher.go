package dev

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeType represents the type of file change.
type ChangeType int

const (
	ChangeScene ChangeType = iota
	ChangeConfig
	ChangeRemoved
)

// String returns the change type name.
func (t ChangeType) String() string {
	switch t {
	case ChangeScene:
		return "scene"
	case ChangeConfig:
		return "config"
	case ChangeRemoved:
		return "removed"
	}
	return fmt.Sprintf("ChangeType(%d)", int(t))
}

// Change represents a detected file change.
type Change struct {
	Path string
	Type ChangeType
}

// WatcherConfig configures the file watcher.
type WatcherConfig struct {
	// Paths are the files to watch. Their parent directories are watched so
	// that editors which save by renaming are still seen.
	Paths []string

	// Ignore patterns to skip (globs matched against the base name).
	Ignore []string

	// Debounce is the quiet period before a change is reported.
	Debounce time.Duration

	// Logger receives watch errors. Defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultIgnore contains default patterns to ignore.
var DefaultIgnore = []string{
	"*.tmp",
	"*.swp",
	"*~",
	".#*",
}

// Watcher monitors scene files for changes using fsnotify.
type Watcher struct {
	config   WatcherConfig
	onChange func(Change)
	mu       sync.Mutex
	running  bool
	stopCh   chan struct{}
	files    map[string]bool
}

// NewWatcher creates a new file watcher.
func NewWatcher(config WatcherConfig) *Watcher {
	if config.Debounce == 0 {
		config.Debounce = 100 * time.Millisecond
	}
	if len(config.Ignore) == 0 {
		config.Ignore = DefaultIgnore
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	files := make(map[string]bool, len(config.Paths))
	for _, p := range config.Paths {
		if abs, err := filepath.Abs(p); err == nil {
			files[abs] = true
		}
	}

	return &Watcher{
		config: config,
		files:  files,
	}
}

// OnChange sets the callback for file changes.
func (w *Watcher) OnChange(fn func(Change)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// Start watches until ctx is cancelled or Stop is called. Bursts of events
// for one file within the debounce window are reported once.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.stopCh = make(chan struct{})
	stopCh := w.stopCh
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	}()

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("dev: watcher: %w", err)
	}
	defer fsw.Close()

	dirs := make(map[string]bool)
	for file := range w.files {
		dir := filepath.Dir(file)
		if dirs[dir] {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("dev: watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}

	pending := make(map[string]ChangeType)
	timer := time.NewTimer(w.config.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stopCh:
			return nil
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.config.Logger.Warn("watch error", "error", err)
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			change, relevant := w.classify(event)
			if !relevant {
				continue
			}
			pending[change.Path] = change.Type
			timer.Reset(w.config.Debounce)
		case <-timer.C:
			w.flush(pending)
			clear(pending)
		}
	}
}

// classify maps an fsnotify event onto a Change for a watched file.
func (w *Watcher) classify(event fsnotify.Event) (Change, bool) {
	path, err := filepath.Abs(event.Name)
	if err != nil || !w.files[path] || w.shouldIgnore(path) {
		return Change{}, false
	}
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return Change{}, false
	}

	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		// Editors that save by rename recreate the file immediately.
		if _, err := os.Stat(path); err != nil {
			return Change{Path: path, Type: ChangeRemoved}, true
		}
	}
	return Change{Path: path, Type: classifyChange(path)}, true
}

func (w *Watcher) flush(pending map[string]ChangeType) {
	w.mu.Lock()
	callback := w.onChange
	w.mu.Unlock()

	if callback == nil {
		return
	}
	for path, typ := range pending {
		callback(Change{Path: path, Type: typ})
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		close(w.stopCh)
		w.running = false
	}
}

// shouldIgnore checks if a path should be ignored.
func (w *Watcher) shouldIgnore(fullPath string) bool {
	name := filepath.Base(fullPath)
	for _, pattern := range w.config.Ignore {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		if name == pattern {
			return true
		}
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}

// classifyChange determines the type of change based on the file name.
func classifyChange(path string) ChangeType {
	switch strings.ToLower(filepath.Base(path)) {
	case "svgkit.json", "svgkit.toml":
		return ChangeConfig
	}
	return ChangeScene
}

// IsRunning returns whether the watcher is running.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// Watch watches a single file and calls onChange after each debounced
// change. It blocks until ctx is cancelled.
func Watch(ctx context.Context, path string, debounce time.Duration, onChange func(Change)) error {
	w := NewWatcher(WatcherConfig{Paths: []string{path}, Debounce: debounce})
	w.OnChange(onChange)
	return w.Start(ctx)
}
