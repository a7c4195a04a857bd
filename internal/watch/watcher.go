// SPDX-License-Identifier: MPL-2.0

// Package watch reports debounced file changes under a set of roots.
//
// Roots are files or directories; directories are watched recursively. Events
// within the debounce window are coalesced so the callback fires once with
// the full set of changed paths.
package watch

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/kpbaks/bacon/internal/ignore"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 200 * time.Millisecond

// ErrNoRoots is returned by New when none of the roots exist.
var ErrNoRoots = errors.New("watch: nothing to watch")

// defaultIgnores are always excluded, whatever the mission's ignore set says.
var defaultIgnores = []string{
	"**/.git/**",
	"**/target/**",
	"**/*.swp",
	"**/*.swo",
	"**/*~",
	"**/.DS_Store",
}

type (
	// Config holds the parameters for a Watcher.
	Config struct {
		// Roots are absolute files or directories to watch. Missing roots are
		// skipped with a warning.
		Roots []string

		// Ignore excludes absolute paths on top of the default ignores. May be nil.
		Ignore ignore.Predicate

		// Debounce is how long the tree must stay quiet before OnChange runs;
		// defaultDebounce when not positive.
		Debounce time.Duration

		// OnChange receives the sorted, deduplicated absolute paths that
		// changed. A nil callback is a no-op.
		OnChange func(ctx context.Context, changed []string) error

		Logger *log.Logger
	}

	// Watcher monitors the roots and fires a debounced callback on changes.
	// Run must be called exactly once.
	Watcher struct {
		cfg      Config
		fsw      *fsnotify.Watcher
		logger   *log.Logger
		debounce time.Duration
		dirs     []string
		files    []string
		started  atomic.Bool
	}
)

// New registers every non-ignored directory under the roots.
func New(cfg Config) (*Watcher, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	w := &Watcher{cfg: cfg, logger: logger, debounce: debounce}
	for _, root := range cfg.Roots {
		info, err := os.Stat(root)
		if err != nil {
			logger.Warn("not watching missing path", "path", root)
			continue
		}
		if info.IsDir() {
			w.dirs = append(w.dirs, filepath.Clean(root))
		} else {
			w.files = append(w.files, filepath.Clean(root))
		}
	}
	if len(w.dirs) == 0 && len(w.files) == 0 {
		return nil, ErrNoRoots
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}
	w.fsw = fsw

	if err := w.register(); err != nil {
		if closeErr := fsw.Close(); closeErr != nil {
			logger.Warn("close watcher after init failure", "err", closeErr)
		}
		return nil, err
	}
	return w, nil
}

// Run blocks until ctx is cancelled, dispatching debounced callbacks. It
// returns nil on cancellation and an error when the watcher breaks.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return errors.New("watch: watcher already started")
	}

	var (
		mu      sync.Mutex
		pending = make(map[string]struct{})
		timer   *time.Timer
		running atomic.Bool
	)

	// fire may run after cancellation through time.AfterFunc, and skips when
	// the previous callback is still running.
	fire := func() {
		if ctx.Err() != nil {
			return
		}
		if !running.CompareAndSwap(false, true) {
			w.logger.Debug("previous run still in progress, retrying later")
			mu.Lock()
			if timer != nil {
				timer.Reset(w.debounce)
			}
			mu.Unlock()
			return
		}
		defer running.Store(false)

		mu.Lock()
		if len(pending) == 0 {
			mu.Unlock()
			return
		}
		changed := slices.Sorted(maps.Keys(pending))
		clear(pending)
		mu.Unlock()

		if w.cfg.OnChange != nil {
			if err := w.cfg.OnChange(ctx, changed); err != nil {
				w.logger.Error("change handler failed", "err", err)
			}
		}
	}

	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
		if err := w.fsw.Close(); err != nil {
			w.logger.Warn("close fsnotify", "err", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watch: event stream closed")
			}
			if !w.Relevant(evt.Name) {
				continue
			}
			if evt.Has(fsnotify.Create) {
				w.maybeAddDir(evt.Name)
			}
			w.logger.Debug("change", "op", evt.Op.String(), "path", evt.Name)

			mu.Lock()
			pending[evt.Name] = struct{}{}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, fire)
			} else {
				timer.Reset(w.debounce)
			}
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watch: error stream closed")
			}
			if exhausted(err) {
				return fmt.Errorf("watch: watcher out of resources: %w", err)
			}
			w.logger.Warn("fsnotify error", "err", err)
		}
	}
}

// exhausted reports whether err leaves the OS watcher unable to deliver
// further events.
func exhausted(err error) bool {
	return slices.ContainsFunc(exhaustedErrnos, func(errno syscall.Errno) bool {
		return errors.Is(err, errno)
	})
}

// Relevant reports whether a change to the absolute path should fire the callback.
func (w *Watcher) Relevant(path string) bool {
	path = filepath.Clean(path)
	rel, ok := w.relToRoot(path)
	if !ok || IgnoredByDefault(rel) {
		return false
	}
	return w.cfg.Ignore == nil || !w.cfg.Ignore.Excludes(path)
}

// relToRoot returns path relative to the innermost root holding it. A file
// root is reported by its base name.
func (w *Watcher) relToRoot(path string) (string, bool) {
	if slices.Contains(w.files, path) {
		return filepath.Base(path), true
	}
	var root string
	for _, dir := range w.dirs {
		if len(dir) > len(root) && (path == dir || strings.HasPrefix(path, strings.TrimSuffix(dir, string(filepath.Separator))+string(filepath.Separator))) {
			root = dir
		}
	}
	if root == "" {
		return "", false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", false
	}
	return rel, true
}

// Dirs returns the directories registered with fsnotify.
func (w *Watcher) Dirs() []string {
	return w.fsw.WatchList()
}

// register adds every directory root recursively, and the parent directory of
// every file root.
func (w *Watcher) register() error {
	for _, file := range w.files {
		if err := w.add(filepath.Dir(file)); err != nil {
			return err
		}
	}
	for _, root := range w.dirs {
		walkErr := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				w.logger.Warn("skipping inaccessible path", "path", path, "err", err)
				return nil //nolint:nilerr // inaccessible paths are skipped
			}
			if !d.IsDir() {
				return nil
			}
			if path != root && !w.dirRelevant(path) {
				return filepath.SkipDir
			}
			return w.add(path)
		})
		if walkErr != nil {
			return fmt.Errorf("watch: walk %s: %w", root, walkErr)
		}
	}
	return nil
}

func (w *Watcher) add(dir string) error {
	if slices.Contains(w.fsw.WatchList(), dir) {
		return nil
	}
	if err := w.fsw.Add(dir); err != nil {
		return fmt.Errorf("watch: add directory %q: %w", dir, err)
	}
	return nil
}

// maybeAddDir extends a recursive watch to a directory created after startup.
func (w *Watcher) maybeAddDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() || !w.dirRelevant(path) {
		return
	}
	if err := w.add(path); err != nil {
		w.logger.Warn("add new directory", "path", path, "err", err)
	}
}

func (w *Watcher) dirRelevant(dir string) bool {
	rel, ok := w.relToRoot(filepath.Clean(dir))
	return ok && w.Relevant(dir) && !IgnoredByDefault(rel+"/")
}

// IgnoredByDefault reports whether rel, a path relative to a watch root,
// matches a built-in ignore pattern. Directories above the root never count,
// so a package checked out under a "target" directory is still watched.
func IgnoredByDefault(rel string) bool {
	normalized := filepath.ToSlash(rel)
	for _, pat := range defaultIgnores {
		if matched, err := doublestar.Match(pat, normalized); err == nil && matched {
			return true
		}
	}
	return false
}

// DefaultIgnores returns a copy of the built-in ignore patterns.
func DefaultIgnores() []string {
	return slices.Clone(defaultIgnores)
}
