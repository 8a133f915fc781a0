package grove

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/verdant-labs/grove/pkg/log"
)

// CatalogWatcherConfig holds configuration options for the catalog watcher.
type CatalogWatcherConfig struct {
	// Path is the catalog file to watch.
	Path string

	// DebounceDelay is the delay to wait after a file change before
	// notifying, coalescing editor write bursts.
	// Default: 100 milliseconds
	DebounceDelay time.Duration
}

// DefaultCatalogWatcherConfig returns a CatalogWatcherConfig with sensible
// defaults for the given catalog path.
func DefaultCatalogWatcherConfig(path string) CatalogWatcherConfig {
	return CatalogWatcherConfig{
		Path:          path,
		DebounceDelay: 100 * time.Millisecond,
	}
}

// catalogWatcher monitors the catalog file during a session. A change does
// not touch the running entity set; it only raises a notification so the
// host can offer a restart.
type catalogWatcher struct {
	cfg    CatalogWatcherConfig
	logger log.Logger
	notify func(path string)

	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	debounce *time.Timer
}

func newCatalogWatcher(cfg CatalogWatcherConfig, logger log.Logger, notify func(path string)) *catalogWatcher {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = 100 * time.Millisecond
	}
	return &catalogWatcher{cfg: cfg, logger: logger, notify: notify}
}

// start launches the watch loop. Returns immediately.
func (w *catalogWatcher) start(ctx context.Context) {
	watchCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.wg.Add(1)
	go w.watchLoop(watchCtx)
}

// stop terminates the watch loop and waits for it to finish.
func (w *catalogWatcher) stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()

	w.mu.Lock()
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.mu.Unlock()
}

func (w *catalogWatcher) watchLoop(ctx context.Context) {
	defer w.wg.Done()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.logger.Error("catalog watcher: failed to create watcher", log.Err(err))
		return
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors replace files on save.
	dir := filepath.Dir(w.cfg.Path)
	if err := watcher.Add(dir); err != nil {
		w.logger.Error("catalog watcher: failed to watch directory",
			log.String("dir", dir),
			log.Err(err),
		)
		return
	}

	w.logger.Info("catalog watcher started", log.String("path", w.cfg.Path))

	base := filepath.Base(w.cfg.Path)
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.debounceNotify()

		case werr, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("catalog watcher: watcher error", log.Err(werr))
		}
	}
}

func (w *catalogWatcher) debounceNotify() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}

	w.debounce = time.AfterFunc(w.cfg.DebounceDelay, func() {
		w.logger.Info("catalog changed", log.String("path", w.cfg.Path))
		if w.notify != nil {
			w.notify(w.cfg.Path)
		}
	})
}
