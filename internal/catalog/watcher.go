package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/orderlink/orderlink-backend/pkg/logger"
)

const watchDebounce = 500 * time.Millisecond

// Watcher reloads the catalog when the local workbook file changes. Editors
// typically replace the file rather than writing in place, so the watch is
// on the containing directory and events are debounced.
type Watcher struct {
	path    string
	service *Service
	logg    *logger.Logger
}

// NewWatcher builds a watcher for the given workbook path.
func NewWatcher(path string, service *Service, logg *logger.Logger) (*Watcher, error) {
	if path == "" {
		return nil, fmt.Errorf("catalog path required")
	}
	if service == nil {
		return nil, fmt.Errorf("catalog service required")
	}
	return &Watcher{path: path, service: service, logg: logg}, nil
}

// Run watches the workbook until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	target, err := filepath.Abs(w.path)
	if err != nil {
		return err
	}

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || name != target {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
				timerC = timer.C
			} else {
				timer.Reset(watchDebounce)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			if _, err := w.service.Reload(ctx); err != nil {
				if w.logg != nil {
					w.logg.Error(ctx, "catalog.watch.reload_failed", err)
				}
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if w.logg != nil {
				w.logg.Error(ctx, "catalog.watch.error", err)
			}
		}
	}
}
