package check

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/cheatsheets/internal/apperr"
)

const debounce = 200 * time.Millisecond

// EventCallback is called after a changed file has been re-checked.
// kind is one of "created", "updated", "deleted".
type EventCallback func(kind, slug string, issues []Issue)

// Watch re-checks documents as they change until ctx is cancelled. Events
// are collected for a short quiet period and each touched file is re-read
// once; files whose checksum is unchanged are skipped. Call Run first to
// seed the known checksums.
func (c *Checker) Watch(ctx context.Context, cb EventCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	root := c.store.Root()
	if err := w.Add(root); err != nil {
		return err
	}
	c.logger.Info("watcher: started", slog.String("root", root))

	pending := make(map[string]struct{})
	var timer *time.Timer
	var timerCh <-chan time.Time

	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(debounce)
			timerCh = timer.C
		} else {
			timer.Reset(debounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			c.logger.Info("watcher: stopped")
			return nil

		case <-timerCh:
			for slug := range pending {
				c.recheck(slug, cb)
			}
			clear(pending)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Dir(ev.Name) != root || ev.Op == fsnotify.Chmod {
				continue
			}
			slug, ok := c.store.SlugOf(filepath.Base(ev.Name))
			if !ok {
				continue
			}
			pending[slug] = struct{}{}
			schedule()

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			c.logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

func (c *Checker) recheck(slug string, cb EventCallback) {
	f, err := c.store.Read(slug)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			if c.forget(slug) {
				c.logger.Debug("watcher: removed", slog.String("slug", slug))
				if cb != nil {
					cb("deleted", slug, nil)
				}
			}
			return
		}
		c.logger.Warn("watcher: read failed", slog.String("slug", slug), slog.String("error", err.Error()))
		return
	}

	c.mu.Lock()
	_, known := c.sums[slug]
	c.mu.Unlock()
	if !c.remember(slug, f.Checksum) {
		return
	}

	kind := "updated"
	if !known {
		kind = "created"
	}
	issues := Document(f)
	c.logger.Debug("watcher: checked", slog.String("slug", slug), slog.String("op", kind), slog.Int("issues", len(issues)))
	if cb != nil {
		cb(kind, slug, issues)
	}
}
