package playback

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/go-drift/playback/pkg/errors"
)

// Watch re-resolves the config file at path whenever it changes and
// applies the result to the coordinator via [Coordinator.ApplyConfig],
// so cache tuning can be adjusted without restarting the app.
//
// The parent directory is watched rather than the file itself, because
// editors and deploy tooling typically replace config files atomically
// (write to temp, rename over). Resolve failures and watcher errors are
// reported through the errors package; the watch keeps running until
// ctx is cancelled.
func Watch(ctx context.Context, path string, c *Coordinator) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create config watcher: %w", err)
	}

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	base := filepath.Base(path)
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != base {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				cfg, err := Resolve(path)
				if err != nil {
					errors.Report(&errors.Error{
						Op:   "playback.Watch",
						Kind: errors.KindConfig,
						Err:  err,
					})
					continue
				}
				c.ApplyConfig(cfg)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				errors.Report(&errors.Error{
					Op:   "playback.Watch",
					Kind: errors.KindWatch,
					Err:  err,
				})
			}
		}
	}()

	return nil
}
