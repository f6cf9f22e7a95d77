package mixer

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/jhenstridge/go-inotify"
)

// WatchDocument reloads the document at path whenever it is rewritten,
// until ctx is done. The directory is watched so editors that replace
// the file by renaming are noticed too.
func (m *Mixer) WatchDocument(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	watcher, err := inotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not start inotify watcher: %w", err)
	}
	_, err = watcher.Watch(filepath.Dir(abs))
	if err != nil {
		_ = watcher.Close()
		return fmt.Errorf("could not watch %s: %w", abs, err)
	}
	go func() {
		<-ctx.Done()
		if err := watcher.Close(); err != nil {
			slog.Debug("could not close watcher", slog.String("module", "mixer"), slog.String("error", err.Error()))
		}
	}()

	for ev := range watcher.Event {
		if filepath.Clean(ev.Name) != abs || ev.Mask&(inotify.IN_CLOSE_WRITE|inotify.IN_MOVED_TO) == 0 {
			continue
		}
		slog.Debug("reloading document due to inotify event", slog.String("module", "mixer"), slog.String("file", abs))
		time.Sleep(100 * time.Millisecond)

		doc, err := ReadDocument(abs)
		if err != nil {
			slog.Error("could not reload document", slog.String("module", "mixer"), slog.String("error", err.Error()))
			continue
		}
		var restoreErr error
		if err := m.Do(ctx, func() { restoreErr = Reload(m.Theatre, doc) }); err != nil {
			return err
		}
		if restoreErr != nil {
			slog.Error("could not reload document", slog.String("module", "mixer"), slog.String("error", restoreErr.Error()))
		}
	}
	return ctx.Err()
}
