package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Editors save with rapid write bursts or rename-replace, so the parent
// directories are watched and events are debounced until a file settles.
const watchSettle = 500 * time.Millisecond

// watchAndSync runs the pipeline once, then re-runs it whenever the
// schedule or the report file changes. Runs never overlap; events
// arriving during a run coalesce into the next one. Returns on Ctrl-C.
func watchAndSync() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	targets := make(map[string]bool, 2)
	for _, p := range []string{syncSchedule, syncReport} {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		targets[abs] = true
		if err := watcher.Add(filepath.Dir(abs)); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runOnce := func() {
		code, err := syncOnce()
		switch {
		case err != nil:
			errorln("Sync failed: %v", err)
		case code != 0:
			logger.Warn("sync finished with issues", zap.Int("exit_code", code))
		}
	}

	runOnce()
	infoln("Watching for changes (Ctrl-C to stop)")

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			infoln("Watch stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !targets[abs] {
				continue
			}
			logger.Debug("change detected", zap.String("path", abs), zap.String("op", event.Op.String()))
			pending[abs] = time.Now()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error", zap.Error(err))

		case <-ticker.C:
			if len(pending) == 0 {
				continue
			}
			now := time.Now()
			settled := false
			for path, at := range pending {
				if now.Sub(at) >= watchSettle {
					delete(pending, path)
					settled = true
				}
			}
			if settled {
				runOnce()
			}
		}
	}
}
