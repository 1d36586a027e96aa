package scheduler

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/giygas/medtext-analyzer/logging"
	"github.com/giygas/medtext-analyzer/referenceparser"
)

// watchDebounce groups the burst of events a copy or an editor save produces
const watchDebounce = 2 * time.Second

var referenceFiles = map[string]bool{
	referenceparser.DrugsFile:        true,
	referenceparser.InteractionsFile: true,
	referenceparser.SideEffectsFile:  true,
}

// Watch reloads the tables shortly after a reference file in dir changes.
// It returns once the watch is in place; Stop ends it.
func (s *Scheduler) Watch(dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	go s.watchLoop(watcher)

	logging.Info("Watching reference directory", "dir", dir)
	return nil
}

func (s *Scheduler) watchLoop(watcher *fsnotify.Watcher) {
	defer watcher.Close()

	timer := time.NewTimer(s.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-s.stop:
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op == fsnotify.Chmod || !referenceFiles[filepath.Base(event.Name)] {
				continue
			}
			logging.Debug("Reference file changed", "file", event.Name, "op", event.Op.String())
			timer.Reset(s.debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logging.Warn("Reference watcher error", "error", err)

		case <-timer.C:
			if err := s.updateData(); err != nil {
				logging.Error("Failed to reload reference tables after change", "error", err)
			}
		}
	}
}
