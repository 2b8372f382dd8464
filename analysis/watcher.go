package analysis

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Watcher polls a decompiler output directory and regenerates the report
// whenever a matching source is added, changed or removed. Decompilers
// write their output one file at a time, so a report written too early is
// refreshed once the rest arrives.
type Watcher struct {
	provider     DirProvider
	path         string
	opts         Options
	stopCh       chan struct{}
	doneCh       chan struct{}
	pollInterval time.Duration
	modTimes     map[string]time.Time

	// OnOutcome, when set, receives the outcome of every run.
	OnOutcome func(Outcome)
}

func NewWatcher(provider DirProvider, path string, opts Options, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = time.Second
	}
	return &Watcher{
		provider:     provider,
		path:         path,
		opts:         opts,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
		pollInterval: interval,
		modTimes:     make(map[string]time.Time),
	}
}

func (w *Watcher) Start() {
	go w.run()
}

// Stop ends polling and waits for a run in progress to finish.
func (w *Watcher) Stop() {
	close(w.stopCh)
	<-w.doneCh
}

func (w *Watcher) run() {
	defer close(w.doneCh)
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.poll(true)

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.poll(false)
		}
	}
}

// poll reruns the analysis when the sources changed. The first poll always
// writes a report, even for an empty directory.
func (w *Watcher) poll(first bool) {
	if !w.scan() && !first {
		return
	}
	outcome := AnalyzeAndExport(context.Background(), w.provider, w.path, w.opts)
	if w.OnOutcome != nil {
		w.OnOutcome(outcome)
	}
}

// scan records modification times and reports whether the set of sources
// changed since the previous scan.
func (w *Watcher) scan() bool {
	pattern := patternOrDefault(w.provider.Pattern)
	currentFiles := make(map[string]bool)
	changed := false

	filepath.WalkDir(w.provider.Root, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if entry.IsDir() {
			if path != w.provider.Root && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !isUnitFile(path, pattern) {
			return nil
		}
		info, err := entry.Info()
		if err != nil {
			return nil
		}

		currentFiles[path] = true

		lastMod, known := w.modTimes[path]
		if !known || !info.ModTime().Equal(lastMod) {
			w.modTimes[path] = info.ModTime()
			changed = true
		}
		return nil
	})

	for path := range w.modTimes {
		if !currentFiles[path] {
			delete(w.modTimes, path)
			changed = true
		}
	}
	return changed
}
