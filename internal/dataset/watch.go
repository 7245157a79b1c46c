package dataset

import (
	"os"
	"sort"
	"sync"
	"time"
)

// FileWatcher polls file modification times and reports changed paths once
// per scan.
type FileWatcher struct {
	Interval time.Duration

	paths    func() []string
	onChange func([]string) // called with every path changed since last scan
	stopCh   chan struct{}
	stopOnce sync.Once
	seen     map[string]time.Time
}

// NewFileWatcher creates a watcher. paths is re-evaluated on every scan so
// newly added set files are picked up.
func NewFileWatcher(paths func() []string, interval time.Duration, onChange func([]string)) *FileWatcher {
	return &FileWatcher{
		Interval: interval,
		paths:    paths,
		onChange: onChange,
		stopCh:   make(chan struct{}),
		seen:     make(map[string]time.Time),
	}
}

// Start primes the mtime cache and begins polling in a goroutine.
func (w *FileWatcher) Start() {
	w.scan()
	ticker := time.NewTicker(w.Interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if changed := w.scan(); len(changed) > 0 && w.onChange != nil {
					w.onChange(changed)
				}
			case <-w.stopCh:
				return
			}
		}
	}()
}

// Stop terminates the watcher. Safe to call more than once.
func (w *FileWatcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
}

// scan returns paths that appeared, disappeared or changed mtime.
func (w *FileWatcher) scan() []string {
	var changed []string
	current := make(map[string]time.Time)
	for _, p := range w.paths() {
		fi, err := os.Stat(p)
		if err != nil {
			continue
		}
		current[p] = fi.ModTime()
		if last, ok := w.seen[p]; !ok || !fi.ModTime().Equal(last) {
			changed = append(changed, p)
		}
	}
	for p := range w.seen {
		if _, ok := current[p]; !ok {
			changed = append(changed, p)
		}
	}
	w.seen = current
	sort.Strings(changed)
	return changed
}
