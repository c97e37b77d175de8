package commands

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 100 * time.Millisecond

// watch recompiles files as they change until ctx is cancelled or the
// process is interrupted. Directories are watched rather than files so that
// editors replacing a file on save are still seen.
func (c *compiler) watch(ctx context.Context, files []string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	tracked := make(map[string]string, len(files))
	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", f, err)
		}
		tracked[abs] = f
		dir := filepath.Dir(abs)
		if !dirs[dir] {
			if err := watcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
			dirs[dir] = true
		}
	}

	c.cmdCtx.Renderer.Muted(fmt.Sprintf("Watching %d file(s) for changes...", len(files)))

	b := newBatcher(files, watchDebounce, func(changed []string) {
		if ctx.Err() != nil {
			return
		}
		c.cmdCtx.Logger.Debug("files changed, recompiling", "files", changed)
		c.compileFiles(ctx, changed)
	})
	defer b.stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			name, ok := tracked[filepath.Clean(event.Name)]
			if !ok {
				continue
			}

			b.add(name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.cmdCtx.Logger.Error("watcher error", "error", err)
		}
	}
}

// batcher collects changed files and hands them to run once no change has
// arrived for delay. Batches run one at a time, in argument order.
type batcher struct {
	files []string
	delay time.Duration
	run   func(changed []string)

	mu      sync.Mutex
	pending map[string]bool
	timer   *time.Timer

	running sync.Mutex
}

func newBatcher(files []string, delay time.Duration, run func([]string)) *batcher {
	return &batcher{
		files:   files,
		delay:   delay,
		run:     run,
		pending: make(map[string]bool),
	}
}

// add marks file as changed and restarts the debounce timer.
func (b *batcher) add(file string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.pending[file] = true
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.delay, b.flush)
}

// flush runs the pending files, waiting for an earlier batch to finish.
func (b *batcher) flush() {
	b.running.Lock()
	defer b.running.Unlock()

	b.mu.Lock()
	changed := make([]string, 0, len(b.pending))
	for _, f := range b.files {
		if b.pending[f] {
			changed = append(changed, f)
		}
	}
	b.pending = make(map[string]bool)
	b.mu.Unlock()

	if len(changed) > 0 {
		b.run(changed)
	}
}

// stop cancels the timer and waits for a running batch.
func (b *batcher) stop() {
	b.mu.Lock()
	if b.timer != nil {
		b.timer.Stop()
	}
	b.mu.Unlock()

	b.running.Lock()
	defer b.running.Unlock()
}
