package rag

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/sparrowbot/sparrowbot/pkg/log"
)

const reloadDebounce = 400 * time.Millisecond

// Watcher reloads the index when the knowledge file changes on disk. It
// watches the parent directory rather than the file itself because editors
// usually replace the file (write + rename) instead of writing in place.
// Implements srv.Service.
type Watcher struct {
	index *Index
	path  string

	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	timer    *time.Timer
	done     chan struct{}
	stopOnce sync.Once
}

func NewWatcher(index *Index, path string) *Watcher {
	return &Watcher{
		index: index,
		path:  path,
		done:  make(chan struct{}),
	}
}

func (w *Watcher) Start(ctx context.Context) error {
	abs, err := filepath.Abs(w.path)
	if err != nil {
		return fmt.Errorf("resolve knowledge path: %w", err)
	}
	w.path = abs

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create knowledge watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	w.mu.Lock()
	w.watcher = fw
	w.mu.Unlock()

	log.FromCtx(ctx).Info().Str("path", abs).Msg("watching knowledge file")
	go w.run(ctx)
	return nil
}

func (w *Watcher) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(ctx, ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if err != nil {
				log.FromCtx(ctx).Warn().Err(err).Msg("knowledge watcher error")
			}
		}
	}
}

func (w *Watcher) handleEvent(ctx context.Context, ev fsnotify.Event) {
	if filepath.Clean(ev.Name) != w.path {
		return
	}
	if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
		return
	}

	// Debounce bursts: editors fire several events per save.
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(reloadDebounce, func() { w.reload(ctx) })
}

func (w *Watcher) reload(ctx context.Context) {
	logger := log.FromCtx(ctx)
	n, err := w.index.LoadFile(ctx, w.path)
	if err != nil {
		logger.Warn().Err(err).Msg("knowledge reload failed, keeping previous index")
		return
	}
	logger.Info().Int("facts", n).Msg("knowledge base reloaded")
}

func (w *Watcher) Shutdown(ctx context.Context) error {
	w.stopOnce.Do(func() { close(w.done) })

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	if w.watcher != nil {
		return w.watcher.Close()
	}
	return nil
}
