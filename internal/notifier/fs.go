package notifier

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"showrunner/internal/logging"
	"showrunner/internal/playlist"

	"github.com/fsnotify/fsnotify"
)

// FS is a Notifier backed by fsnotify.
type FS struct {
	filter      playlist.Filter
	settleDelay time.Duration
}

// NewFS creates an fsnotify notifier. A non-positive settle delay uses
// DefaultSettleDelay.
func NewFS(filter playlist.Filter, settleDelay time.Duration) *FS {
	if settleDelay <= 0 {
		settleDelay = DefaultSettleDelay
	}
	return &FS{filter: filter, settleDelay: settleDelay}
}

// Subscribe starts watching folder.
func (n *FS) Subscribe(ctx context.Context, folder string) (<-chan ChangeEvent, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := w.Add(folder); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", folder, err)
	}
	logging.Info("Watching %s for changes (fsnotify, settle %v)", folder, n.settleDelay)

	raw := make(chan ChangeEvent, 16)
	out := make(chan ChangeEvent, 1)

	go func() {
		defer close(raw)
		defer func() {
			if err := w.Close(); err != nil {
				logging.Warn("failed to close file watcher: %v", err)
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				ce, relevant := n.translate(ev)
				if !relevant {
					continue
				}
				logging.Debug("Detected %s in %s", ce.Op, ce.Path)
				select {
				case raw <- ce:
				case <-ctx.Done():
					return
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logging.Warn("File watcher error: %v", err)
			}
		}
	}()

	go settle(ctx, n.settleDelay, raw, out)
	return out, nil
}

// translate maps an fsnotify event to a ChangeEvent, dropping files the
// playlist would ignore and permission-only changes.
func (n *FS) translate(ev fsnotify.Event) (ChangeEvent, bool) {
	if !n.filter.Match(filepath.Base(ev.Name)) {
		return ChangeEvent{}, false
	}

	var op Op
	switch {
	case ev.Has(fsnotify.Create):
		op = OpCreated
	case ev.Has(fsnotify.Write):
		op = OpModified
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		op = OpRemoved
	default:
		return ChangeEvent{}, false
	}
	return ChangeEvent{Path: ev.Name, Op: op}, true
}
