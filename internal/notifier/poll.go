package notifier

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"showrunner/internal/logging"
	"showrunner/internal/playlist"
)

// Poll is a Notifier that lists the folder on a fixed interval and diffs
// the result against the previous listing.
type Poll struct {
	filter      playlist.Filter
	interval    time.Duration
	settleDelay time.Duration
}

// fileStamp is the part of a file's metadata that signals a change.
type fileStamp struct {
	size    int64
	modTime time.Time
}

// NewPoll creates a polling notifier. Non-positive durations use the defaults.
func NewPoll(filter playlist.Filter, interval, settleDelay time.Duration) *Poll {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if settleDelay <= 0 {
		settleDelay = DefaultSettleDelay
	}
	return &Poll{filter: filter, interval: interval, settleDelay: settleDelay}
}

// Subscribe takes an initial listing of folder and starts polling it.
func (n *Poll) Subscribe(ctx context.Context, folder string) (<-chan ChangeEvent, error) {
	last, err := n.scan(folder)
	if err != nil {
		return nil, err
	}
	logging.Info("Watching %s for changes (poll every %v, settle %v)", folder, n.interval, n.settleDelay)

	raw := make(chan ChangeEvent, 16)
	out := make(chan ChangeEvent, 1)

	go func() {
		defer close(raw)

		ticker := time.NewTicker(n.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				current, err := n.scan(folder)
				if err != nil {
					logging.Warn("Error detecting changes: %v", err)
					continue
				}
				for _, ce := range diff(folder, last, current) {
					logging.Debug("Detected %s in %s", ce.Op, ce.Path)
					select {
					case raw <- ce:
					case <-ctx.Done():
						return
					}
				}
				last = current
			}
		}
	}()

	go settle(ctx, n.settleDelay, raw, out)
	return out, nil
}

// scan lists the matching top-level files of folder.
func (n *Poll) scan(folder string) (map[string]fileStamp, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("failed to read presentation folder: %w", err)
	}

	stamps := make(map[string]fileStamp, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !n.filter.Match(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// Removed between ReadDir and Info; the next scan settles it.
			continue
		}
		stamps[entry.Name()] = fileStamp{size: info.Size(), modTime: info.ModTime()}
	}
	return stamps, nil
}

// diff returns one event per file that appeared, changed or disappeared.
func diff(folder string, before, after map[string]fileStamp) []ChangeEvent {
	var events []ChangeEvent
	for name, stamp := range after {
		prev, existed := before[name]
		switch {
		case !existed:
			events = append(events, ChangeEvent{Path: filepath.Join(folder, name), Op: OpCreated})
		case prev.size != stamp.size || !prev.modTime.Equal(stamp.modTime):
			events = append(events, ChangeEvent{Path: filepath.Join(folder, name), Op: OpModified})
		}
	}
	for name := range before {
		if _, ok := after[name]; !ok {
			events = append(events, ChangeEvent{Path: filepath.Join(folder, name), Op: OpRemoved})
		}
	}
	return events
}
