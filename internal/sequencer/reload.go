package sequencer

import (
	"context"
	"time"

	"showrunner/internal/logging"
	"showrunner/internal/notifier"
	"showrunner/internal/playlist"
)

// Reload rebuilds the playlist and wakes an idle sequencer. It never
// touches the running presentation: the new snapshot is picked up at the
// next transition boundary. Safe to call from any goroutine.
func (s *Sequencer) Reload() (playlist.Playlist, error) {
	start := time.Now()
	pl, err := s.store.Refresh()
	s.obs.ObserveReload(pl.Len(), time.Since(start), err)
	if err != nil {
		logging.Error("Failed to reload playlist from %s: %v", s.store.Folder(), err)
		return pl, err
	}

	s.reconcile(pl)

	select {
	case s.reloaded <- struct{}{}:
	default:
	}
	return pl, nil
}

// reconcile reports how a new snapshot relates to the presentation in progress.
func (s *Sequencer) reconcile(pl playlist.Playlist) {
	s.mu.RLock()
	state := s.state
	index := s.index
	current := s.current
	s.mu.RUnlock()

	if state != StatePresenting && state != StateOpening && state != StateAwaitingConfirmation {
		return
	}

	switch at := pl.IndexOf(current.Path); {
	case at < 0:
		logging.Warn("Presentation %s was removed from the folder; it keeps playing until it ends", current.Title)
	case at != index:
		logging.Debug("Presentation %s moved from position %d to %d", current.Title, index, at)
	}

	if index+1 >= pl.Len() {
		logging.Debug("No presentation after position %d in the new playlist", index)
	}
}

// WatchChanges reloads the playlist for every event until events is closed
// or ctx is done. Run it on its own goroutine.
func (s *Sequencer) WatchChanges(ctx context.Context, events <-chan notifier.ChangeEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			s.obs.ObserveChange(ev.Op)
			logging.Info("Detected modification in %s", ev.Path)
			logging.Debug("Change event: %s", ev)
			// Reload logs its own failures; the previous snapshot stays current.
			_, _ = s.Reload()
		}
	}
}
