package playlist

import (
	"sync"
	"sync/atomic"
	"time"

	"showrunner/internal/logging"
)

// Store owns the current Playlist for one folder and swaps it atomically on
// reload. Readers always see a complete snapshot.
type Store struct {
	folder string
	filter Filter

	current  atomic.Pointer[Playlist]
	version  atomic.Uint64
	reloadMu sync.Mutex

	lastReload atomic.Value // time.Time
}

// NewStore creates a Store with an empty playlist. Call Refresh to read the folder.
func NewStore(folder string, filter Filter) *Store {
	s := &Store{folder: folder, filter: filter}
	empty := Playlist{folder: folder}
	s.current.Store(&empty)
	s.lastReload.Store(time.Time{})
	return s
}

// Folder returns the folder the store reads from.
func (s *Store) Folder() string { return s.folder }

// Filter returns the filter applied on reload.
func (s *Store) Filter() Filter { return s.filter }

// Snapshot returns the current playlist.
func (s *Store) Snapshot() Playlist {
	return *s.current.Load()
}

// Version increases by one every time a reload publishes a new snapshot.
func (s *Store) Version() uint64 {
	return s.version.Load()
}

// LastReload returns when the current snapshot was published.
func (s *Store) LastReload() time.Time {
	if t, ok := s.lastReload.Load().(time.Time); ok {
		return t
	}
	return time.Time{}
}

// Refresh rebuilds the playlist from disk and publishes it. On error the
// previous snapshot stays current. Concurrent calls are serialised so the
// last reload to finish always reflects the latest directory state.
func (s *Store) Refresh() (Playlist, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	pl, err := Reload(s.folder, s.filter)
	if err != nil {
		return s.Snapshot(), err
	}

	s.current.Store(&pl)
	s.version.Add(1)
	s.lastReload.Store(time.Now())
	logging.Info("Loaded %d presentations.", pl.Len())
	logging.Debug("Playlist: %s", pl)
	return pl, nil
}
