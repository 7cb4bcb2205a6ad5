package sequencer

import (
	"time"

	"showrunner/internal/playlist"
)

// Status is a point-in-time view of the sequencer, safe to serialise.
type Status struct {
	State      string             `json:"state"`
	Index      int                `json:"index"`
	Current    *playlist.Artifact `json:"current,omitempty"`
	Slide      int                `json:"slide,omitempty"`
	SlideCount int                `json:"slideCount,omitempty"`
	Played     int                `json:"played"`
	Since      *time.Time         `json:"presentingSince,omitempty"`
	Uptime     string             `json:"uptime"`

	Halted     bool   `json:"halted"`
	HaltReason string `json:"haltReason,omitempty"`
	Error      string `json:"error,omitempty"`

	Folder          string    `json:"folder"`
	PlaylistSize    int       `json:"playlistSize"`
	PlaylistVersion uint64    `json:"playlistVersion"`
	LastReload      time.Time `json:"lastReload"`
}

// Status returns the current status.
func (s *Sequencer) Status() Status {
	snap := s.store.Snapshot()

	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Status{
		State:           s.state.String(),
		Index:           s.index,
		Played:          s.played,
		Uptime:          time.Since(s.startedAt).Round(time.Second).String(),
		Folder:          snap.Folder(),
		PlaylistSize:    snap.Len(),
		PlaylistVersion: s.store.Version(),
		LastReload:      s.store.LastReload(),
	}

	if s.index >= 0 && s.state != StateIdle {
		current := s.current
		st.Current = &current
	}

	if s.state == StatePresenting {
		st.Slide = s.position
		st.SlideCount = s.slides
		since := s.showStart
		st.Since = &since
	}

	if s.outcome != nil {
		st.Halted = true
		st.HaltReason = s.outcome.Reason.String()
		if s.outcome.Err != nil {
			st.Error = s.outcome.Err.Error()
		}
	}

	return st
}

// Playlist returns the snapshot the sequencer will consult at its next boundary.
func (s *Sequencer) Playlist() playlist.Playlist {
	return s.store.Snapshot()
}

// Ready reports whether the sequencer is still able to play.
func (s *Sequencer) Ready() bool {
	return s.State() != StateHalted
}

// Played returns how many presentations ran to completion.
func (s *Sequencer) Played() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.played
}

// Uptime returns the time since the sequencer was created.
func (s *Sequencer) Uptime() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return time.Since(s.startedAt)
}
