package handlers

import (
	"time"

	"showrunner/internal/playlist"
	"showrunner/internal/sequencer"
)

// StatusProvider is the view of the sequencer the handlers need.
type StatusProvider interface {
	Status() sequencer.Status
	Playlist() playlist.Playlist
	Ready() bool
}

// Handlers serves the status endpoints for one sequencer.
type Handlers struct {
	status    StatusProvider
	startTime time.Time
}

// New creates Handlers backed by provider.
func New(provider StatusProvider) *Handlers {
	return &Handlers{
		status:    provider,
		startTime: time.Now(),
	}
}
