package engine

import "errors"

var (
	// ErrEngineUnavailable means the presentation application cannot be reached.
	ErrEngineUnavailable = errors.New("presentation engine unavailable")

	// ErrArtifactOpenFailed means a deck could not be opened (missing, corrupt, empty).
	ErrArtifactOpenFailed = errors.New("failed to open presentation")

	// ErrNoActiveShow means no slideshow window exists for the handle.
	ErrNoActiveShow = errors.New("no active slideshow window")

	// ErrInvalidHandle is returned for handles not issued by the engine or already closed.
	ErrInvalidHandle = errors.New("invalid presentation handle")
)

// Handle is an open presentation. It is owned by whoever called Open and
// must be released with Close.
type Handle interface {
	Path() string
}

// Engine opens, runs and closes presentations.
type Engine interface {
	// Open loads the deck at path.
	Open(path string) (Handle, error)
	// Run starts the slideshow for an open deck.
	Run(h Handle) error
	// CurrentPosition returns the 1-based slide being shown, or
	// SlideCount()+1 once the show has run past the last slide.
	// It returns ErrNoActiveShow when no slideshow is running.
	CurrentPosition(h Handle) (int, error)
	// SlideCount returns the number of slides in the deck.
	SlideCount(h Handle) (int, error)
	// Close releases the deck and its slideshow.
	Close(h Handle) error
	// Quit shuts the presentation application down.
	Quit() error
}
