// Package engine defines the contract between the sequencer and whatever
// actually puts slides on screen, plus a Viewer implementation that drives
// an external slideshow program.
//
// The contract mirrors a document-automation API: open a deck, start its
// slideshow, ask for the current slide position, close it, and quit the
// application. A position of SlideCount()+1 means the show has run past its
// last slide. ErrNoActiveShow means there is no slideshow at all, which is a
// different condition from a finished show.
//
// Viewer launches the configured command (for example
// "soffice --norestore --show") with the deck path appended and advances the
// slide position on a fixed dwell time per slide. With no command configured
// it runs headless, which is useful for rehearsing a playlist.
package engine
