package sequencer

import "errors"

// ErrAmbiguousCompletion is returned when the engine reports no active
// slideshow while presenting. A missing show is not a finished show: it may
// never have started or may have been closed by hand, so it halts playback
// instead of advancing.
var ErrAmbiguousCompletion = errors.New("no active slideshow while presenting")

// ErrGateFailed wraps errors returned by the confirmation gate.
var ErrGateFailed = errors.New("confirmation gate failed")
