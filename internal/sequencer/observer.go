package sequencer

import (
	"time"

	"showrunner/internal/notifier"
)

// Observer receives sequencer events, typically to record metrics.
type Observer interface {
	ObserveTransition(from, to State)
	ObservePresentationStarted(title string)
	ObservePresentationCompleted(title string, duration time.Duration)
	ObserveConfirmation(accepted bool, err error, wait time.Duration)
	ObservePoll(duration time.Duration, err error)
	ObserveEngineError(operation string)
	ObserveReload(size int, duration time.Duration, err error)
	ObserveChange(op notifier.Op)
	ObserveHalt(reason HaltReason)
}

type nopObserver struct{}

func (nopObserver) ObserveTransition(State, State)                     {}
func (nopObserver) ObservePresentationStarted(string)                  {}
func (nopObserver) ObservePresentationCompleted(string, time.Duration) {}
func (nopObserver) ObserveConfirmation(bool, error, time.Duration)     {}
func (nopObserver) ObservePoll(time.Duration, error)                   {}
func (nopObserver) ObserveEngineError(string)                          {}
func (nopObserver) ObserveReload(int, time.Duration, error)            {}
func (nopObserver) ObserveChange(notifier.Op)                          {}
func (nopObserver) ObserveHalt(HaltReason)                             {}
