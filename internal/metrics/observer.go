package metrics

import (
	"time"

	"showrunner/internal/notifier"
	"showrunner/internal/sequencer"
)

// sequencerObserver implements sequencer.Observer using the Prometheus
// metrics declared in this package.
type sequencerObserver struct{}

// NewSequencerObserver creates an observer that records sequencer activity
// into the Prometheus counters and histograms declared in metrics.go.
func NewSequencerObserver() sequencer.Observer {
	return &sequencerObserver{}
}

func (o *sequencerObserver) ObserveTransition(from, to sequencer.State) {
	SequencerTransitionsTotal.WithLabelValues(from.String(), to.String()).Inc()
	setState(to)
}

func (o *sequencerObserver) ObservePresentationStarted(string) {
	PresentationsStartedTotal.Inc()
}

func (o *sequencerObserver) ObservePresentationCompleted(_ string, duration time.Duration) {
	PresentationsCompletedTotal.Inc()
	PresentationDuration.Observe(duration.Seconds())
}

func (o *sequencerObserver) ObserveConfirmation(accepted bool, err error, wait time.Duration) {
	ConfirmationWaitDuration.Observe(wait.Seconds())
	switch {
	case err != nil:
		ConfirmationsTotal.WithLabelValues("error").Inc()
	case accepted:
		ConfirmationsTotal.WithLabelValues("accepted").Inc()
	default:
		ConfirmationsTotal.WithLabelValues("declined").Inc()
	}
}

func (o *sequencerObserver) ObservePoll(duration time.Duration, err error) {
	EnginePollDuration.Observe(duration.Seconds())
	if err != nil {
		EnginePollsTotal.WithLabelValues("error").Inc()
		return
	}
	EnginePollsTotal.WithLabelValues("success").Inc()
}

func (o *sequencerObserver) ObserveEngineError(operation string) {
	EngineErrorsTotal.WithLabelValues(operation).Inc()
}

func (o *sequencerObserver) ObserveReload(size int, duration time.Duration, err error) {
	PlaylistReloadDuration.Observe(duration.Seconds())
	if err != nil {
		PlaylistReloadsTotal.WithLabelValues("error").Inc()
		return
	}
	PlaylistReloadsTotal.WithLabelValues("success").Inc()
	PlaylistSize.Set(float64(size))
	PlaylistLastReloadTimestamp.Set(float64(time.Now().Unix()))
}

func (o *sequencerObserver) ObserveChange(op notifier.Op) {
	NotifierEventsTotal.WithLabelValues(string(op)).Inc()
}

func (o *sequencerObserver) ObserveHalt(reason sequencer.HaltReason) {
	SequencerHaltsTotal.WithLabelValues(reason.String()).Inc()
}
