package metrics

import (
	"showrunner/internal/notifier"
	"showrunner/internal/sequencer"
)

// engineOperations are the engine calls the sequencer reports errors for.
var engineOperations = []string{"open", "slide_count", "run", "position", "close"}

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics() {
	// --- Sequencer state (one-hot, idle at start) ---
	for _, st := range sequencer.AllStates {
		SequencerState.WithLabelValues(st.String())
	}
	setState(sequencer.StateIdle)

	// --- Legal transitions ---
	for _, tr := range [][2]sequencer.State{
		{sequencer.StateIdle, sequencer.StateOpening},
		{sequencer.StateIdle, sequencer.StateHalted},
		{sequencer.StateOpening, sequencer.StatePresenting},
		{sequencer.StateOpening, sequencer.StateHalted},
		{sequencer.StatePresenting, sequencer.StateAwaitingConfirmation},
		{sequencer.StatePresenting, sequencer.StateHalted},
		{sequencer.StateAwaitingConfirmation, sequencer.StateOpening},
		{sequencer.StateAwaitingConfirmation, sequencer.StateHalted},
	} {
		SequencerTransitionsTotal.WithLabelValues(tr[0].String(), tr[1].String())
	}

	for _, r := range sequencer.AllHaltReasons {
		SequencerHaltsTotal.WithLabelValues(r.String())
	}

	// --- Gate and engine ---
	for _, result := range []string{"accepted", "declined", "error"} {
		ConfirmationsTotal.WithLabelValues(result)
	}

	for _, op := range engineOperations {
		EngineErrorsTotal.WithLabelValues(op)
	}
	EnginePollsTotal.WithLabelValues("success")
	EnginePollsTotal.WithLabelValues("error")

	// --- Playlist and notifier ---
	PlaylistReloadsTotal.WithLabelValues("success")
	PlaylistReloadsTotal.WithLabelValues("error")

	for _, op := range notifier.AllOps {
		NotifierEventsTotal.WithLabelValues(string(op))
	}
}

func setState(current sequencer.State) {
	for _, st := range sequencer.AllStates {
		v := 0.0
		if st == current {
			v = 1
		}
		SequencerState.WithLabelValues(st.String()).Set(v)
	}
}
