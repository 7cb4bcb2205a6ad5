package sequencer

import (
	"fmt"
	"strings"
)

// State is a sequencer state.
type State int

const (
	// StateIdle waits for a non-empty playlist.
	StateIdle State = iota
	// StateOpening is loading a presentation into the engine.
	StateOpening
	// StatePresenting is running a slideshow and polling for its end.
	StatePresenting
	// StateAwaitingConfirmation has finished a presentation and is deciding what comes next.
	StateAwaitingConfirmation
	// StateHalted is terminal.
	StateHalted
)

// AllStates lists every state in declaration order.
var AllStates = []State{StateIdle, StateOpening, StatePresenting, StateAwaitingConfirmation, StateHalted}

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateOpening:
		return "opening"
	case StatePresenting:
		return "presenting"
	case StateAwaitingConfirmation:
		return "awaiting_confirmation"
	case StateHalted:
		return "halted"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// HaltReason explains why the sequencer reached StateHalted.
type HaltReason int

const (
	// HaltNone means the sequencer has not halted.
	HaltNone HaltReason = iota
	// HaltFinished means there was no next presentation.
	HaltFinished
	// HaltDeclined means the operator chose not to continue.
	HaltDeclined
	// HaltInterrupted means the run context was cancelled.
	HaltInterrupted
	// HaltEmpty means the playlist was empty under the exit policy.
	HaltEmpty
	// HaltFailed means an engine or gate failure stopped playback.
	HaltFailed
)

// AllHaltReasons lists every reason a run can end with.
var AllHaltReasons = []HaltReason{HaltFinished, HaltDeclined, HaltInterrupted, HaltEmpty, HaltFailed}

func (r HaltReason) String() string {
	switch r {
	case HaltNone:
		return "none"
	case HaltFinished:
		return "finished"
	case HaltDeclined:
		return "declined"
	case HaltInterrupted:
		return "interrupted"
	case HaltEmpty:
		return "empty"
	case HaltFailed:
		return "failed"
	default:
		return fmt.Sprintf("unknown(%d)", int(r))
	}
}

// Graceful reports whether the halt is a normal end of a run rather than a failure.
func (r HaltReason) Graceful() bool {
	return r != HaltFailed
}

// Outcome is the result of a run.
type Outcome struct {
	Reason HaltReason
	Err    error
	// Index is the playlist position of the last presentation opened, or -1.
	Index int
	// Played counts presentations that ran to their end.
	Played int
}

func (o Outcome) String() string {
	if o.Err != nil {
		return fmt.Sprintf("%s after %d presentation(s): %v", o.Reason, o.Played, o.Err)
	}
	return fmt.Sprintf("%s after %d presentation(s)", o.Reason, o.Played)
}

// EmptyPolicy decides what an idle sequencer does with an empty playlist.
type EmptyPolicy string

const (
	// EmptyPolicyWait stays idle until a reload produces presentations.
	EmptyPolicyWait EmptyPolicy = "wait"
	// EmptyPolicyExit halts immediately.
	EmptyPolicyExit EmptyPolicy = "exit"
)

// ParseEmptyPolicy validates an empty-playlist policy name.
func ParseEmptyPolicy(s string) (EmptyPolicy, error) {
	switch p := EmptyPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case EmptyPolicyWait, EmptyPolicyExit:
		return p, nil
	case "":
		return EmptyPolicyWait, nil
	default:
		return "", fmt.Errorf("unknown empty playlist policy %q (want wait or exit)", s)
	}
}
