// Package gate asks the operator whether to start the next presentation.
//
// Confirm blocks until the operator answers and cannot be cancelled. The
// sequencer calls it from its own goroutine so a pending prompt never holds
// up playlist reloads.
package gate

import (
	"fmt"
	"io"
	"os"
	"strings"

	"showrunner/internal/logging"

	"golang.org/x/term"
)

// Gate is a blocking yes/no confirmation.
type Gate interface {
	Confirm(title string) (bool, error)
}

// Kind selects a Gate implementation.
type Kind string

const (
	// KindPrompt is the full-screen modal prompt.
	KindPrompt Kind = "prompt"
	// KindTerminal is a single-line [y/N] prompt.
	KindTerminal Kind = "terminal"
	// KindAuto confirms every presentation without asking.
	KindAuto Kind = "auto"
)

// ParseKind validates a gate kind name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindPrompt, KindTerminal, KindAuto:
		return k, nil
	case "":
		return KindPrompt, nil
	default:
		return "", fmt.Errorf("unknown confirmation gate %q (want prompt, terminal or auto)", s)
	}
}

// New builds the Gate for kind reading from in and writing to out. The
// modal prompt needs a terminal; without one it falls back to the line prompt.
func New(kind Kind, in *os.File, out io.Writer) Gate {
	switch kind {
	case KindAuto:
		return Auto{}
	case KindTerminal:
		return NewTerminal(in, out)
	default:
		if !isTerminal(in) {
			logging.Warn("Standard input is not a terminal, using line prompt for confirmations")
			return NewTerminal(in, out)
		}
		return NewPrompt(in, out)
	}
}

// Auto confirms every presentation.
type Auto struct{}

// Confirm always returns true.
func (Auto) Confirm(title string) (bool, error) {
	logging.Info("Auto-confirming next presentation: %s", title)
	return true, nil
}

// Func adapts a plain function to the Gate interface.
type Func func(title string) (bool, error)

// Confirm calls f.
func (f Func) Confirm(title string) (bool, error) {
	return f(title)
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && f != nil && term.IsTerminal(int(f.Fd()))
}

// parseAnswer accepts y/yes (any case); everything else is a no.
func parseAnswer(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
