package sequencer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"showrunner/internal/engine"
	"showrunner/internal/gate"
	"showrunner/internal/logging"
	"showrunner/internal/playlist"
)

// DefaultPollInterval is how often a running slideshow is checked for its end.
const DefaultPollInterval = time.Second

// Config controls sequencer timing and policy.
type Config struct {
	PollInterval time.Duration
	EmptyPolicy  EmptyPolicy
}

// DefaultConfig returns the default sequencer configuration.
func DefaultConfig() Config {
	return Config{
		PollInterval: DefaultPollInterval,
		EmptyPolicy:  EmptyPolicyWait,
	}
}

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithObserver registers an Observer for state changes and engine activity.
func WithObserver(o Observer) Option {
	return func(s *Sequencer) {
		if o != nil {
			s.obs = o
		}
	}
}

// Sequencer plays the store's playlist through an engine, asking the gate
// before each presentation after the first.
type Sequencer struct {
	store  *playlist.Store
	engine engine.Engine
	gate   gate.Gate
	cfg    Config
	obs    Observer

	mu         sync.RWMutex
	state      State
	index      int
	current    playlist.Artifact
	handle     engine.Handle
	slides     int
	position   int
	showStart  time.Time
	played     int
	engineUsed bool
	outcome    *Outcome
	startedAt  time.Time

	// reloaded holds at most one pending wake-up for an idle sequencer.
	reloaded chan struct{}
}

// New creates a Sequencer in StateIdle.
func New(store *playlist.Store, eng engine.Engine, g gate.Gate, cfg Config, opts ...Option) *Sequencer {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.EmptyPolicy == "" {
		cfg.EmptyPolicy = EmptyPolicyWait
	}

	s := &Sequencer{
		store:     store,
		engine:    eng,
		gate:      g,
		cfg:       cfg,
		obs:       nopObserver{},
		state:     StateIdle,
		index:     -1,
		startedAt: time.Now(),
		reloaded:  make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current state.
func (s *Sequencer) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Index returns the playlist position of the presentation opened last, or -1.
func (s *Sequencer) Index() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index
}

// Run drives the state machine until it halts and returns the outcome.
// Cancelling ctx halts with HaltInterrupted at the next suspension point.
// A gate prompt in progress is not interrupted; the halt happens once it returns.
func (s *Sequencer) Run(ctx context.Context) Outcome {
	logging.Info("Sequencer started for %s", s.store.Folder())

	for {
		switch s.State() {
		case StateIdle:
			s.idle(ctx)
		case StatePresenting:
			s.present(ctx)
		case StateAwaitingConfirmation:
			s.awaitConfirmation(ctx)
		case StateHalted:
			s.mu.RLock()
			out := *s.outcome
			s.mu.RUnlock()
			return out
		default:
			// Opening is entered and left inside open.
			s.halt(HaltFailed, fmt.Errorf("sequencer stuck in state %s", s.State()))
		}
	}
}

// idle waits for a non-empty playlist and opens its first presentation.
func (s *Sequencer) idle(ctx context.Context) {
	waiting := false
	for {
		if ctx.Err() != nil {
			s.halt(HaltInterrupted, nil)
			return
		}

		snap := s.store.Snapshot()
		if first, ok := snap.At(0); ok {
			s.open(ctx, 0, first)
			return
		}

		if s.cfg.EmptyPolicy == EmptyPolicyExit {
			logging.Info("No presentations found in %s", snap.Folder())
			s.halt(HaltEmpty, nil)
			return
		}

		if !waiting {
			logging.Info("No presentations found in %s, waiting for files...", snap.Folder())
			waiting = true
		}

		select {
		case <-ctx.Done():
		case <-s.reloaded:
		}
	}
}

// open moves through StateOpening and ends in StatePresenting or StateHalted.
func (s *Sequencer) open(ctx context.Context, index int, a playlist.Artifact) {
	s.mu.Lock()
	s.index = index
	s.current = a
	s.slides = 0
	s.position = 0
	s.engineUsed = true
	s.mu.Unlock()
	s.transition(StateOpening)

	if ctx.Err() != nil {
		s.halt(HaltInterrupted, nil)
		return
	}

	logging.Info("Playing presentation: %s", a.Title)

	h, err := s.engine.Open(a.Path)
	if err != nil {
		s.obs.ObserveEngineError("open")
		s.halt(HaltFailed, fmt.Errorf("open %s: %w", a.Title, openError(err)))
		return
	}

	s.mu.Lock()
	s.handle = h
	s.mu.Unlock()

	slides, err := s.engine.SlideCount(h)
	if err != nil {
		s.obs.ObserveEngineError("slide_count")
		s.halt(HaltFailed, fmt.Errorf("count slides of %s: %w", a.Title, err))
		return
	}

	if err := s.engine.Run(h); err != nil {
		s.obs.ObserveEngineError("run")
		s.halt(HaltFailed, fmt.Errorf("start slideshow %s: %w", a.Title, openError(err)))
		return
	}

	s.mu.Lock()
	s.slides = slides
	s.position = 1
	s.showStart = time.Now()
	s.mu.Unlock()

	logging.Debug("Presentation %s has %d slides", a.Title, slides)
	s.obs.ObservePresentationStarted(a.Title)
	s.transition(StatePresenting)
}

// openError classifies an engine failure during opening. Errors the engine
// did not classify count as open failures.
func openError(err error) error {
	if errors.Is(err, engine.ErrEngineUnavailable) || errors.Is(err, engine.ErrArtifactOpenFailed) {
		return err
	}
	return fmt.Errorf("%w: %w", engine.ErrArtifactOpenFailed, err)
}

// present polls the running slideshow until it passes its last slide.
func (s *Sequencer) present(ctx context.Context) {
	s.mu.RLock()
	h := s.handle
	slides := s.slides
	a := s.current
	s.mu.RUnlock()

	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.halt(HaltInterrupted, nil)
			return
		case <-ticker.C:
		}

		start := time.Now()
		pos, err := s.engine.CurrentPosition(h)
		s.obs.ObservePoll(time.Since(start), err)

		if errors.Is(err, engine.ErrNoActiveShow) {
			s.obs.ObserveEngineError("position")
			s.halt(HaltFailed, fmt.Errorf("%s: %w: %w", a.Title, ErrAmbiguousCompletion, err))
			return
		}
		if err != nil {
			s.obs.ObserveEngineError("position")
			s.halt(HaltFailed, fmt.Errorf("read position of %s: %w", a.Title, err))
			return
		}

		s.mu.Lock()
		s.position = pos
		s.mu.Unlock()

		// Engines may overshoot the end marker; anything past the last slide is done.
		if pos >= slides+1 {
			s.complete(a, h)
			return
		}
	}
}

// complete releases the finished presentation and moves to StateAwaitingConfirmation.
func (s *Sequencer) complete(a playlist.Artifact, h engine.Handle) {
	s.mu.Lock()
	s.handle = nil
	s.played++
	elapsed := time.Since(s.showStart)
	s.mu.Unlock()

	logging.Info("Presentation %s finished", a.Title)
	s.obs.ObservePresentationCompleted(a.Title, elapsed)

	if err := s.engine.Close(h); err != nil {
		s.obs.ObserveEngineError("close")
		s.halt(HaltFailed, fmt.Errorf("close %s: %w", a.Title, err))
		return
	}

	s.transition(StateAwaitingConfirmation)
}

// awaitConfirmation resolves the next presentation against the current
// snapshot and asks the gate whether to open it.
func (s *Sequencer) awaitConfirmation(ctx context.Context) {
	if ctx.Err() != nil {
		s.halt(HaltInterrupted, nil)
		return
	}

	snap := s.store.Snapshot()

	s.mu.RLock()
	index := s.index
	current := s.current
	s.mu.RUnlock()

	// Files added or removed before the finished presentation shift its
	// position; continue from where it sits now.
	if at := snap.IndexOf(current.Path); at >= 0 && at != index {
		logging.Debug("Presentation %s is now at position %d (was %d)", current.Title, at, index)
		index = at
		s.mu.Lock()
		s.index = at
		s.mu.Unlock()
	}

	next := index + 1
	a, ok := snap.At(next)
	if !ok {
		logging.Info("No more presentations left to play.")
		s.halt(HaltFinished, nil)
		return
	}

	start := time.Now()
	accepted, err := s.gate.Confirm(a.Title)
	s.obs.ObserveConfirmation(accepted, err, time.Since(start))

	// An interrupt that also tore down the prompt is still an interrupt.
	if ctx.Err() != nil {
		s.halt(HaltInterrupted, nil)
		return
	}

	if err != nil {
		s.halt(HaltFailed, fmt.Errorf("%w: %w", ErrGateFailed, err))
		return
	}

	if !accepted {
		logging.Info("Presentation halted by user.")
		s.halt(HaltDeclined, nil)
		return
	}

	s.open(ctx, next, a)
}

// halt releases the open presentation, quits the engine and records the outcome.
func (s *Sequencer) halt(reason HaltReason, err error) {
	s.mu.Lock()
	if s.state == StateHalted {
		s.mu.Unlock()
		return
	}
	h := s.handle
	s.handle = nil
	used := s.engineUsed
	s.mu.Unlock()

	if h != nil {
		if cerr := s.engine.Close(h); cerr != nil {
			logging.Warn("Failed to close %s: %v", h.Path(), cerr)
		}
	}

	if used {
		if qerr := s.engine.Quit(); qerr != nil {
			logging.Warn("Failed to quit presentation engine: %v", qerr)
		}
	}

	s.mu.Lock()
	s.outcome = &Outcome{
		Reason: reason,
		Err:    err,
		Index:  s.index,
		Played: s.played,
	}
	s.mu.Unlock()

	if err != nil {
		logging.Error("Playback halted: %v", err)
	}
	s.obs.ObserveHalt(reason)
	s.transition(StateHalted)
	logging.Info("Program closed (%s).", reason)
}

func (s *Sequencer) transition(to State) {
	s.mu.Lock()
	from := s.state
	s.state = to
	s.mu.Unlock()

	if from == to {
		return
	}
	logging.Debug("State: %s -> %s", from, to)
	s.obs.ObserveTransition(from, to)
}
