package engine

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"showrunner/internal/doctypes"
	"showrunner/internal/logging"
)

// DefaultSlideDwell is how long each slide stays up when none is configured.
const DefaultSlideDwell = 10 * time.Second

// processWaitDelay bounds how long Close waits for a killed viewer's
// children to release its stderr pipe.
const processWaitDelay = 2 * time.Second

// ViewerConfig configures a Viewer.
type ViewerConfig struct {
	// Command is the program and leading arguments used to show a deck. The
	// deck path is appended. Empty runs the viewer headless.
	Command []string
	// SlideDwell is how long each slide is shown.
	SlideDwell time.Duration
}

// Viewer is an Engine backed by an external slideshow program.
type Viewer struct {
	cfg ViewerConfig
	now func() time.Time

	mu    sync.Mutex
	shows map[*show]struct{}
	quit  bool
}

type show struct {
	path   string
	slides int

	started time.Time
	running bool

	cmd    *exec.Cmd
	stderr bytes.Buffer
	exited chan struct{}
}

func (s *show) Path() string { return s.path }

// ViewerOption customizes a Viewer.
type ViewerOption func(*Viewer)

// WithClock replaces the time source used for slide timing.
func WithClock(now func() time.Time) ViewerOption {
	return func(v *Viewer) {
		if now != nil {
			v.now = now
		}
	}
}

// NewViewer creates a Viewer. When a command is configured it must be
// resolvable on PATH, otherwise ErrEngineUnavailable is returned.
func NewViewer(cfg ViewerConfig, opts ...ViewerOption) (*Viewer, error) {
	if cfg.SlideDwell <= 0 {
		cfg.SlideDwell = DefaultSlideDwell
	}
	if len(cfg.Command) > 0 {
		path, err := exec.LookPath(cfg.Command[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %s not found: %v", ErrEngineUnavailable, cfg.Command[0], err)
		}
		logging.Debug("  Viewer path: %s", path)
	}

	v := &Viewer{
		cfg:   cfg,
		now:   time.Now,
		shows: make(map[*show]struct{}),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// Headless reports whether the viewer runs without an external program.
func (v *Viewer) Headless() bool {
	return len(v.cfg.Command) == 0
}

// Open validates the deck and reads its slide count.
func (v *Viewer) Open(path string) (Handle, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.quit {
		return nil, fmt.Errorf("%w: viewer has quit", ErrEngineUnavailable)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArtifactOpenFailed, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrArtifactOpenFailed, path)
	}

	slides, err := doctypes.CountSlides(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArtifactOpenFailed, err)
	}
	if slides == 0 {
		return nil, fmt.Errorf("%w: %s has no slides", ErrArtifactOpenFailed, path)
	}

	s := &show{path: path, slides: slides}
	v.shows[s] = struct{}{}
	logging.Info("Opened presentation: %s (%d slides)", path, slides)
	return s, nil
}

// Run starts the slideshow, launching the viewer program if one is configured.
func (v *Viewer) Run(h Handle) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	s, err := v.lookup(h)
	if err != nil {
		return err
	}
	if s.running {
		return nil
	}

	if !v.Headless() {
		args := append(append([]string{}, v.cfg.Command[1:]...), s.path)
		cmd := exec.Command(v.cfg.Command[0], args...) //nolint:gosec // command comes from operator configuration
		cmd.Stderr = &s.stderr
		cmd.WaitDelay = processWaitDelay
		if err := cmd.Start(); err != nil {
			return fmt.Errorf("%w: failed to start %s: %v", ErrEngineUnavailable, v.cfg.Command[0], err)
		}
		s.cmd = cmd
		s.exited = make(chan struct{})
		go func() {
			defer close(s.exited)
			if err := cmd.Wait(); err != nil {
				logging.Debug("Viewer process for %s exited: %v", s.path, err)
			}
		}()
	}

	s.started = v.now()
	s.running = true
	logging.Info("Started slideshow")
	return nil
}

// CurrentPosition derives the slide position from the elapsed show time.
func (v *Viewer) CurrentPosition(h Handle) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	s, err := v.lookup(h)
	if err != nil {
		return 0, err
	}
	if !s.running {
		return 0, ErrNoActiveShow
	}
	if s.exited != nil {
		select {
		case <-s.exited:
			if msg := strings.TrimSpace(s.stderr.String()); msg != "" {
				logging.Debug("Viewer stderr: %s", msg)
			}
			return 0, fmt.Errorf("%w: viewer process exited", ErrNoActiveShow)
		default:
		}
	}

	elapsed := v.now().Sub(s.started)
	position := 1 + int(elapsed/v.cfg.SlideDwell)
	if position > s.slides+1 {
		position = s.slides + 1
	}
	return position, nil
}

// SlideCount returns the number of slides read at Open.
func (v *Viewer) SlideCount(h Handle) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	s, err := v.lookup(h)
	if err != nil {
		return 0, err
	}
	return s.slides, nil
}

// Close stops the slideshow and forgets the handle.
func (v *Viewer) Close(h Handle) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	s, err := v.lookup(h)
	if err != nil {
		return err
	}
	v.stop(s)
	delete(v.shows, s)
	logging.Info("Presentation closed.")
	return nil
}

// Quit closes every open deck. Further Open calls fail.
func (v *Viewer) Quit() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	for s := range v.shows {
		logging.Info("Closing presentation left open: %s", s.path)
		v.stop(s)
		delete(v.shows, s)
	}
	v.quit = true
	return nil
}

func (v *Viewer) lookup(h Handle) (*show, error) {
	s, ok := h.(*show)
	if !ok || s == nil {
		return nil, ErrInvalidHandle
	}
	if _, open := v.shows[s]; !open {
		return nil, ErrInvalidHandle
	}
	return s, nil
}

// stop kills the viewer process, if any, and waits for it to be reaped.
func (v *Viewer) stop(s *show) {
	s.running = false
	if s.cmd == nil || s.cmd.Process == nil {
		return
	}
	select {
	case <-s.exited:
		return
	default:
	}
	if err := s.cmd.Process.Kill(); err != nil {
		logging.Warn("failed to kill viewer process for %s: %v", s.path, err)
	}
	<-s.exited
}
