package sequencer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"sync"
	"testing"
	"time"

	"showrunner/internal/engine"
	"showrunner/internal/notifier"
	"showrunner/internal/playlist"
)

type fakeHandle struct {
	path string
}

func (h *fakeHandle) Path() string { return h.path }

// fakeEngine records every call. Decks have one slide unless configured
// otherwise, and shows complete on their first poll unless position is set.
type fakeEngine struct {
	mu      sync.Mutex
	calls   []string
	closes  map[string]int
	polls   map[string]int
	quits   int
	slides  map[string]int
	openErr map[string]error

	position func(title string, poll int) (int, error)
	onOpen   func(title string)
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		closes:  make(map[string]int),
		polls:   make(map[string]int),
		slides:  make(map[string]int),
		openErr: make(map[string]error),
	}
}

func (e *fakeEngine) record(call string) {
	e.mu.Lock()
	e.calls = append(e.calls, call)
	e.mu.Unlock()
}

func (e *fakeEngine) Open(path string) (engine.Handle, error) {
	title := filepath.Base(path)
	e.record("open:" + title)
	if e.onOpen != nil {
		e.onOpen(title)
	}

	e.mu.Lock()
	err := e.openErr[title]
	e.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return &fakeHandle{path: path}, nil
}

func (e *fakeEngine) Run(h engine.Handle) error {
	e.record("run:" + filepath.Base(h.Path()))
	return nil
}

func (e *fakeEngine) CurrentPosition(h engine.Handle) (int, error) {
	title := filepath.Base(h.Path())

	e.mu.Lock()
	e.polls[title]++
	n := e.polls[title]
	slides := e.slideCount(title)
	e.mu.Unlock()

	if e.position != nil {
		return e.position(title, n)
	}
	return slides + 1, nil
}

func (e *fakeEngine) SlideCount(h engine.Handle) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.slideCount(filepath.Base(h.Path())), nil
}

func (e *fakeEngine) slideCount(title string) int {
	if n, ok := e.slides[title]; ok {
		return n
	}
	return 1
}

func (e *fakeEngine) Close(h engine.Handle) error {
	title := filepath.Base(h.Path())
	e.record("close:" + title)
	e.mu.Lock()
	e.closes[title]++
	e.mu.Unlock()
	return nil
}

func (e *fakeEngine) Quit() error {
	e.record("quit")
	e.mu.Lock()
	e.quits++
	e.mu.Unlock()
	return nil
}

func (e *fakeEngine) opened() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []string
	for _, c := range e.calls {
		if len(c) > 5 && c[:5] == "open:" {
			out = append(out, c[5:])
		}
	}
	return out
}

func (e *fakeEngine) callCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.calls)
}

func (e *fakeEngine) closeCount(title string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closes[title]
}

func (e *fakeEngine) quitCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.quits
}

type fakeGate struct {
	mu     sync.Mutex
	titles []string
	answer bool
	err    error
	hook   func(title string, call int)
}

func (g *fakeGate) Confirm(title string) (bool, error) {
	g.mu.Lock()
	g.titles = append(g.titles, title)
	call := len(g.titles)
	g.mu.Unlock()

	if g.hook != nil {
		g.hook(title, call)
	}
	return g.answer, g.err
}

func (g *fakeGate) asked() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.titles...)
}

type transitionRecorder struct {
	nopObserver
	mu     sync.Mutex
	seen   []string
	halts  []HaltReason
	reload int
}

func (r *transitionRecorder) ObserveTransition(from, to State) {
	r.mu.Lock()
	r.seen = append(r.seen, from.String()+">"+to.String())
	r.mu.Unlock()
}

func (r *transitionRecorder) ObserveHalt(reason HaltReason) {
	r.mu.Lock()
	r.halts = append(r.halts, reason)
	r.mu.Unlock()
}

func (r *transitionRecorder) ObserveReload(int, time.Duration, error) {
	r.mu.Lock()
	r.reload++
	r.mu.Unlock()
}

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("deck"), 0o644); err != nil {
			t.Fatalf("Failed to create %s: %v", name, err)
		}
	}
}

func newTestSequencer(t *testing.T, dir string, eng engine.Engine, g *fakeGate, cfg Config, opts ...Option) *Sequencer {
	t.Helper()
	store := playlist.NewStore(dir, playlist.DefaultFilter())
	if _, err := store.Refresh(); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if cfg.PollInterval == 0 {
		cfg.PollInterval = time.Millisecond
	}
	return New(store, eng, g, cfg, opts...)
}

func runToHalt(t *testing.T, ctx context.Context, s *Sequencer) Outcome {
	t.Helper()
	done := make(chan Outcome, 1)
	go func() { done <- s.Run(ctx) }()

	select {
	case out := <-done:
		return out
	case <-time.After(5 * time.Second):
		t.Fatalf("Sequencer did not halt, state %s", s.State())
	}
	return Outcome{}
}

func TestAdvanceOpensNextWithoutReopening(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.pptx", "b.pptx")

	eng := newFakeEngine()
	g := &fakeGate{answer: true}
	rec := &transitionRecorder{}
	s := newTestSequencer(t, dir, eng, g, Config{}, WithObserver(rec))

	var atOpen []string
	eng.onOpen = func(title string) {
		atOpen = append(atOpen, s.State().String()+"@"+strconv.Itoa(s.Index()))
	}

	out := runToHalt(t, context.Background(), s)

	if out.Reason != HaltFinished || out.Err != nil {
		t.Fatalf("Expected finished without error, got %v", out)
	}
	if out.Played != 2 {
		t.Errorf("Expected 2 presentations played, got %d", out.Played)
	}
	if got := eng.opened(); !reflect.DeepEqual(got, []string{"a.pptx", "b.pptx"}) {
		t.Errorf("Unexpected opens: %v", got)
	}
	if !reflect.DeepEqual(atOpen, []string{"opening@0", "opening@1"}) {
		t.Errorf("Unexpected state at open: %v", atOpen)
	}
	if got := g.asked(); !reflect.DeepEqual(got, []string{"b.pptx"}) {
		t.Errorf("Gate asked %v, expected [b.pptx]", got)
	}
	if eng.closeCount("a.pptx") != 1 || eng.closeCount("b.pptx") != 1 {
		t.Errorf("Expected each presentation closed once, got %v", eng.closes)
	}
	if eng.quitCount() != 1 {
		t.Errorf("Expected engine quit once, got %d", eng.quitCount())
	}

	want := []string{
		"idle>opening",
		"opening>presenting",
		"presenting>awaiting_confirmation",
		"awaiting_confirmation>opening",
		"opening>presenting",
		"presenting>awaiting_confirmation",
		"awaiting_confirmation>halted",
	}
	if !reflect.DeepEqual(rec.seen, want) {
		t.Errorf("Unexpected transitions:\n got %v\nwant %v", rec.seen, want)
	}
	if !reflect.DeepEqual(rec.halts, []HaltReason{HaltFinished}) {
		t.Errorf("Unexpected halts: %v", rec.halts)
	}
}

func TestDeclineHaltsAndReleasesOnce(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.pptx", "b.pptx")

	eng := newFakeEngine()
	g := &fakeGate{answer: false}
	s := newTestSequencer(t, dir, eng, g, Config{})

	out := runToHalt(t, context.Background(), s)

	if out.Reason != HaltDeclined {
		t.Fatalf("Expected declined, got %v", out)
	}
	if out.Err != nil {
		t.Errorf("Declining is not an error, got %v", out.Err)
	}
	if got := eng.opened(); !reflect.DeepEqual(got, []string{"a.pptx"}) {
		t.Errorf("Expected only a.pptx opened, got %v", got)
	}
	if eng.closeCount("a.pptx") != 1 {
		t.Errorf("Expected a.pptx closed exactly once, got %d", eng.closeCount("a.pptx"))
	}
	if eng.quitCount() != 1 {
		t.Errorf("Expected engine quit once, got %d", eng.quitCount())
	}
	if s.State() != StateHalted {
		t.Errorf("Expected halted state, got %s", s.State())
	}
}

func TestSinglePresentationFinishesWithoutConfirmation(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "only.pptx")

	eng := newFakeEngine()
	g := &fakeGate{answer: true}
	s := newTestSequencer(t, dir, eng, g, Config{})

	out := runToHalt(t, context.Background(), s)

	if out.Reason != HaltFinished {
		t.Fatalf("Expected finished, got %v", out)
	}
	if got := g.asked(); len(got) != 0 {
		t.Errorf("Gate should not be asked without a next presentation, asked %v", got)
	}
	if out.Played != 1 || out.Index != 0 {
		t.Errorf("Expected one played at index 0, got %+v", out)
	}
}

func TestOvershootCountsAsComplete(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.pptx")

	eng := newFakeEngine()
	eng.slides["a.pptx"] = 3
	eng.position = func(title string, poll int) (int, error) {
		if poll < 3 {
			return poll, nil
		}
		return 9, nil
	}
	s := newTestSequencer(t, dir, eng, &fakeGate{}, Config{})

	out := runToHalt(t, context.Background(), s)

	if out.Reason != HaltFinished || out.Played != 1 {
		t.Fatalf("Expected finished after overshoot, got %v", out)
	}
	if n := eng.polls["a.pptx"]; n != 3 {
		t.Errorf("Expected 3 polls, got %d", n)
	}
}

func TestReloadShrinkingPlaylistFinishes(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.pptx", "b.pptx")

	eng := newFakeEngine()
	g := &fakeGate{answer: true}
	s := newTestSequencer(t, dir, eng, g, Config{})

	eng.position = func(title string, poll int) (int, error) {
		if poll == 1 {
			if err := os.Remove(filepath.Join(dir, "b.pptx")); err != nil {
				return 0, err
			}
			if _, err := s.Reload(); err != nil {
				return 0, err
			}
			return 1, nil
		}
		return 2, nil
	}

	out := runToHalt(t, context.Background(), s)

	if out.Reason != HaltFinished {
		t.Fatalf("Expected finished, got %v", out)
	}
	if got := g.asked(); len(got) != 0 {
		t.Errorf("Gate should not be asked, asked %v", got)
	}
	if got := eng.opened(); !reflect.DeepEqual(got, []string{"a.pptx"}) {
		t.Errorf("Unexpected opens: %v", got)
	}
}

func TestReloadBetweenCompletionAndOpen(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.pptx", "b.pptx")

	eng := newFakeEngine()
	g := &fakeGate{answer: true}
	s := newTestSequencer(t, dir, eng, g, Config{})

	g.hook = func(title string, call int) {
		if call != 1 {
			return
		}
		touch(t, dir, "c.pptx")
		if _, err := s.Reload(); err != nil {
			t.Errorf("Reload failed: %v", err)
		}
	}

	out := runToHalt(t, context.Background(), s)

	if out.Reason != HaltFinished {
		t.Fatalf("Expected finished, got %v", out)
	}
	if got := eng.opened(); !reflect.DeepEqual(got, []string{"a.pptx", "b.pptx", "c.pptx"}) {
		t.Errorf("Unexpected opens: %v", got)
	}
	if got := g.asked(); !reflect.DeepEqual(got, []string{"b.pptx", "c.pptx"}) {
		t.Errorf("Unexpected confirmations: %v", got)
	}
}

func TestReloadDuringConfirmationKeepsConfirmedPresentation(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.pptx", "b.pptx")

	eng := newFakeEngine()
	g := &fakeGate{answer: true}
	s := newTestSequencer(t, dir, eng, g, Config{})

	// a0.pptx sorts between a.pptx and b.pptx.
	g.hook = func(title string, call int) {
		if call != 1 {
			return
		}
		touch(t, dir, "a0.pptx")
		if _, err := s.Reload(); err != nil {
			t.Errorf("Reload failed: %v", err)
		}
	}

	out := runToHalt(t, context.Background(), s)

	if out.Reason != HaltFinished {
		t.Fatalf("Expected finished, got %v", out)
	}
	if got := eng.opened(); !reflect.DeepEqual(got, []string{"a.pptx", "b.pptx"}) {
		t.Errorf("Expected the confirmed presentation to open, got %v", got)
	}
	if out.Index != 2 {
		t.Errorf("Expected b.pptx resolved to index 2, got %d", out.Index)
	}
}

func TestInsertAheadOfCurrentPresentation(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "b.pptx", "c.pptx")

	eng := newFakeEngine()
	g := &fakeGate{answer: true}
	s := newTestSequencer(t, dir, eng, g, Config{})

	// a.pptx lands ahead of b.pptx while b.pptx is on screen.
	eng.position = func(title string, poll int) (int, error) {
		if title == "b.pptx" && poll == 1 {
			touch(t, dir, "a.pptx")
			if _, err := s.Reload(); err != nil {
				t.Errorf("Reload failed: %v", err)
			}
		}
		return 2, nil
	}

	out := runToHalt(t, context.Background(), s)

	if out.Reason != HaltFinished {
		t.Fatalf("Expected finished, got %v", out)
	}
	if got := eng.opened(); !reflect.DeepEqual(got, []string{"b.pptx", "c.pptx"}) {
		t.Errorf("Expected playback to continue after b.pptx, got %v", got)
	}
	if got := g.asked(); !reflect.DeepEqual(got, []string{"c.pptx"}) {
		t.Errorf("Unexpected confirmations: %v", got)
	}
	if out.Index != 2 {
		t.Errorf("Expected c.pptx at index 2, got %d", out.Index)
	}
}

func TestEmptyFolderWaitsForReload(t *testing.T) {
	dir := t.TempDir()

	eng := newFakeEngine()
	s := newTestSequencer(t, dir, eng, &fakeGate{answer: true}, Config{EmptyPolicy: EmptyPolicyWait})

	done := make(chan Outcome, 1)
	go func() { done <- s.Run(context.Background()) }()

	time.Sleep(50 * time.Millisecond)
	if s.State() != StateIdle {
		t.Fatalf("Expected idle, got %s", s.State())
	}
	if n := eng.callCount(); n != 0 {
		t.Fatalf("Expected no engine calls while idle, got %d", n)
	}

	// A reload that finds nothing keeps it idle.
	if _, err := s.Reload(); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	if n := eng.callCount(); n != 0 {
		t.Fatalf("Expected no engine calls after empty reload, got %d", n)
	}

	touch(t, dir, "a.pptx")
	if _, err := s.Reload(); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}

	select {
	case out := <-done:
		if out.Reason != HaltFinished {
			t.Errorf("Expected finished, got %v", out)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Sequencer did not start after reload")
	}

	if got := eng.opened(); !reflect.DeepEqual(got, []string{"a.pptx"}) {
		t.Errorf("Unexpected opens: %v", got)
	}
}

func TestEmptyFolderExitPolicy(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "notes.txt", "~$a.pptx")

	eng := newFakeEngine()
	s := newTestSequencer(t, dir, eng, &fakeGate{}, Config{EmptyPolicy: EmptyPolicyExit})

	out := runToHalt(t, context.Background(), s)

	if out.Reason != HaltEmpty {
		t.Fatalf("Expected empty, got %v", out)
	}
	if !out.Reason.Graceful() {
		t.Error("Empty halt should be graceful")
	}
	if n := eng.callCount(); n != 0 {
		t.Errorf("Expected no engine calls, got %v", eng.calls)
	}
}

func TestNoActiveShowIsAmbiguous(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.pptx", "b.pptx")

	eng := newFakeEngine()
	eng.position = func(string, int) (int, error) {
		return 0, engine.ErrNoActiveShow
	}
	g := &fakeGate{answer: true}
	s := newTestSequencer(t, dir, eng, g, Config{})

	out := runToHalt(t, context.Background(), s)

	if out.Reason != HaltFailed {
		t.Fatalf("Expected failed, got %v", out)
	}
	if !errors.Is(out.Err, ErrAmbiguousCompletion) {
		t.Errorf("Expected ErrAmbiguousCompletion, got %v", out.Err)
	}
	if !errors.Is(out.Err, engine.ErrNoActiveShow) {
		t.Errorf("Expected wrapped ErrNoActiveShow, got %v", out.Err)
	}
	if out.Played != 0 {
		t.Errorf("A missing show is not a finished one, played %d", out.Played)
	}
	if got := g.asked(); len(got) != 0 {
		t.Errorf("Gate should not be asked, asked %v", got)
	}
	if eng.closeCount("a.pptx") != 1 {
		t.Errorf("Expected handle released once, got %d", eng.closeCount("a.pptx"))
	}
	if eng.quitCount() != 1 {
		t.Errorf("Expected engine quit once, got %d", eng.quitCount())
	}
}

func TestOpenFailureHalts(t *testing.T) {
	tests := []struct {
		name    string
		openErr error
		want    error
	}{
		{"unclassified error", errors.New("corrupt deck"), engine.ErrArtifactOpenFailed},
		{"classified open failure", engine.ErrArtifactOpenFailed, engine.ErrArtifactOpenFailed},
		{"engine unavailable", engine.ErrEngineUnavailable, engine.ErrEngineUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			touch(t, dir, "a.pptx")

			eng := newFakeEngine()
			eng.openErr["a.pptx"] = tt.openErr
			s := newTestSequencer(t, dir, eng, &fakeGate{}, Config{})

			out := runToHalt(t, context.Background(), s)

			if out.Reason != HaltFailed {
				t.Fatalf("Expected failed, got %v", out)
			}
			if !errors.Is(out.Err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, out.Err)
			}
			if eng.closeCount("a.pptx") != 0 {
				t.Error("Nothing was opened, nothing should be closed")
			}
			if eng.quitCount() != 1 {
				t.Errorf("Expected engine quit once, got %d", eng.quitCount())
			}
		})
	}
}

func TestInterruptWhilePresenting(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.pptx", "b.pptx")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	eng := newFakeEngine()
	eng.slides["a.pptx"] = 10
	eng.position = func(title string, poll int) (int, error) {
		if poll == 2 {
			cancel()
		}
		return 1, nil
	}
	s := newTestSequencer(t, dir, eng, &fakeGate{answer: true}, Config{})

	out := runToHalt(t, ctx, s)

	if out.Reason != HaltInterrupted {
		t.Fatalf("Expected interrupted, got %v", out)
	}
	if out.Err != nil {
		t.Errorf("Interrupt is not an error, got %v", out.Err)
	}
	if eng.closeCount("a.pptx") != 1 {
		t.Errorf("Expected handle released once, got %d", eng.closeCount("a.pptx"))
	}
	if eng.quitCount() != 1 {
		t.Errorf("Expected engine quit once, got %d", eng.quitCount())
	}
}

func TestInterruptDuringConfirmation(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.pptx", "b.pptx")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	eng := newFakeEngine()
	g := &fakeGate{answer: true, hook: func(string, int) { cancel() }}
	s := newTestSequencer(t, dir, eng, g, Config{})

	out := runToHalt(t, ctx, s)

	if out.Reason != HaltInterrupted {
		t.Fatalf("Expected interrupted, got %v", out)
	}
	if got := eng.opened(); !reflect.DeepEqual(got, []string{"a.pptx"}) {
		t.Errorf("Expected b.pptx not opened after interrupt, got %v", got)
	}
	if eng.closeCount("a.pptx") != 1 {
		t.Errorf("Expected a.pptx closed once, got %d", eng.closeCount("a.pptx"))
	}
}

func TestInterruptAbortingConfirmation(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.pptx", "b.pptx")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	eng := newFakeEngine()
	g := &fakeGate{err: errors.New("program was interrupted"), hook: func(string, int) { cancel() }}
	s := newTestSequencer(t, dir, eng, g, Config{})

	out := runToHalt(t, ctx, s)

	if out.Reason != HaltInterrupted {
		t.Fatalf("Expected interrupted, got %v", out)
	}
	if !out.Reason.Graceful() {
		t.Error("Expected an interrupt to be graceful")
	}
	if out.Err != nil {
		t.Errorf("Expected no error, got %v", out.Err)
	}
	if got := eng.opened(); !reflect.DeepEqual(got, []string{"a.pptx"}) {
		t.Errorf("Unexpected opens: %v", got)
	}
}

func TestInterruptWhileIdle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	eng := newFakeEngine()
	s := newTestSequencer(t, t.TempDir(), eng, &fakeGate{}, Config{})

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	out := runToHalt(t, ctx, s)

	if out.Reason != HaltInterrupted {
		t.Fatalf("Expected interrupted, got %v", out)
	}
	if n := eng.callCount(); n != 0 {
		t.Errorf("Expected no engine calls, got %v", eng.calls)
	}
}

func TestGateErrorHalts(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.pptx", "b.pptx")

	eng := newFakeEngine()
	g := &fakeGate{err: errors.New("tty closed")}
	s := newTestSequencer(t, dir, eng, g, Config{})

	out := runToHalt(t, context.Background(), s)

	if out.Reason != HaltFailed {
		t.Fatalf("Expected failed, got %v", out)
	}
	if !errors.Is(out.Err, ErrGateFailed) {
		t.Errorf("Expected ErrGateFailed, got %v", out.Err)
	}
	if got := eng.opened(); !reflect.DeepEqual(got, []string{"a.pptx"}) {
		t.Errorf("Unexpected opens: %v", got)
	}
}

func TestStatus(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.pptx", "b.pptx")

	eng := newFakeEngine()
	eng.slides["a.pptx"] = 4
	s := newTestSequencer(t, dir, eng, &fakeGate{answer: false}, Config{})

	initial := s.Status()
	if initial.State != "idle" || initial.Current != nil || initial.Halted {
		t.Errorf("Unexpected initial status: %+v", initial)
	}
	if initial.PlaylistSize != 2 || initial.PlaylistVersion != 1 {
		t.Errorf("Unexpected playlist info: %+v", initial)
	}

	var during Status
	eng.position = func(title string, poll int) (int, error) {
		if poll == 1 {
			during = s.Status()
			return 3, nil
		}
		return 5, nil
	}

	runToHalt(t, context.Background(), s)

	if during.State != "presenting" {
		t.Errorf("Expected presenting, got %s", during.State)
	}
	if during.Current == nil || during.Current.Title != "a.pptx" {
		t.Errorf("Expected current a.pptx, got %+v", during.Current)
	}
	if during.SlideCount != 4 || during.Slide != 1 || during.Since == nil {
		t.Errorf("Unexpected show progress: %+v", during)
	}

	final := s.Status()
	if !final.Halted || final.HaltReason != "declined" || final.Error != "" {
		t.Errorf("Unexpected final status: %+v", final)
	}
	if final.Played != 1 || s.Played() != 1 {
		t.Errorf("Expected 1 played, got %d", final.Played)
	}
	if s.Uptime() <= 0 {
		t.Errorf("Expected positive uptime, got %v", s.Uptime())
	}
	if s.Ready() {
		t.Error("Halted sequencer should not be ready")
	}
}

func TestWatchChangesReloads(t *testing.T) {
	dir := t.TempDir()
	rec := &transitionRecorder{}
	s := newTestSequencer(t, dir, newFakeEngine(), &fakeGate{}, Config{}, WithObserver(rec))

	events := make(chan notifier.ChangeEvent)
	done := make(chan struct{})
	go func() {
		s.WatchChanges(context.Background(), events)
		close(done)
	}()

	touch(t, dir, "a.pptx")
	events <- notifier.ChangeEvent{Path: filepath.Join(dir, "a.pptx"), Op: notifier.OpCreated, Coalesced: 1}
	touch(t, dir, "b.pptx")
	events <- notifier.ChangeEvent{Path: filepath.Join(dir, "b.pptx"), Op: notifier.OpCreated, Coalesced: 1}
	close(events)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("WatchChanges did not return after channel close")
	}

	if got := s.Playlist().Titles(); !reflect.DeepEqual(got, []string{"a.pptx", "b.pptx"}) {
		t.Errorf("Unexpected playlist: %v", got)
	}
	if rec.reload != 2 {
		t.Errorf("Expected 2 reloads, got %d", rec.reload)
	}
}

func TestReloadFailureKeepsSnapshot(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.pptx")
	s := newTestSequencer(t, dir, newFakeEngine(), &fakeGate{}, Config{})

	if err := os.RemoveAll(dir); err != nil {
		t.Fatalf("Failed to remove folder: %v", err)
	}

	if _, err := s.Reload(); err == nil {
		t.Fatal("Expected error for missing folder")
	}
	if got := s.Playlist().Titles(); !reflect.DeepEqual(got, []string{"a.pptx"}) {
		t.Errorf("Previous snapshot should stay current, got %v", got)
	}
}

func TestParseEmptyPolicy(t *testing.T) {
	tests := []struct {
		input   string
		want    EmptyPolicy
		wantErr bool
	}{
		{"", EmptyPolicyWait, false},
		{"wait", EmptyPolicyWait, false},
		{"EXIT", EmptyPolicyExit, false},
		{" exit ", EmptyPolicyExit, false},
		{"forever", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseEmptyPolicy(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseEmptyPolicy(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseEmptyPolicy(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestHaltReasonGraceful(t *testing.T) {
	for _, r := range AllHaltReasons {
		if got, want := r.Graceful(), r != HaltFailed; got != want {
			t.Errorf("%s.Graceful() = %v, want %v", r, got, want)
		}
	}
}

func TestStateString(t *testing.T) {
	want := []string{"idle", "opening", "presenting", "awaiting_confirmation", "halted"}
	for i, st := range AllStates {
		if st.String() != want[i] {
			t.Errorf("State %d = %q, want %q", i, st.String(), want[i])
		}
	}
	if State(42).String() != "unknown(42)" {
		t.Errorf("Unexpected unknown state: %s", State(42))
	}
}
