package notifier

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// DefaultSettleDelay is the quiet period required before a change is delivered.
const DefaultSettleDelay = 500 * time.Millisecond

// DefaultPollInterval is how often Poll lists the folder.
const DefaultPollInterval = 2 * time.Second

// Op is the kind of change observed.
type Op string

const (
	// OpCreated means a matching file appeared.
	OpCreated Op = "created"
	// OpModified means a matching file was written.
	OpModified Op = "modified"
	// OpRemoved means a matching file was deleted or renamed away.
	OpRemoved Op = "removed"
)

// AllOps lists every Op, in a stable order.
var AllOps = []Op{OpCreated, OpModified, OpRemoved}

// ChangeEvent is delivered once per settled burst of changes. Path and Op
// describe the last change of the burst; Coalesced counts all of them.
type ChangeEvent struct {
	Path      string
	Op        Op
	Coalesced int
	At        time.Time
}

func (e ChangeEvent) String() string {
	return fmt.Sprintf("%s %s (%d change(s))", e.Op, e.Path, e.Coalesced)
}

// Notifier subscribes to changes in a folder. The returned channel is
// closed when ctx is done.
type Notifier interface {
	Subscribe(ctx context.Context, folder string) (<-chan ChangeEvent, error)
}

// Kind selects a Notifier implementation.
type Kind string

const (
	// KindFS selects the fsnotify implementation.
	KindFS Kind = "fsnotify"
	// KindPoll selects the polling implementation.
	KindPoll Kind = "poll"
)

// ParseKind validates a notifier kind name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindFS, KindPoll:
		return k, nil
	case "", "fs":
		return KindFS, nil
	default:
		return "", fmt.Errorf("unknown change notifier %q (want fsnotify or poll)", s)
	}
}

// settle forwards the last event of each burst from raw to out once no new
// event has arrived for delay. It closes out when raw closes or ctx is done;
// a pending burst is dropped in either case.
func settle(ctx context.Context, delay time.Duration, raw <-chan ChangeEvent, out chan<- ChangeEvent) {
	defer close(out)

	timer := time.NewTimer(delay)
	timer.Stop()
	defer timer.Stop()

	var (
		pending ChangeEvent
		count   int
		fire    <-chan time.Time
	)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-raw:
			if !ok {
				return
			}
			pending = ev
			count++
			timer.Reset(delay)
			fire = timer.C
		case <-fire:
			fire = nil
			pending.Coalesced = count
			pending.At = time.Now()
			count = 0
			select {
			case out <- pending:
			case <-ctx.Done():
				return
			}
		}
	}
}
