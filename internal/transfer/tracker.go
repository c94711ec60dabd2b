package transfer

import (
	"sync"

	"github.com/MrSnakeDoc/altcat/internal/logger"
	"github.com/MrSnakeDoc/altcat/internal/metrics"
	"github.com/google/uuid"
)

// Tracker follows a single transfer at a time. Every Start bumps a
// generation; callbacks carrying an older generation are dropped.
type Tracker struct {
	mu      sync.Mutex
	gen     uint64
	state   TransferState
	current *Handle
	subs    map[int]chan TransferState
	nextSub int
}

func NewTracker() *Tracker {
	return &Tracker{subs: make(map[int]chan TransferState)}
}

// Handle is the transport-side view of one started transfer.
type Handle struct {
	t    *Tracker
	gen  uint64
	id   uuid.UUID
	done chan struct{}
	once sync.Once
}

// Start resets the state for uri and supersedes any previous transfer.
func (t *Tracker) Start(uri string) *Handle {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current != nil {
		if !t.state.Status.IsTerminal() {
			logger.Debug("transfer %s superseded by %s", t.state.URI, uri)
		}
		t.current.finish()
	}

	t.gen++
	h := &Handle{t: t, gen: t.gen, id: uuid.New(), done: make(chan struct{})}
	t.current = h
	t.state = TransferState{ID: h.id, URI: uri, Status: StatusActive}
	t.publishLocked()
	return h
}

// State returns the current snapshot.
func (t *Tracker) State() TransferState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.clone()
}

// Subscribe returns a channel that always holds the most recent state.
// Slow readers miss intermediate updates but never the latest one.
// The current state is delivered immediately.
func (t *Tracker) Subscribe() (<-chan TransferState, func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	ch := make(chan TransferState, 1)
	id := t.nextSub
	t.nextSub++
	t.subs[id] = ch
	ch <- t.state.clone()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			delete(t.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

// ID identifies the transfer this handle reports for.
func (h *Handle) ID() uuid.UUID { return h.id }

// Done is closed once the transfer reaches a terminal state or is superseded.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Active reports whether callbacks from h are still accepted.
func (h *Handle) Active() bool {
	h.t.mu.Lock()
	defer h.t.mu.Unlock()
	return h.acceptingLocked()
}

// OnProgress records written bytes out of expected (<= 0 when unknown).
// It reports whether the update was accepted: stale handles, terminal
// transfers and byte counts lower than the last accepted one are ignored.
func (h *Handle) OnProgress(written, expected int64) bool {
	t := h.t
	t.mu.Lock()
	defer t.mu.Unlock()

	if !h.acceptingLocked() || written < t.state.BytesWritten {
		return false
	}

	t.state.BytesWritten = written
	if expected > 0 {
		e := expected
		t.state.BytesExpected = &e
		t.state.Ratio = max(t.state.Ratio, clamp(float64(written)/float64(expected)))
	}
	t.publishLocked()
	return true
}

// OnComplete marks the transfer finished with its local result.
func (h *Handle) OnComplete(localPath string) bool {
	return h.terminate(func(s *TransferState) {
		s.Status = StatusCompleted
		s.LocalPath = localPath
		s.Ratio = 1
	})
}

// OnFail marks the transfer failed. The ratio keeps its last value.
func (h *Handle) OnFail(err error) bool {
	return h.terminate(func(s *TransferState) {
		s.Status = StatusFailed
		s.Err = err
	})
}

func (h *Handle) terminate(apply func(*TransferState)) bool {
	t := h.t
	t.mu.Lock()
	defer t.mu.Unlock()

	if !h.acceptingLocked() {
		return false
	}
	apply(&t.state)
	t.publishLocked()
	h.finish()
	return true
}

func (h *Handle) acceptingLocked() bool {
	return h.gen == h.t.gen && !h.t.state.Status.IsTerminal()
}

func (h *Handle) finish() {
	h.once.Do(func() { close(h.done) })
}

func (t *Tracker) publishLocked() {
	metrics.TransferRatio.Set(t.state.Ratio)
	for _, ch := range t.subs {
		select {
		case <-ch:
		default:
		}
		ch <- t.state.clone()
	}
}

func clamp(r float64) float64 {
	switch {
	case r < 0:
		return 0
	case r > 1:
		return 1
	default:
		return r
	}
}
