package sources

import (
	"sync"
	"time"

	"github.com/MrSnakeDoc/altcat/internal/models"
)

// SourceSlot is a point-in-time view of one registered source.
type SourceSlot struct {
	Index       int
	URI         string
	Entries     []models.AppEntry
	Err         error
	LastAttempt time.Time
	LastSuccess time.Time
}

// Fetched reports whether the slot has ever been populated by a successful fetch.
func (s SourceSlot) Fetched() bool { return !s.LastSuccess.IsZero() }

type slot struct {
	mu          sync.RWMutex
	uri         string
	entries     []models.AppEntry
	err         error
	lastAttempt time.Time
	lastSuccess time.Time
}

func (s *slot) snapshot(i int) SourceSlot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]models.AppEntry, len(s.entries))
	copy(entries, s.entries)
	return SourceSlot{
		Index:       i,
		URI:         s.uri,
		Entries:     entries,
		Err:         s.err,
		LastAttempt: s.lastAttempt,
		LastSuccess: s.lastSuccess,
	}
}

// Registry holds the ordered list of catalog sources. The outer lock only
// guards the slice of slots; each slot carries its own lock so completions
// for different sources never contend.
type Registry struct {
	mu    sync.RWMutex
	slots []*slot
	now   func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{now: time.Now}
}

// Register appends an empty slot for uri and returns its index. URIs are not
// validated or de-duplicated here; a bad URI surfaces as a fetch error.
func (r *Registry) Register(uri string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slots = append(r.slots, &slot{uri: uri})
	return len(r.slots) - 1
}

// RegisterAll registers each uri in order and returns the first new index.
func (r *Registry) RegisterAll(uris ...string) int {
	first := r.Len()
	for _, u := range uris {
		r.Register(u)
	}
	return first
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.slots)
}

// List returns a snapshot of every slot in registration order.
func (r *Registry) List() []SourceSlot {
	r.mu.RLock()
	slots := make([]*slot, len(r.slots))
	copy(slots, r.slots)
	r.mu.RUnlock()

	out := make([]SourceSlot, len(slots))
	for i, s := range slots {
		out[i] = s.snapshot(i)
	}
	return out
}

// Slot returns the snapshot of a single slot.
func (r *Registry) Slot(i int) (SourceSlot, bool) {
	s := r.at(i)
	if s == nil {
		return SourceSlot{}, false
	}
	return s.snapshot(i), true
}

// Entries flattens the entries of every slot, in slot order.
func (r *Registry) Entries() []models.AppEntry {
	var out []models.AppEntry
	for _, s := range r.List() {
		out = append(out, s.Entries...)
	}
	return out
}

func (r *Registry) at(i int) *slot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i < 0 || i >= len(r.slots) {
		return nil
	}
	return r.slots[i]
}
