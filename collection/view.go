// Package collection holds a fetched set of pull request records, the
// label taxonomy derived from it, and the subset selected by a single
// label filter.
package collection

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrClosed is returned by Load once the view has been torn down.
	ErrClosed = errors.New("view closed")

	// ErrSuperseded is returned by a Load whose result arrived after a
	// newer Load started. The stale result is not applied.
	ErrSuperseded = errors.New("load superseded by a newer load")
)

// Snapshot is a point-in-time copy of a View's state. The slices are
// shared with the view and must not be modified.
type Snapshot struct {
	State   LoadState
	Message string   // Set only when State is Failed.
	All     []Record // Full set as last fetched.
	Labels  []string // Label universe of All.
	Filter  string   // Active filter, or NoFilter.
	Visible []Record // All restricted to Filter.
}

// WithFilter returns a copy of s with Filter set to selection and
// Visible recomputed from All. It does not touch the originating view.
func (s Snapshot) WithFilter(selection string) Snapshot {
	s.Filter = selection
	if s.State == Ready {
		s.Visible = Filter(s.All, selection)
	}
	return s
}

// Empty reports whether a ready snapshot has nothing to show.
func (s Snapshot) Empty() bool {
	return s.State == Ready && len(s.Visible) == 0
}

// View owns the record collection for as long as a presentation is
// mounted. Load populates it, SetFilter narrows it, Close discards it.
type View struct {
	source Source

	mu         sync.Mutex
	generation uint64
	closed     bool
	state      LoadState
	message    string
	all        []Record
	labels     []string
	filter     string
	visible    []Record

	nextObserver int
	observers    map[int]func(Snapshot)
	seq          uint64 // Bumped on every published mutation.

	deliverMu sync.Mutex
	delivered uint64 // Highest seq handed to observers.
}

// New returns a view in the Loading state with an empty collection.
func New(src Source) *View {
	return &View{
		source:    src,
		state:     Loading,
		filter:    NoFilter,
		all:       []Record{},
		labels:    []string{},
		visible:   []Record{},
		observers: make(map[int]func(Snapshot)),
	}
}

// Load fetches the collection from the source exactly once. On
// failure the view is Failed with FailedMessage and an empty
// collection; the fetch error is returned wrapped. On success the
// label universe is rebuilt, the filter is cleared and every record is
// visible.
//
// If the view is closed, or another Load starts, before the fetch
// returns, the result is dropped and ErrClosed or ErrSuperseded is
// returned.
func (v *View) Load(ctx context.Context) error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return ErrClosed
	}
	v.generation++
	gen := v.generation
	v.state = Loading
	v.message = ""
	v.resetLocked()
	snap, seq := v.publishLocked()
	v.mu.Unlock()
	v.notify(snap, seq)

	records, fetchErr := v.source.Fetch(ctx)

	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return ErrClosed
	}
	if gen != v.generation {
		v.mu.Unlock()
		return ErrSuperseded
	}

	if fetchErr != nil {
		v.state = Failed
		v.message = FailedMessage
		v.resetLocked()
	} else {
		v.all = normalise(records)
		v.labels = LabelUniverse(v.all)
		v.filter = NoFilter
		v.visible = v.all
		v.state = Ready
	}
	snap, seq = v.publishLocked()
	v.mu.Unlock()
	v.notify(snap, seq)

	if fetchErr != nil {
		return fmt.Errorf("%s: %w", FailedMessage, fetchErr)
	}
	return nil
}

// SetFilter makes selection the active filter and recomputes the
// visible set from the full collection. A selection that no record
// carries yields an empty visible set. It never fails.
func (v *View) SetFilter(selection string) {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.filter = selection
	v.visible = Filter(v.all, selection)
	snap, seq := v.publishLocked()
	v.mu.Unlock()
	v.notify(snap, seq)
}

// Snapshot returns the current state.
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshotLocked()
}

// Subscribe registers fn to be called with the new state after every
// mutation. fn runs on the goroutine that caused the mutation and must
// not call back into the view's mutating methods. Deliveries are
// serialised and never go backwards: a snapshot older than one already
// delivered is skipped. The returned function removes the
// subscription.
func (v *View) Subscribe(fn func(Snapshot)) func() {
	v.mu.Lock()
	defer v.mu.Unlock()

	id := v.nextObserver
	v.nextObserver++
	v.observers[id] = fn

	return func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		delete(v.observers, id)
	}
}

// Close tears the view down. State and observers are discarded, the
// view reports Loading with an empty collection, and any Load still in
// flight will drop its result. Close is idempotent.
func (v *View) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.closed = true
	v.state = Loading
	v.message = ""
	v.resetLocked()
	v.observers = make(map[int]func(Snapshot))
}

func (v *View) resetLocked() {
	v.all = []Record{}
	v.labels = []string{}
	v.filter = NoFilter
	v.visible = []Record{}
}

func (v *View) snapshotLocked() Snapshot {
	return Snapshot{
		State:   v.state,
		Message: v.message,
		All:     v.all,
		Labels:  v.labels,
		Filter:  v.filter,
		Visible: v.visible,
	}
}

func (v *View) publishLocked() (Snapshot, uint64) {
	v.seq++
	return v.snapshotLocked(), v.seq
}

func (v *View) notify(snap Snapshot, seq uint64) {
	v.deliverMu.Lock()
	defer v.deliverMu.Unlock()

	if seq <= v.delivered {
		return
	}
	v.delivered = seq

	v.mu.Lock()
	fns := make([]func(Snapshot), 0, len(v.observers))
	for _, fn := range v.observers {
		fns = append(fns, fn)
	}
	v.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

// normalise copies records, replacing absent label lists with empty
// ones.
func normalise(records []Record) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		if r.Labels == nil {
			r.Labels = []Label{}
		}
		out[i] = r
	}
	return out
}
