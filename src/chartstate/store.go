// Package chartstate keeps the last known view state of each chart
// panel (axis zoom extremes, per-series visibility) for the lifetime
// of the process. The rendering surface writes on every mutation and
// reads back when a panel is revealed again; nothing touches disk.
package chartstate

import "sync"

// Range is a closed axis interval.
type Range struct {
	Min float64
	Max float64
}

// State is one chart's persisted view state. Nil ranges mean "auto".
// SeriesVisibility carries one flag per rendered series, in series
// order.
type State struct {
	XRange           *Range
	YRange           *Range
	SeriesVisibility []bool
}

// Clone returns a deep copy sharing no backing storage with s. Anything
// that hands a State across goroutines must hand off a Clone.
func (s State) Clone() State {
	out := s
	if s.XRange != nil {
		r := *s.XRange
		out.XRange = &r
	}
	if s.YRange != nil {
		r := *s.YRange
		out.YRange = &r
	}
	out.SeriesVisibility = append([]bool(nil), s.SeriesVisibility...)
	return out
}

// Visible reports the flag for series i, defaulting to visible when
// the state predates that series.
func (s State) Visible(i int) bool {
	if i < 0 || i >= len(s.SeriesVisibility) {
		return true
	}
	return s.SeriesVisibility[i]
}

// Store maps chart identities to their states. Writes are whole-object
// replacement, last write wins; keys are fully independent.
type Store struct {
	mu     sync.RWMutex
	states map[string]State
}

func NewStore() *Store {
	return &Store{states: make(map[string]State)}
}

// Get returns a copy of the stored state for id.
func (st *Store) Get(id string) (State, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.states[id]
	if !ok {
		return State{}, false
	}
	return s.Clone(), true
}

// Put replaces the state for id. Called on every reported mutation
// (zoom, pan, legend toggle, redraw), so it must stay cheap.
func (st *Store) Put(id string, s State) {
	st.mu.Lock()
	st.states[id] = s.Clone()
	st.mu.Unlock()
}

// Delete drops the state for id. Called when a chart's panel is
// permanently torn down.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	delete(st.states, id)
	st.mu.Unlock()
}
