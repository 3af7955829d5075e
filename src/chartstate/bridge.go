package chartstate

// Event is a message reported by the rendering surface after control
// has returned to the user. Exactly two kinds exist: a state mutation
// and an asynchronous runtime error.
type Event interface {
	chart() string
}

// StateUpdated carries the whole replacement state for a chart.
type StateUpdated struct {
	ChartID string
	State   State
}

func (e StateUpdated) chart() string { return e.ChartID }

// RuntimeError carries human-readable text to surface to the user.
// It is reported once and never retried; the panel stays up.
type RuntimeError struct {
	ChartID string
	Message string
}

func (e RuntimeError) chart() string { return e.ChartID }

// Bridge is the typed channel between rendering surfaces and the
// store. Surfaces send fire-and-forget events; the bridge applies
// state updates to the store and hands runtime errors to onError.
type Bridge struct {
	store   *Store
	events  chan Event
	done    chan struct{}
	onError func(chartID, message string)
}

// NewBridge starts the dispatch loop. onError may be nil.
func NewBridge(store *Store, onError func(chartID, message string)) *Bridge {
	b := &Bridge{
		store:   store,
		events:  make(chan Event, 64),
		done:    make(chan struct{}),
		onError: onError,
	}
	go b.run()
	return b
}

// Report queues one surface event. State updates are snapshotted here,
// on the caller's goroutine, so the surface may keep mutating its own
// State (legend toggles, zooms) the moment Report returns.
func (b *Bridge) Report(e Event) {
	if ev, ok := e.(StateUpdated); ok {
		ev.State = ev.State.Clone()
		e = ev
	}
	b.events <- e
}

// Close stops the bridge after draining queued events.
func (b *Bridge) Close() {
	close(b.events)
	<-b.done
}

func (b *Bridge) run() {
	defer close(b.done)
	for e := range b.events {
		switch ev := e.(type) {
		case StateUpdated:
			b.store.Put(ev.ChartID, ev.State)
		case RuntimeError:
			if b.onError != nil {
				b.onError(ev.ChartID, ev.Message)
			}
		}
	}
}
