// Package appstate tracks host application foreground state. Hosts
// bridge OS lifecycle transitions into Set; subscribers get a callback
// each time the app returns to the foreground.
package appstate

import "sync"

// State is the host application lifecycle state.
type State string

const (
	// StateForeground means the app is active and visible.
	StateForeground State = "foreground"
	// StateBackground means the app is backgrounded.
	StateBackground State = "background"
	// StateInactive covers transient states such as the app switcher.
	StateInactive State = "inactive"
)

// Monitor fans out foreground transitions to subscribers. The zero
// state is foreground, matching a freshly launched app, so the first
// Set(StateForeground) is a no-op.
type Monitor struct {
	mu     sync.Mutex
	state  State
	subs   map[int]func()
	nextID int
}

// NewMonitor creates a monitor in the foreground state.
func NewMonitor() *Monitor {
	return &Monitor{
		state: StateForeground,
		subs:  make(map[int]func()),
	}
}

// State returns the current application state.
func (m *Monitor) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Set records a state transition. Subscribers fire exactly once per
// transition into the foreground; repeated foreground reports and
// transitions between background and inactive fire nothing.
func (m *Monitor) Set(state State) {
	m.mu.Lock()
	prev := m.state
	m.state = state

	var callbacks []func()
	if state == StateForeground && prev != StateForeground {
		callbacks = make([]func(), 0, len(m.subs))
		for _, fn := range m.subs {
			callbacks = append(callbacks, fn)
		}
	}
	m.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
}

// Subscription is a handle to an active subscription.
type Subscription struct {
	cancel func()
	once   sync.Once
}

// Cancel removes the subscription. Canceling twice is a no-op.
func (s *Subscription) Cancel() {
	s.once.Do(s.cancel)
}

// Subscribe registers a callback for foreground transitions. Callbacks
// run synchronously on the goroutine that called Set, outside the
// monitor lock.
func (m *Monitor) Subscribe(fn func()) *Subscription {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	m.mu.Unlock()

	return &Subscription{cancel: func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}}
}
