package appstate

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMonitor_FiresOncePerForegroundTransition(t *testing.T) {
	t.Parallel()

	m := NewMonitor()
	var fired int
	m.Subscribe(func() { fired++ })

	// Already foreground; reporting it again fires nothing.
	m.Set(StateForeground)
	assert.Equal(t, 0, fired)

	m.Set(StateBackground)
	assert.Equal(t, 0, fired)

	m.Set(StateForeground)
	assert.Equal(t, 1, fired)

	// Inactive to foreground also counts as a return.
	m.Set(StateInactive)
	m.Set(StateForeground)
	assert.Equal(t, 2, fired)

	// Background to inactive is not a foreground transition.
	m.Set(StateBackground)
	m.Set(StateInactive)
	assert.Equal(t, 2, fired)
}

func TestMonitor_State(t *testing.T) {
	t.Parallel()

	m := NewMonitor()
	assert.Equal(t, StateForeground, m.State())

	m.Set(StateBackground)
	assert.Equal(t, StateBackground, m.State())
}

func TestSubscription_Cancel(t *testing.T) {
	t.Parallel()

	m := NewMonitor()
	var fired int
	sub := m.Subscribe(func() { fired++ })

	m.Set(StateBackground)
	m.Set(StateForeground)
	assert.Equal(t, 1, fired)

	sub.Cancel()
	m.Set(StateBackground)
	m.Set(StateForeground)
	assert.Equal(t, 1, fired)

	// Canceling twice is a no-op.
	assert.NotPanics(t, sub.Cancel)
}

func TestMonitor_MultipleSubscribers(t *testing.T) {
	t.Parallel()

	m := NewMonitor()
	var a, b int
	m.Subscribe(func() { a++ })
	subB := m.Subscribe(func() { b++ })

	m.Set(StateBackground)
	m.Set(StateForeground)
	assert.Equal(t, 1, a)
	assert.Equal(t, 1, b)

	subB.Cancel()
	m.Set(StateBackground)
	m.Set(StateForeground)
	assert.Equal(t, 2, a)
	assert.Equal(t, 1, b)
}

func TestMonitor_ConcurrentSetAndSubscribe(t *testing.T) {
	t.Parallel()

	m := NewMonitor()
	var mu sync.Mutex
	fired := 0

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sub := m.Subscribe(func() {
				mu.Lock()
				fired++
				mu.Unlock()
			})
			defer sub.Cancel()
			m.Set(StateBackground)
			m.Set(StateForeground)
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.GreaterOrEqual(t, fired, 0)
}
