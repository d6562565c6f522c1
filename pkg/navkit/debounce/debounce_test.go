package debounce

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BrandonKowalski/navkit/pkg/navkit/internal/fakeclock"
)

const window = 1500 * time.Millisecond

func TestOnlyStableValueFires(t *testing.T) {
	clock := fakeclock.New()
	var got []string
	d := New(window, clock, func(v string) { got = append(got, v) })

	d.Push("t=0")
	clock.AdvanceTo(300 * time.Millisecond)
	d.Push("t=0.3")
	clock.AdvanceTo(600 * time.Millisecond)
	d.Push("t=0.6")
	clock.AdvanceTo(2 * time.Second)
	d.Push("t=2.0")
	clock.AdvanceTo(10 * time.Second)

	assert.Equal(t, []string{"t=2.0"}, got)
	assert.False(t, d.Pending())
}

func TestFiresExactlyAtWindow(t *testing.T) {
	clock := fakeclock.New()
	fired := 0
	d := New(window, clock, func(int) { fired++ })

	d.Push(1)
	clock.Advance(window - time.Millisecond)
	assert.Equal(t, 0, fired)
	assert.True(t, d.Pending())

	clock.Advance(time.Millisecond)
	assert.Equal(t, 1, fired)
}

func TestSeparatedValuesEachFire(t *testing.T) {
	clock := fakeclock.New()
	var got []int
	d := New(window, clock, func(v int) { got = append(got, v) })

	d.Push(1)
	clock.Advance(2 * time.Second)
	d.Push(2)
	clock.Advance(2 * time.Second)

	assert.Equal(t, []int{1, 2}, got)
}

func TestStopSuppressesPending(t *testing.T) {
	clock := fakeclock.New()
	fired := false
	d := New(window, clock, func(int) { fired = true })

	d.Push(1)
	d.Stop()
	d.Push(2)
	clock.Advance(5 * time.Second)

	assert.False(t, fired)
	assert.False(t, d.Pending())
}

func TestRealClock(t *testing.T) {
	var mu sync.Mutex
	var got []int
	done := make(chan struct{})
	d := New(20*time.Millisecond, nil, func(v int) {
		mu.Lock()
		got = append(got, v)
		mu.Unlock()
		close(done)
	})

	d.Push(1)
	d.Push(2)
	d.Push(3)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("debounced value never fired")
	}
	time.Sleep(40 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{3}, got)
}
