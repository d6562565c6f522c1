package dispatch

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/navkit/pkg/navkit/internal"
)

func startLoop(t *testing.T) *Loop {
	t.Helper()
	l := New(WithLogger(internal.DiscardLogger()))
	ctx, cancel := context.WithCancel(context.Background())
	go l.Run(ctx)
	t.Cleanup(cancel)
	return l
}

func TestPostRunsInOrder(t *testing.T) {
	l := startLoop(t)

	var got []int
	for i := 0; i < 100; i++ {
		i := i
		require.True(t, l.Post(func() { got = append(got, i) }))
	}
	require.NoError(t, l.Do(context.Background(), func() {}))

	require.Len(t, got, 100)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
}

func TestPostFromManyGoroutines(t *testing.T) {
	l := startLoop(t)

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				l.Post(func() { counter++ })
			}
		}()
	}
	wg.Wait()
	require.NoError(t, l.Do(context.Background(), func() {}))
	assert.Equal(t, 1000, counter)
}

func TestDoInlineOnLoop(t *testing.T) {
	l := startLoop(t)

	ran := false
	err := l.Do(context.Background(), func() {
		assert.True(t, l.OnLoop())
		// Nested Do must not deadlock.
		assert.NoError(t, l.Do(context.Background(), func() { ran = true }))
	})
	require.NoError(t, err)
	assert.True(t, ran)
	assert.False(t, l.OnLoop())
}

func TestStoppedLoopRejectsWork(t *testing.T) {
	l := startLoop(t)
	l.Stop()

	assert.True(t, l.Stopped())
	assert.False(t, l.Post(func() {}))
	assert.ErrorIs(t, l.Do(context.Background(), func() {}), ErrStopped)
}

func TestRunReturnsOnContextCancel(t *testing.T) {
	l := New(WithLogger(internal.DiscardLogger()))
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() { errCh <- l.Run(ctx) }()
	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not return")
	}
	assert.True(t, l.Stopped())
}

func TestPanicDoesNotKillLoop(t *testing.T) {
	l := startLoop(t)

	l.Post(func() { panic("boom") })
	ran := false
	require.NoError(t, l.Do(context.Background(), func() { ran = true }))
	assert.True(t, ran)
}

func TestAfterFuncRunsOnLoop(t *testing.T) {
	l := startLoop(t)

	fired := make(chan bool, 1)
	l.AfterFunc(10*time.Millisecond, func() { fired <- l.OnLoop() })

	select {
	case onLoop := <-fired:
		assert.True(t, onLoop)
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}
}

func TestAfterFuncStop(t *testing.T) {
	l := startLoop(t)

	fired := make(chan struct{}, 1)
	timer := l.AfterFunc(20*time.Millisecond, func() { fired <- struct{}{} })
	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())

	select {
	case <-fired:
		t.Fatal("stopped timer fired")
	case <-time.After(60 * time.Millisecond):
	}
}
