package workerpool

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitRunsTask(t *testing.T) {
	p := New(2)
	defer p.Shutdown()

	done := make(chan struct{})
	require.NoError(t, p.Submit(func() { close(done) }))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("task never ran")
	}
}

func TestSubmitAfterShutdown(t *testing.T) {
	p := New(1)
	p.Shutdown()

	assert.ErrorIs(t, p.Submit(func() {}), ErrPoolClosed)
	assert.ErrorIs(t, p.SubmitWait(func() {}), ErrPoolClosed)
}

func TestSubmitFull(t *testing.T) {
	p := New(1)
	defer p.Shutdown()

	block := make(chan struct{})
	var once sync.Once
	defer once.Do(func() { close(block) })

	// Occupy the single worker, then fill the queue.
	require.NoError(t, p.Submit(func() { <-block }))

	var err error
	for i := 0; i < 10; i++ {
		if err = p.Submit(func() {}); err != nil {
			break
		}
	}
	assert.ErrorIs(t, err, ErrPoolFull)

	once.Do(func() { close(block) })
}

func TestShutdownWaitsForInflight(t *testing.T) {
	p := New(2)

	var ran atomic.Int32
	for i := 0; i < 5; i++ {
		require.NoError(t, p.SubmitWait(func() {
			time.Sleep(10 * time.Millisecond)
			ran.Add(1)
		}))
	}

	p.Shutdown()
	assert.EqualValues(t, 5, ran.Load())
}

func TestPanicInTaskDoesNotKillWorker(t *testing.T) {
	p := New(1)
	defer p.Shutdown()

	require.NoError(t, p.SubmitWait(func() { panic("boom") }))

	done := make(chan struct{})
	require.NoError(t, p.SubmitWait(func() { close(done) }))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker died after panic")
	}
}

func TestGroupWaitsForAllTasks(t *testing.T) {
	p := New(4)
	defer p.Shutdown()

	const n = 50
	results := make([]int, n)

	g := p.Group()
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() { results[i] = i + 1 })
	}
	g.Wait()

	for i, v := range results {
		assert.Equal(t, i+1, v, "slot %d", i)
	}
}

func TestGroupRunsInlineWhenPoolClosed(t *testing.T) {
	p := New(1)
	p.Shutdown()

	var ran atomic.Bool
	g := p.Group()
	g.Go(func() { ran.Store(true) })
	g.Wait()

	assert.True(t, ran.Load())
}

func TestGroupSurvivesPanickingTask(t *testing.T) {
	p := New(2)
	defer p.Shutdown()

	g := p.Group()
	g.Go(func() { panic("boom") })
	g.Go(func() {})

	done := make(chan struct{})
	go func() {
		g.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait hung after a task panicked")
	}
}
