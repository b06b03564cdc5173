package tasks

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestSchedulerRunsAfterDelay(t *testing.T) {
	s := NewScheduler()
	defer s.Close()

	done := make(chan time.Time, 1)
	start := time.Now()
	s.After(20*time.Millisecond, func() { done <- time.Now() })

	select {
	case at := <-done:
		assert.GreaterOrEqual(t, at.Sub(start), 20*time.Millisecond)
	case <-time.After(time.Second):
		t.Fatal("action did not run")
	}
	assert.Eventually(t, func() bool { return s.Pending() == 0 }, time.Second, 5*time.Millisecond)
}

func TestSchedulerCancel(t *testing.T) {
	s := NewScheduler()
	defer s.Close()

	var ran atomic.Int32
	cancel := s.After(30*time.Millisecond, func() { ran.Add(1) })
	assert.Equal(t, 1, s.Pending())

	cancel()
	cancel()

	assert.Equal(t, 0, s.Pending())
	time.Sleep(60 * time.Millisecond)
	assert.Zero(t, ran.Load())
}

func TestSchedulerClose(t *testing.T) {
	s := NewScheduler()

	var ran atomic.Int32
	for i := 0; i < 5; i++ {
		s.After(50*time.Millisecond, func() { ran.Add(1) })
	}
	s.Close()

	// scheduling on a closed scheduler is inert
	cancel := s.After(time.Millisecond, func() { ran.Add(1) })
	cancel()

	time.Sleep(80 * time.Millisecond)
	assert.Zero(t, ran.Load())
	assert.Equal(t, 0, s.Pending())
}

func TestSchedulerCloseWaitsForRunningAction(t *testing.T) {
	s := NewScheduler()

	started := make(chan struct{})
	var finished atomic.Bool
	s.After(0, func() {
		close(started)
		time.Sleep(30 * time.Millisecond)
		finished.Store(true)
	})

	<-started
	s.Close()
	assert.True(t, finished.Load())
}
