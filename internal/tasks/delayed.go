package tasks

import (
	"sync"
	"time"
)

// Scheduler runs actions after a delay and can cancel them as a group.
// An action either runs exactly once or not at all.
type Scheduler struct {
	mu     sync.Mutex
	wg     sync.WaitGroup
	nextID uint64
	timers map[uint64]*time.Timer
	closed bool
}

// NewScheduler creates an empty scheduler
func NewScheduler() *Scheduler {
	return &Scheduler{
		timers: make(map[uint64]*time.Timer),
	}
}

// After schedules fn to run once d has elapsed. The returned func cancels
// the action if it has not started yet; calling it more than once is a no-op.
// After a Close, scheduled actions never run.
func (s *Scheduler) After(d time.Duration, fn func()) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return func() {}
	}

	s.nextID++
	id := s.nextID

	s.wg.Add(1)
	s.timers[id] = time.AfterFunc(d, func() {
		defer s.wg.Done()

		s.mu.Lock()
		_, pending := s.timers[id]
		delete(s.timers, id)
		s.mu.Unlock()

		if pending {
			fn()
		}
	})

	return func() { s.cancel(id) }
}

func (s *Scheduler) cancel(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.timers[id]
	if !ok {
		return
	}
	delete(s.timers, id)
	if t.Stop() {
		s.wg.Done()
	}
}

// Pending reports how many actions are still waiting to run
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Close cancels every pending action and waits for running ones to return.
// It must not be called from inside a scheduled action.
func (s *Scheduler) Close() {
	s.mu.Lock()
	s.closed = true
	for id, t := range s.timers {
		delete(s.timers, id)
		if t.Stop() {
			s.wg.Done()
		}
	}
	s.mu.Unlock()

	s.wg.Wait()
}
