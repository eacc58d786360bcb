package server

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Scheduler runs deferred tasks grouped by key. All tasks under a key can be
// cancelled at once, which the hub does when a room is deleted.
type Scheduler struct {
	mu      sync.Mutex
	tasks   map[string]map[uint64]*time.Timer
	nextID  uint64
	stopped bool
}

// NewScheduler creates an empty Scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{tasks: make(map[string]map[uint64]*time.Timer)}
}

// Schedule runs fn after delay unless key is cancelled first. It reports
// false if the scheduler has been stopped.
func (s *Scheduler) Schedule(key string, delay time.Duration, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return false
	}

	s.nextID++
	id := s.nextID
	if s.tasks[key] == nil {
		s.tasks[key] = make(map[uint64]*time.Timer)
	}
	s.tasks[key][id] = time.AfterFunc(delay, func() {
		if s.finish(key, id) {
			fn()
		}
	})
	return true
}

// finish removes a fired task. It reports false when the task was cancelled
// after its timer had already fired.
func (s *Scheduler) finish(key string, id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending := s.tasks[key]
	if _, ok := pending[id]; !ok {
		return false
	}
	delete(pending, id)
	if len(pending) == 0 {
		delete(s.tasks, key)
	}
	return true
}

// Cancel stops every pending task under key and returns how many were stopped.
func (s *Scheduler) Cancel(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending := s.tasks[key]
	for _, t := range pending {
		t.Stop()
	}
	delete(s.tasks, key)
	return len(pending)
}

// Pending returns the number of tasks waiting under key.
func (s *Scheduler) Pending(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks[key])
}

// Stop cancels everything and rejects further tasks.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	for key, pending := range s.tasks {
		for _, t := range pending {
			t.Stop()
		}
		delete(s.tasks, key)
	}
}

// replyDelay draws a companion latency from [lo, hi].
func replyDelay(lo, hi time.Duration) time.Duration {
	if hi <= lo {
		return lo
	}
	return lo + rand.N(hi-lo+1)
}
