package engine

import (
	"sort"
	"time"
)

type scheduledTask struct {
	id  uint64
	due time.Time
	fn  func()
}

// Scheduler runs one-shot deferred tasks on the game loop goroutine
// Tasks never run on their own goroutine; RunDue must be called every tick
type Scheduler struct {
	clock  TimeProvider
	tasks  []scheduledTask
	nextID uint64
}

// NewScheduler creates a scheduler reading time from clock
func NewScheduler(clock TimeProvider) *Scheduler {
	return &Scheduler{clock: clock}
}

// After schedules fn to run once, no earlier than d from now
func (s *Scheduler) After(d time.Duration, fn func()) uint64 {
	s.nextID++
	s.tasks = append(s.tasks, scheduledTask{
		id:  s.nextID,
		due: s.clock.Now().Add(d),
		fn:  fn,
	})
	return s.nextID
}

// RunDue executes every task whose deadline has passed, earliest first
// Tasks scheduled by a running task wait for the next call
func (s *Scheduler) RunDue() int {
	if len(s.tasks) == 0 {
		return 0
	}
	now := s.clock.Now()

	var due, keep []scheduledTask
	for _, t := range s.tasks {
		if !now.Before(t.due) {
			due = append(due, t)
		} else {
			keep = append(keep, t)
		}
	}
	if len(due) == 0 {
		return 0
	}
	s.tasks = keep

	sort.SliceStable(due, func(i, j int) bool { return due[i].due.Before(due[j].due) })
	for _, t := range due {
		t.fn()
	}
	return len(due)
}

// Pending returns the number of tasks not yet run
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}

// Clear drops all pending tasks without running them
func (s *Scheduler) Clear() {
	s.tasks = nil
}
