package scheduler

import (
	"sort"
	"sync"
	"time"
)

// Handle refers to a scheduled callback
type Handle interface {
	// Cancel stops the callback if it has not run yet
	// Returns true if the call prevented the callback from running
	Cancel() bool
}

// Scheduler runs callbacks after a delay
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) Handle
}

// Timer schedules callbacks on the wall clock
type Timer struct{}

// NewTimer creates a wall-clock scheduler
func NewTimer() *Timer {
	return &Timer{}
}

type timerHandle struct {
	t *time.Timer
}

func (h *timerHandle) Cancel() bool {
	return h.t.Stop()
}

// Schedule implements Scheduler
func (s *Timer) Schedule(delay time.Duration, fn func()) Handle {
	return &timerHandle{t: time.AfterFunc(delay, fn)}
}

// Manual is a Scheduler driven by Advance, for deterministic tests
type Manual struct {
	now   time.Duration
	seq   uint64
	tasks []*manualTask
	mu    sync.Mutex
}

type manualTask struct {
	m        *Manual
	due      time.Duration
	seq      uint64
	fn       func()
	canceled bool
	fired    bool
}

// NewManual creates a scheduler whose clock starts at zero
func NewManual() *Manual {
	return &Manual{}
}

// Schedule implements Scheduler
func (m *Manual) Schedule(delay time.Duration, fn func()) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	task := &manualTask{m: m, due: m.now + delay, seq: m.seq, fn: fn}
	m.tasks = append(m.tasks, task)
	return task
}

func (t *manualTask) Cancel() bool {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()

	if t.fired || t.canceled {
		return false
	}
	t.canceled = true
	t.m.removeLocked(t)
	return true
}

func (m *Manual) removeLocked(target *manualTask) {
	for i, task := range m.tasks {
		if task == target {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return
		}
	}
}

// Advance moves the clock forward and runs every callback that became due, in due order
// Callbacks run on the caller's goroutine without the scheduler lock held
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		m.mu.Lock()
		sort.SliceStable(m.tasks, func(i, j int) bool {
			if m.tasks[i].due == m.tasks[j].due {
				return m.tasks[i].seq < m.tasks[j].seq
			}
			return m.tasks[i].due < m.tasks[j].due
		})
		if len(m.tasks) == 0 || m.tasks[0].due > target {
			m.now = target
			m.mu.Unlock()
			return
		}
		task := m.tasks[0]
		m.tasks = m.tasks[1:]
		m.now = task.due
		task.fired = true
		m.mu.Unlock()

		task.fn()
	}
}

// Pending returns the number of callbacks waiting to run
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

// Now returns the elapsed manual time
func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}
