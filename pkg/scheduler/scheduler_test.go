package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimerSchedule(t *testing.T) {
	s := NewTimer()

	fired := make(chan struct{})
	s.Schedule(5*time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("scheduled callback did not run")
	}
}

func TestTimerCancel(t *testing.T) {
	s := NewTimer()

	var calls atomic.Int32
	h := s.Schedule(50*time.Millisecond, func() { calls.Add(1) })

	assert.True(t, h.Cancel())
	assert.False(t, h.Cancel(), "second cancel should report nothing was stopped")

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestManualAdvance(t *testing.T) {
	m := NewManual()

	var order []string
	m.Schedule(300*time.Millisecond, func() { order = append(order, "c") })
	m.Schedule(100*time.Millisecond, func() { order = append(order, "a") })
	m.Schedule(100*time.Millisecond, func() { order = append(order, "b") })

	assert.Equal(t, 3, m.Pending())

	m.Advance(99 * time.Millisecond)
	assert.Empty(t, order)

	m.Advance(1 * time.Millisecond)
	assert.Equal(t, []string{"a", "b"}, order)
	assert.Equal(t, 100*time.Millisecond, m.Now())

	m.Advance(time.Second)
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Equal(t, 0, m.Pending())
	assert.Equal(t, 1100*time.Millisecond, m.Now())
}

func TestManualRescheduleFromCallback(t *testing.T) {
	m := NewManual()

	ticks := 0
	var tick func()
	tick = func() {
		ticks++
		if ticks < 3 {
			m.Schedule(100*time.Millisecond, tick)
		}
	}
	m.Schedule(100*time.Millisecond, tick)

	m.Advance(time.Second)
	assert.Equal(t, 3, ticks)
	assert.Equal(t, 0, m.Pending())
}

func TestManualCancel(t *testing.T) {
	m := NewManual()

	called := false
	h := m.Schedule(100*time.Millisecond, func() { called = true })

	assert.True(t, h.Cancel())
	assert.False(t, h.Cancel())
	assert.Equal(t, 0, m.Pending())

	m.Advance(time.Second)
	assert.False(t, called)

	fired := m.Schedule(10*time.Millisecond, func() {})
	m.Advance(10 * time.Millisecond)
	assert.False(t, fired.Cancel(), "cancel after firing should report false")
}
