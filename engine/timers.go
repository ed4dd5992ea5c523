package engine

import (
	"slices"
	"time"

	"github.com/kamstrup/intmap"
)

// TimerID identifies a scheduled one-shot callback. The zero value never
// refers to a timer, so it can be used as "no timer pending".
type TimerID uint64

type timer struct {
	id  TimerID
	due time.Duration
	fn  func()
}

// Timers runs one-shot callbacks against the frame clock. A timer fires at
// the end of the first frame whose elapsed time reaches its deadline.
// Cancelling a timer, or cancelling all of them, guarantees the callback will
// never run; cancelling an unknown or already fired id is a no-op.
type Timers struct {
	now     time.Duration
	nextID  TimerID
	pending *intmap.Map[TimerID, *timer]
	queue   []*timer
}

// NewTimers creates an empty timer set starting at time zero.
func NewTimers() *Timers {
	return &Timers{
		pending: intmap.New[TimerID, *timer](8),
	}
}

// Now returns the current frame clock.
func (t *Timers) Now() time.Duration {
	return t.now
}

// After schedules fn to run once d has elapsed on the frame clock.
func (t *Timers) After(d time.Duration, fn func()) TimerID {
	if d < 0 {
		d = 0
	}
	t.nextID++
	tm := &timer{id: t.nextID, due: t.now + d, fn: fn}
	t.pending.Put(tm.id, tm)

	idx, _ := slices.BinarySearchFunc(t.queue, tm, compareTimers)
	t.queue = slices.Insert(t.queue, idx, tm)
	return tm.id
}

// Cancel prevents the timer from firing. Returns false if it was not pending.
func (t *Timers) Cancel(id TimerID) bool {
	if id == 0 {
		return false
	}
	return t.pending.Del(id)
}

// CancelAll cancels every pending timer and returns how many were dropped.
func (t *Timers) CancelAll() int {
	n := t.pending.Len()
	t.pending.Clear()
	clear(t.queue)
	t.queue = t.queue[:0]
	return n
}

// Pending returns the number of timers that have not fired or been cancelled.
func (t *Timers) Pending() int {
	return t.pending.Len()
}

// Advance moves the clock forward by dt and fires every due timer in deadline
// order. Timers scheduled by a firing callback with a zero delay fire in the
// same call. Returns the number of callbacks run.
func (t *Timers) Advance(dt time.Duration) int {
	if dt > 0 {
		t.now += dt
	}

	fired := 0
	for len(t.queue) > 0 {
		next := t.queue[0]
		if next.due > t.now {
			break
		}
		t.queue[0] = nil
		t.queue = t.queue[1:]

		if _, ok := t.pending.Get(next.id); !ok {
			continue
		}
		t.pending.Del(next.id)
		next.fn()
		fired++
	}
	return fired
}

func compareTimers(a, b *timer) int {
	if a.due != b.due {
		if a.due < b.due {
			return -1
		}
		return 1
	}
	if a.id < b.id {
		return -1
	}
	if a.id > b.id {
		return 1
	}
	return 0
}
