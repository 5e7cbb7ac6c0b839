// Package timer runs delayed and periodic callbacks between iterations of
// the interaction loop.
//
// A Queue never calls a timer callback itself. Fire hands every due callback
// to a Poster (the update scheduler), so timer work runs at the start of the
// next drain and never preempts a pass in progress. Hosts call Next to learn
// how long the loop may block waiting for input.
package timer

import (
	"slices"
	"time"
)

// Clock provides time for timers. Tests inject a fake clock with SetClock.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// SystemClock reads the system time.
var SystemClock Clock = realClock{}

// Poster accepts deferred callbacks. update.Scheduler implements it.
type Poster interface {
	PostFunc(fn func())
}

// Timer is a pending callback. The zero value is not usable; timers are
// created by Queue.After and Queue.Every.
type Timer struct {
	q      *Queue
	fn     func()
	due    time.Time
	period time.Duration
	active bool
}

// Stop cancels the timer. It reports whether the timer was still pending.
// A callback already handed to the poster still runs.
func (t *Timer) Stop() bool {
	if !t.active {
		return false
	}
	t.active = false
	t.q.timers = slices.DeleteFunc(t.q.timers, func(o *Timer) bool { return o == t })
	return true
}

// Active reports whether the timer is pending.
func (t *Timer) Active() bool { return t.active }

// Due returns the time the timer fires next.
func (t *Timer) Due() time.Time { return t.due }

// Queue holds the pending timers of one interaction loop. It is not safe
// for concurrent use.
type Queue struct {
	clock  Clock
	post   Poster
	timers []*Timer
}

// NewQueue returns a queue posting due callbacks to post. A nil clock uses
// SystemClock.
func NewQueue(post Poster, clock Clock) *Queue {
	if clock == nil {
		clock = SystemClock
	}
	return &Queue{clock: clock, post: post}
}

// SetClock replaces the time source and returns the previous one.
func (q *Queue) SetClock(c Clock) Clock {
	prev := q.clock
	if c == nil {
		c = SystemClock
	}
	q.clock = c
	return prev
}

// Now returns the queue time.
func (q *Queue) Now() time.Time { return q.clock.Now() }

// After schedules fn once, d from now.
func (q *Queue) After(d time.Duration, fn func()) *Timer {
	return q.add(d, 0, fn)
}

// Every schedules fn every d, starting d from now. Non-positive periods
// are rejected with a nil timer.
func (q *Queue) Every(d time.Duration, fn func()) *Timer {
	if d <= 0 {
		return nil
	}
	return q.add(d, d, fn)
}

func (q *Queue) add(d, period time.Duration, fn func()) *Timer {
	t := &Timer{q: q, fn: fn, due: q.clock.Now().Add(max(d, 0)), period: period, active: true}
	q.timers = append(q.timers, t)
	return t
}

// Len returns the number of pending timers.
func (q *Queue) Len() int { return len(q.timers) }

// Next returns the earliest due time.
func (q *Queue) Next() (time.Time, bool) {
	if len(q.timers) == 0 {
		return time.Time{}, false
	}
	next := q.timers[0].due
	for _, t := range q.timers[1:] {
		if t.due.Before(next) {
			next = t.due
		}
	}
	return next, true
}

// Fire posts the callback of every due timer, earliest first, and returns
// how many were posted. A periodic timer fires at most once per call and is
// rescheduled one period after its due time, or from now when it fell more
// than a period behind.
func (q *Queue) Fire() int {
	now := q.clock.Now()
	var due []*Timer
	for _, t := range q.timers {
		if !t.due.After(now) {
			due = append(due, t)
		}
	}
	slices.SortStableFunc(due, func(a, b *Timer) int { return a.due.Compare(b.due) })

	for _, t := range due {
		if t.period > 0 {
			t.due = t.due.Add(t.period)
			if !t.due.After(now) {
				t.due = now.Add(t.period)
			}
		} else {
			t.Stop()
		}
		if t.fn != nil {
			q.post.PostFunc(t.fn)
		}
	}
	return len(due)
}
