package timer

import (
	"testing"
	"time"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

type poster struct{ funcs []func() }

func (p *poster) PostFunc(fn func()) { p.funcs = append(p.funcs, fn) }

func (p *poster) run() {
	funcs := p.funcs
	p.funcs = nil
	for _, fn := range funcs {
		fn()
	}
}

func newQueue() (*Queue, *fakeClock, *poster) {
	clk := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	p := &poster{}
	return NewQueue(p, clk), clk, p
}

func TestAfterFiresOnceThroughPoster(t *testing.T) {
	q, clk, p := newQueue()
	calls := 0
	tm := q.After(100*time.Millisecond, func() { calls++ })

	if n := q.Fire(); n != 0 {
		t.Errorf("Fire() before due = %d, want 0", n)
	}
	clk.now = clk.now.Add(100 * time.Millisecond)
	if n := q.Fire(); n != 1 {
		t.Errorf("Fire() = %d, want 1", n)
	}
	if calls != 0 {
		t.Error("callbacks must wait for the poster")
	}
	p.run()
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if tm.Active() || q.Len() != 0 {
		t.Error("one-shot timer should be gone after firing")
	}
}

func TestFireOrdersByDueTime(t *testing.T) {
	q, clk, p := newQueue()
	var got []string
	q.After(30*time.Millisecond, func() { got = append(got, "late") })
	q.After(10*time.Millisecond, func() { got = append(got, "early") })
	q.After(20*time.Millisecond, func() { got = append(got, "middle") })

	clk.now = clk.now.Add(time.Second)
	q.Fire()
	p.run()

	want := []string{"early", "middle", "late"}
	for i := range want {
		if i >= len(got) || got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestEveryReschedules(t *testing.T) {
	q, clk, p := newQueue()
	calls := 0
	tm := q.Every(50*time.Millisecond, func() { calls++ })
	start := clk.now

	clk.now = start.Add(50 * time.Millisecond)
	q.Fire()
	if got, want := tm.Due(), start.Add(100*time.Millisecond); !got.Equal(want) {
		t.Errorf("Due = %v, want %v", got, want)
	}

	// far behind: one call, next period counted from now
	clk.now = start.Add(time.Second)
	q.Fire()
	if got, want := tm.Due(), clk.now.Add(50*time.Millisecond); !got.Equal(want) {
		t.Errorf("Due = %v, want %v", got, want)
	}
	p.run()
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}

	if !tm.Stop() || tm.Stop() {
		t.Error("Stop should report true once")
	}
	if q.Every(0, func() {}) != nil {
		t.Error("zero period should be rejected")
	}
}

func TestNext(t *testing.T) {
	q, clk, _ := newQueue()
	if _, ok := q.Next(); ok {
		t.Error("empty queue has no next time")
	}
	q.After(time.Minute, nil)
	q.After(time.Second, nil)
	next, ok := q.Next()
	if !ok || !next.Equal(clk.now.Add(time.Second)) {
		t.Errorf("Next = %v, %v", next, ok)
	}
}
