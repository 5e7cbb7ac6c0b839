package update

import (
	"testing"

	"github.com/go-drift/scene/pkg/errors"
)

type testTarget struct {
	name      string
	depth     int
	hidden    bool
	destroyed bool
	kinds     []Kind
	onUpdate  func(Kind)
	log       *[]string
}

func (t *testTarget) Update(kind Kind) {
	t.kinds = append(t.kinds, kind)
	if t.log != nil {
		*t.log = append(*t.log, t.name)
	}
	if t.onUpdate != nil {
		t.onUpdate(kind)
	}
}

func (t *testTarget) Depth() int      { return t.depth }
func (t *testTarget) Hidden() bool    { return t.hidden }
func (t *testTarget) Destroyed() bool { return t.destroyed }

type testDisposer struct {
	name string
	log  *[]string
}

func (d *testDisposer) Dispose() {
	*d.log = append(*d.log, d.name)
}

func TestPostMergesRequests(t *testing.T) {
	s := NewScheduler(0)
	target := &testTarget{}

	for i := 0; i < 5; i++ {
		s.Post(target, Paint)
	}
	s.Post(target, Layout)

	if got := s.Pending(target); got != LayoutPaint {
		t.Errorf("Pending = %v, want %v", got, LayoutPaint)
	}
	stats, err := s.Drain()
	if err != nil {
		t.Fatalf("Drain: %v", err)
	}
	if len(target.kinds) != 1 {
		t.Fatalf("Update called %d times, want 1", len(target.kinds))
	}
	if stats.Updates != 1 || stats.Passes != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestKindMerge(t *testing.T) {
	tests := []struct {
		a, b Kind
		want Kind
	}{
		{Paint, Paint, Paint},
		{Paint, Layout | Paint, Layout | Paint},
		{Layout | MoveOnly | Paint, Paint, Layout | MoveOnly | Paint},
		{Layout | MoveOnly | Paint, Layout | MoveOnly | Paint, Layout | MoveOnly | Paint},
		{Layout | MoveOnly | Paint, Layout | Paint, Layout | Paint},
		{Paint | Hidden, Layout | Paint, Layout | Paint | Hidden},
	}
	for _, tt := range tests {
		if got := tt.a.Merge(tt.b); got != tt.want {
			t.Errorf("%v.Merge(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestKindNormalizeAndString(t *testing.T) {
	if got := Layout.normalize(); got != LayoutPaint {
		t.Errorf("Layout.normalize() = %v, want layout|paint", got)
	}
	if got := (Paint | MoveOnly).normalize(); got != Paint {
		t.Errorf("move-only without layout should drop MoveOnly, got %v", got)
	}
	if got := (LayoutPaint | Hidden | MoveOnly).String(); got != "layout|paint|hidden|move" {
		t.Errorf("String() = %q", got)
	}
	if got := Kind(0).String(); got != "none" {
		t.Errorf("String() = %q, want none", got)
	}
}

func TestDrainOrdersParentsFirst(t *testing.T) {
	var log []string
	s := NewScheduler(0)
	child := &testTarget{name: "child", depth: 2, log: &log}
	root := &testTarget{name: "root", depth: 0, log: &log}
	mid := &testTarget{name: "mid", depth: 1, log: &log}

	s.Post(child, Paint)
	s.Post(root, Layout)
	s.Post(mid, Paint)
	if _, err := s.Drain(); err != nil {
		t.Fatal(err)
	}

	want := []string{"root", "mid", "child"}
	if len(log) != len(want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("log[%d] = %q, want %q", i, log[i], want[i])
		}
	}
}

func TestDeletionsRunBeforeUpdates(t *testing.T) {
	var log []string
	s := NewScheduler(0)
	s.Post(&testTarget{name: "update", log: &log}, Paint)
	s.PostDelete(&testDisposer{name: "delete", log: &log})

	stats, err := s.Drain()
	if err != nil {
		t.Fatal(err)
	}
	if len(log) != 2 || log[0] != "delete" || log[1] != "update" {
		t.Errorf("log = %v, want [delete update]", log)
	}
	if stats.Deletions != 1 {
		t.Errorf("Deletions = %d, want 1", stats.Deletions)
	}
}

func TestRequestsPostedDuringPassRunNextPass(t *testing.T) {
	s := NewScheduler(0)
	parent := &testTarget{name: "parent"}
	child := &testTarget{name: "child", depth: 1}
	child.onUpdate = func(Kind) {
		// a child's natural size changed: the parent must relayout
		if len(parent.kinds) == 0 {
			s.Post(parent, Layout)
		}
	}
	s.Post(child, Layout)

	stats, err := s.Drain()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Passes != 2 {
		t.Errorf("Passes = %d, want 2", stats.Passes)
	}
	if len(parent.kinds) != 1 || len(child.kinds) != 1 {
		t.Errorf("parent=%d child=%d updates, want 1 each", len(parent.kinds), len(child.kinds))
	}
	if s.State() != StateIdle {
		t.Errorf("State = %v, want idle", s.State())
	}
}

func TestDrainBoundsPasses(t *testing.T) {
	c, restore := errors.Capture()
	defer restore()

	s := NewScheduler(3)
	target := &testTarget{}
	target.onUpdate = func(Kind) { s.Post(target, Paint) }
	s.Post(target, Paint)

	stats, err := s.Drain()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Passes != 3 || stats.Deferred != 1 {
		t.Errorf("stats = %+v, want 3 passes and 1 deferred", stats)
	}
	if s.State() != StateRequested {
		t.Errorf("State = %v, want requested", s.State())
	}
	if c.Count(errors.KindSchedule) != 1 {
		t.Errorf("expected one deferral warning, got %d", c.Count(errors.KindSchedule))
	}
}

func TestHiddenTargetsSkippedUnlessRequested(t *testing.T) {
	s := NewScheduler(0)
	hidden := &testTarget{hidden: true}
	s.Post(hidden, Paint)
	stats, _ := s.Drain()
	if len(hidden.kinds) != 0 || stats.Skipped != 1 {
		t.Errorf("hidden target updated %d times, skipped %d", len(hidden.kinds), stats.Skipped)
	}

	s.Post(hidden, Layout|Hidden)
	s.Drain()
	if len(hidden.kinds) != 1 {
		t.Errorf("Hidden request should update hidden target, got %d updates", len(hidden.kinds))
	}
}

func TestDestroyedTargetsIgnored(t *testing.T) {
	s := NewScheduler(0)
	target := &testTarget{}
	s.Post(target, Paint)
	target.destroyed = true
	s.Drain()
	if len(target.kinds) != 0 {
		t.Error("destroyed target must not be updated")
	}
	s.Post(target, Paint)
	if s.HasWork() {
		t.Error("posting a destroyed target should be ignored")
	}
}

func TestCancel(t *testing.T) {
	s := NewScheduler(0)
	a, b := &testTarget{}, &testTarget{}
	s.Post(a, Paint)
	s.Post(b, Paint)
	s.Cancel(a)
	s.Drain()
	if len(a.kinds) != 0 || len(b.kinds) != 1 {
		t.Errorf("a=%d b=%d updates, want 0 and 1", len(a.kinds), len(b.kinds))
	}
}

func TestReentrantDrainRejected(t *testing.T) {
	_, restore := errors.Capture()
	defer restore()

	s := NewScheduler(0)
	var inner error
	target := &testTarget{}
	target.onUpdate = func(Kind) { _, inner = s.Drain() }
	s.Post(target, Paint)
	s.Drain()

	if !errors.Is(inner, errors.ErrReentrantDrain) {
		t.Errorf("inner Drain error = %v, want ErrReentrantDrain", inner)
	}
}

func TestPostFuncAndOnRequested(t *testing.T) {
	s := NewScheduler(0)
	wakeups := 0
	s.OnRequested = func() { wakeups++ }

	ran := 0
	s.PostFunc(func() { ran++ })
	s.PostFunc(func() { ran++ })
	if wakeups != 1 {
		t.Errorf("wakeups = %d, want 1", wakeups)
	}
	if s.State() != StateRequested {
		t.Errorf("State = %v, want requested", s.State())
	}
	stats, _ := s.Drain()
	if ran != 2 || stats.Callbacks != 2 {
		t.Errorf("ran = %d callbacks = %d, want 2", ran, stats.Callbacks)
	}
}

func TestPanickingUpdateDoesNotAbortDrain(t *testing.T) {
	c, restore := errors.Capture()
	defer restore()

	s := NewScheduler(0)
	bad := &testTarget{onUpdate: func(Kind) { panic("bad target") }}
	good := &testTarget{depth: 1}
	s.Post(bad, Paint)
	s.Post(good, Paint)
	s.Drain()

	if len(good.kinds) != 1 {
		t.Error("drain should continue after a panicking target")
	}
	if len(c.Panics) != 1 {
		t.Errorf("expected 1 recovered panic, got %d", len(c.Panics))
	}
}
