package focus

import (
	"testing"

	"github.com/go-drift/scene/pkg/graphics"
)

type testView struct {
	rect     graphics.Rect
	disabled bool
}

func (v *testView) FocusRect() graphics.Rect { return v.rect }
func (v *testView) CanFocus() bool           { return !v.disabled }

func TestForgetClearsEverySlot(t *testing.T) {
	m := NewManager()
	v := &testView{rect: graphics.RectFromLTWH(0, 0, 10, 10)}
	other := &testView{}

	var changes []Slot
	m.OnChange = func(slot Slot, old, current Target) {
		if current == nil {
			changes = append(changes, slot)
		}
	}

	m.Focus(v)
	m.Set(SlotHover, v)
	m.Set(SlotDrag, other)
	m.Set(SlotMenu, v)
	m.Register(v)

	if got := m.Holds(v); len(got) != 3 {
		t.Fatalf("Holds = %v, want 3 slots", got)
	}
	if n := m.Forget(v); n != 3 {
		t.Errorf("Forget cleared %d slots, want 3", n)
	}
	if m.Focused() != nil {
		t.Error("focus should be cleared")
	}
	if m.Get(SlotDrag) != other {
		t.Error("unrelated slot must be kept")
	}
	if len(m.Focusables()) != 0 {
		t.Error("forgotten view must leave traversal order")
	}
	if len(changes) != 3 {
		t.Errorf("OnChange fired %d clears, want 3", len(changes))
	}
}

func TestFocusRejectsDisabled(t *testing.T) {
	m := NewManager()
	if m.Focus(&testView{disabled: true}) {
		t.Error("disabled view must not take focus")
	}
	if m.Focused() != nil {
		t.Error("focus should stay empty")
	}
}

func TestMoveFocusWrapsAndSkipsDisabled(t *testing.T) {
	m := NewManager()
	a := &testView{}
	b := &testView{disabled: true}
	c := &testView{}
	m.Register(a)
	m.Register(b)
	m.Register(c)
	m.Register(a) // duplicates ignored

	if !m.MoveFocus(1) || m.Focused() != a {
		t.Fatalf("first MoveFocus should focus a, got %v", m.Focused())
	}
	if !m.MoveFocus(1) || m.Focused() != c {
		t.Errorf("MoveFocus should skip disabled b, got %v", m.Focused())
	}
	if !m.MoveFocus(1) || m.Focused() != a {
		t.Errorf("MoveFocus should wrap to a, got %v", m.Focused())
	}
	if !m.MoveFocus(-1) || m.Focused() != c {
		t.Errorf("MoveFocus(-1) should wrap back to c, got %v", m.Focused())
	}
}

func TestFocusInDirection(t *testing.T) {
	m := NewManager()
	center := &testView{rect: graphics.RectFromLTWH(100, 100, 10, 10)}
	right := &testView{rect: graphics.RectFromLTWH(200, 100, 10, 10)}
	rightFar := &testView{rect: graphics.RectFromLTWH(300, 100, 10, 10)}
	below := &testView{rect: graphics.RectFromLTWH(100, 200, 10, 10)}
	for _, v := range []*testView{center, right, rightFar, below} {
		m.Register(v)
	}
	m.Focus(center)

	if !m.FocusInDirection(TraversalDirectionRight) || m.Focused() != right {
		t.Errorf("right of center should be right, got %+v", m.Focused())
	}
	m.Focus(center)
	if !m.FocusInDirection(TraversalDirectionDown) || m.Focused() != below {
		t.Errorf("below center should be below, got %+v", m.Focused())
	}
}

func TestSlotString(t *testing.T) {
	if SlotCaret.String() != "caret" || Slot(42).String() != "unknown" {
		t.Error("unexpected slot names")
	}
}
