// Package focus tracks the transient display state that points at on-screen
// views: input focus, hover target, drag source, text caret and open menu.
//
// Views are destroyed whenever their placement path disappears, so every
// holder of a view reference must be told. The scene engine calls
// Manager.Forget for each destroyed view; afterwards no slot refers to it.
package focus

import (
	"math"
	"slices"

	"github.com/go-drift/scene/pkg/graphics"
)

// Target is a view that can be held by a display-state slot.
type Target interface {
	// FocusRect returns the target geometry in window coordinates.
	FocusRect() graphics.Rect
}

// Focusable is a target that can take part in focus traversal.
type Focusable interface {
	Target
	CanFocus() bool
}

// Slot identifies one piece of display state.
type Slot uint8

const (
	// SlotFocus holds the view receiving keyboard input.
	SlotFocus Slot = iota
	// SlotHover holds the view under the pointer.
	SlotHover
	// SlotDrag holds the view a drag started from.
	SlotDrag
	// SlotCaret holds the view showing the text caret.
	SlotCaret
	// SlotMenu holds the view of the open menu.
	SlotMenu

	slotCount
)

var slotNames = [...]string{
	SlotFocus: "focus",
	SlotHover: "hover",
	SlotDrag:  "drag",
	SlotCaret: "caret",
	SlotMenu:  "menu",
}

func (s Slot) String() string {
	if s < slotCount {
		return slotNames[s]
	}
	return "unknown"
}

// TraversalDirection indicates the focus traversal direction.
type TraversalDirection int

const (
	// TraversalDirectionUp moves focus upward.
	TraversalDirectionUp TraversalDirection = iota

	// TraversalDirectionDown moves focus downward.
	TraversalDirectionDown

	// TraversalDirectionLeft moves focus leftward.
	TraversalDirectionLeft

	// TraversalDirectionRight moves focus rightward.
	TraversalDirectionRight
)

// Manager holds the display-state slots shared by every window of an engine.
type Manager struct {
	// OnChange is called whenever a slot changes value.
	OnChange func(slot Slot, old, current Target)

	slots [slotCount]Target
	order []Focusable
}

// NewManager returns a manager with every slot empty.
func NewManager() *Manager {
	return &Manager{}
}

// Get returns the target held by slot, or nil.
func (m *Manager) Get(slot Slot) Target {
	if slot >= slotCount {
		return nil
	}
	return m.slots[slot]
}

// Set stores target in slot.
func (m *Manager) Set(slot Slot, target Target) {
	if slot >= slotCount {
		return
	}
	old := m.slots[slot]
	if old == target {
		return
	}
	m.slots[slot] = target
	if m.OnChange != nil {
		m.OnChange(slot, old, target)
	}
}

// Clear empties slot.
func (m *Manager) Clear(slot Slot) {
	m.Set(slot, nil)
}

// Focused returns the view holding input focus, or nil.
func (m *Manager) Focused() Target {
	return m.slots[SlotFocus]
}

// Focus gives input focus to target. Targets implementing Focusable must
// accept focus.
func (m *Manager) Focus(target Target) bool {
	if f, ok := target.(Focusable); ok && !f.CanFocus() {
		return false
	}
	m.Set(SlotFocus, target)
	return true
}

// Holds returns every slot currently referencing target.
func (m *Manager) Holds(target Target) []Slot {
	var held []Slot
	for i, t := range m.slots {
		if t != nil && t == target {
			held = append(held, Slot(i))
		}
	}
	return held
}

// Forget clears every slot referencing target and removes it from focus
// traversal. It returns the number of slots cleared.
func (m *Manager) Forget(target Target) int {
	if target == nil {
		return 0
	}
	cleared := 0
	for i, t := range m.slots {
		if t != nil && t == target {
			m.Set(Slot(i), nil)
			cleared++
		}
	}
	m.order = slices.DeleteFunc(m.order, func(f Focusable) bool { return Target(f) == target })
	return cleared
}

// Register appends target to the focus traversal order.
func (m *Manager) Register(target Focusable) {
	if target == nil || slices.Contains(m.order, target) {
		return
	}
	m.order = append(m.order, target)
}

// Unregister removes target from traversal without touching the slots.
func (m *Manager) Unregister(target Focusable) {
	m.order = slices.DeleteFunc(m.order, func(f Focusable) bool { return f == target })
}

// Focusables returns the traversal order.
func (m *Manager) Focusables() []Focusable {
	return m.order
}

// MoveFocus moves focus by delta positions in traversal order.
func (m *Manager) MoveFocus(delta int) bool {
	count := len(m.order)
	if count == 0 {
		return false
	}

	current := -1
	for i, f := range m.order {
		if Target(f) == m.slots[SlotFocus] {
			current = i
			break
		}
	}
	if current < 0 && delta < 0 {
		// nothing focused: backwards traversal starts at the last node
		current = 0
	}

	for step := 1; step <= count; step++ {
		candidate := m.order[wrapIndex(current+delta*step, count)]
		if candidate.CanFocus() {
			m.Set(SlotFocus, candidate)
			return true
		}
	}
	return false
}

// FocusInDirection moves focus to the best candidate in the given direction,
// falling back to linear traversal when geometry is unusable.
func (m *Manager) FocusInDirection(direction TraversalDirection) bool {
	current := m.slots[SlotFocus]
	if current == nil {
		return m.MoveFocus(1)
	}
	currentRect := current.FocusRect()
	if currentRect.IsEmpty() {
		return m.MoveFocus(linearDelta(direction))
	}

	var best Focusable
	bestScore := math.MaxFloat64
	for _, candidate := range m.order {
		if Target(candidate) == current || !candidate.CanFocus() {
			continue
		}
		rect := candidate.FocusRect()
		if rect.IsEmpty() || !isInDirection(currentRect, rect, direction) {
			continue
		}
		if score := directionalScore(currentRect, rect, direction); score < bestScore {
			bestScore = score
			best = candidate
		}
	}
	if best == nil {
		return m.MoveFocus(linearDelta(direction))
	}
	m.Set(SlotFocus, best)
	return true
}

// linearDelta returns +1 or -1 for linear focus traversal based on direction.
func linearDelta(direction TraversalDirection) int {
	if direction == TraversalDirectionUp || direction == TraversalDirectionLeft {
		return -1
	}
	return 1
}

// wrapIndex wraps an index to stay within [0, count).
func wrapIndex(index, count int) int {
	index = index % count
	if index < 0 {
		index += count
	}
	return index
}

// isInDirection checks if target rect is in the specified direction from source.
func isInDirection(source, target graphics.Rect, direction TraversalDirection) bool {
	s, t := source.Center(), target.Center()
	switch direction {
	case TraversalDirectionUp:
		return t.Y < s.Y
	case TraversalDirectionDown:
		return t.Y > s.Y
	case TraversalDirectionLeft:
		return t.X < s.X
	case TraversalDirectionRight:
		return t.X > s.X
	}
	return false
}

// directionalScore calculates a score for how good a target is for directional focus.
// Lower scores are better. Combines distance with alignment penalty.
func directionalScore(source, target graphics.Rect, direction TraversalDirection) float64 {
	s, t := source.Center(), target.Center()

	var primaryDist, crossDist float64
	switch direction {
	case TraversalDirectionUp, TraversalDirectionDown:
		primaryDist = math.Abs(t.Y - s.Y)
		crossDist = math.Abs(t.X - s.X)
	case TraversalDirectionLeft, TraversalDirectionRight:
		primaryDist = math.Abs(t.X - s.X)
		crossDist = math.Abs(t.Y - s.Y)
	}

	// Weight cross-axis distance more heavily to prefer aligned elements
	return primaryDist + crossDist*2
}
