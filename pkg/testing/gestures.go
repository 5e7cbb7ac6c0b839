package testing

import (
	"fmt"

	"github.com/go-drift/scene/pkg/focus"
	"github.com/go-drift/scene/pkg/graphics"
	"github.com/go-drift/scene/pkg/scene"
)

// Hover moves the pointer to the center of the first view matched by
// finder and returns the view that received the hover slot.
func (t *SceneTester) Hover(finder Finder) (*scene.View, error) {
	result := t.Find(finder)
	if !result.Exists() {
		return nil, fmt.Errorf("Hover: finder matched no views: %s", finder.Description())
	}
	return t.HoverAt(result.First().WindowRect().Center()), nil
}

// HoverAt moves the pointer to pos.
func (t *SceneTester) HoverAt(pos graphics.Offset) *scene.View {
	return t.engine.HoverAt(t.window, pos)
}

// Tap arms the box under the center of the first view matched by finder,
// focuses it when it can take focus, and releases it. One frame is pumped
// while the box is armed.
func (t *SceneTester) Tap(finder Finder) error {
	result := t.Find(finder)
	if !result.Exists() {
		return fmt.Errorf("Tap: finder matched no views: %s", finder.Description())
	}
	return t.TapAt(result.First().WindowRect().Center())
}

// TapAt taps at pos.
func (t *SceneTester) TapAt(pos graphics.Offset) error {
	v := t.engine.ViewAt(t.window, pos)
	if v == nil {
		return fmt.Errorf("TapAt: no view at %v", pos)
	}
	// a tap on a label goes to the focusable box around it
	for p := v; p != nil; p = p.Parent() {
		if p.Box().Focusable() {
			v = p
			break
		}
	}
	b := v.Box()
	if b.Interaction() == scene.InteractionDisabled {
		return nil
	}
	if err := b.SetInteraction(scene.InteractionArmed); err != nil {
		return err
	}
	if v.CanFocus() {
		t.engine.Focus().Focus(v)
	}
	if err := t.Pump(); err != nil {
		return err
	}
	if err := b.SetInteraction(scene.InteractionIdle); err != nil {
		return err
	}
	return t.Pump()
}

// Focused returns the view holding keyboard focus, or nil.
func (t *SceneTester) Focused() *scene.View {
	v, _ := t.engine.Focus().Get(focus.SlotFocus).(*scene.View)
	return v
}
