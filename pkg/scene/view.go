package scene

import (
	"fmt"
	"slices"

	"github.com/go-drift/scene/pkg/graphics"
)

// View is one on-screen placement of a Box. It owns its geometry and the
// cached layout of its children; links to the box, the parent view and the
// next view of the same box do not own anything.
type View struct {
	box    *Box
	parent *View
	next   *View
	window *Window
	// index distinguishes repeated occurrences of the box under parent.
	index  int
	groups []*Element
	depth  int

	pos     graphics.Offset // in parent coordinates
	size    graphics.Size
	origin  graphics.Offset // in window coordinates
	clip    graphics.Rect

	// avail is the parent content size percentages referred to.
	avail    graphics.Size
	natural  graphics.Size
	laidOut  bool
	shown    bool
	tableRow bool

	children []*View
	words    []word

	destroyed bool
}

// word is a piece of text placed by a flow layout, in view coordinates.
type word struct {
	text  string
	pos   graphics.Offset
	width float64
}

func newView(b *Box, parent *View, w *Window, index int, groups []*Element) *View {
	v := &View{
		box:    b,
		parent: parent,
		window: w,
		index:  index,
		groups: groups,
		shown:  true,
	}
	if parent != nil {
		v.depth = parent.depth + 1
	}
	b.addView(v)
	if b.focusable && w.engine != nil {
		w.engine.focus.Register(v)
	}
	return v
}

func (v *View) String() string {
	if v.box == nil {
		return "view(disposed)"
	}
	return fmt.Sprintf("view[%s/%d]", v.box, v.index)
}

// Box returns the box this view displays.
func (v *View) Box() *Box { return v.box }

// Parent returns the parent view, nil for a window root.
func (v *View) Parent() *View { return v.parent }

// Window returns the window showing the view.
func (v *View) Window() *Window { return v.window }

// Next returns the next view of the same box.
func (v *View) Next() *View { return v.next }

// Index returns the occurrence of the box under the parent view.
func (v *View) Index() int { return v.index }

// Depth returns the distance to the window root view.
func (v *View) Depth() int { return v.depth }

// Children returns the child views in layout order.
func (v *View) Children() []*View { return slices.Clone(v.children) }

// Rect returns the geometry in parent view coordinates.
func (v *View) Rect() graphics.Rect { return graphics.RectFromOffsetSize(v.pos, v.size) }

// WindowRect returns the geometry in window coordinates.
func (v *View) WindowRect() graphics.Rect { return graphics.RectFromOffsetSize(v.origin, v.size) }

// Size returns the current size.
func (v *View) Size() graphics.Size { return v.size }

// Clip returns the visible area in window coordinates.
func (v *View) Clip() graphics.Rect { return v.clip }

// Destroyed reports whether the view was destroyed.
func (v *View) Destroyed() bool { return v.destroyed }

// Visible reports whether the view and all its ancestors are shown.
func (v *View) Visible() bool {
	for p := v; p != nil; p = p.parent {
		if p.destroyed || !p.shown {
			return false
		}
	}
	return true
}

// Contains reports whether the window point p is inside the visible part
// of the view.
func (v *View) Contains(p graphics.Offset) bool {
	return v.WindowRect().Intersect(v.clip).Contains(p)
}

// FocusRect implements focus.Target.
func (v *View) FocusRect() graphics.Rect { return v.WindowRect() }

// CanFocus implements focus.Focusable.
func (v *View) CanFocus() bool {
	return v.Visible() && v.box.focusable && v.box.interaction != InteractionDisabled
}

// place sets the geometry relative to the parent view.
func (v *View) place(pos graphics.Offset, size graphics.Size, parentClip graphics.Rect) {
	moved := pos != v.pos || size != v.size
	old := v.WindowRect()
	v.pos = pos
	v.size = size
	if v.parent != nil {
		v.origin = v.parent.origin.Add(pos)
	} else {
		v.origin = pos
	}
	v.clip = v.WindowRect().Intersect(parentClip)
	v.shown = true
	if moved && v.laidOut {
		v.window.damage.Add(old)
		v.window.damage.Add(v.WindowRect())
	}
}

// findChild returns the existing child view for occurrence index of b.
func (v *View) findChild(b *Box, index int) *View {
	if v == nil {
		return nil
	}
	for _, c := range v.children {
		if c.box == b && c.index == index && !c.destroyed {
			return c
		}
	}
	return nil
}

// prune destroys the child views whose path no longer exists.
func (v *View) prune() {
	if v.destroyed {
		return
	}
	occ := map[*Box]int{}
	countOccurrences(&v.box.Element, occ)
	for _, c := range slices.Clone(v.children) {
		if c.index >= occ[c.box] {
			c.destroy()
		}
	}
}

// countOccurrences counts the boxes reachable from e through groups.
func countOccurrences(e *Element, occ map[*Box]int) {
	for _, n := range e.content() {
		if b := asBox(n); b != nil {
			occ[b]++
		} else if g, ok := n.(*Element); ok {
			countOccurrences(g, occ)
		}
	}
}

// destroy destroys v and its descendants, then tells every holder of a
// view reference. The view itself is disposed by the scheduler.
func (v *View) destroy() {
	if v.destroyed {
		return
	}
	v.destroyed = true
	for _, c := range v.children {
		c.destroy()
	}
	v.children = nil
	v.box.unlinkView(v)

	w := v.window
	if p := v.parent; p != nil && !p.destroyed {
		p.children = slices.DeleteFunc(p.children, func(c *View) bool { return c == v })
		w.invalidate(p)
	}
	if v.laidOut {
		w.damage.Add(v.clip)
	}
	if e := w.engine; e != nil {
		e.focus.Forget(v)
		e.sched.PostDelete(v)
	}
}

// Dispose drops the cached layout of a destroyed view. It implements
// update.Disposer.
func (v *View) Dispose() {
	v.words = nil
	v.groups = nil
	v.children = nil
}
