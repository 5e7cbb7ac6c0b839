package scene

import (
	"cmp"
	"slices"

	"github.com/go-drift/scene/pkg/graphics"
	"github.com/go-drift/scene/pkg/update"
)

// Surface is the output a window renders into.
type Surface interface {
	// Size returns the current size in pixels.
	Size() graphics.Size
	// Paint receives the display list of view v, recorded in window
	// coordinates and clipped to v.Clip().
	Paint(v *View, ctx *UpdateContext, list *graphics.DisplayList)
}

// Window shows a root box on a surface. The root view covers the surface.
type Window struct {
	engine  *Engine
	root    *Box
	handle  *Handle[*Box]
	surface Surface
	view    *View

	damage graphics.Damage
	dirty  []*View
	rec    graphics.Recorder
	closed bool
}

// Root returns the root box.
func (w *Window) Root() *Box { return w.root }

// View returns the root view, nil once the window is closed.
func (w *Window) View() *View { return w.view }

// Surface returns the output of the window.
func (w *Window) Surface() Surface { return w.surface }

// Size returns the surface size.
func (w *Window) Size() graphics.Size {
	if w.surface == nil {
		return graphics.Size{}
	}
	return w.surface.Size()
}

// Damage returns the area painted since the last Render.
func (w *Window) Damage() *graphics.Damage { return &w.damage }

// Closed reports whether Close was called.
func (w *Window) Closed() bool { return w.closed }

// Resize lays the window out again for the new surface size.
func (w *Window) Resize() {
	if w.closed {
		return
	}
	w.engine.sched.Post(w.root, update.LayoutPaint)
}

// Close destroys the view tree and releases the root box.
func (w *Window) Close() {
	if w.closed {
		return
	}
	w.closed = true
	w.view.destroy()
	w.view = nil
	w.dirty = nil
	w.handle.Release()
	w.engine.windows = slices.DeleteFunc(w.engine.windows, func(o *Window) bool { return o == w })
}

// invalidate schedules v for repaint in the next Render.
func (w *Window) invalidate(v *View) {
	if w.closed || v.destroyed {
		return
	}
	w.damage.Add(v.clip)
	w.dirty = append(w.dirty, v)
}

// rootContext returns the context the root view is derived from.
func (w *Window) rootContext() *UpdateContext {
	ctx := w.engine.baseContext()
	for _, pv := range w.root.style.Defaults {
		ctx.set(pv.Prop, pv.Value)
	}
	ctx.Clip = graphics.RectFromOffsetSize(graphics.Offset{}, w.Size())
	return ctx
}

// Render paints every invalidated view and hands the display lists to the
// surface, outer views first. A view inside another invalidated view is
// painted with it. It returns the number of lists produced.
func (w *Window) Render() int {
	if w.closed || len(w.dirty) == 0 {
		return 0
	}
	dirty := w.dirty
	w.dirty = nil

	set := make(map[*View]bool, len(dirty))
	for _, v := range dirty {
		set[v] = true
	}
	var todo []*View
	for v := range set {
		if v.destroyed || !v.Visible() || coveredBy(v, set) {
			continue
		}
		todo = append(todo, v)
	}
	slices.SortFunc(todo, func(a, b *View) int {
		if a.depth != b.depth {
			return cmp.Compare(a.depth, b.depth)
		}
		return cmp.Compare(a.box.ID(), b.box.ID())
	})

	for _, v := range todo {
		ctx := v.context()
		w.rec.Begin(v.origin, v.clip)
		v.paint(&w.rec, ctx)
		w.surface.Paint(v, ctx, w.rec.End())
	}
	w.damage.Reset()
	return len(todo)
}

// coveredBy reports whether an ancestor of v is in set.
func coveredBy(v *View, set map[*View]bool) bool {
	for p := v.parent; p != nil; p = p.parent {
		if set[p] && !p.destroyed {
			return true
		}
	}
	return false
}

// context rebuilds the update context of v from the window root down.
func (v *View) context() *UpdateContext {
	var chain []*View
	for p := v; p != nil; p = p.parent {
		chain = append(chain, p)
	}
	root := chain[len(chain)-1]
	ctx := v.window.rootContext().derive(root.box, root)
	for i := len(chain) - 2; i >= 0; i-- {
		ctx = ctx.child(chain[i])
	}
	return ctx
}
