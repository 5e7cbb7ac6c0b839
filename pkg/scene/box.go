package scene

import (
	"strings"

	"github.com/go-drift/scene/pkg/update"
)

// Box is an element that can be placed on screen. Each placement is a View;
// a box reachable through several paths has several views.
type Box struct {
	Element
	style       *Style
	firstView   *View
	hidden      bool
	selected    bool
	interaction Interaction
	focusable   bool
}

// NewBox returns a box of class holding nodes. As with NewElement, nodes
// that cannot be attached are reported and skipped.
func NewBox(class string, nodes ...Node) *Box {
	b := &Box{}
	b.initBox(b, class)
	b.addAll(nodes)
	return b
}

func (b *Box) initBox(self Node, class string) {
	b.init(self)
	b.style = StyleFor(class)
	b.focusable = b.style.Focusable
}

// HBox returns a horizontal box.
func HBox(nodes ...Node) *Box { return NewBox(ClassHBox, nodes...) }

// VBox returns a vertical box.
func VBox(nodes ...Node) *Box { return NewBox(ClassVBox, nodes...) }

// FlowBox returns a box that breaks its content into lines.
func FlowBox(nodes ...Node) *Box { return NewBox(ClassFlow, nodes...) }

// TableBox returns a table. Its box children are rows.
func TableBox(rows ...Node) *Box { return NewBox(ClassTable, rows...) }

// Row returns a table row. Its box children are cells.
func Row(cells ...Node) *Box { return NewBox(ClassRow, cells...) }

// Button returns a focusable button box.
func Button(nodes ...Node) *Box { return NewBox(ClassButton, nodes...) }

func (b *Box) asBox() *Box { return b }

func (b *Box) String() string { return b.label(b.style.Class) }

// Style returns the class prototype.
func (b *Box) Style() *Style { return b.style }

// Views returns every realized view, in creation order.
func (b *Box) Views() []*View {
	var out []*View
	for v := b.firstView; v != nil; v = v.next {
		out = append(out, v)
	}
	return out
}

// ViewCount returns the number of realized views.
func (b *Box) ViewCount() int {
	n := 0
	for v := b.firstView; v != nil; v = v.next {
		n++
	}
	return n
}

// View returns the n-th view, or the last one for n == -1. It returns nil
// when there is no such view.
func (b *Box) View(n int) *View {
	if n == -1 {
		var last *View
		for v := b.firstView; v != nil; v = v.next {
			last = v
		}
		return last
	}
	i := 0
	for v := b.firstView; v != nil; v = v.next {
		if i == n {
			return v
		}
		i++
	}
	return nil
}

// Show makes the box visible.
func (b *Box) Show() { b.setHidden(false) }

// Hide hides the box. Its views are kept but take no space.
func (b *Box) Hide() { b.setHidden(true) }

func (b *Box) setHidden(hidden bool) {
	if b.hidden == hidden || b.checkMutable("scene.Box.Show") != nil {
		return
	}
	b.hidden = hidden
	for _, p := range b.parents {
		invalidate(p.self, update.LayoutPaint)
	}
	b.post(update.LayoutPaint | update.Hidden)
}

// Hidden reports whether the box is hidden by Hide or by a show attribute.
func (b *Box) Hidden() bool {
	if b.hidden {
		return true
	}
	shown := true
	b.localAttrs(func(a *Attribute) {
		if a.prop == PropShow {
			if v, ok := a.value.(bool); ok {
				shown = v
			}
		}
	})
	return !shown
}

// Selected reports the selection state.
func (b *Box) Selected() bool { return b.selected }

// SetSelected changes the selection state, which selects a color table row.
func (b *Box) SetSelected(selected bool) error {
	if err := b.checkMutable("scene.Box.SetSelected"); err != nil {
		return err
	}
	if b.selected != selected {
		b.selected = selected
		b.post(update.Paint)
	}
	return nil
}

// Interaction returns the interaction state.
func (b *Box) Interaction() Interaction { return b.interaction }

// SetInteraction changes the interaction state.
func (b *Box) SetInteraction(i Interaction) error {
	if err := b.checkMutable("scene.Box.SetInteraction"); err != nil {
		return err
	}
	if b.interaction != i {
		b.interaction = i
		b.post(update.Paint)
	}
	return nil
}

// Focusable reports whether views of the box take part in focus traversal.
func (b *Box) Focusable() bool { return b.focusable }

// SetFocusable changes focus participation for views created afterwards.
func (b *Box) SetFocusable(f bool) { b.focusable = f }

// Depth returns the smallest depth of the box views. It implements
// update.Target.
func (b *Box) Depth() int {
	depth := -1
	for v := b.firstView; v != nil; v = v.next {
		if depth < 0 || v.depth < depth {
			depth = v.depth
		}
	}
	return max(depth, 0)
}

// Update lays out and paints every view of the box. A box without views
// does nothing. It implements update.Target.
func (b *Box) Update(kind update.Kind) {
	for v := b.firstView; v != nil; v = v.next {
		if v.destroyed || (!kind.Has(update.Hidden) && !v.Visible()) {
			continue
		}
		if kind.Has(update.Layout) {
			v.relayout(kind)
		}
		if kind.Has(update.Paint) {
			v.window.invalidate(v)
		}
	}
}

// post requests kind from the scheduler of every window showing the box.
func (b *Box) post(kind update.Kind) {
	for v := b.firstView; v != nil; v = v.next {
		if e := v.window.engine; e != nil {
			e.sched.Post(b, kind)
		}
	}
}

func (b *Box) addView(v *View) {
	if b.firstView == nil {
		b.firstView = v
		return
	}
	last := b.firstView
	for last.next != nil {
		last = last.next
	}
	last.next = v
}

func (b *Box) unlinkView(v *View) {
	if b.firstView == v {
		b.firstView = v.next
		v.next = nil
		return
	}
	for p := b.firstView; p != nil; p = p.next {
		if p.next == v {
			p.next = v.next
			v.next = nil
			return
		}
	}
}

func (b *Box) teardown() {
	for b.firstView != nil {
		b.firstView.destroy()
	}
	b.Element.teardown()
}

// Text is a leaf box displaying character data. Inside a flow box its
// words take part in line breaking; elsewhere it is laid out on one line
// per newline.
type Text struct {
	Box
	text string
}

// NewText returns a text leaf. Attributes that cannot be attached are
// reported and skipped.
func NewText(s string, attrs ...*Attribute) *Text {
	t := &Text{text: s}
	t.initBox(t, ClassText)
	for _, a := range attrs {
		_ = t.AddAttr(a)
	}
	return t
}

func (t *Text) String() string {
	s := t.text
	if len(s) > 16 {
		s = s[:16] + "..."
	}
	return t.label("text") + "(" + s + ")"
}

// Text returns the character data.
func (t *Text) Text() string { return t.text }

// SetText replaces the character data.
func (t *Text) SetText(s string) error {
	if err := t.checkMutable("scene.Text.SetText"); err != nil {
		return err
	}
	if s != t.text {
		t.text = s
		t.post(update.LayoutPaint)
	}
	return nil
}

func (t *Text) lines() []string {
	return strings.Split(t.text, "\n")
}

// AsText returns the Text leaf behind b, or nil when b is a plain box.
func (b *Box) AsText() *Text {
	t, _ := textOf(b)
	return t
}

// textOf returns the character data of b when it is a Text leaf.
func textOf(b *Box) (*Text, bool) {
	t, ok := b.self.(*Text)
	return t, ok
}
