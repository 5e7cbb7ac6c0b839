package scene

import (
	"slices"

	"github.com/go-drift/scene/pkg/errors"
	"github.com/go-drift/scene/pkg/update"
)

// Element is a container node with an ordered attribute list and an ordered
// child list. An Element that is not a Box is a group: it is transparent to
// layout but its inherited attributes cascade to its children.
type Element struct {
	nodeBase
	attrs    []*Attribute
	children []Node
	propSubs []func(e *Element, p Prop)
}

// NewElement returns a group holding nodes. Attributes go to the attribute
// list, everything else to the child list. Nodes that cannot be attached
// (nil, destroyed or cyclic) are reported to the error handler and skipped.
func NewElement(nodes ...Node) *Element {
	e := &Element{}
	e.init(e)
	e.addAll(nodes)
	return e
}

func (e *Element) addAll(nodes []Node) {
	for _, n := range nodes {
		if a, ok := n.(*Attribute); ok {
			_ = e.AddAttr(a)
		} else {
			_ = e.Add(n)
		}
	}
}

func (e *Element) String() string { return e.label("element") }

// Children returns a copy of the child list.
func (e *Element) Children() []Node { return slices.Clone(e.children) }

// ChildCount returns the number of children.
func (e *Element) ChildCount() int { return len(e.children) }

// Child returns the i-th child or nil.
func (e *Element) Child(i int) Node {
	if i < 0 || i >= len(e.children) {
		return nil
	}
	return e.children[i]
}

// Attrs returns a copy of the attribute list.
func (e *Element) Attrs() []*Attribute { return slices.Clone(e.attrs) }

// Add appends child to the child list.
func (e *Element) Add(child Node) error {
	return e.insert("scene.Element.Add", len(e.children), child)
}

// Insert adds child at position i. Out of range positions are clamped.
func (e *Element) Insert(i int, child Node) error {
	return e.insert("scene.Element.Insert", i, child)
}

func (e *Element) insert(op string, i int, child Node) error {
	c, err := e.checkAttach(op, child)
	if err != nil {
		return err
	}
	i = min(max(i, 0), len(e.children))
	e.children = slices.Insert(e.children, i, child)
	c.parents = append(c.parents, e)
	e.changed(child)
	return nil
}

// AddAttr appends a to the attribute list.
func (e *Element) AddAttr(a *Attribute) error {
	const op = "scene.Element.AddAttr"
	c, err := e.checkAttach(op, a)
	if err != nil {
		return err
	}
	e.attrs = append(e.attrs, a)
	c.parents = append(c.parents, e)
	e.changed(a)
	return nil
}

// Remove detaches the first occurrence of child from the child list.
func (e *Element) Remove(child Node) error {
	const op = "scene.Element.Remove"
	if err := e.checkMutable(op); err != nil {
		return err
	}
	i := slices.Index(e.children, child)
	if i < 0 {
		return errors.Fail(op, errors.KindOwnership, child, errors.ErrNotChild)
	}
	e.children = slices.Delete(e.children, i, i+1)
	e.detach(child)
	return nil
}

// RemoveAttr detaches the first occurrence of a from the attribute list.
func (e *Element) RemoveAttr(a *Attribute) error {
	const op = "scene.Element.RemoveAttr"
	if err := e.checkMutable(op); err != nil {
		return err
	}
	i := slices.Index(e.attrs, a)
	if i < 0 {
		return errors.Fail(op, errors.KindOwnership, a, errors.ErrNotChild)
	}
	e.attrs = slices.Delete(e.attrs, i, i+1)
	e.detach(a)
	return nil
}

// RemoveAll detaches every child. Attributes are kept.
func (e *Element) RemoveAll() error {
	if err := e.checkMutable("scene.Element.RemoveAll"); err != nil {
		return err
	}
	children := e.children
	e.children = nil
	for _, c := range children {
		e.detach(c)
	}
	return nil
}

// OnPropChange subscribes fn to property changes of any attribute of e.
func (e *Element) OnPropChange(fn func(e *Element, p Prop)) error {
	if err := e.checkMutable("scene.Element.OnPropChange"); err != nil {
		return err
	}
	if fn != nil {
		e.propSubs = append(e.propSubs, fn)
	}
	return nil
}

// checkAttach validates an attach of child under e.
func (e *Element) checkAttach(op string, child Node) (*nodeBase, error) {
	if err := e.checkMutable(op); err != nil {
		return nil, err
	}
	c := baseOf(child)
	if c == nil {
		return nil, errors.Fail(op, errors.KindUsage, e, errors.ErrNilNode)
	}
	if c.state != StateLive {
		return nil, errors.Fail(op, errors.KindOwnership, child, errors.ErrDestroyed)
	}
	if c == &e.nodeBase || e.hasAncestor(c) {
		return nil, errors.Fail(op, errors.KindOwnership, child, errors.ErrCycle)
	}
	return c, nil
}

// hasAncestor reports whether n is e or one of its ancestors.
func (e *Element) hasAncestor(n *nodeBase) bool {
	seen := map[*Element]bool{}
	stack := slices.Clone(e.parents)
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[p] {
			continue
		}
		seen[p] = true
		if &p.nodeBase == n {
			return true
		}
		stack = append(stack, p.parents...)
	}
	return false
}

// detach drops one attachment of child, removes the views whose path went
// through it and destroys the child if nothing else keeps it.
func (e *Element) detach(child Node) {
	c := child.node()
	c.removeParent(e)
	for _, b := range ownerBoxes(e) {
		for v := b.firstView; v != nil; v = v.next {
			v.prune()
		}
	}
	e.changed(child)
	c.maybeDestroy()
}

// changed requests the update caused by a structural change involving n.
func (e *Element) changed(n Node) {
	kind := update.LayoutPaint
	if a, ok := n.(*Attribute); ok {
		if a.prop == PropShow {
			// visibility is decided by the layout of the parents
			invalidateAround(e, update.LayoutPaint)
			return
		}
		if !a.prop.Info().Geometry {
			kind = update.Paint
		}
	}
	invalidate(e.self, kind)
}

// propChanged fires the generic property-changed subscribers.
func (e *Element) propChanged(p Prop) {
	for _, fn := range e.propSubs {
		func() {
			defer errors.Recover("scene.Element.OnPropChange")
			fn(e, p)
		}()
	}
}

// localAttrs calls fn for the attribute list, then for every attribute
// leading the child list.
func (e *Element) localAttrs(fn func(a *Attribute)) {
	for _, a := range e.attrs {
		fn(a)
	}
	for _, c := range e.children {
		a, ok := c.(*Attribute)
		if !ok {
			return
		}
		fn(a)
	}
}

// content returns the children that take part in layout.
func (e *Element) content() []Node {
	i := 0
	for i < len(e.children) {
		if _, ok := e.children[i].(*Attribute); !ok {
			break
		}
		i++
	}
	return e.children[i:]
}

func (e *Element) teardown() {
	attrs, children := e.attrs, e.children
	e.attrs, e.children = nil, nil
	e.propSubs = nil
	for _, c := range children {
		b := c.node()
		b.removeParent(e)
		b.maybeDestroy()
	}
	for _, a := range attrs {
		a.removeParent(e)
		a.maybeDestroy()
	}
}

// viewable is implemented by nodes that can be placed on screen.
type viewable interface {
	asBox() *Box
}

// asBox returns the Box behind n, or nil when n is not viewable.
func asBox(n Node) *Box {
	if v, ok := n.(viewable); ok {
		return v.asBox()
	}
	return nil
}

// ownerBoxes returns the boxes whose layout depends on e: e itself when it
// is a box, otherwise the nearest boxes above the group.
func ownerBoxes(e *Element) []*Box {
	var out []*Box
	seen := map[*Element]bool{}
	var walk func(e *Element)
	walk = func(e *Element) {
		if seen[e] {
			return
		}
		seen[e] = true
		if b := asBox(e.self); b != nil {
			out = append(out, b)
			return
		}
		for _, p := range e.parents {
			walk(p)
		}
	}
	walk(e)
	return out
}

// invalidate posts kind for every box affected by a change of n.
func invalidate(n Node, kind update.Kind) {
	switch n := n.(type) {
	case *Attribute:
		for _, p := range n.uniqueParents() {
			invalidate(p.self, kind)
		}
	case *Element:
		for _, b := range ownerBoxes(n) {
			b.post(kind)
		}
	default:
		if b := asBox(n); b != nil {
			b.post(kind)
		}
	}
}

// invalidateAround posts kind for the boxes laying out e.
func invalidateAround(e *Element, kind update.Kind) {
	for _, p := range e.parents {
		for _, b := range ownerBoxes(p) {
			b.post(kind)
		}
	}
}

// invalidatePosition asks the boxes laying out e to move it.
func invalidatePosition(e *Element) {
	invalidateAround(e, update.Layout|update.MoveOnly)
}
