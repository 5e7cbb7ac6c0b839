package scene

import (
	"fmt"

	"github.com/go-drift/scene/pkg/errors"
	"github.com/go-drift/scene/pkg/update"
)

// Attribute is a node carrying one typed property value. The same
// attribute may be held by many elements; a change notifies all of them.
type Attribute struct {
	nodeBase
	prop  Prop
	value any
	dirty bool
	subs  []func(a *Attribute)
}

// NewAttr returns an attribute for p. A value of the wrong type is reported
// as a warning and ignored by the cascade.
func NewAttr(p Prop, value any) *Attribute {
	a := &Attribute{prop: p, value: value, dirty: true}
	a.init(a)
	if !p.Accepts(value) {
		errors.Warn("scene.NewAttr", errors.KindUsage, a,
			fmt.Errorf("%w: %T for %s", errors.ErrPropValue, value, p))
	}
	return a
}

// Inherit is the property value that forces the inherited (or, for local
// properties, the style default) value even when later attributes of the
// same node set the property.
var Inherit = inheritMarker{}

type inheritMarker struct{}

func (inheritMarker) String() string { return "inherit" }

func isInherit(v any) bool {
	_, ok := v.(inheritMarker)
	return ok
}

func (a *Attribute) String() string {
	return fmt.Sprintf("%s{%s=%v}", a.label("attr"), a.prop, a.value)
}

// Prop returns the property kind.
func (a *Attribute) Prop() Prop { return a.prop }

// Value returns the current value.
func (a *Attribute) Value() any { return a.value }

// Dirty reports whether the value changed since the cascade last applied it.
func (a *Attribute) Dirty() bool { return a.dirty }

// Set changes the value and notifies parents and subscribers.
func (a *Attribute) Set(value any) error {
	return a.set("scene.Attribute.Set", value, true)
}

// SetQuiet changes the value without any notification.
func (a *Attribute) SetQuiet(value any) error {
	return a.set("scene.Attribute.SetQuiet", value, false)
}

func (a *Attribute) set(op string, value any, notify bool) error {
	if err := a.checkMutable(op); err != nil {
		return err
	}
	if !a.prop.Accepts(value) {
		return errors.Fail(op, errors.KindUsage, a,
			fmt.Errorf("%w: %T for %s", errors.ErrPropValue, value, a.prop))
	}
	a.value = value
	a.dirty = true
	if notify {
		a.notify()
	}
	return nil
}

// OnChange subscribes fn to value changes.
func (a *Attribute) OnChange(fn func(a *Attribute)) error {
	if err := a.checkMutable("scene.Attribute.OnChange"); err != nil {
		return err
	}
	if fn != nil {
		a.subs = append(a.subs, fn)
	}
	return nil
}

// notify runs the change side effects: a graphics update of every parent,
// the attribute's own subscribers, then the parents' property-changed
// subscribers.
func (a *Attribute) notify() {
	info := a.prop.Info()
	parents := a.uniqueParents()
	for _, p := range parents {
		switch {
		case a.prop == PropShow:
			invalidateAround(p, update.LayoutPaint)
		case info.Position:
			invalidatePosition(p)
		case info.Geometry:
			invalidate(p.self, update.LayoutPaint)
		default:
			invalidate(p.self, update.Paint)
		}
	}
	for _, fn := range a.subs {
		func() {
			defer errors.Recover("scene.Attribute.OnChange")
			fn(a)
		}()
	}
	for _, p := range parents {
		p.propChanged(a.prop)
	}
}

// uniqueParents returns each parent once, in attachment order.
func (a *Attribute) uniqueParents() []*Element {
	out := make([]*Element, 0, len(a.parents))
	for _, p := range a.parents {
		dup := false
		for _, q := range out {
			if q == p {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, p)
		}
	}
	return out
}

func (a *Attribute) teardown() {
	a.subs = nil
}

type constKey struct {
	prop  Prop
	value any
}

var constants = map[constKey]*Attribute{}

// Constant returns the process-wide frozen attribute for (p, value). The
// same instance is returned for equal values, so identity comparisons hold.
// Constants are never destroyed. value must be comparable.
func Constant(p Prop, value any) *Attribute {
	key := constKey{p, value}
	if a, ok := constants[key]; ok {
		return a
	}
	a := NewAttr(p, value)
	a.handles++
	a.Freeze()
	constants[key] = a
	return a
}
