package scene

import (
	"github.com/go-drift/scene/pkg/graphics"
	"github.com/go-drift/scene/pkg/layout"
	"github.com/go-drift/scene/pkg/units"
)

// UpdateContext holds the property values resolved at one point of the
// top-down walk over a view tree. A child context is derived from its
// parent context, the child's Style and the child's own attributes.
//
// Contexts are rebuilt for every layout and paint pass and must not be
// kept: the cascade can change without the node itself changing.
type UpdateContext struct {
	// Inherited.
	Color    graphics.Color
	Font     Font
	FontPx   float64
	HAlign   layout.Align
	VAlign   layout.Align
	Orient   Orientation
	HSpacing units.Length
	VSpacing units.Length
	Cursor   Cursor
	Scale    float64

	// Local to the box being resolved.
	Background graphics.Color
	Width      units.Length
	Height     units.Length
	Padding    Edges
	Border     Border
	Alpha      float64
	Pos        *Position
	Shown      bool
	Mode       LayoutMode
	ColSpan    int
	RowSpan    int

	Selected    bool
	Interaction Interaction

	// Units converts lengths with the current font, scale and display.
	Units units.Context
	// Clip is the visible area of View in window coordinates.
	Clip graphics.Rect
	View *View
	Box  *Box

	metrics graphics.FontMetrics
	ext     map[Prop]any
}

// Ext returns the value of a property added with RegisterProp.
func (c *UpdateContext) Ext(p Prop) (any, bool) {
	v, ok := c.ext[p]
	return v, ok
}

// Px resolves l against parent, the extent percentages refer to.
func (c *UpdateContext) Px(l units.Length, parent float64) float64 {
	return c.Units.Resolve(l, parent)
}

// LineHeight returns the line height of the current font.
func (c *UpdateContext) LineHeight() float64 {
	return c.metrics.LineHeight(c.FontPx)
}

// TextWidth returns the advance of s in the current font.
func (c *UpdateContext) TextWidth(s string) float64 {
	return c.metrics.Advance(s, c.FontPx)
}

// BorderWidth returns the resolved border width.
func (c *UpdateContext) BorderWidth(parentWidth float64) float64 {
	return max(0, c.Px(c.Border.Width, parentWidth))
}

// Insets returns padding plus border in pixels. Percentages refer to the
// parent content width on every side.
func (c *UpdateContext) Insets(parentWidth float64) graphics.Insets {
	bw := c.BorderWidth(parentWidth)
	return graphics.Insets{
		Left:   max(0, c.Px(c.Padding.Left, parentWidth)) + bw,
		Top:    max(0, c.Px(c.Padding.Top, parentWidth)) + bw,
		Right:  max(0, c.Px(c.Padding.Right, parentWidth)) + bw,
		Bottom: max(0, c.Px(c.Padding.Bottom, parentWidth)) + bw,
	}
}

// Gaps returns the horizontal and vertical spacing between children.
func (c *UpdateContext) Gaps(content graphics.Size) (h, v float64) {
	return max(0, c.Px(c.HSpacing, content.Width)), max(0, c.Px(c.VSpacing, content.Height))
}

func (c *UpdateContext) setExt(p Prop, v any) {
	m := make(map[Prop]any, len(c.ext)+1)
	for k, x := range c.ext {
		m[k] = x
	}
	m[p] = v
	c.ext = m
}

func (c *UpdateContext) deleteExt(p Prop) {
	if _, ok := c.ext[p]; !ok {
		return
	}
	m := make(map[Prop]any, len(c.ext))
	for k, x := range c.ext {
		if k != p {
			m[k] = x
		}
	}
	c.ext = m
}

// inheritedExt returns the registered values that cascade.
func (c *UpdateContext) inheritedExt() map[Prop]any {
	var m map[Prop]any
	for k, x := range c.ext {
		if !k.Info().Inherited {
			continue
		}
		if m == nil {
			m = make(map[Prop]any, len(c.ext))
		}
		m[k] = x
	}
	return m
}

func (c *UpdateContext) applyFont(f Font) {
	if f.Family != "" {
		c.Font.Family = f.Family
	}
	c.Font.Bold, c.Font.Italic = f.Bold, f.Italic
	if f.Size != (units.Length{}) && !f.Size.Unit.IsKeyword() {
		// percent and em sizes are relative to the inherited font
		if px := c.Units.Resolve(f.Size, c.FontPx); px > 0 {
			c.Font.Size = f.Size
			c.FontPx = px
		}
	}
	c.refreshUnits()
}

func (c *UpdateContext) applyScale(s float64) {
	if s <= 0 {
		return
	}
	if c.Scale > 0 {
		c.FontPx *= s / c.Scale
	}
	c.Scale = s
	c.refreshUnits()
}

func (c *UpdateContext) refreshUnits() {
	c.Units.FontSize = c.FontPx
	c.Units.Scale = c.Scale
	if c.metrics != nil {
		c.Units.XHeight = c.metrics.XHeight(c.FontPx)
	}
}

// resolver applies a node's attributes onto a context in order.
type resolver struct {
	ctx      *UpdateContext
	parent   *UpdateContext
	defaults *UpdateContext
	locked   map[Prop]bool
	onlyInh  bool
}

func (r *resolver) apply(a *Attribute) {
	a.dirty = false
	p := a.prop
	info := p.Info()
	if r.locked[p] || info.apply == nil || (r.onlyInh && !info.Inherited) {
		return
	}
	if isInherit(a.value) {
		src := r.defaults
		if info.Inherited {
			src = r.parent
		}
		info.copy(r.ctx, src)
		if r.locked == nil {
			r.locked = make(map[Prop]bool)
		}
		r.locked[p] = true
		return
	}
	if !info.accepts(a.value) {
		// already reported when the value was set
		return
	}
	info.apply(r.ctx, a.value)
}

// set applies a style value.
func (c *UpdateContext) set(p Prop, v any) {
	info := p.Info()
	if info.apply != nil && !isInherit(v) && info.accepts(v) {
		info.apply(c, v)
	}
}

// derive returns the context of box b placed as view v below c.
func (c *UpdateContext) derive(b *Box, v *View) *UpdateContext {
	ctx := *c
	s := b.style
	ctx.Box, ctx.View = b, v
	ctx.ext = c.inheritedExt()

	ctx.Background = s.Background
	ctx.Width, ctx.Height = s.Width, s.Height
	ctx.Padding, ctx.Border = s.Padding, s.Border
	ctx.Alpha = s.Alpha
	ctx.Pos = nil
	ctx.Shown = true
	ctx.Mode = s.Mode
	ctx.ColSpan, ctx.RowSpan = 1, 1
	ctx.Selected, ctx.Interaction = b.selected, b.interaction

	for _, pv := range s.Props {
		ctx.set(pv.Prop, pv.Value)
	}
	cell := s.Colors.Cell(b.selected, b.interaction)
	if cell.Color != nil {
		ctx.Color = *cell.Color
	}
	if cell.Background != nil {
		ctx.Background = *cell.Background
	}

	defaults := ctx
	r := resolver{ctx: &ctx, parent: c, defaults: &defaults}
	b.localAttrs(r.apply)
	if v != nil {
		ctx.Clip = v.clip
	}
	return &ctx
}

// group returns the context below group g: only inherited properties of a
// group take effect.
func (c *UpdateContext) group(g *Element) *UpdateContext {
	ctx := *c
	r := resolver{ctx: &ctx, parent: c, defaults: c, onlyInh: true}
	g.localAttrs(r.apply)
	return &ctx
}

// child returns the context of view v, whose parent view has context c.
func (c *UpdateContext) child(v *View) *UpdateContext {
	ctx := c
	for _, g := range v.groups {
		ctx = ctx.group(g)
	}
	return ctx.derive(v.box, v)
}
