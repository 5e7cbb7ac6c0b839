package scene

import (
	"fmt"

	"github.com/go-drift/scene/pkg/graphics"
	"github.com/go-drift/scene/pkg/layout"
	"github.com/go-drift/scene/pkg/units"
)

// Prop identifies a property kind.
type Prop uint16

// Built-in properties. Inherited ones cascade to descendants; the others
// apply only to the node carrying them.
const (
	PropInvalid Prop = iota

	// inherited
	PropColor
	PropFont
	PropHAlign
	PropVAlign
	PropOrient
	PropHSpacing
	PropVSpacing
	PropCursor
	PropScale

	// local
	PropBackground
	PropWidth
	PropHeight
	PropPadding
	PropBorder
	PropAlpha
	PropPos
	PropShow
	PropLayout
	PropColSpan
	PropRowSpan
)

// Orientation is the stacking axis of a box.
type Orientation uint8

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// LayoutMode selects the layout algorithm of a box.
type LayoutMode uint8

const (
	// LayoutStack stacks children along the orientation axis.
	LayoutStack LayoutMode = iota
	// LayoutFlow breaks children into lines of a fixed width.
	LayoutFlow
	// LayoutTable treats children as rows and their children as cells.
	LayoutTable
)

func (m LayoutMode) String() string {
	switch m {
	case LayoutFlow:
		return "flow"
	case LayoutTable:
		return "table"
	default:
		return "stack"
	}
}

// Cursor names the pointer shape shown over a view.
type Cursor string

const (
	CursorDefault Cursor = "default"
	CursorPointer Cursor = "pointer"
	CursorText    Cursor = "text"
	CursorMove    Cursor = "move"
)

// Font is a font request. Zero fields keep the inherited value.
type Font struct {
	Family string
	Size   units.Length
	Bold   bool
	Italic bool
}

// Edges holds one length per side.
type Edges struct {
	Left, Top, Right, Bottom units.Length
}

// UniformEdges uses l for every side.
func UniformEdges(l units.Length) Edges {
	return Edges{Left: l, Top: l, Right: l, Bottom: l}
}

// Border is a uniform box border.
type Border struct {
	Width units.Length
	Color graphics.Color
}

// Position places a floating child inside its parent. Percent-centered
// lengths anchor the child's center.
type Position struct {
	X, Y units.Length
}

// PropInfo describes a property kind.
type PropInfo struct {
	Name string
	// Inherited properties cascade to descendants.
	Inherited bool
	// Geometry properties require a relayout when they change.
	Geometry bool
	// Position properties move their box inside its parent.
	Position bool

	accepts func(v any) bool
	apply   func(c *UpdateContext, v any)
	copy    func(dst, src *UpdateContext)
}

func field[T any](name string, inherited, geometry bool, get func(c *UpdateContext) *T) PropInfo {
	return PropInfo{
		Name:      name,
		Inherited: inherited,
		Geometry:  geometry,
		accepts: func(v any) bool {
			_, ok := v.(T)
			return ok
		},
		apply: func(c *UpdateContext, v any) { *get(c) = v.(T) },
		copy:  func(dst, src *UpdateContext) { *get(dst) = *get(src) },
	}
}

// lengthField also accepts textual lengths; malformed ones degrade to 0px
// with a warning.
func lengthField(name string, inherited bool, get func(c *UpdateContext) *units.Length) PropInfo {
	info := field(name, inherited, true, get)
	info.accepts = func(v any) bool {
		switch v.(type) {
		case units.Length, string:
			return true
		}
		return false
	}
	info.apply = func(c *UpdateContext, v any) { *get(c) = toLength(name, v) }
	return info
}

func toLength(name string, v any) units.Length {
	if s, ok := v.(string); ok {
		return units.ParseLengthOr("scene."+name, s)
	}
	return v.(units.Length)
}

var props = []PropInfo{
	PropInvalid: {Name: "invalid"},

	PropColor: field("color", true, false, func(c *UpdateContext) *graphics.Color { return &c.Color }),
	PropFont: {
		Name:      "font",
		Inherited: true,
		Geometry:  true,
		accepts: func(v any) bool {
			_, ok := v.(Font)
			return ok
		},
		apply: func(c *UpdateContext, v any) { c.applyFont(v.(Font)) },
		copy: func(dst, src *UpdateContext) {
			dst.Font, dst.FontPx = src.Font, src.FontPx
			dst.refreshUnits()
		},
	},
	PropHAlign:   field("halign", true, true, func(c *UpdateContext) *layout.Align { return &c.HAlign }),
	PropVAlign:   field("valign", true, true, func(c *UpdateContext) *layout.Align { return &c.VAlign }),
	PropOrient:   field("orient", true, true, func(c *UpdateContext) *Orientation { return &c.Orient }),
	PropHSpacing: lengthField("hspacing", true, func(c *UpdateContext) *units.Length { return &c.HSpacing }),
	PropVSpacing: lengthField("vspacing", true, func(c *UpdateContext) *units.Length { return &c.VSpacing }),
	PropCursor:   field("cursor", true, false, func(c *UpdateContext) *Cursor { return &c.Cursor }),
	PropScale: {
		Name:      "scale",
		Inherited: true,
		Geometry:  true,
		accepts: func(v any) bool {
			s, ok := v.(float64)
			return ok && s > 0
		},
		apply: func(c *UpdateContext, v any) { c.applyScale(v.(float64)) },
		copy: func(dst, src *UpdateContext) {
			dst.applyScale(src.Scale)
		},
	},

	PropBackground: field("background", false, false, func(c *UpdateContext) *graphics.Color { return &c.Background }),
	PropWidth:      lengthField("width", false, func(c *UpdateContext) *units.Length { return &c.Width }),
	PropHeight:     lengthField("height", false, func(c *UpdateContext) *units.Length { return &c.Height }),
	PropPadding:    field("padding", false, true, func(c *UpdateContext) *Edges { return &c.Padding }),
	PropBorder:     field("border", false, true, func(c *UpdateContext) *Border { return &c.Border }),
	PropAlpha:      field("alpha", false, false, func(c *UpdateContext) *float64 { return &c.Alpha }),
	PropPos: {
		Name:     "pos",
		Geometry: true,
		Position: true,
		accepts: func(v any) bool {
			_, ok := v.(Position)
			return ok
		},
		apply: func(c *UpdateContext, v any) {
			p := v.(Position)
			c.Pos = &p
		},
		copy: func(dst, src *UpdateContext) { dst.Pos = src.Pos },
	},
	PropShow:    field("show", false, true, func(c *UpdateContext) *bool { return &c.Shown }),
	PropLayout:  field("layout", false, true, func(c *UpdateContext) *LayoutMode { return &c.Mode }),
	PropColSpan: field("colspan", false, true, func(c *UpdateContext) *int { return &c.ColSpan }),
	PropRowSpan: field("rowspan", false, true, func(c *UpdateContext) *int { return &c.RowSpan }),
}

// RegisterProp adds a property kind. Values of registered properties are
// stored untyped and read back with UpdateContext.Ext.
func RegisterProp(name string, inherited, geometry bool) Prop {
	p := Prop(len(props))
	props = append(props, PropInfo{
		Name:      name,
		Inherited: inherited,
		Geometry:  geometry,
		accepts:   func(any) bool { return true },
		apply:     func(c *UpdateContext, v any) { c.setExt(p, v) },
		copy: func(dst, src *UpdateContext) {
			if v, ok := src.ext[p]; ok {
				dst.setExt(p, v)
			} else {
				dst.deleteExt(p)
			}
		},
	})
	return p
}

// LookupProp returns the property registered under name.
func LookupProp(name string) (Prop, bool) {
	for i := 1; i < len(props); i++ {
		if props[i].Name == name {
			return Prop(i), true
		}
	}
	return PropInvalid, false
}

// Info returns the description of p.
func (p Prop) Info() PropInfo {
	if int(p) < len(props) {
		return props[p]
	}
	return PropInfo{Name: fmt.Sprintf("prop(%d)", p)}
}

func (p Prop) String() string { return p.Info().Name }

// Accepts reports whether v is a valid value for p.
func (p Prop) Accepts(v any) bool {
	if isInherit(v) {
		return p != PropInvalid && int(p) < len(props)
	}
	info := p.Info()
	return info.accepts != nil && info.accepts(v)
}

// Constructors for the built-in properties.

func ColorAttr(c graphics.Color) *Attribute { return NewAttr(PropColor, c) }
func BackgroundAttr(c graphics.Color) *Attribute { return NewAttr(PropBackground, c) }
func FontAttr(f Font) *Attribute { return NewAttr(PropFont, f) }
func HAlignAttr(a layout.Align) *Attribute { return NewAttr(PropHAlign, a) }
func VAlignAttr(a layout.Align) *Attribute { return NewAttr(PropVAlign, a) }
func OrientAttr(o Orientation) *Attribute { return NewAttr(PropOrient, o) }
func HSpacingAttr(l units.Length) *Attribute { return NewAttr(PropHSpacing, l) }
func VSpacingAttr(l units.Length) *Attribute { return NewAttr(PropVSpacing, l) }
func CursorAttr(c Cursor) *Attribute { return NewAttr(PropCursor, c) }
func ScaleAttr(s float64) *Attribute { return NewAttr(PropScale, s) }
func WidthAttr(l units.Length) *Attribute { return NewAttr(PropWidth, l) }
func HeightAttr(l units.Length) *Attribute { return NewAttr(PropHeight, l) }
func PaddingAttr(e Edges) *Attribute { return NewAttr(PropPadding, e) }
func BorderAttr(b Border) *Attribute { return NewAttr(PropBorder, b) }
func AlphaAttr(a float64) *Attribute { return NewAttr(PropAlpha, a) }
func PosAttr(x, y units.Length) *Attribute { return NewAttr(PropPos, Position{X: x, Y: y}) }
func ShowAttr(show bool) *Attribute { return NewAttr(PropShow, show) }
func LayoutAttr(m LayoutMode) *Attribute { return NewAttr(PropLayout, m) }
func ColSpanAttr(n int) *Attribute { return NewAttr(PropColSpan, n) }
func RowSpanAttr(n int) *Attribute { return NewAttr(PropRowSpan, n) }
