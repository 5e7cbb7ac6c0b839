package graphics

import "image"

// Op is one drawing primitive handed to a rendering backend.
// Coordinates are window coordinates after layout.
type Op interface {
	// Bounds returns the area the primitive may touch.
	Bounds() Rect
}

// RectOp fills or strokes a rectangle.
type RectOp struct {
	Rect        Rect
	Color       Color
	Fill        bool
	StrokeWidth float64
}

// Bounds implements Op.
func (o RectOp) Bounds() Rect { return o.Rect }

// LineOp draws a straight line.
type LineOp struct {
	From  Offset
	To    Offset
	Color Color
	Width float64
}

// Bounds implements Op.
func (o LineOp) Bounds() Rect {
	r := Rect{
		Left:   min(o.From.X, o.To.X),
		Top:    min(o.From.Y, o.To.Y),
		Right:  max(o.From.X, o.To.X),
		Bottom: max(o.From.Y, o.To.Y),
	}
	half := o.Width / 2
	return Rect{Left: r.Left - half, Top: r.Top - half, Right: r.Right + half, Bottom: r.Bottom + half}
}

// TextOp draws one run of text. Origin is the top-left of the line box.
type TextOp struct {
	Origin   Offset
	Text     string
	Color    Color
	FontSize float64
	Family   string
	Advance  float64
	Height   float64
}

// Bounds implements Op.
func (o TextOp) Bounds() Rect {
	return RectFromLTWH(o.Origin.X, o.Origin.Y, o.Advance, o.Height)
}

// ImageOp draws an image scaled into Rect.
type ImageOp struct {
	Rect  Rect
	Image image.Image
	Alpha float64
}

// Bounds implements Op.
func (o ImageOp) Bounds() Rect { return o.Rect }

// DisplayList is an immutable list of drawing operations.
type DisplayList struct {
	ops []Op
}

// Ops returns the recorded primitives in paint order.
func (d *DisplayList) Ops() []Op {
	if d == nil {
		return nil
	}
	return d.ops
}

// Len returns the number of primitives.
func (d *DisplayList) Len() int {
	if d == nil {
		return 0
	}
	return len(d.ops)
}

// Bounds returns the union of every primitive's bounds.
func (d *DisplayList) Bounds() Rect {
	var r Rect
	for _, op := range d.Ops() {
		r = r.Union(op.Bounds())
	}
	return r
}

// Recorder records drawing commands into a display list.
// Primitives are translated by the current origin and dropped when they
// fall entirely outside the clip.
type Recorder struct {
	ops    []Op
	origin Offset
	clip   Rect
	clipOn bool
}

// Begin resets the recorder for a new list with the given origin and clip.
func (r *Recorder) Begin(origin Offset, clip Rect) {
	r.ops = r.ops[:0]
	r.origin = origin
	r.clip = clip
	r.clipOn = true
}

// SetOrigin moves the origin of subsequent primitives.
func (r *Recorder) SetOrigin(origin Offset) {
	r.origin = origin
}

// SetClip replaces the clip of subsequent primitives.
func (r *Recorder) SetClip(clip Rect) {
	r.clip = clip
	r.clipOn = true
}

// End finishes the recording and returns a display list.
func (r *Recorder) End() *DisplayList {
	ops := make([]Op, len(r.ops))
	copy(ops, r.ops)
	r.ops = r.ops[:0]
	return &DisplayList{ops: ops}
}

func (r *Recorder) append(op Op) {
	if r.clipOn && !op.Bounds().Overlaps(r.clip) {
		return
	}
	r.ops = append(r.ops, op)
}

// FillRect records a filled rectangle in local coordinates.
func (r *Recorder) FillRect(rect Rect, color Color) {
	if color.IsTransparent() {
		return
	}
	r.append(RectOp{Rect: rect.Translate(r.origin.X, r.origin.Y), Color: color, Fill: true})
}

// StrokeRect records a rectangle outline in local coordinates.
func (r *Recorder) StrokeRect(rect Rect, color Color, width float64) {
	if color.IsTransparent() || width <= 0 {
		return
	}
	r.append(RectOp{Rect: rect.Translate(r.origin.X, r.origin.Y), Color: color, StrokeWidth: width})
}

// DrawLine records a line in local coordinates.
func (r *Recorder) DrawLine(from, to Offset, color Color, width float64) {
	r.append(LineOp{From: from.Add(r.origin), To: to.Add(r.origin), Color: color, Width: width})
}

// DrawText records a text run in local coordinates.
func (r *Recorder) DrawText(op TextOp) {
	op.Origin = op.Origin.Add(r.origin)
	r.append(op)
}

// DrawImage records an image in local coordinates.
func (r *Recorder) DrawImage(rect Rect, img image.Image, alpha float64) {
	r.append(ImageOp{Rect: rect.Translate(r.origin.X, r.origin.Y), Image: img, Alpha: alpha})
}
