package testing

import (
	"github.com/go-drift/scene/pkg/graphics"
	"github.com/go-drift/scene/pkg/scene"
)

// Paint is one display list handed to a Surface.
type Paint struct {
	View *scene.View
	Clip graphics.Rect
	Ops  []graphics.Op
}

// Surface is a scene.Surface that keeps every display list it receives.
type Surface struct {
	size   graphics.Size
	Paints []Paint
}

// NewSurface returns an empty surface of the given size.
func NewSurface(width, height float64) *Surface {
	return &Surface{size: graphics.Size{Width: width, Height: height}}
}

// Size implements scene.Surface.
func (s *Surface) Size() graphics.Size { return s.size }

// SetSize changes the reported size.
func (s *Surface) SetSize(size graphics.Size) { s.size = size }

// Paint implements scene.Surface.
func (s *Surface) Paint(v *scene.View, _ *scene.UpdateContext, list *graphics.DisplayList) {
	s.Paints = append(s.Paints, Paint{View: v, Clip: v.Clip(), Ops: list.Ops()})
}

// Ops returns the primitives of every recorded list in order.
func (s *Surface) Ops() []graphics.Op {
	var ops []graphics.Op
	for _, p := range s.Paints {
		ops = append(ops, p.Ops...)
	}
	return ops
}

// TextOps returns the recorded text runs.
func (s *Surface) TextOps() []graphics.TextOp {
	var out []graphics.TextOp
	for _, op := range s.Ops() {
		if t, ok := op.(graphics.TextOp); ok {
			out = append(out, t)
		}
	}
	return out
}

// Reset forgets the recorded lists.
func (s *Surface) Reset() { s.Paints = nil }
