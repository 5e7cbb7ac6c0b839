package update

import "strings"

// Kind is the set of work requested for a target.
type Kind uint8

const (
	// Layout recomputes geometry. It always implies Paint.
	Layout Kind = 1 << iota
	// Paint repaints without touching geometry.
	Paint
	// Hidden also updates targets that are currently hidden.
	Hidden
	// MoveOnly refines Layout: only positions changed, sizes are kept.
	MoveOnly
)

// LayoutPaint requests a full relayout and repaint.
const LayoutPaint = Layout | Paint

// Has reports whether every flag of f is set in k.
func (k Kind) Has(f Kind) bool {
	return k&f == f
}

// Merge combines two requests for the same target. Flags are OR-ed, except
// that MoveOnly survives only when every merged layout request was move-only.
func (k Kind) Merge(other Kind) Kind {
	merged := k | other
	fullLayout := (k.Has(Layout) && !k.Has(MoveOnly)) || (other.Has(Layout) && !other.Has(MoveOnly))
	if fullLayout {
		merged &^= MoveOnly
	}
	return merged
}

// normalize makes Layout imply Paint and drops MoveOnly without Layout.
func (k Kind) normalize() Kind {
	if k.Has(Layout) {
		k |= Paint
	} else {
		k &^= MoveOnly
	}
	return k
}

func (k Kind) String() string {
	if k == 0 {
		return "none"
	}
	var parts []string
	if k.Has(Layout) {
		parts = append(parts, "layout")
	}
	if k.Has(Paint) {
		parts = append(parts, "paint")
	}
	if k.Has(Hidden) {
		parts = append(parts, "hidden")
	}
	if k.Has(MoveOnly) {
		parts = append(parts, "move")
	}
	return strings.Join(parts, "|")
}
