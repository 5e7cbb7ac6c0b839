// Package layout holds the pure box-model algorithms used by the scene
// layout driver: main-axis distribution for stacking containers, cross-axis
// alignment, table column/row solving and flow line breaking.
//
// Everything here works on resolved pixel values. Resolving lengths against
// the cascade is the caller's job, which keeps these functions deterministic
// and testable without a scene graph.
package layout

import "math"

// Align positions an item inside the space available to it.
type Align uint8

const (
	// AlignStart packs at the left or top edge.
	AlignStart Align = iota
	// AlignCenter centers.
	AlignCenter
	// AlignEnd packs at the right or bottom edge.
	AlignEnd
	// AlignFlex stretches to fill the available space.
	AlignFlex
)

func (a Align) String() string {
	switch a {
	case AlignStart:
		return "start"
	case AlignCenter:
		return "center"
	case AlignEnd:
		return "end"
	case AlignFlex:
		return "flex"
	default:
		return "unknown"
	}
}

// Extent is one item's size request along an axis.
type Extent struct {
	// Natural is the content or fixed size in pixels.
	Natural float64
	// Percent, when positive, requests that share (0-100) of the parent extent.
	Percent float64
	// Flex requests a share of the extent left after fixed and percent items.
	Flex bool
}

// Distribute computes main-axis sizes for items stacked in avail pixels
// separated by spacing. Fixed items keep their natural size, percent items
// resolve against avail, and flex items split what remains equally; leftover
// pixels go to the first flex items so the sizes sum exactly.
func Distribute(items []Extent, avail, spacing float64) []float64 {
	sizes := make([]float64, len(items))
	if len(items) == 0 {
		return sizes
	}

	used := spacing * float64(len(items)-1)
	flexCount := 0
	for i, it := range items {
		switch {
		case it.Flex:
			flexCount++
		case it.Percent > 0:
			sizes[i] = math.Round(it.Percent / 100 * avail)
			used += sizes[i]
		default:
			sizes[i] = it.Natural
			used += sizes[i]
		}
	}
	if flexCount == 0 {
		return sizes
	}

	remaining := math.Max(0, math.Floor(avail-used))
	share := math.Floor(remaining / float64(flexCount))
	extra := int(remaining - share*float64(flexCount))
	for i, it := range items {
		if !it.Flex {
			continue
		}
		sizes[i] = share
		if extra > 0 {
			sizes[i]++
			extra--
		}
	}
	return sizes
}

// Natural returns the auto extent of a stacking container along its main
// axis: the sum of the items' natural sizes plus spacing.
func Natural(items []Extent, spacing float64) float64 {
	if len(items) == 0 {
		return 0
	}
	total := spacing * float64(len(items)-1)
	for _, it := range items {
		total += it.Natural
	}
	return total
}

// CrossNatural returns the auto extent along the cross axis: the largest
// natural size.
func CrossNatural(items []Extent) float64 {
	var m float64
	for _, it := range items {
		m = math.Max(m, it.Natural)
	}
	return m
}

// Positions lays sizes end to end from start with spacing between them.
func Positions(sizes []float64, start, spacing float64) []float64 {
	pos := make([]float64, len(sizes))
	x := start
	for i, s := range sizes {
		pos[i] = x
		x += s + spacing
	}
	return pos
}

// Used returns the space taken by sizes laid end to end with spacing.
func Used(sizes []float64, spacing float64) float64 {
	if len(sizes) == 0 {
		return 0
	}
	total := spacing * float64(len(sizes)-1)
	for _, s := range sizes {
		total += s
	}
	return total
}

// PackOffset returns where a group of used pixels starts inside avail.
func PackOffset(align Align, avail, used float64) float64 {
	free := avail - used
	if free <= 0 {
		return 0
	}
	switch align {
	case AlignCenter:
		return math.Floor(free / 2)
	case AlignEnd:
		return free
	default:
		return 0
	}
}

// AlignCross returns the offset and size of an item on the cross axis.
func AlignCross(align Align, avail float64, item Extent) (offset, size float64) {
	switch {
	case align == AlignFlex || item.Flex:
		return 0, avail
	case item.Percent > 0:
		size = math.Round(item.Percent / 100 * avail)
	default:
		size = item.Natural
	}
	return PackOffset(align, avail, size), size
}
