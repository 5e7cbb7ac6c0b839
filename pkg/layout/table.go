package layout

import (
	"math"
	"slices"
)

// Cell is one table cell with its natural size and spans.
type Cell struct {
	Row     int
	ColSpan int
	RowSpan int
	Width   float64
	Height  float64
}

func (c Cell) colSpan() int { return max(1, c.ColSpan) }
func (c Cell) rowSpan() int { return max(1, c.RowSpan) }

// Grid is the column assignment of a table's cells.
type Grid struct {
	// Col holds the first column of each cell, indexed like the input cells.
	Col  []int
	Cols int
	Rows int
}

// Arrange assigns columns to cells in row order. A cell takes the first
// column of its row not yet occupied by a cell spanning down from above.
func Arrange(cells []Cell) Grid {
	g := Grid{Col: make([]int, len(cells))}
	occupied := map[[2]int]bool{}
	cursor := map[int]int{}

	for i, c := range cells {
		col := cursor[c.Row]
		for occupied[[2]int{c.Row, col}] {
			col++
		}
		g.Col[i] = col
		for r := c.Row; r < c.Row+c.rowSpan(); r++ {
			for k := col; k < col+c.colSpan(); k++ {
				occupied[[2]int{r, k}] = true
			}
		}
		cursor[c.Row] = col + c.colSpan()
		g.Cols = max(g.Cols, col+c.colSpan())
		g.Rows = max(g.Rows, c.Row+c.rowSpan())
	}
	return g
}

// ColumnWidths computes every column width for the whole table before any
// row height is known. Single-column cells set the base widths; spanning
// cells then widen the columns they cover, smallest spans first, splitting
// any excess equally.
func ColumnWidths(cells []Cell, g Grid, spacing float64) []float64 {
	widths := make([]float64, g.Cols)
	for i, c := range cells {
		if c.colSpan() == 1 {
			widths[g.Col[i]] = math.Max(widths[g.Col[i]], c.Width)
		}
	}
	for _, i := range spanning(cells, Cell.colSpan) {
		c := cells[i]
		spread(widths[g.Col[i]:g.Col[i]+c.colSpan()], c.Width, spacing)
	}
	return widths
}

// RowHeights computes row heights once column widths are fixed.
func RowHeights(cells []Cell, g Grid, spacing float64) []float64 {
	heights := make([]float64, g.Rows)
	for _, c := range cells {
		if c.rowSpan() == 1 {
			heights[c.Row] = math.Max(heights[c.Row], c.Height)
		}
	}
	for _, i := range spanning(cells, Cell.rowSpan) {
		c := cells[i]
		spread(heights[c.Row:c.Row+c.rowSpan()], c.Height, spacing)
	}
	return heights
}

// spanning returns the indexes of cells spanning more than one track,
// ordered by span.
func spanning(cells []Cell, span func(Cell) int) []int {
	var idx []int
	for i, c := range cells {
		if span(c) > 1 {
			idx = append(idx, i)
		}
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		return span(cells[a]) - span(cells[b])
	})
	return idx
}

// spread widens tracks so that together with the spacing between them they
// cover need.
func spread(tracks []float64, need, spacing float64) {
	covered := Used(tracks, spacing)
	excess := need - covered
	if excess <= 0 || len(tracks) == 0 {
		return
	}
	share := math.Floor(excess / float64(len(tracks)))
	extra := excess - share*float64(len(tracks))
	for k := range tracks {
		tracks[k] += share
	}
	tracks[0] += extra
}

// TrackOffsets returns the start of each track laid end to end.
func TrackOffsets(tracks []float64, start, spacing float64) []float64 {
	return Positions(tracks, start, spacing)
}

// SpanExtent returns the extent of span tracks starting at first, including
// the spacing between them.
func SpanExtent(tracks []float64, first, span int, spacing float64) float64 {
	end := min(len(tracks), first+max(1, span))
	if first >= end {
		return 0
	}
	return Used(tracks[first:end], spacing)
}
