package layout

import (
	"slices"
	"testing"
)

func TestDistribute(t *testing.T) {
	tests := []struct {
		name    string
		items   []Extent
		avail   float64
		spacing float64
		want    []float64
	}{
		{
			name:  "fixed only",
			items: []Extent{{Natural: 10}, {Natural: 20}},
			avail: 100,
			want:  []float64{10, 20},
		},
		{
			name:  "percent of parent",
			items: []Extent{{Percent: 50}, {Percent: 25}},
			avail: 201,
			want:  []float64{101, 50},
		},
		{
			name:    "flex shares remaining after fixed and spacing",
			items:   []Extent{{Natural: 20}, {Flex: true}, {Flex: true}},
			avail:   105,
			spacing: 5,
			want:    []float64{20, 38, 37},
		},
		{
			name:  "flex never negative",
			items: []Extent{{Natural: 200}, {Flex: true, Natural: 30}},
			avail: 100,
			want:  []float64{200, 0},
		},
		{
			name: "empty",
			want: []float64{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distribute(tt.items, tt.avail, tt.spacing)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Distribute = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNaturalAndCross(t *testing.T) {
	items := []Extent{{Natural: 10}, {Natural: 30}, {Natural: 5}}
	if got := Natural(items, 2); got != 49 {
		t.Errorf("Natural = %v, want 49", got)
	}
	if got := CrossNatural(items); got != 30 {
		t.Errorf("CrossNatural = %v, want 30", got)
	}
	if got := Natural(nil, 2); got != 0 {
		t.Errorf("Natural(nil) = %v, want 0", got)
	}
}

func TestPositionsAndPack(t *testing.T) {
	if got := Positions([]float64{10, 20, 30}, 5, 2); !slices.Equal(got, []float64{5, 17, 39}) {
		t.Errorf("Positions = %v", got)
	}
	tests := []struct {
		align Align
		want  float64
	}{
		{AlignStart, 0},
		{AlignCenter, 25},
		{AlignEnd, 50},
		{AlignFlex, 0},
	}
	for _, tt := range tests {
		if got := PackOffset(tt.align, 100, 50); got != tt.want {
			t.Errorf("PackOffset(%v) = %v, want %v", tt.align, got, tt.want)
		}
	}
	if got := PackOffset(AlignEnd, 10, 50); got != 0 {
		t.Errorf("overflowing pack offset = %v, want 0", got)
	}
}

func TestAlignCross(t *testing.T) {
	tests := []struct {
		name       string
		align      Align
		item       Extent
		wantOffset float64
		wantSize   float64
	}{
		{"start", AlignStart, Extent{Natural: 20}, 0, 20},
		{"center", AlignCenter, Extent{Natural: 20}, 40, 20},
		{"end", AlignEnd, Extent{Natural: 20}, 80, 20},
		{"flex stretches", AlignFlex, Extent{Natural: 20}, 0, 100},
		{"flex item stretches", AlignStart, Extent{Natural: 20, Flex: true}, 0, 100},
		{"percent", AlignCenter, Extent{Percent: 50}, 25, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			off, size := AlignCross(tt.align, 100, tt.item)
			if off != tt.wantOffset || size != tt.wantSize {
				t.Errorf("AlignCross = (%v, %v), want (%v, %v)", off, size, tt.wantOffset, tt.wantSize)
			}
		})
	}
}

func TestTableArrangeWithSpans(t *testing.T) {
	// row 0: [a (rowspan 2)] [b] [c]
	// row 1:                 [d (colspan 2)]
	cells := []Cell{
		{Row: 0, RowSpan: 2, Width: 10, Height: 50},
		{Row: 0, Width: 20, Height: 10},
		{Row: 0, Width: 30, Height: 10},
		{Row: 1, ColSpan: 2, Width: 80, Height: 10},
	}
	g := Arrange(cells)
	if !slices.Equal(g.Col, []int{0, 1, 2, 1}) {
		t.Errorf("Col = %v, want [0 1 2 1]", g.Col)
	}
	if g.Cols != 3 || g.Rows != 2 {
		t.Errorf("grid = %dx%d, want 3x2", g.Cols, g.Rows)
	}

	widths := ColumnWidths(cells, g, 0)
	// d needs 80 over columns 1+2 (20+30): 30 extra split 15/15
	if !slices.Equal(widths, []float64{10, 35, 45}) {
		t.Errorf("ColumnWidths = %v, want [10 35 45]", widths)
	}
	heights := RowHeights(cells, g, 0)
	// a needs 50 over rows 0+1 (10+10): 30 extra split 15/15
	if !slices.Equal(heights, []float64{25, 25}) {
		t.Errorf("RowHeights = %v, want [25 25]", heights)
	}
	if got := SpanExtent(widths, 1, 2, 4); got != 84 {
		t.Errorf("SpanExtent = %v, want 84", got)
	}
	if got := TrackOffsets(widths, 0, 4); !slices.Equal(got, []float64{0, 14, 53}) {
		t.Errorf("TrackOffsets = %v", got)
	}
}

func TestColumnWidthsSpacingCountsTowardSpan(t *testing.T) {
	cells := []Cell{
		{Row: 0, Width: 10},
		{Row: 0, Width: 10},
		{Row: 1, ColSpan: 2, Width: 25},
	}
	g := Arrange(cells)
	widths := ColumnWidths(cells, g, 5)
	if !slices.Equal(widths, []float64{10, 10}) {
		t.Errorf("ColumnWidths = %v, want [10 10] (10+5+10 covers 25)", widths)
	}
}

func TestWrapFixedWidth(t *testing.T) {
	runs := []Run{
		{Width: 30, Height: 10},
		{Width: 30, Height: 10},
		{Width: 30, Height: 12},
		{Width: 30, Height: 10},
		{Width: 30, Height: 10},
	}
	f := Wrap(runs, 70, 5, 2)
	if len(f.Lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(f.Lines))
	}
	if f.Lines[1].Height != 12 {
		t.Errorf("line 1 height = %v, want 12", f.Lines[1].Height)
	}
	if want := 10.0 + 2 + 12 + 2 + 10; f.Height != want {
		t.Errorf("Height = %v, want %v", f.Height, want)
	}
	if f.Pos[1].X != 35 || f.Pos[2].X != 0 || f.Pos[2].Y != 12 {
		t.Errorf("positions = %v", f.Pos)
	}
	for _, l := range f.Lines {
		if l.Width > 70 {
			t.Errorf("line width %v exceeds container width", l.Width)
		}
	}
}

func TestWrapOversizedAndBreaks(t *testing.T) {
	runs := []Run{
		{Width: 100, Height: 10},
		{Width: 10, Height: 10},
		{Width: 10, Height: 10, Break: true},
	}
	f := Wrap(runs, 50, 0, 0)
	if len(f.Lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(f.Lines))
	}
	if f.Lines[0].Last != 1 || f.Lines[1].First != 1 {
		t.Errorf("oversized run should own its line: %+v", f.Lines)
	}
	if got := Wrap(nil, 50, 0, 0); got.Height != 0 || len(got.Lines) != 0 {
		t.Errorf("empty flow = %+v", got)
	}
}
