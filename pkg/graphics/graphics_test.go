package graphics

import "testing"

func TestRectIntersectAndUnion(t *testing.T) {
	a := RectFromLTWH(0, 0, 10, 10)
	b := RectFromLTWH(5, 5, 10, 10)

	if got, want := a.Intersect(b), RectFromLTWH(5, 5, 5, 5); got != want {
		t.Errorf("Intersect = %+v, want %+v", got, want)
	}
	if got, want := a.Union(b), RectFromLTWH(0, 0, 15, 15); got != want {
		t.Errorf("Union = %+v, want %+v", got, want)
	}
	if got := a.Union(Rect{}); got != a {
		t.Errorf("Union with empty = %+v, want %+v", got, a)
	}
	if !a.Intersect(RectFromLTWH(20, 20, 1, 1)).IsEmpty() {
		t.Error("disjoint rects should have empty intersection")
	}
}

func TestRectContains(t *testing.T) {
	r := RectFromLTWH(10, 10, 5, 5)
	tests := []struct {
		p    Offset
		want bool
	}{
		{Offset{10, 10}, true},
		{Offset{14.9, 14.9}, true},
		{Offset{15, 12}, false},
		{Offset{9, 12}, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestRectDeflate(t *testing.T) {
	r := RectFromLTWH(0, 0, 100, 50).Deflate(Insets{Left: 1, Top: 2, Right: 3, Bottom: 4})
	if want := (Rect{Left: 1, Top: 2, Right: 97, Bottom: 46}); r != want {
		t.Errorf("Deflate = %+v, want %+v", r, want)
	}
	in := UniformInsets(2).Add(Insets{Left: 1})
	if in.Horizontal() != 5 || in.Vertical() != 4 {
		t.Errorf("insets = %+v", in)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"navy", ColorNavy},
		{" Gray ", ColorGrey},
		{"#123456", Color(0xFF123456)},
		{"#80FF0000", Color(0x80FF0000)},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseColor(%q) = %v, %v, want %v", tt.in, got, err, tt.want)
		}
	}
	for _, bad := range []string{"", "#12", "#GGGGGG", "mauve"} {
		if _, err := ParseColor(bad); err == nil {
			t.Errorf("ParseColor(%q) should fail", bad)
		}
	}
}

func TestColor(t *testing.T) {
	c := RGB(0x12, 0x34, 0x56)
	if got, want := c.String(), "#FF123456"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if c.WithAlpha(0).IsTransparent() != true {
		t.Error("WithAlpha(0) should be transparent")
	}
	if got := RGBA(0, 0, 0, 0.5).Alpha(); got < 0.49 || got > 0.51 {
		t.Errorf("Alpha() = %v, want ~0.5", got)
	}
}

func TestDamageMergesOverlaps(t *testing.T) {
	var d Damage
	d.Add(RectFromLTWH(0, 0, 10, 10))
	d.Add(RectFromLTWH(50, 50, 10, 10))
	if len(d.Rects()) != 2 {
		t.Fatalf("expected 2 disjoint rects, got %d", len(d.Rects()))
	}
	// bridges both existing rects
	d.Add(RectFromLTWH(5, 5, 50, 50))
	if len(d.Rects()) != 1 {
		t.Fatalf("expected merge into 1 rect, got %d", len(d.Rects()))
	}
	if got, want := d.Bounds(), RectFromLTWH(0, 0, 60, 60); got != want {
		t.Errorf("Bounds = %+v, want %+v", got, want)
	}
	if !d.Intersects(RectFromLTWH(59, 59, 5, 5)) {
		t.Error("expected damage to intersect corner rect")
	}
	d.Add(Rect{})
	d.Reset()
	if !d.IsEmpty() {
		t.Error("Reset should clear damage")
	}
}

func TestRecorderTranslatesAndClips(t *testing.T) {
	var r Recorder
	r.Begin(Offset{X: 100, Y: 100}, RectFromLTWH(100, 100, 50, 50))
	r.FillRect(RectFromLTWH(0, 0, 10, 10), ColorRed)
	r.FillRect(RectFromLTWH(0, 0, 10, 10), ColorTransparent)
	r.FillRect(RectFromLTWH(200, 200, 10, 10), ColorRed) // outside clip
	r.StrokeRect(RectFromLTWH(0, 0, 50, 50), ColorBlack, 1)
	r.DrawText(TextOp{Text: "hi", Advance: 14, Height: 13})
	list := r.End()

	if list.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", list.Len())
	}
	rect := list.Ops()[0].(RectOp)
	if want := RectFromLTWH(100, 100, 10, 10); rect.Rect != want || !rect.Fill {
		t.Errorf("first op = %+v, want fill at %+v", rect, want)
	}
	text := list.Ops()[2].(TextOp)
	if text.Origin != (Offset{X: 100, Y: 100}) {
		t.Errorf("text origin = %+v, want translated", text.Origin)
	}
	if got, want := list.Bounds(), RectFromLTWH(100, 100, 50, 50); got != want {
		t.Errorf("Bounds = %+v, want %+v", got, want)
	}
}

func TestFaceMetricsScale(t *testing.T) {
	m := DefaultFontMetrics()
	if got := m.LineHeight(13); got != 13 {
		t.Errorf("LineHeight(13) = %v, want 13", got)
	}
	if got := m.LineHeight(26); got != 26 {
		t.Errorf("LineHeight(26) = %v, want 26", got)
	}
	if got := m.Advance("abc", 13); got != 21 {
		t.Errorf("Advance(abc, 13) = %v, want 21", got)
	}
	if got := m.Advance("abc", 26); got != 42 {
		t.Errorf("Advance(abc, 26) = %v, want 42", got)
	}
	if m.XHeight(13) <= 0 || m.Ascent(13) <= 0 {
		t.Error("expected positive x-height and ascent")
	}
}
