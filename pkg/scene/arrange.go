package scene

import (
	"slices"
	"strings"

	"github.com/go-drift/scene/pkg/graphics"
	"github.com/go-drift/scene/pkg/layout"
	"github.com/go-drift/scene/pkg/units"
	"github.com/go-drift/scene/pkg/update"
)

// entry is a box met while walking the content of a parent box, possibly
// through groups.
type entry struct {
	box     *Box
	index   int
	groups  []*Element
	ctx     *UpdateContext
	view    *View
	natural graphics.Size
	hidden  bool
}

// entries walks the content of b, whose context is ctx. Existing child
// views are looked up under v, which may be nil.
func entries(ctx *UpdateContext, b *Box, v *View) []*entry {
	occ := map[*Box]int{}
	var out []*entry
	var walk func(e *Element, gctx *UpdateContext, groups []*Element)
	walk = func(e *Element, gctx *UpdateContext, groups []*Element) {
		for _, n := range e.content() {
			if cb := asBox(n); cb != nil {
				idx := occ[cb]
				occ[cb]++
				en := &entry{box: cb, index: idx, groups: groups, hidden: cb.Hidden()}
				en.view = v.findChild(cb, idx)
				en.ctx = gctx.derive(cb, en.view)
				out = append(out, en)
			} else if g, ok := n.(*Element); ok {
				walk(g, gctx.group(g), append(slices.Clip(groups), g))
			}
		}
	}
	walk(&b.Element, ctx, nil)
	return out
}

// extent resolves a size length. It reports false when the size comes
// from the content.
func extent(ctx *UpdateContext, l units.Length, avail float64, prev float64, hasPrev bool) (float64, bool) {
	switch {
	case l.IsKeep():
		return prev, hasPrev
	case l.IsAuto():
		return 0, false
	default:
		return max(0, ctx.Px(l, avail)), true
	}
}

func percentOf(l units.Length) float64 {
	if l.IsPercent() {
		return l.Value
	}
	return 0
}

// measure returns the natural outer size of b in ctx. avail is the content
// size of the parent, percentages refer to it. v is the current view of b,
// used for keep-previous sizes, or nil.
func measure(ctx *UpdateContext, b *Box, v *View, avail graphics.Size) graphics.Size {
	in := ctx.Insets(avail.Width)
	laid := v != nil && v.laidOut
	var prev graphics.Size
	if laid {
		prev = v.size
	}
	w, fixedW := extent(ctx, ctx.Width, avail.Width, prev.Width, laid)
	h, fixedH := extent(ctx, ctx.Height, avail.Height, prev.Height, laid)
	if ctx.Mode == LayoutFlow && !fixedW {
		// a flow never widens with its content
		w, fixedW = avail.Width, true
	}
	if fixedW && fixedH {
		return graphics.Size{Width: w, Height: h}
	}

	// percentages of children refer to the current content size
	inner := graphics.Size{Width: prev.Width, Height: prev.Height}
	if fixedW {
		inner.Width = w
	}
	if fixedH {
		inner.Height = h
	}
	inner.Width = max(0, inner.Width-in.Horizontal())
	inner.Height = max(0, inner.Height-in.Vertical())

	content := measureContent(ctx, b, v, inner)
	if !fixedW {
		w = content.Width + in.Horizontal()
	}
	if !fixedH {
		h = content.Height + in.Vertical()
	}
	return graphics.Size{Width: w, Height: h}
}

func measureContent(ctx *UpdateContext, b *Box, v *View, inner graphics.Size) graphics.Size {
	if t, ok := textOf(b); ok {
		return textSize(ctx, t)
	}
	es := entries(ctx, b, v)
	switch ctx.Mode {
	case LayoutFlow:
		f := flowLayout(ctx, es, inner)
		return graphics.Size{Width: inner.Width, Height: f.flow.Height}
	case LayoutTable:
		return tableLayout(ctx, es, inner).size
	}

	hgap, vgap := ctx.Gaps(inner)
	horizontal := ctx.Orient == Horizontal
	var items []layout.Extent
	var cross []layout.Extent
	for _, e := range es {
		if e.hidden || e.ctx.Pos != nil {
			continue
		}
		e.natural = measure(e.ctx, e.box, e.view, inner)
		if horizontal {
			items = append(items, layout.Extent{Natural: e.natural.Width})
			cross = append(cross, layout.Extent{Natural: e.natural.Height})
		} else {
			items = append(items, layout.Extent{Natural: e.natural.Height})
			cross = append(cross, layout.Extent{Natural: e.natural.Width})
		}
	}
	if horizontal {
		return graphics.Size{Width: layout.Natural(items, hgap), Height: layout.CrossNatural(cross)}
	}
	return graphics.Size{Width: layout.CrossNatural(cross), Height: layout.Natural(items, vgap)}
}

func textSize(ctx *UpdateContext, t *Text) graphics.Size {
	lines := t.lines()
	var w float64
	for _, l := range lines {
		w = max(w, ctx.TextWidth(l))
	}
	return graphics.Size{Width: w, Height: float64(len(lines)) * ctx.LineHeight()}
}

// relayout recomputes the subtree of v. When the natural size of v changed,
// the parent is asked to lay out again in the next pass instead, since it
// decides the size of v.
func (v *View) relayout(kind update.Kind) {
	if v.tableRow && v.parent != nil {
		v.parent.box.post(update.LayoutPaint)
		return
	}
	ctx := v.context()
	remeasure := !kind.Has(update.MoveOnly)
	if v.parent == nil {
		size := v.window.Size()
		v.avail = size
		v.natural = measure(ctx, v.box, v, size)
		v.place(graphics.Offset{}, size, graphics.RectFromOffsetSize(graphics.Offset{}, size))
		ctx.Clip = v.clip
		v.layoutChildren(ctx, remeasure)
		return
	}
	if remeasure {
		natural := measure(ctx, v.box, v, v.avail)
		if v.laidOut && natural != v.natural {
			v.natural = natural
			v.parent.box.post(update.LayoutPaint)
			return
		}
		v.natural = natural
	}
	v.layoutChildren(ctx, remeasure)
}

// layoutChildren places the children of v inside its current size.
func (v *View) layoutChildren(ctx *UpdateContext, remeasure bool) {
	defer func() { v.laidOut = true }()
	if _, ok := textOf(v.box); ok {
		return
	}
	in := ctx.Insets(v.avail.Width)
	content := graphics.RectFromLTWH(in.Left, in.Top,
		max(0, v.size.Width-in.Horizontal()), max(0, v.size.Height-in.Vertical()))

	es := entries(ctx, v.box, v)
	v.realize(es)
	switch ctx.Mode {
	case LayoutFlow:
		v.layoutFlow(ctx, es, content)
	case LayoutTable:
		v.layoutTable(ctx, es, content)
	default:
		v.layoutStack(ctx, es, content, remeasure)
	}
}

// realize matches entries with child views, creating the missing ones and
// destroying those whose path is gone. Hidden boxes keep their views but
// get no new ones.
func (v *View) realize(es []*entry) {
	keep := make([]*View, 0, len(es))
	seen := make(map[*View]bool, len(es))
	for _, e := range es {
		if e.view == nil {
			if e.hidden {
				continue
			}
			e.view = newView(e.box, v, v.window, e.index, e.groups)
			e.ctx.View = e.view
		}
		e.view.groups = e.groups
		if e.hidden {
			e.view.shown = false
		}
		seen[e.view] = true
		keep = append(keep, e.view)
	}
	for _, c := range slices.Clone(v.children) {
		if !seen[c] {
			c.destroy()
		}
	}
	v.children = keep
}

// layoutChild places the view of e and lays out its own children.
func (v *View) layoutChild(e *entry, pos graphics.Offset, size graphics.Size, avail graphics.Size, clip graphics.Rect, remeasure bool) {
	c := e.view
	c.avail = avail
	c.natural = e.natural
	c.tableRow = false
	c.place(pos, size, clip)
	e.ctx.Clip = c.clip
	c.layoutChildren(e.ctx, remeasure)
}

func (v *View) layoutStack(ctx *UpdateContext, es []*entry, content graphics.Rect, remeasure bool) {
	inner := content.Size()
	hgap, vgap := ctx.Gaps(inner)
	horizontal := ctx.Orient == Horizontal

	mainAvail, crossAvail, gap := inner.Width, inner.Height, hgap
	mainAlign, crossAlign := ctx.HAlign, ctx.VAlign
	if !horizontal {
		mainAvail, crossAvail, gap = inner.Height, inner.Width, vgap
		mainAlign, crossAlign = ctx.VAlign, ctx.HAlign
	}

	var stacked, floating []*entry
	for _, e := range es {
		if e.hidden || e.view == nil {
			continue
		}
		if remeasure || !e.view.laidOut {
			e.natural = measure(e.ctx, e.box, e.view, inner)
		} else {
			e.natural = e.view.natural
		}
		if e.ctx.Pos != nil {
			floating = append(floating, e)
		} else {
			stacked = append(stacked, e)
		}
	}

	mainLen := func(e *entry) (units.Length, float64) {
		if horizontal {
			return e.ctx.Width, e.natural.Width
		}
		return e.ctx.Height, e.natural.Height
	}
	crossLen := func(e *entry) (units.Length, float64) {
		if horizontal {
			return e.ctx.Height, e.natural.Height
		}
		return e.ctx.Width, e.natural.Width
	}

	exts := make([]layout.Extent, len(stacked))
	for i, e := range stacked {
		l, n := mainLen(e)
		exts[i] = layout.Extent{
			Natural: n,
			Percent: percentOf(l),
			Flex:    mainAlign == layout.AlignFlex && l.IsAuto(),
		}
	}
	sizes := layout.Distribute(exts, mainAvail, gap)
	start := layout.PackOffset(mainAlign, mainAvail, layout.Used(sizes, gap))
	offsets := layout.Positions(sizes, start, gap)

	for i, e := range stacked {
		l, n := crossLen(e)
		align := crossAlign
		if align == layout.AlignFlex && !l.IsAuto() {
			// an explicit size is never stretched
			align = layout.AlignStart
		}
		off, cross := layout.AlignCross(align, crossAvail, layout.Extent{Natural: n, Percent: percentOf(l)})
		pos := graphics.Offset{X: offsets[i], Y: off}
		size := graphics.Size{Width: sizes[i], Height: cross}
		if !horizontal {
			pos = graphics.Offset{X: off, Y: offsets[i]}
			size = graphics.Size{Width: cross, Height: sizes[i]}
		}
		v.layoutChild(e, content.Origin().Add(pos), size, inner, v.clip, remeasure)
	}

	for _, e := range floating {
		size := e.natural
		// the extent resolved by this pass anchors percent-centered positions
		x := e.ctx.Units.ResolveCentered(e.ctx.Pos.X, inner.Width, size.Width)
		y := e.ctx.Units.ResolveCentered(e.ctx.Pos.Y, inner.Height, size.Height)
		v.layoutChild(e, content.Origin().Add(graphics.Offset{X: x, Y: y}), size, inner, v.clip, remeasure)
	}
}

// flowResult is a flow of runs with the owner entry of every run.
type flowResult struct {
	flow   layout.Flow
	owner  []int
	text   []string
	widths []float64
}

// flowLayout breaks the content of a flow box into lines of inner.Width.
// Text children contribute one run per word, other boxes one run each.
func flowLayout(ctx *UpdateContext, es []*entry, inner graphics.Size) flowResult {
	hgap, vgap := ctx.Gaps(inner)
	if hgap == 0 {
		hgap = ctx.TextWidth(" ")
	}
	var fr flowResult
	var runs []layout.Run
	for i, e := range es {
		if e.hidden {
			continue
		}
		if t, ok := textOf(e.box); ok {
			lh := e.ctx.LineHeight()
			for ln, line := range t.lines() {
				for k, w := range strings.Fields(line) {
					width := e.ctx.TextWidth(w)
					runs = append(runs, layout.Run{Width: width, Height: lh, Break: ln > 0 && k == 0})
					fr.owner = append(fr.owner, i)
					fr.text = append(fr.text, w)
					fr.widths = append(fr.widths, width)
				}
			}
			continue
		}
		e.natural = measure(e.ctx, e.box, e.view, inner)
		runs = append(runs, layout.Run{Width: e.natural.Width, Height: e.natural.Height})
		fr.owner = append(fr.owner, i)
		fr.text = append(fr.text, "")
		fr.widths = append(fr.widths, e.natural.Width)
	}
	fr.flow = layout.Wrap(runs, inner.Width, hgap, vgap)
	return fr
}

func (v *View) layoutFlow(ctx *UpdateContext, es []*entry, content graphics.Rect) {
	inner := content.Size()
	fr := flowLayout(ctx, es, inner)

	bounds := make([]graphics.Rect, len(es))
	placed := make([]bool, len(es))
	for r, i := range fr.owner {
		run := graphics.RectFromLTWH(fr.flow.Pos[r].X, fr.flow.Pos[r].Y, fr.widths[r], lineOf(fr.flow, r).Height)
		if !placed[i] {
			bounds[i], placed[i] = run, true
		} else {
			bounds[i] = bounds[i].Union(run)
		}
	}

	for i, e := range es {
		if e.hidden || e.view == nil {
			continue
		}
		rect := bounds[i]
		_, isText := textOf(e.box)
		if !isText {
			// boxes keep their natural height inside the line
			rect = graphics.RectFromOffsetSize(rect.Origin(), e.natural)
		}
		e.natural = rect.Size()
		v.layoutChild(e, content.Origin().Add(rect.Origin()), rect.Size(), inner, v.clip, true)
		if isText {
			e.view.words = e.view.words[:0]
			for r, owner := range fr.owner {
				if owner != i {
					continue
				}
				e.view.words = append(e.view.words, word{
					text:  fr.text[r],
					pos:   fr.flow.Pos[r].Sub(rect.Origin()),
					width: fr.widths[r],
				})
			}
		}
	}
}

// lineOf returns the line holding run r.
func lineOf(f layout.Flow, r int) layout.Line {
	for _, l := range f.Lines {
		if r >= l.First && r < l.Last {
			return l
		}
	}
	return layout.Line{}
}

// tableResult is the solved geometry of a table.
type tableResult struct {
	rows    []*entry
	cells   [][]*entry
	layout  []layout.Cell
	grid    layout.Grid
	widths  []float64
	heights []float64
	hgap    float64
	vgap    float64
	size    graphics.Size
}

// tableLayout solves a table: every column width is computed for the whole
// table first, row heights afterwards.
func tableLayout(ctx *UpdateContext, rows []*entry, inner graphics.Size) tableResult {
	tr := tableResult{}
	tr.hgap, tr.vgap = ctx.Gaps(inner)
	r := 0
	for _, row := range rows {
		if row.hidden {
			continue
		}
		var cells []*entry
		for _, c := range entries(row.ctx, row.box, row.view) {
			if c.hidden {
				continue
			}
			c.natural = measure(c.ctx, c.box, c.view, inner)
			cells = append(cells, c)
			tr.layout = append(tr.layout, layout.Cell{
				Row:     r,
				ColSpan: c.ctx.ColSpan,
				RowSpan: c.ctx.RowSpan,
				Width:   c.natural.Width,
				Height:  c.natural.Height,
			})
		}
		tr.rows = append(tr.rows, row)
		tr.cells = append(tr.cells, cells)
		r++
	}
	tr.grid = layout.Arrange(tr.layout)
	// rows without cells still count
	tr.grid.Rows = max(tr.grid.Rows, len(tr.rows))
	tr.widths = layout.ColumnWidths(tr.layout, tr.grid, tr.hgap)
	tr.heights = layout.RowHeights(tr.layout, tr.grid, tr.vgap)
	tr.size = graphics.Size{
		Width:  layout.Used(tr.widths, tr.hgap),
		Height: layout.Used(tr.heights, tr.vgap),
	}
	return tr
}

func (v *View) layoutTable(ctx *UpdateContext, rows []*entry, content graphics.Rect) {
	inner := content.Size()
	// rows need views before their cells can be matched
	for _, row := range rows {
		if !row.hidden && row.view != nil {
			row.view.realize(entries(row.ctx, row.box, row.view))
		}
	}
	tr := tableLayout(ctx, rows, inner)
	colOff := layout.TrackOffsets(tr.widths, 0, tr.hgap)
	rowOff := layout.TrackOffsets(tr.heights, 0, tr.vgap)

	k := 0
	for r, row := range tr.rows {
		rv := row.view
		rv.avail = inner
		rv.natural = graphics.Size{Width: tr.size.Width, Height: tr.heights[r]}
		rv.place(content.Origin().Add(graphics.Offset{Y: rowOff[r]}), rv.natural, v.clip)
		rv.tableRow = true
		rv.laidOut = true
		for _, c := range tr.cells[r] {
			col := tr.grid.Col[k]
			cell := tr.layout[k]
			k++
			size := graphics.Size{
				Width:  layout.SpanExtent(tr.widths, col, cell.ColSpan, tr.hgap),
				Height: layout.SpanExtent(tr.heights, r, cell.RowSpan, tr.vgap),
			}
			// spanning cells reach below their row, so they clip to the table
			rv.layoutChild(c, graphics.Offset{X: colOff[col]}, size, inner, v.clip, true)
		}
	}
}
