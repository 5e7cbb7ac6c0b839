package scene

import (
	"github.com/go-drift/scene/pkg/graphics"
)

// paint records v and its descendants. ctx is the context of v.
func (v *View) paint(rec *graphics.Recorder, ctx *UpdateContext) {
	if v.destroyed || !v.shown || v.clip.IsEmpty() {
		return
	}
	rec.SetOrigin(v.origin)
	rec.SetClip(v.clip)

	local := graphics.RectFromOffsetSize(graphics.Offset{}, v.size)
	alpha := max(0, min(1, ctx.Alpha))
	if bg := ctx.Background; !bg.IsTransparent() {
		rec.FillRect(local, bg.WithAlpha(bg.Alpha()*alpha))
	}
	if bw := ctx.BorderWidth(v.avail.Width); bw > 0 {
		c := ctx.Border.Color
		rec.StrokeRect(local, c.WithAlpha(c.Alpha()*alpha), bw)
	}
	if t, ok := textOf(v.box); ok {
		v.paintText(rec, ctx, t, alpha)
	}

	for _, c := range v.children {
		c.paint(rec, ctx.child(c))
	}
}

func (v *View) paintText(rec *graphics.Recorder, ctx *UpdateContext, t *Text, alpha float64) {
	color := ctx.Color.WithAlpha(ctx.Color.Alpha() * alpha)
	lh := ctx.LineHeight()
	op := graphics.TextOp{
		Color:    color,
		FontSize: ctx.FontPx,
		Family:   ctx.Font.Family,
		Height:   lh,
	}
	if len(v.words) > 0 {
		for _, w := range v.words {
			op.Origin, op.Text, op.Advance = w.pos, w.text, w.width
			rec.DrawText(op)
		}
		return
	}
	in := ctx.Insets(v.avail.Width)
	for i, line := range t.lines() {
		if line == "" {
			continue
		}
		op.Origin = graphics.Offset{X: in.Left, Y: in.Top + float64(i)*lh}
		op.Text = line
		op.Advance = ctx.TextWidth(line)
		rec.DrawText(op)
	}
}
