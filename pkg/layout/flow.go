package layout

import (
	"math"

	"github.com/go-drift/scene/pkg/graphics"
)

// Run is an unbreakable piece of flow content: a word or an inline box.
type Run struct {
	Width  float64
	Height float64
	// Break forces a new line before this run.
	Break bool
}

// Line is one line produced by Wrap. Runs [First, Last) belong to it.
type Line struct {
	First  int
	Last   int
	Y      float64
	Width  float64
	Height float64
}

// Flow is the result of breaking runs into lines of a fixed width.
type Flow struct {
	Lines []Line
	// Pos holds the top-left of each run relative to the flow origin.
	Pos    []graphics.Offset
	Height float64
}

// Wrap breaks runs into lines no wider than width. hspacing separates runs
// on a line and vspacing separates lines. A run wider than width still gets
// a line of its own. The width is an input only: the flow never widens, it
// grows downwards.
func Wrap(runs []Run, width, hspacing, vspacing float64) Flow {
	f := Flow{Pos: make([]graphics.Offset, len(runs))}
	if len(runs) == 0 {
		return f
	}

	line := Line{}
	x := 0.0
	y := 0.0
	flush := func(end int) {
		line.Last = end
		line.Y = y
		f.Lines = append(f.Lines, line)
		for i := line.First; i < end; i++ {
			f.Pos[i].Y = y
		}
		y += line.Height + vspacing
	}

	for i, r := range runs {
		if i > line.First {
			fits := x+hspacing+r.Width <= width
			if r.Break || !fits {
				flush(i)
				line = Line{First: i}
				x = 0
			} else {
				x += hspacing
			}
		}
		f.Pos[i].X = x
		x += r.Width
		line.Width = x
		line.Height = math.Max(line.Height, r.Height)
	}
	flush(len(runs))

	f.Height = y - vspacing
	return f
}
