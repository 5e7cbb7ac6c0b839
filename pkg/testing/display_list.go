package testing

import (
	"fmt"
	"math"

	"github.com/go-drift/scene/pkg/graphics"
)

// DisplayOp represents a serialized drawing primitive.
type DisplayOp struct {
	Op     string         `json:"op"`
	Params map[string]any `json:"params,omitempty"`
}

// SerializeOps converts recorded primitives into DisplayOps.
func SerializeOps(ops []graphics.Op) []DisplayOp {
	out := make([]DisplayOp, 0, len(ops))
	for _, op := range ops {
		out = append(out, serializeOp(op))
	}
	return out
}

func serializeOp(op graphics.Op) DisplayOp {
	switch o := op.(type) {
	case graphics.RectOp:
		if o.Fill {
			return DisplayOp{
				Op:     "fillRect",
				Params: sortedMap("rect", serializeRect(o.Rect), "color", serializeColor(o.Color)),
			}
		}
		return DisplayOp{
			Op: "strokeRect",
			Params: sortedMap(
				"rect", serializeRect(o.Rect),
				"color", serializeColor(o.Color),
				"width", round2(o.StrokeWidth),
			),
		}
	case graphics.LineOp:
		return DisplayOp{
			Op: "drawLine",
			Params: sortedMap(
				"from", serializeOffset(o.From),
				"to", serializeOffset(o.To),
				"color", serializeColor(o.Color),
				"width", round2(o.Width),
			),
		}
	case graphics.TextOp:
		return DisplayOp{
			Op: "drawText",
			Params: sortedMap(
				"origin", serializeOffset(o.Origin),
				"text", o.Text,
				"color", serializeColor(o.Color),
				"size", round2(o.FontSize),
			),
		}
	case graphics.ImageOp:
		return DisplayOp{
			Op:     "drawImage",
			Params: sortedMap("rect", serializeRect(o.Rect), "alpha", round2(o.Alpha)),
		}
	default:
		return DisplayOp{Op: fmt.Sprintf("%T", op), Params: sortedMap("bounds", serializeRect(op.Bounds()))}
	}
}

// --- Serialization helpers ---

func serializeRect(r graphics.Rect) map[string]any {
	return sortedMap(
		"left", round2(r.Left),
		"top", round2(r.Top),
		"right", round2(r.Right),
		"bottom", round2(r.Bottom),
	)
}

func serializeOffset(o graphics.Offset) map[string]any {
	return sortedMap("x", round2(o.X), "y", round2(o.Y))
}

func serializeColor(c graphics.Color) string {
	return fmt.Sprintf("0x%08X", uint32(c))
}

// round2 rounds a float64 to 2 decimal places.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// sortedMap creates a map from alternating key-value pairs.
// JSON marshaling sorts the keys.
func sortedMap(kvs ...any) map[string]any {
	m := make(map[string]any, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		m[kvs[i].(string)] = kvs[i+1]
	}
	return m
}
