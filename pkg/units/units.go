// Package units supports the length units used by scene attributes.
//
// A Length stores a value together with its Unit and is converted to raw
// pixels later, once the Context (display calibration, font metrics and scale
// factor) is known at the point of use in the cascade. Relative units (em, ex,
// percent) therefore resolve differently depending on where the attribute is
// applied, which is why lengths are never converted at construction time.
package units

import (
	"math"
	"strconv"
)

// Standard conversion factors.
const (
	PtPerInch = 72.0
	PcPerInch = 6.0
	MmPerInch = 25.4
	CmPerInch = 2.54
)

// Unit specifies how a Length value is interpreted.
type Unit uint8

const (
	// UnitPx is raw display pixels.
	UnitPx Unit = iota
	// UnitPt is points, 1pt = 1/72in.
	UnitPt
	// UnitPc is picas, 1pc = 1/6in.
	UnitPc
	// UnitIn is inches.
	UnitIn
	// UnitCm is centimeters.
	UnitCm
	// UnitMm is millimeters.
	UnitMm
	// UnitEm is the current font size.
	UnitEm
	// UnitEx is the x-height of the current font.
	UnitEx
	// UnitPercent is a percentage of the parent extent.
	UnitPercent
	// UnitPercentCenter is a percentage of (parent extent - own extent),
	// which anchors a child relative to its center.
	UnitPercentCenter
	// UnitAuto lets the layout compute the value from content.
	UnitAuto
	// UnitIgnore marks the value as not participating in layout.
	UnitIgnore
	// UnitKeep keeps the previously resolved value.
	UnitKeep
)

// suffixes is indexed by Unit.
var suffixes = [...]string{
	UnitPx:            "px",
	UnitPt:            "pt",
	UnitPc:            "pc",
	UnitIn:            "in",
	UnitCm:            "cm",
	UnitMm:            "mm",
	UnitEm:            "em",
	UnitEx:            "ex",
	UnitPercent:       "%",
	UnitPercentCenter: "%c",
	UnitAuto:          "auto",
	UnitIgnore:        "ignore",
	UnitKeep:          "keep",
}

// String returns the textual suffix of the unit.
func (u Unit) String() string {
	if int(u) < len(suffixes) {
		return suffixes[u]
	}
	return "Unit(" + strconv.Itoa(int(u)) + ")"
}

// IsKeyword reports whether the unit is a value-less keyword (auto, ignore, keep).
func (u Unit) IsKeyword() bool {
	return u == UnitAuto || u == UnitIgnore || u == UnitKeep
}

// Length is a scalar tagged with a unit.
type Length struct {
	Value float64
	Unit  Unit
}

// Px returns a length in pixels.
func Px(v float64) Length { return Length{Value: v, Unit: UnitPx} }

// Pt returns a length in points.
func Pt(v float64) Length { return Length{Value: v, Unit: UnitPt} }

// Pc returns a length in picas.
func Pc(v float64) Length { return Length{Value: v, Unit: UnitPc} }

// In returns a length in inches.
func In(v float64) Length { return Length{Value: v, Unit: UnitIn} }

// Cm returns a length in centimeters.
func Cm(v float64) Length { return Length{Value: v, Unit: UnitCm} }

// Mm returns a length in millimeters.
func Mm(v float64) Length { return Length{Value: v, Unit: UnitMm} }

// Em returns a length relative to the font size.
func Em(v float64) Length { return Length{Value: v, Unit: UnitEm} }

// Ex returns a length relative to the font x-height.
func Ex(v float64) Length { return Length{Value: v, Unit: UnitEx} }

// Percent returns a percentage of the parent extent (0-100 scale).
func Percent(v float64) Length { return Length{Value: v, Unit: UnitPercent} }

// PercentCenter returns a percentage of (parent extent - own extent).
func PercentCenter(v float64) Length { return Length{Value: v, Unit: UnitPercentCenter} }

// Auto returns the auto keyword.
func Auto() Length { return Length{Unit: UnitAuto} }

// Ignore returns the ignore keyword.
func Ignore() Length { return Length{Unit: UnitIgnore} }

// Keep returns the keep-previous-size keyword.
func Keep() Length { return Length{Unit: UnitKeep} }

// IsAuto reports whether the length is auto or ignore, both of which
// defer to the content size.
func (l Length) IsAuto() bool {
	return l.Unit == UnitAuto || l.Unit == UnitIgnore
}

// IsKeep reports whether the length keeps the previous size.
func (l Length) IsKeep() bool {
	return l.Unit == UnitKeep
}

// IsPercent reports whether the length depends on the parent extent.
func (l Length) IsPercent() bool {
	return l.Unit == UnitPercent || l.Unit == UnitPercentCenter
}

// IsFixed reports whether the length resolves without a parent extent.
func (l Length) IsFixed() bool {
	return !l.Unit.IsKeyword() && !l.IsPercent()
}

// String formats the length the way ParseLength accepts it.
func (l Length) String() string {
	if l.Unit.IsKeyword() {
		return l.Unit.String()
	}
	return strconv.FormatFloat(l.Value, 'g', -1, 64) + l.Unit.String()
}

// round rounds half away from zero, matching pixel snapping.
func round(v float64) float64 {
	return math.Round(v)
}
