package units

// DefaultPixelsPerInch is used when a Display has no calibration.
const DefaultPixelsPerInch = 96.0

// Display holds the calibration of one physical output.
type Display struct {
	// PixelsPerInch converts in/pt/pc lengths.
	PixelsPerInch float64
	// PixelsPerMM converts mm/cm lengths. Zero derives it from PixelsPerInch.
	PixelsPerMM float64
}

// DefaultDisplay returns a 96 dpi display.
func DefaultDisplay() *Display {
	return &Display{PixelsPerInch: DefaultPixelsPerInch}
}

// ppi returns the calibrated pixels per inch, defaulting when unset.
func (d *Display) ppi() float64 {
	if d == nil || d.PixelsPerInch <= 0 {
		return DefaultPixelsPerInch
	}
	return d.PixelsPerInch
}

// ppmm returns the calibrated pixels per millimeter.
func (d *Display) ppmm() float64 {
	if d != nil && d.PixelsPerMM > 0 {
		return d.PixelsPerMM
	}
	return d.ppi() / MmPerInch
}

// Context is the reference state needed to convert a Length to pixels.
// It is rebuilt at every level of the cascade.
type Context struct {
	Display *Display
	// FontSize is the current font size in pixels (the em box).
	FontSize float64
	// XHeight is the x-height of the current font in pixels.
	XHeight float64
	// Scale is the inherited uniform scale factor. Zero means 1.
	Scale float64
}

// scale returns the effective scale factor.
func (c Context) scale() float64 {
	if c.Scale == 0 {
		return 1
	}
	return c.Scale
}

// ToPixels converts an absolute or font-relative length to pixels without
// rounding. Percent and keyword units return 0.
func (c Context) ToPixels(l Length) float64 {
	switch l.Unit {
	case UnitPx:
		return l.Value * c.scale()
	case UnitPt:
		return l.Value * c.Display.ppi() / PtPerInch * c.scale()
	case UnitPc:
		return l.Value * c.Display.ppi() / PcPerInch * c.scale()
	case UnitIn:
		return l.Value * c.Display.ppi() * c.scale()
	case UnitMm:
		return l.Value * c.Display.ppmm() * c.scale()
	case UnitCm:
		return l.Value * c.Display.ppmm() * 10 * c.scale()
	case UnitEm:
		// font metrics already carry the scale factor
		return l.Value * c.FontSize
	case UnitEx:
		x := c.XHeight
		if x == 0 {
			x = c.FontSize / 2
		}
		return l.Value * x
	default:
		return 0
	}
}

// Resolve converts l to whole pixels. Percent lengths resolve against
// parentExtent; percent-centered lengths behave as plain percentages here,
// use ResolveCentered when the own extent is known. Keyword units resolve to 0.
func (c Context) Resolve(l Length, parentExtent float64) float64 {
	switch l.Unit {
	case UnitPercent, UnitPercentCenter:
		return round(l.Value / 100 * parentExtent)
	default:
		return round(c.ToPixels(l))
	}
}

// ResolveCentered converts a position length. Percent-centered lengths
// resolve against (parentExtent - ownExtent) so that 50%c centers the child.
func (c Context) ResolveCentered(l Length, parentExtent, ownExtent float64) float64 {
	if l.Unit == UnitPercentCenter {
		return round(l.Value / 100 * (parentExtent - ownExtent))
	}
	return c.Resolve(l, parentExtent)
}
