package graphics

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// FontMetrics measures text for layout. Sizes are font sizes in pixels.
type FontMetrics interface {
	// LineHeight returns the distance between consecutive baselines.
	LineHeight(size float64) float64
	// Ascent returns the distance from the top of the line box to the baseline.
	Ascent(size float64) float64
	// XHeight returns the height of a lowercase x.
	XHeight(size float64) float64
	// Advance returns the width of text set on one line.
	Advance(text string, size float64) float64
}

// FaceMetrics implements FontMetrics over a golang.org/x/image font face
// rendered at a nominal pixel size. Other sizes scale linearly.
type FaceMetrics struct {
	Face    font.Face
	Nominal float64
}

// DefaultFontMetrics returns metrics for the bundled 7x13 bitmap face.
func DefaultFontMetrics() *FaceMetrics {
	return &FaceMetrics{Face: basicfont.Face7x13, Nominal: 13}
}

func (m *FaceMetrics) scale(size float64) float64 {
	if m.Nominal <= 0 || size <= 0 {
		return 1
	}
	return size / m.Nominal
}

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// LineHeight implements FontMetrics.
func (m *FaceMetrics) LineHeight(size float64) float64 {
	return toFloat(m.Face.Metrics().Height) * m.scale(size)
}

// Ascent implements FontMetrics.
func (m *FaceMetrics) Ascent(size float64) float64 {
	return toFloat(m.Face.Metrics().Ascent) * m.scale(size)
}

// XHeight implements FontMetrics. Faces that do not report an x-height
// fall back to half the size.
func (m *FaceMetrics) XHeight(size float64) float64 {
	x := toFloat(m.Face.Metrics().XHeight)
	if x <= 0 {
		return size / 2
	}
	return x * m.scale(size)
}

// Advance implements FontMetrics.
func (m *FaceMetrics) Advance(text string, size float64) float64 {
	return toFloat(font.MeasureString(m.Face, text)) * m.scale(size)
}
