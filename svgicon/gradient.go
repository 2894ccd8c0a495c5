package svgicon

import (
	"image/color"

	"github.com/srwiley/rasterx"
)

// Pattern is the paint of a fill or a stroke:
// either PlainColor or Gradient.
type Pattern interface {
	isPattern()
}

// PlainColor is a uniform paint.
type PlainColor struct {
	color.NRGBA
}

func NewPlainColor(r, g, b, a uint8) PlainColor {
	return PlainColor{color.NRGBA{R: r, G: g, B: b, A: a}}
}

func (c PlainColor) String() string { return formatHex(c.NRGBA) }

func (PlainColor) isPattern() {}
func (Gradient) isPattern()   {}

// asPattern returns nil for a nil color, meaning no paint.
func asPattern(c color.Color) Pattern {
	if c == nil {
		return nil
	}
	return PlainColor{color.NRGBAModel.Convert(c).(color.NRGBA)}
}

// GradientUnits is the type for gradient units
type GradientUnits = rasterx.GradientUnits

// SVG bounds paremater constants
const (
	ObjectBoundingBox = rasterx.ObjectBoundingBox
	UserSpaceOnUse    = rasterx.UserSpaceOnUse
)

// SpreadMethod is the type for spread parameters
type SpreadMethod = rasterx.SpreadMethod

// SVG spread parameter constants
const (
	PadSpread     = rasterx.PadSpread
	ReflectSpread = rasterx.ReflectSpread
	RepeatSpread  = rasterx.RepeatSpread
)

// GradStop is a color stop of a gradient.
type GradStop struct {
	StopColor color.Color
	Offset    float64
	Opacity   float64
}

// Gradient holds a description of an SVG 2.0 gradient
type Gradient struct {
	Direction gradientDirecter
	Stops     []GradStop
	// Bounds is the box used for ObjectBoundingBox units.
	// It is set to the painted path extent when drawing.
	Bounds Bounds
	Matrix Matrix2D
	Spread SpreadMethod
	Units  GradientUnits
}

// radial or linear
type gradientDirecter interface {
	isRadial() bool
}

// x1, y1, x2, y2
type Linear [4]float64

func (Linear) isRadial() bool { return false }

// cx, cy, fx, fy, r, fr
type Radial [6]float64

func (Radial) isRadial() bool { return true }

// Rasterx returns the equivalent rasterx gradient.
func (g Gradient) Rasterx() *rasterx.Gradient {
	out := &rasterx.Gradient{
		Matrix: g.Matrix,
		Spread: g.Spread,
		Units:  g.Units,
	}
	out.Bounds.X, out.Bounds.Y, out.Bounds.W, out.Bounds.H = g.Bounds.X, g.Bounds.Y, g.Bounds.W, g.Bounds.H
	switch dir := g.Direction.(type) {
	case Linear:
		copy(out.Points[:], dir[:])
	case Radial:
		out.IsRadial = true
		copy(out.Points[:], dir[:5])
	}
	for _, st := range g.Stops {
		out.Stops = append(out.Stops, rasterx.GradStop{StopColor: st.StopColor, Offset: st.Offset, Opacity: st.Opacity})
	}
	return out
}
