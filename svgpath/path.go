// Implements an abstract representation of
// svg paths as immutable directives, which can be
// mirrored, offset and composed before being
// serialized or consumed by a painting driver.
package svgpath

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrNotImplemented is returned by geometric operations which
// are declared but not supported for a given directive.
var ErrNotImplemented = errors.New("not implemented")

// Point is a 2D point or vector.
type Point struct{ X, Y float64 }

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

func (p Point) Scale(f float64) Point { return Point{p.X * f, p.Y * f} }

// Rotate rotates p around the origin by `angle` radians.
func (p Point) Rotate(angle float64) Point {
	sin, cos := math.Sincos(angle)
	return Point{p.X*cos - p.Y*sin, p.X*sin + p.Y*cos}
}

// Len returns the euclidean length of p.
func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }

// Normalize returns the unit vector with the direction of p.
// The zero vector is returned unchanged.
func (p Point) Normalize() Point {
	l := p.Len()
	if l == 0 {
		return p
	}
	return Point{p.X / l, p.Y / l}
}

// FromAngle returns the unit vector pointing
// in the direction given in degrees.
func FromAngle(degrees float64) Point {
	sin, cos := math.Sincos(degrees * math.Pi / 180)
	return Point{cos, sin}
}

// Directive is one atomic path drawing instruction.
// Directives are values: every operation returns a new directive.
type Directive interface {
	// Symbol returns the path command of the directive.
	Symbol() Symbol
	// String returns the path command string,
	// such as `C 1 2, 3 4, 5 6`.
	String() string
	// Points returns the points relevant to bounding box computation.
	// It is consistent with the coordinates written by String.
	Points() []Point
	// MirroredOnX negates the Y component of every point.
	MirroredOnX() Directive
	// MirroredOnY negates the X component of every point.
	MirroredOnY() Directive
	// MirroredCustom reflects the directive about the line going
	// through `axisOffset` with direction `angle` (in radians).
	MirroredCustom(axisOffset Point, angle float64) (Directive, error)
	// Offset translates the directive by `d`.
	Offset(d Point) Directive

	isDirective()
}

type MoveTo Point

type LineTo Point

// CurveTo is a cubic bezier curve with control points C1, C2.
type CurveTo struct {
	C1, C2, To Point
}

// ArcTo is an elliptical arc. Rotation is expressed in degrees.
type ArcTo struct {
	RX, RY          float64
	Rotation        float64
	LargeArc, Sweep bool
	To              Point
}

// End closes the current sub-path.
type End struct{}

// M returns a move to (x, y).
func M(x, y float64) MoveTo { return MoveTo{x, y} }

// L returns a line to (x, y).
func L(x, y float64) LineTo { return LineTo{x, y} }

// C returns a cubic curve to (x, y) with control points (x1, y1) and (x2, y2).
func C(x1, y1, x2, y2, x, y float64) CurveTo {
	return CurveTo{C1: Point{x1, y1}, C2: Point{x2, y2}, To: Point{x, y}}
}

// A returns an elliptical arc to (x, y).
func A(rx, ry, rotation float64, largeArc, sweep bool, x, y float64) ArcTo {
	return ArcTo{RX: rx, RY: ry, Rotation: rotation, LargeArc: largeArc, Sweep: sweep, To: Point{x, y}}
}

// E returns the end of path directive.
func E() End { return End{} }

func (MoveTo) isDirective()  {}
func (LineTo) isDirective()  {}
func (CurveTo) isDirective() {}
func (ArcTo) isDirective()   {}
func (End) isDirective()     {}

func (MoveTo) Symbol() Symbol  { return SymMoveTo }
func (LineTo) Symbol() Symbol  { return SymLineTo }
func (CurveTo) Symbol() Symbol { return SymCurveTo }
func (ArcTo) Symbol() Symbol   { return SymArcTo }
func (End) Symbol() Symbol     { return SymEnd }

// FormatNum returns the shortest decimal representation of v,
// without exponent and with negative zero written as 0.
func FormatNum(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func fmtFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func (op MoveTo) String() string { return "M " + FormatNum(op.X) + " " + FormatNum(op.Y) }
func (op LineTo) String() string { return "L " + FormatNum(op.X) + " " + FormatNum(op.Y) }

func (op CurveTo) String() string {
	return fmt.Sprintf("C %s %s, %s %s, %s %s",
		FormatNum(op.C1.X), FormatNum(op.C1.Y), FormatNum(op.C2.X), FormatNum(op.C2.Y), FormatNum(op.To.X), FormatNum(op.To.Y))
}

func (op ArcTo) String() string {
	return fmt.Sprintf("A %s %s %s %s %s %s %s",
		FormatNum(op.RX), FormatNum(op.RY), FormatNum(op.Rotation), fmtFlag(op.LargeArc), fmtFlag(op.Sweep),
		FormatNum(op.To.X), FormatNum(op.To.Y))
}

func (End) String() string { return "Z" }

func (op MoveTo) Points() []Point  { return []Point{Point(op)} }
func (op LineTo) Points() []Point  { return []Point{Point(op)} }
func (op CurveTo) Points() []Point { return []Point{op.C1, op.C2, op.To} }

// Points approximates the arc extent with the endpoint
// and the endpoint shifted by the radii in both directions.
func (op ArcTo) Points() []Point {
	return []Point{
		op.To,
		{op.To.X + op.RX, op.To.Y + op.RY},
		{op.To.X - op.RX, op.To.Y - op.RY},
	}
}

func (End) Points() []Point { return nil }

func flipY(p Point) Point { return Point{p.X, -p.Y} }
func flipX(p Point) Point { return Point{-p.X, p.Y} }

func (op MoveTo) MirroredOnX() Directive { return MoveTo(flipY(Point(op))) }
func (op LineTo) MirroredOnX() Directive { return LineTo(flipY(Point(op))) }
func (op CurveTo) MirroredOnX() Directive {
	return CurveTo{flipY(op.C1), flipY(op.C2), flipY(op.To)}
}

// mirroring reverses the winding of the arc
func (op ArcTo) MirroredOnX() Directive {
	op.Rotation, op.Sweep, op.To = -op.Rotation, !op.Sweep, flipY(op.To)
	return op
}
func (op End) MirroredOnX() Directive { return op }

func (op MoveTo) MirroredOnY() Directive { return MoveTo(flipX(Point(op))) }
func (op LineTo) MirroredOnY() Directive { return LineTo(flipX(Point(op))) }
func (op CurveTo) MirroredOnY() Directive {
	return CurveTo{flipX(op.C1), flipX(op.C2), flipX(op.To)}
}

func (op ArcTo) MirroredOnY() Directive {
	op.Rotation, op.Sweep, op.To = -op.Rotation, !op.Sweep, flipX(op.To)
	return op
}
func (op End) MirroredOnY() Directive { return op }

// reflect mirrors p about the line going through `offset`
// with direction `angle`.
func reflect(p, offset Point, angle float64) Point {
	local := p.Sub(offset).Rotate(-angle)
	local.Y = -local.Y
	return local.Rotate(angle).Add(offset)
}

func (op MoveTo) MirroredCustom(axisOffset Point, angle float64) (Directive, error) {
	return MoveTo(reflect(Point(op), axisOffset, angle)), nil
}

func (op LineTo) MirroredCustom(axisOffset Point, angle float64) (Directive, error) {
	return LineTo(reflect(Point(op), axisOffset, angle)), nil
}

func (op CurveTo) MirroredCustom(Point, float64) (Directive, error) {
	return nil, fmt.Errorf("custom mirroring of %s: %w", op.Symbol().Name(), ErrNotImplemented)
}

func (op ArcTo) MirroredCustom(Point, float64) (Directive, error) {
	return nil, fmt.Errorf("custom mirroring of %s: %w", op.Symbol().Name(), ErrNotImplemented)
}

func (op End) MirroredCustom(Point, float64) (Directive, error) { return op, nil }

func (op MoveTo) Offset(d Point) Directive { return MoveTo(Point(op).Add(d)) }
func (op LineTo) Offset(d Point) Directive { return LineTo(Point(op).Add(d)) }
func (op CurveTo) Offset(d Point) Directive {
	return CurveTo{op.C1.Add(d), op.C2.Add(d), op.To.Add(d)}
}

// Offset only moves the endpoint: radii, rotation and flags are unchanged.
func (op ArcTo) Offset(d Point) Directive {
	op.To = op.To.Add(d)
	return op
}
func (op End) Offset(Point) Directive { return op }

// Join returns the path command string of the directives,
// separated by a space.
func Join(dirs []Directive) string {
	chunks := make([]string, len(dirs))
	for i, op := range dirs {
		chunks[i] = op.String()
	}
	return strings.Join(chunks, " ")
}

// Normalize returns a well formed path: a MoveTo(0, 0) is prepended
// if the first directive is not a MoveTo, and an End is appended
// if the last one is not an End. The input is not modified.
func Normalize(dirs []Directive) []Directive {
	out := make([]Directive, 0, len(dirs)+2)
	if len(dirs) == 0 {
		out = append(out, M(0, 0))
	} else if _, ok := dirs[0].(MoveTo); !ok {
		out = append(out, M(0, 0))
	}
	out = append(out, dirs...)
	if _, ok := out[len(out)-1].(End); !ok {
		out = append(out, E())
	}
	return out
}
