package svgpath

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// This file implements the reduction of directives to
// the primitive operations understood by painting drivers.

// Adder is implemented by types that can accumulate path commands,
// such as rasterx fillers and dashers.
type Adder interface {
	// Start starts a new curve at the given point.
	Start(a fixed.Point26_6)
	// Line adds a line segment to the path
	Line(b fixed.Point26_6)
	// CubeBezier adds a cubic bezier curve to the path
	CubeBezier(b, c, d fixed.Point26_6)
	// Closes the path to the start point if closeLoop is true
	Stop(closeLoop bool)
}

// Transform maps user space points to device points.
// A nil Transform is the identity.
type Transform func(Point) Point

func (t Transform) fixed(p Point) fixed.Point26_6 {
	if t != nil {
		p = t(p)
	}
	return ToFixedP(p)
}

// ToFixedP converts a point to fixed coordinates.
func ToFixedP(p Point) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(p.X * 64), Y: fixed.Int26_6(p.Y * 64)}
}

// maxSplice is the widest parametric angle, in radians,
// approximated by a single cubic curve.
const maxSplice = math.Pi / 8

// Cubics returns the directives with every arc replaced by
// a sequence of cubic curves.
func Cubics(dirs []Directive) []Directive {
	out := make([]Directive, 0, len(dirs))
	var cur, start Point
	for _, dir := range dirs {
		switch op := dir.(type) {
		case MoveTo:
			cur, start = Point(op), Point(op)
			out = append(out, op)
		case LineTo:
			cur = Point(op)
			out = append(out, op)
		case CurveTo:
			cur = op.To
			out = append(out, op)
		case ArcTo:
			for _, cu := range arcToCubics(cur, op) {
				out = append(out, cu)
			}
			cur = op.To
		case End:
			cur = start
			out = append(out, op)
		}
	}
	return out
}

// ellipticArc is an arc given by its center, with angles in radians.
type ellipticArc struct {
	center Point
	rx, ry float64
	rot    float64 // of the x axis of the ellipse
	start  float64 // parametric angle of the first point
	span   float64 // signed, positive for a sweep arc
}

// centerArc converts the arc from `from` to `op.To`.
// Radii too short to join the points are enlarged, keeping their ratio.
// `from` must differ from `op.To` and the radii must be non zero.
func centerArc(from Point, op ArcTo) ellipticArc {
	arc := ellipticArc{rx: math.Abs(op.RX), ry: math.Abs(op.RY), rot: op.Rotation * math.Pi / 180}

	// half chord, in the frame of the ellipse axes
	h := from.Sub(op.To).Scale(0.5).Rotate(-arc.rot)
	if l := h.X*h.X/(arc.rx*arc.rx) + h.Y*h.Y/(arc.ry*arc.ry); l > 1 {
		l = math.Sqrt(l)
		arc.rx *= l
		arc.ry *= l
	}

	rx2, ry2 := arc.rx*arc.rx, arc.ry*arc.ry
	norm := rx2*h.Y*h.Y + ry2*h.X*h.X
	k := math.Sqrt(math.Max(0, (rx2*ry2-norm)/norm))
	if op.LargeArc == op.Sweep {
		k = -k
	}
	c := Point{k * arc.rx * h.Y / arc.ry, -k * arc.ry * h.X / arc.rx}
	arc.center = c.Rotate(arc.rot).Add(from.Add(op.To).Scale(0.5))

	arc.start = math.Atan2((h.Y-c.Y)/arc.ry, (h.X-c.X)/arc.rx)
	end := math.Atan2((-h.Y-c.Y)/arc.ry, (-h.X-c.X)/arc.rx)
	arc.span = end - arc.start
	if op.Sweep && arc.span < 0 {
		arc.span += 2 * math.Pi
	} else if !op.Sweep && arc.span > 0 {
		arc.span -= 2 * math.Pi
	}
	return arc
}

func (arc ellipticArc) pointAt(eta float64) Point {
	sin, cos := math.Sincos(eta)
	return Point{arc.rx * cos, arc.ry * sin}.Rotate(arc.rot).Add(arc.center)
}

// derivative returns the tangent vector at `eta`, not normalized.
func (arc ellipticArc) derivative(eta float64) Point {
	sin, cos := math.Sincos(eta)
	return Point{-arc.rx * sin, arc.ry * cos}.Rotate(arc.rot)
}

// arcToCubics approximates the arc starting at `from`.
// Degenerate arcs (null radius) are reduced to a straight line,
// and null length arcs are dropped.
func arcToCubics(from Point, op ArcTo) []CurveTo {
	if from == op.To {
		return nil
	}
	if op.RX == 0 || op.RY == 0 {
		return []CurveTo{{C1: from, C2: op.To, To: op.To}}
	}
	arc := centerArc(from, op)

	n := int(math.Abs(arc.span)/maxSplice) + 1
	step := arc.span / float64(n)
	// control points length, from L. Maisonobe,
	// "Drawing an elliptical arc using polylines, quadratic or cubic Bezier curves"
	tan := math.Tan(step / 2)
	alpha := math.Sin(step) * (math.Sqrt(4+3*tan*tan) - 1) / 3

	out := make([]CurveTo, n)
	p0, d0 := from, arc.derivative(arc.start)
	for i := range out {
		eta := arc.start + step*float64(i+1)
		p1, d1 := arc.pointAt(eta), arc.derivative(eta)
		if i == n-1 {
			p1 = op.To
		}
		out[i] = CurveTo{C1: p0.Add(d0.Scale(alpha)), C2: p1.Sub(d1.Scale(alpha)), To: p1}
		p0, d0 = p1, d1
	}
	return out
}

// AddTo sends the directives to `q`, after converting arcs
// to cubic curves and applying `t` to every point.
// A directive following an End without a MoveTo
// restarts at the beginning of the closed sub-path.
func AddTo(dirs []Directive, q Adder, t Transform) {
	var (
		start Point
		open  bool
	)
	ensureOpen := func() {
		if !open {
			q.Start(t.fixed(start))
			open = true
		}
	}
	for _, dir := range Cubics(dirs) {
		switch op := dir.(type) {
		case MoveTo:
			if open {
				q.Stop(false) // implicit close if currently in path.
			}
			start = Point(op)
			q.Start(t.fixed(start))
			open = true
		case LineTo:
			ensureOpen()
			q.Line(t.fixed(Point(op)))
		case CurveTo:
			ensureOpen()
			q.CubeBezier(t.fixed(op.C1), t.fixed(op.C2), t.fixed(op.To))
		case End:
			if open {
				q.Stop(true)
				open = false
			}
		}
	}
	if open {
		q.Stop(false)
	}
}
