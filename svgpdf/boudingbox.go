package svgpdf

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// Exact bounding boxes of path segments, used as the extent of
// objectBoundingBox gradients. Arcs are already reduced to cubic
// curves by svgicon, so lines and cubic curves are enough.

// segment is a Bézier curve parametrized on [0, 1]
type segment interface {
	// extrema returns the parameters zeroing the derivative
	// of x or y, possibly outside of [0, 1]
	extrema() []float64
	at(t float64) (x, y float64)
}

type line [2]fixed.Point26_6

func (line) extrema() []float64 { return nil }

func (l line) at(t float64) (x, y float64) {
	x0, y0 := fixedTof(l[0])
	x1, y1 := fixedTof(l[1])
	return x0 + (x1-x0)*t, y0 + (y1-y0)*t
}

type cubicBezier [4]fixed.Point26_6

func (cu cubicBezier) coords() (xs, ys [4]float64) {
	for i, p := range cu {
		xs[i], ys[i] = fixedTof(p)
	}
	return xs, ys
}

func (cu cubicBezier) extrema() []float64 {
	xs, ys := cu.coords()
	return append(derivativeRoots(xs), derivativeRoots(ys)...)
}

func (cu cubicBezier) at(t float64) (x, y float64) {
	xs, ys := cu.coords()
	return bernstein3(xs, t), bernstein3(ys, t)
}

func bernstein3(p [4]float64, t float64) float64 {
	mt := 1 - t
	return mt*mt*mt*p[0] + 3*mt*mt*t*p[1] + 3*mt*t*t*p[2] + t*t*t*p[3]
}

// derivativeRoots returns the zeros of the derivative of the cubic
// with control values p, which is, up to a factor 3,
//
//	(1-t)²d0 + 2(1-t)t d1 + t²d2 with di = p[i+1] - p[i]
func derivativeRoots(p [4]float64) []float64 {
	d0, d1, d2 := p[1]-p[0], p[2]-p[1], p[3]-p[2]
	return quadraticRoots(d0-2*d1+d2, 2*(d1-d0), d0)
}

// quadraticRoots returns the real roots of at² + bt + c,
// which degenerates to a linear equation when a is zero.
func quadraticRoots(a, b, c float64) []float64 {
	if a == 0 {
		if b == 0 {
			return nil
		}
		return []float64{-c / b}
	}
	delta := b*b - 4*a*c
	if delta < 0 {
		return nil
	}
	if delta == 0 {
		return []float64{-b / (2 * a)}
	}
	sq := math.Sqrt(delta)
	return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
}

// computeBoundingBox returns the exact extent of the segment,
// which may be smaller than the hull of its control points.
func computeBoundingBox(s segment) fixed.Rectangle26_6 {
	minX, minY := s.at(0)
	maxX, maxY := minX, minY
	for _, t := range append(s.extrema(), 1) {
		if t < 0 || t > 1 {
			continue
		}
		x, y := s.at(t)
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	return fixed.Rectangle26_6{Min: fToFixed(minX, minY), Max: fToFixed(maxX, maxY)}
}
