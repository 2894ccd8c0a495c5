package svgpath

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/fixed"
)

// recorder logs the calls it receives
type recorder []string

func (r *recorder) Start(a fixed.Point26_6) { *r = append(*r, fmt.Sprintf("S %d %d", a.X, a.Y)) }
func (r *recorder) Line(b fixed.Point26_6)  { *r = append(*r, fmt.Sprintf("L %d %d", b.X, b.Y)) }
func (r *recorder) CubeBezier(b, c, d fixed.Point26_6) {
	*r = append(*r, fmt.Sprintf("C %d %d", d.X, d.Y))
}
func (r *recorder) Stop(closeLoop bool) { *r = append(*r, fmt.Sprintf("Z %v", closeLoop)) }

func TestAddTo(t *testing.T) {
	var rec recorder
	AddTo([]Directive{M(1, 1), L(2, 1), C(0, 0, 0, 0, 2, 2), E(), L(3, 3)}, &rec, nil)
	assert.Equal(t, recorder{
		"S 64 64", "L 128 64", "C 128 128", "Z true",
		"S 64 64", "L 192 192", "Z false",
	}, rec)

	rec = nil
	double := Transform(func(p Point) Point { return p.Scale(2) })
	AddTo([]Directive{M(1, 1), M(2, 2), L(1, 0)}, &rec, double)
	assert.Equal(t, recorder{"S 128 128", "Z false", "S 256 256", "L 128 0", "Z false"}, rec)
}

func TestCubicsEndpoints(t *testing.T) {
	dirs := []Directive{M(0, 0), A(10, 10, 0, false, true, 20, 0), L(30, 0), E()}
	out := Cubics(dirs)
	require.Greater(t, len(out), 3)
	for _, dir := range out {
		assert.NotEqual(t, SymArcTo, dir.Symbol())
	}
	// the last arc splice ends exactly on the arc endpoint
	last := out[len(out)-3].(CurveTo)
	assert.Equal(t, Point{20, 0}, last.To)

	// every splice end lies on the circle of center (10, 0)
	for _, dir := range out[1 : len(out)-2] {
		to := dir.(CurveTo).To
		assert.InDelta(t, 10, to.Sub(Point{10, 0}).Len(), 1e-9)
	}
}

func TestCubicsDegenerateArcs(t *testing.T) {
	// null radius: straight line
	out := Cubics([]Directive{M(0, 0), A(0, 5, 0, false, false, 4, 4)})
	assert.Equal(t, []Directive{M(0, 0), C(0, 0, 4, 4, 4, 4)}, out)

	// null length: dropped
	out = Cubics([]Directive{M(1, 1), A(5, 5, 0, false, false, 1, 1)})
	assert.Equal(t, []Directive{M(1, 1)}, out)
}

func TestCenterArc(t *testing.T) {
	// radii too small: scaled up to half the distance
	arc := centerArc(Point{}, A(1, 1, 0, false, false, 10, 0))
	assert.InDelta(t, 5, arc.rx, 1e-9)
	assert.InDelta(t, 5, arc.ry, 1e-9)
	assert.InDelta(t, 5, arc.center.X, 1e-9)
	assert.InDelta(t, 0, arc.center.Y, 1e-9)
	assert.InDelta(t, -math.Pi, arc.span, 1e-9)

	for _, large := range []bool{false, true} {
		op := A(6, 6, 30, large, true, 0, 10)
		arc = centerArc(Point{}, op)
		assert.InDelta(t, 6, arc.center.Len(), 1e-9)
		assert.InDelta(t, 6, arc.center.Sub(Point{0, 10}).Len(), 1e-9)
		assert.Greater(t, arc.span, 0.)
		assert.Equal(t, large, arc.span > math.Pi)
		end := arc.pointAt(arc.start + arc.span)
		assert.InDelta(t, 0, end.Sub(op.To).Len(), 1e-9)
	}
}
