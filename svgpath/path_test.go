package svgpath

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	tenth, fifth := 0.1, 0.2 // summed at run time, not as exact constants
	for _, test := range []struct {
		dir      Directive
		expected string
	}{
		{M(10, 20), "M 10 20"},
		{L(-3.5, 0.25), "L -3.5 0.25"},
		{C(1, 2, 3, 4, 5, 6), "C 1 2, 3 4, 5 6"},
		{A(10, 20, 45, true, false, 30, 40), "A 10 20 45 1 0 30 40"},
		{E(), "Z"},
		{M(math.Copysign(0, -1), 1e-7), "M 0 0.0000001"},
		{L(tenth+fifth, 1e21), "L 0.30000000000000004 1000000000000000000000"},
	} {
		assert.Equal(t, test.expected, test.dir.String())
	}
}

func TestJoin(t *testing.T) {
	dirs := []Directive{M(0, 0), L(10, 10), C(1, 2, 3, 4, 5, 6), E()}
	assert.Equal(t, "M 0 0 L 10 10 C 1 2, 3 4, 5 6 Z", Join(dirs))
	assert.Equal(t, "", Join(nil))
}

func TestPoints(t *testing.T) {
	assert.Equal(t, []Point{{1, 2}}, M(1, 2).Points())
	assert.Equal(t, []Point{{1, 2}}, L(1, 2).Points())
	assert.Equal(t, []Point{{1, 2}, {3, 4}, {5, 6}}, C(1, 2, 3, 4, 5, 6).Points())
	assert.Equal(t, []Point{{30, 40}, {40, 60}, {20, 20}}, A(10, 20, 45, true, false, 30, 40).Points())
	assert.Empty(t, E().Points())
}

func TestSymbols(t *testing.T) {
	assert.Equal(t, SymMoveTo, M(0, 0).Symbol())
	assert.Equal(t, SymLineTo, L(0, 0).Symbol())
	assert.Equal(t, SymCurveTo, C(0, 0, 0, 0, 0, 0).Symbol())
	assert.Equal(t, SymArcTo, A(1, 1, 0, false, false, 0, 0).Symbol())
	assert.Equal(t, SymEnd, E().Symbol())

	assert.Equal(t, "Z", SymEnd.String())
	assert.Equal(t, "ArcToRel", SymArcToRel.Name())
	assert.True(t, SymLineToRel.IsRelative())
	assert.False(t, SymLineTo.IsRelative())
	assert.Equal(t, SymCurveTo, SymCurveToRel.Absolute())
	assert.Equal(t, SymEnd, SymEnd.Absolute())
}

func TestMirrorOnAxes(t *testing.T) {
	assert.Equal(t, M(1, -2), M(1, 2).MirroredOnX())
	assert.Equal(t, L(-1, 2), L(1, 2).MirroredOnY())
	assert.Equal(t, C(1, -2, 3, -4, 5, -6), C(1, 2, 3, 4, 5, 6).MirroredOnX())
	assert.Equal(t, C(-1, 2, -3, 4, -5, 6), C(1, 2, 3, 4, 5, 6).MirroredOnY())

	arc := A(10, 20, 45, true, false, 30, 40)
	assert.Equal(t, A(10, 20, -45, true, true, 30, -40), arc.MirroredOnX())
	assert.Equal(t, A(10, 20, -45, true, true, -30, 40), arc.MirroredOnY())
	assert.Equal(t, E(), E().MirroredOnY())
}

func TestMirrorRoundTrip(t *testing.T) {
	for _, dir := range []Directive{
		M(1, 2), L(-3, 4), C(1, 2, 3, 4, 5, 6), E(),
	} {
		assert.Equal(t, dir, dir.MirroredOnY().MirroredOnY())
		assert.Equal(t, dir, dir.MirroredOnX().MirroredOnX())
	}

	arc := A(10, 20, 45, false, true, 30, 40)
	back := arc.MirroredOnY().MirroredOnY().(ArcTo)
	assert.Equal(t, arc.Sweep, back.Sweep)
	assert.Equal(t, arc, back)
}

func TestMirrorCustom(t *testing.T) {
	// the Y axis, with an angle of pi/2, is equivalent to MirroredOnY
	got, err := L(3, 4).MirroredCustom(Point{}, math.Pi/2)
	require.NoError(t, err)
	assert.InDelta(t, -3, got.(LineTo).X, 1e-9)
	assert.InDelta(t, 4, got.(LineTo).Y, 1e-9)

	// horizontal axis going through y = 1
	got, err = M(2, 3).MirroredCustom(Point{0, 1}, 0)
	require.NoError(t, err)
	assert.InDelta(t, 2, got.(MoveTo).X, 1e-9)
	assert.InDelta(t, -1, got.(MoveTo).Y, 1e-9)

	// diagonal: swaps coordinates
	got, err = L(1, 5).MirroredCustom(Point{}, math.Pi/4)
	require.NoError(t, err)
	assert.InDelta(t, 5, got.(LineTo).X, 1e-9)
	assert.InDelta(t, 1, got.(LineTo).Y, 1e-9)

	got, err = E().MirroredCustom(Point{1, 1}, 1)
	require.NoError(t, err)
	assert.Equal(t, E(), got)

	_, err = C(1, 2, 3, 4, 5, 6).MirroredCustom(Point{}, 1)
	assert.True(t, errors.Is(err, ErrNotImplemented))
	_, err = A(1, 1, 0, false, false, 5, 6).MirroredCustom(Point{}, 1)
	assert.True(t, errors.Is(err, ErrNotImplemented))
}

func TestOffset(t *testing.T) {
	d := Point{10, -5}
	assert.Equal(t, M(11, -3), M(1, 2).Offset(d))
	assert.Equal(t, L(11, -3), L(1, 2).Offset(d))
	assert.Equal(t, C(11, -3, 13, -1, 15, 1), C(1, 2, 3, 4, 5, 6).Offset(d))
	assert.Equal(t, A(10, 20, 45, true, false, 40, 35), A(10, 20, 45, true, false, 30, 40).Offset(d))
	assert.Equal(t, E(), E().Offset(d))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, []Directive{M(0, 0), L(5, 5), E()}, Normalize([]Directive{L(5, 5)}))
	assert.Equal(t, []Directive{M(1, 1), L(5, 5), E()}, Normalize([]Directive{M(1, 1), L(5, 5), E()}))
	assert.Equal(t, []Directive{M(0, 0), E()}, Normalize(nil))

	input := []Directive{M(2, 2)}
	out := Normalize(input)
	assert.Equal(t, []Directive{M(2, 2), E()}, out)
	assert.Len(t, input, 1)
}

func TestPointHelpers(t *testing.T) {
	assert.Equal(t, Point{}, Point{}.Normalize())
	n := Point{3, 4}.Normalize()
	assert.InDelta(t, 0.6, n.X, 1e-12)
	assert.InDelta(t, 0.8, n.Y, 1e-12)

	u := FromAngle(90)
	assert.InDelta(t, 0, u.X, 1e-12)
	assert.InDelta(t, 1, u.Y, 1e-12)

	r := Point{1, 0}.Rotate(math.Pi)
	assert.InDelta(t, -1, r.X, 1e-12)
	assert.InDelta(t, 0, r.Y, 1e-12)
}
