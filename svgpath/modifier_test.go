package svgpath

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMirrorModifiers(t *testing.T) {
	input := []Directive{M(1, 2), L(3, 4)}

	out, err := MirrorY()(input)
	require.NoError(t, err)
	assert.Equal(t, []Directive{M(1, 2), L(3, 4), M(-1, 2), L(-3, 4)}, out)

	out, err = MirrorX()(input)
	require.NoError(t, err)
	assert.Equal(t, []Directive{M(1, 2), L(3, 4), M(1, -2), L(3, -4)}, out)

	// input untouched
	assert.Equal(t, []Directive{M(1, 2), L(3, 4)}, input)
}

func TestMirrorAngle(t *testing.T) {
	out, err := MirrorAngle(0)([]Directive{M(1, 2), E()})
	require.NoError(t, err)
	require.Len(t, out, 4)
	m := out[2].(MoveTo)
	assert.InDelta(t, 1, m.X, 1e-12)
	assert.InDelta(t, -2, m.Y, 1e-12)

	_, err = MirrorCustom(Point{1, 1}, 0.3)([]Directive{M(0, 0), C(1, 1, 2, 2, 3, 3)})
	assert.True(t, errors.Is(err, ErrNotImplemented))
}

func TestArray(t *testing.T) {
	out, err := Array(Point{1, 0}, 10, 3)([]Directive{M(0, 0)})
	require.NoError(t, err)
	require.Len(t, out, 4)
	for i, dir := range out {
		assert.Equal(t, M(float64(10*i), 0), dir)
	}

	input := []Directive{M(0, 0), L(1, 1), E()}
	for count := 0; count < 5; count++ {
		out, err = Array(Point{0, 1}, 2, count)(input)
		require.NoError(t, err)
		assert.Len(t, out, len(input)*(count+1))
	}

	out, err = Array(Point{1, 1}, 1, -2)(input)
	require.NoError(t, err)
	assert.Equal(t, input, out)
}

func TestArrayAngle(t *testing.T) {
	out, err := ArrayAngle(90, 5, 2)([]Directive{L(1, 0)})
	require.NoError(t, err)
	require.Len(t, out, 3)
	last := out[2].(LineTo)
	assert.InDelta(t, 1, last.X, 1e-9)
	assert.InDelta(t, 10, last.Y, 1e-9)
}

func TestCopyAndCompose(t *testing.T) {
	input := []Directive{L(1, 0)}
	out, err := CopyAnd(Array(Point{1, 0}, 1, 1))(input)
	require.NoError(t, err)
	assert.Equal(t, []Directive{L(1, 0), L(1, 0), L(2, 0)}, out)

	out, err = CopyAnd(NoOp())(input)
	require.NoError(t, err)
	assert.Equal(t, []Directive{L(1, 0), L(1, 0)}, out)

	_, err = CopyAnd(MirrorAngle(1))([]Directive{A(1, 1, 0, false, false, 1, 1)})
	assert.Error(t, err)
}

func TestApplyOrder(t *testing.T) {
	input := []Directive{M(1, 1)}

	// mirror then array: 2 * 2
	out, err := Apply(input, MirrorY(), Array(Point{0, 1}, 10, 1))
	require.NoError(t, err)
	assert.Equal(t, []Directive{M(1, 1), M(-1, 1), M(1, 11), M(-1, 11)}, out)

	// array then mirror
	out, err = Apply(input, Array(Point{0, 1}, 10, 1), MirrorY())
	require.NoError(t, err)
	assert.Equal(t, []Directive{M(1, 1), M(1, 11), M(-1, 1), M(-1, 11)}, out)

	out, err = Apply(input, NoOp(), nil)
	require.NoError(t, err)
	assert.Equal(t, input, out)
}

func TestBevel(t *testing.T) {
	input := []Directive{M(0, 0), L(1, 0), L(1, 1), E()}
	out, err := Bevel()(input)
	require.NoError(t, err)
	assert.Equal(t, input, out)
}
