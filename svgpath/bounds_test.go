package svgpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeBounds(t *testing.T) {
	assert.Equal(t, Bounds{MinX: -1, MaxX: 1, MinY: -1, MaxY: 1}, ComputeBounds(nil))
	assert.Equal(t, Bounds{MinX: 2, MaxX: 2, MinY: 3, MaxY: 3}, ComputeBounds([]Point{{2, 3}}))
	assert.Equal(t, Bounds{MinX: -5, MaxX: 4, MinY: -1, MaxY: 7},
		ComputeBounds([]Point{{1, 7}, {-5, 0}, {4, -1}}))
}

func TestCollectPoints(t *testing.T) {
	dirs := []Directive{M(0, 0), C(1, 2, 3, 4, 5, 6), A(1, 1, 0, false, true, 10, 10), E()}
	pts := CollectPoints(dirs)
	assert.Len(t, pts, 1+3+3)
	b := ComputeBounds(pts)
	assert.Equal(t, Bounds{MinX: 0, MaxX: 11, MinY: 0, MaxY: 11}, b)
}

func TestViewBox(t *testing.T) {
	for _, test := range []struct {
		bounds   Bounds
		expected string
	}{
		{DefaultBounds, "-1 -1 2 2"},
		{Bounds{MinX: 3, MaxX: 3, MinY: 4, MaxY: 4}, "-1 -1 2 2"},
		{Bounds{MinX: 100, MaxX: 200, MinY: 100, MaxY: 200}, "100 100 100 100"},
		// wider than tall: centered vertically
		{Bounds{MinX: 0, MaxX: 40, MinY: 0, MaxY: 10}, "0 -15 40 40"},
		{Bounds{MinX: -40, MaxX: 40, MinY: 0, MaxY: 10}, "-40 -35 80 80"},
	} {
		vb := test.bounds.ViewBox()
		assert.Equal(t, test.expected, vb.String())
		assert.Equal(t, vb.W, vb.H)
	}
}
