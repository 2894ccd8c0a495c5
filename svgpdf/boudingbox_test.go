package svgpdf

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/image/math/fixed"
)

func randPoint(rnd *rand.Rand, offsetx, offsety int) fixed.Point26_6 {
	x, y := rnd.IntN(1100), rnd.IntN(1000)
	return fixed.Point26_6{X: fixed.Int26_6(x + offsetx), Y: fixed.Int26_6(y + offsety)}
}

func randomCurve(rnd *rand.Rand, order int) segment {
	a, b := randPoint(rnd, 500, 500), randPoint(rnd, 500, 500)
	if order == 1 {
		return line{a, b}
	}
	return cubicBezier{a, b, randPoint(rnd, 500, 500), randPoint(rnd, 500, 500)}
}

// one 26.6 unit of tolerance for the rounding of the extremas
const tolerance = 1. / 64

func TestBoundingBoxContainsCurve(t *testing.T) {
	rnd := rand.New(rand.NewPCG(1, 2))
	for range [200]int{} {
		curve := randomCurve(rnd, 1+rnd.IntN(2))
		box := computeBoundingBox(curve)
		minX, minY := fixedTof(box.Min)
		maxX, maxY := fixedTof(box.Max)

		// the box is tight: the extremas are reached
		reachedMinX, reachedMaxX := false, false
		for i := 0; i <= 1000; i++ {
			x, y := curve.at(float64(i) / 1000)
			assert.GreaterOrEqual(t, x, minX-tolerance)
			assert.LessOrEqual(t, x, maxX+tolerance)
			assert.GreaterOrEqual(t, y, minY-tolerance)
			assert.LessOrEqual(t, y, maxY+tolerance)
			reachedMinX = reachedMinX || x-minX < 0.05
			reachedMaxX = reachedMaxX || maxX-x < 0.05
		}
		assert.True(t, reachedMinX && reachedMaxX)
	}
}

func TestBoundingBoxCubic(t *testing.T) {
	// a symmetric arch going above its end points
	curve := cubicBezier{fToFixed(0, 0), fToFixed(0, 4), fToFixed(4, 4), fToFixed(4, 0)}
	box := computeBoundingBox(curve)
	assert.Equal(t, fToFixed(0, 0), box.Min)
	assert.Equal(t, fToFixed(4, 3), box.Max)

	assert.Equal(t, fixed.Rectangle26_6{Min: fToFixed(1, 1), Max: fToFixed(3, 2)},
		computeBoundingBox(line{fToFixed(3, 1), fToFixed(1, 2)}))
}

func TestQuadraticRoots(t *testing.T) {
	assert.Nil(t, quadraticRoots(1, 0, 1))
	assert.Nil(t, quadraticRoots(0, 0, 1))
	assert.Equal(t, []float64{-2}, quadraticRoots(0, 1, 2))
	assert.Equal(t, []float64{1}, quadraticRoots(1, -2, 1))
	assert.ElementsMatch(t, []float64{1, -1}, quadraticRoots(1, 0, -1))
}
