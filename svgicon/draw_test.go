package svgicon

import (
	"fmt"
	"testing"

	"github.com/benoitkugler/svgcompose/svgpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/fixed"
)

// recorder logs the operations sent by Draw
type recorder struct {
	ops     *[]string
	options StrokeOptions
}

func (r *recorder) log(format string, args ...interface{}) {
	*r.ops = append(*r.ops, fmt.Sprintf(format, args...))
}

func (r *recorder) Start(a fixed.Point26_6) { r.log("start %d %d", a.X/64, a.Y/64) }
func (r *recorder) Line(b fixed.Point26_6)  { r.log("line %d %d", b.X/64, b.Y/64) }
func (r *recorder) CubeBezier(b, c, d fixed.Point26_6) {
	r.log("cubic %d %d", d.X/64, d.Y/64)
}
func (r *recorder) Stop(closeLoop bool)               { r.log("stop %v", closeLoop) }
func (r *recorder) Clear()                            {}
func (r *recorder) SetColor(p Pattern, op float64)    { r.log("color %v %g", p, op) }
func (r *recorder) Draw()                             { r.log("draw") }
func (r *recorder) SetWinding(bool)                   {}
func (r *recorder) SetStrokeOptions(o StrokeOptions)  { r.options = o }
func (r *recorder) StartClip(add func(svgpath.Adder)) { r.log("clip"); add(r) }
func (r *recorder) EndClip()                          { r.log("end clip") }

func (r *recorder) SetupDrawers(willFill, willStroke bool) (f Filler, s Stroker) {
	if willFill {
		f = r
	}
	if willStroke {
		s = r
	}
	return f, s
}

func TestDraw(t *testing.T) {
	icon := parseString(t, `<svg viewBox="0 0 10 10">
		<path d="M 1 1 L 2 2" fill="none" stroke="red" stroke-width="2" stroke-dasharray="1 2"/>
	</svg>`, StrictErrorMode)
	icon.SetTarget(0, 0, 20, 20)

	var ops []string
	rec := &recorder{ops: &ops}
	icon.Draw(rec, 0.5)

	assert.Equal(t, []string{"start 2 2", "line 4 4", "stop false", "color #ff0000 0.5", "draw"}, ops)
	assert.Equal(t, fixed.I(4), rec.options.LineWidth)
	assert.Equal(t, []float64{2, 4}, rec.options.Dash.Dash)
	assert.Equal(t, ButtCap, rec.options.Join.TrailLineCap)
	assert.Equal(t, ButtCap, rec.options.Join.LeadLineCap)
}

func TestDrawClip(t *testing.T) {
	icon := parseString(t, `<svg viewBox="0 0 10 10">
		<clipPath id="c"><path d="M 0 0 L 5 0 L 5 5 Z"/></clipPath>
		<path d="M 0 0 L 2 0" clip-path="url(#c)"/>
		<path d="M 0 0 L 1 0" clip-path="url(#unknown)"/>
	</svg>`, StrictErrorMode)

	var ops []string
	icon.Draw(&recorder{ops: &ops}, 1)

	black := "color #000000 1"
	assert.Equal(t, []string{
		"clip", "start 0 0", "line 5 0", "line 5 5", "stop true",
		"start 0 0", "line 2 0", "stop false", black, "draw",
		"end clip",
		"start 0 0", "line 1 0", "stop false", black, "draw",
	}, ops)
}

func TestDrawArc(t *testing.T) {
	icon := parseString(t, `<svg viewBox="0 0 10 10"><path d="M 0 0 A 1 1 0 0 1 2 0"/></svg>`, StrictErrorMode)

	var ops []string
	icon.Draw(&recorder{ops: &ops}, 1)

	require.Greater(t, len(ops), 4)
	assert.Equal(t, "start 0 0", ops[0])
	for _, op := range ops[1 : len(ops)-3] {
		assert.Contains(t, op, "cubic")
	}
	assert.Equal(t, []string{"cubic 2 0", "stop false", "color #000000 1", "draw"}, ops[len(ops)-4:])
}

func TestScaleFactor(t *testing.T) {
	assert.Equal(t, 1., scaleFactor(Identity))
	assert.Equal(t, 3., scaleFactor(Identity.Scale(3, 3)))
	assert.InDelta(t, 2., scaleFactor(Identity.Scale(4, -1)), 1e-12)

	tr := transformFunc(Identity.Translate(1, 2))
	require.Equal(t, svgpath.Point{X: 4, Y: 6}, tr(svgpath.Point{X: 3, Y: 4}))
}

func TestModeNames(t *testing.T) {
	assert.Equal(t, "miter-clip", MiterClip.String())
	assert.Equal(t, "", NilCap.String())
	assert.Equal(t, "square", SquareCap.String())
	assert.Equal(t, "quadratic", QuadraticGap.String())
	assert.Equal(t, "<JoinMode 9>", JoinMode(9).String())

	// the names are the attribute values
	for name, join := range lineJoins {
		assert.Equal(t, name, join.String())
	}
	for name, c := range lineCaps {
		assert.Equal(t, name, c.String())
	}
}
