package svgicon

import (
	"image/color"
	"strings"
	"testing"

	"github.com/benoitkugler/svgcompose/svgdraw"
	sp "github.com/benoitkugler/svgcompose/svgpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseString(t *testing.T, src string, mode ErrorMode) *SvgIcon {
	t.Helper()
	icon, err := ReadIconStream(strings.NewReader(src), mode)
	require.NoError(t, err)
	return icon
}

const shapes = `<?xml version="1.0" encoding="UTF-8"?>
<svg id="root" width="100" height="50px" xmlns="http://www.w3.org/2000/svg">
	<title>Shapes</title>
	<desc>basic shapes</desc>
	<rect x="10" y="10" width="20" height="10" fill="#f00"/>
	<rect x="0" y="0" width="20" height="10" rx="2"/>
	<circle cx="50" cy="25" r="5" stroke="blue" fill="none"/>
	<ellipse cx="50" cy="25" rx="0" ry="5"/>
	<line x1="0" y1="0" x2="10%" y2="100%"/>
	<polyline points="0,0 1,1 2,0"/>
	<polygon points="0 0 1 1 2 0"/>
	<path d="M 0 0 L 10 10 Z" style="fill: hsl(120, 100%, 50%); stroke-width: 3"/>
</svg>`

func TestReadShapes(t *testing.T) {
	icon := parseString(t, shapes, StrictErrorMode)

	assert.Equal(t, "root", icon.ID)
	assert.Equal(t, Bounds{W: 100, H: 50}, icon.ViewBox)
	assert.Equal(t, []string{"Shapes"}, icon.Titles)
	assert.Equal(t, []string{"basic shapes"}, icon.Descriptions)

	// the degenerate ellipse is skipped
	require.Len(t, icon.SVGPaths, 7)

	rect := icon.SVGPaths[0]
	assert.Equal(t, []sp.Directive{sp.M(10, 10), sp.L(30, 10), sp.L(30, 20), sp.L(10, 20), sp.E()}, rect.Path)
	assert.Equal(t, NewPlainColor(0xff, 0, 0, 0xff), rect.Style.FillerColor)
	assert.Nil(t, rect.Style.LinerColor)

	rounded := icon.SVGPaths[1].Path
	require.Len(t, rounded, 10)
	assert.Equal(t, sp.M(2, 0), rounded[0])
	assert.Equal(t, sp.A(2, 2, 0, false, true, 20, 2), rounded[2])

	circle := icon.SVGPaths[2]
	assert.Equal(t, []sp.Directive{
		sp.M(55, 25), sp.A(5, 5, 0, false, true, 45, 25), sp.A(5, 5, 0, false, true, 55, 25), sp.E(),
	}, circle.Path)
	assert.Nil(t, circle.Style.FillerColor)
	assert.Equal(t, NewPlainColor(0, 0, 0xff, 0xff), circle.Style.LinerColor)

	assert.Equal(t, []sp.Directive{sp.M(0, 0), sp.L(10, 50)}, icon.SVGPaths[3].Path)
	assert.Equal(t, []sp.Directive{sp.M(0, 0), sp.L(1, 1), sp.L(2, 0)}, icon.SVGPaths[4].Path)
	assert.Equal(t, []sp.Directive{sp.M(0, 0), sp.L(1, 1), sp.L(2, 0), sp.E()}, icon.SVGPaths[5].Path)

	path := icon.SVGPaths[6]
	assert.Equal(t, []sp.Directive{sp.M(0, 0), sp.L(10, 10), sp.E()}, path.Path)
	assert.Equal(t, NewPlainColor(0, 0xff, 0, 0xff), path.Style.FillerColor)
	assert.Equal(t, 3., path.Style.LineWidth)
}

const withDefs = `<svg viewBox="0 0 40 40" xmlns="http://www.w3.org/2000/svg">
	<defs>
		<linearGradient id="grad" x1="0%" y1="0%" x2="100%" y2="0%" spreadMethod="reflect">
			<stop offset="0%" stop-color="red"/>
			<stop offset="100%" stop-color="rgba(0, 0, 255, 0.5)" stop-opacity="0.5"/>
		</linearGradient>
		<radialGradient id="rad" cx="0.4" r="40%" gradientUnits="userSpaceOnUse">
			<stop offset="1" stop-color="black"/>
		</radialGradient>
		<clipPath id="clip">
			<rect width="20" height="20"/>
		</clipPath>
		<g id="shape" fill="url(#grad)">
			<path d="M 0 0 L 4 0 L 4 4 Z"/>
		</g>
	</defs>
	<g clip-path="url(#clip)" transform="translate(5, 5)">
		<use href="#shape" x="10" y="1"/>
	</g>
	<image id="img" href="a.png" x="1" y="2" width="3" height="4"/>
	<circle r="4" fill="url(#rad)"/>
</svg>`

func TestReadDefs(t *testing.T) {
	icon := parseString(t, withDefs, StrictErrorMode)

	grad, ok := icon.Gradient("grad")
	require.True(t, ok)
	assert.Equal(t, Linear{0, 0, 1, 0}, grad.Direction)
	assert.Equal(t, ReflectSpread, grad.Spread)
	assert.Equal(t, ObjectBoundingBox, grad.Units)
	require.Len(t, grad.Stops, 2)
	assert.Equal(t, 1., grad.Stops[1].Offset)
	assert.Equal(t, 0.5, grad.Stops[1].Opacity)

	rad, ok := icon.Gradient("rad")
	require.True(t, ok)
	assert.Equal(t, Radial{0.4, 0.5, 0.4, 0.5, 0.4, 0.5}, rad.Direction)
	assert.Equal(t, UserSpaceOnUse, rad.Units)

	clip, ok := icon.ClipPath("clip")
	require.True(t, ok)
	require.Len(t, clip.Paths, 1)
	assert.Equal(t, sp.L(20, 0), clip.Paths[0].Path[1])

	// the definitions are only painted through <use>
	require.Len(t, icon.SVGPaths, 2)
	used := icon.SVGPaths[0]
	assert.Equal(t, []sp.Directive{sp.M(10, 1), sp.L(14, 1), sp.L(14, 5), sp.E()}, used.Path)
	assert.Equal(t, "clip", used.Style.ClipPath)
	assert.IsType(t, Gradient{}, used.Style.FillerColor)
	x, y := used.Style.Transform().Transform(0, 0)
	assert.Equal(t, [2]float64{5, 5}, [2]float64{x, y})

	assert.IsType(t, Gradient{}, icon.SVGPaths[1].Style.FillerColor)
	assert.Equal(t, "", icon.SVGPaths[1].Style.ClipPath)

	require.Len(t, icon.Images, 1)
	assert.Equal(t, Image{ID: "img", Href: "a.png", X: 1, Y: 2, W: 3, H: 4, Transform: Identity}, icon.Images[0])
}

func TestErrorModes(t *testing.T) {
	const src = `<svg viewBox="0 0 10 10"><foreignObject/><rect width="1" height="1" fill="url(#missing)"/></svg>`

	icon := parseString(t, src, IgnoreErrorMode)
	require.Len(t, icon.SVGPaths, 1)
	assert.Nil(t, icon.SVGPaths[0].Style.FillerColor)

	icon = parseString(t, src, WarnErrorMode)
	require.Len(t, icon.SVGPaths, 1)

	_, err := ReadIconStream(strings.NewReader(src), StrictErrorMode)
	assert.Error(t, err)
}

func TestReadInvalid(t *testing.T) {
	for _, src := range []string{
		"",
		`<svg viewBox="0 0 10"></svg>`,
		`<svg><path d="M 0 0 L 1"/></svg>`,
		`<svg><rect width="a" height="1"/></svg>`,
		`<svg><polygon points="0 0 1"/></svg>`,
		`<svg><g transform="rotate(1, 2)"></g></svg>`,
		`<svg><use href="#nope"/></svg>`,
		`<svg><linearGradient id=""/></svg>`,
	} {
		_, err := ReadIconStream(strings.NewReader(src), IgnoreErrorMode)
		assert.Error(t, err, src)
	}
}

func TestTransforms(t *testing.T) {
	icon := parseString(t, `<svg viewBox="0 0 10 10">
		<g transform="scale(2) translate(1 0)"><path d="M 1 1 L 2 2"/></g>
		<path transform="matrix(1 0 0 1 3 4) rotate(90)" d="M 1 0 L 2 0"/>
		<path transform="skewX(0) skewY(0)" d="M 1 0 L 2 0"/>
	</svg>`, StrictErrorMode)
	require.Len(t, icon.SVGPaths, 3)

	x, y := icon.SVGPaths[0].Style.Transform().Transform(1, 1)
	assert.InDelta(t, 4, x, 1e-9)
	assert.InDelta(t, 2, y, 1e-9)

	x, y = icon.SVGPaths[1].Style.Transform().Transform(1, 0)
	assert.InDelta(t, 3, x, 1e-9)
	assert.InDelta(t, 5, y, 1e-9)

	assert.Equal(t, Identity, icon.SVGPaths[2].Style.Transform())
}

func TestReadDrawing(t *testing.T) {
	c := svgdraw.New("icon", svgdraw.Options{
		Defs: map[string]svgdraw.Resource{
			"grad": svgdraw.NewLinearGradient(svgdraw.Color("red"), svgdraw.Color("#00f")),
			"clip": svgdraw.NewClipPath(svgdraw.Dirs(sp.M(0, 0), sp.L(5, 0), sp.L(5, 5)), svgdraw.PathOptions{}),
		},
		IDs: svgdraw.IDFunc(func() string { return "x" }),
	})
	dr, err := c.Draw(
		svgdraw.Dirs(sp.M(0, 0), sp.L(10, 0), sp.A(5, 5, 0, false, true, 10, 10)),
		svgdraw.PathOptions{Attributes: svgdraw.Static(svgdraw.Attributes{
			"fill":      svgdraw.RefName("grad"),
			"clip-path": svgdraw.RefName("clip"),
		})},
	)
	require.NoError(t, err)
	markup, err := dr.Markup()
	require.NoError(t, err)

	icon := parseString(t, markup, StrictErrorMode)
	assert.Equal(t, "icon-x", icon.ID)
	require.Len(t, icon.SVGPaths, 1)
	assert.Equal(t, dr.Paths[0].Directives(), icon.SVGPaths[0].Path)
	assert.Equal(t, "clip-x", icon.SVGPaths[0].Style.ClipPath)

	grad, ok := icon.SVGPaths[0].Style.FillerColor.(Gradient)
	require.True(t, ok)
	assert.Equal(t, Linear{1, 0.5, 0, 0.5}, grad.Direction)
	require.Len(t, grad.Stops, 2)
	assert.Equal(t, color.NRGBA{0, 0, 0xff, 0xff}, grad.Stops[1].StopColor)

	_, ok = icon.ClipPath("clip-x")
	assert.True(t, ok)
}
