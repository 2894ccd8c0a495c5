package svgicon

import (
	"fmt"
	"math"

	"github.com/benoitkugler/svgcompose/internal/logx"
	"github.com/benoitkugler/svgcompose/svgpath"
	"golang.org/x/image/math/fixed"
)

// Painting an icon is delegated to a Driver, which only sees device
// space outlines: transforms are applied to the points before they
// are sent, and arcs are approximated by cubic Bézier curves.

// Drawer accumulates an outline and paints it.
type Drawer interface {
	svgpath.Adder

	// Clear discards the accumulated outline.
	Clear()

	SetColor(color Pattern, opacity float64)

	// Draw paints the accumulated outline.
	Draw()
}

// Filler paints the interior of outlines.
type Filler interface {
	Drawer

	// SetWinding selects the nonzero rule (true) or the even-odd rule.
	SetWinding(useNonZeroWinding bool)
}

// Stroker paints the outlines with lines.
type Stroker interface {
	Drawer

	SetStrokeOptions(options StrokeOptions)
}

// Driver is a painting backend.
type Driver interface {
	// SetupDrawers is called before each path, and should return
	// a nil Filler (resp. Stroker) when `willFill` (resp. `willStroke`)
	// is false. When both are requested, the same outline is sent to
	// the Filler, then to the Stroker.
	SetupDrawers(willFill, willStroke bool) (Filler, Stroker)
}

// Clipper is implemented by the drivers supporting clip paths.
// Drivers without clipping support paint clipped paths entirely.
type Clipper interface {
	// StartClip restricts the following drawings to the area
	// covered by the paths sent by `addClip`, until EndClip is called.
	StartClip(addClip func(svgpath.Adder))
	EndClip()
}

type DashOptions struct {
	Dash       []float64 // lengths of dashes and gaps, nil for a solid line
	DashOffset float64
}

// JoinMode is the shape of the junction between two segments.
type JoinMode uint8

const (
	Arc JoinMode = iota
	Round
	Bevel
	Miter
	MiterClip
	ArcClip // extension: miter clipping applied to arcs
)

// CapMode is the shape of the end of an open line.
type CapMode uint8

const (
	NilCap CapMode = iota // use the default
	ButtCap
	SquareCap
	RoundCap
	CubicCap     // extension
	QuadraticCap // extension
)

// GapMode is an extension choosing how the outer side of
// a join is filled when the miter limit is exceeded.
type GapMode uint8

const (
	NilGap GapMode = iota
	FlatGap
	RoundGap
	CubicGap
	QuadraticGap
)

var (
	joinModeNames = [...]string{Arc: "arc", Round: "round", Bevel: "bevel", Miter: "miter", MiterClip: "miter-clip", ArcClip: "arc-clip"}
	capModeNames  = [...]string{NilCap: "", ButtCap: "butt", SquareCap: "square", RoundCap: "round", CubicCap: "cubic", QuadraticCap: "quadratic"}
	gapModeNames  = [...]string{NilGap: "", FlatGap: "flat", RoundGap: "round", CubicGap: "cubic", QuadraticGap: "quadratic"}
)

// String returns the SVG attribute value.
func (j JoinMode) String() string {
	if int(j) < len(joinModeNames) {
		return joinModeNames[j]
	}
	return fmt.Sprintf("<JoinMode %d>", j)
}

// String returns the SVG attribute value, or an empty string for NilCap.
func (c CapMode) String() string {
	if int(c) < len(capModeNames) {
		return capModeNames[c]
	}
	return fmt.Sprintf("<CapMode %d>", c)
}

func (g GapMode) String() string {
	if int(g) < len(gapModeNames) {
		return gapModeNames[g]
	}
	return fmt.Sprintf("<GapMode %d>", g)
}

type JoinOptions struct {
	MiterLimit fixed.Int26_6
	LineJoin   JoinMode
	// TrailLineCap is the SVG stroke-linecap. LeadLineCap, if not nil,
	// overrides it for the start of the lines.
	TrailLineCap CapMode
	LeadLineCap  CapMode
	LineGap      GapMode
}

// StrokeOptions are expressed in device space.
type StrokeOptions struct {
	LineWidth fixed.Int26_6
	Join      JoinOptions
	Dash      DashOptions
}

// DefaultStyle is the initial style of the document: black filling
// with the nonzero rule, no stroke, 2 units wide butt lines
// with bevel joins.
var DefaultStyle = PathStyle{
	FillerColor:       NewPlainColor(0, 0, 0, 0xff),
	FillOpacity:       1,
	LineOpacity:       1,
	LineWidth:         2,
	UseNonZeroWinding: true,
	Join: JoinOptions{
		MiterLimit:   fToFixed(4),
		LineJoin:     Bevel,
		TrailLineCap: ButtCap,
	},
	transform: Identity,
}

// SetTarget sets the Transform so that the view box
// is stretched to the rectangle (x, y, w, h).
func (s *SvgIcon) SetTarget(x, y, w, h float64) {
	s.Transform = Identity.Translate(x-s.ViewBox.X, y-s.ViewBox.Y).Scale(w/s.ViewBox.W, h/s.ViewBox.H)
}

// Draw paints the icon with `d`, multiplying every opacity by `opacity`.
// Clip paths are honored if `d` is also a Clipper.
func (s *SvgIcon) Draw(d Driver, opacity float64) {
	clipper, canClip := d.(Clipper)
	for _, svgp := range s.SVGPaths {
		clip, hasClip := s.clips[svgp.Style.ClipPath]
		if svgp.Style.ClipPath != "" && !hasClip {
			logx.Logger().Debug("svgicon: unknown clip path", "id", svgp.Style.ClipPath)
		}
		hasClip = hasClip && canClip
		if hasClip {
			clipper.StartClip(func(q svgpath.Adder) {
				for _, cp := range clip.Paths {
					svgpath.AddTo(cp.Path, q, transformFunc(s.Transform.Mult(cp.Style.transform)))
				}
			})
		}
		svgp.draw(d, opacity, s.Transform)
		if hasClip {
			clipper.EndClip()
		}
	}
}

func transformFunc(m Matrix2D) svgpath.Transform {
	return func(p svgpath.Point) svgpath.Point {
		x, y := m.Transform(p.X, p.Y)
		return svgpath.Point{X: x, Y: y}
	}
}

// scaleFactor is the mean dilatation of the transform,
// used to scale line widths.
func scaleFactor(m Matrix2D) float64 {
	return math.Sqrt(math.Abs(m.A*m.D - m.B*m.C))
}

// strokeOptions resolves the default caps and gap of the style,
// and scales the lengths by `scale`.
func (s PathStyle) strokeOptions(scale float64) StrokeOptions {
	join := s.Join
	if join.LineGap == NilGap {
		join.LineGap = DefaultStyle.Join.LineGap
	}
	if join.TrailLineCap == NilCap {
		join.TrailLineCap = DefaultStyle.Join.TrailLineCap
	}
	if join.LeadLineCap == NilCap {
		join.LeadLineCap = join.TrailLineCap
	}

	dash := s.Dash
	if len(dash.Dash) != 0 {
		scaled := make([]float64, len(dash.Dash))
		for i, v := range dash.Dash {
			scaled[i] = v * scale
		}
		dash = DashOptions{Dash: scaled, DashOffset: dash.DashOffset * scale}
	}
	return StrokeOptions{LineWidth: fToFixed(s.LineWidth * scale), Join: join, Dash: dash}
}

// draw sends the path to the drawers, with the `t` transform
// applied after the path own transform.
func (svgp SvgPath) draw(d Driver, opacity float64, t Matrix2D) {
	style := svgp.Style
	m := t.Mult(style.transform)
	tr := transformFunc(m)

	filler, stroker := d.SetupDrawers(style.FillerColor != nil, style.LinerColor != nil)
	if filler != nil {
		filler.Clear()
		filler.SetWinding(style.UseNonZeroWinding)
		svgpath.AddTo(svgp.Path, filler, tr)
		filler.SetColor(style.FillerColor, style.FillOpacity*opacity)
		filler.Draw()
		filler.SetWinding(true)
	}
	if stroker != nil {
		stroker.Clear()
		stroker.SetStrokeOptions(style.strokeOptions(scaleFactor(m)))
		svgpath.AddTo(svgp.Path, stroker, tr)
		stroker.SetColor(style.LinerColor, style.LineOpacity*opacity)
		stroker.Draw()
	}
}
