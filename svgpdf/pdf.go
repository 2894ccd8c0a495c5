// Implements a PDF backend to render SVG images,
// by wrapping codeberg.org/go-pdf/fpdf.
//
// Gradients are approximated with the PDF axial and radial shadings
// supported by fpdf: stop opacities, spread methods and
// gradient transforms are ignored.
package svgpdf

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"sort"

	"codeberg.org/go-pdf/fpdf"
	"github.com/benoitkugler/svgcompose/internal/logx"
	"github.com/benoitkugler/svgcompose/svgicon"
	"github.com/benoitkugler/svgcompose/svgpath"
	"golang.org/x/image/math/fixed"
)

// assert interface conformance
var (
	_ svgicon.Driver  = (*Renderer)(nil)
	_ svgicon.Clipper = (*Renderer)(nil)
	_ svgicon.Filler  = (*filler)(nil)
	_ svgicon.Stroker = (*stroker)(nil)
)

type Renderer struct {
	pdf *fpdf.Fpdf

	filler  filler
	stroker stroker
}

type segmentKind uint8

const (
	moveTo segmentKind = iota
	lineTo
	cubicTo
	closePath
)

type pathSegment struct {
	kind segmentKind
	pts  [3]fixed.Point26_6
}

// implements the common path commands,
// shared by the filler and the stroker.
// The path is recorded, so that it may be written
// several times (for instance as clip then as shape).
type pather struct {
	pdf         *fpdf.Fpdf
	segments    []pathSegment
	a           fixed.Point26_6     // current point, used to compute boundingBox
	boundingBox fixed.Rectangle26_6 // bouding box for the current path
}

// implements the filling operation
type filler struct {
	pather
	useNonZeroWinding bool
	pattern           svgicon.Pattern
	opacity           float64
}

// implements the stroking operation
type stroker struct {
	pather
	pattern svgicon.Pattern
	opacity float64
}

// NewRenderer return a renderer which will
// write to the given `pdf`, on the current page.
func NewRenderer(pdf *fpdf.Fpdf) *Renderer {
	return &Renderer{
		pdf:     pdf,
		filler:  filler{pather: pather{pdf: pdf}, useNonZeroWinding: true},
		stroker: stroker{pather: pather{pdf: pdf}},
	}
}

func fixedTof(a fixed.Point26_6) (float64, float64) {
	return float64(a.X) / 64, float64(a.Y) / 64
}

func fToFixed(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
}

// SetupDrawers implements svgicon.Driver
func (r *Renderer) SetupDrawers(willFill, willStroke bool) (svgicon.Filler, svgicon.Stroker) {
	var (
		f svgicon.Filler
		s svgicon.Stroker
	)
	if willFill {
		f = &r.filler
	}
	if willStroke {
		s = &r.stroker
	}
	return f, s
}

// StartClip implements svgicon.Clipper, using the graphic state stack.
func (r *Renderer) StartClip(addClip func(svgpath.Adder)) {
	p := pather{pdf: r.pdf}
	addClip(&p)
	r.pdf.TransformBegin()
	if len(p.segments) == 0 { // empty clip path : nothing is painted
		r.pdf.Rect(0, 0, 0, 0, "W n")
		return
	}
	p.write()
	r.pdf.DrawPath("W n")
}

// EndClip implements svgicon.Clipper.
func (r *Renderer) EndClip() { r.pdf.TransformEnd() }

func (p *pather) Clear() {
	p.segments = p.segments[:0]
	p.boundingBox = fixed.Rectangle26_6{}
	p.a = fixed.Point26_6{}
}

func (p *pather) Start(a fixed.Point26_6) {
	p.segments = append(p.segments, pathSegment{kind: moveTo, pts: [3]fixed.Point26_6{a}})
	if len(p.segments) == 1 {
		p.boundingBox = fixed.Rectangle26_6{Min: a, Max: a} // degenerate case
	} else {
		p.extend(fixed.Rectangle26_6{Min: a, Max: a})
	}
	p.a = a
}

// extend grows the bounding box to contain r, which may be
// flat, as for horizontal and vertical lines.
func (p *pather) extend(r fixed.Rectangle26_6) {
	b := &p.boundingBox
	b.Min.X, b.Min.Y = min(b.Min.X, r.Min.X), min(b.Min.Y, r.Min.Y)
	b.Max.X, b.Max.Y = max(b.Max.X, r.Max.X), max(b.Max.Y, r.Max.Y)
}

func (p *pather) Line(b fixed.Point26_6) {
	p.segments = append(p.segments, pathSegment{kind: lineTo, pts: [3]fixed.Point26_6{b}})
	p.extend(computeBoundingBox(line{p.a, b}))
	p.a = b
}

func (p *pather) CubeBezier(b fixed.Point26_6, c fixed.Point26_6, d fixed.Point26_6) {
	p.segments = append(p.segments, pathSegment{kind: cubicTo, pts: [3]fixed.Point26_6{b, c, d}})
	p.extend(computeBoundingBox(cubicBezier{p.a, b, c, d}))
	p.a = d
}

func (p *pather) Stop(closeLoop bool) {
	if closeLoop {
		p.segments = append(p.segments, pathSegment{kind: closePath})
	}
}

// write outputs the recorded path
func (p *pather) write() {
	for _, seg := range p.segments {
		switch seg.kind {
		case moveTo:
			p.pdf.MoveTo(fixedTof(seg.pts[0]))
		case lineTo:
			p.pdf.LineTo(fixedTof(seg.pts[0]))
		case cubicTo:
			cx0, cy0 := fixedTof(seg.pts[0])
			cx1, cy1 := fixedTof(seg.pts[1])
			x, y := fixedTof(seg.pts[2])
			p.pdf.CurveBezierCubicTo(cx0, cy0, cx1, cy1, x, y)
		case closePath:
			p.pdf.ClosePath()
		}
	}
}

func (f *filler) SetColor(color svgicon.Pattern, opacity float64) {
	f.pattern, f.opacity = color, opacity
}

func (f *filler) SetWinding(useNonZeroWinding bool) {
	f.useNonZeroWinding = useNonZeroWinding
}

func (f *filler) Draw() {
	if len(f.segments) == 0 {
		return
	}
	switch pattern := f.pattern.(type) {
	case svgicon.PlainColor:
		f.pdf.SetFillColor(int(pattern.R), int(pattern.G), int(pattern.B))
		f.pdf.SetAlpha(f.opacity*float64(pattern.A)/255, "Normal")
		f.write()
		styleStr := "F*"
		if f.useNonZeroWinding {
			styleStr = "F"
		}
		f.pdf.DrawPath(styleStr)
	case svgicon.Gradient:
		clipOp := "W* n"
		if f.useNonZeroWinding {
			clipOp = "W n"
		}
		f.pdf.TransformBegin()
		f.write()
		f.pdf.DrawPath(clipOp)
		f.pdf.SetAlpha(f.opacity, "Normal")
		f.paintGradient(pattern)
		f.pdf.TransformEnd()
	}
}

func (s *stroker) SetColor(color svgicon.Pattern, opacity float64) {
	s.pattern, s.opacity = color, opacity
}

var (
	capStyles  = [...]string{svgicon.ButtCap: "butt", svgicon.RoundCap: "round", svgicon.SquareCap: "square"}
	joinStyles = [...]string{svgicon.Round: "round", svgicon.Bevel: "bevel", svgicon.Miter: "miter", svgicon.MiterClip: "miter"}
)

func (s *stroker) SetStrokeOptions(options svgicon.StrokeOptions) {
	s.pdf.SetLineWidth(float64(options.LineWidth) / 64)
	capStyle := "butt"
	if int(options.Join.TrailLineCap) < len(capStyles) && capStyles[options.Join.TrailLineCap] != "" {
		capStyle = capStyles[options.Join.TrailLineCap]
	}
	s.pdf.SetLineCapStyle(capStyle)
	joinStyle := "miter"
	if int(options.Join.LineJoin) < len(joinStyles) && joinStyles[options.Join.LineJoin] != "" {
		joinStyle = joinStyles[options.Join.LineJoin]
	}
	s.pdf.SetLineJoinStyle(joinStyle)
	s.pdf.SetDashPattern(options.Dash.Dash, options.Dash.DashOffset)
}

func (s *stroker) Draw() {
	if len(s.segments) == 0 {
		return
	}
	var c color.NRGBA
	switch pattern := s.pattern.(type) {
	case svgicon.PlainColor:
		c = pattern.NRGBA
	case svgicon.Gradient:
		// stroking with a shading would require the stroke outline
		logx.Logger().Debug("svgpdf: gradient strokes are painted with their first stop")
		if len(pattern.Stops) != 0 {
			c = toNRGBA(pattern.Stops[0].StopColor)
		}
	}
	s.pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
	s.pdf.SetAlpha(s.opacity*float64(c.A)/255, "Normal")
	s.write()
	s.pdf.DrawPath("D")
}

func toNRGBA(c color.Color) color.NRGBA {
	if c == nil {
		return color.NRGBA{A: 0xff}
	}
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

// box returns the path bounding box
func (p *pather) box() (x, y, w, h float64) {
	x, y = fixedTof(p.boundingBox.Min)
	xM, yM := fixedTof(p.boundingBox.Max)
	return x, y, xM - x, yM - y
}

// paintGradient fills the current clipping area.
// Linear gradients with more than two stops are split in bands,
// one per pair of consecutive stops.
func (f *filler) paintGradient(g svgicon.Gradient) {
	x, y, w, h := f.box()
	if w <= 0 || h <= 0 {
		return
	}
	stops := append([]svgicon.GradStop(nil), g.Stops...)
	sort.SliceStable(stops, func(i, j int) bool { return stops[i].Offset < stops[j].Offset })

	// toBox maps gradient coordinates to the page
	toBox := func(px, py float64) svgpath.Point {
		if g.Units == svgicon.ObjectBoundingBox {
			return svgpath.Point{X: x + w*px, Y: y + h*py}
		}
		return svgpath.Point{X: px, Y: py}
	}
	// toShading maps page coordinates to the normalized shading space
	toShading := func(p svgpath.Point) (float64, float64) {
		return (p.X - x) / w, 1 - (p.Y-y)/h
	}

	switch len(stops) {
	case 0:
		return
	case 1:
		f.fillRect(x, y, w, h, stops[0])
		return
	}

	switch dir := g.Direction.(type) {
	case svgicon.Linear:
		a, b := toBox(dir[0], dir[1]), toBox(dir[2], dir[3])
		d := b.Sub(a)
		if d.Len() == 0 {
			f.fillRect(x, y, w, h, stops[len(stops)-1])
			return
		}
		// half width of the bands, large enough to cover the box
		normal := svgpath.Point{X: -d.Y, Y: d.X}.Normalize().Scale(2 * (w + h + d.Len()))
		reach := 2 * (w + h + d.Len()) / d.Len()
		for i := 0; i+1 < len(stops); i++ {
			start, end := stops[i].Offset, stops[i+1].Offset
			if i == 0 {
				start = -reach
			}
			if i+2 == len(stops) {
				end = 1 + reach
			}
			if end <= start {
				continue
			}
			s, e := a.Add(d.Scale(start)), a.Add(d.Scale(end))
			f.pdf.ClipPolygon([]fpdf.PointType{
				{X: s.X + normal.X, Y: s.Y + normal.Y},
				{X: e.X + normal.X, Y: e.Y + normal.Y},
				{X: e.X - normal.X, Y: e.Y - normal.Y},
				{X: s.X - normal.X, Y: s.Y - normal.Y},
			}, false)
			c1, c2 := toNRGBA(stops[i].StopColor), toNRGBA(stops[i+1].StopColor)
			x1, y1 := toShading(a.Add(d.Scale(stops[i].Offset)))
			x2, y2 := toShading(a.Add(d.Scale(stops[i+1].Offset)))
			f.pdf.LinearGradient(x, y, w, h, int(c1.R), int(c1.G), int(c1.B), int(c2.R), int(c2.G), int(c2.B), x1, y1, x2, y2)
			f.pdf.ClipEnd()
		}
	case svgicon.Radial:
		c1, c2 := toNRGBA(stops[0].StopColor), toNRGBA(stops[len(stops)-1].StopColor)
		fx, fy := toShading(toBox(dir[2], dir[3]))
		cx, cy := toShading(toBox(dir[0], dir[1]))
		r := dir[4]
		if g.Units != svgicon.ObjectBoundingBox {
			r /= math.Max(w, h)
		}
		f.pdf.RadialGradient(x, y, w, h, int(c1.R), int(c1.G), int(c1.B), int(c2.R), int(c2.G), int(c2.B), fx, fy, cx, cy, r)
	}
}

func (f *filler) fillRect(x, y, w, h float64, stop svgicon.GradStop) {
	c := toNRGBA(stop.StopColor)
	f.pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
	f.pdf.Rect(x, y, w, h, "F")
}

// Options controls the page produced by RenderIcon.
type Options struct {
	// Width and Height of the page, in points.
	// Zero values are deduced from the view box.
	Width, Height float64
	Title         string
}

// RenderIcon writes a one page PDF document showing `icon`.
func RenderIcon(icon *svgicon.SvgIcon, w io.Writer, opts Options) error {
	if opts.Width == 0 {
		opts.Width = icon.ViewBox.W
	}
	if opts.Height == 0 {
		opts.Height = icon.ViewBox.H
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("invalid page size %gx%g", opts.Width, opts.Height)
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "pt",
		Size:    fpdf.SizeType{Wd: opts.Width, Ht: opts.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	if opts.Title != "" {
		pdf.SetTitle(opts.Title, true)
	} else if len(icon.Titles) != 0 {
		pdf.SetTitle(icon.Titles[0], true)
	}
	pdf.AddPage()

	saved := icon.Transform
	icon.SetTarget(0, 0, opts.Width, opts.Height)
	icon.Draw(NewRenderer(pdf), 1)
	icon.Transform = saved

	return pdf.Output(w)
}

// RenderSVG parses the SVG source and writes it as PDF.
func RenderSVG(source io.Reader, w io.Writer, opts Options) error {
	icon, err := svgicon.ReadIconStream(source, svgicon.WarnErrorMode)
	if err != nil {
		return err
	}
	return RenderIcon(icon, w, opts)
}
