// Implements a raster backend to render SVG images,
// by wrapping rasterx.
package svgraster

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/benoitkugler/svgcompose/internal/logx"
	"github.com/benoitkugler/svgcompose/svgicon"
	"github.com/benoitkugler/svgcompose/svgpath"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

var (
	_ svgicon.Driver  = (*Renderer)(nil) // assert interface conformance
	_ svgicon.Clipper = (*Renderer)(nil)
)

// Renderer paints into an image. Clip paths are supported
// by rendering into an offscreen layer, which is then
// composed through an alpha mask.
type Renderer struct {
	width, height int
	target        draw.Image

	dasher *rasterx.Dasher // to avoid shared state
	filler *rasterx.Filler // we use separated instance

	// non nil between StartClip and EndClip
	clip *clipLayer
}

type clipLayer struct {
	mask   *image.Alpha
	layer  *image.RGBA
	target draw.Image // restored at EndClip
}

// NewRenderer returns a renderer drawing into `target`,
// whose bounds are expected to start at (0,0).
func NewRenderer(target draw.Image) *Renderer {
	rd := &Renderer{
		width:  target.Bounds().Dx(),
		height: target.Bounds().Dy(),
	}
	rd.setTarget(target)
	return rd
}

func (rd *Renderer) setTarget(target draw.Image) {
	rd.target = target
	scanner := rasterx.NewScannerGV(rd.width, rd.height, target, target.Bounds())
	rd.filler = rasterx.NewFiller(rd.width, rd.height, scanner)
	rd.dasher = rasterx.NewDasher(rd.width, rd.height, scanner)
}

// SetupDrawers implements svgicon.Driver.
func (rd *Renderer) SetupDrawers(willFill, willStroke bool) (svgicon.Filler, svgicon.Stroker) {
	var (
		f svgicon.Filler
		s svgicon.Stroker
	)
	if willFill {
		f = filler{rd.filler}
	}
	if willStroke {
		s = stroker{rd.dasher}
	}
	return f, s
}

// StartClip implements svgicon.Clipper. Nested clips are not supported:
// the innermost clip replaces the current one.
func (rd *Renderer) StartClip(addClip func(svgpath.Adder)) {
	if rd.clip != nil {
		logx.Logger().Debug("svgraster: nested clip paths are not supported")
		rd.EndClip()
	}
	rect := image.Rect(0, 0, rd.width, rd.height)
	mask := image.NewAlpha(rect)
	maskFiller := rasterx.NewFiller(rd.width, rd.height, rasterx.NewScannerGV(rd.width, rd.height, mask, rect))
	addClip(maskFiller)
	maskFiller.SetColor(color.Alpha{A: 0xff})
	maskFiller.Draw()

	rd.clip = &clipLayer{mask: mask, layer: image.NewRGBA(rect), target: rd.target}
	rd.setTarget(rd.clip.layer)
}

// EndClip implements svgicon.Clipper.
func (rd *Renderer) EndClip() {
	if rd.clip == nil {
		return
	}
	cl := rd.clip
	rd.clip = nil
	rd.setTarget(cl.target)
	draw.DrawMask(cl.target, cl.target.Bounds(), cl.layer, image.Point{}, cl.mask, image.Point{}, draw.Over)
}

type filler struct {
	*rasterx.Filler
}

func (f filler) SetColor(color svgicon.Pattern, opacity float64) {
	setColorFromPattern(color, opacity, f.Scanner)
}

type stroker struct {
	*rasterx.Dasher
}

func (s stroker) SetColor(color svgicon.Pattern, opacity float64) {
	setColorFromPattern(color, opacity, s.Scanner)
}

var (
	joinToJoin = [...]rasterx.JoinMode{
		svgicon.Round:     rasterx.Round,
		svgicon.Bevel:     rasterx.Bevel,
		svgicon.Miter:     rasterx.Miter,
		svgicon.MiterClip: rasterx.MiterClip,
		svgicon.Arc:       rasterx.Arc,
		svgicon.ArcClip:   rasterx.ArcClip,
	}

	capToFunc = [...]rasterx.CapFunc{
		svgicon.ButtCap:      rasterx.ButtCap,
		svgicon.SquareCap:    rasterx.SquareCap,
		svgicon.RoundCap:     rasterx.RoundCap,
		svgicon.CubicCap:     rasterx.CubicCap,
		svgicon.QuadraticCap: rasterx.QuadraticCap,
	}

	gapToFunc = [...]rasterx.GapFunc{
		svgicon.FlatGap:      rasterx.FlatGap,
		svgicon.RoundGap:     rasterx.RoundGap,
		svgicon.CubicGap:     rasterx.CubicGap,
		svgicon.QuadraticGap: rasterx.QuadraticGap,
	}
)

func (s stroker) SetStrokeOptions(options svgicon.StrokeOptions) {
	s.SetStroke(
		options.LineWidth, options.Join.MiterLimit, capToFunc[options.Join.LeadLineCap],
		capToFunc[options.Join.TrailLineCap], gapToFunc[options.Join.LineGap],
		joinToJoin[options.Join.LineJoin], options.Dash.Dash, options.Dash.DashOffset,
	)
}

// resolve gradient color
func setColorFromPattern(color svgicon.Pattern, opacity float64, scanner rasterx.Scanner) {
	switch fillerColor := color.(type) {
	case svgicon.PlainColor:
		scanner.SetColor(rasterx.ApplyOpacity(fillerColor, opacity))
	case svgicon.Gradient:
		if fillerColor.Units == svgicon.ObjectBoundingBox {
			fRect := scanner.GetPathExtent()
			mnx, mny := float64(fRect.Min.X)/64, float64(fRect.Min.Y)/64
			mxx, mxy := float64(fRect.Max.X)/64, float64(fRect.Max.Y)/64
			fillerColor.Bounds = svgicon.Bounds{X: mnx, Y: mny, W: mxx - mnx, H: mxy - mny}
		}
		scanner.SetColor(fillerColor.Rasterx().GetColorFunction(opacity))
	}
}

// Options controls the output of RasterIcon.
type Options struct {
	// Background fills the image before painting, if not nil.
	Background color.Color
	// Supersampling renders at a higher resolution and
	// downscales the result, for smoother edges. Values <= 1 disable it.
	Supersampling int
}

// RasterIcon renders the icon in a `width` x `height` image,
// stretched to fill it.
func RasterIcon(icon *svgicon.SvgIcon, width, height int, opts Options) *image.RGBA {
	factor := max(opts.Supersampling, 1)
	w, h := width*factor, height*factor
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if opts.Background != nil {
		draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)
	}

	saved := icon.Transform
	icon.SetTarget(0, 0, float64(w), float64(h))
	icon.Draw(NewRenderer(img), 1.0)
	icon.Transform = saved

	if factor == 1 {
		return img
	}
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(out, out.Bounds(), img, img.Bounds(), draw.Src, nil)
	return out
}

// RasterSVG parses the SVG source and renders it.
// A zero `width` or `height` is deduced from the view box.
func RasterSVG(source io.Reader, width, height int, opts Options) (*image.RGBA, error) {
	icon, err := svgicon.ReadIconStream(source, svgicon.WarnErrorMode)
	if err != nil {
		return nil, err
	}
	if width == 0 {
		width = int(icon.ViewBox.W + 0.5)
	}
	if height == 0 {
		height = int(icon.ViewBox.H + 0.5)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", width, height)
	}
	return RasterIcon(icon, width, height, opts), nil
}

// Format is an image file format.
type Format string

const (
	PNG  Format = "png"
	TIFF Format = "tiff"
	BMP  Format = "bmp"
)

// Encode writes `img` using the given format.
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case PNG, "":
		return png.Encode(w, img)
	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case BMP:
		return bmp.Encode(w, img)
	default:
		return fmt.Errorf("unsupported image format %q", format)
	}
}

// EncodePNG writes `img` as PNG.
func EncodePNG(w io.Writer, img image.Image) error { return png.Encode(w, img) }
