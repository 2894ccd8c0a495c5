package svgpath

import "math"

// Bounds is an axis aligned bounding box.
type Bounds struct {
	MinX, MaxX, MinY, MaxY float64
}

// DefaultBounds is returned when there is no point to enclose.
var DefaultBounds = Bounds{MinX: -1, MaxX: 1, MinY: -1, MaxY: 1}

func (b Bounds) Width() float64  { return b.MaxX - b.MinX }
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Center returns the middle of the box.
func (b Bounds) Center() Point {
	return Point{(b.MinX + b.MaxX) / 2, (b.MinY + b.MaxY) / 2}
}

// ComputeBounds returns the smallest box enclosing the points,
// or DefaultBounds for an empty input.
func ComputeBounds(points []Point) Bounds {
	if len(points) == 0 {
		return DefaultBounds
	}
	b := Bounds{MinX: points[0].X, MaxX: points[0].X, MinY: points[0].Y, MaxY: points[0].Y}
	for _, p := range points[1:] {
		b.MinX = math.Min(b.MinX, p.X)
		b.MaxX = math.Max(b.MaxX, p.X)
		b.MinY = math.Min(b.MinY, p.Y)
		b.MaxY = math.Max(b.MaxY, p.Y)
	}
	return b
}

// CollectPoints concatenates the Points of every directive.
func CollectPoints(dirs []Directive) []Point {
	var out []Point
	for _, dir := range dirs {
		out = append(out, dir.Points()...)
	}
	return out
}

// ViewBox is the coordinate rectangle the drawing is fitted to.
type ViewBox struct{ X, Y, W, H float64 }

// DefaultViewBox is used for degenerate content.
var DefaultViewBox = ViewBox{X: -1, Y: -1, W: 2, H: 2}

// String returns the value of the svg viewBox attribute.
func (vb ViewBox) String() string {
	return FormatNum(vb.X) + " " + FormatNum(vb.Y) + " " + FormatNum(vb.W) + " " + FormatNum(vb.H)
}

// ViewBox returns a square view box, centered on the content and sized
// to the larger of width and height, so that the content is
// scaled uniformly whatever its aspect ratio.
// Degenerate boxes (zero width and height) return DefaultViewBox.
func (b Bounds) ViewBox() ViewBox {
	side := math.Max(b.Width(), b.Height())
	if side == 0 {
		return DefaultViewBox
	}
	c := b.Center()
	return ViewBox{X: c.X - side/2, Y: c.Y - side/2, W: side, H: side}
}
