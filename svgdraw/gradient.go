package svgdraw

import (
	"math"

	"github.com/benoitkugler/svgcompose/internal/logx"
	"github.com/benoitkugler/svgcompose/svgpath"
)

// StopArg is one argument of a gradient stop list:
// a Color, optionally followed by a Percent.
type StopArg interface {
	isStopArg()
}

// Color is a CSS color, such as `#ff0000` or `hsl(0, 80%, 50%)`.
type Color string

// Percent is a stop offset. Values below 1 are fractions:
// 0.25 and 25 are the same offset.
type Percent float64

func (Color) isStopArg()   {}
func (Percent) isStopArg() {}

// Stop is a resolved gradient stop, with an offset in [0, 100].
type Stop struct {
	Color  string
	Offset float64
}

const unsetOffset = -1

// ParseStops resolves a list of colors, each optionally followed
// by a percentage.
// A missing first offset is 0, and a missing last offset is 100
// (when there are at least two stops).
// A missing middle offset is placed halfway between the latest known
// offset and the next greater explicit one, or 100.
func ParseStops(args ...StopArg) []Stop {
	var stops []Stop
	for _, arg := range args {
		switch arg := arg.(type) {
		case Color:
			stops = append(stops, Stop{Color: string(arg), Offset: unsetOffset})
		case Percent:
			if len(stops) == 0 {
				logx.Logger().Warn("svgdraw: gradient offset without color ignored", "offset", float64(arg))
				continue
			}
			v := float64(arg)
			if v < 1 {
				v *= 100
			}
			stops[len(stops)-1].Offset = v
		}
	}
	if len(stops) == 0 {
		return stops
	}

	if stops[0].Offset == unsetOffset {
		stops[0].Offset = 0
	}
	if last := &stops[len(stops)-1]; len(stops) >= 2 && last.Offset == unsetOffset {
		last.Offset = 100
	}

	latest := math.Max(stops[0].Offset, 0)
	for i := 1; i < len(stops)-1; i++ {
		current := &stops[i]
		if current.Offset < 0 {
			next := 100.
			for _, st := range stops[i:] {
				if st.Offset > latest {
					next = st.Offset
					break
				}
			}
			current.Offset = (next-latest)*0.5 + latest
		}
		latest = math.Max(current.Offset, latest)
	}
	return stops
}

// Direction orients a linear gradient.
type Direction interface {
	// coords returns x1, y1, x2, y2 as percentages
	coords() [4]float64
}

// Degrees is an angle, 0 meaning from right to left.
type Degrees float64

// Vector is a direction vector, whose length is clamped to 50.
type Vector svgpath.Point

func roundCoord(v float64) float64 { return math.Round(v*1e9) / 1e9 }

func (d Degrees) coords() [4]float64 {
	sin, cos := math.Sincos(float64(d) * math.Pi / 180)
	return [4]float64{
		roundCoord(50 + 50*cos),
		roundCoord(50 + 50*sin),
		roundCoord(50 - 50*cos),
		roundCoord(50 - 50*sin),
	}
}

func (v Vector) coords() [4]float64 {
	p := svgpath.Point(v)
	if l := p.Len(); l > 50 {
		p = p.Scale(50 / l)
	}
	return [4]float64{50 + p.X, 50 + p.Y, 50 - p.X, 50 - p.Y}
}

// GradientOptions configures a LinearGradient.
type GradientOptions struct {
	Direction  Direction // default to Degrees(0)
	Attributes Attributes
}

// LinearGradient is a referencable <linearGradient> resource.
type LinearGradient struct {
	name   string
	stops  []Stop
	coords [4]float64
	attrs  Attributes
}

// NewLinearGradient returns a horizontal gradient. See ParseStops
// for the format of `args`.
func NewLinearGradient(args ...StopArg) *LinearGradient {
	return &LinearGradient{
		name:   "unnamed-linear-gradient",
		stops:  ParseStops(args...),
		coords: Degrees(0).coords(),
	}
}

// Options applies `opts` and returns the gradient.
func (lg *LinearGradient) Options(opts GradientOptions) *LinearGradient {
	if opts.Direction != nil {
		lg.coords = opts.Direction.coords()
	}
	lg.attrs = opts.Attributes
	return lg
}

func (lg *LinearGradient) Stops() []Stop { return append([]Stop(nil), lg.stops...) }

// Coords returns x1, y1, x2, y2, as percentages.
func (lg *LinearGradient) Coords() [4]float64 { return lg.coords }

func (lg *LinearGradient) ReferenceURL() string   { return lg.name }
func (lg *LinearGradient) AssignName(name string) { lg.name = name }

func percent(v float64) string { return svgpath.FormatNum(v) + "%" }

func (lg *LinearGradient) ToRenderNode(drawingID string, ns *Namespace) (*Node, error) {
	node := NewNode("linearGradient",
		"id", elementID(lg.name, drawingID),
		"x1", percent(lg.coords[0]),
		"y1", percent(lg.coords[1]),
		"x2", percent(lg.coords[2]),
		"y2", percent(lg.coords[3]),
	)
	node.Attrs = append(node.Attrs, lg.attrs.resolve(drawingID, ns, "id", "x1", "y1", "x2", "y2")...)
	for _, st := range lg.stops {
		node.Children = append(node.Children, NewNode("stop", "offset", percent(st.Offset), "stop-color", st.Color))
	}
	return node, nil
}
