package svgicon

import (
	"encoding/xml"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/benoitkugler/svgcompose/internal/logx"
	"github.com/benoitkugler/svgcompose/svgpath"
	"golang.org/x/image/math/fixed"
)

// ErrorMode selects the reaction of the parser to
// elements or paints it does not support.
type ErrorMode uint8

const (
	// IgnoreErrorMode silently skips unsupported content.
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode skips unsupported content, logging a warning.
	WarnErrorMode
	// StrictErrorMode fails on the first unsupported content.
	StrictErrorMode
)

var (
	errParamMismatch = errors.New("param mismatch")
	errZeroLengthID  = errors.New("zero length id")
)

// endGroup marks the end of a <g> in a recorded definition
const endGroup = "endg"

// iconCursor holds the parser state
type iconCursor struct {
	icon       *SvgIcon
	styleStack []PathStyle
	errorMode  ErrorMode

	path      []svgpath.Directive // current shape
	points    []float64           // scratch buffer for number lists
	useOffset svgpath.Point       // shift of the <use> being replayed

	grad *Gradient // non nil inside a gradient
	clip *ClipPath // non nil inside a <clipPath>
	text *[]string // non nil inside <title> or <desc>

	inDefs     bool
	currentDef []definition
}

// definition is an element recorded inside <defs>,
// to be replayed by <use>.
type definition struct {
	ID, Tag string
	Attrs   []xml.Attr
}

func fToFixed(f float64) fixed.Int26_6 { return fixed.Int26_6(f * 64) }

func (c *iconCursor) style() PathStyle { return c.styleStack[len(c.styleStack)-1] }

func (c *iconCursor) popStyle() { c.styleStack = c.styleStack[:len(c.styleStack)-1] }

// handleError returns `err` in strict mode, and nil otherwise.
func (c *iconCursor) handleError(err error) error {
	switch c.errorMode {
	case StrictErrorMode:
		return err
	case WarnErrorMode:
		logx.Logger().Warn("svgicon: " + err.Error())
	}
	return nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// parseBasicFloat accepts an optional `px` or `pt` suffix.
func parseBasicFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if unit, ok := strings.CutSuffix(s, "px"); ok {
		s = unit
	} else if unit, ok := strings.CutSuffix(s, "pt"); ok {
		s = unit
	}
	return parseFloat(s)
}

// percentageReference is the view box dimension
// a percentage refers to.
type percentageReference uint8

const (
	widthPercentage percentageReference = iota
	heightPercentage
	diagPercentage // normalized diagonal, for radii and stroke widths
)

func (c *iconCursor) parseUnit(s string, ref percentageReference) (float64, error) {
	v, isPercent := strings.CutSuffix(strings.TrimSpace(s), "%")
	if !isPercent {
		return parseBasicFloat(v)
	}
	f, err := parseFloat(v)
	if err != nil {
		return 0, err
	}
	vb := c.icon.ViewBox
	base := vb.W
	switch ref {
	case heightPercentage:
		base = vb.H
	case diagPercentage:
		base = math.Hypot(vb.W, vb.H) / math.Sqrt2
	}
	return f * base / 100, nil
}

// getPoints parses a list of numbers into c.points
func (c *iconCursor) getPoints(list string) error {
	c.points = c.points[:0]
	for _, s := range splitOnCommaOrSpace(list) {
		f, err := parseFloat(s)
		if err != nil {
			return err
		}
		c.points = append(c.points, f)
	}
	return nil
}

// readFraction parses a number or a percentage,
// returning 0.5 for both "0.5" and "50%".
func readFraction(v string) (float64, error) {
	v, isPercent := strings.CutSuffix(strings.TrimSpace(v), "%")
	f, err := parseFloat(v)
	if isPercent {
		f /= 100
	}
	return f, err
}

func splitOnCommaOrSpace(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		switch r {
		case ',', ' ', '\n', '\t', '\r':
			return true
		}
		return false
	})
}

func degToRad(d float64) float64 { return d * math.Pi / 180 }

// applyTransform composes `m` with the transform function `name`.
func applyTransform(m Matrix2D, name string, args []float64) (Matrix2D, error) {
	switch n := len(args); {
	case name == "matrix" && n == 6:
		return m.Mult(Matrix2D{A: args[0], B: args[1], C: args[2], D: args[3], E: args[4], F: args[5]}), nil
	case name == "translate" && n == 1:
		return m.Translate(args[0], 0), nil
	case name == "translate" && n == 2:
		return m.Translate(args[0], args[1]), nil
	case name == "scale" && n == 1:
		return m.Scale(args[0], args[0]), nil
	case name == "scale" && n == 2:
		return m.Scale(args[0], args[1]), nil
	case name == "rotate" && n == 1:
		return m.Rotate(degToRad(args[0])), nil
	case name == "rotate" && n == 3:
		// rotation around (cx, cy)
		return m.Translate(args[1], args[2]).Rotate(degToRad(args[0])).Translate(-args[1], -args[2]), nil
	case name == "skewx" && n == 1:
		return m.SkewX(degToRad(args[0])), nil
	case name == "skewy" && n == 1:
		return m.SkewY(degToRad(args[0])), nil
	}
	return m, fmt.Errorf("invalid transform %s with %d arguments: %w", name, len(args), errParamMismatch)
}

// parseTransform returns the current transform composed with
// the transform list `v`.
func (c *iconCursor) parseTransform(v string) (Matrix2D, error) {
	m := c.style().transform
	for rest := strings.TrimSpace(v); rest != ""; rest = strings.TrimSpace(rest) {
		var call string
		call, rest, _ = strings.Cut(rest, ")")
		name, args, ok := strings.Cut(call, "(")
		if !ok || args == "" {
			return m, fmt.Errorf("invalid transform %q: %w", v, errParamMismatch)
		}
		if err := c.getPoints(args); err != nil {
			return m, err
		}
		name = strings.ToLower(strings.Trim(name, ", \t\n\r"))
		var err error
		if m, err = applyTransform(m, name, c.points); err != nil {
			return m, err
		}
	}
	return m, nil
}

// parseURL returns the id of a `url(#id)` reference
func parseURL(v string) (string, bool) {
	inner, ok := strings.CutPrefix(strings.TrimSpace(v), "url(")
	if !ok {
		return "", false
	}
	inner, ok = strings.CutSuffix(inner, ")")
	if !ok {
		return "", false
	}
	inner = strings.Trim(strings.TrimSpace(inner), `'"`)
	return strings.TrimPrefix(inner, "#"), true
}

// readPaint parses a fill or stroke value. The current paint
// is returned for `currentColor` and `inherit`.
func (c *iconCursor) readPaint(v string, current Pattern) (Pattern, error) {
	if id, isURL := parseURL(v); isURL {
		grad, ok := c.icon.grads[id]
		if !ok {
			return nil, c.handleError(fmt.Errorf("paint server %q not found", id))
		}
		return *grad, nil
	}
	if v == "currentColor" || v == "inherit" {
		return current, nil
	}
	col, err := ParseColor(v)
	if err != nil {
		return nil, err
	}
	return asPattern(col), nil
}

var (
	lineJoins = map[string]JoinMode{
		"miter":      Miter,
		"miter-clip": MiterClip,
		"arc-clip":   ArcClip,
		"round":      Round,
		"arc":        Arc,
		"bevel":      Bevel,
	}
	lineCaps = map[string]CapMode{
		"butt":      ButtCap,
		"round":     RoundCap,
		"square":    SquareCap,
		"cubic":     CubicCap,
		"quadratic": QuadraticCap,
	}
	lineGaps = map[string]GapMode{
		"flat":      FlatGap,
		"round":     RoundGap,
		"cubic":     CubicGap,
		"quadratic": QuadraticGap,
	}
)

func parseDashArray(v string) ([]float64, error) {
	if v == "none" {
		return nil, nil
	}
	fields := splitOnCommaOrSpace(v)
	out := make([]float64, len(fields))
	for i, f := range fields {
		d, err := parseFloat(f)
		if err != nil {
			return nil, fmt.Errorf("invalid dash array %q: %w", v, err)
		}
		out[i] = d
	}
	return out, nil
}

// readStyleAttr updates `style` with the presentation attribute `k`.
// Unknown attributes are ignored.
func (c *iconCursor) readStyleAttr(style *PathStyle, k, v string) (err error) {
	switch k {
	case "fill":
		style.FillerColor, err = c.readPaint(v, style.FillerColor)
	case "stroke":
		style.LinerColor, err = c.readPaint(v, style.LinerColor)
	case "fill-rule", "clip-rule":
		if v == "evenodd" || v == "nonzero" {
			style.UseNonZeroWinding = v == "nonzero"
		}
	case "clip-path":
		if v == "none" {
			style.ClipPath = ""
		} else if id, ok := parseURL(v); ok {
			style.ClipPath = id
		} else {
			err = c.handleError(fmt.Errorf("invalid clip-path %q", v))
		}
	case "stroke-linegap":
		if g, ok := lineGaps[v]; ok {
			style.Join.LineGap = g
		}
	case "stroke-leadlinecap":
		style.Join.LeadLineCap = lineCaps[v]
	case "stroke-linecap":
		style.Join.TrailLineCap = lineCaps[v]
	case "stroke-linejoin":
		if j, ok := lineJoins[v]; ok {
			style.Join.LineJoin = j
		}
	case "stroke-miterlimit":
		var limit float64
		limit, err = parseFloat(v)
		style.Join.MiterLimit = fToFixed(limit)
	case "stroke-width":
		style.LineWidth, err = c.parseUnit(v, diagPercentage)
	case "stroke-dashoffset":
		style.Dash.DashOffset, err = parseFloat(v)
	case "stroke-dasharray":
		style.Dash.Dash, err = parseDashArray(v)
	case "opacity", "stroke-opacity", "fill-opacity":
		var op float64
		if op, err = readFraction(v); err != nil {
			return err
		}
		// opacity applies to both
		if k != "stroke-opacity" {
			style.FillOpacity *= op
		}
		if k != "fill-opacity" {
			style.LineOpacity *= op
		}
	case "transform":
		style.transform, err = c.parseTransform(v)
	}
	return err
}

// pushStyle pushes the style of an element: the current style updated
// with its presentation attributes, then with its `style` attribute,
// which takes precedence.
func (c *iconCursor) pushStyle(attrs []xml.Attr) error {
	style := c.style()
	var declarations []string
	for _, attr := range attrs {
		k := strings.ToLower(attr.Name.Local)
		if k == "style" {
			declarations = append(declarations, strings.Split(attr.Value, ";")...)
		} else if err := c.readStyleAttr(&style, k, strings.TrimSpace(attr.Value)); err != nil {
			return err
		}
	}
	for _, decl := range declarations {
		k, v, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		if err := c.readStyleAttr(&style, strings.ToLower(strings.TrimSpace(k)), strings.TrimSpace(v)); err != nil {
			return err
		}
	}
	c.styleStack = append(c.styleStack, style)
	return nil
}

// flushPath saves the current shape, if any, with the current style,
// either as a painted path or as part of the current clip path.
func (c *iconCursor) flushPath() {
	if len(c.path) == 0 {
		return
	}
	svgp := SvgPath{Path: make([]svgpath.Directive, len(c.path)), Style: c.style()}
	for i, op := range c.path {
		svgp.Path[i] = op.Offset(c.useOffset)
	}
	if c.clip != nil {
		c.clip.Paths = append(c.clip.Paths, svgp)
	} else {
		c.icon.SVGPaths = append(c.icon.SVGPaths, svgp)
	}
	c.path = c.path[:0]
}

// readElement processes an element whose style is already pushed.
func (c *iconCursor) readElement(tag string, attrs []xml.Attr) error {
	read, ok := elements[tag]
	if !ok {
		return c.handleError(fmt.Errorf("cannot process svg element %s", tag))
	}
	err := read(c, attrs)
	c.flushPath()
	return err
}

// recordDef stores an element of <defs>. Elements with an id
// start a new definition, the others extend the current one.
func (c *iconCursor) recordDef(se xml.StartElement) {
	id, _ := attrValue(se.Attr, "id")
	if id != "" {
		c.closeDef()
	}
	c.currentDef = append(c.currentDef, definition{ID: id, Tag: se.Name.Local, Attrs: se.Attr})
}

func (c *iconCursor) closeDef() {
	if len(c.currentDef) == 0 {
		return
	}
	c.icon.defs[c.currentDef[0].ID] = c.currentDef
	c.currentDef = nil
}

func (c *iconCursor) readStartElement(se xml.StartElement) error {
	tag := se.Name.Local
	// gradients and clip paths are registered as soon as they are read
	isResource := tag == "radialGradient" || tag == "linearGradient" || tag == "clipPath" ||
		c.grad != nil || c.clip != nil
	if c.inDefs && !isResource {
		c.recordDef(se)
		return nil
	}
	return c.readElement(tag, se.Attr)
}

func (c *iconCursor) readEndElement(tag string) {
	c.popStyle()
	switch tag {
	case "g":
		if c.inDefs && c.clip == nil {
			c.currentDef = append(c.currentDef, definition{Tag: endGroup})
		}
	case "title", "desc":
		c.text = nil
	case "defs":
		c.closeDef()
		c.inDefs = false
	case "radialGradient", "linearGradient":
		c.grad = nil
	case "clipPath":
		c.clip = nil
	}
}
