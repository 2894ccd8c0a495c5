package svgicon

import (
	"encoding/xml"
	"errors"
	"fmt"
	"image/color"
	"strings"
)

// elementFunc handles the start of an element, after its style
// has been pushed.
type elementFunc func(c *iconCursor, attrs []xml.Attr) error

var elements map[string]elementFunc

func init() {
	// `use` replays other elements, so the table can't be a static initializer
	elements = map[string]elementFunc{
		"svg":            readRoot,
		"g":              func(*iconCursor, []xml.Attr) error { return nil },
		"defs":           func(c *iconCursor, _ []xml.Attr) error { c.inDefs = true; return nil },
		"title":          readTitle,
		"desc":           readDescription,
		"rect":           readRect,
		"circle":         readEllipse,
		"ellipse":        readEllipse,
		"line":           readLine,
		"polyline":       func(c *iconCursor, attrs []xml.Attr) error { return c.readPoly(attrs, false) },
		"polygon":        func(c *iconCursor, attrs []xml.Attr) error { return c.readPoly(attrs, true) },
		"path":           readPath,
		"image":          readImage,
		"clipPath":       readClipPath,
		"linearGradient": readLinearGradient,
		"radialGradient": readRadialGradient,
		"stop":           readStop,
		"use":            readUse,
	}
}

// length is the destination of a length attribute
type length struct {
	dst *float64
	ref percentageReference
}

// readLengths parses the attributes listed in `fields`,
// ignoring the others.
func (c *iconCursor) readLengths(attrs []xml.Attr, fields map[string]length) error {
	for _, attr := range attrs {
		field, ok := fields[attr.Name.Local]
		if !ok {
			continue
		}
		v, err := c.parseUnit(attr.Value, field.ref)
		if err != nil {
			return fmt.Errorf("invalid %s attribute: %w", attr.Name.Local, err)
		}
		*field.dst = v
	}
	return nil
}

// readFractions is the same as readLengths for numbers or percentages,
// and returns the names of the attributes found.
func readFractions(attrs []xml.Attr, fields map[string]*float64) (map[string]bool, error) {
	found := map[string]bool{}
	for _, attr := range attrs {
		dst, ok := fields[attr.Name.Local]
		if !ok {
			continue
		}
		v, err := readFraction(attr.Value)
		if err != nil {
			return nil, fmt.Errorf("invalid %s attribute: %w", attr.Name.Local, err)
		}
		*dst = v
		found[attr.Name.Local] = true
	}
	return found, nil
}

func attrValue(attrs []xml.Attr, name string) (string, bool) {
	for _, attr := range attrs {
		if attr.Name.Local == name {
			return attr.Value, true
		}
	}
	return "", false
}

func readRoot(c *iconCursor, attrs []xml.Attr) error {
	icon := c.icon
	icon.ViewBox = Bounds{}
	icon.ID, _ = attrValue(attrs, "id")
	if vb, ok := attrValue(attrs, "viewBox"); ok {
		if err := c.getPoints(vb); err != nil {
			return err
		}
		if len(c.points) != 4 {
			return fmt.Errorf("invalid viewBox %q: %w", vb, errParamMismatch)
		}
		icon.ViewBox = Bounds{X: c.points[0], Y: c.points[1], W: c.points[2], H: c.points[3]}
	}

	var width, height float64
	var err error
	if icon.Width, _ = attrValue(attrs, "width"); icon.Width != "" {
		if width, err = parseBasicFloat(icon.Width); err != nil {
			return err
		}
	}
	if icon.Height, _ = attrValue(attrs, "height"); icon.Height != "" {
		if height, err = parseBasicFloat(icon.Height); err != nil {
			return err
		}
	}
	// a missing view box is the viewport
	if icon.ViewBox.W == 0 {
		icon.ViewBox.W = width
	}
	if icon.ViewBox.H == 0 {
		icon.ViewBox.H = height
	}
	return nil
}

func readTitle(c *iconCursor, _ []xml.Attr) error {
	c.text = &c.icon.Titles
	c.icon.Titles = append(c.icon.Titles, "")
	return nil
}

func readDescription(c *iconCursor, _ []xml.Attr) error {
	c.text = &c.icon.Descriptions
	c.icon.Descriptions = append(c.icon.Descriptions, "")
	return nil
}

func readRect(c *iconCursor, attrs []xml.Attr) error {
	var x, y, w, h, rx, ry float64
	err := c.readLengths(attrs, map[string]length{
		"x":      {&x, widthPercentage},
		"y":      {&y, heightPercentage},
		"width":  {&w, widthPercentage},
		"height": {&h, heightPercentage},
		"rx":     {&rx, widthPercentage},
		"ry":     {&ry, heightPercentage},
	})
	if err != nil {
		return err
	}
	if w != 0 && h != 0 {
		c.addRoundRect(x, y, x+w, y+h, rx, ry)
	}
	return nil
}

// readEllipse handles both <circle> and <ellipse>
func readEllipse(c *iconCursor, attrs []xml.Attr) error {
	var cx, cy, r, rx, ry float64
	err := c.readLengths(attrs, map[string]length{
		"cx": {&cx, widthPercentage},
		"cy": {&cy, heightPercentage},
		"r":  {&r, diagPercentage},
		"rx": {&rx, widthPercentage},
		"ry": {&ry, heightPercentage},
	})
	if err != nil {
		return err
	}
	if rx == 0 {
		rx = r
	}
	if ry == 0 {
		ry = r
	}
	// degenerate shapes are valid but not rendered
	if rx != 0 && ry != 0 {
		c.ellipseAt(cx, cy, rx, ry)
	}
	return nil
}

func readLine(c *iconCursor, attrs []xml.Attr) error {
	var x1, y1, x2, y2 float64
	err := c.readLengths(attrs, map[string]length{
		"x1": {&x1, widthPercentage},
		"y1": {&y1, heightPercentage},
		"x2": {&x2, widthPercentage},
		"y2": {&y2, heightPercentage},
	})
	if err != nil {
		return err
	}
	c.points = append(c.points[:0], x1, y1, x2, y2)
	c.addPolyline(false)
	return nil
}

func (c *iconCursor) readPoly(attrs []xml.Attr, closed bool) error {
	c.points = c.points[:0]
	if points, ok := attrValue(attrs, "points"); ok {
		if err := c.getPoints(points); err != nil {
			return err
		}
		if len(c.points)%2 != 0 {
			return fmt.Errorf("odd number of coordinates in points %q", points)
		}
	}
	c.addPolyline(closed)
	return nil
}

func readPath(c *iconCursor, attrs []xml.Attr) error {
	d, ok := attrValue(attrs, "d")
	if !ok {
		return nil
	}
	return c.compilePath(d)
}

func readImage(c *iconCursor, attrs []xml.Attr) error {
	img := Image{Transform: c.style().transform}
	img.ID, _ = attrValue(attrs, "id")
	img.Href, _ = attrValue(attrs, "href")
	err := c.readLengths(attrs, map[string]length{
		"x":      {&img.X, widthPercentage},
		"y":      {&img.Y, heightPercentage},
		"width":  {&img.W, widthPercentage},
		"height": {&img.H, heightPercentage},
	})
	if err != nil {
		return err
	}
	img.X += c.useOffset.X
	img.Y += c.useOffset.Y
	c.icon.Images = append(c.icon.Images, img)
	return nil
}

// readID returns an error for an explicit empty id.
func readID(attrs []xml.Attr) (string, error) {
	id, ok := attrValue(attrs, "id")
	if ok && id == "" {
		return "", errZeroLengthID
	}
	return id, nil
}

func readClipPath(c *iconCursor, attrs []xml.Attr) error {
	id, err := readID(attrs)
	if err != nil {
		return err
	}
	c.clip = &ClipPath{ID: id}
	if id != "" {
		c.icon.clips[id] = c.clip
	}
	return nil
}

var (
	gradientUnits = map[string]GradientUnits{
		"userSpaceOnUse":    UserSpaceOnUse,
		"objectBoundingBox": ObjectBoundingBox,
	}
	spreadMethods = map[string]SpreadMethod{
		"pad":     PadSpread,
		"reflect": ReflectSpread,
		"repeat":  RepeatSpread,
	}
)

// startGradient registers a new gradient and reads
// the attributes common to linear and radial gradients.
func (c *iconCursor) startGradient(attrs []xml.Attr) error {
	id, err := readID(attrs)
	if err != nil {
		return err
	}
	c.grad = &Gradient{Bounds: c.icon.ViewBox, Matrix: Identity}
	if id != "" {
		c.icon.grads[id] = c.grad
	}

	for _, attr := range attrs {
		v := strings.TrimSpace(attr.Value)
		switch attr.Name.Local {
		case "gradientTransform":
			if c.grad.Matrix, err = c.parseTransform(v); err != nil {
				return err
			}
		case "gradientUnits":
			if u, ok := gradientUnits[v]; ok {
				c.grad.Units = u
			}
		case "spreadMethod":
			if s, ok := spreadMethods[v]; ok {
				c.grad.Spread = s
			}
		}
	}
	return nil
}

func readLinearGradient(c *iconCursor, attrs []xml.Attr) error {
	if err := c.startGradient(attrs); err != nil {
		return err
	}
	dir := Linear{0, 0, 1, 0}
	_, err := readFractions(attrs, map[string]*float64{
		"x1": &dir[0], "y1": &dir[1], "x2": &dir[2], "y2": &dir[3],
	})
	c.grad.Direction = dir
	return err
}

func readRadialGradient(c *iconCursor, attrs []xml.Attr) error {
	if err := c.startGradient(attrs); err != nil {
		return err
	}
	dir := Radial{0.5, 0.5, 0.5, 0.5, 0.5, 0.5}
	found, err := readFractions(attrs, map[string]*float64{
		"cx": &dir[0], "cy": &dir[1], "fx": &dir[2], "fy": &dir[3], "r": &dir[4], "fr": &dir[5],
	})
	if err != nil {
		return err
	}
	// the focal point defaults to the center
	if !found["fx"] {
		dir[2] = dir[0]
	}
	if !found["fy"] {
		dir[3] = dir[1]
	}
	c.grad.Direction = dir
	return nil
}

func readStop(c *iconCursor, attrs []xml.Attr) error {
	if c.grad == nil {
		return nil
	}
	stop := GradStop{StopColor: color.NRGBA{A: 0xff}, Opacity: 1}
	if _, err := readFractions(attrs, map[string]*float64{
		"offset":       &stop.Offset,
		"stop-opacity": &stop.Opacity,
	}); err != nil {
		return err
	}
	if v, ok := attrValue(attrs, "stop-color"); ok {
		col, err := ParseColor(v)
		if err != nil {
			return err
		}
		if col != nil {
			stop.StopColor = col
		}
	}
	c.grad.Stops = append(c.grad.Stops, stop)
	return nil
}

// readUse paints the definition referenced by `href`,
// shifted by (x, y).
func readUse(c *iconCursor, attrs []xml.Attr) error {
	var x, y float64
	if err := c.readLengths(attrs, map[string]length{
		"x": {&x, widthPercentage},
		"y": {&y, heightPercentage},
	}); err != nil {
		return err
	}
	href, _ := attrValue(attrs, "href")
	if href == "" {
		return errors.New("<use> element without href")
	}
	id, ok := strings.CutPrefix(href, "#")
	if !ok {
		return fmt.Errorf("unsupported href %q in <use> element: only #id is supported", href)
	}
	def, ok := c.icon.defs[id]
	if !ok {
		return fmt.Errorf("href ID %s in use statement was not found in saved defs", href)
	}

	c.useOffset.X, c.useOffset.Y = x, y
	depth := len(c.styleStack)
	defer func() {
		c.useOffset.X, c.useOffset.Y = 0, 0
		c.styleStack = c.styleStack[:depth]
	}()
	for _, el := range def {
		if el.Tag == endGroup {
			c.popStyle()
			continue
		}
		if err := c.pushStyle(el.Attrs); err != nil {
			return err
		}
		if err := c.readElement(el.Tag, el.Attrs); err != nil {
			return err
		}
		// groups stay open until their endGroup marker
		if el.Tag != "g" {
			c.popStyle()
		}
	}
	return nil
}
