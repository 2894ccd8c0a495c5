package svgicon

import (
	"math"

	sp "github.com/benoitkugler/svgcompose/svgpath"
)

// This file reduces the basic SVG shapes to directives.

// addRoundRect adds a rectangle from (minX, minY) to (maxX, maxY)
// with corners rounded by the radii rx, ry.
// A zero radius takes the value of the other one.
func (c *iconCursor) addRoundRect(minX, minY, maxX, maxY, rx, ry float64) {
	if rx <= 0 {
		rx = ry
	}
	if ry <= 0 {
		ry = rx
	}
	rx = math.Min(rx, (maxX-minX)/2)
	ry = math.Min(ry, (maxY-minY)/2)
	if rx <= 0 || ry <= 0 {
		c.path = append(c.path,
			sp.M(minX, minY), sp.L(maxX, minY), sp.L(maxX, maxY), sp.L(minX, maxY), sp.E())
		return
	}
	c.path = append(c.path,
		sp.M(minX+rx, minY),
		sp.L(maxX-rx, minY),
		sp.A(rx, ry, 0, false, true, maxX, minY+ry),
		sp.L(maxX, maxY-ry),
		sp.A(rx, ry, 0, false, true, maxX-rx, maxY),
		sp.L(minX+rx, maxY),
		sp.A(rx, ry, 0, false, true, minX, maxY-ry),
		sp.L(minX, minY+ry),
		sp.A(rx, ry, 0, false, true, minX+rx, minY),
		sp.E(),
	)
}

// ellipseAt adds a full ellipse, as two half arcs.
func (c *iconCursor) ellipseAt(cx, cy, rx, ry float64) {
	c.path = append(c.path,
		sp.M(cx+rx, cy),
		sp.A(rx, ry, 0, false, true, cx-rx, cy),
		sp.A(rx, ry, 0, false, true, cx+rx, cy),
		sp.E(),
	)
}

// addPolyline adds the points stored in c.points
func (c *iconCursor) addPolyline(closed bool) {
	if len(c.points) < 4 {
		return
	}
	c.path = append(c.path, sp.M(c.points[0], c.points[1]))
	for i := 2; i+1 < len(c.points); i += 2 {
		c.path = append(c.path, sp.L(c.points[i], c.points[i+1]))
	}
	if closed {
		c.path = append(c.path, sp.E())
	}
}

// compilePath parses the `d` attribute of a <path>.
func (c *iconCursor) compilePath(d string) error {
	dirs, err := sp.ParseData(d)
	if err != nil {
		return err
	}
	c.path = append(c.path, dirs...)
	return nil
}
