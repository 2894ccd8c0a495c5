// Provides parsing of SVG images, such as the ones
// produced by svgdraw, into an abstract representation,
// which can then be consumed by painting drivers.
// See for example svgraster or svgpdf.
package svgicon

import (
	"encoding/xml"
	"errors"
	"io"
	"os"

	"github.com/benoitkugler/svgcompose/svgpath"
	"github.com/srwiley/rasterx"
	"golang.org/x/net/html/charset"
)

// Matrix2D is an affine transform.
type Matrix2D = rasterx.Matrix2D

// Identity is the identity transform.
var Identity = rasterx.Identity

// PathStyle is the resolved style of a path, after
// inheritance from its ancestors.
type PathStyle struct {
	FillOpacity, LineOpacity float64
	LineWidth                float64
	UseNonZeroWinding        bool

	Join                    JoinOptions
	Dash                    DashOptions
	FillerColor, LinerColor Pattern // either PlainColor or Gradient

	// ClipPath is the id of the clip path restricting the painted area,
	// or empty.
	ClipPath string

	transform Matrix2D // user space to view box
}

// Transform returns the user space transform of the style.
func (s PathStyle) Transform() Matrix2D { return s.transform }

// SvgPath is a shape with its style.
type SvgPath struct {
	Path  []svgpath.Directive
	Style PathStyle
}

// Bounds defines a bounding box, such as a viewport
// or a path extent.
type Bounds struct{ X, Y, W, H float64 }

// ClipPath is a set of paths whose union restricts the painted area.
type ClipPath struct {
	ID    string
	Paths []SvgPath
}

// Image is an <image> element. Images are not painted by the drivers.
type Image struct {
	ID         string
	Href       string
	X, Y, W, H float64
	Transform  Matrix2D
}

// SvgIcon is a parsed SVG document, ready to be painted
// with Draw.
type SvgIcon struct {
	ID           string // of the root element
	ViewBox      Bounds
	Titles       []string
	Descriptions []string
	SVGPaths     []SvgPath
	Images       []Image
	// Transform maps the view box to the output, see SetTarget.
	Transform Matrix2D

	Width, Height string // raw attributes of the root element

	grads map[string]*Gradient
	clips map[string]*ClipPath
	defs  map[string][]definition
}

// Gradient returns the gradient with the given id.
func (s *SvgIcon) Gradient(id string) (Gradient, bool) {
	g, ok := s.grads[id]
	if !ok {
		return Gradient{}, false
	}
	return *g, true
}

// ClipPath returns the clip path with the given id.
func (s *SvgIcon) ClipPath(id string) (*ClipPath, bool) {
	c, ok := s.clips[id]
	return c, ok
}

// ReadIconStream parses an SVG document. Only a subset of SVG is
// supported: basic shapes, paths, groups, <defs> and <use>, gradients
// and clip paths. `errMode` selects how unsupported content is reported.
func ReadIconStream(stream io.Reader, errMode ErrorMode) (*SvgIcon, error) {
	icon := &SvgIcon{
		defs:      make(map[string][]definition),
		grads:     make(map[string]*Gradient),
		clips:     make(map[string]*ClipPath),
		Transform: Identity,
	}
	cursor := &iconCursor{styleStack: []PathStyle{DefaultStyle}, icon: icon, errorMode: errMode}
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel

	empty := true
	for {
		t, err := decoder.Token()
		if err == io.EOF {
			break
		} else if err != nil {
			return icon, err
		}

		switch t := t.(type) {
		case xml.StartElement:
			empty = false
			if err = cursor.pushStyle(t.Attr); err != nil {
				return icon, err
			}
			if err = cursor.readStartElement(t); err != nil {
				return icon, err
			}
		case xml.EndElement:
			cursor.readEndElement(t.Name.Local)
		case xml.CharData:
			if texts := cursor.text; texts != nil {
				(*texts)[len(*texts)-1] += string(t)
			}
		}
	}
	if empty {
		return nil, errors.New("invalid svg xml icon: no element found")
	}
	return icon, nil
}

// ReadIcon is the same as ReadIconStream, for a file.
func ReadIcon(iconFile string, errMode ErrorMode) (*SvgIcon, error) {
	f, err := os.Open(iconFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadIconStream(f, errMode)
}
