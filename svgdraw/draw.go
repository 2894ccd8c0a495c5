// Implements the assembly of drawings: paths described by
// directives and modifiers, sharing a namespace of resources
// (gradients, clip paths, images), are fitted into a square
// view box and rendered as an abstract SVG tree.
package svgdraw

import (
	"fmt"

	"github.com/benoitkugler/svgcompose/internal/logx"
	"github.com/benoitkugler/svgcompose/svgpath"
)

const svgNamespace = "http://www.w3.org/2000/svg"

// Options configures a Canvas.
type Options struct {
	// Defs are the resources of the drawing, named by their key.
	Defs map[string]Resource
	// Attributes are set on the root <svg> element.
	Attributes Attributes
	// Children are added after the paths, as is.
	Children []*Node
	// IDs provides the drawing identifiers. Default to DefaultIDs.
	IDs IDGenerator
}

// DrawFunc builds the render tree of a drawing from a sequence of
// Directives, each one optionally followed by its PathOptions.
type DrawFunc func(args ...Arg) (*Node, error)

// SVG returns a function building drawings named `name`.
func SVG(name string, opts Options) DrawFunc {
	canvas := New(name, opts)
	return func(args ...Arg) (*Node, error) {
		dr, err := canvas.Draw(args...)
		if err != nil {
			return nil, err
		}
		return dr.Root, nil
	}
}

// Canvas assembles drawings sharing the same options.
// The resources in Defs are renamed after their key when the canvas
// is created, so a resource should not be shared between canvas
// using different keys.
// Draw may be called concurrently.
type Canvas struct {
	name string
	opts Options
	defs *Namespace
}

func New(name string, opts Options) *Canvas {
	if name == "" {
		name = "svg"
	}
	if opts.IDs == nil {
		opts.IDs = DefaultIDs
	}
	return &Canvas{name: name, opts: opts, defs: NewNamespace(opts.Defs)}
}

// Drawing is the result of an assembly.
type Drawing struct {
	Name      string // name of the canvas
	ID        string // unique drawing identifier, suffixing every element id
	Namespace *Namespace
	Paths     []*Path
	Bounds    svgpath.Bounds
	ViewBox   svgpath.ViewBox
	Root      *Node
}

// Markup returns the SVG markup of the drawing.
func (dr *Drawing) Markup() (string, error) { return dr.Root.Markup() }

type pathGroup struct {
	dirs Directives
	opts PathOptions
}

// pairArgs groups each Directives with the PathOptions following it.
func pairArgs(args []Arg) []pathGroup {
	var (
		groups     []pathGroup
		hasOptions bool
	)
	for i, arg := range args {
		switch arg := arg.(type) {
		case Directives:
			groups = append(groups, pathGroup{dirs: arg})
			hasOptions = false
		case PathOptions:
			if len(groups) == 0 || hasOptions {
				logx.Logger().Warn("svgdraw: path options not following directives are ignored", "argument", i)
				continue
			}
			groups[len(groups)-1].opts = arg
			hasOptions = true
		}
	}
	return groups
}

// Draw assembles a drawing:
//   - a new drawing id is generated and the namespace built;
//   - suppliers are resolved with dimensions computed from the literal directives;
//   - directives are normalized and modifiers applied;
//   - the final bounds give the view box and the dimensions used by
//     deferred attributes and resources.
func (c *Canvas) Draw(args ...Arg) (*Drawing, error) {
	dr := &Drawing{Name: c.name, ID: c.opts.IDs.NextID()}
	ns := c.defs.clone()
	dr.Namespace = ns

	groups := pairArgs(args)

	var literals []svgpath.Point
	for _, g := range groups {
		literals = append(literals, svgpath.CollectPoints(g.dirs.literals())...)
	}
	ns.setDimensions(svgpath.ComputeBounds(literals))

	var points []svgpath.Point
	for i, g := range groups {
		name := g.opts.Name
		if name == "" {
			name = defaultPathName(i)
		}
		dirs, err := g.dirs.build(ns, g.opts.Modifiers)
		if err != nil {
			return nil, fmt.Errorf("path %s: %w", name, err)
		}
		points = append(points, svgpath.CollectPoints(dirs)...)
		dr.Paths = append(dr.Paths, NewPath(name, dirs, g.opts.Attributes))
	}

	dr.Bounds = svgpath.ComputeBounds(points)
	dr.ViewBox = dr.Bounds.ViewBox()
	ns.setDimensions(dr.Bounds)

	root, err := c.render(dr)
	if err != nil {
		return nil, err
	}
	dr.Root = root
	return dr, nil
}

func (c *Canvas) render(dr *Drawing) (*Node, error) {
	ns := dr.Namespace
	root := NewNode("svg",
		"id", elementID(c.name, dr.ID),
		"viewBox", dr.ViewBox.String(),
		"xmlns", svgNamespace,
	)
	root.Attrs = append(root.Attrs, c.opts.Attributes.resolve(dr.ID, ns, "id", "viewBox", "xmlns")...)

	defs := NewNode("defs")
	for _, name := range ns.Names() {
		res, _ := ns.Lookup(name)
		node, err := res.ToRenderNode(dr.ID, ns)
		if err != nil {
			return nil, fmt.Errorf("resource %s: %w", name, err)
		}
		if node != nil {
			defs.Children = append(defs.Children, node)
		}
	}
	if len(defs.Children) != 0 {
		root.Children = append(root.Children, defs)
	}

	for _, path := range dr.Paths {
		node, err := path.ToRenderNode(dr.ID, ns)
		if err != nil {
			return nil, err
		}
		root.Children = append(root.Children, node)
	}
	for _, child := range c.opts.Children {
		if child != nil {
			root.Children = append(root.Children, child)
		}
	}
	return root, nil
}
