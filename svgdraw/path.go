package svgdraw

import (
	"fmt"
	"strconv"

	"github.com/benoitkugler/svgcompose/svgpath"
)

// Arg is an argument of a drawing function: either Directives,
// starting a new path, or PathOptions, configuring the preceding one.
type Arg interface {
	isArg()
}

// Step is one entry of a path description: a literal list
// of directives or a supplier resolved against the namespace.
type Step struct {
	lit    []svgpath.Directive
	supply func(ns *Namespace) []svgpath.Directive
}

// Lit returns a literal step.
func Lit(dirs ...svgpath.Directive) Step { return Step{lit: dirs} }

// Supply returns a step computed when the drawing is assembled.
// `fn` may use the drawing Dimensions and other resources.
func Supply(fn func(ns *Namespace) []svgpath.Directive) Step { return Step{supply: fn} }

func (s Step) isSupplier() bool { return s.supply != nil }

// Directives is the description of one path.
type Directives []Step

// Dirs is a shortcut for a path made of one literal step.
func Dirs(dirs ...svgpath.Directive) Directives { return Directives{Lit(dirs...)} }

// literals returns the directives of the literal steps only.
func (ds Directives) literals() []svgpath.Directive {
	var out []svgpath.Directive
	for _, s := range ds {
		if !s.isSupplier() {
			out = append(out, s.lit...)
		}
	}
	return out
}

// resolve flattens the steps, calling the suppliers with `ns`.
func (ds Directives) resolve(ns *Namespace) []svgpath.Directive {
	var out []svgpath.Directive
	for _, s := range ds {
		if s.isSupplier() {
			out = append(out, s.supply(ns)...)
		} else {
			out = append(out, s.lit...)
		}
	}
	return out
}

// PathOptions configures the path described by the preceding Directives.
type PathOptions struct {
	Name       string // optional, defaults to path<index>
	Attributes Deferrable[Attributes]
	Modifiers  []svgpath.Modifier
}

func (Directives) isArg()  {}
func (PathOptions) isArg() {}

// build resolves, normalizes and modifies the directives.
func (ds Directives) build(ns *Namespace, mods []svgpath.Modifier) ([]svgpath.Directive, error) {
	dirs := svgpath.Normalize(ds.resolve(ns))
	return svgpath.Apply(dirs, mods...)
}

// Path is a finalized path of a drawing.
type Path struct {
	name  string
	dirs  []svgpath.Directive
	attrs Deferrable[Attributes]
}

// NewPath returns a path with the given directives, which are used as is.
func NewPath(name string, dirs []svgpath.Directive, attrs Deferrable[Attributes]) *Path {
	return &Path{name: name, dirs: append([]svgpath.Directive(nil), dirs...), attrs: attrs}
}

func defaultPathName(index int) string { return "path" + strconv.Itoa(index) }

func (p *Path) Name() string { return p.name }

// Directives returns a copy of the path directives.
func (p *Path) Directives() []svgpath.Directive { return append([]svgpath.Directive(nil), p.dirs...) }

// Data returns the value of the `d` attribute.
func (p *Path) Data() string { return svgpath.Join(p.dirs) }

// ToRenderNode returns a <path> element. Attributes referencing
// resources are resolved against `ns`.
func (p *Path) ToRenderNode(drawingID string, ns *Namespace) (*Node, error) {
	if len(p.dirs) == 0 {
		return nil, fmt.Errorf("path %s has no directive", p.name)
	}
	node := NewNode("path", "id", elementID(p.name, drawingID), "d", p.Data())
	node.Attrs = append(node.Attrs, p.attrs.Resolve(ns).resolve(drawingID, ns, "id", "d")...)
	return node, nil
}
