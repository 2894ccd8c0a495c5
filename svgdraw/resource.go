package svgdraw

import (
	"sort"

	"github.com/benoitkugler/svgcompose/internal/logx"
	"github.com/benoitkugler/svgcompose/svgpath"
)

// Resource is an entry of a drawing namespace.
type Resource interface {
	// ToRenderNode returns the element to put in the <defs> section.
	// A nil node means the resource is not rendered.
	ToRenderNode(drawingID string, ns *Namespace) (*Node, error)
}

// Referencable is a Resource which may be referenced by attributes
// through its name.
type Referencable interface {
	Resource
	// ReferenceURL returns the current name of the resource.
	ReferenceURL() string
	// AssignName is called with the key of the resource in the definitions.
	AssignName(name string)
}

// DimensionsKey is the reserved namespace entry holding the drawing Dimensions.
const DimensionsKey = "dimensions"

// Dimensions describes the geometry of a drawing.
// It is always present in the namespace, and never rendered.
type Dimensions struct {
	Bounds        svgpath.Bounds
	Width, Height float64
	ViewBox       svgpath.ViewBox
}

func newDimensions(b svgpath.Bounds) Dimensions {
	return Dimensions{Bounds: b, Width: b.Width(), Height: b.Height(), ViewBox: b.ViewBox()}
}

func (Dimensions) ToRenderNode(string, *Namespace) (*Node, error) { return nil, nil }

// Namespace stores the named resources of one drawing.
type Namespace struct {
	resources map[string]Resource
	names     []string // sorted
}

// NewNamespace registers the definitions, naming the referencable ones
// after their key. The reserved DimensionsKey entry is replaced by
// the default dimensions.
func NewNamespace(defs map[string]Resource) *Namespace {
	ns := &Namespace{resources: make(map[string]Resource, len(defs)+1)}
	for name, res := range defs {
		if res == nil {
			continue
		}
		if name == DimensionsKey {
			logx.Logger().Warn("svgdraw: reserved resource name, definition ignored", "name", name)
			continue
		}
		if ref, ok := res.(Referencable); ok {
			ref.AssignName(name)
		}
		ns.resources[name] = res
		ns.names = append(ns.names, name)
	}
	ns.resources[DimensionsKey] = newDimensions(svgpath.DefaultBounds)
	ns.names = append(ns.names, DimensionsKey)
	sort.Strings(ns.names)
	return ns
}

// clone returns a namespace with the same resources, whose
// dimensions may be changed independently.
func (ns *Namespace) clone() *Namespace {
	out := &Namespace{resources: make(map[string]Resource, len(ns.resources)), names: ns.names}
	for name, res := range ns.resources {
		out.resources[name] = res
	}
	return out
}

// Lookup returns the resource registered under `name`.
func (ns *Namespace) Lookup(name string) (Resource, bool) {
	if ns == nil {
		return nil, false
	}
	res, ok := ns.resources[name]
	return res, ok
}

// Names returns the sorted names of the resources.
func (ns *Namespace) Names() []string {
	if ns == nil {
		return nil
	}
	return append([]string(nil), ns.names...)
}

// Dimensions returns the current drawing dimensions.
func (ns *Namespace) Dimensions() Dimensions {
	if ns == nil {
		return newDimensions(svgpath.DefaultBounds)
	}
	d, _ := ns.resources[DimensionsKey].(Dimensions)
	return d
}

func (ns *Namespace) setDimensions(b svgpath.Bounds) {
	ns.resources[DimensionsKey] = newDimensions(b)
}
