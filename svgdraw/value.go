package svgdraw

import (
	"sort"

	"github.com/benoitkugler/svgcompose/internal/logx"
)

// Value is an attribute value: either a literal Text
// or a Ref to a resource of the drawing.
type Value interface {
	isValue()
}

// Text is a literal attribute value.
type Text string

// Ref references a resource of the namespace.
// It is rendered as `url(#name-drawingID)`.
type Ref struct {
	res  Referencable
	name string
}

// RefTo references `res`, which must be declared in the drawing
// definitions to be resolved.
func RefTo(res Referencable) Ref { return Ref{res: res} }

// RefName references the resource declared under `name`.
func RefName(name string) Ref { return Ref{name: name} }

func (Text) isValue() {}
func (Ref) isValue()  {}

// Name returns the referenced name.
func (r Ref) Name() string {
	if r.res != nil {
		return r.res.ReferenceURL()
	}
	return r.name
}

// Attributes maps attribute names to values.
type Attributes map[string]Value

// Deferrable is either a value known upfront or
// a function computing it from the drawing namespace.
// The zero value resolves to the zero value of T.
type Deferrable[T any] struct {
	value T
	fn    func(ns *Namespace) T
}

// Static wraps a known value.
func Static[T any](v T) Deferrable[T] { return Deferrable[T]{value: v} }

// Deferred wraps a function called when the drawing is assembled.
func Deferred[T any](fn func(ns *Namespace) T) Deferrable[T] { return Deferrable[T]{fn: fn} }

// Resolve returns the wrapped value, calling the function
// if needed with `ns`.
func (d Deferrable[T]) Resolve(ns *Namespace) T {
	if d.fn != nil {
		return d.fn(ns)
	}
	return d.value
}

// resolveValue renders one value. References to an unknown
// resource, or to a resource without element (such as Dimensions),
// fall back to their raw name.
func resolveValue(v Value, drawingID string, ns *Namespace) string {
	switch v := v.(type) {
	case Text:
		return string(v)
	case Ref:
		name := v.Name()
		if res, ok := ns.Lookup(name); ok && isReferencable(res) {
			return "url(#" + elementID(name, drawingID) + ")"
		}
		logx.Logger().Debug("svgdraw: reference to an undeclared resource", "name", name, "drawing", drawingID)
		return name
	}
	return ""
}

// resolve renders the attributes, sorted by name.
// Names in `skip` are reserved and ignored.
func (attrs Attributes) resolve(drawingID string, ns *Namespace, skip ...string) []Attr {
	keys := make([]string, 0, len(attrs))
outer:
	for k, v := range attrs {
		if v == nil {
			continue
		}
		for _, s := range skip {
			if k == s {
				logx.Logger().Debug("svgdraw: reserved attribute ignored", "name", k)
				continue outer
			}
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Attr, len(keys))
	for i, k := range keys {
		out[i] = Attr{k, resolveValue(attrs[k], drawingID, ns)}
	}
	return out
}

func isReferencable(res Resource) bool {
	_, ok := res.(Referencable)
	return ok
}
