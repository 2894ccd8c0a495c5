package svgdraw

import "fmt"

// ClipPath is a referencable <clipPath> resource wrapping one path.
// Its directives are resolved when the drawing is assembled, so that
// suppliers and attributes may use the drawing namespace.
type ClipPath struct {
	name string
	dirs Directives
	opts PathOptions
}

// NewClipPath returns a clip path. `opts.Modifiers` are applied to
// the directives, and `opts.Attributes` are set on the inner path.
func NewClipPath(dirs Directives, opts PathOptions) *ClipPath {
	return &ClipPath{name: "unnamed-clip-path-" + DefaultIDs.NextID(), dirs: dirs, opts: opts}
}

func (cp *ClipPath) ReferenceURL() string   { return cp.name }
func (cp *ClipPath) AssignName(name string) { cp.name = name }

// Path returns the inner path, built against `ns`.
func (cp *ClipPath) Path(ns *Namespace) (*Path, error) {
	dirs, err := cp.dirs.build(ns, cp.opts.Modifiers)
	if err != nil {
		return nil, fmt.Errorf("clip path %s: %w", cp.name, err)
	}
	name := cp.opts.Name
	if name == "" {
		name = cp.name + "-path"
	}
	return NewPath(name, dirs, cp.opts.Attributes), nil
}

func (cp *ClipPath) ToRenderNode(drawingID string, ns *Namespace) (*Node, error) {
	path, err := cp.Path(ns)
	if err != nil {
		return nil, err
	}
	inner, err := path.ToRenderNode(drawingID, ns)
	if err != nil {
		return nil, err
	}
	node := NewNode("clipPath", "id", elementID(cp.name, drawingID))
	node.Children = []*Node{inner}
	return node, nil
}
