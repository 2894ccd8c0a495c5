package svgdraw

import (
	"bytes"
	"encoding/xml"
	"io"
)

// Attr is one rendered attribute.
type Attr struct {
	Name, Value string
}

// Node is an element of the render tree, independent of any
// UI framework. It serializes to SVG markup.
type Node struct {
	Kind     string // element name, such as "path"
	Attrs    []Attr
	Children []*Node
	Text     string // optional character data, written before the children
}

// NewNode returns a node with the given attributes, given as name, value pairs.
func NewNode(kind string, attrs ...string) *Node {
	n := &Node{Kind: kind}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attrs = append(n.Attrs, Attr{attrs[i], attrs[i+1]})
	}
	return n
}

// Attr returns the value of the attribute `name`.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Find returns the descendants of n (n included) with the given kind,
// in document order.
func (n *Node) Find(kind string) []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(node *Node) {
		if node == nil {
			return
		}
		if node.Kind == kind {
			out = append(out, node)
		}
		for _, c := range node.Children {
			walk(c)
		}
	}
	walk(n)
	return out
}

func (n *Node) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start = xml.StartElement{Name: xml.Name{Local: n.Kind}}
	for _, a := range n.Attrs {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: a.Name}, Value: a.Value})
	}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if n.Text != "" {
		if err := e.EncodeToken(xml.CharData(n.Text)); err != nil {
			return err
		}
	}
	for _, c := range n.Children {
		if c == nil {
			continue
		}
		if err := c.MarshalXML(e, xml.StartElement{}); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

// Encode writes the markup of the tree to w.
// If indent is not empty, each element is written on its own line.
func (n *Node) Encode(w io.Writer, indent string) error {
	enc := xml.NewEncoder(w)
	if indent != "" {
		enc.Indent("", indent)
	}
	if err := enc.Encode(n); err != nil {
		return err
	}
	return enc.Flush()
}

// Markup returns the compact SVG markup of the tree.
func (n *Node) Markup() (string, error) {
	var buf bytes.Buffer
	if err := n.Encode(&buf, ""); err != nil {
		return "", err
	}
	return buf.String(), nil
}
