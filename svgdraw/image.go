package svgdraw

// Image is a referencable <image> resource.
type Image struct {
	name  string
	href  string
	attrs Attributes
}

func NewImage(href string) *Image { return &Image{name: "unnamed-svg-image", href: href} }

// WithAttributes sets additional attributes, such as width and height.
func (img *Image) WithAttributes(attrs Attributes) *Image {
	img.attrs = attrs
	return img
}

func (img *Image) Href() string { return img.href }

func (img *Image) ReferenceURL() string   { return img.name }
func (img *Image) AssignName(name string) { img.name = name }

func (img *Image) ToRenderNode(drawingID string, ns *Namespace) (*Node, error) {
	node := NewNode("image", "id", elementID(img.name, drawingID), "href", img.href)
	node.Attrs = append(node.Attrs, img.attrs.resolve(drawingID, ns, "id", "href")...)
	return node, nil
}
