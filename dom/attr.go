package dom

// Attr represents an attribute of an Element.
type Attr struct {
	ownerElement *Element
	ownerDoc     *Document
	name         string
	value        string
}

// NewAttr creates a new Attr with the given name and value. The attribute has
// no owner document; Document.CreateAttribute creates an owned one.
func NewAttr(name, value string) *Attr {
	return &Attr{
		name:  name,
		value: value,
	}
}

// NodeType returns AttributeNode (2).
func (a *Attr) NodeType() NodeType {
	return AttributeNode
}

// NodeName returns the attribute name.
func (a *Attr) NodeName() string {
	return a.name
}

// Name returns the qualified name of the attribute.
func (a *Attr) Name() string {
	return a.name
}

// Value returns the attribute value.
func (a *Attr) Value() string {
	return a.value
}

// SetValue sets the attribute value. The change is visible through the owner
// element immediately since the element stores this Attr.
func (a *Attr) SetValue(value string) {
	a.value = value
}

// OwnerElement returns the element that owns this attribute.
func (a *Attr) OwnerElement() *Element {
	return a.ownerElement
}

// OwnerDocument returns the Document that owns this attribute: the document
// it was created by, or failing that the owner element's document.
func (a *Attr) OwnerDocument() *Document {
	if a.ownerDoc != nil {
		return a.ownerDoc
	}
	if a.ownerElement != nil {
		return a.ownerElement.AsNode().OwnerDocument()
	}
	return nil
}
