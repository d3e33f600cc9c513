package xmlnode

import (
	"github.com/chrisuehlinger/xmlnode/dom"
)

// Element is an element node: a name, attributes and children.
type Element struct {
	container
}

func newElement(n *dom.Node) *Element {
	return &Element{container{base{n}}}
}

func (e *Element) native() *dom.Element {
	return (*dom.Element)(e.n)
}

// Name returns the element name as written, including any prefix.
func (e *Element) Name() string {
	return e.native().TagName()
}

// Attributes returns a snapshot of the element's attributes.
func (e *Element) Attributes() map[string]string {
	attrs := e.native().Attributes()
	m := make(map[string]string, attrs.Length())
	for i := 0; i < attrs.Length(); i++ {
		attr := attrs.Item(i)
		m[attr.Name()] = attr.Value()
	}
	return m
}

// Attribute returns the value of the named attribute.
func (e *Element) Attribute(name string) (string, bool) {
	attr := e.native().GetAttributeNode(name)
	if attr == nil {
		return "", false
	}
	return attr.Value(), true
}

// HasAttribute reports whether the named attribute is present.
func (e *Element) HasAttribute(name string) bool {
	return e.native().HasAttribute(name)
}

// SetAttribute creates or overwrites an attribute. The attribute node is
// created by the element's owner document, and value is rendered with
// FormatValue.
func (e *Element) SetAttribute(name string, value any) error {
	doc, err := e.Owner()
	if err != nil {
		return err
	}
	attr, err := doc.NativeDocument().CreateAttributeWithError(name)
	if err != nil {
		return &Error{Op: "set attribute", Kind: ErrInvalidName, Err: err}
	}
	attr.SetValue(FormatValue(value))
	if _, err := e.native().SetAttributeNode(attr); err != nil {
		return &Error{Op: "set attribute", Kind: ErrIllegalOperation, Err: err}
	}
	return nil
}

// RemoveAttribute removes the named attribute. Removing an absent
// attribute does nothing.
func (e *Element) RemoveAttribute(name string) {
	e.native().RemoveAttribute(name)
}
