package xmlnode

import (
	"github.com/chrisuehlinger/xmlnode/dom"
)

// Document is the root of a tree. Its only element child is the root element.
type Document struct {
	container
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return FromNative(dom.NewDocument())
}

// FromNative wraps an existing native document.
func FromNative(doc *dom.Document) *Document {
	if doc == nil {
		return nil
	}
	return &Document{container{base{doc.AsNode()}}}
}

// NativeDocument returns the wrapped native document.
func (d *Document) NativeDocument() *dom.Document {
	return (*dom.Document)(d.n)
}

// Root returns the document element.
func (d *Document) Root() (*Element, bool) {
	root := d.NativeDocument().DocumentElement()
	if root == nil {
		return nil, false
	}
	return newElement(root.AsNode()), true
}

// NewElement creates an element owned by d. The element is not attached;
// append it where it belongs.
func (d *Document) NewElement(name string) (*Element, error) {
	el, err := d.NativeDocument().CreateElementWithError(name)
	if err != nil {
		return nil, &Error{Op: "new element", Kind: ErrInvalidName, Err: err}
	}
	return newElement(el.AsNode()), nil
}

// NewText creates an unattached text node owned by d.
func (d *Document) NewText(value string) *Text {
	return &Text{base{d.NativeDocument().CreateTextNode(value)}}
}

// NewComment creates an unattached comment owned by d.
func (d *Document) NewComment(value string) *Comment {
	return &Comment{base{d.NativeDocument().CreateComment(value)}}
}
