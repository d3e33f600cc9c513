package dom

// Element represents an element in the native document tree.
type Element Node

// newElement allocates an element node. ownerDoc may be nil.
func newElement(tagName string, ownerDoc *Document) *Element {
	node := newNode(ElementNode, tagName, ownerDoc)
	node.elementData = &elementData{tagName: tagName}
	el := (*Element)(node)
	node.elementData.attributes = newNamedNodeMap(el)
	return el
}

// NewElement creates an element that belongs to no document. Its owner
// document is assigned when it is inserted into a document's tree.
func NewElement(tagName string) (*Element, error) {
	if !isValidXMLName(tagName) {
		return nil, ErrInvalidCharacter("The string contains invalid characters.")
	}
	return newElement(tagName, nil), nil
}

// AsNode returns the underlying Node.
func (e *Element) AsNode() *Node {
	return (*Node)(e)
}

// NodeType returns ElementNode (1).
func (e *Element) NodeType() NodeType {
	return ElementNode
}

// NodeName returns the tag name.
func (e *Element) NodeName() string {
	return e.AsNode().nodeName
}

// TagName returns the tag name of the element.
func (e *Element) TagName() string {
	return e.AsNode().elementData.tagName
}

// Attributes returns the NamedNodeMap of attributes.
func (e *Element) Attributes() *NamedNodeMap {
	return e.AsNode().elementData.attributes
}

// GetAttribute returns the value of the attribute with the given name,
// or the empty string. Use HasAttribute to tell absence from an empty value.
func (e *Element) GetAttribute(name string) string {
	return e.Attributes().GetValue(name)
}

// HasAttribute returns true if the element has an attribute with the given name.
func (e *Element) HasAttribute(name string) bool {
	return e.Attributes().Has(name)
}

// SetAttribute sets the value of the attribute with the given name.
// This method ignores errors. Use SetAttributeWithError for proper error handling.
func (e *Element) SetAttribute(name, value string) {
	_ = e.SetAttributeWithError(name, value)
}

// SetAttributeWithError sets the value of the attribute with the given name.
// Returns an InvalidCharacterError if the name is not a valid XML Name.
func (e *Element) SetAttributeWithError(name, value string) error {
	if !isValidXMLName(name) {
		return ErrInvalidCharacter("The string contains invalid characters.")
	}
	e.Attributes().SetValue(name, value)
	return nil
}

// GetAttributeNode returns the attribute node with the given name, or nil.
func (e *Element) GetAttributeNode(name string) *Attr {
	return e.Attributes().GetNamedItem(name)
}

// SetAttributeNode adds attr to the element, replacing any attribute with the
// same name. Returns the replaced attribute, if any.
func (e *Element) SetAttributeNode(attr *Attr) (*Attr, error) {
	return e.Attributes().SetNamedItem(attr)
}

// RemoveAttribute removes the attribute with the given name.
// Removing an absent attribute is a no-op.
func (e *Element) RemoveAttribute(name string) {
	e.Attributes().RemoveNamedItem(name)
}

// FirstElementChild returns the first child that is an element.
func (e *Element) FirstElementChild() *Element {
	for c := e.AsNode().firstChild; c != nil; c = c.nextSibling {
		if c.nodeType == ElementNode {
			return (*Element)(c)
		}
	}
	return nil
}

// ChildElementCount returns the number of children that are elements.
func (e *Element) ChildElementCount() int {
	count := 0
	for c := e.AsNode().firstChild; c != nil; c = c.nextSibling {
		if c.nodeType == ElementNode {
			count++
		}
	}
	return count
}

// AppendChildWithError appends child to the element.
func (e *Element) AppendChildWithError(child *Node) (*Node, error) {
	return e.AsNode().AppendChildWithError(child)
}

// TextContent returns the concatenated text of the element's descendants.
func (e *Element) TextContent() string {
	return e.AsNode().TextContent()
}
