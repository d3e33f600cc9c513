package dom

import (
	"strings"
)

// Document represents the root of a native document tree.
type Document Node

// Content types a Document can carry.
const (
	ContentTypeXML  = "application/xml"
	ContentTypeHTML = "text/html"
)

// NewDocument creates a new empty XML Document.
func NewDocument() *Document {
	return newDocument(ContentTypeXML)
}

// NewHTMLDocument creates a new empty Document whose content type is text/html.
func NewHTMLDocument() *Document {
	return newDocument(ContentTypeHTML)
}

func newDocument(contentType string) *Document {
	node := newNode(DocumentNode, "#document", nil)
	node.documentData = &documentData{
		contentType: contentType,
		xmlVersion:  "1.0",
	}
	doc := (*Document)(node)
	node.ownerDoc = doc
	return doc
}

// AsNode returns the underlying Node.
func (d *Document) AsNode() *Node {
	return (*Node)(d)
}

// NodeType returns DocumentNode (9).
func (d *Document) NodeType() NodeType {
	return DocumentNode
}

// NodeName returns "#document".
func (d *Document) NodeName() string {
	return "#document"
}

// ContentType returns the document's content type.
func (d *Document) ContentType() string {
	return d.AsNode().documentData.contentType
}

// IsHTML returns true if this is an HTML document.
func (d *Document) IsHTML() bool {
	return d.ContentType() == ContentTypeHTML
}

// XMLVersion returns the version from the XML declaration, "1.0" by default.
func (d *Document) XMLVersion() string {
	return d.AsNode().documentData.xmlVersion
}

// InputEncoding returns the encoding named by the XML declaration the
// document was parsed from, or the empty string.
func (d *Document) InputEncoding() string {
	return d.AsNode().documentData.encoding
}

// Doctype returns the DocumentType node, or nil if there is none.
func (d *Document) Doctype() *Node {
	for child := d.AsNode().firstChild; child != nil; child = child.nextSibling {
		if child.nodeType == DocumentTypeNode {
			return child
		}
	}
	return nil
}

// DocumentElement returns the root element of the document.
func (d *Document) DocumentElement() *Element {
	for child := d.AsNode().firstChild; child != nil; child = child.nextSibling {
		if child.nodeType == ElementNode {
			return (*Element)(child)
		}
	}
	return nil
}

// AppendChildWithError appends child to the document.
func (d *Document) AppendChildWithError(child *Node) (*Node, error) {
	return d.AsNode().AppendChildWithError(child)
}

// CreateElement creates a new element with the given tag name.
// This method ignores errors. Use CreateElementWithError for proper error handling.
func (d *Document) CreateElement(tagName string) *Element {
	el, _ := d.CreateElementWithError(tagName)
	return el
}

// CreateElementWithError creates a new element owned by this document.
// Returns an InvalidCharacterError if the tag name is not a valid XML Name.
// HTML documents store tag names lowercased; XML documents preserve case.
func (d *Document) CreateElementWithError(tagName string) (*Element, error) {
	if !isValidXMLName(tagName) {
		return nil, ErrInvalidCharacter("The string contains invalid characters.")
	}
	if d.IsHTML() {
		tagName = strings.ToLower(tagName)
	}
	return newElement(tagName, d), nil
}

// CreateTextNode creates a new text node with the given data.
func (d *Document) CreateTextNode(data string) *Node {
	node := newNode(TextNode, "#text", d)
	node.nodeValue = &data
	return node
}

// CreateComment creates a new comment node with the given data.
func (d *Document) CreateComment(data string) *Node {
	node := newNode(CommentNode, "#comment", d)
	node.nodeValue = &data
	return node
}

// CreateCDATASectionWithError creates a new CDATASection node with the given data.
// Returns an error if data contains "]]>".
func (d *Document) CreateCDATASectionWithError(data string) (*Node, error) {
	if strings.Contains(data, "]]>") {
		return nil, ErrInvalidCharacter("CDATA section data cannot contain ']]>'.")
	}
	node := newNode(CDATASectionNode, "#cdata-section", d)
	node.nodeValue = &data
	return node, nil
}

// CreateProcessingInstructionWithError creates a new ProcessingInstruction node.
// Returns an error if target is not a valid name or data contains "?>".
func (d *Document) CreateProcessingInstructionWithError(target, data string) (*Node, error) {
	if !isValidXMLName(target) {
		return nil, ErrInvalidCharacter("The target is not a valid XML name.")
	}
	if strings.Contains(data, "?>") {
		return nil, ErrInvalidCharacter("Processing instruction data cannot contain '?>'.")
	}
	node := newNode(ProcessingInstructionNode, target, d)
	node.nodeValue = &data
	return node, nil
}

// CreateDocumentType creates a DocumentType node owned by this document.
func (d *Document) CreateDocumentType(name, publicId, systemId string) *Node {
	node := newNode(DocumentTypeNode, name, d)
	node.docTypeData = &docTypeData{
		name:     name,
		publicId: publicId,
		systemId: systemId,
	}
	return node
}

// CreateAttribute creates a new attribute owned by this document.
// This method ignores errors. Use CreateAttributeWithError for proper error handling.
func (d *Document) CreateAttribute(name string) *Attr {
	attr, _ := d.CreateAttributeWithError(name)
	return attr
}

// CreateAttributeWithError creates a new, empty attribute owned by this document.
// Returns an InvalidCharacterError if name is not a valid XML Name.
func (d *Document) CreateAttributeWithError(name string) (*Attr, error) {
	if !isValidXMLName(name) {
		return nil, ErrInvalidCharacter("The string contains invalid characters.")
	}
	if d.IsHTML() {
		name = strings.ToLower(name)
	}
	attr := NewAttr(name, "")
	attr.ownerDoc = d
	return attr, nil
}

// isValidXMLName reports whether s matches the XML Name production,
// with ':' allowed as an ordinary name character.
func isValidXMLName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if !isNameStartChar(r) {
				return false
			}
			continue
		}
		if !isNameChar(r) {
			return false
		}
	}
	return true
}

func isNameStartChar(r rune) bool {
	switch {
	case r == ':' || r == '_':
		return true
	case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
		return true
	case r >= 0xC0 && r <= 0xD6, r >= 0xD8 && r <= 0xF6, r >= 0xF8 && r <= 0x2FF:
		return true
	case r >= 0x370 && r <= 0x37D, r >= 0x37F && r <= 0x1FFF:
		return true
	case r >= 0x200C && r <= 0x200D, r >= 0x2070 && r <= 0x218F:
		return true
	case r >= 0x2C00 && r <= 0x2FEF, r >= 0x3001 && r <= 0xD7FF:
		return true
	case r >= 0xF900 && r <= 0xFDCF, r >= 0xFDF0 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= 0xEFFFF:
		return true
	}
	return false
}

func isNameChar(r rune) bool {
	if isNameStartChar(r) {
		return true
	}
	switch {
	case r == '-' || r == '.' || r == 0xB7:
		return true
	case r >= '0' && r <= '9':
		return true
	case r >= 0x0300 && r <= 0x036F, r >= 0x203F && r <= 0x2040:
		return true
	}
	return false
}
