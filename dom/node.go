package dom

import (
	"strings"
)

// Node is a node in the native document tree. Document, Element, and the
// character data nodes are all Nodes; the type-specific data hangs off the
// fields that match nodeType.
type Node struct {
	nodeType   NodeType
	nodeName   string
	nodeValue  *string // nil for Element, Document and DocumentType
	ownerDoc   *Document
	parentNode *Node
	childNodes *NodeList

	firstChild  *Node
	lastChild   *Node
	prevSibling *Node
	nextSibling *Node

	// Type-specific data (only one will be non-nil based on nodeType)
	elementData  *elementData
	documentData *documentData
	docTypeData  *docTypeData
}

// elementData holds data specific to Element nodes.
type elementData struct {
	tagName    string
	attributes *NamedNodeMap
}

// documentData holds data specific to Document nodes.
type documentData struct {
	contentType string
	xmlVersion  string
	encoding    string
}

// docTypeData holds data specific to DocumentType nodes.
type docTypeData struct {
	name     string
	publicId string
	systemId string
}

// newNode creates a new node with the given type and name.
func newNode(nodeType NodeType, nodeName string, ownerDoc *Document) *Node {
	n := &Node{
		nodeType: nodeType,
		nodeName: nodeName,
		ownerDoc: ownerDoc,
	}
	n.childNodes = newNodeList(n)
	return n
}

// NodeType returns the type of the node.
func (n *Node) NodeType() NodeType {
	return n.nodeType
}

// NodeName returns the name of the node.
// For elements, this is the tag name as written.
// For text nodes, this is "#text".
// For comments, this is "#comment".
// For documents, this is "#document".
func (n *Node) NodeName() string {
	return n.nodeName
}

// NodeValue returns the value of the node.
// For text, CDATA, comment and processing instruction nodes this is the
// character data; for other nodes it is the empty string.
func (n *Node) NodeValue() string {
	if n.nodeValue != nil {
		return *n.nodeValue
	}
	return ""
}

// SetNodeValue sets the value of the node.
// This only has an effect on character data nodes.
func (n *Node) SetNodeValue(value string) {
	if n.nodeType.HasValue() {
		n.nodeValue = &value
	}
}

// OwnerDocument returns the Document that owns this node.
// For Document nodes, this returns nil. Nodes built without a document
// (see NewElement) also return nil until they are inserted into one.
func (n *Node) OwnerDocument() *Document {
	if n.nodeType == DocumentNode {
		return nil
	}
	return n.ownerDoc
}

// ParentNode returns the parent of this node.
func (n *Node) ParentNode() *Node {
	return n.parentNode
}

// ChildNodes returns a live NodeList of child nodes.
func (n *Node) ChildNodes() *NodeList {
	return n.childNodes
}

// FirstChild returns the first child node, or nil if there are no children.
func (n *Node) FirstChild() *Node {
	return n.firstChild
}

// LastChild returns the last child node, or nil if there are no children.
func (n *Node) LastChild() *Node {
	return n.lastChild
}

// PreviousSibling returns the previous sibling node, or nil if this is the first child.
func (n *Node) PreviousSibling() *Node {
	return n.prevSibling
}

// NextSibling returns the next sibling node, or nil if this is the last child.
func (n *Node) NextSibling() *Node {
	return n.nextSibling
}

// HasChildNodes returns true if this node has any child nodes.
func (n *Node) HasChildNodes() bool {
	return n.firstChild != nil
}

// TextContent returns the text content of the node and its descendants.
func (n *Node) TextContent() string {
	switch n.nodeType {
	case DocumentNode, DocumentTypeNode:
		return ""
	}
	if n.nodeType.HasValue() {
		return n.NodeValue()
	}
	var sb strings.Builder
	n.collectTextContent(&sb)
	return sb.String()
}

func (n *Node) collectTextContent(sb *strings.Builder) {
	for child := n.firstChild; child != nil; child = child.nextSibling {
		if child.nodeType.IsText() {
			sb.WriteString(child.NodeValue())
		} else if child.nodeType == ElementNode {
			child.collectTextContent(sb)
		}
	}
}

// AppendChild appends child and returns it, or nil if the tree rules
// forbid the insertion. Use AppendChildWithError to see why.
func (n *Node) AppendChild(child *Node) *Node {
	result, _ := n.AppendChildWithError(child)
	return result
}

// AppendChildWithError appends child, moving it out of its current parent.
func (n *Node) AppendChildWithError(child *Node) (*Node, error) {
	return n.InsertBeforeWithError(child, nil)
}

// InsertBeforeWithError inserts child before ref, or at the end when ref is
// nil. The child is detached from its current parent first.
func (n *Node) InsertBeforeWithError(child, ref *Node) (*Node, error) {
	if err := n.checkInsert(child, ref, nil); err != nil {
		return nil, err
	}
	if child != ref {
		child.detach()
		n.link(child, ref)
	}
	return child, nil
}

// ReplaceChildWithError puts child in old's place and returns old.
func (n *Node) ReplaceChildWithError(child, old *Node) (*Node, error) {
	if old == nil {
		return nil, ErrNotFound("The node to be replaced is null.")
	}
	if err := n.checkInsert(child, old, old); err != nil {
		return nil, err
	}
	if child == old {
		return old, nil
	}
	ref := old.nextSibling
	if ref == child {
		ref = child.nextSibling
	}
	child.detach()
	n.unlink(old)
	n.link(child, ref)
	return old, nil
}

// RemoveChild removes child and returns it, or nil if it is not a child.
func (n *Node) RemoveChild(child *Node) *Node {
	result, _ := n.RemoveChildWithError(child)
	return result
}

// RemoveChildWithError removes child, failing with a NotFoundError when it
// is not a child of n.
func (n *Node) RemoveChildWithError(child *Node) (*Node, error) {
	switch {
	case child == nil:
		return nil, ErrNotFound("The node to be removed is null.")
	case child.parentNode != n:
		return nil, ErrNotFound("The node to be removed is not a child of this node.")
	}
	n.unlink(child)
	return child, nil
}

// checkInsert applies the tree rules for putting node under n before ref.
// replacing is the child that leaves in the same step, if any; it is not
// counted against the one-element and one-doctype limits of a Document.
// https://dom.spec.whatwg.org/#concept-node-ensure-pre-insertion-validity
func (n *Node) checkInsert(node, ref, replacing *Node) error {
	switch {
	case node == nil:
		return ErrHierarchyRequest("The node to be inserted is null.")
	case n.nodeType != DocumentNode && n.nodeType != ElementNode && n.nodeType != DocumentFragmentNode:
		return ErrHierarchyRequest("The operation would yield an incorrect node tree.")
	case ref != nil && ref.parentNode != n:
		return ErrNotFound("The reference node is not a child of this node.")
	case !node.nodeType.CanBeChild():
		return ErrHierarchyRequest("The operation would yield an incorrect node tree.")
	case node.nodeType.IsText() && n.nodeType == DocumentNode:
		return ErrHierarchyRequest("Cannot insert Text node as a direct child of Document.")
	case node.nodeType == DocumentTypeNode && n.nodeType != DocumentNode:
		return ErrHierarchyRequest("DocumentType nodes can only be children of Document.")
	}
	for a := n; a != nil; a = a.parentNode {
		if a == node {
			return ErrHierarchyRequest("The new child element contains the parent.")
		}
	}
	if n.nodeType == DocumentNode {
		return n.checkDocumentChild(node, ref, replacing)
	}
	return nil
}

// checkDocumentChild enforces the Document layout: at most one doctype and
// one element, with the doctype first.
func (n *Node) checkDocumentChild(node, ref, replacing *Node) error {
	others := func(t NodeType) bool {
		for c := n.firstChild; c != nil; c = c.nextSibling {
			if c != replacing && c.nodeType == t {
				return true
			}
		}
		return false
	}

	switch node.nodeType {
	case ElementNode:
		if others(ElementNode) {
			return ErrHierarchyRequest("Document can have only one element child.")
		}
		if ref == nil || (replacing != nil && ref.nodeType == ElementNode) {
			return nil
		}
		for c := ref; c != nil; c = c.nextSibling {
			if c.nodeType == DocumentTypeNode {
				return ErrHierarchyRequest("Cannot insert element before doctype.")
			}
		}

	case DocumentTypeNode:
		if others(DocumentTypeNode) {
			return ErrHierarchyRequest("Document already has a doctype.")
		}
		if !others(ElementNode) {
			return nil
		}
		if ref == nil {
			return ErrHierarchyRequest("Cannot insert doctype after document element.")
		}
		for c := n.firstChild; c != ref; c = c.nextSibling {
			if c != replacing && c.nodeType == ElementNode {
				return ErrHierarchyRequest("Cannot insert doctype after document element.")
			}
		}
	}
	return nil
}

// detach removes n from its parent, if it has one.
func (n *Node) detach() {
	if n.parentNode != nil {
		n.parentNode.unlink(n)
	}
}

// unlink splices child out of n's sibling chain without any checks.
func (n *Node) unlink(child *Node) {
	prev, next := child.prevSibling, child.nextSibling
	if prev == nil {
		n.firstChild = next
	} else {
		prev.nextSibling = next
	}
	if next == nil {
		n.lastChild = prev
	} else {
		next.prevSibling = prev
	}
	child.parentNode, child.prevSibling, child.nextSibling = nil, nil, nil
}

// link splices a detached child into n before ref (at the end when ref is
// nil) and moves it into n's document.
func (n *Node) link(child, ref *Node) {
	owner := n.ownerDoc
	if n.nodeType == DocumentNode {
		owner = (*Document)(n)
	}
	if owner != nil && child.ownerDoc != owner {
		child.adopt(owner)
	}

	child.parentNode = n
	child.nextSibling = ref
	if ref == nil {
		child.prevSibling = n.lastChild
		n.lastChild = child
	} else {
		child.prevSibling = ref.prevSibling
		ref.prevSibling = child
	}
	if child.prevSibling == nil {
		n.firstChild = child
	} else {
		child.prevSibling.nextSibling = child
	}
}

// adopt moves n, its attributes and its descendants into doc.
func (n *Node) adopt(doc *Document) {
	n.ownerDoc = doc
	if n.elementData != nil {
		for _, attr := range n.elementData.attributes.attrs {
			attr.ownerDoc = doc
		}
	}
	for c := n.firstChild; c != nil; c = c.nextSibling {
		c.adopt(doc)
	}
}

// IsSameNode returns true if this node is the same node as the given node.
func (n *Node) IsSameNode(other *Node) bool {
	return n == other
}

// IsEqualNode returns true if the two subtrees are structurally equal:
// same types, names, values, attributes and children in order.
func (n *Node) IsEqualNode(other *Node) bool {
	if other == nil {
		return false
	}
	if n.nodeType != other.nodeType || n.nodeName != other.nodeName || n.NodeValue() != other.NodeValue() {
		return false
	}

	switch n.nodeType {
	case ElementNode:
		a, b := n.elementData.attributes, other.elementData.attributes
		if a.Length() != b.Length() {
			return false
		}
		for _, attr := range a.attrs {
			match := b.GetNamedItem(attr.name)
			if match == nil || match.value != attr.value {
				return false
			}
		}
	case DocumentTypeNode:
		if *n.docTypeData != *other.docTypeData {
			return false
		}
	}

	c1, c2 := n.firstChild, other.firstChild
	for ; c1 != nil && c2 != nil; c1, c2 = c1.nextSibling, c2.nextSibling {
		if !c1.IsEqualNode(c2) {
			return false
		}
	}
	return c1 == nil && c2 == nil
}

// DoctypeName returns the name of a DocumentType node.
func (n *Node) DoctypeName() string {
	if n.docTypeData != nil {
		return n.docTypeData.name
	}
	return ""
}

// DoctypePublicId returns the public identifier of a DocumentType node.
func (n *Node) DoctypePublicId() string {
	if n.docTypeData != nil {
		return n.docTypeData.publicId
	}
	return ""
}

// DoctypeSystemId returns the system identifier of a DocumentType node.
func (n *Node) DoctypeSystemId() string {
	if n.docTypeData != nil {
		return n.docTypeData.systemId
	}
	return ""
}
