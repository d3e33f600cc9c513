// Package dom is the native document tree that xmlnode wraps. It follows the
// W3C DOM node model: every node has a type, an owner document and an ordered
// list of children, and the tree enforces the DOM hierarchy rules on insertion.
// https://dom.spec.whatwg.org/
package dom

// NodeType is the W3C DOM node type code.
type NodeType uint16

const (
	// ElementNode represents an Element node.
	ElementNode NodeType = 1
	// AttributeNode represents an Attr node.
	AttributeNode NodeType = 2
	// TextNode represents a Text node.
	TextNode NodeType = 3
	// CDATASectionNode represents a CDATASection node.
	CDATASectionNode NodeType = 4
	// EntityReferenceNode is obsolete.
	EntityReferenceNode NodeType = 5
	// EntityNode is obsolete.
	EntityNode NodeType = 6
	// ProcessingInstructionNode represents a ProcessingInstruction node.
	ProcessingInstructionNode NodeType = 7
	// CommentNode represents a Comment node.
	CommentNode NodeType = 8
	// DocumentNode represents a Document node.
	DocumentNode NodeType = 9
	// DocumentTypeNode represents a DocumentType node.
	DocumentTypeNode NodeType = 10
	// DocumentFragmentNode represents a DocumentFragment node.
	DocumentFragmentNode NodeType = 11
	// NotationNode is obsolete.
	NotationNode NodeType = 12
)

// HasValue reports whether nodes of this type carry a node value:
// text, CDATA, comments and processing instructions.
func (nt NodeType) HasValue() bool {
	switch nt {
	case TextNode, CDATASectionNode, CommentNode, ProcessingInstructionNode:
		return true
	}
	return false
}

// IsText reports whether nt is Text or CDATASection. Both contribute to
// text content.
func (nt NodeType) IsText() bool {
	return nt == TextNode || nt == CDATASectionNode
}

// CanBeChild reports whether nodes of this type may be inserted under
// another node at all.
func (nt NodeType) CanBeChild() bool {
	return nt == DocumentTypeNode || nt == ElementNode || nt.HasValue()
}

// String returns the string representation of the NodeType.
func (nt NodeType) String() string {
	switch nt {
	case ElementNode:
		return "ELEMENT_NODE"
	case AttributeNode:
		return "ATTRIBUTE_NODE"
	case TextNode:
		return "TEXT_NODE"
	case CDATASectionNode:
		return "CDATA_SECTION_NODE"
	case EntityReferenceNode:
		return "ENTITY_REFERENCE_NODE"
	case EntityNode:
		return "ENTITY_NODE"
	case ProcessingInstructionNode:
		return "PROCESSING_INSTRUCTION_NODE"
	case CommentNode:
		return "COMMENT_NODE"
	case DocumentNode:
		return "DOCUMENT_NODE"
	case DocumentTypeNode:
		return "DOCUMENT_TYPE_NODE"
	case DocumentFragmentNode:
		return "DOCUMENT_FRAGMENT_NODE"
	case NotationNode:
		return "NOTATION_NODE"
	default:
		return "UNKNOWN_NODE"
	}
}
