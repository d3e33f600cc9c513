// Package xmlnode is a typed view over a native XML document tree.
//
// A Document, Element, Text or Comment holds a reference to one node of a
// dom tree and never copies it. Wrappers are cheap and disposable: every
// children query walks the native child list again, so a wrapper obtained
// before a mutation still sees the tree as it is now.
//
// Values returned by Children and the lookups built on it skip text nodes
// whose value is empty. Scalar accessors distinguish a missing child (the
// bool result is false) from text that does not parse (ErrWrongType).
//
// A Document and every node taken from it must be used from one goroutine
// at a time.
package xmlnode

import (
	"fmt"

	"github.com/chrisuehlinger/xmlnode/dom"
)

// Node is implemented by *Document, *Element, *Text and *Comment.
type Node interface {
	// Kind classifies the native node.
	Kind() Kind
	// Owner resolves the Document this node belongs to from the native
	// owner link. A Document returns itself.
	Owner() (*Document, error)
	// Native returns the wrapped native node.
	Native() *dom.Node
	// Equal reports whether both wrappers refer to the same native node.
	Equal(other Node) bool

	node()
}

type base struct {
	n *dom.Node
}

func (b base) Kind() Kind {
	return kindOf(b.n)
}

func (b base) Native() *dom.Node {
	return b.n
}

func (b base) Owner() (*Document, error) {
	if b.n.NodeType() == dom.DocumentNode {
		return FromNative((*dom.Document)(b.n)), nil
	}
	doc := b.n.OwnerDocument()
	if doc == nil {
		return nil, &Error{Op: "owner", Kind: ErrMissingOwner, Err: fmt.Errorf("%s node has no owner document", b.n.NodeName())}
	}
	return FromNative(doc), nil
}

func (b base) Equal(other Node) bool {
	if other == nil {
		return false
	}
	return b.n.IsSameNode(other.Native())
}

func (base) node() {}

// Equivalent reports whether a and b are structurally equal trees: same
// kinds, names and values, the same attributes in any order, and
// equivalent children in order. Identity is not required.
func Equivalent(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Native().IsEqualNode(b.Native())
}

// Wrap classifies a native node into its typed variant. CDATA sections are
// wrapped as Text. Any other kind fails with ErrUnsupportedKind.
func Wrap(n *dom.Node) (Node, error) {
	if n == nil {
		return nil, &Error{Op: "wrap", Kind: ErrUnsupportedKind, Err: fmt.Errorf("nil node")}
	}
	switch n.NodeType() {
	case dom.DocumentNode:
		return FromNative((*dom.Document)(n)), nil
	case dom.ElementNode:
		return newElement(n), nil
	case dom.TextNode, dom.CDATASectionNode:
		return &Text{base{n}}, nil
	case dom.CommentNode:
		return &Comment{base{n}}, nil
	}
	return nil, &Error{
		Op:   "wrap",
		Kind: ErrUnsupportedKind,
		Err:  fmt.Errorf("native node type %d (%s)", uint16(n.NodeType()), kindOf(n)),
	}
}

// wrapChild is the lenient form of Wrap used by children views: empty text
// and kinds without a variant are skipped.
func wrapChild(n *dom.Node) (Node, bool) {
	switch n.NodeType() {
	case dom.ElementNode:
		return newElement(n), true
	case dom.TextNode, dom.CDATASectionNode:
		if n.NodeValue() == "" {
			return nil, false
		}
		return &Text{base{n}}, true
	case dom.CommentNode:
		return &Comment{base{n}}, true
	}
	return nil, false
}
