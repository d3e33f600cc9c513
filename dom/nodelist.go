package dom

import "iter"

// NodeList is a live view of a node's children. Nothing is cached, so a
// NodeList obtained before a mutation sees the result of it.
type NodeList struct {
	parent *Node
}

func newNodeList(parent *Node) *NodeList {
	return &NodeList{parent: parent}
}

// All yields the children in order. Removing the child just yielded is
// allowed; other mutations during iteration are not.
func (nl *NodeList) All() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for child := nl.parent.firstChild; child != nil; {
			next := child.nextSibling
			if !yield(child) {
				return
			}
			child = next
		}
	}
}

// Length returns the number of children.
func (nl *NodeList) Length() int {
	n := 0
	for range nl.All() {
		n++
	}
	return n
}

// Item returns the child at index, or nil when index is out of range.
func (nl *NodeList) Item(index int) *Node {
	if index < 0 {
		return nil
	}
	for child := range nl.All() {
		if index == 0 {
			return child
		}
		index--
	}
	return nil
}
