package xmlnode

import (
	"fmt"

	"github.com/chrisuehlinger/xmlnode/dom"
)

// Set stores value as the text of the first child element named name.
//
// When such an element exists its first text child is overwritten. An
// existing element without text is left untouched and no element is
// created. When no element named name exists, one is created with a single
// text child and appended after the existing children.
func (c container) Set(name string, value any) error {
	if el, ok := c.Element(name); ok {
		if text, ok := el.firstText(); ok {
			text.SetValue(FormatValue(value))
		}
		return nil
	}

	doc, err := c.Owner()
	if err != nil {
		return err
	}
	el, err := doc.NewElement(name)
	if err != nil {
		return err
	}
	if err := el.Append(doc.NewText(FormatValue(value))); err != nil {
		return err
	}
	return c.Append(el)
}

// SetText stores value as this node's own text: the first text child is
// overwritten, or a text child is appended if there is none.
func (c container) SetText(value any) error {
	if text, ok := c.firstText(); ok {
		text.SetValue(FormatValue(value))
		return nil
	}
	doc, err := c.Owner()
	if err != nil {
		return err
	}
	return c.Append(doc.NewText(FormatValue(value)))
}

// SetAll replaces every child element named name with one element per
// value, appended in order after the remaining children. On failure the
// children are left as they were; on a Document that means the result
// must hold at most one element.
func (c container) SetAll(name string, values []any) error {
	doc, err := c.Owner()
	if err != nil {
		return err
	}
	if c.n.NodeType() == dom.DocumentNode {
		kept := len(c.Elements()) - len(c.ElementsNamed(name))
		if n := kept + len(values); n > 1 {
			return &Error{Op: "set", Kind: ErrIllegalOperation, Err: fmt.Errorf("a document holds one element, not %d", n)}
		}
	}
	elements := make([]*Element, 0, len(values))
	for _, v := range values {
		el, err := doc.NewElement(name)
		if err != nil {
			return err
		}
		if err := el.Append(doc.NewText(FormatValue(v))); err != nil {
			return err
		}
		elements = append(elements, el)
	}

	c.RemoveNamed(name)
	for _, el := range elements {
		if err := c.Append(el); err != nil {
			return err
		}
	}
	return nil
}

// Append attaches node as the last child. A node that already has a parent
// is moved. On a Document, appending a second element or any text fails
// with ErrIllegalOperation and leaves the children unchanged.
func (c container) Append(node Node) error {
	if node == nil {
		return &Error{Op: "append", Kind: ErrIllegalOperation, Err: fmt.Errorf("nil node")}
	}
	if _, err := c.n.AppendChildWithError(node.Native()); err != nil {
		return &Error{Op: "append", Kind: ErrIllegalOperation, Err: err}
	}
	return nil
}

// Replace puts replacement in the position of old, which must be a direct child.
func (c container) Replace(old, replacement Node) error {
	if old == nil || old.Native().ParentNode() != c.n {
		return &Error{Op: "replace", Kind: ErrNotChild}
	}
	if replacement == nil {
		return &Error{Op: "replace", Kind: ErrIllegalOperation, Err: fmt.Errorf("nil node")}
	}
	if _, err := c.n.ReplaceChildWithError(replacement.Native(), old.Native()); err != nil {
		return &Error{Op: "replace", Kind: ErrIllegalOperation, Err: err}
	}
	return nil
}

// Remove detaches child, which must be a direct child.
func (c container) Remove(child Node) error {
	if child == nil {
		return &Error{Op: "remove", Kind: ErrNotChild}
	}
	if _, err := c.n.RemoveChildWithError(child.Native()); err != nil {
		if dom.IsDOMError(err, dom.NotFoundError) {
			return &Error{Op: "remove", Kind: ErrNotChild, Err: err}
		}
		return &Error{Op: "remove", Kind: ErrIllegalOperation, Err: err}
	}
	return nil
}

// RemoveNamed detaches every child element named name and reports how
// many were removed.
func (c container) RemoveNamed(name string) int {
	removed := 0
	for _, el := range c.ElementsNamed(name) {
		if _, err := c.n.RemoveChildWithError(el.n); err == nil {
			removed++
		}
	}
	return removed
}
