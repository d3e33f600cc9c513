package xmlnode

// Text is a character data node. CDATA sections are also seen as Text.
type Text struct {
	base
}

// Value returns the text.
func (t *Text) Value() string {
	return t.n.NodeValue()
}

// SetValue replaces the text.
func (t *Text) SetValue(value string) {
	t.n.SetNodeValue(value)
}

// Comment is a comment node.
type Comment struct {
	base
}

// Value returns the comment text, without the <!-- --> delimiters.
func (c *Comment) Value() string {
	return c.n.NodeValue()
}

// SetValue replaces the comment text.
func (c *Comment) SetValue(value string) {
	c.n.SetNodeValue(value)
}
