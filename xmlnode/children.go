package xmlnode

// container holds the navigation and mutation logic shared by Document
// and Element. Every query walks the native child list afresh.
type container struct {
	base
}

// Children returns the element, comment and non-empty text children in
// document order. Other node kinds are skipped.
func (c container) Children() []Node {
	var children []Node
	for n := c.n.FirstChild(); n != nil; n = n.NextSibling() {
		if child, ok := wrapChild(n); ok {
			children = append(children, child)
		}
	}
	return children
}

// Elements returns the element children in document order.
func (c container) Elements() []*Element {
	var elements []*Element
	for _, child := range c.Children() {
		if el, ok := child.(*Element); ok {
			elements = append(elements, el)
		}
	}
	return elements
}

// Element returns the first element child with the given name.
func (c container) Element(name string) (*Element, bool) {
	for _, el := range c.Elements() {
		if el.Name() == name {
			return el, true
		}
	}
	return nil, false
}

// ElementsNamed returns every element child with the given name, in
// document order.
func (c container) ElementsNamed(name string) []*Element {
	var elements []*Element
	for _, el := range c.Elements() {
		if el.Name() == name {
			elements = append(elements, el)
		}
	}
	return elements
}

// TextValues returns the values of the non-empty text children in order.
func (c container) TextValues() []string {
	var values []string
	for _, child := range c.Children() {
		if text, ok := child.(*Text); ok {
			values = append(values, text.Value())
		}
	}
	return values
}

// firstText returns the first non-empty text child.
func (c container) firstText() (*Text, bool) {
	for _, child := range c.Children() {
		if text, ok := child.(*Text); ok {
			return text, true
		}
	}
	return nil, false
}

// GetString returns the first text of the first element child named name.
// It reports false when there is no such element or the element has no text.
func (c container) GetString(name string) (string, bool) {
	el, ok := c.Element(name)
	if !ok {
		return "", false
	}
	text, ok := el.firstText()
	if !ok {
		return "", false
	}
	return text.Value(), true
}

// GetStrings returns the first text of every element child named name, in
// document order. Elements without text contribute nothing.
func (c container) GetStrings(name string) []string {
	var values []string
	for _, el := range c.ElementsNamed(name) {
		if text, ok := el.firstText(); ok {
			values = append(values, text.Value())
		}
	}
	return values
}
