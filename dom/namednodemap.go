package dom

import "slices"

// NamedNodeMap holds an element's attributes in the order they were first
// set. Names are unique within a map.
type NamedNodeMap struct {
	ownerElement *Element
	attrs        []*Attr
}

func newNamedNodeMap(element *Element) *NamedNodeMap {
	return &NamedNodeMap{ownerElement: element}
}

func (nm *NamedNodeMap) index(name string) int {
	return slices.IndexFunc(nm.attrs, func(a *Attr) bool { return a.name == name })
}

// Length returns the number of attributes.
func (nm *NamedNodeMap) Length() int {
	return len(nm.attrs)
}

// Item returns the attribute at index, or nil when index is out of range.
func (nm *NamedNodeMap) Item(index int) *Attr {
	if index < 0 || index >= len(nm.attrs) {
		return nil
	}
	return nm.attrs[index]
}

// GetNamedItem returns the attribute called name, or nil.
func (nm *NamedNodeMap) GetNamedItem(name string) *Attr {
	if i := nm.index(name); i >= 0 {
		return nm.attrs[i]
	}
	return nil
}

// SetNamedItem stores attr in place of any attribute with the same name
// and returns the one it displaced. An attr owned by another element fails
// with an InUseAttributeError.
func (nm *NamedNodeMap) SetNamedItem(attr *Attr) (*Attr, error) {
	if attr.ownerElement != nil && attr.ownerElement != nm.ownerElement {
		return nil, ErrInUseAttribute("The attribute is in use by another element.")
	}
	attr.ownerElement = nm.ownerElement

	i := nm.index(attr.name)
	if i < 0 {
		nm.attrs = append(nm.attrs, attr)
		return nil, nil
	}
	old := nm.attrs[i]
	if old == attr {
		return nil, nil
	}
	nm.attrs[i] = attr
	old.ownerElement = nil
	return old, nil
}

// RemoveNamedItem removes and returns the attribute called name, or nil.
func (nm *NamedNodeMap) RemoveNamedItem(name string) *Attr {
	i := nm.index(name)
	if i < 0 {
		return nil
	}
	attr := nm.attrs[i]
	nm.attrs = slices.Delete(nm.attrs, i, i+1)
	attr.ownerElement = nil
	return attr
}

// GetValue returns the value of the attribute called name, or "".
func (nm *NamedNodeMap) GetValue(name string) string {
	if attr := nm.GetNamedItem(name); attr != nil {
		return attr.value
	}
	return ""
}

// SetValue sets the attribute called name, creating it at the end if absent.
func (nm *NamedNodeMap) SetValue(name, value string) {
	if attr := nm.GetNamedItem(name); attr != nil {
		attr.value = value
		return
	}
	attr := &Attr{name: name, value: value, ownerElement: nm.ownerElement}
	if nm.ownerElement != nil {
		attr.ownerDoc = nm.ownerElement.AsNode().ownerDoc
	}
	nm.attrs = append(nm.attrs, attr)
}

// Has reports whether an attribute called name exists.
func (nm *NamedNodeMap) Has(name string) bool {
	return nm.index(name) >= 0
}

// Names returns the attribute names in order.
func (nm *NamedNodeMap) Names() []string {
	names := make([]string, len(nm.attrs))
	for i, attr := range nm.attrs {
		names[i] = attr.name
	}
	return names
}

// OwnerElement returns the element the map belongs to.
func (nm *NamedNodeMap) OwnerElement() *Element {
	return nm.ownerElement
}
