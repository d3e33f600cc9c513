// Package export converts documents to and from a generic tree that
// serializes as YAML.
package export

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/chrisuehlinger/xmlnode/xmlnode"
)

// Node is the generic form of a document node.
type Node struct {
	Kind       string            `yaml:"kind"`
	Name       string            `yaml:"name,omitempty"`
	Value      string            `yaml:"value,omitempty"`
	Attributes map[string]string `yaml:"attributes,omitempty"`
	Children   []Node            `yaml:"children,omitempty"`
}

// FromNode converts node and everything below it, following the children
// view (empty text is skipped).
func FromNode(node xmlnode.Node) Node {
	out := Node{Kind: node.Kind().String()}
	switch n := node.(type) {
	case *xmlnode.Document:
		out.Children = fromChildren(n.Children())
	case *xmlnode.Element:
		out.Name = n.Name()
		if attrs := n.Attributes(); len(attrs) > 0 {
			out.Attributes = attrs
		}
		out.Children = fromChildren(n.Children())
	case *xmlnode.Text:
		// CDATA sections export as plain text.
		out.Kind = xmlnode.KindText.String()
		out.Value = n.Value()
	case *xmlnode.Comment:
		out.Value = n.Value()
	}
	return out
}

func fromChildren(children []xmlnode.Node) []Node {
	if len(children) == 0 {
		return nil
	}
	out := make([]Node, len(children))
	for i, child := range children {
		out[i] = FromNode(child)
	}
	return out
}

// ToYAML converts doc to YAML.
func ToYAML(doc *xmlnode.Document) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("export: nil document")
	}
	return yaml.Marshal(FromNode(doc))
}

// FromYAML reads a tree written by ToYAML and builds a document from it.
func FromYAML(data []byte) (*xmlnode.Document, error) {
	var tree Node
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("export: failed to parse yaml: %w", err)
	}
	return Build(tree)
}

// Build creates a document from tree, whose kind must be "document".
func Build(tree Node) (*xmlnode.Document, error) {
	if tree.Kind != xmlnode.KindDocument.String() {
		return nil, fmt.Errorf("export: top-level kind %q, want %q", tree.Kind, xmlnode.KindDocument)
	}
	doc := xmlnode.NewDocument()
	if err := buildChildren(doc, doc, tree.Children); err != nil {
		return nil, err
	}
	return doc, nil
}

type appender interface {
	Append(node xmlnode.Node) error
}

func buildChildren(doc *xmlnode.Document, parent appender, children []Node) error {
	for _, child := range children {
		node, err := build(doc, child)
		if err != nil {
			return err
		}
		if err := parent.Append(node); err != nil {
			return err
		}
	}
	return nil
}

func build(doc *xmlnode.Document, n Node) (xmlnode.Node, error) {
	switch n.Kind {
	case xmlnode.KindElement.String():
		el, err := doc.NewElement(n.Name)
		if err != nil {
			return nil, err
		}
		for name, value := range n.Attributes {
			if err := el.SetAttribute(name, value); err != nil {
				return nil, err
			}
		}
		if err := buildChildren(doc, el, n.Children); err != nil {
			return nil, err
		}
		return el, nil
	case xmlnode.KindText.String():
		return doc.NewText(n.Value), nil
	case xmlnode.KindComment.String():
		return doc.NewComment(n.Value), nil
	}
	return nil, &xmlnode.Error{Op: "build", Kind: xmlnode.ErrUnsupportedKind, Err: fmt.Errorf("kind %q", n.Kind)}
}
