// Package html builds native documents from HTML input, using
// golang.org/x/net/html as the underlying parser implementation.
package html

import (
	"fmt"
	"io"
	"strings"

	"github.com/chrisuehlinger/xmlnode/dom"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parse parses an HTML document from r. The HTML5 algorithm repairs malformed
// markup, so the result always has an html root element.
func Parse(r io.Reader) (*dom.Document, error) {
	netNode, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	doc := dom.NewHTMLDocument()
	if err := convertChildren(doc, doc.AsNode(), netNode); err != nil {
		return nil, err
	}
	return doc, nil
}

// ParseString parses an HTML document held in a string.
func ParseString(s string) (*dom.Document, error) {
	return Parse(strings.NewReader(s))
}

// ParseFragment parses an HTML fragment as if it were the content of an
// element named context (e.g. "body" or "tr"). The returned nodes belong to
// doc but are not attached.
func ParseFragment(doc *dom.Document, r io.Reader, context string) ([]*dom.Node, error) {
	var contextNode *html.Node
	if context != "" {
		name := strings.ToLower(context)
		contextNode = &html.Node{
			Type:     html.ElementNode,
			DataAtom: atom.Lookup([]byte(name)),
			Data:     name,
		}
	}
	netNodes, err := html.ParseFragment(r, contextNode)
	if err != nil {
		return nil, err
	}
	var nodes []*dom.Node
	for _, nn := range netNodes {
		converted, err := convertNode(doc, nn)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, converted...)
	}
	return nodes, nil
}

func convertChildren(doc *dom.Document, parent *dom.Node, n *html.Node) error {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		children, err := convertNode(doc, c)
		if err != nil {
			return err
		}
		for _, child := range children {
			if _, err := parent.AppendChildWithError(child); err != nil {
				return err
			}
		}
	}
	return nil
}

// convertNode converts a golang.org/x/net/html node to native nodes owned
// by doc. An element whose name XML cannot represent is replaced by its
// converted children; node types with no native counterpart convert to
// nothing.
func convertNode(doc *dom.Document, n *html.Node) ([]*dom.Node, error) {
	switch n.Type {
	case html.ElementNode:
		el, err := doc.CreateElementWithError(n.Data)
		if dom.IsDOMError(err, dom.InvalidCharacterError) {
			var children []*dom.Node
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				converted, err := convertNode(doc, c)
				if err != nil {
					return nil, err
				}
				children = append(children, converted...)
			}
			return children, nil
		}
		if err != nil {
			return nil, fmt.Errorf("element <%s>: %w", n.Data, err)
		}
		for _, attr := range n.Attr {
			name := attr.Key
			if attr.Namespace != "" {
				name = attr.Namespace + ":" + attr.Key
			}
			// Attribute names HTML tolerates but XML cannot represent are dropped.
			_ = el.SetAttributeWithError(name, attr.Val)
		}
		if err := convertChildren(doc, el.AsNode(), n); err != nil {
			return nil, err
		}
		return []*dom.Node{el.AsNode()}, nil

	case html.TextNode:
		return []*dom.Node{doc.CreateTextNode(n.Data)}, nil

	case html.CommentNode:
		return []*dom.Node{doc.CreateComment(n.Data)}, nil

	case html.DoctypeNode:
		var publicId, systemId string
		for _, attr := range n.Attr {
			switch attr.Key {
			case "public":
				publicId = attr.Val
			case "system":
				systemId = attr.Val
			}
		}
		return []*dom.Node{doc.CreateDocumentType(n.Data, publicId, systemId)}, nil
	}
	return nil, nil
}
