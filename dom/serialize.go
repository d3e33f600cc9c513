package dom

import (
	"bufio"
	"io"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// SerializeOptions controls WriteXML output.
type SerializeOptions struct {
	// Declaration writes an <?xml ...?> declaration before a Document.
	Declaration bool
	// Indent, when non-empty, puts each child of an element that holds no
	// character data on its own line, indented by Indent per level.
	// Elements with text children are written inline so their text is unchanged.
	Indent string
	// SortAttributes writes attributes in name order instead of insertion order.
	SortAttributes bool
}

// SerializeToXML serializes a Node to an XML string without a declaration.
// It fails with an InvalidStateError if the node cannot be represented as
// well-formed XML.
func SerializeToXML(node *Node) (string, error) {
	var sb strings.Builder
	if err := WriteXML(&sb, node, SerializeOptions{}); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// WriteXML serializes node and its subtree to w.
func WriteXML(w io.Writer, node *Node, opts SerializeOptions) error {
	bw := bufio.NewWriter(w)
	s := &serializer{w: bw, opts: opts}
	if err := s.node(node, 0); err != nil {
		return err
	}
	if s.err != nil {
		return s.err
	}
	return bw.Flush()
}

type serializer struct {
	w    *bufio.Writer
	opts SerializeOptions
	err  error
}

func (s *serializer) write(parts ...string) {
	if s.err != nil {
		return
	}
	for _, p := range parts {
		if _, err := s.w.WriteString(p); err != nil {
			s.err = err
			return
		}
	}
}

func (s *serializer) newline(depth int) {
	if s.opts.Indent == "" {
		return
	}
	s.write("\n", strings.Repeat(s.opts.Indent, depth))
}

func (s *serializer) node(n *Node, depth int) error {
	switch n.nodeType {
	case DocumentNode:
		return s.document((*Document)(n))

	case ElementNode:
		return s.element((*Element)(n), depth)

	case TextNode:
		text, err := escapeXMLText(n.NodeValue())
		if err != nil {
			return err
		}
		s.write(text)

	case CDATASectionNode:
		data := n.NodeValue()
		if strings.Contains(data, "]]>") {
			return ErrInvalidState("CDATA section contains ']]>' which is not allowed.")
		}
		if err := checkChars("CDATA section", data); err != nil {
			return err
		}
		s.write("<![CDATA[", data, "]]>")

	case CommentNode:
		data := n.NodeValue()
		if strings.Contains(data, "--") {
			return ErrInvalidState("Comment data contains '--' which is not allowed in XML.")
		}
		if strings.HasSuffix(data, "-") {
			return ErrInvalidState("Comment data ends with '-' which is not allowed in XML.")
		}
		if err := checkChars("Comment data", data); err != nil {
			return err
		}
		s.write("<!--", data, "-->")

	case ProcessingInstructionNode:
		data := n.NodeValue()
		if strings.Contains(data, "?>") {
			return ErrInvalidState("ProcessingInstruction data contains '?>' which is not allowed.")
		}
		if err := checkChars("ProcessingInstruction data", data); err != nil {
			return err
		}
		s.write("<?", n.nodeName)
		if data != "" {
			s.write(" ", data)
		}
		s.write("?>")

	case DocumentTypeNode:
		s.doctype(n)
	}
	return nil
}

func (s *serializer) document(d *Document) error {
	first := true
	if s.opts.Declaration {
		s.write(`<?xml version="`, d.XMLVersion(), `" encoding="UTF-8"?>`)
		first = false
	}
	for child := d.AsNode().firstChild; child != nil; child = child.nextSibling {
		if !first {
			s.write("\n")
		}
		first = false
		if err := s.node(child, 0); err != nil {
			return err
		}
	}
	if s.opts.Indent != "" {
		s.write("\n")
	}
	return nil
}

func (s *serializer) doctype(n *Node) {
	name := n.DoctypeName()
	if name == "" {
		return
	}
	s.write("<!DOCTYPE ", name)
	publicId, systemId := n.DoctypePublicId(), n.DoctypeSystemId()
	if publicId != "" {
		s.write(` PUBLIC "`, publicId, `"`)
		if systemId != "" {
			s.write(` "`, systemId, `"`)
		}
	} else if systemId != "" {
		s.write(` SYSTEM "`, systemId, `"`)
	}
	s.write(">")
}

func (s *serializer) element(el *Element, depth int) error {
	name := el.TagName()
	s.write("<", name)

	attrs := el.Attributes().attrs
	if s.opts.SortAttributes {
		attrs = append([]*Attr(nil), attrs...)
		sort.Slice(attrs, func(i, j int) bool { return attrs[i].name < attrs[j].name })
	}
	for _, attr := range attrs {
		value, err := escapeXMLAttrValue(attr.value)
		if err != nil {
			return err
		}
		s.write(" ", attr.name, `="`, value, `"`)
	}

	n := el.AsNode()
	if n.firstChild == nil {
		s.write("/>")
		return nil
	}
	s.write(">")

	pretty := s.opts.Indent != "" && !hasCharacterData(n)
	for child := n.firstChild; child != nil; child = child.nextSibling {
		if pretty {
			s.newline(depth + 1)
		}
		if err := s.node(child, depth+1); err != nil {
			return err
		}
	}
	if pretty {
		s.newline(depth)
	}

	s.write("</", name, ">")
	return nil
}

// hasCharacterData reports whether any direct child is text or CDATA.
func hasCharacterData(n *Node) bool {
	for c := n.firstChild; c != nil; c = c.nextSibling {
		if c.nodeType.IsText() {
			return true
		}
	}
	return false
}

// isXMLChar reports whether r matches the XML 1.0 Char production.
func isXMLChar(r rune) bool {
	switch {
	case r == '\t', r == '\n', r == '\r':
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	}
	return r >= 0x10000 && r <= utf8.MaxRune
}

// nextChar decodes the rune at the start of s. It fails when s starts with
// invalid UTF-8 or a character XML cannot represent, even as a reference.
func nextChar(what, s string) (rune, int, error) {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size == 1 {
		return r, size, ErrInvalidState(fmt.Sprintf("%s is not valid UTF-8.", what))
	}
	if !isXMLChar(r) {
		return r, size, ErrInvalidState(fmt.Sprintf("%s contains %U which is not allowed in XML.", what, r))
	}
	return r, size, nil
}

// checkChars fails if data holds anything nextChar rejects.
func checkChars(what, data string) error {
	for len(data) > 0 {
		_, size, err := nextChar(what, data)
		if err != nil {
			return err
		}
		data = data[size:]
	}
	return nil
}

// escapeXMLText escapes text content for XML: & < > and carriage return.
func escapeXMLText(s string) (string, error) {
	var sb strings.Builder
	for len(s) > 0 {
		r, size, err := nextChar("Text data", s)
		if err != nil {
			return "", err
		}
		s = s[size:]
		switch r {
		case '&':
			sb.WriteString("&amp;")
		case '<':
			sb.WriteString("&lt;")
		case '>':
			sb.WriteString("&gt;")
		case '\r':
			sb.WriteString("&#xD;")
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String(), nil
}

// escapeXMLAttrValue escapes attribute values for XML so that they survive
// attribute-value normalization on the way back in.
func escapeXMLAttrValue(s string) (string, error) {
	var sb strings.Builder
	for len(s) > 0 {
		r, size, err := nextChar("Attribute value", s)
		if err != nil {
			return "", err
		}
		s = s[size:]
		switch r {
		case '&':
			sb.WriteString("&amp;")
		case '<':
			sb.WriteString("&lt;")
		case '>':
			sb.WriteString("&gt;")
		case '"':
			sb.WriteString("&quot;")
		case '\t':
			sb.WriteString("&#x9;")
		case '\n':
			sb.WriteString("&#xA;")
		case '\r':
			sb.WriteString("&#xD;")
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String(), nil
}
