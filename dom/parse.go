package dom

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// ParseOptions controls how ParseXML builds the tree.
type ParseOptions struct {
	// TrimWhitespace drops character data runs that are entirely whitespace.
	// By default every run inside an element becomes a Text node.
	TrimWhitespace bool
}

// SyntaxError reports malformed input, with the line it was detected on
// when the tokenizer knows it.
type SyntaxError struct {
	Msg  string
	Line int
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("XML syntax error on line %d: %s", e.Line, e.Msg)
	}
	return "XML syntax error: " + e.Msg
}

// ParseXML reads an XML document from r and returns its Document.
// Element and attribute names are kept exactly as written, prefixes included.
// The XML declaration is recorded on the Document, not added as a node.
// Non-UTF-8 inputs are decoded through the encoding named by the declaration.
func ParseXML(r io.Reader, opts ParseOptions) (*Document, error) {
	doc := NewDocument()

	decoder := xml.NewDecoder(skipBOM(r))
	decoder.CharsetReader = charset.NewReaderLabel

	stack := []*Node{doc.AsNode()}

	for {
		token, err := decoder.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			var syntaxErr *xml.SyntaxError
			if errors.As(err, &syntaxErr) {
				return nil, &SyntaxError{Msg: syntaxErr.Msg, Line: syntaxErr.Line}
			}
			return nil, err
		}

		line, _ := decoder.InputPos()
		parent := stack[len(stack)-1]

		switch t := token.(type) {
		case xml.StartElement:
			el, err := doc.CreateElementWithError(qualifiedName(t.Name))
			if err != nil {
				return nil, &SyntaxError{Msg: err.Error(), Line: line}
			}
			for _, attr := range t.Attr {
				name := qualifiedName(attr.Name)
				if el.HasAttribute(name) {
					return nil, &SyntaxError{Msg: fmt.Sprintf("attribute %q redefined", name), Line: line}
				}
				el.Attributes().SetValue(name, attr.Value)
			}
			if _, err := parent.AppendChildWithError(el.AsNode()); err != nil {
				return nil, &SyntaxError{Msg: "markup after the document element is not allowed", Line: line}
			}
			stack = append(stack, el.AsNode())

		case xml.EndElement:
			name := qualifiedName(t.Name)
			if len(stack) == 1 {
				return nil, &SyntaxError{Msg: fmt.Sprintf("unexpected end element </%s>", name), Line: line}
			}
			if parent.nodeName != name {
				return nil, &SyntaxError{Msg: fmt.Sprintf("element <%s> closed by </%s>", parent.nodeName, name), Line: line}
			}
			stack = stack[:len(stack)-1]

		case xml.CharData:
			text := string(t)
			if parent.nodeType == DocumentNode {
				if strings.TrimSpace(text) != "" {
					return nil, &SyntaxError{Msg: "content is not allowed outside the document element", Line: line}
				}
				continue
			}
			if opts.TrimWhitespace && strings.TrimSpace(text) == "" {
				continue
			}
			if last := parent.lastChild; last != nil && last.nodeType == TextNode {
				last.SetNodeValue(last.NodeValue() + text)
				continue
			}
			parent.AppendChild(doc.CreateTextNode(text))

		case xml.Comment:
			parent.AppendChild(doc.CreateComment(string(t)))

		case xml.ProcInst:
			if t.Target == "xml" {
				if parent.nodeType != DocumentNode || parent.firstChild != nil {
					return nil, &SyntaxError{Msg: "XML declaration allowed only at the start of the document", Line: line}
				}
				data := doc.AsNode().documentData
				if v := procInstParam("version", string(t.Inst)); v != "" {
					data.xmlVersion = v
				}
				data.encoding = procInstParam("encoding", string(t.Inst))
				continue
			}
			pi, err := doc.CreateProcessingInstructionWithError(t.Target, string(t.Inst))
			if err != nil {
				return nil, &SyntaxError{Msg: err.Error(), Line: line}
			}
			parent.AppendChild(pi)

		case xml.Directive:
			if doctype := parseDoctype(doc, string(t)); doctype != nil {
				if _, err := parent.AppendChildWithError(doctype); err != nil {
					return nil, &SyntaxError{Msg: "misplaced DOCTYPE declaration", Line: line}
				}
			}
		}
	}

	if len(stack) > 1 {
		return nil, &SyntaxError{Msg: fmt.Sprintf("unexpected EOF: element <%s> is not closed", stack[len(stack)-1].nodeName)}
	}
	if doc.DocumentElement() == nil {
		return nil, &SyntaxError{Msg: "document has no root element"}
	}
	return doc, nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// skipBOM drops a leading UTF-8 byte order mark.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, _ := br.Peek(len(utf8BOM)); bytes.Equal(head, utf8BOM) {
		br.Discard(len(utf8BOM))
	}
	return br
}

// ParseXMLString parses an XML document held in a string.
func ParseXMLString(s string, opts ParseOptions) (*Document, error) {
	return ParseXML(strings.NewReader(s), opts)
}

// qualifiedName rebuilds the name as written from a raw token name,
// where Space holds the prefix.
func qualifiedName(name xml.Name) string {
	if name.Space != "" {
		return name.Space + ":" + name.Local
	}
	return name.Local
}

// procInstParam returns the value of param in the pseudo-attributes of an
// XML declaration, e.g. version="1.0".
func procInstParam(param, s string) string {
	idx := strings.Index(s, param)
	for idx >= 0 {
		rest := strings.TrimLeft(s[idx+len(param):], " \t\r\n")
		if strings.HasPrefix(rest, "=") {
			rest = strings.TrimLeft(rest[1:], " \t\r\n")
			if rest != "" && (rest[0] == '"' || rest[0] == '\'') {
				if end := strings.IndexByte(rest[1:], rest[0]); end >= 0 {
					return rest[1 : end+1]
				}
			}
			return ""
		}
		next := strings.Index(s[idx+len(param):], param)
		if next < 0 {
			break
		}
		idx += len(param) + next
	}
	return ""
}

// parseDoctype builds a DocumentType node from a <!DOCTYPE ...> directive.
// Internal subsets are not interpreted. Other directives return nil.
func parseDoctype(doc *Document, directive string) *Node {
	if !strings.HasPrefix(strings.ToUpper(directive), "DOCTYPE") {
		return nil
	}
	body := directive[len("DOCTYPE"):]
	if i := strings.IndexByte(body, '['); i >= 0 {
		body = body[:i]
	}
	parts := strings.Fields(body)
	if len(parts) == 0 {
		return nil
	}

	var publicId, systemId string
	ids := quotedStrings(strings.Join(parts[1:], " "))
	if len(parts) > 1 {
		switch strings.ToUpper(parts[1]) {
		case "PUBLIC":
			if len(ids) > 0 {
				publicId = ids[0]
			}
			if len(ids) > 1 {
				systemId = ids[1]
			}
		case "SYSTEM":
			if len(ids) > 0 {
				systemId = ids[0]
			}
		}
	}
	return doc.CreateDocumentType(parts[0], publicId, systemId)
}

// quotedStrings returns the contents of the single- or double-quoted strings in s.
func quotedStrings(s string) []string {
	var out []string
	for {
		start := strings.IndexAny(s, `"'`)
		if start < 0 {
			return out
		}
		end := strings.IndexByte(s[start+1:], s[start])
		if end < 0 {
			return out
		}
		out = append(out, s[start+1:start+1+end])
		s = s[start+end+2:]
	}
}
