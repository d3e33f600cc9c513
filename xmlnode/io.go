package xmlnode

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/chrisuehlinger/xmlnode/dom"
	"github.com/chrisuehlinger/xmlnode/html"
)

// Option configures Parse and Save.
type Option func(*options)

type options struct {
	logger         *slog.Logger
	indent         string
	declaration    bool
	trimWhitespace bool
	sortAttributes bool
}

func newOptions(opts []Option) options {
	o := options{
		logger:      slog.New(slog.DiscardHandler),
		declaration: true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the logger parse and save report to at debug level.
// By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithIndent makes Save put child elements on their own lines, indented
// by indent per level. Elements holding text are written inline.
func WithIndent(indent string) Option {
	return func(o *options) { o.indent = indent }
}

// WithDeclaration controls whether Save writes an XML declaration. It is
// written by default.
func WithDeclaration(declaration bool) Option {
	return func(o *options) { o.declaration = declaration }
}

// WithTrimWhitespace makes Parse drop text that is entirely whitespace,
// such as the indentation between elements.
func WithTrimWhitespace(trim bool) Option {
	return func(o *options) { o.trimWhitespace = trim }
}

// WithSortedAttributes makes Save write attributes in name order.
func WithSortedAttributes(sorted bool) Option {
	return func(o *options) { o.sortAttributes = sorted }
}

// Parse reads an XML document. Any failure matches ErrParse and no
// document is returned.
func Parse(r io.Reader, opts ...Option) (*Document, error) {
	o := newOptions(opts)
	native, err := dom.ParseXML(r, dom.ParseOptions{TrimWhitespace: o.trimWhitespace})
	if err != nil {
		o.logger.Debug("parse failed", "error", err)
		return nil, &Error{Op: "parse", Kind: ErrParse, Err: err}
	}
	doc := FromNative(native)
	if root, ok := doc.Root(); ok {
		o.logger.Debug("parsed document", "root", root.Name(), "encoding", native.InputEncoding())
	}
	return doc, nil
}

// ParseBytes parses an XML document held in memory.
func ParseBytes(data []byte, opts ...Option) (*Document, error) {
	return Parse(bytes.NewReader(data), opts...)
}

// ParseString parses an XML document held in a string.
func ParseString(s string, opts ...Option) (*Document, error) {
	return Parse(strings.NewReader(s), opts...)
}

// ParseFile parses the XML file at path. A file that cannot be opened is
// also reported as ErrParse; the os error stays reachable with errors.Is.
func ParseFile(path string, opts ...Option) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{Op: "parse", Kind: ErrParse, Err: err}
	}
	defer f.Close()
	return Parse(f, opts...)
}

// ParseHTML reads an HTML document and returns it as a tree of the same
// node kinds. Malformed HTML is repaired rather than rejected.
func ParseHTML(r io.Reader, opts ...Option) (*Document, error) {
	o := newOptions(opts)
	native, err := html.Parse(r)
	if err != nil {
		o.logger.Debug("html parse failed", "error", err)
		return nil, &Error{Op: "parse html", Kind: ErrParse, Err: err}
	}
	return FromNative(native), nil
}

// AppendHTML parses markup as HTML content of e, the way a browser parses
// innerHTML, and appends the resulting elements, text and comments. Nothing
// is appended when parsing fails.
func (e *Element) AppendHTML(markup string) error {
	doc, err := e.Owner()
	if err != nil {
		return err
	}
	nodes, err := html.ParseFragment(doc.NativeDocument(), strings.NewReader(markup), e.Name())
	if err != nil {
		return &Error{Op: "append html", Kind: ErrParse, Err: err}
	}
	for _, n := range nodes {
		if n.NodeType() == dom.DocumentTypeNode {
			continue
		}
		if _, err := e.n.AppendChildWithError(n); err != nil {
			return &Error{Op: "append html", Kind: ErrIllegalOperation, Err: err}
		}
	}
	return nil
}

// Save writes doc as XML to w. Any failure matches ErrSerialize.
func Save(doc *Document, w io.Writer, opts ...Option) error {
	o := newOptions(opts)
	if doc == nil {
		return &Error{Op: "save", Kind: ErrSerialize, Err: fmt.Errorf("nil document")}
	}
	err := dom.WriteXML(w, doc.Native(), dom.SerializeOptions{
		Declaration:    o.declaration,
		Indent:         o.indent,
		SortAttributes: o.sortAttributes,
	})
	if err != nil {
		o.logger.Debug("save failed", "error", err)
		return &Error{Op: "save", Kind: ErrSerialize, Err: err}
	}
	o.logger.Debug("saved document", "indent", o.indent != "", "declaration", o.declaration)
	return nil
}

// SaveFile writes doc to the file at path, creating or truncating it.
func SaveFile(doc *Document, path string, opts ...Option) error {
	f, err := os.Create(path)
	if err != nil {
		return &Error{Op: "save", Kind: ErrSerialize, Err: err}
	}
	if err := Save(doc, f, opts...); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return &Error{Op: "save", Kind: ErrSerialize, Err: err}
	}
	return nil
}

// Marshal returns doc serialized as XML.
func Marshal(doc *Document, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := Save(doc, &buf, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
