package xmlnode

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// tree is the part of a document that must survive a save and re-parse.
type tree struct {
	Name     string
	Attrs    map[string]string
	Text     []string
	Children []tree
}

func summarize(el *Element) tree {
	t := tree{Name: el.Name(), Attrs: el.Attributes(), Text: el.TextValues()}
	for _, child := range el.Elements() {
		t.Children = append(t.Children, summarize(child))
	}
	return t
}

func TestParse_Simple(t *testing.T) {
	doc, err := ParseString(`<root><age>5</age></root>`)
	if err != nil {
		t.Fatal(err)
	}
	root, ok := doc.Root()
	if !ok {
		t.Fatal("expected a root element")
	}
	if v, err := root.GetInt32Value("age"); err != nil || v != 5 {
		t.Errorf("GetInt32Value(age) = %v, %v", v, err)
	}
}

func TestParse_BOM(t *testing.T) {
	for _, input := range []string{
		"\ufeff<r><a>1</a></r>",
		"\ufeff<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<r><a>1</a></r>",
	} {
		doc, err := ParseString(input)
		if err != nil {
			t.Fatalf("ParseString(%q) error = %v", input, err)
		}
		root, _ := doc.Root()
		if v, err := root.GetInt32Value("a"); err != nil || v != 1 {
			t.Errorf("GetInt32Value(a) = %v, %v", v, err)
		}
	}
	if _, err := ParseString("<r/>\ufeff"); !errors.Is(err, ErrParse) {
		t.Errorf("a BOM after the root element is content, got %v", err)
	}
}

func TestParse_Malformed(t *testing.T) {
	inputs := []string{
		`<root><age>5</age>`,
		`<root><age>5</root>`,
		`<root></root><second/>`,
		`not xml`,
		``,
	}
	for _, input := range inputs {
		doc, err := ParseString(input)
		if !errors.Is(err, ErrParse) {
			t.Errorf("ParseString(%q): expected ErrParse, got %v", input, err)
		}
		if doc != nil {
			t.Errorf("ParseString(%q) returned a partial document", input)
		}
	}
}

func TestParse_TrimWhitespace(t *testing.T) {
	input := "<r>\n  <a>1</a>\n  <b> 2 </b>\n</r>"

	doc, err := ParseString(input)
	if err != nil {
		t.Fatal(err)
	}
	root, _ := doc.Root()
	if n := len(root.TextValues()); n != 3 {
		t.Errorf("whitespace between elements should be kept by default, got %d text values", n)
	}

	doc, err = ParseString(input, WithTrimWhitespace(true))
	if err != nil {
		t.Fatal(err)
	}
	root, _ = doc.Root()
	if n := len(root.TextValues()); n != 0 {
		t.Errorf("whitespace-only text should be dropped, got %d text values", n)
	}
	if v, _ := root.GetString("b"); v != " 2 " {
		t.Errorf("text with content is kept whole, got %q", v)
	}
}

func TestSave(t *testing.T) {
	doc := NewDocument()
	root, _ := doc.NewElement("config")
	if err := doc.Append(root); err != nil {
		t.Fatal(err)
	}
	if err := root.Set("name", "a & b"); err != nil {
		t.Fatal(err)
	}
	if err := root.SetAttribute("version", 2); err != nil {
		t.Fatal(err)
	}
	if err := root.Append(doc.NewComment("end")); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := Save(doc, &buf); err != nil {
		t.Fatal(err)
	}
	want := `<?xml version="1.0" encoding="UTF-8"?>` + "\n" + `<config version="2"><name>a &amp; b</name><!--end--></config>`
	if buf.String() != want {
		t.Errorf("Save() =\n%s\nwant\n%s", buf.String(), want)
	}

	buf.Reset()
	if err := Save(doc, &buf, WithDeclaration(false), WithIndent("  ")); err != nil {
		t.Fatal(err)
	}
	want = "<config version=\"2\">\n  <name>a &amp; b</name>\n  <!--end-->\n</config>\n"
	if buf.String() != want {
		t.Errorf("indented Save() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestSave_SortedAttributes(t *testing.T) {
	doc, err := ParseString(`<r z="1" a="2"/>`)
	if err != nil {
		t.Fatal(err)
	}
	out, err := Marshal(doc, WithDeclaration(false), WithSortedAttributes(true))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(out), `<r a="2" z="1"/>`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestSave_Errors(t *testing.T) {
	doc := NewDocument()
	root, _ := doc.NewElement("r")
	_ = doc.Append(root)
	_ = root.Append(doc.NewComment("a--b"))

	var buf bytes.Buffer
	if err := Save(doc, &buf); !errors.Is(err, ErrSerialize) {
		t.Errorf("expected ErrSerialize for an unrepresentable comment, got %v", err)
	}

	doc, err := ParseString(`<r/>`)
	if err != nil {
		t.Fatal(err)
	}
	root, _ = doc.Root()
	if err := root.Set("v", "a\x01b"); err != nil {
		t.Fatal(err)
	}
	if _, err := Marshal(doc); !errors.Is(err, ErrSerialize) {
		t.Errorf("expected ErrSerialize for a control character in text, got %v", err)
	}
	_ = root.Set("v", "ok")
	if err := root.SetAttribute("k", "\xff"); err != nil {
		t.Fatal(err)
	}
	if err := Save(doc, &buf); !errors.Is(err, ErrSerialize) {
		t.Errorf("expected ErrSerialize for invalid UTF-8 in an attribute, got %v", err)
	}

	if err := Save(nil, &buf); !errors.Is(err, ErrSerialize) {
		t.Errorf("expected ErrSerialize for a nil document, got %v", err)
	}
	if err := Save(NewDocument(), failingWriter{}); !errors.Is(err, ErrSerialize) {
		t.Errorf("expected ErrSerialize for a failing writer, got %v", err)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		`<root><age>5</age></root>`,
		`<?xml version="1.0"?><cfg env="prod" id="7"><name>a &lt; b</name><list><i>1</i><i>2</i></list><!--x--></cfg>`,
		"<r>\n  <a k=\"v\">text</a>\n  <b/>\n</r>",
		`<p:doc xmlns:p="urn:p"><p:item p:attr="1"/></p:doc>`,
	}
	for _, input := range inputs {
		doc, err := ParseString(input)
		if err != nil {
			t.Fatal(err)
		}
		out, err := Marshal(doc)
		if err != nil {
			t.Fatal(err)
		}
		again, err := ParseBytes(out)
		if err != nil {
			t.Fatalf("re-parse of %s: %v", out, err)
		}

		root, _ := doc.Root()
		root2, _ := again.Root()
		if diff := cmp.Diff(summarize(root), summarize(root2)); diff != "" {
			t.Errorf("round trip of %q changed the tree (-before +after):\n%s", input, diff)
		}
	}
}

func TestParseFile_SaveFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.xml")
	if err := os.WriteFile(path, []byte(`<config><retries>3</retries></config>`), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := ParseFile(path)
	if err != nil {
		t.Fatal(err)
	}
	root, _ := doc.Root()
	if err := root.Set("retries", 4); err != nil {
		t.Fatal(err)
	}
	if err := SaveFile(doc, path); err != nil {
		t.Fatal(err)
	}

	again, err := ParseFile(path)
	if err != nil {
		t.Fatal(err)
	}
	root, _ = again.Root()
	if v, err := root.GetInt32Value("retries"); err != nil || v != 4 {
		t.Errorf("GetInt32Value(retries) = %v, %v", v, err)
	}
}

func TestParseFile_Missing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "missing.xml"))
	if !errors.Is(err, ErrParse) {
		t.Errorf("expected ErrParse, got %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("the os error should be preserved, got %v", err)
	}
}

func TestSaveFile_BadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no", "such", "dir", "out.xml")
	if err := SaveFile(NewDocument(), path); !errors.Is(err, ErrSerialize) {
		t.Errorf("expected ErrSerialize, got %v", err)
	}
}

func TestParseHTML(t *testing.T) {
	doc, err := ParseHTML(strings.NewReader(`<p id="x">Hello<br>world</p>`))
	if err != nil {
		t.Fatal(err)
	}
	root, ok := doc.Root()
	if !ok || root.Name() != "html" {
		t.Fatal("expected an html root")
	}
	body, ok := root.Element("body")
	if !ok {
		t.Fatal("expected a body")
	}
	p, ok := body.Element("p")
	if !ok {
		t.Fatal("expected a p")
	}
	if id, _ := p.Attribute("id"); id != "x" {
		t.Errorf("id = %q", id)
	}
	if diff := cmp.Diff([]string{"Hello", "world"}, p.TextValues()); diff != "" {
		t.Errorf("TextValues() mismatch (-want +got):\n%s", diff)
	}

	out, err := Marshal(doc, WithDeclaration(false))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), `<p id="x">Hello<br/>world</p>`) {
		t.Errorf("HTML should serialize as XML, got %s", out)
	}
}

func TestParseHTML_InvalidElementName(t *testing.T) {
	doc, err := ParseHTML(strings.NewReader(`<p><a"b>x</a"b></p>`))
	if err != nil {
		t.Fatalf("ParseHTML: %v", err)
	}
	root, _ := doc.Root()
	body, _ := root.Element("body")
	p, ok := body.Element("p")
	if !ok {
		t.Fatal("expected a p")
	}
	if diff := cmp.Diff([]string{"x"}, p.TextValues()); diff != "" {
		t.Errorf("TextValues() mismatch (-want +got):\n%s", diff)
	}
	if len(p.Elements()) != 0 {
		t.Errorf("the unnamed element should be unwrapped, got %d elements", len(p.Elements()))
	}
}

func TestAppendHTML(t *testing.T) {
	doc, err := ParseString(`<r><a/></r>`)
	if err != nil {
		t.Fatal(err)
	}
	root, _ := doc.Root()
	if err := root.AppendHTML(`<!DOCTYPE html><b class="k">x</b>text<!--c--><br>`); err != nil {
		t.Fatalf("AppendHTML: %v", err)
	}

	var kinds []string
	for _, child := range root.Children() {
		kinds = append(kinds, child.Kind().String())
	}
	want := []string{"element", "element", "text", "comment", "element"}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("child kinds mismatch (-want +got):\n%s", diff)
	}

	out, err := Marshal(doc, WithDeclaration(false))
	if err != nil {
		t.Fatal(err)
	}
	if want := `<r><a/><b class="k">x</b>text<!--c--><br/></r>`; string(out) != want {
		t.Errorf("Marshal = %s, want %s", out, want)
	}
}

func TestWithLogger(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	doc, err := ParseString(`<app/>`, WithLogger(logger))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(logs.String(), "parsed document") || !strings.Contains(logs.String(), "root=app") {
		t.Errorf("expected a parse log line, got %q", logs.String())
	}

	if _, err := ParseString(`<broken>`, WithLogger(logger)); err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(logs.String(), "parse failed") {
		t.Errorf("expected a failure log line, got %q", logs.String())
	}

	logs.Reset()
	if _, err := Marshal(doc, WithLogger(logger)); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(logs.String(), "saved document") {
		t.Errorf("expected a save log line, got %q", logs.String())
	}

	// A nil logger keeps the silent default.
	if _, err := ParseString(`<app/>`, WithLogger(nil)); err != nil {
		t.Fatal(err)
	}
}
