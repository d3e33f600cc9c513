package cli

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

const configXML = `<config><db><host>localhost</host><port>5432</port></db><name>app</name></config>`

func TestGet(t *testing.T) {
	path := writeFile(t, "c.xml", configXML)

	tests := []struct {
		path string
		want string
	}{
		{"name", "app\n"},
		{"db/host", "localhost\n"},
		{"/db/port/", "5432\n"},
	}
	for _, tt := range tests {
		code, out, errOut := run(t, "get", path, tt.path)
		if code != 0 {
			t.Fatalf("get %s: exit %d, stderr %s", tt.path, code, errOut)
		}
		if out != tt.want {
			t.Errorf("get %s = %q, want %q", tt.path, out, tt.want)
		}
	}
}

func TestGet_Errors(t *testing.T) {
	path := writeFile(t, "c.xml", configXML)
	bad := writeFile(t, "bad.xml", `<config>`)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing leaf", []string{"get", path, "db/user"}, "no text at db/user"},
		{"missing parent", []string{"get", path, "cache/size"}, "no element cache"},
		{"empty path", []string{"get", path, ""}, "empty path"},
		{"parse error", []string{"get", bad, "x"}, "parse error"},
		{"missing file", []string{"get", filepath.Join(t.TempDir(), "none.xml"), "x"}, "no such file"},
		{"wrong arity", []string{"get", path}, "usage"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, errOut := run(t, tt.args...)
			if code != 1 {
				t.Errorf("exit = %d, want 1", code)
			}
			if out != "" {
				t.Errorf("unexpected stdout %q", out)
			}
			if !strings.Contains(errOut, "command failed") || !strings.Contains(errOut, tt.want) {
				t.Errorf("stderr = %q, want it to mention %q", errOut, tt.want)
			}
		})
	}
}

func TestSet(t *testing.T) {
	path := writeFile(t, "c.xml", configXML)

	if code, _, errOut := run(t, "set", path, "db/port", "6543"); code != 0 {
		t.Fatalf("set: exit %d, stderr %s", code, errOut)
	}
	if code, _, errOut := run(t, "set", path, "db/user", "admin"); code != 0 {
		t.Fatalf("set: exit %d, stderr %s", code, errOut)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := `<?xml version="1.0" encoding="UTF-8"?>` + "\n" +
		`<config><db><host>localhost</host><port>6543</port><user>admin</user></db><name>app</name></config>`
	if string(data) != want {
		t.Errorf("file after set =\n%s\nwant\n%s", data, want)
	}
}

func TestGet_Locations(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.Write([]byte(configXML))
	}))
	defer server.Close()
	path := writeFile(t, "c.xml", configXML)

	for _, location := range []string{
		server.URL + "/config.xml",
		"file://" + path,
		"data:application/xml,%3Cconfig%3E%3Cdb%3E%3Chost%3Elocalhost%3C%2Fhost%3E%3C%2Fdb%3E%3C%2Fconfig%3E",
	} {
		code, out, errOut := run(t, "get", location, "db/host")
		if code != 0 || out != "localhost\n" {
			t.Errorf("get %s = %q (exit %d, stderr %s)", location, out, code, errOut)
		}
	}
}

func TestSet_RemoteLocation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(configXML))
	}))
	defer server.Close()

	code, _, errOut := run(t, "set", server.URL+"/c.xml", "name", "x")
	if code != 1 || !strings.Contains(errOut, "cannot write back") {
		t.Errorf("set on a URL: exit %d, stderr %q", code, errOut)
	}
	if code, _, _ := run(t, "eval", "-w", server.URL+"/c.xml", `1`); code != 1 {
		t.Errorf("eval -w on a URL: exit %d, want 1", code)
	}

	out := filepath.Join(t.TempDir(), "out.xml")
	if code, _, errOut := run(t, "set", "-o", out, server.URL+"/c.xml", "name", "x"); code != 0 {
		t.Fatalf("set -o from a URL: exit %d, stderr %s", code, errOut)
	}
	if _, got, _ := run(t, "get", out, "name"); got != "x\n" {
		t.Errorf("name = %q", got)
	}
}

func TestSet_Output(t *testing.T) {
	path := writeFile(t, "c.xml", configXML)
	out := filepath.Join(t.TempDir(), "out.xml")

	if code, _, errOut := run(t, "set", "-o", out, path, "name", "other"); code != 0 {
		t.Fatalf("set: exit %d, stderr %s", code, errOut)
	}
	if code, got, _ := run(t, "get", out, "name"); code != 0 || got != "other\n" {
		t.Errorf("get from -o file = %q (exit %d)", got, code)
	}
	if code, got, _ := run(t, "get", path, "name"); code != 0 || got != "app\n" {
		t.Errorf("the input file should be unchanged, got %q (exit %d)", got, code)
	}
}

func TestFmt(t *testing.T) {
	path := writeFile(t, "c.xml", "<r  b=\"1\" a=\"2\">\n<x>1</x>   <y/></r>")

	code, out, errOut := run(t, "fmt", "-sort", path)
	if code != 0 {
		t.Fatalf("fmt: exit %d, stderr %s", code, errOut)
	}
	want := `<?xml version="1.0" encoding="UTF-8"?>` + "\n<r a=\"2\" b=\"1\">\n  <x>1</x>\n  <y/>\n</r>\n"
	if out != want {
		t.Errorf("fmt =\n%q\nwant\n%q", out, want)
	}

	code, out, _ = run(t, "fmt", "-indent", "\t", path)
	if code != 0 || !strings.Contains(out, "\n\t<x>1</x>\n") {
		t.Errorf("fmt -indent tab = %q (exit %d)", out, code)
	}
}

func TestFmt_HTMLFromContentType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<p>one<br>two`))
	}))
	defer server.Close()

	code, out, errOut := run(t, "fmt", server.URL)
	if code != 0 {
		t.Fatalf("fmt: exit %d, stderr %s", code, errOut)
	}
	if !strings.Contains(out, "<p>one<br/>two</p>") {
		t.Errorf("fmt output:\n%s", out)
	}
}

func TestFmt_IndentFromEnv(t *testing.T) {
	t.Setenv("XMLNODE_INDENT", "    ")
	path := writeFile(t, "c.xml", `<r><x/></r>`)

	code, out, _ := run(t, "fmt", path)
	if code != 0 || !strings.Contains(out, "\n    <x/>\n") {
		t.Errorf("fmt with XMLNODE_INDENT = %q (exit %d)", out, code)
	}
}

func TestFmt_HTML(t *testing.T) {
	path := writeFile(t, "page.html", `<title>T</title><p>one<br>two`)

	code, out, errOut := run(t, "fmt", "-html", path)
	if code != 0 {
		t.Fatalf("fmt -html: exit %d, stderr %s", code, errOut)
	}
	for _, want := range []string{"<title>T</title>", "<p>one<br/>two</p>"} {
		if !strings.Contains(out, want) {
			t.Errorf("fmt -html output missing %q:\n%s", want, out)
		}
	}
}

func TestDiff(t *testing.T) {
	t.Setenv("XMLNODE_COLOR", "false")
	a := writeFile(t, "a.xml", `<r><x>1</x><y>2</y></r>`)
	b := writeFile(t, "b.xml", "<r>\n  <y>2</y>\n  <x>1</x>\n</r>")
	c := writeFile(t, "c.xml", `<r><x>1</x><y>3</y></r>`)

	if code, out, _ := run(t, "diff", a, a); code != 0 || out != "" {
		t.Errorf("identical files: exit %d, output %q", code, out)
	}

	code, out, errOut := run(t, "diff", a, c)
	if code != 1 {
		t.Errorf("different files: exit %d, want 1", code)
	}
	if errOut != "" {
		t.Errorf("a difference is not an error, stderr = %q", errOut)
	}
	want := "  <r>\n    <x>1</x>\n-   <y>2</y>\n+   <y>3</y>\n  </r>\n"
	if out != want {
		t.Errorf("diff =\n%q\nwant\n%q", out, want)
	}

	if code, out, _ := run(t, "diff", a, b); code != 1 || !strings.Contains(out, "<x>1</x>") {
		t.Errorf("reordered children should differ: exit %d, output %q", code, out)
	}
}

func TestDiff_Color(t *testing.T) {
	t.Setenv("XMLNODE_COLOR", "true")
	a := writeFile(t, "a.xml", `<r><x>1</x></r>`)
	b := writeFile(t, "b.xml", `<r><x>2</x></r>`)

	_, out, _ := run(t, "diff", a, b)
	if !strings.Contains(out, "\x1b[31m") || !strings.Contains(out, "\x1b[32m") {
		t.Errorf("expected ANSI colours, got %q", out)
	}
}

func TestYAML(t *testing.T) {
	path := writeFile(t, "c.xml", `<config id="1"><name>app</name></config>`)

	code, out, errOut := run(t, "yaml", path)
	if code != 0 {
		t.Fatalf("yaml: exit %d, stderr %s", code, errOut)
	}
	for _, want := range []string{"kind: document", "name: config", `id: "1"`, "value: app"} {
		if !strings.Contains(out, want) {
			t.Errorf("yaml output missing %q:\n%s", want, out)
		}
	}

	yamlPath := writeFile(t, "c.yaml", out)
	code, out, errOut = run(t, "yaml", "-d", yamlPath)
	if code != 0 {
		t.Fatalf("yaml -d: exit %d, stderr %s", code, errOut)
	}
	if !strings.Contains(out, `<config id="1">`) || !strings.Contains(out, "<name>app</name>") {
		t.Errorf("yaml -d output:\n%s", out)
	}
}

func TestEval(t *testing.T) {
	path := writeFile(t, "c.xml", configXML)

	code, out, errOut := run(t, "eval", path, `document.root.element("db").getInt("port") + 1`)
	if code != 0 {
		t.Fatalf("eval: exit %d, stderr %s", code, errOut)
	}
	if out != "5433\n" {
		t.Errorf("eval output = %q", out)
	}

	if code, out, _ := run(t, "eval", path, `var x = 1;`); code != 0 || out != "" {
		t.Errorf("undefined result should print nothing: exit %d, output %q", code, out)
	}
}

func TestEval_Write(t *testing.T) {
	path := writeFile(t, "c.xml", configXML)
	js := writeFile(t, "edit.js", `
		var db = document.root.element("db");
		db.set("host", "db.internal");
		db.remove(db.element("port"));
		console.log("edited");
	`)

	code, _, errOut := run(t, "eval", "-w", "-f", js, path)
	if code != 0 {
		t.Fatalf("eval -w: exit %d, stderr %s", code, errOut)
	}
	if strings.Contains(errOut, "edited") {
		t.Errorf("console.log is below the default log level, stderr = %q", errOut)
	}
	if _, got, _ := run(t, "get", path, "db/host"); got != "db.internal\n" {
		t.Errorf("db/host after eval -w = %q", got)
	}
	if code, _, _ := run(t, "get", path, "db/port"); code != 1 {
		t.Error("db/port should be removed")
	}
}

func TestEval_Errors(t *testing.T) {
	path := writeFile(t, "c.xml", configXML)

	code, _, errOut := run(t, "eval", path, `document.append(document.createElement("second"))`)
	if code != 1 || !strings.Contains(errOut, "illegal operation") {
		t.Errorf("exit %d, stderr %q", code, errOut)
	}
	if code, _, _ := run(t, "eval", path); code != 1 {
		t.Errorf("missing script: exit %d, want 1", code)
	}
}

func TestRun_Usage(t *testing.T) {
	code, _, errOut := run(t)
	if code != 1 || !strings.Contains(errOut, "Usage: xmlnode") {
		t.Errorf("no args: exit %d, stderr %q", code, errOut)
	}
	if code, _, _ := run(t, "help"); code != 0 {
		t.Errorf("help: exit %d, want 0", code)
	}
	code, _, errOut = run(t, "frobnicate")
	if code != 1 || !strings.Contains(errOut, "unknown command") {
		t.Errorf("unknown command: exit %d, stderr %q", code, errOut)
	}
	if code, _, _ := run(t, "get", "-h"); code != 1 {
		t.Errorf("get -h: exit %d, want 1", code)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("XMLNODE_INDENT", "\t")
	t.Setenv("XMLNODE_LOG_LEVEL", "debug")
	t.Setenv("XMLNODE_COLOR", "yes")
	t.Setenv("XMLNODE_TRIM", "true")
	t.Setenv("XMLNODE_TIMEOUT", "5s")

	cfg := LoadConfig()
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
	if cfg.Indent != "\t" {
		t.Errorf("Indent = %q", cfg.Indent)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v", cfg.LogLevel)
	}
	if cfg.Color != nil {
		t.Errorf("an unparsable XMLNODE_COLOR should leave Color unset, got %v", *cfg.Color)
	}
	if !cfg.TrimWhitespace {
		t.Error("TrimWhitespace should be true")
	}

	var buf bytes.Buffer
	if cfg.colorFor(&buf) {
		t.Error("a buffer is never a terminal")
	}
	on := true
	cfg.Color = &on
	if !cfg.colorFor(&buf) {
		t.Error("an explicit Color wins")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"XMLNODE_INDENT", "XMLNODE_LOG_LEVEL", "XMLNODE_COLOR", "XMLNODE_TRIM", "XMLNODE_TIMEOUT"} {
		t.Setenv(key, "")
	}
	cfg := LoadConfig()
	if cfg.Indent != "  " || cfg.LogLevel != slog.LevelWarn || cfg.Color != nil || cfg.TrimWhitespace || cfg.Timeout != 30*time.Second {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadConfig_BadTimeout(t *testing.T) {
	for _, v := range []string{"soon", "-1s", "0"} {
		t.Setenv("XMLNODE_TIMEOUT", v)
		if cfg := LoadConfig(); cfg.Timeout != 30*time.Second {
			t.Errorf("XMLNODE_TIMEOUT=%s: Timeout = %v", v, cfg.Timeout)
		}
	}
}
