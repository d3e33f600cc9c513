// Package cli implements the xmlnode command.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dop251/goja"

	"github.com/chrisuehlinger/xmlnode/export"
	"github.com/chrisuehlinger/xmlnode/network"
	"github.com/chrisuehlinger/xmlnode/script"
	"github.com/chrisuehlinger/xmlnode/xmldiff"
	"github.com/chrisuehlinger/xmlnode/xmlnode"
)

// errDifferent is returned by diff when the documents differ. It sets the
// exit status without logging.
var errDifferent = errors.New("documents differ")

type command struct {
	name  string
	usage string
	run   func(a *app, args []string) error
}

var commands = []command{
	{"get", "get FILE PATH", (*app).get},
	{"set", "set [-o OUT] FILE PATH VALUE", (*app).set},
	{"fmt", "fmt [-html] [-indent S] [-sort] FILE", (*app).format},
	{"diff", "diff [-U N] A B", (*app).diff},
	{"yaml", "yaml [-d] FILE", (*app).yaml},
	{"eval", "eval [-w] [-f SCRIPT_FILE] FILE [SCRIPT]", (*app).eval},
}

type app struct {
	cfg    Config
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
	loader *network.Loader
}

// Run executes the command named by args[0] and returns the exit status.
func Run(args []string, stdout, stderr io.Writer) int {
	cfg := LoadConfig()
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	a := &app{
		cfg:    cfg,
		stdout: stdout,
		stderr: stderr,
		logger: logger,
		loader: network.NewLoader(network.NewClient(network.WithTimeout(cfg.Timeout)), network.WithLogger(logger)),
	}

	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		a.usage()
		if len(args) == 0 {
			return 1
		}
		return 0
	}

	for _, cmd := range commands {
		if cmd.name != args[0] {
			continue
		}
		err := cmd.run(a, args[1:])
		switch {
		case err == nil:
			return 0
		case errors.Is(err, errDifferent), errors.Is(err, flag.ErrHelp):
		default:
			a.logger.Error("command failed", "cmd", cmd.name, "err", err)
		}
		return 1
	}

	a.logger.Error("unknown command", "cmd", args[0])
	a.usage()
	return 1
}

func (a *app) usage() {
	fmt.Fprintf(a.stderr, "Usage: xmlnode <command> [options] args\n\nCommands:\n")
	for _, cmd := range commands {
		fmt.Fprintf(a.stderr, "  %s\n", cmd.usage)
	}
	fmt.Fprintf(a.stderr, "\nPaths are element names separated by '/', starting below the root.\n")
}

func (a *app) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

// load reads a document from a path, a file, data or http(s) URL.
func (a *app) load(location string, trim, asHTML bool) (*xmlnode.Document, error) {
	return a.loader.LoadDocument(context.Background(), location, asHTML,
		xmlnode.WithLogger(a.logger),
		xmlnode.WithTrimWhitespace(trim),
	)
}

// writable returns the local path a document loaded from location is saved to.
func writable(location string) (string, error) {
	if !network.IsLocal(location) {
		return "", fmt.Errorf("cannot write back to %s", location)
	}
	return network.FilePath(location)
}

func (a *app) get(args []string) error {
	fs := a.flags("get")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("usage: xmlnode get FILE PATH")
	}

	doc, err := a.load(fs.Arg(0), a.cfg.TrimWhitespace, false)
	if err != nil {
		return err
	}
	parent, name, err := resolve(doc, fs.Arg(1))
	if err != nil {
		return err
	}
	value, ok := parent.GetString(name)
	if !ok {
		return fmt.Errorf("%s: no text at %s", fs.Arg(0), fs.Arg(1))
	}
	fmt.Fprintln(a.stdout, value)
	return nil
}

func (a *app) set(args []string) error {
	fs := a.flags("set")
	out := fs.String("o", "", "Write the result to `file` instead of FILE")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 3 {
		return fmt.Errorf("usage: xmlnode set [-o OUT] FILE PATH VALUE")
	}

	location := fs.Arg(0)
	path := *out
	if path == "" {
		var err error
		if path, err = writable(location); err != nil {
			return err
		}
	}
	doc, err := a.load(location, a.cfg.TrimWhitespace, false)
	if err != nil {
		return err
	}
	parent, name, err := resolve(doc, fs.Arg(1))
	if err != nil {
		return err
	}
	if err := parent.Set(name, fs.Arg(2)); err != nil {
		return err
	}
	return xmlnode.SaveFile(doc, path, xmlnode.WithLogger(a.logger))
}

func (a *app) format(args []string) error {
	fs := a.flags("fmt")
	html := fs.Bool("html", false, "Parse FILE as HTML")
	indent := fs.String("indent", a.cfg.Indent, "Indentation `string`")
	sorted := fs.Bool("sort", false, "Sort attributes by name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: xmlnode fmt [-html] [-indent S] [-sort] FILE")
	}

	doc, err := a.load(fs.Arg(0), true, *html)
	if err != nil {
		return err
	}
	return xmlnode.Save(doc, a.stdout,
		xmlnode.WithLogger(a.logger),
		xmlnode.WithIndent(*indent),
		xmlnode.WithSortedAttributes(*sorted),
	)
}

func (a *app) diff(args []string) error {
	fs := a.flags("diff")
	context := fs.Int("U", 3, "Unchanged `lines` of context; negative shows everything")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("usage: xmlnode diff [-U N] A B")
	}

	left, err := a.load(fs.Arg(0), true, false)
	if err != nil {
		return err
	}
	right, err := a.load(fs.Arg(1), true, false)
	if err != nil {
		return err
	}
	if xmlnode.Equivalent(left, right) {
		return nil
	}
	lines, err := xmldiff.Diff(left, right)
	if err != nil {
		return err
	}
	if !xmldiff.Changed(lines) {
		return nil
	}
	if err := xmldiff.Write(a.stdout, lines, xmldiff.Options{
		Color:   a.cfg.colorFor(a.stdout),
		Context: *context,
	}); err != nil {
		return err
	}
	return errDifferent
}

func (a *app) yaml(args []string) error {
	fs := a.flags("yaml")
	decode := fs.Bool("d", false, "Read YAML from FILE and write XML")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: xmlnode yaml [-d] FILE")
	}

	if *decode {
		res, err := a.loader.Load(context.Background(), fs.Arg(0))
		if err != nil {
			return err
		}
		doc, err := export.FromYAML(res.Content)
		if err != nil {
			return err
		}
		return xmlnode.Save(doc, a.stdout, xmlnode.WithLogger(a.logger), xmlnode.WithIndent(a.cfg.Indent))
	}

	doc, err := a.load(fs.Arg(0), true, false)
	if err != nil {
		return err
	}
	out, err := export.ToYAML(doc)
	if err != nil {
		return err
	}
	_, err = a.stdout.Write(out)
	return err
}

func (a *app) eval(args []string) error {
	fs := a.flags("eval")
	write := fs.Bool("w", false, "Save the document back to FILE")
	scriptFile := fs.String("f", "", "Read the script from `file`")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var code, src string
	switch {
	case *scriptFile != "" && fs.NArg() == 1:
		data, err := os.ReadFile(*scriptFile)
		if err != nil {
			return err
		}
		code, src = string(data), *scriptFile
	case *scriptFile == "" && fs.NArg() == 2:
		code, src = fs.Arg(1), "<eval>"
	default:
		return fmt.Errorf("usage: xmlnode eval [-w] [-f SCRIPT_FILE] FILE [SCRIPT]")
	}

	location := fs.Arg(0)
	var path string
	if *write {
		var err error
		if path, err = writable(location); err != nil {
			return err
		}
	}
	doc, err := a.load(location, a.cfg.TrimWhitespace, false)
	if err != nil {
		return err
	}

	rt := script.NewRuntime(a.logger)
	rt.SetDocument(doc)
	result, err := rt.Run(code, src)
	if err != nil {
		return err
	}
	if result != nil && !goja.IsUndefined(result) {
		fmt.Fprintln(a.stdout, result.String())
	}
	if *write {
		return xmlnode.SaveFile(doc, path, xmlnode.WithLogger(a.logger))
	}
	return nil
}

// resolve walks every PATH segment but the last from the root element and
// returns the element reached with the last segment.
func resolve(doc *xmlnode.Document, path string) (*xmlnode.Element, string, error) {
	root, ok := doc.Root()
	if !ok {
		return nil, "", fmt.Errorf("document has no root element")
	}
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) == 0 || segments[len(segments)-1] == "" {
		return nil, "", fmt.Errorf("empty path %q", path)
	}

	el := root
	for i, name := range segments[:len(segments)-1] {
		next, ok := el.Element(name)
		if !ok {
			return nil, "", fmt.Errorf("no element %s", strings.Join(segments[:i+1], "/"))
		}
		el = next
	}
	return el, segments[len(segments)-1], nil
}
