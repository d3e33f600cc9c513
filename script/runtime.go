// Package script runs JavaScript against an xmlnode document.
// It uses the goja JavaScript engine (pure Go ES5.1+ implementation).
package script

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/dop251/goja"

	"github.com/chrisuehlinger/xmlnode/dom"
	"github.com/chrisuehlinger/xmlnode/xmlnode"
)

// Runtime wraps a goja runtime with a bound document and a console.
type Runtime struct {
	vm      *goja.Runtime
	logger  *slog.Logger
	doc     *xmlnode.Document
	nodeMap map[*dom.Node]*goja.Object // same JS object for the same native node
	mu      sync.Mutex
	errors  []error
}

// NewRuntime creates a runtime whose console writes to logger.
// A nil logger discards console output.
func NewRuntime(logger *slog.Logger) *Runtime {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	r := &Runtime{
		vm:      goja.New(),
		logger:  logger,
		nodeMap: make(map[*dom.Node]*goja.Object),
	}
	r.setupConsole()
	return r
}

// SetDocument binds doc as the global "document". A nil doc binds null.
func (r *Runtime) SetDocument(doc *xmlnode.Document) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.doc = doc
	clear(r.nodeMap)
	if doc == nil {
		r.vm.Set("document", goja.Null())
		return
	}
	r.vm.Set("document", r.bindNode(doc))
}

// Document returns the bound document, or nil.
func (r *Runtime) Document() *xmlnode.Document {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.doc
}

// Execute runs code and returns its completion value.
// Errors thrown by the document bindings unwrap to the xmlnode error.
func (r *Runtime) Execute(code string) (goja.Value, error) {
	return r.Run(code, "<eval>")
}

// ExecuteScript compiles and runs code attributed to src, in sloppy mode
// unless the script opts into "use strict".
func (r *Runtime) ExecuteScript(code, src string) error {
	_, err := r.Run(code, src)
	return err
}

// Run compiles code attributed to src and returns its completion value.
func (r *Runtime) Run(code, src string) (result goja.Value, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// The goja compiler can panic on some malformed input.
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("script panic in %s: %v", src, p)
			r.record(src, err)
		}
	}()

	program, err := goja.Compile(src, code, false)
	if err != nil {
		r.record(src, err)
		return nil, err
	}
	result, err = r.vm.RunProgram(program)
	if err != nil {
		r.record(src, err)
		return nil, err
	}
	return result, nil
}

func (r *Runtime) record(src string, err error) {
	r.errors = append(r.errors, err)
	r.logger.Debug("script failed", "src", src, "err", err)
}

// Errors returns every error raised by Execute and ExecuteScript so far.
func (r *Runtime) Errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]error{}, r.errors...)
}

// ClearErrors clears the error list.
func (r *Runtime) ClearErrors() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = r.errors[:0]
}

// setupConsole creates the console object. Each method logs one record at
// the matching slog level.
func (r *Runtime) setupConsole() {
	console := r.vm.NewObject()

	levels := map[string]slog.Level{
		"log":   slog.LevelInfo,
		"info":  slog.LevelInfo,
		"debug": slog.LevelDebug,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for name, level := range levels {
		console.Set(name, func(call goja.FunctionCall) goja.Value {
			r.logger.Log(context.Background(), level, formatArgs(call.Arguments), "source", "console")
			return goja.Undefined()
		})
	}

	console.Set("assert", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 || !call.Arguments[0].ToBoolean() {
			msg := "Assertion failed"
			if len(call.Arguments) > 1 {
				msg = formatArgs(call.Arguments[1:])
			}
			r.logger.Error(msg, "source", "console")
		}
		return goja.Undefined()
	})

	r.vm.Set("console", console)
}

// formatArgs joins console arguments with spaces.
func formatArgs(args []goja.Value) string {
	var b strings.Builder
	for i, arg := range args {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(formatValue(arg))
	}
	return b.String()
}

func formatValue(v goja.Value) string {
	if v == nil || goja.IsUndefined(v) {
		return "undefined"
	}
	if goja.IsNull(v) {
		return "null"
	}
	return v.String()
}
