package script

import (
	"github.com/dop251/goja"

	"github.com/chrisuehlinger/xmlnode/xmlnode"
)

// parent is the navigation and mutation surface shared by *xmlnode.Document
// and *xmlnode.Element.
type parent interface {
	xmlnode.Node
	Children() []xmlnode.Node
	Elements() []*xmlnode.Element
	Element(name string) (*xmlnode.Element, bool)
	ElementsNamed(name string) []*xmlnode.Element
	TextValues() []string
	GetString(name string) (string, bool)
	GetStrings(name string) []string
	GetInt64(name string) (int64, bool, error)
	GetFloat64(name string) (float64, bool, error)
	GetBool(name string) (bool, bool, error)
	Set(name string, value any) error
	SetText(value any) error
	SetAll(name string, values []any) error
	Append(node xmlnode.Node) error
	Replace(old, replacement xmlnode.Node) error
	Remove(child xmlnode.Node) error
	RemoveNamed(name string) int
}

// bindNode returns the JS object for node, creating it on first use.
func (r *Runtime) bindNode(node xmlnode.Node) goja.Value {
	if node == nil {
		return goja.Null()
	}
	if obj, ok := r.nodeMap[node.Native()]; ok {
		return obj
	}

	vm := r.vm
	obj := vm.NewObject()
	obj.DefineDataProperty("_goNode", vm.ToValue(node), goja.FLAG_FALSE, goja.FLAG_FALSE, goja.FLAG_FALSE)
	obj.DefineAccessorProperty("kind", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return vm.ToValue(node.Kind().String())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	obj.Set("equals", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(node.Equal(r.nodeArg(call, 0)))
	})

	switch n := node.(type) {
	case *xmlnode.Document:
		r.bindParent(obj, n)
		r.bindDocument(obj, n)
	case *xmlnode.Element:
		r.bindParent(obj, n)
		r.bindElement(obj, n)
	case *xmlnode.Text:
		r.bindValue(obj, n.Value, n.SetValue)
	case *xmlnode.Comment:
		r.bindValue(obj, n.Value, n.SetValue)
	}

	r.nodeMap[node.Native()] = obj
	return obj
}

func (r *Runtime) bindDocument(obj *goja.Object, doc *xmlnode.Document) {
	vm := r.vm

	obj.DefineAccessorProperty("root", vm.ToValue(func(goja.FunctionCall) goja.Value {
		if root, ok := doc.Root(); ok {
			return r.bindNode(root)
		}
		return goja.Null()
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.Set("createElement", func(call goja.FunctionCall) goja.Value {
		el, err := doc.NewElement(call.Argument(0).String())
		if err != nil {
			r.throw(err)
		}
		return r.bindNode(el)
	})
	obj.Set("createText", func(call goja.FunctionCall) goja.Value {
		return r.bindNode(doc.NewText(xmlnode.FormatValue(call.Argument(0).Export())))
	})
	obj.Set("createComment", func(call goja.FunctionCall) goja.Value {
		return r.bindNode(doc.NewComment(xmlnode.FormatValue(call.Argument(0).Export())))
	})
}

func (r *Runtime) bindElement(obj *goja.Object, el *xmlnode.Element) {
	vm := r.vm

	obj.DefineAccessorProperty("name", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return vm.ToValue(el.Name())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.Set("attributes", func(goja.FunctionCall) goja.Value {
		return vm.ToValue(el.Attributes())
	})
	obj.Set("getAttribute", func(call goja.FunctionCall) goja.Value {
		if v, ok := el.Attribute(call.Argument(0).String()); ok {
			return vm.ToValue(v)
		}
		return goja.Null()
	})
	obj.Set("hasAttribute", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(el.HasAttribute(call.Argument(0).String()))
	})
	obj.Set("setAttribute", func(call goja.FunctionCall) goja.Value {
		if err := el.SetAttribute(call.Argument(0).String(), call.Argument(1).Export()); err != nil {
			r.throw(err)
		}
		return goja.Undefined()
	})
	obj.Set("removeAttribute", func(call goja.FunctionCall) goja.Value {
		el.RemoveAttribute(call.Argument(0).String())
		return goja.Undefined()
	})
	obj.Set("appendHTML", func(call goja.FunctionCall) goja.Value {
		if err := el.AppendHTML(call.Argument(0).String()); err != nil {
			r.throw(err)
		}
		return goja.Undefined()
	})
}

// bindParent adds the children view, the scalar accessors and the mutation
// operations.
func (r *Runtime) bindParent(obj *goja.Object, p parent) {
	vm := r.vm

	obj.Set("children", func(goja.FunctionCall) goja.Value {
		children := p.Children()
		items := make([]any, len(children))
		for i, child := range children {
			items[i] = r.bindNode(child)
		}
		return vm.NewArray(items...)
	})
	obj.Set("elements", func(call goja.FunctionCall) goja.Value {
		var elements []*xmlnode.Element
		if arg := call.Argument(0); goja.IsUndefined(arg) {
			elements = p.Elements()
		} else {
			elements = p.ElementsNamed(arg.String())
		}
		return r.elementArray(elements)
	})
	obj.Set("element", func(call goja.FunctionCall) goja.Value {
		if el, ok := p.Element(call.Argument(0).String()); ok {
			return r.bindNode(el)
		}
		return goja.Null()
	})
	obj.Set("texts", func(goja.FunctionCall) goja.Value {
		return r.stringArray(p.TextValues())
	})

	obj.Set("get", func(call goja.FunctionCall) goja.Value {
		if v, ok := p.GetString(call.Argument(0).String()); ok {
			return vm.ToValue(v)
		}
		return goja.Null()
	})
	obj.Set("getAll", func(call goja.FunctionCall) goja.Value {
		return r.stringArray(p.GetStrings(call.Argument(0).String()))
	})
	obj.Set("getInt", func(call goja.FunctionCall) goja.Value {
		return r.scalar(p.GetInt64(call.Argument(0).String()))
	})
	obj.Set("getFloat", func(call goja.FunctionCall) goja.Value {
		return r.scalar(p.GetFloat64(call.Argument(0).String()))
	})
	obj.Set("getBool", func(call goja.FunctionCall) goja.Value {
		return r.scalar(p.GetBool(call.Argument(0).String()))
	})

	obj.Set("set", func(call goja.FunctionCall) goja.Value {
		r.check(p.Set(call.Argument(0).String(), call.Argument(1).Export()))
		return goja.Undefined()
	})
	obj.Set("setText", func(call goja.FunctionCall) goja.Value {
		r.check(p.SetText(call.Argument(0).Export()))
		return goja.Undefined()
	})
	obj.Set("setAll", func(call goja.FunctionCall) goja.Value {
		values, ok := call.Argument(1).Export().([]any)
		if !ok {
			panic(vm.NewTypeError("setAll: second argument must be an array"))
		}
		r.check(p.SetAll(call.Argument(0).String(), values))
		return goja.Undefined()
	})
	obj.Set("append", func(call goja.FunctionCall) goja.Value {
		r.check(p.Append(r.nodeArg(call, 0)))
		return goja.Undefined()
	})
	obj.Set("replace", func(call goja.FunctionCall) goja.Value {
		r.check(p.Replace(r.nodeArg(call, 0), r.nodeArg(call, 1)))
		return goja.Undefined()
	})
	obj.Set("remove", func(call goja.FunctionCall) goja.Value {
		r.check(p.Remove(r.nodeArg(call, 0)))
		return goja.Undefined()
	})
	obj.Set("removeNamed", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(p.RemoveNamed(call.Argument(0).String()))
	})
}

// bindValue adds a read-write "value" property for character data.
func (r *Runtime) bindValue(obj *goja.Object, get func() string, set func(string)) {
	vm := r.vm
	obj.DefineAccessorProperty("value", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return vm.ToValue(get())
	}), vm.ToValue(func(call goja.FunctionCall) goja.Value {
		set(xmlnode.FormatValue(call.Argument(0).Export()))
		return goja.Undefined()
	}), goja.FLAG_FALSE, goja.FLAG_TRUE)
}

func (r *Runtime) elementArray(elements []*xmlnode.Element) goja.Value {
	items := make([]any, len(elements))
	for i, el := range elements {
		items[i] = r.bindNode(el)
	}
	return r.vm.NewArray(items...)
}

func (r *Runtime) stringArray(values []string) goja.Value {
	items := make([]any, len(values))
	for i, v := range values {
		items[i] = v
	}
	return r.vm.NewArray(items...)
}

// scalar maps an accessor result to JS: null when the child is missing,
// a thrown error when its text does not parse.
func (r *Runtime) scalar(v any, ok bool, err error) goja.Value {
	r.check(err)
	if !ok {
		return goja.Null()
	}
	return r.vm.ToValue(v)
}

// nodeArg returns the node behind argument i, or nil if it is not a bound node.
func (r *Runtime) nodeArg(call goja.FunctionCall, i int) xmlnode.Node {
	obj, ok := call.Argument(i).(*goja.Object)
	if !ok {
		return nil
	}
	if v := obj.Get("_goNode"); v != nil && !goja.IsUndefined(v) {
		if node, ok := v.Export().(xmlnode.Node); ok {
			return node
		}
	}
	return nil
}

func (r *Runtime) check(err error) {
	if err != nil {
		r.throw(err)
	}
}

// throw raises err as a JS exception. Go callers recover it with
// errors.Is / errors.As on the error returned by Execute.
func (r *Runtime) throw(err error) {
	panic(r.vm.NewGoError(err))
}
