package runtime

import (
	"reflect"

	"github.com/tideui/tide/pkg/vdom"
)

// Invoker is the stable wrapper installed for an event prop. When the
// handler value changes between renders, only the inner reference is
// swapped; the host backend never sees a remove/attach pair, so listener
// registration happens exactly once per (node, event).
type Invoker struct {
	handler any
}

// Call dispatches the event to the current handler. Handlers may be
// func(), func(any), or func(...any)-shaped closures.
func (iv *Invoker) Call(args ...any) {
	switch fn := iv.handler.(type) {
	case nil:
	case func():
		fn()
	case func(any):
		var arg any
		if len(args) > 0 {
			arg = args[0]
		}
		fn(arg)
	case func(...any):
		fn(args...)
	default:
		callReflected(fn, args)
	}
}

// Handler returns the current inner handler.
func (iv *Invoker) Handler() any {
	return iv.handler
}

// callReflected covers handler shapes beyond the fast-path signatures.
func callReflected(fn any, args []any) {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return
	}
	t := v.Type()
	in := make([]reflect.Value, t.NumIn())
	for i := range in {
		if i < len(args) && args[i] != nil {
			in[i] = reflect.ValueOf(args[i])
		} else {
			in[i] = reflect.Zero(t.In(i))
		}
	}
	v.Call(in)
}

// hostPatchProp routes one prop change to the host, special-casing event
// props through the invoker table.
func (r *Renderer) hostPatchProp(el any, key string, prev, next any, parent *ComponentInstance) {
	if vdom.IsEventProp(key) {
		r.patchEvent(el, key, next)
		return
	}
	r.ops.PatchProp(el, key, prev, next, "")
}

func (r *Renderer) patchEvent(el any, key string, next any) {
	table := r.invokers[el]
	existing := table[key]

	switch {
	case next == nil && existing != nil:
		delete(table, key)
		r.ops.PatchProp(el, key, existing, nil, "")
	case next != nil && existing != nil:
		// Hot path: swap the inner reference, no host call needed.
		existing.handler = next
	case next != nil:
		iv := &Invoker{handler: next}
		if table == nil {
			table = make(map[string]*Invoker)
			r.invokers[el] = table
		}
		table[key] = iv
		r.ops.PatchProp(el, key, nil, iv, "")
	}
}

// InvokerFor returns the installed invoker for an event prop on a host
// node, if any. Event dispatchers (package live, tests) use it to route
// host events back into handler code.
func (r *Renderer) InvokerFor(el any, key string) *Invoker {
	return r.invokers[el][key]
}

// patchProps diffs the full union of old and new prop sets.
func (r *Renderer) patchProps(el any, oldProps, nextProps vdom.Props, parent *ComponentInstance) {
	for key, old := range oldProps {
		if _, ok := nextProps[key]; !ok {
			r.hostPatchProp(el, key, old, nil, parent)
		}
	}
	for key, next := range nextProps {
		if old, ok := oldProps[key]; !ok || !propEqual(old, next) {
			r.hostPatchProp(el, key, old, next, parent)
		}
	}
}

// patchSingleProp patches one named prop if its value changed.
func (r *Renderer) patchSingleProp(el any, key string, oldProps, nextProps vdom.Props, parent *ComponentInstance) {
	old, next := oldProps[key], nextProps[key]
	if !propEqual(old, next) {
		r.hostPatchProp(el, key, old, next, parent)
	}
}

// propEqual is reference/shallow inequality: comparable values compare
// directly, functions always count as changed (their identity is
// irrelevant thanks to invokers), everything else falls back to deep
// equality.
func propEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Kind() == reflect.Func {
		return false
	}
	if ta.Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}
