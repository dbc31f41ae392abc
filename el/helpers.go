// This file re-exports vdom helper functions for the el package.
package el

import "github.com/tideui/tide/pkg/vdom"

func Text(content string) *VNode {
	return vdom.Text(content)
}
func TextDyn(content string) *VNode {
	return vdom.TextDyn(content)
}
func Textf(format string, args ...any) *VNode {
	return vdom.Textf(format, args...)
}
func Comment(text string) *VNode {
	return vdom.Comment(text)
}
func Static(content string) *VNode {
	return vdom.Static(content)
}
func Fragment(children ...any) *VNode {
	return vdom.Fragment(children...)
}
func Comp(c Component, key ...string) *VNode {
	return vdom.Comp(c, key...)
}
func Func(render func() *VNode) Component {
	return vdom.Func(render)
}
func Teleport(target string, children ...any) *VNode {
	return vdom.Teleport(target, children...)
}
func If(condition bool, node *VNode) *VNode {
	return vdom.If(condition, node)
}
func IfElse(condition bool, ifTrue, ifFalse *VNode) *VNode {
	return vdom.IfElse(condition, ifTrue, ifFalse)
}
func When(condition bool, fn func() *VNode) *VNode {
	return vdom.When(condition, fn)
}
func Range[T any](items []T, fn func(item T, index int) *VNode) []*VNode {
	return vdom.Range(items, fn)
}
func Repeat(n int, fn func(i int) *VNode) []*VNode {
	return vdom.Repeat(n, fn)
}
func Key(key any) Attr {
	return vdom.Key(key)
}
func Nothing() *VNode {
	return vdom.Nothing()
}
func Block(fn func() *VNode) *VNode {
	return vdom.Block(fn)
}
