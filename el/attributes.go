// This file re-exports vdom attribute helpers for the el package.
package el

import "github.com/tideui/tide/pkg/vdom"

func ID(id string) Attr {
	return vdom.ID(id)
}
func Class(names ...string) Attr {
	return vdom.Class(names...)
}
func ClassIf(pairs ...ClassPair) Attr {
	return vdom.ClassIf(pairs...)
}
func Style(css string) Attr {
	return vdom.Style(css)
}
func Href(url string) Attr {
	return vdom.Href(url)
}
func Src(url string) Attr {
	return vdom.Src(url)
}
func Alt(text string) Attr {
	return vdom.Alt(text)
}
func Title(text string) Attr {
	return vdom.Title(text)
}
func Value(v any) Attr {
	return vdom.Value(v)
}
func Placeholder(text string) Attr {
	return vdom.Placeholder(text)
}
func Type(t string) Attr {
	return vdom.Type(t)
}
func Name(n string) Attr {
	return vdom.Name(n)
}
func For(id string) Attr {
	return vdom.For(id)
}
func Disabled(on bool) Attr {
	return vdom.Disabled(on)
}
func Checked(on bool) Attr {
	return vdom.Checked(on)
}
func Data(suffix string, value any) Attr {
	return vdom.Data(suffix, value)
}
func Custom(key string, value any) Attr {
	return vdom.Custom(key, value)
}
