// This file re-exports vdom event helpers for the el package.
package el

import "github.com/tideui/tide/pkg/vdom"

func OnClick(handler any) EventHandler {
	return vdom.OnClick(handler)
}
func OnDblClick(handler any) EventHandler {
	return vdom.OnDblClick(handler)
}
func OnMouseDown(handler any) EventHandler {
	return vdom.OnMouseDown(handler)
}
func OnMouseUp(handler any) EventHandler {
	return vdom.OnMouseUp(handler)
}
func OnMouseEnter(handler any) EventHandler {
	return vdom.OnMouseEnter(handler)
}
func OnMouseLeave(handler any) EventHandler {
	return vdom.OnMouseLeave(handler)
}
func OnKeyDown(handler any) EventHandler {
	return vdom.OnKeyDown(handler)
}
func OnKeyUp(handler any) EventHandler {
	return vdom.OnKeyUp(handler)
}
func OnInput(handler any) EventHandler {
	return vdom.OnInput(handler)
}
func OnChange(handler any) EventHandler {
	return vdom.OnChange(handler)
}
func OnSubmit(handler any) EventHandler {
	return vdom.OnSubmit(handler)
}
func OnFocus(handler any) EventHandler {
	return vdom.OnFocus(handler)
}
func OnBlur(handler any) EventHandler {
	return vdom.OnBlur(handler)
}
func OnScroll(handler any) EventHandler {
	return vdom.OnScroll(handler)
}
func On(name string, handler any) EventHandler {
	return vdom.On(name, handler)
}
