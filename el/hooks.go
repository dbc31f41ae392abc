// This file re-exports component lifecycle hooks for the el package.
package el

import "github.com/tideui/tide/pkg/runtime"

func OnBeforeMount(fn func()) {
	runtime.OnBeforeMount(fn)
}
func OnMounted(fn func()) {
	runtime.OnMounted(fn)
}
func OnBeforeUpdate(fn func()) {
	runtime.OnBeforeUpdate(fn)
}
func OnUpdated(fn func()) {
	runtime.OnUpdated(fn)
}
func OnBeforeUnmount(fn func()) {
	runtime.OnBeforeUnmount(fn)
}
func OnUnmounted(fn func()) {
	runtime.OnUnmounted(fn)
}
func OnErrorCaptured(fn func(error) bool) {
	runtime.OnErrorCaptured(fn)
}
func Provide(key, value any) {
	runtime.Provide(key, value)
}
func Inject(key, def any) any {
	return runtime.Inject(key, def)
}
