package runtime

import (
	"context"
	"log/slog"

	"github.com/tideui/tide/pkg/vdom"
)

// App ties a root component to a renderer and a host container. It is
// the top-level handle embedders use: mount, run a driver loop, unmount.
type App struct {
	renderer *Renderer
	root     vdom.Component

	vnode     *vdom.VNode
	container any
	mounted   bool
}

// AppOption configures an App.
type AppOption func(*App)

// WithAppLogger sets the logger for the app's renderer.
func WithAppLogger(l *slog.Logger) AppOption {
	return func(a *App) { a.renderer.logger = l }
}

// WithAppErrorHandler sets the handler of last resort for errors no
// boundary captured.
func WithAppErrorHandler(fn func(error)) AppOption {
	return func(a *App) { a.renderer.onError = fn }
}

// NewApp creates an application around a root component and a host
// backend.
func NewApp(ops HostOps, root vdom.Component, opts ...AppOption) *App {
	a := &App{
		renderer: NewRenderer(ops),
		root:     root,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Renderer returns the renderer driving this app.
func (a *App) Renderer() *Renderer {
	return a.renderer
}

// Provide makes a value injectable by every component in the app.
// Call before Mount.
func (a *App) Provide(key, value any) *App {
	a.renderer.rootOwner.Provide(key, value)
	return a
}

// Mount renders the root component into container and flushes until the
// tree settles.
func (a *App) Mount(container any) {
	if a.mounted {
		return
	}
	a.container = container
	a.vnode = vdom.Comp(a.root)
	a.renderer.Patch(nil, a.vnode, container)
	a.renderer.FlushSync()
	a.mounted = true
}

// Unmount tears the whole tree down, firing unmount hooks and disposing
// every owner.
func (a *App) Unmount() {
	if !a.mounted {
		return
	}
	a.renderer.Patch(a.vnode, nil, a.container)
	a.renderer.rootOwner.Dispose()
	a.vnode = nil
	a.mounted = false
}

// Dispatch hands fn to the driver loop; see Renderer.Dispatch.
func (a *App) Dispatch(fn func()) {
	a.renderer.Dispatch(fn)
}

// FlushSync drains dispatched closures and pending effects immediately.
func (a *App) FlushSync() {
	a.renderer.DrainDispatch()
	a.renderer.FlushSync()
}

// Run drives the app until ctx is done: it sleeps until an effect is
// scheduled or a closure is dispatched, then drains both. Use when the
// app has no surrounding event loop of its own (pkg/live runs its own).
func (a *App) Run(ctx context.Context) error {
	queue := a.renderer.Queue()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-queue.Notify():
			a.renderer.FlushSync()
		case <-a.renderer.DispatchNotify():
			a.FlushSync()
		}
	}
}
