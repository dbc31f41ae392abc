package reactive

import (
	"sync"
	"sync/atomic"
)

// FlushPhase says when a scheduled effect runs relative to component render
// effects within one flush.
type FlushPhase int8

const (
	// FlushPre runs before render effects. Watchers that must observe
	// state before the host tree updates use this.
	FlushPre FlushPhase = iota
	// FlushRender is reserved for component render effects.
	FlushRender
	// FlushPost runs after render effects, when the host tree reflects
	// the new state.
	FlushPost
	// FlushSync bypasses scheduling entirely and re-runs inline on
	// trigger.
	FlushSync
)

// Effect is a re-runnable computation subscribed to the reactive containers
// it reads. Its dependency set is rebuilt from scratch on every run: stale
// edges are removed before the function executes and only reads performed
// by the new run are re-recorded.
type Effect struct {
	id uint64

	fn      func() Cleanup
	cleanup Cleanup

	deps   []*dep
	depsMu sync.Mutex

	owner *Owner

	// pending is set between MarkDirty and the next run.
	pending atomic.Bool

	// stopped is set once; a stopped effect never runs again.
	stopped atomic.Bool

	// running guards against synchronous self-triggering: an effect that
	// writes a key it also reads must not recurse into itself unless it
	// opted in with AllowRecurse.
	running atomic.Bool

	allowRecurse bool
	lazy         bool

	phase FlushPhase

	// schedule, when set, receives the effect instead of an inline re-run.
	// The runtime points this at the flush queue.
	schedule func(*Effect)

	// onError receives panics recovered from the effect function.
	// When nil, panics propagate to the caller of Run.
	onError func(error)
}

// EffectOption configures an Effect at creation time.
type EffectOption func(*Effect)

// AllowRecurse lets the effect re-trigger itself from its own run. This is
// an explicit opt-in for watcher patterns that write the source they watch;
// it is never inferred.
func AllowRecurse() EffectOption {
	return func(e *Effect) { e.allowRecurse = true }
}

// WithPhase sets the flush phase used by the scheduler.
func WithPhase(p FlushPhase) EffectOption {
	return func(e *Effect) { e.phase = p }
}

// WithScheduler routes re-runs through fn instead of running inline.
func WithScheduler(fn func(*Effect)) EffectOption {
	return func(e *Effect) { e.schedule = fn }
}

// WithErrorHandler routes recovered panics from the effect body to fn.
func WithErrorHandler(fn func(error)) EffectOption {
	return func(e *Effect) { e.onError = fn }
}

// Lazy defers the first run: NewEffect returns without executing fn.
// Component render effects use this so the runtime controls the mount run.
func Lazy() EffectOption {
	return func(e *Effect) { e.lazy = true }
}

// NewEffect creates an effect owned by the current owner and, unless Lazy
// was given, runs it immediately to collect its first dependency set.
func NewEffect(fn func() Cleanup, opts ...EffectOption) *Effect {
	e := &Effect{
		id:    nextID(),
		fn:    fn,
		phase: FlushSync,
		owner: getCurrentOwner(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.owner != nil {
		e.owner.registerEffect(e)
	}

	if !e.lazy {
		e.Run()
	}
	return e
}

// ID implements Listener.
func (e *Effect) ID() uint64 {
	return e.id
}

// Phase returns the effect's flush phase.
func (e *Effect) Phase() FlushPhase {
	return e.phase
}

// MarkDirty implements Listener. It schedules a re-run (deduplicated by the
// pending flag) or, for sync effects, re-runs inline.
func (e *Effect) MarkDirty() {
	if e.stopped.Load() {
		return
	}
	if e.running.Load() && !e.allowRecurse {
		return
	}
	if !e.pending.CompareAndSwap(false, true) {
		return
	}
	if e.schedule != nil {
		e.schedule(e)
		return
	}
	e.Run()
}

// Pending reports whether a re-run is scheduled but has not happened yet.
func (e *Effect) Pending() bool {
	return e.pending.Load()
}

// Stopped reports whether the effect has been stopped.
func (e *Effect) Stopped() bool {
	return e.stopped.Load()
}

// Run executes the effect function, rebuilding its dependency set.
// Safe to call on a pending effect (clears the flag) and a no-op once
// stopped.
func (e *Effect) Run() {
	if e.stopped.Load() {
		return
	}
	e.pending.Store(false)

	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}
	e.clearDeps()

	old := setCurrentListener(e)
	e.running.Store(true)
	defer func() {
		e.running.Store(false)
		setCurrentListener(old)
		if r := recover(); r != nil {
			if e.onError != nil {
				e.onError(asError(r))
				return
			}
			panic(r)
		}
	}()

	e.cleanup = e.fn()
}

// addDep implements depSubscriber.
func (e *Effect) addDep(d *dep) {
	e.depsMu.Lock()
	defer e.depsMu.Unlock()
	for _, existing := range e.deps {
		if existing == d {
			return
		}
	}
	e.deps = append(e.deps, d)
}

// clearDeps unsubscribes from every dependency set recorded by the
// previous run.
func (e *Effect) clearDeps() {
	e.depsMu.Lock()
	deps := e.deps
	e.deps = nil
	e.depsMu.Unlock()
	for _, d := range deps {
		d.unsubscribe(e)
	}
}

// Stop permanently deactivates the effect: runs its cleanup, drops all
// subscriptions, and makes every future MarkDirty a no-op. A pending
// scheduled run is skipped by the flush loop via Stopped.
func (e *Effect) Stop() {
	if e.stopped.Swap(true) {
		return
	}
	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}
	e.clearDeps()
}
