package reactive

import (
	"sync"
	"sync/atomic"
)

// Memo is a lazily cached derived value. It recomputes at most once per
// invalidation, on the next read, and is itself a dependency for whatever
// reads it: invalidation propagates downstream without recomputing until
// someone actually asks for the value.
type Memo[T any] struct {
	id      uint64
	compute func() T

	mu    sync.Mutex
	value T
	dirty bool

	// out holds the listeners subscribed to this memo.
	out dep

	// deps are the sets this memo is subscribed to upstream.
	deps   []*dep
	depsMu sync.Mutex

	stopped atomic.Bool
}

// NewMemo creates a memo. The compute function does not run until the first
// Get.
func NewMemo[T any](compute func() T) *Memo[T] {
	m := &Memo[T]{
		id:      nextID(),
		compute: compute,
		dirty:   true,
	}
	if owner := getCurrentOwner(); owner != nil {
		owner.OnCleanup(m.Stop)
	}
	return m
}

// Get returns the cached value, recomputing if a dependency changed since
// the last read, and subscribes the current listener to the memo.
func (m *Memo[T]) Get() T {
	if l := getCurrentListener(); l != nil {
		m.out.subscribe(l)
		if sub, ok := l.(depSubscriber); ok {
			sub.addDep(&m.out)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.dirty && !m.stopped.Load() {
		m.clearDeps()
		WithListener(m, func() {
			m.value = m.compute()
		})
		m.dirty = false
	}
	return m.value
}

// Peek returns the cached value without subscribing. It still recomputes if
// dirty, so the result is never stale.
func (m *Memo[T]) Peek() T {
	old := setCurrentListener(nil)
	defer setCurrentListener(old)
	return m.Get()
}

// ID implements Listener.
func (m *Memo[T]) ID() uint64 {
	return m.id
}

// MarkDirty implements Listener: an upstream change invalidates the cache
// and forwards the notification to the memo's own subscribers.
func (m *Memo[T]) MarkDirty() {
	if m.stopped.Load() {
		return
	}
	m.mu.Lock()
	already := m.dirty
	m.dirty = true
	m.mu.Unlock()

	if !already {
		m.out.notify()
	}
}

// addDep implements depSubscriber.
func (m *Memo[T]) addDep(d *dep) {
	m.depsMu.Lock()
	defer m.depsMu.Unlock()
	for _, existing := range m.deps {
		if existing == d {
			return
		}
	}
	m.deps = append(m.deps, d)
}

func (m *Memo[T]) clearDeps() {
	m.depsMu.Lock()
	deps := m.deps
	m.deps = nil
	m.depsMu.Unlock()
	for _, d := range deps {
		d.unsubscribe(m)
	}
}

// Stop detaches the memo from the graph. Later Gets return the last cached
// value without recomputing.
func (m *Memo[T]) Stop() {
	if m.stopped.Swap(true) {
		return
	}
	m.clearDeps()
}
