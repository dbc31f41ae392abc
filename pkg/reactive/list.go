package reactive

import (
	"strconv"
	"sync"
)

// List is a reactive slice container. Indexed reads subscribe to that index;
// Len subscribes to the length key; Values subscribes to the iterate key.
// Length-changing mutations notify the length and iterate sets so renders
// that enumerate the list re-run, while a pure element overwrite only
// notifies that index.
type List struct {
	src *Source

	mu     sync.RWMutex
	values []any
}

// NewList creates a reactive slice seeded from init (copied).
func NewList(init ...any) *List {
	values := make([]any, len(init))
	copy(values, init)
	return &List{src: NewSource(), values: values}
}

// ID returns the unique identifier of the list's source.
func (l *List) ID() uint64 {
	return l.src.ID()
}

// At returns the element at index i, subscribing the current listener to
// that index. Out-of-range reads return nil and subscribe to the length,
// so growth re-triggers the reader.
func (l *List) At(i int) any {
	l.mu.RLock()
	var v any
	inRange := i >= 0 && i < len(l.values)
	if inRange {
		v = l.values[i]
	}
	l.mu.RUnlock()

	if inRange {
		l.src.Track(indexKey(i))
	} else {
		l.src.Track(LengthKey)
	}
	return v
}

// SetAt overwrites the element at index i. Out-of-range writes panic, same
// as slice indexing. Writing an equal value is a no-op.
func (l *List) SetAt(i int, v any) {
	l.mu.Lock()
	if i < 0 || i >= len(l.values) {
		l.mu.Unlock()
		panic("reactive: List.SetAt index out of range")
	}
	if storeEquals(l.values[i], v) {
		l.mu.Unlock()
		return
	}
	l.values[i] = v
	l.mu.Unlock()

	l.src.Trigger(indexKey(i), TriggerSet)
}

// Append adds values to the end of the list.
func (l *List) Append(vs ...any) {
	if len(vs) == 0 {
		return
	}
	l.mu.Lock()
	start := len(l.values)
	l.values = append(l.values, vs...)
	l.mu.Unlock()

	for i := range vs {
		l.src.Trigger(indexKey(start+i), TriggerAdd)
	}
	l.src.Trigger(LengthKey, TriggerLength)
}

// RemoveAt removes the element at index i, shifting later elements down.
func (l *List) RemoveAt(i int) {
	l.mu.Lock()
	if i < 0 || i >= len(l.values) {
		l.mu.Unlock()
		return
	}
	l.values = append(l.values[:i], l.values[i+1:]...)
	shifted := len(l.values) - i
	l.mu.Unlock()

	// Every index at or after i now holds a different element.
	for j := 0; j <= shifted; j++ {
		l.src.Trigger(indexKey(i+j), TriggerSet)
	}
	l.src.Trigger(LengthKey, TriggerLength)
}

// Len returns the list length, subscribing to length changes.
func (l *List) Len() int {
	l.mu.RLock()
	n := len(l.values)
	l.mu.RUnlock()

	l.src.Track(LengthKey)
	return n
}

// Values returns a copy of the elements, subscribing to the iterate key so
// any structural change re-triggers the reader.
func (l *List) Values() []any {
	l.mu.RLock()
	out := make([]any, len(l.values))
	copy(out, l.values)
	l.mu.RUnlock()

	l.src.Track(IterateKey)
	return out
}

// Snapshot returns a copy of the elements without subscribing.
func (l *List) Snapshot() []any {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]any, len(l.values))
	copy(out, l.values)
	return out
}

func indexKey(i int) string {
	return strconv.Itoa(i)
}
