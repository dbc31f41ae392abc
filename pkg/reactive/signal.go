package reactive

import (
	"reflect"
	"sync"
)

// valueKey is the single dependency key used by primitive boxes.
const valueKey = "value"

// Signal is a reactive primitive value box. Reading it during a tracked
// context (effect run, memo computation, component render) subscribes the
// current listener; writing it notifies subscribers when the value changed
// under the configured equality.
type Signal[T any] struct {
	src *Source

	mu    sync.RWMutex
	value T

	// equal overrides the change check. nil means defaultEquals.
	equal func(T, T) bool
}

// NewSignal creates a signal with the given initial value.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{
		src:   NewSource(),
		value: initial,
	}
}

// Get returns the current value and subscribes the current listener, if any.
func (s *Signal[T]) Get() T {
	s.mu.RLock()
	value := s.value
	s.mu.RUnlock()

	// Track after releasing the value lock so subscription bookkeeping
	// can never deadlock against a concurrent Set.
	s.src.Track(valueKey)
	return value
}

// Peek returns the current value without subscribing.
func (s *Signal[T]) Peek() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set updates the value and notifies subscribers if it changed.
func (s *Signal[T]) Set(value T) {
	s.mu.Lock()
	changed := !s.equals(s.value, value)
	if changed {
		s.value = value
	}
	s.mu.Unlock()

	if changed {
		s.src.Trigger(valueKey, TriggerSet)
	}
}

// Update atomically derives a new value from the current one.
func (s *Signal[T]) Update(fn func(T) T) {
	s.mu.Lock()
	next := fn(s.value)
	changed := !s.equals(s.value, next)
	if changed {
		s.value = next
	}
	s.mu.Unlock()

	if changed {
		s.src.Trigger(valueKey, TriggerSet)
	}
}

// WithEquals configures a custom equality function and returns the signal.
// Useful where reflect.DeepEqual is too expensive or semantically wrong.
func (s *Signal[T]) WithEquals(fn func(T, T) bool) *Signal[T] {
	s.equal = fn
	return s
}

// ID returns the unique identifier of the signal's source.
func (s *Signal[T]) ID() uint64 {
	return s.src.ID()
}

func (s *Signal[T]) equals(a, b T) bool {
	if s.equal != nil {
		return s.equal(a, b)
	}
	return defaultEquals(a, b)
}

// defaultEquals uses == for comparable types and reflect.DeepEqual for the
// rest (slices, maps, structs with uncomparable fields).
func defaultEquals[T any](a, b T) bool {
	t := reflect.TypeFor[T]()
	if t.Kind() != reflect.Interface && t.Comparable() {
		return any(a) == any(b)
	}
	// Interface-typed signals may hold uncomparable dynamic values, where
	// == would panic.
	return reflect.DeepEqual(a, b)
}
