package reactive

import (
	"reflect"
	"sort"
	"sync"
)

// Store is a reactive string-keyed map container. Per-key reads subscribe to
// that key only; enumeration (Keys, Len, Entries) subscribes to the wildcard
// iterate key, which is re-notified whenever a key is added or removed.
//
// Store is the explicit-wrapper answer to proxy-based reactive objects: the
// {get, set, has, delete, iterate} capability surface is the interception
// boundary.
type Store struct {
	src *Source

	mu     sync.RWMutex
	values map[string]any
}

// NewStore creates an empty reactive map.
func NewStore() *Store {
	return &Store{
		src:    NewSource(),
		values: make(map[string]any),
	}
}

// NewStoreOf creates a reactive map seeded from init. The map is copied;
// later mutations of init are not observed.
func NewStoreOf(init map[string]any) *Store {
	values := make(map[string]any, len(init))
	for k, v := range init {
		values[k] = v
	}
	return &Store{src: NewSource(), values: values}
}

// ID returns the unique identifier of the store's source.
func (s *Store) ID() uint64 {
	return s.src.ID()
}

// Get returns the value for key and subscribes the current listener to it.
// A missing key reads as nil and still records the subscription, so a later
// Set of that key re-triggers the reader.
func (s *Store) Get(key string) any {
	s.mu.RLock()
	v := s.values[key]
	s.mu.RUnlock()

	s.src.Track(key)
	return v
}

// Has reports whether key exists, subscribing the current listener to it.
func (s *Store) Has(key string) bool {
	s.mu.RLock()
	_, ok := s.values[key]
	s.mu.RUnlock()

	s.src.Track(key)
	return ok
}

// Set stores a value. Adding a new key notifies both the key's subscribers
// and iterate subscribers; overwriting with an equal value is a no-op.
func (s *Store) Set(key string, value any) {
	s.mu.Lock()
	old, existed := s.values[key]
	if existed && storeEquals(old, value) {
		s.mu.Unlock()
		return
	}
	s.values[key] = value
	s.mu.Unlock()

	if existed {
		s.src.Trigger(key, TriggerSet)
	} else {
		s.src.Trigger(key, TriggerAdd)
	}
}

// Delete removes a key. Deleting a missing key is a no-op.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	_, existed := s.values[key]
	if existed {
		delete(s.values, key)
	}
	s.mu.Unlock()

	if existed {
		s.src.Trigger(key, TriggerDelete)
		s.src.prune()
	}
}

// Keys returns the sorted key set and subscribes to structural changes.
func (s *Store) Keys() []string {
	s.mu.RLock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	s.mu.RUnlock()
	sort.Strings(keys)

	s.src.Track(IterateKey)
	return keys
}

// Len returns the number of keys and subscribes to structural changes.
func (s *Store) Len() int {
	s.mu.RLock()
	n := len(s.values)
	s.mu.RUnlock()

	s.src.Track(IterateKey)
	return n
}

// Snapshot returns a copy of the underlying map without subscribing.
func (s *Store) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// storeEquals is the change check for container entries. Values of
// uncomparable dynamic type fall back to DeepEqual.
func storeEquals(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a).Comparable() && reflect.TypeOf(b).Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}
