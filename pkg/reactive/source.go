package reactive

import "sync"

// TriggerKind classifies a mutation so structural changes can additionally
// notify iteration-level subscribers.
type TriggerKind uint8

const (
	// TriggerSet is an in-place update of an existing key.
	TriggerSet TriggerKind = iota
	// TriggerAdd introduces a key that did not exist before.
	TriggerAdd
	// TriggerDelete removes an existing key.
	TriggerDelete
	// TriggerLength changes the length of a list container.
	TriggerLength
)

// IterateKey is the wildcard dependency key. Listeners that enumerate a
// container (Keys, Len, Values) subscribe to it, and structural triggers
// (add, delete, length) notify it alongside the concrete key.
const IterateKey = "$iterate"

// LengthKey is the dependency key for a list's length.
const LengthKey = "$length"

// dep is one dependency set: the listeners subscribed to a single
// (source, key) pair. It deduplicates by listener ID and never holds locks
// while notifying.
type dep struct {
	mu   sync.RWMutex
	subs []Listener
}

// subscribe adds a listener, deduplicating by ID.
func (d *dep) subscribe(l Listener) {
	if l == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	lid := l.ID()
	for _, existing := range d.subs {
		if existing.ID() == lid {
			return
		}
	}
	d.subs = append(d.subs, l)
}

// unsubscribe removes a listener. Order is not preserved.
func (d *dep) unsubscribe(l Listener) {
	if l == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	lid := l.ID()
	for i, existing := range d.subs {
		if existing.ID() == lid {
			d.subs[i] = d.subs[len(d.subs)-1]
			d.subs = d.subs[:len(d.subs)-1]
			return
		}
	}
}

// notify marks every subscriber dirty, or queues them if a batch is open.
// Subscribers are copied out first so user callbacks run without the lock.
func (d *dep) notify() {
	d.mu.RLock()
	subs := make([]Listener, len(d.subs))
	copy(subs, d.subs)
	d.mu.RUnlock()

	if getBatchDepth() > 0 {
		for _, sub := range subs {
			queuePendingUpdate(sub)
		}
		return
	}
	for _, sub := range subs {
		sub.MarkDirty()
	}
}

// empty reports whether the set currently has no subscribers.
func (d *dep) empty() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.subs) == 0
}

// Source is the per-container dependency registry. Every reactive container
// (Signal, Store, List) owns one Source and routes its reads through Track
// and its writes through Trigger.
//
// Tracking outside of any active listener is legal and does nothing.
// Triggering a key nobody subscribed to is a no-op.
type Source struct {
	id   uint64
	mu   sync.Mutex
	deps map[string]*dep
}

// NewSource creates an empty dependency registry.
func NewSource() *Source {
	return &Source{id: nextID()}
}

// ID returns the unique identifier for this source.
func (s *Source) ID() uint64 {
	return s.id
}

// Track records a subscription edge between the current listener and
// (source, key). Called on every tracked read.
func (s *Source) Track(key string) {
	l := getCurrentListener()
	if l == nil {
		return
	}

	s.mu.Lock()
	if s.deps == nil {
		s.deps = make(map[string]*dep)
	}
	d := s.deps[key]
	if d == nil {
		d = &dep{}
		s.deps[key] = d
	}
	s.mu.Unlock()

	d.subscribe(l)
	if sub, ok := l.(depSubscriber); ok {
		sub.addDep(d)
	}
}

// Trigger notifies the subscribers of key. Structural mutations additionally
// notify the wildcard iterate set, and list length changes notify the
// length set.
func (s *Source) Trigger(key string, kind TriggerKind) {
	s.mu.Lock()
	if s.deps == nil {
		s.mu.Unlock()
		return
	}
	targets := make([]*dep, 0, 3)
	if d := s.deps[key]; d != nil {
		targets = append(targets, d)
	}
	switch kind {
	case TriggerAdd, TriggerDelete:
		if d := s.deps[IterateKey]; d != nil {
			targets = append(targets, d)
		}
	case TriggerLength:
		if key != LengthKey {
			if d := s.deps[LengthKey]; d != nil {
				targets = append(targets, d)
			}
		}
		if d := s.deps[IterateKey]; d != nil {
			targets = append(targets, d)
		}
	}
	s.mu.Unlock()

	for _, d := range targets {
		d.notify()
	}
}

// prune drops dependency sets that lost their last subscriber, so a Source
// does not accumulate empty entries for keys read once by a dead effect.
func (s *Source) prune() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, d := range s.deps {
		if d.empty() {
			delete(s.deps, key)
		}
	}
}
