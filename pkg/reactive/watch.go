package reactive

// WatchOptions configures Watch.
type WatchOptions struct {
	// Immediate fires the callback on the first run with the initial
	// value, instead of only on changes.
	Immediate bool

	// Flush selects when the watcher re-runs relative to render effects.
	// The zero value is FlushPre. FlushSync re-runs inline on trigger.
	Flush FlushPhase

	// AllowRecurse lets the callback write the watched source without the
	// re-trigger being suppressed. Explicit opt-in only.
	AllowRecurse bool

	// Scheduler routes non-sync re-runs; the runtime points this at the
	// flush queue. nil means re-run inline.
	Scheduler func(*Effect)

	// OnError receives panics from the getter or callback.
	OnError func(error)
}

// Watch observes the value produced by getter and invokes callback with
// (next, prev) whenever it changes. The getter is the tracked region; the
// callback runs untracked, so reads inside it do not extend the dependency
// set. Returns a stop function.
func Watch[T any](getter func() T, callback func(next, prev T), opts WatchOptions) (stop func()) {
	var prev T
	first := true

	effectOpts := []EffectOption{WithPhase(opts.Flush)}
	if opts.AllowRecurse {
		effectOpts = append(effectOpts, AllowRecurse())
	}
	if opts.Scheduler != nil && opts.Flush != FlushSync {
		effectOpts = append(effectOpts, WithScheduler(opts.Scheduler))
	}
	if opts.OnError != nil {
		effectOpts = append(effectOpts, WithErrorHandler(opts.OnError))
	}

	e := NewEffect(func() Cleanup {
		next := getter()
		if first {
			first = false
			if opts.Immediate {
				Untracked(func() { callback(next, prev) })
			}
			prev = next
			return nil
		}
		if defaultEquals(next, prev) {
			return nil
		}
		old := prev
		prev = next
		Untracked(func() { callback(next, old) })
		return nil
	}, effectOpts...)

	return e.Stop
}
