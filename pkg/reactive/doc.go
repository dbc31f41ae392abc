// Package reactive implements the dependency-tracking core of the Tide
// runtime: signals, stores, lists, memos, effects, and the ownership tree
// that scopes their lifetimes.
//
// Reading a reactive container while a listener is active (an effect run,
// a memo computation, or a component render) records a subscription edge.
// Writing a container notifies exactly the listeners subscribed to the
// written key. Listeners rebuild their dependency sets from scratch on
// every run, so dependencies taken on one run and not the next are pruned
// automatically.
//
// The package is safe to use from multiple goroutines, but the intended
// model is single-threaded: one logical loop owns the reactive graph and
// drives effect flushes (see package scheduler).
package reactive
