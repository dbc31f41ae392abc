// Package errors provides structured, actionable error values for Tide.
//
// Every error carries a category and, usually, a registered code (e.g.
// "T001") that maps to a short message, a longer explanation, and a
// documentation URL. Codes keep log lines and wire frames stable across
// releases even when the prose changes.
//
// # Categories
//
//   - runtime: reactive graph and scheduler failures
//   - reconcile: diff/patch failures against the host tree
//   - protocol: wire codec and session errors
//   - config: malformed or missing configuration
//   - cli: command-line tooling errors
//
// # Usage
//
//	err := errors.New(errors.ErrDuplicateKey).
//	    WithDetail("key \"item-3\" appears twice in the same fragment")
//
//	fmt.Println(err.Format())
package errors
