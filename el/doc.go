// Package el provides the UI DSL for Tide.
//
// It re-exports HTML element constructors, attribute helpers, event helpers,
// and common vnode utilities from github.com/tideui/tide/pkg/vdom, plus the
// component lifecycle hooks from github.com/tideui/tide/pkg/runtime.
//
// Typical usage:
//
//	import (
//	    "github.com/tideui/tide/pkg/reactive"
//	    . "github.com/tideui/tide/el"
//	)
//
// This keeps the DSL in a dedicated package while the reactive APIs live in
// pkg/reactive.
package el
