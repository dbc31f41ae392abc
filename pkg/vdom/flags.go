package vdom

import "strings"

// PatchFlag is the optimization bitmask stamped onto a node by whoever
// constructs it (a compiler, or hand-written view code using the Flagged
// constructors). The reconciler uses it to patch only what can change.
//
// Negative values are special markers, not bitmasks.
type PatchFlag int32

const (
	// FlagText marks a node with dynamic text content.
	FlagText PatchFlag = 1 << iota
	// FlagClass marks a node with a dynamic class prop.
	FlagClass
	// FlagStyle marks a node with a dynamic style prop.
	FlagStyle
	// FlagProps marks a node with dynamic non-class/style props, named in
	// DynProps.
	FlagProps
	// FlagFullProps marks a node whose prop keys themselves can change;
	// the reconciler falls back to a full prop diff.
	FlagFullProps
	// FlagStableFragment is a fragment whose children order never
	// changes.
	FlagStableFragment
	// FlagKeyedFragment is a fragment with keyed (fully or partially)
	// children.
	FlagKeyedFragment
	// FlagUnkeyedFragment is a fragment with unkeyed children.
	FlagUnkeyedFragment
	// FlagNeedPatch marks a node that only needs non-prop patches
	// (host refs, directives).
	FlagNeedPatch

	// FlagHoisted marks a static node hoisted out of its render function;
	// it is never patched and never tracked as dynamic.
	FlagHoisted PatchFlag = -1
	// FlagBail disables optimized paths entirely: a full diff is
	// performed for the subtree.
	FlagBail PatchFlag = -2
)

// Has returns true when f contains bit b. Only meaningful for positive
// flags.
func (f PatchFlag) Has(b PatchFlag) bool {
	return f > 0 && f&b != 0
}

// String renders the flag set for diagnostics.
func (f PatchFlag) String() string {
	switch f {
	case 0:
		return "None"
	case FlagHoisted:
		return "Hoisted"
	case FlagBail:
		return "Bail"
	}
	names := []struct {
		bit  PatchFlag
		name string
	}{
		{FlagText, "Text"},
		{FlagClass, "Class"},
		{FlagStyle, "Style"},
		{FlagProps, "Props"},
		{FlagFullProps, "FullProps"},
		{FlagStableFragment, "StableFragment"},
		{FlagKeyedFragment, "KeyedFragment"},
		{FlagUnkeyedFragment, "UnkeyedFragment"},
		{FlagNeedPatch, "NeedPatch"},
	}
	var parts []string
	for _, n := range names {
		if f.Has(n.bit) {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "Unknown"
	}
	return strings.Join(parts, "|")
}
