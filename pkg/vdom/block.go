package vdom

import (
	"sync"

	"github.com/petermattis/goid"
)

// blockState is the per-goroutine block tracking state. Blocks are opened
// and closed during a single render call, always on one goroutine, so each
// goroutine keeps its own stack and no cross-goroutine coordination is
// needed beyond the registry map.
type blockState struct {
	// stack holds the dynamic-child collector of each open block,
	// innermost last.
	stack [][]*VNode

	// disabled suppresses dynamic tracking while > 0. A counter rather
	// than a bool: cached/"once" regions nest.
	disabled int
}

var blockStates sync.Map

func getBlockState() *blockState {
	gid := goid.Get()
	if s, ok := blockStates.Load(gid); ok {
		return s.(*blockState)
	}
	s := &blockState{}
	blockStates.Store(gid, s)
	return s
}

// OpenBlock starts collecting dynamic descendants for a block node.
// Every node created before the matching CloseBlock that has a nonzero
// positive patch flag or is a component is appended to the innermost open
// block.
func OpenBlock() {
	s := getBlockState()
	s.stack = append(s.stack, []*VNode{})
}

// CloseBlock seals node as the root of the innermost open block: the
// collected dynamic children are snapshotted onto it, and the block node
// itself is tracked in its parent block so block trees nest.
func CloseBlock(node *VNode) *VNode {
	s := getBlockState()
	if len(s.stack) == 0 {
		return node
	}
	collected := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	if node != nil {
		// A flagged block root tracked itself on construction; it belongs
		// to the parent block, never to its own dynamic children.
		if k := len(collected); k > 0 && collected[k-1] == node {
			collected = collected[:k-1]
		}
		node.DynamicChildren = collected
		// A block root is always tracked in its parent block, whatever its
		// own patch flag: the parent must descend into it to reach the
		// collected dynamic children.
		if s.disabled == 0 && len(s.stack) > 0 {
			top := len(s.stack) - 1
			s.stack[top] = append(s.stack[top], node)
		}
	}
	return node
}

// Block renders fn between OpenBlock and CloseBlock.
func Block(fn func() *VNode) *VNode {
	OpenBlock()
	return CloseBlock(fn())
}

// DisableTracking suspends dynamic-child collection. Reentrant; each call
// must be paired with EnableTracking.
func DisableTracking() {
	getBlockState().disabled++
}

// EnableTracking resumes dynamic-child collection after DisableTracking.
func EnableTracking() {
	s := getBlockState()
	if s.disabled > 0 {
		s.disabled--
	}
}

// CleanupGoroutineState removes the block tracking state for the current
// goroutine. Goroutines that rendered and are about to retire (or return
// to a pool) call this so the registry does not grow with goroutine churn.
func CleanupGoroutineState() {
	blockStates.Delete(goid.Get())
}

// trackDynamic appends node to the innermost open block if it is dynamic:
// positive patch flag, or a component or suspense boundary (both always
// need a visit so their internal state re-wires).
func trackDynamic(node *VNode) {
	if node == nil {
		return
	}
	s := getBlockState()
	if s.disabled > 0 || len(s.stack) == 0 {
		return
	}
	if node.PatchFlag > 0 || node.Kind == KindComponent || node.Kind == KindSuspense {
		top := len(s.stack) - 1
		s.stack[top] = append(s.stack[top], node)
	}
}
