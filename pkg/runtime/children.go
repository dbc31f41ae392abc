package runtime

import (
	"github.com/tideui/tide/internal/errors"
	"github.com/tideui/tide/pkg/vdom"
)

// patchChildren is the full children diff, used when no block fast path
// applies. Keyed lists go through the LIS-based algorithm; unkeyed lists
// are matched positionally.
func (r *Renderer) patchChildren(old, next *vdom.VNode, container, anchor any, parent *ComponentInstance) {
	oldCh, nextCh := old.Children, next.Children

	if next.PatchFlag.Has(vdom.FlagKeyedFragment) ||
		vdom.HasKeys(oldCh) || vdom.HasKeys(nextCh) {
		r.patchKeyedChildren(oldCh, nextCh, container, anchor, parent)
		return
	}
	r.patchUnkeyedChildren(oldCh, nextCh, container, anchor, parent)
}

// patchUnkeyedChildren matches children by position: common range patched
// in place, surplus old unmounted, surplus new mounted.
func (r *Renderer) patchUnkeyedChildren(oldCh, nextCh []*vdom.VNode, container, anchor any, parent *ComponentInstance) {
	common := len(oldCh)
	if len(nextCh) < common {
		common = len(nextCh)
	}
	for i := 0; i < common; i++ {
		r.patch(oldCh[i], nextCh[i], container, anchor, parent)
	}
	if len(oldCh) > common {
		for _, child := range oldCh[common:] {
			r.unmount(child, parent, true)
		}
		return
	}
	for _, child := range nextCh[common:] {
		r.patch(nil, child, container, anchor, parent)
	}
}

// patchKeyedChildren reconciles keyed lists with minimal host moves:
//
//  1. Skip the common prefix and suffix (same logical node per SameNode).
//  2. Pure insertions or removals in the middle handled directly.
//  3. Otherwise map new keys to indices, walk the old middle range
//     unmounting nodes whose key vanished and patching those that remain,
//     recording each one's new index.
//  4. Compute the longest increasing subsequence of recorded indices:
//     those nodes are already relatively ordered and stay put; everything
//     else is moved, and unmatched new nodes are mounted in place.
//
// The final host order exactly matches nextCh. Move count is LIS-minimal,
// not edit-distance-minimal.
func (r *Renderer) patchKeyedChildren(oldCh, nextCh []*vdom.VNode, container, anchor any, parent *ComponentInstance) {
	i := 0
	oldEnd := len(oldCh) - 1
	nextEnd := len(nextCh) - 1

	// 1. Common prefix.
	for i <= oldEnd && i <= nextEnd && vdom.SameNode(oldCh[i], nextCh[i]) {
		r.patch(oldCh[i], nextCh[i], container, anchor, parent)
		i++
	}

	// Common suffix.
	for i <= oldEnd && i <= nextEnd && vdom.SameNode(oldCh[oldEnd], nextCh[nextEnd]) {
		r.patch(oldCh[oldEnd], nextCh[nextEnd], container, anchor, parent)
		oldEnd--
		nextEnd--
	}

	// 2. Old exhausted: mount the remaining new nodes before the node
	// after the new range.
	if i > oldEnd {
		if i <= nextEnd {
			insertAnchor := anchor
			if nextEnd+1 < len(nextCh) {
				insertAnchor = r.hostNode(nextCh[nextEnd+1])
			}
			for ; i <= nextEnd; i++ {
				r.patch(nil, nextCh[i], container, insertAnchor, parent)
			}
		}
		return
	}

	// New exhausted: unmount the remaining old nodes.
	if i > nextEnd {
		for ; i <= oldEnd; i++ {
			r.unmount(oldCh[i], parent, true)
		}
		return
	}

	// 3. Unknown middle range.
	oldStart, nextStart := i, i

	keyToNewIndex := make(map[string]int, nextEnd-nextStart+1)
	for j := nextStart; j <= nextEnd; j++ {
		if key := nextCh[j].Key; key != "" {
			if _, dup := keyToNewIndex[key]; dup {
				r.warnDuplicateKey(key)
			}
			keyToNewIndex[key] = j
		}
	}

	toPatch := nextEnd - nextStart + 1
	patched := 0
	moved := false
	maxNewIndexSoFar := 0

	// newIndexToOldIndex[k] = old index + 1 of the node now at
	// nextStart+k; 0 marks a node with no old counterpart.
	newIndexToOldIndex := make([]int, toPatch)

	for j := oldStart; j <= oldEnd; j++ {
		oldChild := oldCh[j]
		if patched >= toPatch {
			r.unmount(oldChild, parent, true)
			continue
		}

		newIndex := -1
		if oldChild.Key != "" {
			if idx, ok := keyToNewIndex[oldChild.Key]; ok {
				newIndex = idx
			}
		} else {
			// Keyless node in a keyed list: reuse the first positionally
			// available keyless match.
			for k := nextStart; k <= nextEnd; k++ {
				if newIndexToOldIndex[k-nextStart] == 0 && vdom.SameNode(oldChild, nextCh[k]) {
					newIndex = k
					break
				}
			}
		}

		if newIndex == -1 {
			r.unmount(oldChild, parent, true)
			continue
		}

		newIndexToOldIndex[newIndex-nextStart] = j + 1
		if newIndex >= maxNewIndexSoFar {
			maxNewIndexSoFar = newIndex
		} else {
			moved = true
		}
		r.patch(oldChild, nextCh[newIndex], container, anchor, parent)
		patched++
	}

	// 4. Move and mount, walking backwards so each node's anchor (the
	// next new sibling) is already in place.
	var lis []int
	if moved {
		lis = longestIncreasingSubsequence(newIndexToOldIndex)
	}
	lisTail := len(lis) - 1

	for k := toPatch - 1; k >= 0; k-- {
		newIndex := nextStart + k
		nextChild := nextCh[newIndex]
		var insertAnchor any = anchor
		if newIndex+1 < len(nextCh) {
			insertAnchor = r.hostNode(nextCh[newIndex+1])
		}

		if newIndexToOldIndex[k] == 0 {
			r.patch(nil, nextChild, container, insertAnchor, parent)
			continue
		}
		if moved {
			if lisTail < 0 || k != lis[lisTail] {
				r.move(nextChild, container, insertAnchor)
			} else {
				lisTail--
			}
		}
	}
}

// hostNode resolves the leading host node of a vnode's rendered range.
func (r *Renderer) hostNode(n *vdom.VNode) any {
	if n == nil {
		return nil
	}
	if n.Kind == vdom.KindComponent {
		if inst, ok := n.Instance.(*ComponentInstance); ok && inst.subTree != nil {
			return r.hostNode(inst.subTree)
		}
		return nil
	}
	return n.Host
}

// move relocates a vnode's rendered range before anchor.
func (r *Renderer) move(n *vdom.VNode, container, anchor any) {
	switch n.Kind {
	case vdom.KindComponent:
		if inst, ok := n.Instance.(*ComponentInstance); ok && inst.subTree != nil {
			r.move(inst.subTree, container, anchor)
		}
	case vdom.KindFragment:
		r.ops.Insert(n.Host, container, anchor)
		for _, child := range n.Children {
			r.move(child, container, anchor)
		}
		r.ops.Insert(n.Anchor, container, anchor)
	case vdom.KindStatic:
		cur := n.Host
		for cur != nil {
			sibling := r.ops.NextSibling(cur)
			r.ops.Insert(cur, container, anchor)
			if cur == n.Anchor {
				break
			}
			cur = sibling
		}
	default:
		if n.Host != nil {
			r.ops.Insert(n.Host, container, anchor)
		}
	}
}

func (r *Renderer) warnDuplicateKey(key string) {
	// Behavior with duplicate keys is undefined but must not crash.
	r.logger.Warn("duplicate key among siblings; list patching may behave unexpectedly",
		"key", key,
		"code", errors.ErrDuplicateKey)
}
