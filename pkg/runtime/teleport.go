package runtime

import (
	"github.com/tideui/tide/internal/errors"
	"github.com/tideui/tide/pkg/vdom"
)

// teleportTarget resolves a teleport node's target selector, carried in
// the Tag field. A miss is logged and mounting falls back to the in-place
// container.
func (r *Renderer) teleportTarget(n *vdom.VNode) any {
	sel := n.Tag
	if sel == "" {
		return nil
	}
	target := r.ops.QuerySelector(sel)
	if target == nil {
		r.logger.Warn("teleport target not found",
			"selector", sel,
			"error", errors.New(errors.ErrTeleportTarget))
	}
	return target
}

func (r *Renderer) processTeleport(old, next *vdom.VNode, container, anchor any, parent *ComponentInstance) {
	if old == nil {
		// The placeholder keeps the teleport's slot in its home container
		// so later sibling diffs still have an anchor here.
		next.Host = r.ops.CreateComment("teleport")
		r.ops.Insert(next.Host, container, anchor)

		target := r.teleportTarget(next)
		if target == nil {
			target = container
		}
		next.Anchor = target
		r.mountChildren(next.Children, target, nil, parent)
		return
	}

	next.Host = old.Host
	oldTarget := old.Anchor
	target := r.teleportTarget(next)
	if target == nil {
		target = container
	}
	next.Anchor = target

	if target == oldTarget {
		r.patchChildren(old, next, target, nil, parent)
		return
	}

	// Target changed: children move wholesale by unmount and remount.
	for _, child := range old.Children {
		r.unmount(child, parent, true)
	}
	r.mountChildren(next.Children, target, nil, parent)
}
