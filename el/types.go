package el

import "github.com/tideui/tide/pkg/vdom"

// Type aliases for the vnode primitives used by the DSL.
type VNode = vdom.VNode
type VKind = vdom.VKind
type Props = vdom.Props
type Attr = vdom.Attr
type EventHandler = vdom.EventHandler
type Component = vdom.Component
type PatchFlag = vdom.PatchFlag
type ClassPair = vdom.ClassPair
