package vdom

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// El creates an element node. Arguments can be: nil (skipped, allows
// conditional pieces), Attr, []Attr, EventHandler, *VNode, []*VNode,
// Component, or string (text-child shorthand).
func El(tag string, args ...any) *VNode {
	return newElement(tag, 0, nil, args)
}

// ElFlagged is the compiler-facing constructor: it stamps a patch flag and
// dynamic-prop list onto the node and registers it with the innermost open
// block when the flag marks it dynamic.
func ElFlagged(tag string, flag PatchFlag, dynProps []string, args ...any) *VNode {
	return newElement(tag, flag, dynProps, args)
}

func newElement(tag string, flag PatchFlag, dynProps []string, args []any) *VNode {
	node := &VNode{
		Kind:      KindElement,
		Tag:       tag,
		Props:     make(Props),
		PatchFlag: flag,
		DynProps:  dynProps,
	}
	applyArgs(node, args)
	trackDynamic(node)
	return node
}

// applyArgs folds the variadic constructor arguments into the node,
// normalizing children to a single []*VNode representation.
func applyArgs(node *VNode, args []any) {
	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			continue

		case Attr:
			applyAttr(node, v)

		case []Attr:
			for _, attr := range v {
				applyAttr(node, attr)
			}

		case EventHandler:
			if v.Event != "" {
				node.Props[v.Event] = v.Handler
			}

		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}

		case []*VNode:
			for _, child := range v {
				if child != nil {
					node.Children = append(node.Children, child)
				}
			}

		case Component:
			node.Children = append(node.Children, Comp(v))

		case string:
			node.Children = append(node.Children, Text(v))
		}
	}
}

func applyAttr(node *VNode, attr Attr) {
	if attr.Key == "" {
		return
	}
	if attr.Key == "key" {
		if s, ok := attr.Value.(string); ok {
			node.Key = s
		}
		return
	}
	node.Props[attr.Key] = attr.Value
}

// Common element constructors. The el package re-exports these under the
// same names for view code.

func Div(args ...any) *VNode      { return El("div", args...) }
func Span(args ...any) *VNode     { return El("span", args...) }
func P(args ...any) *VNode        { return El("p", args...) }
func A(args ...any) *VNode        { return El("a", args...) }
func Button(args ...any) *VNode   { return El("button", args...) }
func Input(args ...any) *VNode    { return El("input", args...) }
func TextArea(args ...any) *VNode { return El("textarea", args...) }
func Select(args ...any) *VNode   { return El("select", args...) }
func Option(args ...any) *VNode   { return El("option", args...) }
func Label(args ...any) *VNode    { return El("label", args...) }
func Form(args ...any) *VNode     { return El("form", args...) }
func Img(args ...any) *VNode      { return El("img", args...) }
func Ul(args ...any) *VNode       { return El("ul", args...) }
func Ol(args ...any) *VNode       { return El("ol", args...) }
func Li(args ...any) *VNode       { return El("li", args...) }
func Table(args ...any) *VNode    { return El("table", args...) }
func THead(args ...any) *VNode    { return El("thead", args...) }
func TBody(args ...any) *VNode    { return El("tbody", args...) }
func Tr(args ...any) *VNode       { return El("tr", args...) }
func Th(args ...any) *VNode       { return El("th", args...) }
func Td(args ...any) *VNode       { return El("td", args...) }
func H1(args ...any) *VNode       { return El("h1", args...) }
func H2(args ...any) *VNode       { return El("h2", args...) }
func H3(args ...any) *VNode       { return El("h3", args...) }
func H4(args ...any) *VNode       { return El("h4", args...) }
func Header(args ...any) *VNode   { return El("header", args...) }
func Footer(args ...any) *VNode   { return El("footer", args...) }
func Main(args ...any) *VNode     { return El("main", args...) }
func Nav(args ...any) *VNode      { return El("nav", args...) }
func Section(args ...any) *VNode  { return El("section", args...) }
func Article(args ...any) *VNode  { return El("article", args...) }
func Aside(args ...any) *VNode    { return El("aside", args...) }
func Pre(args ...any) *VNode      { return El("pre", args...) }
func Code(args ...any) *VNode     { return El("code", args...) }
func Strong(args ...any) *VNode   { return El("strong", args...) }
func Em(args ...any) *VNode       { return El("em", args...) }
func Small(args ...any) *VNode    { return El("small", args...) }
func Br(args ...any) *VNode       { return El("br", args...) }
func Hr(args ...any) *VNode       { return El("hr", args...) }
