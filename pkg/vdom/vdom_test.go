package vdom

import "testing"

func TestElConstruction(t *testing.T) {
	n := Div(ID("root"), Class("box", "wide"), Span(Text("hi")), "plain")
	if n.Kind != KindElement || n.Tag != "div" {
		t.Fatalf("kind=%v tag=%q", n.Kind, n.Tag)
	}
	if n.Props["id"] != "root" {
		t.Errorf("id = %v", n.Props["id"])
	}
	if n.Props["class"] != "box wide" {
		t.Errorf("class = %v", n.Props["class"])
	}
	if len(n.Children) != 2 {
		t.Fatalf("children = %d", len(n.Children))
	}
	if n.Children[1].Kind != KindText || n.Children[1].Text != "plain" {
		t.Errorf("string child = %+v", n.Children[1])
	}
}

func TestKeyAttr(t *testing.T) {
	n := Li(Key("row-1"))
	if n.Key != "row-1" {
		t.Errorf("Key = %q", n.Key)
	}
	if _, ok := n.Props["key"]; ok {
		t.Error("key must not leak into props")
	}

	n = Li(Key(42))
	if n.Key != "42" {
		t.Errorf("formatted Key = %q", n.Key)
	}
}

func TestEventHandlerArg(t *testing.T) {
	fn := func() {}
	n := Button(OnClick(fn))
	if n.Props["onclick"] == nil {
		t.Error("onclick not applied")
	}
}

func TestSameNode(t *testing.T) {
	cases := []struct {
		name      string
		old, next *VNode
		want      bool
	}{
		{"same element", Div(), Div(), true},
		{"different tag", Div(), Span(), false},
		{"different kind", Div(), Text("x"), false},
		{"same key", Li(Key("a")), Li(Key("a")), true},
		{"different key", Li(Key("a")), Li(Key("b")), false},
		{"nil", nil, Div(), false},
	}
	for _, tc := range cases {
		if got := SameNode(tc.old, tc.next); got != tc.want {
			t.Errorf("%s: SameNode = %v, want %v", tc.name, got, tc.want)
		}
	}
}

type compA struct{ n int }

func (compA) Render() *VNode { return Div() }

type compB struct{}

func (compB) Render() *VNode { return Div() }

func TestSameNodeComponents(t *testing.T) {
	// Same struct type, different values: patch in place.
	if !SameNode(Comp(compA{1}), Comp(compA{2})) {
		t.Error("same component type should match")
	}
	if SameNode(Comp(compA{}), Comp(compB{})) {
		t.Error("different component types must not match")
	}

	// Function components match by wrapper identity.
	f := Func(func() *VNode { return Div() })
	g := Func(func() *VNode { return Div() })
	if !SameNode(Comp(f), Comp(f)) {
		t.Error("same func component should match")
	}
	if SameNode(Comp(f), Comp(g)) {
		t.Error("distinct func components must not match")
	}
}

type revoked struct{}

func (revoked) Render() *VNode    { return Div() }
func (revoked) Invalidated() bool { return true }

func TestSameNodeInvalidatedComponent(t *testing.T) {
	if SameNode(Comp(revoked{}), Comp(revoked{})) {
		t.Error("invalidated component must force replacement")
	}
}

func TestIsEventProp(t *testing.T) {
	for key, want := range map[string]bool{
		"onclick": true,
		"onInput": true,
		"ONBLUR":  true,
		"on":      false,
		"once":    true,
		"class":   false,
	} {
		if got := IsEventProp(key); got != want {
			t.Errorf("IsEventProp(%q) = %v, want %v", key, got, want)
		}
	}
}

func TestStaticHash(t *testing.T) {
	a := Static("<p>chunk</p>")
	b := Static("<p>chunk</p>")
	c := Static("<p>other</p>")
	if a.StaticHash == 0 {
		t.Error("hash not computed")
	}
	if a.StaticHash != b.StaticHash {
		t.Error("equal content must hash equal")
	}
	if a.StaticHash == c.StaticHash {
		t.Error("different content should hash differently")
	}
}

func TestPatchFlagString(t *testing.T) {
	if got := (FlagText | FlagClass).String(); got != "Text|Class" {
		t.Errorf("String() = %q", got)
	}
	if FlagHoisted.String() != "Hoisted" || FlagBail.String() != "Bail" {
		t.Error("marker flags misrendered")
	}
	if PatchFlag(0).String() != "None" {
		t.Error("zero flag misrendered")
	}
}

func TestFlagHas(t *testing.T) {
	f := FlagText | FlagProps
	if !f.Has(FlagText) || !f.Has(FlagProps) || f.Has(FlagClass) {
		t.Errorf("Has misreported on %v", f)
	}
	if FlagBail.Has(FlagText) {
		t.Error("negative markers must never report bits")
	}
}
