package main

import (
	"fmt"
	"strconv"

	. "github.com/tideui/tide/el"
	"github.com/tideui/tide/pkg/reactive"
)

// demoApp is the component served by `tide serve`: a counter and a keyed
// todo list exercising signals, list reactivity, and keyed reconciliation.
type demoApp struct {
	count *reactive.Signal[int]
	todos *reactive.List
	next  int
}

func newDemoApp() Component {
	return &demoApp{
		count: reactive.NewSignal(0),
		todos: reactive.NewList("learn signals", "ship something"),
		next:  2,
	}
}

func (a *demoApp) Render() *VNode {
	return Div(Class("app"),
		Header(H1(Text("Tide demo"))),
		Section(Class("counter"),
			Button(OnClick(func() { a.count.Update(func(n int) int { return n - 1 }) }), Text("-")),
			Span(Class("count"), TextDyn(strconv.Itoa(a.count.Get()))),
			Button(OnClick(func() { a.count.Update(func(n int) int { return n + 1 }) }), Text("+")),
		),
		Section(Class("todos"),
			Button(OnClick(a.addTodo), Text("Add todo")),
			Ul(a.renderTodos()),
		),
	)
}

func (a *demoApp) addTodo() {
	a.next++
	a.todos.Append(fmt.Sprintf("todo #%d", a.next))
}

func (a *demoApp) renderTodos() []*VNode {
	items := a.todos.Values()
	out := make([]*VNode, 0, len(items))
	for i, item := range items {
		label, _ := item.(string)
		idx := i
		out = append(out, Li(Key(label),
			Span(TextDyn(label)),
			Button(OnClick(func() { a.todos.RemoveAt(idx) }), Text("×")),
		))
	}
	return out
}
