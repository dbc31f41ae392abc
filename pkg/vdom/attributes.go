package vdom

import "strings"

// attr builds a single attribute.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// Class sets the class attribute. Multiple values are joined with spaces.
func Class(names ...string) Attr {
	return attr("class", strings.Join(names, " "))
}

// ClassIf conditionally includes classes; falsy entries are dropped.
func ClassIf(pairs ...ClassPair) Attr {
	var names []string
	for _, p := range pairs {
		if p.On {
			names = append(names, p.Name)
		}
	}
	return attr("class", strings.Join(names, " "))
}

// ClassPair is one conditional class entry.
type ClassPair struct {
	Name string
	On   bool
}

// Style sets the style attribute.
func Style(css string) Attr { return attr("style", css) }

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Href sets the href attribute.
func Href(url string) Attr { return attr("href", url) }

// Src sets the src attribute.
func Src(url string) Attr { return attr("src", url) }

// Alt sets the alt attribute.
func Alt(text string) Attr { return attr("alt", text) }

// Title sets the title attribute.
func Title(text string) Attr { return attr("title", text) }

// Value sets the value attribute.
func Value(v any) Attr { return attr("value", v) }

// Placeholder sets the placeholder attribute.
func Placeholder(text string) Attr { return attr("placeholder", text) }

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }

// Name sets the name attribute.
func Name(n string) Attr { return attr("name", n) }

// For sets the for attribute.
func For(id string) Attr { return attr("for", id) }

// Disabled sets the disabled attribute when on.
func Disabled(on bool) Attr {
	if !on {
		return Attr{}
	}
	return attr("disabled", true)
}

// Checked sets the checked attribute when on.
func Checked(on bool) Attr {
	if !on {
		return Attr{}
	}
	return attr("checked", true)
}

// Data sets a data-* attribute.
func Data(suffix string, value any) Attr {
	return attr("data-"+suffix, value)
}

// Custom sets an arbitrary attribute.
func Custom(key string, value any) Attr {
	return attr(key, value)
}
