// Package spec holds the declarative tree a view function produces each
// cycle. A spec tree is plain immutable data; the runtime diffs two of
// them and patches the live render tree from the result.
package spec

import (
	"fmt"
	"strings"
)

// Node is one position of a spec tree.
type Node interface {
	node()
}

// Elem describes an element: a tag, ordered attributes and ordered
// children. An attribute key of the form "on"+event names an event
// listener; its value is the message delivered when the event fires.
type Elem struct {
	Tag   string
	Attrs []Attr
	Kids  []Node
}

// Text describes a text node.
type Text struct {
	Content string
}

// Empty renders nothing. Diffing and child creation skip it entirely, so
// a view can return Empty to omit a child without disturbing the
// positions of its siblings.
type Empty struct{}

func (Elem) node()  {}
func (Text) node()  {}
func (Empty) node() {}

// Attr is one attribute. Val is a string for regular attributes; for
// event attributes it is the message value, which must be comparable
// with == (the differ decides rebinding by comparing it). Freshly built
// closures are not comparable; use small stable descriptor values.
type Attr struct {
	Key string
	Val any
}

func El(tag string, attrs []Attr, kids ...Node) Elem {
	return Elem{Tag: tag, Attrs: attrs, Kids: kids}
}

func Txt(s string) Text {
	return Text{Content: s}
}

func None() Empty {
	return Empty{}
}

func A(key, val string) Attr {
	return Attr{Key: key, Val: val}
}

// On binds msg to the named event, e.g. On("click", m) yields the
// attribute "onclick". Only one listener per event name; when the same
// event appears twice the last one wins.
func On(event string, msg any) Attr {
	return Attr{Key: "on" + event, Val: msg}
}

// Style builds a style attribute from property/value pairs.
func Style(pairs ...string) Attr {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		fmt.Fprintf(&b, "%v: %v; ", pairs[i], pairs[i+1])
	}
	return Attr{Key: "style", Val: strings.TrimSpace(b.String())}
}

// IsEvent reports whether an attribute key names an event listener.
func IsEvent(key string) bool {
	return len(key) > 2 && strings.HasPrefix(key, "on")
}

// EventName returns the event an attribute key names ("onclick" =>
// "click").
func EventName(key string) string {
	return strings.TrimPrefix(key, "on")
}

// Lookup finds key in attrs. The bool reports presence; an absent
// attribute is distinct from one present with a zero value.
func Lookup(attrs []Attr, key string) (any, bool) {
	for _, a := range attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return nil, false
}

// Compact returns kids with Empty nodes filtered out. The result aliases
// kids when nothing was filtered.
func Compact(kids []Node) []Node {
	for i, k := range kids {
		if _, ok := k.(Empty); !ok {
			continue
		}
		res := make([]Node, 0, len(kids)-1)
		res = append(res, kids[:i]...)
		for _, k := range kids[i+1:] {
			if _, ok := k.(Empty); !ok {
				res = append(res, k)
			}
		}
		return res
	}
	return kids
}
