// Package diff computes the edit script between two spec trees. The
// script mirrors the shape of the newer tree; applying it to a live tree
// built from the older one (see package patch) brings the two in sync
// with minimal mutation.
//
// Children are matched strictly by position, never by key or identity. A
// removal or insertion in the middle of a list therefore cascades into
// Replace/Remove/Create entries for every later position. That is a
// deliberate simplicity tradeoff over general keyed reconciliation.
package diff

import (
	"github.com/psilva261/udom/spec"
)

// Edit is the script entry for one node position.
type Edit interface {
	edit()
}

// Noop leaves the live node untouched.
type Noop struct{}

// Replace discards the live node and builds Next in its place.
type Replace struct {
	Next spec.Node
}

// Remove detaches the live node.
type Remove struct{}

// Create builds Next and appends it. Creations are tail-only by
// construction of the positional diff.
type Create struct {
	Next spec.Node
}

// Modify edits an element kept in place.
type Modify struct {
	Contents Contents
}

func (Noop) edit()    {}
func (Replace) edit() {}
func (Remove) edit()  {}
func (Create) edit()  {}
func (Modify) edit()  {}

// Contents is the attribute, listener and children delta of a Modify.
// RmListeners records the previously bound message per event (nil when
// the event was not bound before); AddListeners the message to bind.
type Contents struct {
	RmAttr       []string
	SetAttr      []spec.Attr
	RmListeners  map[string]any
	AddListeners map[string]any
	Kids         []Edit
}

func (c Contents) isNoop() bool {
	if len(c.RmAttr) > 0 || len(c.SetAttr) > 0 ||
		len(c.RmListeners) > 0 || len(c.AddListeners) > 0 {
		return false
	}
	for _, e := range c.Kids {
		if _, ok := e.(Noop); !ok {
			return false
		}
	}
	return true
}

// Node diffs a single position. Text content is compared by value; a tag
// change forces a Replace without looking at children.
func Node(prev, next spec.Node) Edit {
	pt, pok := prev.(spec.Text)
	nt, nok := next.(spec.Text)
	if pok || nok {
		if pok && nok && pt.Content == nt.Content {
			return Noop{}
		}
		return Replace{Next: next}
	}
	pe, pok := prev.(spec.Elem)
	ne, nok := next.(spec.Elem)
	if !pok || !nok {
		// Empty never reaches here; list inputs are compacted first.
		return Replace{Next: next}
	}
	if pe.Tag != ne.Tag {
		return Replace{Next: next}
	}
	c := contents(pe, ne)
	if c.isNoop() {
		return Noop{}
	}
	return Modify{Contents: c}
}

// List diffs two child lists position by position after filtering Empty
// from both sides. The result has max(len(prev), len(next)) entries.
func List(prev, next []spec.Node) []Edit {
	prev = spec.Compact(prev)
	next = spec.Compact(next)
	n := len(prev)
	if len(next) > n {
		n = len(next)
	}
	edits := make([]Edit, 0, n)
	for i := 0; i < n; i++ {
		switch {
		case i >= len(prev):
			edits = append(edits, Create{Next: next[i]})
		case i >= len(next):
			edits = append(edits, Remove{})
		default:
			edits = append(edits, Node(prev[i], next[i]))
		}
	}
	return edits
}

func contents(prev, next spec.Elem) (c Contents) {
	c.RmListeners = make(map[string]any)
	c.AddListeners = make(map[string]any)
	for _, a := range prev.Attrs {
		if _, ok := spec.Lookup(next.Attrs, a.Key); ok {
			continue
		}
		if spec.IsEvent(a.Key) {
			c.RmListeners[spec.EventName(a.Key)] = a.Val
		} else {
			c.RmAttr = append(c.RmAttr, a.Key)
		}
	}
	for _, a := range next.Attrs {
		pv, ok := spec.Lookup(prev.Attrs, a.Key)
		if ok && pv == a.Val {
			continue
		}
		if spec.IsEvent(a.Key) {
			ev := spec.EventName(a.Key)
			c.RmListeners[ev] = pv
			c.AddListeners[ev] = a.Val
		} else {
			c.SetAttr = append(c.SetAttr, a)
		}
	}
	c.Kids = List(prev.Kids, next.Kids)
	return
}
