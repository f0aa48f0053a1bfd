// Package patch replays an edit script against a live render tree. It
// depends on the backend only through the Renderer and Live capability
// interfaces; package dom provides the html.Node backed implementation.
package patch

import (
	"fmt"

	"github.com/psilva261/udom/diff"
	"github.com/psilva261/udom/spec"
)

// Renderer creates live nodes.
type Renderer interface {
	Element(tag string) Live
	Text(content string) Live
}

// Live is one node of the render tree. Bind attaches the message fired
// for an event; at most one message is bound per event name. Unbind
// receives the previously bound message for backends whose unregistration
// needs it.
type Live interface {
	SetAttr(key, val string)
	RemoveAttr(key string)
	Bind(event string, msg any)
	Unbind(event string, msg any)
	Children() []Live
	Append(c Live)
	Replace(old, nu Live)
	Remove(c Live)
}

// InvariantError reports a broken correspondence between the tracked
// previous spec and the live tree. It is not recoverable: continuing
// would corrupt every later cycle, so callers must stop the loop.
type InvariantError struct {
	Reason string
}

func (e *InvariantError) Error() string {
	return "live tree out of sync: " + e.Reason
}

func invariant(format string, v ...any) error {
	return &InvariantError{Reason: fmt.Sprintf(format, v...)}
}

// Create builds a live node for n. Empty children are skipped, not
// created. Event attributes are bound with the message captured now.
func Create(r Renderer, n spec.Node) (Live, error) {
	switch v := n.(type) {
	case spec.Text:
		return r.Text(v.Content), nil
	case spec.Elem:
		el := r.Element(v.Tag)
		for _, a := range v.Attrs {
			if spec.IsEvent(a.Key) {
				el.Bind(spec.EventName(a.Key), a.Val)
			} else {
				s, _ := a.Val.(string)
				el.SetAttr(a.Key, s)
			}
		}
		for _, k := range spec.Compact(v.Kids) {
			c, err := Create(r, k)
			if err != nil {
				return nil, err
			}
			el.Append(c)
		}
		return el, nil
	}
	return nil, invariant("create for spec node %T", n)
}

// Apply walks parent's live children in lockstep with edits. The cursor
// into the live list is not advanced past a Remove: the list physically
// shrinks while the script keeps its declared length, so the next script
// entry describes the child that slid into the cursor position.
func Apply(r Renderer, parent Live, edits []diff.Edit) error {
	if n := len(parent.Children()); len(edits) < n {
		return invariant("script covers %v children, live node has %v", len(edits), n)
	}
	cur := 0
	for _, e := range edits {
		live := parent.Children()
		switch v := e.(type) {
		case diff.Noop:
			cur++
		case diff.Remove:
			if cur >= len(live) {
				return invariant("remove at %v with %v live children", cur, len(live))
			}
			parent.Remove(live[cur])
		case diff.Create:
			if cur < len(live) {
				// Creations are tail-only; the positional diff never
				// emits one before existing children.
				return invariant("create at %v with %v live children", cur, len(live))
			}
			c, err := Create(r, v.Next)
			if err != nil {
				return err
			}
			parent.Append(c)
			cur++
		case diff.Replace:
			if cur >= len(live) {
				return invariant("replace at %v with %v live children", cur, len(live))
			}
			c, err := Create(r, v.Next)
			if err != nil {
				return err
			}
			parent.Replace(live[cur], c)
			cur++
		case diff.Modify:
			if cur >= len(live) {
				return invariant("modify at %v with %v live children", cur, len(live))
			}
			el := live[cur]
			for ev, old := range v.Contents.RmListeners {
				el.Unbind(ev, old)
			}
			for _, k := range v.Contents.RmAttr {
				el.RemoveAttr(k)
			}
			for _, a := range v.Contents.SetAttr {
				s, _ := a.Val.(string)
				el.SetAttr(a.Key, s)
			}
			for ev, msg := range v.Contents.AddListeners {
				el.Bind(ev, msg)
			}
			if err := Apply(r, el, v.Contents.Kids); err != nil {
				return err
			}
			cur++
		default:
			return invariant("unknown edit %T", e)
		}
	}
	return nil
}
