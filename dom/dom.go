// Package dom backs the render tree with golang.org/x/net/html nodes.
// A Tree implements the patch.Renderer capability; its nodes implement
// patch.Live. Event listeners are kept per node and event name; firing
// one hands the bound message to the tree's fire function, normally the
// runner's Enqueue.
package dom

import (
	"bytes"
	"github.com/psilva261/udom/logger"
	"github.com/psilva261/udom/patch"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type Tree struct {
	root      *html.Node
	fire      func(msg any)
	listeners map[*html.Node]map[string]any
	mutations chan Mutation
}

// NewTree creates a live tree whose root element has the given tag.
// fire receives the message of every listener that consumes an event.
func NewTree(tag string, fire func(msg any)) (t *Tree) {
	t = &Tree{
		fire:      fire,
		listeners: make(map[*html.Node]map[string]any),
		mutations: make(chan Mutation, 10000),
	}
	t.root = &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	return
}

func (t *Tree) Element(tag string) patch.Live {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	return &node{t: t, n: n}
}

func (t *Tree) Text(content string) patch.Live {
	return &node{t: t, n: &html.Node{Type: html.TextNode, Data: content}}
}

// Root returns the mount point the runner patches against.
func (t *Tree) Root() patch.Live {
	return &node{t: t, n: t.root}
}

// ById finds the element carrying id anywhere in the tree.
func (t *Tree) ById(id string) patch.Live {
	n := grepById(t.root, id)
	if n == nil {
		return nil
	}
	return &node{t: t, n: n}
}

// Fire dispatches event on the element with the given id. The event
// bubbles towards the root until a listener consumes it; the consumed
// message goes to the tree's fire function. Reports whether any
// listener fired.
func (t *Tree) Fire(id, event string) bool {
	n := grepById(t.root, id)
	if n == nil {
		log.Errorf("fire %v: no element with id %v", event, id)
		return false
	}
	for ; n != nil; n = n.Parent {
		if msg, ok := t.listeners[n][event]; ok {
			t.fire(msg)
			return true
		}
	}
	return false
}

// HTML renders the whole tree including the root element.
func (t *Tree) HTML() string {
	return render(t.root)
}

// InnerHTML renders the children of the root element.
func (t *Tree) InnerHTML() string {
	return renderInner(t.root)
}

// drop forgets the listeners of a detached subtree.
func (t *Tree) drop(n *html.Node) {
	delete(t.listeners, n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		t.drop(c)
	}
}

type node struct {
	t *Tree
	n *html.Node
}

func (el *node) SetAttr(key, val string) {
	setAttr(el.n, key, val)
	el.t.addMutation(ChAttr, el.n)
}

func (el *node) RemoveAttr(key string) {
	rmAttr(el.n, key)
	el.t.addMutation(RmAttr, el.n)
}

func (el *node) Bind(event string, msg any) {
	ls, ok := el.t.listeners[el.n]
	if !ok {
		ls = make(map[string]any)
		el.t.listeners[el.n] = ls
	}
	ls[event] = msg
}

func (el *node) Unbind(event string, msg any) {
	ls, ok := el.t.listeners[el.n]
	if !ok {
		return
	}
	delete(ls, event)
	if len(ls) == 0 {
		delete(el.t.listeners, el.n)
	}
}

func (el *node) Children() (kids []patch.Live) {
	kids = make([]patch.Live, 0, 2)
	for c := el.n.FirstChild; c != nil; c = c.NextSibling {
		kids = append(kids, &node{t: el.t, n: c})
	}
	return
}

func (el *node) Append(c patch.Live) {
	el.n.AppendChild(c.(*node).n)
	el.t.addMutation(Insert, el.n)
}

func (el *node) Replace(old, nu patch.Live) {
	o := old.(*node).n
	el.n.InsertBefore(nu.(*node).n, o)
	el.n.RemoveChild(o)
	el.t.drop(o)
	el.t.addMutation(Swap, el.n)
}

func (el *node) Remove(c patch.Live) {
	o := c.(*node).n
	el.n.RemoveChild(o)
	el.t.drop(o)
	el.t.addMutation(Rm, el.n)
}

// Attr reads an attribute off a live node, mainly for the control
// surface and tests.
func Attr(l patch.Live, key string) string {
	return attr(*l.(*node).n, key)
}

func attr(n html.Node, key string) (val string) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return
}

func hasAttr(n html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func setAttr(n *html.Node, key, val string) {
	newAttr := html.Attribute{
		Key: key,
		Val: val,
	}
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i] = newAttr
			return
		}
	}
	n.Attr = append(n.Attr, newAttr)
}

func rmAttr(n *html.Node, key string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}

func grepById(n *html.Node, id string) *html.Node {
	if id == "" {
		return nil
	}
	if n.Type == html.ElementNode {
		if attr(*n, "id") == id {
			return n
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if res := grepById(c, id); res != nil {
			return res
		}
	}
	return nil
}

func render(n *html.Node) string {
	buf := bytes.NewBufferString("")
	if err := html.Render(buf, n); err != nil {
		log.Errorf("render: %v", err)
		return ""
	}
	return buf.String()
}

func renderInner(n *html.Node) string {
	buf := bytes.NewBufferString("")
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(buf, c); err != nil {
			log.Errorf("render inner: %v", err)
			return ""
		}
	}
	return buf.String()
}
