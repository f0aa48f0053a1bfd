package patch_test

import (
	"errors"
	"testing"

	"github.com/psilva261/udom/diff"
	"github.com/psilva261/udom/dom"
	"github.com/psilva261/udom/patch"
	"github.com/psilva261/udom/spec"
)

func newTree(fired *[]any) *dom.Tree {
	return dom.NewTree("root", func(msg any) {
		*fired = append(*fired, msg)
	})
}

func mount(t *testing.T, tr *dom.Tree, prev []spec.Node, next spec.Node) {
	t.Helper()
	edits := diff.List(prev, []spec.Node{next})
	if err := patch.Apply(tr, tr.Root(), edits); err != nil {
		t.Fatalf("%v", err)
	}
}

func drain(tr *dom.Tree) (n int) {
	for {
		select {
		case <-tr.Mutations():
			n++
		default:
			return
		}
	}
}

func TestCreate(t *testing.T) {
	var fired []any
	tr := newTree(&fired)
	mount(t, tr, nil, spec.El("div",
		[]spec.Attr{spec.A("class", "box"), spec.On("click", "hit")},
		spec.El("span", nil, spec.Txt("hi")),
		spec.None(),
		spec.Txt("there"),
	))
	want := `<root><div class="box"><span>hi</span>there</div></root>`
	if h := tr.HTML(); h != want {
		t.Fatalf("%v", h)
	}
	// the empty child was skipped, not created
	if h := tr.InnerHTML(); h != `<div class="box"><span>hi</span>there</div>` {
		t.Fatalf("%v", h)
	}
}

func TestListenerFires(t *testing.T) {
	var fired []any
	tr := newTree(&fired)
	mount(t, tr, nil, spec.El("button",
		[]spec.Attr{spec.A("id", "b"), spec.On("click", "pressed")},
		spec.Txt("go")))
	if ok := tr.Fire("b", "click"); !ok {
		t.Fatalf("listener did not fire")
	}
	if len(fired) != 1 || fired[0] != "pressed" {
		t.Fatalf("%v", fired)
	}
}

func TestNoopApplicationIsInert(t *testing.T) {
	var fired []any
	tr := newTree(&fired)
	page := func() spec.Node {
		return spec.El("div", []spec.Attr{spec.A("id", "p")},
			spec.Txt("a"), spec.El("b", nil))
	}
	mount(t, tr, nil, page())
	before := tr.HTML()
	drain(tr)
	mount(t, tr, []spec.Node{page()}, page())
	if h := tr.HTML(); h != before {
		t.Fatalf("%v != %v", h, before)
	}
	if n := drain(tr); n != 0 {
		t.Fatalf("%v mutations from a noop script", n)
	}
}

func TestTailGrowAndShrink(t *testing.T) {
	var fired []any
	tr := newTree(&fired)
	one := spec.El("ul", nil, spec.El("li", nil, spec.Txt("a")))
	two := spec.El("ul", nil,
		spec.El("li", nil, spec.Txt("a")),
		spec.El("li", nil, spec.Txt("b")))
	mount(t, tr, nil, one)
	mount(t, tr, []spec.Node{one}, two)
	if h := tr.InnerHTML(); h != "<ul><li>a</li><li>b</li></ul>" {
		t.Fatalf("%v", h)
	}
	mount(t, tr, []spec.Node{two}, one)
	if h := tr.InnerHTML(); h != "<ul><li>a</li></ul>" {
		t.Fatalf("%v", h)
	}
}

func TestModifyAttrs(t *testing.T) {
	var fired []any
	tr := newTree(&fired)
	prev := spec.El("div", []spec.Attr{spec.A("id", "d"), spec.A("class", "old")})
	next := spec.El("div", []spec.Attr{spec.A("id", "d"), spec.A("title", "new")})
	mount(t, tr, nil, prev)
	mount(t, tr, []spec.Node{prev}, next)
	el := tr.ById("d")
	if el == nil {
		t.Fatalf("element is gone")
	}
	if v := dom.Attr(el, "class"); v != "" {
		t.Fatalf("%q", v)
	}
	if v := dom.Attr(el, "title"); v != "new" {
		t.Fatalf("%q", v)
	}
}

func TestRebindListener(t *testing.T) {
	var fired []any
	tr := newTree(&fired)
	prev := spec.El("button", []spec.Attr{spec.A("id", "b"), spec.On("click", "f")})
	next := spec.El("button", []spec.Attr{spec.A("id", "b"), spec.On("click", "g")})
	mount(t, tr, nil, prev)
	mount(t, tr, []spec.Node{prev}, next)
	tr.Fire("b", "click")
	if len(fired) != 1 || fired[0] != "g" {
		t.Fatalf("%v", fired)
	}
}

func TestUnbindListener(t *testing.T) {
	var fired []any
	tr := newTree(&fired)
	prev := spec.El("button", []spec.Attr{spec.A("id", "b"), spec.On("click", "f")})
	next := spec.El("button", []spec.Attr{spec.A("id", "b")})
	mount(t, tr, nil, prev)
	mount(t, tr, []spec.Node{prev}, next)
	if ok := tr.Fire("b", "click"); ok {
		t.Fatalf("stale listener fired")
	}
	if len(fired) != 0 {
		t.Fatalf("%v", fired)
	}
}

func TestReplaceOnTagChange(t *testing.T) {
	var fired []any
	tr := newTree(&fired)
	prev := spec.El("div", nil, spec.Txt("x"))
	next := spec.El("span", nil, spec.Txt("x"))
	mount(t, tr, nil, prev)
	mount(t, tr, []spec.Node{prev}, next)
	if h := tr.InnerHTML(); h != "<span>x</span>" {
		t.Fatalf("%v", h)
	}
}

func TestShortScriptIsFatal(t *testing.T) {
	var fired []any
	tr := newTree(&fired)
	mount(t, tr, nil, spec.El("div", nil))
	err := patch.Apply(tr, tr.Root(), nil)
	var ie *patch.InvariantError
	if !errors.As(err, &ie) {
		t.Fatalf("%v", err)
	}
}

func TestNonTailCreateIsFatal(t *testing.T) {
	var fired []any
	tr := newTree(&fired)
	mount(t, tr, nil, spec.El("div", nil))
	err := patch.Apply(tr, tr.Root(), []diff.Edit{
		diff.Create{Next: spec.Txt("x")},
	})
	var ie *patch.InvariantError
	if !errors.As(err, &ie) {
		t.Fatalf("%v", err)
	}
}
