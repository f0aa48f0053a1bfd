// Demo: a todo list mounted on the udom runtime, its live tree served
// over 9P. ctl accepts commands ("click item3", "add buy milk", ...);
// html reads the currently rendered tree.
package main

import (
	"bufio"
	"fmt"
	"github.com/psilva261/udom/dom"
	"github.com/psilva261/udom/logger"
	"github.com/psilva261/udom/runner"
	"github.com/psilva261/udom/spec"
	"io"
	"net"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

var (
	ru      *runner.Runner
	tree    *dom.Tree
	service string
	mu      sync.Mutex
	done    = make(chan struct{})
	once    sync.Once
)

func usage() {
	log.Printf("usage: udom [-v] [-s service] [-r ms]")
	os.Exit(1)
}

type item struct {
	id   int
	text string
	done bool
}

type todos struct {
	next  int
	items []item
}

type addMsg struct {
	text string
}

type toggleMsg struct {
	id int
}

type clearMsg struct{}

func update(state, msg any, enqueue func(msg any)) any {
	t := state.(todos)
	switch m := msg.(type) {
	case addMsg:
		t.items = append(append([]item{}, t.items...), item{id: t.next, text: m.text})
		t.next++
	case toggleMsg:
		items := append([]item{}, t.items...)
		for i, it := range items {
			if it.id == m.id {
				items[i].done = !it.done
			}
		}
		t.items = items
	case clearMsg:
		var items []item
		for _, it := range t.items {
			if !it.done {
				items = append(items, it)
			}
		}
		t.items = items
	default:
		log.Errorf("unknown msg %T", msg)
	}
	return t
}

func view(state any) spec.Node {
	t := state.(todos)
	anyDone := false
	list := make([]spec.Node, 0, len(t.items))
	for _, it := range t.items {
		attrs := []spec.Attr{
			spec.A("id", fmt.Sprintf("item%d", it.id)),
			spec.On("click", toggleMsg{id: it.id}),
		}
		if it.done {
			anyDone = true
			attrs = append(attrs, spec.Style("text-decoration", "line-through"))
		}
		list = append(list, spec.El("li", attrs, spec.Txt(it.text)))
	}
	var body spec.Node
	if len(list) == 0 {
		body = spec.El("p", nil, spec.Txt("all done"))
	} else {
		body = spec.El("ul", nil, list...)
	}
	var clear spec.Node = spec.None()
	if anyDone {
		clear = spec.El("p",
			[]spec.Attr{spec.A("id", "clear"), spec.On("click", clearMsg{})},
			spec.Txt("clear finished"))
	}
	return spec.El("body", nil,
		spec.El("h1", nil, spec.Txt("todo")),
		body,
		clear)
}

// pace drives the runner at a fixed rate. ctl commands only enqueue or
// fire listeners; all diffing and patching happens here, one cycle per
// tick, under mu so readers of the tree see settled states.
func pace(rate time.Duration) {
	t := time.NewTicker(rate)
	defer t.Stop()
	for {
		select {
		case <-done:
			return
		case <-t.C:
			mu.Lock()
			err := ru.Tick()
			mu.Unlock()
			if err != nil {
				log.Fatalf("tick: %v", err)
			}
		}
	}
}

func command(l string, w *bufio.Writer) {
	l = strings.TrimSpace(l)
	cmd, arg, _ := strings.Cut(l, " ")
	switch cmd {
	case "stop":
		ru.Stop()
		once.Do(func() { close(done) })
		fmt.Fprintln(w, "ok")
	case "click":
		mu.Lock()
		fired := tree.Fire(arg, "click")
		mu.Unlock()
		if fired {
			fmt.Fprintln(w, "ok")
		} else {
			fmt.Fprintln(w, "no listener")
		}
	case "add":
		if arg == "" {
			fmt.Fprintln(w, "add what?")
			break
		}
		ru.Enqueue(addMsg{text: arg})
		fmt.Fprintln(w, "ok")
	case "html":
		mu.Lock()
		h := tree.HTML()
		mu.Unlock()
		fmt.Fprintln(w, h)
	case "style":
		id, prop, ok := strings.Cut(arg, " ")
		if !ok {
			fmt.Fprintln(w, "style <id> <prop>")
			break
		}
		mu.Lock()
		el := tree.ById(id)
		val := ""
		if el != nil {
			val = dom.StyleValue(el, prop)
		}
		mu.Unlock()
		if el == nil {
			fmt.Fprintln(w, "no element "+id)
			break
		}
		fmt.Fprintln(w, val)
	default:
		log.Printf("unknown cmd %v", cmd)
		fmt.Fprintln(w, "unknown cmd")
	}
	w.Flush()
}

// Console speaks the ctl protocol on r/w, for running without a 9P
// service.
func Console(r io.Reader, w io.Writer) (err error) {
	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)
	for {
		l, err := br.ReadString('\n')
		if err != nil {
			return nil
		}
		command(l, bw)
		select {
		case <-done:
			return nil
		default:
		}
	}
}

func ctl(conn net.Conn) {
	defer conn.Close()
	r := bufio.NewReader(conn)
	w := bufio.NewWriter(conn)
	l, err := r.ReadString('\n')
	if err != nil {
		log.Printf("udom: read string: %v", err)
		return
	}
	command(l, w)
}

func main() {
	args := os.Args[1:]
	rate := 50 * time.Millisecond

	for len(args) > 0 {
		switch args[0] {
		case "-v":
			args = args[1:]
			log.Debug = true
		case "-s":
			if len(args) < 2 {
				usage()
			}
			service, args = args[1], args[2:]
		case "-r":
			if len(args) < 2 {
				usage()
			}
			ms, err := strconv.Atoi(args[1])
			if err != nil || ms <= 0 {
				usage()
			}
			rate = time.Duration(ms) * time.Millisecond
			args = args[2:]
		default:
			usage()
		}
	}

	tree = dom.NewTree("html", func(msg any) {
		ru.Enqueue(msg)
	})
	ru = runner.New(tree, tree.Root(), todos{
		next:  2,
		items: []item{{id: 0, text: "drink tea"}, {id: 1, text: "read mail"}},
	}, update, view)
	if err := ru.Init(); err != nil {
		log.Fatalf("init: %v", err)
	}

	go pace(rate)
	go func() {
		for m := range tree.Mutations() {
			log.Printf("mutation: %v %v", m.Type, m.Tag)
		}
	}()

	if service == "" {
		if err := Console(os.Stdin, os.Stdout); err != nil {
			log.Fatalf("console: %v", err)
		}
		return
	}
	if err := Serve(); err != nil {
		log.Fatalf("serve: %v", err)
	}
}
