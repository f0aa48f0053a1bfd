// Package runner owns one mount: the application state, the previous
// spec tree and the message queue, and drives the paced
// drain-fold-view-diff-patch cycle.
package runner

import (
	"sync"
	"time"

	"github.com/psilva261/udom/diff"
	"github.com/psilva261/udom/logger"
	"github.com/psilva261/udom/patch"
	"github.com/psilva261/udom/spec"
)

// Update folds one message into the state. It runs synchronously and may
// call enqueue to chain further messages; those become visible on the
// next tick, never the current one.
type Update func(state, msg any, enqueue func(msg any)) any

// View derives the spec tree from the state. It must be pure: no side
// effects and no touching of the live tree.
type View func(state any) spec.Node

// Runner is the per-mount loop context. Multiple runners can coexist;
// nothing here is process wide.
type Runner struct {
	r      patch.Renderer
	root   patch.Live
	state  any
	update Update
	view   View

	// prev holds the spec the live tree currently reflects. It starts
	// empty so the first cycle creates everything.
	prev []spec.Node

	mu    sync.Mutex
	queue []any

	stop chan struct{}
	once sync.Once
}

func New(r patch.Renderer, root patch.Live, state any, update Update, view View) *Runner {
	return &Runner{
		r:      r,
		root:   root,
		state:  state,
		update: update,
		view:   view,
		stop:   make(chan struct{}),
	}
}

// Mount renders the initial tree on root and starts the paced loop in
// its own goroutine. The returned runner is the handle for injecting
// messages from outside the event system.
func Mount(r patch.Renderer, root patch.Live, state any, update Update, view View, interval time.Duration) (ru *Runner, err error) {
	ru = New(r, root, state, update, view)
	if err = ru.Init(); err != nil {
		return nil, err
	}
	go func() {
		if err := ru.Run(interval); err != nil {
			log.Errorf("run: %v", err)
		}
	}()
	return ru, nil
}

// Enqueue appends msg to the queue. Safe to call from update, from a
// listener fired during patch application, and from other goroutines;
// the message is picked up on the next tick.
func (ru *Runner) Enqueue(msg any) {
	ru.mu.Lock()
	ru.queue = append(ru.queue, msg)
	ru.mu.Unlock()
}

// take snapshots the queue and resets it, so messages enqueued while the
// snapshot is folded land in the next tick.
func (ru *Runner) take() (msgs []any) {
	ru.mu.Lock()
	msgs = ru.queue
	ru.queue = nil
	ru.mu.Unlock()
	return
}

// Init runs the first cycle against the empty previous spec, creating
// the whole live tree.
func (ru *Runner) Init() error {
	return ru.render()
}

// Tick runs one paced cycle: drain the queue, fold update over the
// drained messages in arrival order, then render once. An empty queue
// means no work and no speculative redraw.
func (ru *Runner) Tick() error {
	msgs := ru.take()
	if len(msgs) == 0 {
		return nil
	}
	for _, m := range msgs {
		ru.state = ru.update(ru.state, m, ru.Enqueue)
	}
	return ru.render()
}

func (ru *Runner) render() error {
	next := ru.view(ru.state)
	edits := diff.List(ru.prev, []spec.Node{next})
	if err := patch.Apply(ru.r, ru.root, edits); err != nil {
		return err
	}
	ru.prev = []spec.Node{next}
	return nil
}

// Run ticks at the given interval until Stop or a fatal patch error.
// Errors from update or view are not intercepted here; they propagate
// as panics out of the cycle they occur in.
func (ru *Runner) Run(interval time.Duration) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ru.stop:
			return nil
		case <-t.C:
			if err := ru.Tick(); err != nil {
				return err
			}
		}
	}
}

// Stop ends a Run. The live tree stays as rendered.
func (ru *Runner) Stop() {
	ru.once.Do(func() {
		close(ru.stop)
	})
}
