package except

import (
	"github.com/petermattis/goid"

	"github.com/meaning-matters/except/internal/lifo"
)

// context is the per-goroutine exception-handling state: the frame
// stack, a reference to its top, and the saved fault disposition. A
// context is created lazily by the first try of a goroutine and
// destroyed by the matching outermost teardown.
type context struct {
	id      int64
	frames  *lifo.Stack[*frame]
	current *frame // top of frames whenever frames is non-empty

	// installed/priorFault track the trap adapter: priorFault is the
	// fault setting saved when this context's first frame was pushed.
	installed  bool
	priorFault bool
}

func newContext(id int64) *context {
	return &context{id: id, frames: lifo.New[*frame]()}
}

func (ctx *context) push(f *frame) {
	ctx.frames.Push(f)
	ctx.current = f
}

func (ctx *context) pop() *frame {
	f, ok := ctx.frames.Pop()
	if !ok {
		return nil
	}
	ctx.current, _ = ctx.frames.Peek(1)
	return f
}

// ensureContext returns the calling goroutine's context, creating it on
// first use. Creation is serialized by the engine lock. In
// single-threaded mode the static context is handed out directly.
func (eng *engine) ensureContext() *context {
	if eng.singleThreaded {
		eng.mu.Lock()
		defer eng.mu.Unlock()
		if eng.static == nil {
			eng.static = newContext(0)
		}
		return eng.static
	}

	id := goid.Get()
	eng.mu.Lock()
	defer eng.mu.Unlock()
	ctx, ok := eng.contexts[id]
	if !ok {
		ctx = newContext(id)
		eng.contexts[id] = ctx
	}
	return ctx
}

// currentContext returns the calling goroutine's context without
// creating one; nil when the goroutine has never entered a try (or its
// context was already destroyed).
func (eng *engine) currentContext() *context {
	if eng.singleThreaded {
		eng.mu.Lock()
		defer eng.mu.Unlock()
		return eng.static
	}

	id := goid.Get()
	eng.mu.Lock()
	defer eng.mu.Unlock()
	return eng.contexts[id]
}

// releaseContext removes ctx from the store. Residual frames are dropped
// with it; the frame memory is owned by the stack.
func (eng *engine) releaseContext(ctx *context) {
	eng.mu.Lock()
	defer eng.mu.Unlock()
	if eng.singleThreaded {
		if eng.static == ctx {
			eng.static = nil
		}
		return
	}
	delete(eng.contexts, ctx.id)
}

// CeaseGoroutine removes and frees the exception context of a goroutine
// that died without running its outermost finally, for example because
// its work was abandoned mid-try. It must be called by a surviving
// goroutine; calling it with the caller's own id is refused. Under the
// shared handler policy this rebalances the active-try count so the
// original dispositions can be restored in finite time.
func CeaseGoroutine(id int64) {
	if eng.singleThreaded || id == goid.Get() {
		return
	}

	eng.mu.Lock()
	ctx, ok := eng.contexts[id]
	if ok {
		delete(eng.contexts, id)
	}
	eng.mu.Unlock()
	if !ok {
		return
	}
	if ctx.installed {
		eng.releaseHandlers(ctx)
	}
}
