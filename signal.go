package except

import (
	"runtime"
	"runtime/debug"
	"strings"
)

// The Go runtime already delivers synchronous traps to the faulting
// goroutine as panics; faults at non-nil bad addresses additionally
// require the per-goroutine panic-on-fault mode. Installing a handler
// therefore means enabling that mode and saving the prior setting, and
// the handler body is the classification performed when a protected
// block recovers a runtime error.

// installHandlers arms the trap adapter when ctx receives its first
// frame. The prior fault setting plays the role of the saved signal
// handler. Under either policy the context is also counted towards the
// process-wide active-try total, which the shared policy consults when
// handlers are restored.
func (eng *engine) installHandlers(ctx *context) {
	if ctx.installed {
		return
	}
	ctx.priorFault = debug.SetPanicOnFault(true)
	ctx.installed = true

	eng.mu.Lock()
	eng.activeTryCount++
	eng.mu.Unlock()
}

// restoreHandlers disarms the trap adapter when ctx drops its last
// frame, restoring the saved fault setting. The result reports whether
// the original dispositions are to be considered restored, which gates
// the re-raise of an unhandled trap: always under the private policy,
// only for the last active context under the shared policy.
func (eng *engine) restoreHandlers(ctx *context) bool {
	if !ctx.installed {
		return false
	}
	debug.SetPanicOnFault(ctx.priorFault)
	return eng.releaseHandlers(ctx)
}

// releaseHandlers is the bookkeeping half of restoreHandlers. It leaves
// the calling goroutine's fault mode alone, which matters when a
// surviving goroutine reclaims a dead goroutine's context: the dead
// goroutine's setting died with it.
func (eng *engine) releaseHandlers(ctx *context) bool {
	ctx.installed = false

	eng.mu.Lock()
	defer eng.mu.Unlock()
	eng.activeTryCount--
	if eng.sharedHandlers {
		return eng.activeTryCount == 0
	}
	return true
}

// classifyPanic maps a recovered panic value onto the trap class
// hierarchy. The mapping is exhaustive: values that match no specific
// trap fall under Panic, so nothing recovered inside a frame is ever
// dropped.
func classifyPanic(r any) *Class {
	re, ok := r.(runtime.Error)
	if !ok {
		return Panic
	}
	msg := re.Error()
	switch {
	case strings.Contains(msg, "invalid memory address"),
		strings.Contains(msg, "nil pointer dereference"),
		strings.Contains(msg, "fault address"):
		return SegmentationFault
	case strings.Contains(msg, "divide by zero"),
		strings.Contains(msg, "floating point error"):
		return ArithmeticException
	case strings.Contains(msg, "misaligned"),
		strings.Contains(msg, "unaligned"):
		return BusError
	default:
		return Panic
	}
}

// adapt turns a recovered panic value into the exception to be raised on
// the current frame. Exceptions pass through unchanged, preserving the
// identity of rethrows and of propagation between frames. Everything
// else is a trap: no source information exists for it, and the original
// panic value is kept as the cause for the terminal re-raise.
func (eng *engine) adapt(r any) *ExceptionInstance {
	if exc, ok := r.(*ExceptionInstance); ok {
		return exc
	}
	exc := newException(classifyPanic(r), nil, "?", 0)
	exc.cause = r
	return exc
}
