package except

// traceOp emits one structured trace event for an engine operation. The
// trace replaces the indented call log of classic debugging builds with
// fields a log pipeline can filter on: operation, nesting depth,
// goroutine, and the class and id of the exception involved.
func (eng *engine) traceOp(ctx *context, op string, exc *ExceptionInstance) {
	if !eng.tracing {
		return
	}
	ev := eng.trace.Debug().
		Str("op", op).
		Int("depth", ctx.frames.Len())
	if !eng.singleThreaded {
		ev = ev.Int64("goroutine", ctx.id)
	}
	if exc != nil {
		ev = ev.Str("class", exc.class.name).Str("exception", exc.ID())
	}
	ev.Msg("except")
}
