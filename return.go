package except

import "fmt"

// Return requests a deferred return of value from the enclosing Call or
// Run boundary. The request rides the exception protocol as the internal
// ReturnEvent class: it is pending like an exception, it overrules any
// exception already pending (and is itself overruled by a later throw or
// return from a finally), no catch clause can match it, and every
// finally between the call site and the boundary executes before the
// boundary delivers the value.
func Return(value any) {
	file, line := callerLocation(1)
	exc := newException(classReturnEvent, value, file, line)
	if ctx := eng.currentContext(); ctx != nil && ctx.frames.Len() > 0 {
		eng.traceOp(ctx, "return", exc)
	}
	panic(exc)
}

// Call marks a function boundary for the return protocol and runs fn.
// A Return(value) issued below this boundary, from any nesting of try
// constructs, unwinds through every intervening finally and makes Call
// return value. The value must be assignable to T; Return(nil) yields
// the zero value. Exceptions and foreign panics pass through unaffected.
func Call[T any](fn func() T) (result T) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		exc, ok := r.(*ExceptionInstance)
		if !ok || exc.class != classReturnEvent {
			panic(r)
		}
		if exc.data == nil {
			return
		}
		value, ok := exc.data.(T)
		if !ok {
			panic(fmt.Sprintf("except: Return value of type %T does not match boundary type %T",
				exc.data, result))
		}
		result = value
	}()
	return fn()
}

// Run is Call for functions without a result: it consumes a propagating
// return request, discarding its value.
func Run(fn func()) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if exc, ok := r.(*ExceptionInstance); ok && exc.class == classReturnEvent {
			return
		}
		panic(r)
	}()
	fn()
}
