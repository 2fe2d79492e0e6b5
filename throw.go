package except

import (
	"fmt"
	"path/filepath"
	"runtime"
)

// Throw raises an exception on the calling goroutine's innermost frame.
// The first argument is either a *Class, which raises a fresh exception
// carrying data and the caller's source location, or a live *ExceptionInstance,
// which rethrows the instance with its class, data, and origin
// preserved. From a try block the catch clauses get their chance; from a
// catch or finally block control moves straight to the finally phase,
// overruling whatever was pending. Outside any frame the exception is
// lost: a notice goes to the diagnostic channel and Throw returns.
func Throw(classOrException any, data any) {
	file, line := callerLocation(1)
	ThrowAt(classOrException, data, file, line)
}

// Throwf raises a fresh exception of class carrying the formatted string
// as its data.
func Throwf(class *Class, format string, args ...any) {
	file, line := callerLocation(1)
	ThrowAt(class, fmt.Sprintf(format, args...), file, line)
}

// ThrowAt is Throw with an explicit source location. It exists for
// adapters that raise on behalf of another site, such as the allocation
// wrappers; most callers want Throw.
func ThrowAt(classOrException any, data any, file string, line int) {
	var exc *ExceptionInstance
	switch v := classOrException.(type) {
	case *ExceptionInstance:
		exc = v
	case *Class:
		exc = newException(v, data, file, line)
	default:
		panic(fmt.Sprintf("except: Throw requires a *Class or *ExceptionInstance, got %T", classOrException))
	}

	ctx := eng.currentContext()
	if ctx == nil || ctx.frames.Len() == 0 {
		eng.diagf("%s lost: file %q, line %d.\n", exc.class.name, file, line)
		return
	}
	panic(exc)
}

func callerLocation(skip int) (string, int) {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "?", 0
	}
	return trimPath(file), line
}

// trimPath reduces a source path to its base name, which keeps messages
// and traces stable across build environments.
func trimPath(file string) string {
	return filepath.Base(file)
}
