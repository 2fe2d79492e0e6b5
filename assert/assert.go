// Package assert provides the assertion checks that ride the exception
// runtime: Assert for debug-only invariants, Validate for checks that
// must leave a defined escape in production builds, and Check for
// checks that escalate to a chosen exception class.
package assert

import (
	"path/filepath"
	"runtime"

	"github.com/meaning-matters/except"
)

// Assert verifies a debug-time invariant. In debug mode a false cond
// fails the assertion: inside exception-handling scope that throws
// FailedAssertion with expr as its data; outside it prints the standard
// message and aborts when the engine is configured to. Outside debug
// mode Assert is a no-op.
func Assert(cond bool, expr string) {
	if cond || !except.DebugEnabled() {
		return
	}
	file, line := caller(1)
	except.FailAssertion(expr, file, line)
}

// Validate verifies a condition that the caller must back out of in
// production. It reports true when cond failed and the caller should
// return its fallback value:
//
//	if assert.Validate(arg != nil, "arg != nil") {
//		return defaultValue
//	}
//
// In debug mode a failure additionally fails the assertion, as Assert
// does.
func Validate(cond bool, expr string) bool {
	if cond {
		return false
	}
	if except.DebugEnabled() {
		file, line := caller(1)
		except.FailAssertion(expr, file, line)
	}
	return true
}

// Check verifies a condition whose failure raises class. In debug mode
// the failure first fails the assertion; when that does not unwind (the
// caller was outside exception-handling scope), the class is thrown
// anyway, mirroring the production path.
func Check(cond bool, expr string, class *except.Class) {
	if cond {
		return
	}
	file, line := caller(1)
	if except.DebugEnabled() {
		except.FailAssertion(expr, file, line)
	}
	except.ThrowAt(class, nil, file, line)
}

func caller(skip int) (string, int) {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "?", 0
	}
	return filepath.Base(file), line
}
