// Package except is a centralized exception-handling runtime: Java-style
// try / catch / finally semantics with a user-extensible class hierarchy,
// propagation across nested and recursive frames, rethrow, deferred
// returns that still run every finally, and delivery of synchronous
// runtime traps (memory faults, divide by zero) as catchable exceptions.
//
// A construct is assembled fluently and executed by its mandatory
// Finally:
//
//	except.Try(func() {
//		except.Throw(myError, "details")
//	}).Catch(myError, func(e *except.ExceptionInstance) {
//		log.Println(e.Message())
//	}).Finally(func() {
//		release()
//	})
//
// Each goroutine entering a try gets its own handler context, created
// lazily and destroyed when its outermost construct completes. The
// engine carries no public handle; package-level functions act on the
// calling goroutine's context, and Configure sets the process-wide
// policy (debug validation, assertion aborting, single-threaded
// operation, shared versus private trap handlers, diagnostics and
// tracing targets).
//
// Return, Call, and Run implement early returns across try frames: a
// Return issued anywhere below a Call or Run boundary runs every
// intervening finally and then delivers its value as the boundary's
// result, without ever crossing the boundary.
package except
