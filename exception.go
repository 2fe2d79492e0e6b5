package except

import (
	"fmt"
	"io"

	"github.com/gofrs/uuid"
)

// ExceptionInstance is a live exception instance. Instances are created by Throw
// (or by the trap adapter) and handed to catch clauses; rethrowing an
// instance preserves its class, data, and origin. ExceptionInstance implements
// the error interface so instances compose with ordinary Go error
// plumbing at the edges of exception-handling code.
type ExceptionInstance struct {
	class *Class
	data  any
	file  string
	line  int
	cause any // original panic value for adapted traps
	id    uuid.UUID
}

func newException(class *Class, data any, file string, line int) *ExceptionInstance {
	return &ExceptionInstance{
		class: class,
		data:  data,
		file:  file,
		line:  line,
		id:    uuid.Must(uuid.NewV4()),
	}
}

// Class returns the exception's class.
func (e *ExceptionInstance) Class() *Class {
	return e.class
}

// Data returns the data value supplied to Throw, or nil.
func (e *ExceptionInstance) Data() any {
	return e.data
}

// Cause returns the original panic value for an exception produced by the
// trap adapter, or nil for a user throw.
func (e *ExceptionInstance) Cause() any {
	return e.cause
}

// File returns the source file of the throw site, or "?" for a trap.
func (e *ExceptionInstance) File() string {
	return e.file
}

// Line returns the source line of the throw site, or 0 for a trap.
func (e *ExceptionInstance) Line() int {
	return e.line
}

// ID returns the unique identifier of this instance, as recorded in the
// engine trace.
func (e *ExceptionInstance) ID() string {
	return e.id.String()
}

// Message returns the standard description of the exception:
//
//	Name: file "f", line 3.
func (e *ExceptionInstance) Message() string {
	return fmt.Sprintf("%s: file %q, line %d.", e.class.name, e.file, e.line)
}

// Error implements the error interface.
func (e *ExceptionInstance) Error() string {
	return e.Message()
}

// PrintTryTrace writes the nested try trace of the calling goroutine to
// w: one line per active frame, innermost first, preceded by a header
// naming the exception class (and the goroutine, unless the engine runs
// single-threaded). A nil w selects the diagnostic channel.
func (e *ExceptionInstance) PrintTryTrace(w io.Writer) {
	eng.printTryTrace(w, e)
}
