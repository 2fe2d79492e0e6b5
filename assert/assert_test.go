package assert

import (
	"bytes"
	"fmt"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meaning-matters/except"
)

func reset(t *testing.T, opts ...except.Option) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	all := append([]except.Option{except.WithDiagnostics(&buf)}, opts...)
	require.NoError(t, except.Configure(all...))
	t.Cleanup(func() { _ = except.Configure() })
	return &buf
}

func curLine() int {
	_, _, line, _ := runtime.Caller(1)
	return line
}

func TestAssertNoOpWithoutDebug(t *testing.T) {
	buf := reset(t)

	Assert(false, "never checked")
	require.Empty(t, buf.String())
}

func TestAssertThrowsInsideScope(t *testing.T) {
	reset(t, except.WithDebug(true))

	var e *except.ExceptionInstance
	except.Try(func() {
		Assert(1 < 0, "1 < 0")
	}).Catch(except.FailedAssertion, func(caught *except.ExceptionInstance) {
		e = caught
	}).Finally(nil)

	require.NotNil(t, e)
	require.Equal(t, "1 < 0", e.Data())
}

func TestAssertPrintsOutsideScope(t *testing.T) {
	buf := reset(t, except.WithDebug(true))

	line := curLine() + 1
	Assert(false, "size > 0")

	want := fmt.Sprintf("Assertion failed (no abort): size > 0, file %q, line %d.\n",
		"assert_test.go", line)
	require.Equal(t, want, buf.String())
}

func TestAssertAbortsWhenConfigured(t *testing.T) {
	aborted := false
	buf := reset(t,
		except.WithDebug(true),
		except.WithAbortOnAssert(true),
		except.WithAbortHandler(func() { aborted = true }))

	Assert(false, "invariant")

	require.True(t, aborted)
	require.Contains(t, buf.String(), "Assertion failed : invariant")
}

func TestAssertionLostAtOutermostInvokesTerminator(t *testing.T) {
	buf := reset(t, except.WithDebug(true))

	var line int
	tryLine := curLine() + 1
	except.Try(func() {
		line = curLine() + 1
		Assert(false, "reachable")
	}).Finally(nil)

	// Debug mode also runs the catch-list validator, which warns about
	// the missing catch clause before the try body executes.
	want := fmt.Sprintf("Warning: No catch clause(s): file %q, line %d.\n",
		"assert_test.go", tryLine) +
		fmt.Sprintf("Assertion failed (no abort): reachable, file %q, line %d.\n",
			"assert_test.go", line)
	require.Equal(t, want, buf.String())
}

func TestValidateReportsFailure(t *testing.T) {
	reset(t)

	require.False(t, Validate(true, "ok"))
	require.True(t, Validate(false, "bad"))
}

func TestValidateThrowsInDebugScope(t *testing.T) {
	reset(t, except.WithDebug(true))

	fetch := func() (result int) {
		except.Try(func() {
			if Validate(false, "input != nil") {
				result = -1
				return
			}
			result = 1
		}).Catch(except.FailedAssertion, func(e *except.ExceptionInstance) {
			result = 99
		}).Finally(nil)
		return result
	}

	require.Equal(t, 99, fetch())
}

func TestCheckThrowsClass(t *testing.T) {
	reset(t)
	ioError := except.NewClass("IOError", except.Exception)

	var class *except.Class
	except.Try(func() {
		Check(false, "fd >= 0", ioError)
	}).Catch(ioError, func(e *except.ExceptionInstance) {
		class = e.Class()
	}).Finally(nil)

	require.Equal(t, ioError, class)
}

func TestCheckPrefersAssertionInDebugScope(t *testing.T) {
	reset(t, except.WithDebug(true))
	ioError := except.NewClass("IOError", except.Exception)

	var class *except.Class
	except.Try(func() {
		Check(false, "fd >= 0", ioError)
	}).Catch(except.Throwable, func(e *except.ExceptionInstance) {
		class = e.Class()
	}).Finally(nil)

	require.Equal(t, except.FailedAssertion, class)
}

func TestCheckOutsideScopePrintsAndLoses(t *testing.T) {
	buf := reset(t, except.WithDebug(true))
	ioError := except.NewClass("IOError", except.Exception)

	Check(false, "fd >= 0", ioError)

	require.Contains(t, buf.String(), "Assertion failed (no abort): fd >= 0")
	require.Contains(t, buf.String(), "IOError lost:")
}

func TestPassingChecksAreSilent(t *testing.T) {
	buf := reset(t, except.WithDebug(true))
	ioError := except.NewClass("IOError", except.Exception)

	Assert(true, "fine")
	require.False(t, Validate(true, "fine"))
	Check(true, "fine", ioError)

	require.Empty(t, buf.String())
}
