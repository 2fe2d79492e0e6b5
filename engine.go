package except

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/petermattis/goid"
	"github.com/rs/zerolog"
	"github.com/sasha-s/go-deadlock"
)

// engine bundles all process-wide state: the configuration, the context
// store, the shared-handler bookkeeping, and the validator's site
// registry. A single instance brackets all try activity; the public
// surface passes no handle.
type engine struct {
	mu sync.Locker

	debug          bool
	abortOnAssert  bool
	singleThreaded bool
	sharedHandlers bool
	abortFunc      func()

	diag *diagnostics

	trace   zerolog.Logger
	tracing bool

	contexts map[int64]*context
	static   *context // single-threaded mode only

	// activeTryCount is the number of contexts currently holding at
	// least one frame; under the shared handler policy the original
	// dispositions are considered restored only when it reaches zero.
	activeTryCount int

	checkedSites map[uintptr]bool
}

var eng = newEngine()

func newEngine() *engine {
	return &engine{
		mu:           &sync.Mutex{},
		abortFunc:    func() { os.Exit(134) },
		diag:         newDiagnostics(os.Stderr),
		trace:        zerolog.Nop(),
		contexts:     map[int64]*context{},
		checkedSites: map[uintptr]bool{},
	}
}

// Configure replaces the engine configuration with the given options on
// top of the defaults. It corresponds to the build-time flags of the
// original design and must run before any try activity; it fails when
// any goroutine currently holds a frame.
func Configure(opts ...Option) error {
	eng.mu.Lock()
	active := eng.activeContexts()
	eng.mu.Unlock()
	if active {
		return fmt.Errorf("except: Configure while a 'try' is active")
	}

	cfg := config{
		trace: zerolog.Nop(),
		abort: func() { os.Exit(134) },
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	eng.mu.Lock()
	defer eng.mu.Unlock() // receiver bound here; releases the pre-swap lock
	eng.debug = cfg.debug
	eng.abortOnAssert = cfg.abortOnAssert
	eng.singleThreaded = cfg.singleThreaded
	eng.sharedHandlers = cfg.sharedHandlers
	eng.abortFunc = cfg.abort
	eng.diag = newDiagnostics(cfg.diag)
	eng.trace = cfg.trace
	eng.tracing = cfg.tracing
	eng.static = nil
	eng.contexts = map[int64]*context{}
	eng.checkedSites = map[uintptr]bool{}
	eng.activeTryCount = 0
	if cfg.debug {
		eng.mu = &deadlock.Mutex{}
	} else {
		eng.mu = &sync.Mutex{}
	}
	return nil
}

func (eng *engine) activeContexts() bool {
	if eng.static != nil && eng.static.frames.Len() > 0 {
		return true
	}
	for _, ctx := range eng.contexts {
		if ctx.frames.Len() > 0 {
			return true
		}
	}
	return false
}

// DebugEnabled reports whether the engine runs in debug mode. The assert
// package keys its action matrix on this.
func DebugEnabled() bool {
	eng.mu.Lock()
	defer eng.mu.Unlock()
	return eng.debug
}

func (eng *engine) diagf(format string, args ...any) {
	eng.diag.printf(format, args...)
}

func (eng *engine) warnf(format string, args ...any) {
	eng.diag.warnf(format, args...)
}

// printTryTrace implements Exception.PrintTryTrace against the calling
// goroutine's context.
func (eng *engine) printTryTrace(w io.Writer, e *ExceptionInstance) {
	if w == nil {
		w = eng.diag.target()
	}
	ctx := eng.currentContext()

	if eng.singleThreaded {
		fmt.Fprintf(w, "%s occurred:\n", e.class.name)
	} else {
		fmt.Fprintf(w, "%s occurred in thread %d:\n", e.class.name, goid.Get())
	}
	if ctx == nil {
		return
	}
	for depth := 1; depth <= ctx.frames.Len(); depth++ {
		f, ok := ctx.frames.Peek(depth)
		if !ok {
			break
		}
		fmt.Fprintf(w, "        in 'try' at %s:%d\n", f.tryFile, f.tryLine)
	}
}

// FailAssertion processes a failed assertion on behalf of the assert
// package. Inside exception-handling scope it throws FailedAssertion
// carrying the failed expression as data; outside it prints the
// standard message and optionally aborts.
func FailAssertion(expr, file string, line int) {
	switch CurrentScope() {
	case ScopeTry, ScopeCatch, ScopeFinally:
		ThrowAt(FailedAssertion, expr, file, line)
	default:
		eng.assertTerminate(expr, file, line)
	}
}

// assertTerminate is the terminal action for a FailedAssertion that
// reaches the outermost frame, and for assertion failures outside any
// handling scope. It prints the standard message and aborts when the
// engine is configured to.
func (eng *engine) assertTerminate(expr any, file string, line int) {
	text, _ := expr.(string)
	eng.mu.Lock()
	doAbort := eng.abortOnAssert
	abort := eng.abortFunc
	eng.mu.Unlock()

	qualifier := "(no abort)"
	if doAbort {
		qualifier = ""
	}
	eng.diagf("Assertion failed %s: %s, file %q, line %d.\n", qualifier, text, file, line)
	if doAbort {
		abort()
	}
}
