package except

import (
	"io"

	"github.com/rs/zerolog"
)

type config struct {
	debug          bool
	abortOnAssert  bool
	singleThreaded bool
	sharedHandlers bool
	diag           io.Writer
	trace          zerolog.Logger
	tracing        bool
	abort          func()
}

// Option configures the engine. Options correspond to the build-time
// flags of the original design and are applied with Configure.
type Option func(*config)

// WithDebug enables debug mode: the catch-list validator runs at frame
// entry, assertions expand to their throwing form, and the engine lock
// is replaced by a deadlock-detecting one.
func WithDebug(enabled bool) Option {
	return func(cfg *config) {
		cfg.debug = enabled
	}
}

// WithAbortOnAssert selects between aborting the process and a
// continuing print-only behavior when an assertion failure reaches the
// terminal action.
func WithAbortOnAssert(enabled bool) Option {
	return func(cfg *config) {
		cfg.abortOnAssert = enabled
	}
}

// WithSingleThreaded selects the single-threaded build: one static
// context, no store lookups, and try traces without a goroutine id. The
// caller guarantees that only one goroutine uses the engine.
func WithSingleThreaded(enabled bool) Option {
	return func(cfg *config) {
		cfg.singleThreaded = enabled
	}
}

// WithSharedHandlers selects the shared signal-handler policy: the
// original dispositions count as restored only when the last goroutine
// leaves its last try. The default is the private policy, restoring per
// goroutine.
func WithSharedHandlers(enabled bool) Option {
	return func(cfg *config) {
		cfg.sharedHandlers = enabled
	}
}

// WithDiagnostics redirects the diagnostic channel: lost-exception
// notices, catch-list warnings, and the default try-trace target. The
// default is standard error.
func WithDiagnostics(w io.Writer) Option {
	return func(cfg *config) {
		cfg.diag = w
	}
}

// WithTraceLogger enables the structured engine trace on the given
// logger: one event per engine operation, carrying depth, goroutine,
// class, and exception id.
func WithTraceLogger(logger zerolog.Logger) Option {
	return func(cfg *config) {
		cfg.trace = logger
		cfg.tracing = true
	}
}

// WithAbortHandler replaces the abort action taken when an assertion
// failure terminates the process. Intended for tests and embedders that
// must not exit.
func WithAbortHandler(fn func()) Option {
	return func(cfg *config) {
		if fn != nil {
			cfg.abort = fn
		}
	}
}
