// Package errormode resolves the effective error-handling mode for
// intercepted simulator calls. The mode decides whether an error raised by a
// mocked endpoint propagates to the caller or is converted into a structured
// error document returned as the call's result.
//
// Resolution is layered, highest priority first:
//
//  1. the innermost active temporary override (scoped, stack-based)
//  2. the global override set via SetGlobalMode
//  3. the OVERWRITE_ERROR_MODE environment variable
//  4. the literal default ModeRaise
package errormode

import (
	"os"
	"strings"
	"sync"
)

// Mode is the resolved error-handling behavior for intercepted calls.
type Mode string

const (
	// ModeRaise propagates the original error unchanged.
	ModeRaise Mode = "raise"
	// ModeErrorDict converts the error into a structured document that is
	// returned as the call's result instead of an error.
	ModeErrorDict Mode = "error_dict"
)

// Environment variables consumed by the resolver.
const (
	// EnvOverrideMode supplies the environment-level default mode.
	EnvOverrideMode = "OVERWRITE_ERROR_MODE"
	// EnvPrintReports toggles diagnostic report printing in raise mode.
	EnvPrintReports = "PRINT_ERROR_REPORTS"
)

// InvalidModeError reports a mode string outside {raise, error_dict} passed
// to a setter. Setters fail fast with this error and leave state unchanged.
type InvalidModeError struct {
	Mode string
}

// Error implements the error interface.
func (e *InvalidModeError) Error() string {
	return "Invalid error mode: " + e.Mode
}

// ParseMode validates a mode string, case-insensitively. It returns the
// canonical Mode on success and an *InvalidModeError otherwise.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case string(ModeRaise):
		return ModeRaise, nil
	case string(ModeErrorDict):
		return ModeErrorDict, nil
	default:
		return "", &InvalidModeError{Mode: s}
	}
}

// Resolver holds the layered error-mode state: the global override and the
// stack of temporary overrides. The environment lookup is injectable so tests
// can run without touching the process environment.
//
// The override stack models a single logical call stack: pushes and pops are
// expected to nest sequentially. The internal mutex keeps the slices
// consistent, but interleaved temporary overrides from concurrent goroutines
// are not part of the supported contract.
type Resolver struct {
	mu     sync.Mutex
	global *Mode
	stack  []Mode

	// getenv defaults to os.Getenv.
	getenv func(string) string
}

// NewResolver creates a Resolver backed by the process environment.
func NewResolver() *Resolver {
	return &Resolver{getenv: os.Getenv}
}

// NewResolverWithEnv creates a Resolver with a custom environment lookup.
func NewResolverWithEnv(getenv func(string) string) *Resolver {
	if getenv == nil {
		getenv = os.Getenv
	}
	return &Resolver{getenv: getenv}
}

// Mode returns the effective error mode. It is a pure read: stack top wins,
// then the global override, then the environment default, then ModeRaise.
// It never fails; unrecognized environment values resolve to ModeRaise.
func (r *Resolver) Mode() Mode {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n := len(r.stack); n > 0 {
		return r.stack[n-1]
	}
	if r.global != nil {
		return *r.global
	}
	return r.envDefault()
}

// envDefault reads the environment-level mode. Callers must hold r.mu or be
// otherwise serialized; the lookup itself has no side effects.
func (r *Resolver) envDefault() Mode {
	if m, err := ParseMode(r.getenv(EnvOverrideMode)); err == nil {
		return m
	}
	return ModeRaise
}

// SetGlobalMode replaces the global override. The mode string is validated
// first; an invalid value returns *InvalidModeError and mutates nothing.
func (r *Resolver) SetGlobalMode(mode string) error {
	m, err := ParseMode(mode)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.global = &m
	return nil
}

// ResetGlobalMode clears the global override. The temporary override stack
// and the environment default are unaffected.
func (r *Resolver) ResetGlobalMode() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.global = nil
}

// TemporaryMode pushes a scoped override and returns its release function.
// The mode is validated before the stack is touched, so an invalid value can
// never corrupt it. Callers must arrange exactly one release per successful
// acquisition, typically:
//
//	release, err := resolver.TemporaryMode("error_dict")
//	if err != nil {
//	    return err
//	}
//	defer release()
//
// release is idempotent; calling it more than once pops only once. Temporary
// overrides nest to arbitrary depth and releasing restores the immediately
// enclosing effective mode.
func (r *Resolver) TemporaryMode(mode string) (release func(), err error) {
	m, err := ParseMode(mode)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.stack = append(r.stack, m)
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			if n := len(r.stack); n > 0 {
				r.stack = r.stack[:n-1]
			}
		})
	}, nil
}

// WithMode runs fn under a temporary override, releasing it on every exit
// path including a panic inside fn.
func (r *Resolver) WithMode(mode string, fn func() error) error {
	release, err := r.TemporaryMode(mode)
	if err != nil {
		return err
	}
	defer release()
	return fn()
}

// PrintReports reports whether diagnostic error reports should be printed
// when the resolved mode is ModeRaise. It reads EnvPrintReports and treats
// "true", "1", "yes" and "on" as true (any case); everything else, including
// an unset variable, is false.
func (r *Resolver) PrintReports() bool {
	switch strings.ToLower(r.getenv(EnvPrintReports)) {
	case "true", "1", "yes", "on":
		return true
	default:
		return false
	}
}

// Default is the process-wide resolver used by the package-level functions
// and, unless overridden, by the call interceptor.
var Default = NewResolver()

// GetMode resolves the effective mode on the default resolver.
func GetMode() Mode { return Default.Mode() }

// SetGlobalMode sets the global override on the default resolver.
func SetGlobalMode(mode string) error { return Default.SetGlobalMode(mode) }

// ResetGlobalMode clears the global override on the default resolver.
func ResetGlobalMode() { Default.ResetGlobalMode() }

// TemporaryMode pushes a scoped override on the default resolver.
func TemporaryMode(mode string) (release func(), err error) {
	return Default.TemporaryMode(mode)
}

// WithMode runs fn under a temporary override on the default resolver.
func WithMode(mode string, fn func() error) error { return Default.WithMode(mode, fn) }

// GetPrintReports reads the report-printing flag via the default resolver.
func GetPrintReports() bool { return Default.PrintReports() }
