package errordoc

import (
	"fmt"
	"runtime"
	"strings"
)

// simErrorStackDepth bounds the creation-site capture. Three frames is enough
// to identify the raising endpoint without dragging the whole harness stack
// into every document.
const simErrorStackDepth = 3

// SimError is the error type simulator code raises when it wants documents to
// carry a named exception type and a mini traceback. It wraps an optional
// cause, so chains built with Wrap flatten naturally during normalization.
type SimError struct {
	kind  string
	msg   string
	cause error
	stack []uintptr
}

// New creates a SimError with the given exception-type name and formatted
// message, capturing a short stack at the call site.
func New(kind, format string, args ...any) *SimError {
	return &SimError{
		kind:  kind,
		msg:   fmt.Sprintf(format, args...),
		stack: captureStack(),
	}
}

// Wrap creates a SimError that records cause as the next hop of the chain.
// It is the Go rendition of "raise X from Y".
func Wrap(kind, msg string, cause error) *SimError {
	return &SimError{
		kind:  kind,
		msg:   msg,
		cause: cause,
		stack: captureStack(),
	}
}

// Error implements the error interface.
func (e *SimError) Error() string { return e.msg }

// Unwrap exposes the cause for chain walking and errors.Is/As.
func (e *SimError) Unwrap() error { return e.cause }

// ExceptionType implements Typed.
func (e *SimError) ExceptionType() string { return e.kind }

// MiniTraceback implements Traceable: one "file:line in function" entry per
// captured frame, innermost first.
func (e *SimError) MiniTraceback() string {
	if len(e.stack) == 0 {
		return ""
	}

	var b strings.Builder
	frames := runtime.CallersFrames(e.stack)
	for {
		frame, more := frames.Next()
		if frame.Function != "" {
			fmt.Fprintf(&b, "%s:%d in %s\n", frame.File, frame.Line, frame.Function)
		}
		if !more {
			break
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func captureStack() []uintptr {
	pc := make([]uintptr, simErrorStackDepth)
	// Skip runtime.Callers, captureStack and the constructor.
	n := runtime.Callers(3, pc)
	return pc[:n]
}
