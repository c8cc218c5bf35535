// Package errordoc converts Go error chains into structured, serializable
// error documents. When the resolved error mode is "error_dict", the call
// interceptor returns one of these documents as the call's result instead of
// propagating the error; when it is "raise" the original error passes through
// this package untouched.
package errordoc

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

// Document is the structured representation of an intercepted error. It is
// what callers of a mocked endpoint receive in error_dict mode.
type Document struct {
	// Message is the message of the outermost error, even when that error
	// wraps a deeper cause.
	Message string `json:"message"`

	// Timestamp is the capture time, ISO-8601 UTC with a Z suffix.
	Timestamp string `json:"timestamp"`

	// Causes lists the wrapped errors inside the outermost one, ordered
	// from the immediate cause inward. Empty chains omit the key.
	Causes []CauseEntry `json:"causes,omitempty"`
}

// CauseEntry describes one hop of an error's cause chain.
type CauseEntry struct {
	Message       string `json:"message"`
	ExceptionType string `json:"exceptionType"`

	// MiniTraceback is a short capture of where the cause was created.
	// It is absent (not empty) when the normalizer is configured without
	// cause tracebacks or when the error carries no capture.
	MiniTraceback string `json:"miniTraceback,omitempty"`
}

// Typed lets an error report a stable exception-type name instead of its Go
// reflect type. Simulator error types implement this so documents carry
// names like "ValidationError" rather than "*statestore.ValidationError".
type Typed interface {
	ExceptionType() string
}

// Traceable lets an error expose a short creation-site traceback for use in
// cause entries.
type Traceable interface {
	MiniTraceback() string
}

// Options configures normalization.
type Options struct {
	// IncludeCauseTracebacks controls whether cause entries carry their
	// mini tracebacks. Defaults to true.
	IncludeCauseTracebacks bool

	// Origin is an attribution hint (module/function path) used only for
	// diagnostics; it never appears in the document itself.
	Origin string
}

// Option mutates normalization options.
type Option func(*Options)

// WithoutCauseTracebacks drops the miniTraceback key from every cause entry.
func WithoutCauseTracebacks() Option {
	return func(o *Options) { o.IncludeCauseTracebacks = false }
}

// WithOrigin attaches an attribution hint for diagnostics.
func WithOrigin(origin string) Option {
	return func(o *Options) { o.Origin = origin }
}

// Normalize builds a Document from an error and its wrapped chain. The
// document's Message is always the outermost error's message; the chain is
// walked iteratively via errors.Unwrap, one CauseEntry per hop. Errors whose
// Unwrap returns multiple branches contribute their first branch only.
// A nil error yields the zero Document.
func Normalize(err error, opts ...Option) Document {
	if err == nil {
		return Document{}
	}

	o := Options{IncludeCauseTracebacks: true}
	for _, opt := range opts {
		opt(&o)
	}

	doc := Document{
		Message:   err.Error(),
		Timestamp: nowISO(),
	}

	for cause := unwrapOne(err); cause != nil; cause = unwrapOne(cause) {
		entry := CauseEntry{
			Message:       cause.Error(),
			ExceptionType: TypeName(cause),
		}
		if o.IncludeCauseTracebacks {
			if t, ok := cause.(Traceable); ok {
				entry.MiniTraceback = t.MiniTraceback()
			}
		}
		doc.Causes = append(doc.Causes, entry)
	}

	return doc
}

// Raise returns err unchanged. It exists to make the raise-mode path explicit
// at call sites: no transformation, no wrapping, the original error object.
func Raise(err error) error {
	return err
}

// TypeName resolves the exception-type name for an error: a Typed
// implementation wins, otherwise the reflect type name with any pointer star
// trimmed.
func TypeName(err error) string {
	if t, ok := err.(Typed); ok {
		return t.ExceptionType()
	}
	name := reflect.TypeOf(err).String()
	return strings.TrimPrefix(name, "*")
}

// FormatReport renders a human-readable diagnostic block for an error. The
// interceptor prints it in raise mode when report printing is enabled; it is
// a side channel and never feeds back into control flow.
func FormatReport(err error, origin string) string {
	var b strings.Builder

	b.WriteString("Error report")
	if origin != "" {
		fmt.Fprintf(&b, " (%s)", origin)
	}
	b.WriteString(":\n")
	fmt.Fprintf(&b, "  Message: %s\n", err.Error())
	fmt.Fprintf(&b, "  Type: %s\n", TypeName(err))
	fmt.Fprintf(&b, "  Timestamp: %s\n", nowISO())

	if cause := unwrapOne(err); cause != nil {
		b.WriteString("  Causes:\n")
		for ; cause != nil; cause = unwrapOne(cause) {
			fmt.Fprintf(&b, "    - %s: %s\n", TypeName(cause), cause.Error())
		}
	}

	return b.String()
}

// unwrapOne steps one hop into an error's chain. Multi-error joins follow
// their first branch.
func unwrapOne(err error) error {
	switch x := err.(type) {
	case interface{ Unwrap() error }:
		return x.Unwrap()
	case interface{ Unwrap() []error }:
		if branches := x.Unwrap(); len(branches) > 0 {
			return branches[0]
		}
	}
	return nil
}

// nowISO returns the current UTC time in ISO-8601 with a Z suffix, matching
// the timestamp format used across the simulator corpus.
func nowISO() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000000Z07:00")
}
