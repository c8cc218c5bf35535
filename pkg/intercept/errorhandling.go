package intercept

import (
	"fmt"
	"io"
	"os"

	"github.com/cecil-the-coder/mock-api-kit/pkg/errordoc"
	"github.com/cecil-the-coder/mock-api-kit/pkg/errormode"
)

// ErrorHandlingConfig configures the error-handling interceptor.
type ErrorHandlingConfig struct {
	// IncludeCauseTracebacks controls whether error documents carry
	// mini tracebacks on their cause entries. Defaults to true.
	IncludeCauseTracebacks bool

	// Resolver supplies the effective error mode per call.
	// Defaults to errormode.Default.
	Resolver *errormode.Resolver

	// ReportWriter receives diagnostic reports in raise mode when report
	// printing is enabled. Defaults to os.Stdout.
	ReportWriter io.Writer
}

// ErrorHandlingOption mutates the interceptor configuration.
type ErrorHandlingOption func(*ErrorHandlingConfig)

// IncludeCauseTracebacks toggles mini tracebacks on cause entries.
func IncludeCauseTracebacks(include bool) ErrorHandlingOption {
	return func(c *ErrorHandlingConfig) { c.IncludeCauseTracebacks = include }
}

// WithResolver injects the mode resolver used per call.
func WithResolver(r *errormode.Resolver) ErrorHandlingOption {
	return func(c *ErrorHandlingConfig) { c.Resolver = r }
}

// WithReportWriter redirects diagnostic report output.
func WithReportWriter(w io.Writer) ErrorHandlingOption {
	return func(c *ErrorHandlingConfig) { c.ReportWriter = w }
}

// WithErrorHandling returns the decorator every mocked endpoint is wrapped
// in. On success the target's result passes through unchanged. On failure the
// mode is resolved at call time:
//
//   - raise: the original error propagates untouched. When report printing
//     is enabled a diagnostic block is written first; printing is a side
//     channel and never changes what the caller sees.
//   - error_dict: the error chain is normalized into an errordoc.Document
//     and returned as the call's result with a nil error. No error escapes.
//
// Each invocation depends only on the mode resolved for that call; the
// wrapper keeps no state between calls.
func WithErrorHandling(opts ...ErrorHandlingOption) Decorator {
	cfg := ErrorHandlingConfig{
		IncludeCauseTracebacks: true,
		Resolver:               errormode.Default,
		ReportWriter:           os.Stdout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(e *Endpoint) *Endpoint {
		origin := e.Name
		return e.Wrap(func(args ...any) (any, error) {
			result, err := e.Call(args...)
			if err == nil {
				return result, nil
			}

			switch cfg.Resolver.Mode() {
			case errormode.ModeErrorDict:
				docOpts := []errordoc.Option{errordoc.WithOrigin(origin)}
				if !cfg.IncludeCauseTracebacks {
					docOpts = append(docOpts, errordoc.WithoutCauseTracebacks())
				}
				return errordoc.Normalize(err, docOpts...), nil
			default:
				if cfg.Resolver.PrintReports() {
					fmt.Fprint(cfg.ReportWriter, errordoc.FormatReport(err, origin))
				}
				return nil, errordoc.Raise(err)
			}
		})
	}
}
