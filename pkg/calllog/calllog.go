// Package calllog records one entry per intercepted call: the endpoint's
// function name and the runtime id tagging the current simulation session.
// The log is append-only within a run and explicitly truncatable between
// runs, so a test harness can attribute every call it triggered.
package calllog

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/cecil-the-coder/mock-api-kit/pkg/intercept"
	"github.com/google/uuid"
)

// Defaults for the package-level logger.
const (
	DefaultOutputDir = "simlogs"
	DefaultFileName  = "calls.log"
)

// Logger appends call records to a log file. The output directory, file name
// and runtime id are process-wide state mutable only through the exposed
// setters; per-line writes are serialized so concurrent calls never
// interleave.
type Logger struct {
	mu        sync.Mutex
	dir       string
	file      string
	runtimeID string
}

// NewLogger creates a Logger writing under dir with a freshly generated
// runtime id.
func NewLogger(dir, file string) *Logger {
	return &Logger{
		dir:       dir,
		file:      file,
		runtimeID: uuid.NewString(),
	}
}

// SetRuntimeID replaces the tag applied to all subsequent entries. Past
// entries are never rewritten.
func (l *Logger) SetRuntimeID(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.runtimeID = id
}

// RuntimeID returns the tag applied to new entries.
func (l *Logger) RuntimeID() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.runtimeID
}

// SetOutputDir repoints the logger at a new directory for subsequent entries.
func (l *Logger) SetOutputDir(dir string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.dir = dir
}

// SetFileName changes the log file name for subsequent entries.
func (l *Logger) SetFileName(file string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.file = file
}

// Path returns the current log file path.
func (l *Logger) Path() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return filepath.Join(l.dir, l.file)
}

// ClearLogFile removes the existing log so a new run starts from empty.
func (l *Logger) ClearLogFile() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := os.Remove(filepath.Join(l.dir, l.file)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Record appends one entry attributing a call to functionName under the
// current runtime id.
func (l *Logger) Record(functionName string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return err
	}

	f, err := os.OpenFile(filepath.Join(l.dir, l.file), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = fmt.Fprintf(f, "function_name: %s, runtime_id: %s\n", functionName, l.runtimeID)
	return err
}

// Default is the process-wide call logger.
var Default = NewLogger(DefaultOutputDir, DefaultFileName)

// SetRuntimeID replaces the default logger's session tag.
func SetRuntimeID(id string) { Default.SetRuntimeID(id) }

// RuntimeID returns the default logger's session tag.
func RuntimeID() string { return Default.RuntimeID() }

// SetOutputDir repoints the default logger's directory.
func SetOutputDir(dir string) { Default.SetOutputDir(dir) }

// ClearLogFile truncates the default log.
func ClearLogFile() error { return Default.ClearLogFile() }

// Option configures the LogCall decorator.
type Option func(*options)

type options struct {
	logger *Logger
}

// WithLogger binds the decorator to a specific logger instead of the package
// default.
func WithLogger(l *Logger) Option {
	return func(o *options) { o.logger = l }
}

// LogCall returns the decorator that records every invocation of the wrapped
// endpoint before it runs. A record failure is observation-only; the call
// proceeds regardless.
func LogCall(opts ...Option) intercept.Decorator {
	o := options{logger: Default}
	for _, opt := range opts {
		opt(&o)
	}

	return func(e *intercept.Endpoint) *intercept.Endpoint {
		name := e.Name
		return e.Wrap(func(args ...any) (any, error) {
			_ = o.logger.Record(name)
			return e.Call(args...)
		})
	}
}
