package complexity

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/cecil-the-coder/mock-api-kit/pkg/intercept"
)

// DefaultLogPath is where the package-level logger appends its records.
const DefaultLogPath = "simlogs/complexity.log"

// Logger appends one complexity record per intercepted call to a log file.
// Writes are serialized so concurrent calls in the same process never
// interleave partial lines.
type Logger struct {
	mu   sync.Mutex
	path string
}

// NewLogger creates a Logger appending to path.
func NewLogger(path string) *Logger {
	return &Logger{path: path}
}

// SetOutputPath repoints the logger at a new file. Takes effect on the next
// record; existing content is left alone.
func (l *Logger) SetOutputPath(path string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.path = path
}

// OutputPath returns the current log file path.
func (l *Logger) OutputPath() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.path
}

// Clear truncates the log file so a new run starts from empty. A log that was
// never written is not an error.
func (l *Logger) Clear() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Record appends the success-path measurements for one call.
func (l *Logger) Record(name string, recordsFetched, charactersInResponse int) error {
	return l.append(fmt.Sprintf("%s records_fetched: %d, characters_in_response: %d",
		name, recordsFetched, charactersInResponse))
}

// RecordFailure appends the failure-path record for one call: zero
// measurements plus the error's message.
func (l *Logger) RecordFailure(name string, callErr error) error {
	return l.append(fmt.Sprintf("%s records_fetched: 0, characters_in_response: 0, exception: %s",
		name, callErr.Error()))
}

func (l *Logger) append(line string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteString(line + "\n")
	return err
}

// Default is the process-wide complexity logger used by the Log decorator.
var Default = NewLogger(DefaultLogPath)

// SetOutputPath repoints the default logger.
func SetOutputPath(path string) { Default.SetOutputPath(path) }

// Log is the direct, argument-less decorator form: it measures the wrapped
// endpoint's raw outcome against the default logger. Compose it inside the
// error-handling interceptor so the real error, not the error_dict fallback,
// is what gets measured.
func Log(e *intercept.Endpoint) *intercept.Endpoint {
	return LogWith(Default)(e)
}

// LogWith returns the decorator bound to a specific logger. On success it
// records the result's measurements and passes the result through; on failure
// it records zeros plus the error message and re-propagates the original
// error unchanged. Logging failures are observation-only and never alter the
// call's outcome.
func LogWith(logger *Logger) intercept.Decorator {
	return func(e *intercept.Endpoint) *intercept.Endpoint {
		name := e.Name
		return e.Wrap(func(args ...any) (any, error) {
			result, err := e.Call(args...)
			if err != nil {
				_ = logger.RecordFailure(name, err)
				return result, err
			}
			_ = logger.Record(name, Count(result), TextLength(result))
			return result, nil
		})
	}
}
