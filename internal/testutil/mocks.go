// Package testutil provides shared testing utilities, mocks, and fixtures
// for use across the mock-api-kit test suite.
package testutil

import (
	"sync"

	"github.com/cecil-the-coder/mock-api-kit/pkg/intercept"
)

// ScriptedEndpoint is a mock endpoint with configurable behavior. It lets
// interception tests script the raw outcome of a call and assert how often
// and with which arguments the target actually ran.
type ScriptedEndpoint struct {
	mu sync.Mutex

	name string
	doc  string

	// Behavior control
	result any
	err    error

	// Call tracking
	calls    int
	lastArgs []any
}

// NewScriptedEndpoint creates a scripted endpoint with the given name.
func NewScriptedEndpoint(name string) *ScriptedEndpoint {
	return &ScriptedEndpoint{name: name}
}

// WithDoc sets the documentation string the endpoint advertises.
func (s *ScriptedEndpoint) WithDoc(doc string) *ScriptedEndpoint {
	s.doc = doc
	return s
}

// WithResult scripts the value returned on success.
func (s *ScriptedEndpoint) WithResult(result any) *ScriptedEndpoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = result
	return s
}

// WithError scripts the error returned by the target.
func (s *ScriptedEndpoint) WithError(err error) *ScriptedEndpoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	return s
}

// Endpoint builds the intercept.Endpoint backed by this script.
func (s *ScriptedEndpoint) Endpoint() *intercept.Endpoint {
	return intercept.NewEndpoint(s.name, func(args ...any) (any, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.calls++
		s.lastArgs = args
		return s.result, s.err
	}).WithDoc(s.doc)
}

// Calls returns how many times the target ran.
func (s *ScriptedEndpoint) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// LastArgs returns the arguments of the most recent invocation.
func (s *ScriptedEndpoint) LastArgs() []any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastArgs
}
