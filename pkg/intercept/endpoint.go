package intercept

// TargetFunc is the uniform invocation contract every mocked endpoint
// satisfies: arbitrary positional arguments in, any serializable-ish value or
// an error out. The framework imposes nothing on targets beyond this generic
// forwarding shape.
type TargetFunc func(args ...any) (any, error)

// Param describes one declared parameter of an endpoint, mirroring the
// annotations a schema generator reads.
type Param struct {
	Name string
	Type string
}

// Endpoint couples a target function with its introspectable metadata. The
// metadata is what documentation and schema tooling consume; decorators must
// carry it through unchanged.
type Endpoint struct {
	// Name is the function name entries in the call log are attributed to.
	Name string

	// Doc is the endpoint's documentation string.
	Doc string

	// Params declares the endpoint's parameters.
	Params []Param

	// Returns annotates the endpoint's return type.
	Returns string

	fn TargetFunc
}

// NewEndpoint creates an Endpoint for fn with the given name. Metadata beyond
// the name is filled in by the caller.
func NewEndpoint(name string, fn TargetFunc) *Endpoint {
	return &Endpoint{Name: name, fn: fn}
}

// WithDoc sets the documentation string and returns the endpoint for chaining.
func (e *Endpoint) WithDoc(doc string) *Endpoint {
	e.Doc = doc
	return e
}

// WithParams declares the endpoint's parameters and returns it for chaining.
func (e *Endpoint) WithParams(params ...Param) *Endpoint {
	e.Params = params
	return e
}

// WithReturns annotates the return type and returns the endpoint for chaining.
func (e *Endpoint) WithReturns(returns string) *Endpoint {
	e.Returns = returns
	return e
}

// Call invokes the endpoint, forwarding all arguments unchanged.
func (e *Endpoint) Call(args ...any) (any, error) {
	return e.fn(args...)
}

// Wrap returns a new Endpoint whose target is fn but whose metadata is copied
// from e. Every decorator is built on this so name, doc and annotations
// survive arbitrary composition.
func (e *Endpoint) Wrap(fn TargetFunc) *Endpoint {
	clone := *e
	clone.fn = fn
	return &clone
}

// Decorator transforms an Endpoint into a wrapped Endpoint.
type Decorator func(*Endpoint) *Endpoint

// Chain applies decorators so that the first listed becomes the outermost
// layer at call time, matching the top-down order decorator stacks read in.
func Chain(e *Endpoint, decorators ...Decorator) *Endpoint {
	for i := len(decorators) - 1; i >= 0; i-- {
		e = decorators[i](e)
	}
	return e
}
