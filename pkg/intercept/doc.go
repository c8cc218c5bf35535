// Package intercept provides the call-interception layer shared by every
// mocked endpoint.
//
// # Overview
//
// The intercept package gives mocked third-party endpoints a uniform invocable
// shape and a decorator combinator for layering cross-cutting behavior around
// them. It also ships the one interceptor the rest of the kit depends on:
// WithErrorHandling, which resolves the active error mode per call and either
// propagates failures or converts them into structured error documents.
//
// # Key Components
//
// The package provides a small set of types:
//
//   - TargetFunc: the generic invocation contract mocked endpoints satisfy
//   - Endpoint: a target function plus its introspectable metadata
//   - Decorator: a transformation from one Endpoint to a wrapped Endpoint
//   - Chain: ordered application of decorators
//
// # Basic Usage
//
// Declaring an endpoint and composing the standard chain:
//
//	ep := intercept.NewEndpoint("list_notes", func(args ...any) (any, error) {
//	    return store.Collection("notes"), nil
//	}).WithDoc("Returns every stored note.")
//
//	ep = intercept.Chain(ep,
//	    calllog.LogCall(),
//	    intercept.WithErrorHandling(),
//	    complexity.Log,
//	)
//
//	result, err := ep.Call()
//
// # Execution Order
//
// Chain applies decorators so the first listed is the outermost layer at call
// time, matching the top-down order a decorator stack reads in:
//
//	Call: calllog -> error handling -> complexity -> [target]
//
// Placement matters. The complexity decorator sits inside the error-handling
// interceptor so it observes the target's raw outcome; the call logger sits
// outside so every invocation is recorded regardless of what the inner layers
// do with the result.
//
// # Error Handling
//
// WithErrorHandling consults an errormode.Resolver on every invocation, so a
// mode change between calls takes effect without rebuilding the chain. In
// raise mode the target's error propagates unchanged. In error_dict mode the
// error is normalized into an errordoc.Document that is returned as the call's
// result with a nil error, which is how the simulated services hand failures
// back to clients as payloads.
//
// # Metadata Preservation
//
// Decorators wrap an Endpoint through Endpoint.Wrap, which clones the
// endpoint's name, doc string, and parameter annotations onto the wrapper.
// Tooling built on endpoint introspection works the same whether or not a
// chain is applied.
package intercept
