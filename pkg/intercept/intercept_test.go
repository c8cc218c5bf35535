package intercept_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cecil-the-coder/mock-api-kit/internal/testutil"
	"github.com/cecil-the-coder/mock-api-kit/pkg/errordoc"
	"github.com/cecil-the-coder/mock-api-kit/pkg/errormode"
	"github.com/cecil-the-coder/mock-api-kit/pkg/intercept"
)

func newResolver(mode string) *errormode.Resolver {
	r := errormode.NewResolverWithEnv(func(string) string { return "" })
	if mode != "" {
		if err := r.SetGlobalMode(mode); err != nil {
			panic(err)
		}
	}
	return r
}

func TestEndpoint_Metadata(t *testing.T) {
	ep := intercept.NewEndpoint("list_blobs", func(args ...any) (any, error) { return nil, nil }).
		WithDoc("Lists blobs in a container.").
		WithParams(
			intercept.Param{Name: "container_name", Type: "string"},
			intercept.Param{Name: "prefix", Type: "string"},
		).
		WithReturns("[]map[string]any")

	wrapped := intercept.Chain(ep,
		intercept.WithErrorHandling(intercept.WithResolver(newResolver(""))),
	)

	assert.Equal(t, ep.Name, wrapped.Name)
	assert.Equal(t, ep.Doc, wrapped.Doc)
	assert.Equal(t, ep.Params, wrapped.Params)
	assert.Equal(t, ep.Returns, wrapped.Returns)
}

func TestEndpoint_ArgumentForwarding(t *testing.T) {
	script := testutil.NewScriptedEndpoint("create_note").WithResult("ok")
	wrapped := intercept.WithErrorHandling(intercept.WithResolver(newResolver("")))(script.Endpoint())

	result, err := wrapped.Call("grocery list", map[string]any{"pinned": true})
	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, []any{"grocery list", map[string]any{"pinned": true}}, script.LastArgs())
}

func TestWithErrorHandling_Success(t *testing.T) {
	script := testutil.NewScriptedEndpoint("get_note").WithResult("success")
	wrapped := intercept.WithErrorHandling(intercept.WithResolver(newResolver("error_dict")))(script.Endpoint())

	result, err := wrapped.Call()
	require.NoError(t, err)
	assert.Equal(t, "success", result)
	assert.Equal(t, 1, script.Calls())
}

func TestWithErrorHandling_RaiseMode(t *testing.T) {
	testErr := errors.New("Test error")
	script := testutil.NewScriptedEndpoint("get_note").WithError(testErr)
	wrapped := intercept.WithErrorHandling(intercept.WithResolver(newResolver("raise")))(script.Endpoint())

	result, err := wrapped.Call()
	assert.Nil(t, result)
	// The original error object, not a copy or a wrap.
	assert.Same(t, testErr, err)
	assert.EqualError(t, err, "Test error")
}

func TestWithErrorHandling_ErrorDictMode(t *testing.T) {
	script := testutil.NewScriptedEndpoint("get_note").WithError(errors.New("Test error"))
	wrapped := intercept.WithErrorHandling(intercept.WithResolver(newResolver("error_dict")))(script.Endpoint())

	result, err := wrapped.Call()
	require.NoError(t, err, "no error may escape in error_dict mode")

	doc, ok := result.(errordoc.Document)
	require.True(t, ok, "expected an errordoc.Document result, got %T", result)
	assert.Equal(t, "Test error", doc.Message)
	assert.NotEmpty(t, doc.Timestamp)
}

func TestWithErrorHandling_OuterMessageWins(t *testing.T) {
	chained := errordoc.Wrap("RuntimeError", "Outer error", errordoc.New("ValueError", "Inner error"))
	script := testutil.NewScriptedEndpoint("sync_notes").WithError(chained)
	wrapped := intercept.WithErrorHandling(intercept.WithResolver(newResolver("error_dict")))(script.Endpoint())

	result, err := wrapped.Call()
	require.NoError(t, err)

	doc := result.(errordoc.Document)
	assert.Equal(t, "Outer error", doc.Message)
	require.Len(t, doc.Causes, 1)
	assert.Equal(t, "Inner error", doc.Causes[0].Message)
}

func TestWithErrorHandling_WithoutCauseTracebacks(t *testing.T) {
	chained := errordoc.Wrap("RuntimeError", "outer", errordoc.New("ValueError", "inner"))
	script := testutil.NewScriptedEndpoint("sync_notes").WithError(chained)
	wrapped := intercept.WithErrorHandling(
		intercept.WithResolver(newResolver("error_dict")),
		intercept.IncludeCauseTracebacks(false),
	)(script.Endpoint())

	result, err := wrapped.Call()
	require.NoError(t, err)

	doc := result.(errordoc.Document)
	for _, cause := range doc.Causes {
		assert.Empty(t, cause.MiniTraceback)
	}
}

func TestWithErrorHandling_ReportPrinting(t *testing.T) {
	t.Run("GatedOffByDefault", func(t *testing.T) {
		var buf bytes.Buffer
		script := testutil.NewScriptedEndpoint("get_note").WithError(errors.New("boom"))
		wrapped := intercept.WithErrorHandling(
			intercept.WithResolver(newResolver("raise")),
			intercept.WithReportWriter(&buf),
		)(script.Endpoint())

		_, err := wrapped.Call()
		require.Error(t, err)
		assert.Empty(t, buf.String())
	})

	t.Run("PrintsWithoutChangingOutcome", func(t *testing.T) {
		resolver := errormode.NewResolverWithEnv(func(key string) string {
			if key == errormode.EnvPrintReports {
				return "true"
			}
			return ""
		})
		require.NoError(t, resolver.SetGlobalMode("raise"))

		var buf bytes.Buffer
		testErr := errors.New("boom")
		script := testutil.NewScriptedEndpoint("get_note").WithError(testErr)
		wrapped := intercept.WithErrorHandling(
			intercept.WithResolver(resolver),
			intercept.WithReportWriter(&buf),
		)(script.Endpoint())

		_, err := wrapped.Call()
		assert.Same(t, testErr, err)
		assert.Contains(t, buf.String(), "boom")
		assert.Contains(t, buf.String(), "get_note")
	})
}

func TestWithErrorHandling_ModeResolvedPerCall(t *testing.T) {
	resolver := newResolver("raise")
	script := testutil.NewScriptedEndpoint("get_note").WithError(errors.New("flaky"))
	wrapped := intercept.WithErrorHandling(intercept.WithResolver(resolver))(script.Endpoint())

	_, err := wrapped.Call()
	require.Error(t, err)

	require.NoError(t, resolver.SetGlobalMode("error_dict"))
	result, err := wrapped.Call()
	require.NoError(t, err)
	assert.IsType(t, errordoc.Document{}, result)

	resolver.ResetGlobalMode()
	_, err = wrapped.Call()
	require.Error(t, err, "earlier error_dict call must not leak into this one")
}

func TestWithErrorHandling_TemporaryOverride(t *testing.T) {
	resolver := newResolver("raise")
	script := testutil.NewScriptedEndpoint("get_note").WithError(errors.New("scoped"))
	wrapped := intercept.WithErrorHandling(intercept.WithResolver(resolver))(script.Endpoint())

	err := resolver.WithMode("error_dict", func() error {
		result, callErr := wrapped.Call()
		if callErr != nil {
			return fmt.Errorf("expected document inside override, got error: %w", callErr)
		}
		if _, ok := result.(errordoc.Document); !ok {
			return fmt.Errorf("expected document, got %T", result)
		}
		return nil
	})
	require.NoError(t, err)

	_, err = wrapped.Call()
	require.Error(t, err, "mode must revert after the override scope exits")
}

func TestChain_OrderIsOutermostFirst(t *testing.T) {
	var order []string
	tag := func(label string) intercept.Decorator {
		return func(e *intercept.Endpoint) *intercept.Endpoint {
			return e.Wrap(func(args ...any) (any, error) {
				order = append(order, label)
				return e.Call(args...)
			})
		}
	}

	ep := intercept.NewEndpoint("noop", func(args ...any) (any, error) { return nil, nil })
	wrapped := intercept.Chain(ep, tag("outer"), tag("middle"), tag("inner"))

	_, err := wrapped.Call()
	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "middle", "inner"}, order)
}
