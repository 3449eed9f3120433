package otel_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"workforce/infras/otel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func record(t *testing.T, fn func(scope otel.Scope)) tracetest.SpanStub {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	provider := trace.NewTracerProvider(trace.WithSyncer(exporter))

	_, span := provider.Tracer("test").Start(context.Background(), "op")
	scope := otel.NewScope(span)
	fn(scope)
	scope.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)

	return spans[0]
}

func TestScopeAttributes(t *testing.T) {
	span := record(t, func(scope otel.Scope) {
		scope.SetAttribute("http.status_code", 201)
		scope.SetAttributes(map[string]any{
			"lodging.price": 120.5,
			"db.elapsed":    1500 * time.Millisecond,
			"roles":         []string{"admin"},
		})
		scope.AddEvent("created")
	})

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range span.Attributes {
		attrs[kv.Key] = kv.Value
	}

	assert.Equal(t, int64(201), attrs["http.status_code"].AsInt64())
	assert.InDelta(t, 120.5, attrs["lodging.price"].AsFloat64(), 0.001)
	assert.Equal(t, int64(1500), attrs["db.elapsed"].AsInt64())
	assert.Equal(t, []string{"admin"}, attrs["roles"].AsStringSlice())
	require.Len(t, span.Events, 1)
	assert.Equal(t, "created", span.Events[0].Name)
}

func TestScopeErrors(t *testing.T) {
	span := record(t, func(scope otel.Scope) {
		scope.TraceIfError(nil)
	})
	assert.Equal(t, codes.Unset, span.Status.Code)

	span = record(t, func(scope otel.Scope) {
		scope.TraceIfError(errors.New("booking not found"))
	})
	assert.Equal(t, codes.Error, span.Status.Code)
	assert.Equal(t, "booking not found", span.Status.Description)
}
