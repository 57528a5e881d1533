package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	Install(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return recorder
}

func TestStartSpan(t *testing.T) {
	recorder := newRecorder(t)

	ctx, parent := StartSpan(context.Background(), "test", "parent")
	_, child := StartSpan(ctx, "test", "child")
	child.End()
	parent.End()

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "child", spans[0].Name())
	assert.Equal(t, "parent", spans[1].Name())
	assert.Equal(t, spans[1].SpanContext().TraceID(), spans[0].SpanContext().TraceID(), "子Span应属于同一条Trace")
	assert.Equal(t, spans[1].SpanContext().SpanID(), spans[0].Parent().SpanID())
}

func TestEndSpan(t *testing.T) {
	recorder := newRecorder(t)

	_, ok := StartSpan(context.Background(), "test", "ok")
	EndSpan(ok, nil)
	_, failed := StartSpan(context.Background(), "test", "failed")
	EndSpan(failed, errors.New("Book not found."))

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, codes.Ok, spans[0].Status().Code)
	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Equal(t, "Book not found.", spans[1].Status().Description)
	require.Len(t, spans[1].Events(), 1, "应记录错误事件")
}

func TestExtractTraceID(t *testing.T) {
	newRecorder(t)

	assert.Empty(t, ExtractTraceID(context.Background()))

	ctx, span := StartSpan(context.Background(), "test", "span")
	defer span.End()
	traceID := ExtractTraceID(ctx)
	assert.Len(t, traceID, 32)
	assert.Equal(t, span.SpanContext().TraceID().String(), traceID)
}
