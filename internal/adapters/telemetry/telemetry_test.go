package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/lookalike/internal/adapters/telemetry"
)

func TestOTelTracer_WithRenderer(t *testing.T) {
	_, tp := setupRecorder()
	defer func() { _ = tp.Shutdown(context.Background()) }()

	mock := &mockRenderer{}
	tracer := telemetry.NewOTelTracer("test-tracer").WithRenderer(mock)
	defer func() { _ = tracer.Shutdown(context.Background()) }()

	ctx := context.Background()

	// The plan announcement is synchronous.
	tracer.EmitPlan(ctx, []string{"enumerate", "fingerprint"})

	mock.mu.Lock()
	planCalls := mock.planCalls
	mock.mu.Unlock()
	assert.Equal(t, 1, planCalls)

	// Stage logs travel through the batcher and the async channel.
	_, span := tracer.Start(ctx, "fingerprint")
	_, err := span.Write([]byte("log data"))
	require.NoError(t, err)
	span.End()

	time.Sleep(100 * time.Millisecond)

	mock.mu.Lock()
	logCalls := mock.logCalls
	mock.mu.Unlock()
	assert.Positive(t, logCalls)
}

func TestBridgePipeline(t *testing.T) {
	mock := &mockRenderer{}
	bridge := telemetry.NewBridge(mock)
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(bridge))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	tracer := tp.Tracer("test-bridge")

	// Span processors run synchronously on start and end.
	_, span := tracer.Start(context.Background(), "enumerate")
	span.End()

	mock.mu.Lock()
	defer mock.mu.Unlock()
	assert.Equal(t, 1, mock.startCalls)
	assert.Equal(t, 1, mock.completeCalls)
}
