package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lookalike/internal/adapters/telemetry"
	"go.trai.ch/zerr"
)

func TestNoOpTracer(t *testing.T) {
	t.Parallel()

	tracer := telemetry.NewNoOpTracer()
	ctx := context.Background()

	tracer.EmitPlan(ctx, []string{"enumerate", "fingerprint"})

	newCtx, span := tracer.Start(ctx, "test-span")
	assert.NotNil(t, newCtx)
	require.NotNil(t, span)

	span.SetAttribute("key", "value")
	span.RecordError(zerr.New("ignored"))

	n, err := span.Write([]byte("test log data"))
	require.NoError(t, err)
	assert.Equal(t, 13, n)

	span.End()
}
