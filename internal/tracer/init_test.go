package tracer

import (
	"context"
	"testing"

	"cascade-softdelete/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

func TestInitTracer_Disabled(t *testing.T) {
	shutdown := InitTracer(config.TracingConfig{Enabled: false})
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestNewProvider_Sampling(t *testing.T) {
	ctx := context.Background()

	t.Run("always", func(t *testing.T) {
		exporter := tracetest.NewInMemoryExporter()
		tp := newProvider(exporter, 1)

		_, span := tp.Tracer("test").Start(ctx, "SetCascadeSoftDelete")
		span.End()
		require.NoError(t, tp.ForceFlush(ctx))

		// the in-memory exporter drops its spans on shutdown
		spans := exporter.GetSpans()
		require.NoError(t, tp.Shutdown(ctx))
		require.Len(t, spans, 1)
		assert.Equal(t, "SetCascadeSoftDelete", spans[0].Name)
		name, ok := spans[0].Resource.Set().Value(semconv.ServiceNameKey)
		require.True(t, ok)
		assert.Equal(t, serviceName, name.AsString())
	})

	t.Run("never", func(t *testing.T) {
		exporter := tracetest.NewInMemoryExporter()
		tp := newProvider(exporter, 0)

		_, span := tp.Tracer("test").Start(ctx, "SetCascadeSoftDelete")
		span.End()
		require.NoError(t, tp.ForceFlush(ctx))
		assert.Empty(t, exporter.GetSpans())
		require.NoError(t, tp.Shutdown(ctx))
	})
}
