package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("SOFT_DELETE_NOT_FOUND_IS_NOT_AN_ERROR", "")
		t.Setenv("GO_ENV", "development")

		cfg := Load()
		assert.False(t, cfg.SoftDelete.NotFoundIsNotAnError)
		assert.Equal(t, "SOFT_DELETE_EVENTS", cfg.Events.Topic)
		assert.False(t, cfg.IsProduction())
		assert.False(t, cfg.Tracing.Enabled)
		assert.Equal(t, float64(1), cfg.Tracing.SampleRatio)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("SOFT_DELETE_NOT_FOUND_IS_NOT_AN_ERROR", "true")
		t.Setenv("APP_PORT", "8081")
		t.Setenv("GO_ENV", "production")
		t.Setenv("NATS_URL", "nats://localhost:4222")

		cfg := Load()
		assert.True(t, cfg.SoftDelete.NotFoundIsNotAnError)
		assert.Equal(t, "8081", cfg.App.Port)
		assert.True(t, cfg.IsProduction())
		assert.Equal(t, "nats://localhost:4222", cfg.Events.NatsURL)
	})

	t.Run("tracing", func(t *testing.T) {
		t.Setenv("OTEL_ENABLED", "true")
		t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "jaeger:4318")
		t.Setenv("OTEL_SAMPLE_RATIO", "0.25")

		cfg := Load()
		assert.True(t, cfg.Tracing.Enabled)
		assert.Equal(t, "jaeger:4318", cfg.Tracing.Endpoint)
		assert.Equal(t, 0.25, cfg.Tracing.SampleRatio)
	})

	t.Run("unparsable bool falls back", func(t *testing.T) {
		t.Setenv("SOFT_DELETE_NOT_FOUND_IS_NOT_AN_ERROR", "maybe")
		assert.False(t, Load().SoftDelete.NotFoundIsNotAnError)
	})
}
