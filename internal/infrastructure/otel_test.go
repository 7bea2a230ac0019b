package infrastructure

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeOTel_Disabled(t *testing.T) {
	providers, err := InitializeOTel(&OTelConfig{
		ServiceName:    ServiceName,
		ServiceVersion: ServiceVersion,
		TraceExporter:  "none",
		MetricExporter: "none",
		EnableTracing:  true,
		EnableMetrics:  true,
	}, slog.Default())
	require.NoError(t, err)

	assert.Nil(t, providers.TracerProvider)
	assert.Nil(t, providers.MeterProvider)
	assert.NoError(t, providers.Shutdown(context.Background()))
}

func TestInitializeOTel_Prometheus(t *testing.T) {
	providers, err := InitializeOTel(&OTelConfig{
		ServiceName:    ServiceName,
		ServiceVersion: ServiceVersion,
		Environment:    "test",
		TraceExporter:  "none",
		MetricExporter: "prometheus",
		EnableMetrics:  true,
	}, slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { _ = providers.Shutdown(context.Background()) })

	require.NotNil(t, providers.Meter)
	assert.NotNil(t, providers.PrometheusHTTP)

	metrics, err := CreateBusinessMetrics(providers.Meter)
	require.NoError(t, err)
	require.NotNil(t, metrics.RunExecutionsTotal)

	// instruments accept recordings without a collecting scrape
	metrics.RunExecutionsTotal.Add(context.Background(), 1)
	metrics.RowsSuppressedTotal.Add(context.Background(), 3)
}

func TestInitializeOTel_UnsupportedExporter(t *testing.T) {
	_, err := InitializeOTel(&OTelConfig{
		TraceExporter: "otlp",
		EnableTracing: true,
	}, slog.Default())
	require.Error(t, err)
}

func TestDefaultOTelConfig(t *testing.T) {
	cfg := DefaultOTelConfig()
	assert.Equal(t, ServiceName, cfg.ServiceName)
	assert.True(t, cfg.EnableMetrics)
	assert.Equal(t, "prometheus", cfg.MetricExporter)
}
