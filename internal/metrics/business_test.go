package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestBusinessMetrics(t *testing.T) {
	ctx := context.Background()

	reader := sdkmetric.NewManualReader()
	meterProvider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = meterProvider.Shutdown(ctx) }()

	business, err := NewBusinessMetrics(meterProvider, "cardvault")
	require.NoError(t, err)

	business.RecordOperation(ctx, "disclosure", "disclosure_open", "success")
	business.RecordOperation(ctx, "disclosure", "disclosure_open", "error")
	business.RecordDuration(ctx, "token", "token_validate", 25*time.Millisecond, "success")

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	names := map[string]bool{}
	for _, m := range rm.ScopeMetrics[0].Metrics {
		names[m.Name] = true
	}

	assert.True(t, names["cardvault_operations_total"])
	assert.True(t, names["cardvault_operation_duration_seconds"])
}
