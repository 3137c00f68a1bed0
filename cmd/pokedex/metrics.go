package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// setupMetrics builds the meter provider handed to the API client
// With no path the provider is a no-op; otherwise readings are exported to the file every interval
func setupMetrics(path string, interval time.Duration) (metric.MeterProvider, func(context.Context) error, error) {
	if path == "" {
		return noop.NewMeterProvider(), func(context.Context) error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create metrics dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open metrics file: %w", err)
	}

	exporter, err := stdoutmetric.New(
		stdoutmetric.WithWriter(file),
		stdoutmetric.WithPrettyPrint(),
	)
	if err != nil {
		file.Close()
		return nil, nil, fmt.Errorf("create metrics exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval))),
	)

	// Shutdown flushes a final reading before the file closes
	shutdown := func(ctx context.Context) error {
		return errors.Join(mp.Shutdown(ctx), file.Close())
	}
	return mp, shutdown, nil
}
