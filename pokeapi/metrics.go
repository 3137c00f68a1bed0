package pokeapi

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "github.com/lixenwraith/pokedex/pokeapi"

type metrics struct {
	requests  metric.Int64Counter
	cacheHits metric.Int64Counter
	latency   metric.Float64Histogram
}

// newMetrics binds instruments on mp, or the global provider when nil
// A failed registration falls back to no-ops
func newMetrics(mp metric.MeterProvider) *metrics {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	m := mp.Meter(instrumentationName)
	fallback := noop.NewMeterProvider().Meter(instrumentationName)

	requests, err := m.Int64Counter(
		"pokeapi.requests",
		metric.WithDescription("HTTP requests sent to PokéAPI"),
	)
	if err != nil {
		requests, _ = fallback.Int64Counter("pokeapi.requests")
	}

	cacheHits, err := m.Int64Counter(
		"pokeapi.cache.hits",
		metric.WithDescription("Responses served from the local cache"),
	)
	if err != nil {
		cacheHits, _ = fallback.Int64Counter("pokeapi.cache.hits")
	}

	latency, err := m.Float64Histogram(
		"pokeapi.request.duration",
		metric.WithDescription("PokéAPI request latency"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		latency, _ = fallback.Float64Histogram("pokeapi.request.duration")
	}

	return &metrics{requests: requests, cacheHits: cacheHits, latency: latency}
}

func (m *metrics) request(ctx context.Context, kind string, status int, took time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.Int("status", status),
	)
	m.requests.Add(ctx, 1, attrs)
	m.latency.Record(ctx, float64(took)/float64(time.Millisecond), attrs)
}

func (m *metrics) cacheHit(ctx context.Context, kind string) {
	m.cacheHits.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}
