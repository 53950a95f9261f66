// Package metrics hands out OpenTelemetry instruments from the global meter
// provider. Without an installed provider every instrument is a no-op.
package metrics

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "subscene"

// Meter returns the meter for one package scope, e.g. "kernel".
func Meter(scope string) metric.Meter {
	if scope == "" {
		return otel.Meter(instrumentationName)
	}
	return otel.Meter(instrumentationName + "/" + scope)
}

// Counter creates an Int64Counter on m. Creation errors degrade to a no-op
// counter so callers on the frame path never need to branch on them.
func Counter(m metric.Meter, name, desc string) metric.Int64Counter {
	c, err := m.Int64Counter(name, metric.WithDescription(desc))
	if err != nil {
		return noop.Int64Counter{}
	}
	return c
}
