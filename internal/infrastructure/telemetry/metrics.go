// Package telemetry provides OpenTelemetry metrics for the tracking engine.
package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when a nil meter is passed to a constructor
var ErrMeterNil = errors.New("telemetry: meter must not be nil")

// Carrier call outcome labels
const (
	OutcomeSuccess  = "success"
	OutcomeNoEvents = "no_events"
	OutcomeError    = "error"
)

// TrackingMetrics tracks carrier call volume, single-flight collisions and
// notification throttling. A nil *TrackingMetrics is a valid no-op receiver
// so metrics stay optional in tests.
type TrackingMetrics struct {
	carrierRequests    metric.Int64Counter
	singleFlightSkips  metric.Int64Counter
	throttleSuppressed metric.Int64Counter
}

// NewTrackingMetrics creates tracking metrics on the given meter
func NewTrackingMetrics(meter metric.Meter) (*TrackingMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	m := &TrackingMetrics{}
	var err error

	m.carrierRequests, err = meter.Int64Counter(
		"sooqly_tracking_carrier_requests_total",
		metric.WithDescription("Total carrier tracking lookups by outcome"),
		metric.WithUnit("{requests}"),
	)
	if err != nil {
		return nil, err
	}

	m.singleFlightSkips, err = meter.Int64Counter(
		"sooqly_tracking_singleflight_skips_total",
		metric.WithDescription("Tracking fetches dropped because a call was already in flight"),
		metric.WithUnit("{requests}"),
	)
	if err != nil {
		return nil, err
	}

	m.throttleSuppressed, err = meter.Int64Counter(
		"sooqly_tracking_notifications_suppressed_total",
		metric.WithDescription("User notifications suppressed as exact repeats"),
		metric.WithUnit("{notifications}"),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

// NewTrackingMetricsFromGlobal creates tracking metrics on the global meter
// provider. Exporter wiring is the host application's concern.
func NewTrackingMetricsFromGlobal() (*TrackingMetrics, error) {
	return NewTrackingMetrics(otel.GetMeterProvider().Meter("sooqly.tracking"))
}

// RecordCarrierRequest counts one carrier lookup with its outcome label
func (m *TrackingMetrics) RecordCarrierRequest(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.carrierRequests.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// RecordSingleFlightSkip counts one dropped duplicate fetch
func (m *TrackingMetrics) RecordSingleFlightSkip(ctx context.Context) {
	if m == nil {
		return
	}
	m.singleFlightSkips.Add(ctx, 1)
}

// RecordThrottleSuppressed counts one suppressed repeat notification
func (m *TrackingMetrics) RecordThrottleSuppressed(ctx context.Context) {
	if m == nil {
		return
	}
	m.throttleSuppressed.Add(ctx, 1)
}
