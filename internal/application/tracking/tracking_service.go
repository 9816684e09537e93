package tracking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sooqly/backend/internal/domain/tracking"
	"github.com/sooqly/backend/internal/infrastructure/telemetry"
)

// ResultState classifies the outcome of one tracking fetch for rendering.
type ResultState string

const (
	// StateTimeline means carrier events were fetched and normalized
	StateTimeline ResultState = "timeline"
	// StateSkipped means a call was already in flight; not an error, the
	// caller should simply wait for the winning call
	StateSkipped ResultState = "skipped"
	// StatePreparing means no carrier events exist yet (absent handle or a
	// freshly created shipment); rendered as "shipment being prepared"
	StatePreparing ResultState = "preparing"
	// StateError means the carrier call failed; Message carries the
	// sanitized user-facing text
	StateError ResultState = "error"
)

// Result is the outcome of one tracking fetch.
type Result struct {
	State    ResultState
	Timeline *Timeline
	// CorrectedTrackingNumber is set when the carrier echoed a tracking
	// number different from the locally stored handle. Persisting the
	// correction is the caller's responsibility and must be idempotent.
	CorrectedTrackingNumber string
	// Message is the sanitized user-facing message for StateError
	Message string
	// Notify is false when the duplicate-error throttle suppressed an exact
	// repeat of the last surfaced message
	Notify bool
}

// Service orchestrates carrier tracking fetches behind the per-order
// single-flight guard and routes failures through the duplicate-error
// throttle before anything reaches the user.
type Service struct {
	client   tracking.CarrierClient
	arena    *tracking.GuardArena
	throttle tracking.ErrorThrottle
	metrics  *telemetry.TrackingMetrics
	logger   *zap.Logger
}

// NewService creates a tracking service. The guard arena is passed in and
// owned by the caller; its lifetime bounds the single-flight and throttle
// state. A nil throttle falls back to the arena's own guard state.
func NewService(client tracking.CarrierClient, arena *tracking.GuardArena, throttle tracking.ErrorThrottle, metrics *telemetry.TrackingMetrics, logger *zap.Logger) *Service {
	if throttle == nil {
		throttle = arena
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client:   client,
		arena:    arena,
		throttle: throttle,
		metrics:  metrics,
		logger:   logger,
	}
}

// FetchTracking issues at most one carrier call for the order. A concurrent
// second trigger (initial load, manual refresh, delayed re-check) returns
// StateSkipped without a network call.
func (s *Service) FetchTracking(ctx context.Context, order *tracking.CanonicalOrder, handle string) (*Result, error) {
	if !s.arena.Begin(order.ID) {
		s.metrics.RecordSingleFlightSkip(ctx)
		s.logger.Debug("tracking fetch skipped, call already in flight",
			zap.String("order_id", order.ID.String()))
		return &Result{State: StateSkipped}, nil
	}
	defer s.arena.End(order.ID)

	report, err := s.client.Fetch(ctx, order.ID, order.OrderNumber, handle)
	if err != nil {
		s.metrics.RecordCarrierRequest(ctx, telemetry.OutcomeError)
		return s.errorResult(ctx, order.ID, err), nil
	}

	if !report.HasEvents() {
		// Expected for freshly created shipments; never routed through the
		// error throttle.
		s.metrics.RecordCarrierRequest(ctx, telemetry.OutcomeNoEvents)
		return &Result{State: StatePreparing}, nil
	}

	s.metrics.RecordCarrierRequest(ctx, telemetry.OutcomeSuccess)
	result := &Result{
		State:    StateTimeline,
		Timeline: BuildTimeline(order, report),
	}
	if corrected := report.Shipments[0].TrackingNumber; corrected != "" && corrected != handle {
		s.logger.Info("carrier reported a different tracking number",
			zap.String("order_id", order.ID.String()),
			zap.String("stored", handle),
			zap.String("carrier", corrected))
		result.CorrectedTrackingNumber = corrected
	}
	return result, nil
}

// errorResult maps a carrier failure to a displayable result, consulting the
// duplicate-error throttle so recurring upstream failures notify only once
// per distinct message.
func (s *Service) errorResult(ctx context.Context, orderID uuid.UUID, err error) *Result {
	var message string
	var apiErr *tracking.CarrierAPIError
	var logicalErr *tracking.CarrierLogicalError
	switch {
	case errors.As(err, &apiErr):
		message = apiErr.Message
	case errors.As(err, &logicalErr):
		message = logicalErr.Message
	default:
		message = tracking.MsgCarrierConnectivity
	}

	notify, throttleErr := s.throttle.ShouldNotify(ctx, orderID, message)
	if throttleErr != nil {
		// Fail open: a broken throttle store must not swallow notifications.
		s.logger.Warn("error throttle unavailable, notifying without suppression",
			zap.String("order_id", orderID.String()),
			zap.Error(throttleErr))
		notify = true
	}
	if !notify {
		s.metrics.RecordThrottleSuppressed(ctx)
	}

	s.logger.Warn("carrier tracking fetch failed",
		zap.String("order_id", orderID.String()),
		zap.Bool("notify", notify),
		zap.Error(err))

	return &Result{
		State:   StateError,
		Message: message,
		Notify:  notify,
	}
}

// ScheduleRecheck arranges a one-shot deferred refresh for a freshly created
// shipment. The refresh goes through the same single-flight guard, so it
// coalesces with any user-triggered fetch; its outcome is only logged.
func (s *Service) ScheduleRecheck(order *tracking.CanonicalOrder, handle string, delay time.Duration) *time.Timer {
	return time.AfterFunc(delay, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		result, err := s.FetchTracking(ctx, order, handle)
		if err != nil {
			s.logger.Warn("delayed tracking re-check failed",
				zap.String("order_id", order.ID.String()),
				zap.Error(err))
			return
		}
		s.logger.Debug("delayed tracking re-check completed",
			zap.String("order_id", order.ID.String()),
			zap.String("state", string(result.State)))
	})
}

// ReleaseGuard drops the order's guard when the owning view is torn down
func (s *Service) ReleaseGuard(orderID uuid.UUID) {
	s.arena.Release(orderID)
}
