package tracking

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sooqly/backend/internal/domain/tracking"
)

type fakeCarrierClient struct {
	mu      sync.Mutex
	calls   int32
	delay   time.Duration
	report  *tracking.CarrierReport
	err     error
	blockCh chan struct{}
}

func (f *fakeCarrierClient) Fetch(_ context.Context, _ uuid.UUID, _, _ string) (*tracking.CarrierReport, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.blockCh != nil {
		<-f.blockCh
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.report, nil
}

func (f *fakeCarrierClient) callCount() int {
	return int(atomic.LoadInt32(&f.calls))
}

func newTestOrder() *tracking.CanonicalOrder {
	return &tracking.CanonicalOrder{
		ID:          uuid.New(),
		OrderNumber: "SO-77",
		Status:      tracking.StatusInTransit,
	}
}

func singleShipmentReport(trackingNumber string) *tracking.CarrierReport {
	return &tracking.CarrierReport{
		Shipments: []tracking.Shipment{
			{
				TrackingNumber: trackingNumber,
				CarrierName:    "SMSA",
				LocalStatus:    "in_transit",
				Events: []tracking.CarrierEvent{
					{Code: "in_transit", RawDescription: "In transit", Timestamp: time.Now()},
				},
			},
		},
	}
}

func TestService_FetchTracking_Timeline(t *testing.T) {
	client := &fakeCarrierClient{report: singleShipmentReport("SMSA-1")}
	service := NewService(client, tracking.NewGuardArena(), nil, nil, nil)
	order := newTestOrder()

	result, err := service.FetchTracking(context.Background(), order, "SMSA-1")

	require.NoError(t, err)
	assert.Equal(t, StateTimeline, result.State)
	require.NotNil(t, result.Timeline)
	assert.Empty(t, result.CorrectedTrackingNumber)
	assert.Equal(t, 1, client.callCount())
}

func TestService_FetchTracking_SingleFlight(t *testing.T) {
	client := &fakeCarrierClient{
		report:  singleShipmentReport("SMSA-1"),
		blockCh: make(chan struct{}),
	}
	service := NewService(client, tracking.NewGuardArena(), nil, nil, nil)
	order := newTestOrder()

	firstDone := make(chan *Result, 1)
	go func() {
		result, _ := service.FetchTracking(context.Background(), order, "SMSA-1")
		firstDone <- result
	}()

	// Wait for the first call to be in flight.
	require.Eventually(t, func() bool { return client.callCount() == 1 },
		time.Second, time.Millisecond)

	second, err := service.FetchTracking(context.Background(), order, "SMSA-1")
	require.NoError(t, err)
	assert.Equal(t, StateSkipped, second.State, "concurrent duplicate must be dropped, not queued")

	close(client.blockCh)
	first := <-firstDone
	assert.Equal(t, StateTimeline, first.State)
	assert.Equal(t, 1, client.callCount(), "exactly one outbound carrier call")
}

func TestService_FetchTracking_GuardClearedAfterError(t *testing.T) {
	client := &fakeCarrierClient{err: &tracking.CarrierAPIError{HTTPStatus: 502, Message: tracking.MsgCarrierConnectivity}}
	arena := tracking.NewGuardArena()
	service := NewService(client, arena, nil, nil, nil)
	order := newTestOrder()

	_, err := service.FetchTracking(context.Background(), order, "SMSA-1")
	require.NoError(t, err)

	assert.False(t, arena.InFlight(order.ID), "a failed call must not wedge the guard")

	client.mu.Lock()
	client.err = nil
	client.report = singleShipmentReport("SMSA-1")
	client.mu.Unlock()

	result, err := service.FetchTracking(context.Background(), order, "SMSA-1")
	require.NoError(t, err)
	assert.Equal(t, StateTimeline, result.State)
}

func TestService_FetchTracking_NoEventsYet(t *testing.T) {
	client := &fakeCarrierClient{report: &tracking.CarrierReport{}}
	arena := tracking.NewGuardArena()
	service := NewService(client, arena, nil, nil, nil)
	order := newTestOrder()

	result, err := service.FetchTracking(context.Background(), order, "SMSA-1")

	require.NoError(t, err)
	assert.Equal(t, StatePreparing, result.State)

	// The throttle must not have been consulted: the next real error still
	// notifies regardless of how many empty responses preceded it.
	client.mu.Lock()
	client.err = &tracking.CarrierLogicalError{Message: "not received"}
	client.mu.Unlock()
	result, err = service.FetchTracking(context.Background(), order, "SMSA-1")
	require.NoError(t, err)
	assert.True(t, result.Notify)
}

func TestService_FetchTracking_ErrorThrottling(t *testing.T) {
	client := &fakeCarrierClient{err: &tracking.CarrierAPIError{HTTPStatus: 500, Message: tracking.MsgCarrierUnavailable}}
	service := NewService(client, tracking.NewGuardArena(), nil, nil, nil)
	order := newTestOrder()
	ctx := context.Background()

	first, err := service.FetchTracking(ctx, order, "SMSA-1")
	require.NoError(t, err)
	assert.Equal(t, StateError, first.State)
	assert.Equal(t, tracking.MsgCarrierUnavailable, first.Message)
	assert.True(t, first.Notify, "first occurrence notifies")

	second, err := service.FetchTracking(ctx, order, "SMSA-1")
	require.NoError(t, err)
	assert.False(t, second.Notify, "exact repeat is suppressed")

	client.mu.Lock()
	client.err = &tracking.CarrierLogicalError{Message: "carrier outage escalated"}
	client.mu.Unlock()

	third, err := service.FetchTracking(ctx, order, "SMSA-1")
	require.NoError(t, err)
	assert.True(t, third.Notify, "a changed message notifies again")
	assert.Equal(t, "carrier outage escalated", third.Message)
}

func TestService_FetchTracking_CorrectedTrackingNumber(t *testing.T) {
	client := &fakeCarrierClient{report: singleShipmentReport("SMSA-NEW")}
	service := NewService(client, tracking.NewGuardArena(), nil, nil, nil)
	order := newTestOrder()

	result, err := service.FetchTracking(context.Background(), order, "SMSA-OLD")

	require.NoError(t, err)
	assert.Equal(t, "SMSA-NEW", result.CorrectedTrackingNumber,
		"a differing carrier tracking number must be surfaced to the caller")
}

func TestService_ScheduleRecheck(t *testing.T) {
	client := &fakeCarrierClient{report: singleShipmentReport("SMSA-1")}
	service := NewService(client, tracking.NewGuardArena(), nil, nil, nil)
	order := newTestOrder()

	timer := service.ScheduleRecheck(order, "SMSA-1", time.Millisecond)
	defer timer.Stop()

	assert.Eventually(t, func() bool { return client.callCount() == 1 },
		time.Second, 5*time.Millisecond)
}

func TestService_ReleaseGuard(t *testing.T) {
	client := &fakeCarrierClient{err: &tracking.CarrierAPIError{HTTPStatus: 500, Message: tracking.MsgCarrierUnavailable}}
	arena := tracking.NewGuardArena()
	service := NewService(client, arena, nil, nil, nil)
	order := newTestOrder()
	ctx := context.Background()

	_, _ = service.FetchTracking(ctx, order, "SMSA-1")
	service.ReleaseGuard(order.ID)

	result, err := service.FetchTracking(ctx, order, "SMSA-1")
	require.NoError(t, err)
	assert.True(t, result.Notify, "released guard forgets the last surfaced error")
}
