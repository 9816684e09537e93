package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apptracking "github.com/sooqly/backend/internal/application/tracking"
	"github.com/sooqly/backend/internal/domain/tracking"
	"github.com/sooqly/backend/internal/interfaces/http/dto"
)

// OrderResolver resolves an order reference into its canonical projection
type OrderResolver interface {
	Resolve(ctx context.Context, reference string) (*tracking.CanonicalOrder, error)
}

// TrackingFetcher runs guarded carrier lookups for an order
type TrackingFetcher interface {
	FetchTracking(ctx context.Context, order *tracking.CanonicalOrder, handle string) (*apptracking.Result, error)
	ScheduleRecheck(order *tracking.CanonicalOrder, handle string, delay time.Duration) *time.Timer
}

// TrackingHandler serves the customer-facing order tracking endpoints
type TrackingHandler struct {
	BaseHandler
	resolver     OrderResolver
	fetcher      TrackingFetcher
	recheckDelay time.Duration
	logger       *zap.Logger
}

// NewTrackingHandler creates a new tracking handler
func NewTrackingHandler(resolver OrderResolver, fetcher TrackingFetcher, recheckDelay time.Duration, logger *zap.Logger) *TrackingHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TrackingHandler{
		resolver:     resolver,
		fetcher:      fetcher,
		recheckDelay: recheckDelay,
		logger:       logger,
	}
}

// RegisterRoutes registers the tracking routes on the API group
func (h *TrackingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	orders.GET("/:reference/tracking", h.GetTracking)
	orders.POST("/:reference/tracking/refresh", h.RefreshTracking)
}

// GetTracking handles GET /api/v1/orders/:reference/tracking
// The reference may be a hub ID, a source record ID, or a bare vendor order ID.
func (h *TrackingHandler) GetTracking(c *gin.Context) {
	h.serveTracking(c)
}

// RefreshTracking handles POST /api/v1/orders/:reference/tracking/refresh
// A manual refresh goes through the same single-flight guard as the initial
// load, so hammering the button cannot multiply carrier calls.
func (h *TrackingHandler) RefreshTracking(c *gin.Context) {
	h.serveTracking(c)
}

func (h *TrackingHandler) serveTracking(c *gin.Context) {
	reference := c.Param("reference")

	order, err := h.resolver.Resolve(c.Request.Context(), reference)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	handle, ok := tracking.NormalizeHandle(order.TrackingHandle)
	if !ok {
		// No usable tracking number yet; the shipment is still being prepared
		h.Success(c, dto.NewTrackingResponse(order, "", &apptracking.Result{
			State: apptracking.StatePreparing,
		}))
		return
	}

	result, err := h.fetcher.FetchTracking(c.Request.Context(), order, handle)
	if err != nil {
		h.logger.Error("tracking fetch failed",
			zap.String("order_id", order.ID.String()),
			zap.Error(err))
		h.InternalError(c, "An unexpected error occurred")
		return
	}

	if result.State == apptracking.StatePreparing && h.recheckDelay > 0 {
		h.fetcher.ScheduleRecheck(order, handle, h.recheckDelay)
	}

	response := dto.NewTrackingResponse(order, handle, result)
	if result.State == apptracking.StateSkipped {
		h.Accepted(c, response)
		return
	}
	h.Success(c, response)
}
