package dto

import (
	"time"

	"github.com/shopspring/decimal"

	apptracking "github.com/sooqly/backend/internal/application/tracking"
	"github.com/sooqly/backend/internal/domain/tracking"
)

// OrderSummary is the order header rendered alongside the timeline
type OrderSummary struct {
	ID           string              `json:"id"`
	OrderNumber  string              `json:"order_number"`
	Status       tracking.StatusInfo `json:"status"`
	CustomerName string              `json:"customer_name"`
	TotalAmount  decimal.Decimal     `json:"total_amount"`
	CreatedAt    time.Time           `json:"created_at"`
	Items        []OrderItem         `json:"items"`
}

// OrderItem is one purchasable line of the order
type OrderItem struct {
	Title     string          `json:"title"`
	ImageURL  string          `json:"image_url,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// TrackingResponse is the full payload of a tracking lookup.
// State mirrors the fetch outcome: "timeline", "preparing", "skipped" or
// "error"; Timeline is present only for the timeline state.
type TrackingResponse struct {
	Order                   OrderSummary          `json:"order"`
	State                   string                `json:"state"`
	Timeline                *apptracking.Timeline `json:"timeline,omitempty"`
	TrackingNumber          string                `json:"tracking_number,omitempty"`
	CorrectedTrackingNumber string                `json:"corrected_tracking_number,omitempty"`
	Message                 string                `json:"message,omitempty"`
	Notify                  bool                  `json:"notify"`
}

// NewOrderSummary maps a canonical order to its response shape
func NewOrderSummary(order *tracking.CanonicalOrder) OrderSummary {
	summary := OrderSummary{
		ID:           order.ID.String(),
		OrderNumber:  order.OrderNumber,
		Status:       order.Status.Info(),
		CustomerName: order.Customer.Name,
		TotalAmount:  order.TotalAmount,
		CreatedAt:    order.CreatedAt,
		Items:        make([]OrderItem, len(order.LineItems)),
	}
	for i, item := range order.LineItems {
		summary.Items[i] = OrderItem{
			Title:     item.Title,
			ImageURL:  item.ImageURL,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}
	return summary
}

// NewTrackingResponse assembles the response from the resolved order, its
// normalized tracking handle and the fetch result
func NewTrackingResponse(order *tracking.CanonicalOrder, handle string, result *apptracking.Result) TrackingResponse {
	return TrackingResponse{
		Order:                   NewOrderSummary(order),
		State:                   string(result.State),
		Timeline:                result.Timeline,
		TrackingNumber:          handle,
		CorrectedTrackingNumber: result.CorrectedTrackingNumber,
		Message:                 result.Message,
		Notify:                  result.Notify,
	}
}
