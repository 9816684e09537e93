package carrier

import (
	"time"

	"github.com/sooqly/backend/internal/domain/tracking"
)

// trackingRequest is the JSON body of one tracking lookup
type trackingRequest struct {
	OrderID        string `json:"order_id"`
	OrderNumber    string `json:"order_number"`
	TrackingNumber string `json:"tracking_number"`
}

// TrackingResponse is the carrier's response envelope
type TrackingResponse struct {
	Success     bool              `json:"success"`
	OrderID     string            `json:"order_id,omitempty"`
	OrderNumber string            `json:"order_number,omitempty"`
	Shipments   []ShipmentPayload `json:"shipments,omitempty"`
	Error       string            `json:"error,omitempty"`
	Message     string            `json:"message,omitempty"`
}

// ErrorMessage returns the most specific displayable message in the envelope
func (r *TrackingResponse) ErrorMessage() string {
	if r.Message != "" {
		return r.Message
	}
	return r.Error
}

// ShipmentPayload is one shipment entry in a tracking response
type ShipmentPayload struct {
	TrackingNumber string          `json:"tracking_number"`
	CarrierName    string          `json:"carrier_name"`
	LocalStatus    string          `json:"local_status"`
	IsDelivered    bool            `json:"is_delivered"`
	Statuses       []StatusPayload `json:"trackingStatuses"`
}

// StatusPayload is one history entry of a shipment
type StatusPayload struct {
	Time          time.Time `json:"time"`
	Code          string    `json:"code,omitempty"`
	Status        string    `json:"status"`
	Description   string    `json:"description"`
	ArDescription string    `json:"ar_description,omitempty"`
	Location      string    `json:"location,omitempty"`
	Comment       string    `json:"comment,omitempty"`
}

// toDomain converts a shipment payload into the domain shipment shape
func (p *ShipmentPayload) toDomain() tracking.Shipment {
	shipment := tracking.Shipment{
		TrackingNumber: p.TrackingNumber,
		CarrierName:    p.CarrierName,
		LocalStatus:    p.LocalStatus,
		IsDelivered:    p.IsDelivered,
		Events:         make([]tracking.CarrierEvent, 0, len(p.Statuses)),
	}
	for _, s := range p.Statuses {
		// Some carrier deployments put the status token in "status" and leave
		// "code" blank; fold them so downstream mapping sees one field.
		code := s.Code
		if code == "" {
			code = s.Status
		}
		shipment.Events = append(shipment.Events, tracking.CarrierEvent{
			Code:                 code,
			RawDescription:       s.Description,
			LocalizedDescription: s.ArDescription,
			Timestamp:            s.Time,
			Location:             s.Location,
			Comment:              s.Comment,
		})
	}
	return shipment
}
