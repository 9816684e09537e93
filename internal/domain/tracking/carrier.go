package tracking

import (
	"fmt"
	"time"
)

// User-facing messages for sanitized carrier failures. Raw upstream text for
// these classes must never reach the end user.
const (
	MsgCarrierUnavailable  = "Shipping service is temporarily unavailable, please try again later"
	MsgNoTrackingInfo      = "No tracking information is available for this order yet"
	MsgCarrierConnectivity = "Could not reach the shipping service, please try again"
)

// CarrierEvent is one entry in a shipment's history as reported by the
// carrier. Input ordering is not guaranteed; timestamps may arrive out of
// order and must be sorted by the consumer.
type CarrierEvent struct {
	Code                 string
	RawDescription       string
	LocalizedDescription string
	Timestamp            time.Time
	Location             string
	Comment              string
}

// Shipment is one tracked parcel belonging to an order.
type Shipment struct {
	TrackingNumber string
	CarrierName    string
	LocalStatus    string
	IsDelivered    bool
	Events         []CarrierEvent
}

// CarrierReport is the parsed result of one successful carrier lookup.
// It is fetched fresh on every call and never persisted by this subsystem.
type CarrierReport struct {
	OrderID     string
	OrderNumber string
	Shipments   []Shipment
}

// HasEvents reports whether the carrier returned any shipment entries.
// A successful response with zero shipments is the expected state for a
// freshly created shipment, not an error.
func (r *CarrierReport) HasEvents() bool {
	return r != nil && len(r.Shipments) > 0
}

// TrackingNumbers returns the tracking numbers the carrier echoed back,
// in shipment order.
func (r *CarrierReport) TrackingNumbers() []string {
	if r == nil {
		return nil
	}
	numbers := make([]string, 0, len(r.Shipments))
	for _, s := range r.Shipments {
		numbers = append(numbers, s.TrackingNumber)
	}
	return numbers
}

// CarrierAPIError is an upstream HTTP or transport failure. Message is
// already sanitized for display according to the status class.
type CarrierAPIError struct {
	HTTPStatus int
	Message    string
}

// Error implements the error interface
func (e *CarrierAPIError) Error() string {
	if e.HTTPStatus == 0 {
		return fmt.Sprintf("carrier: %s", e.Message)
	}
	return fmt.Sprintf("carrier: HTTP %d - %s", e.HTTPStatus, e.Message)
}

// CarrierLogicalError is a soft failure: the carrier understood the request
// but has nothing to report, e.g. the shipment was not yet received. The
// carrier's own message is displayable.
type CarrierLogicalError struct {
	Message string
}

// Error implements the error interface
func (e *CarrierLogicalError) Error() string {
	return fmt.Sprintf("carrier: %s", e.Message)
}
