package tracking

import (
	"sort"
	"time"

	"github.com/sooqly/backend/internal/domain/tracking"
)

// TimelineEvent is one rendered entry of a shipment timeline.
type TimelineEvent struct {
	Status         tracking.StatusInfo `json:"status"`
	Description    string              `json:"description"`
	RawDescription string              `json:"raw_description"`
	Timestamp      time.Time           `json:"timestamp"`
	Location       string              `json:"location,omitempty"`
}

// Timeline is the normalized shipment history handed to the presentation
// layer. Events are sorted by time; carriers do not guarantee ordered input.
type Timeline struct {
	CurrentStatus  tracking.StatusInfo `json:"current_status"`
	ShowProgress   bool                `json:"show_progress"`
	IsDelivered    bool                `json:"is_delivered"`
	CarrierName    string              `json:"carrier_name,omitempty"`
	TrackingNumber string              `json:"tracking_number,omitempty"`
	Events         []TimelineEvent     `json:"events"`
}

// BuildTimeline assembles the normalized timeline from a carrier report for
// the given order. The first shipment is the primary one; multi-parcel orders
// are rare and later parcels only add events.
//
// The step-based progress view is suppressed entirely for cancelled and
// returned orders: partial progress is meaningless there.
func BuildTimeline(order *tracking.CanonicalOrder, report *tracking.CarrierReport) *Timeline {
	timeline := &Timeline{
		CurrentStatus: order.Status.Info(),
		ShowProgress:  !order.Status.SuppressesProgress(),
		Events:        make([]TimelineEvent, 0),
	}
	if !report.HasEvents() {
		return timeline
	}

	primary := report.Shipments[0]
	timeline.CarrierName = primary.CarrierName
	timeline.TrackingNumber = primary.TrackingNumber
	timeline.IsDelivered = primary.IsDelivered

	for _, shipment := range report.Shipments {
		for _, event := range shipment.Events {
			timeline.Events = append(timeline.Events, TimelineEvent{
				Status:         tracking.MapStatus(event.Code, event.RawDescription),
				Description:    eventDescription(event),
				RawDescription: event.RawDescription,
				Timestamp:      event.Timestamp,
				Location:       event.Location,
			})
		}
	}
	sort.SliceStable(timeline.Events, func(i, j int) bool {
		return timeline.Events[i].Timestamp.Before(timeline.Events[j].Timestamp)
	})

	if !order.Status.SuppressesProgress() {
		timeline.CurrentStatus = currentStatus(&primary)
	}
	return timeline
}

// currentStatus derives the shipment's current canonical status.
func currentStatus(shipment *tracking.Shipment) tracking.StatusInfo {
	if shipment.IsDelivered {
		return tracking.StatusDelivered.Info()
	}
	return tracking.MapStatus(shipment.LocalStatus, "")
}

// eventDescription prefers the carrier's own localized text and falls back to
// the phrase-table translation of the raw description.
func eventDescription(event tracking.CarrierEvent) string {
	if event.LocalizedDescription != "" {
		return event.LocalizedDescription
	}
	return tracking.TranslateDescription(event.RawDescription)
}
