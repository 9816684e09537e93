package tracking

import "strings"

// Status is the canonical shipment status taxonomy. The set is closed and
// ordered by typical progression; CANCELLED, RETURNED and FAILED are terminal
// exits reachable from any non-delivered state.
type Status string

const (
	StatusPending        Status = "PENDING"
	StatusConfirmed      Status = "CONFIRMED"
	StatusProcessing     Status = "PROCESSING"
	StatusReadyForPickup Status = "READY_FOR_PICKUP"
	StatusPickedUp       Status = "PICKED_UP"
	StatusInTransit      Status = "IN_TRANSIT"
	StatusOutForDelivery Status = "OUT_FOR_DELIVERY"
	StatusShipped        Status = "SHIPPED"
	StatusDelivered      Status = "DELIVERED"
	StatusCancelled      Status = "CANCELLED"
	StatusReturned       Status = "RETURNED"
	StatusFailed         Status = "FAILED"

	// StatusUnknown marks a carrier value outside the catalogued vocabulary.
	// It is only ever synthesized by MapStatus and is not part of the closed
	// canonical set: IsValid reports false and no transition accepts it.
	StatusUnknown Status = "UNKNOWN"
)

// IsValid checks if the status is part of the canonical set
func (s Status) IsValid() bool {
	_, ok := statusCatalog[s]
	return ok
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminalFailure returns true for the terminal exit branches
func (s Status) IsTerminalFailure() bool {
	return s == StatusCancelled || s == StatusReturned || s == StatusFailed
}

// SuppressesProgress reports whether the step-based progress timeline is
// meaningless for this status. Once an order is cancelled or returned,
// partial progress must not be rendered.
func (s Status) SuppressesProgress() bool {
	return s == StatusCancelled || s == StatusReturned
}

// CanTransitionTo checks if the status can move to the target status.
// Forward motion along the progression is allowed (steps may be skipped when
// the carrier reports late); terminal exits are reachable from any
// non-delivered state.
func (s Status) CanTransitionTo(target Status) bool {
	if !s.IsValid() || !target.IsValid() {
		return false
	}
	if s == StatusDelivered || s.IsTerminalFailure() {
		return false
	}
	if target.IsTerminalFailure() {
		return true
	}
	return statusCatalog[target].Step > statusCatalog[s].Step
}

// StatusInfo carries the display attributes of a canonical status: a
// bilingual label, a step integer used only for ordering in a progress view,
// and an icon tag that is opaque to this subsystem.
type StatusInfo struct {
	Status  Status `json:"status"`
	Step    int    `json:"step"`
	Icon    string `json:"icon"`
	LabelEN string `json:"label_en"`
	LabelAR string `json:"label_ar"`
}

// statusCatalog is the full canonical status set.
var statusCatalog = map[Status]StatusInfo{
	StatusPending:        {StatusPending, 1, "clock", "Order Placed", "تم استلام الطلب"},
	StatusConfirmed:      {StatusConfirmed, 2, "check", "Order Confirmed", "تم تأكيد الطلب"},
	StatusProcessing:     {StatusProcessing, 3, "box", "Being Prepared", "جاري تجهيز الطلب"},
	StatusReadyForPickup: {StatusReadyForPickup, 4, "package", "Ready for Pickup", "الشحنة جاهزة للاستلام"},
	StatusPickedUp:       {StatusPickedUp, 5, "truck", "Picked Up by Courier", "تم استلام الشحنة من المتجر"},
	StatusInTransit:      {StatusInTransit, 5, "truck", "In Transit", "الشحنة في الطريق"},
	StatusOutForDelivery: {StatusOutForDelivery, 6, "truck-fast", "Out for Delivery", "الشحنة خرجت للتوصيل"},
	StatusShipped:        {StatusShipped, 6, "truck", "Shipped", "تم شحن الطلب"},
	StatusDelivered:      {StatusDelivered, 7, "home", "Delivered", "تم التوصيل"},
	StatusCancelled:      {StatusCancelled, 0, "x-circle", "Cancelled", "تم إلغاء الطلب"},
	StatusReturned:       {StatusReturned, 0, "rotate-ccw", "Returned", "تم إرجاع الشحنة"},
	StatusFailed:         {StatusFailed, 0, "alert-circle", "Delivery Failed", "تعذر توصيل الشحنة"},
}

// Info returns the display attributes for a canonical status. Unknown
// statuses get the PENDING attributes so callers always render something.
func (s Status) Info() StatusInfo {
	if info, ok := statusCatalog[s]; ok {
		return info
	}
	return statusCatalog[StatusPending]
}

// carrierToken maps one known carrier status token to a canonical status.
type carrierToken struct {
	token  string
	status Status
}

// carrierTokens is the known carrier vocabulary, matched case-insensitively.
// The table is kept sorted longest-token-first: the substring fallback can
// otherwise mis-match short tokens (e.g. "return" inside "returned to
// sender"). Substring matching in either direction is a known imprecision for
// short carrier codes.
var carrierTokens = []carrierToken{
	{"delivery attempt failed", StatusFailed},
	{"returned to sender", StatusReturned},
	{"waiting for pickup", StatusReadyForPickup},
	{"ready_for_pickup", StatusReadyForPickup},
	{"ready for pickup", StatusReadyForPickup},
	{"out_for_delivery", StatusOutForDelivery},
	{"out for delivery", StatusOutForDelivery},
	{"shipment created", StatusProcessing},
	{"order confirmed", StatusConfirmed},
	{"delivery failed", StatusFailed},
	{"in_transit", StatusInTransit},
	{"in transit", StatusInTransit},
	{"on the way", StatusInTransit},
	{"processing", StatusProcessing},
	{"picked_up", StatusPickedUp},
	{"picked up", StatusPickedUp},
	{"cancelled", StatusCancelled},
	{"delivered", StatusDelivered},
	{"confirmed", StatusConfirmed},
	{"canceled", StatusCancelled},
	{"returned", StatusReturned},
	{"received", StatusConfirmed},
	{"shipped", StatusShipped},
	{"pending", StatusPending},
	{"created", StatusPending},
	{"transit", StatusInTransit},
	{"return", StatusReturned},
	{"failed", StatusFailed},
	{"new", StatusPending},
}

// MapStatus maps a carrier-supplied status code and free-text description to
// a canonical StatusInfo. Matching is three-tier: exact case-insensitive
// token match, then substring match in both directions, then a synthesized
// fallback entry using the carrier's raw text as the label with step 1 and
// the "unknown" icon. The fallback guarantees the UI never shows a blank
// status, even for carrier values not yet catalogued.
func MapStatus(rawCode, rawDescription string) StatusInfo {
	raw := strings.TrimSpace(rawCode)
	if raw == "" {
		raw = strings.TrimSpace(rawDescription)
	}
	if raw == "" {
		return statusCatalog[StatusPending]
	}

	lowered := strings.ToLower(raw)

	// Tier 1: exact match against the known vocabulary.
	for _, entry := range carrierTokens {
		if lowered == entry.token {
			return statusCatalog[entry.status]
		}
	}
	// A carrier sending our canonical names back is also an exact match.
	if canonical := Status(strings.ToUpper(raw)); canonical.IsValid() {
		return statusCatalog[canonical]
	}

	// Tier 2: substring match in either direction, longest token first.
	for _, entry := range carrierTokens {
		if strings.Contains(lowered, entry.token) || strings.Contains(entry.token, lowered) {
			return statusCatalog[entry.status]
		}
	}

	// Tier 3: synthesized fallback from the raw text. StatusUnknown keeps the
	// entry distinguishable from a genuinely pending order.
	return StatusInfo{
		Status:  StatusUnknown,
		Step:    1,
		Icon:    "unknown",
		LabelEN: raw,
		LabelAR: raw,
	}
}
