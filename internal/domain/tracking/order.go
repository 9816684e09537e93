package tracking

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SourceSchema identifies which backing order table is authoritative for a record.
// The platform went through a storefront rewrite, so orders live in one of two
// schemas; the hub table reconciles them into a single customer-facing identity.
type SourceSchema string

const (
	// SchemaStorefront is the legacy storefront order table.
	SchemaStorefront SourceSchema = "storefront"
	// SchemaVendor is the newer per-vendor order table.
	SchemaVendor SourceSchema = "vendor"
)

// IsValid checks if the schema tag is known
func (s SourceSchema) IsValid() bool {
	switch s {
	case SchemaStorefront, SchemaVendor:
		return true
	}
	return false
}

// String returns the string representation of SourceSchema
func (s SourceSchema) String() string {
	return string(s)
}

// Customer holds the order's customer display fields.
// Used for display only, never for authorization.
type Customer struct {
	Name  string
	Phone string
	Email string
}

// LineItem is one purchasable line of an order.
type LineItem struct {
	Title     string
	ImageURL  string
	Quantity  int
	UnitPrice decimal.Decimal
}

// CanonicalOrder is the reconciled view of an order regardless of which
// schema persisted it. Downstream consumers only ever see this shape.
type CanonicalOrder struct {
	ID             uuid.UUID
	SourceSchema   SourceSchema
	SourceRecordID uuid.UUID
	OrderNumber    string
	Status         Status
	TrackingHandle string
	Customer       Customer
	LineItems      []LineItem
	TotalAmount    decimal.Decimal
	CreatedAt      time.Time
}

// OrderHub is the cross-schema aggregate record. It points at the
// authoritative source record and carries enough fields (order number,
// totals, status, customer) to render a usable page on its own.
type OrderHub struct {
	ID             uuid.UUID
	OrderNumber    string
	SourceSchema   SourceSchema
	SourceRecordID uuid.UUID
	Status         Status
	TrackingNumber string
	CustomerName   string
	CustomerPhone  string
	CustomerEmail  string
	TotalAmount    decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Project builds the aggregate-only canonical projection. Line items are
// empty; the hub never stores them.
func (h *OrderHub) Project() *CanonicalOrder {
	return &CanonicalOrder{
		ID:             h.ID,
		SourceSchema:   h.SourceSchema,
		SourceRecordID: h.SourceRecordID,
		OrderNumber:    h.OrderNumber,
		Status:         h.Status,
		TrackingHandle: h.TrackingNumber,
		Customer: Customer{
			Name:  h.CustomerName,
			Phone: h.CustomerPhone,
			Email: h.CustomerEmail,
		},
		LineItems:   make([]LineItem, 0),
		TotalAmount: h.TotalAmount,
		CreatedAt:   h.CreatedAt,
	}
}

// Merge overlays a schema-specific projection onto the hub projection.
// The hub stays authoritative for status, customer and order number; the
// schema record wins for line items, and for the tracking handle when it
// carries a non-empty value.
func (h *OrderHub) Merge(source *CanonicalOrder) *CanonicalOrder {
	merged := h.Project()
	if source == nil {
		return merged
	}
	merged.LineItems = source.LineItems
	if source.TrackingHandle != "" {
		merged.TrackingHandle = source.TrackingHandle
	}
	if source.TotalAmount.IsPositive() {
		merged.TotalAmount = source.TotalAmount
	}
	return merged
}

// StorefrontOrder is a record in the legacy storefront schema.
type StorefrontOrder struct {
	ID             uuid.UUID
	OrderNumber    string
	Status         Status
	TrackingNumber string
	CustomerName   string
	CustomerPhone  string
	CustomerEmail  string
	TotalAmount    decimal.Decimal
	Items          []LineItem
	CreatedAt      time.Time
}

// Project maps a legacy storefront order into the canonical shape.
func (o *StorefrontOrder) Project() *CanonicalOrder {
	return &CanonicalOrder{
		ID:             o.ID,
		SourceSchema:   SchemaStorefront,
		SourceRecordID: o.ID,
		OrderNumber:    o.OrderNumber,
		Status:         o.Status,
		TrackingHandle: o.TrackingNumber,
		Customer: Customer{
			Name:  o.CustomerName,
			Phone: o.CustomerPhone,
			Email: o.CustomerEmail,
		},
		LineItems:   o.Items,
		TotalAmount: o.TotalAmount,
		CreatedAt:   o.CreatedAt,
	}
}

// VendorOrder is a record in the newer per-vendor schema.
type VendorOrder struct {
	ID             uuid.UUID
	VendorID       uuid.UUID
	OrderNumber    string
	Status         Status
	TrackingNumber string
	CustomerName   string
	CustomerPhone  string
	CustomerEmail  string
	TotalAmount    decimal.Decimal
	Items          []LineItem
	CreatedAt      time.Time
}

// Project maps a vendor order into the canonical shape.
func (o *VendorOrder) Project() *CanonicalOrder {
	return &CanonicalOrder{
		ID:             o.ID,
		SourceSchema:   SchemaVendor,
		SourceRecordID: o.ID,
		OrderNumber:    o.OrderNumber,
		Status:         o.Status,
		TrackingHandle: o.TrackingNumber,
		Customer: Customer{
			Name:  o.CustomerName,
			Phone: o.CustomerPhone,
			Email: o.CustomerEmail,
		},
		LineItems:   o.Items,
		TotalAmount: o.TotalAmount,
		CreatedAt:   o.CreatedAt,
	}
}
