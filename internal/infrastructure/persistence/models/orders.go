package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sooqly/backend/internal/domain/tracking"
)

// OrderHubModel is the persistence model for the cross-schema hub aggregate.
type OrderHubModel struct {
	ID             uuid.UUID             `gorm:"type:uuid;primary_key"`
	OrderNumber    string                `gorm:"type:varchar(50);not null;uniqueIndex"`
	SourceSchema   tracking.SourceSchema `gorm:"type:varchar(20);not null"`
	SourceRecordID uuid.UUID             `gorm:"type:uuid;not null;index"`
	Status         tracking.Status       `gorm:"type:varchar(20);not null;default:'PENDING'"`
	TrackingNumber string                `gorm:"type:varchar(100)"`
	CustomerName   string                `gorm:"type:varchar(200);not null"`
	CustomerPhone  string                `gorm:"type:varchar(30)"`
	CustomerEmail  string                `gorm:"type:varchar(200)"`
	TotalAmount    decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	CreatedAt      time.Time             `gorm:"not null"`
	UpdatedAt      time.Time             `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderHubModel) TableName() string {
	return "order_hubs"
}

// ToDomain converts the persistence model to a domain OrderHub
func (m *OrderHubModel) ToDomain() *tracking.OrderHub {
	return &tracking.OrderHub{
		ID:             m.ID,
		OrderNumber:    m.OrderNumber,
		SourceSchema:   m.SourceSchema,
		SourceRecordID: m.SourceRecordID,
		Status:         m.Status,
		TrackingNumber: m.TrackingNumber,
		CustomerName:   m.CustomerName,
		CustomerPhone:  m.CustomerPhone,
		CustomerEmail:  m.CustomerEmail,
		TotalAmount:    m.TotalAmount,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// StorefrontOrderModel is the persistence model for the legacy storefront schema.
type StorefrontOrderModel struct {
	ID             uuid.UUID                  `gorm:"type:uuid;primary_key"`
	OrderNumber    string                     `gorm:"type:varchar(50);not null;index"`
	Status         tracking.Status            `gorm:"type:varchar(20);not null;default:'PENDING'"`
	TrackingNumber string                     `gorm:"type:varchar(100)"`
	CustomerName   string                     `gorm:"type:varchar(200);not null"`
	CustomerPhone  string                     `gorm:"type:varchar(30)"`
	CustomerEmail  string                     `gorm:"type:varchar(200)"`
	TotalAmount    decimal.Decimal            `gorm:"type:decimal(18,4);not null;default:0"`
	Items          []StorefrontOrderItemModel `gorm:"foreignKey:OrderID;references:ID"`
	CreatedAt      time.Time                  `gorm:"not null"`
	UpdatedAt      time.Time                  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StorefrontOrderModel) TableName() string {
	return "storefront_orders"
}

// ToDomain converts the persistence model to a domain StorefrontOrder
func (m *StorefrontOrderModel) ToDomain() *tracking.StorefrontOrder {
	order := &tracking.StorefrontOrder{
		ID:             m.ID,
		OrderNumber:    m.OrderNumber,
		Status:         m.Status,
		TrackingNumber: m.TrackingNumber,
		CustomerName:   m.CustomerName,
		CustomerPhone:  m.CustomerPhone,
		CustomerEmail:  m.CustomerEmail,
		TotalAmount:    m.TotalAmount,
		Items:          make([]tracking.LineItem, len(m.Items)),
		CreatedAt:      m.CreatedAt,
	}
	for i, item := range m.Items {
		order.Items[i] = item.ToDomain()
	}
	return order
}

// StorefrontOrderItemModel is one line item in the legacy storefront schema.
type StorefrontOrderItemModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title     string          `gorm:"type:varchar(200);not null"`
	ImageURL  string          `gorm:"type:varchar(500)"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (StorefrontOrderItemModel) TableName() string {
	return "storefront_order_items"
}

// ToDomain converts the persistence model to a domain LineItem
func (m *StorefrontOrderItemModel) ToDomain() tracking.LineItem {
	return tracking.LineItem{
		Title:     m.Title,
		ImageURL:  m.ImageURL,
		Quantity:  m.Quantity,
		UnitPrice: m.UnitPrice,
	}
}

// VendorOrderModel is the persistence model for the newer per-vendor schema.
type VendorOrderModel struct {
	ID             uuid.UUID              `gorm:"type:uuid;primary_key"`
	VendorID       uuid.UUID              `gorm:"type:uuid;not null;index"`
	OrderNumber    string                 `gorm:"type:varchar(50);not null;index"`
	Status         tracking.Status        `gorm:"type:varchar(20);not null;default:'PENDING'"`
	TrackingNumber string                 `gorm:"type:varchar(100)"`
	CustomerName   string                 `gorm:"type:varchar(200);not null"`
	CustomerPhone  string                 `gorm:"type:varchar(30)"`
	CustomerEmail  string                 `gorm:"type:varchar(200)"`
	TotalAmount    decimal.Decimal        `gorm:"type:decimal(18,4);not null;default:0"`
	Items          []VendorOrderItemModel `gorm:"foreignKey:OrderID;references:ID"`
	CreatedAt      time.Time              `gorm:"not null"`
	UpdatedAt      time.Time              `gorm:"not null"`
}

// TableName returns the table name for GORM
func (VendorOrderModel) TableName() string {
	return "vendor_orders"
}

// ToDomain converts the persistence model to a domain VendorOrder
func (m *VendorOrderModel) ToDomain() *tracking.VendorOrder {
	order := &tracking.VendorOrder{
		ID:             m.ID,
		VendorID:       m.VendorID,
		OrderNumber:    m.OrderNumber,
		Status:         m.Status,
		TrackingNumber: m.TrackingNumber,
		CustomerName:   m.CustomerName,
		CustomerPhone:  m.CustomerPhone,
		CustomerEmail:  m.CustomerEmail,
		TotalAmount:    m.TotalAmount,
		Items:          make([]tracking.LineItem, len(m.Items)),
		CreatedAt:      m.CreatedAt,
	}
	for i, item := range m.Items {
		order.Items[i] = item.ToDomain()
	}
	return order
}

// VendorOrderItemModel is one line item in the per-vendor schema.
type VendorOrderItemModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title     string          `gorm:"type:varchar(200);not null"`
	ImageURL  string          `gorm:"type:varchar(500)"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (VendorOrderItemModel) TableName() string {
	return "vendor_order_items"
}

// ToDomain converts the persistence model to a domain LineItem
func (m *VendorOrderItemModel) ToDomain() tracking.LineItem {
	return tracking.LineItem{
		Title:     m.Title,
		ImageURL:  m.ImageURL,
		Quantity:  m.Quantity,
		UnitPrice: m.UnitPrice,
	}
}
