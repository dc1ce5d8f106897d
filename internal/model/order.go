package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order status values. Any status can be set from any other; the only side
// effect is the delivery timestamp on the first transition into delivered.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
	OrderDue        = "due"
)

// ValidOrderStatus reports whether s is one of the five known statuses.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderProcessing, OrderDelivered, OrderCancelled, OrderDue:
		return true
	}
	return false
}

// Order is a customer order header. Line items are immutable after creation;
// only Status, DeliveryDate and UpdatedAt mutate afterward. Creating an order
// does NOT decrement inventory — stock only changes via InventoryRecord
// writes; the stock check at creation time is a gate, not a reservation.
type Order struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SalesPersonID   uuid.UUID `gorm:"type:uuid;not null;index"`
	CustomerName    string    `gorm:"not null"`
	CustomerPhone   *string
	CustomerAddress *string
	DeliveryArea    string          `gorm:"not null"`
	Status          string          `gorm:"type:varchar(20);not null;default:'pending'"`
	TotalValue      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	OrderDate       time.Time       `gorm:"not null"`
	DeliveryDate    *time.Time
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Items       []OrderItem `gorm:"foreignKey:OrderID"`
	SalesPerson *User       `gorm:"foreignKey:SalesPersonID"`
}

// OrderItem pins one product line to the product's trade price at order
// time. UnitPrice is never re-derived from the catalog afterward.
type OrderItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity   int             `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt  time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}
