package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReferenceUnitPrice is the fixed price used to value closing stock.
// Closing value is a rough book figure, not a per-product market valuation.
var ReferenceUnitPrice = decimal.NewFromInt(140)

// InventoryRecord is one product's stock movement for one day.
// At most one record exists per (product, date); updates recompute the
// derived fields in place rather than appending a new row.
type InventoryRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_product_date"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:idx_inventory_product_date"`

	// Movement counts
	OpeningPieces      int             `gorm:"not null;default:0"`
	LiftingPieces      int             `gorm:"not null;default:0"`
	LiftingPrice       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ReturnMarketPieces int             `gorm:"not null;default:0"`
	ReturnMarketPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ReturnOfficePieces int             `gorm:"not null;default:0"`
	ReturnOfficePrice  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	// IMS is a parallel reconciliation count — not part of the stock formula.
	IMSPieces int             `gorm:"not null;default:0"`
	IMSValue  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	// Derived — set by RecomputeTotals, never written directly.
	TotalStock   int             `gorm:"not null;default:0"`
	PresentStock int             `gorm:"not null;default:0"`
	ClosingValue decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}

// RecomputeTotals derives the stock fields from the raw movement counts.
// Must be called before persisting whenever any movement field changes.
// A negative total is representable on purpose: it signals a data-entry
// error upstream and passes through unrejected.
func (r *InventoryRecord) RecomputeTotals() {
	r.TotalStock = r.OpeningPieces + r.ReturnMarketPieces + r.ReturnOfficePieces - r.LiftingPieces
	r.PresentStock = r.TotalStock
	r.ClosingValue = decimal.NewFromInt(int64(r.PresentStock)).Mul(ReferenceUnitPrice)
}
