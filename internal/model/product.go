package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Inactive products are excluded from catalog
// listings and cannot be ordered; ItemName must be unique among active rows
// (enforced in the service layer — the DB index would also block re-using a
// name held by a deactivated product).
type Product struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ItemName string    `gorm:"index;not null"`
	Size     *string
	// TradePrice is the selling price snapshotted onto order lines.
	TradePrice        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ReturnPriceMarket decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ReturnPriceOffice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Category          string          `gorm:"index"`
	Description       *string
	Status            string `gorm:"type:varchar(20);not null;default:'active'"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (p *Product) Active() bool { return p.Status == StatusActive }
