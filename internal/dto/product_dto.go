package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// ProductFilter is bound from the query string of GET /api/products.
type ProductFilter struct {
	Category string `form:"category"`
	Search   string `form:"search"`
	// IncludeInactive widens the listing to deactivated products (admin UI).
	IncludeInactive bool `form:"include_inactive"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	ItemName          string          `json:"item_name"           validate:"required,min=1,max=200"`
	Size              *string         `json:"size"`
	TradePrice        decimal.Decimal `json:"trade_price"         validate:"min=0"`
	ReturnPriceMarket decimal.Decimal `json:"return_price_market" validate:"min=0"`
	ReturnPriceOffice decimal.Decimal `json:"return_price_office" validate:"min=0"`
	Category          string          `json:"category"            validate:"omitempty,max=100"`
	Description       *string         `json:"description"`
}

// UpdateProductRequest uses pointers so that omitted fields stay untouched.
type UpdateProductRequest struct {
	ItemName          *string          `json:"item_name"           validate:"omitempty,min=1,max=200"`
	Size              *string          `json:"size"`
	TradePrice        *decimal.Decimal `json:"trade_price"`
	ReturnPriceMarket *decimal.Decimal `json:"return_price_market"`
	ReturnPriceOffice *decimal.Decimal `json:"return_price_office"`
	Category          *string          `json:"category"`
	Description       *string          `json:"description"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID                string          `json:"id"`
	ItemName          string          `json:"item_name"`
	Size              *string         `json:"size"`
	TradePrice        decimal.Decimal `json:"trade_price"`
	ReturnPriceMarket decimal.Decimal `json:"return_price_market"`
	ReturnPriceOffice decimal.Decimal `json:"return_price_office"`
	Category          string          `json:"category"`
	Description       *string         `json:"description"`
	Status            string          `json:"status"`
	CreatedAt         string          `json:"created_at"`
	UpdatedAt         string          `json:"updated_at"`
}
