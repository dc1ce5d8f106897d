package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CreateInventoryRequest creates the daily snapshot for one product.
// Date defaults to today when omitted; the derived totals are always
// recomputed server-side, never accepted from the client.
type CreateInventoryRequest struct {
	ProductID          string          `json:"product_id"           validate:"required,uuid"`
	Date               string          `json:"date"                 validate:"omitempty"`
	OpeningPieces      int             `json:"opening_pieces"       validate:"min=0"`
	LiftingPieces      int             `json:"lifting_pieces"       validate:"min=0"`
	LiftingPrice       decimal.Decimal `json:"lifting_price"        validate:"min=0"`
	ReturnMarketPieces int             `json:"return_market_pieces" validate:"min=0"`
	ReturnMarketPrice  decimal.Decimal `json:"return_market_price"  validate:"min=0"`
	ReturnOfficePieces int             `json:"return_office_pieces" validate:"min=0"`
	ReturnOfficePrice  decimal.Decimal `json:"return_office_price"  validate:"min=0"`
	IMSPieces          int             `json:"ims_pieces"           validate:"min=0"`
	IMSValue           decimal.Decimal `json:"ims_value"            validate:"min=0"`
}

// UpdateInventoryRequest patches movement fields on an existing record;
// any change triggers a recompute of the derived totals.
type UpdateInventoryRequest struct {
	OpeningPieces      *int             `json:"opening_pieces"`
	LiftingPieces      *int             `json:"lifting_pieces"`
	LiftingPrice       *decimal.Decimal `json:"lifting_price"`
	ReturnMarketPieces *int             `json:"return_market_pieces"`
	ReturnMarketPrice  *decimal.Decimal `json:"return_market_price"`
	ReturnOfficePieces *int             `json:"return_office_pieces"`
	ReturnOfficePrice  *decimal.Decimal `json:"return_office_price"`
	IMSPieces          *int             `json:"ims_pieces"`
	IMSValue           *decimal.Decimal `json:"ims_value"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type InventoryResponse struct {
	ID                 *string          `json:"id"` // nil for synthesized zero rows
	ProductID          string           `json:"product_id"`
	Date               string           `json:"date"`
	OpeningPieces      int              `json:"opening_pieces"`
	LiftingPieces      int              `json:"lifting_pieces"`
	LiftingPrice       decimal.Decimal  `json:"lifting_price"`
	ReturnMarketPieces int              `json:"return_market_pieces"`
	ReturnMarketPrice  decimal.Decimal  `json:"return_market_price"`
	ReturnOfficePieces int              `json:"return_office_pieces"`
	ReturnOfficePrice  decimal.Decimal  `json:"return_office_price"`
	IMSPieces          int              `json:"ims_pieces"`
	IMSValue           decimal.Decimal  `json:"ims_value"`
	TotalStock         int              `json:"total_stock"`
	PresentStock       int              `json:"present_stock"`
	ClosingValue       decimal.Decimal  `json:"closing_value"`
	Product            *ProductResponse `json:"product,omitempty"`
}

type ProductInventoryResponse struct {
	Product          ProductResponse     `json:"product"`
	CurrentStock     int                 `json:"current_stock"`
	InventoryHistory []InventoryResponse `json:"inventory_history"`
	DateRange        DateRange           `json:"date_range"`
}

type DateRange struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Days      int    `json:"days"`
}

type StockLevel struct {
	ProductID    string          `json:"product_id"`
	ItemName     string          `json:"item_name"`
	Size         *string         `json:"size"`
	Category     string          `json:"category"`
	TradePrice   decimal.Decimal `json:"trade_price"`
	CurrentStock int             `json:"current_stock"`
	CurrentValue decimal.Decimal `json:"current_value"`
	StockStatus  string          `json:"stock_status"` // low | normal
}

type StockLevelsResponse struct {
	Products []StockLevel      `json:"products"`
	Summary  StockLevelSummary `json:"summary"`
}

type StockLevelSummary struct {
	TotalProducts       int             `json:"total_products"`
	TotalInventoryValue decimal.Decimal `json:"total_inventory_value"`
	LowStockItems       int             `json:"low_stock_items"`
}

type LowStockItem struct {
	ProductID    string  `json:"product_id"`
	ItemName     string  `json:"item_name"`
	Size         *string `json:"size"`
	Category     string  `json:"category"`
	CurrentStock int     `json:"current_stock"`
	Threshold    int     `json:"threshold"`
	Urgency      string  `json:"urgency"` // critical | low
}

type LowStockResponse struct {
	LowStockItems []LowStockItem `json:"low_stock_items"`
	Threshold     int            `json:"threshold"`
	Count         int            `json:"count"`
	CriticalItems int            `json:"critical_items"`
}
