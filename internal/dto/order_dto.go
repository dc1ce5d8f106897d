package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// OrderFilter is bound from the query string of GET /api/orders.
type OrderFilter struct {
	Status string `form:"status" validate:"omitempty,oneof=pending processing delivered cancelled due"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=20" validate:"min=1,max=200"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type OrderItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"   validate:"required,min=1"`
}

type CreateOrderRequest struct {
	CustomerName    string             `json:"customer_name"    validate:"required,min=1,max=200"`
	CustomerPhone   *string            `json:"customer_phone"`
	CustomerAddress *string            `json:"customer_address"`
	DeliveryArea    string             `json:"delivery_area"    validate:"required,min=1,max=100"`
	Notes           *string            `json:"notes"`
	Items           []OrderItemRequest `json:"items"            validate:"required,min=1,dive"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending processing delivered cancelled due"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type OrderItemResponse struct {
	ID         string           `json:"id"`
	ProductID  string           `json:"product_id"`
	Quantity   int              `json:"quantity"`
	UnitPrice  decimal.Decimal  `json:"unit_price"`
	TotalPrice decimal.Decimal  `json:"total_price"`
	Product    *ProductResponse `json:"product,omitempty"`
}

type SalesPersonRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

type OrderResponse struct {
	ID              string              `json:"id"`
	SalesPersonID   string              `json:"sales_person_id"`
	CustomerName    string              `json:"customer_name"`
	CustomerPhone   *string             `json:"customer_phone"`
	CustomerAddress *string             `json:"customer_address"`
	DeliveryArea    string              `json:"delivery_area"`
	Status          string              `json:"status"`
	TotalValue      decimal.Decimal     `json:"total_value"`
	OrderDate       string              `json:"order_date"`
	DeliveryDate    *string             `json:"delivery_date"`
	Notes           *string             `json:"notes"`
	Items           []OrderItemResponse `json:"items"`
	SalesPerson     *SalesPersonRef     `json:"sales_person,omitempty"`
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

type OrderSummaryResponse struct {
	TotalOrders     int64            `json:"total_orders"`
	TotalValue      decimal.Decimal  `json:"total_value"`
	TodayOrders     int64            `json:"today_orders"`
	MonthOrders     int64            `json:"month_orders"`
	StatusBreakdown map[string]int64 `json:"status_breakdown"`
}

type DailySummaryResponse struct {
	Date            string          `json:"date"`
	TotalOrders     int64           `json:"total_orders"`
	SalesValue      decimal.Decimal `json:"sales_value"`
	PendingOrders   int64           `json:"pending_orders"`
	DeliveredOrders int64           `json:"delivered_orders"`
	CancelledOrders int64           `json:"cancelled_orders"`
	DueOrders       int64           `json:"due_orders"`
	DeliveryAreas   []string        `json:"delivery_areas"`
}
