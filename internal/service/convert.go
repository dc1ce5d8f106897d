package service

import (
	"time"

	"github.com/Zar-ufo/Pentagon/internal/dto"
	"github.com/Zar-ufo/Pentagon/internal/model"
)

const dateLayout = "2006-01-02"

func fmtDate(t time.Time) string { return t.Format(dateLayout) }

func fmtTime(t time.Time) string { return t.UTC().Format(time.RFC3339) }

func fmtTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := fmtTime(*t)
	return &s
}

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID.String(),
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		Phone:     u.Phone,
		Role:      u.Role,
		Status:    u.Status,
		LastLogin: fmtTimePtr(u.LastLogin),
		CreatedAt: fmtTime(u.CreatedAt),
		UpdatedAt: fmtTime(u.UpdatedAt),
	}
}

func toProductResponse(p *model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:                p.ID.String(),
		ItemName:          p.ItemName,
		Size:              p.Size,
		TradePrice:        p.TradePrice,
		ReturnPriceMarket: p.ReturnPriceMarket,
		ReturnPriceOffice: p.ReturnPriceOffice,
		Category:          p.Category,
		Description:       p.Description,
		Status:            p.Status,
		CreatedAt:         fmtTime(p.CreatedAt),
		UpdatedAt:         fmtTime(p.UpdatedAt),
	}
}

func toInventoryResponse(r *model.InventoryRecord) dto.InventoryResponse {
	id := r.ID.String()
	resp := dto.InventoryResponse{
		ID:                 &id,
		ProductID:          r.ProductID.String(),
		Date:               fmtDate(r.Date),
		OpeningPieces:      r.OpeningPieces,
		LiftingPieces:      r.LiftingPieces,
		LiftingPrice:       r.LiftingPrice,
		ReturnMarketPieces: r.ReturnMarketPieces,
		ReturnMarketPrice:  r.ReturnMarketPrice,
		ReturnOfficePieces: r.ReturnOfficePieces,
		ReturnOfficePrice:  r.ReturnOfficePrice,
		IMSPieces:          r.IMSPieces,
		IMSValue:           r.IMSValue,
		TotalStock:         r.TotalStock,
		PresentStock:       r.PresentStock,
		ClosingValue:       r.ClosingValue,
	}
	if r.Product != nil {
		p := toProductResponse(r.Product)
		resp.Product = &p
	}
	return resp
}

// zeroInventoryResponse synthesizes an empty snapshot for a product that has
// no record on the requested date. ID stays nil so clients can tell the row
// apart from a persisted one.
func zeroInventoryResponse(p *model.Product, date time.Time) dto.InventoryResponse {
	pr := toProductResponse(p)
	return dto.InventoryResponse{
		ProductID: p.ID.String(),
		Date:      fmtDate(date),
		Product:   &pr,
	}
}

func toOrderItemResponse(it *model.OrderItem) dto.OrderItemResponse {
	resp := dto.OrderItemResponse{
		ID:         it.ID.String(),
		ProductID:  it.ProductID.String(),
		Quantity:   it.Quantity,
		UnitPrice:  it.UnitPrice,
		TotalPrice: it.TotalPrice,
	}
	if it.Product != nil {
		p := toProductResponse(it.Product)
		resp.Product = &p
	}
	return resp
}

func toOrderResponse(o *model.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for i := range o.Items {
		items = append(items, toOrderItemResponse(&o.Items[i]))
	}
	resp := dto.OrderResponse{
		ID:              o.ID.String(),
		SalesPersonID:   o.SalesPersonID.String(),
		CustomerName:    o.CustomerName,
		CustomerPhone:   o.CustomerPhone,
		CustomerAddress: o.CustomerAddress,
		DeliveryArea:    o.DeliveryArea,
		Status:          o.Status,
		TotalValue:      o.TotalValue,
		OrderDate:       fmtTime(o.OrderDate),
		DeliveryDate:    fmtTimePtr(o.DeliveryDate),
		Notes:           o.Notes,
		Items:           items,
	}
	if o.SalesPerson != nil {
		resp.SalesPerson = &dto.SalesPersonRef{
			ID:       o.SalesPerson.ID.String(),
			Username: o.SalesPerson.Username,
			FullName: o.SalesPerson.FullName,
		}
	}
	return resp
}
