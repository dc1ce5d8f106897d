package service

import (
	"context"
	"errors"
	"time"

	"github.com/Zar-ufo/Pentagon/internal/apierror"
	"github.com/Zar-ufo/Pentagon/internal/dto"
	"github.com/Zar-ufo/Pentagon/internal/infra"
	"github.com/Zar-ufo/Pentagon/internal/model"
	"github.com/Zar-ufo/Pentagon/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StockReader is the slice of InventoryService the order flow needs.
type StockReader interface {
	CurrentStock(ctx context.Context, productID uuid.UUID) (int, error)
}

// OrderService handles order intake and fulfilment tracking.
type OrderService interface {
	Create(ctx context.Context, salesPersonID uuid.UUID, req dto.CreateOrderRequest) (*dto.OrderResponse, error)
	Get(ctx context.Context, actor Actor, id uuid.UUID) (*dto.OrderResponse, error)
	List(ctx context.Context, actor Actor, filter dto.OrderFilter) ([]dto.OrderResponse, *dto.Pagination, error)
	UpdateStatus(ctx context.Context, actor Actor, id uuid.UUID, req dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error)
	Summary(ctx context.Context, actor Actor) (*dto.OrderSummaryResponse, error)
	DailySummary(ctx context.Context, actor Actor, dateStr string) (*dto.DailySummaryResponse, error)
}

type orderService struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	stock    StockReader
}

func NewOrderService(orders repository.OrderRepository, products repository.ProductRepository, stock StockReader) OrderService {
	return &orderService{orders: orders, products: products, stock: stock}
}

// Create validates every line against the catalog and current stock, then
// persists header and items as one transaction. Stock itself is untouched:
// the check is a gate at intake time, inventory moves only via snapshots.
// A concurrent order can pass the same gate; the window is accepted for this
// deployment size and the daily snapshot reconciles it.
func (s *orderService) Create(ctx context.Context, salesPersonID uuid.UUID, req dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	order := &model.Order{
		SalesPersonID:   salesPersonID,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		DeliveryArea:    req.DeliveryArea,
		Status:          model.OrderPending,
		OrderDate:       time.Now(),
		Notes:           req.Notes,
	}

	total := decimal.Zero
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, apierror.Validation("invalid product id")
		}
		p, err := s.products.FindByID(ctx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apierror.NotFound("product %s not found", item.ProductID)
			}
			return nil, apierror.Internal("loading product", err)
		}
		if !p.Active() {
			infra.OrdersRejected.WithLabelValues("inactive_product").Inc()
			return nil, apierror.Validation("product %s is not available", p.ItemName)
		}

		available, err := s.stock.CurrentStock(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		if available < item.Quantity {
			infra.OrdersRejected.WithLabelValues("insufficient_stock").Inc()
			return nil, apierror.Validation("insufficient stock for %s: available %d, requested %d",
				p.ItemName, available, item.Quantity)
		}

		lineTotal := p.TradePrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		order.Items = append(order.Items, model.OrderItem{
			ProductID:  p.ID,
			Quantity:   item.Quantity,
			UnitPrice:  p.TradePrice,
			TotalPrice: lineTotal,
			Product:    p,
		})
		total = total.Add(lineTotal)
	}
	order.TotalValue = total

	err := runTx(ctx, s.orders.DB(), func(tx *gorm.DB) error {
		return s.orders.Create(ctx, tx, order)
	})
	if err != nil {
		return nil, apierror.Internal("creating order", err)
	}
	infra.OrdersCreated.Inc()

	resp := toOrderResponse(order)
	return &resp, nil
}

func (s *orderService) Get(ctx context.Context, actor Actor, id uuid.UUID) (*dto.OrderResponse, error) {
	order, err := s.findOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	resp := toOrderResponse(order)
	return &resp, nil
}

func (s *orderService) List(ctx context.Context, actor Actor, filter dto.OrderFilter) ([]dto.OrderResponse, *dto.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	orders, total, err := s.orders.List(ctx, s.scope(actor), filter)
	if err != nil {
		return nil, nil, apierror.Internal("listing orders", err)
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderResponse(&orders[i]))
	}
	pages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return out, &dto.Pagination{
		Page:  filter.Page,
		Limit: filter.Limit,
		Total: total,
		Pages: pages,
	}, nil
}

// UpdateStatus moves an order to any of the five statuses. The first
// transition into delivered stamps the delivery timestamp; later transitions
// never clear or overwrite it.
func (s *orderService) UpdateStatus(ctx context.Context, actor Actor, id uuid.UUID, req dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	if !model.ValidOrderStatus(req.Status) {
		return nil, apierror.Validation("unknown order status %q", req.Status)
	}
	order, err := s.findOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Status == model.OrderDelivered && order.DeliveryDate == nil {
		now := time.Now()
		order.DeliveryDate = &now
	}
	order.Status = req.Status

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, apierror.Internal("updating order", err)
	}
	resp := toOrderResponse(order)
	return &resp, nil
}

func (s *orderService) Summary(ctx context.Context, actor Actor) (*dto.OrderSummaryResponse, error) {
	scope := s.scope(actor)
	resp := &dto.OrderSummaryResponse{}
	var err error

	if resp.TotalOrders, err = s.orders.CountAll(ctx, scope); err != nil {
		return nil, apierror.Internal("counting orders", err)
	}
	if resp.TotalValue, err = s.orders.SumTotalValue(ctx, scope); err != nil {
		return nil, apierror.Internal("summing order value", err)
	}
	now := time.Now()
	if resp.TodayOrders, err = s.orders.CountOnDate(ctx, scope, now); err != nil {
		return nil, apierror.Internal("counting today's orders", err)
	}
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if resp.MonthOrders, err = s.orders.CountSince(ctx, scope, monthStart); err != nil {
		return nil, apierror.Internal("counting this month's orders", err)
	}
	if resp.StatusBreakdown, err = s.orders.StatusBreakdown(ctx, scope); err != nil {
		return nil, apierror.Internal("loading status breakdown", err)
	}
	return resp, nil
}

func (s *orderService) DailySummary(ctx context.Context, actor Actor, dateStr string) (*dto.DailySummaryResponse, error) {
	date := today()
	if dateStr != "" {
		var err error
		date, err = time.Parse(dateLayout, dateStr)
		if err != nil {
			return nil, apierror.Validation("invalid date, expected YYYY-MM-DD")
		}
	}

	scope := s.scope(actor)
	resp := &dto.DailySummaryResponse{Date: fmtDate(date)}
	var err error

	if resp.TotalOrders, err = s.orders.CountOnDate(ctx, scope, date); err != nil {
		return nil, apierror.Internal("counting orders", err)
	}
	if resp.SalesValue, err = s.orders.SumDeliveredValueOnDate(ctx, scope, date); err != nil {
		return nil, apierror.Internal("summing sales value", err)
	}
	if resp.PendingOrders, err = s.orders.CountOnDateByStatus(ctx, scope, date, model.OrderPending); err != nil {
		return nil, apierror.Internal("counting pending orders", err)
	}
	if resp.DeliveredOrders, err = s.orders.CountOnDateByStatus(ctx, scope, date, model.OrderDelivered); err != nil {
		return nil, apierror.Internal("counting delivered orders", err)
	}
	if resp.CancelledOrders, err = s.orders.CountOnDateByStatus(ctx, scope, date, model.OrderCancelled); err != nil {
		return nil, apierror.Internal("counting cancelled orders", err)
	}
	if resp.DueOrders, err = s.orders.CountOnDateByStatus(ctx, scope, date, model.OrderDue); err != nil {
		return nil, apierror.Internal("counting due orders", err)
	}
	if resp.DeliveryAreas, err = s.orders.DeliveryAreasOnDate(ctx, scope, date); err != nil {
		return nil, apierror.Internal("listing delivery areas", err)
	}
	return resp, nil
}

func (s *orderService) scope(actor Actor) repository.OrderScope {
	if actor.Admin() {
		return repository.OrderScope{}
	}
	id := actor.ID
	return repository.OrderScope{SalesPersonID: &id}
}

func (s *orderService) findOwned(ctx context.Context, actor Actor, id uuid.UUID) (*model.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("order not found")
		}
		return nil, apierror.Internal("loading order", err)
	}
	if !actor.Admin() && order.SalesPersonID != actor.ID {
		return nil, apierror.Permission("you can only access your own orders")
	}
	return order, nil
}
