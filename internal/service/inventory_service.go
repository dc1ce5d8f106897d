package service

import (
	"context"
	"errors"
	"sort"
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

// DefaultLowStockThreshold marks a product as low when its current stock is
// at or below this count.
const DefaultLowStockThreshold = 10

// DefaultHistoryDays is the lookback window for per-product history.
const DefaultHistoryDays = 30

// InventoryService manages daily stock snapshots and the derived stock views.
type InventoryService interface {
	Create(ctx context.Context, req dto.CreateInventoryRequest) (*dto.InventoryResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateInventoryRequest) (*dto.InventoryResponse, error)
	// List returns one row per active product for the given date (today when
	// empty); products without a persisted record get a synthesized zero row.
	List(ctx context.Context, dateStr string) ([]dto.InventoryResponse, string, error)
	ProductHistory(ctx context.Context, productID uuid.UUID, days int) (*dto.ProductInventoryResponse, error)
	StockLevels(ctx context.Context) (*dto.StockLevelsResponse, error)
	LowStock(ctx context.Context, threshold int) (*dto.LowStockResponse, error)
	// CurrentStock is the present stock of the latest snapshot, 0 when the
	// product has no snapshot at all.
	CurrentStock(ctx context.Context, productID uuid.UUID) (int, error)
}

type inventoryService struct {
	inventory repository.InventoryRepository
	products  repository.ProductRepository
}

func NewInventoryService(inventory repository.InventoryRepository, products repository.ProductRepository) InventoryService {
	return &inventoryService{inventory: inventory, products: products}
}

func (s *inventoryService) Create(ctx context.Context, req dto.CreateInventoryRequest) (*dto.InventoryResponse, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, apierror.Validation("invalid product id")
	}
	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("product not found")
		}
		return nil, apierror.Internal("loading product", err)
	}

	date := today()
	if req.Date != "" {
		date, err = time.Parse(dateLayout, req.Date)
		if err != nil {
			return nil, apierror.Validation("invalid date, expected YYYY-MM-DD")
		}
	}

	if _, err := s.inventory.FindByProductAndDate(ctx, productID, date); err == nil {
		return nil, apierror.Conflict("inventory record already exists for this product and date")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.Internal("checking existing record", err)
	}

	rec := &model.InventoryRecord{
		ProductID:          productID,
		Date:               date,
		OpeningPieces:      req.OpeningPieces,
		LiftingPieces:      req.LiftingPieces,
		LiftingPrice:       req.LiftingPrice,
		ReturnMarketPieces: req.ReturnMarketPieces,
		ReturnMarketPrice:  req.ReturnMarketPrice,
		ReturnOfficePieces: req.ReturnOfficePieces,
		ReturnOfficePrice:  req.ReturnOfficePrice,
		IMSPieces:          req.IMSPieces,
		IMSValue:           req.IMSValue,
	}
	rec.RecomputeTotals()
	if err := s.inventory.Create(ctx, rec); err != nil {
		return nil, apierror.Internal("creating inventory record", err)
	}
	infra.InventoryRecordsWritten.Inc()

	rec.Product = p
	resp := toInventoryResponse(rec)
	return &resp, nil
}

func (s *inventoryService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateInventoryRequest) (*dto.InventoryResponse, error) {
	rec, err := s.inventory.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("inventory record not found")
		}
		return nil, apierror.Internal("loading inventory record", err)
	}

	if req.OpeningPieces != nil {
		rec.OpeningPieces = *req.OpeningPieces
	}
	if req.LiftingPieces != nil {
		rec.LiftingPieces = *req.LiftingPieces
	}
	if req.LiftingPrice != nil {
		rec.LiftingPrice = *req.LiftingPrice
	}
	if req.ReturnMarketPieces != nil {
		rec.ReturnMarketPieces = *req.ReturnMarketPieces
	}
	if req.ReturnMarketPrice != nil {
		rec.ReturnMarketPrice = *req.ReturnMarketPrice
	}
	if req.ReturnOfficePieces != nil {
		rec.ReturnOfficePieces = *req.ReturnOfficePieces
	}
	if req.ReturnOfficePrice != nil {
		rec.ReturnOfficePrice = *req.ReturnOfficePrice
	}
	if req.IMSPieces != nil {
		rec.IMSPieces = *req.IMSPieces
	}
	if req.IMSValue != nil {
		rec.IMSValue = *req.IMSValue
	}
	rec.RecomputeTotals()

	if err := s.inventory.Update(ctx, rec); err != nil {
		return nil, apierror.Internal("updating inventory record", err)
	}
	infra.InventoryRecordsWritten.Inc()

	resp := toInventoryResponse(rec)
	return &resp, nil
}

func (s *inventoryService) List(ctx context.Context, dateStr string) ([]dto.InventoryResponse, string, error) {
	date := today()
	if dateStr != "" {
		var err error
		date, err = time.Parse(dateLayout, dateStr)
		if err != nil {
			return nil, "", apierror.Validation("invalid date, expected YYYY-MM-DD")
		}
	}

	recs, err := s.inventory.ListByDate(ctx, date)
	if err != nil {
		return nil, "", apierror.Internal("listing inventory", err)
	}
	byProduct := make(map[uuid.UUID]*model.InventoryRecord, len(recs))
	for i := range recs {
		byProduct[recs[i].ProductID] = &recs[i]
	}

	// Products without a record on the requested date fall back to their most
	// recent snapshot, shown under its own date.
	latest, err := s.inventory.ListLatestPerProduct(ctx)
	if err != nil {
		return nil, "", apierror.Internal("loading latest snapshots", err)
	}
	latestByProduct := make(map[uuid.UUID]*model.InventoryRecord, len(latest))
	for i := range latest {
		latestByProduct[latest[i].ProductID] = &latest[i]
	}

	products, err := s.products.ListActive(ctx)
	if err != nil {
		return nil, "", apierror.Internal("listing products", err)
	}

	out := make([]dto.InventoryResponse, 0, len(products))
	for i := range products {
		if rec, ok := byProduct[products[i].ID]; ok {
			out = append(out, toInventoryResponse(rec))
			continue
		}
		if rec, ok := latestByProduct[products[i].ID]; ok {
			out = append(out, toInventoryResponse(rec))
			continue
		}
		out = append(out, zeroInventoryResponse(&products[i], date))
	}
	return out, fmtDate(date), nil
}

func (s *inventoryService) ProductHistory(ctx context.Context, productID uuid.UUID, days int) (*dto.ProductInventoryResponse, error) {
	if days <= 0 {
		days = DefaultHistoryDays
	}
	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("product not found")
		}
		return nil, apierror.Internal("loading product", err)
	}

	end := today()
	start := end.AddDate(0, 0, -(days - 1))
	recs, err := s.inventory.ListByProductBetween(ctx, productID, start, end)
	if err != nil {
		return nil, apierror.Internal("loading inventory history", err)
	}
	history := make([]dto.InventoryResponse, 0, len(recs))
	for i := range recs {
		history = append(history, toInventoryResponse(&recs[i]))
	}

	current, err := s.CurrentStock(ctx, productID)
	if err != nil {
		return nil, err
	}

	return &dto.ProductInventoryResponse{
		Product:          toProductResponse(p),
		CurrentStock:     current,
		InventoryHistory: history,
		DateRange: dto.DateRange{
			StartDate: fmtDate(start),
			EndDate:   fmtDate(end),
			Days:      days,
		},
	}, nil
}

func (s *inventoryService) StockLevels(ctx context.Context) (*dto.StockLevelsResponse, error) {
	latest, err := s.inventory.ListLatestPerProduct(ctx)
	if err != nil {
		return nil, apierror.Internal("loading stock levels", err)
	}
	stockByProduct := make(map[uuid.UUID]int, len(latest))
	for i := range latest {
		stockByProduct[latest[i].ProductID] = latest[i].PresentStock
	}

	products, err := s.products.ListActive(ctx)
	if err != nil {
		return nil, apierror.Internal("listing products", err)
	}

	resp := &dto.StockLevelsResponse{Products: make([]dto.StockLevel, 0, len(products))}
	totalValue := decimal.Zero
	for i := range products {
		p := &products[i]
		stock := stockByProduct[p.ID]
		value := p.TradePrice.Mul(decimal.NewFromInt(int64(stock)))
		status := "normal"
		if stock <= DefaultLowStockThreshold {
			status = "low"
			resp.Summary.LowStockItems++
		}
		resp.Products = append(resp.Products, dto.StockLevel{
			ProductID:    p.ID.String(),
			ItemName:     p.ItemName,
			Size:         p.Size,
			Category:     p.Category,
			TradePrice:   p.TradePrice,
			CurrentStock: stock,
			CurrentValue: value,
			StockStatus:  status,
		})
		totalValue = totalValue.Add(value)
	}
	resp.Summary.TotalProducts = len(resp.Products)
	resp.Summary.TotalInventoryValue = totalValue
	return resp, nil
}

func (s *inventoryService) LowStock(ctx context.Context, threshold int) (*dto.LowStockResponse, error) {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	levels, err := s.StockLevels(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.LowStockResponse{Threshold: threshold, LowStockItems: []dto.LowStockItem{}}
	for _, lvl := range levels.Products {
		if lvl.CurrentStock > threshold {
			continue
		}
		urgency := "low"
		if lvl.CurrentStock <= 0 {
			urgency = "critical"
			resp.CriticalItems++
		}
		resp.LowStockItems = append(resp.LowStockItems, dto.LowStockItem{
			ProductID:    lvl.ProductID,
			ItemName:     lvl.ItemName,
			Size:         lvl.Size,
			Category:     lvl.Category,
			CurrentStock: lvl.CurrentStock,
			Threshold:    threshold,
			Urgency:      urgency,
		})
	}
	sort.Slice(resp.LowStockItems, func(i, j int) bool {
		return resp.LowStockItems[i].CurrentStock < resp.LowStockItems[j].CurrentStock
	})
	resp.Count = len(resp.LowStockItems)
	return resp, nil
}

func (s *inventoryService) CurrentStock(ctx context.Context, productID uuid.UUID) (int, error) {
	rec, err := s.inventory.LatestByProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, apierror.Internal("loading latest inventory", err)
	}
	return rec.PresentStock, nil
}

// today truncates now to a bare date so comparisons against the DATE column
// behave across time zones.
func today() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
