package service

import (
	"context"
	"errors"

	"github.com/Zar-ufo/Pentagon/internal/apierror"
	"github.com/Zar-ufo/Pentagon/internal/dto"
	"github.com/Zar-ufo/Pentagon/internal/model"
	"github.com/Zar-ufo/Pentagon/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductService manages the catalog.
type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) ([]dto.ProductResponse, error)
	Categories(ctx context.Context) ([]string, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	products repository.ProductRepository
}

func NewProductService(products repository.ProductRepository) ProductService {
	return &productService{products: products}
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if _, err := s.products.FindActiveByName(ctx, req.ItemName); err == nil {
		return nil, apierror.Conflict("a product with this name already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.Internal("checking product name", err)
	}

	p := &model.Product{
		ItemName:          req.ItemName,
		Size:              req.Size,
		TradePrice:        req.TradePrice,
		ReturnPriceMarket: req.ReturnPriceMarket,
		ReturnPriceOffice: req.ReturnPriceOffice,
		Category:          req.Category,
		Description:       req.Description,
		Status:            model.StatusActive,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, apierror.Internal("creating product", err)
	}
	resp := toProductResponse(p)
	return &resp, nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toProductResponse(p)
	return &resp, nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) ([]dto.ProductResponse, error) {
	products, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, apierror.Internal("listing products", err)
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, toProductResponse(&products[i]))
	}
	return out, nil
}

func (s *productService) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.products.Categories(ctx)
	if err != nil {
		return nil, apierror.Internal("listing categories", err)
	}
	return categories, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ItemName != nil && *req.ItemName != p.ItemName {
		if other, err := s.products.FindActiveByName(ctx, *req.ItemName); err == nil && other.ID != p.ID {
			return nil, apierror.Conflict("a product with this name already exists")
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Internal("checking product name", err)
		}
		p.ItemName = *req.ItemName
	}
	if req.Size != nil {
		p.Size = req.Size
	}
	if req.TradePrice != nil {
		p.TradePrice = *req.TradePrice
	}
	if req.ReturnPriceMarket != nil {
		p.ReturnPriceMarket = *req.ReturnPriceMarket
	}
	if req.ReturnPriceOffice != nil {
		p.ReturnPriceOffice = *req.ReturnPriceOffice
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Description != nil {
		p.Description = req.Description
	}

	if err := s.products.Update(ctx, p); err != nil {
		return nil, apierror.Internal("updating product", err)
	}
	resp := toProductResponse(p)
	return &resp, nil
}

// Deactivate removes a product from the catalog without touching its history.
// Order lines and inventory records keep pointing at the row.
func (s *productService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.products.Deactivate(ctx, id); err != nil {
		return apierror.Internal("deactivating product", err)
	}
	return nil
}

func (s *productService) find(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("product not found")
		}
		return nil, apierror.Internal("loading product", err)
	}
	return p, nil
}
