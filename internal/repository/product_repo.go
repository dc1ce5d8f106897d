package repository

import (
	"context"

	"github.com/Zar-ufo/Pentagon/internal/dto"
	"github.com/Zar-ufo/Pentagon/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductRepository defines the data access contract for the catalog.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	// FindActiveByName backs the "unique among active products" rule.
	FindActiveByName(ctx context.Context, itemName string) (*model.Product, error)
	List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, error)
	ListActive(ctx context.Context) ([]model.Product, error)
	Categories(ctx context.Context) ([]string, error)
	Update(ctx context.Context, p *model.Product) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *productRepo) FindActiveByName(ctx context.Context, itemName string) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).
		Where("item_name = ? AND status = ?", itemName, model.StatusActive).
		First(&p).Error
	return &p, err
}

func (r *productRepo) List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, error) {
	var products []model.Product

	q := r.db.WithContext(ctx).Model(&model.Product{})
	if !filter.IncludeInactive {
		q = q.Where("status = ?", model.StatusActive)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		q = q.Where("item_name ILIKE ?", "%"+filter.Search+"%")
	}

	err := q.Order("item_name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) ListActive(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("status = ?", model.StatusActive).
		Order("item_name ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("status = ? AND category <> ''", model.StatusActive).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error
	return categories, err
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", id).
		Update("status", model.StatusInactive).Error
}
