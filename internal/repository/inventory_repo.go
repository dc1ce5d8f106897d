package repository

import (
	"context"
	"time"

	"github.com/Zar-ufo/Pentagon/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryRepository defines the data access contract for daily snapshots.
type InventoryRepository interface {
	Create(ctx context.Context, rec *model.InventoryRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.InventoryRecord, error)
	FindByProductAndDate(ctx context.Context, productID uuid.UUID, date time.Time) (*model.InventoryRecord, error)
	Update(ctx context.Context, rec *model.InventoryRecord) error

	// LatestByProduct returns the record with the maximum date for a product.
	// This is the single source of truth behind "current stock".
	LatestByProduct(ctx context.Context, productID uuid.UUID) (*model.InventoryRecord, error)

	// ListByDate returns the records for one date, active products only.
	ListByDate(ctx context.Context, date time.Time) ([]model.InventoryRecord, error)

	// ListLatestPerProduct returns, for each active product that has any
	// record at all, its most recent record.
	ListLatestPerProduct(ctx context.Context) ([]model.InventoryRecord, error)

	ListByProductBetween(ctx context.Context, productID uuid.UUID, start, end time.Time) ([]model.InventoryRecord, error)
}

type inventoryRepo struct{ db *gorm.DB }

func NewInventoryRepository(db *gorm.DB) InventoryRepository { return &inventoryRepo{db: db} }

func (r *inventoryRepo) Create(ctx context.Context, rec *model.InventoryRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *inventoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.InventoryRecord, error) {
	var rec model.InventoryRecord
	err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	return &rec, err
}

func (r *inventoryRepo) FindByProductAndDate(ctx context.Context, productID uuid.UUID, date time.Time) (*model.InventoryRecord, error) {
	var rec model.InventoryRecord
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND date = ?", productID, date).
		First(&rec).Error
	return &rec, err
}

func (r *inventoryRepo) Update(ctx context.Context, rec *model.InventoryRecord) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *inventoryRepo) LatestByProduct(ctx context.Context, productID uuid.UUID) (*model.InventoryRecord, error) {
	var rec model.InventoryRecord
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("date DESC").
		First(&rec).Error
	return &rec, err
}

func (r *inventoryRepo) ListByDate(ctx context.Context, date time.Time) ([]model.InventoryRecord, error) {
	var recs []model.InventoryRecord
	err := r.db.WithContext(ctx).
		Joins("JOIN products ON products.id = inventory_records.product_id AND products.status = ?", model.StatusActive).
		Where("inventory_records.date = ?", date).
		Preload("Product").
		Find(&recs).Error
	return recs, err
}

func (r *inventoryRepo) ListLatestPerProduct(ctx context.Context) ([]model.InventoryRecord, error) {
	var recs []model.InventoryRecord
	// Latest row per product via a (product_id, MAX(date)) subquery join.
	sub := r.db.Model(&model.InventoryRecord{}).
		Select("product_id, MAX(date) AS latest_date").
		Group("product_id")
	err := r.db.WithContext(ctx).
		Joins("JOIN (?) latest ON latest.product_id = inventory_records.product_id AND latest.latest_date = inventory_records.date", sub).
		Joins("JOIN products ON products.id = inventory_records.product_id AND products.status = ?", model.StatusActive).
		Preload("Product").
		Find(&recs).Error
	return recs, err
}

func (r *inventoryRepo) ListByProductBetween(ctx context.Context, productID uuid.UUID, start, end time.Time) ([]model.InventoryRecord, error) {
	var recs []model.InventoryRecord
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND date >= ? AND date <= ?", productID, start, end).
		Order("date DESC").
		Find(&recs).Error
	return recs, err
}
