package repository

import (
	"context"
	"time"

	"github.com/Zar-ufo/Pentagon/internal/dto"
	"github.com/Zar-ufo/Pentagon/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderScope narrows aggregate queries to one sales person (nil = all).
type OrderScope struct {
	SalesPersonID *uuid.UUID
}

// OrderRepository defines the data access contract for orders.
type OrderRepository interface {
	// Create persists an order with its line items. Callers pass the tx so
	// the whole order commits as a single all-or-nothing unit.
	Create(ctx context.Context, tx *gorm.DB, o *model.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	Update(ctx context.Context, o *model.Order) error
	List(ctx context.Context, scope OrderScope, filter dto.OrderFilter) ([]model.Order, int64, error)

	// Aggregates for the summary endpoints
	CountAll(ctx context.Context, scope OrderScope) (int64, error)
	CountByStatus(ctx context.Context, scope OrderScope, status string) (int64, error)
	CountSince(ctx context.Context, scope OrderScope, since time.Time) (int64, error)
	CountOnDate(ctx context.Context, scope OrderScope, date time.Time) (int64, error)
	CountOnDateByStatus(ctx context.Context, scope OrderScope, date time.Time, status string) (int64, error)
	SumTotalValue(ctx context.Context, scope OrderScope) (decimal.Decimal, error)
	SumDeliveredValueOnDate(ctx context.Context, scope OrderScope, date time.Time) (decimal.Decimal, error)
	StatusBreakdown(ctx context.Context, scope OrderScope) (map[string]int64, error)
	DeliveryAreasOnDate(ctx context.Context, scope OrderScope, date time.Time) ([]string, error)

	// DB exposes the underlying *gorm.DB so the service can open transactions.
	DB() *gorm.DB
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

func (r *orderRepo) DB() *gorm.DB { return r.db }

func (r *orderRepo) Create(ctx context.Context, tx *gorm.DB, o *model.Order) error {
	return tx.WithContext(ctx).Create(o).Error
}

func (r *orderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Preload("Items.Product").
		Preload("SalesPerson").
		First(&o, "id = ?", id).Error
	return &o, err
}

func (r *orderRepo) Update(ctx context.Context, o *model.Order) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *orderRepo) List(ctx context.Context, scope OrderScope, filter dto.OrderFilter) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64

	q := r.scoped(r.db.WithContext(ctx).Model(&model.Order{}), scope)
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items.Product").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&orders).Error
	return orders, total, err
}

func (r *orderRepo) CountAll(ctx context.Context, scope OrderScope) (int64, error) {
	var n int64
	err := r.scoped(r.db.WithContext(ctx).Model(&model.Order{}), scope).Count(&n).Error
	return n, err
}

func (r *orderRepo) CountByStatus(ctx context.Context, scope OrderScope, status string) (int64, error) {
	var n int64
	err := r.scoped(r.db.WithContext(ctx).Model(&model.Order{}), scope).
		Where("status = ?", status).Count(&n).Error
	return n, err
}

func (r *orderRepo) CountSince(ctx context.Context, scope OrderScope, since time.Time) (int64, error) {
	var n int64
	err := r.scoped(r.db.WithContext(ctx).Model(&model.Order{}), scope).
		Where("order_date >= ?", since).Count(&n).Error
	return n, err
}

func (r *orderRepo) CountOnDate(ctx context.Context, scope OrderScope, date time.Time) (int64, error) {
	var n int64
	err := r.scoped(r.db.WithContext(ctx).Model(&model.Order{}), scope).
		Where("DATE(order_date) = ?", date.Format("2006-01-02")).Count(&n).Error
	return n, err
}

func (r *orderRepo) CountOnDateByStatus(ctx context.Context, scope OrderScope, date time.Time, status string) (int64, error) {
	var n int64
	err := r.scoped(r.db.WithContext(ctx).Model(&model.Order{}), scope).
		Where("DATE(order_date) = ? AND status = ?", date.Format("2006-01-02"), status).
		Count(&n).Error
	return n, err
}

func (r *orderRepo) SumTotalValue(ctx context.Context, scope OrderScope) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.scoped(r.db.WithContext(ctx).Model(&model.Order{}), scope).
		Select("SUM(total_value)").Scan(&sum).Error
	if err != nil || !sum.Valid {
		return decimal.Zero, err
	}
	return sum.Decimal, nil
}

func (r *orderRepo) SumDeliveredValueOnDate(ctx context.Context, scope OrderScope, date time.Time) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.scoped(r.db.WithContext(ctx).Model(&model.Order{}), scope).
		Where("DATE(order_date) = ? AND status = ?", date.Format("2006-01-02"), model.OrderDelivered).
		Select("SUM(total_value)").Scan(&sum).Error
	if err != nil || !sum.Valid {
		return decimal.Zero, err
	}
	return sum.Decimal, nil
}

func (r *orderRepo) StatusBreakdown(ctx context.Context, scope OrderScope) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := r.scoped(r.db.WithContext(ctx).Model(&model.Order{}), scope).
		Select("status, COUNT(id) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	breakdown := make(map[string]int64, len(rows))
	for _, rw := range rows {
		breakdown[rw.Status] = rw.Count
	}
	return breakdown, nil
}

func (r *orderRepo) DeliveryAreasOnDate(ctx context.Context, scope OrderScope, date time.Time) ([]string, error) {
	var areas []string
	err := r.scoped(r.db.WithContext(ctx).Model(&model.Order{}), scope).
		Where("DATE(order_date) = ?", date.Format("2006-01-02")).
		Distinct("delivery_area").
		Pluck("delivery_area", &areas).Error
	return areas, err
}

func (r *orderRepo) scoped(q *gorm.DB, scope OrderScope) *gorm.DB {
	if scope.SalesPersonID != nil {
		q = q.Where("sales_person_id = ?", *scope.SalesPersonID)
	}
	return q
}
