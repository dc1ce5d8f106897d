package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/Zar-ufo/Pentagon/internal/dto"
	"github.com/Zar-ufo/Pentagon/internal/model"
	"github.com/Zar-ufo/Pentagon/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── User repo stub ────────────────────────────────────────────────────────────

type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) add(u *model.User) *model.User {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Status == "" {
		u.Status = model.StatusActive
	}
	r.users[u.ID] = u
	return u
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	r.add(u)
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByUsernameOrEmail(_ context.Context, v string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == v || strings.EqualFold(u.Email, v) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) ListActiveByRole(_ context.Context, role string) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		if u.Role == role && u.Status == model.StatusActive {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Status = model.StatusInactive
	return nil
}

func (r *stubUserRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *stubUserRepo) CountByRole(_ context.Context, role string) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (r *stubUserRepo) CountByStatus(_ context.Context, status string) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *stubUserRepo) CountCreatedSince(_ context.Context, since time.Time) (int64, error) {
	var n int64
	for _, u := range r.users {
		if !u.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

// ── Product repo stub ─────────────────────────────────────────────────────────

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) add(p *model.Product) *model.Product {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = model.StatusActive
	}
	r.products[p.ID] = p
	return p
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	r.add(p)
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) FindActiveByName(_ context.Context, name string) (*model.Product, error) {
	for _, p := range r.products {
		if p.ItemName == name && p.Status == model.StatusActive {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) List(_ context.Context, filter dto.ProductFilter) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if !filter.IncludeInactive && p.Status != model.StatusActive {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(p.ItemName), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemName < out[j].ItemName })
	return out, nil
}

func (r *stubProductRepo) ListActive(_ context.Context) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.Status == model.StatusActive {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemName < out[j].ItemName })
	return out, nil
}

func (r *stubProductRepo) Categories(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, p := range r.products {
		if p.Status == model.StatusActive && p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Status = model.StatusInactive
	return nil
}

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// ── Inventory repo stub ───────────────────────────────────────────────────────

type stubInventoryRepo struct {
	records []*model.InventoryRecord
}

func newStubInventoryRepo() *stubInventoryRepo { return &stubInventoryRepo{} }

func (r *stubInventoryRepo) Create(_ context.Context, rec *model.InventoryRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	r.records = append(r.records, rec)
	return nil
}

func (r *stubInventoryRepo) FindByID(_ context.Context, id uuid.UUID) (*model.InventoryRecord, error) {
	for _, rec := range r.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubInventoryRepo) FindByProductAndDate(_ context.Context, productID uuid.UUID, date time.Time) (*model.InventoryRecord, error) {
	for _, rec := range r.records {
		if rec.ProductID == productID && rec.Date.Equal(date) {
			return rec, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubInventoryRepo) Update(_ context.Context, rec *model.InventoryRecord) error {
	for i, existing := range r.records {
		if existing.ID == rec.ID {
			r.records[i] = rec
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubInventoryRepo) LatestByProduct(_ context.Context, productID uuid.UUID) (*model.InventoryRecord, error) {
	var latest *model.InventoryRecord
	for _, rec := range r.records {
		if rec.ProductID != productID {
			continue
		}
		if latest == nil || rec.Date.After(latest.Date) {
			latest = rec
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return latest, nil
}

func (r *stubInventoryRepo) ListByDate(_ context.Context, date time.Time) ([]model.InventoryRecord, error) {
	var out []model.InventoryRecord
	for _, rec := range r.records {
		if rec.Date.Equal(date) {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (r *stubInventoryRepo) ListLatestPerProduct(_ context.Context) ([]model.InventoryRecord, error) {
	latest := make(map[uuid.UUID]*model.InventoryRecord)
	for _, rec := range r.records {
		if cur, ok := latest[rec.ProductID]; !ok || rec.Date.After(cur.Date) {
			latest[rec.ProductID] = rec
		}
	}
	out := make([]model.InventoryRecord, 0, len(latest))
	for _, rec := range latest {
		out = append(out, *rec)
	}
	return out, nil
}

func (r *stubInventoryRepo) ListByProductBetween(_ context.Context, productID uuid.UUID, start, end time.Time) ([]model.InventoryRecord, error) {
	var out []model.InventoryRecord
	for _, rec := range r.records {
		if rec.ProductID == productID && !rec.Date.Before(start) && !rec.Date.After(end) {
			out = append(out, *rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

var _ repository.InventoryRepository = (*stubInventoryRepo)(nil)

// ── Order repo stub ───────────────────────────────────────────────────────────

type stubOrderRepo struct {
	orders map[uuid.UUID]*model.Order
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[uuid.UUID]*model.Order)}
}

func (r *stubOrderRepo) DB() *gorm.DB { return nil }

func (r *stubOrderRepo) Create(_ context.Context, _ *gorm.DB, o *model.Order) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	for i := range o.Items {
		if o.Items[i].ID == uuid.Nil {
			o.Items[i].ID = uuid.New()
		}
		o.Items[i].OrderID = o.ID
	}
	r.orders[o.ID] = o
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (r *stubOrderRepo) Update(_ context.Context, o *model.Order) error {
	r.orders[o.ID] = o
	return nil
}

func (r *stubOrderRepo) List(_ context.Context, scope repository.OrderScope, filter dto.OrderFilter) ([]model.Order, int64, error) {
	var out []model.Order
	for _, o := range r.orders {
		if !r.inScope(o, scope) {
			continue
		}
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, int64(len(out)), nil
}

func (r *stubOrderRepo) CountAll(_ context.Context, scope repository.OrderScope) (int64, error) {
	return r.count(scope, func(*model.Order) bool { return true }), nil
}

func (r *stubOrderRepo) CountByStatus(_ context.Context, scope repository.OrderScope, status string) (int64, error) {
	return r.count(scope, func(o *model.Order) bool { return o.Status == status }), nil
}

func (r *stubOrderRepo) CountSince(_ context.Context, scope repository.OrderScope, since time.Time) (int64, error) {
	return r.count(scope, func(o *model.Order) bool { return !o.OrderDate.Before(since) }), nil
}

func (r *stubOrderRepo) CountOnDate(_ context.Context, scope repository.OrderScope, date time.Time) (int64, error) {
	return r.count(scope, func(o *model.Order) bool { return sameDay(o.OrderDate, date) }), nil
}

func (r *stubOrderRepo) CountOnDateByStatus(_ context.Context, scope repository.OrderScope, date time.Time, status string) (int64, error) {
	return r.count(scope, func(o *model.Order) bool {
		return sameDay(o.OrderDate, date) && o.Status == status
	}), nil
}

func (r *stubOrderRepo) SumTotalValue(_ context.Context, scope repository.OrderScope) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, o := range r.orders {
		if r.inScope(o, scope) {
			sum = sum.Add(o.TotalValue)
		}
	}
	return sum, nil
}

func (r *stubOrderRepo) SumDeliveredValueOnDate(_ context.Context, scope repository.OrderScope, date time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, o := range r.orders {
		if r.inScope(o, scope) && sameDay(o.OrderDate, date) && o.Status == model.OrderDelivered {
			sum = sum.Add(o.TotalValue)
		}
	}
	return sum, nil
}

func (r *stubOrderRepo) StatusBreakdown(_ context.Context, scope repository.OrderScope) (map[string]int64, error) {
	out := make(map[string]int64)
	for _, o := range r.orders {
		if r.inScope(o, scope) {
			out[o.Status]++
		}
	}
	return out, nil
}

func (r *stubOrderRepo) DeliveryAreasOnDate(_ context.Context, scope repository.OrderScope, date time.Time) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, o := range r.orders {
		if r.inScope(o, scope) && sameDay(o.OrderDate, date) && !seen[o.DeliveryArea] {
			seen[o.DeliveryArea] = true
			out = append(out, o.DeliveryArea)
		}
	}
	return out, nil
}

func (r *stubOrderRepo) inScope(o *model.Order, scope repository.OrderScope) bool {
	return scope.SalesPersonID == nil || o.SalesPersonID == *scope.SalesPersonID
}

func (r *stubOrderRepo) count(scope repository.OrderScope, match func(*model.Order) bool) int64 {
	var n int64
	for _, o := range r.orders {
		if r.inScope(o, scope) && match(o) {
			n++
		}
	}
	return n
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

var _ repository.OrderRepository = (*stubOrderRepo)(nil)

// ── Misc stubs ────────────────────────────────────────────────────────────────

type stubDenylist struct {
	revoked map[string]time.Duration
}

func newStubDenylist() *stubDenylist {
	return &stubDenylist{revoked: make(map[string]time.Duration)}
}

func (d *stubDenylist) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	d.revoked[jti] = ttl
	return nil
}

var _ TokenDenylist = (*stubDenylist)(nil)

// stubStockReader serves fixed stock figures to the order service.
type stubStockReader struct {
	stock map[uuid.UUID]int
}

func (s *stubStockReader) CurrentStock(_ context.Context, productID uuid.UUID) (int, error) {
	return s.stock[productID], nil
}

var _ StockReader = (*stubStockReader)(nil)
