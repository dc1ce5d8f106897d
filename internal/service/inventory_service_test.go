package service

import (
	"context"
	"testing"
	"time"

	"github.com/Zar-ufo/Pentagon/internal/apierror"
	"github.com/Zar-ufo/Pentagon/internal/dto"
	"github.com/Zar-ufo/Pentagon/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(dateLayout, s)
	require.NoError(t, err)
	return d
}

func newInventoryFixture() (*stubInventoryRepo, *stubProductRepo, InventoryService) {
	inventory := newStubInventoryRepo()
	products := newStubProductRepo()
	return inventory, products, NewInventoryService(inventory, products)
}

func TestInventoryCreateComputesTotals(t *testing.T) {
	inventory, products, svc := newInventoryFixture()
	p := products.add(&model.Product{ItemName: "Premium Biscuit", TradePrice: decimal.NewFromInt(140)})

	resp, err := svc.Create(context.Background(), dto.CreateInventoryRequest{
		ProductID:          p.ID.String(),
		Date:               "2024-07-18",
		OpeningPieces:      20,
		LiftingPieces:      5,
		ReturnMarketPieces: 2,
		ReturnOfficePieces: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, 18, resp.TotalStock)
	assert.Equal(t, 18, resp.PresentStock)
	assert.True(t, resp.ClosingValue.Equal(decimal.NewFromInt(18*140)))
	assert.Equal(t, "2024-07-18", resp.Date)
	require.Len(t, inventory.records, 1)
}

func TestInventoryCreateDuplicateDate(t *testing.T) {
	_, products, svc := newInventoryFixture()
	p := products.add(&model.Product{ItemName: "Premium Biscuit"})

	req := dto.CreateInventoryRequest{ProductID: p.ID.String(), Date: "2024-07-18", OpeningPieces: 5}
	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, apierror.KindConflict, apierror.From(err).Kind)
}

func TestInventoryCreateUnknownProduct(t *testing.T) {
	_, _, svc := newInventoryFixture()

	_, err := svc.Create(context.Background(), dto.CreateInventoryRequest{
		ProductID: uuid.NewString(),
		Date:      "2024-07-18",
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindNotFound, apierror.From(err).Kind)
}

func TestInventoryCreateBadDate(t *testing.T) {
	_, products, svc := newInventoryFixture()
	p := products.add(&model.Product{ItemName: "Premium Biscuit"})

	_, err := svc.Create(context.Background(), dto.CreateInventoryRequest{
		ProductID: p.ID.String(),
		Date:      "18-07-2024",
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindValidation, apierror.From(err).Kind)
}

func TestInventoryUpdateRecomputes(t *testing.T) {
	inventory, products, svc := newInventoryFixture()
	p := products.add(&model.Product{ItemName: "Premium Biscuit"})
	rec := &model.InventoryRecord{ProductID: p.ID, Date: mustDate(t, "2024-07-18"), OpeningPieces: 20}
	rec.RecomputeTotals()
	require.NoError(t, inventory.Create(context.Background(), rec))

	lifting := 8
	resp, err := svc.Update(context.Background(), rec.ID, dto.UpdateInventoryRequest{LiftingPieces: &lifting})
	require.NoError(t, err)
	assert.Equal(t, 12, resp.TotalStock)
	assert.Equal(t, 12, resp.PresentStock)
	assert.True(t, resp.ClosingValue.Equal(decimal.NewFromInt(12*140)))
}

func TestCurrentStockUsesLatestSnapshot(t *testing.T) {
	inventory, products, svc := newInventoryFixture()
	p := products.add(&model.Product{ItemName: "Premium Biscuit"})

	older := &model.InventoryRecord{ProductID: p.ID, Date: mustDate(t, "2024-07-18"), OpeningPieces: 10}
	older.RecomputeTotals()
	newer := &model.InventoryRecord{ProductID: p.ID, Date: mustDate(t, "2024-07-20"), OpeningPieces: 15}
	newer.RecomputeTotals()
	require.NoError(t, inventory.Create(context.Background(), older))
	require.NoError(t, inventory.Create(context.Background(), newer))

	stock, err := svc.CurrentStock(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 15, stock)
}

func TestCurrentStockZeroWithoutSnapshots(t *testing.T) {
	_, products, svc := newInventoryFixture()
	p := products.add(&model.Product{ItemName: "Premium Biscuit"})

	stock, err := svc.CurrentStock(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stock)
}

func TestInventoryListFallsBackToLatestThenZero(t *testing.T) {
	inventory, products, svc := newInventoryFixture()
	snapshotted := products.add(&model.Product{ItemName: "A Biscuit"})
	bare := products.add(&model.Product{ItemName: "B Wafer"})

	rec := &model.InventoryRecord{ProductID: snapshotted.ID, Date: mustDate(t, "2024-07-18"), OpeningPieces: 9}
	rec.RecomputeTotals()
	require.NoError(t, inventory.Create(context.Background(), rec))

	// Neither product has a record on the requested date.
	rows, date, err := svc.List(context.Background(), "2024-07-20")
	require.NoError(t, err)
	assert.Equal(t, "2024-07-20", date)
	require.Len(t, rows, 2)

	require.NotNil(t, rows[0].ID)
	assert.Equal(t, 9, rows[0].PresentStock)
	assert.Equal(t, "2024-07-18", rows[0].Date)

	assert.Nil(t, rows[1].ID)
	assert.Equal(t, 0, rows[1].PresentStock)
	assert.Equal(t, "2024-07-20", rows[1].Date)
	assert.Equal(t, bare.ID.String(), rows[1].ProductID)
}

func TestInventoryListExactDateWins(t *testing.T) {
	inventory, products, svc := newInventoryFixture()
	p := products.add(&model.Product{ItemName: "Premium Biscuit"})

	older := &model.InventoryRecord{ProductID: p.ID, Date: mustDate(t, "2024-07-18"), OpeningPieces: 9}
	older.RecomputeTotals()
	onDate := &model.InventoryRecord{ProductID: p.ID, Date: mustDate(t, "2024-07-20"), OpeningPieces: 4}
	onDate.RecomputeTotals()
	require.NoError(t, inventory.Create(context.Background(), older))
	require.NoError(t, inventory.Create(context.Background(), onDate))

	rows, _, err := svc.List(context.Background(), "2024-07-20")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 4, rows[0].PresentStock)
}

func TestStockLevelsFlagsLowStock(t *testing.T) {
	inventory, products, svc := newInventoryFixture()
	low := products.add(&model.Product{ItemName: "A Biscuit", TradePrice: decimal.NewFromInt(140)})
	normal := products.add(&model.Product{ItemName: "B Wafer", TradePrice: decimal.NewFromInt(100)})

	for _, seed := range []struct {
		productID uuid.UUID
		opening   int
	}{{low.ID, 5}, {normal.ID, 50}} {
		rec := &model.InventoryRecord{ProductID: seed.productID, Date: mustDate(t, "2024-07-18"), OpeningPieces: seed.opening}
		rec.RecomputeTotals()
		require.NoError(t, inventory.Create(context.Background(), rec))
	}

	resp, err := svc.StockLevels(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Products, 2)

	assert.Equal(t, "low", resp.Products[0].StockStatus)
	assert.True(t, resp.Products[0].CurrentValue.Equal(decimal.NewFromInt(5*140)))
	assert.Equal(t, "normal", resp.Products[1].StockStatus)

	assert.Equal(t, 2, resp.Summary.TotalProducts)
	assert.Equal(t, 1, resp.Summary.LowStockItems)
	assert.True(t, resp.Summary.TotalInventoryValue.Equal(decimal.NewFromInt(5*140+50*100)))
}

func TestLowStockUrgencyAndOrdering(t *testing.T) {
	inventory, products, svc := newInventoryFixture()
	critical := products.add(&model.Product{ItemName: "Gone"})
	scarce := products.add(&model.Product{ItemName: "Scarce"})
	plenty := products.add(&model.Product{ItemName: "Plenty"})

	for _, seed := range []struct {
		productID uuid.UUID
		opening   int
	}{{critical.ID, 0}, {scarce.ID, 7}, {plenty.ID, 80}} {
		rec := &model.InventoryRecord{ProductID: seed.productID, Date: mustDate(t, "2024-07-18"), OpeningPieces: seed.opening}
		rec.RecomputeTotals()
		require.NoError(t, inventory.Create(context.Background(), rec))
	}

	resp, err := svc.LowStock(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultLowStockThreshold, resp.Threshold)
	require.Len(t, resp.LowStockItems, 2)
	assert.Equal(t, 1, resp.CriticalItems)
	assert.Equal(t, 2, resp.Count)

	assert.Equal(t, "Gone", resp.LowStockItems[0].ItemName)
	assert.Equal(t, "critical", resp.LowStockItems[0].Urgency)
	assert.Equal(t, "Scarce", resp.LowStockItems[1].ItemName)
	assert.Equal(t, "low", resp.LowStockItems[1].Urgency)
}

func TestProductHistoryWindow(t *testing.T) {
	inventory, products, svc := newInventoryFixture()
	p := products.add(&model.Product{ItemName: "Premium Biscuit"})

	inWindow := &model.InventoryRecord{ProductID: p.ID, Date: today().AddDate(0, 0, -3), OpeningPieces: 12}
	inWindow.RecomputeTotals()
	outOfWindow := &model.InventoryRecord{ProductID: p.ID, Date: today().AddDate(0, 0, -40), OpeningPieces: 30}
	outOfWindow.RecomputeTotals()
	require.NoError(t, inventory.Create(context.Background(), inWindow))
	require.NoError(t, inventory.Create(context.Background(), outOfWindow))

	resp, err := svc.ProductHistory(context.Background(), p.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultHistoryDays, resp.DateRange.Days)
	require.Len(t, resp.InventoryHistory, 1)
	assert.Equal(t, 12, resp.InventoryHistory[0].PresentStock)
	assert.Equal(t, 12, resp.CurrentStock)
}
