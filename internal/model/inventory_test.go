package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRecomputeTotals(t *testing.T) {
	rec := &InventoryRecord{
		OpeningPieces:      20,
		LiftingPieces:      5,
		ReturnMarketPieces: 2,
		ReturnOfficePieces: 1,
	}
	rec.RecomputeTotals()

	assert.Equal(t, 18, rec.TotalStock)
	assert.Equal(t, 18, rec.PresentStock)
	assert.True(t, rec.ClosingValue.Equal(decimal.NewFromInt(18*140)),
		"closing value should be present stock at the reference price, got %s", rec.ClosingValue)
}

func TestRecomputeTotalsNegativePassesThrough(t *testing.T) {
	rec := &InventoryRecord{OpeningPieces: 3, LiftingPieces: 10}
	rec.RecomputeTotals()

	assert.Equal(t, -7, rec.TotalStock)
	assert.Equal(t, -7, rec.PresentStock)
	assert.True(t, rec.ClosingValue.Equal(decimal.NewFromInt(-7*140)))
}

func TestRecomputeTotalsIgnoresIMSFields(t *testing.T) {
	rec := &InventoryRecord{
		OpeningPieces: 10,
		IMSPieces:     99,
		IMSValue:      decimal.NewFromInt(5000),
	}
	rec.RecomputeTotals()

	assert.Equal(t, 10, rec.TotalStock)
}

func TestValidOrderStatus(t *testing.T) {
	for _, s := range []string{OrderPending, OrderProcessing, OrderDelivered, OrderCancelled, OrderDue} {
		assert.True(t, ValidOrderStatus(s), s)
	}
	assert.False(t, ValidOrderStatus("shipped"))
	assert.False(t, ValidOrderStatus(""))
}
