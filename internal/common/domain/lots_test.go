package domain

import (
	"testing"
	"time"

	"github.com/leonid6372/portfolio-service/internal/apperrs"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lot(id int64, quantity int64, price string, purchasedAt time.Time) *Lot {
	return &Lot{
		ID:          id,
		OwnerID:     1,
		Symbol:      "AAPL",
		Quantity:    quantity,
		UnitPrice:   decimal.RequireFromString(price),
		PurchasedAt: purchasedAt,
	}
}

func TestPlanDepletion(t *testing.T) {
	day1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	t.Run("single lot, exact quantity", func(t *testing.T) {
		draws, err := PlanDepletion([]*Lot{lot(1, 5, "10", day1)}, 5)
		require.NoError(t, err)
		require.Len(t, draws, 1)
		assert.Equal(t, int64(1), draws[0].LotID)
		assert.Equal(t, int64(5), draws[0].Quantity)
		assert.True(t, draws[0].Exhausted)
	})

	t.Run("partial draw leaves lot alive", func(t *testing.T) {
		draws, err := PlanDepletion([]*Lot{lot(1, 5, "10", day1)}, 3)
		require.NoError(t, err)
		require.Len(t, draws, 1)
		assert.Equal(t, int64(3), draws[0].Quantity)
		assert.False(t, draws[0].Exhausted)
	})

	t.Run("spans lots oldest first", func(t *testing.T) {
		lots := []*Lot{
			lot(2, 5, "12", day2),
			lot(1, 5, "10", day1),
		}

		draws, err := PlanDepletion(lots, 7)
		require.NoError(t, err)
		require.Len(t, draws, 2)

		assert.Equal(t, int64(1), draws[0].LotID)
		assert.Equal(t, int64(5), draws[0].Quantity)
		assert.True(t, draws[0].Exhausted)

		assert.Equal(t, int64(2), draws[1].LotID)
		assert.Equal(t, int64(2), draws[1].Quantity)
		assert.False(t, draws[1].Exhausted)
	})

	t.Run("same purchase date ties broken by id", func(t *testing.T) {
		lots := []*Lot{
			lot(7, 4, "20", day1),
			lot(3, 4, "15", day1),
		}

		draws, err := PlanDepletion(lots, 6)
		require.NoError(t, err)
		require.Len(t, draws, 2)
		assert.Equal(t, int64(3), draws[0].LotID)
		assert.Equal(t, int64(7), draws[1].LotID)
	})

	t.Run("insufficient holdings plans nothing", func(t *testing.T) {
		draws, err := PlanDepletion([]*Lot{lot(1, 5, "10", day1)}, 6)
		assert.ErrorIs(t, err, apperrs.ErrInsufficientHoldings)
		assert.Nil(t, draws)
	})

	t.Run("no lots at all", func(t *testing.T) {
		_, err := PlanDepletion(nil, 1)
		assert.ErrorIs(t, err, apperrs.ErrInsufficientHoldings)
	})

	t.Run("non-positive quantity rejected", func(t *testing.T) {
		_, err := PlanDepletion([]*Lot{lot(1, 5, "10", day1)}, 0)
		assert.ErrorIs(t, err, apperrs.ErrInvalidQuantity)
	})
}

func TestCostBasis(t *testing.T) {
	day1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	t.Run("weighted across consumed lots", func(t *testing.T) {
		lots := []*Lot{
			lot(1, 5, "10", day1),
			lot(2, 5, "12", day2),
		}

		draws, err := PlanDepletion(lots, 7)
		require.NoError(t, err)

		// 5x10 + 2x12 = 74 over 7 shares.
		want := decimal.NewFromInt(74).Div(decimal.NewFromInt(7))
		assert.True(t, CostBasis(draws).Equal(want), "got %s", CostBasis(draws))
	})

	t.Run("single lot is just its price", func(t *testing.T) {
		draws, err := PlanDepletion([]*Lot{lot(1, 10, "99.5", day1)}, 4)
		require.NoError(t, err)
		assert.True(t, CostBasis(draws).Equal(decimal.RequireFromString("99.5")))
	})

	t.Run("empty draws", func(t *testing.T) {
		assert.True(t, CostBasis(nil).IsZero())
	})
}
