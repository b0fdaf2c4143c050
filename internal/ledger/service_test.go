package ledger

import (
	"context"
	"testing"

	"github.com/leonid6372/portfolio-service/internal/apperrs"
	"github.com/leonid6372/portfolio-service/internal/common/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLedgerRepo struct {
	lastBuy  *domain.BuyOrder
	lastSell *domain.SellOrder
	sellErr  error
}

func (f *fakeLedgerRepo) Buy(_ context.Context, order *domain.BuyOrder) (*domain.BuyResult, error) {
	f.lastBuy = order

	return &domain.BuyResult{LotID: 1, TransactionID: 2}, nil
}

func (f *fakeLedgerRepo) Sell(_ context.Context, order *domain.SellOrder) (*domain.SellResult, error) {
	f.lastSell = order
	if f.sellErr != nil {
		return nil, f.sellErr
	}

	return &domain.SellResult{TransactionID: 3, ProfitLoss: decimal.NewFromInt(10)}, nil
}

func TestBuyValidation(t *testing.T) {
	tests := []struct {
		name    string
		order   *domain.BuyOrder
		wantErr error
	}{
		{
			name:    "empty symbol",
			order:   &domain.BuyOrder{Symbol: "   ", Quantity: 1, UnitPrice: decimal.NewFromInt(1)},
			wantErr: apperrs.ErrEmptySymbol,
		},
		{
			name:    "zero quantity",
			order:   &domain.BuyOrder{Symbol: "AAPL", Quantity: 0, UnitPrice: decimal.NewFromInt(1)},
			wantErr: apperrs.ErrInvalidQuantity,
		},
		{
			name:    "negative quantity",
			order:   &domain.BuyOrder{Symbol: "AAPL", Quantity: -5, UnitPrice: decimal.NewFromInt(1)},
			wantErr: apperrs.ErrInvalidQuantity,
		},
		{
			name:    "zero price",
			order:   &domain.BuyOrder{Symbol: "AAPL", Quantity: 1, UnitPrice: decimal.Zero},
			wantErr: apperrs.ErrInvalidPrice,
		},
		{
			name:    "negative price",
			order:   &domain.BuyOrder{Symbol: "AAPL", Quantity: 1, UnitPrice: decimal.NewFromInt(-3)},
			wantErr: apperrs.ErrInvalidPrice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeLedgerRepo{}
			svc := NewService(repo)

			_, err := svc.Buy(context.Background(), tt.order)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, repo.lastBuy, "repository must not be reached on validation failure")
		})
	}
}

func TestBuyNormalizesSymbolAndDefaultsDate(t *testing.T) {
	repo := &fakeLedgerRepo{}
	svc := NewService(repo)

	result, err := svc.Buy(context.Background(), &domain.BuyOrder{
		OwnerID:   7,
		Symbol:    "  aapl ",
		Quantity:  3,
		UnitPrice: decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.LotID)

	require.NotNil(t, repo.lastBuy)
	assert.Equal(t, "AAPL", repo.lastBuy.Symbol)
	assert.False(t, repo.lastBuy.PurchasedAt.IsZero())
}

func TestSellValidationAndPassthrough(t *testing.T) {
	repo := &fakeLedgerRepo{}
	svc := NewService(repo)

	_, err := svc.Sell(context.Background(), &domain.SellOrder{Symbol: "AAPL", Quantity: 0, SellPrice: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, apperrs.ErrInvalidQuantity)
	assert.Nil(t, repo.lastSell)

	result, err := svc.Sell(context.Background(), &domain.SellOrder{
		OwnerID:   7,
		Symbol:    "msft",
		Quantity:  2,
		SellPrice: decimal.NewFromInt(300),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.TransactionID)
	assert.Equal(t, "MSFT", repo.lastSell.Symbol)
}

func TestSellRepositoryErrorPassesThrough(t *testing.T) {
	repo := &fakeLedgerRepo{sellErr: apperrs.ErrInsufficientHoldings}
	svc := NewService(repo)

	_, err := svc.Sell(context.Background(), &domain.SellOrder{
		Symbol:    "AAPL",
		Quantity:  100,
		SellPrice: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, apperrs.ErrInsufficientHoldings)
}
