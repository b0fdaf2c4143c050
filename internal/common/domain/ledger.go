package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// LedgerRepository is the only writer of lots, transactions and sales.
// Each operation is a single database transaction: all statements commit
// together or none do.
type LedgerRepository interface {
	Buy(ctx context.Context, order *BuyOrder) (*BuyResult, error)
	Sell(ctx context.Context, order *SellOrder) (*SellResult, error)
}

type BuyOrder struct {
	OwnerID int64
	Symbol  string

	Quantity  int64
	UnitPrice decimal.Decimal

	PurchasedAt time.Time
}

type BuyResult struct {
	LotID         int64 `json:"lot_id"`
	TransactionID int64 `json:"transaction_id"`
}

type SellOrder struct {
	OwnerID int64
	Symbol  string

	Quantity  int64
	SellPrice decimal.Decimal

	SoldAt time.Time
}

type SellResult struct {
	TransactionID int64           `json:"transaction_id"`
	CostBasis     decimal.Decimal `json:"cost_basis"`
	ProfitLoss    decimal.Decimal `json:"profit_loss"`
}
