package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type SalesRepository interface {
	GetSalesByOwner(ctx context.Context, ownerID int64) ([]*Sale, error)
}

// Sale records a completed sell with the realized result booked against
// the FIFO cost basis of the consumed lots.
type Sale struct {
	ID      int64  `json:"id"`
	OwnerID int64  `json:"owner_id"`
	Symbol  string `json:"symbol"`

	Quantity   int64           `json:"quantity"`
	SellPrice  decimal.Decimal `json:"sell_price"`
	CostBasis  decimal.Decimal `json:"cost_basis"`
	ProfitLoss decimal.Decimal `json:"profit_loss"`

	SoldAt    time.Time `json:"sell_date"`
	CreatedAt time.Time `json:"created_at"`
}
