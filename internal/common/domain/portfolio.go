package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type PositionsRepository interface {
	GetPositions(ctx context.Context, ownerID int64) ([]*Position, error)
}

// Position is the aggregation of a user's active lots for one symbol.
// Derived at read time, never stored.
type Position struct {
	OwnerID int64  `json:"owner_id"`
	Symbol  string `json:"symbol"`

	Quantity int64           `json:"quantity"`
	AvgPrice decimal.Decimal `json:"purchase_price"`

	FirstPurchasedAt time.Time `json:"first_purchased_at"`
	LotCount         int64     `json:"lot_count"`
}

// PriceLookup resolves a symbol to its current market price. A failure
// concerns that symbol only; callers degrade per line instead of failing
// the whole request.
type PriceLookup interface {
	GetPrice(ctx context.Context, symbol string) (decimal.Decimal, error)
}
