package domain

import (
	"sort"
	"time"

	"github.com/leonid6372/portfolio-service/internal/apperrs"
	"github.com/shopspring/decimal"
)

// Lot is a single purchase event's remaining shares and price basis.
// Immutable after creation except for quantity reduction by sells; a lot
// whose quantity reaches zero is deleted, never kept at zero.
type Lot struct {
	ID      int64  `json:"id"`
	OwnerID int64  `json:"owner_id"`
	Symbol  string `json:"symbol"`

	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`

	PurchasedAt time.Time `json:"purchased_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LotDraw is one step of a FIFO depletion plan: how many shares to take
// from which lot, and whether the lot is exhausted by the draw.
type LotDraw struct {
	LotID     int64
	Quantity  int64
	UnitPrice decimal.Decimal
	Exhausted bool
}

// PlanDepletion walks lots oldest-first (purchase date ascending, ties by
// id ascending) and plans draws until quantity is covered. Returns
// apperrs.ErrInsufficientHoldings without planning anything when the
// active lots cannot cover the requested quantity.
func PlanDepletion(lots []*Lot, quantity int64) ([]LotDraw, error) {
	if quantity <= 0 {
		return nil, apperrs.ErrInvalidQuantity
	}

	var total int64
	for _, lot := range lots {
		total += lot.Quantity
	}

	if total < quantity {
		return nil, apperrs.ErrInsufficientHoldings
	}

	ordered := make([]*Lot, len(lots))
	copy(ordered, lots)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].PurchasedAt.Equal(ordered[j].PurchasedAt) {
			return ordered[i].ID < ordered[j].ID
		}

		return ordered[i].PurchasedAt.Before(ordered[j].PurchasedAt)
	})

	remaining := quantity
	draws := make([]LotDraw, 0, len(ordered))

	for _, lot := range ordered {
		if remaining <= 0 {
			break
		}

		take := lot.Quantity
		if take > remaining {
			take = remaining
		}

		draws = append(draws, LotDraw{
			LotID:     lot.ID,
			Quantity:  take,
			UnitPrice: lot.UnitPrice,
			Exhausted: take == lot.Quantity,
		})

		remaining -= take
	}

	return draws, nil
}

// CostBasis is the FIFO-weighted average purchase price of the drawn
// shares: sum of each drawn sub-quantity times its lot's price, divided
// by the total drawn quantity.
func CostBasis(draws []LotDraw) decimal.Decimal {
	var quantity int64
	cost := decimal.Zero

	for _, draw := range draws {
		quantity += draw.Quantity
		cost = cost.Add(draw.UnitPrice.Mul(decimal.NewFromInt(draw.Quantity)))
	}

	if quantity == 0 {
		return decimal.Zero
	}

	return cost.Div(decimal.NewFromInt(quantity))
}
