package postgres

import (
	"time"

	"github.com/leonid6372/portfolio-service/internal/common/domain"
	"github.com/shopspring/decimal"
)

type Lot struct {
	ID      int64  `db:"id"`
	OwnerID int64  `db:"owner_id"`
	Symbol  string `db:"symbol"`

	Quantity  int64           `db:"quantity"`
	UnitPrice decimal.Decimal `db:"unit_price"`

	PurchasedAt time.Time `db:"purchased_at"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (l *Lot) CreateDomain() *domain.Lot {
	lot := &domain.Lot{
		ID:          l.ID,
		OwnerID:     l.OwnerID,
		Symbol:      l.Symbol,
		Quantity:    l.Quantity,
		UnitPrice:   l.UnitPrice,
		PurchasedAt: l.PurchasedAt,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}

	return lot
}

type Transaction struct {
	ID      int64  `db:"id"`
	OwnerID int64  `db:"owner_id"`
	Symbol  string `db:"symbol"`

	Quantity    int64           `db:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	TotalAmount decimal.Decimal `db:"total_amount"`
	Kind        string          `db:"kind"`

	ExecutedAt time.Time `db:"executed_at"`
	CreatedAt  time.Time `db:"created_at"`
}

func (t *Transaction) CreateDomain() *domain.Transaction {
	transaction := &domain.Transaction{
		ID:          t.ID,
		OwnerID:     t.OwnerID,
		Symbol:      t.Symbol,
		Quantity:    t.Quantity,
		UnitPrice:   t.UnitPrice,
		TotalAmount: t.TotalAmount,
		Kind:        t.Kind,
		ExecutedAt:  t.ExecutedAt,
		CreatedAt:   t.CreatedAt,
	}

	return transaction
}

type Sale struct {
	ID      int64  `db:"id"`
	OwnerID int64  `db:"owner_id"`
	Symbol  string `db:"symbol"`

	Quantity   int64           `db:"quantity"`
	SellPrice  decimal.Decimal `db:"sell_price"`
	CostBasis  decimal.Decimal `db:"cost_basis"`
	ProfitLoss decimal.Decimal `db:"profit_loss"`

	SoldAt    time.Time `db:"sold_at"`
	CreatedAt time.Time `db:"created_at"`
}

func (s *Sale) CreateDomain() *domain.Sale {
	sale := &domain.Sale{
		ID:         s.ID,
		OwnerID:    s.OwnerID,
		Symbol:     s.Symbol,
		Quantity:   s.Quantity,
		SellPrice:  s.SellPrice,
		CostBasis:  s.CostBasis,
		ProfitLoss: s.ProfitLoss,
		SoldAt:     s.SoldAt,
		CreatedAt:  s.CreatedAt,
	}

	return sale
}

type Position struct {
	OwnerID int64  `db:"owner_id"`
	Symbol  string `db:"symbol"`

	Quantity int64           `db:"quantity"`
	AvgPrice decimal.Decimal `db:"avg_price"`

	FirstPurchasedAt time.Time `db:"first_purchased_at"`
	LotCount         int64     `db:"lot_count"`
}

func (p *Position) CreateDomain() *domain.Position {
	position := &domain.Position{
		OwnerID:          p.OwnerID,
		Symbol:           p.Symbol,
		Quantity:         p.Quantity,
		AvgPrice:         p.AvgPrice,
		FirstPurchasedAt: p.FirstPurchasedAt,
		LotCount:         p.LotCount,
	}

	return position
}
