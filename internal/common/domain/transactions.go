package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionsRepository is a read-only view over the append-only
// transaction log. Writes happen exclusively inside ledger operations.
type TransactionsRepository interface {
	Query(ctx context.Context, ownerID int64, filter TransactionFilter, page PageRequest) (*TransactionsPage, error)
	Report(ctx context.Context, ownerID int64, filter TransactionFilter) (*TransactionReport, error)
}

type Transaction struct {
	ID      int64  `json:"id"`
	OwnerID int64  `json:"owner_id"`
	Symbol  string `json:"symbol"`

	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"price"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Kind        string          `json:"transaction_type"`

	ExecutedAt time.Time `json:"transaction_date"`
	CreatedAt  time.Time `json:"created_at"`
}

// TransactionFilter narrows the queried set. Symbol is a substring
// match, Kind is exact, From/To bound the execution date inclusively.
type TransactionFilter struct {
	Symbol string
	Kind   string
	From   *time.Time
	To     *time.Time
}

type PageRequest struct {
	Page  int64
	Limit int64
}

type Pagination struct {
	Total       int64 `json:"total"`
	TotalPages  int64 `json:"total_pages"`
	CurrentPage int64 `json:"current_page"`
	Limit       int64 `json:"limit"`
}

// TransactionStats aggregates the full filtered set, independent of
// pagination.
type TransactionStats struct {
	TotalTransactions int64           `json:"total_transactions"`
	TotalBuys         int64           `json:"total_buys"`
	TotalSells        int64           `json:"total_sells"`
	TotalInvested     decimal.Decimal `json:"total_invested"`
	TotalSold         decimal.Decimal `json:"total_sold"`
	NetPosition       decimal.Decimal `json:"net_position"`
}

type TransactionsPage struct {
	Transactions []*Transaction   `json:"transactions"`
	Pagination   Pagination       `json:"pagination"`
	Stats        TransactionStats `json:"stats"`
}

// TransactionReport is the print view: the whole filtered set in one
// response, no pagination.
type TransactionReport struct {
	Transactions []*Transaction   `json:"transactions"`
	Stats        TransactionStats `json:"stats"`
	GeneratedAt  time.Time        `json:"generated_at"`
}
