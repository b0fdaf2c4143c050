package domain

const (
	KindBuy  = "BUY"
	KindSell = "SELL"

	DefaultTransactionsPerPage = 10
	MaxTransactionsPerPage     = 500
)
