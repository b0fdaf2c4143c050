package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/leonid6372/portfolio-service/internal/apperrs"
	"github.com/leonid6372/portfolio-service/internal/common/domain"
	"github.com/leonid6372/portfolio-service/pkg/log"
	"go.uber.org/zap"
)

// Service validates buy/sell orders and hands them to the ledger
// repository, which performs each operation as one database transaction.
// Validation failures never reach the repository, so a rejected order
// provably mutates nothing.
type Service struct {
	repo domain.LedgerRepository
}

func NewService(repo domain.LedgerRepository) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) Buy(ctx context.Context, order *domain.BuyOrder) (*domain.BuyResult, error) {
	order.Symbol = normalizeSymbol(order.Symbol)

	if order.Symbol == "" {
		return nil, apperrs.ErrEmptySymbol
	}
	if order.Quantity <= 0 {
		return nil, apperrs.ErrInvalidQuantity
	}
	if !order.UnitPrice.IsPositive() {
		return nil, apperrs.ErrInvalidPrice
	}
	if order.PurchasedAt.IsZero() {
		order.PurchasedAt = time.Now().UTC()
	}

	result, err := s.repo.Buy(ctx, order)
	if err != nil {
		return nil, err
	}

	log.Info("buy recorded",
		zap.Int64("owner_id", order.OwnerID),
		zap.String("symbol", order.Symbol),
		zap.Int64("quantity", order.Quantity),
		zap.Int64("lot_id", result.LotID),
		zap.Int64("transaction_id", result.TransactionID),
	)

	return result, nil
}

func (s *Service) Sell(ctx context.Context, order *domain.SellOrder) (*domain.SellResult, error) {
	order.Symbol = normalizeSymbol(order.Symbol)

	if order.Symbol == "" {
		return nil, apperrs.ErrEmptySymbol
	}
	if order.Quantity <= 0 {
		return nil, apperrs.ErrInvalidQuantity
	}
	if !order.SellPrice.IsPositive() {
		return nil, apperrs.ErrInvalidPrice
	}
	if order.SoldAt.IsZero() {
		order.SoldAt = time.Now().UTC()
	}

	result, err := s.repo.Sell(ctx, order)
	if err != nil {
		return nil, err
	}

	log.Info("sell recorded",
		zap.Int64("owner_id", order.OwnerID),
		zap.String("symbol", order.Symbol),
		zap.Int64("quantity", order.Quantity),
		zap.Int64("transaction_id", result.TransactionID),
		zap.String("profit_loss", result.ProfitLoss.String()),
	)

	return result, nil
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
