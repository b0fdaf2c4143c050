package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/leonid6372/portfolio-service/internal/common/domain"
	"github.com/leonid6372/portfolio-service/pkg/errs"
	"github.com/leonid6372/portfolio-service/pkg/log"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ledgerRepository struct {
	psql *pgxpool.Pool
}

func NewLedgerRepository(pool *pgxpool.Pool) domain.LedgerRepository {
	return &ledgerRepository{
		psql: pool,
	}
}

func (lr *ledgerRepository) Buy(ctx context.Context, order *domain.BuyOrder) (*domain.BuyResult, error) {
	tx, err := lr.psql.Begin(ctx)
	if err != nil {
		return nil, errs.NewStack(err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			log.Error("failed to rollback transaction", zap.Error(err))
		}
	}()

	query := `INSERT INTO portfolio.lots(owner_id, symbol, quantity, unit_price, purchased_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	var lotID int64
	if err := tx.QueryRow(ctx, query,
		order.OwnerID,
		order.Symbol,
		order.Quantity,
		order.UnitPrice,
		order.PurchasedAt,
	).Scan(&lotID); err != nil {
		return nil, errs.NewStack(err)
	}

	query = `INSERT INTO portfolio.transactions(owner_id, symbol, quantity, unit_price, kind, executed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	var transactionID int64
	if err := tx.QueryRow(ctx, query,
		order.OwnerID,
		order.Symbol,
		order.Quantity,
		order.UnitPrice,
		domain.KindBuy,
		order.PurchasedAt,
	).Scan(&transactionID); err != nil {
		return nil, errs.NewStack(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, errs.NewStack(err)
	}

	return &domain.BuyResult{
		LotID:         lotID,
		TransactionID: transactionID,
	}, nil
}

func (lr *ledgerRepository) Sell(ctx context.Context, order *domain.SellOrder) (*domain.SellResult, error) {
	tx, err := lr.psql.Begin(ctx)
	if err != nil {
		return nil, errs.NewStack(err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			log.Error("failed to rollback transaction", zap.Error(err))
		}
	}()

	// Row locks serialize concurrent sells on the same (owner, symbol):
	// a second sell blocks here until the first commits and then sees the
	// depleted lots, so two sells can never both pass the sufficiency check.
	query := `SELECT id, owner_id, symbol, quantity, unit_price, purchased_at, created_at, updated_at
		FROM portfolio.lots
		WHERE owner_id = $1 AND symbol = $2
		ORDER BY purchased_at ASC, id ASC
		FOR UPDATE`
	rows, err := tx.Query(ctx, query, order.OwnerID, order.Symbol)
	if err != nil {
		return nil, errs.NewStack(err)
	}

	lots := []*domain.Lot{}
	for rows.Next() {
		lot := &Lot{}
		if err := rows.Scan(
			&lot.ID,
			&lot.OwnerID,
			&lot.Symbol,
			&lot.Quantity,
			&lot.UnitPrice,
			&lot.PurchasedAt,
			&lot.CreatedAt,
			&lot.UpdatedAt,
		); err != nil {
			rows.Close()
			return nil, errs.NewStack(err)
		}

		lots = append(lots, lot.CreateDomain())
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, errs.NewStack(err)
	}

	draws, err := domain.PlanDepletion(lots, order.Quantity)
	if err != nil {
		// Business-rule rejection, nothing mutated yet.
		return nil, err
	}

	for _, draw := range draws {
		if draw.Exhausted {
			query = `DELETE FROM portfolio.lots WHERE id = $1`
			if _, err := tx.Exec(ctx, query, draw.LotID); err != nil {
				return nil, errs.NewStack(err)
			}

			continue
		}

		query = `UPDATE portfolio.lots SET quantity = quantity - $1, updated_at = NOW() WHERE id = $2`
		if _, err := tx.Exec(ctx, query, draw.Quantity, draw.LotID); err != nil {
			return nil, errs.NewStack(err)
		}
	}

	costBasis := domain.CostBasis(draws)
	profitLoss := order.SellPrice.Sub(costBasis).Mul(decimal.NewFromInt(order.Quantity))

	query = `INSERT INTO portfolio.transactions(owner_id, symbol, quantity, unit_price, kind, executed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	var transactionID int64
	if err := tx.QueryRow(ctx, query,
		order.OwnerID,
		order.Symbol,
		order.Quantity,
		order.SellPrice,
		domain.KindSell,
		order.SoldAt,
	).Scan(&transactionID); err != nil {
		return nil, errs.NewStack(err)
	}

	query = `INSERT INTO portfolio.sales(owner_id, symbol, quantity, sell_price, cost_basis, profit_loss, sold_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := tx.Exec(ctx, query,
		order.OwnerID,
		order.Symbol,
		order.Quantity,
		order.SellPrice,
		costBasis,
		profitLoss,
		order.SoldAt,
	); err != nil {
		return nil, errs.NewStack(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, errs.NewStack(err)
	}

	return &domain.SellResult{
		TransactionID: transactionID,
		CostBasis:     costBasis,
		ProfitLoss:    profitLoss,
	}, nil
}
