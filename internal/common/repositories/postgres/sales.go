package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/leonid6372/portfolio-service/internal/common/domain"
	"github.com/leonid6372/portfolio-service/pkg/errs"
)

type salesRepository struct {
	psql *pgxpool.Pool
}

func NewSalesRepository(pool *pgxpool.Pool) domain.SalesRepository {
	return &salesRepository{
		psql: pool,
	}
}

func (sr *salesRepository) GetSalesByOwner(ctx context.Context, ownerID int64) ([]*domain.Sale, error) {
	query := `SELECT id, owner_id, symbol, quantity, sell_price, cost_basis, profit_loss, sold_at, created_at
		FROM portfolio.sales
		WHERE owner_id = $1
		ORDER BY sold_at DESC, id DESC`
	rows, err := sr.psql.Query(ctx, query, ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []*domain.Sale{}, nil
		}

		return nil, errs.NewStack(err)
	}
	defer rows.Close()

	sales := []*domain.Sale{}
	for rows.Next() {
		sale := &Sale{}
		if err := rows.Scan(
			&sale.ID,
			&sale.OwnerID,
			&sale.Symbol,
			&sale.Quantity,
			&sale.SellPrice,
			&sale.CostBasis,
			&sale.ProfitLoss,
			&sale.SoldAt,
			&sale.CreatedAt,
		); err != nil {
			return nil, errs.NewStack(err)
		}

		sales = append(sales, sale.CreateDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, errs.NewStack(err)
	}

	return sales, nil
}
