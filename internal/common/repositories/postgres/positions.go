package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/leonid6372/portfolio-service/internal/common/domain"
	"github.com/leonid6372/portfolio-service/pkg/errs"
)

type positionsRepository struct {
	psql *pgxpool.Pool
}

func NewPositionsRepository(pool *pgxpool.Pool) domain.PositionsRepository {
	return &positionsRepository{
		psql: pool,
	}
}

func (pr *positionsRepository) GetPositions(ctx context.Context, ownerID int64) ([]*domain.Position, error) {
	query := `SELECT
			owner_id,
			symbol,
			SUM(quantity) AS quantity,
			SUM(quantity * unit_price) / SUM(quantity) AS avg_price,
			MIN(purchased_at) AS first_purchased_at,
			COUNT(*) AS lot_count
		FROM portfolio.lots
		WHERE owner_id = $1
		GROUP BY owner_id, symbol
		ORDER BY symbol ASC`
	rows, err := pr.psql.Query(ctx, query, ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []*domain.Position{}, nil
		}

		return nil, errs.NewStack(err)
	}
	defer rows.Close()

	positions := []*domain.Position{}
	for rows.Next() {
		position := &Position{}
		if err := rows.Scan(
			&position.OwnerID,
			&position.Symbol,
			&position.Quantity,
			&position.AvgPrice,
			&position.FirstPurchasedAt,
			&position.LotCount,
		); err != nil {
			return nil, errs.NewStack(err)
		}

		positions = append(positions, position.CreateDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, errs.NewStack(err)
	}

	return positions, nil
}
