package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/leonid6372/portfolio-service/internal/common/domain"
	"github.com/leonid6372/portfolio-service/pkg/errs"
)

type transactionsRepository struct {
	psql *pgxpool.Pool
}

func NewTransactionsRepository(pool *pgxpool.Pool) domain.TransactionsRepository {
	return &transactionsRepository{
		psql: pool,
	}
}

// buildFilter renders the WHERE clause shared by the page, count and
// stats queries, so the stats always describe exactly the filtered set.
func buildFilter(ownerID int64, filter domain.TransactionFilter) (string, []any) {
	conditions := []string{"owner_id = $1"}
	args := []any{ownerID}

	if filter.Symbol != "" {
		args = append(args, "%"+filter.Symbol+"%")
		conditions = append(conditions, fmt.Sprintf("symbol ILIKE $%d", len(args)))
	}

	if filter.Kind != "" {
		args = append(args, strings.ToUpper(filter.Kind))
		conditions = append(conditions, fmt.Sprintf("kind = $%d", len(args)))
	}

	if filter.From != nil {
		args = append(args, *filter.From)
		conditions = append(conditions, fmt.Sprintf("executed_at >= $%d", len(args)))
	}

	if filter.To != nil {
		args = append(args, *filter.To)
		conditions = append(conditions, fmt.Sprintf("executed_at <= $%d", len(args)))
	}

	return strings.Join(conditions, " AND "), args
}

func pageMeta(total, page, limit int64) domain.Pagination {
	totalPages := (total + limit - 1) / limit

	return domain.Pagination{
		Total:       total,
		TotalPages:  totalPages,
		CurrentPage: page,
		Limit:       limit,
	}
}

func (tr *transactionsRepository) Query(ctx context.Context, ownerID int64, filter domain.TransactionFilter, page domain.PageRequest) (*domain.TransactionsPage, error) {
	where, args := buildFilter(ownerID, filter)

	query := fmt.Sprintf(`SELECT COUNT(*) FROM portfolio.transactions WHERE %s`, where)
	var total int64
	if err := tr.psql.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return nil, errs.NewStack(err)
	}

	offset := (page.Page - 1) * page.Limit
	query = fmt.Sprintf(`SELECT id, owner_id, symbol, quantity, unit_price,
			quantity * unit_price AS total_amount,
			kind, executed_at, created_at
		FROM portfolio.transactions
		WHERE %s
		ORDER BY executed_at DESC, id DESC
		LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	transactions, err := tr.queryTransactions(ctx, query, append(args, page.Limit, offset)...)
	if err != nil {
		return nil, err
	}

	stats, err := tr.queryStats(ctx, where, args)
	if err != nil {
		return nil, err
	}

	return &domain.TransactionsPage{
		Transactions: transactions,
		Pagination:   pageMeta(total, page.Page, page.Limit),
		Stats:        *stats,
	}, nil
}

func (tr *transactionsRepository) Report(ctx context.Context, ownerID int64, filter domain.TransactionFilter) (*domain.TransactionReport, error) {
	where, args := buildFilter(ownerID, filter)

	query := fmt.Sprintf(`SELECT id, owner_id, symbol, quantity, unit_price,
			quantity * unit_price AS total_amount,
			kind, executed_at, created_at
		FROM portfolio.transactions
		WHERE %s
		ORDER BY executed_at DESC, id DESC`, where)
	transactions, err := tr.queryTransactions(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	stats, err := tr.queryStats(ctx, where, args)
	if err != nil {
		return nil, err
	}

	return &domain.TransactionReport{
		Transactions: transactions,
		Stats:        *stats,
		GeneratedAt:  time.Now().UTC(),
	}, nil
}

func (tr *transactionsRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]*domain.Transaction, error) {
	rows, err := tr.psql.Query(ctx, query, args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []*domain.Transaction{}, nil
		}

		return nil, errs.NewStack(err)
	}
	defer rows.Close()

	transactions := []*domain.Transaction{}
	for rows.Next() {
		transaction := &Transaction{}
		if err := rows.Scan(
			&transaction.ID,
			&transaction.OwnerID,
			&transaction.Symbol,
			&transaction.Quantity,
			&transaction.UnitPrice,
			&transaction.TotalAmount,
			&transaction.Kind,
			&transaction.ExecutedAt,
			&transaction.CreatedAt,
		); err != nil {
			return nil, errs.NewStack(err)
		}

		transactions = append(transactions, transaction.CreateDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, errs.NewStack(err)
	}

	return transactions, nil
}

// queryStats aggregates over the full filtered set, deliberately without
// LIMIT/OFFSET: a page request still reports totals for everything the
// filter matches.
func (tr *transactionsRepository) queryStats(ctx context.Context, where string, args []any) (*domain.TransactionStats, error) {
	query := fmt.Sprintf(`SELECT
			COUNT(*) AS total_transactions,
			COUNT(*) FILTER (WHERE kind = 'BUY') AS total_buys,
			COUNT(*) FILTER (WHERE kind = 'SELL') AS total_sells,
			COALESCE(SUM(quantity * unit_price) FILTER (WHERE kind = 'BUY'), 0) AS total_invested,
			COALESCE(SUM(quantity * unit_price) FILTER (WHERE kind = 'SELL'), 0) AS total_sold
		FROM portfolio.transactions
		WHERE %s`, where)

	stats := &domain.TransactionStats{}
	if err := tr.psql.QueryRow(ctx, query, args...).Scan(
		&stats.TotalTransactions,
		&stats.TotalBuys,
		&stats.TotalSells,
		&stats.TotalInvested,
		&stats.TotalSold,
	); err != nil {
		return nil, errs.NewStack(err)
	}

	stats.NetPosition = stats.TotalSold.Sub(stats.TotalInvested)

	return stats, nil
}
