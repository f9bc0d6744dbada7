package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/zenapticlabs/expense-management-server/internal/apperrors"
	"github.com/zenapticlabs/expense-management-server/internal/core/domain"
	"github.com/zenapticlabs/expense-management-server/internal/models"
)

// PgxExchangeRateRepository persists rate snapshots using pgxpool.
type PgxExchangeRateRepository struct {
	BaseRepository
}

func newPgxExchangeRateRepository(db *pgxpool.Pool) *PgxExchangeRateRepository {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// LatestSnapshot assembles the snapshot from the rows carrying the newest
// fetched_at. Selecting by that single timestamp guarantees the result never
// mixes rows from two fetch cycles.
func (r *PgxExchangeRateRepository) LatestSnapshot(ctx context.Context) (*domain.RateSnapshot, error) {
	query := `
		SELECT target_currency, rate, fetched_at, next_refresh_at
		FROM exchange_rate
		WHERE fetched_at = (SELECT MAX(fetched_at) FROM exchange_rate);
	`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest rate snapshot: %w", err)
	}
	defer rows.Close()

	snap := &domain.RateSnapshot{Rates: make(map[string]decimal.Decimal)}
	for rows.Next() {
		var row models.ExchangeRate
		if err := rows.Scan(&row.TargetCurrency, &row.Rate, &row.FetchedAt, &row.NextRefreshAt); err != nil {
			return nil, fmt.Errorf("failed to scan exchange rate row: %w", err)
		}
		snap.Rates[row.TargetCurrency] = row.Rate
		snap.FetchedAt = row.FetchedAt
		snap.NextRefreshAt = row.NextRefreshAt
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exchange rate rows: %w", err)
	}
	if len(snap.Rates) == 0 {
		return nil, fmt.Errorf("%w: no rate snapshot stored", apperrors.ErrNotFound)
	}
	return snap, nil
}

// ReplaceSnapshot upserts one row per currency in a single transaction so a
// concurrent LatestSnapshot sees either the whole old cycle or the whole new
// one.
func (r *PgxExchangeRateRepository) ReplaceSnapshot(ctx context.Context, rates []models.ExchangeRate) error {
	if len(rates) == 0 {
		return fmt.Errorf("%w: empty rate snapshot", apperrors.ErrValidation)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	for _, rate := range rates {
		batch.Queue(`
			INSERT INTO exchange_rate (target_currency, rate, fetched_at, next_refresh_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (target_currency) DO UPDATE
			SET rate = EXCLUDED.rate,
			    fetched_at = EXCLUDED.fetched_at,
			    next_refresh_at = EXCLUDED.next_refresh_at`,
			rate.TargetCurrency, rate.Rate, rate.FetchedAt, rate.NextRefreshAt,
		)
	}

	results := tx.SendBatch(ctx, batch)
	for range rates {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return fmt.Errorf("failed to upsert exchange rate row: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to close rate upsert batch: %w", err)
	}

	return r.Commit(ctx, tx)
}
