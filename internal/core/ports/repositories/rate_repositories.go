package repositories

import (
	"context"

	"github.com/zenapticlabs/expense-management-server/internal/core/domain"
	"github.com/zenapticlabs/expense-management-server/internal/models"
)

// ExchangeRateReader defines read operations for persisted rate snapshots.
type ExchangeRateReader interface {
	// LatestSnapshot returns the most recent complete snapshot, assembled from
	// the rows sharing the newest fetched_at. Returns apperrors.ErrNotFound
	// when no snapshot has ever been stored.
	LatestSnapshot(ctx context.Context) (*domain.RateSnapshot, error)
}

// ExchangeRateWriter defines write operations for persisted rate snapshots.
type ExchangeRateWriter interface {
	// ReplaceSnapshot upserts one row per currency in a single transaction.
	// All rows must share the same fetched_at; a reader must never observe a
	// mix of the old and new cycle.
	ReplaceSnapshot(ctx context.Context, rates []models.ExchangeRate) error
}

// ExchangeRateRepositoryFacade combines all exchange-rate repository interfaces.
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
