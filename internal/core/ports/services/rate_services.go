package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/zenapticlabs/expense-management-server/internal/core/domain"
	"github.com/zenapticlabs/expense-management-server/internal/dto"
)

// RateReaderSvc exposes the exchange-rate cache to the rest of the system.
type RateReaderSvc interface {
	// EnsureFresh returns the current snapshot, refreshing it first when it is
	// missing or stale. A stale snapshot is still returned when the provider
	// is unreachable; apperrors.ErrRateProviderUnavailable is returned only
	// when no snapshot exists at all.
	EnsureFresh(ctx context.Context) (*domain.RateSnapshot, error)

	// ConversionRate returns the factor f such that
	// amount_in_to = amount_in_from * f. Both legs are resolved against one
	// snapshot. Identical codes yield exactly 1 without a cache lookup.
	// A currency absent from the snapshot yields apperrors.ErrRateUnavailable;
	// there is deliberately no fallback to 1.
	ConversionRate(ctx context.Context, fromCurrency, toCurrency string) (decimal.Decimal, error)

	// ListRates returns the full rate table re-based to baseCurrency.
	ListRates(ctx context.Context, baseCurrency string) (*dto.ListRatesResponse, error)
}

// RateSvcFacade is the full rate service surface.
type RateSvcFacade interface {
	RateReaderSvc
}
