package providers

import (
	"context"

	"github.com/zenapticlabs/expense-management-server/internal/core/domain"
)

// RateProvider is the external exchange-rate source. One call fetches the full
// USD-based rate table plus the provider's declared next update time.
// Transport failures, timeouts, non-2xx statuses and malformed payloads are
// all surfaced as errors; retry policy belongs to the caller.
type RateProvider interface {
	FetchRates(ctx context.Context) (*domain.RateSnapshot, error)
}
