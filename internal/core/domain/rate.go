package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BaseCurrency is the currency in which the rate provider expresses all rates.
// It always carries an implicit rate of 1.
const BaseCurrency = "USD"

// RateSnapshot is the complete set of currency->rate entries produced by one
// fetch cycle. All entries share FetchedAt; conversions must never mix entries
// from two different snapshots.
type RateSnapshot struct {
	Rates         map[string]decimal.Decimal // USD-relative rate per target currency
	FetchedAt     time.Time
	NextRefreshAt time.Time
}

// Rate returns the USD-relative rate for the given (already normalized)
// currency code.
func (s *RateSnapshot) Rate(currency string) (decimal.Decimal, bool) {
	r, ok := s.Rates[currency]
	return r, ok
}

// Stale reports whether the snapshot's declared next-refresh time has passed.
func (s *RateSnapshot) Stale(now time.Time) bool {
	return !now.Before(s.NextRefreshAt)
}

// ExchangeRate is one persisted row of a snapshot: the USD-relative rate for a
// single target currency at a given fetch cycle.
type ExchangeRate struct {
	TargetCurrency string          `json:"targetCurrency"`
	Rate           decimal.Decimal `json:"rate"` // 1 USD expressed in TargetCurrency
	FetchedAt      time.Time       `json:"fetchedAt"`
	NextRefreshAt  time.Time       `json:"nextRefreshAt"`
}
