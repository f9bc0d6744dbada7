package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is one row of a rate snapshot: the USD-relative rate for a
// single target currency produced by one fetch cycle. Rate is stored as
// numeric(20,6). At most one row exists per (target_currency, fetched_at).
type ExchangeRate struct {
	TargetCurrency string          `json:"targetCurrency"`
	Rate           decimal.Decimal `json:"rate"`
	FetchedAt      time.Time       `json:"fetchedAt"`
	NextRefreshAt  time.Time       `json:"nextRefreshAt"`
}
