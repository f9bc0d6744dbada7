package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ListRatesResponse is the full rate table re-based to the requested currency.
type ListRatesResponse struct {
	BaseCurrency  string                     `json:"baseCurrency"`
	FetchedAt     time.Time                  `json:"fetchedAt"`
	NextRefreshAt time.Time                  `json:"nextRefreshAt"`
	Rates         map[string]decimal.Decimal `json:"rates"`
}

// ConversionRateResponse is a single conversion factor between two currencies.
type ConversionRateResponse struct {
	FromCurrency string          `json:"fromCurrency"`
	ToCurrency   string          `json:"toCurrency"`
	Rate         decimal.Decimal `json:"rate"`
}
