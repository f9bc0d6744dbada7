package models

import "github.com/shopspring/decimal"

// LookupValue is a value-keyed reference row (airline, rental agency, car
// type, meal category, relationship-to-PAI, city).
type LookupValue struct {
	ID          int64  `json:"id"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

// HotelDailyBaseRate is the allowed nightly base rate for a city.
type HotelDailyBaseRate struct {
	ID       int64           `json:"id"`
	Country  string          `json:"country"`
	City     string          `json:"city"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// MileageRate is a per-distance reimbursement rate keyed by a short title.
type MileageRate struct {
	ID    int64           `json:"id"`
	Rate  decimal.Decimal `json:"rate"`
	Title string          `json:"title"`
}
