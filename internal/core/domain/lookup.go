package domain

import "github.com/shopspring/decimal"

// LookupValue is a simple value-keyed reference row (airline, city, etc.).
type LookupValue struct {
	ID          int64  `json:"id"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"` // only car types carry one
}

// LookupKind names the reference tables an expense item can point at.
type LookupKind string

const (
	LookupAirline           LookupKind = "airline"
	LookupRentalAgency      LookupKind = "rental_agency"
	LookupCarType           LookupKind = "car_type"
	LookupMealCategory      LookupKind = "meal_category"
	LookupRelationshipToPAI LookupKind = "relationship_to_pai"
	LookupCity              LookupKind = "city"
)

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
