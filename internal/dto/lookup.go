package dto

import (
	"github.com/shopspring/decimal"
	"github.com/zenapticlabs/expense-management-server/internal/core/domain"
)

// LookupValueResponse is a single reference-table row.
type LookupValueResponse struct {
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

// ToListLookupValueResponse converts lookup rows to DTOs.
func ToListLookupValueResponse(values []domain.LookupValue) []LookupValueResponse {
	res := make([]LookupValueResponse, len(values))
	for i, v := range values {
		res[i] = LookupValueResponse{Value: v.Value, Description: v.Description}
	}
	return res
}

// HotelDailyBaseRateResponse is one city's allowed nightly base rate.
type HotelDailyBaseRateResponse struct {
	ID       int64           `json:"id"`
	Country  string          `json:"country"`
	City     string          `json:"city"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// ToListHotelRateResponse converts hotel rates to DTOs.
func ToListHotelRateResponse(rates []domain.HotelDailyBaseRate) []HotelDailyBaseRateResponse {
	res := make([]HotelDailyBaseRateResponse, len(rates))
	for i, r := range rates {
		res[i] = HotelDailyBaseRateResponse{ID: r.ID, Country: r.Country, City: r.City, Amount: r.Amount, Currency: r.Currency}
	}
	return res
}

// MileageRateResponse is one reimbursement rate.
type MileageRateResponse struct {
	ID    int64           `json:"id"`
	Rate  decimal.Decimal `json:"rate"`
	Title string          `json:"title"`
}

// ToListMileageRateResponse converts mileage rates to DTOs.
func ToListMileageRateResponse(rates []domain.MileageRate) []MileageRateResponse {
	res := make([]MileageRateResponse, len(rates))
	for i, r := range rates {
		res[i] = MileageRateResponse{ID: r.ID, Rate: r.Rate, Title: r.Title}
	}
	return res
}
