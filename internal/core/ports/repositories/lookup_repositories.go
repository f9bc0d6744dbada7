package repositories

import (
	"context"

	"github.com/zenapticlabs/expense-management-server/internal/core/domain"
)

// LookupReader defines read operations for the reference tables expense items
// point at. All resolution is case-insensitive on the stored value.
type LookupReader interface {
	// FindLookupByValue resolves a value to its row in the given reference
	// table. Returns apperrors.ErrNotFound when no row matches.
	FindLookupByValue(ctx context.Context, kind domain.LookupKind, value string) (*domain.LookupValue, error)

	// ListLookups retrieves all rows of the given reference table.
	ListLookups(ctx context.Context, kind domain.LookupKind) ([]domain.LookupValue, error)

	// FindHotelRateByCity returns the hotel daily base rate for a city.
	FindHotelRateByCity(ctx context.Context, city string) (*domain.HotelDailyBaseRate, error)

	// ListHotelRates retrieves all hotel daily base rates.
	ListHotelRates(ctx context.Context) ([]domain.HotelDailyBaseRate, error)

	// FindMileageRateByTitle returns the mileage rate registered under title.
	FindMileageRateByTitle(ctx context.Context, title string) (*domain.MileageRate, error)

	// ListMileageRates retrieves all mileage rates.
	ListMileageRates(ctx context.Context) ([]domain.MileageRate, error)
}

// LookupRepositoryFacade is the full lookup repository surface.
type LookupRepositoryFacade interface {
	LookupReader
}
