package services

import (
	"context"

	"github.com/zenapticlabs/expense-management-server/internal/core/domain"
	portsrepo "github.com/zenapticlabs/expense-management-server/internal/core/ports/repositories"
)

// LookupService serves the reference tables expense items point at.
type LookupService struct {
	lookupRepo portsrepo.LookupRepositoryFacade
}

// NewLookupService creates a new LookupService.
func NewLookupService(lookupRepo portsrepo.LookupRepositoryFacade) *LookupService {
	return &LookupService{lookupRepo: lookupRepo}
}

// ListValues retrieves all rows of one reference table.
func (s *LookupService) ListValues(ctx context.Context, kind domain.LookupKind) ([]domain.LookupValue, error) {
	values, err := s.lookupRepo.ListLookups(ctx, kind)
	if err != nil {
		return nil, err
	}
	if values == nil {
		values = []domain.LookupValue{}
	}
	return values, nil
}

// ListHotelRates retrieves all city hotel base rates.
func (s *LookupService) ListHotelRates(ctx context.Context) ([]domain.HotelDailyBaseRate, error) {
	rates, err := s.lookupRepo.ListHotelRates(ctx)
	if err != nil {
		return nil, err
	}
	if rates == nil {
		rates = []domain.HotelDailyBaseRate{}
	}
	return rates, nil
}

// ListMileageRates retrieves all mileage reimbursement rates.
func (s *LookupService) ListMileageRates(ctx context.Context) ([]domain.MileageRate, error) {
	rates, err := s.lookupRepo.ListMileageRates(ctx)
	if err != nil {
		return nil, err
	}
	if rates == nil {
		rates = []domain.MileageRate{}
	}
	return rates, nil
}
