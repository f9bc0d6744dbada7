package services

import (
	"context"

	"github.com/zenapticlabs/expense-management-server/internal/core/domain"
)

// LookupSvcFacade serves the reference tables consumed by the expense UI.
type LookupSvcFacade interface {
	ListValues(ctx context.Context, kind domain.LookupKind) ([]domain.LookupValue, error)
	ListHotelRates(ctx context.Context) ([]domain.HotelDailyBaseRate, error)
	ListMileageRates(ctx context.Context) ([]domain.MileageRate, error)
}
