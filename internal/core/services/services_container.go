package services

import (
	portsprov "github.com/zenapticlabs/expense-management-server/internal/core/ports/providers"
	portsrepo "github.com/zenapticlabs/expense-management-server/internal/core/ports/repositories"
	portssvc "github.com/zenapticlabs/expense-management-server/internal/core/ports/services"
	"github.com/zenapticlabs/expense-management-server/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, rateProvider portsprov.RateProvider, receiptStore portsprov.ReceiptStore) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Rate service first since the ledger and item lifecycle depend on it
	rateSvc := NewRateService(
		repos.ExchangeRateRepo,
		rateProvider,
		WithRetryPolicy(cfg.RateFetchAttempts, cfg.RateFetchBackoff, cfg.RateFetchBackoffFactor),
	)
	container.Rate = rateSvc

	ledger := NewLedgerService(rateSvc)

	container.Report = NewReportService(repos.ReportRepo, repos.UserRepo)
	container.Item = NewItemService(
		repos.ItemRepo,
		repos.ReportRepo,
		repos.LookupRepo,
		repos.UserRepo,
		ledger,
		receiptStore,
		WithPresignTTL(cfg.PresignTTL),
	)
	container.Lookup = NewLookupService(repos.LookupRepo)
	container.User = NewUserService(repos.UserRepo)

	return container
}

// Compile-time checks that the implementations satisfy their facades.
var (
	_ portssvc.RateSvcFacade   = (*RateService)(nil)
	_ portssvc.ReportSvcFacade = (*ReportService)(nil)
	_ portssvc.ItemSvcFacade   = (*ItemService)(nil)
	_ portssvc.LookupSvcFacade = (*LookupService)(nil)
	_ portssvc.UserSvcFacade   = (*UserService)(nil)
)
