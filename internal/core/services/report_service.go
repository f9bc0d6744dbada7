package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/zenapticlabs/expense-management-server/internal/apperrors"
	"github.com/zenapticlabs/expense-management-server/internal/core/domain"
	portsrepo "github.com/zenapticlabs/expense-management-server/internal/core/ports/repositories"
	"github.com/zenapticlabs/expense-management-server/internal/dto"
	"github.com/zenapticlabs/expense-management-server/internal/utils"
	"github.com/zenapticlabs/expense-management-server/internal/utils/mapping"
)

// ReportService manages the expense report lifecycle. Report amounts are
// never written here: the total belongs to the ledger, updated through item
// mutations.
type ReportService struct {
	reportRepo portsrepo.ReportRepositoryFacade
	userRepo   portsrepo.UserReader
	now        func() time.Time
}

// ReportServiceOption customizes a ReportService.
type ReportServiceOption func(*ReportService)

// WithReportClock overrides the time source, for tests.
func WithReportClock(now func() time.Time) ReportServiceOption {
	return func(s *ReportService) { s.now = now }
}

// NewReportService creates a new ReportService.
func NewReportService(reportRepo portsrepo.ReportRepositoryFacade, userRepo portsrepo.UserReader, opts ...ReportServiceOption) *ReportService {
	s := &ReportService{
		reportRepo: reportRepo,
		userRepo:   userRepo,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateReport opens a new report for the user. It always starts Open with a
// zero amount and the next sequential report number; the currency defaults to
// the owner's preferred currency.
func (s *ReportService) CreateReport(ctx context.Context, req dto.CreateReportRequest, userID string) (*domain.ExpenseReport, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %s: %w", userID, err)
	}

	currency := req.ReportCurrency
	if currency == "" {
		currency = user.Currency
	}
	if currency == "" {
		currency = domain.BaseCurrency
	}
	currency, err = utils.NormalizeCurrencyCode(currency)
	if err != nil {
		return nil, err
	}

	number, err := s.reportRepo.NextReportNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate report number: %w", err)
	}

	now := s.now().UTC()
	report := domain.ExpenseReport{
		ReportID:          uuid.NewString(),
		UserID:            userID,
		ReportNumber:      number,
		ReportStatus:      domain.ReportOpen,
		ReportDate:        req.ReportDate,
		ExpenseType:       req.ExpenseType,
		Purpose:           req.Purpose,
		PaymentMethod:     req.PaymentMethod,
		ReportAmount:      decimal.Zero,
		ReportCurrency:    currency,
		IntegrationStatus: domain.IntegrationPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.reportRepo.SaveReport(ctx, mapping.ToModelExpenseReport(report)); err != nil {
		return nil, fmt.Errorf("failed to create expense report: %w", err)
	}
	return &report, nil
}

// GetReport retrieves a report the user owns; staff can read any report.
func (s *ReportService) GetReport(ctx context.Context, userID, reportID string) (*domain.ExpenseReport, error) {
	report, _, err := s.visibleReport(ctx, userID, reportID)
	return report, err
}

// ListReports retrieves the user's reports, or every report for staff.
func (s *ReportService) ListReports(ctx context.Context, userID string) ([]domain.ExpenseReport, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %s: %w", userID, err)
	}
	var reports []domain.ExpenseReport
	if user.IsStaff {
		reports, err = s.reportRepo.ListAllReports(ctx)
	} else {
		reports, err = s.reportRepo.ListReportsByUser(ctx, userID)
	}
	if err != nil {
		return nil, err
	}
	if reports == nil {
		reports = []domain.ExpenseReport{}
	}
	return reports, nil
}

// UpdateReport patches report metadata. Amount, number, currency and workflow
// state are not touched here.
func (s *ReportService) UpdateReport(ctx context.Context, userID, reportID string, req dto.UpdateReportRequest) (*domain.ExpenseReport, error) {
	report, _, err := s.visibleReport(ctx, userID, reportID)
	if err != nil {
		return nil, err
	}

	if req.ExpenseType != nil {
		report.ExpenseType = *req.ExpenseType
	}
	if req.Purpose != nil {
		report.Purpose = *req.Purpose
	}
	if req.PaymentMethod != nil {
		report.PaymentMethod = *req.PaymentMethod
	}
	if req.ReportDate != nil {
		report.ReportDate = req.ReportDate
	}
	report.LastUpdatedAt = s.now().UTC()
	report.LastUpdatedBy = userID

	if err := s.reportRepo.UpdateReport(ctx, mapping.ToModelExpenseReport(*report), report.Version); err != nil {
		return nil, fmt.Errorf("failed to update expense report: %w", err)
	}
	report.Version++
	return report, nil
}

// SubmitReport moves an Open report into Submitted and stamps the submit date.
func (s *ReportService) SubmitReport(ctx context.Context, userID, reportID string) (*domain.ExpenseReport, error) {
	report, _, err := s.visibleReport(ctx, userID, reportID)
	if err != nil {
		return nil, err
	}
	if report.ReportStatus != domain.ReportOpen {
		return nil, fmt.Errorf("%w: report %s is %s, only Open reports can be submitted", apperrors.ErrValidation, reportID, report.ReportStatus)
	}

	now := s.now().UTC()
	report.ReportStatus = domain.ReportSubmitted
	report.ReportSubmitDate = &now
	report.LastUpdatedAt = now
	report.LastUpdatedBy = userID

	if err := s.reportRepo.UpdateReport(ctx, mapping.ToModelExpenseReport(*report), report.Version); err != nil {
		return nil, fmt.Errorf("failed to submit expense report: %w", err)
	}
	report.Version++
	return report, nil
}

// UpdateReportStatus is the administrative workflow override, used by staff to
// record approval decisions and downstream integration results.
func (s *ReportService) UpdateReportStatus(ctx context.Context, actorID, reportID string, req dto.UpdateReportStatusRequest) (*domain.ExpenseReport, error) {
	actor, err := s.userRepo.FindUserByID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %s: %w", actorID, err)
	}
	if !actor.IsStaff {
		return nil, fmt.Errorf("%w: status changes require staff access", apperrors.ErrForbidden)
	}

	report, err := s.reportRepo.FindReportByID(ctx, reportID)
	if err != nil {
		return nil, err
	}

	status := domain.ReportStatus(req.ReportStatus)
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown report status %q", apperrors.ErrValidation, req.ReportStatus)
	}
	report.ReportStatus = status
	if req.IntegrationStatus != nil {
		report.IntegrationStatus = domain.IntegrationStatus(*req.IntegrationStatus)
	}
	if req.IntegrationDate != nil {
		report.IntegrationDate = req.IntegrationDate
	}
	if req.IexpReportStatus != nil {
		report.IexpReportStatus = *req.IexpReportStatus
	}
	if req.IexpReportNumber != nil {
		report.IexpReportNumber = *req.IexpReportNumber
	}
	if req.PaidAmount != nil {
		report.PaidAmount = *req.PaidAmount
	}
	report.LastUpdatedAt = s.now().UTC()
	report.LastUpdatedBy = actorID

	if err := s.reportRepo.UpdateReport(ctx, mapping.ToModelExpenseReport(*report), report.Version); err != nil {
		return nil, fmt.Errorf("failed to update report status: %w", err)
	}
	report.Version++
	return report, nil
}

// DeleteReport removes a report and everything under it.
func (s *ReportService) DeleteReport(ctx context.Context, userID, reportID string) error {
	report, _, err := s.visibleReport(ctx, userID, reportID)
	if err != nil {
		return err
	}
	if err := s.reportRepo.DeleteReport(ctx, report.ReportID); err != nil {
		return fmt.Errorf("failed to delete expense report: %w", err)
	}
	return nil
}

// visibleReport loads a report and enforces ownership; staff see everything.
// Unauthorized access is indistinguishable from a missing report.
func (s *ReportService) visibleReport(ctx context.Context, userID, reportID string) (*domain.ExpenseReport, *domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load user %s: %w", userID, err)
	}
	report, err := s.reportRepo.FindReportByID(ctx, reportID)
	if err != nil {
		return nil, nil, err
	}
	if report.UserID != userID && !user.IsStaff {
		return nil, nil, fmt.Errorf("%w: report %s", apperrors.ErrNotFound, reportID)
	}
	return report, user, nil
}
