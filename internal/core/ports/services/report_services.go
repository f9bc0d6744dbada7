package services

import (
	"context"

	"github.com/zenapticlabs/expense-management-server/internal/core/domain"
	"github.com/zenapticlabs/expense-management-server/internal/dto"
)

// ReportReaderSvc defines read operations for expense reports. All reads are
// scoped to the requesting user; staff users see every report.
type ReportReaderSvc interface {
	GetReport(ctx context.Context, userID, reportID string) (*domain.ExpenseReport, error)
	ListReports(ctx context.Context, userID string) ([]domain.ExpenseReport, error)
}

// ReportWriterSvc defines write operations for expense reports. The report
// amount itself is never written here; only the ledger mutates it.
type ReportWriterSvc interface {
	CreateReport(ctx context.Context, req dto.CreateReportRequest, userID string) (*domain.ExpenseReport, error)
	UpdateReport(ctx context.Context, userID, reportID string, req dto.UpdateReportRequest) (*domain.ExpenseReport, error)
	DeleteReport(ctx context.Context, userID, reportID string) error

	// SubmitReport advances an Open report to Submitted, stamping the submit date.
	SubmitReport(ctx context.Context, userID, reportID string) (*domain.ExpenseReport, error)

	// UpdateReportStatus is the administrative override; it may set any
	// workflow state regardless of the normal monotonic progression. The
	// actor must be staff.
	UpdateReportStatus(ctx context.Context, actorID, reportID string, req dto.UpdateReportStatusRequest) (*domain.ExpenseReport, error)
}

// ReportSvcFacade combines all report service interfaces.
type ReportSvcFacade interface {
	ReportReaderSvc
	ReportWriterSvc
}
