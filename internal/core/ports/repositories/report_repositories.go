package repositories

import (
	"context"

	"github.com/zenapticlabs/expense-management-server/internal/core/domain"
	"github.com/zenapticlabs/expense-management-server/internal/models"
)

// ReportReader defines read operations for expense reports.
type ReportReader interface {
	// FindReportByID retrieves a report by its external UUID.
	FindReportByID(ctx context.Context, reportID string) (*domain.ExpenseReport, error)

	// ListReportsByUser retrieves all reports owned by userID.
	ListReportsByUser(ctx context.Context, userID string) ([]domain.ExpenseReport, error)

	// ListAllReports retrieves every report (staff only).
	ListAllReports(ctx context.Context) ([]domain.ExpenseReport, error)

	// NextReportNumber returns the next sequential report number, starting at
	// "1000" when no report exists yet.
	NextReportNumber(ctx context.Context) (string, error)
}

// ReportWriter defines write operations for expense reports.
type ReportWriter interface {
	// SaveReport inserts a new report row.
	SaveReport(ctx context.Context, report models.ExpenseReport) error

	// UpdateReport persists report iff its row version still equals
	// expectedVersion, bumping the version on success. Returns
	// apperrors.ErrConcurrentModification on a version mismatch.
	UpdateReport(ctx context.Context, report models.ExpenseReport, expectedVersion int64) error

	// DeleteReport removes the report; items and receipts cascade.
	DeleteReport(ctx context.Context, reportID string) error
}

// ReportRepositoryFacade combines all report repository interfaces.
type ReportRepositoryFacade interface {
	ReportReader
	ReportWriter
}
