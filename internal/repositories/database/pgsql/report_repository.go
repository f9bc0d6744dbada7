package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zenapticlabs/expense-management-server/internal/apperrors"
	"github.com/zenapticlabs/expense-management-server/internal/core/domain"
	"github.com/zenapticlabs/expense-management-server/internal/models"
	"github.com/zenapticlabs/expense-management-server/internal/utils/mapping"
)

const reportColumns = `
	report_id, user_id, report_number, report_status, report_date,
	expense_type, purpose, payment_method, report_amount, report_currency,
	report_submit_date, integration_status, integration_date,
	iexp_report_status, iexp_report_number, paid_amount, version,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxReportRepository persists expense reports using pgxpool.
type PgxReportRepository struct {
	BaseRepository
}

func newPgxReportRepository(db *pgxpool.Pool) *PgxReportRepository {
	return &PgxReportRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

func scanReport(row pgx.Row) (*models.ExpenseReport, error) {
	var m models.ExpenseReport
	err := row.Scan(
		&m.ReportID, &m.UserID, &m.ReportNumber, &m.ReportStatus, &m.ReportDate,
		&m.ExpenseType, &m.Purpose, &m.PaymentMethod, &m.ReportAmount, &m.ReportCurrency,
		&m.ReportSubmitDate, &m.IntegrationStatus, &m.IntegrationDate,
		&m.IexpReportStatus, &m.IexpReportNumber, &m.PaidAmount, &m.Version,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindReportByID retrieves a report by its external UUID.
func (r *PgxReportRepository) FindReportByID(ctx context.Context, reportID string) (*domain.ExpenseReport, error) {
	query := `SELECT ` + reportColumns + ` FROM expense_report WHERE report_id = $1;`

	m, err := scanReport(r.Pool.QueryRow(ctx, query, reportID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: report %s", apperrors.ErrNotFound, reportID)
		}
		return nil, fmt.Errorf("failed to find report %s: %w", reportID, err)
	}

	report := mapping.ToDomainExpenseReport(*m)
	return &report, nil
}

// ListReportsByUser retrieves all reports owned by userID, newest first.
func (r *PgxReportRepository) ListReportsByUser(ctx context.Context, userID string) ([]domain.ExpenseReport, error) {
	query := `SELECT ` + reportColumns + ` FROM expense_report WHERE user_id = $1 ORDER BY created_at DESC;`
	return r.listReports(ctx, query, userID)
}

// ListAllReports retrieves every report, newest first.
func (r *PgxReportRepository) ListAllReports(ctx context.Context) ([]domain.ExpenseReport, error) {
	query := `SELECT ` + reportColumns + ` FROM expense_report ORDER BY created_at DESC;`
	return r.listReports(ctx, query)
}

func (r *PgxReportRepository) listReports(ctx context.Context, query string, args ...any) ([]domain.ExpenseReport, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var reports []domain.ExpenseReport
	for rows.Next() {
		m, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		reports = append(reports, mapping.ToDomainExpenseReport(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating report rows: %w", err)
	}
	return reports, nil
}

// NextReportNumber allocates the next sequential report number, starting at
// 1000 for the very first report.
func (r *PgxReportRepository) NextReportNumber(ctx context.Context) (string, error) {
	var number string
	err := r.Pool.QueryRow(ctx,
		`SELECT COALESCE(MAX(report_number::bigint) + 1, 1000)::text FROM expense_report;`,
	).Scan(&number)
	if err != nil {
		return "", fmt.Errorf("failed to allocate report number: %w", err)
	}
	return number, nil
}

// SaveReport inserts a new report row with version 1.
func (r *PgxReportRepository) SaveReport(ctx context.Context, report models.ExpenseReport) error {
	query := `
		INSERT INTO expense_report (
			report_id, user_id, report_number, report_status, report_date,
			expense_type, purpose, payment_method, report_amount, report_currency,
			report_submit_date, integration_status, integration_date,
			iexp_report_status, iexp_report_number, paid_amount, version,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, 1, $17, $18, $19, $20);
	`
	_, err := r.Pool.Exec(ctx, query,
		report.ReportID, report.UserID, report.ReportNumber, report.ReportStatus, report.ReportDate,
		report.ExpenseType, report.Purpose, report.PaymentMethod, report.ReportAmount, report.ReportCurrency,
		report.ReportSubmitDate, report.IntegrationStatus, report.IntegrationDate,
		report.IexpReportStatus, report.IexpReportNumber, report.PaidAmount,
		report.CreatedAt, report.CreatedBy, report.LastUpdatedAt, report.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert report: %w", err)
	}
	return nil
}

// UpdateReport persists the report iff its row version still equals
// expectedVersion.
func (r *PgxReportRepository) UpdateReport(ctx context.Context, report models.ExpenseReport, expectedVersion int64) error {
	return updateReportVersioned(ctx, r.Pool, report, expectedVersion)
}

// DeleteReport removes the report; item and receipt rows cascade.
func (r *PgxReportRepository) DeleteReport(ctx context.Context, reportID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM expense_report WHERE report_id = $1;`, reportID)
	if err != nil {
		return fmt.Errorf("failed to delete report %s: %w", reportID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: report %s", apperrors.ErrNotFound, reportID)
	}
	return nil
}

// execer is the subset of pgxpool.Pool and pgx.Tx used by the versioned
// report update, so item mutations can run it inside their transaction.
type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// updateReportVersioned compares-and-swaps the report row on its version
// column. Zero rows affected means either the row is gone or someone else
// bumped the version first.
func updateReportVersioned(ctx context.Context, db execer, report models.ExpenseReport, expectedVersion int64) error {
	query := `
		UPDATE expense_report
		SET report_status = $1, report_date = $2, expense_type = $3, purpose = $4,
		    payment_method = $5, report_amount = $6, report_currency = $7,
		    report_submit_date = $8, integration_status = $9, integration_date = $10,
		    iexp_report_status = $11, iexp_report_number = $12, paid_amount = $13,
		    version = version + 1, last_updated_at = $14, last_updated_by = $15
		WHERE report_id = $16 AND version = $17;
	`
	tag, err := db.Exec(ctx, query,
		report.ReportStatus, report.ReportDate, report.ExpenseType, report.Purpose,
		report.PaymentMethod, report.ReportAmount, report.ReportCurrency,
		report.ReportSubmitDate, report.IntegrationStatus, report.IntegrationDate,
		report.IexpReportStatus, report.IexpReportNumber, report.PaidAmount,
		report.LastUpdatedAt, report.LastUpdatedBy,
		report.ReportID, expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to update report %s: %w", report.ReportID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: report %s (expected version %d)", apperrors.ErrConcurrentModification, report.ReportID, expectedVersion)
	}
	return nil
}
