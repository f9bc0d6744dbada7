package mapping

import (
	"github.com/zenapticlabs/expense-management-server/internal/core/domain"
	"github.com/zenapticlabs/expense-management-server/internal/models"
)

// ToModelExpenseReport converts a domain report to its persistence model.
func ToModelExpenseReport(r domain.ExpenseReport) models.ExpenseReport {
	return models.ExpenseReport{
		ReportID:          r.ReportID,
		UserID:            r.UserID,
		ReportNumber:      r.ReportNumber,
		ReportStatus:      string(r.ReportStatus),
		ReportDate:        r.ReportDate,
		ExpenseType:       r.ExpenseType,
		Purpose:           r.Purpose,
		PaymentMethod:     r.PaymentMethod,
		ReportAmount:      r.ReportAmount,
		ReportCurrency:    r.ReportCurrency,
		ReportSubmitDate:  r.ReportSubmitDate,
		IntegrationStatus: string(r.IntegrationStatus),
		IntegrationDate:   r.IntegrationDate,
		IexpReportStatus:  r.IexpReportStatus,
		IexpReportNumber:  r.IexpReportNumber,
		PaidAmount:        r.PaidAmount,
		Version:           r.Version,
		AuditFields:       ToModelAuditFields(r.AuditFields),
	}
}

// ToDomainExpenseReport converts a persistence model to the domain report.
func ToDomainExpenseReport(r models.ExpenseReport) domain.ExpenseReport {
	return domain.ExpenseReport{
		ReportID:          r.ReportID,
		UserID:            r.UserID,
		ReportNumber:      r.ReportNumber,
		ReportStatus:      domain.ReportStatus(r.ReportStatus),
		ReportDate:        r.ReportDate,
		ExpenseType:       r.ExpenseType,
		Purpose:           r.Purpose,
		PaymentMethod:     r.PaymentMethod,
		ReportAmount:      r.ReportAmount,
		ReportCurrency:    r.ReportCurrency,
		ReportSubmitDate:  r.ReportSubmitDate,
		IntegrationStatus: domain.IntegrationStatus(r.IntegrationStatus),
		IntegrationDate:   r.IntegrationDate,
		IexpReportStatus:  r.IexpReportStatus,
		IexpReportNumber:  r.IexpReportNumber,
		PaidAmount:        r.PaidAmount,
		Version:           r.Version,
		AuditFields:       ToDomainAuditFields(r.AuditFields),
	}
}
