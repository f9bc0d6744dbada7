package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/zenapticlabs/expense-management-server/internal/core/domain"
)

// CreateReportRequest defines the data needed to open a new expense report.
// The report always starts Open with a zero amount; currency defaults to the
// owner's currency when omitted.
type CreateReportRequest struct {
	ExpenseType    string     `json:"expenseType" binding:"required"`
	Purpose        string     `json:"purpose" binding:"required,max=1000"`
	PaymentMethod  string     `json:"paymentMethod" binding:"required"`
	ReportCurrency string     `json:"reportCurrency" binding:"omitempty,currencycode"`
	ReportDate     *time.Time `json:"reportDate"`
}

// UpdateReportRequest defines the mutable report metadata. Amount, number and
// workflow state are never updated through this request.
type UpdateReportRequest struct {
	ExpenseType   *string    `json:"expenseType"`
	Purpose       *string    `json:"purpose" binding:"omitempty,max=1000"`
	PaymentMethod *string    `json:"paymentMethod"`
	ReportDate    *time.Time `json:"reportDate"`
}

// UpdateReportStatusRequest is the administrative status override.
type UpdateReportStatusRequest struct {
	ReportStatus      string     `json:"reportStatus" binding:"required"`
	IntegrationStatus *string    `json:"integrationStatus"`
	IntegrationDate   *time.Time `json:"integrationDate"`
	IexpReportStatus  *string    `json:"iexpReportStatus"`
	IexpReportNumber  *string    `json:"iexpReportNumber"`
	PaidAmount        *string    `json:"paidAmount"`
}

// ExpenseReportResponse defines the data returned for a report.
type ExpenseReportResponse struct {
	ID                string          `json:"id"`
	ReportNumber      string          `json:"reportNumber"`
	ReportStatus      string          `json:"reportStatus"`
	ReportDate        *time.Time      `json:"reportDate,omitempty"`
	ExpenseType       string          `json:"expenseType"`
	Purpose           string          `json:"purpose"`
	PaymentMethod     string          `json:"paymentMethod"`
	ReportAmount      decimal.Decimal `json:"reportAmount"`
	ReportCurrency    string          `json:"reportCurrency"`
	ReportSubmitDate  *time.Time      `json:"reportSubmitDate,omitempty"`
	IntegrationStatus string          `json:"integrationStatus"`
	IntegrationDate   *time.Time      `json:"integrationDate,omitempty"`
	IexpReportStatus  string          `json:"iexpReportStatus,omitempty"`
	IexpReportNumber  string          `json:"iexpReportNumber,omitempty"`
	PaidAmount        string          `json:"paidAmount,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	LastUpdatedAt     time.Time       `json:"lastUpdatedAt"`
}

// ToExpenseReportResponse converts a domain report to its response DTO.
func ToExpenseReportResponse(r *domain.ExpenseReport) ExpenseReportResponse {
	return ExpenseReportResponse{
		ID:                r.ReportID,
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
		CreatedAt:         r.CreatedAt,
		LastUpdatedAt:     r.LastUpdatedAt,
	}
}

// ToListExpenseReportResponse converts a slice of domain reports to DTOs.
func ToListExpenseReportResponse(reports []domain.ExpenseReport) []ExpenseReportResponse {
	res := make([]ExpenseReportResponse, len(reports))
	for i := range reports {
		res[i] = ToExpenseReportResponse(&reports[i])
	}
	return res
}
