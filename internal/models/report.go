package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseReport is the persisted form of a report. ReportID is the externally
// visible UUID; the internal bigserial primary key never leaves the database.
// Version backs the optimistic concurrency check on report_amount updates.
type ExpenseReport struct {
	ReportID          string          `json:"reportID"`
	UserID            string          `json:"userID"`
	ReportNumber      string          `json:"reportNumber"`
	ReportStatus      string          `json:"reportStatus"`
	ReportDate        *time.Time      `json:"reportDate"`
	ExpenseType       string          `json:"expenseType"`
	Purpose           string          `json:"purpose"`
	PaymentMethod     string          `json:"paymentMethod"`
	ReportAmount      decimal.Decimal `json:"reportAmount"`
	ReportCurrency    string          `json:"reportCurrency"`
	ReportSubmitDate  *time.Time      `json:"reportSubmitDate"`
	IntegrationStatus string          `json:"integrationStatus"`
	IntegrationDate   *time.Time      `json:"integrationDate"`
	IexpReportStatus  string          `json:"iexpReportStatus"`
	IexpReportNumber  string          `json:"iexpReportNumber"`
	PaidAmount        string          `json:"paidAmount"`
	Version           int64           `json:"-"`
	AuditFields
}
