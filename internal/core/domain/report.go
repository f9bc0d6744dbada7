package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportStatus is the workflow state of an expense report.
type ReportStatus string

const (
	ReportOpen      ReportStatus = "Open"
	ReportSubmitted ReportStatus = "Submitted"
	ReportApproved  ReportStatus = "Approved"
	ReportRejected  ReportStatus = "Rejected"
	ReportPaid      ReportStatus = "Paid"
)

// Valid reports whether s is a recognized workflow state.
func (s ReportStatus) Valid() bool {
	switch s {
	case ReportOpen, ReportSubmitted, ReportApproved, ReportRejected, ReportPaid:
		return true
	}
	return false
}

// IntegrationStatus tracks the downstream accounting integration of a report.
type IntegrationStatus string

const (
	IntegrationPending IntegrationStatus = "Pending"
	IntegrationSuccess IntegrationStatus = "Success"
	IntegrationFailure IntegrationStatus = "Failure"
)

// ExpenseReport is a collection of expense items owned by one user.
// ReportAmount is the running total of all active items converted into
// ReportCurrency at the rate in effect when each item's amount was last
// applied; it is maintained exclusively by the ledger.
type ExpenseReport struct {
	ReportID          string            `json:"reportID"` // external UUID, distinct from the DB sequence
	UserID            string            `json:"userID"`
	ReportNumber      string            `json:"reportNumber"`
	ReportStatus      ReportStatus      `json:"reportStatus"`
	ReportDate        *time.Time        `json:"reportDate,omitempty"`
	ExpenseType       string            `json:"expenseType"`
	Purpose           string            `json:"purpose"`
	PaymentMethod     string            `json:"paymentMethod"`
	ReportAmount      decimal.Decimal   `json:"reportAmount"`
	ReportCurrency    string            `json:"reportCurrency"`
	ReportSubmitDate  *time.Time        `json:"reportSubmitDate,omitempty"`
	IntegrationStatus IntegrationStatus `json:"integrationStatus"`
	IntegrationDate   *time.Time        `json:"integrationDate,omitempty"`
	IexpReportStatus  string            `json:"iexpReportStatus,omitempty"`
	IexpReportNumber  string            `json:"iexpReportNumber,omitempty"`
	PaidAmount        string            `json:"paidAmount,omitempty"`
	Version           int64             `json:"-"` // optimistic concurrency token
	AuditFields
}
