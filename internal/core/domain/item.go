package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseItem is a single expense line belonging to exactly one report.
// ExchangeRate is the conversion factor from ReceiptCurrency to the report's
// currency captured when the amount was last applied to the report total. It
// is stored for audit and reversal, never recomputed retroactively.
type ExpenseItem struct {
	ItemID          string          `json:"itemID"` // external UUID
	ReportID        string          `json:"reportID"`
	ExpenseType     string          `json:"expenseType"`
	ExpenseDate     *time.Time      `json:"expenseDate,omitempty"`
	ExchangeRate    decimal.Decimal `json:"exchangeRate"`
	PaymentMethod   string          `json:"paymentMethod"`
	ReceiptAmount   decimal.Decimal `json:"receiptAmount"`
	ReceiptCurrency string          `json:"receiptCurrency"`
	Justification   string          `json:"justification,omitempty"`
	Note            string          `json:"note,omitempty"`

	// Resolved lookup references; empty when not applicable to the expense type.
	AirlineID            *int64 `json:"-"`
	RentalAgencyID       *int64 `json:"-"`
	CarTypeID            *int64 `json:"-"`
	MealCategoryID       *int64 `json:"-"`
	RelationshipToPAIID  *int64 `json:"-"`
	CityID               *int64 `json:"-"`
	HotelDailyBaseRateID *int64 `json:"-"`
	MileageRateID        *int64 `json:"-"`

	OriginDestination        string `json:"originDestination,omitempty"`
	EmployeeNames            string `json:"employeeNames,omitempty"`
	TotalEmployees           *int   `json:"totalEmployees,omitempty"`
	CompanyCustomerNameTitle string `json:"companyCustomerNameTitle,omitempty"`
	BusinessTopic            string `json:"businessTopic,omitempty"`
	TotalAttendees           *int   `json:"totalAttendees,omitempty"`
	NameOfEstablishment      string `json:"nameOfEstablishment,omitempty"`
	HotelName                string `json:"hotelName,omitempty"`
	Carrier                  string `json:"carrier,omitempty"`
	Distance                 string `json:"distance,omitempty"`

	Receipts []ExpenseReceipt `json:"receipts,omitempty"`
	AuditFields
}

// ExpenseReceipt is an uploaded receipt file attached to an expense item.
// The object itself lives in S3 under S3Path.
type ExpenseReceipt struct {
	ReceiptID  int64     `json:"receiptID"`
	ItemID     string    `json:"itemID"`
	S3Path     string    `json:"s3Path"`
	UploadedAt time.Time `json:"uploadedAt"`
}
