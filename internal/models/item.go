package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseItem is the persisted form of an expense line. Lookup references are
// stored as nullable foreign keys; ExchangeRate is numeric(20,6).
type ExpenseItem struct {
	ItemID          string          `json:"itemID"`
	ReportID        string          `json:"reportID"`
	ExpenseType     string          `json:"expenseType"`
	ExpenseDate     *time.Time      `json:"expenseDate"`
	ExchangeRate    decimal.Decimal `json:"exchangeRate"`
	PaymentMethod   string          `json:"paymentMethod"`
	ReceiptAmount   decimal.Decimal `json:"receiptAmount"`
	ReceiptCurrency string          `json:"receiptCurrency"`
	Justification   string          `json:"justification"`
	Note            string          `json:"note"`

	AirlineID            *int64 `json:"airlineID"`
	RentalAgencyID       *int64 `json:"rentalAgencyID"`
	CarTypeID            *int64 `json:"carTypeID"`
	MealCategoryID       *int64 `json:"mealCategoryID"`
	RelationshipToPAIID  *int64 `json:"relationshipToPaiID"`
	CityID               *int64 `json:"cityID"`
	HotelDailyBaseRateID *int64 `json:"hotelDailyBaseRateID"`
	MileageRateID        *int64 `json:"mileageRateID"`

	OriginDestination        string `json:"originDestination"`
	EmployeeNames            string `json:"employeeNames"`
	TotalEmployees           *int   `json:"totalEmployees"`
	CompanyCustomerNameTitle string `json:"companyCustomerNameTitle"`
	BusinessTopic            string `json:"businessTopic"`
	TotalAttendees           *int   `json:"totalAttendees"`
	NameOfEstablishment      string `json:"nameOfEstablishment"`
	HotelName                string `json:"hotelName"`
	Carrier                  string `json:"carrier"`
	Distance                 string `json:"distance"`

	AuditFields
}

// ExpenseReceipt is the persisted record of an uploaded receipt file.
type ExpenseReceipt struct {
	ReceiptID  int64     `json:"receiptID"`
	ItemID     string    `json:"itemID"`
	S3Path     string    `json:"s3Path"`
	UploadedAt time.Time `json:"uploadedAt"`
}
