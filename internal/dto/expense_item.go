package dto

import (
	"path"
	"time"

	"github.com/shopspring/decimal"
	"github.com/zenapticlabs/expense-management-server/internal/core/domain"
)

// ReceiptRequest describes one receipt attached to an item mutation. Either
// S3Path references an already-uploaded file to keep, or UploadFilename names
// a new file the caller wants a presigned upload URL for.
type ReceiptRequest struct {
	S3Path         string `json:"s3Path,omitempty"`
	UploadFilename string `json:"uploadFilename,omitempty"`
}

// CreateExpenseItemRequest defines the data needed to add an item to a report.
// Lookup fields carry the reference VALUE (e.g. airline name), resolved
// server-side; an unknown value rejects the whole mutation.
type CreateExpenseItemRequest struct {
	ExpenseType     string          `json:"expenseType" binding:"required"`
	ExpenseDate     *time.Time      `json:"expenseDate"`
	PaymentMethod   string          `json:"paymentMethod"`
	ReceiptAmount   decimal.Decimal `json:"receiptAmount" binding:"required"`
	ReceiptCurrency string          `json:"receiptCurrency" binding:"required,currencycode"`
	Justification   string          `json:"justification" binding:"max=2000"`
	Note            string          `json:"note" binding:"max=2000"`

	Airline           *string `json:"airline"`
	RentalAgency      *string `json:"rentalAgency"`
	CarType           *string `json:"carType"`
	MealCategory      *string `json:"mealCategory"`
	RelationshipToPAI *string `json:"relationshipToPai"`
	City              *string `json:"city"`

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

	Receipts []ReceiptRequest `json:"receipts"`
}

// UpdateExpenseItemRequest patches an existing item. Amount/currency fields
// are optional; omitting them keeps the stored values and skips re-settling
// that leg of the report total.
type UpdateExpenseItemRequest struct {
	ExpenseType     *string          `json:"expenseType"`
	ExpenseDate     *time.Time       `json:"expenseDate"`
	PaymentMethod   *string          `json:"paymentMethod"`
	ReceiptAmount   *decimal.Decimal `json:"receiptAmount"`
	ReceiptCurrency *string          `json:"receiptCurrency" binding:"omitempty,currencycode"`
	Justification   *string          `json:"justification" binding:"omitempty,max=2000"`
	Note            *string          `json:"note" binding:"omitempty,max=2000"`

	Airline           *string `json:"airline"`
	RentalAgency      *string `json:"rentalAgency"`
	CarType           *string `json:"carType"`
	MealCategory      *string `json:"mealCategory"`
	RelationshipToPAI *string `json:"relationshipToPai"`
	City              *string `json:"city"`

	OriginDestination        *string `json:"originDestination"`
	EmployeeNames            *string `json:"employeeNames"`
	TotalEmployees           *int    `json:"totalEmployees"`
	CompanyCustomerNameTitle *string `json:"companyCustomerNameTitle"`
	BusinessTopic            *string `json:"businessTopic"`
	TotalAttendees           *int    `json:"totalAttendees"`
	NameOfEstablishment      *string `json:"nameOfEstablishment"`
	HotelName                *string `json:"hotelName"`
	Carrier                  *string `json:"carrier"`
	Distance                 *string `json:"distance"`

	Receipts []ReceiptRequest `json:"receipts"`
}

// ReceiptResponse describes one stored receipt. PresignedURL is only populated
// on mutations (upload target) or on explicit download requests.
type ReceiptResponse struct {
	ID           int64     `json:"id"`
	Filename     string    `json:"filename"`
	S3Path       string    `json:"s3Path"`
	PresignedURL string    `json:"presignedUrl,omitempty"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

// ExpenseItemResponse defines the data returned for an expense item.
type ExpenseItemResponse struct {
	ID              string          `json:"id"`
	ReportID        string          `json:"reportId"`
	ExpenseType     string          `json:"expenseType"`
	ExpenseDate     *time.Time      `json:"expenseDate,omitempty"`
	ExchangeRate    decimal.Decimal `json:"exchangeRate"`
	PaymentMethod   string          `json:"paymentMethod"`
	ReceiptAmount   decimal.Decimal `json:"receiptAmount"`
	ReceiptCurrency string          `json:"receiptCurrency"`
	Justification   string          `json:"justification,omitempty"`
	Note            string          `json:"note,omitempty"`

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

	Receipts      []ReceiptResponse `json:"receipts"`
	CreatedAt     time.Time         `json:"createdAt"`
	LastUpdatedAt time.Time         `json:"lastUpdatedAt"`
}

// ToExpenseItemResponse converts a domain item to its response DTO.
// uploadURLs maps s3 paths to freshly presigned PUT URLs; pass nil when the
// response does not include upload targets.
func ToExpenseItemResponse(item *domain.ExpenseItem, uploadURLs map[string]string) ExpenseItemResponse {
	receipts := make([]ReceiptResponse, len(item.Receipts))
	for i, rec := range item.Receipts {
		receipts[i] = ReceiptResponse{
			ID:           rec.ReceiptID,
			Filename:     path.Base(rec.S3Path),
			S3Path:       rec.S3Path,
			PresignedURL: uploadURLs[rec.S3Path],
			UploadedAt:   rec.UploadedAt,
		}
	}
	return ExpenseItemResponse{
		ID:              item.ItemID,
		ReportID:        item.ReportID,
		ExpenseType:     item.ExpenseType,
		ExpenseDate:     item.ExpenseDate,
		ExchangeRate:    item.ExchangeRate,
		PaymentMethod:   item.PaymentMethod,
		ReceiptAmount:   item.ReceiptAmount,
		ReceiptCurrency: item.ReceiptCurrency,
		Justification:   item.Justification,
		Note:            item.Note,

		OriginDestination:        item.OriginDestination,
		EmployeeNames:            item.EmployeeNames,
		TotalEmployees:           item.TotalEmployees,
		CompanyCustomerNameTitle: item.CompanyCustomerNameTitle,
		BusinessTopic:            item.BusinessTopic,
		TotalAttendees:           item.TotalAttendees,
		NameOfEstablishment:      item.NameOfEstablishment,
		HotelName:                item.HotelName,
		Carrier:                  item.Carrier,
		Distance:                 item.Distance,

		Receipts:      receipts,
		CreatedAt:     item.CreatedAt,
		LastUpdatedAt: item.LastUpdatedAt,
	}
}

// ToListExpenseItemResponse converts a slice of domain items to DTOs.
func ToListExpenseItemResponse(items []domain.ExpenseItem) []ExpenseItemResponse {
	res := make([]ExpenseItemResponse, len(items))
	for i := range items {
		res[i] = ToExpenseItemResponse(&items[i], nil)
	}
	return res
}

// PresignedURLResponse wraps a single presigned download URL.
type PresignedURLResponse struct {
	PresignedURL string `json:"presignedUrl"`
}
