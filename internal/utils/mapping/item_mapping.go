package mapping

import (
	"github.com/zenapticlabs/expense-management-server/internal/core/domain"
	"github.com/zenapticlabs/expense-management-server/internal/models"
)

// ToModelExpenseItem converts a domain item to its persistence model.
func ToModelExpenseItem(i domain.ExpenseItem) models.ExpenseItem {
	return models.ExpenseItem{
		ItemID:          i.ItemID,
		ReportID:        i.ReportID,
		ExpenseType:     i.ExpenseType,
		ExpenseDate:     i.ExpenseDate,
		ExchangeRate:    i.ExchangeRate,
		PaymentMethod:   i.PaymentMethod,
		ReceiptAmount:   i.ReceiptAmount,
		ReceiptCurrency: i.ReceiptCurrency,
		Justification:   i.Justification,
		Note:            i.Note,

		AirlineID:            i.AirlineID,
		RentalAgencyID:       i.RentalAgencyID,
		CarTypeID:            i.CarTypeID,
		MealCategoryID:       i.MealCategoryID,
		RelationshipToPAIID:  i.RelationshipToPAIID,
		CityID:               i.CityID,
		HotelDailyBaseRateID: i.HotelDailyBaseRateID,
		MileageRateID:        i.MileageRateID,

		OriginDestination:        i.OriginDestination,
		EmployeeNames:            i.EmployeeNames,
		TotalEmployees:           i.TotalEmployees,
		CompanyCustomerNameTitle: i.CompanyCustomerNameTitle,
		BusinessTopic:            i.BusinessTopic,
		TotalAttendees:           i.TotalAttendees,
		NameOfEstablishment:      i.NameOfEstablishment,
		HotelName:                i.HotelName,
		Carrier:                  i.Carrier,
		Distance:                 i.Distance,

		AuditFields: ToModelAuditFields(i.AuditFields),
	}
}

// ToDomainExpenseItem converts a persistence model to the domain item.
// Receipts are attached separately by the repository.
func ToDomainExpenseItem(i models.ExpenseItem) domain.ExpenseItem {
	return domain.ExpenseItem{
		ItemID:          i.ItemID,
		ReportID:        i.ReportID,
		ExpenseType:     i.ExpenseType,
		ExpenseDate:     i.ExpenseDate,
		ExchangeRate:    i.ExchangeRate,
		PaymentMethod:   i.PaymentMethod,
		ReceiptAmount:   i.ReceiptAmount,
		ReceiptCurrency: i.ReceiptCurrency,
		Justification:   i.Justification,
		Note:            i.Note,

		AirlineID:            i.AirlineID,
		RentalAgencyID:       i.RentalAgencyID,
		CarTypeID:            i.CarTypeID,
		MealCategoryID:       i.MealCategoryID,
		RelationshipToPAIID:  i.RelationshipToPAIID,
		CityID:               i.CityID,
		HotelDailyBaseRateID: i.HotelDailyBaseRateID,
		MileageRateID:        i.MileageRateID,

		OriginDestination:        i.OriginDestination,
		EmployeeNames:            i.EmployeeNames,
		TotalEmployees:           i.TotalEmployees,
		CompanyCustomerNameTitle: i.CompanyCustomerNameTitle,
		BusinessTopic:            i.BusinessTopic,
		TotalAttendees:           i.TotalAttendees,
		NameOfEstablishment:      i.NameOfEstablishment,
		HotelName:                i.HotelName,
		Carrier:                  i.Carrier,
		Distance:                 i.Distance,

		AuditFields: ToDomainAuditFields(i.AuditFields),
	}
}

// ToDomainExpenseReceipt converts a persistence receipt row to the domain type.
func ToDomainExpenseReceipt(r models.ExpenseReceipt) domain.ExpenseReceipt {
	return domain.ExpenseReceipt{
		ReceiptID:  r.ReceiptID,
		ItemID:     r.ItemID,
		S3Path:     r.S3Path,
		UploadedAt: r.UploadedAt,
	}
}
