package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/zenapticlabs/expense-management-server/internal/core/domain"
	portssvc "github.com/zenapticlabs/expense-management-server/internal/core/ports/services"
)

// amountPrecision is the number of fractional digits of report totals and
// item contributions.
const amountPrecision = 2

// LedgerService keeps each report's running total consistent with its items'
// converted amounts. It mutates reports in memory only; callers persist the
// report together with the triggering item mutation in one transaction.
type LedgerService struct {
	rateSvc portssvc.RateReaderSvc
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(rateSvc portssvc.RateReaderSvc) *LedgerService {
	return &LedgerService{rateSvc: rateSvc}
}

// Apply adds amount (denominated in currency) to the report total, converted
// at the current rate, and returns the factor used so the caller can stamp it
// on the item for audit and later reversal. Rate resolution failures leave
// the report untouched.
func (s *LedgerService) Apply(ctx context.Context, report *domain.ExpenseReport, amount decimal.Decimal, currency string) (decimal.Decimal, error) {
	rate, err := s.rateSvc.ConversionRate(ctx, currency, report.ReportCurrency)
	if err != nil {
		return decimal.Zero, err
	}
	report.ReportAmount = report.ReportAmount.Add(Contribution(amount, rate))
	return rate, nil
}

// Reverse subtracts the exact contribution previously applied for amount at
// rate. The rate MUST be the one stored on the item when its amount was last
// applied; recomputing against the current snapshot would leave residue in
// the total whenever the cache rotated in between.
func (s *LedgerService) Reverse(report *domain.ExpenseReport, amount decimal.Decimal, rate decimal.Decimal) {
	report.ReportAmount = report.ReportAmount.Sub(Contribution(amount, rate))
}

// Contribution is the amount an item adds to its report total: the receipt
// amount times the conversion factor, rounded to cents. Apply and Reverse
// both round this way so a reversal always undoes an application exactly.
func Contribution(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Round(amountPrecision)
}
