package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/zenapticlabs/expense-management-server/internal/apperrors"
	"github.com/zenapticlabs/expense-management-server/internal/core/domain"
	"github.com/zenapticlabs/expense-management-server/internal/core/services"
	"github.com/zenapticlabs/expense-management-server/internal/dto"
)

// --- Mock RateReaderSvc ---
type MockRateSvc struct {
	mock.Mock
}

func (m *MockRateSvc) EnsureFresh(ctx context.Context) (*domain.RateSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateSnapshot), args.Error(1)
}

func (m *MockRateSvc) ConversionRate(ctx context.Context, fromCurrency, toCurrency string) (decimal.Decimal, error) {
	args := m.Called(ctx, fromCurrency, toCurrency)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockRateSvc) ListRates(ctx context.Context, baseCurrency string) (*dto.ListRatesResponse, error) {
	args := m.Called(ctx, baseCurrency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListRatesResponse), args.Error(1)
}

type LedgerServiceTestSuite struct {
	suite.Suite
	mockRates *MockRateSvc
	ledger    *services.LedgerService
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockRates = new(MockRateSvc)
	suite.ledger = services.NewLedgerService(suite.mockRates)
}

func (suite *LedgerServiceTestSuite) usdReport() *domain.ExpenseReport {
	return &domain.ExpenseReport{
		ReportID:       "r-1",
		ReportCurrency: "USD",
		ReportAmount:   decimal.Zero,
	}
}

func (suite *LedgerServiceTestSuite) TestApply_ConvertsAndRoundsToCents() {
	ctx := context.Background()
	report := suite.usdReport()
	// 1 EUR = 1.111111 USD with a 0.90 EUR/USD table.
	suite.mockRates.On("ConversionRate", ctx, "EUR", "USD").
		Return(decimal.RequireFromString("1.111111"), nil).Once()

	rate, err := suite.ledger.Apply(ctx, report, decimal.RequireFromString("100"), "EUR")

	suite.Require().NoError(err)
	suite.Equal("1.111111", rate.String())
	suite.Equal("111.11", report.ReportAmount.StringFixed(2))
	suite.mockRates.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestApply_RateFailureLeavesReportUntouched() {
	ctx := context.Background()
	report := suite.usdReport()
	report.ReportAmount = decimal.RequireFromString("42.42")

	suite.mockRates.On("ConversionRate", ctx, "EUR", "USD").
		Return(decimal.Zero, apperrors.ErrRateUnavailable).Once()

	_, err := suite.ledger.Apply(ctx, report, decimal.RequireFromString("100"), "EUR")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrRateUnavailable)
	suite.Equal("42.42", report.ReportAmount.StringFixed(2))
}

func (suite *LedgerServiceTestSuite) TestReverse_UndoesAnApplicationExactly() {
	ctx := context.Background()
	report := suite.usdReport()
	rateAtApply := decimal.RequireFromString("1.111111")

	suite.mockRates.On("ConversionRate", ctx, "EUR", "USD").Return(rateAtApply, nil).Once()

	stamped, err := suite.ledger.Apply(ctx, report, decimal.RequireFromString("100"), "EUR")
	suite.Require().NoError(err)

	// The cache may rotate in between; reversal at the stamped rate must
	// still return the total to exactly zero.
	suite.ledger.Reverse(report, decimal.RequireFromString("100"), stamped)

	suite.Equal("0.00", report.ReportAmount.StringFixed(2))
}

func (suite *LedgerServiceTestSuite) TestUpdateSettlement_ReverseOldThenApplyNew() {
	ctx := context.Background()
	report := suite.usdReport()
	rate := decimal.RequireFromString("1.111111")

	suite.mockRates.On("ConversionRate", ctx, "EUR", "USD").Return(rate, nil).Twice()

	// Item created at 100 EUR.
	stamped, err := suite.ledger.Apply(ctx, report, decimal.RequireFromString("100"), "EUR")
	suite.Require().NoError(err)
	suite.Equal("111.11", report.ReportAmount.StringFixed(2))

	// Item amount changes to 50 EUR: reverse the old leg, apply the new one.
	suite.ledger.Reverse(report, decimal.RequireFromString("100"), stamped)
	_, err = suite.ledger.Apply(ctx, report, decimal.RequireFromString("50"), "EUR")
	suite.Require().NoError(err)

	// 50 * 1.111111 = 55.55555 rounds to 55.56, not 111.11/2.
	suite.Equal("55.56", report.ReportAmount.StringFixed(2))
}

func (suite *LedgerServiceTestSuite) TestContribution_RoundsHalfUp() {
	suite.Equal("55.56", services.Contribution(
		decimal.RequireFromString("50"),
		decimal.RequireFromString("1.111111"),
	).StringFixed(2))
	suite.Equal("111.11", services.Contribution(
		decimal.RequireFromString("100"),
		decimal.RequireFromString("1.111111"),
	).StringFixed(2))
}

func TestLedgerService(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
