package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/zenapticlabs/expense-management-server/internal/apperrors"
	"github.com/zenapticlabs/expense-management-server/internal/core/domain"
	"github.com/zenapticlabs/expense-management-server/internal/core/services"
	"github.com/zenapticlabs/expense-management-server/internal/dto"
	"github.com/zenapticlabs/expense-management-server/internal/models"
)

type ReportServiceTestSuite struct {
	suite.Suite
	mockReports *MockReportRepository
	mockUsers   *MockUserRepository
	now         time.Time
	service     *services.ReportService

	userID string
}

func (suite *ReportServiceTestSuite) SetupTest() {
	suite.mockReports = new(MockReportRepository)
	suite.mockUsers = new(MockUserRepository)
	suite.now = time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)
	suite.service = services.NewReportService(
		suite.mockReports,
		suite.mockUsers,
		services.WithReportClock(func() time.Time { return suite.now }),
	)
	suite.userID = uuid.NewString()
}

func (suite *ReportServiceTestSuite) expectUser(isStaff bool) {
	suite.mockUsers.On("FindUserByID", mock.Anything, suite.userID).
		Return(&domain.User{UserID: suite.userID, Currency: "EUR", IsStaff: isStaff}, nil)
}

func (suite *ReportServiceTestSuite) TestCreateReport_StartsOpenWithZeroAmount() {
	ctx := context.Background()
	suite.expectUser(false)
	req := dto.CreateReportRequest{
		ExpenseType:   "Travel",
		Purpose:       "Conference",
		PaymentMethod: "Cash",
	}

	suite.mockReports.On("NextReportNumber", ctx).Return("1000", nil).Once()
	suite.mockReports.On("SaveReport", ctx, mock.MatchedBy(func(r models.ExpenseReport) bool {
		return r.ReportStatus == string(domain.ReportOpen) &&
			r.ReportAmount.IsZero() &&
			r.ReportNumber == "1000" &&
			r.ReportCurrency == "EUR" && // defaulted from the owner
			r.UserID == suite.userID
	})).Return(nil).Once()

	report, err := suite.service.CreateReport(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.ReportOpen, report.ReportStatus)
	suite.Equal("EUR", report.ReportCurrency)
	suite.True(report.ReportAmount.IsZero())
	suite.mockReports.AssertExpectations(suite.T())
}

func (suite *ReportServiceTestSuite) TestCreateReport_ExplicitCurrencyWins() {
	ctx := context.Background()
	suite.expectUser(false)
	req := dto.CreateReportRequest{
		ExpenseType:    "Travel",
		Purpose:        "Conference",
		PaymentMethod:  "Cash",
		ReportCurrency: "usd",
	}

	suite.mockReports.On("NextReportNumber", ctx).Return("1001", nil).Once()
	suite.mockReports.On("SaveReport", ctx, mock.MatchedBy(func(r models.ExpenseReport) bool {
		return r.ReportCurrency == "USD"
	})).Return(nil).Once()

	report, err := suite.service.CreateReport(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("USD", report.ReportCurrency)
}

func (suite *ReportServiceTestSuite) TestListReports_StaffSeesEverything() {
	ctx := context.Background()
	suite.mockUsers.On("FindUserByID", mock.Anything, suite.userID).
		Return(&domain.User{UserID: suite.userID, IsStaff: true}, nil)
	all := []domain.ExpenseReport{{ReportID: "a"}, {ReportID: "b"}}

	suite.mockReports.On("ListAllReports", ctx).Return(all, nil).Once()

	reports, err := suite.service.ListReports(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Len(reports, 2)
	suite.mockReports.AssertNotCalled(suite.T(), "ListReportsByUser", mock.Anything, mock.Anything)
}

func (suite *ReportServiceTestSuite) TestGetReport_OtherUsersReportLooksMissing() {
	ctx := context.Background()
	suite.expectUser(false)
	other := &domain.ExpenseReport{ReportID: "r-1", UserID: uuid.NewString()}

	suite.mockReports.On("FindReportByID", ctx, "r-1").Return(other, nil).Once()

	report, err := suite.service.GetReport(ctx, suite.userID, "r-1")

	suite.Require().Error(err)
	suite.Nil(report)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ReportServiceTestSuite) TestUpdateReport_NeverTouchesAmountOrNumber() {
	ctx := context.Background()
	suite.expectUser(false)
	stored := &domain.ExpenseReport{
		ReportID:       "r-1",
		UserID:         suite.userID,
		ReportNumber:   "1000",
		ReportStatus:   domain.ReportOpen,
		ReportAmount:   decimal.RequireFromString("111.11"),
		ReportCurrency: "USD",
		Version:        5,
	}
	purpose := "Updated purpose"

	suite.mockReports.On("FindReportByID", ctx, "r-1").Return(stored, nil).Once()
	suite.mockReports.On("UpdateReport", ctx, mock.MatchedBy(func(r models.ExpenseReport) bool {
		return r.Purpose == purpose &&
			r.ReportAmount.StringFixed(2) == "111.11" &&
			r.ReportNumber == "1000"
	}), int64(5)).Return(nil).Once()

	report, err := suite.service.UpdateReport(ctx, suite.userID, "r-1", dto.UpdateReportRequest{Purpose: &purpose})

	suite.Require().NoError(err)
	suite.Equal(purpose, report.Purpose)
	suite.Equal(int64(6), report.Version)
	suite.mockReports.AssertExpectations(suite.T())
}

func (suite *ReportServiceTestSuite) TestUpdateReport_ConcurrentModification() {
	ctx := context.Background()
	suite.expectUser(false)
	stored := &domain.ExpenseReport{ReportID: "r-1", UserID: suite.userID, Version: 5}
	purpose := "p"

	suite.mockReports.On("FindReportByID", ctx, "r-1").Return(stored, nil).Once()
	suite.mockReports.On("UpdateReport", ctx, mock.Anything, int64(5)).
		Return(apperrors.ErrConcurrentModification).Once()

	_, err := suite.service.UpdateReport(ctx, suite.userID, "r-1", dto.UpdateReportRequest{Purpose: &purpose})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConcurrentModification)
}

func (suite *ReportServiceTestSuite) TestSubmitReport_StampsSubmitDate() {
	ctx := context.Background()
	suite.expectUser(false)
	stored := &domain.ExpenseReport{ReportID: "r-1", UserID: suite.userID, ReportStatus: domain.ReportOpen, Version: 1}

	suite.mockReports.On("FindReportByID", ctx, "r-1").Return(stored, nil).Once()
	suite.mockReports.On("UpdateReport", ctx, mock.MatchedBy(func(r models.ExpenseReport) bool {
		return r.ReportStatus == string(domain.ReportSubmitted) &&
			r.ReportSubmitDate != nil && r.ReportSubmitDate.Equal(suite.now)
	}), int64(1)).Return(nil).Once()

	report, err := suite.service.SubmitReport(ctx, suite.userID, "r-1")

	suite.Require().NoError(err)
	suite.Equal(domain.ReportSubmitted, report.ReportStatus)
}

func (suite *ReportServiceTestSuite) TestSubmitReport_OnlyOpenReports() {
	ctx := context.Background()
	suite.expectUser(false)
	stored := &domain.ExpenseReport{ReportID: "r-1", UserID: suite.userID, ReportStatus: domain.ReportSubmitted}

	suite.mockReports.On("FindReportByID", ctx, "r-1").Return(stored, nil).Once()

	_, err := suite.service.SubmitReport(ctx, suite.userID, "r-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockReports.AssertNotCalled(suite.T(), "UpdateReport", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportServiceTestSuite) TestUpdateReportStatus_RequiresStaff() {
	ctx := context.Background()
	suite.expectUser(false)

	_, err := suite.service.UpdateReportStatus(ctx, suite.userID, "r-1", dto.UpdateReportStatusRequest{ReportStatus: "Approved"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *ReportServiceTestSuite) TestUpdateReportStatus_RejectsUnknownStatus() {
	ctx := context.Background()
	suite.expectUser(true)
	stored := &domain.ExpenseReport{ReportID: "r-1", UserID: uuid.NewString(), Version: 2}

	suite.mockReports.On("FindReportByID", ctx, "r-1").Return(stored, nil).Once()

	_, err := suite.service.UpdateReportStatus(ctx, suite.userID, "r-1", dto.UpdateReportStatusRequest{ReportStatus: "Bogus"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReportServiceTestSuite) TestUpdateReportStatus_StaffOverride() {
	ctx := context.Background()
	suite.expectUser(true)
	stored := &domain.ExpenseReport{ReportID: "r-1", UserID: uuid.NewString(), ReportStatus: domain.ReportSubmitted, Version: 2}
	paid := "150.00"

	suite.mockReports.On("FindReportByID", ctx, "r-1").Return(stored, nil).Once()
	suite.mockReports.On("UpdateReport", ctx, mock.MatchedBy(func(r models.ExpenseReport) bool {
		return r.ReportStatus == string(domain.ReportPaid) && r.PaidAmount == paid
	}), int64(2)).Return(nil).Once()

	report, err := suite.service.UpdateReportStatus(ctx, suite.userID, "r-1", dto.UpdateReportStatusRequest{
		ReportStatus: "Paid",
		PaidAmount:   &paid,
	})

	suite.Require().NoError(err)
	suite.Equal(domain.ReportPaid, report.ReportStatus)
}

func TestReportService(t *testing.T) {
	suite.Run(t, new(ReportServiceTestSuite))
}
