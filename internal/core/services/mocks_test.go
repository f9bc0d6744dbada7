package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/zenapticlabs/expense-management-server/internal/core/domain"
	"github.com/zenapticlabs/expense-management-server/internal/models"
)

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) LatestSnapshot(ctx context.Context) (*domain.RateSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateSnapshot), args.Error(1)
}

func (m *MockExchangeRateRepository) ReplaceSnapshot(ctx context.Context, rates []models.ExchangeRate) error {
	args := m.Called(ctx, rates)
	return args.Error(0)
}

// --- Mock RateProvider ---
type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) FetchRates(ctx context.Context) (*domain.RateSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateSnapshot), args.Error(1)
}

// --- Mock ReportRepository ---
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) FindReportByID(ctx context.Context, reportID string) (*domain.ExpenseReport, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpenseReport), args.Error(1)
}

func (m *MockReportRepository) ListReportsByUser(ctx context.Context, userID string) ([]domain.ExpenseReport, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpenseReport), args.Error(1)
}

func (m *MockReportRepository) ListAllReports(ctx context.Context) ([]domain.ExpenseReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpenseReport), args.Error(1)
}

func (m *MockReportRepository) NextReportNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockReportRepository) SaveReport(ctx context.Context, report models.ExpenseReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportRepository) UpdateReport(ctx context.Context, report models.ExpenseReport, expectedVersion int64) error {
	args := m.Called(ctx, report, expectedVersion)
	return args.Error(0)
}

func (m *MockReportRepository) DeleteReport(ctx context.Context, reportID string) error {
	args := m.Called(ctx, reportID)
	return args.Error(0)
}

// --- Mock ItemRepository ---
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) FindItemByID(ctx context.Context, reportID, itemID string) (*domain.ExpenseItem, error) {
	args := m.Called(ctx, reportID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpenseItem), args.Error(1)
}

func (m *MockItemRepository) ListItemsByReport(ctx context.Context, reportID string) ([]domain.ExpenseItem, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpenseItem), args.Error(1)
}

func (m *MockItemRepository) FindReceiptByID(ctx context.Context, itemID string, receiptID int64) (*domain.ExpenseReceipt, error) {
	args := m.Called(ctx, itemID, receiptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpenseReceipt), args.Error(1)
}

func (m *MockItemRepository) CreateItemWithReport(ctx context.Context, item models.ExpenseItem, receipts []models.ExpenseReceipt, report models.ExpenseReport, expectedVersion int64) error {
	args := m.Called(ctx, item, receipts, report, expectedVersion)
	return args.Error(0)
}

func (m *MockItemRepository) UpdateItemWithReport(ctx context.Context, item models.ExpenseItem, keepPaths []string, newReceipts []models.ExpenseReceipt, report models.ExpenseReport, expectedVersion int64) error {
	args := m.Called(ctx, item, keepPaths, newReceipts, report, expectedVersion)
	return args.Error(0)
}

func (m *MockItemRepository) DeleteItemWithReport(ctx context.Context, itemID string, report models.ExpenseReport, expectedVersion int64) error {
	args := m.Called(ctx, itemID, report, expectedVersion)
	return args.Error(0)
}

// --- Mock LookupRepository ---
type MockLookupRepository struct {
	mock.Mock
}

func (m *MockLookupRepository) FindLookupByValue(ctx context.Context, kind domain.LookupKind, value string) (*domain.LookupValue, error) {
	args := m.Called(ctx, kind, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LookupValue), args.Error(1)
}

func (m *MockLookupRepository) ListLookups(ctx context.Context, kind domain.LookupKind) ([]domain.LookupValue, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LookupValue), args.Error(1)
}

func (m *MockLookupRepository) FindHotelRateByCity(ctx context.Context, city string) (*domain.HotelDailyBaseRate, error) {
	args := m.Called(ctx, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HotelDailyBaseRate), args.Error(1)
}

func (m *MockLookupRepository) ListHotelRates(ctx context.Context) ([]domain.HotelDailyBaseRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HotelDailyBaseRate), args.Error(1)
}

func (m *MockLookupRepository) FindMileageRateByTitle(ctx context.Context, title string) (*domain.MileageRate, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MileageRate), args.Error(1)
}

func (m *MockLookupRepository) ListMileageRates(ctx context.Context) ([]domain.MileageRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MileageRate), args.Error(1)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// --- Mock ReceiptStore ---
type MockReceiptStore struct {
	mock.Mock
}

func (m *MockReceiptStore) PresignPut(ctx context.Context, key string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, key, ttl)
	return args.String(0), args.Error(1)
}

func (m *MockReceiptStore) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, key, ttl)
	return args.String(0), args.Error(1)
}

func (m *MockReceiptStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
