package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/zenapticlabs/expense-management-server/internal/apperrors"
	"github.com/zenapticlabs/expense-management-server/internal/core/domain"
	"github.com/zenapticlabs/expense-management-server/internal/core/services"
	"github.com/zenapticlabs/expense-management-server/internal/models"
)

type RateServiceTestSuite struct {
	suite.Suite
	mockRepo     *MockExchangeRateRepository
	mockProvider *MockRateProvider
	now          time.Time
	slept        []time.Duration
	service      *services.RateService
}

func (suite *RateServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockExchangeRateRepository)
	suite.mockProvider = new(MockRateProvider)
	suite.now = time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)
	suite.slept = nil
	suite.service = services.NewRateService(
		suite.mockRepo,
		suite.mockProvider,
		services.WithClock(func() time.Time { return suite.now }),
		services.WithSleep(func(ctx context.Context, d time.Duration) error {
			suite.slept = append(suite.slept, d)
			return nil
		}),
	)
}

func (suite *RateServiceTestSuite) freshSnapshot(rates map[string]string) *domain.RateSnapshot {
	parsed := make(map[string]decimal.Decimal, len(rates))
	for code, rate := range rates {
		parsed[code] = decimal.RequireFromString(rate)
	}
	return &domain.RateSnapshot{
		Rates:         parsed,
		FetchedAt:     suite.now,
		NextRefreshAt: suite.now.Add(24 * time.Hour),
	}
}

func (suite *RateServiceTestSuite) staleSnapshot(rates map[string]string) *domain.RateSnapshot {
	snap := suite.freshSnapshot(rates)
	snap.FetchedAt = suite.now.Add(-48 * time.Hour)
	snap.NextRefreshAt = suite.now.Add(-24 * time.Hour)
	return snap
}

// --- EnsureFresh ---

func (suite *RateServiceTestSuite) TestEnsureFresh_ServesPersistedSnapshotWithoutFetching() {
	ctx := context.Background()
	persisted := suite.freshSnapshot(map[string]string{"USD": "1", "EUR": "0.90"})

	suite.mockRepo.On("LatestSnapshot", ctx).Return(persisted, nil).Once()

	snap, err := suite.service.EnsureFresh(ctx)

	suite.Require().NoError(err)
	suite.Equal(persisted, snap)
	suite.mockProvider.AssertNotCalled(suite.T(), "FetchRates", mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestEnsureFresh_RefreshesWhenNothingPersisted() {
	ctx := context.Background()
	fetched := suite.freshSnapshot(map[string]string{"USD": "1", "EUR": "0.90", "GBP": "0.79"})

	suite.mockRepo.On("LatestSnapshot", ctx).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockProvider.On("FetchRates", ctx).Return(fetched, nil).Once()
	suite.mockRepo.On("ReplaceSnapshot", ctx, mock.AnythingOfType("[]models.ExchangeRate")).Return(nil).Once()

	snap, err := suite.service.EnsureFresh(ctx)

	suite.Require().NoError(err)
	suite.Require().NotNil(snap)
	suite.Equal(fetched.FetchedAt, snap.FetchedAt)
	suite.Len(snap.Rates, 3)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockProvider.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestEnsureFresh_RefreshesStalePersistedSnapshot() {
	ctx := context.Background()
	stale := suite.staleSnapshot(map[string]string{"USD": "1", "EUR": "0.95"})
	fetched := suite.freshSnapshot(map[string]string{"USD": "1", "EUR": "0.90"})

	suite.mockRepo.On("LatestSnapshot", ctx).Return(stale, nil).Once()
	suite.mockProvider.On("FetchRates", ctx).Return(fetched, nil).Once()
	suite.mockRepo.On("ReplaceSnapshot", ctx, mock.AnythingOfType("[]models.ExchangeRate")).Return(nil).Once()

	snap, err := suite.service.EnsureFresh(ctx)

	suite.Require().NoError(err)
	suite.Equal("0.9", snap.Rates["EUR"].String())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestEnsureFresh_RetriesWithExponentialBackoff() {
	ctx := context.Background()
	fetched := suite.freshSnapshot(map[string]string{"USD": "1", "EUR": "0.90"})

	suite.mockRepo.On("LatestSnapshot", ctx).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockProvider.On("FetchRates", ctx).Return(nil, assert.AnError).Twice()
	suite.mockProvider.On("FetchRates", ctx).Return(fetched, nil).Once()
	suite.mockRepo.On("ReplaceSnapshot", ctx, mock.AnythingOfType("[]models.ExchangeRate")).Return(nil).Once()

	snap, err := suite.service.EnsureFresh(ctx)

	suite.Require().NoError(err)
	suite.Require().NotNil(snap)
	suite.Equal([]time.Duration{time.Second, 2 * time.Second}, suite.slept)
	suite.mockProvider.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestEnsureFresh_ServesStaleWhenAllAttemptsFail() {
	ctx := context.Background()
	stale := suite.staleSnapshot(map[string]string{"USD": "1", "EUR": "0.95"})

	suite.mockRepo.On("LatestSnapshot", ctx).Return(stale, nil).Once()
	suite.mockProvider.On("FetchRates", ctx).Return(nil, assert.AnError).Times(3)

	snap, err := suite.service.EnsureFresh(ctx)

	suite.Require().NoError(err)
	suite.Equal(stale, snap)
	suite.mockProvider.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestEnsureFresh_FailsWhenNoSnapshotExistsAtAll() {
	ctx := context.Background()

	suite.mockRepo.On("LatestSnapshot", ctx).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockProvider.On("FetchRates", ctx).Return(nil, assert.AnError).Times(3)

	snap, err := suite.service.EnsureFresh(ctx)

	suite.Require().Error(err)
	suite.Nil(snap)
	suite.ErrorIs(err, apperrors.ErrRateProviderUnavailable)
}

func (suite *RateServiceTestSuite) TestEnsureFresh_KeepsServingWhenPersistFails() {
	ctx := context.Background()
	fetched := suite.freshSnapshot(map[string]string{"USD": "1", "EUR": "0.90"})

	suite.mockRepo.On("LatestSnapshot", ctx).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockProvider.On("FetchRates", ctx).Return(fetched, nil).Once()
	suite.mockRepo.On("ReplaceSnapshot", ctx, mock.AnythingOfType("[]models.ExchangeRate")).Return(assert.AnError).Once()

	snap, err := suite.service.EnsureFresh(ctx)

	suite.Require().NoError(err)
	suite.Require().NotNil(snap)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestEnsureFresh_DropsUnusableRatesAndGuaranteesBase() {
	ctx := context.Background()
	fetched := &domain.RateSnapshot{
		Rates: map[string]decimal.Decimal{
			"eur": decimal.RequireFromString("0.90"),
			"BAD": decimal.Zero,
			"JPY": decimal.RequireFromString("-5"),
		},
	}

	suite.mockRepo.On("LatestSnapshot", ctx).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockProvider.On("FetchRates", ctx).Return(fetched, nil).Once()
	suite.mockRepo.On("ReplaceSnapshot", ctx, mock.MatchedBy(func(rows []models.ExchangeRate) bool {
		for _, row := range rows {
			if row.FetchedAt != rows[0].FetchedAt {
				return false
			}
		}
		return len(rows) == 2
	})).Return(nil).Once()

	snap, err := suite.service.EnsureFresh(ctx)

	suite.Require().NoError(err)
	suite.Len(snap.Rates, 2)
	suite.Equal("0.9", snap.Rates["EUR"].String())
	suite.Equal("1", snap.Rates["USD"].String())
	suite.Equal(suite.now.Add(24*time.Hour), snap.NextRefreshAt)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestEnsureFresh_KeepsFourAndFiveLetterCodes() {
	ctx := context.Background()
	fetched := &domain.RateSnapshot{
		Rates: map[string]decimal.Decimal{
			"EUR":   decimal.RequireFromString("0.90"),
			"USDT":  decimal.RequireFromString("1.0001"),
			"wavax": decimal.RequireFromString("0.042"),
		},
	}

	suite.mockRepo.On("LatestSnapshot", ctx).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockProvider.On("FetchRates", ctx).Return(fetched, nil).Once()
	suite.mockRepo.On("ReplaceSnapshot", ctx, mock.MatchedBy(func(rows []models.ExchangeRate) bool {
		seen := make(map[string]bool, len(rows))
		for _, row := range rows {
			seen[row.TargetCurrency] = true
		}
		return seen["USDT"] && seen["WAVAX"]
	})).Return(nil).Once()

	snap, err := suite.service.EnsureFresh(ctx)

	suite.Require().NoError(err)
	suite.Equal("1.0001", snap.Rates["USDT"].String())
	suite.Equal("0.042", snap.Rates["WAVAX"].String())

	factor, err := suite.service.ConversionRate(ctx, "USD", "USDT")
	suite.Require().NoError(err)
	suite.Equal("1.0001", factor.String())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestEnsureFresh_ConcurrentCallersShareOneFetch() {
	ctx := context.Background()
	stale := suite.staleSnapshot(map[string]string{"USD": "1", "EUR": "2", "GBP": "4"})
	fetched := suite.freshSnapshot(map[string]string{"USD": "1", "EUR": "3", "GBP": "9"})

	suite.mockRepo.On("LatestSnapshot", ctx).Return(stale, nil).Once()
	suite.mockProvider.On("FetchRates", ctx).
		Run(func(mock.Arguments) { time.Sleep(30 * time.Millisecond) }).
		Return(fetched, nil).Once()
	suite.mockRepo.On("ReplaceSnapshot", ctx, mock.AnythingOfType("[]models.ExchangeRate")).Return(nil).Once()

	const callers = 8
	factors := make([]string, callers)
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer wg.Done()
			factor, err := suite.service.ConversionRate(ctx, "EUR", "GBP")
			suite.NoError(err)
			factors[i] = factor.String()
		}(i)
	}
	wg.Wait()

	// Exactly one fetch despite eight concurrent callers.
	suite.mockProvider.AssertNumberOfCalls(suite.T(), "FetchRates", 1)

	// Every factor resolved both legs from a single snapshot: 2 from the
	// stale table or 3 from the fresh one, never a cross-snapshot mix.
	for _, factor := range factors {
		suite.Contains([]string{"2", "3"}, factor)
	}
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- ConversionRate ---

func (suite *RateServiceTestSuite) TestConversionRate_IdenticalCurrenciesSkipTheCache() {
	ctx := context.Background()

	factor, err := suite.service.ConversionRate(ctx, "eur", "EUR")

	suite.Require().NoError(err)
	suite.Equal("1", factor.String())
	suite.mockRepo.AssertNotCalled(suite.T(), "LatestSnapshot", mock.Anything)
	suite.mockProvider.AssertNotCalled(suite.T(), "FetchRates", mock.Anything)
}

func (suite *RateServiceTestSuite) TestConversionRate_CrossesThroughTheBase() {
	ctx := context.Background()
	persisted := suite.freshSnapshot(map[string]string{"USD": "1", "EUR": "0.90"})

	suite.mockRepo.On("LatestSnapshot", ctx).Return(persisted, nil).Once()

	factor, err := suite.service.ConversionRate(ctx, "EUR", "USD")

	suite.Require().NoError(err)
	suite.Equal("1.111111", factor.String())
}

func (suite *RateServiceTestSuite) TestConversionRate_UnknownCurrency() {
	ctx := context.Background()
	persisted := suite.freshSnapshot(map[string]string{"USD": "1", "EUR": "0.90"})

	suite.mockRepo.On("LatestSnapshot", ctx).Return(persisted, nil).Once()

	_, err := suite.service.ConversionRate(ctx, "XXX", "USD")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrRateUnavailable)
}

func (suite *RateServiceTestSuite) TestConversionRate_InvalidCode() {
	ctx := context.Background()

	_, err := suite.service.ConversionRate(ctx, "not-a-code", "USD")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- ListRates ---

func (suite *RateServiceTestSuite) TestListRates_RebasesTheWholeTable() {
	ctx := context.Background()
	persisted := suite.freshSnapshot(map[string]string{"USD": "1", "EUR": "0.90", "GBP": "0.79"})

	suite.mockRepo.On("LatestSnapshot", ctx).Return(persisted, nil).Once()

	resp, err := suite.service.ListRates(ctx, "EUR")

	suite.Require().NoError(err)
	suite.Equal("EUR", resp.BaseCurrency)
	suite.Equal("1", resp.Rates["EUR"].String())
	suite.Equal("1.111111", resp.Rates["USD"].String())
	suite.Equal("0.877778", resp.Rates["GBP"].String())
	suite.Equal(persisted.FetchedAt, resp.FetchedAt)
}

func TestRateService(t *testing.T) {
	suite.Run(t, new(RateServiceTestSuite))
}
