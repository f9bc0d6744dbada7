package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/zenapticlabs/expense-management-server/internal/apperrors"
	"github.com/zenapticlabs/expense-management-server/internal/core/domain"
	"github.com/zenapticlabs/expense-management-server/internal/core/ports/providers"
	portsrepo "github.com/zenapticlabs/expense-management-server/internal/core/ports/repositories"
	"github.com/zenapticlabs/expense-management-server/internal/dto"
	"github.com/zenapticlabs/expense-management-server/internal/models"
	"github.com/zenapticlabs/expense-management-server/internal/utils"
)

// factorPrecision is the number of fractional digits conversion factors are
// rounded to, matching the numeric(20,6) audit column on expense items.
const factorPrecision = 6

// defaultSnapshotTTL is used when the provider does not declare a next update time.
const defaultSnapshotTTL = 24 * time.Hour

// RateService maintains the exchange-rate cache and answers conversions.
//
// The current snapshot is an immutable value swapped wholesale after a
// successful refresh, so a conversion always resolves both legs against one
// fetch cycle. Refreshes are lazy: the first lookup past the snapshot's
// next-refresh time triggers one, and concurrent callers wait for that
// refresh instead of racing their own.
type RateService struct {
	rateRepo      portsrepo.ExchangeRateRepositoryFacade
	provider      providers.RateProvider
	maxAttempts   int
	backoffBase   time.Duration
	backoffFactor int
	now           func() time.Time
	sleep         func(ctx context.Context, d time.Duration) error

	refreshMu sync.Mutex // serializes refresh; at most one fetch in flight

	snapMu   sync.RWMutex
	snapshot *domain.RateSnapshot
	loaded   bool // latest persisted snapshot has been looked up
}

// RateServiceOption customizes a RateService.
type RateServiceOption func(*RateService)

// WithRetryPolicy overrides the refresh retry budget and backoff schedule.
func WithRetryPolicy(maxAttempts int, backoffBase time.Duration, backoffFactor int) RateServiceOption {
	return func(s *RateService) {
		if maxAttempts > 0 {
			s.maxAttempts = maxAttempts
		}
		if backoffBase > 0 {
			s.backoffBase = backoffBase
		}
		if backoffFactor > 0 {
			s.backoffFactor = backoffFactor
		}
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) RateServiceOption {
	return func(s *RateService) { s.now = now }
}

// WithSleep overrides the backoff sleeper, for tests.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) RateServiceOption {
	return func(s *RateService) { s.sleep = sleep }
}

// NewRateService creates a new RateService.
func NewRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, provider providers.RateProvider, opts ...RateServiceOption) *RateService {
	s := &RateService{
		rateRepo:      rateRepo,
		provider:      provider,
		maxAttempts:   3,
		backoffBase:   time.Second,
		backoffFactor: 2,
		now:           time.Now,
		sleep:         sleepCtx,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EnsureFresh returns the current snapshot, refreshing first when it is
// missing or past its declared next-refresh time. When every refresh attempt
// fails, the latest still-available snapshot is served stale; only when none
// exists does the call fail with ErrRateProviderUnavailable.
func (s *RateService) EnsureFresh(ctx context.Context) (*domain.RateSnapshot, error) {
	if snap := s.current(); snap != nil && !snap.Stale(s.now()) {
		return snap, nil
	}

	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	// A concurrent caller may have completed the refresh while we waited.
	if snap := s.current(); snap != nil && !snap.Stale(s.now()) {
		return snap, nil
	}

	if !s.loadedPersisted() {
		if snap := s.loadPersisted(ctx); snap != nil && !snap.Stale(s.now()) {
			return snap, nil
		}
	}

	snap, err := s.refresh(ctx)
	if err == nil {
		return snap, nil
	}

	if stale := s.current(); stale != nil {
		slog.Warn("serving stale exchange rate snapshot after failed refresh",
			slog.Time("fetched_at", stale.FetchedAt),
			slog.String("error", err.Error()))
		return stale, nil
	}
	return nil, fmt.Errorf("%w: %s", apperrors.ErrRateProviderUnavailable, err)
}

// ConversionRate returns the factor converting amounts from fromCurrency into
// toCurrency, resolving both legs against a single snapshot.
func (s *RateService) ConversionRate(ctx context.Context, fromCurrency, toCurrency string) (decimal.Decimal, error) {
	from, err := utils.NormalizeCurrencyCode(fromCurrency)
	if err != nil {
		return decimal.Zero, err
	}
	to, err := utils.NormalizeCurrencyCode(toCurrency)
	if err != nil {
		return decimal.Zero, err
	}
	if from == to {
		return decimal.NewFromInt(1), nil
	}

	snap, err := s.EnsureFresh(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	fromRate, ok := snap.Rate(from)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: no rate for %s in snapshot fetched at %s", apperrors.ErrRateUnavailable, from, snap.FetchedAt.Format(time.RFC3339))
	}
	toRate, ok := snap.Rate(to)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: no rate for %s in snapshot fetched at %s", apperrors.ErrRateUnavailable, to, snap.FetchedAt.Format(time.RFC3339))
	}

	// Cross rate through the USD base: 1 from = rate(to)/rate(from) to.
	return toRate.DivRound(fromRate, factorPrecision), nil
}

// ListRates returns the full snapshot re-based to baseCurrency.
func (s *RateService) ListRates(ctx context.Context, baseCurrency string) (*dto.ListRatesResponse, error) {
	base, err := utils.NormalizeCurrencyCode(baseCurrency)
	if err != nil {
		return nil, err
	}

	snap, err := s.EnsureFresh(ctx)
	if err != nil {
		return nil, err
	}

	baseRate, ok := snap.Rate(base)
	if !ok {
		return nil, fmt.Errorf("%w: no rate for %s", apperrors.ErrRateUnavailable, base)
	}

	rates := make(map[string]decimal.Decimal, len(snap.Rates))
	for currency, rate := range snap.Rates {
		rates[currency] = rate.DivRound(baseRate, factorPrecision)
	}

	return &dto.ListRatesResponse{
		BaseCurrency:  base,
		FetchedAt:     snap.FetchedAt,
		NextRefreshAt: snap.NextRefreshAt,
		Rates:         rates,
	}, nil
}

// refresh fetches a new snapshot from the provider with bounded retries and
// exponential backoff, persists it, and installs it as current.
// Callers must hold refreshMu.
func (s *RateService) refresh(ctx context.Context) (*domain.RateSnapshot, error) {
	backoff := s.backoffBase
	var lastErr error

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		fetched, err := s.provider.FetchRates(ctx)
		if err == nil {
			snap, nerr := s.normalizeSnapshot(fetched)
			if nerr != nil {
				return nil, nerr
			}
			s.persist(ctx, snap)
			s.setCurrent(snap)
			return snap, nil
		}

		lastErr = err
		if attempt < s.maxAttempts {
			slog.Warn("exchange rate fetch failed, backing off",
				slog.Int("attempt", attempt),
				slog.Duration("backoff", backoff),
				slog.String("error", err.Error()))
			if serr := s.sleep(ctx, backoff); serr != nil {
				return nil, serr
			}
			backoff *= time.Duration(s.backoffFactor)
		}
	}
	return nil, lastErr
}

// normalizeSnapshot uppercases currency codes, drops non-positive rates,
// guarantees the USD base entry, and fills in a default TTL when the provider
// omitted one.
func (s *RateService) normalizeSnapshot(fetched *domain.RateSnapshot) (*domain.RateSnapshot, error) {
	if fetched == nil || len(fetched.Rates) == 0 {
		return nil, errors.New("rate provider returned an empty rate table")
	}

	now := s.now()
	snap := &domain.RateSnapshot{
		Rates:         make(map[string]decimal.Decimal, len(fetched.Rates)+1),
		FetchedAt:     fetched.FetchedAt,
		NextRefreshAt: fetched.NextRefreshAt,
	}
	if snap.FetchedAt.IsZero() {
		snap.FetchedAt = now
	}
	if !snap.NextRefreshAt.After(now) {
		snap.NextRefreshAt = now.Add(defaultSnapshotTTL)
	}

	for code, rate := range fetched.Rates {
		normalized, err := utils.NormalizeCurrencyCode(code)
		if err != nil || !rate.IsPositive() {
			slog.Warn("dropping unusable rate entry", slog.String("currency", code), slog.String("rate", rate.String()))
			continue
		}
		snap.Rates[normalized] = rate.Round(factorPrecision)
	}
	snap.Rates[domain.BaseCurrency] = decimal.NewFromInt(1)

	return snap, nil
}

// persist writes the snapshot through to the database. A write failure keeps
// the in-memory snapshot serving conversions; durability catches up on the
// next successful refresh.
func (s *RateService) persist(ctx context.Context, snap *domain.RateSnapshot) {
	rows := make([]models.ExchangeRate, 0, len(snap.Rates))
	for currency, rate := range snap.Rates {
		rows = append(rows, models.ExchangeRate{
			TargetCurrency: currency,
			Rate:           rate,
			FetchedAt:      snap.FetchedAt,
			NextRefreshAt:  snap.NextRefreshAt,
		})
	}
	if err := s.rateRepo.ReplaceSnapshot(ctx, rows); err != nil {
		slog.Error("failed to persist exchange rate snapshot", slog.String("error", err.Error()))
	}
}

// loadPersisted pulls the latest stored snapshot into memory, once per process.
// Callers must hold refreshMu.
func (s *RateService) loadPersisted(ctx context.Context) *domain.RateSnapshot {
	s.snapMu.Lock()
	s.loaded = true
	s.snapMu.Unlock()

	snap, err := s.rateRepo.LatestSnapshot(ctx)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			slog.Error("failed to load persisted exchange rate snapshot", slog.String("error", err.Error()))
		}
		return nil
	}
	s.setCurrent(snap)
	return snap
}

func (s *RateService) loadedPersisted() bool {
	s.snapMu.RLock()
	defer s.snapMu.RUnlock()
	return s.loaded
}

func (s *RateService) current() *domain.RateSnapshot {
	s.snapMu.RLock()
	defer s.snapMu.RUnlock()
	return s.snapshot
}

func (s *RateService) setCurrent(snap *domain.RateSnapshot) {
	s.snapMu.Lock()
	s.snapshot = snap
	s.loaded = true
	s.snapMu.Unlock()
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
