package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zenapticlabs/expense-management-server/internal/apperrors"
	"github.com/zenapticlabs/expense-management-server/internal/core/domain"
	"github.com/zenapticlabs/expense-management-server/internal/models"
)

// lookupTables whitelists the reference tables reachable through LookupKind;
// table names can not be bound as query parameters.
var lookupTables = map[domain.LookupKind]string{
	domain.LookupAirline:           "airline",
	domain.LookupRentalAgency:      "rental_agency",
	domain.LookupCarType:           "car_type",
	domain.LookupMealCategory:      "meal_category",
	domain.LookupRelationshipToPAI: "relationship_to_pai",
	domain.LookupCity:              "city",
}

// PgxLookupRepository serves the reference tables using pgxpool.
type PgxLookupRepository struct {
	BaseRepository
}

func newPgxLookupRepository(db *pgxpool.Pool) *PgxLookupRepository {
	return &PgxLookupRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// FindLookupByValue resolves a value to its reference row, case-insensitively.
func (r *PgxLookupRepository) FindLookupByValue(ctx context.Context, kind domain.LookupKind, value string) (*domain.LookupValue, error) {
	table, ok := lookupTables[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown lookup kind %q", apperrors.ErrValidation, kind)
	}

	var m models.LookupValue
	query := fmt.Sprintf(`SELECT id, value, COALESCE(description, '') FROM %s WHERE LOWER(value) = LOWER($1);`, table)
	err := r.Pool.QueryRow(ctx, query, value).Scan(&m.ID, &m.Value, &m.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s %q", apperrors.ErrNotFound, kind, value)
		}
		return nil, fmt.Errorf("failed to resolve %s %q: %w", kind, value, err)
	}
	return &domain.LookupValue{ID: m.ID, Value: m.Value, Description: m.Description}, nil
}

// ListLookups retrieves all rows of the given reference table.
func (r *PgxLookupRepository) ListLookups(ctx context.Context, kind domain.LookupKind) ([]domain.LookupValue, error) {
	table, ok := lookupTables[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown lookup kind %q", apperrors.ErrValidation, kind)
	}

	query := fmt.Sprintf(`SELECT id, value, COALESCE(description, '') FROM %s ORDER BY value;`, table)
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s values: %w", kind, err)
	}
	defer rows.Close()

	var values []domain.LookupValue
	for rows.Next() {
		var m models.LookupValue
		if err := rows.Scan(&m.ID, &m.Value, &m.Description); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", kind, err)
		}
		values = append(values, domain.LookupValue{ID: m.ID, Value: m.Value, Description: m.Description})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s rows: %w", kind, err)
	}
	return values, nil
}

// FindHotelRateByCity returns the hotel daily base rate for a city.
func (r *PgxLookupRepository) FindHotelRateByCity(ctx context.Context, city string) (*domain.HotelDailyBaseRate, error) {
	var m models.HotelDailyBaseRate
	err := r.Pool.QueryRow(ctx,
		`SELECT id, country, city, amount, currency FROM hotel_daily_base_rate WHERE LOWER(city) = LOWER($1) LIMIT 1;`,
		city,
	).Scan(&m.ID, &m.Country, &m.City, &m.Amount, &m.Currency)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: hotel rate for city %q", apperrors.ErrNotFound, city)
		}
		return nil, fmt.Errorf("failed to find hotel rate for %q: %w", city, err)
	}
	return &domain.HotelDailyBaseRate{ID: m.ID, Country: m.Country, City: m.City, Amount: m.Amount, Currency: m.Currency}, nil
}

// ListHotelRates retrieves all hotel daily base rates.
func (r *PgxLookupRepository) ListHotelRates(ctx context.Context) ([]domain.HotelDailyBaseRate, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT id, country, city, amount, currency FROM hotel_daily_base_rate ORDER BY country, city;`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list hotel rates: %w", err)
	}
	defer rows.Close()

	var rates []domain.HotelDailyBaseRate
	for rows.Next() {
		var m models.HotelDailyBaseRate
		if err := rows.Scan(&m.ID, &m.Country, &m.City, &m.Amount, &m.Currency); err != nil {
			return nil, fmt.Errorf("failed to scan hotel rate row: %w", err)
		}
		rates = append(rates, domain.HotelDailyBaseRate{ID: m.ID, Country: m.Country, City: m.City, Amount: m.Amount, Currency: m.Currency})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating hotel rate rows: %w", err)
	}
	return rates, nil
}

// FindMileageRateByTitle returns the mileage rate registered under title.
func (r *PgxLookupRepository) FindMileageRateByTitle(ctx context.Context, title string) (*domain.MileageRate, error) {
	var m models.MileageRate
	err := r.Pool.QueryRow(ctx,
		`SELECT id, rate, title FROM mileage_rate WHERE LOWER(title) = LOWER($1) LIMIT 1;`,
		title,
	).Scan(&m.ID, &m.Rate, &m.Title)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: mileage rate %q", apperrors.ErrNotFound, title)
		}
		return nil, fmt.Errorf("failed to find mileage rate %q: %w", title, err)
	}
	return &domain.MileageRate{ID: m.ID, Rate: m.Rate, Title: m.Title}, nil
}

// ListMileageRates retrieves all mileage rates.
func (r *PgxLookupRepository) ListMileageRates(ctx context.Context) ([]domain.MileageRate, error) {
	rows, err := r.Pool.Query(ctx, `SELECT id, rate, title FROM mileage_rate ORDER BY title;`)
	if err != nil {
		return nil, fmt.Errorf("failed to list mileage rates: %w", err)
	}
	defer rows.Close()

	var rates []domain.MileageRate
	for rows.Next() {
		var m models.MileageRate
		if err := rows.Scan(&m.ID, &m.Rate, &m.Title); err != nil {
			return nil, fmt.Errorf("failed to scan mileage rate row: %w", err)
		}
		rates = append(rates, domain.MileageRate{ID: m.ID, Rate: m.Rate, Title: m.Title})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating mileage rate rows: %w", err)
	}
	return rates, nil
}
