package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zenapticlabs/expense-management-server/internal/apperrors"
	"github.com/zenapticlabs/expense-management-server/internal/core/domain"
	"github.com/zenapticlabs/expense-management-server/internal/models"
	"github.com/zenapticlabs/expense-management-server/internal/utils/mapping"
)

const userColumns = `
	user_id, email, name, password_hash, currency, company_code, is_staff,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxUserRepository persists users using pgxpool.
type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(db *pgxpool.Pool) *PgxUserRepository {
	return &PgxUserRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID, &m.Email, &m.Name, &m.PasswordHash, &m.Currency, &m.CompanyCode, &m.IsStaff,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindUserByID retrieves a user by ID.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM app_user WHERE user_id = $1;`

	m, err := scanUser(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, userID)
		}
		return nil, fmt.Errorf("failed to find user %s: %w", userID, err)
	}
	user := mapping.ToDomainUser(*m)
	return &user, nil
}

// FindUserByEmail retrieves a user by email.
func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM app_user WHERE email = $1;`

	m, err := scanUser(r.Pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, email)
		}
		return nil, fmt.Errorf("failed to find user %s: %w", email, err)
	}
	user := mapping.ToDomainUser(*m)
	return &user, nil
}

// SaveUser inserts a new user row. A unique violation on the email column
// surfaces as ErrDuplicate.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user models.User) error {
	query := `
		INSERT INTO app_user (
			user_id, email, name, password_hash, currency, company_code, is_staff,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		user.UserID, user.Email, user.Name, user.PasswordHash, user.Currency, user.CompanyCode, user.IsStaff,
		user.CreatedAt, user.CreatedBy, user.LastUpdatedAt, user.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: user %s", apperrors.ErrDuplicate, user.Email)
		}
		return fmt.Errorf("failed to insert user %s: %w", user.Email, err)
	}
	return nil
}
