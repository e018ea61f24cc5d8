package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/profile-playground/internal/domain/user"
	"github.com/khoahotran/profile-playground/pkg/apperror"
	"github.com/khoahotran/profile-playground/pkg/logger"
)

// SQLSTATE codes surfaced by pgconn.PgError.
const uniqueViolation = "23505"

type postgresUserRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresUserRepo(db *pgxpool.Pool, logger logger.Logger) user.Repository {
	return &postgresUserRepo{db: db, logger: logger}
}

func scanUser(row pgx.Row, identifier string) (*user.User, error) {
	u := &user.User{}
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("user", identifier)
		}
		return nil, apperror.NewInternal("failed to query user", err)
	}
	return u, nil
}

func (r *postgresUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `
		SELECT id, name, email, password_hash, created_at
		FROM users
		WHERE email = $1
	`
	return scanUser(r.db.QueryRow(ctx, query, email), email)
}

func (r *postgresUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	query := `
		SELECT id, name, email, password_hash, created_at
		FROM users
		WHERE id = $1
	`
	return scanUser(r.db.QueryRow(ctx, query, id), id.String())
}

func (r *postgresUserRepo) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query, u.ID, u.Name, u.Email, u.PasswordHash, u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return apperror.NewConflict("user", "email", u.Email)
		}
		return apperror.NewInternal("failed to create user", err)
	}
	return nil
}

// UpsertByEmail inserts u, or replaces name and password of the user that
// already owns the email. u.ID is set to the stored id.
func (r *postgresUserRepo) UpsertByEmail(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE SET
			name = EXCLUDED.name,
			password_hash = EXCLUDED.password_hash
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query, u.ID, u.Name, u.Email, u.PasswordHash, u.CreatedAt).Scan(&u.ID)
	if err != nil {
		return apperror.NewInternal("failed to upsert user", err)
	}
	return nil
}
