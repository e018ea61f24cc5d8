package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/profile-playground/internal/domain/profile"
	"github.com/khoahotran/profile-playground/pkg/apperror"
	"github.com/khoahotran/profile-playground/pkg/logger"
)

// Raised when the owning user row does not exist.
const foreignKeyViolation = "23503"

type postgresProfileRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProfileRepo(db *pgxpool.Pool, logger logger.Logger) profile.Repository {
	return &postgresProfileRepo{db: db, logger: logger}
}

var psqlProfile = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// profileDocument is the JSONB body of a profiles row.
type profileDocument struct {
	Name      string              `json:"name"`
	Email     string              `json:"email"`
	Education []string            `json:"education"`
	Skills    []string            `json:"skills"`
	Projects  []profile.Project   `json:"projects"`
	Work      []profile.WorkEntry `json:"work"`
	Links     profile.Links       `json:"links"`
}

func toDocument(p *profile.Profile) profileDocument {
	return profileDocument{
		Name:      p.Name,
		Email:     p.Email,
		Education: p.Education,
		Skills:    p.Skills,
		Projects:  p.Projects,
		Work:      p.Work,
		Links:     p.Links,
	}
}

func (d profileDocument) toDomain(ownerID uuid.UUID, createdAt, updatedAt time.Time) *profile.Profile {
	p := &profile.Profile{
		OwnerID:   ownerID,
		Name:      d.Name,
		Email:     d.Email,
		Education: d.Education,
		Skills:    d.Skills,
		Projects:  d.Projects,
		Work:      d.Work,
		Links:     d.Links,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
	p.Normalize()
	return p
}

func (r *postgresProfileRepo) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) (*profile.Profile, error) {
	sql, args, err := psqlProfile.Select("owner_id", "document", "created_at", "updated_at").
		From("profiles").
		Where(sq.Eq{"owner_id": ownerID}).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build profile query", err)
	}

	var (
		id                   uuid.UUID
		documentBytes        []byte
		createdAt, updatedAt time.Time
	)
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id, &documentBytes, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("profile", ownerID.String())
		}
		return nil, apperror.NewInternal("failed to query profile", err)
	}

	var doc profileDocument
	if err := json.Unmarshal(documentBytes, &doc); err != nil {
		r.logger.Error("Failed to unmarshal profile document", err, zap.String("owner_id", ownerID.String()))
		return nil, apperror.NewInternal("corrupt profile document", err)
	}

	return doc.toDomain(id, createdAt, updatedAt), nil
}

func (r *postgresProfileRepo) Create(ctx context.Context, p *profile.Profile) error {
	documentBytes, err := json.Marshal(toDocument(p))
	if err != nil {
		return apperror.NewInternal("failed to marshal profile document", err)
	}

	sql, args, err := psqlProfile.Insert("profiles").
		Columns("owner_id", "document", "created_at", "updated_at").
		Values(p.OwnerID, documentBytes, p.CreatedAt, p.UpdatedAt).
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build profile insert", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case uniqueViolation:
				return apperror.NewConflict("profile", "owner", p.OwnerID.String())
			case foreignKeyViolation:
				return apperror.NewNotFound("user", p.OwnerID.String())
			}
		}
		return apperror.NewInternal("failed to create profile", err)
	}
	return nil
}

func (r *postgresProfileRepo) Update(ctx context.Context, p *profile.Profile) error {
	documentBytes, err := json.Marshal(toDocument(p))
	if err != nil {
		return apperror.NewInternal("failed to marshal profile document", err)
	}

	sql, args, err := psqlProfile.Update("profiles").
		Set("document", documentBytes).
		Set("updated_at", p.UpdatedAt).
		Where(sq.Eq{"owner_id": p.OwnerID}).
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build profile update", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewInternal("failed to update profile", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("profile", p.OwnerID.String())
	}
	return nil
}

func (r *postgresProfileRepo) Delete(ctx context.Context, ownerID uuid.UUID) error {
	query := `DELETE FROM profiles WHERE owner_id = $1`
	cmdTag, err := r.db.Exec(ctx, query, ownerID)
	if err != nil {
		return apperror.NewInternal("failed to delete profile", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("profile", ownerID.String())
	}
	return nil
}
