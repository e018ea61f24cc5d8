package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/profile-playground/internal/domain/search"
)

// SkillCache stores the top-skills ranking per owner. Entries are tagged with
// the UpdatedAt of the profile they were computed from; GetTopSkills reports a
// miss when the stored version differs from the one asked for.
type SkillCache interface {
	GetTopSkills(ctx context.Context, ownerID uuid.UUID, version time.Time) ([]search.SkillCount, bool, error)
	SetTopSkills(ctx context.Context, ownerID uuid.UUID, version time.Time, skills []search.SkillCount) error
	Invalidate(ctx context.Context, ownerID uuid.UUID) error
}
