package query

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/profile-playground/internal/application/service"
	"github.com/khoahotran/profile-playground/internal/domain/profile"
	"github.com/khoahotran/profile-playground/internal/domain/search"
	"github.com/khoahotran/profile-playground/pkg/logger"
)

var tracer = otel.Tracer("query_usecase")

// QueryUseCase loads an owner's profile and runs the search engine over it.
// cache is optional and only used for the top-skills ranking.
type QueryUseCase struct {
	profileRepo profile.Repository
	cache       service.SkillCache
	logger      logger.Logger
}

func NewQueryUseCase(repo profile.Repository, cache service.SkillCache, log logger.Logger) *QueryUseCase {
	return &QueryUseCase{
		profileRepo: repo,
		cache:       cache,
		logger:      log,
	}
}

type ProjectsBySkillInput struct {
	OwnerID uuid.UUID
	Skill   string
}

type ProjectsBySkillOutput struct {
	Projects []profile.Project
}

func (uc *QueryUseCase) ExecuteProjectsBySkill(ctx context.Context, input ProjectsBySkillInput) (*ProjectsBySkillOutput, error) {
	ctx, span := tracer.Start(ctx, "QueryUseCase.ExecuteProjectsBySkill")
	defer span.End()
	span.SetAttributes(
		attribute.String("owner_id", input.OwnerID.String()),
		attribute.String("skill", input.Skill),
	)

	p, err := uc.profileRepo.GetByOwnerID(ctx, input.OwnerID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	projects := search.Query(p).ProjectsBySkill(input.Skill)
	span.SetAttributes(attribute.Int("result_count", len(projects)))
	return &ProjectsBySkillOutput{Projects: projects}, nil
}

type SearchInput struct {
	OwnerID uuid.UUID
	Query   string
}

type SearchOutput struct {
	Matches search.Matches
}

func (uc *QueryUseCase) ExecuteSearch(ctx context.Context, input SearchInput) (*SearchOutput, error) {
	ctx, span := tracer.Start(ctx, "QueryUseCase.ExecuteSearch")
	defer span.End()
	span.SetAttributes(attribute.String("owner_id", input.OwnerID.String()))

	p, err := uc.profileRepo.GetByOwnerID(ctx, input.OwnerID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	uc.logger.Info("Executing profile search", zap.String("query", input.Query), zap.String("owner_id", input.OwnerID.String()))
	return &SearchOutput{Matches: search.Query(p).Search(input.Query)}, nil
}

type TopSkillsInput struct {
	OwnerID uuid.UUID
}

type TopSkillsOutput struct {
	Skills []search.SkillCount
}

// ExecuteTopSkills reads through the skill cache. The profile is always
// loaded first and a cached ranking is only served when it was computed from
// the same profile version. Cache failures are logged and the ranking is
// computed from the stored profile instead.
func (uc *QueryUseCase) ExecuteTopSkills(ctx context.Context, input TopSkillsInput) (*TopSkillsOutput, error) {
	ctx, span := tracer.Start(ctx, "QueryUseCase.ExecuteTopSkills")
	defer span.End()
	span.SetAttributes(attribute.String("owner_id", input.OwnerID.String()))

	p, err := uc.profileRepo.GetByOwnerID(ctx, input.OwnerID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if uc.cache != nil {
		skills, ok, err := uc.cache.GetTopSkills(ctx, input.OwnerID, p.UpdatedAt)
		if err != nil {
			uc.logger.Warn("Failed to read skill cache", zap.String("owner_id", input.OwnerID.String()), zap.Error(err))
		} else if ok {
			span.SetAttributes(attribute.Bool("cache_hit", true))
			return &TopSkillsOutput{Skills: skills}, nil
		}
	}

	skills := search.Query(p).TopSkills()

	if uc.cache != nil {
		if err := uc.cache.SetTopSkills(ctx, input.OwnerID, p.UpdatedAt, skills); err != nil {
			uc.logger.Warn("Failed to write skill cache", zap.String("owner_id", input.OwnerID.String()), zap.Error(err))
		}
	}
	return &TopSkillsOutput{Skills: skills}, nil
}
