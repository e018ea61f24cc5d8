package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/profile-playground/internal/application/service"
	"github.com/khoahotran/profile-playground/internal/domain/profile"
	"github.com/khoahotran/profile-playground/pkg/apperror"
	"github.com/khoahotran/profile-playground/pkg/logger"
)

var tracer = otel.Tracer("profile_usecase")

// ProfileUseCase owns the single profile document of each owner.
// publisher and cache are optional.
type ProfileUseCase struct {
	profileRepo profile.Repository
	publisher   service.EventPublisher
	cache       service.SkillCache
	logger      logger.Logger
	now         func() time.Time
}

func NewProfileUseCase(repo profile.Repository, publisher service.EventPublisher, cache service.SkillCache, log logger.Logger) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: repo,
		publisher:   publisher,
		cache:       cache,
		logger:      log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

type GetProfileInput struct {
	OwnerID uuid.UUID
}

type GetProfileOutput struct {
	Profile *profile.Profile
}

func (uc *ProfileUseCase) ExecuteGetProfile(ctx context.Context, input GetProfileInput) (*GetProfileOutput, error) {
	ctx, span := tracer.Start(ctx, "ProfileUseCase.ExecuteGetProfile")
	defer span.End()
	span.SetAttributes(attribute.String("owner_id", input.OwnerID.String()))

	p, err := uc.profileRepo.GetByOwnerID(ctx, input.OwnerID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return &GetProfileOutput{Profile: p}, nil
}

type CreateProfileInput struct {
	OwnerID uuid.UUID
	Profile profile.Profile
}

type CreateProfileOutput struct {
	Profile *profile.Profile
}

func (uc *ProfileUseCase) ExecuteCreateProfile(ctx context.Context, input CreateProfileInput) (*CreateProfileOutput, error) {
	ctx, span := tracer.Start(ctx, "ProfileUseCase.ExecuteCreateProfile")
	defer span.End()
	span.SetAttributes(attribute.String("owner_id", input.OwnerID.String()))

	_, err := uc.profileRepo.GetByOwnerID(ctx, input.OwnerID)
	if err == nil {
		return nil, apperror.NewConflict("profile", "owner", input.OwnerID.String())
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		span.RecordError(err)
		return nil, err
	}

	now := uc.now()
	p := input.Profile
	p.OwnerID = input.OwnerID
	p.CreatedAt = now
	p.UpdatedAt = now
	p.Normalize()

	if err := p.Validate(); err != nil {
		return nil, apperror.NewInvalidInput("validation failed", err)
	}

	if err := uc.profileRepo.Create(ctx, &p); err != nil {
		span.RecordError(err)
		return nil, err
	}

	uc.logger.Info("Profile created", zap.String("owner_id", p.OwnerID.String()))
	uc.afterWrite(ctx, service.ProfileEventCreated, p.OwnerID)

	return &CreateProfileOutput{Profile: &p}, nil
}

type UpdateProfileInput struct {
	OwnerID uuid.UUID
	Update  profile.Update
}

type UpdateProfileOutput struct {
	Profile *profile.Profile
}

// ExecuteUpdateProfile merges the present fields of input.Update into the
// stored profile. Absent fields keep their stored values.
func (uc *ProfileUseCase) ExecuteUpdateProfile(ctx context.Context, input UpdateProfileInput) (*UpdateProfileOutput, error) {
	ctx, span := tracer.Start(ctx, "ProfileUseCase.ExecuteUpdateProfile")
	defer span.End()
	span.SetAttributes(attribute.String("owner_id", input.OwnerID.String()))

	existing, err := uc.profileRepo.GetByOwnerID(ctx, input.OwnerID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	existing.Apply(input.Update)
	existing.UpdatedAt = uc.now()
	existing.Normalize()

	if err := existing.Validate(); err != nil {
		return nil, apperror.NewInvalidInput("validation failed", err)
	}

	if err := uc.profileRepo.Update(ctx, existing); err != nil {
		span.RecordError(err)
		return nil, err
	}

	uc.afterWrite(ctx, service.ProfileEventUpdated, existing.OwnerID)

	return &UpdateProfileOutput{Profile: existing}, nil
}

type DeleteProfileInput struct {
	OwnerID uuid.UUID
}

func (uc *ProfileUseCase) ExecuteDeleteProfile(ctx context.Context, input DeleteProfileInput) error {
	ctx, span := tracer.Start(ctx, "ProfileUseCase.ExecuteDeleteProfile")
	defer span.End()
	span.SetAttributes(attribute.String("owner_id", input.OwnerID.String()))

	if err := uc.profileRepo.Delete(ctx, input.OwnerID); err != nil {
		span.RecordError(err)
		return err
	}

	uc.logger.Info("Profile deleted", zap.String("owner_id", input.OwnerID.String()))
	uc.afterWrite(ctx, service.ProfileEventDeleted, input.OwnerID)
	return nil
}

// afterWrite drops the cached ranking before returning so the next read
// sees the write, then publishes the event in the background.
func (uc *ProfileUseCase) afterWrite(ctx context.Context, t service.ProfileEventType, ownerID uuid.UUID) {
	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, ownerID); err != nil {
			uc.logger.Warn("Failed to invalidate skill cache", zap.String("owner_id", ownerID.String()), zap.Error(err))
		}
	}

	if uc.publisher == nil {
		return
	}
	e := service.NewProfileEvent(t, ownerID)
	go func() {
		if err := uc.publisher.PublishProfileEvent(context.Background(), e); err != nil {
			uc.logger.Error("Failed to publish profile event", err,
				zap.String("event_type", string(e.EventType)),
				zap.String("owner_id", ownerID.String()),
			)
		}
	}()
}
