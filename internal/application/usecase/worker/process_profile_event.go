package worker

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/khoahotran/profile-playground/internal/application/service"
	"github.com/khoahotran/profile-playground/internal/application/usecase/archive"
	"github.com/khoahotran/profile-playground/internal/domain/profile"
	"github.com/khoahotran/profile-playground/internal/domain/search"
	"github.com/khoahotran/profile-playground/pkg/apperror"
	"github.com/khoahotran/profile-playground/pkg/logger"
)

// ProcessProfileEventUseCase reacts to profile writes published by the API.
// cache and archiver may be nil.
type ProcessProfileEventUseCase struct {
	profileRepo profile.Repository
	cache       service.SkillCache
	archiver    *archive.ArchiveUseCase
	logger      logger.Logger
}

func NewProcessProfileEventUseCase(repo profile.Repository, cache service.SkillCache, archiver *archive.ArchiveUseCase, log logger.Logger) *ProcessProfileEventUseCase {
	return &ProcessProfileEventUseCase{
		profileRepo: repo,
		cache:       cache,
		archiver:    archiver,
		logger:      log,
	}
}

func (uc *ProcessProfileEventUseCase) Execute(ctx context.Context, e service.ProfileEvent) error {
	log := uc.logger.With(
		zap.String("event_id", e.ID.String()),
		zap.String("event_type", string(e.EventType)),
		zap.String("owner_id", e.OwnerID.String()),
	)
	log.Info("Worker processing profile event")

	switch e.EventType {
	case service.ProfileEventCreated, service.ProfileEventUpdated:
		p, err := uc.profileRepo.GetByOwnerID(ctx, e.OwnerID)
		if err != nil {
			if errors.Is(err, apperror.ErrNotFound) {
				log.Warn("Profile not found, skip.")
				return uc.invalidate(ctx, e)
			}
			return fmt.Errorf("get profile failed: %w", err)
		}

		if uc.cache != nil {
			if err := uc.cache.SetTopSkills(ctx, e.OwnerID, p.UpdatedAt, search.Query(p).TopSkills()); err != nil {
				return fmt.Errorf("warm skill cache failed: %w", err)
			}
		}
		if uc.archiver != nil {
			if _, err := uc.archiver.Execute(ctx, e.OwnerID); err != nil {
				return fmt.Errorf("archive profile failed: %w", err)
			}
		}
		log.Info("Profile event processed")
		return nil

	case service.ProfileEventDeleted:
		if err := uc.invalidate(ctx, e); err != nil {
			return err
		}
		if uc.archiver != nil {
			if err := uc.archiver.Remove(ctx, e.OwnerID); err != nil {
				return fmt.Errorf("remove profile snapshot failed: %w", err)
			}
		}
		log.Info("Profile event processed")
		return nil

	default:
		log.Warn("Unknown profile event type, skip.")
		return nil
	}
}

func (uc *ProcessProfileEventUseCase) invalidate(ctx context.Context, e service.ProfileEvent) error {
	if uc.cache == nil {
		return nil
	}
	if err := uc.cache.Invalidate(ctx, e.OwnerID); err != nil {
		return fmt.Errorf("invalidate skill cache failed: %w", err)
	}
	return nil
}
