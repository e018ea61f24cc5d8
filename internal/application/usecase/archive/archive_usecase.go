package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/profile-playground/internal/application/service"
	"github.com/khoahotran/profile-playground/internal/domain/profile"
	"github.com/khoahotran/profile-playground/pkg/logger"
)

const snapshotName = "profile.json"

// ArchiveUseCase keeps the latest JSON snapshot of a profile in blob storage.
type ArchiveUseCase struct {
	profileRepo profile.Repository
	uploader    service.Uploader
	logger      logger.Logger
}

func NewArchiveUseCase(repo profile.Repository, uploader service.Uploader, log logger.Logger) *ArchiveUseCase {
	return &ArchiveUseCase{
		profileRepo: repo,
		uploader:    uploader,
		logger:      log,
	}
}

func Folder(ownerID uuid.UUID) string {
	return fmt.Sprintf("profiles/%s", ownerID.String())
}

func PublicID(ownerID uuid.UUID) string {
	return fmt.Sprintf("%s/%s", Folder(ownerID), snapshotName)
}

type ArchiveOutput struct {
	URL      string
	PublicID string
}

// Execute uploads the current profile of ownerID, replacing any earlier
// snapshot.
func (uc *ArchiveUseCase) Execute(ctx context.Context, ownerID uuid.UUID) (*ArchiveOutput, error) {
	uc.logger.Info("Starting profile archive...", zap.String("owner_id", ownerID.String()))

	p, err := uc.profileRepo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load profile for archive: %w", err)
	}

	body, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode profile snapshot: %w", err)
	}

	folder := Folder(ownerID)
	publicID := PublicID(ownerID)

	url, err := uc.uploader.Upload(ctx, bytes.NewReader(body), folder, publicID)
	if err != nil {
		uc.logger.Error("Failed to upload profile snapshot", err, zap.String("public_id", publicID))
		return nil, err
	}

	uc.logger.Info("Profile snapshot uploaded successfully",
		zap.String("url", url),
		zap.String("public_id", publicID),
	)
	return &ArchiveOutput{URL: url, PublicID: publicID}, nil
}

// Remove deletes the snapshot of ownerID.
func (uc *ArchiveUseCase) Remove(ctx context.Context, ownerID uuid.UUID) error {
	publicID := PublicID(ownerID)
	if err := uc.uploader.Delete(ctx, publicID); err != nil {
		uc.logger.Error("Failed to delete profile snapshot", err, zap.String("public_id", publicID))
		return err
	}
	uc.logger.Info("Profile snapshot deleted", zap.String("public_id", publicID))
	return nil
}
