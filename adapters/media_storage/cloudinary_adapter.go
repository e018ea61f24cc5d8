package media_storage

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"

	"github.com/khoahotran/profile-playground/internal/application/service"
	"github.com/khoahotran/profile-playground/internal/config"
	"github.com/khoahotran/profile-playground/pkg/logger"
)

// Profile snapshots are JSON, not images.
const resourceTypeRaw = "raw"

type cloudinaryAdapter struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryAdapter returns a nil Uploader and no error when Cloudinary
// is not configured; archiving is then skipped.
func NewCloudinaryAdapter(cfg config.Config, log logger.Logger) (service.Uploader, error) {

	if cfg.Cloudinary.CloudName == "" {
		log.Warn("cloudinary cloud_name has not config, profile archive disabled")
		return nil, nil
	}

	cld, err := cloudinary.NewFromParams(
		cfg.Cloudinary.CloudName,
		cfg.Cloudinary.ApiKey,
		cfg.Cloudinary.ApiSecret,
	)
	if err != nil {
		return nil, fmt.Errorf("cannot init cloudinary: %w", err)
	}

	log.Info("connect Cloudinary successfully.", zap.String("cloud_name", cfg.Cloudinary.CloudName))
	return &cloudinaryAdapter{cld: cld}, nil
}

func (a *cloudinaryAdapter) Upload(ctx context.Context, file io.Reader, folder string, publicID string) (string, error) {
	uploadParams := uploader.UploadParams{
		PublicID:     publicID,
		Folder:       folder,
		ResourceType: resourceTypeRaw,
		Overwrite:    api.Bool(true),
	}
	result, err := a.cld.Upload.Upload(ctx, file, uploadParams)
	if err != nil {
		return "", fmt.Errorf("failed to upload cloudinary: %w", err)
	}
	return result.SecureURL, nil
}

func (a *cloudinaryAdapter) Delete(ctx context.Context, publicID string) error {
	_, err := a.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: resourceTypeRaw,
	})
	if err != nil {
		return fmt.Errorf("failed to delete cloudinary: %w", err)
	}
	return nil
}
