package profile

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/khoahotran/profile-playground/pkg/apperror"
)

const ExportFilename = "profile.json"

type ExportProfileInput struct {
	OwnerID uuid.UUID
}

type ExportProfileOutput struct {
	Filename string
	Body     []byte
}

// ExecuteExportProfile renders the stored profile as indented JSON.
func (uc *ProfileUseCase) ExecuteExportProfile(ctx context.Context, input ExportProfileInput) (*ExportProfileOutput, error) {
	ctx, span := tracer.Start(ctx, "ProfileUseCase.ExecuteExportProfile")
	defer span.End()

	out, err := uc.ExecuteGetProfile(ctx, GetProfileInput(input))
	if err != nil {
		return nil, err
	}

	body, err := json.MarshalIndent(out.Profile, "", "  ")
	if err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to encode profile export", err)
	}
	return &ExportProfileOutput{Filename: ExportFilename, Body: body}, nil
}
