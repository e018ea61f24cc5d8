package archive

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/profile-playground/adapters/memory"
	"github.com/khoahotran/profile-playground/internal/domain/profile"
	"github.com/khoahotran/profile-playground/pkg/apperror"
	"github.com/khoahotran/profile-playground/pkg/logger"
)

type fakeUploader struct {
	folder   string
	publicID string
	body     []byte
	deleted  []string
	err      error
}

func (u *fakeUploader) Upload(_ context.Context, file io.Reader, folder, publicID string) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	body, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	u.folder, u.publicID, u.body = folder, publicID, body
	return "https://cdn.example.com/" + publicID, nil
}

func (u *fakeUploader) Delete(_ context.Context, publicID string) error {
	u.deleted = append(u.deleted, publicID)
	return u.err
}

func TestArchive_Execute(t *testing.T) {
	repo := memory.NewProfileRepo()
	owner := uuid.New()
	require.NoError(t, repo.Create(context.Background(), &profile.Profile{
		OwnerID: owner, Name: "Ada", Email: "ada@example.com", Skills: []string{"Go"},
	}))

	up := &fakeUploader{}
	uc := NewArchiveUseCase(repo, up, logger.NewNop())

	out, err := uc.Execute(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, "profiles/"+owner.String(), up.folder)
	assert.Equal(t, "profiles/"+owner.String()+"/profile.json", out.PublicID)
	assert.Equal(t, "https://cdn.example.com/"+out.PublicID, out.URL)

	var snapshot profile.Profile
	require.NoError(t, json.Unmarshal(up.body, &snapshot))
	assert.Equal(t, "Ada", snapshot.Name)
	assert.Equal(t, []string{"Go"}, snapshot.Skills)
}

func TestArchive_Errors(t *testing.T) {
	repo := memory.NewProfileRepo()
	uc := NewArchiveUseCase(repo, &fakeUploader{}, logger.NewNop())

	_, err := uc.Execute(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	owner := uuid.New()
	require.NoError(t, repo.Create(context.Background(), &profile.Profile{OwnerID: owner, Name: "A", Email: "a@example.com"}))
	failing := NewArchiveUseCase(repo, &fakeUploader{err: errors.New("quota")}, logger.NewNop())
	_, err = failing.Execute(context.Background(), owner)
	assert.EqualError(t, err, "quota")
}

func TestArchive_Remove(t *testing.T) {
	up := &fakeUploader{}
	uc := NewArchiveUseCase(memory.NewProfileRepo(), up, logger.NewNop())
	owner := uuid.New()

	require.NoError(t, uc.Remove(context.Background(), owner))
	assert.Equal(t, []string{PublicID(owner)}, up.deleted)
}
