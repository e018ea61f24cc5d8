package mongodb

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/khoahotran/profile-playground/internal/domain/profile"
)

func TestProfileDocument_Shape(t *testing.T) {
	ownerID := uuid.New()
	now := time.Now().UTC().Truncate(time.Millisecond)
	p := &profile.Profile{
		OwnerID:   ownerID,
		Name:      "Ada",
		Email:     "ada@example.com",
		Skills:    []string{"Go", "go"},
		Projects:  []profile.Project{{Title: "API", Description: "built in go", Links: []string{"https://example.com/api"}}},
		Links:     profile.Links{GitHub: "https://github.com/ada"},
		CreatedAt: now,
		UpdatedAt: now,
	}

	raw, err := bson.Marshal(toDocument(p))
	require.NoError(t, err)

	var fields bson.M
	require.NoError(t, bson.Unmarshal(raw, &fields))

	assert.Equal(t, ownerID.String(), fields["owner_id"])
	assert.Equal(t, "Ada", fields["name"])
	assert.Contains(t, fields, "skills")
	assert.Contains(t, fields, "projects")
	assert.Contains(t, fields, "links")
	assert.Contains(t, fields, "created_at")
	assert.NotContains(t, fields, "profile")
	assert.NotContains(t, fields, "ownerid")

	var doc profileDocument
	require.NoError(t, bson.Unmarshal(raw, &doc))
	assert.Equal(t, p.Skills, doc.Skills)
	assert.Equal(t, p.Projects, doc.Projects)
	assert.Equal(t, now, doc.UpdatedAt)
}
