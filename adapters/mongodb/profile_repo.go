package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/khoahotran/profile-playground/internal/domain/profile"
	"github.com/khoahotran/profile-playground/pkg/apperror"
)

// profileDocument embeds the profile fields next to the owner key and
// timestamps, which the domain type keeps out of bson.
type profileDocument struct {
	OwnerID         string `bson:"owner_id"`
	profile.Profile `bson:",inline"`
	CreatedAt       time.Time `bson:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at"`
}

type ProfileRepo struct {
	collection *mongo.Collection
}

func NewProfileRepo(db *mongo.Database) *ProfileRepo {
	return &ProfileRepo{collection: db.Collection(collectionProfiles)}
}

var _ profile.Repository = (*ProfileRepo)(nil)

func (r *ProfileRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "owner_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func toDocument(p *profile.Profile) profileDocument {
	return profileDocument{
		OwnerID:   p.OwnerID.String(),
		Profile:   *p,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (r *ProfileRepo) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) (*profile.Profile, error) {
	var doc profileDocument
	err := r.collection.FindOne(ctx, bson.M{"owner_id": ownerID.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NewNotFound("profile", ownerID.String())
		}
		return nil, apperror.NewInternal("failed to query profile", err)
	}

	p := doc.Profile
	p.OwnerID = ownerID
	p.CreatedAt = doc.CreatedAt
	p.UpdatedAt = doc.UpdatedAt
	p.Normalize()
	return &p, nil
}

func (r *ProfileRepo) Create(ctx context.Context, p *profile.Profile) error {
	if _, err := r.collection.InsertOne(ctx, toDocument(p)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperror.NewConflict("profile", "owner", p.OwnerID.String())
		}
		return apperror.NewInternal("failed to create profile", err)
	}
	return nil
}

func (r *ProfileRepo) Update(ctx context.Context, p *profile.Profile) error {
	res, err := r.collection.ReplaceOne(ctx, bson.M{"owner_id": p.OwnerID.String()}, toDocument(p))
	if err != nil {
		return apperror.NewInternal("failed to update profile", err)
	}
	if res.MatchedCount == 0 {
		return apperror.NewNotFound("profile", p.OwnerID.String())
	}
	return nil
}

func (r *ProfileRepo) Delete(ctx context.Context, ownerID uuid.UUID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"owner_id": ownerID.String()})
	if err != nil {
		return apperror.NewInternal("failed to delete profile", err)
	}
	if res.DeletedCount == 0 {
		return apperror.NewNotFound("profile", ownerID.String())
	}
	return nil
}
