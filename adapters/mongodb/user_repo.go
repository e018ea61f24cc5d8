package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/khoahotran/profile-playground/internal/domain/user"
	"github.com/khoahotran/profile-playground/pkg/apperror"
)

type userDocument struct {
	ID           string    `bson:"id"`
	Name         string    `bson:"name"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password_hash"`
	CreatedAt    time.Time `bson:"created_at"`
}

type UserRepo struct {
	collection *mongo.Collection
}

func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{collection: db.Collection(collectionUsers)}
}

var _ user.Repository = (*UserRepo)(nil)

func (r *UserRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	return err
}

func (r *UserRepo) findOne(ctx context.Context, filter bson.M, identifier string) (*user.User, error) {
	var doc userDocument
	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NewNotFound("user", identifier)
		}
		return nil, apperror.NewInternal("failed to query user", err)
	}

	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, apperror.NewInternal("corrupt user id", err)
	}
	return &user.User{
		ID:           id,
		Name:         doc.Name,
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		CreatedAt:    doc.CreatedAt,
	}, nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.findOne(ctx, bson.M{"email": email}, email)
}

func (r *UserRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return r.findOne(ctx, bson.M{"id": id.String()}, id.String())
}

func (r *UserRepo) Create(ctx context.Context, u *user.User) error {
	_, err := r.collection.InsertOne(ctx, userDocument{
		ID:           u.ID.String(),
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperror.NewConflict("user", "email", u.Email)
		}
		return apperror.NewInternal("failed to create user", err)
	}
	return nil
}

func (r *UserRepo) UpsertByEmail(ctx context.Context, u *user.User) error {
	update := bson.M{
		"$set": bson.M{"name": u.Name, "password_hash": u.PasswordHash},
		"$setOnInsert": bson.M{
			"id":         u.ID.String(),
			"created_at": u.CreatedAt,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var doc userDocument
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"email": u.Email}, update, opts).Decode(&doc); err != nil {
		return apperror.NewInternal("failed to upsert user", err)
	}
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return apperror.NewInternal("corrupt user id", err)
	}
	u.ID = id
	return nil
}
