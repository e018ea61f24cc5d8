package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/profile-playground/internal/domain/user"
	"github.com/khoahotran/profile-playground/pkg/apperror"
	"github.com/khoahotran/profile-playground/pkg/auth"
	"github.com/khoahotran/profile-playground/pkg/logger"
)

type RegisterUseCase struct {
	userRepo user.Repository
	jwtSvc   *auth.JWTService
	logger   logger.Logger
}

func NewRegisterUseCase(repo user.Repository, jwtSvc *auth.JWTService, log logger.Logger) *RegisterUseCase {
	return &RegisterUseCase{
		userRepo: repo,
		jwtSvc:   jwtSvc,
		logger:   log,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

func (uc *RegisterUseCase) Execute(ctx context.Context, input RegisterInput) (*LoginOutput, error) {
	ctx, span := tracer.Start(ctx, "Register")
	defer span.End()

	email := strings.TrimSpace(input.Email)

	if _, err := uc.userRepo.FindByEmail(ctx, email); err == nil {
		err := apperror.NewConflict("user", "email", email)
		span.RecordError(err)
		return nil, err
	} else if !errors.Is(err, apperror.ErrNotFound) {
		span.RecordError(err)
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, apperror.NewInternal("failed to hash password", err)
	}

	u := &user.User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.userRepo.Create(ctx, u); err != nil {
		span.RecordError(err)
		return nil, err
	}
	uc.logger.Info("User registered", zap.String("user_id", u.ID.String()))

	token, err := issueToken(uc.jwtSvc, uc.logger, u)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.String("user_id", u.ID.String()))
	return &LoginOutput{User: u, AccessToken: token}, nil
}
