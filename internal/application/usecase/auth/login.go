package auth

import (
	"context"
	"errors"

	"github.com/khoahotran/profile-playground/internal/domain/user"
	"github.com/khoahotran/profile-playground/pkg/apperror"
	"github.com/khoahotran/profile-playground/pkg/auth"
	"github.com/khoahotran/profile-playground/pkg/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var (
	ErrInvalidCredentials = errors.New("email or password is incorrect")
)

type LoginUseCase struct {
	userRepo user.Repository
	jwtSvc   *auth.JWTService
	logger   logger.Logger
}

func NewLoginUseCase(repo user.Repository, jwtSvc *auth.JWTService, log logger.Logger) *LoginUseCase {
	return &LoginUseCase{
		userRepo: repo,
		jwtSvc:   jwtSvc,
		logger:   log,
	}
}

type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput is shared by login and registration.
type LoginOutput struct {
	User        *user.User
	AccessToken string
}

var tracer = otel.Tracer("auth_usecase")

func (uc *LoginUseCase) Execute(ctx context.Context, input LoginInput) (*LoginOutput, error) {

	ctx, span := tracer.Start(ctx, "Login")
	defer span.End()

	u, err := uc.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			err = apperror.NewUnauthorized("unknown email", ErrInvalidCredentials)
		}
		span.RecordError(err)
		return nil, err
	}

	if !auth.CheckPasswordHash(input.Password, u.PasswordHash) {
		err := apperror.NewUnauthorized("incorrect password", ErrInvalidCredentials)
		span.RecordError(err)
		return nil, err
	}

	token, err := issueToken(uc.jwtSvc, uc.logger, u)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.String("user_id", u.ID.String()))
	return &LoginOutput{User: u, AccessToken: token}, nil
}

func issueToken(jwtSvc *auth.JWTService, log logger.Logger, u *user.User) (string, error) {
	token, err := jwtSvc.GenerateToken(u.ID)
	if err != nil {
		log.Error("Failed to generate token", err, zap.String("user_id", u.ID.String()))
		return "", apperror.NewInternal("failed to generate token", err)
	}
	return token, nil
}
