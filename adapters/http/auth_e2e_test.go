package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/khoahotran/profile-playground/adapters/persistence"
	authUC "github.com/khoahotran/profile-playground/internal/application/usecase/auth"
	profileUC "github.com/khoahotran/profile-playground/internal/application/usecase/profile"
	queryUC "github.com/khoahotran/profile-playground/internal/application/usecase/query"
	"github.com/khoahotran/profile-playground/internal/config"
	"github.com/khoahotran/profile-playground/internal/domain/user"
	"github.com/khoahotran/profile-playground/pkg/auth"
	"github.com/khoahotran/profile-playground/pkg/logger"
)

// AuthE2ETestSuite runs against the Postgres named by DB_DSN with
// migrations already applied.
type AuthE2ETestSuite struct {
	suite.Suite
	Router   *gin.Engine
	dbPool   *pgxpool.Pool
	testUser user.User
	testPass string
}

func (s *AuthE2ETestSuite) SetupSuite() {

	cfg, err := config.LoadConfig("../..")
	if err != nil {
		s.T().Fatalf("Failed to load config for E2E test: %v", err)
	}

	dbPool, err := pgxpool.New(context.Background(), cfg.DB.DSN)
	if err != nil {
		s.T().Fatalf("E2E test failed to connect postgres: %v", err)
	}
	s.dbPool = dbPool

	appLogger := logger.NewZapLogger("development")

	userRepo := persistence.NewPostgresUserRepo(dbPool, appLogger)
	profileRepo := persistence.NewPostgresProfileRepo(dbPool, appLogger)

	s.testPass = "e2e_test_password_123"
	hash, _ := auth.HashPassword(s.testPass)
	s.testUser = user.User{
		ID:           uuid.New(),
		Name:         "E2E",
		Email:        "e2e_test@example.com",
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := userRepo.UpsertByEmail(context.Background(), &s.testUser); err != nil {
		s.T().Fatalf("E2E test failed to seed user: %v", err)
	}

	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)

	gin.SetMode(gin.TestMode)
	s.Router = NewRouter(RouterDeps{
		CORSOrigin: cfg.App.CORSOrigin,
		CookieName: cfg.Auth.CookieName,
		JWTService: jwtSvc,
		AuthHandler: NewAuthHandler(
			authUC.NewRegisterUseCase(userRepo, jwtSvc, appLogger),
			authUC.NewLoginUseCase(userRepo, jwtSvc, appLogger),
			authUC.NewMeUseCase(userRepo),
			CookieSettings{Name: cfg.Auth.CookieName, MaxAge: cfg.Auth.TokenLifespan},
			appLogger,
		),
		ProfileHandler: NewProfileHandler(profileUC.NewProfileUseCase(profileRepo, nil, nil, appLogger), appLogger),
		QueryHandler:   NewQueryHandler(queryUC.NewQueryUseCase(profileRepo, nil, appLogger), appLogger),
		Logger:         appLogger,
	})
}

func (s *AuthE2ETestSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
}

func TestAuthE2E(t *testing.T) {

	if os.Getenv("E2E_TESTS") == "" {
		t.Skip("Skipping E2E tests. Set E2E_TESTS=1 to run.")
	}
	suite.Run(t, new(AuthE2ETestSuite))
}

func (s *AuthE2ETestSuite) Test_Login_Flow() {

	bodyBad, _ := json.Marshal(gin.H{"email": s.testUser.Email, "password": "wrongpassword"})
	reqBad := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBuffer(bodyBad))
	reqBad.Header.Set("Content-Type", "application/json")

	rrBad := httptest.NewRecorder()
	s.Router.ServeHTTP(rrBad, reqBad)

	assert.Equal(s.T(), http.StatusUnauthorized, rrBad.Code)

	bodyGood, _ := json.Marshal(gin.H{"email": s.testUser.Email, "password": s.testPass})
	reqGood := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBuffer(bodyGood))
	reqGood.Header.Set("Content-Type", "application/json")

	rrGood := httptest.NewRecorder()
	s.Router.ServeHTTP(rrGood, reqGood)

	assert.Equal(s.T(), http.StatusOK, rrGood.Code)

	var loginResponse struct {
		AccessToken string `json:"access_token"`
	}
	json.Unmarshal(rrGood.Body.Bytes(), &loginResponse)
	accessToken := loginResponse.AccessToken
	assert.NotEmpty(s.T(), accessToken)

	reqAuth := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	reqAuth.Header.Set("Authorization", "Bearer "+accessToken)

	rrAuth := httptest.NewRecorder()
	s.Router.ServeHTTP(rrAuth, reqAuth)

	assert.Equal(s.T(), http.StatusOK, rrAuth.Code)

	reqNoAuth := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rrNoAuth := httptest.NewRecorder()
	s.Router.ServeHTTP(rrNoAuth, reqNoAuth)

	assert.Equal(s.T(), http.StatusUnauthorized, rrNoAuth.Code)
}
