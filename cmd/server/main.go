package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khoahotran/profile-playground/adapters/event"
	httpAdapter "github.com/khoahotran/profile-playground/adapters/http"
	"github.com/khoahotran/profile-playground/adapters/persistence"
	"github.com/khoahotran/profile-playground/adapters/store"
	"github.com/khoahotran/profile-playground/internal/application/service"
	authUC "github.com/khoahotran/profile-playground/internal/application/usecase/auth"
	profileUC "github.com/khoahotran/profile-playground/internal/application/usecase/profile"
	queryUC "github.com/khoahotran/profile-playground/internal/application/usecase/query"
	"github.com/khoahotran/profile-playground/internal/config"
	"github.com/khoahotran/profile-playground/pkg/auth"
	"github.com/khoahotran/profile-playground/pkg/logger"
	"github.com/khoahotran/profile-playground/pkg/tracing"
)

func main() {
	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("cannot load config: " + err.Error())
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()

	appLogger.Info("Start Profile Playground API Server...", zap.String("env", cfg.App.Env))

	// Tracing
	tp, err := tracing.NewTracerProvider(cfg, appLogger, "profile-playground-api")
	if err != nil {
		appLogger.Fatal("cannot init tracer", err)
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			appLogger.Error("Failed to shutdown tracer provider", err)
		}
	}()

	// Repositories
	ctx := context.Background()
	st, err := store.Open(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot open store", err)
	}
	defer st.Close()

	// Skill cache
	var skillCache service.SkillCache
	if cfg.Redis.Addr != "" {
		redisClient, err := persistence.NewRedisClient(cfg, appLogger)
		if err != nil {
			appLogger.Warn("Redis unavailable, top skills are computed on every request", zap.Error(err))
		} else {
			defer redisClient.Close()
			skillCache = persistence.NewRedisSkillCache(redisClient, cfg.Redis.CacheTTL)
		}
	}

	// Events
	var publisher service.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaClient, err := event.NewKafkaProducerClient(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("cannot init Kafka", err)
		}
		defer kafkaClient.Close()
		publisher = kafkaClient
	} else {
		appLogger.Warn("kafka brokers has not config, profile events are not published")
	}

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)

	// Use Cases
	registerUseCase := authUC.NewRegisterUseCase(st.Users, jwtSvc, appLogger)
	loginUseCase := authUC.NewLoginUseCase(st.Users, jwtSvc, appLogger)
	meUseCase := authUC.NewMeUseCase(st.Users)
	profileUseCase := profileUC.NewProfileUseCase(st.Profiles, publisher, skillCache, appLogger)
	queryUseCase := queryUC.NewQueryUseCase(st.Profiles, skillCache, appLogger)

	// HTTP Handlers
	authHandler := httpAdapter.NewAuthHandler(registerUseCase, loginUseCase, meUseCase, httpAdapter.CookieSettings{
		Name:   cfg.Auth.CookieName,
		Secure: cfg.Auth.CookieSecure || cfg.IsProduction(),
		MaxAge: cfg.Auth.TokenLifespan,
	}, appLogger)
	profileHandler := httpAdapter.NewProfileHandler(profileUseCase, appLogger)
	queryHandler := httpAdapter.NewQueryHandler(queryUseCase, appLogger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpAdapter.NewRouter(httpAdapter.RouterDeps{
		CORSOrigin:     cfg.App.CORSOrigin,
		CookieName:     cfg.Auth.CookieName,
		JWTService:     jwtSvc,
		AuthHandler:    authHandler,
		ProfileHandler: profileHandler,
		QueryHandler:   queryHandler,
		Logger:         appLogger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("Server running", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Cannot run server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", err)
	}
	appLogger.Info("Server exited")
}
