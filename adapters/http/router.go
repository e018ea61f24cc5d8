package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"

	"github.com/khoahotran/profile-playground/pkg/auth"
	"github.com/khoahotran/profile-playground/pkg/logger"
)

type RouterDeps struct {
	CORSOrigin     string
	CookieName     string
	JWTService     *auth.JWTService
	AuthHandler    *AuthHandler
	ProfileHandler *ProfileHandler
	QueryHandler   *QueryHandler
	Logger         logger.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(deps.Logger))
	router.Use(tracingMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{deps.CORSOrigin},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(ErrorMiddleware(deps.Logger))

	authMiddleware := AuthMiddleware(deps.JWTService, deps.CookieName, deps.Logger)

	router.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", deps.AuthHandler.Register)
		authGroup.POST("/login", deps.AuthHandler.Login)
		authGroup.POST("/logout", deps.AuthHandler.Logout)
		authGroup.GET("/me", authMiddleware, deps.AuthHandler.Me)
	}

	profileGroup := router.Group("/profile")
	profileGroup.Use(authMiddleware)
	{
		profileGroup.GET("", deps.ProfileHandler.GetProfile)
		profileGroup.GET("/export", deps.ProfileHandler.ExportProfile)
		profileGroup.POST("", deps.ProfileHandler.CreateProfile)
		profileGroup.PUT("", deps.ProfileHandler.UpdateProfile)
		profileGroup.DELETE("", deps.ProfileHandler.DeleteProfile)
	}

	queryGroup := router.Group("/query")
	queryGroup.Use(authMiddleware)
	{
		queryGroup.GET("/projects", deps.QueryHandler.ProjectsBySkill)
		queryGroup.GET("/search", deps.QueryHandler.Search)
		queryGroup.GET("/skills/top", deps.QueryHandler.TopSkills)
	}

	return router
}

// tracingMiddleware starts one server span per request.
func tracingMiddleware() gin.HandlerFunc {
	tracer := otel.Tracer("http_server")
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), c.Request.Method+" "+c.FullPath())
		defer span.End()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
