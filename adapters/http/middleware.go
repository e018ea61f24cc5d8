package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/profile-playground/pkg/apperror"
	"github.com/khoahotran/profile-playground/pkg/auth"
	"github.com/khoahotran/profile-playground/pkg/logger"
)

const (
	GinContextKeyOwnerID = "ownerID"
)

// AuthMiddleware accepts the token from the auth cookie first and falls back
// to an "Authorization: Bearer" header.
func AuthMiddleware(jwtSvc *auth.JWTService, cookieName string, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFromRequest(c, cookieName)
		if tokenString == "" {
			c.Error(apperror.NewAppError(apperror.ErrUnauthorized, "Missing auth token", "no auth cookie or bearer token", nil))
			c.Abort()
			return
		}

		claims, err := jwtSvc.ValidateToken(tokenString)
		if err != nil {
			log.Warn("Rejected auth token", zap.String("path", c.FullPath()), zap.Error(err))
			c.Error(apperror.NewAppError(apperror.ErrUnauthorized, "Invalid or expired token", "token validation failed", err))
			c.Abort()
			return
		}

		c.Set(GinContextKeyOwnerID, claims.OwnerID)

		c.Next()
	}
}

func tokenFromRequest(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return ""
	}
	return strings.TrimSpace(tokenString)
}

// ErrorMiddleware renders the last error pushed with c.Error.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			appErr = apperror.NewInternal("unhandled error", err)
		}

		status := apperror.ToHTTPStatus(appErr)
		if status >= http.StatusInternalServerError {
			log.Error("Request failed", err, zap.String("path", c.Request.URL.Path), zap.Int("status", status))
		} else {
			log.Warn("Request rejected", zap.String("path", c.Request.URL.Path), zap.Int("status", status), zap.Error(err))
		}

		c.JSON(status, appErr.ToJSON())
	}
}

func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

func GetOwnerIDFromGinContext(c *gin.Context) (uuid.UUID, bool) {
	ownerID, ok := c.Get(GinContextKeyOwnerID)
	if !ok {
		return uuid.Nil, false
	}
	ownerIDUUID, ok := ownerID.(uuid.UUID)
	if !ok {
		return uuid.Nil, false
	}
	return ownerIDUUID, true
}
