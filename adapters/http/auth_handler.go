package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/profile-playground/internal/application/usecase/auth"
	"github.com/khoahotran/profile-playground/pkg/apperror"
	"github.com/khoahotran/profile-playground/pkg/logger"
)

// CookieSettings controls the auth cookie set on login and registration.
type CookieSettings struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

type AuthHandler struct {
	registerUseCase *auth.RegisterUseCase
	loginUseCase    *auth.LoginUseCase
	meUseCase       *auth.MeUseCase
	cookie          CookieSettings
	logger          logger.Logger
}

func NewAuthHandler(registerUC *auth.RegisterUseCase, loginUC *auth.LoginUseCase, meUC *auth.MeUseCase, cookie CookieSettings, log logger.Logger) *AuthHandler {
	return &AuthHandler{
		registerUseCase: registerUC,
		loginUseCase:    loginUC,
		meUseCase:       meUC,
		cookie:          cookie,
		logger:          log,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid register body", err))
		return
	}

	output, err := h.registerUseCase.Execute(c.Request.Context(), auth.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		c.Error(err)
		return
	}

	h.setAuthCookie(c, output.AccessToken)
	c.JSON(http.StatusCreated, gin.H{
		"user":         ToUserDTO(output.User),
		"access_token": output.AccessToken,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid login body", err))
		return
	}

	output, err := h.loginUseCase.Execute(c.Request.Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		c.Error(err)
		return
	}

	h.setAuthCookie(c, output.AccessToken)
	c.JSON(http.StatusOK, gin.H{
		"user":         ToUserDTO(output.User),
		"access_token": output.AccessToken,
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	u, err := h.meUseCase.Execute(c.Request.Context(), ownerID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToUserDTO(u))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
	c.JSON(http.StatusOK, gin.H{"status": "logged_out"})
}

func (h *AuthHandler) setAuthCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, token, int(h.cookie.MaxAge.Seconds()), "/", "", h.cookie.Secure, true)
}
