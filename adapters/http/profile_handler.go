package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	profileUC "github.com/khoahotran/profile-playground/internal/application/usecase/profile"
	"github.com/khoahotran/profile-playground/pkg/apperror"
	"github.com/khoahotran/profile-playground/pkg/logger"
)

type ProfileHandler struct {
	profileUseCase *profileUC.ProfileUseCase
	logger         logger.Logger
}

func NewProfileHandler(uc *profileUC.ProfileUseCase, log logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: uc,
		logger:         log,
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	output, err := h.profileUseCase.ExecuteGetProfile(c.Request.Context(), profileUC.GetProfileInput{OwnerID: ownerID})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	var req CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for profile", err))
		return
	}

	output, err := h.profileUseCase.ExecuteCreateProfile(c.Request.Context(), profileUC.CreateProfileInput{
		OwnerID: ownerID,
		Profile: req.ToDomain(),
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, ToProfileDTO(output.Profile))
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for profile update", err))
		return
	}

	output, err := h.profileUseCase.ExecuteUpdateProfile(c.Request.Context(), profileUC.UpdateProfileInput{
		OwnerID: ownerID,
		Update:  req.ToDomain(),
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	if err := h.profileUseCase.ExecuteDeleteProfile(c.Request.Context(), profileUC.DeleteProfileInput{OwnerID: ownerID}); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *ProfileHandler) ExportProfile(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	output, err := h.profileUseCase.ExecuteExportProfile(c.Request.Context(), profileUC.ExportProfileInput{OwnerID: ownerID})
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", output.Filename))
	c.Data(http.StatusOK, "application/json; charset=utf-8", output.Body)
}
