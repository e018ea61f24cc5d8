package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	queryUC "github.com/khoahotran/profile-playground/internal/application/usecase/query"
	"github.com/khoahotran/profile-playground/pkg/apperror"
	"github.com/khoahotran/profile-playground/pkg/logger"
)

type QueryHandler struct {
	queryUseCase *queryUC.QueryUseCase
	logger       logger.Logger
}

func NewQueryHandler(uc *queryUC.QueryUseCase, log logger.Logger) *QueryHandler {
	return &QueryHandler{
		queryUseCase: uc,
		logger:       log,
	}
}

// ProjectsBySkill handles GET /query/projects?skill=
func (h *QueryHandler) ProjectsBySkill(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	output, err := h.queryUseCase.ExecuteProjectsBySkill(c.Request.Context(), queryUC.ProjectsBySkillInput{
		OwnerID: ownerID,
		Skill:   c.Query("skill"),
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ProjectsResponse{Projects: toProjectDTOs(output.Projects)})
}

// Search handles GET /query/search?q=
func (h *QueryHandler) Search(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	output, err := h.queryUseCase.ExecuteSearch(c.Request.Context(), queryUC.SearchInput{
		OwnerID: ownerID,
		Query:   c.Query("q"),
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, SearchResponse{Matches: ToMatchesDTO(output.Matches)})
}

// TopSkills handles GET /query/skills/top
func (h *QueryHandler) TopSkills(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	output, err := h.queryUseCase.ExecuteTopSkills(c.Request.Context(), queryUC.TopSkillsInput{OwnerID: ownerID})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToTopSkillsResponse(output.Skills))
}
