package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	skill "github.com/kickstarthq/talent-backend/internal/modules/skill/service"
	"github.com/kickstarthq/talent-backend/pkg/response"
)

type SkillHandler struct {
	service skill.SkillService
}

func NewSkillHandler(service skill.SkillService) *SkillHandler {
	return &SkillHandler{service: service}
}

func (h *SkillHandler) ListSkills(c *gin.Context) {
	skills, err := h.service.ListSkills(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": skills})
}
