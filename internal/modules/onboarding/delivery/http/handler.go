package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kickstarthq/talent-backend/internal/middleware"
	onboardingDto "github.com/kickstarthq/talent-backend/internal/modules/onboarding/dto"
	onboarding "github.com/kickstarthq/talent-backend/internal/modules/onboarding/service"
	"github.com/kickstarthq/talent-backend/pkg/response"
	"github.com/kickstarthq/talent-backend/pkg/validator"
)

type OnboardingHandler struct {
	service onboarding.OnboardingService
}

func NewOnboardingHandler(service onboarding.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{service: service}
}

func (h *OnboardingHandler) Complete(c *gin.Context) {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var input onboardingDto.CompleteOnboardingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	resp, err := h.service.Complete(c.Request.Context(), actor, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
