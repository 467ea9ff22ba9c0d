package http

import (
	"net/http"

	"anoa.com/fitquest/internal/entity"
	achievementDto "anoa.com/fitquest/internal/modules/achievement/dto"
	achievementService "anoa.com/fitquest/internal/modules/achievement/service"
	"anoa.com/fitquest/pkg/response"
	"github.com/gin-gonic/gin"
)

type AchievementHandler struct {
	service achievementService.AchievementService
}

func NewAchievementHandler(service achievementService.AchievementService) *AchievementHandler {
	return &AchievementHandler{service: service}
}

func (h *AchievementHandler) GetMyAchievements(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	achievements, err := h.service.GetUserAchievements(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": achievements})
}

func (h *AchievementHandler) EvaluateMine(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	unlocked, err := h.service.EvaluateAndUnlock(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	if unlocked == nil {
		unlocked = []entity.Achievement{}
	}

	c.JSON(http.StatusOK, gin.H{"data": achievementDto.EvaluateResponse{Unlocked: unlocked}})
}
