package http

import (
	"net/http"

	streakDto "anoa.com/fitquest/internal/modules/streak/dto"
	streakService "anoa.com/fitquest/internal/modules/streak/service"
	"anoa.com/fitquest/pkg/apperror"
	"anoa.com/fitquest/pkg/response"
	"github.com/gin-gonic/gin"
)

type StreakHandler struct {
	service streakService.StreakService
}

func NewStreakHandler(service streakService.StreakService) *StreakHandler {
	return &StreakHandler{service: service}
}

// RecordActivity lets an admin record a qualifying activity for any user.
func (h *StreakHandler) RecordActivity(c *gin.Context) {
	var req streakDto.RecordActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, apperror.ErrInvalidInput)
		return
	}

	result, err := h.service.RecordDailyActivity(c.Request.Context(), req.UserID, req.Category, req.OccurredAt)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}
