package http

import (
	"net/http"

	activityDto "anoa.com/fitquest/internal/modules/activity/dto"
	activityService "anoa.com/fitquest/internal/modules/activity/service"
	"anoa.com/fitquest/pkg/apperror"
	"anoa.com/fitquest/pkg/response"
	"github.com/gin-gonic/gin"
)

type ActivityHandler struct {
	service activityService.ActivityService
}

func NewActivityHandler(service activityService.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

func (h *ActivityHandler) LogActivity(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req activityDto.LogActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, apperror.ErrInvalidInput)
		return
	}

	result, err := h.service.LogActivity(c.Request.Context(), userID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": result})
}
