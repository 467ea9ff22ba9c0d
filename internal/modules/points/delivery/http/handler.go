package http

import (
	"net/http"

	leaderboardService "anoa.com/fitquest/internal/modules/leaderboard/service"
	pointsDto "anoa.com/fitquest/internal/modules/points/dto"
	pointsService "anoa.com/fitquest/internal/modules/points/service"
	"anoa.com/fitquest/pkg/apperror"
	"anoa.com/fitquest/pkg/dto"
	"anoa.com/fitquest/pkg/response"
	"github.com/gin-gonic/gin"
)

type PointsHandler struct {
	service pointsService.PointsService
}

func NewPointsHandler(service pointsService.PointsService) *PointsHandler {
	return &PointsHandler{service: service}
}

func (h *PointsHandler) GetMyPoints(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	stats, err := h.service.GetUserPoints(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	if stats == nil {
		response.ResponseError(c, apperror.ErrUserPointsNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": pointsDto.UserPointsResponse{
		UserID:             stats.UserID,
		TotalPoints:        stats.TotalPoints,
		WeeklyPoints:       stats.WeeklyPoints,
		MonthlyPoints:      stats.MonthlyPoints,
		Level:              stats.Level,
		WorkoutStreak:      stats.WorkoutStreak,
		DietStreak:         stats.DietStreak,
		MentalHealthStreak: stats.MentalHealthStreak,
		LastWorkoutDate:    stats.LastWorkoutDate,
		LastDietDate:       stats.LastDietDate,
		LastMentalDate:     stats.LastMentalHealthDate,
		Status:             leaderboardService.GetGamificationStatus(stats.Level, stats.TotalPoints, stats.WeeklyPoints),
	}})
}

func (h *PointsHandler) GetMyHistory(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var query dto.PaginationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ResponseError(c, apperror.ErrInvalidInput)
		return
	}
	limit, offset := query.Normalize()

	logs, err := h.service.GetHistory(c.Request.Context(), userID, limit, offset)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, pointsDto.HistoryResponse{
		Data: logs,
		Meta: dto.PaginationMeta{CurrentPage: offset/limit + 1, Limit: limit, Count: len(logs)},
	})
}

// AwardPoints is the admin entry point for crediting any user.
func (h *PointsHandler) AwardPoints(c *gin.Context) {
	var req pointsDto.AwardPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, apperror.ErrInvalidInput)
		return
	}

	result, err := h.service.AwardPoints(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": result})
}
