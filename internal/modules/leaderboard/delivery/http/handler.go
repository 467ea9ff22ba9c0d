package http

import (
	"net/http"
	"strconv"

	leaderboardService "anoa.com/fitquest/internal/modules/leaderboard/service"
	"anoa.com/fitquest/pkg/response"
	"github.com/gin-gonic/gin"
)

const maxLimit = 50

type LeaderboardHandler struct {
	service leaderboardService.LeaderboardService
}

func NewLeaderboardHandler(service leaderboardService.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{service: service}
}

func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	timeframe := c.Query("timeframe") // "all_time", "monthly", "weekly"
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(leaderboardService.DefaultLimit)))

	if limit < 1 {
		limit = leaderboardService.DefaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	leaderboard, err := h.service.GetLeaderboard(c.Request.Context(), timeframe, limit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": leaderboard})
}

// InvalidateOnSuccess drops cached rankings after a successful write.
func (h *LeaderboardHandler) InvalidateOnSuccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if c.Writer.Status() < http.StatusMultipleChoices {
			h.service.InvalidateCache(c.Request.Context())
		}
	}
}
