package http

import (
	"net/http"

	rewardDto "anoa.com/fitquest/internal/modules/reward/dto"
	rewardService "anoa.com/fitquest/internal/modules/reward/service"
	"anoa.com/fitquest/pkg/apperror"
	"anoa.com/fitquest/pkg/dto"
	"anoa.com/fitquest/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RewardHandler struct {
	service rewardService.RewardService
}

func NewRewardHandler(service rewardService.RewardService) *RewardHandler {
	return &RewardHandler{service: service}
}

func (h *RewardHandler) ListRewards(c *gin.Context) {
	rewards, err := h.service.ListAvailableRewards(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rewards})
}

func (h *RewardHandler) Redeem(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	rewardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ResponseError(c, apperror.ErrRewardNotFound)
		return
	}

	result, err := h.service.Redeem(c.Request.Context(), userID, rewardID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": result})
}

func (h *RewardHandler) GetMyRedemptions(c *gin.Context) {
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

	redemptions, err := h.service.GetRedemptions(c.Request.Context(), userID, limit, offset)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, rewardDto.RedemptionListResponse{
		Data: redemptions,
		Meta: dto.PaginationMeta{CurrentPage: offset/limit + 1, Limit: limit, Count: len(redemptions)},
	})
}
