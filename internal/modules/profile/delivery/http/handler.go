package http

import (
	"net/http"

	profileDto "anoa.com/fitquest/internal/modules/profile/dto"
	profileService "anoa.com/fitquest/internal/modules/profile/service"
	"anoa.com/fitquest/pkg/apperror"
	"anoa.com/fitquest/pkg/response"
	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileService profileService.ProfileService
}

func NewProfileHandler(profileService profileService.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

func (h *ProfileHandler) GetProfileByUsername(c *gin.Context) {
	profile, err := h.profileService.GetProfileByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": profile})
}

func (h *ProfileHandler) GetCurrentProfile(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	profile, err := h.profileService.GetCurrentProfile(c.Request.Context(), userID.String())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": profile})
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input profileDto.UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ResponseError(c, apperror.ErrBadRequest)
		return
	}

	profile, err := h.profileService.UpdateProfile(c.Request.Context(), userID.String(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": profile})
}
