package http

import (
	"net/http"

	adminDto "anoa.com/fitquest/internal/modules/admin/dto"
	adminService "anoa.com/fitquest/internal/modules/admin/service"
	"anoa.com/fitquest/pkg/apperror"
	commonDto "anoa.com/fitquest/pkg/dto"
	"anoa.com/fitquest/pkg/response"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminService adminService.AdminService
}

func NewAdminHandler(adminService adminService.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

func (h *AdminHandler) CreateUser(c *gin.Context) {
	var input adminDto.CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ResponseError(c, apperror.ErrBadRequest)
		return
	}

	user, err := h.adminService.CreateUser(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": user})
}

func (h *AdminHandler) GetAllUsers(c *gin.Context) {
	var query commonDto.PaginationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ResponseError(c, apperror.ErrBadRequest)
		return
	}

	res, err := h.adminService.GetAllUsers(c.Request.Context(), query)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": res})
}

func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	var input adminDto.UpdateRoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ResponseError(c, apperror.ErrBadRequest)
		return
	}

	user, err := h.adminService.UpdateUserRole(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": user})
}
