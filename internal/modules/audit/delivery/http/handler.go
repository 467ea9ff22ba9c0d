package http

import (
	"net/http"

	auditService "anoa.com/fitquest/internal/modules/audit/service"
	"anoa.com/fitquest/pkg/apperror"
	"anoa.com/fitquest/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuditHandler struct {
	service auditService.AuditService
}

func NewAuditHandler(service auditService.AuditService) *AuditHandler {
	return &AuditHandler{service: service}
}

func (h *AuditHandler) AuditUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		response.ResponseError(c, apperror.ErrInvalidInput)
		return
	}

	report, err := h.service.AuditUser(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": report})
}
