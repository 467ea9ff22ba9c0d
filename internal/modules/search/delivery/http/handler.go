package http

import (
	"net/http"
	"strconv"

	searchService "anoa.com/fitquest/internal/modules/search/service"
	"anoa.com/fitquest/pkg/response"
	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	service searchService.SearchService
}

func NewSearchHandler(service searchService.SearchService) *SearchHandler {
	return &SearchHandler{service: service}
}

func (h *SearchHandler) SearchCatalog(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit > 50 {
		limit = 50
	}

	result, err := h.service.SearchCatalog(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}
