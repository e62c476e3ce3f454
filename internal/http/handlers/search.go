package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"helishuttle/internal/services"
)

// GET /api/search
func (h *Handler) Search(c *gin.Context) {
	var q services.SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_query", "invalid query", err.Error())
		return
	}
	res, err := h.searchService(c).Search(c.Request.Context(), q)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /api/quote
func (h *Handler) Quote(c *gin.Context) {
	var req services.QuoteRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	q, err := h.searchService(c).Quote(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quote": q})
}
