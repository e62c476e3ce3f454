package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"helishuttle/internal/services"
)

// GET /api/dashboard?date=
func (h *Handler) Dashboard(c *gin.Context) {
	svc := services.DashboardService{Bookings: h.Bookings, Slots: h.Slots}
	sum, err := svc.Summary(c.Request.Context(), c.Query("date"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}
