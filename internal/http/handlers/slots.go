package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"helishuttle/internal/domain/models"
	"helishuttle/internal/services"
)

// GET /api/bookings?date=&from=&to=
func (h *Handler) ListSlots(c *gin.Context) {
	f := models.SlotFilter{
		Date: c.Query("date"),
		From: c.Query("from"),
		To:   c.Query("to"),
	}
	slots, err := h.slotService(c).List(c.Request.Context(), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": slots})
}

// GET /api/bookings/:id
func (h *Handler) GetSlot(c *gin.Context) {
	id, ok := pathID(c, "invalid_slot_id", "invalid slot id")
	if !ok {
		return
	}
	slot, err := h.slotService(c).Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": slot})
}

// POST /api/bookings
func (h *Handler) CreateSlot(c *gin.Context) {
	var req services.CreateSlotRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	slot, err := h.slotService(c).Create(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": slot})
}

// DELETE /api/bookings/:id
func (h *Handler) DeleteSlot(c *gin.Context) {
	id, ok := pathID(c, "invalid_slot_id", "invalid slot id")
	if !ok {
		return
	}
	if err := h.slotService(c).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "slot deleted", "id": id})
}
