package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"helishuttle/internal/services"
)

const invalidBookingID = "invalid_booking_id"

// POST /api/customer-bookings
func (h *Handler) CreateCustomerBooking(c *gin.Context) {
	var req services.CreateBookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	b, err := h.bookingService(c).Create(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": b})
}

// GET /api/customer-bookings?date=
func (h *Handler) ListCustomerBookings(c *gin.Context) {
	list, err := h.bookingService(c).List(c.Request.Context(), c.Query("date"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": list})
}

// GET /api/customer-bookings/:id
func (h *Handler) GetCustomerBooking(c *gin.Context) {
	id, ok := pathID(c, invalidBookingID, "invalid booking id")
	if !ok {
		return
	}
	b, err := h.bookingService(c).Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// DELETE /api/customer-bookings/:id
func (h *Handler) DeleteCustomerBooking(c *gin.Context) {
	id, ok := pathID(c, invalidBookingID, "invalid booking id")
	if !ok {
		return
	}
	if err := h.bookingService(c).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking deleted", "id": id})
}

// GET /api/customer-bookings/export?date=
func (h *Handler) ExportCustomerBookings(c *gin.Context) {
	bs := h.bookingService(c)
	svc := services.ExportService{Bookings: bs, RequestID: bs.RequestID}
	data, filename, err := svc.BookingsWorkbook(c.Request.Context(), c.Query("date"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	attachment(c, "attachment", filename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// GET /api/customer-bookings/:id/confirmation
func (h *Handler) BookingConfirmation(c *gin.Context) {
	id, ok := pathID(c, invalidBookingID, "invalid booking id")
	if !ok {
		return
	}
	bs := h.bookingService(c)
	svc := services.DocsService{Bookings: bs.Bookings, RequestID: bs.RequestID}
	pdf, filename, err := svc.BookingConfirmation(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	disposition := "inline"
	if c.Query("download") == "1" {
		disposition = "attachment"
	}
	attachment(c, disposition, filename, "application/pdf", pdf)
}
