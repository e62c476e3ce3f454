package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type paymentReferenceRequest struct {
	TransactionRef string `json:"transactionRef"`
}

// GET /api/customer-bookings/:id/payment
func (h *Handler) PaymentInstructions(c *gin.Context) {
	id, ok := pathID(c, invalidBookingID, "invalid booking id")
	if !ok {
		return
	}
	ins, err := h.bookingService(c).PaymentInstructions(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": ins})
}

// GET /api/customer-bookings/:id/payment/qr.png
func (h *Handler) PaymentQRCode(c *gin.Context) {
	id, ok := pathID(c, invalidBookingID, "invalid booking id")
	if !ok {
		return
	}
	svc := h.bookingService(c)
	b, err := svc.Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	link, err := svc.Payments.UPILink(b.FinalTotal)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	png, err := svc.Payments.QRCode(link)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	attachment(c, "inline", fmt.Sprintf("Payment_%d.png", id), "image/png", png)
}

// POST /api/customer-bookings/:id/payment-reference
func (h *Handler) SubmitPaymentReference(c *gin.Context) {
	id, ok := pathID(c, invalidBookingID, "invalid booking id")
	if !ok {
		return
	}
	var req paymentReferenceRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	res, err := h.bookingService(c).SubmitPaymentReference(c.Request.Context(), id, req.TransactionRef)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
