package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"helishuttle/internal/http/middleware"
	"helishuttle/internal/services"
)

// Handler carries the stores and integrations the endpoints build their
// per-request services from.
type Handler struct {
	Slots     services.SlotStore
	Bookings  services.BookingStore
	Admins    services.AdminStore
	DenyList  services.TokenDenyList
	Uploader  services.ImageUploader
	Payments  services.PaymentConfig
	JWTSecret []byte
	Pinger    func(ctx context.Context) error
}

func (h *Handler) slotService(c *gin.Context) services.SlotService {
	return services.SlotService{Slots: h.Slots, RequestID: middleware.GetRequestID(c)}
}

func (h *Handler) searchService(c *gin.Context) services.SearchService {
	return services.SearchService{Slots: h.Slots, RequestID: middleware.GetRequestID(c)}
}

func (h *Handler) bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{
		Bookings:  h.Bookings,
		Slots:     h.Slots,
		Payments:  services.PaymentService{Config: h.Payments},
		RequestID: middleware.GetRequestID(c),
	}
}

// AuthService is also handed to middleware.AdminAuth, so c may be nil.
func (h *Handler) AuthService(c *gin.Context) services.AuthService {
	return services.AuthService{
		Admins:    h.Admins,
		DenyList:  h.DenyList,
		Secret:    h.JWTSecret,
		RequestID: middleware.GetRequestID(c),
	}
}
