package api

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	intconfig "helishuttle/internal/config"
	h "helishuttle/internal/http/handlers"
	"helishuttle/internal/http/middleware"
	"helishuttle/internal/utils"
)

// NewRouter wires middleware and the /api route table onto a gin engine.
func NewRouter(env intconfig.Env, hd *h.Handler) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		gin.Recovery(),
		middleware.CORS(env.CORSAllowedOrigins),
		middleware.RateLimit(env.RateLimitPerMin),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		utils.Logger().Warn("failed to set trusted proxies", zap.Error(err))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":      "route not found",
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
			"request_id": middleware.GetRequestID(c),
		})
	})

	adminOnly := middleware.AdminAuth(hd.AuthService(nil))

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", hd.DBCheck)
		api.GET("/routes", h.Routes)

		// Flight slots are served under /bookings for the booking site
		slots := api.Group("/bookings")
		slots.GET("", hd.ListSlots)
		slots.GET("/:id", hd.GetSlot)
		slots.POST("", adminOnly, hd.CreateSlot)
		slots.DELETE("/:id", adminOnly, hd.DeleteSlot)

		api.GET("/search", hd.Search)
		api.POST("/quote", hd.Quote)

		// Customer bookings
		cb := api.Group("/customer-bookings")
		cb.POST("", hd.CreateCustomerBooking)
		cb.GET("/:id/confirmation", hd.BookingConfirmation)
		cb.GET("/:id/payment", hd.PaymentInstructions)
		cb.GET("/:id/payment/qr.png", hd.PaymentQRCode)
		cb.POST("/:id/payment-reference", hd.SubmitPaymentReference)
		cb.GET("", adminOnly, hd.ListCustomerBookings)
		cb.GET("/export", adminOnly, hd.ExportCustomerBookings)
		cb.GET("/:id", adminOnly, hd.GetCustomerBooking)
		cb.DELETE("/:id", adminOnly, hd.DeleteCustomerBooking)

		api.GET("/dashboard", adminOnly, hd.Dashboard)
		api.POST("/uploads/identity-card", hd.UploadIdentityCard)

		// Admin auth
		admin := api.Group("/admin")
		admin.POST("/login", hd.AdminLogin)
		admin.POST("/logout", adminOnly, hd.AdminLogout)
	}

	h.SetRouter(r)
	return r
}
