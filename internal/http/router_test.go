package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	intconfig "helishuttle/internal/config"
	h "helishuttle/internal/http/handlers"
	"helishuttle/internal/services"
)

func TestRouterTable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(intconfig.Env{RateLimitPerMin: 1000}, &h.Handler{
		DenyList:  services.NewMemoryDenyList(),
		JWTSecret: []byte("router-test"),
	})

	got := map[string]bool{}
	for _, rt := range r.Routes() {
		got[rt.Method+" "+rt.Path] = true
	}
	for _, want := range []string{
		"GET /api/bookings",
		"POST /api/bookings",
		"GET /api/search",
		"POST /api/customer-bookings",
		"GET /api/customer-bookings/export",
		"GET /api/customer-bookings/:id/payment/qr.png",
		"POST /api/customer-bookings/:id/payment-reference",
		"GET /api/dashboard",
		"POST /api/uploads/identity-card",
		"POST /api/admin/login",
		"POST /api/admin/logout",
	} {
		assert.True(t, got[want], want)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/routes", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	for _, path := range []string{"/api/dashboard", "/api/customer-bookings", "/api/customer-bookings/export"} {
		w = httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}
