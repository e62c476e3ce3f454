package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"helishuttle/internal/http/middleware"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/admin/login
func (h *Handler) AdminLogin(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	res, err := h.AuthService(c).Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /api/admin/logout
func (h *Handler) AdminLogout(c *gin.Context) {
	claims, ok := middleware.AdminClaims(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", "missing admin session", nil)
		return
	}
	if err := h.AuthService(c).Logout(c.Request.Context(), claims); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
