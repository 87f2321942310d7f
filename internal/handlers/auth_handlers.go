package handlers

import (
	"net/http"

	"dress_rental_backend/internal/middleware"
	"dress_rental_backend/internal/services"
	"dress_rental_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service.
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as services.AuthService) *AuthHandler {
	return &AuthHandler{authService: as}
}

// Login handles user login by username or email.
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if !bindJSON(c, &req, "Login") {
		return
	}

	authResp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Login", "Failed to login.")
		return
	}
	c.JSON(http.StatusOK, authResp)
}

// Logout acknowledges the logout. Tokens are stateless, so the client discards its own.
func (h *AuthHandler) Logout(c *gin.Context) {
	if principal, ok := middleware.PrincipalFrom(c); ok {
		utils.LogInfo("user logged out", map[string]interface{}{"user_id": principal.UserID, "username": principal.Username})
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully. Please discard your token."})
}
