package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/penpalhq/warden/core"
	"github.com/penpalhq/warden/service"
)

// AuthHandlers contains HTTP handlers for auth endpoints
type AuthHandlers struct {
	authService *service.AuthService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authService *service.AuthService) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
	}
}

// Login handles the login request
func (h *AuthHandlers) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	creds, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		statusCode := http.StatusInternalServerError
		errorMsg := "Authentication error"

		switch {
		case errors.Is(err, core.ErrAuthenticationFailed):
			statusCode = http.StatusUnauthorized
			errorMsg = "Not authenticated"
		case errors.Is(err, core.ErrStoreUnavailable):
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, gin.H{"error": errorMsg})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  creds.AccessToken,
		"refresh_token": creds.RefreshToken,
		"token_type":    "Bearer",
	})
}

// Logout handles the logout request. The bearer credential comes from the
// Authorization header; the subject is named explicitly in the body.
func (h *AuthHandlers) Logout(c *gin.Context) {
	var req struct {
		Subject string `json:"subject" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	accessToken, ok := bearerToken(c.GetHeader("Authorization"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid authorization header"})
		return
	}

	if err := h.authService.Logout(c.Request.Context(), accessToken, req.Subject); err != nil {
		statusCode := http.StatusInternalServerError
		errorMsg := "Authentication error"

		switch {
		case errors.Is(err, core.ErrInvalidCredential):
			statusCode = http.StatusBadRequest
		case errors.Is(err, core.ErrStoreUnavailable):
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, gin.H{"error": errorMsg})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Reissue handles silent session renewal. The renewal credential travels in
// a dedicated RefreshToken header, with or without a Bearer prefix.
func (h *AuthHandlers) Reissue(c *gin.Context) {
	refreshToken, ok := bearerToken(c.GetHeader("RefreshToken"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "RefreshToken header is required"})
		return
	}

	creds, err := h.authService.Reissue(c.Request.Context(), refreshToken)
	if err != nil {
		statusCode := http.StatusInternalServerError
		errorMsg := "Authentication error"

		switch {
		case errors.Is(err, core.ErrSessionExpired):
			statusCode = http.StatusUnauthorized
			errorMsg = "Session expired, please log in again"
		case errors.Is(err, core.ErrCredentialMismatch):
			statusCode = http.StatusUnauthorized
			errorMsg = "Not authenticated"
		case errors.Is(err, core.ErrInvalidCredential):
			statusCode = http.StatusBadRequest
		case errors.Is(err, core.ErrStoreUnavailable):
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, gin.H{"error": errorMsg})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  creds.AccessToken,
		"refresh_token": creds.RefreshToken,
		"token_type":    "Bearer",
	})
}

// Health confirms the presented bearer credential is still live
func (h *AuthHandlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Me returns information about the authenticated member
func (h *AuthHandlers) Me(c *gin.Context) {
	subject, exists := c.Get(contextSubjectKey)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Member not found in context"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"email": subject})
}
