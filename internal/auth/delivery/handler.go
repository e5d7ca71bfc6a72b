package delivery

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"taskboard-backend/internal/auth/dto"
	"taskboard-backend/internal/auth/usecase"
	"taskboard-backend/pkg/apperr"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authUsecase usecase.AuthUsecase
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authUsecase usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase}
}

func httpStatus(err error) int {
	switch {
	case apperr.IsAuthentication(err):
		return http.StatusUnauthorized
	case apperr.IsAuthorization(err):
		return http.StatusForbidden
	case apperr.IsNotFound(err):
		return http.StatusNotFound
	case apperr.IsValidation(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Login authenticates a user and opens a session
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authUsecase.Authenticate(req.Username, req.Password, req.RememberMe, ClientContext(c))
	if err != nil {
		c.JSON(httpStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:                  result.Session.Token,
		User:                   result.User,
		PasswordChangeRequired: result.PasswordChangeRequired,
	})
}

// Logout closes the current session
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no session token supplied"})
		return
	}
	if err := h.authUsecase.Logout(token); err != nil {
		c.JSON(httpStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

// Me returns the authenticated user
// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// Heartbeat bumps the session's last-activity timestamp
// POST /api/auth/heartbeat
func (h *AuthHandler) Heartbeat(c *gin.Context) {
	token := bearerToken(c)
	if token != "" {
		_ = h.authUsecase.UpdateLastActivity(token)
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ChangePassword lets the authenticated user rotate their own password
// POST /api/auth/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authUsecase.ChangePassword(user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		c.JSON(httpStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "password changed"})
}

// ResetPassword performs an administrative password reset
// POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	forceReset := true
	if req.ForceReset != nil {
		forceReset = *req.ForceReset
	}

	plaintext, err := h.authUsecase.AdminResetPassword(user.ID, req.TargetUserID, req.NewPassword, forceReset)
	if err != nil {
		c.JSON(httpStatus(err), gin.H{"error": err.Error()})
		return
	}

	// The plaintext appears in this response only; it is never persisted.
	c.JSON(http.StatusOK, dto.ResetPasswordResponse{TemporaryPassword: plaintext})
}

func bearerToken(c *gin.Context) string {
	parts := strings.Split(c.GetHeader("Authorization"), " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
