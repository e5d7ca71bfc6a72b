package delivery

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	authdomain "taskboard-backend/internal/auth/domain"
	"taskboard-backend/internal/auth/usecase"
)

const (
	ContextUserKey    = "user"
	ContextSessionKey = "session"
)

// AuthMiddleware resolves the bearer session token and stores the user and
// session on the request context. Unknown or expired tokens get 401.
func AuthMiddleware(authUsecase usecase.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		result, err := authUsecase.ResumeSession(parts[1])
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not resolve session"})
			c.Abort()
			return
		}
		if result == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			c.Abort()
			return
		}

		c.Set(ContextUserKey, result.User)
		c.Set(ContextSessionKey, result.Session)
		c.Next()
	}
}

// CurrentUser pulls the authenticated user off the request context.
func CurrentUser(c *gin.Context) *authdomain.User {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*authdomain.User)
	return user
}

// ClientContext captures the caller's address and agent for audit stamping.
func ClientContext(c *gin.Context) authdomain.ClientContext {
	return authdomain.ClientContext{
		IPAddress: c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
	}
}
