package middleware

import (
	"net/http"
	"strings"

	"ridetracker/internal/auth"
	"ridetracker/internal/domain"
	"ridetracker/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	callerUIDKey   = "caller_uid"
	callerEmailKey = "caller_email"
)

// Auth requires a bearer token accepted by verifier and stores the caller
// identity on the context.
func Auth(verifier auth.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			abortUnauthorized(c, "missing bearer token")
			return
		}

		id, err := verifier.Verify(c.Request.Context(), token)
		if err != nil || id.UserID == "" {
			utils.LogEvent(GetRequestID(c), "auth", "verify", "token rejected")
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		c.Set(callerUIDKey, id.UserID)
		c.Set(callerEmailKey, id.Email)
		c.Next()
	}
}

// CallerUID returns the authenticated user id, or "" outside Auth.
func CallerUID(c *gin.Context) string {
	return c.GetString(callerUIDKey)
}

func CallerEmail(c *gin.Context) string {
	return c.GetString(callerEmailKey)
}

// Caller bundles the authenticated identity with the request id.
func Caller(c *gin.Context) domain.RequestContext {
	return domain.RequestContext{
		UserID:    CallerUID(c),
		Email:     CallerEmail(c),
		RequestID: GetRequestID(c),
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":      message,
		"code":       "unauthorized",
		"message":    message,
		"request_id": GetRequestID(c),
	})
}
