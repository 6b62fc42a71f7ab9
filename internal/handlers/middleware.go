package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Context keys set by identityMiddleware.
const (
	ctxUserID   = "userId"
	ctxUsername = "username"
)

// Fixed rejection bodies: 401 strictly for a missing/malformed credential,
// 403 for a credential that fails verification.
const (
	msgUnauthorized = "Unauthorized"
	msgForbidden    = "Forbidden"
)

// identityMiddleware extracts the bearer token, verifies it, and resolves
// the calling user before any protected handler runs.
func (h *Handler) identityMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": msgUnauthorized,
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": msgUnauthorized,
		})
		return
	}

	user, err := h.services.Authenticate(parts[1])
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_token_rejected", "err", err)
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": msgForbidden,
		})
		return
	}

	c.Set(ctxUserID, user.ID)
	c.Set(ctxUsername, user.Username)
	c.Next()
}

// callerID returns the authenticated user id stored by identityMiddleware.
func callerID(c *gin.Context) int {
	return c.GetInt(ctxUserID)
}
