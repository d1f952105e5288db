package mw

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// The identity/session provider in front of this service authenticates the
// user and forwards who they are in these headers. Values are trusted
// verbatim.
const (
	HeaderAgentID = "X-Agent-ID"
	HeaderRole    = "X-Agent-Role"
)

// Context keys set by Identity.
const (
	CtxAgentID = "agentID"
	CtxRole    = "role"
)

// Identity requires an authenticated agent identity on every request and
// stores it on the gin context.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		agentID := c.GetHeader(HeaderAgentID)
		if agentID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing agent identity"})
			return
		}
		role := c.GetHeader(HeaderRole)
		if role == "" {
			role = "agent"
		}
		c.Set(CtxAgentID, agentID)
		c.Set(CtxRole, role)
		c.Next()
	}
}

// RequireRole rejects requests whose identity does not carry the given role.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxRole) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			return
		}
		c.Next()
	}
}
