package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventhub/event-management-backend/pkg/response"
)

// RequireRoles gates a route on the caller holding at least one of the given
// roles. No principal means 401; a principal lacking every role means 403.
// Either way the handler body never runs.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok {
			response.AbortMessage(c, http.StatusUnauthorized, "Full authentication is required to access this resource")
			return
		}
		if !p.HasAnyRole(roles...) {
			response.AbortMessage(c, http.StatusForbidden, "Access is denied")
			return
		}
		c.Next()
	}
}
