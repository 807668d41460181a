package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/eventhub/event-management-backend/internal/domain/entity"
	"github.com/eventhub/event-management-backend/pkg/helpers"
)

// CtxPrincipalKey is the gin context key holding the request's *entity.Principal.
const CtxPrincipalKey = "principal"

const bearerPrefix = "Bearer "

// PrincipalResolver loads the full identity for a validated token subject.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, subject string) (*entity.Principal, error)
}

// BearerAuth extracts and validates a bearer token, resolves the principal,
// and attaches it to the request context. It never aborts: a missing or
// invalid token leaves the request anonymous, and the role guards decide
// later whether anonymous access is acceptable. This is what lets public and
// protected endpoints share one chain.
func BearerAuth(jwt *helpers.JWTManager, resolver PrincipalResolver, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			c.Next()
			return
		}
		token := header[len(bearerPrefix):]
		subject, err := jwt.Validate(token)
		if err != nil {
			if logger != nil {
				logger.WithError(err).Debug("bearer token rejected")
			}
			c.Next()
			return
		}
		// Idempotence guard against double-processing on re-entrant chains.
		if _, exists := c.Get(CtxPrincipalKey); !exists {
			p, err := resolver.ResolvePrincipal(c.Request.Context(), subject)
			if err != nil {
				if logger != nil {
					logger.WithField("subject", subject).Debug("principal resolution failed")
				}
				c.Next()
				return
			}
			c.Set(CtxPrincipalKey, p)
		}
		c.Next()
	}
}

// PrincipalFrom returns the principal attached to the request, if any.
func PrincipalFrom(c *gin.Context) (*entity.Principal, bool) {
	v, exists := c.Get(CtxPrincipalKey)
	if !exists {
		return nil, false
	}
	p, ok := v.(*entity.Principal)
	return p, ok
}
