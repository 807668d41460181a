package middleware

import (
	"net"

	"github.com/gin-gonic/gin"
)

// AllowPrivateIP is an AllowFunc that exempts loopback and RFC 1918
// addresses from rate limiting, for health checks and in-cluster callers.
func AllowPrivateIP() AllowFunc {
	return func(c *gin.Context) bool {
		ip := net.ParseIP(ipFromCtx(c))
		if ip == nil {
			return false
		}
		return ip.IsLoopback() || ip.IsPrivate()
	}
}
