package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

const ctxRealIPKey = "real_ip"

// RealIP resolves the client address once per request and stores it in the
// context. Cloudflare's header wins, then the left-most X-Forwarded-For hop,
// then gin's own resolution.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ctxRealIPKey, resolveIP(c))
		c.Next()
	}
}

func resolveIP(c *gin.Context) string {
	if v := parseIPHeader(c.GetHeader("CF-Connecting-IP")); v != "" {
		return v
	}
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		hops := strings.SplitN(xff, ",", 2)
		if v := parseIPHeader(hops[0]); v != "" {
			return v
		}
	}
	return c.ClientIP()
}

func parseIPHeader(raw string) string {
	ip := net.ParseIP(strings.TrimSpace(raw))
	if ip == nil {
		return ""
	}
	return ip.String()
}

// ClientIP returns the resolved client IP for the request.
func ClientIP(c *gin.Context) string {
	if ip := c.GetString(ctxRealIPKey); ip != "" {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}
