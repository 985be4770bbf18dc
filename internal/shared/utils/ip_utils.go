package utils

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// ExtractClientIP returns the first valid address among X-Forwarded-For
// (leftmost entry), X-Real-IP and the connection's remote address, falling
// back to loopback.
func ExtractClientIP(c *gin.Context) string {
	candidates := make([]string, 0, 3)
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		candidates = append(candidates, strings.TrimSpace(first))
	}
	candidates = append(candidates, c.GetHeader("X-Real-IP"))

	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		host = c.Request.RemoteAddr
	}
	candidates = append(candidates, host)

	for _, ip := range candidates {
		if isValidIP(ip) {
			return ip
		}
	}
	return "127.0.0.1"
}

func isValidIP(ip string) bool {
	return ip != "" && net.ParseIP(ip) != nil
}
