package http

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const credentialsDetail = "Could not validate credentials"

// authRequired extracts and verifies the bearer token. Every failure mode
// yields the same 401 body; the cause only appears in server logs.
func (s *Server) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(401, gin.H{"detail": credentialsDetail})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(401, gin.H{"detail": credentialsDetail})
			return
		}
		token := parts[1]

		if s.verifier == nil {
			s.log.Warn("rejecting request: token verifier not configured")
			c.AbortWithStatusJSON(401, gin.H{"detail": credentialsDetail})
			return
		}

		claims, err := s.verifier.Verify(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(401, gin.H{"detail": credentialsDetail})
			return
		}

		c.Set("claims", claims)
		c.Set("userID", claims.Subject)
		// The raw token doubles as the access token for the userinfo lookup.
		c.Set("accessToken", token)

		c.Next()
	}
}
