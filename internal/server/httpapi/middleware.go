package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dkalnins/auctionhub/internal/common"
	"github.com/gin-gonic/gin"
)

// contextUserKey is where the auth middleware stores the resolved identity
// for downstream handlers.
const contextUserKey = "auth.user"

const bearerPrefix = "Bearer "

const (
	msgNoToken      = "Not authorized, no token provided"
	msgBadToken     = "Invalid or expired token"
	msgSessionError = "Server error validating session"
)

// requireAuth validates the bearer token, loads the identity it encodes, and
// attaches it to the request context. Signature/expiry validation needs no
// store lookup; the profile load that follows is what the protected handlers
// consume.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, fail(msgNoToken))
			return
		}
		token := strings.TrimPrefix(header, bearerPrefix)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, fail(msgNoToken))
			return
		}

		userID, err := s.users.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, fail(msgBadToken))
			return
		}

		user, err := s.users.GetProfile(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, fail(msgUserNotFound))
				return
			}
			s.logger.Error(c.Request.Context(), "profile lookup failed", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, fail(msgSessionError))
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}
