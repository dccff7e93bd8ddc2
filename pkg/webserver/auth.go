package webserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ravi-codingcity/FreightPro-B/pkg/utils"
)

// authMiddleware validates bearer tokens issued by the login service
func (s *Server) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			s.rejectAuth(c, "missing_authorization", "No authorization header, access denied", nil)
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			s.rejectAuth(c, "invalid_authorization_format", "Invalid token format, use 'Bearer <token>'", nil)
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if tokenString == "" {
			s.rejectAuth(c, "empty_token", "No token provided, authorization denied", nil)
			return
		}

		claims, err := s.jwtManager.ValidateToken(tokenString)
		if err != nil {
			s.rejectAuth(c, "invalid_token", "Token is not valid", map[string]interface{}{
				"error": err.Error(),
			})
			return
		}

		c.Set(contextClaims, claims)
		c.Set(contextUserID, claims.User.ID)
		c.Next()
	}
}

func (s *Server) rejectAuth(c *gin.Context, event, message string, details map[string]interface{}) {
	if details == nil {
		details = map[string]interface{}{}
	}
	details["path"] = c.Request.URL.Path
	details["request_id"] = c.GetString(requestIDHeader)

	s.logger.LogSecurity(event, "", c.ClientIP(), details)
	c.AbortWithStatusJSON(http.StatusUnauthorized, utils.NewErrorResponse(message))
}

// currentUserID returns the user id set by authMiddleware
func currentUserID(c *gin.Context) string {
	return c.GetString(contextUserID)
}
