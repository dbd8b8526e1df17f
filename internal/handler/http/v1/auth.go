package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/shenikar/ojt_tracker/internal/config"
)

const studentIDKey = "studentID"

// BearerAuthMiddleware - middleware для аутентификации по Bearer токену.
// Токен сопоставляется со стажером по таблице из конфигурации.
func BearerAuthMiddleware(cfg *config.Config, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		}

		if token == "" {
			log.Warn("Bearer token missing from request")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}

		studentID, ok := cfg.APITokens[token]
		if !ok {
			log.WithField("path", c.FullPath()).Warn("Invalid bearer token provided")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(studentIDKey, studentID)
		c.Next()
	}
}

// currentStudent возвращает стажера, установленного middleware
func currentStudent(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(studentIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
