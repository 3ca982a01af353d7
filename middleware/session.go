package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/openblog/web-service/internal/core/domain"
)

// sessionContextKey is the gin context key the loaded session is stored under.
const sessionContextKey = "session"

// SessionAuth returns a middleware that reads the session cookie, loads the
// session row and injects it into the gin context. Requests without a live
// authenticated session get 401 and never reach the handler.
//
// Session issuance (login) is owned by the auth service; this middleware only
// gates on session presence.
func SessionAuth(sessions domain.SessionRepository, cookieName string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(cookieName)
		if err != nil || sessionID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		session, err := sessions.FindByID(c.Request.Context(), sessionID)
		if err != nil {
			if logger != nil {
				logger.Error("Failed to load session", zap.Error(err))
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		if session == nil || !session.User.Authenticated {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		c.Set(sessionContextKey, session)
		c.Set("user_id", session.User.UserID)
		c.Next()
	}
}

// SessionFromContext returns the session injected by SessionAuth.
func SessionFromContext(c *gin.Context) (*domain.Session, bool) {
	val, exists := c.Get(sessionContextKey)
	if !exists {
		return nil, false
	}
	session, ok := val.(*domain.Session)
	return session, ok
}
