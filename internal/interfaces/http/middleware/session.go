// internal/interfaces/http/middleware/session.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/pkg/session"
)

const sessionIDKey = "session_id"

// Session binds every request to a browsing session. A missing, expired or
// tampered cookie starts a new session and reissues the cookie.
func Session(cfg *config.Config, log *logrus.Logger) gin.HandlerFunc {
	manager := session.NewManager(cfg)

	return func(c *gin.Context) {
		if cookie, err := c.Cookie(cfg.Session.CookieName); err == nil && cookie != "" {
			if id, err := manager.Parse(cookie); err == nil {
				c.Set(sessionIDKey, id)
				c.Next()
				return
			}
			log.WithField("client_ip", c.ClientIP()).Debug("Discarding invalid session cookie")
		}

		id := session.NewID()
		token, err := manager.Issue(id)
		if err != nil {
			log.WithError(err).Error("Failed to issue session token")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to start session",
			})
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cfg.Session.CookieName, token, int(cfg.Session.TTL.Seconds()), "/", "", cfg.Session.Secure, true)
		c.Set(sessionIDKey, id)

		c.Next()
	}
}

// GetSessionID extracts the session id from gin context
func GetSessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}
