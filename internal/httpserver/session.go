package httpserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	sessionCookie = "gamestore_session"
	sessionKey    = "sessionID"
)

// SessionIssuer mints and checks the opaque tokens that key carts.
type SessionIssuer interface {
	Issue() (string, error)
	Valid(token string) bool
	TTL() time.Duration
}

// sessionMiddleware ensures every request carries a valid session cookie,
// minting one when the cookie is absent or malformed. secure marks the
// cookie HTTPS-only and comes from config.
func sessionMiddleware(sessions SessionIssuer, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(sessionCookie)
		if err != nil || !sessions.Valid(token) {
			token, err = sessions.Issue()
			if err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "could not start session"})
				return
			}
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(sessionCookie, token, int(sessions.TTL().Seconds()), "/", "", secure, true)
		}
		c.Set(sessionKey, token)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}
