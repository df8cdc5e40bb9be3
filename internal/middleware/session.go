package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/wikid/internal/session"
)

const (
	ContextSessionKey  = "session"
	ContextUsernameKey = "username"
)

// Session loads the caller's session once per request. Unreadable cookies
// degrade to an anonymous session.
func Session(store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := store.Load(c.Request)
		if err != nil {
			logutil.GetLogger(c.Request.Context()).Debug("drop unreadable session", zap.Error(err))
			sess = session.Session{}
		}
		c.Set(ContextSessionKey, sess)
		if sess.Authenticated() {
			c.Set(ContextUsernameKey, sess.Username)
		}
		c.Next()
	}
}

// RequireSession rejects anonymous callers with a bare 403.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetSession(c).Authenticated() {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}

func GetSession(c *gin.Context) session.Session {
	v, ok := c.Get(ContextSessionKey)
	if !ok {
		return session.Session{}
	}
	sess, _ := v.(session.Session)
	return sess
}
