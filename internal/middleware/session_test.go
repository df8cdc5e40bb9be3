package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/xxxsen/wikid/internal/session"
)

func TestSessionMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := session.NewCookieStore([]byte("secret"), time.Hour, session.CookieOptions{})

	engine := gin.New()
	engine.Use(Session(store))
	engine.GET("/me", func(c *gin.Context) {
		c.String(http.StatusOK, GetSession(c).Username+"|"+c.GetString(ContextUsernameKey))
	})
	engine.GET("/private", RequireSession(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/private", nil))
	require.Equal(t, http.StatusForbidden, rec.Code)

	saved := httptest.NewRecorder()
	require.NoError(t, store.Save(saved, httptest.NewRequest(http.MethodPost, "/", nil), session.Session{Username: "alice"}))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	for _, c := range saved.Result().Cookies() {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	require.Equal(t, "alice|alice", rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	for _, c := range saved.Result().Cookies() {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "wikid_session", Value: "garbage"})
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "|", rec.Body.String())
}
