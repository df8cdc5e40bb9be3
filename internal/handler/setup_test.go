package handler_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/xxxsen/common/webapi"

	"github.com/xxxsen/wikid/internal/config"
	"github.com/xxxsen/wikid/internal/filestore"
	"github.com/xxxsen/wikid/internal/handler"
	"github.com/xxxsen/wikid/internal/middleware"
	"github.com/xxxsen/wikid/internal/render"
	"github.com/xxxsen/wikid/internal/repo"
	"github.com/xxxsen/wikid/internal/service"
	"github.com/xxxsen/wikid/internal/session"
	"github.com/xxxsen/wikid/internal/styles"
	"github.com/xxxsen/wikid/internal/view"
)

func setupRouter(t *testing.T) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := filestore.New(config.FileStoreConfig{
		Type: "local",
		Data: map[string]interface{}{"dir": t.TempDir()},
	})
	require.NoError(t, err)

	views, err := view.New()
	require.NoError(t, err)
	sessions := session.NewCookieStore([]byte("test-secret"), time.Hour, session.CookieOptions{})

	authService := service.NewAuthService(repo.NewUserRepo(store))
	pageService := service.NewPageService(repo.NewPageRepo(store), render.New())
	styleService := styles.NewService(fstest.MapFS{
		"main.scss": {Data: []byte("body { margin: 0; }")},
	}, styles.Passthrough{})

	deps := handler.RouterDeps{
		Auth:     handler.NewAuthHandler(authService, sessions, views),
		Pages:    handler.NewPageHandler(pageService, views),
		Styles:   handler.NewStyleHandler(styleService),
		Sessions: sessions,
	}

	engine, err := webapi.NewEngine(
		"/",
		"",
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
		),
	)
	require.NoError(t, err)
	return engine
}

type client struct {
	t       *testing.T
	router  http.Handler
	cookies map[string]*http.Cookie
}

func newClient(t *testing.T, router http.Handler) *client {
	return &client{t: t, router: router, cookies: map[string]*http.Cookie{}}
}

func (c *client) do(req *http.Request) *httptest.ResponseRecorder {
	c.t.Helper()
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}
	resp := httptest.NewRecorder()
	c.router.ServeHTTP(resp, req)
	for _, cookie := range resp.Result().Cookies() {
		if cookie.MaxAge < 0 {
			delete(c.cookies, cookie.Name)
			continue
		}
		c.cookies[cookie.Name] = cookie
	}
	return resp
}

func (c *client) get(path string) *httptest.ResponseRecorder {
	return c.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (c *client) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func joinForm(username, password, email string) url.Values {
	return url.Values{"username": {username}, "password": {password}, "email": {email}}
}

func loginForm(username, password string) url.Values {
	return url.Values{"username": {username}, "password": {password}}
}
