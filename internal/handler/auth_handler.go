package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErr "github.com/xxxsen/wikid/internal/pkg/errors"
	"github.com/xxxsen/wikid/internal/service"
	"github.com/xxxsen/wikid/internal/session"
	"github.com/xxxsen/wikid/internal/view"
)

type AuthHandler struct {
	auth     *service.AuthService
	sessions session.Store
	views    *view.Views
}

func NewAuthHandler(auth *service.AuthService, sessions session.Store, views *view.Views) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions, views: views}
}

func (h *AuthHandler) LoginForm(c *gin.Context) {
	h.renderLogin(c, http.StatusOK, "")
}

func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	err := h.auth.Login(c.Request.Context(), username, c.PostForm("password"))
	switch {
	case err == nil:
	case appErr.IsInvalid(err), appErr.IsNotFound(err):
		h.renderLogin(c, http.StatusNotAcceptable, username)
		return
	case appErr.IsForbidden(err):
		h.renderLogin(c, http.StatusForbidden, username)
		return
	default:
		handleError(c, err)
		return
	}
	h.signIn(c, username)
}

func (h *AuthHandler) JoinForm(c *gin.Context) {
	renderView(c, h.views, http.StatusOK, view.Join, view.JoinData{Base: baseView(c, "Join")})
}

// Join answers every rejection with a bare 406, taken usernames included.
func (h *AuthHandler) Join(c *gin.Context) {
	username := c.PostForm("username")
	err := h.auth.Join(c.Request.Context(), username, c.PostForm("password"), c.PostForm("email"))
	if err != nil {
		if appErr.IsInvalid(err) || appErr.IsConflict(err) {
			c.AbortWithStatus(http.StatusNotAcceptable)
			return
		}
		handleError(c, err)
		return
	}
	h.signIn(c, username)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.sessions.Clear(c.Writer, c.Request); err != nil {
		handleError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandler) signIn(c *gin.Context, username string) {
	if err := h.sessions.Save(c.Writer, c.Request, session.Session{Username: username}); err != nil {
		handleError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandler) renderLogin(c *gin.Context, status int, username string) {
	renderView(c, h.views, status, view.Login, view.LoginData{
		Base:     baseView(c, "Log in"),
		Username: username,
	})
}
