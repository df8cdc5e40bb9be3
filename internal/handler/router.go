package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/wikid/internal/middleware"
	"github.com/xxxsen/wikid/internal/session"
)

type RouterDeps struct {
	Auth      *AuthHandler
	Pages     *PageHandler
	Styles    *StyleHandler
	Sessions  session.Store
	RateLimit time.Duration
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.Use(middleware.Session(deps.Sessions))
	limited := middleware.RateLimit(deps.RateLimit)

	api.GET("/", Home)
	api.GET("/login", deps.Auth.LoginForm)
	api.POST("/login", limited, deps.Auth.Login)
	api.GET("/join", deps.Auth.JoinForm)
	api.POST("/join", limited, deps.Auth.Join)
	api.POST("/logout", deps.Auth.Logout)

	authGroup := api.Group("")
	authGroup.Use(middleware.RequireSession())
	authGroup.GET("/edit/*path", deps.Pages.EditForm)
	authGroup.POST("/edit/*path", deps.Pages.Save)

	api.GET("/~:username/*path", deps.Pages.View)
	api.GET("/styles/*file", deps.Styles.Get)
}

func Home(c *gin.Context) {
	c.Status(http.StatusOK)
}
