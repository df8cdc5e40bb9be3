package handler

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/wikid/internal/middleware"
	appErr "github.com/xxxsen/wikid/internal/pkg/errors"
	"github.com/xxxsen/wikid/internal/view"
)

const contentTypeHTML = "text/html; charset=utf-8"

func currentUser(c *gin.Context) string {
	return c.GetString(middleware.ContextUsernameKey)
}

func baseView(c *gin.Context, title string) view.Base {
	return view.Base{Title: title, Viewer: currentUser(c)}
}

// handleError maps service errors onto bare status responses.
func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		requestID, _ := c.Get(middleware.ContextRequestIDKey)
		logutil.GetLogger(c.Request.Context()).Error("request failed",
			zap.Any("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("username", currentUser(c)),
			zap.Error(err),
		)
	}
	c.AbortWithStatus(status)
}

func statusOf(err error) int {
	switch {
	case appErr.IsNotFound(err):
		return http.StatusNotFound
	case appErr.IsForbidden(err):
		return http.StatusForbidden
	case appErr.IsInvalid(err), appErr.IsConflict(err):
		return http.StatusNotAcceptable
	default:
		return http.StatusInternalServerError
	}
}

func renderView(c *gin.Context, views *view.Views, status int, name string, data interface{}) {
	var buf bytes.Buffer
	if err := views.Render(&buf, name, data); err != nil {
		handleError(c, err)
		return
	}
	c.Data(status, contentTypeHTML, buf.Bytes())
}
