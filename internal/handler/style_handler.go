package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/wikid/internal/styles"
)

type StyleHandler struct {
	styles *styles.Service
}

func NewStyleHandler(svc *styles.Service) *StyleHandler {
	return &StyleHandler{styles: svc}
}

func (h *StyleHandler) Get(c *gin.Context) {
	name, ok := styles.StylesheetName(c.Param("file"))
	if !ok {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	css, err := h.styles.Stylesheet(c.Request.Context(), name)
	if err != nil {
		handleError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/css; charset=utf-8", []byte(css))
}
