package handler

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/wikid/internal/model"
	"github.com/xxxsen/wikid/internal/repo"
	"github.com/xxxsen/wikid/internal/service"
	"github.com/xxxsen/wikid/internal/view"
)

type PageHandler struct {
	pages *service.PageService
	views *view.Views
}

func NewPageHandler(pages *service.PageService, views *view.Views) *PageHandler {
	return &PageHandler{pages: pages, views: views}
}

func (h *PageHandler) EditForm(c *gin.Context) {
	rel, err := repo.CleanPath(c.Param("path"))
	if err != nil {
		handleError(c, err)
		return
	}
	content, err := h.pages.Load(c.Request.Context(), currentUser(c), rel)
	if err != nil {
		handleError(c, err)
		return
	}
	renderView(c, h.views, http.StatusOK, view.Edit, view.EditData{
		Base:    baseView(c, "Editing "+rel),
		Path:    rel,
		Content: content,
	})
}

func (h *PageHandler) Save(c *gin.Context) {
	username := currentUser(c)
	saved, err := h.pages.Save(c.Request.Context(), username, c.Param("path"), c.PostForm("content"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/~"+username+"/"+saved)
}

func (h *PageHandler) View(c *gin.Context) {
	v, err := h.pages.View(c.Request.Context(), c.Param("username"), c.Param("path"))
	if errors.Is(err, service.ErrDirectorySlash) {
		c.Redirect(http.StatusFound, c.Request.URL.EscapedPath()+"/")
		return
	}
	if err != nil {
		handleError(c, err)
		return
	}
	switch v := v.(type) {
	case *model.DirectoryListing:
		renderView(c, h.views, http.StatusOK, view.List, view.ListData{
			Base:    baseView(c, "~"+v.Author+"/"+v.Path),
			Author:  v.Author,
			Path:    v.Path,
			Entries: v.Entries,
		})
	case *model.RenderedPage:
		if v.Plain {
			c.Data(http.StatusOK, v.ContentType, []byte(v.Body))
			return
		}
		renderView(c, h.views, http.StatusOK, view.Page, view.PageData{
			Base:    baseView(c, v.Title),
			Author:  v.Author,
			Path:    v.Path,
			Content: template.HTML(v.Body),
		})
	}
}
