package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	Login = "login.html"
	Join  = "join.html"
	Edit  = "edit.html"
	List  = "list.html"
	Page  = "page.html"
)

// Base is embedded by every view model; Viewer is the logged in user, if
// any.
type Base struct {
	Title  string
	Viewer string
}

type LoginData struct {
	Base
	Username string
}

type JoinData struct {
	Base
	Username string
	Email    string
}

type EditData struct {
	Base
	Path    string
	Content string
}

type ListData struct {
	Base
	Author  string
	Path    string
	Entries []string
}

// PageData.Content must already be sanitized.
type PageData struct {
	Base
	Author  string
	Path    string
	Content template.HTML
}

type Views struct {
	tmpl *template.Template
}

func New() (*Views, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Views{tmpl: tmpl}, nil
}

// Render executes a view fully before writing so a template error never
// leaves a half written response.
func (v *Views) Render(w io.Writer, name string, data interface{}) error {
	var buf bytes.Buffer
	if err := v.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
