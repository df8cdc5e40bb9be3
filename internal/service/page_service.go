package service

import (
	"context"
	"errors"
	"path"
	"regexp"
	"strings"

	"github.com/xxxsen/wikid/internal/filestore"
	"github.com/xxxsen/wikid/internal/model"
	appErr "github.com/xxxsen/wikid/internal/pkg/errors"
	"github.com/xxxsen/wikid/internal/pkg/validate"
	"github.com/xxxsen/wikid/internal/render"
	"github.com/xxxsen/wikid/internal/repo"
)

var indexPattern = regexp.MustCompile(`^index\.(htm|html|md|markdown)$`)

// ErrDirectorySlash is returned by View for a directory requested without
// a trailing slash; relative links inside it only resolve under the slash.
var ErrDirectorySlash = errors.New("directory path needs a trailing slash")

type PageService struct {
	pages    *repo.PageRepo
	renderer *render.Renderer
}

func NewPageService(pages *repo.PageRepo, renderer *render.Renderer) *PageService {
	return &PageService{pages: pages, renderer: renderer}
}

// Load returns the current content of a page for editing, or an empty
// string when nothing is stored there yet.
func (s *PageService) Load(ctx context.Context, username, rel string) (string, error) {
	kind, err := s.pages.Stat(ctx, username, rel)
	if err != nil {
		return "", err
	}
	if kind != filestore.KindFile {
		return "", nil
	}
	data, err := s.pages.Read(ctx, username, rel)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Save overwrites the page and returns the cleaned path it was stored at.
func (s *PageService) Save(ctx context.Context, username, rel, content string) (string, error) {
	cleaned, err := repo.CleanPath(rel)
	if err != nil {
		return "", err
	}
	if err := s.pages.Write(ctx, username, cleaned, []byte(content)); err != nil {
		return "", err
	}
	return cleaned, nil
}

// View resolves a public path under author's tree. Unknown users, unsafe
// paths and missing entries all report ErrNotFound. rel is the raw URL
// tail; a directory is only resolved when rel ends in a slash.
func (s *PageService) View(ctx context.Context, author, rel string) (model.View, error) {
	if !validate.Username(author) {
		return nil, appErr.ErrNotFound
	}
	cleaned, err := repo.CleanPath(rel)
	if err != nil {
		return nil, appErr.ErrNotFound
	}
	kind, err := s.pages.Stat(ctx, author, cleaned)
	if err != nil {
		return nil, err
	}
	var entries []string
	if kind == filestore.KindDir {
		if !strings.HasSuffix(rel, "/") {
			return nil, ErrDirectorySlash
		}
		entries, err = s.pages.List(ctx, author, cleaned)
		if err != nil && !appErr.IsNotFound(err) {
			return nil, err
		}
	}
	d := decideView(kind, entries)
	switch {
	case d.missing:
		return nil, appErr.ErrNotFound
	case d.listing:
		return &model.DirectoryListing{Author: author, Path: cleaned, Entries: entries}, nil
	}
	target := cleaned
	if d.index != "" {
		target = path.Join(cleaned, d.index)
	}
	return s.renderPage(ctx, author, target)
}

func (s *PageService) renderPage(ctx context.Context, author, target string) (*model.RenderedPage, error) {
	data, err := s.pages.Read(ctx, author, target)
	if err != nil {
		return nil, err
	}
	doc, err := s.renderer.Render(target, data)
	if err != nil {
		return nil, err
	}
	return &model.RenderedPage{
		Author:      author,
		Path:        target,
		Title:       render.Title(doc.Body),
		Body:        doc.Body,
		ContentType: doc.ContentType,
		Plain:       doc.Plain(),
	}, nil
}

type viewDecision struct {
	missing bool
	listing bool
	index   string
}

// decideView picks how a resolved entry is shown: a file renders itself,
// a directory renders its first index file if it has one and lists its
// entries otherwise. entries must be sorted.
func decideView(kind filestore.Kind, entries []string) viewDecision {
	switch kind {
	case filestore.KindFile:
		return viewDecision{}
	case filestore.KindDir:
		for _, name := range entries {
			if indexPattern.MatchString(name) {
				return viewDecision{index: name}
			}
		}
		return viewDecision{listing: true}
	default:
		return viewDecision{missing: true}
	}
}
