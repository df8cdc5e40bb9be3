package styles

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	appErr "github.com/xxxsen/wikid/internal/pkg/errors"
)

// Compiler turns stylesheet source into CSS.
type Compiler interface {
	Compile(ctx context.Context, source string) (string, error)
}

type Service struct {
	fsys     fs.FS
	compiler Compiler
}

func NewService(fsys fs.FS, compiler Compiler) *Service {
	return &Service{fsys: fsys, compiler: compiler}
}

// Stylesheet compiles <name>.scss, where name is given without extension.
func (s *Service) Stylesheet(ctx context.Context, name string) (string, error) {
	file := name + ".scss"
	if name == "" || !fs.ValidPath(file) {
		return "", appErr.ErrNotFound
	}
	source, err := fs.ReadFile(s.fsys, file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", appErr.ErrNotFound
		}
		return "", fmt.Errorf("read stylesheet %s: %w", file, err)
	}
	css, err := s.compiler.Compile(ctx, string(source))
	if err != nil {
		return "", fmt.Errorf("compile stylesheet %s: %w", file, err)
	}
	return css, nil
}

// StylesheetName maps a request tail like "/site.css" to "site".
func StylesheetName(tail string) (string, bool) {
	tail = strings.TrimPrefix(tail, "/")
	if !strings.HasSuffix(tail, ".css") {
		return "", false
	}
	name := strings.TrimSuffix(tail, ".css")
	if name == "" {
		return "", false
	}
	return name, true
}

// Passthrough serves sources unchanged. It is used when no Sass compiler
// is available; plain CSS is valid SCSS, so simple stylesheets still work.
type Passthrough struct{}

func (Passthrough) Compile(ctx context.Context, source string) (string, error) {
	_ = ctx
	return source, nil
}
