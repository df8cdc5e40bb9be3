package styles

import (
	"context"
	"fmt"

	"github.com/bep/godartsass/v2"
)

// DartSass compiles SCSS through an embedded Dart Sass process.
type DartSass struct {
	transpiler  *godartsass.Transpiler
	includeDirs []string
}

// NewDartSass starts the Dart Sass binary. An empty binary path makes the
// library look up "sass" on PATH.
func NewDartSass(binary string, includeDirs ...string) (*DartSass, error) {
	transpiler, err := godartsass.Start(godartsass.Options{
		DartSassEmbeddedFilename: binary,
	})
	if err != nil {
		return nil, fmt.Errorf("start dart sass: %w", err)
	}
	return &DartSass{transpiler: transpiler, includeDirs: includeDirs}, nil
}

func (d *DartSass) Compile(ctx context.Context, source string) (string, error) {
	_ = ctx
	res, err := d.transpiler.Execute(godartsass.Args{
		Source:       source,
		OutputStyle:  godartsass.OutputStyleExpanded,
		SourceSyntax: godartsass.SourceSyntaxSCSS,
		IncludePaths: d.includeDirs,
	})
	if err != nil {
		return "", err
	}
	return res.CSS, nil
}

func (d *DartSass) Close() error {
	return d.transpiler.Close()
}
