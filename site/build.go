package site

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/labsite/labsite/fetch"
	"github.com/labsite/labsite/format"
	htmlformat "github.com/labsite/labsite/format/html"
	"github.com/labsite/labsite/publication"
)

// Output file names written by Build.
const (
	PeopleFile       = "people.html"
	PublicationsFile = "publications.html"
)

// BuildOptions controls a static build.
type BuildOptions struct {
	Render *format.RenderOptions
	View   publication.ViewOptions
}

// Build renders both pages from src into outDir.
func Build(ctx context.Context, src fetch.Source, outDir string, opts BuildOptions) error {
	return NewLoader(src).Build(ctx, outDir, opts)
}

// Build renders people.html and publications.html into outDir. A page whose
// data cannot be loaded is still written, showing the failure status, and the
// load errors are returned together.
func (l *Loader) Build(ctx context.Context, outDir string, opts BuildOptions) error {
	if opts.Render == nil {
		opts.Render = format.NewRenderOptions()
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	renderer := &htmlformat.Format{}
	var loadErrs []error

	dir, peopleErr := l.People(ctx)
	err := writeFile(filepath.Join(outDir, PeopleFile), func(w io.Writer) error {
		if peopleErr != nil {
			return htmlformat.RenderError(w, "People", RosterStatus(l.RosterPath, peopleErr), opts.Render)
		}
		return renderer.RenderPeople(w, dir, opts.Render)
	})
	if err != nil {
		return err
	}
	if peopleErr != nil {
		loadErrs = append(loadErrs, peopleErr)
	}

	page, err := l.Publications(ctx, opts.View)
	if err != nil {
		loadErrs = append(loadErrs, err)
	}
	if err := writeFile(filepath.Join(outDir, PublicationsFile), func(w io.Writer) error {
		return renderer.RenderPublications(w, page, opts.Render)
	}); err != nil {
		return err
	}

	slog.Info("site built", "dir", outDir, "status", page.Status)
	return errors.Join(loadErrs...)
}

func writeFile(path string, render func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	if err := render(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
