// Package site loads the lab roster and publication catalog from a resource
// source and assembles them into renderable pages.
package site

import (
	"context"
	"fmt"
	"log/slog"
	"path"

	"golang.org/x/sync/errgroup"

	"github.com/labsite/labsite/fetch"
	"github.com/labsite/labsite/publication"
	"github.com/labsite/labsite/roster"
)

// Loader fetches site resources from a Source.
type Loader struct {
	Source      fetch.Source
	RosterPath  string
	CatalogPath string
}

// NewLoader returns a Loader using the standard resource layout.
func NewLoader(src fetch.Source) *Loader {
	return &Loader{
		Source:      src,
		RosterPath:  roster.RosterPath,
		CatalogPath: publication.CatalogPath,
	}
}

// LoadPeople loads the people directory from src with the standard layout.
func LoadPeople(ctx context.Context, src fetch.Source) (*roster.Directory, error) {
	return NewLoader(src).People(ctx)
}

// LoadPublications loads the publication page from src with the standard layout.
func LoadPublications(ctx context.Context, src fetch.Source, opts publication.ViewOptions) (*publication.Page, error) {
	return NewLoader(src).Publications(ctx, opts)
}

// People fetches and parses the roster, then loads every biography
// concurrently. A failed biography leaves that person with empty fields; only
// a roster failure is returned.
func (l *Loader) People(ctx context.Context) (*roster.Directory, error) {
	data, err := l.Source.Fetch(ctx, l.RosterPath)
	if err != nil {
		return nil, fmt.Errorf("loading roster: %w", err)
	}

	dir := roster.ParseRoster(string(data))

	var g errgroup.Group
	for _, p := range dir.All() {
		g.Go(func() error {
			l.loadBiography(ctx, p)
			return nil
		})
	}
	_ = g.Wait()

	slog.Debug("loaded roster", "path", l.RosterPath, "people", dir.Len())
	return dir, nil
}

func (l *Loader) loadBiography(ctx context.Context, p *roster.Person) {
	var bio roster.Biography
	data, err := l.Source.Fetch(ctx, p.IntroPath)
	if err != nil {
		slog.Debug("biography unavailable", "name", p.Name, "path", p.IntroPath, "err", err)
	} else {
		bio = roster.ParseBiography(string(data))
	}
	bio.Apply(p)
}

// Publications fetches and parses the catalog and builds the view for opts.
// On failure the returned page carries the failure status and no entries,
// alongside the error.
func (l *Loader) Publications(ctx context.Context, opts publication.ViewOptions) (*publication.Page, error) {
	source := path.Base(l.CatalogPath)

	data, err := l.Source.Fetch(ctx, l.CatalogPath)
	if err != nil {
		page := publication.NewPage(source, PublicationStatus(source, 0, err), nil, opts)
		page.Err = err
		return page, fmt.Errorf("loading publications: %w", err)
	}

	entries := publication.Parse(string(data))
	slog.Debug("loaded publications", "path", l.CatalogPath, "entries", len(entries))
	return publication.NewPage(source, PublicationStatus(source, len(entries), nil), entries, opts), nil
}

// PublicationStatus is the status line shown above the publication list.
func PublicationStatus(source string, n int, err error) string {
	switch {
	case err != nil:
		return fmt.Sprintf("Failed to load %s: %v", source, err)
	case n == 0:
		return fmt.Sprintf("%s was parsed but contains no entries.", source)
	default:
		return fmt.Sprintf("Loaded %d entries from %s.", n, source)
	}
}

// RosterStatus is the message shown in place of the people directory when
// the roster cannot be loaded.
func RosterStatus(rosterPath string, err error) string {
	return fmt.Sprintf("Failed to load %s: %v", path.Base(rosterPath), err)
}
