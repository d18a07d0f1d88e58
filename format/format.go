// Package format defines the interface for output format plugins.
package format

import (
	"io"
	"path"
	"strings"

	"github.com/labsite/labsite/publication"
	"github.com/labsite/labsite/roster"
)

// Format defines the interface that all format plugins must implement.
type Format interface {
	// Name returns the format identifier (e.g., "html", "markdown", "json")
	Name() string

	// Description returns a human-readable format description
	Description() string

	// Extensions returns file extensions associated with this format
	Extensions() []string
}

// PeopleRenderer is a format that can render the people directory.
type PeopleRenderer interface {
	Format

	// RenderPeople writes the directory to w.
	RenderPeople(w io.Writer, dir *roster.Directory, opts *RenderOptions) error
}

// PublicationRenderer is a format that can render the publications page.
type PublicationRenderer interface {
	Format

	// RenderPublications writes the page to w.
	RenderPublications(w io.Writer, page *publication.Page, opts *RenderOptions) error
}

// RenderOptions contains options for rendering.
type RenderOptions struct {
	// AssetBase is prepended to photo and icon paths (e.g., "../Resources/" or "/resources/")
	AssetBase string

	// Title overrides the page title
	Title string

	// Pretty enables indentation (for JSON output)
	Pretty bool

	// Width is the line width for text output; 0 selects the default
	Width int

	// Interactive adds the sort and search form (for served pages)
	Interactive bool

	// PeopleHref and PublicationsHref are the navigation targets between pages
	PeopleHref       string
	PublicationsHref string
}

// NewRenderOptions creates RenderOptions with defaults.
func NewRenderOptions() *RenderOptions {
	return &RenderOptions{
		AssetBase:        "resources/",
		Pretty:           true,
		PeopleHref:       "people.html",
		PublicationsHref: "publications.html",
	}
}

// Asset resolves a resource-relative path against AssetBase.
func (o *RenderOptions) Asset(p string) string {
	if o == nil || o.AssetBase == "" {
		return p
	}
	base := o.AssetBase
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + strings.TrimPrefix(path.Clean(p), "/")
}

// Icon returns the asset path of a link icon, e.g. Icon("email") -> "resources/icons/email.svg".
func (o *RenderOptions) Icon(name string) string {
	return o.Asset(path.Join("icons", name+".svg"))
}
