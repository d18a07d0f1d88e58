// Package bibtex provides a format plugin that re-serializes the publication
// catalog as normalized BibTeX.
package bibtex

import (
	"io"

	"github.com/labsite/labsite/format"
	"github.com/labsite/labsite/publication"
)

// Format implements the BibTeX format.
type Format struct{}

// Ensure Format implements the interfaces
var _ format.PublicationRenderer = (*Format)(nil)

// Name returns the format identifier.
func (f *Format) Name() string {
	return "bibtex"
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "BibTeX bibliography format (publications only)"
}

// Extensions returns file extensions associated with this format.
func (f *Format) Extensions() []string {
	return []string{"bib", "bibtex"}
}

// RenderPublications writes every entry that passes the page filter, in the
// page sort order. Entries outside the journal and conference groups are
// included.
func (f *Format) RenderPublications(w io.Writer, page *publication.Page, opts *format.RenderOptions) error {
	entries := page.Entries
	if page.View != nil {
		entries = publication.Sort(publication.Filter(entries, page.View.Options.Query), page.View.Options.Sort)
	}
	return Serialize(w, entries)
}

func init() {
	format.Register(&Format{})
}
