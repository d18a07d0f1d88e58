// Package markdown provides a format plugin that renders Markdown documents.
//
// Pages are first built as HTML fragments, the same way the citation
// formatter produces them, and then converted with html-to-markdown.
package markdown

import (
	"fmt"
	"io"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/labsite/labsite/format"
	"github.com/labsite/labsite/helpers"
	"github.com/labsite/labsite/publication"
	"github.com/labsite/labsite/roster"
)

// Format implements the Markdown format.
type Format struct{}

// Ensure Format implements the interfaces
var (
	_ format.PeopleRenderer      = (*Format)(nil)
	_ format.PublicationRenderer = (*Format)(nil)
)

// Name returns the format identifier.
func (f *Format) Name() string {
	return "markdown"
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "Markdown documents"
}

// Extensions returns file extensions associated with this format.
func (f *Format) Extensions() []string {
	return []string{"md", "markdown"}
}

// RenderPeople writes the people directory as Markdown.
func (f *Format) RenderPeople(w io.Writer, dir *roster.Directory, opts *format.RenderOptions) error {
	if opts == nil {
		opts = format.NewRenderOptions()
	}

	var sb strings.Builder
	heading(&sb, 1, title("People", opts))
	for _, b := range roster.AllBuckets {
		people := dir.Bucket(b)
		if len(people) == 0 {
			continue
		}
		heading(&sb, 2, b.Title())
		for _, p := range people {
			writePerson(&sb, p, opts)
		}
	}

	return convert(w, sb.String())
}

func writePerson(sb *strings.Builder, p *roster.Person, opts *format.RenderOptions) {
	heading(sb, 3, p.Name)
	fmt.Fprintf(sb, "<p><img src=\"%s\" alt=\"%s\"></p>\n",
		helpers.EncodeHTMLEntities(opts.Asset(p.PhotoPath)), helpers.EncodeHTMLEntities(p.Name))
	if p.Position != "" {
		fmt.Fprintf(sb, "<p><strong>%s</strong></p>\n", helpers.EncodeHTMLEntities(p.Position))
	}

	var links []string
	if p.Email != "" {
		links = append(links, anchor("mailto:"+p.Email, p.Email))
	}
	if p.Scholar != "" {
		links = append(links, anchor(p.Scholar, "Google Scholar"))
	}
	if p.LinkedIn != "" {
		links = append(links, anchor(p.LinkedIn, "LinkedIn"))
	}
	if p.Website != "" {
		links = append(links, anchor(p.Website, "Website"))
	}
	if len(links) > 0 {
		fmt.Fprintf(sb, "<p>%s</p>\n", strings.Join(links, " · "))
	}

	if p.Intro != "" {
		intro := helpers.EncodeHTMLEntities(p.Intro)
		fmt.Fprintf(sb, "<p>%s</p>\n", strings.ReplaceAll(intro, "\n", "<br>"))
	}
}

// RenderPublications writes the publications page as Markdown.
func (f *Format) RenderPublications(w io.Writer, page *publication.Page, opts *format.RenderOptions) error {
	if opts == nil {
		opts = format.NewRenderOptions()
	}

	var sb strings.Builder
	heading(&sb, 1, title("Publications", opts))
	fmt.Fprintf(&sb, "<p><em>%s</em></p>\n", helpers.EncodeHTMLEntities(page.Status))

	if !page.Failed() {
		if page.View.Empty() {
			sb.WriteString("<p>No publications match the current filter.</p>\n")
		}
		writeGroup(&sb, "Journal Papers", page.View.Journals)
		writeGroup(&sb, "Conference Papers", page.View.Conferences)
	}

	return convert(w, sb.String())
}

func writeGroup(sb *strings.Builder, name string, items []publication.Item) {
	if len(items) == 0 {
		return
	}
	heading(sb, 2, name)
	for _, it := range items {
		fmt.Fprintf(sb, "<p>[%d] %s</p>\n", it.Number, it.Citation)
	}
}

func heading(sb *strings.Builder, level int, text string) {
	fmt.Fprintf(sb, "<h%d>%s</h%d>\n", level, helpers.EncodeHTMLEntities(text), level)
}

func anchor(href, text string) string {
	return `<a href="` + helpers.EncodeHTMLEntities(href) + `">` + helpers.EncodeHTMLEntities(text) + `</a>`
}

func title(def string, opts *format.RenderOptions) string {
	if opts.Title != "" {
		return opts.Title
	}
	return def
}

func convert(w io.Writer, fragment string) error {
	md, err := htmltomarkdown.ConvertString(fragment)
	if err != nil {
		return fmt.Errorf("converting to markdown: %w", err)
	}
	if _, err := io.WriteString(w, strings.TrimSpace(md)+"\n"); err != nil {
		return err
	}
	return nil
}

func init() {
	format.Register(&Format{})
}
