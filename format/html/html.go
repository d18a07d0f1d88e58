// Package html provides a format plugin that renders full HTML pages.
package html

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labsite/labsite/format"
	"github.com/labsite/labsite/publication"
	"github.com/labsite/labsite/roster"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("html").Funcs(template.FuncMap{
	// Citations are built from escaped field values.
	"citation": func(s string) template.HTML { return template.HTML(s) },
}).ParseFS(templateFS, "templates/*.tmpl"))

// Format implements the HTML format.
type Format struct{}

// Ensure Format implements the interfaces
var (
	_ format.PeopleRenderer      = (*Format)(nil)
	_ format.PublicationRenderer = (*Format)(nil)
)

// Name returns the format identifier.
func (f *Format) Name() string {
	return "html"
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "Standalone HTML pages"
}

// Extensions returns file extensions associated with this format.
func (f *Format) Extensions() []string {
	return []string{"html", "htm"}
}

type pageData struct {
	Title            string
	PeopleHref       string
	PublicationsHref string
}

func newPageData(title string, opts *format.RenderOptions) pageData {
	if opts.Title != "" {
		title = opts.Title
	}
	return pageData{
		Title:            title,
		PeopleHref:       opts.PeopleHref,
		PublicationsHref: opts.PublicationsHref,
	}
}

type peopleData struct {
	pageData
	Sections []section
}

type section struct {
	ID     string
	Title  string
	People []card
}

type card struct {
	Name     string
	Position string
	Intro    string
	Photo    string
	IsPI     bool
	Links    []link
}

type link struct {
	Href     string
	Icon     string
	Alt      string
	External bool
}

// RenderPeople writes the people directory as an HTML page.
func (f *Format) RenderPeople(w io.Writer, dir *roster.Directory, opts *format.RenderOptions) error {
	if opts == nil {
		opts = format.NewRenderOptions()
	}

	data := peopleData{pageData: newPageData("People", opts)}
	for _, b := range roster.AllBuckets {
		s := section{ID: string(b), Title: b.Title(), People: []card{}}
		for _, p := range dir.Bucket(b) {
			s.People = append(s.People, newCard(p, opts))
		}
		data.Sections = append(data.Sections, s)
	}

	if err := templates.ExecuteTemplate(w, "people", data); err != nil {
		return fmt.Errorf("rendering people page: %w", err)
	}
	return nil
}

func newCard(p *roster.Person, opts *format.RenderOptions) card {
	return card{
		Name:     p.Name,
		Position: p.Position,
		Intro:    p.Intro,
		Photo:    opts.Asset(p.PhotoPath),
		IsPI:     p.IsPI(),
		Links:    personLinks(p, opts),
	}
}

// personLinks returns the icon links in display order: email, scholar,
// linkedin, website.
func personLinks(p *roster.Person, opts *format.RenderOptions) []link {
	var links []link
	if p.Email != "" {
		links = append(links, link{Href: "mailto:" + p.Email, Icon: opts.Icon("email"), Alt: "Email"})
	}
	if p.Scholar != "" {
		links = append(links, link{Href: p.Scholar, Icon: opts.Icon("scholar"), Alt: "Google Scholar", External: true})
	}
	if p.LinkedIn != "" {
		links = append(links, link{Href: p.LinkedIn, Icon: opts.Icon("linkedin"), Alt: "LinkedIn", External: true})
	}
	if p.Website != "" {
		links = append(links, link{Href: p.Website, Icon: opts.Icon("website"), Alt: "Website", External: true})
	}
	return links
}

type publicationsData struct {
	pageData
	Interactive bool
	SortOptions []sortOption
	Query       string
	Status      string
	Failed      bool
	Empty       bool
	Journals    group
	Conferences group
}

type sortOption struct {
	Value    string
	Label    string
	Selected bool
}

type group struct {
	ID    string
	Title string
	Items []publication.Item
}

var sortLabels = []struct {
	key   publication.SortKey
	label string
}{
	{publication.SortDefault, "Default order"},
	{publication.SortYearDesc, "Year (newest first)"},
	{publication.SortYearAsc, "Year (oldest first)"},
	{publication.SortTitleAsc, "Title (A-Z)"},
}

// RenderPublications writes the publications page as HTML.
func (f *Format) RenderPublications(w io.Writer, page *publication.Page, opts *format.RenderOptions) error {
	if opts == nil {
		opts = format.NewRenderOptions()
	}

	view := page.View
	data := publicationsData{
		pageData:    newPageData("Publications", opts),
		Interactive: opts.Interactive,
		Query:       view.Options.Query,
		Status:      page.Status,
		Failed:      page.Failed(),
		Empty:       view.Empty(),
		Journals:    group{ID: "journal-list", Title: "Journal Papers", Items: view.Journals},
		Conferences: group{ID: "conf-list", Title: "Conference Papers", Items: view.Conferences},
	}
	for _, s := range sortLabels {
		data.SortOptions = append(data.SortOptions, sortOption{
			Value:    string(s.key),
			Label:    s.label,
			Selected: s.key == view.Options.Sort,
		})
	}

	if err := templates.ExecuteTemplate(w, "publications", data); err != nil {
		return fmt.Errorf("rendering publications page: %w", err)
	}
	return nil
}

type errorData struct {
	pageData
	Message string
}

// RenderError writes a page that shows only a status message, used when a
// page's data could not be loaded.
func RenderError(w io.Writer, title, message string, opts *format.RenderOptions) error {
	if opts == nil {
		opts = format.NewRenderOptions()
	}
	data := errorData{pageData: newPageData(title, opts), Message: message}
	if err := templates.ExecuteTemplate(w, "error", data); err != nil {
		return fmt.Errorf("rendering error page: %w", err)
	}
	return nil
}

func init() {
	format.Register(&Format{})
}
