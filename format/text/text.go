// Package text provides a format plugin that renders plain-text listings
// for terminals.
package text

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/labsite/labsite/format"
	"github.com/labsite/labsite/helpers"
	"github.com/labsite/labsite/publication"
	"github.com/labsite/labsite/roster"
)

// DefaultWidth is the wrap width when RenderOptions.Width is unset.
const DefaultWidth = 80

// Format implements the plain-text format.
type Format struct{}

// Ensure Format implements the interfaces
var (
	_ format.PeopleRenderer      = (*Format)(nil)
	_ format.PublicationRenderer = (*Format)(nil)
)

// Name returns the format identifier.
func (f *Format) Name() string {
	return "text"
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "Plain text for terminals"
}

// Extensions returns file extensions associated with this format.
func (f *Format) Extensions() []string {
	return []string{"txt"}
}

// RenderPeople writes one block per bucket with names in an aligned column.
// Details and the wrapped intro follow the name with a hanging indent.
func (f *Format) RenderPeople(w io.Writer, dir *roster.Directory, opts *format.RenderOptions) error {
	width := DefaultWidth
	if opts != nil && opts.Width > 0 {
		width = opts.Width
	}

	bw := bufio.NewWriter(w)

	first := true
	for _, b := range roster.AllBuckets {
		people := dir.Bucket(b)
		if len(people) == 0 {
			continue
		}
		if !first {
			bw.WriteString("\n")
		}
		first = false
		underline(bw, b.Title(), '=')

		nameWidth := 0
		for _, p := range people {
			nameWidth = max(nameWidth, runewidth.StringWidth(p.Name))
		}
		indent := strings.Repeat(" ", nameWidth+2)

		for _, p := range people {
			details := personDetails(p, width-len(indent))
			if len(details) == 0 {
				bw.WriteString(p.Name + "\n")
				continue
			}
			for i, d := range details {
				if i == 0 {
					bw.WriteString(runewidth.FillRight(p.Name, nameWidth) + "  " + d + "\n")
				} else {
					bw.WriteString(indent + d + "\n")
				}
			}
		}
	}

	return bw.Flush()
}

func personDetails(p *roster.Person, width int) []string {
	var details []string
	for _, v := range []string{p.Position, p.Email, p.Scholar, p.LinkedIn, p.Website} {
		if v != "" {
			details = append(details, v)
		}
	}
	for _, para := range strings.Split(p.Intro, "\n") {
		if strings.TrimSpace(para) != "" {
			details = append(details, Wrap(para, width)...)
		}
	}
	return details
}

// RenderPublications writes the numbered citation groups wrapped to the
// configured width with a hanging indent.
func (f *Format) RenderPublications(w io.Writer, page *publication.Page, opts *format.RenderOptions) error {
	width := DefaultWidth
	if opts != nil && opts.Width > 0 {
		width = opts.Width
	}

	bw := bufio.NewWriter(w)
	bw.WriteString(page.Status + "\n")

	if !page.Failed() {
		if page.View.Empty() {
			bw.WriteString("\nNo publications match the current filter.\n")
		}
		writeGroup(bw, "Journal Papers", page.View.Journals, width)
		writeGroup(bw, "Conference Papers", page.View.Conferences, width)
	}

	return bw.Flush()
}

func writeGroup(bw *bufio.Writer, name string, items []publication.Item, width int) {
	if len(items) == 0 {
		return
	}
	bw.WriteString("\n")
	underline(bw, name, '-')

	labelWidth := len(fmt.Sprintf("[%d] ", len(items)))
	for _, it := range items {
		label := fmt.Sprintf("[%d]", it.Number)
		lines := Wrap(helpers.StripHTML(it.Citation), width-labelWidth)
		for i, line := range lines {
			if i == 0 {
				bw.WriteString(runewidth.FillRight(label, labelWidth) + line + "\n")
			} else {
				bw.WriteString(strings.Repeat(" ", labelWidth) + line + "\n")
			}
		}
	}
}

func underline(bw *bufio.Writer, title string, ch rune) {
	bw.WriteString(title + "\n")
	bw.WriteString(strings.Repeat(string(ch), runewidth.StringWidth(title)) + "\n")
}

// Wrap breaks s into lines no wider than width display cells, splitting at
// spaces. Words wider than width get a line of their own.
func Wrap(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	if width < 1 {
		width = 1
	}

	var lines []string
	line := words[0]
	lineWidth := runewidth.StringWidth(line)
	for _, word := range words[1:] {
		ww := runewidth.StringWidth(word)
		if lineWidth+1+ww > width {
			lines = append(lines, line)
			line, lineWidth = word, ww
			continue
		}
		line += " " + word
		lineWidth += 1 + ww
	}
	return append(lines, line)
}

func init() {
	format.Register(&Format{})
}
