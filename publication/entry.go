// Package publication parses the lab's BibTeX publication list and turns it
// into IEEE-style, filterable and sortable views.
package publication

import (
	"sort"
	"strconv"
)

// CatalogPath is the publication list location relative to the resource root.
const CatalogPath = "pub/ExPub.txt"

// Entry is one bibliographic record.
type Entry struct {
	// Type is the lowercased entry tag, e.g. "article".
	Type string
	// Key is the citation key.
	Key string
	// Fields maps lowercased field names to trimmed values.
	Fields map[string]string

	// Year is the parsed "year" field, valid when HasYear is set.
	Year    int
	HasYear bool

	// RawAuthors is the unparsed author field.
	RawAuthors string
}

// Field returns the value of a field, or "" when absent.
func (e *Entry) Field(name string) string {
	return e.Fields[name]
}

// Title returns the title field.
func (e *Entry) Title() string {
	return e.Fields["title"]
}

// YearString returns the year for display, or "n.d." when none was parseable.
func (e *Entry) YearString() string {
	if e.HasYear {
		return strconv.Itoa(e.Year)
	}
	return "n.d."
}

// sortYear is the year used for ordering; missing years sort as 0.
func (e *Entry) sortYear() int {
	if e.HasYear {
		return e.Year
	}
	return 0
}

// IsJournal reports whether the entry is a journal publication.
func (e *Entry) IsJournal() bool {
	return e.Type == "article" || e.Fields["journal"] != ""
}

// IsConference reports whether the entry is a conference publication.
// An entry can be both a journal and a conference entry, or neither.
func (e *Entry) IsConference() bool {
	return e.Type == "inproceedings" || e.Fields["booktitle"] != ""
}

// FieldNames returns the entry's field names in sorted order.
func (e *Entry) FieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
