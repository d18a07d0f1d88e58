package publication

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the ordering of a view.
type SortKey string

// Sort keys. SortDefault keeps the order of the source file.
const (
	SortDefault  SortKey = ""
	SortYearDesc SortKey = "year-desc"
	SortYearAsc  SortKey = "year-asc"
	SortTitleAsc SortKey = "title-asc"
)

// SortKeys lists the accepted non-default sort keys.
var SortKeys = []SortKey{SortYearDesc, SortYearAsc, SortTitleAsc}

// ParseSortKey validates a user-supplied sort key. "" and "default" select
// the source order.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortDefault, "default":
		return SortDefault, nil
	case SortYearDesc, SortYearAsc, SortTitleAsc:
		return k, nil
	default:
		return "", fmt.Errorf("unknown sort key %q (want one of year-desc, year-asc, title-asc)", s)
	}
}

// searchFields are matched by the free-text filter.
var searchFields = []string{"title", "author", "journal", "booktitle", "publisher", "organization"}

// haystack is the lowercased text a filter query is matched against.
func (e *Entry) haystack() string {
	parts := make([]string, 0, len(searchFields))
	for _, name := range searchFields {
		v := e.Fields[name]
		if name == "author" {
			v = e.RawAuthors
		}
		if v != "" {
			parts = append(parts, v)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// Filter keeps the entries whose title, authors or venue contain query,
// case-insensitively. An empty query keeps everything.
func Filter(entries []*Entry, query string) []*Entry {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return slices.Clone(entries)
	}

	var out []*Entry
	for _, e := range entries {
		if strings.Contains(e.haystack(), query) {
			out = append(out, e)
		}
	}
	return out
}

// Sort returns a stably sorted copy of entries.
func Sort(entries []*Entry, key SortKey) []*Entry {
	out := slices.Clone(entries)

	switch key {
	case SortYearDesc:
		slices.SortStableFunc(out, func(a, b *Entry) int {
			return cmp.Compare(b.sortYear(), a.sortYear())
		})
	case SortYearAsc:
		slices.SortStableFunc(out, func(a, b *Entry) int {
			return cmp.Compare(a.sortYear(), b.sortYear())
		})
	case SortTitleAsc:
		c := collate.New(language.Und)
		slices.SortStableFunc(out, func(a, b *Entry) int {
			return c.CompareString(a.Title(), b.Title())
		})
	}

	return out
}

// ViewOptions is the user-controlled state of the publications page.
type ViewOptions struct {
	Sort  SortKey
	Query string
}

// Item is a numbered citation in a view group.
type Item struct {
	Number   int
	Entry    *Entry
	Citation string
}

// View is the publications page after filtering, sorting and grouping.
type View struct {
	Options     ViewOptions
	Total       int
	Journals    []Item
	Conferences []Item
}

// BuildView filters and sorts entries, then splits them into journal and
// conference groups, each numbered from 1. Entries that are neither appear in
// no group; entries that are both appear in both.
func BuildView(entries []*Entry, opts ViewOptions) *View {
	v := &View{
		Options:     opts,
		Total:       len(entries),
		Journals:    []Item{},
		Conferences: []Item{},
	}
	if len(entries) == 0 {
		return v
	}

	for _, e := range Sort(Filter(entries, opts.Query), opts.Sort) {
		if e.IsJournal() {
			v.Journals = append(v.Journals, newItem(len(v.Journals)+1, e))
		}
		if e.IsConference() {
			v.Conferences = append(v.Conferences, newItem(len(v.Conferences)+1, e))
		}
	}

	return v
}

func newItem(n int, e *Entry) Item {
	return Item{Number: n, Entry: e, Citation: FormatCitation(e)}
}

// Empty reports whether the filter left nothing to show in a non-empty
// catalog, which is when the page shows its "no matches" hint.
func (v *View) Empty() bool {
	return v.Total > 0 && len(v.Journals) == 0 && len(v.Conferences) == 0
}

// Len returns the number of listed items across both groups.
func (v *View) Len() int {
	return len(v.Journals) + len(v.Conferences)
}
