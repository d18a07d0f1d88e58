package bibtex

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/labsite/labsite/publication"
)

// fieldOrder is the order common fields are written in. Other fields follow
// alphabetically.
var fieldOrder = []string{
	"title", "author", "year", "journal", "booktitle",
	"volume", "number", "pages", "organization", "publisher", "url",
}

// Serialize writes entries as BibTeX, one blank line between entries.
func Serialize(w io.Writer, entries []*publication.Entry) error {
	for i, e := range entries {
		if _, err := io.WriteString(w, entryToBibtex(e)); err != nil {
			return err
		}
		if i < len(entries)-1 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
	}
	return nil
}

func entryToBibtex(e *publication.Entry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "@%s{%s,\n", e.Type, e.Key)
	for _, name := range orderedFields(e) {
		fmt.Fprintf(&sb, "  %s = {%s},\n", name, escapeBibtex(e.Fields[name]))
	}
	sb.WriteString("}\n")
	return sb.String()
}

func orderedFields(e *publication.Entry) []string {
	names := make([]string, 0, len(e.Fields))
	for _, name := range fieldOrder {
		if _, ok := e.Fields[name]; ok {
			names = append(names, name)
		}
	}
	for _, name := range e.FieldNames() {
		if !slices.Contains(fieldOrder, name) {
			names = append(names, name)
		}
	}
	return names
}

// escapeBibtex escapes the characters the catalog parser unescapes.
func escapeBibtex(s string) string {
	return strings.ReplaceAll(s, "%", "\\%")
}
