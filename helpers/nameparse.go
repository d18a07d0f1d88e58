package helpers

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxListedAuthors is the number of authors printed before "et al." takes over.
const MaxListedAuthors = 6

// Author is a name reduced to the parts an IEEE reference needs.
type Author struct {
	Family   string
	Initials string
}

var (
	// Separator between names in a BibTeX author field
	andSeparatorRegex = regexp.MustCompile(`(?i)\s+and\s+`)

	bracesReplacer = strings.NewReplacer("{", "", "}", "")
)

// NameParser parses BibTeX author fields.
type NameParser struct{}

// Parse splits a raw author field on " and " and parses each name.
// Handles both "Family, Given" and "Given Family" forms.
func (p *NameParser) Parse(raw string) []Author {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var authors []Author
	for _, part := range andSeparatorRegex.Split(raw, -1) {
		name := strings.TrimSpace(bracesReplacer.Replace(strings.TrimSpace(part)))
		if name == "" {
			continue
		}
		authors = append(authors, parseName(name))
	}
	return authors
}

func parseName(name string) Author {
	var family, given string

	if strings.Contains(name, ",") {
		// "Family, Given"; anything after a second comma is dropped
		parts := strings.Split(name, ",")
		family = strings.TrimSpace(parts[0])
		if len(parts) > 1 {
			given = strings.TrimSpace(parts[1])
		}
	} else {
		// "Given Middle Family"
		parts := strings.Fields(name)
		family = parts[len(parts)-1]
		given = strings.Join(parts[:len(parts)-1], " ")
	}

	return Author{Family: family, Initials: Initials(given)}
}

// Initials abbreviates given names: "Fei Wen" -> "F. W."
func Initials(given string) string {
	parts := strings.Fields(given)
	initials := make([]string, 0, len(parts))
	for _, part := range parts {
		r, _ := utf8.DecodeRuneInString(part)
		initials = append(initials, string(unicode.ToUpper(r))+".")
	}
	return strings.Join(initials, " ")
}

// ParseAuthors is a convenience function to parse an author field.
func ParseAuthors(raw string) []Author {
	parser := &NameParser{}
	return parser.Parse(raw)
}

// Display returns the author as "F. Family", or just the family name
// when no given names were known.
func (a Author) Display() string {
	if a.Initials != "" {
		return a.Initials + " " + a.Family
	}
	return a.Family
}

// FormatAuthors joins authors IEEE style:
// "F. Song", "F. Song and Y. Zhang", "F. Song, Y. Zhang, and J. Zhang".
// Lists longer than MaxListedAuthors keep the first six and end in "et al.".
func FormatAuthors(authors []Author) string {
	if len(authors) == 0 {
		return ""
	}

	truncated := len(authors) > MaxListedAuthors
	if truncated {
		authors = authors[:MaxListedAuthors]
	}

	names := make([]string, len(authors))
	for i, a := range authors {
		names[i] = a.Display()
	}

	switch len(names) {
	case 1:
		if truncated {
			return names[0] + " et al."
		}
		return names[0]
	case 2:
		if truncated {
			return names[0] + ", " + names[1] + ", et al."
		}
		return names[0] + " and " + names[1]
	}

	before := strings.Join(names[:len(names)-1], ", ")
	last := names[len(names)-1]
	if truncated {
		return before + ", " + last + ", et al."
	}
	return before + ", and " + last
}

// FormatAuthorField parses and formats a raw author field in one step.
func FormatAuthorField(raw string) string {
	return FormatAuthors(ParseAuthors(raw))
}
