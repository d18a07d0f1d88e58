package roster

import (
	"regexp"
	"strings"
)

// Field names a biography section.
type Field string

// Biography fields.
const (
	FieldNone     Field = ""
	FieldPosition Field = "position"
	FieldScholar  Field = "scholar"
	FieldEmail    Field = "email"
	FieldLinkedIn Field = "linkedin"
	FieldWebsite  Field = "website"
	FieldIntro    Field = "intro"
)

// Biography is the parsed content of a person's intro.txt.
type Biography struct {
	Position string
	Scholar  string
	Email    string
	LinkedIn string
	Website  string
	Intro    string
}

// fieldHeaders are checked in order; the first match wins.
var fieldHeaders = []struct {
	field Field
	re    *regexp.Regexp
}{
	{FieldPosition, regexp.MustCompile(`(?i)^Position:?$`)},
	{FieldScholar, regexp.MustCompile(`(?i)^(Google Scholar|Scholar):?$`)},
	{FieldEmail, regexp.MustCompile(`(?i)^(Email|E-mail):?$`)},
	{FieldLinkedIn, regexp.MustCompile(`(?i)^LinkedIn:?$`)},
	{FieldWebsite, regexp.MustCompile(`(?i)^(Website|Homepage|Personal Website):?$`)},
	// "Intro", "Introduction:" and anything else starting with "intro"
	{FieldIntro, regexp.MustCompile(`(?i)^Intro`)},
}

// headerField returns the field a trimmed line opens, if it is a header.
func headerField(line string) (Field, bool) {
	for _, h := range fieldHeaders {
		if h.re.MatchString(line) {
			return h.field, true
		}
	}
	return FieldNone, false
}

// bioState is the fold state carried between biography lines.
type bioState struct {
	field      Field
	bio        Biography
	introLines []string
}

// ParseBiography parses a biography file. It never fails; unknown content
// before the first header is ignored.
//
// Single-line fields keep the first non-blank line after their header, and a
// repeated header does not overwrite a value already captured. Intro lines are
// kept verbatim, including indentation; blank lines are skipped everywhere.
func ParseBiography(text string) Biography {
	state := bioState{}
	for _, raw := range splitLines(text) {
		state = state.step(raw)
	}

	bio := state.bio
	bio.Intro = strings.TrimSpace(strings.Join(state.introLines, "\n"))
	return bio
}

func (s bioState) step(raw string) bioState {
	line := strings.TrimSpace(raw)
	if line == "" {
		return s
	}

	if f, ok := headerField(line); ok {
		s.field = f
		return s
	}

	switch s.field {
	case FieldNone:
	case FieldIntro:
		s.introLines = append(s.introLines, raw)
	default:
		if s.bio.get(s.field) == "" {
			s.bio.set(s.field, line)
		}
	}
	return s
}

func (b *Biography) get(f Field) string {
	switch f {
	case FieldPosition:
		return b.Position
	case FieldScholar:
		return b.Scholar
	case FieldEmail:
		return b.Email
	case FieldLinkedIn:
		return b.LinkedIn
	case FieldWebsite:
		return b.Website
	case FieldIntro:
		return b.Intro
	}
	return ""
}

func (b *Biography) set(f Field, v string) {
	switch f {
	case FieldPosition:
		b.Position = v
	case FieldScholar:
		b.Scholar = v
	case FieldEmail:
		b.Email = v
	case FieldLinkedIn:
		b.LinkedIn = v
	case FieldWebsite:
		b.Website = v
	case FieldIntro:
		b.Intro = v
	}
}

// Apply copies the biography onto p, replacing all six fields. Applying the
// zero Biography clears them, which is how a missing file is represented.
func (b Biography) Apply(p *Person) {
	p.Position = b.Position
	p.Scholar = b.Scholar
	p.Email = b.Email
	p.LinkedIn = b.LinkedIn
	p.Website = b.Website
	p.Intro = b.Intro
}
