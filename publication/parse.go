package publication

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Parse extracts entries of the form @type{key, name = {value}, ...} from text.
//
// It is a best-effort subset parser and never fails. An entry ends at the first
// "}" that is followed only by whitespace before the next "@" or the end of
// input. Field values end at the first "}", so nested braces truncate them.
// When a field repeats, the last occurrence wins.
func Parse(text string) []*Entry {
	var entries []*Entry

	pos := 0
	for pos < len(text) {
		at := strings.IndexByte(text[pos:], '@')
		if at < 0 {
			break
		}
		at += pos

		raw, end, ok := scanEntry(text, at)
		if !ok {
			pos = at + 1
			continue
		}
		entries = append(entries, newEntry(raw))
		pos = end
	}

	return entries
}

// rawEntry is an entry located by the first pass, before field extraction.
type rawEntry struct {
	typ  string
	key  string
	body string
}

// scanEntry tries to read an entry starting at the "@" at index at. It returns
// the entry and the index just past its closing brace and trailing whitespace.
func scanEntry(text string, at int) (rawEntry, int, bool) {
	i := at + 1

	typeEnd := scanWord(text, i)
	if typeEnd == i {
		return rawEntry{}, 0, false
	}
	typ := text[i:typeEnd]

	i = skipSpace(text, typeEnd)
	if i >= len(text) || text[i] != '{' {
		return rawEntry{}, 0, false
	}
	i++

	// The key runs to the first comma, whatever it contains.
	comma := strings.IndexByte(text[i:], ',')
	if comma <= 0 {
		return rawEntry{}, 0, false
	}
	key := text[i : i+comma]
	bodyStart := i + comma + 1

	for j := bodyStart; j < len(text); j++ {
		if text[j] != '}' {
			continue
		}
		next := skipSpace(text, j+1)
		if next == len(text) || text[next] == '@' {
			return rawEntry{
				typ:  strings.ToLower(typ),
				key:  strings.TrimSpace(key),
				body: text[bodyStart:j],
			}, next, true
		}
	}

	return rawEntry{}, 0, false
}

// field is one name/value pair found by the second pass.
type field struct {
	name  string
	value string
}

// scanFields finds every name = {value} pair in an entry body, in order.
func scanFields(body string) []field {
	var fields []field

	i := 0
	for i < len(body) {
		if !isWordByte(body[i]) {
			i++
			continue
		}

		nameEnd := scanWord(body, i)
		f, end, ok := scanField(body, i, nameEnd)
		if !ok {
			// A match can't start later inside the same word either.
			i = nameEnd
			continue
		}
		fields = append(fields, f)
		i = end
	}

	return fields
}

func scanField(body string, start, nameEnd int) (field, int, bool) {
	j := skipSpace(body, nameEnd)
	if j >= len(body) || body[j] != '=' {
		return field{}, 0, false
	}
	j = skipSpace(body, j+1)
	if j >= len(body) || body[j] != '{' {
		return field{}, 0, false
	}
	j++

	closing := strings.IndexByte(body[j:], '}')
	if closing < 0 {
		return field{}, 0, false
	}

	return field{
		name:  body[start:nameEnd],
		value: body[j : j+closing],
	}, j + closing + 1, true
}

// newEntry runs the second pass over a located entry.
func newEntry(raw rawEntry) *Entry {
	e := &Entry{
		Type:   raw.typ,
		Key:    raw.key,
		Fields: make(map[string]string),
	}

	for _, f := range scanFields(raw.body) {
		e.Fields[strings.ToLower(f.name)] = unescapeValue(f.value)
	}

	if y, ok := e.Fields["year"]; ok && y != "" {
		e.Year, e.HasYear = parseLeadingInt(y)
	}
	e.RawAuthors = e.Fields["author"]

	return e
}

func unescapeValue(v string) string {
	v = strings.ToValidUTF8(v, "\uFFFD")
	return strings.ReplaceAll(strings.TrimSpace(v), `\%`, "%")
}

// parseLeadingInt reads an optionally signed base-10 integer prefix, so
// "2021" and "2021a" both give 2021 while "in press" gives nothing. A prefix
// that overflows int gives nothing.
func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	start := 0
	if s != "" && (s[0] == '+' || s[0] == '-') {
		start = 1
	}

	end := start
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// isWordByte matches the ASCII word characters [A-Za-z0-9_].
func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

func scanWord(s string, i int) int {
	for i < len(s) && isWordByte(s[i]) {
		i++
	}
	return i
}

func skipSpace(s string, i int) int {
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !unicode.IsSpace(r) {
			break
		}
		i += size
	}
	return i
}
