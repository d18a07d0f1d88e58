// Package roster parses the lab roster (people/people.txt) and the per-person
// biography files into a role-bucketed directory.
package roster

import (
	"strings"
)

// RosterPath is the roster location relative to the resource root.
const RosterPath = "people/people.txt"

// Bucket identifies one of the fixed role groups of the directory.
type Bucket string

// Buckets in display order.
const (
	BucketPI               Bucket = "pi"
	BucketPostdoc          Bucket = "postdoc"
	BucketGraduate         Bucket = "graduate"
	BucketBachelorVisiting Bucket = "bachelor_visiting"
	BucketAlumni           Bucket = "alumni"
)

// AllBuckets lists every bucket in display order.
var AllBuckets = []Bucket{
	BucketPI,
	BucketPostdoc,
	BucketGraduate,
	BucketBachelorVisiting,
	BucketAlumni,
}

// sectionBuckets maps roster section headers to buckets. The spelling of
// "Intership" matches the roster files in the wild.
var sectionBuckets = map[string]Bucket{
	"Principal Investigator":                BucketPI,
	"Postdoc Researcher":                    BucketPostdoc,
	"Graduate Students":                     BucketGraduate,
	"Bachelor Intership & Visiting Scholar": BucketBachelorVisiting,
	"Alumni":                                BucketAlumni,
}

var bucketTitles = map[Bucket]string{
	BucketPI:               "Principal Investigator",
	BucketPostdoc:          "Postdoc Researcher",
	BucketGraduate:         "Graduate Students",
	BucketBachelorVisiting: "Bachelor Internship & Visiting Scholar",
	BucketAlumni:           "Alumni",
}

// Title returns the heading shown above the bucket.
func (b Bucket) Title() string {
	if t, ok := bucketTitles[b]; ok {
		return t
	}
	return string(b)
}

// ParseBucket resolves a bucket identifier such as "pi" or "graduate".
func ParseBucket(s string) (Bucket, bool) {
	b := Bucket(strings.ToLower(strings.TrimSpace(s)))
	_, ok := bucketTitles[b]
	return b, ok
}

// BucketForSection returns the bucket a roster section header maps to.
func BucketForSection(section string) (Bucket, bool) {
	b, ok := sectionBuckets[section]
	return b, ok
}

// Person is one roster entry, enriched with its biography once loaded.
type Person struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	Position string `json:"position,omitempty"`
	Scholar  string `json:"scholar,omitempty"`
	Email    string `json:"email,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Website  string `json:"website,omitempty"`
	Intro    string `json:"intro,omitempty"`

	PhotoPath string `json:"photo"`
	IntroPath string `json:"-"`
}

// NewPerson creates a person with asset paths derived from the name.
func NewPerson(name, role string) *Person {
	assets := AssetsFor(name)
	return &Person{
		Name:      name,
		Role:      role,
		PhotoPath: assets.PhotoPath,
		IntroPath: assets.IntroPath,
	}
}

// IsPI reports whether the person belongs to the principal investigator section.
func (p *Person) IsPI() bool {
	return strings.HasPrefix(p.Role, "Principal Investigator")
}

// HasLinks reports whether any contact link is known.
func (p *Person) HasLinks() bool {
	return p.Email != "" || p.Scholar != "" || p.LinkedIn != "" || p.Website != ""
}

// Directory holds the people of the roster grouped by bucket, in file order.
type Directory struct {
	buckets map[Bucket][]*Person
}

// NewDirectory returns a directory with all buckets present and empty.
func NewDirectory() *Directory {
	d := &Directory{buckets: make(map[Bucket][]*Person, len(AllBuckets))}
	for _, b := range AllBuckets {
		d.buckets[b] = []*Person{}
	}
	return d
}

// Bucket returns the people in b.
func (d *Directory) Bucket(b Bucket) []*Person {
	return d.buckets[b]
}

// All returns every person, bucket by bucket.
func (d *Directory) All() []*Person {
	var all []*Person
	for _, b := range AllBuckets {
		all = append(all, d.buckets[b]...)
	}
	return all
}

// Len returns the number of people across all buckets.
func (d *Directory) Len() int {
	n := 0
	for _, b := range AllBuckets {
		n += len(d.buckets[b])
	}
	return n
}

func (d *Directory) add(b Bucket, p *Person) {
	d.buckets[b] = append(d.buckets[b], p)
}

// rosterState is the fold state carried between roster lines.
type rosterState struct {
	section string
	active  bool
}

// ParseRoster parses roster text into a directory. It never fails: lines
// before the first section header and lines under unknown sections are dropped.
//
// A line ending in ":" is always a section header, so a person whose name ends
// in a colon cannot be listed.
func ParseRoster(text string) *Directory {
	dir := NewDirectory()
	state := rosterState{}
	for _, raw := range splitLines(text) {
		state = state.step(dir, strings.TrimSpace(raw))
	}
	return dir
}

func (s rosterState) step(dir *Directory, line string) rosterState {
	if line == "" {
		return s
	}

	if strings.HasSuffix(line, ":") {
		return rosterState{section: strings.TrimSuffix(line, ":"), active: true}
	}

	if !s.active {
		return s
	}

	if b, ok := BucketForSection(s.section); ok {
		dir.add(b, NewPerson(line, s.section))
	}
	return s
}

// splitLines splits on LF, dropping a leading byte order mark and the CR of
// CRLF endings.
func splitLines(text string) []string {
	text = strings.TrimPrefix(text, "\ufeff")
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
