package publication

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleBib = `
@article{k1, author={Song, Fei and Zhang, Ying}, title={A Study}, journal={J. Test}, year={2020}, volume={5}, pages={10--20}}

@InProceedings{ conf2021 ,
  Author = {Ying Zhang and Yan Lu},
  title  = { Fast Things },
  booktitle = {Proc. of Things},
  organization = {IEEE},
  year = {2021},
  note = {100\% reproducible}
}
@misc{m1,
  title = {A Dataset},
  publisher = {Zenodo},
  year = {in press}
}
`

func TestParse(t *testing.T) {
	entries := Parse(sampleBib)
	if len(entries) != 3 {
		t.Fatalf("entry count = %d, want 3", len(entries))
	}

	want := []*Entry{
		{
			Type: "article",
			Key:  "k1",
			Fields: map[string]string{
				"author":  "Song, Fei and Zhang, Ying",
				"title":   "A Study",
				"journal": "J. Test",
				"year":    "2020",
				"volume":  "5",
				"pages":   "10--20",
			},
			Year:       2020,
			HasYear:    true,
			RawAuthors: "Song, Fei and Zhang, Ying",
		},
		{
			Type: "inproceedings",
			Key:  "conf2021",
			Fields: map[string]string{
				"author":       "Ying Zhang and Yan Lu",
				"title":        "Fast Things",
				"booktitle":    "Proc. of Things",
				"organization": "IEEE",
				"year":         "2021",
				"note":         "100% reproducible",
			},
			Year:       2021,
			HasYear:    true,
			RawAuthors: "Ying Zhang and Yan Lu",
		},
		{
			Type: "misc",
			Key:  "m1",
			Fields: map[string]string{
				"title":     "A Dataset",
				"publisher": "Zenodo",
				"year":      "in press",
			},
		},
	}

	if diff := cmp.Diff(want, entries); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_EntryCount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"empty", "", 0},
		{"no entries", "just some text", 0},
		{"one", "@article{a, title={T}}", 1},
		{"adjacent", "@article{a, title={T}}@book{b, title={U}}", 2},
		{"whitespace between", "@article{a, title={T}}\n\n  \t@book{b, title={U}}\n", 2},
		{"at sign inside value", "@misc{a, email={x@y.org}}\n@misc{b, title={T}}", 2},
		{"no comma after key", "@misc{nokey}", 0},
		{"text after closing brace", "@misc{a, title={T}} trailing", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(Parse(tt.input)); got != tt.want {
				t.Errorf("len(Parse()) = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParse_DuplicateFieldLastWins(t *testing.T) {
	entries := Parse("@article{a, title={First}, TITLE={Second}}")
	if len(entries) != 1 {
		t.Fatalf("entry count = %d, want 1", len(entries))
	}
	if got := entries[0].Title(); got != "Second" {
		t.Errorf("title = %q, want %q", got, "Second")
	}
}

func TestParse_NestedBracesTruncate(t *testing.T) {
	entries := Parse("@article{a, title={The {GPU} Era}, year={2019}}")
	if len(entries) != 1 {
		t.Fatalf("entry count = %d, want 1", len(entries))
	}
	if got := entries[0].Title(); got != "The {GPU" {
		t.Errorf("title = %q, want truncated %q", got, "The {GPU")
	}
	if !entries[0].HasYear || entries[0].Year != 2019 {
		t.Errorf("year = %d/%v, want 2019", entries[0].Year, entries[0].HasYear)
	}
}

func TestParse_InvalidUTF8(t *testing.T) {
	entries := Parse("@article{a, title={Caf\xe9}, year={2020}}")
	if len(entries) != 1 {
		t.Fatalf("entry count = %d, want 1", len(entries))
	}
	if got, want := entries[0].Title(), "Caf\uFFFD"; got != want {
		t.Errorf("title = %q, want %q", got, want)
	}
}

func TestParse_Year(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantHas bool
	}{
		{"2020", 2020, true},
		{"2021a", 2021, true},
		{"-44", -44, true},
		{"+1999", 1999, true},
		{"99999999999999999999999", 0, false},
		{"in press", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			entries := Parse("@misc{a, year={" + tt.input + "}}")
			if len(entries) != 1 {
				t.Fatalf("entry count = %d, want 1", len(entries))
			}
			e := entries[0]
			if e.Year != tt.want || e.HasYear != tt.wantHas {
				t.Errorf("year = %d/%v, want %d/%v", e.Year, e.HasYear, tt.want, tt.wantHas)
			}
		})
	}
}

func TestParse_Classification(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		journal bool
		conf    bool
	}{
		{"article", "@article{a, title={T}}", true, false},
		{"inproceedings", "@inproceedings{a, title={T}}", false, true},
		{"misc with journal", "@misc{a, journal={J}}", true, false},
		{"misc with booktitle", "@misc{a, booktitle={B}}", false, true},
		{"both", "@article{a, booktitle={B}}", true, true},
		{"neither", "@book{a, publisher={P}}", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Parse(tt.input)[0]
			if e.IsJournal() != tt.journal {
				t.Errorf("IsJournal() = %v, want %v", e.IsJournal(), tt.journal)
			}
			if e.IsConference() != tt.conf {
				t.Errorf("IsConference() = %v, want %v", e.IsConference(), tt.conf)
			}
		})
	}
}

func TestParse_Idempotent(t *testing.T) {
	if diff := cmp.Diff(Parse(sampleBib), Parse(sampleBib)); diff != "" {
		t.Errorf("second parse differs:\n%s", diff)
	}
}

func TestParse_CountMatchesTypeOccurrences(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 25; i++ {
		sb.WriteString("@article{k, title={T}, year={2000}}\n")
	}
	if got := len(Parse(sb.String())); got != 25 {
		t.Errorf("len(Parse()) = %d, want 25", got)
	}
}
