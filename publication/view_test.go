package publication

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

const viewBib = `
@article{k1, author={Song, Fei and Zhang, Ying}, title={A Study}, journal={J. Test}, year={2020}, volume={5}, pages={10--20}}
@inproceedings{c1, author={Lu, Yan}, title={zeta Methods}, booktitle={Proc. Z}, year={2018}}
@article{k2, author={Lu, Yan}, title={Beta Results}, journal={Letters}, year={2022}}
@inproceedings{c2, author={Wang, Min}, title={Alpha Systems}, booktitle={Proc. A}, publisher={Zhang Press}}
@book{b1, author={Nobody, Anne}, title={Unlisted}, publisher={P}, year={2000}}
`

func keys(items []Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Entry.Key)
	}
	return out
}

func TestBuildView_Default(t *testing.T) {
	v := BuildView(Parse(viewBib), ViewOptions{})

	if diff := cmp.Diff([]string{"k1", "k2"}, keys(v.Journals)); diff != "" {
		t.Errorf("journals mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"c1", "c2"}, keys(v.Conferences)); diff != "" {
		t.Errorf("conferences mismatch (-want +got):\n%s", diff)
	}
	if v.Total != 5 {
		t.Errorf("Total = %d, want 5", v.Total)
	}
	for i, it := range v.Conferences {
		if it.Number != i+1 {
			t.Errorf("conference[%d].Number = %d, want %d", i, it.Number, i+1)
		}
	}
	if v.Journals[0].Citation != `F. Song and Y. Zhang, "A Study", <em>J. Test</em>, vol. 5, pp. 10–20, 2020.` {
		t.Errorf("journal[0].Citation = %q", v.Journals[0].Citation)
	}
	if v.Empty() {
		t.Error("Empty() = true, want false")
	}
}

func TestBuildView_Sort(t *testing.T) {
	tests := []struct {
		key         SortKey
		journals    []string
		conferences []string
	}{
		{SortYearDesc, []string{"k2", "k1"}, []string{"c1", "c2"}},
		{SortYearAsc, []string{"k1", "k2"}, []string{"c2", "c1"}},
		{SortTitleAsc, []string{"k1", "k2"}, []string{"c2", "c1"}},
	}

	entries := Parse(viewBib)
	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			v := BuildView(entries, ViewOptions{Sort: tt.key})
			if diff := cmp.Diff(tt.journals, keys(v.Journals)); diff != "" {
				t.Errorf("journals mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.conferences, keys(v.Conferences)); diff != "" {
				t.Errorf("conferences mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSort_Stable(t *testing.T) {
	entries := Parse(`@misc{a, year={2020}}@misc{b, year={2019}}@misc{c, year={2020}}@misc{d, title={x}}`)
	got := Sort(entries, SortYearDesc)
	want := []string{"a", "c", "b", "d"}
	if len(got) != len(want) {
		t.Fatalf("len(Sort()) = %d, want %d", len(got), len(want))
	}
	for i, e := range got {
		if e.Key != want[i] {
			t.Fatalf("Sort() order[%d] = %q, want %q", i, e.Key, want[i])
		}
	}
	if entries[0].Key != "a" || entries[1].Key != "b" {
		t.Error("Sort() modified its input")
	}
}

func TestSort_ExtremeYears(t *testing.T) {
	entries := Parse(`@misc{lo, year={-9223372036854775808}}@misc{hi, year={9223372036854775807}}@misc{mid, year={2000}}`)

	tests := []struct {
		key  SortKey
		want []string
	}{
		{SortYearDesc, []string{"hi", "mid", "lo"}},
		{SortYearAsc, []string{"lo", "mid", "hi"}},
	}
	for _, tt := range tests {
		var got []string
		for _, e := range Sort(entries, tt.key) {
			got = append(got, e.Key)
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Sort(%s) mismatch (-want +got):\n%s", tt.key, diff)
		}
	}
}

func TestFilter(t *testing.T) {
	entries := Parse(viewBib)

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"k1", "c1", "k2", "c2", "b1"}},
		{"zhang", []string{"k1", "c2"}},
		{"  ZHANG ", []string{"k1", "c2"}},
		{"proc. a", []string{"c2"}},
		{"letters", []string{"k2"}},
		{"nomatch", nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			var got []string
			for _, e := range Filter(entries, tt.query) {
				got = append(got, e.Key)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Filter(%q) mismatch (-want +got):\n%s", tt.query, diff)
			}
		})
	}
}

func TestBuildView_EmptyState(t *testing.T) {
	v := BuildView(Parse(viewBib), ViewOptions{Query: "nomatch"})
	if v.Len() != 0 {
		t.Errorf("Len() = %d, want 0", v.Len())
	}
	if !v.Empty() {
		t.Error("Empty() = false, want true")
	}

	none := BuildView(nil, ViewOptions{Query: "nomatch"})
	if none.Empty() {
		t.Error("Empty() on empty catalog = true, want false")
	}
}

func TestBuildView_ZhangMatchesAuthor(t *testing.T) {
	entries := Parse(`@article{k1, author={Song, Fei and Zhang, Ying}, title={A Study}, journal={J. Test}, year={2020}, volume={5}, pages={10--20}}`)
	v := BuildView(entries, ViewOptions{Query: "zhang"})
	if len(v.Journals) != 1 {
		t.Fatalf("journals = %d, want 1", len(v.Journals))
	}
}

func TestParseSortKey(t *testing.T) {
	tests := []struct {
		input   string
		want    SortKey
		wantErr bool
	}{
		{"", SortDefault, false},
		{"default", SortDefault, false},
		{"year-desc", SortYearDesc, false},
		{"YEAR-ASC", SortYearAsc, false},
		{"title-asc", SortTitleAsc, false},
		{"title-desc", "", true},
	}
	for _, tt := range tests {
		got, err := ParseSortKey(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSortKey(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSortKey(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
