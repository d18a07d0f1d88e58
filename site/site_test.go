package site

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/labsite/labsite/fetch"
	"github.com/labsite/labsite/publication"
	"github.com/labsite/labsite/roster"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// mapSource serves fixed contents; missing paths fail like a 404.
type mapSource struct {
	files map[string]string
	calls atomic.Int32
}

func (s *mapSource) Fetch(_ context.Context, p string) ([]byte, error) {
	s.calls.Add(1)
	if v, ok := s.files[p]; ok {
		return []byte(v), nil
	}
	return nil, &fetch.ResourceError{Path: p, Status: 404}
}

const testRoster = "Principal Investigator:\nYan Lu\nGraduate Students:\nYing Zhang\nJing Zhang\n"

func TestLoadPeople(t *testing.T) {
	src := &mapSource{files: map[string]string{
		"people/people.txt":           testRoster,
		"people/Yan_Lu/intro.txt":     "Position:\nProfessor\nIntro:\nLeads the lab.\n",
		"people/Jing_Zhang/intro.txt": "Email:\njz@example.edu\n",
	}}

	dir, err := LoadPeople(context.Background(), src)
	if err != nil {
		t.Fatalf("LoadPeople() error = %v", err)
	}

	pi := dir.Bucket(roster.BucketPI)[0]
	if pi.Position != "Professor" || pi.Intro != "Leads the lab." {
		t.Errorf("PI = %+v", pi)
	}

	grads := dir.Bucket(roster.BucketGraduate)
	if grads[0].Name != "Ying Zhang" || grads[0].Position != "" || grads[0].HasLinks() {
		t.Errorf("person without biography = %+v, want empty fields", grads[0])
	}
	if grads[1].Email != "jz@example.edu" {
		t.Errorf("Email = %q, want %q", grads[1].Email, "jz@example.edu")
	}

	if got := src.calls.Load(); got != 4 {
		t.Errorf("fetch calls = %d, want 4", got)
	}
}

func TestLoadPeople_RosterUnavailable(t *testing.T) {
	_, err := LoadPeople(context.Background(), &mapSource{})
	if !errors.Is(err, fetch.ErrResourceUnavailable) {
		t.Fatalf("LoadPeople() error = %v, want ErrResourceUnavailable", err)
	}
	if !strings.HasPrefix(err.Error(), "loading roster: ") {
		t.Errorf("error = %q, want loading roster prefix", err)
	}
	if got := RosterStatus("people/people.txt", err); !strings.HasPrefix(got, "Failed to load people.txt: ") {
		t.Errorf("RosterStatus() = %q", got)
	}
}

func TestLoadPublications(t *testing.T) {
	tests := []struct {
		name       string
		files      map[string]string
		wantStatus string
		wantErr    bool
		wantLen    int
	}{
		{
			name:       "loaded",
			files:      map[string]string{"pub/ExPub.txt": "@article{a, title={A}, journal={J}}\n@inproceedings{b, title={B}, booktitle={P}}"},
			wantStatus: "Loaded 2 entries from ExPub.txt.",
			wantLen:    2,
		},
		{
			name:       "no entries",
			files:      map[string]string{"pub/ExPub.txt": "% nothing here"},
			wantStatus: "ExPub.txt was parsed but contains no entries.",
		},
		{
			name:       "missing",
			files:      map[string]string{},
			wantStatus: "Failed to load ExPub.txt: fetching pub/ExPub.txt: HTTP 404",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := LoadPublications(context.Background(), &mapSource{files: tt.files}, publication.ViewOptions{})
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadPublications() error = %v, wantErr %v", err, tt.wantErr)
			}
			if page.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", page.Status, tt.wantStatus)
			}
			if page.Failed() != tt.wantErr {
				t.Errorf("Failed() = %v, want %v", page.Failed(), tt.wantErr)
			}
			if page.View.Len() != tt.wantLen {
				t.Errorf("View.Len() = %d, want %d", page.View.Len(), tt.wantLen)
			}
		})
	}
}

func TestLoader_CustomPaths(t *testing.T) {
	src := &mapSource{files: map[string]string{
		"data/team.txt": "Alumni:\nOld Timer\n",
		"data/refs.bib": "@article{a, title={A}, journal={J}}",
	}}
	l := NewLoader(src)
	l.RosterPath = "data/team.txt"
	l.CatalogPath = "data/refs.bib"

	dir, err := l.People(context.Background())
	if err != nil || dir.Len() != 1 {
		t.Fatalf("People() = %v, %v", dir, err)
	}
	page, err := l.Publications(context.Background(), publication.ViewOptions{})
	if err != nil {
		t.Fatalf("Publications() error = %v", err)
	}
	if page.Status != "Loaded 1 entries from refs.bib." {
		t.Errorf("Status = %q", page.Status)
	}
}

func writeResources(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestBuild(t *testing.T) {
	root := t.TempDir()
	writeResources(t, root, map[string]string{
		"people/people.txt":       testRoster,
		"people/Yan_Lu/intro.txt": "Position:\nProfessor\n",
		"pub/ExPub.txt":           "@article{k1, author={Song, Fei}, title={A Study}, journal={J. Test}, year={2020}}",
	})
	out := filepath.Join(t.TempDir(), "public")

	if err := Build(context.Background(), fetch.NewDir(root), out, BuildOptions{}); err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	people, err := os.ReadFile(filepath.Join(out, PeopleFile))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(people), "Professor") || !strings.Contains(string(people), "Jing Zhang") {
		t.Errorf("people.html missing content:\n%s", people)
	}

	pubs, err := os.ReadFile(filepath.Join(out, PublicationsFile))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(pubs), "Loaded 1 entries from ExPub.txt.") || !strings.Contains(string(pubs), "[1]") {
		t.Errorf("publications.html missing content:\n%s", pubs)
	}
}

func TestBuild_MissingResources(t *testing.T) {
	out := t.TempDir()

	err := Build(context.Background(), fetch.NewDir(t.TempDir()), out, BuildOptions{})
	if !errors.Is(err, fetch.ErrResourceUnavailable) {
		t.Fatalf("Build() error = %v, want ErrResourceUnavailable", err)
	}

	people, _ := os.ReadFile(filepath.Join(out, PeopleFile))
	if !strings.Contains(string(people), "Failed to load people.txt") {
		t.Errorf("people.html = %s", people)
	}
	pubs, _ := os.ReadFile(filepath.Join(out, PublicationsFile))
	if !strings.Contains(string(pubs), "Failed to load ExPub.txt") {
		t.Errorf("publications.html = %s", pubs)
	}
}

func TestWatch(t *testing.T) {
	root := t.TempDir()
	writeResources(t, root, map[string]string{"people/people.txt": testRoster})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rebuilt := make(chan struct{}, 10)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, root, WatchOptions{Debounce: 20 * time.Millisecond, Ignore: filepath.Join(root, "out")}, func(context.Context) error {
			rebuilt <- struct{}{}
			return nil
		})
	}()

	// give the watcher time to register the tree
	time.Sleep(100 * time.Millisecond)
	writeResources(t, root, map[string]string{"people/Yan_Lu/intro.txt": "Position:\nProfessor\n"})

	select {
	case <-rebuilt:
	case <-time.After(5 * time.Second):
		t.Fatal("no rebuild after change")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Watch() did not return after cancel")
	}
}
