package publication

// Page is everything a renderer needs for the publications page.
type Page struct {
	// Source names the file the entries came from, e.g. "ExPub.txt".
	Source string
	// Status is the human-readable load status line.
	Status string
	// Entries is the full catalog in source order.
	Entries []*Entry
	// View is the filtered, sorted and grouped catalog.
	View *View
	// Err is the load failure, if any. Status describes it.
	Err error
}

// Failed reports whether the catalog could not be loaded.
func (p *Page) Failed() bool {
	return p.Err != nil
}

// NewPage builds the view for entries.
func NewPage(source, status string, entries []*Entry, opts ViewOptions) *Page {
	return &Page{
		Source:  source,
		Status:  status,
		Entries: entries,
		View:    BuildView(entries, opts),
	}
}
