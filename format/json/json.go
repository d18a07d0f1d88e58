// Package json provides a format plugin that renders JSON documents.
package json

import (
	encjson "encoding/json"
	"fmt"
	"io"
	"strings"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/labsite/labsite/format"
	"github.com/labsite/labsite/helpers"
	"github.com/labsite/labsite/publication"
	"github.com/labsite/labsite/roster"
)

// Format implements the JSON format.
type Format struct{}

// Ensure Format implements the interfaces
var (
	_ format.PeopleRenderer      = (*Format)(nil)
	_ format.PublicationRenderer = (*Format)(nil)
)

// Name returns the format identifier.
func (f *Format) Name() string {
	return "json"
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "JSON documents for APIs and tooling"
}

// Extensions returns file extensions associated with this format.
func (f *Format) Extensions() []string {
	return []string{"json"}
}

// PeopleDocument is the JSON shape of the people directory.
type PeopleDocument struct {
	Total   int              `json:"total"`
	Buckets []BucketDocument `json:"buckets"`
}

// BucketDocument is one roster section.
type BucketDocument struct {
	ID     roster.Bucket    `json:"id"`
	Title  string           `json:"title"`
	People []*roster.Person `json:"people"`
}

// NewPeopleDocument builds the document for dir, buckets in display order.
func NewPeopleDocument(dir *roster.Directory) *PeopleDocument {
	doc := &PeopleDocument{Total: dir.Len(), Buckets: []BucketDocument{}}
	for _, b := range roster.AllBuckets {
		doc.Buckets = append(doc.Buckets, BucketDocument{ID: b, Title: b.Title(), People: dir.Bucket(b)})
	}
	return doc
}

// RenderPeople writes the directory as JSON.
func (f *Format) RenderPeople(w io.Writer, dir *roster.Directory, opts *format.RenderOptions) error {
	return encode(w, NewPeopleDocument(dir), opts)
}

// PublicationsDocument is the JSON shape of the publications page.
type PublicationsDocument struct {
	Source      string         `json:"source"`
	Status      string         `json:"status"`
	Error       string         `json:"error,omitempty"`
	Total       int            `json:"total"`
	Sort        string         `json:"sort,omitempty"`
	Query       string         `json:"query,omitempty"`
	Empty       bool           `json:"empty"`
	Journals    []ItemDocument `json:"journals"`
	Conferences []ItemDocument `json:"conferences"`
}

// ItemDocument is one numbered citation.
type ItemDocument struct {
	Number       int                `json:"number"`
	Key          string             `json:"key"`
	Type         string             `json:"type"`
	Year         *int               `json:"year,omitempty"`
	Citation     string             `json:"citation"`
	CitationHTML string             `json:"citation_html"`
	Fields       encjson.RawMessage `json:"fields"`
}

// NewPublicationsDocument builds the document for page.
func NewPublicationsDocument(page *publication.Page) (*PublicationsDocument, error) {
	doc := &PublicationsDocument{
		Source:      page.Source,
		Status:      page.Status,
		Total:       page.View.Total,
		Sort:        string(page.View.Options.Sort),
		Query:       page.View.Options.Query,
		Empty:       page.View.Empty(),
		Journals:    []ItemDocument{},
		Conferences: []ItemDocument{},
	}
	if page.Failed() {
		doc.Error = page.Err.Error()
	}

	var err error
	if doc.Journals, err = itemDocuments(page.View.Journals); err != nil {
		return nil, err
	}
	if doc.Conferences, err = itemDocuments(page.View.Conferences); err != nil {
		return nil, err
	}
	return doc, nil
}

func itemDocuments(items []publication.Item) ([]ItemDocument, error) {
	docs := make([]ItemDocument, 0, len(items))
	for _, it := range items {
		fields, err := FieldsJSON(it.Entry)
		if err != nil {
			return nil, fmt.Errorf("encoding fields of %s: %w", it.Entry.Key, err)
		}
		d := ItemDocument{
			Number:       it.Number,
			Key:          it.Entry.Key,
			Type:         it.Entry.Type,
			Citation:     helpers.StripHTML(it.Citation),
			CitationHTML: it.Citation,
			Fields:       fields,
		}
		if it.Entry.HasYear {
			year := it.Entry.Year
			d.Year = &year
		}
		docs = append(docs, d)
	}
	return docs, nil
}

// FieldsJSON encodes the raw field map of e as a JSON object. Invalid UTF-8
// is replaced with U+FFFD.
func FieldsJSON(e *publication.Entry) (encjson.RawMessage, error) {
	m := make(map[string]any, len(e.Fields))
	for k, v := range e.Fields {
		m[strings.ToValidUTF8(k, "\uFFFD")] = strings.ToValidUTF8(v, "\uFFFD")
	}
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, err
	}
	b, err := protojson.Marshal(s)
	if err != nil {
		return nil, err
	}
	return encjson.RawMessage(b), nil
}

// RenderPublications writes the page as JSON.
func (f *Format) RenderPublications(w io.Writer, page *publication.Page, opts *format.RenderOptions) error {
	doc, err := NewPublicationsDocument(page)
	if err != nil {
		return err
	}
	return encode(w, doc, opts)
}

func encode(w io.Writer, v any, opts *format.RenderOptions) error {
	if opts == nil {
		opts = format.NewRenderOptions()
	}
	encoder := encjson.NewEncoder(w)
	if opts.Pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(v)
}

func init() {
	format.Register(&Format{})
}
