package format

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Registry holds registered formats.
type Registry struct {
	formats map[string]Format
}

// DefaultRegistry is the global format registry.
var DefaultRegistry = NewRegistry()

// NewRegistry creates a new format registry.
func NewRegistry() *Registry {
	return &Registry{
		formats: make(map[string]Format),
	}
}

// Register adds a format to the registry.
func (r *Registry) Register(f Format) {
	r.formats[f.Name()] = f
}

// Get retrieves a format by name.
func (r *Registry) Get(name string) (Format, bool) {
	f, ok := r.formats[strings.ToLower(name)]
	return f, ok
}

// GetPeopleRenderer retrieves a people renderer by name.
func (r *Registry) GetPeopleRenderer(name string) (PeopleRenderer, error) {
	f, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown format: %s", name)
	}
	p, ok := f.(PeopleRenderer)
	if !ok {
		return nil, fmt.Errorf("format %s does not support people output", name)
	}
	return p, nil
}

// GetPublicationRenderer retrieves a publication renderer by name.
func (r *Registry) GetPublicationRenderer(name string) (PublicationRenderer, error) {
	f, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown format: %s", name)
	}
	p, ok := f.(PublicationRenderer)
	if !ok {
		return nil, fmt.Errorf("format %s does not support publication output", name)
	}
	return p, nil
}

// List returns all registered format names, sorted.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.formats))
	for name := range r.formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DetectFormat picks a format from the extension of filename.
func (r *Registry) DetectFormat(filename string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" {
		return nil, fmt.Errorf("could not detect format for %s", filename)
	}
	for _, name := range r.List() {
		f := r.formats[name]
		for _, fext := range f.Extensions() {
			if ext == fext {
				return f, nil
			}
		}
	}
	return nil, fmt.Errorf("could not detect format for %s", filename)
}

// Register adds a format to the default registry.
func Register(f Format) {
	DefaultRegistry.Register(f)
}

// Get retrieves a format from the default registry.
func Get(name string) (Format, bool) {
	return DefaultRegistry.Get(name)
}

// GetPeopleRenderer retrieves a people renderer from the default registry.
func GetPeopleRenderer(name string) (PeopleRenderer, error) {
	return DefaultRegistry.GetPeopleRenderer(name)
}

// GetPublicationRenderer retrieves a publication renderer from the default registry.
func GetPublicationRenderer(name string) (PublicationRenderer, error) {
	return DefaultRegistry.GetPublicationRenderer(name)
}

// List returns the format names in the default registry.
func List() []string {
	return DefaultRegistry.List()
}

// DetectFormat detects format using the default registry.
func DetectFormat(filename string) (Format, error) {
	return DefaultRegistry.DetectFormat(filename)
}
