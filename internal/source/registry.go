// Package source reads named table sources from an ini file.
package source

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/ini.v1"
)

// ErrUnknownSource is returned when a named source is not registered.
var ErrUnknownSource = errors.New("unknown source")

// Source is one named endpoint.
//
//	[users]
//	url = http://localhost:8080/api/users
//	search_column = name
//	page_size = 50
//	debounce = 250ms
type Source struct {
	Name         string
	URL          string
	Key          string
	SearchColumn string
	Placeholder  string
	PageSize     int
	Debounce     time.Duration
	DataPath     string
	NextPagePath string
	Columns      []string
}

// Registry holds the known sources.
type Registry struct {
	sources map[string]Source
	mx      sync.RWMutex
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{sources: make(map[string]Source)}
}

// Load reads the registry at path. A missing file yields an empty registry.
func Load(path string) (*Registry, error) {
	r := NewRegistry()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return r, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to access sources file: %w", err)
	}

	f, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load sources file: %w", err)
	}
	for _, section := range f.Sections() {
		if section.Name() == ini.DefaultSection {
			continue
		}
		s, err := parseSection(section)
		if err != nil {
			return nil, fmt.Errorf("source %q: %w", section.Name(), err)
		}
		r.Add(s)
	}

	return r, nil
}

// Add registers s, replacing any source of the same name.
func (r *Registry) Add(s Source) {
	r.mx.Lock()
	defer r.mx.Unlock()

	r.sources[s.Name] = s
}

// Get returns the named source.
func (r *Registry) Get(name string) (Source, error) {
	r.mx.RLock()
	defer r.mx.RUnlock()

	s, ok := r.sources[name]
	if !ok {
		return Source{}, fmt.Errorf("%w: %q", ErrUnknownSource, name)
	}
	return s, nil
}

// Names returns the sorted source names.
func (r *Registry) Names() []string {
	r.mx.RLock()
	defer r.mx.RUnlock()

	names := make([]string, 0, len(r.sources))
	for n := range r.sources {
		names = append(names, n)
	}
	sort.Strings(names)

	return names
}

func parseSection(section *ini.Section) (Source, error) {
	s := Source{
		Name:         section.Name(),
		URL:          section.Key("url").String(),
		Key:          section.Key("key").String(),
		SearchColumn: section.Key("search_column").String(),
		Placeholder:  section.Key("placeholder").String(),
		DataPath:     section.Key("data_path").String(),
		NextPagePath: section.Key("next_page_path").String(),
	}
	if s.URL == "" {
		return s, errors.New("missing url")
	}

	if section.HasKey("page_size") {
		n, err := section.Key("page_size").Int()
		if err != nil {
			return s, fmt.Errorf("invalid page_size: %w", err)
		}
		s.PageSize = n
	}
	if section.HasKey("debounce") {
		d, err := parseDebounce(section.Key("debounce").String())
		if err != nil {
			return s, err
		}
		s.Debounce = d
	}
	if section.HasKey("columns") {
		for _, c := range section.Key("columns").Strings(",") {
			if c = strings.TrimSpace(c); c != "" {
				s.Columns = append(s.Columns, c)
			}
		}
	}

	return s, nil
}

// parseDebounce accepts a duration or a bare number of milliseconds.
func parseDebounce(v string) (time.Duration, error) {
	if ms, err := strconv.Atoi(v); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid debounce %q: %w", v, err)
	}
	return d, nil
}
