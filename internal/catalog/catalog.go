// Package catalog loads the add-on catalog from YAML.
package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jasicon/jasreg/internal/cachemanager"
	"github.com/jasicon/jasreg/internal/log"
	"github.com/jasicon/jasreg/internal/money"
	"github.com/jasicon/jasreg/internal/registration"
)

// ErrInvalid is returned for catalog files that parse but break a rule.
var ErrInvalid = errors.New("invalid catalog")

// File is the on-disk catalog format. Prices are whole rupees.
type File struct {
	AddOns []Entry `yaml:"add_ons"`
}

// Entry is one add-on in the catalog file.
type Entry struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
	Price int64  `yaml:"price"`
}

// Default returns the built-in workshop catalog.
func Default() registration.Catalog {
	return registration.Catalog{
		{ID: "w1", Title: "Advanced Laparoscopy Masterclass", Price: money.Rupees(15000)},
		{ID: "w2", Title: "Infertility & IVF Management", Price: money.Rupees(12000)},
	}
}

// Parse decodes and validates a catalog. An empty document is an empty
// catalog. Ids must be unique and non-empty,
// titles non-empty and prices non-negative.
func Parse(data []byte) (registration.Catalog, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	seen := make(map[string]bool, len(f.AddOns))
	c := make(registration.Catalog, 0, len(f.AddOns))
	for i, e := range f.AddOns {
		switch {
		case e.ID == "":
			return nil, fmt.Errorf("%w: add-on %d has no id", ErrInvalid, i+1)
		case seen[e.ID]:
			return nil, fmt.Errorf("%w: duplicate add-on id %q", ErrInvalid, e.ID)
		case e.Title == "":
			return nil, fmt.Errorf("%w: add-on %q has no title", ErrInvalid, e.ID)
		case e.Price < 0:
			return nil, fmt.Errorf("%w: add-on %q has a negative price", ErrInvalid, e.ID)
		}
		seen[e.ID] = true
		c = append(c, registration.AddOn{ID: e.ID, Title: e.Title, Price: money.Rupees(e.Price)})
	}
	return c, nil
}

// Marshal encodes a catalog in the file format.
func Marshal(c registration.Catalog) ([]byte, error) {
	f := File{AddOns: make([]Entry, 0, len(c))}
	for _, a := range c {
		f.AddOns = append(f.AddOns, Entry{ID: a.ID, Title: a.Title, Price: a.Price.Whole()})
	}
	return yaml.Marshal(f)
}

const cacheKey = "catalog"

// Source serves the catalog from a file through a read-through cache.
// An empty path serves Default.
type Source struct {
	path  string
	ttl   time.Duration
	cache *cachemanager.ReadThroughCache[string, registration.Catalog]
}

// NewSource creates a source for path. Entries live for ttl; zero keeps
// them until Invalidate.
func NewSource(path string, ttl time.Duration) *Source {
	s := &Source{path: path, ttl: ttl}
	if ttl == 0 {
		s.ttl = cachemanager.NoExpiration
	}
	mem := cachemanager.NewInMemoryCacheManager[string, registration.Catalog](
		"catalog", cachemanager.NoExpiration, cachemanager.DefaultCleanupInterval)
	s.cache = cachemanager.NewReadThroughCache[string, registration.Catalog](mem, s.read, false)
	return s
}

// Path returns the catalog file path, empty for the built-in catalog.
func (s *Source) Path() string { return s.path }

// Load returns the current catalog.
func (s *Source) Load(ctx context.Context) (registration.Catalog, error) {
	return s.cache.Get(ctx, cacheKey, s.ttl)
}

// Invalidate forces the next Load to read the file again.
func (s *Source) Invalidate(ctx context.Context) {
	s.cache.Invalidate(ctx, cacheKey)
}

func (s *Source) read(_ context.Context, _ string) (registration.Catalog, error) {
	if s.path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, err
	}
	log.Info(log.CatCatalog, "Catalog loaded", "path", s.path, "add_ons", len(c))
	return c, nil
}
