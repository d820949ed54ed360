package tmpl

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Variant is one language of a template.
type Variant struct {
	Language string `yaml:"language"`
	Subject  string `yaml:"subject"`
	Text     string `yaml:"text"`
	HTML     string `yaml:"html"`
}

// Store looks up template variants.
type Store interface {
	// Variant returns the variant of ref in exactly the given language, or
	// ErrTemplateNotFound.
	Variant(ctx context.Context, ref Reference, language string) (Variant, error)
}

// MemoryStore is a Store held in memory. It is safe for concurrent use.
type MemoryStore struct {
	mu        sync.RWMutex
	templates map[Reference]map[string]Variant
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{templates: make(map[Reference]map[string]Variant)}
}

// Put adds or replaces a variant.
func (s *MemoryStore) Put(ref Reference, v Variant) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.templates[ref] == nil {
		s.templates[ref] = make(map[string]Variant)
	}
	s.templates[ref][v.Language] = v
}

// Variant implements Store.
func (s *MemoryStore) Variant(_ context.Context, ref Reference, language string) (Variant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.templates[ref][language]
	if !ok {
		return Variant{}, ErrTemplateNotFound
	}
	return v, nil
}

type yamlFile struct {
	Templates map[string][]Variant `yaml:"templates"`
}

// LoadYAML reads templates from a document like this:
//
//	templates:
//	  Mail.Welcome:
//	    - language: en
//	      subject: Welcome {{var "to.name"}}
//	      text: Hello!
//	      html: <p>Hello!</p>
func LoadYAML(r io.Reader) (*MemoryStore, error) {
	var f yamlFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to decode templates: %w", err)
	}

	s := NewMemoryStore()
	for name, variants := range f.Templates {
		ref, err := ParseReference(name)
		if err != nil {
			return nil, fmt.Errorf("template %q: %w", name, err)
		}

		for _, v := range variants {
			if v.Language == "" {
				v.Language = DefaultLanguage
			}
			s.Put(ref, v)
		}
	}

	return s, nil
}

// LoadYAMLFile reads templates from the named file.
func LoadYAMLFile(path string) (*MemoryStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return LoadYAML(f)
}
