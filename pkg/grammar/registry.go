package grammar

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

var (
	// ErrDuplicateName is returned when two grammars claim the same identifier.
	ErrDuplicateName = errors.New("duplicate language identifier")
	// ErrUnknownFallback is returned when the fallback grammar is not registered.
	ErrUnknownFallback = errors.New("unknown fallback grammar")
)

// Registry maps language identifiers to grammars. It is immutable once
// built and may be shared between goroutines without locking.
type Registry struct {
	grammars []*Grammar          // in registration order
	byID     map[string]*Grammar // names and aliases, case-sensitive
	byExt    map[string]*Grammar // lower-cased extensions with leading dot
	fallback *Grammar
}

// NewRegistry builds a registry. The fallback must name one of the grammars.
func NewRegistry(fallback string, grammars ...*Grammar) (*Registry, error) {
	r := &Registry{
		grammars: make([]*Grammar, 0, len(grammars)),
		byID:     make(map[string]*Grammar),
		byExt:    make(map[string]*Grammar),
	}

	for _, g := range grammars {
		if g == nil {
			continue
		}
		ids := append([]string{g.Name()}, g.Aliases()...)
		for _, id := range ids {
			if existing, exists := r.byID[id]; exists {
				return nil, fmt.Errorf("%w: '%s' is claimed by both '%s' and '%s'", ErrDuplicateName, id, existing.Name(), g.Name())
			}
			r.byID[id] = g
		}
		for _, ext := range g.Extensions() {
			// First registration wins for shared extensions.
			key := normalizeExt(ext)
			if _, exists := r.byExt[key]; !exists {
				r.byExt[key] = g
			}
		}
		r.grammars = append(r.grammars, g)
	}

	fb, ok := r.byID[fallback]
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownFallback, fallback)
	}
	r.fallback = fb
	return r, nil
}

// Lookup returns the grammar registered for languageID, or the fallback
// grammar when there is none. It never returns nil.
func (r *Registry) Lookup(languageID string) *Grammar {
	if g, ok := r.byID[languageID]; ok {
		return g
	}
	return r.fallback
}

// Get returns the grammar registered for languageID without falling back.
func (r *Registry) Get(languageID string) (*Grammar, bool) {
	g, ok := r.byID[languageID]
	return g, ok
}

// Fallback returns the grammar used for unknown identifiers.
func (r *Registry) Fallback() *Grammar { return r.fallback }

// Grammars returns the registered grammars in registration order.
func (r *Registry) Grammars() []*Grammar {
	return append([]*Grammar(nil), r.grammars...)
}

// Names returns the sorted primary names of all grammars.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.grammars))
	for _, g := range r.grammars {
		names = append(names, g.Name())
	}
	sort.Strings(names)
	return names
}

// DetectLanguage maps a filename to the name of the grammar registered for
// its extension.
func (r *Registry) DetectLanguage(filename string) (string, bool) {
	ext := filepath.Ext(filename)
	if ext == "" {
		return "", false
	}
	g, ok := r.byExt[normalizeExt(ext)]
	if !ok {
		return "", false
	}
	return g.Name(), true
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
