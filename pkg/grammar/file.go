package grammar

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// GrammarFile represents the structure of a YAML grammars file.
type GrammarFile struct {
	Fallback string       `yaml:"fallback,omitempty"`
	Grammars []Definition `yaml:"grammars"`
}

// LoadGrammarFile loads and parses a YAML grammars file.
func LoadGrammarFile(filename string) (*GrammarFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read grammars file '%s': %w", filename, err)
	}

	f, err := ParseGrammarFile(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse YAML in grammars file '%s': %w", filename, err)
	}

	return f, nil
}

// ParseGrammarFile parses the YAML form of a grammars file.
func ParseGrammarFile(data []byte) (*GrammarFile, error) {
	var f GrammarFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Marshal renders the file as YAML.
func (f *GrammarFile) Marshal() ([]byte, error) {
	out, err := yaml.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal grammars to YAML: %w", err)
	}
	return out, nil
}

// DefaultGrammarFile returns the built-in grammars in file form.
func DefaultGrammarFile() *GrammarFile {
	return &GrammarFile{
		Fallback: DefaultFallback,
		Grammars: DefaultDefinitions(),
	}
}

// ApplyGrammarFile builds a new registry from base plus the grammars in f.
// A file grammar replaces the base grammar of the same name; its aliases
// and extensions take precedence over any base grammar that claims them.
// An alias that names a base grammar is rejected with ErrDuplicateName,
// since it would hide that grammar. The base registry is left untouched.
func ApplyGrammarFile(base *Registry, f *GrammarFile, opts ...CompileOption) (*Registry, error) {
	compiled := make([]*Grammar, 0, len(f.Grammars))
	replaced := make(map[string]bool)
	aliasOf := make(map[string]string)
	claimed := make(map[string]bool)
	for i, def := range f.Grammars {
		g, err := Compile(def, opts...)
		if err != nil {
			return nil, fmt.Errorf("grammars file entry %d: %w", i, err)
		}
		compiled = append(compiled, g)
		replaced[g.Name()] = true
		claimed[g.Name()] = true
		for _, alias := range g.Aliases() {
			aliasOf[alias] = g.Name()
			claimed[alias] = true
		}
	}

	// File grammars are registered first so their extensions win.
	grammars := append([]*Grammar(nil), compiled...)
	for _, g := range base.Grammars() {
		if replaced[g.Name()] {
			continue
		}
		if owner, ok := aliasOf[g.Name()]; ok {
			return nil, fmt.Errorf("%w: '%s' is the name of grammar '%s' and an alias of '%s'", ErrDuplicateName, g.Name(), g.Name(), owner)
		}
		grammars = append(grammars, withoutAliases(g, claimed))
	}

	fallback := f.Fallback
	if fallback == "" {
		fallback = base.Fallback().Name()
	}

	return NewRegistry(fallback, grammars...)
}

// withoutAliases returns g, or a copy of g with the claimed aliases removed.
func withoutAliases(g *Grammar, claimed map[string]bool) *Grammar {
	keep := make([]string, 0, len(g.def.Aliases))
	for _, alias := range g.def.Aliases {
		if !claimed[alias] {
			keep = append(keep, alias)
		}
	}
	if len(keep) == len(g.def.Aliases) {
		return g
	}
	cp := *g
	cp.def = cloneDefinition(g.def)
	cp.def.Aliases = keep
	return &cp
}
