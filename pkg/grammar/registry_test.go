package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spicery/snippet-tokenizer/pkg/token"
)

func numbersGrammar(name string, aliases ...string) *Grammar {
	return MustCompile(Definition{
		Name:       name,
		Aliases:    aliases,
		Extensions: []string{"." + name},
		Rules:      []Rule{{Type: token.Number, Pattern: `\d+`}},
	})
}

func TestNewRegistryErrors(t *testing.T) {
	t.Run("duplicate name", func(t *testing.T) {
		_, err := NewRegistry("a", numbersGrammar("a"), numbersGrammar("a"))
		assert.ErrorIs(t, err, ErrDuplicateName)
	})

	t.Run("alias clashes with name", func(t *testing.T) {
		_, err := NewRegistry("a", numbersGrammar("a"), numbersGrammar("b", "a"))
		assert.ErrorIs(t, err, ErrDuplicateName)
	})

	t.Run("unknown fallback", func(t *testing.T) {
		_, err := NewRegistry("missing", numbersGrammar("a"))
		assert.ErrorIs(t, err, ErrUnknownFallback)
	})

	t.Run("fallback may be an alias", func(t *testing.T) {
		r, err := NewRegistry("alpha", numbersGrammar("a", "alpha"))
		require.NoError(t, err)
		assert.Equal(t, "a", r.Fallback().Name())
	})
}

func TestRegistryLookup(t *testing.T) {
	r := Builtin()

	tests := []struct {
		id   string
		want string
	}{
		{"javascript", "javascript"},
		{"js", "javascript"},
		{"ts", "typescript"},
		{"tsx", "react"},
		{"yml", "yaml"},
		{"md", "markdown"},
		{"py", "python"},
		{"ini", "properties"},
		{"go", DefaultFallback},
		{"", DefaultFallback},
		{"SQL", DefaultFallback}, // identifiers are case-sensitive
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			g := r.Lookup(tt.id)
			require.NotNil(t, g)
			assert.Equal(t, tt.want, g.Name())
		})
	}
}

func TestRegistryGetDoesNotFallBack(t *testing.T) {
	r := Builtin()

	g, ok := r.Get("css")
	require.True(t, ok)
	assert.Equal(t, "css", g.Name())

	g, ok = r.Get("go")
	assert.False(t, ok)
	assert.Nil(t, g)
}

func TestRegistryNames(t *testing.T) {
	names := Builtin().Names()
	assert.IsIncreasing(t, names)
	for _, want := range []string{
		"css", "html", "java", "javascript", "json", "log", "markdown",
		"properties", "python", "react", "sql", "typescript", "xml", "yaml",
	} {
		assert.Contains(t, names, want)
	}
}

func TestDetectLanguage(t *testing.T) {
	r := Builtin()

	tests := []struct {
		filename string
		want     string
		ok       bool
	}{
		{"app.js", "javascript", true},
		{"component.tsx", "react", true},
		{"schema.SQL", "sql", true},
		{"dir/config.yml", "yaml", true},
		{"README.md", "markdown", true},
		{"icon.svg", "xml", true},
		{"app.properties", "properties", true},
		{"server.log", "log", true},
		{"Makefile", "", false},
		{"main.go", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			got, ok := r.DetectLanguage(tt.filename)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSharedExtensionFirstRegistrationWins(t *testing.T) {
	first := MustCompile(Definition{Name: "first", Extensions: []string{".x"}, Rules: []Rule{{Type: token.Number, Pattern: `\d`}}})
	second := MustCompile(Definition{Name: "second", Extensions: []string{"X"}, Rules: []Rule{{Type: token.Number, Pattern: `\d`}}})

	r, err := NewRegistry("first", first, second)
	require.NoError(t, err)

	got, ok := r.DetectLanguage("file.x")
	require.True(t, ok)
	assert.Equal(t, "first", got)
}
