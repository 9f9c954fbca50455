// Package theme maps token types to presentation styles.
package theme

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spicery/snippet-tokenizer/pkg/token"
)

// ErrUnknownTheme is returned by ByName for names with no built-in theme.
var ErrUnknownTheme = errors.New("unknown theme")

// Style describes how a token type is presented. Foreground is a hex colour
// such as "#d73a49"; an empty Foreground keeps the surrounding colour.
type Style struct {
	Foreground string
	Bold       bool
	Italic     bool
	Underline  bool
}

// IsZero reports whether the style changes nothing.
func (s Style) IsZero() bool {
	return s == Style{}
}

// Theme is a static table from token type to style.
type Theme struct {
	Name       string
	Background string // Used by renderers that paint a backdrop, e.g. HTML
	Foreground string // Colour of unstyled text
	Styles     map[token.Type]Style
	Default    Style // Used for types missing from Styles
}

// Style returns the style for t, or the theme default.
func (th Theme) Style(t token.Type) Style {
	if s, ok := th.Styles[t]; ok {
		return s
	}
	return th.Default
}

// Light is a theme for light backgrounds.
func Light() Theme {
	return Theme{
		Name:       "light",
		Background: "#ffffff",
		Foreground: "#24292e",
		Styles: map[token.Type]Style{
			token.Text:        {},
			token.Comment:     {Foreground: "#6a737d", Italic: true},
			token.String:      {Foreground: "#032f62"},
			token.Keyword:     {Foreground: "#d73a49", Bold: true},
			token.Function:    {Foreground: "#6f42c1"},
			token.Number:      {Foreground: "#005cc5"},
			token.Tag:         {Foreground: "#22863a"},
			token.AttrName:    {Foreground: "#6f42c1"},
			token.AttrValue:   {Foreground: "#032f62"},
			token.Selector:    {Foreground: "#22863a"},
			token.Property:    {Foreground: "#005cc5"},
			token.Annotation:  {Foreground: "#e36209"},
			token.Italic:      {Italic: true},
			token.Link:        {Foreground: "#032f62", Underline: true},
			token.Punctuation: {Foreground: "#586069"},
		},
	}
}

// Dark is a theme for dark backgrounds.
func Dark() Theme {
	return Theme{
		Name:       "dark",
		Background: "#1e1e1e",
		Foreground: "#d4d4d4",
		Styles: map[token.Type]Style{
			token.Text:        {},
			token.Comment:     {Foreground: "#6a9955", Italic: true},
			token.String:      {Foreground: "#ce9178"},
			token.Keyword:     {Foreground: "#569cd6", Bold: true},
			token.Function:    {Foreground: "#dcdcaa"},
			token.Number:      {Foreground: "#b5cea8"},
			token.Tag:         {Foreground: "#569cd6"},
			token.AttrName:    {Foreground: "#9cdcfe"},
			token.AttrValue:   {Foreground: "#ce9178"},
			token.Selector:    {Foreground: "#d7ba7d"},
			token.Property:    {Foreground: "#9cdcfe"},
			token.Annotation:  {Foreground: "#c586c0"},
			token.Italic:      {Italic: true},
			token.Link:        {Foreground: "#4fc1ff", Underline: true},
			token.Punctuation: {Foreground: "#808080"},
		},
	}
}

// Plain is a theme with no styling at all.
func Plain() Theme {
	return Theme{Name: "plain"}
}

var builtins = map[string]func() Theme{
	"light": Light,
	"dark":  Dark,
	"plain": Plain,
}

// ByName returns the built-in theme with the given name.
func ByName(name string) (Theme, error) {
	ctor, ok := builtins[name]
	if !ok {
		return Theme{}, fmt.Errorf("%w '%s' (available: %v)", ErrUnknownTheme, name, Names())
	}
	return ctor(), nil
}

// Names returns the sorted names of the built-in themes.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
