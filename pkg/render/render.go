// Package render writes token streams in presentation formats. Every
// renderer preserves token content exactly once its markup is removed.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/muesli/termenv"

	"github.com/spicery/snippet-tokenizer/pkg/theme"
	"github.com/spicery/snippet-tokenizer/pkg/token"
)

// ErrUnknownFormat is returned by ParseFormat for unsupported formats.
var ErrUnknownFormat = errors.New("unknown output format")

// Format names an output format.
type Format string

const (
	FormatJSON Format = "json" // One JSON token per line
	FormatANSI Format = "ansi"
	FormatHTML Format = "html"
)

// ParseFormat converts a format name into a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatJSON, FormatANSI, FormatHTML:
		return f, nil
	default:
		return "", fmt.Errorf("%w '%s' (available: json, ansi, html)", ErrUnknownFormat, s)
	}
}

// Options carries what the styled formats need.
type Options struct {
	Theme   theme.Theme
	Profile termenv.Profile // Colour profile for ANSI output
}

// Render writes tokens to w in the given format.
func Render(w io.Writer, format Format, tokens []token.Token, opts Options) error {
	switch format {
	case FormatJSON:
		return JSONLines(w, tokens)
	case FormatANSI:
		return NewANSI(w, opts.Theme, opts.Profile).Render(tokens)
	case FormatHTML:
		return HTML(w, tokens, opts.Theme)
	default:
		return fmt.Errorf("%w '%s'", ErrUnknownFormat, format)
	}
}

// JSONLines writes one JSON token object per line.
func JSONLines(w io.Writer, tokens []token.Token) error {
	for _, tok := range tokens {
		jsonBytes, err := json.Marshal(tok)
		if err != nil {
			return fmt.Errorf("JSON encoding error: %w", err)
		}
		if _, err := fmt.Fprintln(w, string(jsonBytes)); err != nil {
			return err
		}
	}
	return nil
}
