package render

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/spicery/snippet-tokenizer/pkg/theme"
	"github.com/spicery/snippet-tokenizer/pkg/token"
)

// ANSI renders tokens with terminal colour codes.
type ANSI struct {
	w      io.Writer
	styles map[token.Type]lipgloss.Style
	r      *lipgloss.Renderer
}

// NewANSI creates an ANSI renderer writing to w with the given colour profile.
func NewANSI(w io.Writer, th theme.Theme, profile termenv.Profile) *ANSI {
	r := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	r.SetColorProfile(profile)

	a := &ANSI{
		w:      w,
		styles: make(map[token.Type]lipgloss.Style),
		r:      r,
	}
	for _, t := range token.Types() {
		if s := th.Style(t); !s.IsZero() {
			a.styles[t] = a.lipglossStyle(s)
		}
	}
	return a
}

func (a *ANSI) lipglossStyle(s theme.Style) lipgloss.Style {
	// Tabs are content and must survive rendering.
	style := a.r.NewStyle().TabWidth(lipgloss.NoTabConversion)
	if s.Foreground != "" {
		style = style.Foreground(lipgloss.Color(s.Foreground))
	}
	return style.
		Bold(s.Bold).
		Italic(s.Italic).
		Underline(s.Underline)
}

// Render writes the styled tokens.
func (a *ANSI) Render(tokens []token.Token) error {
	_, err := io.WriteString(a.w, a.String(tokens))
	return err
}

// String returns the styled tokens as a string.
func (a *ANSI) String(tokens []token.Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		a.writeToken(&b, tok)
	}
	return b.String()
}

func (a *ANSI) writeToken(b *strings.Builder, tok token.Token) {
	style, ok := a.styles[tok.Type]
	if !ok {
		b.WriteString(tok.Content)
		return
	}
	// lipgloss lays multi-line strings out as a padded block, so each line is
	// styled on its own and the newlines are written through untouched.
	lines := strings.Split(tok.Content, "\n")
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		if line != "" {
			b.WriteString(style.Render(line))
		}
	}
}
