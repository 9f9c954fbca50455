package render

import (
	"html"
	"io"
	"strings"

	"github.com/spicery/snippet-tokenizer/pkg/theme"
	"github.com/spicery/snippet-tokenizer/pkg/token"
)

// HTML writes tokens as inline-styled spans inside a <pre class="snippet">
// block. Text tokens and unstyled types are written as escaped text.
func HTML(w io.Writer, tokens []token.Token, th theme.Theme) error {
	var b strings.Builder

	b.WriteString(`<pre class="snippet`)
	if th.Name != "" {
		b.WriteString(` snippet-` + html.EscapeString(th.Name))
	}
	b.WriteString(`"`)
	if css := preCSS(th); css != "" {
		b.WriteString(` style="` + css + `"`)
	}
	b.WriteString("><code>")

	for _, tok := range tokens {
		content := html.EscapeString(tok.Content)
		css := styleCSS(th.Style(tok.Type))
		if tok.Type == token.Text || css == "" {
			b.WriteString(content)
			continue
		}
		b.WriteString(`<span class="tok-` + string(tok.Type) + `" style="` + css + `">`)
		b.WriteString(content)
		b.WriteString("</span>")
	}

	b.WriteString("</code></pre>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func preCSS(th theme.Theme) string {
	var decls []string
	if th.Background != "" {
		decls = append(decls, "background-color:"+th.Background)
	}
	if th.Foreground != "" {
		decls = append(decls, "color:"+th.Foreground)
	}
	return html.EscapeString(strings.Join(decls, ";"))
}

func styleCSS(s theme.Style) string {
	var decls []string
	if s.Foreground != "" {
		decls = append(decls, "color:"+s.Foreground)
	}
	if s.Bold {
		decls = append(decls, "font-weight:bold")
	}
	if s.Italic {
		decls = append(decls, "font-style:italic")
	}
	if s.Underline {
		decls = append(decls, "text-decoration:underline")
	}
	return html.EscapeString(strings.Join(decls, ";"))
}
